package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlib-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testRouter(manager *jwt.Manager, extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(manager)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		userID, ok := UserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user id"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	router.GET("/protected", handlers...)
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", 30)
	token, err := manager.GenerateAccessToken(42, "alice", false)
	require.NoError(t, err)

	w := doRequest(testRouter(manager), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	manager := jwt.NewManager("test-secret", 30)

	w := doRequest(testRouter(manager), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	manager := jwt.NewManager("test-secret", 30)

	w := doRequest(testRouter(manager), "Token abc")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_BadToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", 30)

	w := doRequest(testRouter(manager), "Bearer garbage")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminMiddleware_RejectsNonAdmin(t *testing.T) {
	manager := jwt.NewManager("test-secret", 30)
	token, err := manager.GenerateAccessToken(42, "alice", false)
	require.NoError(t, err)

	w := doRequest(testRouter(manager, AdminMiddleware()), "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminMiddleware_AllowsAdmin(t *testing.T) {
	manager := jwt.NewManager("test-secret", 30)
	token, err := manager.GenerateAccessToken(42, "alice", true)
	require.NoError(t, err)

	w := doRequest(testRouter(manager, AdminMiddleware()), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
}
