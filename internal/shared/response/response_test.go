package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func record(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/", handler)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestSuccessWithMeta_SkipLimitPaging(t *testing.T) {
	w := record(func(c *gin.Context) {
		SuccessWithMeta(c, http.StatusOK, []string{"a", "b"}, Paging(10, 2, 57))
	})

	require.Equal(t, http.StatusOK, w.Code)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Meta)
	assert.Equal(t, 10, body.Meta.Skip)
	assert.Equal(t, 2, body.Meta.Limit)
	assert.Equal(t, 57, body.Meta.Total)
}

func TestConflict_Envelope(t *testing.T) {
	w := record(func(c *gin.Context) {
		Conflict(c, "book was modified concurrently")
	})

	require.Equal(t, http.StatusConflict, w.Code)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "CONFLICT", body.Error.Code)
	assert.Equal(t, "book was modified concurrently", body.Error.Message)
}
