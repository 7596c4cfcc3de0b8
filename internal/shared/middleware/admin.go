package middleware

import (
	"github.com/gin-gonic/gin"

	"smartlib-backend/internal/shared/response"
)

// AdminMiddleware checks the is_admin claim set by AuthMiddleware
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdminVal, exists := c.Get(ContextIsAdmin)
		if !exists {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		isAdmin, ok := isAdminVal.(bool)
		if !ok || !isAdmin {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
