package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"smartlib-backend/internal/shared/response"
)

// Recovery converts panics into the standard error envelope. The
// request id is echoed back so the failing request can be found in
// the logs.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID := c.GetString("request_id")
				log.Error().
					Str("request_id", requestID).
					Interface("error", err).
					Bytes("stack", debug.Stack()).
					Msg("Panic recovered")

				response.ErrorWithDetails(c, http.StatusInternalServerError,
					"INTERNAL_SERVER_ERROR", "Internal server error",
					gin.H{"request_id": requestID})
				c.Abort()
			}
		}()

		c.Next()
	}
}
