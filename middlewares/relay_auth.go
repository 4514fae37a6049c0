package middlewares

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acailability/acaibot/utils"
)

// RelayAuthMiddleware guards the inbound event endpoint with the shared
// relay token. With no token configured the endpoint is open, which is only
// acceptable for local development.
func RelayAuthMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		got := c.GetHeader("X-Relay-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid relay token"))
			c.Abort()
			return
		}
		c.Next()
	}
}
