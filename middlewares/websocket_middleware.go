package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/acailability/acaibot/utils"
)

// WebSocketAuthMiddleware reads the token from the query string because
// browsers cannot set headers on websocket upgrades.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("operatorID", claims.OperatorID)
		c.Set("operatorName", claims.Name)

		c.Next()
	}
}
