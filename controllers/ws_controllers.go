package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/acailability/acaibot/hub"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// QueueFeedHandler -> websocket endpoint for the live queue
func QueueFeedHandler(c *gin.Context) {
	nameInterface, exists := c.Get("operatorName")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	name := nameInterface.(string)

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	hub.RegisterClient(ws, name)

	// The feed is push-only; drain reads until the client goes away.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	hub.UnregisterClient(ws)
}
