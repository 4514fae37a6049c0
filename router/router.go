package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/acailability/acaibot/chat"
	"github.com/acailability/acaibot/config"
	"github.com/acailability/acaibot/controllers"
	"github.com/acailability/acaibot/middlewares"
	"github.com/acailability/acaibot/notify"
	"github.com/acailability/acaibot/queue"
	"github.com/acailability/acaibot/session"
	"github.com/acailability/acaibot/store"
)

// SetupRouter wires the full application: stores over db, the conversation
// engine, the queue presenter, and every HTTP surface. The messenger is
// injected so tests can capture outbound pushes.
func SetupRouter(db *gorm.DB, cfg config.App, messenger notify.Messenger) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	orders := store.NewOrderStore(db)
	shop := store.NewShopGate(db)
	sessions := session.NewStore()
	dispatcher := notify.NewDispatcher(messenger, cfg.AdminIDs)
	engine := chat.NewEngine(sessions, orders, shop, dispatcher)
	presenter := queue.NewPresenter(orders, dispatcher)

	chatCtrl := controllers.NewChatController(engine, presenter, dispatcher, shop)
	queueCtrl := controllers.NewQueueController(orders, presenter, shop)
	operatorCtrl := controllers.NewOperatorController(db)

	api := r.Group("/api")
	{
		// Inbound chat events from the bot relay.
		api.POST("/events", middlewares.RelayAuthMiddleware(cfg.RelayToken), chatCtrl.HandleEvent)

		api.POST("/auth/login", middlewares.NewStrictRateLimiter(), operatorCtrl.Login)

		// Operator dashboard.
		operator := api.Group("/", middlewares.AuthMiddleware())
		{
			operator.GET("/queue", queueCtrl.GetQueue)
			operator.POST("/orders/:ref/serve", queueCtrl.ServeOrder)
			operator.GET("/shop", queueCtrl.GetShop)
			operator.POST("/shop/toggle", queueCtrl.ToggleShop)
		}

		api.GET("/ws", middlewares.WebSocketAuthMiddleware(), controllers.QueueFeedHandler)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	return r
}
