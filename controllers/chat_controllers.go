package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acailability/acaibot/chat"
	"github.com/acailability/acaibot/hub"
	"github.com/acailability/acaibot/notify"
	"github.com/acailability/acaibot/queue"
	"github.com/acailability/acaibot/store"
	"github.com/acailability/acaibot/utils"
)

// ChatController is the single inbound door for the bot relay. Customer
// events go to the conversation engine; operator commands are allow-list
// checked and go to the queue presenter or the shop gate.
type ChatController struct {
	Engine     *chat.Engine
	Queue      *queue.Presenter
	Dispatcher *notify.Dispatcher
	Shop       *store.ShopGate
}

func NewChatController(engine *chat.Engine, presenter *queue.Presenter, dispatcher *notify.Dispatcher, shop *store.ShopGate) *ChatController {
	return &ChatController{
		Engine:     engine,
		Queue:      presenter,
		Dispatcher: dispatcher,
		Shop:       shop,
	}
}

type eventEnvelope struct {
	CustomerID   int64      `json:"customer_id" binding:"required"`
	CustomerName string     `json:"customer_name"`
	Event        chat.Event `json:"event" binding:"required"`
}

// HandleEvent -> POST /api/events
func (cc *ChatController) HandleEvent(c *gin.Context) {
	var body eventEnvelope
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	from := chat.Identity{ID: body.CustomerID, Name: body.CustomerName}

	var replies []chat.Reply
	if body.Event.IsOperatorCommand() {
		replies = cc.handleOperatorCommand(c, from, body.Event)
	} else {
		replies = cc.Engine.Handle(c.Request.Context(), from, body.Event)
	}

	utils.RespondJSON(c, http.StatusOK, "Event handled", gin.H{"replies": replies})
}

func (cc *ChatController) handleOperatorCommand(c *gin.Context, from chat.Identity, ev chat.Event) []chat.Reply {
	if !cc.Dispatcher.IsOperator(from.ID) {
		utils.InfoLogger.Printf("denied operator command %s from %d", ev.Kind, from.ID)
		return []chat.Reply{{Text: "⛔️ Access Denied: operators only."}}
	}

	switch ev.Kind {
	case chat.EventToggleShop:
		open := !cc.Shop.IsOpen()
		if err := cc.Shop.SetOpen(open); err != nil {
			utils.ErrorLogger.Printf("shop toggle failed: %v", err)
			return []chat.Reply{{Text: "Could not update shop status, please retry."}}
		}
		hub.BroadcastShopStatus(open)
		return []chat.Reply{{Text: shopStatusNotice(open)}}

	case chat.EventQueueRequest, chat.EventRefreshQueue:
		view, err := cc.Queue.View()
		if err != nil {
			utils.ErrorLogger.Printf("queue render failed: %v", err)
			return []chat.Reply{{Text: "Could not load the queue, please retry."}}
		}
		return []chat.Reply{view}

	case chat.EventServe:
		view, err := cc.Queue.Serve(c.Request.Context(), ev.OrderRef)
		if err != nil {
			utils.ErrorLogger.Printf("serve %s failed: %v", ev.OrderRef, err)
			return []chat.Reply{{Text: "Could not serve that order, please retry."}}
		}
		return []chat.Reply{view}
	}
	return nil
}

func shopStatusNotice(open bool) string {
	if open {
		return "✅ Shop status updated: OPEN 🟢"
	}
	return "✅ Shop status updated: CLOSED 🔴"
}
