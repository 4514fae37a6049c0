package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acailability/acaibot/hub"
	"github.com/acailability/acaibot/queue"
	"github.com/acailability/acaibot/store"
	"github.com/acailability/acaibot/utils"
)

// QueueController is the dashboard's JSON surface over the same queue
// presenter the chat side uses.
type QueueController struct {
	Orders *store.OrderStore
	Queue  *queue.Presenter
	Shop   *store.ShopGate
}

func NewQueueController(orders *store.OrderStore, presenter *queue.Presenter, shop *store.ShopGate) *QueueController {
	return &QueueController{Orders: orders, Queue: presenter, Shop: shop}
}

// GetQueue -> pending orders with items, FIFO
func (qc *QueueController) GetQueue(c *gin.Context) {
	orders, err := qc.Orders.ListPending()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pending orders", orders)
}

// ServeOrder -> POST /api/orders/:ref/serve. Responds with the fresh queue
// so the dashboard never keeps a stale serve button.
func (qc *QueueController) ServeOrder(c *gin.Context) {
	ref := c.Param("ref")

	view, err := qc.Queue.Serve(c.Request.Context(), ref)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	orders, err := qc.Orders.ListPending()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Serve handled", gin.H{
		"view":    view,
		"pending": orders,
	})
}

// GetShop -> current shop flag
func (qc *QueueController) GetShop(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Shop status", gin.H{"open": qc.Shop.IsOpen()})
}

// ToggleShop -> flip the shop flag
func (qc *QueueController) ToggleShop(c *gin.Context) {
	open := !qc.Shop.IsOpen()
	if err := qc.Shop.SetOpen(open); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	hub.BroadcastShopStatus(open)
	utils.InfoLogger.Printf("Shop toggled, open=%v", open)

	utils.RespondJSON(c, http.StatusOK, "Shop status updated", gin.H{"open": open})
}
