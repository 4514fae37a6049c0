package hub

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/acailability/acaibot/models"
)

// Event types pushed to dashboard clients
const (
	EventOrderCreated = "order_created"
	EventOrderServed  = "order_served"
	EventShopStatus   = "shop_status"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// QueueHub holds every connected dashboard client so the queue view stays
// live without polling.
type QueueHub struct {
	clients map[*websocket.Conn]string // conn -> operator name
	mutex   sync.Mutex
}

var queueHub = QueueHub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection to the set.
func RegisterClient(conn *websocket.Conn, operator string) {
	queueHub.mutex.Lock()
	defer queueHub.mutex.Unlock()
	queueHub.clients[conn] = operator
}

// UnregisterClient releases a connection.
func UnregisterClient(conn *websocket.Conn) {
	queueHub.mutex.Lock()
	defer queueHub.mutex.Unlock()
	delete(queueHub.clients, conn)
	conn.Close()
}

// BroadcastOrderCreated announces a fresh pending order.
func BroadcastOrderCreated(order models.Order) {
	broadcast(Message{
		Event: EventOrderCreated,
		Data:  order,
	})
}

// BroadcastOrderServed announces a completed serve.
func BroadcastOrderServed(order models.Order) {
	broadcast(Message{
		Event: EventOrderServed,
		Data:  order,
	})
}

// BroadcastShopStatus announces a shop open/close toggle.
func BroadcastShopStatus(open bool) {
	broadcast(Message{
		Event: EventShopStatus,
		Data:  map[string]bool{"open": open},
	})
}

// broadcast sends to every client; a dead connection only loses its own copy.
func broadcast(msg Message) {
	queueHub.mutex.Lock()
	defer queueHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, operator := range queueHub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending %s to %s: %v", msg.Event, operator, err)
			continue
		}
	}
}
