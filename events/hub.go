package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/homechefhq/homechef-api/models"
)

// Event types
const (
	EventOrderUpdate        = "order_update"
	EventOrderCancelled     = "order_cancelled"
	EventAssignmentUpdate   = "assignment_update"
	EventSubscriptionPaused = "subscription_paused"
	EventSubscriptionResume = "subscription_resumed"
	EventOrdersGenerated    = "orders_generated"
	EventPaymentUpdate      = "payment_update"
	EventNotification       = "notification"
	EventDashboardUpdate    = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung semua client dashboard (chef, admin) dan menyiarkan
// event ke mereka.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> menambahkan connection ke set dengan role
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderUpdate -> menyiarkan perubahan order
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{Event: EventOrderUpdate, Data: order})
}

// BroadcastAssignmentUpdate -> perubahan assignment (pause/resume/create)
func BroadcastAssignmentUpdate(event string, assignment models.Assignment) {
	broadcast(Message{Event: event, Data: assignment})
}

// BroadcastOrdersGenerated -> hasil generate order subscription
func BroadcastOrdersGenerated(assignmentID uint, ordersCreated int) {
	broadcast(Message{
		Event: EventOrdersGenerated,
		Data: map[string]interface{}{
			"assignment_id":  assignmentID,
			"orders_created": ordersCreated,
		},
	})
}

// BroadcastPaymentUpdate -> update status pembayaran
func BroadcastPaymentUpdate(payment models.Payment) {
	broadcast(Message{Event: EventPaymentUpdate, Data: payment})
}

// BroadcastNotification -> notifikasi baru untuk dashboard
func BroadcastNotification(notif models.Notification) {
	broadcast(Message{Event: EventNotification, Data: notif})
}

// broadcast -> fungsi internal untuk mengirim pesan ke semua client
func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, role := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to %s client: %v", role, err)
			continue
		}
	}
}
