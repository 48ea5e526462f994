// internal/ws/hub.go
package ws

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

const (
	EventOrderPaid             = "order.paid"
	EventSubscriptionActivated = "subscription.activated"
)

// Event is a store-side notification pushed to connected admin dashboards.
type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub fans events out to connected admin clients. Publish never blocks the
// caller; events with no listeners are dropped.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 64),
		logger:     logger,
	}
}

// Run owns the client set. Call in its own goroutine; stops when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				client.Close()
				delete(h.clients, client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.logger.Info("admin client connected", zap.Int64("user_id", client.userID))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
				h.logger.Info("admin client disconnected", zap.Int64("user_id", client.userID))
			}

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				h.logger.Error("failed to marshal event", zap.Error(err))
				continue
			}
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					delete(h.clients, client)
					client.Close()
				}
			}
		}
	}
}

// Publish enqueues an event for broadcast. Drops the event when the hub is
// backed up rather than stalling the request path.
func (h *Hub) Publish(eventType string, payload interface{}) {
	event := Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("event dropped, broadcast buffer full", zap.String("type", eventType))
	}
}
