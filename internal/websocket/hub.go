package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"ai-resumelab-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// PresenceListener is notified when connections for a uid open and close.
// Implemented by the visitor service for the active-user metric.
type PresenceListener interface {
	ConnectionOpened(uid string)
	ConnectionClosed(uid string)
}

// Hub fans workflow outcomes out to every live connection of a uid.
// Delivery is best effort and at most once per connection: a uid with zero
// connections is a no-op, a full send buffer drops the connection. Missed
// events are never replayed; reconnecting clients re-read state over HTTP.
type Hub struct {
	// Registered clients map: uid -> list of connections (multi-tab)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Optional Redis relay so an outcome produced on one instance reaches
	// connections held by another. Nil in single-instance deployments.
	rdb *redis.Client

	presence PresenceListener

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, presence PresenceListener, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		presence:   presence,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UID] = append(h.clients[client.UID], client)
			h.mu.Unlock()
			if h.presence != nil {
				h.presence.ConnectionOpened(client.UID)
			}
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"uid": client.UID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UID]) == 0 {
					delete(h.clients, client.UID)
				}
			}
			h.mu.Unlock()
			if h.presence != nil {
				h.presence.ConnectionClosed(client.UID)
			}
			h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"uid": client.UID})
		}
	}
}

// Send delivers one event to every connection registered under uid.
// The payload is wrapped as {"type": event, "data": payload}, the shape the
// frontend dispatches on.
func (h *Hub) Send(uid string, event string, payload interface{}) {
	data, err := json.Marshal(map[string]interface{}{
		"type": event,
		"data": payload,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal outbound event", map[string]interface{}{"uid": uid, "event": event, "error": err.Error()})
		return
	}

	h.deliverLocal(uid, data)

	if h.rdb != nil {
		relay, _ := json.Marshal(map[string]interface{}{
			"target_uid": uid,
			"message":    json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), "resume_events", relay)
	}
}

func (h *Hub) deliverLocal(uid string, data []byte) {
	// Snapshot first, then send without the lock held: pushing to
	// unregister needs the Run loop, which takes the write lock.
	h.mu.RLock()
	clients := make([]*Client, len(h.clients[uid]))
	copy(clients, h.clients[uid])
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"uid": uid})
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "resume_events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetUID string          `json:"target_uid"`
			Message   json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}
		h.deliverLocal(payload.TargetUID, payload.Message)
	}
}
