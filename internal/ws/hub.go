package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"SchoolQL/entity"
	"SchoolQL/internal/lib/sl"
)

// Hub maintains the set of active WebSocket clients and broadcasts school
// change events to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan entity.SchoolEvent
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	log        *slog.Logger
}

// NewHub creates a new Hub instance.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan entity.SchoolEvent, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log.With(sl.Module("ws.hub")),
	}
}

// Run starts the hub's event loop until ctx is done. Should be called once,
// in a goroutine.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				h.log.Warn("encode event", sl.Err(err))
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// PublishSchoolEvent queues an event for all connected clients. It never
// blocks; events are dropped when the queue is full.
func (h *Hub) PublishSchoolEvent(event entity.SchoolEvent) {
	select {
	case h.broadcast <- event:
	default:
		h.log.Warn("event queue full, dropping event",
			slog.String("type", string(event.Type)),
			slog.Int("school_id", event.School.ID),
		)
	}
}

// Stopped reports whether Run has returned.
func (h *Hub) Stopped() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
