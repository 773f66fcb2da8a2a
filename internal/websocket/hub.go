package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/xelth-com/linerecords/internal/calc"
	"github.com/xelth-com/linerecords/internal/logs"
)

var log = logs.WithComponent("websocket")

// Event types pushed to dashboards
const (
	EventProgress  = "progress"
	EventBomCell   = "bom_cell"
	EventMatrix    = "bom_matrix"
	EventEquipment = "equipment"
)

// Event is a change notification for connected dashboards.
// Equipment events carry EquipmentID; BOM events carry item and variant.
type Event struct {
	Type        string        `json:"type"`
	EquipmentID uint          `json:"equipmentId,omitempty"`
	Kind        string        `json:"kind,omitempty"` // validation, documentation, devices; created, updated, deleted for equipment
	Progress    *calc.Summary `json:"progress,omitempty"`
	ItemID      uint          `json:"itemId,omitempty"`
	VariantID   uint          `json:"variantId,omitempty"`
	Applicable  *bool         `json:"applicable,omitempty"`
}

type subscription struct {
	client      *Client
	equipmentID uint
	msgID       string
}

// Hub maintains the set of active clients and broadcasts events
type Hub struct {
	// Registered clients map: ClientID -> Client
	clients map[string]*Client

	// Equipment filter per client, 0 means everything
	filters map[*Client]uint

	register   chan *Client
	unregister chan *Client
	subscribe  chan subscription
	broadcast  chan Event
	done       chan struct{}

	// Mutex for thread-safe access to clients map
	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		filters:    make(map[*Client]uint),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		subscribe:  make(chan subscription),
		broadcast:  make(chan Event, 64),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop; it returns when ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for id, c := range h.clients {
				close(c.send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			log.Debugf("client connected: %s", client.ID)

		case client := <-h.unregister:
			h.drop(client)

		case sub := <-h.subscribe:
			h.mu.RLock()
			_, ok := h.clients[sub.client.ID]
			h.mu.RUnlock()
			if !ok {
				continue
			}
			h.filters[sub.client] = sub.equipmentID
			ack, _ := json.Marshal(map[string]interface{}{
				"type":        "ACK",
				"msgId":       sub.msgID,
				"equipmentId": sub.equipmentID,
			})
			h.deliver(sub.client, ack)

		case event := <-h.broadcast:
			msg, err := json.Marshal(event)
			if err != nil {
				log.Errorf("marshal event: %v", err)
				continue
			}
			h.mu.RLock()
			targets := make([]*Client, 0, len(h.clients))
			for _, c := range h.clients {
				if f := h.filters[c]; f == 0 || event.EquipmentID == 0 || f == event.EquipmentID {
					targets = append(targets, c)
				}
			}
			h.mu.RUnlock()
			for _, c := range targets {
				h.deliver(c, msg)
			}
		}
	}
}

// deliver queues msg for c; a client with a full buffer is dropped
func (h *Hub) deliver(c *Client, msg []byte) {
	select {
	case c.send <- msg:
	default:
		log.Warnf("client %s too slow, disconnecting", c.ID)
		h.drop(c)
	}
}

func (h *Hub) drop(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.ID]; ok {
		delete(h.clients, c.ID)
		delete(h.filters, c)
		close(c.send)
		log.Debugf("client disconnected: %s", c.ID)
	}
}

// Publish queues an event for broadcast. It never blocks; events are
// dropped when the queue is full.
func (h *Hub) Publish(e Event) {
	select {
	case h.broadcast <- e:
	default:
		log.Warnf("broadcast queue full, dropping %s event", e.Type)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
