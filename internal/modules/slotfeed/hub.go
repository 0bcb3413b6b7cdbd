package slotfeed

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// SlotEvent is pushed to every client watching a mechanic's picker grid
// whenever a hold changes state, so open grids refresh without polling.
type SlotEvent struct {
	MechanicID int64     `json:"mechanic_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Event      string    `json:"event"` // reserved | confirmed | released
}

// Hub fans slot events out to websocket subscribers, keyed by mechanic.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[int64]map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[int64]map[*websocket.Conn]struct{}),
	}
}

func (h *Hub) Subscribe(mechanicID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.subscribers[mechanicID]
	if !ok {
		conns = make(map[*websocket.Conn]struct{})
		h.subscribers[mechanicID] = conns
	}
	conns[conn] = struct{}{}
}

func (h *Hub) Unsubscribe(mechanicID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.subscribers[mechanicID]; ok {
		if _, subscribed := conns[conn]; subscribed {
			_ = conn.Close()
			delete(conns, conn)
		}
		if len(conns) == 0 {
			delete(h.subscribers, mechanicID)
		}
	}
}

// BroadcastSlotEvent writes the event to every subscriber of the
// mechanic. Dead connections are dropped on write failure.
func (h *Hub) BroadcastSlotEvent(mechanicID int64, start, end time.Time, event string) {
	msg := SlotEvent{MechanicID: mechanicID, Start: start, End: end, Event: event}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.subscribers[mechanicID]))
	for conn := range h.subscribers[mechanicID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(msg); err != nil {
			h.Unsubscribe(mechanicID, conn)
		}
	}
}

func (h *Hub) SubscriberCount(mechanicID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[mechanicID])
}
