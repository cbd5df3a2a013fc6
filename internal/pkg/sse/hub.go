package sse

import (
	"sync"
)

// Event is a server-sent event addressed to a single recipient. RecipientID is
// an employee ID or the literal "admin".
type Event struct {
	RecipientID string
	Event       string
	Data        interface{}
}

// Hub manages SSE subscribers and event broadcasting.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new SSE Hub instance.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber for a recipient and returns the event
// channel and a cleanup function the caller must invoke on disconnect.
func (h *Hub) Subscribe(recipientID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[recipientID] == nil {
		h.subscribers[recipientID] = make(map[chan Event]struct{})
	}
	h.subscribers[recipientID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[recipientID], ch)
		close(ch)
		if len(h.subscribers[recipientID]) == 0 {
			delete(h.subscribers, recipientID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of a specific recipient.
func (h *Hub) Publish(recipientID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[recipientID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
				// Skip if channel is full (non-blocking to prevent deadlock)
			}
		}
	}
}

// PublishToMany sends an event to multiple recipients.
func (h *Hub) PublishToMany(recipientIDs []string, event Event) {
	for _, id := range recipientIDs {
		eventCopy := event
		eventCopy.RecipientID = id
		h.Publish(id, eventCopy)
	}
}

// SubscriberCount returns the number of active subscribers for a recipient.
func (h *Hub) SubscriberCount(recipientID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[recipientID]; ok {
		return len(subs)
	}
	return 0
}

// TotalSubscribers returns the total number of active subscribers.
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
