package sse

import (
	"sync"
)

// Event names published on the session stream.
const (
	EventSessionUpdated  = "session.updated"
	EventSessionClosed   = "session.closed"
	EventPresenceChanged = "presence.changed"
)

// Event is one message on a team's live-dashboard stream.
type Event struct {
	TeamID string
	Event  string
	Data   interface{}
}

// Hub fans session changes out to manager dashboards subscribed per
// team. Publishing never blocks; a slow consumer misses events and
// reconciles on its next full read.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a subscriber for a team and returns the event
// channel and a cleanup function.
func (h *Hub) Subscribe(teamID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 16)

	if h.subscribers[teamID] == nil {
		h.subscribers[teamID] = make(map[chan Event]struct{})
	}
	h.subscribers[teamID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[teamID], ch)
		close(ch)
		if len(h.subscribers[teamID]) == 0 {
			delete(h.subscribers, teamID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of a team.
func (h *Hub) Publish(teamID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[teamID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
				// Skip if channel is full (non-blocking to prevent deadlock)
			}
		}
	}
}

// SubscriberCount returns the number of active subscribers for a team.
func (h *Hub) SubscriberCount(teamID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[teamID]; ok {
		return len(subs)
	}
	return 0
}
