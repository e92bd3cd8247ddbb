// Package status projects the agent's internal activity to external
// observers: the presentation layer, the websocket feed, and tests.
//
// Observers subscribe explicitly and get an unsubscribe handle back;
// registering twice yields two independent subscriptions instead of
// silently replacing the first. The hub also keeps a short ring of recent
// events so a late subscriber can render current state immediately.
package status

import (
	"sync"
	"time"
)

// ringSize bounds the recent-event backlog.
const ringSize = 50

// subBuffer bounds each subscriber's channel; a slow subscriber loses
// events rather than stalling the agent.
const subBuffer = 16

// EventKind classifies a status event.
type EventKind string

const (
	// EventState reports a session-controller state change.
	EventState EventKind = "state"

	// EventPartial carries an advisory partial hypothesis.
	EventPartial EventKind = "partial"

	// EventFinal carries the final transcript of a turn.
	EventFinal EventKind = "final"

	// EventReply carries a phrase pushed to the response sink.
	EventReply EventKind = "reply"

	// EventError reports a recognition or handler error.
	EventError EventKind = "error"

	// EventModel reports a model-acquisition state change.
	EventModel EventKind = "model"

	// EventDownload carries download progress.
	EventDownload EventKind = "download"
)

// Event is one observable moment of agent activity.
type Event struct {
	Kind EventKind `json:"kind"`
	Text string    `json:"text,omitempty"`
	At   time.Time `json:"at"`
}

// Hub fans events out to subscribers. Safe for concurrent use.
type Hub struct {
	now func() time.Time

	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
	ring   []Event
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{
		now:  time.Now,
		subs: make(map[int]chan Event),
	}
}

// Publish stamps e (when At is zero) and delivers it to all subscribers.
// Delivery is non-blocking; a subscriber whose buffer is full misses the
// event.
func (h *Hub) Publish(e Event) {
	if e.At.IsZero() {
		e.At = h.now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.ring = append(h.ring, e)
	if len(h.ring) > ringSize {
		h.ring = h.ring[len(h.ring)-ringSize:]
	}

	for _, ch := range h.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe registers a new observer and returns its event channel plus an
// unsubscribe function. The unsubscribe function is idempotent and closes
// the channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	ch := make(chan Event, subBuffer)
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, unsubscribe
}

// Recent returns a copy of the backlog, oldest first.
func (h *Hub) Recent() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Event, len(h.ring))
	copy(out, h.ring)
	return out
}

// SubscriberCount reports the number of active subscriptions.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
