// Package event provides the in-process pub/sub hub connecting the
// canvas, the rulers, and the header panel. Publishers never know their
// subscribers; a subscription token is the only handle needed to
// unsubscribe.
package event

import (
	"sync"

	"github.com/google/uuid"
)

// Topic names one event stream.
type Topic string

// The streams published by the viewer.
const (
	// TopicSelection fires on every selection mutation.
	TopicSelection Topic = "selection"
	// TopicView fires when zoom or scroll changes the visible window.
	TopicView Topic = "view"
	// TopicSequences fires when rows are loaded or cleared.
	TopicSequences Topic = "sequences"
	// TopicPalette fires when the nucleotide palette is replaced.
	TopicPalette Topic = "palette"
)

// Event is one published notification.
type Event struct {
	Topic   Topic
	Payload any
}

// SelectionPayload describes the selection state after a mutation.
type SelectionPayload struct {
	RowStart int
	RowEnd   int
	StartCol int
	EndCol   int
	Active   bool
}

// ViewPayload describes the visible window after a zoom or scroll.
type ViewPayload struct {
	CharWidth float64
	ScrollPx  float64
	FirstCol  int
	LastCol   int
}

// Handler receives published events for one topic.
type Handler func(Event)

// Subscription is the token returned by Subscribe.
type Subscription struct {
	ID    uuid.UUID
	Topic Topic
}

// Hub routes events from publishers to topic subscribers.
type Hub struct {
	mu   sync.RWMutex
	subs map[Topic]map[uuid.UUID]Handler
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[Topic]map[uuid.UUID]Handler)}
}

// Subscribe registers a handler for a topic and returns its token.
func (h *Hub) Subscribe(topic Topic, fn Handler) Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.New()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[uuid.UUID]Handler)
	}
	h.subs[topic][id] = fn
	return Subscription{ID: id, Topic: topic}
}

// Unsubscribe removes a subscription. Unknown tokens are ignored.
func (h *Hub) Unsubscribe(sub Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if handlers, ok := h.subs[sub.Topic]; ok {
		delete(handlers, sub.ID)
	}
}

// Publish delivers an event to every subscriber of its topic. Handlers
// run synchronously on the publisher's goroutine, outside the hub lock
// so they may subscribe or unsubscribe freely.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	handlers := make([]Handler, 0, len(h.subs[ev.Topic]))
	for _, fn := range h.subs[ev.Topic] {
		handlers = append(handlers, fn)
	}
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(ev)
	}
}

// Subscribers returns the number of handlers on a topic.
func (h *Hub) Subscribers(topic Topic) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}
