// Package hub fans out change feed messages to websocket subscribers.
// Each topic is shared_evaluation_{sessionId}; a message published on a topic
// reaches every subscriber of that topic and nobody else.
package hub

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/iudanet/coachsync/pkg/api"
)

// DefaultBuffer размер очереди одного подписчика
const DefaultBuffer = 32

// Subscriber is one feed listener. C is closed when the subscriber is removed,
// either by Unsubscribe, by Close of the hub, or because it fell behind.
type Subscriber struct {
	C     <-chan api.FeedMessage
	ch    chan api.FeedMessage
	ID    string
	Topic string
}

// Hub is an in-process topic broadcaster
type Hub struct {
	topics map[string]map[string]*Subscriber
	logger *slog.Logger
	buffer int
	mu     sync.Mutex
	closed bool
}

// New creates a hub with per-subscriber queue of the given size
func New(buffer int, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		topics: make(map[string]map[string]*Subscriber),
		buffer: buffer,
		logger: logger,
	}
}

// Subscribe registers a listener on topic.
// On a closed hub the returned subscriber's channel is already closed.
func (h *Hub) Subscribe(topic string) *Subscriber {
	ch := make(chan api.FeedMessage, h.buffer)
	sub := &Subscriber{
		ID:    uuid.New().String(),
		Topic: topic,
		C:     ch,
		ch:    ch,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(ch)
		return sub
	}

	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[string]*Subscriber)
		h.topics[topic] = subs
	}
	subs[sub.ID] = sub

	h.logger.Debug("feed subscriber added", "topic", topic, "subscriber_id", sub.ID, "subscribers", len(subs))
	return sub
}

// Unsubscribe removes sub and closes its channel. Safe to call more than once.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(sub)
}

// Publish delivers msg to every subscriber of topic without blocking.
// Subscribers whose queue is full are dropped. Returns the number of
// subscribers that received the message.
func (h *Hub) Publish(topic string, msg api.FeedMessage) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for _, sub := range h.topics[topic] {
		select {
		case sub.ch <- msg:
			delivered++
		default:
			h.logger.Warn("dropping slow feed subscriber", "topic", topic, "subscriber_id", sub.ID)
			h.removeLocked(sub)
		}
	}

	return delivered
}

// Subscribers returns the number of listeners on topic
func (h *Hub) Subscribers(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[topic])
}

// Stats returns the number of topics with listeners and the total number of listeners
func (h *Hub) Stats() (topics, subscribers int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, subs := range h.topics {
		subscribers += len(subs)
	}
	return len(h.topics), subscribers
}

// Close removes all subscribers. Later Subscribe calls get closed channels.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for _, subs := range h.topics {
		for _, sub := range subs {
			close(sub.ch)
		}
	}
	h.topics = make(map[string]map[string]*Subscriber)
}

func (h *Hub) removeLocked(sub *Subscriber) {
	subs, ok := h.topics[sub.Topic]
	if !ok {
		return
	}
	if _, ok := subs[sub.ID]; !ok {
		return
	}

	delete(subs, sub.ID)
	close(sub.ch)
	if len(subs) == 0 {
		delete(h.topics, sub.Topic)
	}
}
