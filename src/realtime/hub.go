// Package realtime provides an in-process publish/subscribe channel for
// message inserts, keyed by chat session, plus the duplicate-detection rule
// consumers apply when they observe both their own append and the push
// notification for the same row.
package realtime

import (
	"log/slog"
	"sync"

	"github.com/isasumer/character-chat-app/src/storage"
)

// subscriberBuffer bounds each subscriber channel. A subscriber that falls
// this far behind starts losing notifications rather than blocking writers.
const subscriberBuffer = 16

// Hub fans out message-insert notifications to per-session subscribers.
// Safe for concurrent use.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]map[int]chan storage.Message
	nextID int
	logger *slog.Logger
}

// NewHub creates a new hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subs:   make(map[string]map[int]chan storage.Message),
		logger: logger.With("component", "realtime_hub"),
	}
}

// Subscribe registers a listener for inserts on the given session. The
// returned cancel func must be called exactly once; it closes the channel.
func (h *Hub) Subscribe(sessionID string) (<-chan storage.Message, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan storage.Message, subscriberBuffer)
	id := h.nextID
	h.nextID++

	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[int]chan storage.Message)
	}
	h.subs[sessionID][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if listeners, ok := h.subs[sessionID]; ok {
			if c, ok := listeners[id]; ok {
				delete(listeners, id)
				close(c)
			}
			if len(listeners) == 0 {
				delete(h.subs, sessionID)
			}
		}
	}

	return ch, cancel
}

// Publish notifies every subscriber of the message's session. Slow
// subscribers are skipped, never blocked on.
func (h *Hub) Publish(message storage.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs[message.ChatSessionID] {
		select {
		case ch <- message:
		default:
			h.logger.Warn("dropping notification for slow subscriber",
				"session_id", message.ChatSessionID, "message_id", message.ID)
		}
	}
}
