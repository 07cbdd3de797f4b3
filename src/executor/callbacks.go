package executor

import (
	"github.com/isasumer/character-chat-app/src/storage"
)

// Callbacks holds optional callback functions for one message send. Every
// lifecycle transition has its own hook so a renderer can show typing
// indicators, live-growing text, and the settled turn.
type Callbacks struct {
	// OnUserMessageSent fires once the user's turn is durably persisted.
	OnUserMessageSent func(message *storage.Message)

	// OnTypingStart and OnTypingEnd bracket the cosmetic typing phase.
	OnTypingStart func()
	OnTypingEnd   func()

	// OnStreamStart fires just before the relay stream is opened.
	OnStreamStart func()

	// OnStreamChunk fires per fragment with the delta, not the cumulative
	// text, so a renderer appends rather than replaces.
	OnStreamChunk func(content string)

	// OnStreamComplete fires once with the persisted assistant turn.
	OnStreamComplete func(message *storage.Message)

	// OnError fires with a human-readable message on any failure.
	OnError func(message string)

	// OnFinally always fires exactly once per send, success or failure.
	OnFinally func()
}

func (c *Callbacks) userMessageSent(message *storage.Message) {
	if c != nil && c.OnUserMessageSent != nil {
		c.OnUserMessageSent(message)
	}
}

func (c *Callbacks) typingStart() {
	if c != nil && c.OnTypingStart != nil {
		c.OnTypingStart()
	}
}

func (c *Callbacks) typingEnd() {
	if c != nil && c.OnTypingEnd != nil {
		c.OnTypingEnd()
	}
}

func (c *Callbacks) streamStart() {
	if c != nil && c.OnStreamStart != nil {
		c.OnStreamStart()
	}
}

func (c *Callbacks) streamChunk(content string) {
	if c != nil && c.OnStreamChunk != nil {
		c.OnStreamChunk(content)
	}
}

func (c *Callbacks) streamComplete(message *storage.Message) {
	if c != nil && c.OnStreamComplete != nil {
		c.OnStreamComplete(message)
	}
}

func (c *Callbacks) fail(message string) {
	if c != nil && c.OnError != nil {
		c.OnError(message)
	}
}

func (c *Callbacks) finally() {
	if c != nil && c.OnFinally != nil {
		c.OnFinally()
	}
}
