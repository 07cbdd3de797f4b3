// Package chatstream defines the wire contract between the chat relay
// endpoint and its clients: JSON events framed as SSE "data:" lines, and an
// incremental decoder for the client side.
package chatstream

import (
	"encoding/json"
	"fmt"
	"io"
)

// DataPrefix is the line prefix carrying one event payload.
const DataPrefix = "data: "

// StreamEvent is one event on the relay channel. Exactly one terminal-class
// event (Done or Error set) ends a stream; zero or more fragment events
// precede it.
type StreamEvent struct {
	// Content carries one incremental text delta for fragment events.
	Content string `json:"content,omitempty"`

	// Error carries a human-readable failure message. An error event is
	// terminal.
	Error string `json:"error,omitempty"`

	// Done marks the terminal event. Always serialized so fragment events
	// carry an explicit "done":false.
	Done bool `json:"done"`

	// FullMessage carries the complete concatenated text on the terminal
	// event and is authoritative once observed.
	FullMessage string `json:"fullMessage,omitempty"`
}

// IsTerminal reports whether this event ends the stream.
func (e StreamEvent) IsTerminal() bool {
	return e.Done || e.Error != ""
}

// Fragment builds a fragment event carrying one text delta.
func Fragment(delta string) StreamEvent {
	return StreamEvent{Content: delta}
}

// Terminal builds the success terminal event carrying the full text.
func Terminal(fullMessage string) StreamEvent {
	return StreamEvent{Done: true, FullMessage: fullMessage}
}

// Failure builds a terminal error event.
func Failure(message string) StreamEvent {
	return StreamEvent{Error: message, Done: true}
}

// WriteEvent writes one event in SSE framing: "data: <json>\n\n".
func WriteEvent(w io.Writer, event StreamEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal stream event: %w", err)
	}
	if _, err := fmt.Fprintf(w, "%s%s\n\n", DataPrefix, payload); err != nil {
		return fmt.Errorf("failed to write stream event: %w", err)
	}
	return nil
}
