package chatstream

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrNoResponse is returned when a stream ends with no content and no error.
var ErrNoResponse = errors.New("No response from AI")

// Callbacks holds optional callback functions invoked while decoding.
type Callbacks struct {
	// OnChunk is called with each fragment's delta (not the cumulative text).
	OnChunk func(content string)

	// OnComplete is called once with the full message on success.
	OnComplete func(fullMessage string)

	// OnError is called with the failure message before ReadStream returns
	// an error.
	OnError func(message string)

	// Logger used for skipped malformed lines. Defaults to slog.Default.
	Logger *slog.Logger
}

func (c *Callbacks) chunk(content string) {
	if c != nil && c.OnChunk != nil {
		c.OnChunk(content)
	}
}

func (c *Callbacks) complete(fullMessage string) {
	if c != nil && c.OnComplete != nil {
		c.OnComplete(fullMessage)
	}
}

func (c *Callbacks) fail(message string) {
	if c != nil && c.OnError != nil {
		c.OnError(message)
	}
}

func (c *Callbacks) logger() *slog.Logger {
	if c != nil && c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// ReadStream decodes an SSE-framed event stream and returns the full
// reconstructed message. Bytes are consumed incrementally; chunk boundaries
// in the underlying reader never split an observable event because lines are
// assembled byte-wise before decoding.
//
// An error event fails the read immediately. A terminal Done event is
// authoritative: its FullMessage is returned (falling back to the
// accumulated fragments when empty) and decoding stops even if bytes remain.
// A stream that ends with no content and no error fails with ErrNoResponse.
func ReadStream(r io.Reader, cb *Callbacks) (string, error) {
	reader := bufio.NewReader(r)
	var full strings.Builder

	for {
		line, err := reader.ReadString('\n')

		if trimmed := strings.TrimSpace(line); strings.HasPrefix(trimmed, DataPrefix) {
			payload := strings.TrimPrefix(trimmed, DataPrefix)

			var event StreamEvent
			if jsonErr := json.Unmarshal([]byte(payload), &event); jsonErr != nil {
				cb.logger().Warn("skipping malformed stream line", "error", jsonErr)
			} else {
				if event.Error != "" {
					cb.fail(event.Error)
					return "", fmt.Errorf("stream error: %s", event.Error)
				}

				if event.Done {
					message := event.FullMessage
					if message == "" {
						message = full.String()
					}
					if message == "" {
						cb.fail(ErrNoResponse.Error())
						return "", ErrNoResponse
					}
					cb.complete(message)
					return message, nil
				}

				if event.Content != "" {
					full.WriteString(event.Content)
					cb.chunk(event.Content)
				}
			}
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				cb.fail(err.Error())
				return "", fmt.Errorf("failed to read stream: %w", err)
			}
			break
		}
	}

	// Physical end of stream without a terminal event. The accumulated
	// fragments still count as a response.
	if full.Len() == 0 {
		cb.fail(ErrNoResponse.Error())
		return "", ErrNoResponse
	}

	message := full.String()
	cb.complete(message)
	return message, nil
}
