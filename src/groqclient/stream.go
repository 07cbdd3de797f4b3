package groqclient

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/isasumer/character-chat-app/src/aisdk"
)

// createChatCompletionStream opens a streaming chat completion request.
// Exactly one upstream attempt is made; callers own retry policy.
func (c *Client) createChatCompletionStream(ctx context.Context, req *aisdk.ChatCompletionRequest) (aisdk.StreamInterface, error) {
	logger := c.logger.With("method", "CreateChatCompletionStream", "model", req.Model)
	logger.Debug("opening chat completion stream")

	req.Stream = true

	body, err := json.Marshal(req)
	if err != nil {
		logger.Error("failed to marshal request", "error", err)
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := c.newRequest(ctx, "POST", "/chat/completions", body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Cache-Control", "no-cache")

	resp, err := c.streamClient.Do(httpReq)
	if err != nil {
		logger.Error("stream request failed", "error", err)
		return nil, fmt.Errorf("stream request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		logger.Error("received error response", "status_code", resp.StatusCode)
		return nil, c.handleError(resp)
	}

	return &completionStream{
		body:   resp.Body,
		reader: bufio.NewReader(resp.Body),
		logger: logger,
	}, nil
}

// completionStream reads OpenAI-style SSE chunks from the response body.
type completionStream struct {
	body   io.ReadCloser
	reader *bufio.Reader
	logger *slog.Logger
	closed bool
}

var _ aisdk.StreamInterface = (*completionStream)(nil)

// Read returns the next chunk, or io.EOF after the [DONE] sentinel or
// physical end of stream.
func (s *completionStream) Read() (*aisdk.StreamChunk, error) {
	if s.closed {
		return nil, ErrStreamClosed
	}

	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("failed to read stream: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" || !strings.HasPrefix(line, "data: ") {
			continue
		}

		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			return nil, io.EOF
		}

		var chunk aisdk.StreamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// Malformed lines are skipped, not fatal
			s.logger.Warn("skipping malformed stream line", "error", err)
			continue
		}

		return &chunk, nil
	}
}

// Close closes the underlying response body.
func (s *completionStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.body.Close()
}
