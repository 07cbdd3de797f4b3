// Package relayclient is the HTTP client for the chat relay endpoint.
package relayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HistoryTurn is one prior turn sent to the relay.
type HistoryTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	SessionID           string        `json:"sessionId"`
	Message             string        `json:"message"`
	CharacterPrompt     string        `json:"characterPrompt"`
	ConversationHistory []HistoryTurn `json:"conversationHistory"`
}

// Client posts chat requests to a running relay.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a relay client for the given base URL. The underlying HTTP
// client carries no timeout; streaming responses are long-lived.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// SendChatMessage posts one conversation turn and returns the streaming
// response body. The caller owns closing it. A non-2xx response is decoded
// into an error; no stream is returned in that case.
func (c *Client) SendChatMessage(ctx context.Context, req *ChatRequest) (io.ReadCloser, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to reach relay: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(resp.Body)

		var errResp struct {
			Error string `json:"error"`
		}
		if jsonErr := json.Unmarshal(raw, &errResp); jsonErr == nil && errResp.Error != "" {
			return nil, fmt.Errorf("relay error (status %d): %s", resp.StatusCode, errResp.Error)
		}
		return nil, fmt.Errorf("failed to get AI response: %d %s", resp.StatusCode, resp.Status)
	}

	return resp.Body, nil
}
