package groqclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/isasumer/character-chat-app/src/aisdk"
)

// ModelsResponse represents the response from the Groq models API
type ModelsResponse struct {
	Data []*aisdk.ModelInfo `json:"data"`
}

// ListModels returns all available models
func (c *Client) ListModels(ctx context.Context) ([]*aisdk.ModelInfo, error) {
	httpReq, err := c.newRequest(ctx, "GET", "/models", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleError(resp)
	}

	var modelsResp ModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&modelsResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return modelsResp.Data, nil
}

// GetModels implements aisdk.Provider.GetModels
func (c *Client) GetModels(ctx context.Context) ([]*aisdk.ModelInfo, error) {
	return c.ListModels(ctx)
}
