package groqclient

import (
	"context"

	"github.com/isasumer/character-chat-app/src/aisdk"
)

var _ aisdk.ModelClient = (*ModelClient)(nil)

// ModelClient represents a client bound to a specific model
type ModelClient struct {
	client *Client
	model  *aisdk.ModelInfo
}

// Model creates a ModelClient bound to the specified model. The model name
// is taken on trust; Groq rejects unknown models at request time.
func (c *Client) Model(ctx context.Context, modelName string) (aisdk.ModelClient, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	return &ModelClient{
		client: c,
		model:  &aisdk.ModelInfo{ID: modelName},
	}, nil
}

// CreateChatCompletion creates a chat completion with the bound model
func (mc *ModelClient) CreateChatCompletion(ctx context.Context, req *aisdk.ChatCompletionRequest) (*aisdk.ChatCompletionResponse, error) {
	req.Model = mc.model.ID
	return mc.client.createChatCompletion(ctx, req)
}

// CreateChatCompletionStream creates a streaming chat completion with the bound model
func (mc *ModelClient) CreateChatCompletionStream(ctx context.Context, req *aisdk.ChatCompletionRequest) (aisdk.StreamInterface, error) {
	req.Model = mc.model.ID
	return mc.client.createChatCompletionStream(ctx, req)
}

// GetModelInfo returns the model information
func (mc *ModelClient) GetModelInfo() *aisdk.ModelInfo {
	return mc.model
}
