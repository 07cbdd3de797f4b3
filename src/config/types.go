// Package config loads and validates application configuration from
// defaults, an optional JSON config file, and environment overrides.
package config

// Config represents the complete configuration for charchat
type Config struct {
	// Version of the configuration format
	Version string `json:"version"`

	// API configuration for the completion provider
	API APIConfig `json:"api"`

	// Server configuration for the relay endpoint
	Server ServerConfig `json:"server"`

	// Chat behavior configuration
	Chat ChatConfig `json:"chat"`

	// Data directory configuration
	Data DataConfig `json:"data,omitempty"`
}

// APIConfig holds completion provider settings
type APIConfig struct {
	// Provider name; only the Groq OpenAI-compatible API is supported
	Provider string `json:"provider" validate:"omitempty,provider"`

	// APIKey authenticates against the provider. Usually supplied via
	// the GROQ_API_KEY environment variable rather than the config file.
	APIKey string `json:"api_key,omitempty"`

	// BaseURL overrides the provider endpoint (testing, proxies)
	BaseURL string `json:"base_url,omitempty" validate:"omitempty,url"`

	// Model is the completion model identifier
	Model string `json:"model" validate:"required"`

	// Temperature for completion sampling
	Temperature float64 `json:"temperature" validate:"gte=0,lte=2"`

	// MaxTokens caps the completion length
	MaxTokens int `json:"max_tokens" validate:"gt=0"`
}

// ServerConfig holds relay server settings
type ServerConfig struct {
	// Addr is the listen address for the HTTP server
	Addr string `json:"addr" validate:"required"`
}

// ChatConfig holds conversation behavior settings
type ChatConfig struct {
	// HistoryLimit is the bounded context window: the maximum number of
	// prior turns forwarded to the provider per call
	HistoryLimit int `json:"history_limit" validate:"gt=0"`

	// TypingDelayMS is the cosmetic typing-indicator delay before
	// streaming starts, in milliseconds
	TypingDelayMS int `json:"typing_delay_ms" validate:"gte=0"`
}

// DataConfig holds storage location settings
type DataConfig struct {
	// Directory holds the sqlite database; defaults to the XDG state dir
	Directory string `json:"directory,omitempty"`
}
