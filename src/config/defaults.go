package config

// Default values for the completion provider, mirroring the stock chat
// behavior: llama-3.3-70b-versatile at temperature 0.7, 1024 token cap,
// last 10 turns of context.
const (
	DefaultProvider     = "groq"
	DefaultModel        = "llama-3.3-70b-versatile"
	DefaultTemperature  = 0.7
	DefaultMaxTokens    = 1024
	DefaultAddr         = ":8080"
	DefaultHistoryLimit = 10
	DefaultTypingDelay  = 500
)

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		API: APIConfig{
			Provider:    DefaultProvider,
			Model:       DefaultModel,
			Temperature: DefaultTemperature,
			MaxTokens:   DefaultMaxTokens,
		},
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
		Chat: ChatConfig{
			HistoryLimit:  DefaultHistoryLimit,
			TypingDelayMS: DefaultTypingDelay,
		},
	}
}
