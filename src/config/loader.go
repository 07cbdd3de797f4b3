package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/afero"
)

// Loader handles loading and merging configuration from defaults, an
// optional user config file, and environment variables.
type Loader struct {
	fs        afero.Fs
	path      string
	validator *Validator
}

// NewLoader creates a loader reading the default user config path.
func NewLoader() *Loader {
	return NewLoaderWithFs(afero.NewOsFs(), GetDefaultConfigPath())
}

// NewLoaderWithFs creates a loader on an explicit filesystem and path.
// Tests use an in-memory fs.
func NewLoaderWithFs(fs afero.Fs, path string) *Loader {
	return &Loader{
		fs:        fs,
		path:      path,
		validator: NewValidator(),
	}
}

// Load loads configuration from all sources and merges them
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	if l.path != "" {
		if fileCfg, err := l.loadFile(l.path); err == nil {
			mergeConfig(config, fileCfg)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config from %s: %w", l.path, err)
		}
	}

	applyEnvironmentOverrides(config)

	if err := l.validator.Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFile loads a single configuration file
func (l *Loader) loadFile(path string) (*Config, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &config, nil
}

// mergeConfig overlays non-zero fields of src onto dst
func mergeConfig(dst, src *Config) {
	if src.Version != "" {
		dst.Version = src.Version
	}
	if src.API.Provider != "" {
		dst.API.Provider = src.API.Provider
	}
	if src.API.APIKey != "" {
		dst.API.APIKey = src.API.APIKey
	}
	if src.API.BaseURL != "" {
		dst.API.BaseURL = src.API.BaseURL
	}
	if src.API.Model != "" {
		dst.API.Model = src.API.Model
	}
	if src.API.Temperature != 0 {
		dst.API.Temperature = src.API.Temperature
	}
	if src.API.MaxTokens != 0 {
		dst.API.MaxTokens = src.API.MaxTokens
	}
	if src.Server.Addr != "" {
		dst.Server.Addr = src.Server.Addr
	}
	if src.Chat.HistoryLimit != 0 {
		dst.Chat.HistoryLimit = src.Chat.HistoryLimit
	}
	if src.Chat.TypingDelayMS != 0 {
		dst.Chat.TypingDelayMS = src.Chat.TypingDelayMS
	}
	if src.Data.Directory != "" {
		dst.Data.Directory = src.Data.Directory
	}
}

// applyEnvironmentOverrides applies environment variable overrides
func applyEnvironmentOverrides(config *Config) {
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		config.API.APIKey = v
	}
	if v := os.Getenv("CHARCHAT_BASE_URL"); v != "" {
		config.API.BaseURL = v
	}
	if v := os.Getenv("CHARCHAT_MODEL"); v != "" {
		config.API.Model = v
	}
	if v := os.Getenv("CHARCHAT_ADDR"); v != "" {
		config.Server.Addr = v
	}
	if v := os.Getenv("CHARCHAT_DATA_DIR"); v != "" {
		config.Data.Directory = v
	}
	if v := os.Getenv("CHARCHAT_HISTORY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Chat.HistoryLimit = n
		}
	}
}
