package main

import (
	"github.com/isasumer/character-chat-app/src/config"
)

// loadConfig loads configuration and applies CLI flag overrides
func loadConfig(cli *CLI) (*config.Config, error) {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		return nil, err
	}

	if cli.APIKey != "" {
		cfg.API.APIKey = cli.APIKey
	}
	if cli.BaseURL != "" {
		cfg.API.BaseURL = cli.BaseURL
	}

	return cfg, nil
}
