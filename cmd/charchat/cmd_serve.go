package main

import (
	"context"

	"github.com/isasumer/character-chat-app/src/aisdk"
	"github.com/isasumer/character-chat-app/src/app"
	"github.com/isasumer/character-chat-app/src/server"
)

// ServeCmd runs the HTTP relay server
type ServeCmd struct {
	Addr  string `help:"Listen address (overrides config)"`
	Model string `short:"m" help:"Completion model (overrides config)"`
}

func (s *ServeCmd) Run(cli *CLI) error {
	logger := createCLILogger(cli.LogLevel)

	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}
	if s.Model != "" {
		cfg.API.Model = s.Model
	}

	ctx := context.Background()
	appInstance, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer appInstance.Close()

	// Without an API key the relay still serves the REST surface and
	// answers /chat with a configuration error.
	var model aisdk.ModelClient
	if cfg.API.APIKey != "" {
		model, err = appInstance.Provider.Model(ctx, cfg.API.Model)
		if err != nil {
			return err
		}
	} else {
		logger.Warn("no API key configured, /chat will reject requests")
	}

	srv := server.New(server.Options{
		Store:        appInstance.Store,
		Hub:          appInstance.Hub,
		Model:        model,
		HistoryLimit: cfg.Chat.HistoryLimit,
		Temperature:  cfg.API.Temperature,
		MaxTokens:    cfg.API.MaxTokens,
		Logger:       logger,
	})

	return srv.Run(cfg.Server.Addr)
}
