package main

import (
	"context"
	"fmt"
	"time"

	"github.com/isasumer/character-chat-app/src/app"
	"github.com/isasumer/character-chat-app/src/executor"
	"github.com/isasumer/character-chat-app/src/relayclient"
	"github.com/isasumer/character-chat-app/src/storage"
	"github.com/isasumer/character-chat-app/src/tui"
)

// ChatCmd runs the interactive terminal chat against a running relay
type ChatCmd struct {
	Character string `arg:"" optional:"" default:"Luna" help:"Character to chat with"`
	Relay     string `default:"http://localhost:8080" help:"Base URL of the chat relay"`
	User      string `default:"local" help:"User ID for the session"`
	SessionID string `help:"Resume a specific session by ID"`
}

func (c *ChatCmd) Run(cli *CLI) error {
	// Log to a file so the alternate screen stays clean.
	logger := createChatLogger(cli.LogLevel)

	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	ctx := context.Background()
	appInstance, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer appInstance.Close()

	character, err := storage.GetCharacterByName(ctx, appInstance.Store.DB(), c.Character)
	if err != nil {
		return err
	}
	if character == nil {
		return fmt.Errorf("character %q not found, run `charchat seed` first", c.Character)
	}

	service := executor.NewService(executor.ServiceConfig{
		Database:    appInstance.Store.DB(),
		Relay:       relayclient.New(c.Relay),
		Hub:         appInstance.Hub,
		TypingDelay: time.Duration(cfg.Chat.TypingDelayMS) * time.Millisecond,
		Logger:      logger,
	})

	session, err := service.GetOrCreateSession(ctx, c.SessionID, c.User, character.ID)
	if err != nil {
		return err
	}

	history, err := storage.GetMessagesBySessionID(ctx, appInstance.Store.DB(), session.ID)
	if err != nil {
		return err
	}

	return tui.Run(tui.Options{
		Service:   service,
		Character: character,
		Session:   session,
		History:   history,
	})
}
