// Package app wires the application services together: storage, the
// completion provider, the live update hub, and logging.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/isasumer/character-chat-app/src/config"
	"github.com/isasumer/character-chat-app/src/groqclient"
	"github.com/isasumer/character-chat-app/src/realtime"
	"github.com/isasumer/character-chat-app/src/storage"
)

// App represents the main application with all services
type App struct {
	Provider *groqclient.Client
	Store    *storage.DB
	Hub      *realtime.Hub
	Logger   *slog.Logger
	Config   *config.Config
}

// New creates a new App instance with all services initialized
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	// Initialize storage
	dbPath := config.GetDefaultStoragePaths().DatabasePath
	if cfg.Data.Directory != "" {
		dbPath = filepath.Join(cfg.Data.Directory, "chat.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	// Initialize the completion provider
	provider := groqclient.NewClient(groqclient.Config{
		APIKey:  cfg.API.APIKey,
		BaseURL: cfg.API.BaseURL,
		Logger:  logger,
	})

	return &App{
		Provider: provider,
		Store:    store,
		Hub:      realtime.NewHub(logger),
		Logger:   logger,
		Config:   cfg,
	}, nil
}

// Close closes all resources held by the app
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
