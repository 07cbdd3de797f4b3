// Package executor sequences the durable-append / stream / durable-append
// protocol for one user-submitted message.
package executor

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/isasumer/character-chat-app/src/realtime"
	"github.com/isasumer/character-chat-app/src/relayclient"
	"github.com/isasumer/character-chat-app/src/storage"
)

// Service coordinates message sends against the durable store and the relay.
type Service struct {
	database    *sql.DB
	relay       *relayclient.Client
	hub         *realtime.Hub
	logger      *slog.Logger
	typingDelay time.Duration

	// sending guards against overlapping sends on one instance.
	sending chan struct{}
}

// ServiceConfig holds configuration for creating a new Service
type ServiceConfig struct {
	Database *sql.DB
	Relay    *relayclient.Client

	// Hub receives insert notifications for turns this service persists.
	// Optional.
	Hub *realtime.Hub

	// TypingDelay is the cosmetic pause before streaming starts.
	TypingDelay time.Duration

	Logger *slog.Logger
}

// NewService creates a new message send service
func NewService(config ServiceConfig) *Service {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	s := &Service{
		database:    config.Database,
		relay:       config.Relay,
		hub:         config.Hub,
		logger:      config.Logger.With("component", "executor"),
		typingDelay: config.TypingDelay,
		sending:     make(chan struct{}, 1),
	}
	s.sending <- struct{}{}
	return s
}

// GetOrCreateSession returns the session by ID, or creates a fresh one for
// the user/character pair when sessionID is empty.
func (s *Service) GetOrCreateSession(ctx context.Context, sessionID, userID, characterID string) (*storage.ChatSession, error) {
	if sessionID != "" {
		session, err := storage.GetChatSessionByID(ctx, s.database, sessionID)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
		}
		return session, nil
	}

	session := &storage.ChatSession{
		UserID:      userID,
		CharacterID: characterID,
	}
	if err := storage.CreateChatSession(ctx, s.database, session); err != nil {
		return nil, err
	}
	return session, nil
}

// BuildConversationHistory reads the session's persisted turns formatted for
// the relay. The relay applies the bounded context window; the full history
// is sent as-is.
func (s *Service) BuildConversationHistory(ctx context.Context, sessionID string) ([]relayclient.HistoryTurn, error) {
	messages, err := storage.GetMessagesBySessionID(ctx, s.database, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	history := make([]relayclient.HistoryTurn, len(messages))
	for i, m := range messages {
		history[i] = relayclient.HistoryTurn{Role: m.Role, Content: m.Content}
	}
	return history, nil
}

// publish notifies hub subscribers of a persisted turn.
func (s *Service) publish(message *storage.Message) {
	if s.hub != nil && message != nil {
		s.hub.Publish(*message)
	}
}
