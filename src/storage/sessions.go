package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"
)

// GetChatSessionByID retrieves a chat session by its ID
func GetChatSessionByID(ctx context.Context, db sqlscan.Querier, sessionID string) (*ChatSession, error) {
	query := `SELECT id, user_id, character_id, title, created_at, updated_at FROM chat_sessions WHERE id = ?`
	var s ChatSession
	err := sqlscan.Get(ctx, db, &s, query, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, err
	}
	return &s, nil
}

// ListChatSessionsByUser retrieves a user's sessions, most recently active first
func ListChatSessionsByUser(ctx context.Context, db sqlscan.Querier, userID string) ([]ChatSession, error) {
	query := `SELECT id, user_id, character_id, title, created_at, updated_at FROM chat_sessions WHERE user_id = ? ORDER BY updated_at DESC`
	var sessions []ChatSession
	if err := sqlscan.Select(ctx, db, &sessions, query, userID); err != nil {
		return nil, err
	}
	return sessions, nil
}

// CreateChatSession creates a new chat session in the database
func CreateChatSession(ctx context.Context, db Execer, session *ChatSession) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = session.CreatedAt
	}

	query := `INSERT INTO chat_sessions (id, user_id, character_id, title, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, session.ID, session.UserID, session.CharacterID, session.Title, session.CreatedAt, session.UpdatedAt)
	return err
}

// TouchChatSession bumps the session's last-activity timestamp
func TouchChatSession(ctx context.Context, db Execer, sessionID string) error {
	query := `UPDATE chat_sessions SET updated_at = ? WHERE id = ?`
	_, err := db.ExecContext(ctx, query, time.Now().UTC(), sessionID)
	return err
}
