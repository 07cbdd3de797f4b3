package storage

import (
	"context"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"
)

// ErrEmptyContent rejects message writes with no text. Persisted turns are
// never empty.
var ErrEmptyContent = errors.New("message content must not be empty")

// GetMessagesBySessionID retrieves all messages for a session ordered by creation time
func GetMessagesBySessionID(ctx context.Context, db sqlscan.Querier, sessionID string) ([]Message, error) {
	query := `SELECT id, chat_session_id, role, content, created_at FROM messages WHERE chat_session_id = ? ORDER BY created_at, id`
	var messages []Message
	if err := sqlscan.Select(ctx, db, &messages, query, sessionID); err != nil {
		return nil, err
	}
	return messages, nil
}

// CreateMessage creates a new message in the database
func CreateMessage(ctx context.Context, db Execer, message *Message) error {
	if message.Content == "" {
		return ErrEmptyContent
	}
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO messages (id, chat_session_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, message.ID, message.ChatSessionID, message.Role, message.Content, message.CreatedAt)
	return err
}
