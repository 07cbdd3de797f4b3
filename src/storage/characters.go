package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"
)

// GetCharacterByID retrieves a character by its ID
func GetCharacterByID(ctx context.Context, db sqlscan.Querier, characterID string) (*Character, error) {
	query := `SELECT id, name, avatar_url, description, personality, system_prompt, conversation_style, created_at FROM characters WHERE id = ?`
	var c Character
	err := sqlscan.Get(ctx, db, &c, query, characterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, err
	}
	return &c, nil
}

// ListCharacters retrieves all characters ordered by name
func ListCharacters(ctx context.Context, db sqlscan.Querier) ([]Character, error) {
	query := `SELECT id, name, avatar_url, description, personality, system_prompt, conversation_style, created_at FROM characters ORDER BY name`
	var characters []Character
	if err := sqlscan.Select(ctx, db, &characters, query); err != nil {
		return nil, err
	}
	return characters, nil
}

// GetCharacterByName retrieves a character by its display name
func GetCharacterByName(ctx context.Context, db sqlscan.Querier, name string) (*Character, error) {
	query := `SELECT id, name, avatar_url, description, personality, system_prompt, conversation_style, created_at FROM characters WHERE name = ?`
	var c Character
	err := sqlscan.Get(ctx, db, &c, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// CreateCharacter creates a new character in the database
func CreateCharacter(ctx context.Context, db Execer, character *Character) error {
	if character.ID == "" {
		character.ID = uuid.New().String()
	}
	if character.CreatedAt.IsZero() {
		character.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO characters (id, name, avatar_url, description, personality, system_prompt, conversation_style, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query,
		character.ID,
		character.Name,
		character.AvatarURL,
		character.Description,
		character.Personality,
		character.SystemPrompt,
		character.ConversationStyle,
		character.CreatedAt,
	)
	return err
}
