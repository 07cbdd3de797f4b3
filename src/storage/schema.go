package storage

import "time"

// Character is a persona record: display metadata plus the system prompt
// sent with every completion call.
type Character struct {
	ID                string    `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	AvatarURL         *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	Description       string    `json:"description" db:"description"`
	Personality       *string   `json:"personality,omitempty" db:"personality"`
	SystemPrompt      string    `json:"system_prompt" db:"system_prompt"`
	ConversationStyle *string   `json:"conversation_style,omitempty" db:"conversation_style"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// ChatSession binds one user to one character. UpdatedAt is bumped whenever
// an assistant turn lands.
type ChatSession struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	CharacterID string    `json:"character_id" db:"character_id"`
	Title       *string   `json:"title,omitempty" db:"title"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Message is one persisted conversation turn. Immutable once written.
type Message struct {
	ID            string    `json:"id" db:"id"`
	ChatSessionID string    `json:"chat_session_id" db:"chat_session_id"`
	Role          string    `json:"role" db:"role"`
	Content       string    `json:"content" db:"content"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
