package realtime

import (
	"time"

	"github.com/isasumer/character-chat-app/src/storage"
)

// DefaultDuplicateWindow is how close in time two same-role, same-content
// messages must be to count as one logical turn.
const DefaultDuplicateWindow = 1000 * time.Millisecond

// IsDuplicateMessage reports whether newMessage is already represented in
// messages: either the same id, or the same role and content created within
// threshold of an existing entry. A consumer observing both a local append
// and the push notification of the same row keeps exactly one.
func IsDuplicateMessage(messages []storage.Message, newMessage storage.Message, threshold time.Duration) bool {
	for _, m := range messages {
		if m.ID == newMessage.ID {
			return true
		}
		if m.Content == newMessage.Content && m.Role == newMessage.Role {
			diff := m.CreatedAt.Sub(newMessage.CreatedAt)
			if diff < 0 {
				diff = -diff
			}
			if diff < threshold {
				return true
			}
		}
	}
	return false
}

// MergeMessage appends newMessage unless it duplicates an existing entry,
// returning the (possibly unchanged) slice.
func MergeMessage(messages []storage.Message, newMessage storage.Message, threshold time.Duration) []storage.Message {
	if IsDuplicateMessage(messages, newMessage, threshold) {
		return messages
	}
	return append(messages, newMessage)
}
