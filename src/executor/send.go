package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/isasumer/character-chat-app/src/aisdk"
	"github.com/isasumer/character-chat-app/src/chatstream"
	"github.com/isasumer/character-chat-app/src/relayclient"
	"github.com/isasumer/character-chat-app/src/storage"
)

var (
	// ErrSendInFlight means a send was attempted while another was still
	// running on the same service instance.
	ErrSendInFlight = errors.New("a message send is already in flight")

	// ErrSessionNotFound means the requested session does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrEmptyMessage rejects sends with no text
	ErrEmptyMessage = errors.New("message must not be empty")
)

// SendMessageParams describes one user-submitted turn.
type SendMessageParams struct {
	SessionID       string
	Message         string
	CharacterPrompt string

	// ConversationHistory holds the prior turns sent to the relay. When
	// nil, the persisted history of the session is used.
	ConversationHistory []relayclient.HistoryTurn
}

// SendMessage runs the full protocol for one turn: durably append the user
// message, stream the assistant reply from the relay, then durably append
// the assembled assistant message. All progress surfaces through cb; the
// OnFinally hook runs exactly once whatever the outcome. A failed or
// interrupted stream never persists a partial assistant turn.
//
// Only one invocation may run at a time per Service; concurrent calls fail
// with ErrSendInFlight.
func (s *Service) SendMessage(ctx context.Context, params SendMessageParams, cb *Callbacks) error {
	select {
	case <-s.sending:
	default:
		return ErrSendInFlight
	}
	defer func() {
		s.sending <- struct{}{}
		cb.finally()
	}()

	err := s.sendMessage(ctx, params, cb)
	if err != nil {
		cb.fail(err.Error())
	}
	return err
}

func (s *Service) sendMessage(ctx context.Context, params SendMessageParams, cb *Callbacks) error {
	logger := s.logger.With("session_id", params.SessionID)

	if params.Message == "" {
		return ErrEmptyMessage
	}

	history := params.ConversationHistory
	if history == nil {
		var err error
		history, err = s.BuildConversationHistory(ctx, params.SessionID)
		if err != nil {
			return err
		}
	}

	// Append the user turn first; the relay is never invoked without a
	// durably persisted user message.
	userMsg := &storage.Message{
		ChatSessionID: params.SessionID,
		Role:          aisdk.RoleUser,
		Content:       params.Message,
	}
	if err := storage.CreateMessage(ctx, s.database, userMsg); err != nil {
		return fmt.Errorf("failed to save user message: %w", err)
	}
	s.publish(userMsg)
	cb.userMessageSent(userMsg)

	// Brief synthetic typing phase. Purely cosmetic.
	if s.typingDelay > 0 {
		cb.typingStart()
		select {
		case <-time.After(s.typingDelay):
		case <-ctx.Done():
			cb.typingEnd()
			return ctx.Err()
		}
		cb.typingEnd()
	}

	cb.streamStart()

	body, err := s.relay.SendChatMessage(ctx, &relayclient.ChatRequest{
		SessionID:           params.SessionID,
		Message:             params.Message,
		CharacterPrompt:     params.CharacterPrompt,
		ConversationHistory: history,
	})
	if err != nil {
		return err
	}
	defer body.Close()

	// The pending assistant turn accumulates inside ReadStream and is
	// simply dropped on error; nothing partial ever reaches the store.
	fullMessage, err := chatstream.ReadStream(body, &chatstream.Callbacks{
		OnChunk: cb.streamChunk,
		Logger:  s.logger,
	})
	if err != nil {
		return err
	}

	aiMsg := &storage.Message{
		ChatSessionID: params.SessionID,
		Role:          aisdk.RoleAssistant,
		Content:       fullMessage,
	}
	if err := storage.CreateMessage(ctx, s.database, aiMsg); err != nil {
		return fmt.Errorf("failed to save assistant message: %w", err)
	}
	s.publish(aiMsg)

	if err := storage.TouchChatSession(ctx, s.database, params.SessionID); err != nil {
		// The turn itself is safe; a stale activity marker is not fatal.
		logger.Warn("failed to touch session", "error", err)
	}

	cb.streamComplete(aiMsg)
	return nil
}
