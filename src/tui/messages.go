package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/isasumer/character-chat-app/src/executor"
	"github.com/isasumer/character-chat-app/src/storage"
)

// The send protocol runs in a goroutine behind a tea.Cmd; intermediate
// progress reaches the update loop through the program reference.
var (
	programMu sync.Mutex
	program   *tea.Program
)

func setProgram(p *tea.Program) {
	programMu.Lock()
	program = p
	programMu.Unlock()
}

func send(msg tea.Msg) {
	programMu.Lock()
	p := program
	programMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// UserTurnSavedMsg signals the user's turn is durably persisted.
type UserTurnSavedMsg struct {
	Message *storage.Message
}

// TypingStartMsg and TypingEndMsg bracket the cosmetic typing phase.
type TypingStartMsg struct{}
type TypingEndMsg struct{}

// StreamStartMsg signals the relay stream is open.
type StreamStartMsg struct{}

// StreamDeltaMsg delivers one incremental text fragment.
type StreamDeltaMsg struct {
	Delta string
}

// StreamDoneMsg carries the persisted assistant turn once streaming settles.
type StreamDoneMsg struct {
	Message *storage.Message
}

// StreamErrorMsg carries a human-readable failure message.
type StreamErrorMsg struct {
	Message string
}

// SendFinishedMsg signals the send protocol finished, success or failure.
type SendFinishedMsg struct {
	Err error
}

// sendTurnCmd runs one full message send, relaying every lifecycle callback
// into the update loop as messages.
func sendTurnCmd(service *executor.Service, sessionID, characterPrompt, text string) tea.Cmd {
	return func() tea.Msg {
		err := service.SendMessage(context.Background(), executor.SendMessageParams{
			SessionID:       sessionID,
			Message:         text,
			CharacterPrompt: characterPrompt,
		}, &executor.Callbacks{
			OnUserMessageSent: func(m *storage.Message) { send(UserTurnSavedMsg{Message: m}) },
			OnTypingStart:     func() { send(TypingStartMsg{}) },
			OnTypingEnd:       func() { send(TypingEndMsg{}) },
			OnStreamStart:     func() { send(StreamStartMsg{}) },
			OnStreamChunk:     func(delta string) { send(StreamDeltaMsg{Delta: delta}) },
			OnStreamComplete:  func(m *storage.Message) { send(StreamDoneMsg{Message: m}) },
			OnError:           func(msg string) { send(StreamErrorMsg{Message: msg}) },
		})
		return SendFinishedMsg{Err: err}
	}
}
