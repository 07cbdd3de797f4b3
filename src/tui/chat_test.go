package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isasumer/character-chat-app/src/storage"
)

func newTestModel(t *testing.T, history []storage.Message) Model {
	t.Helper()
	m := NewModel(Options{
		Character: &storage.Character{ID: "char-1", Name: "Luna", SystemPrompt: "You are Luna."},
		Session:   &storage.ChatSession{ID: "sess-1", UserID: "local", CharacterID: "char-1"},
		History:   history,
	})
	// Size the screen so the viewport exists.
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelPreloadsHistory(t *testing.T) {
	m := newTestModel(t, []storage.Message{
		{Role: "user", Content: "hello there"},
		{Role: "assistant", Content: "well met"},
	})

	view := m.View()
	assert.Contains(t, view, "hello there")
	assert.Contains(t, view, "well met")
}

func TestSubmitStartsSend(t *testing.T) {
	m := newTestModel(t, nil)
	m.input.SetValue("how are you?")

	next, cmd := m.submit()
	m = next.(Model)

	assert.Equal(t, StateSending, m.state)
	assert.Empty(t, m.input.Value(), "input should clear on submit")
	require.NotNil(t, cmd, "submit must launch the send command")
}

func TestSubmitIgnoredWhileSending(t *testing.T) {
	m := newTestModel(t, nil)
	m.state = StateSending
	m.input.SetValue("second message")

	next, cmd := m.submit()
	m = next.(Model)

	assert.Nil(t, cmd, "no send command while a turn is in flight")
	assert.Equal(t, "second message", m.input.Value())
}

func TestSubmitIgnoredWhenBlank(t *testing.T) {
	m := newTestModel(t, nil)
	m.input.SetValue("   ")

	_, cmd := m.submit()
	assert.Nil(t, cmd)
}

func TestUserTurnRendersAfterPersistence(t *testing.T) {
	m := newTestModel(t, nil)

	assert.NotContains(t, m.View(), "first message")

	m = update(t, m, UserTurnSavedMsg{Message: &storage.Message{Role: "user", Content: "first message"}})
	assert.Contains(t, m.View(), "first message")
}

func TestTypingIndicatorTogglesDuringStream(t *testing.T) {
	m := newTestModel(t, nil)
	m.state = StateSending

	m = update(t, m, TypingStartMsg{})
	assert.True(t, m.typing)
	assert.Contains(t, m.renderTranscript(), "Luna is typing")

	m = update(t, m, TypingEndMsg{})
	assert.False(t, m.typing)
	assert.NotContains(t, m.renderTranscript(), "is typing")
}

func TestDeltasAppendNotReplace(t *testing.T) {
	m := newTestModel(t, nil)
	m.state = StateSending

	m = update(t, m, StreamDeltaMsg{Delta: "Hel"})
	m = update(t, m, StreamDeltaMsg{Delta: "lo "})
	m = update(t, m, StreamDeltaMsg{Delta: "there"})

	assert.Equal(t, "Hello there", m.pending)
	assert.Contains(t, m.View(), "Hello there")
}

func TestStreamDoneSettlesTurn(t *testing.T) {
	m := newTestModel(t, nil)
	m.state = StateSending
	m = update(t, m, StreamDeltaMsg{Delta: "partial"})

	m = update(t, m, StreamDoneMsg{Message: &storage.Message{Role: "assistant", Content: "final reply"}})
	m = update(t, m, SendFinishedMsg{})

	assert.Empty(t, m.pending, "pending text cleared once the turn is persisted")
	assert.Equal(t, StateReady, m.state)
	require.Len(t, m.turns, 1)
	assert.Equal(t, "final reply", m.turns[0].content)
}

func TestStreamErrorDropsPendingText(t *testing.T) {
	m := newTestModel(t, nil)
	m.state = StateSending
	m = update(t, m, StreamDeltaMsg{Delta: "half a rep"})

	m = update(t, m, StreamErrorMsg{Message: "AI streaming error: upstream hiccup"})
	m = update(t, m, SendFinishedMsg{})

	assert.Empty(t, m.pending)
	assert.Empty(t, m.turns, "failed turn never renders as a settled message")
	assert.Contains(t, m.View(), "AI streaming error: upstream hiccup")
	assert.Equal(t, StateReady, m.state, "input accepts a new turn after a failure")
}

func TestEnterKeySubmits(t *testing.T) {
	m := newTestModel(t, nil)
	m.input.SetValue("hello")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	assert.Equal(t, StateSending, m.state)
	assert.NotNil(t, cmd)
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, nil)

	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := m.Update(tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestSendWithoutProgramIsSafe(t *testing.T) {
	setProgram(nil)
	assert.NotPanics(t, func() { send(StreamDeltaMsg{Delta: "x"}) })
}
