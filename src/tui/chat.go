package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/isasumer/character-chat-app/src/executor"
	"github.com/isasumer/character-chat-app/src/storage"
)

// State tracks whether the input line accepts a new turn.
type State int

const (
	StateReady State = iota
	StateSending
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	userNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5fafff"))
	charNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#af87ff"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
	inputHintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

// turn is one rendered conversation entry.
type turn struct {
	role    string
	content string
}

// Options configures a chat session UI.
type Options struct {
	Service   *executor.Service
	Character *storage.Character
	Session   *storage.ChatSession
	History   []storage.Message
}

// Model is the interactive chat screen: a scrolling transcript, a typing
// indicator while the character composes, and a single-line input.
type Model struct {
	service   *executor.Service
	character *storage.Character
	session   *storage.ChatSession

	state   State
	typing  bool
	pending string
	errText string
	turns   []turn

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	width  int
	height int
	ready  bool
}

// NewModel builds the chat screen preloaded with persisted history.
func NewModel(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Send a message..."
	ti.CharLimit = 4000
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = mutedStyle

	turns := make([]turn, 0, len(opts.History))
	for _, msg := range opts.History {
		turns = append(turns, turn{role: msg.Role, content: msg.Content})
	}

	return Model{
		service:   opts.Service,
		character: opts.Character,
		session:   opts.Session,
		state:     StateReady,
		turns:     turns,
		input:     ti,
		spinner:   sp,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chromeHeight := 4
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chromeHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chromeHeight
		}
		m.input.Width = msg.Width - 4
		m.refreshTranscript()
		return m, nil

	case UserTurnSavedMsg:
		m.turns = append(m.turns, turn{role: msg.Message.Role, content: msg.Message.Content})
		m.refreshTranscript()
		return m, nil

	case TypingStartMsg:
		m.typing = true
		m.refreshTranscript()
		return m, m.spinner.Tick

	case TypingEndMsg:
		m.typing = false
		m.refreshTranscript()
		return m, nil

	case StreamStartMsg:
		m.errText = ""
		return m, nil

	case StreamDeltaMsg:
		m.pending += msg.Delta
		m.refreshTranscript()
		return m, nil

	case StreamDoneMsg:
		m.pending = ""
		m.turns = append(m.turns, turn{role: msg.Message.Role, content: msg.Message.Content})
		m.refreshTranscript()
		return m, nil

	case StreamErrorMsg:
		m.pending = ""
		m.errText = msg.Message
		m.refreshTranscript()
		return m, nil

	case SendFinishedMsg:
		m.state = StateReady
		m.typing = false
		m.refreshTranscript()
		return m, textinput.Blink

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.typing {
			m.refreshTranscript()
			return m, cmd
		}
		return m, nil
	}

	var inputCmd, vpCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(inputCmd, vpCmd)
}

// submit starts the send protocol for the current input line. Turns render
// only once the executor confirms persistence.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.state != StateReady {
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	m.state = StateSending
	m.errText = ""
	m.input.Reset()
	return m, sendTurnCmd(m.service, m.session.ID, m.character.SystemPrompt, text)
}

func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	var b strings.Builder
	for _, t := range m.turns {
		name := userNameStyle.Render("you")
		if t.role == "assistant" {
			name = charNameStyle.Render(m.character.Name)
		}
		b.WriteString(name + "\n" + t.content + "\n\n")
	}
	if m.pending != "" {
		b.WriteString(charNameStyle.Render(m.character.Name) + "\n" + m.pending + "\n")
	} else if m.typing {
		b.WriteString(m.spinner.View() + mutedStyle.Render(m.character.Name+" is typing") + "\n")
	}
	if m.errText != "" {
		b.WriteString(errorStyle.Render(m.errText) + "\n")
	}
	return b.String()
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	header := fmt.Sprintf("%s %s",
		titleStyle.Render(m.character.Name),
		mutedStyle.Render("session "+m.session.ID))
	footer := m.input.View() + "\n" + inputHintStyle.Render("enter to send, esc to quit")
	return header + "\n" + m.viewport.View() + "\n" + footer
}

// Run drives the chat screen until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	setProgram(p)
	defer setProgram(nil)
	_, err := p.Run()
	return err
}
