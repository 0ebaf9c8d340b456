package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/rolodex/internal/assistant"
)

// helpBarHeight is the number of lines reserved for the help bar.
const helpBarHeight = 1

// inputBarHeight is the number of lines reserved for the command input.
const inputBarHeight = 1

// interruptMsg asks the model to end the session, sent when the outer
// context is cancelled.
type interruptMsg struct{}

// Model is the Bubble Tea model for an interactive assistant session:
// a scrolling transcript above a single command input line.
type Model struct {
	session  *assistant.Session
	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	keys     sessionKeys
	styles   Styles
	lines    []string
	width    int
	height   int
	ready    bool
	done     bool
}

// ModelOption configures a Model at creation.
type ModelOption func(*Model)

// WithPrompt overrides the command input prompt.
func WithPrompt(prompt string) ModelOption {
	return func(m *Model) {
		m.input.Prompt = prompt
	}
}

// WithStyles overrides the transcript styles.
func WithStyles(st Styles) ModelOption {
	return func(m *Model) {
		m.styles = st
	}
}

// NewModel creates a session model with the welcome banner already in
// the transcript and the input focused.
func NewModel(s *assistant.Session, opts ...ModelOption) Model {
	ti := textinput.New()
	ti.Prompt = defaultPrompt
	ti.CharLimit = 256
	ti.Focus()

	m := Model{
		session:  s,
		input:    ti,
		viewport: viewport.New(0, 0),
		help:     help.New(),
		keys:     SessionKeyMap(),
		styles:   NewStyles(true),
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.lines = []string{
		m.styles.Banner.Render(Welcome),
		m.styles.Banner.Render(WelcomeHint),
	}
	return m
}

// Init starts the input cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = m.contentHeight()
		m.syncViewport()
		m.ready = true
		return m, nil

	case interruptMsg:
		return m.quit()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey routes keys between the input line and the viewport.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit executes the typed command and appends the exchange to the
// transcript.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.SetValue("")

	m.lines = append(m.lines, m.styles.Echo.Render(m.input.Prompt+line))
	reply := m.session.Execute(line)
	m.lines = append(m.lines, m.renderReply(reply))
	m.syncViewport()

	if reply.Kind == assistant.ReplyBye {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// quit appends the farewell and ends the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	m.lines = append(m.lines, m.styles.Farewell.Render(Farewell))
	m.syncViewport()
	m.done = true
	return m, tea.Quit
}

// renderReply styles reply text by kind.
func (m Model) renderReply(r assistant.Reply) string {
	switch r.Kind {
	case assistant.ReplyError:
		return m.styles.Error.Render(r.Text)
	case assistant.ReplyBye:
		return m.styles.Farewell.Render(r.Text)
	default:
		return m.styles.Info.Render(r.Text)
	}
}

// syncViewport refreshes the viewport content and keeps it pinned to
// the newest lines.
func (m *Model) syncViewport() {
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

// contentHeight returns the transcript height left after the input and
// help bars.
func (m Model) contentHeight() int {
	h := m.height - inputBarHeight - helpBarHeight
	if h < 1 {
		return 1
	}
	return h
}

// View renders the transcript, input line, and help bar.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.done {
		return m.viewport.View() + "\n"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.input.View(),
		m.help.View(m.keys),
	)
}
