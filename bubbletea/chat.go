// Package bubbletea provides the terminal chat surface: a scrollback
// viewport over the transcript with a single-line input, wired to a
// relomate.Chatter.
package bubbletea

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/relomate/relomate"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	hintStyle      = lipgloss.NewStyle().Faint(true)
)

// replyMsg carries the engine's answer back into the update loop.
type replyMsg struct {
	reply string
	err   error
}

// Model is the bubbletea model for the chat interface.
type Model struct {
	ctx     context.Context
	chatter relomate.Chatter

	viewport viewport.Model
	input    textinput.Model
	history  []relomate.Message
	waiting  bool
	ready    bool
	width    int
}

// New creates a chat model seeded with an assistant intro message.
func New(ctx context.Context, chatter relomate.Chatter, intro string) Model {
	input := textinput.New()
	input.Placeholder = "Example: I have a $2500 budget in IL."
	input.Focus()

	m := Model{
		ctx:     ctx,
		chatter: chatter,
		input:   input,
	}
	if intro != "" {
		m.history = append(m.history, relomate.Message{Role: relomate.RoleAssistant, Content: intro})
	}
	return m
}

// History returns the transcript accumulated so far.
func (m Model) History() []relomate.Message {
	return m.history
}

// Waiting reports whether a chat turn is in flight.
func (m Model) Waiting() bool {
	return m.waiting
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if !m.ready {
			m.viewport = viewport.New(msg.Width, max(msg.Height-4, 3))
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = max(msg.Height-4, 3)
		}
		m.input.Width = msg.Width - 4
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if m.waiting {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			m.history = append(m.history, relomate.Message{Role: relomate.RoleUser, Content: text})
			m.waiting = true
			m.refresh()
			return m, m.send(text)
		}

	case replyMsg:
		m.waiting = false
		content := msg.reply
		if msg.err != nil {
			content = "Sorry, something went wrong: " + relomate.ErrorMessage(msg.err)
		}
		m.history = append(m.history, relomate.Message{Role: relomate.RoleAssistant, Content: content})
		m.refresh()
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// send runs the chat turn off the update loop.
func (m Model) send(text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.chatter.Chat(m.ctx, text)
		return replyMsg{reply: reply, err: err}
	}
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

func (m Model) renderHistory() string {
	var sb strings.Builder
	for _, msg := range m.history {
		if msg.Role == relomate.RoleUser {
			sb.WriteString(userStyle.Render("You") + "\n")
		} else {
			sb.WriteString(assistantStyle.Render("Relomate") + "\n")
		}
		sb.WriteString(msg.Content)
		sb.WriteString("\n\n")
	}
	if m.waiting {
		sb.WriteString(hintStyle.Render("thinking..."))
	}
	return sb.String()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	return titleStyle.Render("Relomate - Apartment Relocation Assistant") + "\n" +
		m.viewport.View() + "\n" +
		m.input.View() + "\n" +
		hintStyle.Render("enter to send, esc to quit")
}

// Run starts the interactive chat program and blocks until it exits.
func Run(ctx context.Context, chatter relomate.Chatter, intro string) error {
	p := tea.NewProgram(New(ctx, chatter, intro), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
