// Package chatview is the chat transcript and prompt.
package chatview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mindcalm/internal/models"
)

var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("36")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Bold(true)
	suggestStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// SendMsg carries the text the user submitted.
type SendMsg struct {
	Text string
}

type KeyMap struct {
	Send    key.Binding
	Suggest key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Suggest: key.NewBinding(
			key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4"),
			key.WithHelp("alt+1-4", "ask a suggestion"),
		),
	}
}

type Model struct {
	input       textinput.Model
	viewport    viewport.Model
	keys        KeyMap
	messages    []models.ChatMessage
	suggestions []string
	waiting     bool
	width       int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Type your message..."
	ti.CharLimit = 500
	ti.Focus()
	return Model{
		input:    ti,
		viewport: viewport.New(0, 0),
		keys:     DefaultKeyMap(),
	}
}

// SetConversation replaces the transcript and clears the waiting state.
func (m *Model) SetConversation(messages []models.ChatMessage, suggestions []string) {
	m.messages = messages
	m.suggestions = suggestions
	m.waiting = false
	m.refresh()
}

// Waiting reports whether a reply is outstanding.
func (m Model) Waiting() bool { return m.waiting }

func (m Model) Keys() []key.Binding {
	return []key.Binding{m.keys.Send, m.keys.Suggest}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.input.Width = width - 4
	// transcript above, suggestions and prompt below
	m.viewport.Width = width
	m.viewport.Height = max(height-4, 1)
	m.refresh()
}

func (m *Model) refresh() {
	var b strings.Builder
	for _, msg := range m.messages {
		name := assistantStyle.Render("MindCalm")
		if msg.Role == models.RoleUser {
			name = userStyle.Render("You")
		}
		body := msg.Content
		if m.width > 0 {
			body = lipgloss.NewStyle().Width(m.width - 2).Render(body)
		}
		fmt.Fprintf(&b, "%s\n%s\n\n", name, body)
	}
	if m.waiting {
		b.WriteString(suggestStyle.Render("MindCalm is typing..."))
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m Model) send(text string) (Model, tea.Cmd) {
	text = strings.TrimSpace(text)
	if text == "" || m.waiting {
		return m, nil
	}
	m.messages = append(m.messages, models.ChatMessage{Role: models.RoleUser, Content: text})
	m.suggestions = nil
	m.waiting = true
	m.input.Reset()
	m.refresh()
	return m, func() tea.Msg { return SendMsg{Text: text} }
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Send):
			return m.send(m.input.Value())
		case key.Matches(msg, m.keys.Suggest):
			i := int(msg.Runes[len(msg.Runes)-1] - '1')
			if i >= 0 && i < len(m.suggestions) {
				return m.send(m.suggestions[i])
			}
			return m, nil
		case msg.Type == tea.KeyPgUp || msg.Type == tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var suggestions []string
	for i, s := range m.suggestions {
		suggestions = append(suggestions, fmt.Sprintf("[alt+%d] %s", i+1, s))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		suggestStyle.Render(strings.Join(suggestions, "  ")),
		m.input.View(),
	)
}
