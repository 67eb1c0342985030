package chatview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mindcalm/internal/models"
)

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestSend(t *testing.T) {
	m := New()
	m.SetSize(60, 20)
	m.SetConversation([]models.ChatMessage{{Role: models.RoleAssistant, Content: "Hi"}}, nil)

	m = typeText(m, "hello")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a send command")
	}
	if got := cmd().(SendMsg); got.Text != "hello" {
		t.Errorf("sent %q", got.Text)
	}
	if !m.Waiting() {
		t.Error("expected to wait for the reply")
	}
	if !strings.Contains(m.View(), "hello") {
		t.Error("user message should show before the reply arrives")
	}

	// a second send is ignored until the reply lands
	m = typeText(m, "again")
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("send while waiting should be ignored")
	}
}

func TestSend_Blank(t *testing.T) {
	m := New()
	m = typeText(m, "   ")
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("blank input should not be sent")
	}
}

func TestSuggestionShortcut(t *testing.T) {
	m := New()
	m.SetConversation(nil, []string{"What are the 3Cs?", "Help"})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}, Alt: true})
	if cmd == nil {
		t.Fatal("expected a send command")
	}
	if got := cmd().(SendMsg); got.Text != "Help" {
		t.Errorf("sent %q", got.Text)
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}, Alt: true}); cmd != nil {
		t.Error("out-of-range suggestion should do nothing")
	}
}
