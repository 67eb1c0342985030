package entries

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestList() Model {
	return New("worries", "Nothing here.",
		NewBinding("add", false, []string{"a"}, "add"),
		NewBinding("delete", true, []string{"d"}, "delete"),
	)
}

func TestUpdate_EmitsActionForSelected(t *testing.T) {
	m := newTestList()
	m.SetSize(40, 20)
	m.SetItems([]Item{{ID: "w1", Name: "first"}, {ID: "w2", Name: "second"}})

	_, cmd := m.Update(keyMsg("d"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	got, ok := cmd().(ActionMsg)
	if !ok {
		t.Fatalf("expected ActionMsg, got %T", cmd())
	}
	want := ActionMsg{List: "worries", Action: "delete", ID: "w1"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestUpdate_EmptyList(t *testing.T) {
	m := newTestList()

	if _, cmd := m.Update(keyMsg("d")); cmd != nil {
		t.Error("delete on an empty list should do nothing")
	}

	_, cmd := m.Update(keyMsg("a"))
	if cmd == nil {
		t.Fatal("add should work on an empty list")
	}
	if got := cmd().(ActionMsg); got.Action != "add" || got.ID != "" {
		t.Errorf("got %+v", got)
	}
	if v := m.View(); v != "\n  Nothing here." {
		t.Errorf("View() = %q", v)
	}
}

func TestItemTitle(t *testing.T) {
	tests := []struct {
		item Item
		want string
	}{
		{Item{Name: "walk"}, "○ walk"},
		{Item{Name: "walk", Done: true}, "✓ walk"},
		{Item{Name: "Box", Plain: true, Done: true}, "Box"},
	}
	for _, tt := range tests {
		if got := tt.item.Title(); got != tt.want {
			t.Errorf("Title() = %q, want %q", got, tt.want)
		}
	}
}
