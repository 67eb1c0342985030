package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mindcalm/internal/assist"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/storage/sqlite"
	"github.com/julianstephens/mindcalm/internal/tracker"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "mindcalm.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	tr := tracker.New(store)
	if err := tr.Load(); err != nil {
		t.Fatalf("failed to load tracker: %v", err)
	}
	m := NewModel(tr, assist.New(nil))
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func press(m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func TestTabsCycleThroughEveryView(t *testing.T) {
	m := newTestModel(t)
	for _, want := range constants.MainTabs[1:] {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
		if m.State != want {
			t.Fatalf("expected %v, got %v", want, m.State)
		}
		if m.View() == "" {
			t.Errorf("tab %v rendered nothing", want)
		}
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.State != constants.StateDashboard {
		t.Errorf("expected to wrap to the dashboard, got %v", m.State)
	}
}

func TestViewShowsTabsAndDashboard(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	for _, s := range []string{"Dashboard", "Chat", "Daily Overview", "Worry Time"} {
		if !strings.Contains(view, s) {
			t.Errorf("view missing %q", s)
		}
	}
}

func TestCheckInKeyOpensForm(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	if m.State != constants.StateCheckIn || m.Form == nil {
		t.Fatalf("expected check-in form, got %v", m.State)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.State != constants.StateDashboard || m.Form != nil {
		t.Errorf("esc should close the form, got %v", m.State)
	}
}

func TestThemeToggle(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.Tracker.Theme() != models.ThemeDark {
		t.Errorf("expected dark theme, got %s", m.Tracker.Theme())
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !m.Quitting || cmd == nil {
		t.Fatal("q should quit from the dashboard")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("nothing is drawn after quitting")
	}
}
