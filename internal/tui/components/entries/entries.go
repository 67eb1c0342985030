// Package entries is a selectable list whose keys emit actions for the
// parent to carry out on the selected item.
package entries

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type Item struct {
	ID     string
	Name   string
	Detail string
	Done   bool
	// Plain drops the completion mark for lists without a done state.
	Plain bool
}

func (i Item) Title() string {
	if i.Plain {
		return i.Name
	}
	if i.Done {
		return "✓ " + i.Name
	}
	return "○ " + i.Name
}

func (i Item) Description() string { return i.Detail }

func (i Item) FilterValue() string { return i.Name }

// Binding maps a key to the action it emits. Actions that need a selected
// item are not emitted on an empty list.
type Binding struct {
	Key           key.Binding
	Action        string
	NeedsSelected bool
}

func NewBinding(action string, selected bool, keys []string, help string) Binding {
	label := keys[0]
	if label == " " {
		label = "space"
	}
	return Binding{
		Key:           key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, help)),
		Action:        action,
		NeedsSelected: selected,
	}
}

// ActionMsg asks the parent to perform Action. ID is the selected item, or
// empty for list-wide actions.
type ActionMsg struct {
	List   string
	Action string
	ID     string
}

type Model struct {
	name     string
	empty    string
	list     list.Model
	bindings []Binding
}

// New creates a list named name. empty is shown when there are no items.
func New(name, empty string, bindings ...Binding) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = name
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.KeyMap.Quit.SetEnabled(false)

	keys := make([]key.Binding, len(bindings))
	for i, b := range bindings {
		keys[i] = b.Key
	}
	l.AdditionalShortHelpKeys = func() []key.Binding { return keys }
	l.AdditionalFullHelpKeys = func() []key.Binding { return keys }

	return Model{name: name, empty: empty, list: l, bindings: bindings}
}

func (m Model) Name() string { return m.name }

func (m *Model) SetItems(items []Item) {
	li := make([]list.Item, len(items))
	for i, it := range items {
		li[i] = it
	}
	m.list.SetItems(li)
}

func (m Model) Items() []Item {
	out := make([]Item, 0, len(m.list.Items()))
	for _, li := range m.list.Items() {
		out = append(out, li.(Item))
	}
	return out
}

// Selected returns the highlighted item.
func (m Model) Selected() (Item, bool) {
	it, ok := m.list.SelectedItem().(Item)
	return it, ok
}

func (m *Model) Select(index int) { m.list.Select(index) }

// Keys lists the action bindings for help rendering.
func (m Model) Keys() []key.Binding {
	keys := make([]key.Binding, len(m.bindings))
	for i, b := range m.bindings {
		keys[i] = b.Key
	}
	return keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		for _, b := range m.bindings {
			if !key.Matches(msg, b.Key) {
				continue
			}
			action := ActionMsg{List: m.name, Action: b.Action}
			if it, ok := m.Selected(); ok {
				action.ID = it.ID
			} else if b.NeedsSelected {
				return m, nil
			}
			return m, func() tea.Msg { return action }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  " + m.empty
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
