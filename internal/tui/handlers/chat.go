package handlers

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mindcalm/internal/graph"
	"github.com/julianstephens/mindcalm/internal/tui/components/chatview"
	"github.com/julianstephens/mindcalm/internal/tui/components/graphview"
	"github.com/julianstephens/mindcalm/internal/tui/state"
)

// HandleChatMessages sends chat input to the session. The chat view blocks
// further input until the reply arrives, so the session has one writer.
func HandleChatMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	send, ok := msg.(chatview.SendMsg)
	if !ok {
		return false, nil
	}
	session := m.Chat
	return true, ask(m, func(ctx context.Context) tea.Msg {
		session.Send(ctx, send.Text)
		return ChatReplyMsg{Messages: session.Messages(), Suggestions: session.Suggestions()}
	})
}

// RebuildGraph lays out a fresh knowledge graph from the current data.
func RebuildGraph(m *state.Model) tea.Cmd {
	return m.Graph.SetLayout(graph.NewLayout(m.Tracker.KnowledgeGraph(), nil))
}

// HandleGraphMessages keeps the graph simulation running even when its tab
// is not shown.
func HandleGraphMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg.(type) {
	case graphview.TickMsg:
		var cmd tea.Cmd
		m.Graph, cmd = m.Graph.Update(msg)
		return true, cmd
	case graphview.RebuildMsg:
		return true, RebuildGraph(m)
	}
	return false, nil
}
