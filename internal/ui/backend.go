package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-menu/internal/backend"
	"github.com/atomicstack/tmux-popup-menu/internal/focus"
	"github.com/atomicstack/tmux-popup-menu/internal/logging/events"
	"github.com/atomicstack/tmux-popup-menu/internal/menu"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent swaps in a reloaded definition between navigation
// operations and puts focus back on the record that held it, when it still
// exists. Failed reloads keep the current tree.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		m.backendError = fmt.Sprintf("reload %s: %v", evt.Path, evt.Err)
		events.App.ReloadError(evt.Path, evt.Err)
		return
	}
	m.backendError = ""
	if evt.Definition == nil {
		return
	}
	last, focused := m.engine.Focused()
	wasOpen := focused && m.markers.Has(last.Node, focus.MarkerSubmenuOpen)
	m.applyDefinition(evt.Definition)
	count := 0
	m.root.Walk(func(*menu.Item, int) { count++ })
	events.App.Reload(evt.Path, count)
	if !focused || !m.engine.FocusNode(last.Node) {
		return
	}
	// FocusNode opens submenus; one that was only focused stays closed.
	if current := m.engine.Path(); current.Last().Submenu && !wasOpen {
		m.engine.CloseSubmenu(current)
	}
}
