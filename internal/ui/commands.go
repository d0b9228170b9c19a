package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-menu/internal/logging"
	"github.com/atomicstack/tmux-popup-menu/internal/logging/events"
	"github.com/atomicstack/tmux-popup-menu/internal/menu"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		logging.Error(result.Err)
		events.Action.Error(result.Err)
		return nil
	}
	m.errMsg = ""
	if result.Output != "" {
		m.output = result.Output
	}
	events.Action.Success(result.Info)
	if !result.Quit {
		if result.Info != "" {
			m.setInfo(result.Info)
		}
		return nil
	}
	m.forceClearInfo()
	return tea.Quit
}
