package ui

import (
	"fmt"

	"github.com/atomicstack/popup-menu/internal/backend"
	"github.com/atomicstack/popup-menu/internal/logging"
	"github.com/atomicstack/popup-menu/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
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

// applyBackendEvent swaps in a reloaded definition. The reload reaches the
// root level as a prop update; items that disappeared are reported destroyed
// by the next render pass.
func (m *Model) applyBackendEvent(evt backend.Event) {
	m.metrics.Reloaded(evt.Err)
	if evt.Err != nil {
		logging.Error(fmt.Errorf("reload %s: %w", evt.Path, evt.Err))
		m.errMsg = fmt.Sprintf("reload failed: %v", evt.Err)
		return
	}
	m.errMsg = ""
	if evt.Definition.Title != "" {
		m.level.Title = evt.Definition.Title
	}
	if mode, err := menu.ParseMode(evt.Definition.Mode); err == nil && evt.Definition.Mode != "" {
		m.mode = mode
	}
	m.level.UpdateItems(evt.Definition.Items)
	m.registry = buildRegistry(m.level.Full)
	if m.root != nil {
		m.root.Update(m.rootProps())
	}
	if m.verbose {
		m.setInfo(fmt.Sprintf("Reloaded %s", evt.Path))
	}
}
