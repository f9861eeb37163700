package ui

import (
	"github.com/atomicstack/popup-menu/internal/logging"
	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/ui/controller"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

var (
	quitKey    = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	escapeKey  = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear/quit"))
	confirmKey = key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "done"))
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.quitting {
		return nil
	}
	switch {
	case key.Matches(keyMsg, quitKey):
		return m.cancel(keyMsg)
	case key.Matches(keyMsg, escapeKey):
		return m.handleEscapeKey(keyMsg)
	case m.multiple && key.Matches(keyMsg, confirmKey):
		return m.confirmSelection()
	}
	if m.isFilterKey(keyMsg) {
		return m.handleFilterKey(keyMsg)
	}
	m.dispatchKey(keyMsg)
	return nil
}

// dispatchKey hands a key to the root level. Each dispatch gets an id that
// tags every log entry until its relayed events have been applied.
func (m *Model) dispatchKey(msg tea.KeyMsg) bool {
	if m.root == nil {
		return false
	}
	id := uuid.NewString()
	m.dispatchID = id
	logging.SetDispatch(id)
	handled := m.root.OnKeyDown(msg, func(h controller.Handle) {
		events.Menu.Activate(menu.RootMenuID, h.EventKey())
	})
	events.Key.Dispatch(msg.String(), handled)
	m.metrics.KeyDispatched(handled)
	if handled {
		m.errMsg = ""
		m.clearInfo()
	}
	return handled
}

func (m *Model) handleEscapeKey(msg tea.KeyMsg) tea.Cmd {
	if m.filter.Value() != "" {
		m.filter.SetValue("")
		m.applyFilter("")
		return nil
	}
	return m.cancel(msg)
}

func (m *Model) cancel(msg tea.KeyMsg) tea.Cmd {
	events.Key.Quit(msg.String())
	m.quitting = true
	return tea.Quit
}

func (m *Model) confirmSelection() tea.Cmd {
	selected := m.store.GetState().SelectedKeys
	m.finish(Result{SelectedKeys: append([]string{}, selected...)})
	return tea.Quit
}

func (m *Model) finish(result Result) {
	if result.Key != "" && m.registry != nil {
		result.Labels = m.registry.Labels(result.Key)
	}
	m.result = &result
	m.quitting = true
	events.App.Result(result.KeyPath)
}

// handleMouseMsg maps pointer motion onto hover events and presses onto
// clicks of the row under the pointer.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || m.quitting || m.root == nil {
		return nil
	}
	row, onRow := m.rowAt(ev.Y)
	switch {
	case ev.Action == tea.MouseActionMotion:
		if !onRow {
			m.leaveHovered()
			return nil
		}
		m.hover(row, ev)
	case ev.Action == tea.MouseActionPress && ev.Button == tea.MouseButtonLeft:
		if !onRow {
			return nil
		}
		m.hover(row, ev)
		if level := m.root.Find(row.MenuID); level != nil {
			if row.SubMenu && m.mode.Trigger() == menu.TriggerHover {
				level.SetOpen(row.Key, true, ev)
				return nil
			}
			level.Click(row.Key, ev)
		}
	case ev.Button == tea.MouseButtonWheelUp:
		m.dispatchKey(tea.KeyMsg{Type: tea.KeyUp})
	case ev.Button == tea.MouseButtonWheelDown:
		m.dispatchKey(tea.KeyMsg{Type: tea.KeyDown})
	}
	return nil
}

func (m *Model) hover(row controller.Row, origin tea.MouseMsg) {
	if m.hovered != nil && m.hovered.Key == row.Key && m.hovered.MenuID == row.MenuID {
		return
	}
	if row.Disabled {
		return
	}
	if m.hovered != nil && !m.isAncestor(m.hovered.Key, row.Key) {
		m.leaveHovered()
	}
	level := m.root.Find(row.MenuID)
	if level == nil {
		return
	}
	level.OnItemHover(menu.HoverEvent{Key: row.Key, Hover: true})
	m.activateAncestors(row.Key)
	hovered := row
	m.hovered = &hovered
	if row.SubMenu && !row.Open && m.mode.Trigger() == menu.TriggerHover {
		level.SetOpen(row.Key, true, origin)
	}
}

func (m *Model) leaveHovered() {
	if m.hovered == nil {
		return
	}
	if level := m.root.Find(m.hovered.MenuID); level != nil {
		level.OnItemHover(menu.HoverEvent{Key: m.hovered.Key, Hover: false})
	}
	m.hovered = nil
}

// activateAncestors keeps the submenu items leading to key active, so the
// open chain stays highlighted while the pointer is inside a nested level.
func (m *Model) activateAncestors(key string) {
	path := m.registry.Path(key)
	for _, ancestor := range path[:max(len(path)-1, 0)] {
		node, ok := m.registry.Find(ancestor)
		if !ok {
			continue
		}
		if level := m.root.Find(node.MenuID); level != nil {
			level.Activate(ancestor)
		}
	}
}

func (m *Model) isAncestor(candidate, key string) bool {
	path := m.registry.Path(key)
	for _, k := range path[:max(len(path)-1, 0)] {
		if k == candidate {
			return true
		}
	}
	return false
}

// rowAt maps a screen line to a rendered row.
func (m *Model) rowAt(y int) (controller.Row, bool) {
	idx := y - m.listTop()
	if idx < 0 {
		return controller.Row{}, false
	}
	start, end := m.visibleRange()
	idx += start
	if idx >= end || idx >= len(m.rows) {
		return controller.Row{}, false
	}
	return m.rows[idx], true
}

// visibleRange returns the slice of rows currently on screen.
func (m *Model) visibleRange() (int, int) {
	start, end := 0, len(m.rows)
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(m.rows) > maxItems {
		start = m.level.ViewportOffset
		if start < 0 {
			start = 0
		}
		if start+maxItems > len(m.rows) {
			start = len(m.rows) - maxItems
		}
		end = start + maxItems
	}
	return start, end
}
