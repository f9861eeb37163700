package ui

import (
	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/store"
	uistate "github.com/atomicstack/popup-menu/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) updateFilterCursor(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return cmd
}

// isFilterKey reports whether msg edits the filter rather than the menu.
// Printable input always goes to the filter; caret movement only while there
// is something to move through, so Left and Right still open and close
// submenus on an empty prompt.
func (m *Model) isFilterKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes:
		return !msg.Alt && len(msg.Runes) > 0
	case tea.KeySpace, tea.KeyBackspace, tea.KeyCtrlH, tea.KeyCtrlU, tea.KeyCtrlW:
		return true
	case tea.KeyLeft, tea.KeyRight, tea.KeyHome, tea.KeyEnd, tea.KeyCtrlA, tea.KeyCtrlE, tea.KeyDelete:
		return m.filter.Value() != ""
	}
	return false
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	before := m.filter.Value()
	cmd := m.updateFilterCursor(msg)
	if after := m.filter.Value(); after != before {
		m.applyFilter(after)
	}
	return cmd
}

// applyFilter pushes the filtered tree into the root level as a prop update.
// While a query is active every surviving submenu is opened so matches are
// visible; the open keys from before the query come back once it is cleared.
func (m *Model) applyFilter(query string) {
	if !m.level.SetFilter(query) {
		return
	}
	m.errMsg = ""
	m.forceClearInfo()

	if query == "" {
		if m.filtering {
			m.store.SetState(store.Patch{OpenKeys: nonNil(m.filterOpen)})
		}
		m.filtering = false
		m.filterOpen = nil
		events.Filter.Cleared(m.level.ID)
	} else {
		if !m.filtering {
			m.filterOpen = m.store.GetState().OpenKeys
			m.filtering = true
		}
		m.store.SetState(store.Patch{OpenKeys: nonNil(subMenuKeys(m.level.Items))})
		events.Filter.Changed(m.level.ID, query, len(m.level.Items))
	}

	if m.root == nil {
		return
	}
	m.root.Update(m.rootProps())
	m.sync()
	if query != "" {
		m.activateBestMatch(query)
	}
}

// activateBestMatch activates the best matching item and the submenu items
// leading to it.
func (m *Model) activateBestMatch(query string) {
	flat := flattenItems(m.level.Items)
	idx := uistate.BestMatchIndex(flat, query)
	if idx < 0 {
		return
	}
	target := flat[idx].Key
	for _, k := range m.registry.Path(target) {
		node, ok := m.registry.Find(k)
		if !ok {
			continue
		}
		if level := m.root.Find(node.MenuID); level != nil {
			level.Activate(k)
		}
	}
}

// flattenItems lists a pinned tree depth first.
func flattenItems(items []menu.Item) []menu.Item {
	out := make([]menu.Item, 0, len(items))
	for _, item := range items {
		out = append(out, item)
		if item.IsSubMenu() {
			out = append(out, flattenItems(item.Children)...)
		}
	}
	return out
}

func subMenuKeys(items []menu.Item) []string {
	var keys []string
	for _, item := range items {
		if !item.IsSubMenu() || item.Disabled {
			continue
		}
		keys = append(keys, item.Key)
		keys = append(keys, subMenuKeys(item.Children)...)
	}
	return keys
}

func nonNil(keys []string) []string {
	if keys == nil {
		return []string{}
	}
	return keys
}

func (m *Model) filterPrompt() string {
	return m.filter.View()
}
