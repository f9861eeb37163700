package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/popup-menu/internal/store"
	"github.com/atomicstack/popup-menu/internal/ui/command"
	uistate "github.com/atomicstack/popup-menu/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// applyRelay runs the handler of every relayed event in emission order. It
// stops once an event ends the menu.
func (m *Model) applyRelay(relay command.RelayMsg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(relay.Msgs))
	for _, inner := range relay.Msgs {
		if m.quitting {
			break
		}
		if handler := m.handlerFor(inner); handler != nil {
			if cmd := handler(inner); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return tea.Batch(cmds...)
}

// handleSelectMsg records the selection. Without multiple selection picking
// an item ends the menu.
func (m *Model) handleSelectMsg(msg tea.Msg) tea.Cmd {
	sel, ok := msg.(command.SelectMsg)
	if !ok {
		return nil
	}
	m.metrics.Relayed("select")
	m.store.SetState(store.Patch{SelectedKeys: nonNil(sel.Info.SelectedKeys)})
	if m.multiple {
		if m.verbose {
			m.setInfo(fmt.Sprintf("Selected %s", m.labelFor(sel.Info.Key)))
		}
		return nil
	}
	m.finish(Result{
		Key:          sel.Info.Key,
		KeyPath:      append([]string(nil), sel.Info.KeyPath...),
		SelectedKeys: nonNil(sel.Info.SelectedKeys),
	})
	return tea.Quit
}

func (m *Model) handleDeselectMsg(msg tea.Msg) tea.Cmd {
	sel, ok := msg.(command.DeselectMsg)
	if !ok {
		return nil
	}
	m.metrics.Relayed("deselect")
	m.store.SetState(store.Patch{SelectedKeys: nonNil(sel.Info.SelectedKeys)})
	if m.verbose {
		m.setInfo(fmt.Sprintf("Deselected %s", m.labelFor(sel.Info.Key)))
	}
	return nil
}

func (m *Model) handleClickMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(command.ClickMsg); !ok {
		return nil
	}
	m.metrics.Relayed("click")
	return nil
}

// handleOpenChangeMsg writes the open keys. Opening a submenu closes its
// siblings and everything below them; closing one closes its descendants.
func (m *Model) handleOpenChangeMsg(msg tea.Msg) tea.Cmd {
	change, ok := msg.(command.OpenChangeMsg)
	if !ok {
		return nil
	}
	m.metrics.Relayed("open-change")
	key := change.Change.Key
	node, found := m.registry.Find(key)
	open := m.store.GetState().OpenKeys

	next := uistate.PruneKeys(open, func(k string) bool {
		if k == key {
			return false
		}
		if !found {
			return true
		}
		if !change.Change.Open {
			return !m.isAncestor(key, k)
		}
		other, ok := m.registry.Find(k)
		if !ok {
			return true
		}
		for n := other; n != nil; n = n.Parent {
			if n.MenuID == node.MenuID && n.Key != key {
				return false
			}
		}
		return true
	})
	if change.Change.Open {
		next = append(next, key)
	}
	m.store.SetState(store.Patch{OpenKeys: next})
	return nil
}

// handleDestroyMsg drops a vanished item from the open keys. Selection only
// forgets items that are gone from the definition, not ones a filter hides.
func (m *Model) handleDestroyMsg(msg tea.Msg) tea.Cmd {
	destroyed, ok := msg.(command.DestroyMsg)
	if !ok {
		return nil
	}
	m.metrics.Relayed("destroy")
	st := m.store.GetState()
	patch := store.Patch{}
	if st.IsOpen(destroyed.Key) {
		patch.OpenKeys = uistate.WithoutKey(st.OpenKeys, destroyed.Key)
	}
	if st.IsSelected(destroyed.Key) && !m.registry.Has(destroyed.Key) {
		patch.SelectedKeys = uistate.WithoutKey(st.SelectedKeys, destroyed.Key)
	}
	if patch.OpenKeys != nil || patch.SelectedKeys != nil {
		m.store.SetState(patch)
	}
	if m.hovered != nil && m.hovered.Key == destroyed.Key {
		m.hovered = nil
	}
	return nil
}

func (m *Model) labelFor(key string) string {
	labels := m.registry.Labels(key)
	if len(labels) == 0 {
		return key
	}
	return strings.Join(labels, " › ")
}
