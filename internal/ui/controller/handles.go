package controller

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Handle is what a rendered item exposes to its level. Active is a snapshot
// taken when the level last rendered.
type Handle interface {
	EventKey() string
	Disabled() bool
	Active() bool
	HandleKey(msg tea.KeyMsg) bool
}

type itemHandle struct {
	owner    *Controller
	key      string
	label    string
	disabled bool
	active   bool
}

func (h *itemHandle) EventKey() string { return h.key }
func (h *itemHandle) Disabled() bool   { return h.disabled }
func (h *itemHandle) Active() bool     { return h.active }

// leafHandle is a plain item. It only understands Enter.
type leafHandle struct {
	itemHandle
}

func (h *leafHandle) HandleKey(msg tea.KeyMsg) bool {
	if h.disabled || !key.Matches(msg, h.owner.props.Keys.Enter) {
		return false
	}
	h.owner.clickItem(h.key, msg)
	return true
}

// subMenuHandle is an item owning a nested level. While open, the nested
// level sees every key first.
type subMenuHandle struct {
	itemHandle
	open  bool
	child *Controller
}

func (h *subMenuHandle) HandleKey(msg tea.KeyMsg) bool {
	if h.disabled {
		return false
	}
	if h.open && h.child != nil && h.child.OnKeyDown(msg, nil) {
		return true
	}
	keys := h.owner.props.Keys
	switch {
	case key.Matches(msg, keys.Enter):
		h.owner.setSubMenuOpen(h.key, !h.open, true, msg)
		return true
	case key.Matches(msg, keys.Open):
		if !h.open {
			h.owner.setSubMenuOpen(h.key, true, true, msg)
		}
		return true
	case key.Matches(msg, keys.Close):
		if !h.open {
			return false
		}
		h.owner.setSubMenuOpen(h.key, false, true, msg)
		return true
	}
	return false
}
