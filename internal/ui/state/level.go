package state

import (
	"github.com/atomicstack/popup-menu/internal/menu"
)

// Level encapsulates the root menu tree as shown to the user: the full
// definition, the filter applied to it, and the viewport over rendered rows.
type Level struct {
	ID             string
	Title          string
	Items          []menu.Item
	Full           []menu.Item
	Filter         string
	Cursor         int
	ViewportOffset int
}

// NewLevel constructs a Level from the provided item tree.
func NewLevel(id, title string, items []menu.Item) *Level {
	l := &Level{
		ID:    id,
		Title: title,
	}
	l.UpdateItems(items)
	return l
}

// UpdateItems replaces the tree and reapplies the current filter. Keys are
// pinned first so that filtering never changes the key of a surviving item.
func (l *Level) UpdateItems(items []menu.Item) {
	l.Full = PinKeys(items, l.ID)
	l.applyFilter()
}

// Keys returns the keys of the top-level items currently shown.
func (l *Level) Keys() []string {
	keys := make([]string, len(l.Items))
	for i, item := range l.Items {
		keys[i] = item.Key
	}
	return keys
}
