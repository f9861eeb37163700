package controller

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the keys a menu level reacts to. Printable runes are left to
// the filter prompt, so the defaults only use navigation keys.
type KeyMap struct {
	Previous key.Binding
	Next     key.Binding
	Enter    key.Binding
	Open     key.Binding
	Close    key.Binding
}

// DefaultKeyMap returns the bindings used when a level is created without any.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Previous: key.NewBinding(key.WithKeys("up", "ctrl+p", "shift+tab"), key.WithHelp("↑", "previous")),
		Next:     key.NewBinding(key.WithKeys("down", "ctrl+n", "tab"), key.WithHelp("↓", "next")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Open:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "open")),
		Close:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "close")),
	}
}

func (k KeyMap) empty() bool {
	return len(k.Previous.Keys()) == 0 && len(k.Next.Keys()) == 0 && len(k.Enter.Keys()) == 0
}
