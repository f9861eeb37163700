package state

import "github.com/atomicstack/popup-menu/internal/menu"

// Child is the part of a menu item the active-key resolution depends on.
type Child struct {
	Key      string
	Disabled bool
}

// ChildrenOf resolves the keys of items rendered under menuID.
func ChildrenOf(items []menu.Item, menuID string) []Child {
	children := make([]Child, len(items))
	for i, item := range items {
		children[i] = Child{Key: menu.KeyFor(item, menuID, i), Disabled: item.Disabled}
	}
	return children
}

// ResolveActiveKey decides which child of a level is active.
//
// A controlled key (non-nil explicit) wins verbatim when it names an enabled
// child. Otherwise the first enabled child is chosen when defaultActiveFirst
// is set, and no child ("") when it is not.
func ResolveActiveKey(children []Child, explicit *string, defaultActiveFirst bool) string {
	if explicit != nil && *explicit != "" {
		for _, c := range children {
			if !c.Disabled && c.Key == *explicit {
				return *explicit
			}
		}
	}
	if !defaultActiveFirst {
		return ""
	}
	for _, c := range children {
		if !c.Disabled {
			return c.Key
		}
	}
	return ""
}

// IsActivatable reports whether key names an enabled child.
func IsActivatable(children []Child, key string) bool {
	if key == "" {
		return false
	}
	for _, c := range children {
		if c.Key == key {
			return !c.Disabled
		}
	}
	return false
}
