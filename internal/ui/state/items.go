package state

import "github.com/atomicstack/popup-menu/internal/menu"

// CloneItems produces a deep copy of the provided item tree.
func CloneItems(items []menu.Item) []menu.Item {
	if items == nil {
		return nil
	}
	dup := make([]menu.Item, len(items))
	for i, item := range items {
		dup[i] = item
		dup[i].Children = CloneItems(item.Children)
	}
	return dup
}

// PinKeys copies the tree and writes every synthesised key into Item.Key so
// the key survives reordering.
func PinKeys(items []menu.Item, menuID string) []menu.Item {
	if items == nil {
		return nil
	}
	out := make([]menu.Item, len(items))
	for i, item := range items {
		key := menu.KeyFor(item, menuID, i)
		out[i] = item
		out[i].Key = key
		out[i].Children = PinKeys(item.Children, menu.SubMenuID(key))
	}
	return out
}
