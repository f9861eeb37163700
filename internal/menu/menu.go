package menu

import (
	"fmt"
	"strconv"
	"strings"
)

// RootMenuID identifies the top-level menu when no event key is supplied.
const RootMenuID = "0-menu-"

const subMenuSuffix = "-menu-"

// Item describes one entry of a menu level. Items with children are submenus.
type Item struct {
	Key      string `toml:"key"`
	Label    string `toml:"label"`
	Disabled bool   `toml:"disabled"`
	Children []Item `toml:"items"`
}

// IsSubMenu reports whether the item opens a nested level.
func (i Item) IsSubMenu() bool {
	return len(i.Children) > 0
}

// KeyFor returns the explicit key of an item or synthesises one from its
// position within the level identified by menuID.
func KeyFor(item Item, menuID string, index int) string {
	if strings.TrimSpace(item.Key) != "" {
		return item.Key
	}
	return menuID + "item_" + strconv.Itoa(index)
}

// SubMenuID returns the menu id of the level opened by the submenu item key.
func SubMenuID(key string) string {
	return key + subMenuSuffix
}

// Mode mirrors the layout modes a menu can be rendered in. Only the trigger
// action for submenus depends on it.
type Mode string

const (
	ModeHorizontal    Mode = "horizontal"
	ModeVertical      Mode = "vertical"
	ModeVerticalLeft  Mode = "vertical-left"
	ModeVerticalRight Mode = "vertical-right"
	ModeInline        Mode = "inline"
)

// Trigger names the pointer interaction that opens submenus.
type Trigger string

const (
	TriggerClick Trigger = "click"
	TriggerHover Trigger = "hover"
)

// ParseMode validates a textual mode. Empty input yields ModeVertical.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ModeVertical:
		return ModeVertical, nil
	case ModeHorizontal:
		return ModeHorizontal, nil
	case ModeVerticalLeft:
		return ModeVerticalLeft, nil
	case ModeVerticalRight:
		return ModeVerticalRight, nil
	case ModeInline:
		return ModeInline, nil
	}
	return "", fmt.Errorf("unknown menu mode %q", value)
}

// Trigger returns the submenu trigger for the mode: inline menus only open
// on click.
func (m Mode) Trigger() Trigger {
	if m == ModeInline {
		return TriggerClick
	}
	return TriggerHover
}

// SelectInfo accompanies select and deselect notifications.
type SelectInfo struct {
	Key          string
	KeyPath      []string
	SelectedKeys []string
	Origin       interface{}
}

// ClickInfo accompanies click notifications.
type ClickInfo struct {
	Key     string
	KeyPath []string
	Origin  interface{}
}

// OpenChange requests that a submenu be opened or closed. The receiver owns
// the open key set and decides whether to honour it.
type OpenChange struct {
	Key    string
	Open   bool
	Origin interface{}
}

// HoverEvent reports a pointer entering or leaving an item.
type HoverEvent struct {
	Key   string
	Hover bool
}

// DemoItems returns the built-in menu used when no definition file is given.
func DemoItems() []Item {
	return []Item{
		{Key: "file", Label: "File", Children: []Item{
			{Key: "file:new", Label: "New"},
			{Key: "file:open", Label: "Open"},
			{Key: "file:recent", Label: "Open Recent", Children: []Item{
				{Key: "file:recent:notes", Label: "notes.md"},
				{Key: "file:recent:todo", Label: "todo.txt"},
				{Key: "file:recent:clear", Label: "Clear Recent", Disabled: true},
			}},
			{Key: "file:save", Label: "Save", Disabled: true},
		}},
		{Key: "edit", Label: "Edit", Children: []Item{
			{Key: "edit:undo", Label: "Undo", Disabled: true},
			{Key: "edit:cut", Label: "Cut"},
			{Key: "edit:copy", Label: "Copy"},
			{Key: "edit:paste", Label: "Paste"},
		}},
		{Key: "view", Label: "View", Children: []Item{
			{Key: "view:zoom-in", Label: "Zoom In"},
			{Key: "view:zoom-out", Label: "Zoom Out"},
		}},
		{Key: "help", Label: "Help"},
		{Key: "quit", Label: "Quit"},
	}
}
