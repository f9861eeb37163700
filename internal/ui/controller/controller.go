// Package controller drives one menu level: it seeds and reconciles the
// level's active item, rebuilds its item registry on every render, routes
// keys to the active item or the stepper, and relays item events upwards.
package controller

import (
	"fmt"

	"github.com/atomicstack/popup-menu/internal/logging"
	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/store"
	"github.com/atomicstack/popup-menu/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Listener receives item events. A Controller is itself a Listener, so a
// nested level hands its events to its parent unchanged.
type Listener interface {
	OnSelect(info menu.SelectInfo)
	OnDeselect(info menu.SelectInfo)
	OnClick(info menu.ClickInfo)
	OnOpenChange(change menu.OpenChange)
	OnDestroy(key string)
}

// Props configures a level. ActiveKey is the controlled active key: nil
// leaves the level uncontrolled and a pointer to "" controls it to "none".
type Props struct {
	MenuID             string
	Items              []menu.Item
	ActiveKey          *string
	DefaultActiveFirst bool
	Multiple           bool
	Mode               menu.Mode
	Level              int
	KeyPath            []string
	Store              *store.Store
	Keys               KeyMap
	Listener           Listener
	ManualRef          func(*Controller)
}

// Row is one rendered line of the menu tree.
type Row struct {
	MenuID   string
	Key      string
	Label    string
	Depth    int
	Disabled bool
	Active   bool
	Selected bool
	SubMenu  bool
	Open     bool
}

type phase int

const (
	phaseCreated phase = iota
	phaseMounted
	phaseDestroyed
)

// Controller is a single menu level.
type Controller struct {
	props    Props
	slot     *store.Slot
	registry *state.Registry[Handle]
	items    map[string]menu.Item
	children map[string]*Controller
	// keyboardOpened records submenus opened from the keyboard; their nested
	// level activates its first item.
	keyboardOpened map[string]bool
	rendered       []string
	phase          phase
}

// New creates a level and seeds its active key.
func New(props Props) *Controller {
	props = normalize(props)
	c := &Controller{
		props:          props,
		slot:           props.Store.Slot(props.MenuID),
		items:          make(map[string]menu.Item),
		children:       make(map[string]*Controller),
		keyboardOpened: make(map[string]bool),
	}
	seed := state.ResolveActiveKey(c.childList(), props.ActiveKey, props.DefaultActiveFirst)
	c.slot.Set(seed)
	events.Menu.Seed(props.MenuID, seed)
	return c
}

func normalize(props Props) Props {
	if props.MenuID == "" {
		props.MenuID = menu.RootMenuID
	}
	if props.Level <= 0 {
		props.Level = 1
	}
	if props.Mode == "" {
		props.Mode = menu.ModeVertical
	}
	if props.Keys.empty() {
		props.Keys = DefaultKeyMap()
	}
	if props.Store == nil {
		props.Store = store.New(nil, nil)
	}
	return props
}

// Mount publishes the controller through ManualRef.
func (c *Controller) Mount() {
	if c.phase != phaseCreated {
		return
	}
	c.phase = phaseMounted
	events.Menu.Mount(c.props.MenuID, c.props.Level)
	if c.props.ManualRef != nil {
		c.props.ManualRef(c)
	}
}

// Update swaps in new props and reconciles the stored active key. Props that
// wire the level into the tree (store, listener, ref) carry over when the
// update leaves them unset, so a partial update never detaches the level.
func (c *Controller) Update(props Props) {
	if c.phase == phaseDestroyed {
		return
	}
	prev := c.props
	if props.Store == nil {
		props.Store = prev.Store
	}
	if props.Listener == nil {
		props.Listener = prev.Listener
	}
	if props.ManualRef == nil {
		props.ManualRef = prev.ManualRef
	}
	props = normalize(props)
	c.props = props
	c.reconcile(prev)
}

func (c *Controller) reconcile(prev Props) {
	stored, present := c.slot.Get()
	original := stored
	if c.props.ActiveKey != nil {
		original = *c.props.ActiveKey
	}
	resolved := state.ResolveActiveKey(c.childList(), &original, c.props.DefaultActiveFirst)

	write := func(reason string) {
		if present && resolved == stored {
			return
		}
		c.slot.Set(resolved)
		events.Menu.Reconcile(c.props.MenuID, stored, resolved, reason)
	}

	if resolved != original {
		write("resolve")
		return
	}
	if prev.ActiveKey == nil && c.props.ActiveKey == nil {
		return
	}
	previous := state.ResolveActiveKey(
		state.ChildrenOf(prev.Items, prev.MenuID),
		prev.ActiveKey,
		prev.DefaultActiveFirst,
	)
	if previous != resolved {
		write("controlled")
	}
}

// Destroy tears down nested levels, reports every rendered item as gone and
// drops the level's active-key entry.
func (c *Controller) Destroy() {
	if c.phase == phaseDestroyed {
		return
	}
	for key, child := range c.children {
		child.Destroy()
		delete(c.children, key)
	}
	for _, key := range c.rendered {
		c.OnDestroy(key)
	}
	c.rendered = nil
	c.registry = nil
	c.slot.Clear()
	c.phase = phaseDestroyed
	events.Menu.Destroy(c.props.MenuID)
}

// MenuID returns the level's id.
func (c *Controller) MenuID() string { return c.props.MenuID }

// Props returns the props the level currently renders.
func (c *Controller) Props() Props { return c.props }

// ActiveKey returns the stored active key, "" when none.
func (c *Controller) ActiveKey() string {
	key, _ := c.slot.Get()
	return key
}

// Handles returns the handles registered by the last render.
func (c *Controller) Handles() []Handle {
	return c.registry.Flat()
}

// Render rebuilds the item registry and returns the level's rows followed,
// under each open submenu, by the nested level's rows.
func (c *Controller) Render() []Row {
	if c.phase == phaseDestroyed {
		return nil
	}
	st := c.props.Store.GetState()
	active := st.ActiveKey[c.props.MenuID]

	builder := state.NewRegistryBuilder[Handle]()
	rows := make([]Row, 0, len(c.props.Items))
	items := make(map[string]menu.Item, len(c.props.Items))
	keys := make([]string, 0, len(c.props.Items))
	submenus := make(map[string]struct{})

	for i, item := range c.props.Items {
		itemKey := menu.KeyFor(item, c.props.MenuID, i)
		items[itemKey] = item
		keys = append(keys, itemKey)
		base := itemHandle{
			owner:    c,
			key:      itemKey,
			label:    item.Label,
			disabled: item.Disabled,
			active:   !item.Disabled && itemKey == active,
		}
		row := Row{
			MenuID:   c.props.MenuID,
			Key:      itemKey,
			Label:    item.Label,
			Depth:    c.props.Level - 1,
			Disabled: item.Disabled,
			Active:   base.active,
			Selected: st.IsSelected(itemKey),
		}

		if !item.IsSubMenu() {
			builder.Register(&leafHandle{itemHandle: base})
			rows = append(rows, row)
			continue
		}

		submenus[itemKey] = struct{}{}
		open := !item.Disabled && st.IsOpen(itemKey)
		handle := &subMenuHandle{itemHandle: base, open: open}
		row.SubMenu = true
		row.Open = open
		builder.Register(handle)
		rows = append(rows, row)
		if open {
			handle.child = c.ensureChild(itemKey, item)
			rows = append(rows, handle.child.Render()...)
		} else if child, ok := c.children[itemKey]; ok {
			child.Update(c.childProps(itemKey, item))
		}
	}

	c.registry = builder.Build()
	if dups := c.registry.Duplicates(); len(dups) > 0 {
		events.Menu.Duplicate(c.props.MenuID, dups)
		logging.Error(fmt.Errorf("menu %s: duplicate item keys %v", c.props.MenuID, dups))
	}

	for key, child := range c.children {
		if _, ok := submenus[key]; !ok {
			child.Destroy()
			delete(c.children, key)
			delete(c.keyboardOpened, key)
		}
	}
	for _, key := range c.rendered {
		if _, ok := items[key]; !ok {
			c.OnDestroy(key)
		}
	}
	c.rendered = keys
	c.items = items
	return rows
}

func (c *Controller) childProps(key string, item menu.Item) Props {
	path := make([]string, 0, len(c.props.KeyPath)+1)
	path = append(path, key)
	path = append(path, c.props.KeyPath...)
	return Props{
		MenuID:             menu.SubMenuID(key),
		Items:              item.Children,
		DefaultActiveFirst: c.keyboardOpened[key],
		Multiple:           c.props.Multiple,
		Mode:               c.props.Mode,
		Level:              c.props.Level + 1,
		KeyPath:            path,
		Store:              c.props.Store,
		Keys:               c.props.Keys,
		Listener:           c,
	}
}

func (c *Controller) ensureChild(key string, item menu.Item) *Controller {
	props := c.childProps(key, item)
	if child, ok := c.children[key]; ok {
		child.Update(props)
		return child
	}
	child := New(props)
	child.Mount()
	c.children[key] = child
	return child
}

// OnKeyDown offers msg to the active item, then falls back to stepping the
// active item. callback receives the newly activated handle. It reports
// whether the key was consumed.
func (c *Controller) OnKeyDown(msg tea.KeyMsg, callback func(Handle)) bool {
	if c.phase == phaseDestroyed || c.registry == nil {
		return false
	}
	handles := c.registry.Flat()
	for _, h := range handles {
		if h.Active() && h.HandleKey(msg) {
			events.Menu.Delegated(c.props.MenuID, h.EventKey(), msg.String())
			return true
		}
	}

	var direction state.Direction
	switch {
	case key.Matches(msg, c.props.Keys.Previous):
		direction = state.Previous
	case key.Matches(msg, c.props.Keys.Next):
		direction = state.Next
	default:
		return false
	}

	current := c.ActiveKey()
	next, result := state.Step(direction, handles, current, c.props.DefaultActiveFirst)
	if result != state.StepMoved {
		events.Menu.Step(c.props.MenuID, current, "", result.String())
		return false
	}
	c.slot.Set(next.EventKey())
	events.Menu.Step(c.props.MenuID, current, next.EventKey(), result.String())
	if callback != nil {
		callback(next)
	}
	return true
}

// OnItemHover activates the hovered item and clears the active item when the
// pointer leaves. Hovering a disabled or unknown item does nothing.
func (c *Controller) OnItemHover(ev menu.HoverEvent) {
	if c.phase == phaseDestroyed {
		return
	}
	events.Menu.Hover(c.props.MenuID, ev.Key, ev.Hover)
	if !ev.Hover {
		c.slot.Set("")
		return
	}
	if !state.IsActivatable(c.childList(), ev.Key) {
		return
	}
	c.slot.Set(ev.Key)
}

// Activate makes key the active item if it is an enabled item of the level.
func (c *Controller) Activate(key string) bool {
	if c.phase == phaseDestroyed || !state.IsActivatable(c.childList(), key) {
		return false
	}
	c.slot.Set(key)
	events.Menu.Activate(c.props.MenuID, key)
	return true
}

// Click handles a pointer click on one of the level's items: leaves emit
// click and select, submenus toggle open.
func (c *Controller) Click(key string, origin interface{}) bool {
	item, ok := c.items[key]
	if !ok || item.Disabled {
		return false
	}
	if item.IsSubMenu() {
		open := c.props.Store.GetState().IsOpen(key)
		c.setSubMenuOpen(key, !open, false, origin)
		return true
	}
	c.clickItem(key, origin)
	return true
}

// SetOpen asks the consumer to open or close the submenu key, as hovering
// does under a hover trigger.
func (c *Controller) SetOpen(key string, open bool, origin interface{}) bool {
	item, ok := c.items[key]
	if !ok || item.Disabled || !item.IsSubMenu() {
		return false
	}
	if c.props.Store.GetState().IsOpen(key) == open {
		return false
	}
	c.setSubMenuOpen(key, open, false, origin)
	return true
}

// Find returns the level with menuID among this level and its open
// descendants.
func (c *Controller) Find(menuID string) *Controller {
	if c.props.MenuID == menuID {
		return c
	}
	for _, child := range c.children {
		if found := child.Find(menuID); found != nil {
			return found
		}
	}
	return nil
}

func (c *Controller) setSubMenuOpen(key string, open, keyboard bool, origin interface{}) {
	if open {
		c.keyboardOpened[key] = keyboard
	} else {
		delete(c.keyboardOpened, key)
	}
	c.OnOpenChange(menu.OpenChange{Key: key, Open: open, Origin: origin})
}

func (c *Controller) clickItem(key string, origin interface{}) {
	path := make([]string, 0, len(c.props.KeyPath)+1)
	path = append(path, key)
	path = append(path, c.props.KeyPath...)

	st := c.props.Store.GetState()
	c.OnClick(menu.ClickInfo{Key: key, KeyPath: path, Origin: origin})
	selected := st.IsSelected(key)
	switch {
	case c.props.Multiple && selected:
		c.OnDeselect(menu.SelectInfo{
			Key:          key,
			KeyPath:      path,
			SelectedKeys: state.WithoutKey(st.SelectedKeys, key),
			Origin:       origin,
		})
	case !selected:
		c.OnSelect(menu.SelectInfo{
			Key:          key,
			KeyPath:      path,
			SelectedKeys: state.WithKey(st.SelectedKeys, key, c.props.Multiple),
			Origin:       origin,
		})
	}
}

func (c *Controller) childList() []state.Child {
	return state.ChildrenOf(c.props.Items, c.props.MenuID)
}

func (c *Controller) OnSelect(info menu.SelectInfo) {
	events.Relay.Select(c.props.MenuID, info.Key)
	if c.props.Listener != nil {
		c.props.Listener.OnSelect(info)
	}
}

func (c *Controller) OnDeselect(info menu.SelectInfo) {
	events.Relay.Deselect(c.props.MenuID, info.Key)
	if c.props.Listener != nil {
		c.props.Listener.OnDeselect(info)
	}
}

func (c *Controller) OnClick(info menu.ClickInfo) {
	events.Relay.Click(c.props.MenuID, info.Key)
	if c.props.Listener != nil {
		c.props.Listener.OnClick(info)
	}
}

func (c *Controller) OnOpenChange(change menu.OpenChange) {
	events.Relay.OpenChange(c.props.MenuID, change.Key, change.Open)
	if c.props.Listener != nil {
		c.props.Listener.OnOpenChange(change)
	}
}

func (c *Controller) OnDestroy(key string) {
	events.Relay.Destroy(c.props.MenuID, key)
	if c.props.Listener != nil {
		c.props.Listener.OnDestroy(key)
	}
}
