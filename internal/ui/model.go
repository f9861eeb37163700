package ui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/atomicstack/popup-menu/internal/backend"
	"github.com/atomicstack/popup-menu/internal/logging"
	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/store"
	"github.com/atomicstack/popup-menu/internal/theme"
	"github.com/atomicstack/popup-menu/internal/ui/command"
	"github.com/atomicstack/popup-menu/internal/ui/controller"
	uistate "github.com/atomicstack/popup-menu/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type level = uistate.Level

const defaultRootTitle = "menu"

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Metrics receives interaction counts. A nil Metrics disables counting.
type Metrics interface {
	KeyDispatched(handled bool)
	Relayed(event string)
	Reloaded(err error)
	StateChanged(open, selected int)
}

type noopMetrics struct{}

func (noopMetrics) KeyDispatched(bool)    {}
func (noopMetrics) Relayed(string)        {}
func (noopMetrics) Reloaded(error)        {}
func (noopMetrics) StateChanged(int, int) {}

// Options configures the model.
type Options struct {
	Title              string
	Items              []menu.Item
	Mode               menu.Mode
	DefaultActiveFirst bool
	Multiple           bool
	// ActiveKey controls the root level's active item when non-nil.
	ActiveKey    *string
	OpenKeys     []string
	SelectedKeys []string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	Watcher      *backend.Watcher
	Metrics      Metrics
}

// Result is what the user picked. It is empty when the menu was cancelled.
type Result struct {
	Key          string
	KeyPath      []string
	Labels       []string
	SelectedKeys []string
}

// Model implements the Bubble Tea model for the popup menu. It is the
// consumer of the root menu level: it owns the open and selected keys and
// writes them into the shared store in response to relayed events.
type Model struct {
	level    *level
	registry *menu.Registry
	store    *store.Store
	root     *controller.Controller
	bus      *command.Bus
	keys     controller.KeyMap
	rows     []controller.Row

	mode               menu.Mode
	defaultActiveFirst bool
	multiple           bool
	activeKey          *string

	filter     textinput.Model
	filterOpen []string
	filtering  bool
	hovered    *controller.Row

	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	backend *backend.Watcher
	metrics Metrics

	result     *Result
	quitting   bool
	dispatchID string

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state with the menu tree and configuration.
func NewModel(opts Options) *Model {
	title := opts.Title
	if title == "" {
		title = defaultRootTitle
	}
	mode := opts.Mode
	if mode == "" {
		mode = menu.ModeVertical
	}
	lvl := uistate.NewLevel(menu.RootMenuID, title, opts.Items)
	m := &Model{
		level:              lvl,
		registry:           buildRegistry(lvl.Full),
		store:              store.New(opts.OpenKeys, opts.SelectedKeys),
		bus:                command.New(),
		keys:               controller.DefaultKeyMap(),
		mode:               mode,
		defaultActiveFirst: opts.DefaultActiveFirst,
		multiple:           opts.Multiple,
		activeKey:          opts.ActiveKey,
		showFooter:         opts.ShowFooter,
		verbose:            opts.Verbose,
		backend:            opts.Watcher,
		metrics:            opts.Metrics,
	}
	if m.metrics == nil {
		m.metrics = noopMetrics{}
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.filter = newFilterInput()
	m.store.Subscribe(m.onStoreChange)

	root := controller.New(m.rootProps())
	root.Mount()
	m.sync()
	m.registerHandlers()
	return m
}

func (m *Model) rootProps() controller.Props {
	return controller.Props{
		MenuID:             menu.RootMenuID,
		Items:              m.level.Items,
		ActiveKey:          m.activeKey,
		DefaultActiveFirst: m.defaultActiveFirst,
		Multiple:           m.multiple,
		Mode:               m.mode,
		Store:              m.store,
		Keys:               m.keys,
		Listener:           m.bus,
		ManualRef:          func(c *controller.Controller) { m.root = c },
	}
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filter.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if _, isKey := msg.(tea.KeyMsg); !isKey {
		if cmd := m.updateFilterCursor(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):            m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):          m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):     m.handleWindowSizeMsg,
		reflect.TypeOf(command.SelectMsg{}):     m.handleSelectMsg,
		reflect.TypeOf(command.DeselectMsg{}):   m.handleDeselectMsg,
		reflect.TypeOf(command.ClickMsg{}):      m.handleClickMsg,
		reflect.TypeOf(command.OpenChangeMsg{}): m.handleOpenChangeMsg,
		reflect.TypeOf(command.DestroyMsg{}):    m.handleDestroyMsg,
		reflect.TypeOf(backendEventMsg{}):       m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):        m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// maxRelayRounds bounds how often one update re-renders to apply events
// that earlier rounds produced (an open change can destroy nested items).
const maxRelayRounds = 8

// finishUpdate re-renders the menu so every level's registry reflects the
// store, then applies the events queued while handling the message. Relays
// are applied here rather than as a later command, so the next message sees
// the open and selected keys this one produced.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	id := m.dispatchID
	m.dispatchID = ""
	m.sync()
	for round := 0; round < maxRelayRounds && m.bus.Pending() > 0; round++ {
		if cmd := m.applyRelay(m.bus.Drain(id)); cmd != nil {
			cmds = append(cmds, cmd)
		}
		m.sync()
	}
	if id != "" {
		logging.SetDispatch("")
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// onStoreChange observes every store write.
func (m *Model) onStoreChange(st store.State) {
	events.Store.Changed(st.OpenKeys, st.SelectedKeys)
	m.metrics.StateChanged(len(st.OpenKeys), len(st.SelectedKeys))
}

// sync runs a render pass and keeps the deepest active row in view.
func (m *Model) sync() {
	if m.root == nil {
		return
	}
	m.rows = m.root.Render()
	if idx := deepestActiveRow(m.rows); idx >= 0 {
		m.level.SetCursor(idx, len(m.rows))
	} else {
		m.level.SetCursor(m.level.Cursor, len(m.rows))
	}
	m.level.EnsureCursorVisible(len(m.rows), m.maxVisibleItems())
}

func deepestActiveRow(rows []controller.Row) int {
	best := -1
	for i, row := range rows {
		if !row.Active {
			continue
		}
		if best == -1 || row.Depth > rows[best].Depth {
			best = i
		}
	}
	return best
}

// Result returns the user's pick once the program has quit.
func (m *Model) Result() (Result, bool) {
	if m.result == nil {
		return Result{}, false
	}
	return *m.result, true
}

// Rows returns the rows of the last render pass.
func (m *Model) Rows() []controller.Row {
	return append([]controller.Row(nil), m.rows...)
}

// Store exposes the shared store.
func (m *Model) Store() *store.Store {
	return m.store
}

func buildRegistry(items []menu.Item) *menu.Registry {
	reg := menu.BuildRegistry(items)
	if dups := reg.Duplicates(); len(dups) > 0 {
		logging.Error(fmt.Errorf("menu definition has duplicate keys %v; the last one wins", dups))
	}
	return reg
}

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "» "
	ti.Placeholder = "(type to search)"
	if styles.FilterPrompt != nil {
		ti.PromptStyle = *styles.FilterPrompt
	}
	if styles.Filter != nil {
		ti.TextStyle = *styles.Filter
	}
	if styles.FilterPlaceholder != nil {
		ti.PlaceholderStyle = *styles.FilterPlaceholder
	}
	if styles.Cursor != nil {
		ti.Cursor.Style = *styles.Cursor
	}
	ti.Focus()
	return ti
}

// disableCursorBlink keeps the caret static, which keeps blink ticks out of
// programmatic runs.
func (m *Model) disableCursorBlink() {
	m.filter.Cursor.SetMode(cursor.CursorStatic)
}
