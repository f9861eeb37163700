package ui

import (
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/popup-menu/internal/backend"
	"github.com/atomicstack/popup-menu/internal/logging"
	"github.com/atomicstack/popup-menu/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func newTestHarness(opts Options) *Harness {
	if opts.Items == nil {
		opts.Items = menu.DemoItems()
	}
	return NewHarness(NewModel(opts))
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeText(h *Harness, text string) {
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func activeKey(h *Harness, menuID string) string {
	return h.Model().Store().GetState().ActiveKey[menuID]
}

func rowKeys(h *Harness) []string {
	rows := h.Model().Rows()
	keys := make([]string, len(rows))
	for i, row := range rows {
		keys[i] = row.Key
	}
	return keys
}

func TestArrowDownActivatesFirstItem(t *testing.T) {
	h := newTestHarness(Options{})
	if got := activeKey(h, menu.RootMenuID); got != "" {
		t.Fatalf("expected no active item initially, got %q", got)
	}
	h.Send(keyOf(tea.KeyDown))
	if got := activeKey(h, menu.RootMenuID); got != "file" {
		t.Fatalf("expected file to be active, got %q", got)
	}
	if h.Quit() {
		t.Fatal("navigation must not quit")
	}
}

func TestKeyboardOpenAndSelect(t *testing.T) {
	h := newTestHarness(Options{})
	h.Send(keyOf(tea.KeyDown))
	h.Send(keyOf(tea.KeyRight))

	if open := h.Model().Store().GetState().OpenKeys; !reflect.DeepEqual(open, []string{"file"}) {
		t.Fatalf("expected file to be open, got %v", open)
	}
	if got := activeKey(h, menu.SubMenuID("file")); got != "file:new" {
		t.Fatalf("expected keyboard opened submenu to activate its first item, got %q", got)
	}
	view := ansi.Strip(h.View())
	if !strings.Contains(view, "New") || !strings.Contains(view, "File ▾") {
		t.Fatalf("expected open submenu in view, got:\n%s", view)
	}

	h.Send(keyOf(tea.KeyEnter))
	if !h.Quit() {
		t.Fatal("expected selecting a leaf to quit")
	}
	result, ok := h.Model().Result()
	if !ok {
		t.Fatal("expected a result")
	}
	if result.Key != "file:new" {
		t.Fatalf("unexpected key %q", result.Key)
	}
	if !reflect.DeepEqual(result.KeyPath, []string{"file:new", "file"}) {
		t.Fatalf("unexpected key path %v", result.KeyPath)
	}
	if !reflect.DeepEqual(result.Labels, []string{"File", "New"}) {
		t.Fatalf("unexpected labels %v", result.Labels)
	}
}

func TestOpeningSubmenuClosesSiblings(t *testing.T) {
	h := newTestHarness(Options{OpenKeys: []string{"view"}})
	h.Send(keyOf(tea.KeyDown))
	if got := activeKey(h, menu.RootMenuID); got != "file" {
		t.Fatalf("expected file to be active, got %q", got)
	}
	h.Send(keyOf(tea.KeyRight))
	if open := h.Model().Store().GetState().OpenKeys; !reflect.DeepEqual(open, []string{"file"}) {
		t.Fatalf("expected only file to stay open, got %v", open)
	}
}

func TestLeftClosesDeepestSubmenuFirst(t *testing.T) {
	h := newTestHarness(Options{})
	h.Send(keyOf(tea.KeyDown))
	h.Send(keyOf(tea.KeyRight))
	h.Send(keyOf(tea.KeyDown))
	h.Send(keyOf(tea.KeyDown))
	if got := activeKey(h, menu.SubMenuID("file")); got != "file:recent" {
		t.Fatalf("expected recent to be active, got %q", got)
	}
	h.Send(keyOf(tea.KeyEnter))
	if open := h.Model().Store().GetState().OpenKeys; !reflect.DeepEqual(open, []string{"file", "file:recent"}) {
		t.Fatalf("expected nested submenu open, got %v", open)
	}

	h.Send(keyOf(tea.KeyLeft))
	if open := h.Model().Store().GetState().OpenKeys; !reflect.DeepEqual(open, []string{"file"}) {
		t.Fatalf("expected only the nested submenu to close, got %v", open)
	}
	h.Send(keyOf(tea.KeyLeft))
	if open := h.Model().Store().GetState().OpenKeys; len(open) != 0 {
		t.Fatalf("expected all submenus closed, got %v", open)
	}
}

func TestMultipleSelectionTogglesAndConfirms(t *testing.T) {
	h := newTestHarness(Options{
		Items:              []menu.Item{{Key: "a", Label: "Alpha"}, {Key: "b", Label: "Beta"}},
		DefaultActiveFirst: true,
		Multiple:           true,
	})
	h.Send(keyOf(tea.KeyEnter))
	h.Send(keyOf(tea.KeyDown))
	h.Send(keyOf(tea.KeyEnter))
	if got := h.Model().Store().GetState().SelectedKeys; !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("expected both selected, got %v", got)
	}
	if h.Quit() {
		t.Fatal("multiple selection must not quit on select")
	}
	if view := ansi.Strip(h.View()); !strings.Contains(view, "[✓] Alpha") {
		t.Fatalf("expected selection marks in view, got:\n%s", view)
	}

	h.Send(keyOf(tea.KeyUp))
	h.Send(keyOf(tea.KeyEnter))
	if got := h.Model().Store().GetState().SelectedKeys; !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("expected a to be deselected, got %v", got)
	}

	h.Send(keyOf(tea.KeyCtrlD))
	if !h.Quit() {
		t.Fatal("expected confirm to quit")
	}
	result, _ := h.Model().Result()
	if !reflect.DeepEqual(result.SelectedKeys, []string{"b"}) {
		t.Fatalf("unexpected selection %v", result.SelectedKeys)
	}
}

func TestEscapeCancelsWithoutResult(t *testing.T) {
	h := newTestHarness(Options{})
	h.Send(keyOf(tea.KeyEsc))
	if !h.Quit() {
		t.Fatal("expected escape to quit")
	}
	if _, ok := h.Model().Result(); ok {
		t.Fatal("cancelled menu must not report a result")
	}
	if h.View() != "" {
		t.Fatal("expected an empty view after quitting")
	}
}

func TestHoverActivatesAndOpens(t *testing.T) {
	h := newTestHarness(Options{})
	// line 0 is the header, rows start at line 1
	h.Send(tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionMotion})
	if got := activeKey(h, menu.RootMenuID); got != "edit" {
		t.Fatalf("expected hover to activate edit, got %q", got)
	}
	if open := h.Model().Store().GetState().OpenKeys; !reflect.DeepEqual(open, []string{"edit"}) {
		t.Fatalf("expected hover to open edit, got %v", open)
	}
	if got := activeKey(h, menu.SubMenuID("edit")); got != "" {
		t.Fatalf("pointer opened submenu should have no active item, got %q", got)
	}

	// edit:cut sits below edit and the disabled edit:undo
	h.Send(tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionMotion})
	if got := activeKey(h, menu.SubMenuID("edit")); got != "edit:cut" {
		t.Fatalf("expected nested hover to activate cut, got %q", got)
	}
	if got := activeKey(h, menu.RootMenuID); got != "edit" {
		t.Fatalf("expected parent to stay active, got %q", got)
	}

	h.Send(tea.MouseMsg{X: 3, Y: 40, Action: tea.MouseActionMotion})
	if got := activeKey(h, menu.SubMenuID("edit")); got != "" {
		t.Fatalf("expected hover leave to clear the active item, got %q", got)
	}
}

func TestInlineModeOpensOnClickOnly(t *testing.T) {
	h := newTestHarness(Options{Mode: menu.ModeInline})
	h.Send(tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionMotion})
	if open := h.Model().Store().GetState().OpenKeys; len(open) != 0 {
		t.Fatalf("inline mode must not open on hover, got %v", open)
	}
	h.Send(tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if open := h.Model().Store().GetState().OpenKeys; !reflect.DeepEqual(open, []string{"edit"}) {
		t.Fatalf("expected click to open edit, got %v", open)
	}
	h.Send(tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if open := h.Model().Store().GetState().OpenKeys; len(open) != 0 {
		t.Fatalf("expected second click to close edit, got %v", open)
	}
}

func TestClickOnLeafSelects(t *testing.T) {
	h := newTestHarness(Options{Mode: menu.ModeInline})
	h.Send(tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !h.Quit() {
		t.Fatal("expected click on leaf to select and quit")
	}
	if result, _ := h.Model().Result(); result.Key != "help" {
		t.Fatalf("expected help, got %q", result.Key)
	}
}

func TestControlledActiveKey(t *testing.T) {
	key := "view"
	h := newTestHarness(Options{ActiveKey: &key})
	if got := activeKey(h, menu.RootMenuID); got != "view" {
		t.Fatalf("expected controlled active key, got %q", got)
	}
	h.Send(keyOf(tea.KeyDown))
	if got := activeKey(h, menu.RootMenuID); got != "help" {
		t.Fatalf("expected stepping to move from the controlled key, got %q", got)
	}
}

func TestRowKeysFollowOpenState(t *testing.T) {
	h := newTestHarness(Options{OpenKeys: []string{"view"}})
	want := []string{"file", "edit", "view", "view:zoom-in", "view:zoom-out", "help", "quit"}
	if got := rowKeys(h); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected rows %v", got)
	}
}

func TestFilterOpensMatchingBranch(t *testing.T) {
	h := newTestHarness(Options{})
	typeText(h, "todo")

	want := []string{"file", "file:recent", "file:recent:todo"}
	if got := rowKeys(h); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected filtered rows %v", got)
	}
	if got := activeKey(h, menu.SubMenuID("file:recent")); got != "file:recent:todo" {
		t.Fatalf("expected best match to be active, got %q", got)
	}
	view := ansi.Strip(h.View())
	if strings.Contains(view, "Edit") {
		t.Fatalf("filtered view should hide non matching items:\n%s", view)
	}
	if !strings.Contains(view, "todo") {
		t.Fatalf("expected the query in the prompt:\n%s", view)
	}

	h.Send(keyOf(tea.KeyEnter))
	if !h.Quit() {
		t.Fatal("expected enter to select the best match")
	}
	result, _ := h.Model().Result()
	if !reflect.DeepEqual(result.KeyPath, []string{"file:recent:todo", "file:recent", "file"}) {
		t.Fatalf("unexpected key path %v", result.KeyPath)
	}
}

func TestEscapeClearsFilterBeforeQuitting(t *testing.T) {
	h := newTestHarness(Options{})
	typeText(h, "zoom")
	if open := h.Model().Store().GetState().OpenKeys; !reflect.DeepEqual(open, []string{"view"}) {
		t.Fatalf("expected filter to open view, got %v", open)
	}

	h.Send(keyOf(tea.KeyEsc))
	if h.Quit() {
		t.Fatal("first escape should only clear the filter")
	}
	if open := h.Model().Store().GetState().OpenKeys; len(open) != 0 {
		t.Fatalf("expected open keys from before the filter, got %v", open)
	}
	if got := rowKeys(h); len(got) != 5 {
		t.Fatalf("expected the full menu back, got %v", got)
	}

	h.Send(keyOf(tea.KeyEsc))
	if !h.Quit() {
		t.Fatal("second escape should quit")
	}
}

func TestFilterWithoutMatches(t *testing.T) {
	h := newTestHarness(Options{})
	typeText(h, "qqq")
	if view := ansi.Strip(h.View()); !strings.Contains(view, `No matches for "qqq"`) {
		t.Fatalf("expected empty filter message, got:\n%s", view)
	}
}

func TestReloadReplacesItems(t *testing.T) {
	h := newTestHarness(Options{OpenKeys: []string{"edit"}})
	h.Send(backendEventMsg{event: backend.Event{
		Path: "menu.toml",
		Definition: menu.Definition{
			Title: "Reloaded",
			Items: []menu.Item{{Key: "file", Label: "File"}, {Key: "help", Label: "Help"}},
		},
	}})

	if got := rowKeys(h); !reflect.DeepEqual(got, []string{"file", "help"}) {
		t.Fatalf("unexpected rows after reload %v", got)
	}
	if open := h.Model().Store().GetState().OpenKeys; len(open) != 0 {
		t.Fatalf("expected removed submenu to leave the open keys, got %v", open)
	}
	if view := ansi.Strip(h.View()); !strings.HasPrefix(view, "Reloaded") {
		t.Fatalf("expected reloaded title, got:\n%s", view)
	}
}

func TestReloadErrorKeepsMenu(t *testing.T) {
	logging.Configure(t.TempDir() + "/popup-menu.log")
	t.Cleanup(func() { logging.Configure("") })

	h := newTestHarness(Options{})
	h.Send(backendEventMsg{event: backend.Event{Path: "menu.toml", Err: errTest("bad definition")}})
	if got := rowKeys(h); len(got) != 5 {
		t.Fatalf("expected the menu to survive a failed reload, got %v", got)
	}
	if view := ansi.Strip(h.View()); !strings.Contains(view, "Error: reload failed: bad definition") {
		t.Fatalf("expected reload error in view, got:\n%s", view)
	}
}

func TestViewportFollowsActiveRow(t *testing.T) {
	h := newTestHarness(Options{Height: 5})
	for i := 0; i < 4; i++ {
		h.Send(keyOf(tea.KeyDown))
	}
	if got := activeKey(h, menu.RootMenuID); got != "help" {
		t.Fatalf("expected help to be active, got %q", got)
	}
	view := ansi.Strip(h.View())
	if !strings.Contains(view, "Help") || strings.Contains(view, "Edit") {
		t.Fatalf("expected viewport to scroll to the active row, got:\n%s", view)
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }

func TestRelayedSelectionAppliesBeforeNextKey(t *testing.T) {
	m := NewModel(Options{
		Items:              []menu.Item{{Key: "a", Label: "Alpha"}, {Key: "b", Label: "Beta"}},
		DefaultActiveFirst: true,
		Multiple:           true,
	})
	// both keys are handled before any returned command runs, as when the
	// terminal delivers them in one read
	m.Update(keyOf(tea.KeyEnter))
	if got := m.Store().GetState().SelectedKeys; !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("expected a to be selected within the same update, got %v", got)
	}
	m.Update(keyOf(tea.KeyEnter))
	if got := m.Store().GetState().SelectedKeys; len(got) != 0 {
		t.Fatalf("expected the second enter to deselect a, got %v", got)
	}
}

func TestRelayedOpenAppliesBeforeNextKey(t *testing.T) {
	m := NewModel(Options{Items: menu.DemoItems()})
	m.Update(keyOf(tea.KeyDown))
	m.Update(keyOf(tea.KeyRight))
	m.Update(keyOf(tea.KeyDown))

	st := m.Store().GetState()
	if !reflect.DeepEqual(st.OpenKeys, []string{"file"}) {
		t.Fatalf("expected file to be open, got %v", st.OpenKeys)
	}
	if got := st.ActiveKey[menu.RootMenuID]; got != "file" {
		t.Fatalf("expected the root to stay on the open submenu, got %q", got)
	}
	if got := st.ActiveKey[menu.SubMenuID("file")]; got != "file:open" {
		t.Fatalf("expected down to move inside the submenu, got %q", got)
	}
}

type stateMetrics struct {
	open, selected int
	changes        int
}

func (*stateMetrics) KeyDispatched(bool) {}
func (*stateMetrics) Relayed(string)     {}
func (*stateMetrics) Reloaded(error)     {}

func (s *stateMetrics) StateChanged(open, selected int) {
	s.open, s.selected = open, selected
	s.changes++
}

func TestStoreChangesReachMetrics(t *testing.T) {
	metrics := &stateMetrics{}
	h := newTestHarness(Options{Metrics: metrics, Multiple: true})
	h.Send(keyOf(tea.KeyDown))
	h.Send(keyOf(tea.KeyRight))
	if metrics.open != 1 {
		t.Fatalf("expected one open submenu reported, got %d", metrics.open)
	}
	h.Send(keyOf(tea.KeyEnter))
	if metrics.selected != 1 {
		t.Fatalf("expected one selected item reported, got %d", metrics.selected)
	}
	if metrics.changes == 0 {
		t.Fatal("expected store writes to be observed")
	}
}
