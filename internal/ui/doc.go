// Package ui contains the Bubble Tea program that renders the popup menu.
// The package is structured so the Model type focuses on message
// orchestration, while dedicated helpers own navigation, input, rendering,
// and the consumer side of the menu state.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Keys that edit the filter go to the filter prompt (internal/ui/input.go).
//     Every other key is dispatched to the root menu level
//     (internal/ui/controller), which offers it to its active item and falls
//     back to stepping the active item.
//   - Pointer motion becomes hover events on the level owning the row under
//     the pointer; presses become clicks (internal/ui/navigation.go).
//   - After every message the model runs a render pass so each level rebuilds
//     its item registry, then drains the item events queued on the
//     internal/ui/command bus and applies them before Update returns, so the
//     next message always sees the keys they wrote.
//
// State ownership:
//   - Active items live in the shared internal/store.Store; every level writes
//     only its own entry.
//   - Open and selected keys belong to the model. Relay handlers
//     (internal/ui/commands.go) write them into the store: opening a submenu
//     closes its siblings, selecting ends the menu unless multiple selection
//     is enabled, and destroyed items are pruned.
//   - The filter and viewport live in internal/ui/state.Level.
//
// Backend interactions:
//   - A backend.Watcher reloads the menu definition file; the reloaded tree
//     reaches the root level as a prop update.
package ui
