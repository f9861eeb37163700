// Package command queues item events relayed by the root menu level as
// Bubble Tea messages for the model to apply.
package command

import (
	"sync"

	"github.com/atomicstack/popup-menu/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

type SelectMsg struct{ Info menu.SelectInfo }

type DeselectMsg struct{ Info menu.SelectInfo }

type ClickMsg struct{ Info menu.ClickInfo }

type OpenChangeMsg struct{ Change menu.OpenChange }

type DestroyMsg struct{ Key string }

// RelayMsg holds the events queued since the last drain, in emission order.
// ID correlates the batch with the key dispatch that produced it, if any.
type RelayMsg struct {
	ID   string
	Msgs []tea.Msg
}

// Bus is the listener of the root menu level. It queues events until Drain.
type Bus struct {
	mu      sync.Mutex
	pending []tea.Msg
}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

func (b *Bus) OnSelect(info menu.SelectInfo)       { b.queue(SelectMsg{Info: info}) }
func (b *Bus) OnDeselect(info menu.SelectInfo)     { b.queue(DeselectMsg{Info: info}) }
func (b *Bus) OnClick(info menu.ClickInfo)         { b.queue(ClickMsg{Info: info}) }
func (b *Bus) OnOpenChange(change menu.OpenChange) { b.queue(OpenChangeMsg{Change: change}) }
func (b *Bus) OnDestroy(key string)                { b.queue(DestroyMsg{Key: key}) }

func (b *Bus) queue(msg tea.Msg) {
	b.mu.Lock()
	b.pending = append(b.pending, msg)
	b.mu.Unlock()
}

// Pending reports how many events are queued.
func (b *Bus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Drain empties the queue. The model applies the returned events before it
// handles another message, so every key sees the open and selected keys its
// predecessors produced.
func (b *Bus) Drain(id string) RelayMsg {
	b.mu.Lock()
	msgs := b.pending
	b.pending = nil
	b.mu.Unlock()
	return RelayMsg{ID: id, Msgs: msgs}
}
