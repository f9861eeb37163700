package command

import (
	"testing"

	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrainPreservesEmissionOrder(t *testing.T) {
	b := New()
	assert.Empty(t, b.Drain("none").Msgs)

	b.OnClick(menu.ClickInfo{Key: "a"})
	b.OnSelect(menu.SelectInfo{Key: "a"})
	b.OnOpenChange(menu.OpenChange{Key: "sub", Open: true})
	b.OnDeselect(menu.SelectInfo{Key: "b"})
	b.OnDestroy("gone")
	assert.Equal(t, 5, b.Pending())

	relay := b.Drain("dispatch-1")
	assert.Zero(t, b.Pending())
	assert.Empty(t, b.Drain("dispatch-1").Msgs, "a drained event is delivered once")

	assert.Equal(t, "dispatch-1", relay.ID)
	require.Len(t, relay.Msgs, 5)
	assert.IsType(t, ClickMsg{}, relay.Msgs[0])
	assert.IsType(t, SelectMsg{}, relay.Msgs[1])
	assert.Equal(t, OpenChangeMsg{Change: menu.OpenChange{Key: "sub", Open: true}}, relay.Msgs[2])
	assert.IsType(t, DeselectMsg{}, relay.Msgs[3])
	assert.Equal(t, DestroyMsg{Key: "gone"}, relay.Msgs[4])
}
