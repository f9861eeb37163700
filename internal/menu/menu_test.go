package menu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyForSynthesisesFromPosition(t *testing.T) {
	assert.Equal(t, "explicit", KeyFor(Item{Key: "explicit"}, RootMenuID, 3))
	assert.Equal(t, "0-menu-item_3", KeyFor(Item{Label: "x"}, RootMenuID, 3))
	assert.Equal(t, "file-menu-item_0", KeyFor(Item{}, SubMenuID("file"), 0))
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"":               ModeVertical,
		"inline":         ModeInline,
		" Horizontal ":   ModeHorizontal,
		"vertical-left":  ModeVerticalLeft,
		"vertical-right": ModeVerticalRight,
	}
	for in, want := range cases {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMode("diagonal")
	assert.Error(t, err)

	assert.Equal(t, TriggerClick, ModeInline.Trigger())
	assert.Equal(t, TriggerHover, ModeVertical.Trigger())
}

func TestRegistryIndexesNestedItems(t *testing.T) {
	reg := BuildRegistry(DemoItems())

	node, ok := reg.Find("file:recent:todo")
	require.True(t, ok)
	assert.Equal(t, SubMenuID("file:recent"), node.MenuID)
	assert.Equal(t, 2, node.Depth)
	assert.Equal(t, []string{"file", "file:recent", "file:recent:todo"}, reg.Path("file:recent:todo"))
	assert.Equal(t, []string{"File", "Open Recent", "todo.txt"}, reg.Labels("file:recent:todo"))
	assert.Empty(t, reg.Duplicates())
	assert.Nil(t, reg.Path("missing"))

	nodes := reg.Nodes()
	require.NotEmpty(t, nodes)
	assert.Equal(t, "file", nodes[0].Key)
	assert.Equal(t, "file:new", nodes[1].Key)
}

func TestRegistryReportsDuplicates(t *testing.T) {
	reg := BuildRegistry([]Item{{Key: "a", Label: "A"}, {Key: "a", Label: "again"}})
	assert.Equal(t, []string{"a"}, reg.Duplicates())
	node, _ := reg.Find("a")
	assert.Equal(t, "again", node.Item.Label)
}

func TestParseDefinition(t *testing.T) {
	def, err := Parse(`
title = "Actions"
mode = "inline"

[[items]]
key = "build"
label = "Build"

[[items]]
label = "Deploy"

  [[items.items]]
  key = "deploy:prod"
  label = "Production"
  disabled = true
`)
	require.NoError(t, err)
	assert.Equal(t, "Actions", def.Title)
	require.Len(t, def.Items, 2)
	assert.True(t, def.Items[1].IsSubMenu())
	assert.True(t, def.Items[1].Children[0].Disabled)
}

func TestParseRejectsInvalidDefinitions(t *testing.T) {
	_, err := Parse(`mode = "sideways"
[[items]]
label = "x"`)
	assert.ErrorContains(t, err, "unknown menu mode")

	_, err = Parse(`title = "empty"`)
	assert.ErrorContains(t, err, "no items")

	_, err = Parse(`
[[items]]
key = "a"
label = "A"
[[items]]
key = "a"
label = ""`)
	assert.ErrorContains(t, err, `duplicate item key "a"`)
	assert.ErrorContains(t, err, `has no label`)

	_, err = Parse(`
[[items]]
label = "A"
icon = "star"`)
	assert.ErrorContains(t, err, "unknown fields")
}

func TestParseRejectsKeyReusedInSubmenu(t *testing.T) {
	_, err := Parse(`
[[items]]
key = "edit"
label = "Edit"
[[items.items]]
key = "edit"
label = "Edit again"`)
	assert.ErrorContains(t, err, `duplicate item key "edit"`)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[items]]\nlabel = \"Only\"\n"), 0o644))

	def, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, def.Items, 1)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "read menu file")
}
