package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/atomicstack/popup-menu/internal/format/table"
	"github.com/atomicstack/popup-menu/internal/menu"
)

// writeList prints every item of the definition, nested labels indented
// under their submenu.
func writeList(w io.Writer, def menu.Definition) error {
	registry := menu.BuildRegistry(def.Items)
	rows := [][]string{{"KEY", "LABEL", "MENU", "FLAGS"}}
	for _, node := range registry.Nodes() {
		rows = append(rows, []string{
			node.Key,
			strings.Repeat("  ", node.Depth) + node.Item.Label,
			node.MenuID,
			itemFlags(node.Item),
		})
	}
	for _, line := range table.Format(rows, nil) {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

func itemFlags(item menu.Item) string {
	var flags []string
	if item.IsSubMenu() {
		flags = append(flags, fmt.Sprintf("submenu(%d)", len(item.Children)))
	}
	if item.Disabled {
		flags = append(flags, "disabled")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}
