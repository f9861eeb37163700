package menu

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Definition is the on-disk shape of a menu file.
type Definition struct {
	Title string `toml:"title"`
	Mode  string `toml:"mode"`
	Items []Item `toml:"items"`
}

// LoadFile reads and validates a TOML menu definition.
func LoadFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("read menu file: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes a TOML menu definition.
func Parse(text string) (Definition, error) {
	var def Definition
	meta, err := toml.Decode(text, &def)
	if err != nil {
		return Definition{}, fmt.Errorf("decode menu definition: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Definition{}, fmt.Errorf("unknown fields in menu definition: %s", strings.Join(keys, ", "))
	}
	if err := Validate(def); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// Validate checks that a definition can be rendered unambiguously.
func Validate(def Definition) error {
	if def.Mode != "" {
		if _, err := ParseMode(def.Mode); err != nil {
			return err
		}
	}
	if len(def.Items) == 0 {
		return errors.New("menu definition has no items")
	}
	var errs []error
	walkItems(def.Items, RootMenuID, func(key string, item Item) {
		if strings.TrimSpace(item.Label) == "" {
			errs = append(errs, fmt.Errorf("item %q has no label", key))
		}
	})
	// Open and selected keys are flat lists and submenu ids derive from the
	// key alone, so keys must be unique across the whole tree.
	for _, key := range BuildRegistry(def.Items).Duplicates() {
		errs = append(errs, fmt.Errorf("duplicate item key %q", key))
	}
	return errors.Join(errs...)
}

func walkItems(items []Item, menuID string, fn func(string, Item)) {
	for i, item := range items {
		key := KeyFor(item, menuID, i)
		fn(key, item)
		if item.IsSubMenu() {
			walkItems(item.Children, SubMenuID(key), fn)
		}
	}
}
