package state

// WithKey returns keys plus key. Without multiple the result holds only key.
func WithKey(keys []string, key string, multiple bool) []string {
	if !multiple {
		return []string{key}
	}
	for _, k := range keys {
		if k == key {
			return append([]string(nil), keys...)
		}
	}
	out := make([]string, 0, len(keys)+1)
	out = append(out, keys...)
	return append(out, key)
}

// WithoutKey returns keys minus every occurrence of key. The result is never
// nil so it can be used to clear a store key set.
func WithoutKey(keys []string, key string) []string {
	return PruneKeys(keys, func(k string) bool { return k != key })
}

// PruneKeys keeps the keys for which keep returns true.
func PruneKeys(keys []string, keep func(string) bool) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if keep(k) {
			out = append(out, k)
		}
	}
	return out
}
