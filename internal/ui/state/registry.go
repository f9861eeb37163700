package state

// Registry is an immutable snapshot of the item handles rendered by one menu
// level, in render order.
type Registry[H Candidate] struct {
	flat       []H
	index      map[string]int
	duplicates []string
}

// RegistryBuilder collects handles during a render pass.
type RegistryBuilder[H Candidate] struct {
	flat       []H
	index      map[string]int
	seen       map[string]struct{}
	duplicates []string
}

// NewRegistryBuilder starts an empty registry.
func NewRegistryBuilder[H Candidate]() *RegistryBuilder[H] {
	return &RegistryBuilder[H]{
		index: make(map[string]int),
		seen:  make(map[string]struct{}),
	}
}

// Register appends a handle. Disabled handles keep their place in the flat
// order but get no lookup slot. A repeated key overwrites the earlier lookup
// slot and is recorded as a duplicate.
func (b *RegistryBuilder[H]) Register(h H) {
	key := h.EventKey()
	if _, dup := b.seen[key]; dup {
		b.duplicates = append(b.duplicates, key)
	}
	b.seen[key] = struct{}{}
	b.flat = append(b.flat, h)
	if !h.Disabled() {
		b.index[key] = len(b.flat) - 1
	}
}

// Build freezes the collected handles. The builder must not be reused.
func (b *RegistryBuilder[H]) Build() *Registry[H] {
	r := &Registry[H]{flat: b.flat, index: b.index, duplicates: b.duplicates}
	b.flat, b.index, b.seen, b.duplicates = nil, nil, nil, nil
	return r
}

// Flat returns every registered handle in render order.
func (r *Registry[H]) Flat() []H {
	if r == nil {
		return nil
	}
	out := make([]H, len(r.flat))
	copy(out, r.flat)
	return out
}

// Lookup returns the enabled handle registered under key.
func (r *Registry[H]) Lookup(key string) (H, bool) {
	var zero H
	if r == nil {
		return zero, false
	}
	idx, ok := r.index[key]
	if !ok {
		return zero, false
	}
	return r.flat[idx], true
}

// Len returns the number of registered handles.
func (r *Registry[H]) Len() int {
	if r == nil {
		return 0
	}
	return len(r.flat)
}

// Duplicates lists keys registered more than once during the pass.
func (r *Registry[H]) Duplicates() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.duplicates...)
}
