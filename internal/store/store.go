// Package store holds the interaction state shared by every level of a menu
// tree: the active item per level plus the open and selected key sets.
//
// A single Store is created by the root consumer and handed to every level.
// Each level writes only its own active-key entry, through the Slot returned
// by Store.Slot. Open and selected keys belong to the consumer; levels only
// read them.
package store

import "sync"

// State is an immutable snapshot of the shared store.
type State struct {
	// ActiveKey maps a menu id to its active item key. An empty value means
	// the level has no active item.
	ActiveKey    map[string]string
	OpenKeys     []string
	SelectedKeys []string
}

// Patch is merged into the state by SetState. Nil fields are left untouched;
// use an empty, non-nil slice to clear a key set.
type Patch struct {
	ActiveKey    map[string]string
	OpenKeys     []string
	SelectedKeys []string
}

// Store is a minimal observable container. Writes notify subscribers
// synchronously after the lock is released, so a subscriber may read the
// store again.
type Store struct {
	mu     sync.RWMutex
	state  State
	subs   map[int]func(State)
	nextID int
}

// New returns a store seeded with the supplied open and selected keys.
func New(openKeys, selectedKeys []string) *Store {
	return &Store{
		state: State{
			ActiveKey:    map[string]string{},
			OpenKeys:     cloneKeys(openKeys),
			SelectedKeys: cloneKeys(selectedKeys),
		},
		subs: make(map[int]func(State)),
	}
}

// GetState returns a copy of the current state.
func (s *Store) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// SetState shallow-merges the patch and notifies subscribers.
func (s *Store) SetState(p Patch) {
	s.mu.Lock()
	if p.ActiveKey != nil {
		s.state.ActiveKey = cloneMap(p.ActiveKey)
	}
	if p.OpenKeys != nil {
		s.state.OpenKeys = cloneKeys(p.OpenKeys)
	}
	if p.SelectedKeys != nil {
		s.state.SelectedKeys = cloneKeys(p.SelectedKeys)
	}
	snapshot := s.state.clone()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// Subscribe registers fn for change notifications. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// IsOpen reports whether key is in the open key set.
func (s State) IsOpen(key string) bool {
	return containsKey(s.OpenKeys, key)
}

// IsSelected reports whether key is in the selected key set.
func (s State) IsSelected(key string) bool {
	return containsKey(s.SelectedKeys, key)
}

func (s State) clone() State {
	return State{
		ActiveKey:    cloneMap(s.ActiveKey),
		OpenKeys:     cloneKeys(s.OpenKeys),
		SelectedKeys: cloneKeys(s.SelectedKeys),
	}
}

func cloneMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneKeys(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
