package store

// Slot is the write capability for one menu level's active-key entry.
type Slot struct {
	store  *Store
	menuID string
}

// Slot returns the capability for menuID.
func (s *Store) Slot(menuID string) *Slot {
	return &Slot{store: s, menuID: menuID}
}

// MenuID returns the level this slot belongs to.
func (sl *Slot) MenuID() string {
	return sl.menuID
}

// Get returns the stored active key and whether the level has an entry.
func (sl *Slot) Get() (string, bool) {
	sl.store.mu.RLock()
	defer sl.store.mu.RUnlock()
	key, ok := sl.store.state.ActiveKey[sl.menuID]
	return key, ok
}

// Set stores key as the level's active item. The map is copied from the
// latest state under the store lock, so concurrent slots never lose writes.
func (sl *Slot) Set(key string) {
	sl.update(func(active map[string]string) {
		active[sl.menuID] = key
	})
}

// Clear removes the level's entry entirely.
func (sl *Slot) Clear() {
	sl.update(func(active map[string]string) {
		delete(active, sl.menuID)
	})
}

func (sl *Slot) update(fn func(map[string]string)) {
	s := sl.store
	s.mu.Lock()
	active := cloneMap(s.state.ActiveKey)
	fn(active)
	s.state.ActiveKey = active
	snapshot := s.state.clone()
	subs := make([]func(State), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snapshot)
	}
}
