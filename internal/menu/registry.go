package menu

// Node represents a menu entry definition within the registry tree.
type Node struct {
	Key      string
	MenuID   string
	Depth    int
	Item     Item
	Parent   *Node
	Children map[string]*Node
}

// Registry exposes lookup utilities for menu definitions.
type Registry struct {
	nodes      map[string]*Node
	order      []*Node
	duplicates []string
}

// BuildRegistry indexes every item of the tree by its resolved key.
func BuildRegistry(items []Item) *Registry {
	r := &Registry{nodes: make(map[string]*Node)}
	r.add(nil, RootMenuID, 0, items)
	return r
}

func (r *Registry) add(parent *Node, menuID string, depth int, items []Item) {
	for i, item := range items {
		key := KeyFor(item, menuID, i)
		node := &Node{
			Key:      key,
			MenuID:   menuID,
			Depth:    depth,
			Item:     item,
			Parent:   parent,
			Children: make(map[string]*Node),
		}
		if _, exists := r.nodes[key]; exists {
			r.duplicates = append(r.duplicates, key)
		}
		r.nodes[key] = node
		r.order = append(r.order, node)
		if parent != nil {
			parent.Children[key] = node
		}
		if item.IsSubMenu() {
			r.add(node, SubMenuID(key), depth+1, item.Children)
		}
	}
}

// Find locates a node by key.
func (r *Registry) Find(key string) (*Node, bool) {
	node, ok := r.nodes[key]
	return node, ok
}

// Path returns the keys from the root level down to key, inclusive.
func (r *Registry) Path(key string) []string {
	node, ok := r.nodes[key]
	if !ok {
		return nil
	}
	var path []string
	for n := node; n != nil; n = n.Parent {
		path = append([]string{n.Key}, path...)
	}
	return path
}

// Labels returns the labels along Path(key).
func (r *Registry) Labels(key string) []string {
	path := r.Path(key)
	labels := make([]string, 0, len(path))
	for _, k := range path {
		labels = append(labels, r.nodes[k].Item.Label)
	}
	return labels
}

// Nodes returns every node in depth-first definition order.
func (r *Registry) Nodes() []*Node {
	out := make([]*Node, len(r.order))
	copy(out, r.order)
	return out
}

// Duplicates lists keys that were defined more than once.
func (r *Registry) Duplicates() []string {
	return append([]string(nil), r.duplicates...)
}

// Has reports whether key names a defined item.
func (r *Registry) Has(key string) bool {
	_, ok := r.nodes[key]
	return ok
}
