package menu

// Registry is an insertion-ordered mapping from node identity to item record.
// Re-setting an existing node keeps its original slot.
type Registry struct {
	order []NodeID
	items map[NodeID]*Item
}

// NewRegistry constructs an empty registry, optionally seeded with items.
func NewRegistry(items ...*Item) *Registry {
	r := &Registry{items: make(map[NodeID]*Item, len(items))}
	for _, item := range items {
		r.Set(item)
	}
	return r
}

// Set inserts or replaces the record stored under item.Node.
func (r *Registry) Set(item *Item) {
	if item == nil {
		return
	}
	if r.items == nil {
		r.items = make(map[NodeID]*Item)
	}
	if _, ok := r.items[item.Node]; !ok {
		r.order = append(r.order, item.Node)
	}
	r.items[item.Node] = item
}

// Get looks up the record for node.
func (r *Registry) Get(node NodeID) (*Item, bool) {
	if r == nil {
		return nil, false
	}
	item, ok := r.items[node]
	return item, ok
}

// Values returns the records in insertion order.
func (r *Registry) Values() []*Item {
	if r == nil || len(r.order) == 0 {
		return nil
	}
	values := make([]*Item, 0, len(r.order))
	for _, id := range r.order {
		values = append(values, r.items[id])
	}
	return values
}

// Len reports the number of records.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Walk visits every record in the tree rooted at r, parents before children.
func (r *Registry) Walk(fn func(item *Item, depth int)) {
	r.walk(fn, 0)
}

func (r *Registry) walk(fn func(item *Item, depth int), depth int) {
	for _, item := range r.Values() {
		fn(item, depth)
		if item.Children != nil {
			item.Children.walk(fn, depth+1)
		}
	}
}
