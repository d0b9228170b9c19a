// Package nav tracks keyboard focus through a tree of menus, submenus and
// grid groups.
//
// Focus is held as a Path from the root registry down to the focused record.
// The list being navigated is never stored: it is re-derived from the path as
// the children of the container at path[depth-1] (or the root registry when
// depth is zero). Normally len(path) == depth+1; right after a submenu is opened
// without focusing a child, len(path) == depth and nothing in the list is
// focused.
//
// An Engine is bound to one shown menu. It performs no locking; callers run
// every operation on the same goroutine and must not mutate registries while an
// operation is in progress.
package nav

import (
	"github.com/atomicstack/tmux-popup-menu/internal/logging/events"
	"github.com/atomicstack/tmux-popup-menu/internal/menu"
)

// Path is an ancestor chain of records ending at the focused record.
type Path []*menu.Item

// Nodes returns the node identities along the path.
func (p Path) Nodes() []menu.NodeID {
	nodes := make([]menu.NodeID, len(p))
	for i, item := range p {
		nodes[i] = item.Node
	}
	return nodes
}

// Last returns the deepest record, or nil for an empty path.
func (p Path) Last() *menu.Item {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

func (p Path) contains(item *menu.Item) bool {
	for _, it := range p {
		if it == item {
			return true
		}
	}
	return false
}

func (p Path) with(item *menu.Item) Path {
	next := make(Path, 0, len(p)+1)
	next = append(next, p...)
	return append(next, item)
}

func (p Path) clone() Path {
	return append(Path(nil), p...)
}

// Visual applies focus and submenu-open state to nodes.
type Visual interface {
	SetFocused(node menu.NodeID, focused bool)
	SetSubmenuOpen(node menu.NodeID, open bool)
}

// Activator performs the platform activation of a node.
type Activator interface {
	Activate(node menu.NodeID)
}

// FocusTarget selects the child focused when entering a group.
type FocusTarget int

const (
	FocusFirst FocusTarget = -1
	FocusLast  FocusTarget = -2
)

type direction int

const (
	forward direction = iota
	backward
)

func (d direction) String() string {
	if d == backward {
		return "backward"
	}
	return "forward"
}

func (d direction) target() FocusTarget {
	if d == backward {
		return FocusLast
	}
	return FocusFirst
}

type focusOptions struct {
	openSubmenu bool
	focusFirst  bool
	target      FocusTarget
}

// Engine is the navigation controller for one shown menu.
type Engine struct {
	root      *menu.Registry
	visual    Visual
	activator Activator

	path  Path
	depth int
	index int
}

// New constructs an engine. Init must be called before any move.
func New(visual Visual, activator Activator) *Engine {
	return &Engine{visual: visual, activator: activator, index: -1}
}

// Init resets the engine to the unfocused state at the root of root.
func (e *Engine) Init(root *menu.Registry) {
	e.root = root
	e.path = nil
	e.depth = 0
	e.index = -1
}

// Path returns a copy of the current focus path.
func (e *Engine) Path() Path {
	return e.path.clone()
}

// FocusedIndex returns the offset of the focused record in CurrentItems, or -1.
func (e *Engine) FocusedIndex() int {
	return e.index
}

// CurrentItems returns the sibling records currently being navigated.
func (e *Engine) CurrentItems() []*menu.Item {
	return e.itemsAt(e.depth)
}

// Focused returns the focused record, if any.
func (e *Engine) Focused() (*menu.Item, bool) {
	last := e.path.Last()
	return last, last != nil
}

func (e *Engine) itemsAt(depth int) []*menu.Item {
	if depth <= 0 || depth > len(e.path) {
		return e.root.Values()
	}
	owner := e.path[depth-1]
	if owner.Children == nil {
		return nil
	}
	return owner.Children.Values()
}

// container returns the submenu or group whose children form the current list.
func (e *Engine) container() *menu.Item {
	if e.depth <= 0 || e.depth > len(e.path) {
		return nil
	}
	return e.path[e.depth-1]
}

// focusedInList reports whether a record of the current list holds focus.
func (e *Engine) focusedInList() bool {
	return len(e.path) == e.depth+1
}

func (e *Engine) cursor(dir direction) int {
	if e.focusedInList() {
		return e.index
	}
	if dir == backward {
		return len(e.CurrentItems())
	}
	return -1
}

// MoveDown advances focus, by the group stride when inside a group.
func (e *Engine) MoveDown() bool {
	parent := e.container()
	if parent == nil || !parent.Group {
		return e.moveNext()
	}
	return e.moveTo(e.cursor(forward)+parent.Stride(), forward)
}

// MoveUp retreats focus, by the group stride when inside a group.
func (e *Engine) MoveUp() bool {
	parent := e.container()
	if parent == nil || !parent.Group {
		return e.movePrev()
	}
	return e.moveTo(e.cursor(backward)-parent.Stride(), backward)
}

// MoveLeft closes the open submenu, climbs out of a submenu, or steps left in a
// group row.
func (e *Engine) MoveLeft() bool {
	current := e.path.Last()
	if current == nil {
		return false
	}
	if current.Submenu && !e.focusedInList() {
		return e.CloseSubmenu(e.path)
	}
	parent := e.container()
	if parent == nil {
		return false
	}
	if parent.Submenu {
		return e.CloseSubmenu(e.path[:e.depth])
	}
	if parent.Group {
		return e.movePrev()
	}
	return false
}

// MoveRight opens a focused submenu onto its first entry or steps right in a
// group row.
func (e *Engine) MoveRight() bool {
	current := e.path.Last()
	if current == nil {
		return false
	}
	if current.Submenu {
		return e.OpenSubmenu(e.path, true)
	}
	parent := e.container()
	if parent == nil {
		return false
	}
	if parent.Group {
		return e.moveNext()
	}
	return false
}

func (e *Engine) moveNext() bool {
	return e.moveTo(e.cursor(forward)+1, forward)
}

func (e *Engine) movePrev() bool {
	return e.moveTo(e.cursor(backward)-1, backward)
}

// moveTo focuses the record at target in the current list. Out-of-range targets
// spill out of an enclosing group and continue one step further in the same
// direction; with no group parent the move fails and nothing changes.
func (e *Engine) moveTo(target int, dir direction) bool {
	if target < -1 {
		target = -1
	}
	items := e.CurrentItems()
	if target < 0 || target >= len(items) {
		return e.spillOut(dir)
	}
	next := e.path[:e.depth].with(items[target])
	e.index = target
	e.focusItem(next, focusOptions{target: dir.target()})
	return true
}

func (e *Engine) spillOut(dir direction) bool {
	group := e.container()
	if group == nil || !group.Group {
		return false
	}
	saved, savedDepth, savedIndex := e.path.clone(), e.depth, e.index
	if e.focusedInList() {
		e.visual.SetFocused(e.path.Last().Node, false)
	}
	e.moveOutOfGroup(e.path[:e.depth])
	events.Nav.Spill(group.Node, dir.String())

	step := 1
	if dir == backward {
		step = -1
	}
	if e.moveTo(e.index+step, dir) {
		return true
	}
	// Nothing beyond the group at the outer level: put focus back where it was.
	e.path, e.depth, e.index = saved, savedDepth, savedIndex
	if last := e.path.Last(); last != nil {
		e.visual.SetFocused(last.Node, true)
	}
	return false
}

// transition clears visuals for records leaving focus and applies them to
// records entering it. Submenus leaving the path close. A retained record that
// becomes the deepest one is focused again.
func (e *Engine) transition(next Path) {
	prev := e.path.Last()
	for _, item := range e.path {
		if next.contains(item) {
			continue
		}
		e.visual.SetFocused(item.Node, false)
		if item.Submenu {
			e.visual.SetSubmenuOpen(item.Node, false)
		}
	}
	for _, item := range next {
		if e.path.contains(item) {
			continue
		}
		e.visual.SetFocused(item.Node, true)
	}
	if last := next.Last(); last != nil && last != prev && e.path.contains(last) {
		e.visual.SetFocused(last.Node, true)
	}
	e.path = next
}

func (e *Engine) focusItem(next Path, opts focusOptions) {
	if len(next) == 0 {
		return
	}
	e.transition(next)
	current := next.Last()
	events.Nav.Focus(current.Node, len(next)-1)
	if current.Submenu && opts.openSubmenu {
		e.OpenSubmenu(next, opts.focusFirst)
	}
	if current.Group {
		e.moveToGroup(next, opts.target)
	}
}

// OpenSubmenu opens the submenu at the end of path. The record's placement
// callback runs before it is marked open. With focusFirst the first child
// takes focus; otherwise the submenu becomes the current list with nothing
// focused in it.
func (e *Engine) OpenSubmenu(path Path, focusFirst bool) bool {
	if len(e.path) == 0 || len(path) == 0 {
		return false
	}
	item := path.Last()
	if !item.Submenu || !item.HasChildren() {
		return false
	}
	if item.Position != nil {
		item.Position()
	}
	e.visual.SetSubmenuOpen(item.Node, true)
	events.Nav.Open(item.Node, focusFirst)

	base := path.clone()
	e.depth = len(base)
	if focusFirst {
		e.index = 0
		e.focusItem(base.with(item.Children.Values()[0]), focusOptions{target: FocusFirst})
		return true
	}
	e.index = -1
	e.transition(base)
	return true
}

// CloseSubmenu closes the submenu at the end of path and returns focus to it,
// restoring its sibling list.
func (e *Engine) CloseSubmenu(path Path) bool {
	if len(e.path) == 0 || len(path) == 0 {
		return false
	}
	item := path.Last()
	if !item.Submenu {
		return false
	}
	base := path.clone()
	e.transition(base)
	e.visual.SetSubmenuOpen(item.Node, false)
	events.Nav.Close(item.Node)

	e.depth = len(base) - 1
	e.index = indexOf(item, e.CurrentItems())
	return true
}

// moveToGroup descends into the group at the end of path and focuses target.
func (e *Engine) moveToGroup(path Path, target FocusTarget) bool {
	group := path.Last()
	if group == nil || !group.Group || !group.HasChildren() {
		return false
	}
	children := group.Children.Values()
	idx := resolveTarget(target, len(children))
	if idx < 0 || idx >= len(children) {
		return false
	}
	base := path.clone()
	e.depth = len(base)
	e.index = idx
	e.focusItem(base.with(children[idx]), focusOptions{target: target})
	return true
}

// moveOutOfGroup makes the group at the end of path the focused record of its
// own sibling list.
func (e *Engine) moveOutOfGroup(path Path) bool {
	group := path.Last()
	if group == nil || !group.Group {
		return false
	}
	e.path = path.clone()
	e.depth = len(e.path) - 1
	e.index = indexOf(group, e.CurrentItems())
	return true
}

// Click activates the focused record of the current list.
func (e *Engine) Click() bool {
	if !e.focusedInList() {
		return false
	}
	items := e.CurrentItems()
	if e.index < 0 || e.index >= len(items) {
		return false
	}
	if e.activator == nil {
		return false
	}
	node := items[e.index].Node
	events.Nav.Activate(node)
	e.activator.Activate(node)
	return true
}

// FocusNode focuses node wherever it sits in the tree, opening it when it is a
// submenu without focusing its children. Unknown nodes are ignored.
func (e *Engine) FocusNode(node menu.NodeID) bool {
	path, ok := Resolve(e.root, node)
	if !ok {
		events.Nav.Miss(node)
		return false
	}
	e.openAncestors(path)
	e.depth = len(path) - 1
	e.index = indexOf(path.Last(), e.siblingsOf(path))
	e.focusItem(path, focusOptions{openSubmenu: true, focusFirst: false, target: FocusFirst})
	return true
}

// openAncestors opens every submenu above the end of path that is not already
// open. Containers of the current list are open: they are path[:depth].
func (e *Engine) openAncestors(path Path) {
	for i, item := range path[:len(path)-1] {
		if !item.Submenu {
			continue
		}
		if i < e.depth && i < len(e.path) && e.path[i] == item {
			continue
		}
		if item.Position != nil {
			item.Position()
		}
		e.visual.SetSubmenuOpen(item.Node, true)
		events.Nav.Open(item.Node, false)
	}
}

// siblingsOf returns the list containing the last record of path.
func (e *Engine) siblingsOf(path Path) []*menu.Item {
	if len(path) < 2 {
		return e.root.Values()
	}
	parent := path[len(path)-2]
	if parent.Children == nil {
		return nil
	}
	return parent.Children.Values()
}

func indexOf(item *menu.Item, items []*menu.Item) int {
	if item == nil {
		return -1
	}
	for i, it := range items {
		if it.Node == item.Node {
			return i
		}
	}
	return -1
}

func resolveTarget(target FocusTarget, n int) int {
	switch target {
	case FocusFirst:
		return 0
	case FocusLast:
		return n - 1
	}
	return int(target)
}
