package nav

import "github.com/atomicstack/tmux-popup-menu/internal/menu"

// Resolve finds the path from the root registry to node, searching depth-first
// through submenus and groups. Node ids are expected to be unique across the
// tree; with duplicates the first match wins.
func Resolve(root *menu.Registry, node menu.NodeID) (Path, bool) {
	if root == nil {
		return nil, false
	}
	return resolveIn(root, node, nil)
}

func resolveIn(reg *menu.Registry, node menu.NodeID, prefix Path) (Path, bool) {
	if item, ok := reg.Get(node); ok {
		return prefix.with(item), true
	}
	for _, item := range reg.Values() {
		if !(item.Group || item.Submenu) || item.Children == nil {
			continue
		}
		if path, ok := resolveIn(item.Children, node, prefix.with(item)); ok {
			return path, true
		}
	}
	return nil, false
}
