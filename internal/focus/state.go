package focus

import "github.com/atomicstack/tmux-popup-menu/internal/menu"

// MarkerSet is an in-memory Markers implementation queried by renderers.
type MarkerSet struct {
	markers map[menu.NodeID]map[string]struct{}
}

// NewMarkerSet returns an empty marker set.
func NewMarkerSet() *MarkerSet {
	return &MarkerSet{markers: make(map[menu.NodeID]map[string]struct{})}
}

func (s *MarkerSet) AddMarker(node menu.NodeID, marker string) {
	set, ok := s.markers[node]
	if !ok {
		set = make(map[string]struct{}, 2)
		s.markers[node] = set
	}
	set[marker] = struct{}{}
}

func (s *MarkerSet) RemoveMarker(node menu.NodeID, marker string) {
	set, ok := s.markers[node]
	if !ok {
		return
	}
	delete(set, marker)
	if len(set) == 0 {
		delete(s.markers, node)
	}
}

// Has reports whether node carries marker.
func (s *MarkerSet) Has(node menu.NodeID, marker string) bool {
	if s == nil {
		return false
	}
	_, ok := s.markers[node][marker]
	return ok
}

// Reset drops every marker.
func (s *MarkerSet) Reset() {
	s.markers = make(map[menu.NodeID]map[string]struct{})
}

// Cursor is a Platform that remembers the single focused node.
type Cursor struct {
	node  menu.NodeID
	valid bool
}

func (c *Cursor) Focus(node menu.NodeID) {
	c.node = node
	c.valid = true
}

// Node returns the focused node, if any.
func (c *Cursor) Node() (menu.NodeID, bool) {
	if c == nil {
		return "", false
	}
	return c.node, c.valid
}

// Reset clears the platform focus.
func (c *Cursor) Reset() {
	c.node = ""
	c.valid = false
}
