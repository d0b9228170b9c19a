// Package focus applies and clears the visual state the navigation engine
// requests: which entry is focused and which submenus are open.
package focus

import "github.com/atomicstack/tmux-popup-menu/internal/menu"

// Policy selects how focus is represented.
type Policy int

const (
	// Native hands focus to the platform; defocusing is implicit.
	Native Policy = iota
	// Synthetic tracks focus as an explicit marker on each node.
	Synthetic
)

func (p Policy) String() string {
	if p == Synthetic {
		return "synthetic"
	}
	return "native"
}

// Marker names applied to nodes.
const (
	MarkerFocused     = "focused"
	MarkerSubmenuOpen = "submenu-open"
)

// Platform moves the host's single input focus.
type Platform interface {
	Focus(node menu.NodeID)
}

// Markers toggles named markers on nodes. Both calls must be idempotent.
type Markers interface {
	AddMarker(node menu.NodeID, marker string)
	RemoveMarker(node menu.NodeID, marker string)
}

// Adapter implements the engine's visual toggle contract.
type Adapter struct {
	policy   Policy
	platform Platform
	markers  Markers
}

// New constructs an adapter. platform may be nil for the synthetic policy.
func New(policy Policy, platform Platform, markers Markers) *Adapter {
	return &Adapter{policy: policy, platform: platform, markers: markers}
}

// Policy reports the configured focus policy.
func (a *Adapter) Policy() Policy {
	return a.policy
}

// SetFocused applies or clears focus on node.
func (a *Adapter) SetFocused(node menu.NodeID, focused bool) {
	if a.policy == Synthetic {
		if a.markers == nil {
			return
		}
		if focused {
			a.markers.AddMarker(node, MarkerFocused)
		} else {
			a.markers.RemoveMarker(node, MarkerFocused)
		}
		return
	}
	if focused && a.platform != nil {
		a.platform.Focus(node)
	}
}

// SetSubmenuOpen toggles the submenu-open marker regardless of policy.
func (a *Adapter) SetSubmenuOpen(node menu.NodeID, open bool) {
	if a.markers == nil {
		return
	}
	if open {
		a.markers.AddMarker(node, MarkerSubmenuOpen)
	} else {
		a.markers.RemoveMarker(node, MarkerSubmenuOpen)
	}
}
