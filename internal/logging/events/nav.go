package events

import (
	"github.com/atomicstack/tmux-popup-menu/internal/logging"
	"github.com/atomicstack/tmux-popup-menu/internal/menu"
)

type NavTracer struct{}

var Nav = NavTracer{}

func (NavTracer) Focus(node menu.NodeID, depth int) {
	logging.Trace("nav.focus", map[string]interface{}{"node": string(node), "depth": depth})
}

func (NavTracer) Open(node menu.NodeID, focusFirst bool) {
	logging.Trace("nav.submenu.open", map[string]interface{}{"node": string(node), "focusFirst": focusFirst})
}

func (NavTracer) Close(node menu.NodeID) {
	logging.Trace("nav.submenu.close", map[string]interface{}{"node": string(node)})
}

func (NavTracer) Spill(group menu.NodeID, direction string) {
	logging.Trace("nav.group.spill", map[string]interface{}{"group": string(group), "direction": direction})
}

func (NavTracer) Activate(node menu.NodeID) {
	logging.Trace("nav.activate", map[string]interface{}{"node": string(node)})
}

func (NavTracer) Miss(node menu.NodeID) {
	logging.Trace("nav.resolve.miss", map[string]interface{}{"node": string(node)})
}
