package events

import "github.com/atomicstack/tmux-popup-menu/internal/logging"

type UITracer struct{}

type SearchTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Search  = SearchTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Key(key string, handled bool) {
	logging.Trace("ui.key", map[string]interface{}{"key": key, "handled": handled})
}

func (UITracer) Shortcut(node, key string) {
	logging.Trace("ui.shortcut", map[string]interface{}{"node": node, "key": key})
}

func (SearchTracer) Open() {
	logging.Trace("search.open", nil)
}

func (SearchTracer) Cancel(query string) {
	logging.Trace("search.cancel", map[string]interface{}{"query": query})
}

func (SearchTracer) Jump(query, node string) {
	logging.Trace("search.jump", map[string]interface{}{"query": query, "node": node})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
