package events

import "github.com/atomicstack/tmux-popup-menu/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Reload(path string, items int) {
	logging.Trace("app.reload", map[string]interface{}{"path": path, "items": items})
}

func (AppTracer) ReloadError(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("app.reload.error", map[string]interface{}{"path": path, "error": err.Error()})
}
