package events

import "github.com/atomicstack/popup-menu/internal/logging"

type AppTracer struct{}

type WatchTracer struct{}

var (
	App   = AppTracer{}
	Watch = WatchTracer{}
)

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Result(keyPath []string) {
	logging.Trace("app.result", map[string]interface{}{"keyPath": keyPath})
}

func (WatchTracer) Reload(path string, items int) {
	logging.Trace("watch.reload", map[string]interface{}{"path": path, "items": items})
}

func (WatchTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("watch.error", map[string]interface{}{"path": path, "error": err.Error()})
}
