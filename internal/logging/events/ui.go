package events

import "github.com/atomicstack/tealoop/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

var (
	UI     = UITracer{}
	Filter = FilterTracer{}
	Action = ActionTracer{}
)

func (UITracer) Key(key string) {
	logging.Trace("ui.key", map[string]interface{}{"key": key})
}

func (UITracer) Heartbeat(id uint64, running bool) {
	logging.Trace("ui.heartbeat", map[string]interface{}{"id": id, "running": running})
}

func (UITracer) Countdown(remaining int) {
	logging.Trace("ui.countdown", map[string]interface{}{"remaining": remaining})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (FilterTracer) Append(filter string) {
	logging.Trace("filter.append", map[string]interface{}{"filter": filter})
}

func (FilterTracer) Backspace(filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"filter": filter})
}

func (FilterTracer) WordBackspace(filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"filter": filter})
}

func (ActionTracer) Queue(id, label string) {
	logging.Trace("action.queue", map[string]interface{}{"id": id, "label": label})
}

func (ActionTracer) Skip(id, label string) {
	logging.Trace("action.skip", map[string]interface{}{"id": id, "label": label})
}

func (ActionTracer) NoOp(id, label string) {
	logging.Trace("action.noop", map[string]interface{}{"id": id, "label": label})
}

func (ActionTracer) Result(id, label, msgType string) {
	logging.Trace("action.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
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
