package events

import (
	"fmt"

	"github.com/atomicstack/tealoop/internal/logging"
)

type ProgramTracer struct{}

type CommandTracer struct{}

type TimerTracer struct{}

var (
	Program = ProgramTracer{}
	Command = CommandTracer{}
	Timer   = TimerTracer{}
)

func (ProgramTracer) Start(run string, options map[string]interface{}) {
	logging.Trace("program.start", map[string]interface{}{"run": run, "options": options})
}

func (ProgramTracer) State(run, state string) {
	logging.Trace("program.state", map[string]interface{}{"run": run, "state": state})
}

func (ProgramTracer) Exit(run, reason string, err error) {
	payload := map[string]interface{}{"run": run, "reason": reason}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("program.exit", payload)
}

func (ProgramTracer) Panic(run string, value interface{}, stack []byte) {
	logging.Trace("program.panic", map[string]interface{}{
		"run":   run,
		"value": fmt.Sprint(value),
		"stack": string(stack),
	})
}

func (ProgramTracer) Dropped(run string, msg interface{}) {
	if !logging.TraceEnabled() {
		return
	}
	logging.Trace("program.dropped", map[string]interface{}{"run": run, "msg": fmt.Sprintf("%T", msg)})
}

func (CommandTracer) Queue(run string, id uint64) {
	if !logging.TraceEnabled() {
		return
	}
	logging.Trace("command.queue", map[string]interface{}{"run": run, "id": id})
}

func (CommandTracer) Result(run string, id uint64, msg interface{}) {
	if !logging.TraceEnabled() {
		return
	}
	logging.Trace("command.result", map[string]interface{}{"run": run, "id": id, "msg": fmt.Sprintf("%T", msg)})
}

func (CommandTracer) Process(run, name string, args []string, err error) {
	payload := map[string]interface{}{"run": run, "name": name, "args": args}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("command.process", payload)
}

func (TimerTracer) Start(run string, id uint64, interval string) {
	logging.Trace("timer.start", map[string]interface{}{"run": run, "id": id, "interval": interval})
}

func (TimerTracer) Cancel(id uint64) {
	logging.Trace("timer.cancel", map[string]interface{}{"id": id})
}

func (TimerTracer) CancelAll(run string, count int) {
	logging.Trace("timer.cancel-all", map[string]interface{}{"run": run, "count": count})
}

func (TimerTracer) Stop(run string, id uint64, reason string) {
	logging.Trace("timer.stop", map[string]interface{}{"run": run, "id": id, "reason": reason})
}
