package events

import "github.com/atomicstack/tealoop/internal/logging"

type TerminalTracer struct{}

type InputTracer struct{}

var (
	Terminal = TerminalTracer{}
	Input    = InputTracer{}
)

func (TerminalTracer) Switch(mode string, on bool) {
	logging.Trace("terminal.switch", map[string]interface{}{"mode": mode, "on": on})
}

func (TerminalTracer) Restore(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("terminal.restore", payload)
}

func (TerminalTracer) Suspend(run string) {
	logging.Trace("terminal.suspend", map[string]interface{}{"run": run})
}

func (TerminalTracer) Resume(run string, err error) {
	payload := map[string]interface{}{"run": run}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("terminal.resume", payload)
}

func (TerminalTracer) Signal(run, signal string) {
	logging.Trace("terminal.signal", map[string]interface{}{"run": run, "signal": signal})
}

func (InputTracer) Start() {
	logging.Trace("input.start", nil)
}

func (InputTracer) Stop(reason string) {
	logging.Trace("input.stop", map[string]interface{}{"reason": reason})
}

func (InputTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("input.error", map[string]interface{}{"error": err.Error()})
}
