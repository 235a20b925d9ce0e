package ui

import "github.com/atomicstack/tealoop/mvu"

// Harness drives the demo model synchronously for tests. Commands returned
// by Update are executed inline and their messages fed back, batches are
// expanded in order, and every message a command produced is recorded so
// tests can assert on runtime requests such as Quit.
type Harness struct {
	model   *Model
	emitted []mvu.Msg
	limit   int
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model, limit: 1000}
}

// Init runs the model's Init command.
func (h *Harness) Init() {
	if h.model == nil {
		return
	}
	h.processCmd(h.model.Init())
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg mvu.Msg) {
	if h.model == nil {
		return
	}
	h.deliver(msg)
}

func (h *Harness) deliver(msg mvu.Msg) {
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

func (h *Harness) processCmd(cmd mvu.Cmd) {
	if cmd == nil || h.limit <= 0 {
		return
	}
	h.limit--
	msg := cmd()
	if msg == nil {
		return
	}
	h.emitted = append(h.emitted, msg)
	if batch, ok := msg.(mvu.BatchMsg); ok {
		for _, c := range batch {
			h.processCmd(c)
		}
		return
	}
	h.deliver(msg)
}

// Emitted returns the messages produced by commands so far.
func (h *Harness) Emitted() []mvu.Msg {
	return h.emitted
}

// Quit reports whether a command asked the Program to quit.
func (h *Harness) Quit() bool {
	for _, msg := range h.emitted {
		if _, ok := msg.(mvu.QuitMsg); ok {
			return true
		}
	}
	return false
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
