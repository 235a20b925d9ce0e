package command

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/atomicstack/tealoop/internal/logging/events"
	"github.com/atomicstack/tealoop/mvu"
)

// Action produces the command to run for a request. A nil result means
// there was nothing to do.
type Action func() mvu.Cmd

// Request encapsulates an action invocation.
type Request struct {
	ID     string
	Label  string
	Action Action
}

// Bus runs demo actions as commands while emitting trace logs.
type Bus struct {
	seq atomic.Uint64
}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps an action into a command. Requests without an ID get a
// sequential one so their queue and result traces can be matched up.
func (b *Bus) Execute(req Request) mvu.Cmd {
	if req.ID == "" {
		req.ID = "action-" + strconv.FormatUint(b.seq.Add(1), 10)
	}
	events.Action.Queue(req.ID, req.Label)
	return func() mvu.Msg {
		if req.Action == nil {
			events.Action.Skip(req.ID, req.Label)
			return nil
		}
		cmd := req.Action()
		if cmd == nil {
			events.Action.NoOp(req.ID, req.Label)
			return nil
		}
		msg := cmd()
		events.Action.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
