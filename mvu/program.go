package mvu

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atomicstack/tealoop/internal/input"
	"github.com/atomicstack/tealoop/internal/logging"
	"github.com/atomicstack/tealoop/internal/logging/events"
	"github.com/atomicstack/tealoop/internal/terminal"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ProgramState is the lifecycle phase of a Program.
type ProgramState int32

const (
	StateStarting ProgramState = iota
	StateRunning
	StateDraining
	StateTerminating
)

func (s ProgramState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateTerminating:
		return "terminating"
	default:
		return "starting"
	}
}

// ExitReason records why a Program stopped.
type ExitReason int32

const (
	ExitNone ExitReason = iota
	ExitQuit
	ExitKill
	ExitInterrupt
	ExitPanic
	ExitIOError
)

func (r ExitReason) String() string {
	switch r {
	case ExitQuit:
		return "quit"
	case ExitKill:
		return "kill"
	case ExitInterrupt:
		return "interrupt"
	case ExitPanic:
		return "panic"
	case ExitIOError:
		return "io error"
	default:
		return "none"
	}
}

var errProgramFinished = errors.New("program finished")

const readerStopTimeout = 500 * time.Millisecond

// Program runs a Model against a terminal.
type Program struct {
	initialModel Model
	model        Model
	opts         options
	runID        string

	ctx    context.Context
	cancel context.CancelCauseFunc

	msgs     chan Msg
	errs     chan error
	finished chan struct{}
	started  atomic.Bool

	state  atomic.Int32
	reason atomic.Int32

	output   *terminal.Output
	term     *terminal.Controller
	renderer renderer
	reader   *input.Reader
	forward  chan struct{}
	handlers errgroup.Group

	timersMu sync.Mutex
	timers   map[TimerID]*timerHandle

	cmdSeq       atomic.Uint64
	shutdownOnce sync.Once
}

// NewProgram returns a Program for model. Nothing touches the terminal
// until Run.
func NewProgram(model Model, opts ...ProgramOption) *Program {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	parent := o.ctx
	if parent == nil {
		parent = context.Background()
	}
	buffer := o.bufferSize
	if buffer < 1 {
		buffer = defaultMessageBuffer
	}

	p := &Program{
		initialModel: model,
		model:        model,
		opts:         o,
		runID:        uuid.NewString(),
		msgs:         make(chan Msg, buffer),
		errs:         make(chan error, 1),
		finished:     make(chan struct{}),
		timers:       make(map[TimerID]*timerHandle),
	}
	p.ctx, p.cancel = context.WithCancelCause(parent)
	return p
}

// Run starts the Program and blocks until it ends. It returns the final
// model. The error is nil after a graceful quit; otherwise it matches one
// of ErrProgramKilled, ErrInterrupted, ErrProgramPanic, ErrInvalidConfig or
// ErrTerminalIO under errors.Is. The terminal is restored before Run
// returns, whatever the outcome.
func (p *Program) Run() (returnModel Model, returnErr error) {
	if !p.started.CompareAndSwap(false, true) {
		return p.initialModel, invalidConfig("Run called more than once")
	}
	defer close(p.finished)
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		stack := debug.Stack()
		events.Program.Panic(p.runID, r, stack)
		p.setReason(ExitPanic)
		p.shutdown(true)
		if !p.opts.catchPanics {
			panic(r)
		}
		returnModel = p.model
		returnErr = &PanicError{Value: r, Stack: stack}
		events.Program.Exit(p.runID, ExitPanic.String(), returnErr)
	}()

	events.Program.Start(p.runID, p.opts.traceFields())
	if err := p.opts.validate(); err != nil {
		p.cancel(err)
		events.Program.Exit(p.runID, ExitNone.String(), err)
		return p.initialModel, err
	}

	if err := p.startup(); err != nil {
		p.setReason(ExitIOError)
		p.shutdown(true)
		events.Program.Exit(p.runID, ExitIOError.String(), err)
		return p.model, err
	}

	if cmd := p.model.Init(); cmd != nil {
		p.exec(cmd)
	}
	p.setState(StateRunning)
	p.renderer.write(p.model.View())

	model, err := p.eventLoop(p.model)
	p.model = model
	p.shutdown(p.ExitReason() == ExitKill)
	events.Program.Exit(p.runID, p.ExitReason().String(), err)
	return model, err
}

// startup brings up the terminal, signal handlers, input and renderer.
func (p *Program) startup() error {
	p.output = terminal.NewOutput(p.opts.output)
	tty := p.opts.tty
	if !p.opts.ttySet {
		tty = terminal.TTYFor(p.opts.input)
	}
	p.term = terminal.NewController(p.output, tty)

	if p.opts.noRenderer {
		p.renderer = nilRenderer{}
	} else {
		p.renderer = newStandardRenderer(p.output, p.opts.frameInterval(), p.reportIOError)
	}

	if err := p.initTerminal(); err != nil {
		return err
	}

	if p.opts.signals {
		p.handleSignals()
	}
	if p.canResize() {
		p.handleResize()
		go p.checkResize()
	}

	if p.opts.input != nil {
		if err := p.startReader(); err != nil {
			return terminalIO("start input reader", err)
		}
	}

	p.renderer.start()
	if p.opts.altScreen {
		p.renderer.setAltScreen(true)
	}
	return nil
}

// shutdown releases everything startup acquired. It runs once; kill skips
// the final frame.
func (p *Program) shutdown(kill bool) {
	p.shutdownOnce.Do(func() {
		p.setState(StateTerminating)
		p.cancel(errProgramFinished)
		if p.renderer != nil {
			if kill {
				p.renderer.kill()
			} else {
				p.renderer.stop()
			}
		}
		p.stopReader()
		if p.term != nil {
			if err := p.term.Restore(); err != nil {
				logging.Error(fmt.Errorf("restore terminal: %w", err))
			}
		}
		if err := p.handlers.Wait(); err != nil {
			logging.Error(err)
		}
	})
}

// Send delivers msg to the Program. It blocks while the message buffer is
// full, and drops msg once the Program has finished. Send may be called
// before Run; messages queue until the loop starts.
func (p *Program) Send(msg Msg) {
	if msg == nil {
		return
	}
	select {
	case <-p.ctx.Done():
		events.Program.Dropped(p.runID, msg)
	case p.msgs <- msg:
	}
}

// Quit asks the Program to end gracefully.
func (p *Program) Quit() {
	p.Send(QuitMsg{})
}

// Kill ends the Program immediately. Messages still queued are not
// processed and Run returns ErrProgramKilled.
func (p *Program) Kill() {
	p.cancel(ErrProgramKilled)
}

// Interrupt delivers an InterruptMsg, as SIGINT would.
func (p *Program) Interrupt() {
	p.Send(InterruptMsg{})
}

// Suspend asks the Program to suspend the process.
func (p *Program) Suspend() {
	p.Send(SuspendMsg{})
}

// Wait blocks until Run has returned.
func (p *Program) Wait() {
	<-p.finished
}

// Println prints above the frame. It is ignored in the alternate screen.
func (p *Program) Println(args ...interface{}) {
	p.Send(printLineMsg{body: fmt.Sprint(args...)})
}

// Printf is Println with a format string.
func (p *Program) Printf(template string, args ...interface{}) {
	p.Send(printLineMsg{body: fmt.Sprintf(template, args...)})
}

// State returns the current lifecycle phase.
func (p *Program) State() ProgramState {
	return ProgramState(p.state.Load())
}

// ExitReason returns why the Program stopped, or ExitNone while it runs.
func (p *Program) ExitReason() ExitReason {
	return ExitReason(p.reason.Load())
}

func (p *Program) setState(s ProgramState) {
	if ProgramState(p.state.Swap(int32(s))) != s {
		events.Program.State(p.runID, s.String())
	}
}

// setReason records the first exit reason only.
func (p *Program) setReason(r ExitReason) {
	p.reason.CompareAndSwap(int32(ExitNone), int32(r))
}

// exec runs cmd on its own goroutine and sends its result.
func (p *Program) exec(cmd Cmd) {
	if cmd == nil {
		return
	}
	id := p.cmdSeq.Add(1)
	events.Command.Queue(p.runID, id)
	go func() {
		defer p.recoverCommand()
		msg := cmd()
		events.Command.Result(p.runID, id, msg)
		p.Send(msg)
	}()
}

// recoverCommand is deferred by every goroutine that runs user code outside
// the loop.
func (p *Program) recoverCommand() {
	r := recover()
	if r == nil {
		return
	}
	stack := debug.Stack()
	events.Program.Panic(p.runID, r, stack)
	if !p.opts.catchPanics {
		p.setReason(ExitPanic)
		p.shutdown(true)
		panic(r)
	}
	select {
	case p.errs <- &PanicError{Value: r, Stack: stack}:
	case <-p.ctx.Done():
	}
}

// reportIOError hands a terminal failure to the loop without blocking.
func (p *Program) reportIOError(err error) {
	select {
	case p.errs <- terminalIO("write output", err):
	default:
	}
}

func (p *Program) startReader() error {
	r, err := input.NewReader(p.ctx, p.opts.input)
	if err != nil {
		return err
	}
	p.reader = r
	p.forward = make(chan struct{})
	go p.forwardInput(r, p.forward)
	return nil
}

func (p *Program) forwardInput(r *input.Reader, done chan struct{}) {
	defer close(done)
	for evt := range r.Events() {
		if evt.Kind == input.KindError {
			select {
			case p.errs <- terminalIO("read input", evt.Err):
			case <-p.ctx.Done():
			}
			return
		}
		p.Send(msgFromEvent(evt))
	}
}

func (p *Program) stopReader() {
	if p.reader == nil {
		return
	}
	p.reader.Cancel()
	if !p.reader.Wait(readerStopTimeout) {
		events.Input.Stop("timeout")
	}
	if err := p.reader.Close(); err != nil {
		logging.Error(fmt.Errorf("close input reader: %w", err))
	}
	p.reader = nil
}

func (p *Program) windowSize() (int, int, error) {
	if p.opts.windowSize != nil {
		return p.opts.windowSize()
	}
	return p.output.Size()
}

func (p *Program) canResize() bool {
	return p.opts.windowSize != nil || p.output.IsTerminal()
}

// checkResize sends the current window size. It may block on Send, so the
// loop calls it on a goroutine.
func (p *Program) checkResize() {
	w, h, err := p.windowSize()
	if err != nil {
		logging.Error(fmt.Errorf("window size: %w", err))
		return
	}
	p.Send(WindowSizeMsg{Width: w, Height: h})
}
