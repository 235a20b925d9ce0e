package mvu

import (
	"context"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/atomicstack/tealoop/internal/terminal"
)

const (
	defaultFPS           = 60
	maxFPS               = 120
	defaultMessageBuffer = 1000
)

// MouseMode selects which mouse events the terminal reports.
type MouseMode = terminal.MouseMode

const (
	MouseModeNone       = terminal.MouseNone
	MouseModeCellMotion = terminal.MouseCellMotion
	MouseModeAllMotion  = terminal.MouseAllMotion
)

// ParseMouseMode accepts "none", "cell" or "all".
func ParseMouseMode(s string) (MouseMode, error) {
	return terminal.ParseMouseMode(s)
}

// ProgramOption configures a Program. Options are captured by NewProgram
// and validated by Run.
type ProgramOption func(*options)

type options struct {
	ctx    context.Context
	input  io.Reader
	output io.Writer

	altScreen      bool
	mouse          MouseMode
	reportFocus    bool
	bracketedPaste bool
	fps            int
	noRenderer     bool
	catchPanics    bool
	signals        bool
	filter         func(Model, Msg) Msg
	bufferSize     int
	env            []string
	title          string

	// seams replaced in tests
	tty            terminal.TTY
	ttySet         bool
	signalNotify   func(c chan<- os.Signal, sig ...os.Signal)
	signalStop     func(c chan<- os.Signal)
	suspendProcess func(ctx context.Context) error
	windowSize     func() (int, int, error)
}

func defaultOptions() options {
	return options{
		ctx:            context.Background(),
		input:          os.Stdin,
		output:         os.Stdout,
		bracketedPaste: true,
		catchPanics:    true,
		signals:        true,
		bufferSize:     defaultMessageBuffer,
		signalNotify:   signal.Notify,
		signalStop:     signal.Stop,
		suspendProcess: suspendProcess,
	}
}

func (o options) validate() error {
	if o.ctx == nil {
		return invalidConfig("nil context")
	}
	if o.fps < 0 || o.fps > maxFPS {
		return invalidConfig("fps %d out of range 1..%d", o.fps, maxFPS)
	}
	if o.bufferSize < 1 {
		return invalidConfig("message buffer must hold at least one message, got %d", o.bufferSize)
	}
	switch o.mouse {
	case MouseModeNone, MouseModeCellMotion, MouseModeAllMotion:
	default:
		return invalidConfig("unknown mouse mode %d", int(o.mouse))
	}
	return nil
}

func (o options) frameInterval() time.Duration {
	fps := o.fps
	if fps == 0 {
		fps = defaultFPS
	}
	return time.Second / time.Duration(fps)
}

func (o options) traceFields() map[string]interface{} {
	return map[string]interface{}{
		"altScreen":      o.altScreen,
		"mouse":          o.mouse.String(),
		"reportFocus":    o.reportFocus,
		"bracketedPaste": o.bracketedPaste,
		"fps":            o.fps,
		"renderer":       !o.noRenderer,
		"catchPanics":    o.catchPanics,
		"signals":        o.signals,
		"buffer":         o.bufferSize,
		"input":          o.input != nil,
	}
}

// WithContext ties the Program to ctx. Cancelling ctx ends Run with an
// error wrapping ErrProgramKilled.
func WithContext(ctx context.Context) ProgramOption {
	return func(o *options) {
		o.ctx = ctx
	}
}

// WithInput reads input from r instead of stdin. A nil reader disables
// input entirely.
func WithInput(r io.Reader) ProgramOption {
	return func(o *options) {
		o.input = r
	}
}

// WithOutput writes frames and control sequences to w instead of stdout.
func WithOutput(w io.Writer) ProgramOption {
	return func(o *options) {
		o.output = w
	}
}

// WithAltScreen starts the Program in the alternate screen buffer.
func WithAltScreen() ProgramOption {
	return func(o *options) {
		o.altScreen = true
	}
}

// WithMouseCellMotion reports clicks, releases, wheel and drag events.
func WithMouseCellMotion() ProgramOption {
	return WithMouseMode(MouseModeCellMotion)
}

// WithMouseAllMotion reports every mouse event, including motion without a
// pressed button.
func WithMouseAllMotion() ProgramOption {
	return WithMouseMode(MouseModeAllMotion)
}

// WithMouseMode selects the mouse reporting mode at startup.
func WithMouseMode(mode MouseMode) ProgramOption {
	return func(o *options) {
		o.mouse = mode
	}
}

// WithReportFocus enables FocusMsg and BlurMsg.
func WithReportFocus() ProgramOption {
	return func(o *options) {
		o.reportFocus = true
	}
}

// WithFPS sets the maximum frame rate. Zero selects the default of 60;
// values above 120 are rejected by Run.
func WithFPS(fps int) ProgramOption {
	return func(o *options) {
		o.fps = fps
	}
}

// WithoutRenderer disables rendering. Useful for programs driven by
// Println or running without a terminal.
func WithoutRenderer() ProgramOption {
	return func(o *options) {
		o.noRenderer = true
	}
}

// WithoutCatchPanics lets panics propagate after the terminal has been
// restored.
func WithoutCatchPanics() ProgramOption {
	return func(o *options) {
		o.catchPanics = false
	}
}

// WithoutSignalHandler leaves SIGINT, SIGTERM and SIGHUP to the caller.
func WithoutSignalHandler() ProgramOption {
	return func(o *options) {
		o.signals = false
	}
}

// WithoutBracketedPaste leaves bracketed paste off, so pastes arrive as
// key presses.
func WithoutBracketedPaste() ProgramOption {
	return func(o *options) {
		o.bracketedPaste = false
	}
}

// WithFilter installs a function that sees every message before Update and
// may replace it. Returning nil drops the message.
func WithFilter(filter func(Model, Msg) Msg) ProgramOption {
	return func(o *options) {
		o.filter = filter
	}
}

// WithMessageBuffer sets the capacity of the message channel. Senders block
// while it is full.
func WithMessageBuffer(n int) ProgramOption {
	return func(o *options) {
		o.bufferSize = n
	}
}

// WithEnvironment sets the environment for processes started with
// ExecProcess and RunProcess when the command does not carry its own.
func WithEnvironment(env []string) ProgramOption {
	return func(o *options) {
		o.env = env
	}
}

// WithWindowTitle sets the terminal window title at startup.
func WithWindowTitle(title string) ProgramOption {
	return func(o *options) {
		o.title = title
	}
}
