// Package terminal owns the mutable terminal state of a running program:
// raw input mode, the alternate screen, mouse and focus reporting, bracketed
// paste and cursor visibility. Every toggle is idempotent and the state can
// always be returned to the snapshot taken before the program started.
package terminal

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/atomicstack/tealoop/internal/logging/events"
	"github.com/charmbracelet/x/ansi"
)

// MouseMode selects which mouse events the terminal reports.
type MouseMode int

const (
	MouseNone MouseMode = iota
	MouseCellMotion
	MouseAllMotion
)

func (m MouseMode) String() string {
	switch m {
	case MouseCellMotion:
		return "cell"
	case MouseAllMotion:
		return "all"
	default:
		return "none"
	}
}

// ParseMouseMode accepts "none", "cell" or "all".
func ParseMouseMode(s string) (MouseMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "off":
		return MouseNone, nil
	case "cell", "cell-motion":
		return MouseCellMotion, nil
	case "all", "all-motion":
		return MouseAllMotion, nil
	default:
		return MouseNone, fmt.Errorf("unknown mouse mode %q (want none, cell or all)", s)
	}
}

// State is the set of terminal modes the controller manages.
type State struct {
	RawMode        bool
	AltScreen      bool
	Mouse          MouseMode
	CursorVisible  bool
	BracketedPaste bool
	ReportFocus    bool
}

// DefaultState is a cooked terminal on the normal screen with the cursor
// shown, which is what a shell expects to get back.
func DefaultState() State {
	return State{CursorVisible: true}
}

// Controller is the only writer of terminal modes.
type Controller struct {
	mu      sync.Mutex
	out     *Output
	tty     TTY
	initial State
	state   State
	saved   State
}

// NewController returns a controller writing sequences to out. tty may be
// nil when input is not a terminal; raw mode requests are then ignored.
func NewController(out *Output, tty TTY) *Controller {
	return &Controller{
		out:     out,
		tty:     tty,
		initial: DefaultState(),
		state:   DefaultState(),
		saved:   DefaultState(),
	}
}

// State returns the current terminal modes.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) SetRawMode(on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setRawMode(on)
}

func (c *Controller) SetAltScreen(on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setAltScreen(on)
}

func (c *Controller) SetMouseMode(mode MouseMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setMouseMode(mode)
}

func (c *Controller) SetCursorVisible(on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setCursorVisible(on)
}

func (c *Controller) SetBracketedPaste(on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setBracketedPaste(on)
}

func (c *Controller) SetReportFocus(on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setReportFocus(on)
}

// Restore returns the terminal to the state it had before the program
// started. Every step is attempted even when an earlier one fails.
func (c *Controller) Restore() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.apply(c.initial)
	events.Terminal.Restore(err)
	return err
}

// Release hands the terminal back to the shell (suspend, exec) and remembers
// the current modes for Reacquire.
func (c *Controller) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saved = c.state
	return c.apply(c.initial)
}

// Reacquire re-applies the modes saved by Release.
func (c *Controller) Reacquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apply(c.saved)
}

// apply moves to target. Modes being switched off are handled first, in
// teardown order, then modes being switched on, in setup order.
func (c *Controller) apply(target State) error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	if target.Mouse == MouseNone {
		add(c.setMouseMode(MouseNone))
	}
	if !target.ReportFocus {
		add(c.setReportFocus(false))
	}
	if !target.BracketedPaste {
		add(c.setBracketedPaste(false))
	}
	if target.CursorVisible {
		add(c.setCursorVisible(true))
	}
	if !target.AltScreen {
		add(c.setAltScreen(false))
	}
	if !target.RawMode {
		add(c.setRawMode(false))
	}

	if target.RawMode {
		add(c.setRawMode(true))
	}
	if target.AltScreen {
		add(c.setAltScreen(true))
	}
	if !target.CursorVisible {
		add(c.setCursorVisible(false))
	}
	if target.BracketedPaste {
		add(c.setBracketedPaste(true))
	}
	if target.ReportFocus {
		add(c.setReportFocus(true))
	}
	if target.Mouse != MouseNone {
		add(c.setMouseMode(target.Mouse))
	}
	return errors.Join(errs...)
}

func (c *Controller) setRawMode(on bool) error {
	if c.state.RawMode == on || c.tty == nil {
		return nil
	}
	var err error
	if on {
		err = c.tty.MakeRaw()
	} else {
		err = c.tty.Restore()
	}
	if err != nil {
		return err
	}
	c.state.RawMode = on
	events.Terminal.Switch("raw", on)
	return nil
}

func (c *Controller) setAltScreen(on bool) error {
	if c.state.AltScreen == on {
		return nil
	}
	seq := ansi.ResetAltScreenSaveCursorMode
	if on {
		seq = ansi.SetAltScreenSaveCursorMode
	}
	if err := c.write("alt screen", seq); err != nil {
		return err
	}
	c.state.AltScreen = on
	events.Terminal.Switch("altscreen", on)
	return nil
}

func (c *Controller) setCursorVisible(on bool) error {
	if c.state.CursorVisible == on {
		return nil
	}
	seq := ansi.HideCursor
	if on {
		seq = ansi.ShowCursor
	}
	if err := c.write("cursor", seq); err != nil {
		return err
	}
	c.state.CursorVisible = on
	events.Terminal.Switch("cursor", on)
	return nil
}

func (c *Controller) setBracketedPaste(on bool) error {
	if c.state.BracketedPaste == on {
		return nil
	}
	seq := ansi.ResetBracketedPasteMode
	if on {
		seq = ansi.SetBracketedPasteMode
	}
	if err := c.write("bracketed paste", seq); err != nil {
		return err
	}
	c.state.BracketedPaste = on
	events.Terminal.Switch("bracketed-paste", on)
	return nil
}

func (c *Controller) setReportFocus(on bool) error {
	if c.state.ReportFocus == on {
		return nil
	}
	seq := ansi.ResetFocusEventMode
	if on {
		seq = ansi.SetFocusEventMode
	}
	if err := c.write("focus reporting", seq); err != nil {
		return err
	}
	c.state.ReportFocus = on
	events.Terminal.Switch("focus", on)
	return nil
}

func (c *Controller) setMouseMode(mode MouseMode) error {
	current := c.state.Mouse
	if current == mode {
		return nil
	}
	var seq strings.Builder
	switch current {
	case MouseCellMotion:
		seq.WriteString(ansi.ResetButtonEventMouseMode)
	case MouseAllMotion:
		seq.WriteString(ansi.ResetAnyEventMouseMode)
	}
	switch mode {
	case MouseCellMotion:
		seq.WriteString(ansi.SetButtonEventMouseMode)
	case MouseAllMotion:
		seq.WriteString(ansi.SetAnyEventMouseMode)
	}
	switch {
	case current == MouseNone:
		seq.WriteString(ansi.SetSgrExtMouseMode)
	case mode == MouseNone:
		seq.WriteString(ansi.ResetSgrExtMouseMode)
	}
	if err := c.write("mouse mode", seq.String()); err != nil {
		return err
	}
	c.state.Mouse = mode
	events.Terminal.Switch("mouse:"+mode.String(), mode != MouseNone)
	return nil
}

func (c *Controller) write(what, seq string) error {
	if err := c.out.WriteString(seq); err != nil {
		return fmt.Errorf("set %s: %w", what, err)
	}
	return nil
}
