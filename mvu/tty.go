package mvu

import (
	"errors"
	"fmt"

	"github.com/atomicstack/tealoop/internal/logging"
	"github.com/atomicstack/tealoop/internal/logging/events"
	"github.com/charmbracelet/x/ansi"
)

// initTerminal applies the startup modes in setup order.
func (p *Program) initTerminal() error {
	if err := p.term.SetRawMode(true); err != nil {
		return terminalIO("enable raw mode", err)
	}
	if p.opts.altScreen {
		if err := p.term.SetAltScreen(true); err != nil {
			return terminalIO("enter alt screen", err)
		}
	}
	if !p.opts.noRenderer {
		if err := p.term.SetCursorVisible(false); err != nil {
			return terminalIO("hide cursor", err)
		}
	}
	if p.opts.bracketedPaste {
		if err := p.term.SetBracketedPaste(true); err != nil {
			return terminalIO("enable bracketed paste", err)
		}
	}
	if p.opts.reportFocus {
		if err := p.term.SetReportFocus(true); err != nil {
			return terminalIO("enable focus reporting", err)
		}
	}
	if p.opts.mouse != MouseModeNone {
		if err := p.term.SetMouseMode(p.opts.mouse); err != nil {
			return terminalIO("enable mouse", err)
		}
	}
	if p.opts.title != "" {
		if err := p.output.WriteString(ansi.SetWindowTitle(p.opts.title)); err != nil {
			return terminalIO("set window title", err)
		}
	}
	return nil
}

// applyControl handles the terminal toggle commands.
func (p *Program) applyControl(msg Msg) error {
	switch msg := msg.(type) {
	case altScreenMsg:
		on := bool(msg)
		if err := p.term.SetAltScreen(on); err != nil {
			return err
		}
		p.renderer.setAltScreen(on)
	case mouseModeMsg:
		return p.term.SetMouseMode(MouseMode(msg))
	case bracketedPasteMsg:
		return p.term.SetBracketedPaste(bool(msg))
	case reportFocusMsg:
		return p.term.SetReportFocus(bool(msg))
	case cursorMsg:
		return p.term.SetCursorVisible(bool(msg))
	}
	return nil
}

// release hands the terminal back to the shell: input stops, the renderer
// stops and every mode returns to its pre-program value.
func (p *Program) release() error {
	p.stopReader()
	p.renderer.stop()
	return p.term.Release()
}

// reacquire undoes release. The renderer repaints the whole frame.
func (p *Program) reacquire() error {
	err := p.term.Reacquire()
	p.renderer.start()
	p.renderer.repaint()
	if p.opts.input != nil {
		if rerr := p.startReader(); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}
	return err
}

// suspend runs on the loop goroutine, so no message is processed while the
// process is stopped.
func (p *Program) suspend() {
	events.Terminal.Suspend(p.runID)
	err := p.release()
	if err == nil {
		err = p.opts.suspendProcess(p.ctx)
	}
	if rerr := p.reacquire(); rerr != nil {
		err = errors.Join(err, rerr)
	}
	events.Terminal.Resume(p.runID, err)
	if err != nil {
		logging.Error(fmt.Errorf("suspend: %w", err))
	}
	go p.Send(ResumeMsg{})
}
