package mvu

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/atomicstack/tealoop/internal/logging"
	"github.com/atomicstack/tealoop/internal/logging/events"
	"github.com/charmbracelet/x/ansi"
)

// eventLoop is the only place Update is called. It returns when the
// Program has to stop, with the exit reason already recorded.
func (p *Program) eventLoop(model Model) (Model, error) {
	for {
		select {
		case <-p.ctx.Done():
			p.setReason(ExitKill)
			return model, p.killError()

		case err := <-p.errs:
			return model, p.failure(err)

		case msg := <-p.msgs:
			if p.ctx.Err() != nil {
				p.setReason(ExitKill)
				return model, p.killError()
			}
			var (
				done bool
				err  error
			)
			model, done, err = p.handle(model, msg)
			p.model = model
			if done {
				return model, err
			}
		}
	}
}

// handle processes one message. done reports that the Program must stop.
func (p *Program) handle(model Model, msg Msg) (Model, bool, error) {
	if msg == nil {
		return model, false, nil
	}
	if p.opts.filter != nil {
		if msg = p.opts.filter(model, msg); msg == nil {
			return model, false, nil
		}
	}

	switch msg := msg.(type) {
	case QuitMsg:
		return p.drain(model, ExitQuit, nil)

	case KillMsg:
		p.setReason(ExitKill)
		return model, true, ErrProgramKilled

	case InterruptMsg:
		next, cmd := model.Update(msg)
		p.renderer.write(next.View())
		if cmd == nil {
			return p.drain(next, ExitInterrupt, ErrInterrupted)
		}
		p.exec(cmd)
		return next, false, nil

	case SuspendMsg:
		p.suspend()
		return model, false, nil

	case BatchMsg:
		for _, cmd := range msg {
			p.exec(cmd)
		}
		return model, false, nil

	case sequenceMsg:
		go p.runSequence(msg)
		return model, false, nil

	case startTimerMsg:
		p.startTimer(msg.handle)
		return model, false, nil

	case cancelAllTimersMsg:
		p.cancelAllTimers()
		return model, false, nil

	case execMsg:
		p.execInteractive(msg)
		return model, false, nil

	case processMsg:
		go p.runProcess(msg)
		return model, false, nil

	case printLineMsg:
		p.renderer.queueLines(msg.body)
		return model, false, nil

	case clearScreenMsg:
		p.renderer.clearScreen()
		return model, false, nil

	case windowSizeRequestMsg:
		go p.checkResize()
		return model, false, nil

	case setWindowTitleMsg:
		if err := p.output.WriteString(ansi.SetWindowTitle(string(msg))); err != nil {
			return model, true, p.failure(terminalIO("set window title", err))
		}
		return model, false, nil

	case altScreenMsg, mouseModeMsg, bracketedPasteMsg, reportFocusMsg, cursorMsg:
		if err := p.applyControl(msg); err != nil {
			return model, true, p.failure(terminalIO("terminal control", err))
		}
		return model, false, nil

	case WindowSizeMsg:
		p.renderer.resize(msg.Width, msg.Height)
	}

	next, cmd := model.Update(msg)
	p.exec(cmd)
	p.renderer.write(next.View())
	return next, false, nil
}

// drain runs after a QuitMsg or an unconsumed InterruptMsg. Messages already
// queued are discarded, except that a bare KillMsg among them turns the exit
// into a kill. A KillMsg inside a queued batch or sequence is dropped with it.
func (p *Program) drain(model Model, reason ExitReason, err error) (Model, bool, error) {
	p.setState(StateDraining)
	for {
		select {
		case msg := <-p.msgs:
			if _, ok := msg.(KillMsg); ok {
				p.setReason(ExitKill)
				return model, true, ErrProgramKilled
			}
			events.Program.Dropped(p.runID, msg)
		default:
			if p.ctx.Err() != nil {
				p.setReason(ExitKill)
				return model, true, p.killError()
			}
			p.setReason(reason)
			return model, true, err
		}
	}
}

func (p *Program) killError() error {
	cause := context.Cause(p.ctx)
	if cause == nil || errors.Is(cause, ErrProgramKilled) || errors.Is(cause, errProgramFinished) {
		return ErrProgramKilled
	}
	return fmt.Errorf("%w: %w", ErrProgramKilled, cause)
}

// failure classifies an infrastructure error and records the exit reason.
func (p *Program) failure(err error) error {
	var perr *PanicError
	if errors.As(err, &perr) {
		p.setReason(ExitPanic)
		events.Program.Panic(p.runID, perr.Value, perr.Stack)
		return err
	}
	p.setReason(ExitIOError)
	logging.Error(err)
	return err
}

// runSequence runs each step after the previous one has returned.
func (p *Program) runSequence(cmds sequenceMsg) {
	defer p.recoverCommand()
	p.sequence(cmds)
}

func (p *Program) sequence(cmds []Cmd) {
	for _, cmd := range cmds {
		if p.ctx.Err() != nil {
			return
		}
		if cmd == nil {
			continue
		}
		p.deliverStep(cmd())
	}
}

// deliverStep sends a step's result, waiting for nested batches and
// sequences to finish so the next step starts after them.
func (p *Program) deliverStep(msg Msg) {
	switch msg := msg.(type) {
	case nil:
	case BatchMsg:
		var wg sync.WaitGroup
		for _, cmd := range msg {
			if cmd == nil {
				continue
			}
			wg.Add(1)
			go func(cmd Cmd) {
				defer wg.Done()
				defer p.recoverCommand()
				p.deliverStep(cmd())
			}(cmd)
		}
		wg.Wait()
	case sequenceMsg:
		p.sequence(msg)
	default:
		p.Send(msg)
	}
}
