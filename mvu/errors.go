package mvu

import (
	"errors"
	"fmt"
)

var (
	// ErrProgramKilled is returned by Run after Kill, a KillMsg, SIGTERM or
	// cancellation of the Program's context.
	ErrProgramKilled = errors.New("program was killed")
	// ErrInterrupted is returned by Run when an InterruptMsg was not
	// consumed by Update.
	ErrInterrupted = errors.New("program was interrupted")
	// ErrProgramPanic is wrapped by every PanicError.
	ErrProgramPanic = errors.New("program experienced a panic")
	// ErrInvalidConfig is returned by Run when the options are unusable.
	ErrInvalidConfig = errors.New("invalid program configuration")
	// ErrTerminalIO wraps failures reading from or writing to the terminal.
	ErrTerminalIO = errors.New("terminal i/o failure")
)

// PanicError is returned by Run when a panic in Update, View or a command
// was caught.
type PanicError struct {
	Value interface{}
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%v: %v", ErrProgramPanic, e.Value)
}

func (e *PanicError) Unwrap() error {
	return ErrProgramPanic
}

func invalidConfig(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func terminalIO(what string, err error) error {
	if err == nil || errors.Is(err, ErrTerminalIO) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrTerminalIO, what, err)
}
