package mvu

import (
	"github.com/atomicstack/tealoop/internal/input"
)

// Msg is any value delivered to Model.Update.
type Msg interface{}

// Cmd is deferred work that produces at most one Msg. A nil Cmd means no
// work and a nil Msg means nothing to deliver.
type Cmd func() Msg

// Model is the application state owned by a Program.
type Model interface {
	// Init returns the first command to run, if any.
	Init() Cmd
	// Update handles one message and returns the updated model and the
	// next command.
	Update(Msg) (Model, Cmd)
	// View renders the model.
	View() string
}

type (
	Key         = input.Key
	KeyType     = input.KeyType
	Mouse       = input.Mouse
	MouseButton = input.MouseButton
	MouseAction = input.MouseAction
)

const (
	KeyRunes     = input.KeyRunes
	KeyEnter     = input.KeyEnter
	KeyTab       = input.KeyTab
	KeyShiftTab  = input.KeyShiftTab
	KeyBackspace = input.KeyBackspace
	KeyEscape    = input.KeyEscape
	KeySpace     = input.KeySpace
	KeyUp        = input.KeyUp
	KeyDown      = input.KeyDown
	KeyRight     = input.KeyRight
	KeyLeft      = input.KeyLeft
	KeyHome      = input.KeyHome
	KeyEnd       = input.KeyEnd
	KeyPgUp      = input.KeyPgUp
	KeyPgDown    = input.KeyPgDown
	KeyInsert    = input.KeyInsert
	KeyDelete    = input.KeyDelete
	KeyF1        = input.KeyF1
	KeyF2        = input.KeyF2
	KeyF3        = input.KeyF3
	KeyF4        = input.KeyF4
	KeyF5        = input.KeyF5
	KeyF6        = input.KeyF6
	KeyF7        = input.KeyF7
	KeyF8        = input.KeyF8
	KeyF9        = input.KeyF9
	KeyF10       = input.KeyF10
	KeyF11       = input.KeyF11
	KeyF12       = input.KeyF12

	MouseButtonNone   = input.MouseButtonNone
	MouseButtonLeft   = input.MouseButtonLeft
	MouseButtonMiddle = input.MouseButtonMiddle
	MouseButtonRight  = input.MouseButtonRight
	MouseWheelUp      = input.MouseWheelUp
	MouseWheelDown    = input.MouseWheelDown
	MouseWheelLeft    = input.MouseWheelLeft
	MouseWheelRight   = input.MouseWheelRight

	MouseActionPress   = input.MouseActionPress
	MouseActionRelease = input.MouseActionRelease
	MouseActionMotion  = input.MouseActionMotion
)

// KeyMsg reports a key press.
type KeyMsg Key

// String returns the key in binding form, e.g. "ctrl+c" or "q".
func (k KeyMsg) String() string {
	return Key(k).String()
}

// MouseMsg reports a mouse event. Mouse reporting must be enabled.
type MouseMsg Mouse

func (m MouseMsg) String() string {
	return Mouse(m).String()
}

// PasteMsg carries text received through bracketed paste.
type PasteMsg string

// WindowSizeMsg reports the terminal size. It is sent once at startup when
// the size is known, on every resize, and in answer to RequestWindowSize.
type WindowSizeMsg struct {
	Width  int
	Height int
}

// FocusMsg and BlurMsg report terminal focus changes when focus reporting
// is enabled.
type (
	FocusMsg struct{}
	BlurMsg  struct{}
)

// QuitMsg ends the Program gracefully. Messages still queued behind it are
// dropped without reaching Update. A bare KillMsg among them turns the exit
// into a kill; a KillMsg carried by a queued BatchMsg or Sequence is dropped
// along with its carrier, since those commands are never run.
type QuitMsg struct{}

// KillMsg ends the Program immediately with ErrProgramKilled.
type KillMsg struct{}

// InterruptMsg is delivered to Update on SIGINT or Interrupt. Update
// consumes it by returning any non-nil Cmd; IgnoreInterrupt does so without
// further work. An interrupt answered with a nil Cmd ends the Program the
// way Quit does, with the final Model, and Run reports ErrInterrupted.
type InterruptMsg struct{}

// SuspendMsg asks the Program to release the terminal and suspend the
// process. It is handled by the Program and never reaches Update.
type SuspendMsg struct{}

// ResumeMsg is delivered after the process resumes from suspension.
type ResumeMsg struct{}

// BatchMsg is returned by Batch. The Program runs each command
// concurrently.
type BatchMsg []Cmd

type sequenceMsg []Cmd

func msgFromEvent(evt input.Event) Msg {
	switch evt.Kind {
	case input.KindKey:
		return KeyMsg(evt.Key)
	case input.KindMouse:
		return MouseMsg(evt.Mouse)
	case input.KindPaste:
		return PasteMsg(evt.Text)
	case input.KindFocus:
		return FocusMsg{}
	case input.KindBlur:
		return BlurMsg{}
	default:
		return nil
	}
}
