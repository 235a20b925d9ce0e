package mvu

import (
	"fmt"
	"strings"
)

// Batch runs cmds concurrently. Their messages arrive in completion order.
// Nil commands are dropped; Batch of nothing is nil.
func Batch(cmds ...Cmd) Cmd {
	valid := compactCmds(cmds)
	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	}
	return func() Msg {
		return BatchMsg(valid)
	}
}

// Sequence runs cmds one after another: each starts once the previous one
// has returned. Every message is delivered on its own, in order. A BatchMsg
// returned by a step runs concurrently and is waited for before the next
// step starts.
func Sequence(cmds ...Cmd) Cmd {
	valid := compactCmds(cmds)
	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	}
	return func() Msg {
		return sequenceMsg(valid)
	}
}

func compactCmds(cmds []Cmd) []Cmd {
	var valid []Cmd
	for _, c := range cmds {
		if c != nil {
			valid = append(valid, c)
		}
	}
	return valid
}

// Quit ends the Program gracefully.
func Quit() Msg {
	return QuitMsg{}
}

// Kill ends the Program without consulting Update.
func Kill() Msg {
	return KillMsg{}
}

// Interrupt delivers an InterruptMsg.
func Interrupt() Msg {
	return InterruptMsg{}
}

// IgnoreInterrupt answers an InterruptMsg to keep the Program running when
// Update has nothing else to schedule.
func IgnoreInterrupt() Msg {
	return nil
}

// Suspend releases the terminal and suspends the process. A ResumeMsg
// follows once the process is resumed.
func Suspend() Msg {
	return SuspendMsg{}
}

type printLineMsg struct {
	body string
}

// Println prints above the rendered frame. It is ignored in the alternate
// screen.
func Println(args ...interface{}) Cmd {
	return func() Msg {
		return printLineMsg{body: fmt.Sprint(args...)}
	}
}

// Printf is Println with a format string.
func Printf(template string, args ...interface{}) Cmd {
	return func() Msg {
		return printLineMsg{body: fmt.Sprintf(template, args...)}
	}
}

type setWindowTitleMsg string

// SetWindowTitle sets the terminal window title.
func SetWindowTitle(title string) Cmd {
	return func() Msg {
		return setWindowTitleMsg(strings.TrimSpace(title))
	}
}

type clearScreenMsg struct{}

// ClearScreen clears the terminal before the next frame.
func ClearScreen() Msg {
	return clearScreenMsg{}
}

type windowSizeRequestMsg struct{}

// RequestWindowSize asks for a WindowSizeMsg with the current size.
func RequestWindowSize() Msg {
	return windowSizeRequestMsg{}
}

type (
	altScreenMsg      bool
	mouseModeMsg      MouseMode
	bracketedPasteMsg bool
	reportFocusMsg    bool
	cursorMsg         bool
)

// EnterAltScreen switches to the alternate screen buffer.
func EnterAltScreen() Msg { return altScreenMsg(true) }

// ExitAltScreen returns to the main screen buffer.
func ExitAltScreen() Msg { return altScreenMsg(false) }

// EnableMouseCellMotion reports clicks, wheel and drags.
func EnableMouseCellMotion() Msg { return mouseModeMsg(MouseModeCellMotion) }

// EnableMouseAllMotion also reports motion without a button held.
func EnableMouseAllMotion() Msg { return mouseModeMsg(MouseModeAllMotion) }

// DisableMouse turns mouse reporting off.
func DisableMouse() Msg { return mouseModeMsg(MouseModeNone) }

// EnableBracketedPaste delivers pastes as a single PasteMsg.
func EnableBracketedPaste() Msg { return bracketedPasteMsg(true) }

// DisableBracketedPaste delivers pasted text as key presses.
func DisableBracketedPaste() Msg { return bracketedPasteMsg(false) }

// EnableReportFocus delivers FocusMsg and BlurMsg.
func EnableReportFocus() Msg { return reportFocusMsg(true) }

// DisableReportFocus stops focus reporting.
func DisableReportFocus() Msg { return reportFocusMsg(false) }

// ShowCursor makes the terminal cursor visible.
func ShowCursor() Msg { return cursorMsg(true) }

// HideCursor hides the terminal cursor.
func HideCursor() Msg { return cursorMsg(false) }
