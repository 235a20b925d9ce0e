package input

import (
	"fmt"
	"strings"
)

// KeyType identifies special keys. Printable input uses KeyRunes.
type KeyType int

const (
	KeyRunes KeyType = iota
	KeyEnter
	KeyTab
	KeyShiftTab
	KeyBackspace
	KeyEscape
	KeySpace
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var keyNames = map[KeyType]string{
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyShiftTab:  "shift+tab",
	KeyBackspace: "backspace",
	KeyEscape:    "esc",
	KeySpace:     "space",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyRight:     "right",
	KeyLeft:      "left",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPgUp:      "pgup",
	KeyPgDown:    "pgdown",
	KeyInsert:    "insert",
	KeyDelete:    "delete",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
}

func (k KeyType) String() string {
	if k == KeyRunes {
		return "runes"
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// Key is a decoded key press.
type Key struct {
	Type  KeyType
	Runes []rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

// String renders the key the way bindings are usually written, for example
// "ctrl+c", "alt+enter" or "q".
func (k Key) String() string {
	var b strings.Builder
	if k.Ctrl {
		b.WriteString("ctrl+")
	}
	if k.Alt {
		b.WriteString("alt+")
	}
	if k.Shift && k.Type != KeyShiftTab {
		b.WriteString("shift+")
	}
	if k.Type == KeyRunes {
		b.WriteString(string(k.Runes))
	} else {
		b.WriteString(k.Type.String())
	}
	return b.String()
}

// MouseButton is the button involved in a mouse event.
type MouseButton int

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
	MouseWheelUp
	MouseWheelDown
	MouseWheelLeft
	MouseWheelRight
)

var mouseButtonNames = map[MouseButton]string{
	MouseButtonNone:   "none",
	MouseButtonLeft:   "left",
	MouseButtonMiddle: "middle",
	MouseButtonRight:  "right",
	MouseWheelUp:      "wheel up",
	MouseWheelDown:    "wheel down",
	MouseWheelLeft:    "wheel left",
	MouseWheelRight:   "wheel right",
}

func (b MouseButton) String() string {
	return mouseButtonNames[b]
}

// MouseAction is what happened to the button.
type MouseAction int

const (
	MouseActionPress MouseAction = iota
	MouseActionRelease
	MouseActionMotion
)

func (a MouseAction) String() string {
	switch a {
	case MouseActionRelease:
		return "release"
	case MouseActionMotion:
		return "motion"
	default:
		return "press"
	}
}

// Mouse is a decoded mouse event. Coordinates are zero based.
type Mouse struct {
	X, Y   int
	Button MouseButton
	Action MouseAction
	Alt    bool
	Ctrl   bool
	Shift  bool
}

func (m Mouse) String() string {
	var b strings.Builder
	if m.Ctrl {
		b.WriteString("ctrl+")
	}
	if m.Alt {
		b.WriteString("alt+")
	}
	if m.Shift {
		b.WriteString("shift+")
	}
	if m.Button == MouseButtonNone {
		b.WriteString(m.Action.String())
		return b.String()
	}
	b.WriteString(m.Button.String())
	if m.Button < MouseWheelUp {
		b.WriteString(" ")
		b.WriteString(m.Action.String())
	}
	return b.String()
}
