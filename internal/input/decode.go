package input

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind represents the type of data carried by an Event.
type Kind int

const (
	KindKey Kind = iota
	KindMouse
	KindPaste
	KindFocus
	KindBlur
	KindUnknown
	KindError
)

// Event conveys one decoded input event or a read error.
type Event struct {
	Kind  Kind
	Key   Key
	Mouse Mouse
	// Text holds pasted text, or the raw bytes of an unrecognised sequence.
	Text string
	Err  error
}

var (
	pasteStart = []byte("\x1b[200~")
	pasteEnd   = []byte("\x1b[201~")
)

// decoder turns raw terminal bytes into events. Bracketed paste may span
// several reads, so the paste state lives on the decoder.
type decoder struct {
	pasting bool
	pending []byte
}

func (d *decoder) decode(buf []byte) []Event {
	data := buf
	if d.pasting && len(d.pending) > 0 {
		data = append(d.pending, buf...)
		d.pending = nil
	}
	var out []Event
	i := 0
	for i < len(data) {
		if d.pasting {
			idx := bytes.Index(data[i:], pasteEnd)
			if idx < 0 {
				d.pending = append([]byte(nil), data[i:]...)
				return out
			}
			out = append(out, Event{Kind: KindPaste, Text: string(data[i : i+idx])})
			d.pasting = false
			i += idx + len(pasteEnd)
			continue
		}
		if bytes.HasPrefix(data[i:], pasteStart) {
			d.pasting = true
			i += len(pasteStart)
			continue
		}
		evt, n := decodeOne(data[i:])
		out = append(out, evt)
		i += n
	}
	return out
}

func keyEvent(k Key) Event {
	return Event{Kind: KindKey, Key: k}
}

func unknown(b []byte) Event {
	return Event{Kind: KindUnknown, Text: string(b)}
}

// decodeOne decodes the event at the start of b and reports how many bytes
// it used. It always consumes at least one byte.
func decodeOne(b []byte) (Event, int) {
	c := b[0]
	switch {
	case c == 0x1b:
		return decodeEscape(b)
	case c == '\r':
		return keyEvent(Key{Type: KeyEnter}), 1
	case c == '\t':
		return keyEvent(Key{Type: KeyTab}), 1
	case c == 0x7f:
		return keyEvent(Key{Type: KeyBackspace}), 1
	case c == 0x00:
		return keyEvent(Key{Type: KeyRunes, Runes: []rune{'@'}, Ctrl: true}), 1
	case c < 0x1b:
		return keyEvent(Key{Type: KeyRunes, Runes: []rune{rune('a' + c - 1)}, Ctrl: true}), 1
	case c < 0x20:
		// 0x1c..0x1f are ctrl+\ ctrl+] ctrl+^ ctrl+_
		return keyEvent(Key{Type: KeyRunes, Runes: []rune{rune('\\' + c - 0x1c)}, Ctrl: true}), 1
	case c == ' ':
		return keyEvent(Key{Type: KeySpace, Runes: []rune{' '}}), 1
	}
	r, n := utf8.DecodeRune(b)
	if r == utf8.RuneError && n <= 1 {
		return unknown(b[:1]), 1
	}
	return keyEvent(Key{Type: KeyRunes, Runes: []rune{r}}), n
}

func decodeEscape(b []byte) (Event, int) {
	if len(b) == 1 {
		return keyEvent(Key{Type: KeyEscape}), 1
	}
	switch b[1] {
	case '[':
		return decodeCSI(b)
	case 'O':
		if len(b) >= 3 {
			if k, ok := ss3Keys[b[2]]; ok {
				return keyEvent(Key{Type: k}), 3
			}
		}
	case 0x1b:
		return keyEvent(Key{Type: KeyEscape, Alt: true}), 2
	}
	evt, n := decodeOne(b[1:])
	if evt.Kind != KindKey {
		return keyEvent(Key{Type: KeyEscape}), 1
	}
	evt.Key.Alt = true
	return evt, n + 1
}

var ss3Keys = map[byte]KeyType{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

var csiLetterKeys = map[byte]KeyType{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

var csiTildeKeys = map[int]KeyType{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPgUp,
	6:  KeyPgDown,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

func decodeCSI(b []byte) (Event, int) {
	if len(b) >= 6 && b[2] == 'M' {
		return Event{Kind: KindMouse, Mouse: decodeX10Mouse(b[3:6])}, 6
	}
	end := -1
	for i := 2; i < len(b); i++ {
		if b[i] >= 0x40 && b[i] <= 0x7e {
			end = i
			break
		}
		if b[i] < 0x20 {
			break
		}
	}
	if end < 0 {
		n := len(b)
		if idx := bytes.IndexByte(b[1:], 0x1b); idx >= 0 {
			n = idx + 1
		}
		return unknown(b[:n]), n
	}
	params := string(b[2:end])
	final := b[end]
	n := end + 1

	if strings.HasPrefix(params, "<") && (final == 'M' || final == 'm') {
		if m, ok := decodeSGRMouse(params[1:], final == 'm'); ok {
			return Event{Kind: KindMouse, Mouse: m}, n
		}
		return unknown(b[:n]), n
	}

	switch final {
	case 'I':
		if params == "" {
			return Event{Kind: KindFocus}, n
		}
	case 'O':
		if params == "" {
			return Event{Kind: KindBlur}, n
		}
	case 'Z':
		return keyEvent(Key{Type: KeyShiftTab, Shift: true}), n
	case '~':
		fields := strings.Split(params, ";")
		code, err := strconv.Atoi(fields[0])
		if err != nil {
			break
		}
		if k, ok := csiTildeKeys[code]; ok {
			key := Key{Type: k}
			if len(fields) > 1 {
				applyModifiers(&key, fields[1])
			}
			return keyEvent(key), n
		}
	default:
		if k, ok := csiLetterKeys[final]; ok {
			key := Key{Type: k}
			if fields := strings.Split(params, ";"); len(fields) > 1 {
				applyModifiers(&key, fields[1])
			}
			return keyEvent(key), n
		}
	}
	return unknown(b[:n]), n
}

// applyModifiers decodes the xterm modifier parameter (1 + bitmask of
// shift=1, alt=2, ctrl=4).
func applyModifiers(k *Key, param string) {
	mod, err := strconv.Atoi(param)
	if err != nil || mod < 1 {
		return
	}
	bits := mod - 1
	k.Shift = bits&1 != 0
	k.Alt = bits&2 != 0
	k.Ctrl = bits&4 != 0
}

func mouseFromCode(code int) Mouse {
	m := Mouse{
		Shift: code&4 != 0,
		Alt:   code&8 != 0,
		Ctrl:  code&16 != 0,
	}
	btn := code & 3
	switch {
	case code&64 != 0:
		m.Button = MouseWheelUp + MouseButton(btn)
	case btn == 3:
		m.Button = MouseButtonNone
	default:
		m.Button = MouseButtonLeft + MouseButton(btn)
	}
	if code&32 != 0 {
		m.Action = MouseActionMotion
	}
	return m
}

func decodeSGRMouse(params string, release bool) (Mouse, bool) {
	fields := strings.Split(params, ";")
	if len(fields) != 3 {
		return Mouse{}, false
	}
	vals := make([]int, 3)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Mouse{}, false
		}
		vals[i] = v
	}
	m := mouseFromCode(vals[0])
	m.X = vals[1] - 1
	m.Y = vals[2] - 1
	if release && m.Action == MouseActionPress {
		m.Action = MouseActionRelease
	}
	return m, true
}

func decodeX10Mouse(b []byte) Mouse {
	m := mouseFromCode(int(b[0]) - 32)
	m.X = int(b[1]) - 33
	m.Y = int(b[2]) - 33
	if m.Button == MouseButtonNone && m.Action == MouseActionPress {
		m.Action = MouseActionRelease
	}
	return m
}
