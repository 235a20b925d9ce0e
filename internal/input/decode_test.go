package input

import (
	"testing"
)

func decodeAll(t *testing.T, chunks ...string) []Event {
	t.Helper()
	var d decoder
	var out []Event
	for _, c := range chunks {
		out = append(out, d.decode([]byte(c))...)
	}
	return out
}

func TestDecodeKeys(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"q", "q"},
		{"\x03", "ctrl+c"},
		{"\x1a", "ctrl+z"},
		{"\r", "enter"},
		{"\t", "tab"},
		{"\x7f", "backspace"},
		{"\x1b", "esc"},
		{" ", "space"},
		{"\x1bx", "alt+x"},
		{"\x1b[A", "up"},
		{"\x1b[1;5C", "ctrl+right"},
		{"\x1b[1;2D", "shift+left"},
		{"\x1bOB", "down"},
		{"\x1bOP", "f1"},
		{"\x1b[3~", "delete"},
		{"\x1b[5;3~", "alt+pgup"},
		{"\x1b[24~", "f12"},
		{"\x1b[Z", "shift+tab"},
		{"é", "é"},
	}
	for _, tt := range tests {
		evts := decodeAll(t, tt.in)
		if len(evts) != 1 {
			t.Fatalf("%q: expected one event, got %d", tt.in, len(evts))
		}
		if evts[0].Kind != KindKey {
			t.Fatalf("%q: expected key event, got kind %d", tt.in, evts[0].Kind)
		}
		if got := evts[0].Key.String(); got != tt.want {
			t.Fatalf("%q: expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestDecodeSeveralKeysInOneRead(t *testing.T) {
	evts := decodeAll(t, "ab\x1b[Bc")
	var got []string
	for _, e := range evts {
		got = append(got, e.Key.String())
	}
	want := []string{"a", "b", "down", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestDecodeSGRMouse(t *testing.T) {
	evts := decodeAll(t, "\x1b[<0;10;5M", "\x1b[<0;10;5m", "\x1b[<65;3;4M", "\x1b[<35;7;8M")
	if len(evts) != 4 {
		t.Fatalf("expected 4 events, got %d", len(evts))
	}
	press := evts[0].Mouse
	if evts[0].Kind != KindMouse || press.Button != MouseButtonLeft || press.Action != MouseActionPress || press.X != 9 || press.Y != 4 {
		t.Fatalf("unexpected press %+v", press)
	}
	if rel := evts[1].Mouse; rel.Action != MouseActionRelease {
		t.Fatalf("expected release, got %+v", rel)
	}
	if wheel := evts[2].Mouse; wheel.Button != MouseWheelDown {
		t.Fatalf("expected wheel down, got %+v", wheel)
	}
	if motion := evts[3].Mouse; motion.Action != MouseActionMotion || motion.Button != MouseButtonNone {
		t.Fatalf("expected buttonless motion, got %+v", motion)
	}
}

func TestDecodeX10Mouse(t *testing.T) {
	evts := decodeAll(t, "\x1b[M"+string([]byte{32, 33 + 4, 33 + 2}))
	if len(evts) != 1 || evts[0].Kind != KindMouse {
		t.Fatalf("expected one mouse event, got %+v", evts)
	}
	m := evts[0].Mouse
	if m.Button != MouseButtonLeft || m.X != 4 || m.Y != 2 {
		t.Fatalf("unexpected mouse %+v", m)
	}
}

func TestDecodeFocus(t *testing.T) {
	evts := decodeAll(t, "\x1b[I\x1b[O")
	if len(evts) != 2 || evts[0].Kind != KindFocus || evts[1].Kind != KindBlur {
		t.Fatalf("expected focus then blur, got %+v", evts)
	}
}

func TestDecodePaste(t *testing.T) {
	evts := decodeAll(t, "x\x1b[200~hello\x1b[Aworld\x1b[201~y")
	if len(evts) != 3 {
		t.Fatalf("expected 3 events, got %+v", evts)
	}
	if evts[1].Kind != KindPaste || evts[1].Text != "hello\x1b[Aworld" {
		t.Fatalf("unexpected paste %+v", evts[1])
	}
	if evts[2].Key.String() != "y" {
		t.Fatalf("expected trailing key y, got %+v", evts[2])
	}
}

func TestDecodePasteAcrossReads(t *testing.T) {
	evts := decodeAll(t, "\x1b[200~one ", "two\x1b[20", "1~")
	if len(evts) != 1 {
		t.Fatalf("expected a single paste event, got %+v", evts)
	}
	if evts[0].Kind != KindPaste || evts[0].Text != "one two" {
		t.Fatalf("unexpected paste %+v", evts[0])
	}
}

func TestDecodeUnknownSequence(t *testing.T) {
	evts := decodeAll(t, "\x1b[99q")
	if len(evts) != 1 || evts[0].Kind != KindUnknown {
		t.Fatalf("expected unknown event, got %+v", evts)
	}
	if evts[0].Text != "\x1b[99q" {
		t.Fatalf("expected raw bytes preserved, got %q", evts[0].Text)
	}
}
