package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/tealoop/mvu"
)

var errExit = errors.New("exit status 2")

func TestViewShowsHeaderFilterAndItems(t *testing.T) {
	m := NewModel(Options{Countdown: 7, Words: []string{"apple", "banana"}})
	view := m.View()
	for _, want := range []string{"tealoop", "7 left", filterPlaceholder, "apple", "banana", "2/2"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestViewShowsNoMatches(t *testing.T) {
	h := newTestHarness(Options{})
	h.Send(keyRunes("zzz"))
	view := h.View()
	if !strings.Contains(view, `No matches for "zzz"`) {
		t.Fatalf("expected no-match message, got:\n%s", view)
	}
	if !strings.Contains(view, "0/4") {
		t.Fatalf("expected counts in status line, got:\n%s", view)
	}
}

func TestViewMarksAndPausedCountdown(t *testing.T) {
	h := newTestHarness(Options{Countdown: 3, Tick: time.Hour})
	h.Send(keyCtrl('t'))
	h.Send(keyCtrl('p'))
	view := h.View()
	if !strings.Contains(view, "*apple") {
		t.Fatalf("expected marked item, got:\n%s", view)
	}
	if !strings.Contains(view, "1 marked") {
		t.Fatalf("expected mark count, got:\n%s", view)
	}
	if !strings.Contains(view, "3 left (paused)") {
		t.Fatalf("expected paused countdown, got:\n%s", view)
	}
}

func TestViewLimitsRowsToWindowHeight(t *testing.T) {
	h := newTestHarness(Options{})
	h.Send(mvu.WindowSizeMsg{Width: 40, Height: reservedRows + 2})
	lines := strings.Split(h.View(), "\n")
	if len(lines) != reservedRows+2 {
		t.Fatalf("expected %d lines, got %d:\n%s", reservedRows+2, len(lines), h.View())
	}

	h.Send(mvu.KeyMsg{Type: mvu.KeyEnd})
	view := h.View()
	if strings.Contains(view, "apple") {
		t.Fatalf("expected the first item scrolled out of view:\n%s", view)
	}
	if !strings.Contains(view, "cherry") {
		t.Fatalf("expected the last item visible:\n%s", view)
	}
}

func TestViewShowsErrorsAndFocus(t *testing.T) {
	h := newTestHarness(Options{})
	h.Send(mvu.BlurMsg{})
	h.Send(editorDoneMsg{err: errExit})
	view := h.View()
	if !strings.Contains(view, "unfocused") {
		t.Fatalf("expected unfocused marker, got:\n%s", view)
	}
	if !strings.Contains(view, "editor: exit status 2") {
		t.Fatalf("expected error line, got:\n%s", view)
	}
}

func TestViewHeartbeatState(t *testing.T) {
	h := newTestHarness(Options{})
	h.Init()
	if !strings.Contains(h.View(), "♥ 0") {
		t.Fatalf("expected running heartbeat, got:\n%s", h.View())
	}
	h.Send(mvu.KeyMsg{Type: mvu.KeyTab})
	if !strings.Contains(h.View(), "(stopped)") {
		t.Fatalf("expected stopped heartbeat, got:\n%s", h.View())
	}
}

func TestViewShowsFullListPosition(t *testing.T) {
	h := newTestHarness(Options{})
	h.Send(keyRunes("che"))
	if !strings.Contains(h.View(), "cherry  #4") {
		t.Fatalf("expected position in the full list, got:\n%s", h.View())
	}
}
