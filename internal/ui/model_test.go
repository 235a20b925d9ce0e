package ui

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/atomicstack/tealoop/mvu"
)

func keyRunes(s string) mvu.KeyMsg {
	return mvu.KeyMsg{Type: mvu.KeyRunes, Runes: []rune(s)}
}

func keyCtrl(r rune) mvu.KeyMsg {
	return mvu.KeyMsg{Type: mvu.KeyRunes, Runes: []rune{r}, Ctrl: true}
}

func newTestHarness(opts Options) *Harness {
	if opts.Words == nil {
		opts.Words = []string{"apple", "apricot", "banana", "cherry"}
	}
	return NewHarness(NewModel(opts))
}

func TestCountdownRearmsUntilQuit(t *testing.T) {
	h := newTestHarness(Options{Countdown: 3, Tick: time.Millisecond})
	h.Init()

	if got := h.Model().Remaining(); got != 0 {
		t.Fatalf("expected countdown to reach 0, got %d", got)
	}
	if !h.Quit() {
		t.Fatalf("expected quit once the countdown finished")
	}
	if h.Model().infoMsg != "time's up" {
		t.Fatalf("unexpected info %q", h.Model().infoMsg)
	}
}

func TestCountdownDisabled(t *testing.T) {
	h := newTestHarness(Options{})
	if cmd := h.Model().armCountdown(); cmd != nil {
		t.Fatalf("expected no countdown command when disabled")
	}
	h.Init()
	if h.Quit() {
		t.Fatalf("did not expect quit without a countdown")
	}
}

func TestPauseDropsTickAndResumeRearmsOnce(t *testing.T) {
	m := NewModel(Options{Countdown: 5, Tick: time.Hour})
	if cmd := m.armCountdown(); cmd == nil {
		t.Fatalf("expected an armed countdown")
	}
	m.togglePause()
	if !m.paused {
		t.Fatalf("expected paused")
	}
	// the in-flight tick arrives while paused and is dropped
	m.Update(countdownMsg{at: time.Now()})
	if m.Remaining() != 5 {
		t.Fatalf("expected paused countdown to hold at 5, got %d", m.Remaining())
	}
	if cmd := m.togglePause(); cmd == nil {
		t.Fatalf("expected resume to re-arm")
	}
	if cmd := m.togglePause(); cmd != nil {
		t.Fatalf("pausing must not return a command")
	}
	if cmd := m.togglePause(); cmd != nil {
		t.Fatalf("expected no second tick while one is still armed")
	}
}

func TestHeartbeatToggleAndStaleTicks(t *testing.T) {
	h := newTestHarness(Options{})
	h.Init()
	m := h.Model()
	if !m.HeartbeatRunning() {
		t.Fatalf("expected heartbeat to start on init")
	}
	first := m.beatID

	h.Send(heartbeatMsg{id: first, at: time.Now()})
	h.Send(heartbeatMsg{id: first, at: time.Now()})
	if m.beats != 2 {
		t.Fatalf("expected 2 beats, got %d", m.beats)
	}

	h.Send(mvu.KeyMsg{Type: mvu.KeyTab})
	if m.HeartbeatRunning() {
		t.Fatalf("expected heartbeat stopped")
	}
	if m.infoMsg != "heartbeat stopped" {
		t.Fatalf("expected cancel acknowledgement, got %q", m.infoMsg)
	}

	h.Send(heartbeatMsg{id: first, at: time.Now()})
	if m.beats != 2 {
		t.Fatalf("stale tick counted: %d beats", m.beats)
	}

	h.Send(mvu.KeyMsg{Type: mvu.KeyTab})
	if !m.HeartbeatRunning() || m.beatID == first {
		t.Fatalf("expected a fresh heartbeat timer, got id %d (first %d)", m.beatID, first)
	}
}

func TestCancelAllTimersStopsHeartbeat(t *testing.T) {
	h := newTestHarness(Options{})
	h.Init()
	h.Send(keyCtrl('x'))
	m := h.Model()
	if m.HeartbeatRunning() {
		t.Fatalf("expected heartbeat stopped")
	}
	h.Send(heartbeatMsg{id: m.beatID, at: time.Now()})
	if m.beats != 0 {
		t.Fatalf("expected ticks ignored after cancel-all, got %d", m.beats)
	}
	h.Send(mvu.AllTimersCancelledMsg{IDs: []mvu.TimerID{m.beatID}})
	if m.infoMsg != "cancelled 1 timer(s)" {
		t.Fatalf("expected cancel-all acknowledgement, got %q", m.infoMsg)
	}
}

func TestInterruptIsConsumedWithQuit(t *testing.T) {
	h := newTestHarness(Options{})
	h.Send(mvu.InterruptMsg{})
	if !h.Quit() {
		t.Fatalf("expected interrupt to be answered with quit")
	}
}

func TestResumeRequestsWindowSize(t *testing.T) {
	h := newTestHarness(Options{})
	h.Send(mvu.ResumeMsg{})
	m := h.Model()
	if m.suspended != 1 || m.infoMsg != "resumed" {
		t.Fatalf("unexpected resume state %d/%q", m.suspended, m.infoMsg)
	}
	emitted := h.Emitted()
	if len(emitted) != 1 || reflect.TypeOf(emitted[0]) != reflect.TypeOf(mvu.RequestWindowSize()) {
		t.Fatalf("expected a window size request, got %#v", emitted)
	}
}

func TestProcessResults(t *testing.T) {
	h := newTestHarness(Options{})
	h.Send(processDoneMsg{result: mvu.ProcessResult{Name: "date", Stdout: "Mon Oct 19\n"}})
	if got := h.Model().infoMsg; got != "date: Mon Oct 19" {
		t.Fatalf("unexpected info %q", got)
	}

	h.Send(processDoneMsg{result: mvu.ProcessResult{Name: "date", ExitCode: -1, Err: errors.New("not found")}})
	if got := h.Model().errMsg; got != "date: not found" {
		t.Fatalf("unexpected error %q", got)
	}
}

func TestRunDateGoesThroughBus(t *testing.T) {
	h := newTestHarness(Options{})
	h.Send(keyCtrl('r'))
	emitted := h.Emitted()
	if len(emitted) != 1 {
		t.Fatalf("expected one process request, got %#v", emitted)
	}
	if _, ok := emitted[0].(processDoneMsg); ok {
		t.Fatalf("process must run in the runtime, not inline")
	}
}

func TestEditorResult(t *testing.T) {
	h := newTestHarness(Options{})
	h.Send(editorDoneMsg{err: errors.New("exit status 1")})
	if got := h.Model().errMsg; got != "editor: exit status 1" {
		t.Fatalf("unexpected error %q", got)
	}
	h.Send(editorDoneMsg{})
	if h.Model().errMsg != "" || h.Model().infoMsg != "editor closed" {
		t.Fatalf("expected editor success to clear the error")
	}

	m := NewModel(Options{Editor: "   "})
	if cmd := m.openEditor(); cmd != nil {
		t.Fatalf("expected blank editor to do nothing")
	}
}

func TestFocusAndBlur(t *testing.T) {
	h := newTestHarness(Options{})
	h.Send(mvu.BlurMsg{})
	if h.Model().focused {
		t.Fatalf("expected blur to clear focus")
	}
	h.Send(mvu.FocusMsg{})
	if !h.Model().focused {
		t.Fatalf("expected focus restored")
	}
}

func TestVerboseRecordsMessageType(t *testing.T) {
	h := newTestHarness(Options{Verbose: true})
	h.Send(mvu.FocusMsg{})
	if got := h.Model().lastMsg; got != "mvu.FocusMsg" {
		t.Fatalf("unexpected last message %q", got)
	}
}

func TestUnknownMessagesAreIgnored(t *testing.T) {
	h := newTestHarness(Options{})
	type other struct{}
	h.Send(other{})
	h.Send(nil)
	if len(h.Emitted()) != 0 {
		t.Fatalf("expected no commands for unknown messages")
	}
}
