package command

import (
	"testing"

	"github.com/atomicstack/tealoop/mvu"
)

type doneMsg struct{ label string }

func TestExecuteRunsAction(t *testing.T) {
	bus := New()
	cmd := bus.Execute(Request{Label: "echo", Action: func() mvu.Cmd {
		return func() mvu.Msg { return doneMsg{label: "echo"} }
	}})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(doneMsg)
	if !ok || msg.label != "echo" {
		t.Fatalf("unexpected result %#v", msg)
	}
}

func TestExecuteWithoutActionOrCommand(t *testing.T) {
	bus := New()
	if msg := bus.Execute(Request{Label: "empty"})(); msg != nil {
		t.Fatalf("expected nil message for missing action, got %#v", msg)
	}
	noop := bus.Execute(Request{Label: "noop", Action: func() mvu.Cmd { return nil }})
	if msg := noop(); msg != nil {
		t.Fatalf("expected nil message for no-op action, got %#v", msg)
	}
}

func TestExecuteDefersActionUntilRun(t *testing.T) {
	bus := New()
	called := false
	cmd := bus.Execute(Request{Action: func() mvu.Cmd {
		called = true
		return nil
	}})
	if called {
		t.Fatal("action ran before the command was executed")
	}
	cmd()
	if !called {
		t.Fatal("expected action to run with the command")
	}
}
