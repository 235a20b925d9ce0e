package ui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/tealoop/mvu"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func runProgram(t *testing.T, model *Model, in io.Reader) (*Model, string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	out := &lockedBuffer{}
	p := mvu.NewProgram(model,
		mvu.WithContext(ctx),
		mvu.WithInput(in),
		mvu.WithOutput(out),
		mvu.WithoutSignalHandler(),
	)
	final, err := p.Run()
	if err != nil {
		t.Fatalf("program failed: %v", err)
	}
	m, ok := final.(*Model)
	if !ok {
		t.Fatalf("unexpected final model %T", final)
	}
	return m, out.String()
}

func TestProgramCountdownQuits(t *testing.T) {
	model := NewModel(Options{Countdown: 3, Tick: 5 * time.Millisecond, Heartbeat: time.Millisecond})
	final, out := runProgram(t, model, nil)
	if final.Remaining() != 0 {
		t.Fatalf("expected countdown to finish, got %d", final.Remaining())
	}
	if !strings.Contains(out, "time's up") {
		t.Fatalf("expected final frame in output, got %q", out)
	}
}

func TestProgramKeyboardInput(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	go func() {
		_, _ = io.WriteString(w, "che")
		time.Sleep(20 * time.Millisecond)
		_, _ = io.WriteString(w, "\x03")
	}()

	final, _ := runProgram(t, NewModel(Options{}), r)
	if final.Filter() != "che" {
		t.Fatalf("expected filter from typed input, got %q", final.Filter())
	}
	if got := final.Visible(); len(got) != 1 || got[0] != "cherry" {
		t.Fatalf("expected cherry, got %v", got)
	}
}
