package terminal

import (
	"errors"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

var errNotTerminal = errors.New("output is not a terminal")

// Output serialises every write to the terminal. Frames, control sequences
// and printed lines all go through the same lock so they never interleave.
type Output struct {
	mu sync.Mutex
	w  io.Writer
}

// NewOutput wraps w. A nil writer discards everything.
func NewOutput(w io.Writer) *Output {
	if w == nil {
		w = io.Discard
	}
	return &Output{w: w}
}

func (o *Output) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.w.Write(p)
}

// WriteString writes s in a single locked call.
func (o *Output) WriteString(s string) error {
	if s == "" {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := io.WriteString(o.w, s)
	return err
}

// Writer returns the wrapped writer, for handing the terminal to a child
// process.
func (o *Output) Writer() io.Writer {
	return o.w
}

// IsTerminal reports whether the wrapped writer is a terminal file.
func (o *Output) IsTerminal() bool {
	f, ok := o.w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Size returns the terminal dimensions in cells.
func (o *Output) Size() (width, height int, err error) {
	f, ok := o.w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, 0, errNotTerminal
	}
	return term.GetSize(int(f.Fd()))
}
