package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// TTY switches the input side of a terminal between cooked and raw mode.
type TTY interface {
	MakeRaw() error
	Restore() error
}

// FileTTY puts a terminal file descriptor into raw mode with x/term and
// remembers the previous settings so they can be put back.
type FileTTY struct {
	fd   int
	prev *term.State
}

// TTYFor returns a TTY for r when r is a terminal file, and nil otherwise.
func TTYFor(r io.Reader) TTY {
	f, ok := r.(*os.File)
	if !ok || f == nil {
		return nil
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	return &FileTTY{fd: fd}
}

func (t *FileTTY) MakeRaw() error {
	prev, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("make raw: %w", err)
	}
	t.prev = prev
	return nil
}

func (t *FileTTY) Restore() error {
	if t.prev == nil {
		return nil
	}
	if err := term.Restore(t.fd, t.prev); err != nil {
		return fmt.Errorf("restore tty: %w", err)
	}
	t.prev = nil
	return nil
}
