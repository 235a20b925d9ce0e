package mvu

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/atomicstack/tealoop/internal/logging/events"
)

// ExecCallback turns the result of an interactive process into a message.
type ExecCallback func(error) Msg

// ExecCommand is something that can run attached to the terminal.
type ExecCommand interface {
	Run() error
	SetStdin(io.Reader)
	SetStdout(io.Writer)
	SetStderr(io.Writer)
}

type execMsg struct {
	cmd ExecCommand
	fn  ExecCallback
}

// Exec runs c in the foreground. The Program releases the terminal, waits
// for c to finish, takes the terminal back and delivers fn's message. No
// other message is processed meanwhile.
func Exec(c ExecCommand, fn ExecCallback) Cmd {
	return func() Msg {
		return execMsg{cmd: c, fn: fn}
	}
}

// ExecProcess is Exec for an *exec.Cmd, such as an editor or a pager.
func ExecProcess(c *exec.Cmd, fn ExecCallback) Cmd {
	return Exec(&osExecCommand{Cmd: c}, fn)
}

type osExecCommand struct {
	*exec.Cmd
}

func (c *osExecCommand) SetStdin(r io.Reader) {
	if c.Stdin == nil {
		c.Stdin = r
	}
}

func (c *osExecCommand) SetStdout(w io.Writer) {
	if c.Stdout == nil {
		c.Stdout = w
	}
}

func (c *osExecCommand) SetStderr(w io.Writer) {
	if c.Stderr == nil {
		c.Stderr = w
	}
}

func (p *Program) execInteractive(m execMsg) {
	if oc, ok := m.cmd.(*osExecCommand); ok && oc.Env == nil && len(p.opts.env) > 0 {
		oc.Env = p.opts.env
	}

	err := p.release()
	if err == nil {
		if p.opts.input != nil {
			m.cmd.SetStdin(p.opts.input)
		}
		m.cmd.SetStdout(p.output.Writer())
		m.cmd.SetStderr(os.Stderr)
		err = m.cmd.Run()
	}
	if rerr := p.reacquire(); rerr != nil {
		err = errors.Join(err, rerr)
	}
	if m.fn != nil {
		go p.Send(m.fn(err))
	}
}

// ProcessResult describes a finished background process.
type ProcessResult struct {
	Name     string
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
	// Err is non-nil when the process could not start or exited non-zero.
	Err error
}

type processMsg struct {
	name string
	args []string
	fn   func(ProcessResult) Msg
}

// RunProcess runs a command in the background with its output captured.
// The terminal stays with the Program. Failures are reported to fn, never
// to the Program. The process is not tied to the Program's lifetime; if it
// outlives the Program its result is discarded.
func RunProcess(name string, args []string, fn func(ProcessResult) Msg) Cmd {
	return func() Msg {
		return processMsg{name: name, args: args, fn: fn}
	}
}

func (p *Program) runProcess(m processMsg) {
	defer p.recoverCommand()

	c := exec.Command(m.name, m.args...)
	if len(p.opts.env) > 0 {
		c.Env = p.opts.env
	}
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	res := ProcessResult{
		Name:     m.name,
		Args:     m.args,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: -1,
		Duration: time.Since(start),
		Err:      err,
	}
	if c.ProcessState != nil {
		res.ExitCode = c.ProcessState.ExitCode()
	}
	events.Command.Process(p.runID, m.name, m.args, err)
	if m.fn != nil {
		p.Send(m.fn(res))
	}
}
