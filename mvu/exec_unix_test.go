//go:build !windows

package mvu

import (
	"errors"
	"io"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type processDoneMsg ProcessResult

func TestRunProcessUsesProgramEnvironment(t *testing.T) {
	m := &testModel{
		init: func() Cmd {
			return RunProcess("sh", []string{"-c", "echo $TEALOOP_TEST"}, func(r ProcessResult) Msg {
				return processDoneMsg(r)
			})
		},
		update: func(_ *testModel, msg Msg) Cmd {
			if _, ok := msg.(processDoneMsg); ok {
				return Quit
			}
			return nil
		},
	}
	p, _, _ := newTestProgram(m, WithEnvironment([]string{"TEALOOP_TEST=from-program", "PATH=/usr/bin:/bin"}))
	_, err := runWithTimeout(t, p, 5*time.Second)
	require.NoError(t, err)

	require.Len(t, m.msgs, 1)
	res := m.msgs[0].(processDoneMsg)
	require.NoError(t, res.Err)
	assert.Equal(t, "from-program", strings.TrimSpace(res.Stdout))
	assert.Equal(t, 0, res.ExitCode)
}

func TestRunProcessFailureReachesCallback(t *testing.T) {
	m := &testModel{
		init: func() Cmd {
			return Batch(
				RunProcess("/nonexistent/tealoop-binary", nil, func(r ProcessResult) Msg { return processDoneMsg(r) }),
				RunProcess("sh", []string{"-c", "exit 3"}, func(r ProcessResult) Msg { return processDoneMsg(r) }),
			)
		},
		update: func(m *testModel, msg Msg) Cmd {
			if len(m.msgs) == 2 {
				return Quit
			}
			return nil
		},
	}
	p, _, _ := newTestProgram(m)
	_, err := runWithTimeout(t, p, 5*time.Second)
	require.NoError(t, err, "process failures must not end the program")

	codes := map[string]int{}
	for _, msg := range m.msgs {
		res := msg.(processDoneMsg)
		require.Error(t, res.Err)
		codes[res.Name] = res.ExitCode
	}
	assert.Equal(t, -1, codes["/nonexistent/tealoop-binary"])
	assert.Equal(t, 3, codes["sh"])
}

// fakeExec records the terminal state it ran under.
type fakeExec struct {
	tty      *fakeTTY
	rawInRun bool
	stdout   io.Writer
	err      error
}

func (f *fakeExec) Run() error {
	f.rawInRun = f.tty.Raw()
	_, _ = io.WriteString(f.stdout, "child output")
	return f.err
}

func (f *fakeExec) SetStdin(io.Reader) {}
func (f *fakeExec) SetStdout(w io.Writer) { f.stdout = w }
func (f *fakeExec) SetStderr(io.Writer) {}

type execDoneMsg struct {
	err    error
	rawNow bool
}

func TestExecReleasesAndReacquiresTerminal(t *testing.T) {
	tty := &fakeTTY{}
	fe := &fakeExec{tty: tty, err: errors.New("exit status 1")}
	m := &testModel{
		init: func() Cmd {
			return Exec(fe, func(err error) Msg { return execDoneMsg{err: err, rawNow: tty.Raw()} })
		},
		update: func(_ *testModel, msg Msg) Cmd {
			if _, ok := msg.(execDoneMsg); ok {
				return Quit
			}
			return nil
		},
	}
	out := &syncBuffer{}
	p := NewProgram(m, WithInput(nil), WithOutput(out), withTTY(tty), WithoutSignalHandler())
	_, err := runWithTimeout(t, p, 2*time.Second)
	require.NoError(t, err)

	assert.False(t, fe.rawInRun, "child must run in cooked mode")
	require.Len(t, m.msgs, 1)
	done := m.msgs[0].(execDoneMsg)
	assert.EqualError(t, done.err, "exit status 1")
	assert.True(t, done.rawNow, "terminal must be raw again after the child exits")
	assert.Contains(t, out.String(), "child output")
	makeRaw, _ := tty.Calls()
	assert.Equal(t, 2, makeRaw)
}

func TestExecProcessAppliesEnvironment(t *testing.T) {
	var buf strings.Builder
	c := exec.Command("sh", "-c", "printf %s \"$TEALOOP_EXEC\"")
	c.Stdout = &buf
	m := &testModel{
		init: func() Cmd {
			return ExecProcess(c, func(err error) Msg { return execDoneMsg{err: err} })
		},
		update: func(_ *testModel, msg Msg) Cmd {
			if _, ok := msg.(execDoneMsg); ok {
				return Quit
			}
			return nil
		},
	}
	p, _, _ := newTestProgram(m, WithEnvironment([]string{"TEALOOP_EXEC=set", "PATH=/usr/bin:/bin"}))
	_, err := runWithTimeout(t, p, 5*time.Second)
	require.NoError(t, err)
	require.Len(t, m.msgs, 1)
	require.NoError(t, m.msgs[0].(execDoneMsg).err)
	assert.Equal(t, "set", buf.String())
}
