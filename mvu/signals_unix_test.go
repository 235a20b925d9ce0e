//go:build !windows

package mvu

import (
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminateSignalKills(t *testing.T) {
	for _, sig := range []syscall.Signal{syscall.SIGTERM, syscall.SIGHUP} {
		t.Run(sig.String(), func(t *testing.T) {
			sigs := newFakeSignals()
			m := &testModel{init: func() Cmd {
				return func() Msg {
					sigs.deliver(sig)
					return nil
				}
			}}
			p, tty, _ := newTestProgram(m, withSignals(sigs))
			_, err := runWithTimeout(t, p, 2*time.Second)
			require.ErrorIs(t, err, ErrProgramKilled)
			assert.Empty(t, m.msgs)
			assert.False(t, tty.Raw())
		})
	}
}

func TestResizeSignalSendsWindowSize(t *testing.T) {
	sigs := newFakeSignals()
	width := 80
	m := &testModel{update: func(m *testModel, msg Msg) Cmd {
		ws, ok := msg.(WindowSizeMsg)
		if !ok {
			return nil
		}
		if ws.Width == 80 {
			return func() Msg {
				width = 120
				sigs.deliver(syscall.SIGWINCH)
				return nil
			}
		}
		return Quit
	}}
	size := func() (int, int, error) { return width, 30, nil }
	p, _, _ := newTestProgram(m, withSignals(sigs), WithoutSignalHandler(), withWindowSize(size))

	_, err := runWithTimeout(t, p, 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, []Msg{WindowSizeMsg{Width: 80, Height: 30}, WindowSizeMsg{Width: 120, Height: 30}}, m.msgs)
}
