package ui

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/atomicstack/tealoop/internal/logging/events"
	"github.com/atomicstack/tealoop/internal/ui/command"
	"github.com/atomicstack/tealoop/mvu"
)

type countdownMsg struct {
	at time.Time
}

type heartbeatMsg struct {
	id mvu.TimerID
	at time.Time
}

type processDoneMsg struct {
	result mvu.ProcessResult
}

type editorDoneMsg struct {
	err error
}

// armCountdown schedules the next countdown tick. Only one tick is ever in
// flight, so pausing and resuming quickly cannot double the rate.
func (m *Model) armCountdown() mvu.Cmd {
	if m.countdown <= 0 || m.paused || m.tickArmed {
		return nil
	}
	m.tickArmed = true
	return mvu.Tick(m.tick, func(t time.Time) mvu.Msg {
		return countdownMsg{at: t}
	})
}

func (m *Model) handleCountdownMsg(mvu.Msg) mvu.Cmd {
	m.tickArmed = false
	if m.paused || m.countdown <= 0 {
		return nil
	}
	m.countdown--
	events.UI.Countdown(m.countdown)
	if m.countdown == 0 {
		m.infoMsg = "time's up"
		return mvu.Quit
	}
	return m.armCountdown()
}

func (m *Model) togglePause() mvu.Cmd {
	if m.countdown <= 0 {
		return nil
	}
	m.paused = !m.paused
	if m.paused {
		m.infoMsg = "countdown paused"
		return nil
	}
	m.infoMsg = "countdown resumed"
	return m.armCountdown()
}

func (m *Model) startHeartbeat() mvu.Cmd {
	if m.beatOn {
		return nil
	}
	var id mvu.TimerID
	id, cmd := mvu.EveryWithID(m.heartbeat, func(t time.Time) mvu.Msg {
		return heartbeatMsg{id: id, at: t}
	})
	m.beatID = id
	m.beatOn = true
	events.UI.Heartbeat(uint64(id), true)
	return cmd
}

func (m *Model) stopHeartbeat() mvu.Cmd {
	if !m.beatOn {
		return nil
	}
	m.beatOn = false
	events.UI.Heartbeat(uint64(m.beatID), false)
	return mvu.CancelTimer(m.beatID)
}

func (m *Model) toggleHeartbeat() mvu.Cmd {
	if m.beatOn {
		return m.stopHeartbeat()
	}
	return m.startHeartbeat()
}

// cancelAllTimers stops the heartbeat through the runtime's program-wide
// cancel. The countdown is a one-shot Tick and keeps running.
func (m *Model) cancelAllTimers() mvu.Cmd {
	if m.beatOn {
		m.beatOn = false
		events.UI.Heartbeat(uint64(m.beatID), false)
	}
	m.infoMsg = "all timers cancelled"
	return mvu.CancelAllTimers
}

func (m *Model) handleHeartbeatMsg(msg mvu.Msg) mvu.Cmd {
	beat := msg.(heartbeatMsg)
	if !m.beatOn || beat.id != m.beatID {
		// a tick that was already queued when the timer was cancelled
		return nil
	}
	m.beats++
	m.lastBeat = beat.at
	return nil
}

func (m *Model) handleTimerCancelledMsg(msg mvu.Msg) mvu.Cmd {
	if msg.(mvu.TimerCancelledMsg).ID == m.beatID {
		m.infoMsg = "heartbeat stopped"
	}
	return nil
}

func (m *Model) handleAllTimersCancelledMsg(msg mvu.Msg) mvu.Cmd {
	m.infoMsg = fmt.Sprintf("cancelled %d timer(s)", len(msg.(mvu.AllTimersCancelledMsg).IDs))
	return nil
}

func (m *Model) runDate() mvu.Cmd {
	return m.bus.Execute(command.Request{
		Label: "date",
		Action: func() mvu.Cmd {
			return mvu.RunProcess("date", nil, func(r mvu.ProcessResult) mvu.Msg {
				return processDoneMsg{result: r}
			})
		},
	})
}

func (m *Model) handleProcessDoneMsg(msg mvu.Msg) mvu.Cmd {
	res := msg.(processDoneMsg).result
	if res.Err != nil {
		m.setError(fmt.Errorf("%s: %w", res.Name, res.Err))
		return nil
	}
	m.errMsg = ""
	m.infoMsg = fmt.Sprintf("%s: %s", res.Name, strings.TrimSpace(res.Stdout))
	events.Action.Success(m.infoMsg)
	return nil
}

func (m *Model) openEditor() mvu.Cmd {
	fields := strings.Fields(m.editor)
	if len(fields) == 0 {
		return nil
	}
	return m.bus.Execute(command.Request{
		Label: "editor",
		Action: func() mvu.Cmd {
			c := exec.Command(fields[0], fields[1:]...)
			return mvu.ExecProcess(c, func(err error) mvu.Msg {
				return editorDoneMsg{err: err}
			})
		},
	})
}

func (m *Model) handleEditorDoneMsg(msg mvu.Msg) mvu.Cmd {
	done := msg.(editorDoneMsg)
	if done.err != nil {
		m.setError(fmt.Errorf("editor: %w", done.err))
		return nil
	}
	m.errMsg = ""
	m.infoMsg = "editor closed"
	return nil
}

// printSelection writes the marked words, or the word under the cursor,
// above the frame.
func (m *Model) printSelection() mvu.Cmd {
	items := m.list.MarkedItems()
	if len(items) == 0 {
		if item, ok := m.list.Current(); ok {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	m.infoMsg = fmt.Sprintf("printed %d word(s)", len(labels))
	return mvu.Println(strings.Join(labels, " "))
}
