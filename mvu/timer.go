package mvu

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"
	"weak"

	"github.com/atomicstack/tealoop/internal/logging/events"
)

// TimerID identifies a repeating timer.
type TimerID uint64

// TimerCancelledMsg acknowledges CancelTimer. No new message for ID is
// emitted after it has been delivered, although one tick already queued on
// the channel may still arrive.
type TimerCancelledMsg struct {
	ID TimerID
}

type timerHandle struct {
	id       TimerID
	interval time.Duration
	fn       func(time.Time) Msg

	cancelled atomic.Bool
	stop      chan struct{}
	once      sync.Once
}

func (h *timerHandle) cancel() {
	h.cancelled.Store(true)
	h.once.Do(func() { close(h.stop) })
}

// timers is the process-wide registry, so a TimerID can be cancelled from
// a plain Cmd without a Program reference. A handle whose Cmd has not run
// yet is held weakly in pending and disappears when the Cmd is collected.
// It moves to handles when the Cmd runs and leaves when its task exits.
var timers = struct {
	mu      sync.Mutex
	next    uint64
	pending map[TimerID]weak.Pointer[timerHandle]
	handles map[TimerID]*timerHandle
}{
	pending: make(map[TimerID]weak.Pointer[timerHandle]),
	handles: make(map[TimerID]*timerHandle),
}

func newTimer(d time.Duration, fn func(time.Time) Msg) *timerHandle {
	timers.mu.Lock()
	defer timers.mu.Unlock()
	timers.next++
	h := &timerHandle{
		id:       TimerID(timers.next),
		interval: d,
		fn:       fn,
		stop:     make(chan struct{}),
	}
	timers.pending[h.id] = weak.Make(h)
	runtime.AddCleanup(h, forgetPending, h.id)
	return h
}

func forgetPending(id TimerID) {
	timers.mu.Lock()
	delete(timers.pending, id)
	timers.mu.Unlock()
}

// registerTimer moves h from pending to the running set. It reports false
// when h was cancelled before its Cmd ran.
func registerTimer(h *timerHandle) bool {
	timers.mu.Lock()
	defer timers.mu.Unlock()
	delete(timers.pending, h.id)
	if h.cancelled.Load() {
		return false
	}
	timers.handles[h.id] = h
	return true
}

func unregisterTimer(id TimerID) {
	timers.mu.Lock()
	delete(timers.handles, id)
	timers.mu.Unlock()
}

// cancelTimer stops a timer and reports whether it was running. A timer
// whose Cmd has not run yet is flagged so it never starts.
func cancelTimer(id TimerID) bool {
	timers.mu.Lock()
	h, running := timers.handles[id]
	delete(timers.handles, id)
	if !running {
		if wp, ok := timers.pending[id]; ok {
			h = wp.Value()
			delete(timers.pending, id)
		}
	}
	timers.mu.Unlock()
	if h == nil {
		return false
	}
	h.cancel()
	events.Timer.Cancel(uint64(id))
	return running
}

type startTimerMsg struct {
	handle *timerHandle
}

type cancelAllTimersMsg struct{}

// Tick fires once after d. Return it again from Update to repeat.
func Tick(d time.Duration, fn func(time.Time) Msg) Cmd {
	return func() Msg {
		t := time.NewTimer(d)
		return fn(<-t.C)
	}
}

// Every starts a repeating timer owned by the Program. Running the returned
// Cmd twice starts two timers.
func Every(d time.Duration, fn func(time.Time) Msg) Cmd {
	_, cmd := EveryWithID(d, fn)
	return cmd
}

// EveryWithID is Every, also returning the id for CancelTimer. The timer
// runs until it is cancelled or the Program exits.
func EveryWithID(d time.Duration, fn func(time.Time) Msg) (TimerID, Cmd) {
	h := newTimer(d, fn)
	return h.id, func() Msg {
		return startTimerMsg{handle: h}
	}
}

// CancelTimer stops the timer with the given id and answers with a
// TimerCancelledMsg.
func CancelTimer(id TimerID) Cmd {
	return func() Msg {
		cancelTimer(id)
		return TimerCancelledMsg{ID: id}
	}
}

// AllTimersCancelledMsg acknowledges CancelAllTimers. IDs lists the timers
// that were running, in ascending order, and may be empty.
type AllTimersCancelledMsg struct {
	IDs []TimerID
}

// CancelAllTimers stops every repeating timer the Program has started and
// answers with an AllTimersCancelledMsg.
func CancelAllTimers() Msg {
	return cancelAllTimersMsg{}
}

// CancelTimer stops the timer with the given id from outside the loop. It
// reports whether the timer was running.
func (p *Program) CancelTimer(id TimerID) bool {
	return cancelTimer(id)
}

func (p *Program) startTimer(h *timerHandle) {
	if h.interval <= 0 || !registerTimer(h) {
		events.Timer.Stop(p.runID, uint64(h.id), "not started")
		return
	}
	p.timersMu.Lock()
	p.timers[h.id] = h
	p.timersMu.Unlock()
	events.Timer.Start(p.runID, uint64(h.id), h.interval.String())
	go p.runTimer(h)
}

func (p *Program) runTimer(h *timerHandle) {
	reason := "cancelled"
	defer func() {
		p.timersMu.Lock()
		delete(p.timers, h.id)
		p.timersMu.Unlock()
		unregisterTimer(h.id)
		events.Timer.Stop(p.runID, uint64(h.id), reason)
	}()
	defer p.recoverCommand()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			reason = "program exit"
			return
		case <-h.stop:
			return
		case t := <-ticker.C:
			if h.cancelled.Load() {
				return
			}
			msg := h.fn(t)
			if h.cancelled.Load() {
				return
			}
			if msg == nil {
				continue
			}
			select {
			case <-p.ctx.Done():
				reason = "program exit"
				return
			case <-h.stop:
				return
			case p.msgs <- msg:
			}
		}
	}
}

func (p *Program) cancelAllTimers() {
	p.timersMu.Lock()
	handles := make([]*timerHandle, 0, len(p.timers))
	for _, h := range p.timers {
		handles = append(handles, h)
	}
	p.timersMu.Unlock()
	ids := make([]TimerID, 0, len(handles))
	for _, h := range handles {
		cancelTimer(h.id)
		h.cancel()
		ids = append(ids, h.id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	events.Timer.CancelAll(p.runID, len(ids))
	go p.Send(AllTimersCancelledMsg{IDs: ids})
}
