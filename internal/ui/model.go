package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/tealoop/internal/logging/events"
	"github.com/atomicstack/tealoop/internal/theme"
	"github.com/atomicstack/tealoop/internal/ui/command"
	uistate "github.com/atomicstack/tealoop/internal/ui/state"
	"github.com/atomicstack/tealoop/mvu"
)

var styles = theme.Default()

// DefaultWords seeds the word list when no words are configured.
var DefaultWords = []string{
	"apple", "apricot", "banana", "blueberry", "cherry", "coconut",
	"damson", "elderberry", "fig", "gooseberry", "grape", "guava",
	"kiwi", "lemon", "lime", "lychee", "mango", "melon", "nectarine",
	"orange", "papaya", "peach", "pear", "plum", "quince", "raspberry",
	"strawberry", "tangerine",
}

const (
	defaultTick      = time.Second
	defaultHeartbeat = 250 * time.Millisecond
	defaultEditor    = "vi"
)

// Options configures the demo model.
type Options struct {
	// Countdown is the number of ticks before the demo quits on its own.
	// Zero disables the countdown.
	Countdown int
	Tick      time.Duration
	Heartbeat time.Duration
	Words     []string
	Editor    string
	Verbose   bool
}

type msgHandler func(mvu.Msg) mvu.Cmd

// Model is the demo application: a fuzzy-filtered word list with a
// countdown, a cancellable heartbeat timer and background processes.
type Model struct {
	list *uistate.List
	bus  *command.Bus

	countdown int
	tick      time.Duration
	paused    bool
	tickArmed bool
	heartbeat time.Duration
	beatID    mvu.TimerID
	beatOn    bool
	beats     int
	lastBeat  time.Time
	editor    string
	verbose   bool
	width     int
	height    int
	focused   bool
	lastMouse string
	lastMsg   string
	infoMsg   string
	errMsg    string
	suspended int

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the demo state.
func NewModel(opts Options) *Model {
	words := opts.Words
	if len(words) == 0 {
		words = DefaultWords
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = defaultTick
	}
	heartbeat := opts.Heartbeat
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	editor := opts.Editor
	if editor == "" {
		editor = defaultEditor
	}
	m := &Model{
		list:      uistate.NewList(uistate.ItemsFromWords(words)),
		bus:       command.New(),
		countdown: opts.Countdown,
		tick:      tick,
		heartbeat: heartbeat,
		editor:    editor,
		verbose:   opts.Verbose,
		focused:   true,
	}
	m.registerHandlers()
	return m
}

// Init starts the countdown and the heartbeat.
func (m *Model) Init() mvu.Cmd {
	return mvu.Batch(m.armCountdown(), m.startHeartbeat())
}

// Update responds to runtime and demo messages.
func (m *Model) Update(msg mvu.Msg) (mvu.Model, mvu.Cmd) {
	if m.verbose && msg != nil {
		m.lastMsg = reflect.TypeOf(msg).String()
	}
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(mvu.KeyMsg{}):                m.handleKeyMsg,
		reflect.TypeOf(mvu.MouseMsg{}):              m.handleMouseMsg,
		reflect.TypeOf(mvu.PasteMsg("")):            m.handlePasteMsg,
		reflect.TypeOf(mvu.WindowSizeMsg{}):         m.handleWindowSizeMsg,
		reflect.TypeOf(mvu.FocusMsg{}):              m.handleFocusMsg,
		reflect.TypeOf(mvu.BlurMsg{}):               m.handleBlurMsg,
		reflect.TypeOf(mvu.InterruptMsg{}):          m.handleInterruptMsg,
		reflect.TypeOf(mvu.ResumeMsg{}):             m.handleResumeMsg,
		reflect.TypeOf(mvu.TimerCancelledMsg{}):     m.handleTimerCancelledMsg,
		reflect.TypeOf(mvu.AllTimersCancelledMsg{}): m.handleAllTimersCancelledMsg,
		reflect.TypeOf(countdownMsg{}):              m.handleCountdownMsg,
		reflect.TypeOf(heartbeatMsg{}):              m.handleHeartbeatMsg,
		reflect.TypeOf(processDoneMsg{}):            m.handleProcessDoneMsg,
		reflect.TypeOf(editorDoneMsg{}):             m.handleEditorDoneMsg,
	}
}

func (m *Model) handlerFor(msg mvu.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg mvu.Msg) mvu.Cmd {
	size := msg.(mvu.WindowSizeMsg)
	m.width = size.Width
	m.height = size.Height
	m.list.EnsureCursorVisible(m.maxVisibleItems())
	return nil
}

func (m *Model) handleFocusMsg(mvu.Msg) mvu.Cmd {
	m.focused = true
	return nil
}

func (m *Model) handleBlurMsg(mvu.Msg) mvu.Cmd {
	m.focused = false
	return nil
}

// handleInterruptMsg consumes ctrl+c delivered as a signal by quitting
// cleanly instead of letting the runtime escalate.
func (m *Model) handleInterruptMsg(mvu.Msg) mvu.Cmd {
	m.infoMsg = "interrupted"
	return mvu.Quit
}

func (m *Model) handleResumeMsg(mvu.Msg) mvu.Cmd {
	m.suspended++
	m.infoMsg = "resumed"
	return mvu.RequestWindowSize
}

func (m *Model) setError(err error) {
	if err == nil {
		m.errMsg = ""
		return
	}
	m.errMsg = err.Error()
	events.Action.Error(err)
}

// maxVisibleItems is the number of list rows that fit beneath the header,
// filter, status and footer lines.
func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return 10
	}
	rows := m.height - reservedRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

// Remaining returns the countdown value.
func (m *Model) Remaining() int {
	return m.countdown
}

// HeartbeatRunning reports whether the heartbeat timer is active.
func (m *Model) HeartbeatRunning() bool {
	return m.beatOn
}

// Filter returns the current filter query.
func (m *Model) Filter() string {
	return m.list.Filter
}

// Visible returns the labels currently shown in the list.
func (m *Model) Visible() []string {
	labels := make([]string, len(m.list.Items))
	for i, item := range m.list.Items {
		labels[i] = item.Label
	}
	return labels
}
