package mvu

import (
	"strings"
	"sync"
	"time"

	"github.com/atomicstack/tealoop/internal/terminal"
	"github.com/charmbracelet/x/ansi"
)

// renderer draws views. write only stores the view; the renderer decides
// when to put it on screen.
type renderer interface {
	start()
	// stop draws the pending frame and stops.
	stop()
	// kill stops without drawing.
	kill()
	write(view string)
	// repaint forces the next frame to be drawn even if it is unchanged.
	repaint()
	clearScreen()
	setAltScreen(on bool)
	resize(width, height int)
	queueLines(body string)
}

type nilRenderer struct{}

func (nilRenderer) start() {}
func (nilRenderer) stop() {}
func (nilRenderer) kill() {}
func (nilRenderer) write(string) {}
func (nilRenderer) repaint() {}
func (nilRenderer) clearScreen() {}
func (nilRenderer) setAltScreen(bool) {}
func (nilRenderer) resize(int, int) {}
func (nilRenderer) queueLines(string) {}

// standardRenderer redraws the whole frame at most once per interval.
type standardRenderer struct {
	mu       sync.Mutex
	out      *terminal.Output
	interval time.Duration
	onError  func(error)

	buf           string
	lastRender    string
	linesRendered int
	inlineLines   int
	queued        []string
	altScreen     bool
	width         int
	height        int

	running bool
	ticker  *time.Ticker
	done    chan struct{}
	wg      sync.WaitGroup
}

func newStandardRenderer(out *terminal.Output, interval time.Duration, onError func(error)) *standardRenderer {
	return &standardRenderer{
		out:      out,
		interval: interval,
		onError:  onError,
	}
}

func (r *standardRenderer) start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true
	r.done = make(chan struct{})
	r.ticker = time.NewTicker(r.interval)
	r.wg.Add(1)
	go r.listen(r.ticker, r.done)
}

func (r *standardRenderer) listen(t *time.Ticker, done chan struct{}) {
	defer r.wg.Done()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			r.flush()
		}
	}
}

// halt stops the frame goroutine and reports whether it was running.
func (r *standardRenderer) halt() bool {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return false
	}
	r.running = false
	r.ticker.Stop()
	close(r.done)
	r.mu.Unlock()
	r.wg.Wait()
	return true
}

func (r *standardRenderer) stop() {
	if !r.halt() {
		return
	}
	r.flush()
	r.finish()
}

func (r *standardRenderer) kill() {
	if !r.halt() {
		return
	}
	r.finish()
}

// finish leaves the cursor below an inline frame so the shell prompt does
// not overwrite it.
func (r *standardRenderer) finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.altScreen && r.linesRendered > 0 {
		if err := r.out.WriteString("\r\n"); err != nil {
			r.onError(err)
		}
	}
	r.lastRender = ""
	r.linesRendered = 0
}

func (r *standardRenderer) write(view string) {
	r.mu.Lock()
	r.buf = view
	r.mu.Unlock()
}

func (r *standardRenderer) repaint() {
	r.mu.Lock()
	r.lastRender = ""
	r.mu.Unlock()
}

func (r *standardRenderer) clearScreen() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.out.WriteString(ansi.EraseEntireScreen + ansi.CursorHomePosition); err != nil {
		r.onError(err)
		return
	}
	r.linesRendered = 0
	r.lastRender = ""
}

// setAltScreen is called after the controller has switched screens.
func (r *standardRenderer) setAltScreen(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.altScreen == on {
		return
	}
	r.altScreen = on
	if on {
		r.inlineLines = r.linesRendered
		r.linesRendered = 0
		if err := r.out.WriteString(ansi.EraseEntireScreen + ansi.CursorHomePosition); err != nil {
			r.onError(err)
		}
	} else {
		r.linesRendered = r.inlineLines
	}
	r.lastRender = ""
}

func (r *standardRenderer) resize(width, height int) {
	r.mu.Lock()
	r.width = width
	r.height = height
	r.lastRender = ""
	r.mu.Unlock()
}

func (r *standardRenderer) queueLines(body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.altScreen {
		return
	}
	r.queued = append(r.queued, strings.Split(body, "\n")...)
}

func (r *standardRenderer) flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.buf == r.lastRender && len(r.queued) == 0 {
		return
	}

	var b strings.Builder
	if r.altScreen {
		b.WriteString(ansi.CursorHomePosition)
	} else {
		if r.linesRendered > 1 {
			b.WriteString(ansi.CursorUp(r.linesRendered - 1))
		}
		b.WriteString("\r")
		for _, line := range r.queued {
			b.WriteString(r.fit(line))
			b.WriteString(ansi.EraseLineRight)
			b.WriteString("\r\n")
		}
	}

	lines := strings.Split(r.buf, "\n")
	if r.height > 0 && len(lines) > r.height {
		lines = lines[len(lines)-r.height:]
	}
	for i, line := range lines {
		b.WriteString(r.fit(line))
		b.WriteString(ansi.EraseLineRight)
		if i < len(lines)-1 {
			b.WriteString("\r\n")
		}
	}
	b.WriteString(ansi.EraseScreenBelow)

	if err := r.out.WriteString(b.String()); err != nil {
		r.onError(err)
		return
	}
	r.lastRender = r.buf
	r.linesRendered = len(lines)
	r.queued = nil
}

func (r *standardRenderer) fit(line string) string {
	if r.width > 0 && ansi.StringWidth(line) > r.width {
		return ansi.Truncate(line, r.width, "")
	}
	return line
}
