// Package input reads a terminal input stream and decodes it into key,
// mouse, focus and paste events.
package input

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/atomicstack/tealoop/internal/logging/events"
	"github.com/muesli/cancelreader"
)

// Reader reads from a cancelable input and publishes decoded events.
type Reader struct {
	cr cancelreader.CancelReader

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	done   chan struct{}
	once   sync.Once
}

// NewReader starts reading r. Reading stops when ctx is done, when Cancel is
// called or when r reports EOF; the events channel is closed afterwards.
func NewReader(ctx context.Context, r io.Reader) (*Reader, error) {
	cr, err := cancelreader.NewReader(r)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	rd := &Reader{
		cr:     cr,
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}
	go rd.watch()
	go rd.read()
	events.Input.Start()
	return rd, nil
}

// Events returns the channel of decoded events.
func (r *Reader) Events() <-chan Event {
	return r.events
}

// Cancel interrupts a pending read. It reports whether the underlying
// reader could be cancelled.
func (r *Reader) Cancel() bool {
	r.cancel()
	return r.cr.Cancel()
}

// Wait blocks until the read loop has exited or timeout elapses, and
// reports whether the loop exited.
func (r *Reader) Wait(timeout time.Duration) bool {
	select {
	case <-r.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Close cancels the reader and releases the cancelreader's resources.
func (r *Reader) Close() error {
	var err error
	r.once.Do(func() {
		r.Cancel()
		err = r.cr.Close()
	})
	return err
}

func (r *Reader) watch() {
	select {
	case <-r.ctx.Done():
		r.cr.Cancel()
	case <-r.done:
	}
}

func (r *Reader) read() {
	defer close(r.done)
	defer close(r.events)

	var dec decoder
	buf := make([]byte, 256)
	for {
		n, err := r.cr.Read(buf)
		if n > 0 {
			for _, evt := range dec.decode(buf[:n]) {
				if !r.emit(evt) {
					events.Input.Stop("context")
					return
				}
			}
		}
		if err == nil {
			continue
		}
		switch {
		case errors.Is(err, io.EOF):
			events.Input.Stop("eof")
		case errors.Is(err, cancelreader.ErrCanceled):
			events.Input.Stop("canceled")
		default:
			events.Input.Error(err)
			r.emit(Event{Kind: KindError, Err: err})
		}
		return
	}
}

func (r *Reader) emit(evt Event) bool {
	select {
	case <-r.ctx.Done():
		return false
	case r.events <- evt:
		return true
	}
}
