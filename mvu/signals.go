package mvu

import (
	"os"

	"github.com/atomicstack/tealoop/internal/logging/events"
)

// handleSignals turns SIGINT into an InterruptMsg and the termination
// signals into Kill.
func (p *Program) handleSignals() {
	sig := make(chan os.Signal, 1)
	p.opts.signalNotify(sig, append([]os.Signal{os.Interrupt}, killSignals...)...)
	p.handlers.Go(func() error {
		defer p.opts.signalStop(sig)
		for {
			select {
			case <-p.ctx.Done():
				return nil
			case s := <-sig:
				events.Terminal.Signal(p.runID, s.String())
				if s == os.Interrupt {
					p.Send(InterruptMsg{})
					continue
				}
				p.Kill()
			}
		}
	})
}

// handleResize sends a WindowSizeMsg on every resize signal.
func (p *Program) handleResize() {
	if len(resizeSignals) == 0 {
		return
	}
	sig := make(chan os.Signal, 1)
	p.opts.signalNotify(sig, resizeSignals...)
	p.handlers.Go(func() error {
		defer p.opts.signalStop(sig)
		for {
			select {
			case <-p.ctx.Done():
				return nil
			case s := <-sig:
				events.Terminal.Signal(p.runID, s.String())
				p.checkResize()
			}
		}
	})
}
