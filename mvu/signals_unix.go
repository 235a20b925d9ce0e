//go:build !windows

package mvu

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

var (
	killSignals   = []os.Signal{syscall.SIGTERM, syscall.SIGHUP}
	resizeSignals = []os.Signal{syscall.SIGWINCH}
)

// suspendProcess stops the process group and returns once SIGCONT arrives.
func suspendProcess(ctx context.Context) error {
	cont := make(chan os.Signal, 1)
	signal.Notify(cont, syscall.SIGCONT)
	defer signal.Stop(cont)
	if err := syscall.Kill(0, syscall.SIGTSTP); err != nil {
		return err
	}
	select {
	case <-cont:
	case <-ctx.Done():
	}
	return nil
}
