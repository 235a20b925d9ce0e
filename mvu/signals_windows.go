//go:build windows

package mvu

import (
	"context"
	"os"
	"syscall"
)

var (
	killSignals   = []os.Signal{syscall.SIGTERM}
	resizeSignals []os.Signal
)

// suspendProcess is a no-op; Windows has no job control.
func suspendProcess(context.Context) error {
	return nil
}
