package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/tealoop/internal/app"
	"github.com/atomicstack/tealoop/internal/config"
	"github.com/atomicstack/tealoop/internal/logging"
	"github.com/atomicstack/tealoop/internal/logging/events"
	"github.com/atomicstack/tealoop/mvu"
	"golang.org/x/term"
)

const (
	exitOK     = 0
	exitError  = 1
	exitConfig = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stderr, app.Run))
}

// run loads configuration, sets up logging and hands over to start. It
// returns the process exit code.
func run(args, environ []string, stderr io.Writer, start func(app.Config) error) int {
	cfg, err := config.LoadArgs(args, environ)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(stderr, usage)
		return exitOK
	}
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return exitConfig
	}

	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	defer logging.Close()

	events.App.Start(startupTracePayload(cfg))

	if err := start(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, mvu.ErrInvalidConfig) {
			return exitConfig
		}
		return exitError
	}
	return exitOK
}

const usage = `usage: tealoop [flags]

  --config PATH          TOML file with defaults (TEALOOP_CONFIG)
  --alt-screen           render in the alternate screen
  --mouse none|cell|all  mouse reporting
  --report-focus         report focus changes
  --fps N                frame rate, 1-120 (default 60)
  --countdown N          quit after N ticks, 0 disables (default 10)
  --tick D               countdown interval (default 1s)
  --heartbeat D          heartbeat interval (default 250ms)
  --no-bracketed-paste   disable bracketed paste
  --buffer N             message queue capacity (default 1000)
  --title S              window title
  --trace                JSON trace logging
  --log-file PATH        log destination
  --verbose              show message types in the status line

Every flag can also be set with a TEALOOP_* environment variable.`

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if cfg.File != "" {
		payload["configFile"] = cfg.File
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected    *ttyDetected     `json:"detected,omitempty"`
	Interactive bool             `json:"interactive"`
	Probes      []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects the standard descriptors. The demo is
// interactive only when both stdin and stdout are terminals, since raw mode
// is applied to stdin and frames are drawn on stdout.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{
		Detected:    detected,
		Interactive: results[0].IsTerminal && results[1].IsTerminal,
		Probes:      results,
	}
}
