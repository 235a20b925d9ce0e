package app

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/atomicstack/tealoop/internal/logging/events"
	"github.com/atomicstack/tealoop/internal/ui"
	"github.com/atomicstack/tealoop/mvu"
)

// Config describes user-provided application options.
type Config struct {
	AltScreen      bool
	Mouse          mvu.MouseMode
	ReportFocus    bool
	FPS            int
	Countdown      int
	Tick           time.Duration
	Heartbeat      time.Duration
	BracketedPaste bool
	Buffer         int
	Title          string
	Words          []string
	Verbose        bool
}

// Environment carries the process streams and environment the demo runs
// with. Tests substitute pipes and buffers.
type Environment struct {
	Context context.Context
	Input   io.Reader
	Output  io.Writer
	Environ []string
	Editor  string
}

// Run bootstraps and executes the demo program on the process terminal.
func Run(cfg Config) error {
	return RunWith(cfg, Environment{
		Context: context.Background(),
		Input:   os.Stdin,
		Output:  os.Stdout,
		Environ: os.Environ(),
		Editor:  os.Getenv("EDITOR"),
	})
}

// RunWith executes the demo against env. A kill (SIGTERM, SIGHUP or a
// cancelled context) is a normal way to stop the demo and is not reported
// as an error.
func RunWith(cfg Config, env Environment) error {
	model := ui.NewModel(ui.Options{
		Countdown: cfg.Countdown,
		Tick:      cfg.Tick,
		Heartbeat: cfg.Heartbeat,
		Words:     cfg.Words,
		Editor:    env.Editor,
		Verbose:   cfg.Verbose,
	})
	program := mvu.NewProgram(model, ProgramOptions(cfg, env)...)
	_, err := program.Run()
	events.App.Exit(err)
	if errors.Is(err, mvu.ErrProgramKilled) {
		return nil
	}
	return err
}

// ProgramOptions maps the demo configuration onto runtime options.
func ProgramOptions(cfg Config, env Environment) []mvu.ProgramOption {
	opts := []mvu.ProgramOption{
		mvu.WithInput(env.Input),
		mvu.WithOutput(env.Output),
		mvu.WithFPS(cfg.FPS),
		mvu.WithMouseMode(cfg.Mouse),
		mvu.WithMessageBuffer(cfg.Buffer),
	}
	if env.Context != nil {
		opts = append(opts, mvu.WithContext(env.Context))
	}
	if len(env.Environ) > 0 {
		opts = append(opts, mvu.WithEnvironment(env.Environ))
	}
	if cfg.AltScreen {
		opts = append(opts, mvu.WithAltScreen())
	}
	if cfg.ReportFocus {
		opts = append(opts, mvu.WithReportFocus())
	}
	if !cfg.BracketedPaste {
		opts = append(opts, mvu.WithoutBracketedPaste())
	}
	if cfg.Title != "" {
		opts = append(opts, mvu.WithWindowTitle(cfg.Title))
	}
	return opts
}
