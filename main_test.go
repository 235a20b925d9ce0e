package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/tealoop/internal/app"
	"github.com/atomicstack/tealoop/internal/config"
	"github.com/atomicstack/tealoop/mvu"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
	if info.Interactive != (info.Probes[0].IsTerminal && info.Probes[1].IsTerminal) {
		t.Fatalf("interactive flag disagrees with probes: %+v", info)
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			FPS:       30,
			Countdown: 5,
			Title:     "demo",
			Verbose:   true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		File: "tealoop.toml",
		Flags: map[string]string{
			"fps":       "30",
			"countdown": "5",
			"title":     "demo",
			"verbose":   "true",
		},
		Args: []string{"--fps", "30"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["fps"] != "30" {
		t.Fatalf("expected fps 30, got %v", flagsValue["fps"])
	}
	if flagsValue["countdown"] != "5" {
		t.Fatalf("expected countdown 5, got %v", flagsValue["countdown"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if payload["configFile"] != "tealoop.toml" {
		t.Fatalf("expected config file in payload, got %v", payload["configFile"])
	}
	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App.Title != "demo" || cfgValue.App.FPS != 30 {
		t.Fatalf("unexpected app config %#v", cfgValue.App)
	}
}

func runForTest(t *testing.T, args []string, start func(app.Config) error) (int, string) {
	t.Helper()
	args = append([]string{"--log-file", filepath.Join(t.TempDir(), "tealoop.log")}, args...)
	var stderr strings.Builder
	code := run(args, nil, &stderr, start)
	return code, stderr.String()
}

func TestRunExitCodes(t *testing.T) {
	var got app.Config
	code, _ := runForTest(t, []string{"--countdown", "4"}, func(cfg app.Config) error {
		got = cfg
		return nil
	})
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if got.Countdown != 4 {
		t.Fatalf("expected config handed to start, got %+v", got)
	}

	code, stderr := runForTest(t, []string{"--fps", "0"}, func(app.Config) error {
		t.Fatalf("start must not run with invalid configuration")
		return nil
	})
	if code != exitConfig || !strings.Contains(stderr, "Configuration error") {
		t.Fatalf("expected config exit, got %d %q", code, stderr)
	}

	code, stderr = runForTest(t, nil, func(app.Config) error {
		return errors.New("boom")
	})
	if code != exitError || !strings.Contains(stderr, "Error: boom") {
		t.Fatalf("expected error exit, got %d %q", code, stderr)
	}

	code, _ = runForTest(t, nil, func(app.Config) error {
		return fmt.Errorf("start: %w", mvu.ErrInvalidConfig)
	})
	if code != exitConfig {
		t.Fatalf("expected runtime config errors to exit 2, got %d", code)
	}
}

func TestRunHelp(t *testing.T) {
	code, stderr := runForTest(t, []string{"-h"}, func(app.Config) error {
		t.Fatalf("start must not run for help")
		return nil
	})
	if code != exitOK || !strings.Contains(stderr, "usage: tealoop") {
		t.Fatalf("expected usage, got %d %q", code, stderr)
	}
}
