package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/atomicstack/tealoop/internal/app"
	"github.com/atomicstack/tealoop/mvu"
)

// Config captures runtime configuration for the demo.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	File     string
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

// fileConfig mirrors the optional TOML file. Every key is optional; absent
// keys keep the built-in default.
type fileConfig struct {
	AltScreen        bool         `toml:"alt_screen"`
	Mouse            string       `toml:"mouse"`
	ReportFocus      bool         `toml:"report_focus"`
	FPS              int          `toml:"fps"`
	Countdown        int          `toml:"countdown"`
	Tick             duration     `toml:"tick"`
	Heartbeat        duration     `toml:"heartbeat"`
	NoBracketedPaste bool         `toml:"no_bracketed_paste"`
	Buffer           int          `toml:"buffer"`
	Title            string       `toml:"title"`
	Words            []string     `toml:"words"`
	Logging          fileLogging  `toml:"logging"`
	Features         fileFeatures `toml:"features"`
}

type fileLogging struct {
	File  string `toml:"file"`
	Trace bool   `toml:"trace"`
}

type fileFeatures struct {
	Verbose bool `toml:"verbose"`
}

// duration decodes TOML strings such as "250ms".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

const (
	envConfig           = "TEALOOP_CONFIG"
	envAltScreen        = "TEALOOP_ALT_SCREEN"
	envMouse            = "TEALOOP_MOUSE"
	envReportFocus      = "TEALOOP_REPORT_FOCUS"
	envFPS              = "TEALOOP_FPS"
	envCountdown        = "TEALOOP_COUNTDOWN"
	envTick             = "TEALOOP_TICK"
	envHeartbeat        = "TEALOOP_HEARTBEAT"
	envNoBracketedPaste = "TEALOOP_NO_BRACKETED_PASTE"
	envBuffer           = "TEALOOP_BUFFER"
	envTitle            = "TEALOOP_TITLE"
	envVerbose          = "TEALOOP_VERBOSE"
	envTrace            = "TEALOOP_TRACE"
	envLogFile          = "TEALOOP_LOG_FILE"
)

const (
	defaultFPS       = 60
	defaultCountdown = 10
	defaultTick      = time.Second
	defaultHeartbeat = 250 * time.Millisecond
	defaultBuffer    = 1000
)

// LoadArgs allows tests to supply specific args/environment. Values are
// layered as built-in defaults, then the TOML file, then the environment,
// then flags.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	path := envOrDefault(env, envConfig, "")
	if p, ok := scanConfigFlag(args); ok {
		path = p
	}
	file := defaultFileConfig()
	if path != "" {
		if err := loadFile(path, &file); err != nil {
			return Config{}, err
		}
	}

	fs := flag.NewFlagSet("tealoop", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", path, "path to a TOML configuration file")
	altScreen := fs.Bool("alt-screen", envOrBool(env, envAltScreen, file.AltScreen), "render in the alternate screen buffer")
	mouse := fs.String("mouse", envOrDefault(env, envMouse, file.Mouse), "mouse reporting: none, cell or all")
	reportFocus := fs.Bool("report-focus", envOrBool(env, envReportFocus, file.ReportFocus), "report terminal focus changes")
	fps := fs.Int("fps", envOrInt(env, envFPS, file.FPS), "maximum frames per second (1-120)")
	countdown := fs.Int("countdown", envOrInt(env, envCountdown, file.Countdown), "seconds before the demo quits on its own (0 disables)")
	tick := fs.Duration("tick", envOrDuration(env, envTick, file.Tick.Duration), "countdown tick interval")
	heartbeat := fs.Duration("heartbeat", envOrDuration(env, envHeartbeat, file.Heartbeat.Duration), "heartbeat timer interval")
	noPaste := fs.Bool("no-bracketed-paste", envOrBool(env, envNoBracketedPaste, file.NoBracketedPaste), "disable bracketed paste")
	buffer := fs.Int("buffer", envOrInt(env, envBuffer, file.Buffer), "message queue capacity")
	title := fs.String("title", envOrDefault(env, envTitle, file.Title), "terminal window title")
	trace := fs.Bool("trace", envOrBool(env, envTrace, file.Logging.Trace), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, file.Features.Verbose), "show every message type in the status line")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, file.Logging.File), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	mode, err := mvu.ParseMouseMode(*mouse)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			AltScreen:      *altScreen,
			Mouse:          mode,
			ReportFocus:    *reportFocus,
			FPS:            *fps,
			Countdown:      *countdown,
			Tick:           *tick,
			Heartbeat:      *heartbeat,
			BracketedPaste: !*noPaste,
			Buffer:         *buffer,
			Title:          *title,
			Words:          append([]string(nil), file.Words...),
			Verbose:        *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		File: path,
		Flags: map[string]string{
			"altScreen":   strconv.FormatBool(*altScreen),
			"mouse":       mode.String(),
			"reportFocus": strconv.FormatBool(*reportFocus),
			"fps":         strconv.Itoa(*fps),
			"countdown":   strconv.Itoa(*countdown),
			"tick":        tick.String(),
			"heartbeat":   heartbeat.String(),
			"paste":       strconv.FormatBool(!*noPaste),
			"buffer":      strconv.Itoa(*buffer),
			"title":       *title,
			"verbose":     strconv.FormatBool(*verbose),
			"trace":       strconv.FormatBool(*trace),
			"logFile":     *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		FPS:       defaultFPS,
		Countdown: defaultCountdown,
		Tick:      duration{defaultTick},
		Heartbeat: duration{defaultHeartbeat},
		Buffer:    defaultBuffer,
	}
}

func loadFile(path string, into *fileConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %q: %w", path, err)
	}
	md, err := toml.Decode(string(data), into)
	if err != nil {
		return fmt.Errorf("parse config %q: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config %q: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// scanConfigFlag finds --config before the flag set is built, since the
// file supplies the defaults the other flags are declared with.
func scanConfigFlag(args []string) (string, bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return "", false
		}
		name := strings.TrimLeft(arg, "-")
		if len(name) == len(arg) {
			continue
		}
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v, true
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate rejects values the runtime or the demo cannot work with.
func Validate(cfg Config) error {
	a := cfg.App
	if a.FPS < 1 || a.FPS > 120 {
		return fmt.Errorf("fps must be between 1 and 120 (got %d)", a.FPS)
	}
	if a.Buffer < 1 {
		return fmt.Errorf("buffer must be >= 1 (got %d)", a.Buffer)
	}
	if a.Countdown < 0 {
		return fmt.Errorf("countdown must be >= 0 (got %d)", a.Countdown)
	}
	if a.Tick <= 0 {
		return fmt.Errorf("tick must be positive (got %s)", a.Tick)
	}
	if a.Heartbeat <= 0 {
		return fmt.Errorf("heartbeat must be positive (got %s)", a.Heartbeat)
	}
	return nil
}
