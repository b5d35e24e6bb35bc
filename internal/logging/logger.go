package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/term"
)

const (
	// LevelTrace is the most detailed level, shown on the console only when verbose.
	LevelTrace = slog.Level(-8)
	// LevelCritical marks a failure that ended the run.
	LevelCritical = slog.Level(12)
)

// Attribute keys added to every record.
const (
	FieldApplication = "application"
	FieldMachine     = "machine"
	FieldRunID       = "run_id"
	FieldComponent   = "component"
)

// Options describes logger construction parameters.
type Options struct {
	Application string
	Verbose     bool
	LogFile     string
	// Console receives human-readable output; defaults to os.Stderr.
	Console io.Writer
	// Color forces ANSI level colors on or off; nil means detect a terminal.
	Color *bool
}

// Logger bundles the slog logger with the resources it holds open.
type Logger struct {
	*slog.Logger
	RunID string
	file  *os.File
}

// Close flushes and closes the logfile, if one was opened.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// New constructs the run logger from opts.
func New(opts Options) (*Logger, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleLevel := new(slog.LevelVar)
	consoleLevel.Set(slog.LevelInfo)
	if opts.Verbose {
		consoleLevel.Set(LevelTrace)
	}

	color := isTerminal(console)
	if opts.Color != nil {
		color = *opts.Color
	}

	handlers := []slog.Handler{newConsoleHandler(console, consoleLevel, color)}

	var file *os.File
	if path := strings.TrimSpace(opts.LogFile); path != "" {
		f, err := openLogFile(path)
		if err != nil {
			return nil, err
		}
		file = f
		fileLevel := new(slog.LevelVar)
		fileLevel.Set(LevelTrace)
		handlers = append(handlers, newJSONHandler(f, fileLevel))
	}

	runID := uuid.NewString()
	app := opts.Application
	if app == "" {
		app = "prefixsub"
	}

	logger := slog.New(TeeHandler(handlers...)).With(
		slog.String(FieldApplication, app),
		slog.String(FieldMachine, machineName()),
		slog.String(FieldRunID, runID),
	)

	return &Logger{Logger: logger, RunID: runID, file: file}, nil
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return f, nil
}

func machineName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "unknown"
	}
	return host
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
