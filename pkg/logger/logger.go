// Package logger provides levelled diagnostic logging for bytekit.
// Command output goes to stdout untouched; every log line goes to stderr so
// it never mixes with transformation results. --verbose and --debug raise the
// level, and in debug mode logs are also written to
// $HOME/.bytekit/logs/bytekit-YYYY-MM-DD.log.
//
// Each package logs through a Logger named after its component:
//
//	var log = logger.New("config")
//	log.Warnf("ignoring unknown keys: %s", keys)
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level int

const (
	LevelWarn Level = iota
	LevelVerbose
	LevelDebug
)

var levels = [...]struct{ name, color string }{
	LevelWarn:    {"WARN", "\033[33m"},
	LevelVerbose: {"VERBOSE", "\033[36m"},
	LevelDebug:   {"DEBUG", "\033[35m"},
}

type sink struct {
	mu     sync.Mutex
	level  Level
	out    io.Writer
	file   *os.File
	colors bool
}

var (
	std  *sink
	once sync.Once
)

// Initialize sets up the process-wide sink. Before it runs every Logger is
// silent, which keeps library code quiet in tests.
func Initialize(verbose, debug bool) {
	once.Do(func() {
		level := LevelWarn
		if verbose {
			level = LevelVerbose
		}
		if debug {
			level = LevelDebug
		}
		std = &sink{level: level, out: os.Stderr, colors: isTerminal()}
		if debug {
			std.openFile()
		}
	})
}

func (s *sink) openFile() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".bytekit", "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	path := filepath.Join(dir, fmt.Sprintf("bytekit-%s.log", time.Now().Format("2006-01-02")))
	if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
		s.file = f
		New("logger").Debugf("logging to %s", path)
	}
}

// Close flushes and closes the debug log file
func Close() {
	if std != nil && std.file != nil {
		_ = std.file.Close()
		std.file = nil
	}
}

func enabled(level Level) bool {
	return std != nil && level <= std.level
}

// Logger writes lines tagged with a component name
type Logger struct {
	component string
}

// New returns a Logger for component
func New(component string) Logger {
	return Logger{component: component}
}

// Warnf logs a problem bytekit worked around; always shown
func (l Logger) Warnf(format string, args ...any) { l.logf(LevelWarn, format, args...) }

// Verbosef logs at verbose level (shown with -v)
func (l Logger) Verbosef(format string, args ...any) { l.logf(LevelVerbose, format, args...) }

// Debugf logs at debug level (shown with --debug), with the caller's position
func (l Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }

// Timer starts timing op and returns the function that logs its duration:
//
//	defer log.Timer("dispatch h2s")()
func (l Logger) Timer(op string) func() {
	if !enabled(LevelVerbose) {
		return func() {}
	}
	start := time.Now()
	return func() {
		l.logf(LevelVerbose, "%s took %v", op, time.Since(start))
	}
}

func (l Logger) logf(level Level, format string, args ...any) {
	if !enabled(level) {
		return
	}
	caller := ""
	if level == LevelDebug {
		// logf <- Debugf <- call site
		if _, file, line, ok := runtime.Caller(2); ok {
			caller = fmt.Sprintf(" [%s:%d]", filepath.Base(file), line)
		}
	}
	std.write(level, l.component, caller, strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

func (s *sink) write(level Level, component, caller, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := time.Now().Format("15:04:05")
	plain := fmt.Sprintf("[%s] %s%s %s: %s\n", ts, levels[level].name, caller, component, msg)
	if s.colors {
		fmt.Fprintf(s.out, "[%s] %s%s\033[0m%s %s: %s\n", ts, levels[level].color, levels[level].name, caller, component, msg)
	} else {
		fmt.Fprint(s.out, plain)
	}
	if s.file != nil {
		fmt.Fprint(s.file, plain)
	}
}

func isTerminal() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fi, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
