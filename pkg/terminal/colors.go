// Package terminal provides terminal output utilities.
package terminal

import (
	"fmt"
	"os"
	"sync/atomic"
)

// Color codes for terminal output
const (
	Reset  = "\033[0m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Bold   = "\033[1m"
)

// Mode selects when colors are emitted
type Mode int32

const (
	ModeAuto Mode = iota
	ModeAlways
	ModeNever
)

var mode atomic.Int32

// ParseMode maps the config/flag spelling of a color mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "", "auto":
		return ModeAuto, true
	case "always":
		return ModeAlways, true
	case "never":
		return ModeNever, true
	}
	return ModeAuto, false
}

// SetMode changes the process-wide color mode
func SetMode(m Mode) { mode.Store(int32(m)) }

// IsTerminal checks if output is to a terminal
func IsTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// Enabled reports whether colors should be written
func Enabled() bool {
	switch Mode(mode.Load()) {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	}
	return IsTerminal() && os.Getenv("NO_COLOR") == ""
}

// Colorize returns text with color codes if terminal supports it
func Colorize(color, text string) string {
	if !Enabled() {
		return text
	}
	return fmt.Sprintf("%s%s%s", color, text, Reset)
}

// Error prints red text
func Error(text string) string {
	return Colorize(Red, text)
}

// Warning prints yellow text
func Warning(text string) string {
	return Colorize(Yellow, text)
}

// Info prints cyan text
func Info(text string) string {
	return Colorize(Cyan, text)
}

// Faint returns dimmed text
func Faint(text string) string {
	return Colorize(Dim, text)
}

// BoldText returns bold text
func BoldText(text string) string {
	return Colorize(Bold, text)
}
