// Package cli: Central error handling for CLI
// Provides consistent error presentation and exit codes
package cli

import (
	stdErrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"bytekit/internal/module"
	e "bytekit/pkg/errors"
	"bytekit/pkg/terminal"
)

// osExit is replaced in tests
var osExit = os.Exit

// ErrorHandler handles errors consistently across the CLI
type ErrorHandler struct {
	verbose bool
	debug   bool
	out     io.Writer
}

// NewErrorHandler creates an error handler writing to stderr
func NewErrorHandler(verbose, debug bool) *ErrorHandler {
	return &ErrorHandler{verbose: verbose, debug: debug, out: os.Stderr}
}

// Handle displays err and exits with status 1. A command failure has
// already printed its message, so only the verbose details are added.
func (h *ErrorHandler) Handle(err error) {
	if err == nil {
		return
	}
	h.Display(err)
	osExit(1)
}

// Display writes err without exiting
func (h *ErrorHandler) Display(err error) {
	coded, ok := e.As(err)
	if stdErrors.Is(err, module.ErrCommandFailed) {
		if ok && (h.verbose || h.debug) {
			h.displayDetails(coded)
		}
		return
	}
	if !ok {
		// parse errors from cobra and the schema
		fmt.Fprintf(h.out, "%s %s\n", terminal.IconError, terminal.Error(err.Error()))
		fmt.Fprintln(h.out, terminal.Faint("Run '"+Name+" <command> --help' for usage"))
		return
	}
	fmt.Fprintf(h.out, "%s %s\n", h.getErrorIcon(coded.Code), terminal.BoldText(coded.Error()))
	h.displayDetails(coded)
}

// Warn reports a non-fatal error
func (h *ErrorHandler) Warn(err error) {
	fmt.Fprintf(h.out, "%s %s\n", terminal.IconWarning, terminal.Warning(err.Error()))
	if coded, ok := e.As(err); ok && coded.Suggestion != "" {
		fmt.Fprintf(h.out, "%s %s\n", terminal.IconHint, terminal.Warning(coded.Suggestion))
	}
}

func (h *ErrorHandler) displayDetails(err *e.Error) {
	if err.Details != "" && h.verbose {
		fmt.Fprintf(h.out, "\n%s\n", terminal.Faint(err.Details))
	}

	if len(err.Context) > 0 && h.verbose {
		fmt.Fprintln(h.out, "\nContext:")
		keys := make([]string, 0, len(err.Context))
		for k := range err.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(h.out, "  %s: %s\n", k, err.Context[k])
		}
	}

	if err.Suggestion != "" && h.verbose {
		fmt.Fprintf(h.out, "\n%s %s\n", terminal.IconHint, terminal.Warning(err.Suggestion))
	}

	if err.Cause != nil && h.verbose {
		fmt.Fprintf(h.out, "\n%s\n", terminal.Faint("Caused by:"))
		h.displayCauseChain(err.Cause, 1)
	}

	if h.debug && len(err.Stack) > 0 {
		fmt.Fprintf(h.out, "\n%s\n", terminal.Faint("Stack trace:"))
		for _, f := range err.Stack {
			fmt.Fprintf(h.out, "  %s\n", h.formatStackFrame(f))
		}
	}
}

func (h *ErrorHandler) displayCauseChain(err error, depth int) {
	indent := strings.Repeat("  ", depth)
	if coded, ok := err.(*e.Error); ok {
		fmt.Fprintf(h.out, "%s%s %s\n", indent, terminal.IconArrow, coded.Message)
		if coded.Cause != nil {
			h.displayCauseChain(coded.Cause, depth+1)
		}
		return
	}
	fmt.Fprintf(h.out, "%s%s %s\n", indent, terminal.IconArrow, err.Error())
}

func (h *ErrorHandler) formatStackFrame(frame e.StackFrame) string {
	file := frame.File
	if idx := strings.LastIndex(file, "/bytekit/"); idx >= 0 {
		file = "..." + file[idx:]
	}
	fn := frame.Function
	if idx := strings.LastIndex(fn, "."); idx >= 0 {
		fn = fn[idx+1:]
	}
	return fmt.Sprintf("%s:%d %s()", file, frame.Line, fn)
}

func (h *ErrorHandler) getErrorIcon(code e.ErrorCode) string {
	icons := map[e.ErrorCode]string{
		e.ErrInvalidConfig: "⚙️",
		e.ErrInvalidKey:    "🔑",
		e.ErrVerifyFailed:  "🚫",
		e.ErrUnsupported:   "🤷",
		e.ErrUnknown:       "❓",
	}
	if ic, ok := icons[code]; ok {
		return ic
	}
	return terminal.IconError
}
