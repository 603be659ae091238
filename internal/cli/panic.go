package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"bytekit/pkg/terminal"
	"bytekit/pkg/version"
)

// PanicHandler recovers from panics and shows friendly errors
type PanicHandler struct {
	// Out defaults to stderr
	Out io.Writer
}

// Recover catches panics and converts them to a crash report and exit code 2.
// It must be deferred directly.
func (p *PanicHandler) Recover() { //nolint:revive
	if r := recover(); r != nil {
		p.handlePanic(r)
	}
}

func (p *PanicHandler) handlePanic(r interface{}) {
	var message string
	switch v := r.(type) {
	case string:
		message = v
	case error:
		message = v.Error()
	default:
		message = fmt.Sprintf("%v", r)
	}

	out := p.Out
	if out == nil {
		out = os.Stderr
	}
	stack := string(debug.Stack())
	crashReport := p.saveCrashReport(message, stack)

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s\n", terminal.IconCrash, terminal.Error(terminal.BoldText(Name+" crashed unexpectedly")))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Error: %s\n", message)
	if crashReport != "" {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "A crash report has been saved to:\n%s\n", crashReport)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Please report this issue with the crash report and the command you ran.")

	osExit(2)
}

func (p *PanicHandler) saveCrashReport(message, stack string) string {
	crashDir := os.ExpandEnv("$HOME/.bytekit/crashes")
	if err := os.MkdirAll(crashDir, 0o755); err != nil {
		return ""
	}
	ts := time.Now().Format("2006-01-02-15-04-05")
	fp := filepath.Join(crashDir, fmt.Sprintf("crash-%s.txt", ts))
	report := fmt.Sprintf(`bytekit Crash Report
====================
Time: %s
Version: %s
Commit: %s
OS: %s
Arch: %s

Error:
%s

Stack Trace:
%s

Environment:
%s
`, time.Now().Format(time.RFC3339), version.Version, version.Commit, runtime.GOOS, runtime.GOARCH, message, stack, p.getEnvironmentInfo())
	if err := os.WriteFile(fp, []byte(report), 0o644); err != nil {
		return ""
	}
	return fp
}

func (p *PanicHandler) getEnvironmentInfo() string {
	var info []string
	for _, key := range []string{"BYTEKIT_DEBUG", "BYTEKIT_VERBOSE", "BYTEKIT_CONFIG", "NO_COLOR"} {
		if v := os.Getenv(key); v != "" {
			info = append(info, fmt.Sprintf("%s=%s", key, v))
		}
	}
	return strings.Join(info, "\n")
}
