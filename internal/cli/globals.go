package cli

import (
	"os"
	"strings"

	"bytekit/internal/config"
)

// Globals are the options shared by every command
type Globals struct {
	Verbose    bool
	Debug      bool
	NoColor    bool
	ConfigPath string
}

// ParseGlobals extracts global options from os.Args style arguments and
// returns the remaining ones. Scanning stops at "--" so inputs that look like
// options are left alone. Environment variables can turn on logging.
func ParseGlobals(args []string) (Globals, []string) {
	var g Globals
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if i == 0 {
			rest = append(rest, a)
			continue
		}
		switch {
		case a == "--":
			rest = append(rest, args[i:]...)
			i = len(args)
		case a == "--verbose":
			g.Verbose = true
		case a == "--debug":
			g.Debug = true
		case a == "--no-color":
			g.NoColor = true
		case a == "--config" && i+1 < len(args):
			g.ConfigPath = args[i+1]
			i++
		case strings.HasPrefix(a, "--config="):
			g.ConfigPath = strings.TrimPrefix(a, "--config=")
		default:
			rest = append(rest, a)
		}
	}
	if os.Getenv("BYTEKIT_VERBOSE") == "1" {
		g.Verbose = true
	}
	if os.Getenv("BYTEKIT_DEBUG") == "1" {
		g.Debug = true
	}
	if g.ConfigPath == "" {
		g.ConfigPath = config.Path()
	}
	return g, rest
}
