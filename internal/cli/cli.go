// Package cli provides the command-line interface for bytekit.
// It turns the module registry into a cobra command tree, applies global
// options and configured flag defaults, and routes the single command of an
// invocation to Registry.Dispatch.
//
// The main components are:
//   - CLI: builds the tree and runs one command
//   - Globals: --verbose, --debug, --no-color and --config, parsed before
//     anything else so logging and configuration are ready early
//   - ErrorHandler and PanicHandler: consistent failure output and exit codes
package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"bytekit/internal/config"
	"bytekit/internal/module"
	"bytekit/internal/schema"
	"bytekit/pkg/logger"
	"bytekit/pkg/terminal"
	"bytekit/pkg/version"
)

// Name is the binary name
const Name = "bytekit"

var log = logger.New("cli")

// CLI represents the command-line interface
type CLI struct {
	registry *module.Registry
	config   *config.Config

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	// stdinIsTerminal reports whether stdin is interactive; an omitted
	// argument is only read from a pipe or file
	stdinIsTerminal func() bool
}

// New creates a CLI over the registry. A nil config means no configured
// defaults.
func New(reg *module.Registry, cfg *config.Config) *CLI {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &CLI{
		registry:        reg,
		config:          cfg,
		stdin:           os.Stdin,
		stdout:          os.Stdout,
		stderr:          os.Stderr,
		stdinIsTerminal: isTerminal,
	}
}

// SetIO replaces the standard streams
func (c *CLI) SetIO(stdin io.Reader, stdout, stderr io.Writer, stdinIsTerminal bool) {
	c.stdin, c.stdout, c.stderr = stdin, stdout, stderr
	c.stdinIsTerminal = func() bool { return stdinIsTerminal }
}

// Root builds the cobra tree: one subcommand per registered schema, in
// registration order.
func (c *CLI) Root() *cobra.Command {
	root := schema.Root(Name, "Byte, encoding and crypto conversions on the command line", c.registry.Schemas(), c.handler)
	root.Long = "bytekit converts between hex, text, numbers and encodings, hashes,\n" +
		"derives keys, encrypts and signs. Run 'bytekit usage' for examples."
	root.Version = version.Version
	root.SetVersionTemplate(version.String() + "\n")
	root.SetIn(c.stdin)
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)
	return root
}

// Run executes the CLI with os.Args style arguments
func (c *CLI) Run(args []string) error {
	if len(args) > 1 && args[1] == "version" {
		fmt.Fprintln(c.stdout, version.String())
		return nil
	}
	root := c.Root()
	c.warnUnknownDefaults()
	if len(args) > 0 {
		args = args[1:]
	}
	root.SetArgs(args)
	log.Debugf("args: %q", args)
	return root.Execute()
}

func (c *CLI) handler(s *schema.Schema) schema.Handler {
	return func(cmd *cobra.Command, args []string) error {
		args, err := c.fillStdin(s, args)
		if err != nil {
			return err
		}
		c.applyDefaults(s, cmd.Flags())
		m, err := schema.FromFlagSet(s, cmd.Flags(), args)
		if err != nil {
			return err
		}
		return c.registry.Dispatch(s.Name, m, c.stdout, c.stderr)
	}
}

// fillStdin reads the stdin argument when it is the only one missing
func (c *CLI) fillStdin(s *schema.Schema, args []string) ([]string, error) {
	idx := s.StdinArg()
	if idx < 0 || len(args) != idx || c.stdinIsTerminal() {
		return args, nil
	}
	data, err := io.ReadAll(c.stdin)
	if err != nil {
		return nil, fmt.Errorf("%s: read stdin: %w", s.Name, err)
	}
	in := strings.TrimSuffix(strings.TrimSuffix(string(data), "\n"), "\r")
	log.Verbosef("read %s from stdin (%d bytes)", s.Args[idx].Name, len(in))
	return append(args, in), nil
}

// warnUnknownDefaults reports [defaults.<cmd>] tables naming no command
func (c *CLI) warnUnknownDefaults() {
	known := make(map[string]bool)
	for _, s := range c.registry.Schemas() {
		known[s.Name] = true
	}
	for _, name := range c.config.Commands() {
		if !known[name] {
			log.Warnf("config: no command %s, ignoring [defaults.%s]", name, name)
		}
	}
}

// applyDefaults sets configured flag values the command line left unset
func (c *CLI) applyDefaults(s *schema.Schema, fs *pflag.FlagSet) {
	for _, name := range c.config.Flags(s.Name) {
		f, ok := s.Flag(name)
		if !ok {
			log.Warnf("config: %s has no flag --%s", s.Name, name)
			continue
		}
		pf := fs.Lookup(name)
		if pf == nil || pf.Changed {
			continue
		}
		value, _ := c.config.Default(s.Name, name)
		if len(f.Values) > 0 && !slices.Contains(f.Values, value) {
			log.Warnf("config: %q is not an allowed value for %s --%s (allowed: %s)",
				value, s.Name, name, strings.Join(f.Values, ", "))
			continue
		}
		if err := fs.Set(name, value); err != nil {
			log.Warnf("config: invalid default %q for %s --%s: %v", value, s.Name, name, err)
			continue
		}
		log.Debugf("config default %s --%s=%s", s.Name, name, value)
	}
}

func isTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return true
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// ApplyColor sets the terminal color mode from the options and config
func ApplyColor(g Globals, cfg *config.Config) {
	switch {
	case g.NoColor:
		terminal.SetMode(terminal.ModeNever)
	case cfg != nil:
		terminal.SetMode(cfg.ColorMode())
	}
}
