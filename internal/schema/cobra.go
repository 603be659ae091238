package schema

import (
	"github.com/spf13/cobra"
)

// Handler runs a cobra command built from a schema
type Handler func(cmd *cobra.Command, args []string) error

// Command builds a cobra command from the schema. Arity beyond the maximum
// is rejected by cobra; required arguments are checked by FromFlagSet so the
// CLI can fill a stdin argument first.
func (s *Schema) Command(run Handler) *cobra.Command {
	c := &cobra.Command{
		Use:                   s.Use(),
		Short:                 s.Short,
		Long:                  s.Long,
		Args:                  cobra.MaximumNArgs(len(s.Args)),
		DisableFlagsInUseLine: true,
		ValidArgsFunction:     noFileCompletion,
	}
	s.bind(c.Flags())
	for _, f := range s.Flags {
		if len(f.Values) == 0 {
			continue
		}
		values := f.Values
		_ = c.RegisterFlagCompletionFunc(f.Name, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return values, cobra.ShellCompDirectiveNoFileComp
		})
	}
	if run == nil {
		// commands without a handler are not "available" to cobra's help
		run = func(*cobra.Command, []string) error { return nil }
	}
	c.RunE = run
	return c
}

// GlobalFlags are accepted by every command. The CLI consumes them before
// cobra parses the arguments; Root declares them so help and completion
// scripts list them.
var GlobalFlags = []Flag{
	{Name: "verbose", Help: "Show progress and error details", Bool: true},
	{Name: "debug", Help: "Show debug logs and stack traces", Bool: true},
	{Name: "no-color", Help: "Disable colored output", Bool: true},
	{Name: "config", Help: "Config file (default ~/.bytekit.toml)"},
}

// Root builds the top-level command with one subcommand per schema, in the
// given order. handler may be nil when the tree is only introspected.
func Root(name, short string, schemas []*Schema, handler func(*Schema) Handler) *cobra.Command {
	cobra.EnableCommandSorting = false
	root := &cobra.Command{
		Use:           name,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	bindFlags(root.PersistentFlags(), GlobalFlags)
	for _, s := range schemas {
		var run Handler
		if handler != nil {
			run = handler(s)
		}
		root.AddCommand(s.Command(run))
	}
	return root
}

func noFileCompletion(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveNoFileComp
}
