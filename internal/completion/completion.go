// Package completion generates shell completion scripts from the registry.
package completion

import (
	"bytes"
	"strings"

	"bytekit/internal/module"
	"bytekit/internal/schema"
	e "bytekit/pkg/errors"
)

// Shells lists the supported shells
var Shells = []string{"bash", "zsh", "fish", "powershell"}

type builtin struct {
	schema *schema.Schema
}

// New returns the completion builtin
func New() module.Builtin {
	return &builtin{schema: &schema.Schema{
		Name:  "completion",
		Short: "Generate shell completion",
		Long:  "Prints a completion script for " + strings.Join(Shells, ", ") + ".",
		Args:  []schema.Arg{{Name: "SHELL", Help: "Target shell", Required: true}},
	}}
}

func (b *builtin) Schema() *schema.Schema { return b.schema }

func (b *builtin) Run(r *module.Registry, m *schema.Matches) ([]string, error) {
	root := schema.Root("bytekit", "Byte, encoding and crypto conversions on the command line", r.Schemas(), nil)
	var buf bytes.Buffer
	var err error
	switch shell := m.Value("SHELL"); shell {
	case "bash":
		err = root.GenBashCompletion(&buf)
	case "zsh":
		err = root.GenZshCompletion(&buf)
	case "fish":
		err = root.GenFishCompletion(&buf, true)
	case "powershell":
		err = root.GenPowerShellCompletionWithDesc(&buf)
	default:
		return nil, e.Newf(e.ErrUnsupported, "unsupported shell %q", shell).
			WithSuggestion("Supported shells: " + strings.Join(Shells, ", "))
	}
	if err != nil {
		return nil, e.Wrap(err, e.ErrUnknown, "generate completion script")
	}
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n"), nil
}
