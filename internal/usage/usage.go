// Package usage renders the example Cases of every registered command as
// documentation.
package usage

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"bytekit/internal/module"
	"bytekit/internal/schema"
	e "bytekit/pkg/errors"
	"bytekit/pkg/terminal"
)

// Binary is the program name examples are rendered with
const Binary = "bytekit"

const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

// ModuleDoc is the machine-readable form of one module's examples
type ModuleDoc struct {
	Module      string       `json:"module" yaml:"module"`
	Description string       `json:"description" yaml:"description"`
	Commands    []CommandDoc `json:"commands" yaml:"commands"`
}

// CommandDoc lists the examples of one command
type CommandDoc struct {
	Name     string       `json:"name" yaml:"name"`
	Short    string       `json:"short,omitempty" yaml:"short,omitempty"`
	Examples []ExampleDoc `json:"examples" yaml:"examples"`
}

// ExampleDoc is one example Case
type ExampleDoc struct {
	Desc   string   `json:"desc" yaml:"desc"`
	Input  []string `json:"input" yaml:"input"`
	Output []string `json:"output" yaml:"output"`
	Since  string   `json:"since" yaml:"since"`
}

type builtin struct {
	schema *schema.Schema
}

// New returns the usage builtin
func New() module.Builtin {
	return &builtin{schema: &schema.Schema{
		Name:  "usage",
		Short: "Show examples",
		Long:  "Prints the examples of every command, grouped by module.",
		Flags: []schema.Flag{
			{Name: "search", Short: "s", Help: "Only commands whose name matches this glob"},
			{Name: "format", Short: "f", Help: "Output format", Default: formatText,
				Values: []string{formatText, formatYAML, formatJSON}},
		},
	}}
}

func (b *builtin) Schema() *schema.Schema { return b.schema }

func (b *builtin) Run(r *module.Registry, m *schema.Matches) ([]string, error) {
	match := func(string) bool { return true }
	pattern, searched := m.Lookup("search")
	if searched {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, e.New(e.ErrInvalidInput, "invalid search pattern").WithCause(err).
				WithContext("pattern", pattern)
		}
		match = g.Match
	}
	docs := Collect(r, match)
	if len(docs) == 0 && searched {
		return nil, e.Newf(e.ErrInvalidInput, "no command matches %q", pattern).
			WithSuggestion("Patterns use glob syntax, e.g. 'h2*' or '{ue,ud}'")
	}

	switch m.Value("format") {
	case formatJSON:
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return nil, e.Wrap(err, e.ErrUnknown, "encode usage as JSON")
		}
		return lines(string(data)), nil
	case formatYAML:
		data, err := yaml.Marshal(docs)
		if err != nil {
			return nil, e.Wrap(err, e.ErrUnknown, "encode usage as YAML")
		}
		return lines(string(data)), nil
	}
	return Text(docs), nil
}

// Collect gathers the example Cases of every command accepted by match,
// keeping registration order and dropping empty groups.
func Collect(r *module.Registry, match func(name string) bool) []ModuleDoc {
	mods := make(map[string]module.Module)
	for _, mod := range r.Modules() {
		mods[mod.Name] = mod
	}
	docs := []ModuleDoc{}
	var (
		doc   *ModuleDoc
		cases map[string][]module.Case
	)
	for _, cmd := range r.Commands() {
		s := cmd.Schema()
		name := r.ModuleOf(s.Name)
		if doc == nil || doc.Module != name {
			mod := mods[name]
			docs = append(docs, ModuleDoc{Module: mod.Name, Description: mod.Description})
			doc, cases = &docs[len(docs)-1], mod.Cases()
		}
		if !match(s.Name) {
			continue
		}
		cd := CommandDoc{Name: s.Name, Short: s.Short}
		for _, c := range cases[s.Name] {
			if c.IsExample {
				cd.Examples = append(cd.Examples, ExampleDoc{Desc: c.Desc, Input: c.Input, Output: c.Output, Since: c.Since})
			}
		}
		if len(cd.Examples) > 0 {
			doc.Commands = append(doc.Commands, cd)
		}
	}
	return slices.DeleteFunc(docs, func(d ModuleDoc) bool { return len(d.Commands) == 0 })
}

// Text renders the documentation for a terminal
func Text(docs []ModuleDoc) []string {
	var out []string
	for i, doc := range docs {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, terminal.BoldText(doc.Module)+" "+terminal.Faint(doc.Description))
		for _, cmd := range doc.Commands {
			for _, ex := range cmd.Examples {
				out = append(out, fmt.Sprintf("  %s %s", terminal.IconDot, ex.Desc)+terminal.Faint(" (since "+ex.Since+")"))
				out = append(out, "    "+terminal.Info("$ "+CommandLine(cmd.Name, ex.Input)))
				for _, line := range ex.Output {
					out = append(out, "    "+line)
				}
			}
		}
	}
	return out
}

// CommandLine renders an invocation as it would be typed in a POSIX shell
func CommandLine(name string, input []string) string {
	parts := make([]string, 0, len(input)+2)
	parts = append(parts, Binary, name)
	for _, tok := range input {
		parts = append(parts, quote(tok))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s != "" && strings.IndexFunc(s, needsQuote) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuote(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("-_./:=,+@%", r):
		return false
	}
	return true
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
