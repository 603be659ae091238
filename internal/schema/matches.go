package schema

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Matches holds arguments already validated against a Schema: arity,
// flag syntax and enumerated values. Domain validation is left to the
// command.
type Matches struct {
	schema  *Schema
	values  map[string]string
	present map[string]bool
}

// FlagSet builds a pflag set for the schema's flags
func (s *Schema) FlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(s.Name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	s.bind(fs)
	return fs
}

func (s *Schema) bind(fs *pflag.FlagSet) { bindFlags(fs, s.Flags) }

func bindFlags(fs *pflag.FlagSet, flags []Flag) {
	for _, f := range flags {
		help := f.Help
		if len(f.Values) > 0 {
			help = fmt.Sprintf("%s [%s]", help, strings.Join(f.Values, ", "))
		}
		if f.Bool {
			def, _ := strconv.ParseBool(f.Default)
			fs.BoolP(f.Name, f.Short, def, help)
			continue
		}
		fs.StringP(f.Name, f.Short, f.Default, help)
	}
}

// Parse parses raw tokens, as found in a Case input, against the schema.
func Parse(s *Schema, tokens []string) (*Matches, error) {
	fs := s.FlagSet()
	if err := fs.Parse(tokens); err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	return FromFlagSet(s, fs, fs.Args())
}

// FromFlagSet validates an already-parsed flag set plus positional args.
func FromFlagSet(s *Schema, fs *pflag.FlagSet, args []string) (*Matches, error) {
	if len(args) < s.minArgs() {
		return nil, fmt.Errorf("%s: missing required argument %s", s.Name, s.Args[len(args)].Name)
	}
	if len(args) > len(s.Args) {
		return nil, fmt.Errorf("%s: accepts at most %d argument(s), received %d", s.Name, len(s.Args), len(args))
	}
	m := &Matches{
		schema:  s,
		values:  make(map[string]string, len(s.Flags)+len(s.Args)),
		present: make(map[string]bool, len(s.Flags)+len(s.Args)),
	}
	for _, f := range s.Flags {
		pf := fs.Lookup(f.Name)
		if pf == nil {
			return nil, fmt.Errorf("%s: flag --%s is not bound", s.Name, f.Name)
		}
		v := pf.Value.String()
		if len(f.Values) > 0 && (pf.Changed || v != "") && !slices.Contains(f.Values, v) {
			return nil, fmt.Errorf("%s: invalid value %q for --%s (allowed: %s)", s.Name, v, f.Name, strings.Join(f.Values, ", "))
		}
		m.values[f.Name] = v
		m.present[f.Name] = pf.Changed || (!f.Bool && v != "")
	}
	for i, a := range s.Args {
		if i < len(args) {
			m.values[a.Name] = args[i]
			m.present[a.Name] = true
		}
	}
	return m, nil
}

// Schema returns the schema the matches were validated against
func (m *Matches) Schema() *Schema { return m.schema }

// Value returns a flag or positional value, "" when absent
func (m *Matches) Value(name string) string { return m.values[name] }

// Lookup returns a value and whether it was given or has a default
func (m *Matches) Lookup(name string) (string, bool) {
	return m.values[name], m.present[name]
}

// Bool reports whether a bool flag is set
func (m *Matches) Bool(name string) bool {
	b, _ := strconv.ParseBool(m.values[name])
	return b
}
