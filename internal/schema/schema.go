// Package schema describes the arguments a bytekit command accepts.
//
// A Schema is declarative: the CLI turns it into a cobra command, the usage
// and completion generators read it for documentation, and the example runner
// parses Case inputs against it with pflag. All three paths share one
// description so examples can never drift from what the parser accepts.
package schema

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Arg is a positional argument
type Arg struct {
	Name     string
	Help     string
	Required bool
	// Stdin marks the argument the CLI may read from standard input when it
	// is omitted. Only the last argument may carry it.
	Stdin bool
}

// Flag is a named option
type Flag struct {
	Name    string
	Short   string
	Help    string
	Default string
	// Bool flags take no value
	Bool bool
	// Values restricts the flag to an enumeration; empty means free-form
	Values []string
}

// Schema is the argument description of one command
type Schema struct {
	Name  string
	Short string
	Long  string
	Args  []Arg
	Flags []Flag
}

// Validate checks the schema is well formed. Schemas are compile-time
// constants, so callers treat a failure as a programming error.
func (s *Schema) Validate() error {
	if s == nil {
		return fmt.Errorf("nil schema")
	}
	if s.Name == "" || strings.ContainsAny(s.Name, " \t") {
		return fmt.Errorf("invalid command name %q", s.Name)
	}
	seen := map[string]bool{"help": true}
	shorts := map[string]bool{"h": true}
	for _, f := range s.Flags {
		if f.Name == "" {
			return fmt.Errorf("%s: flag without a name", s.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("%s: duplicate flag --%s", s.Name, f.Name)
		}
		seen[f.Name] = true
		if f.Short != "" {
			if utf8.RuneCountInString(f.Short) != 1 {
				return fmt.Errorf("%s: shorthand %q for --%s must be one character", s.Name, f.Short, f.Name)
			}
			if shorts[f.Short] {
				return fmt.Errorf("%s: duplicate shorthand -%s", s.Name, f.Short)
			}
			shorts[f.Short] = true
		}
		if f.Bool && len(f.Values) > 0 {
			return fmt.Errorf("%s: bool flag --%s cannot enumerate values", s.Name, f.Name)
		}
		if len(f.Values) > 0 && f.Default != "" && !slices.Contains(f.Values, f.Default) {
			return fmt.Errorf("%s: default %q of --%s is not an allowed value", s.Name, f.Default, f.Name)
		}
	}
	optional := false
	for i, a := range s.Args {
		if a.Name == "" {
			return fmt.Errorf("%s: positional argument %d without a name", s.Name, i)
		}
		if seen[a.Name] {
			return fmt.Errorf("%s: argument %s shadows a flag", s.Name, a.Name)
		}
		seen[a.Name] = true
		if a.Required && optional {
			return fmt.Errorf("%s: required argument %s follows an optional one", s.Name, a.Name)
		}
		if !a.Required {
			optional = true
		}
		if a.Stdin && i != len(s.Args)-1 {
			return fmt.Errorf("%s: only the last argument may be read from stdin", s.Name)
		}
	}
	return nil
}

// Use renders the cobra usage line, e.g. "hash [flags] INPUT".
func (s *Schema) Use() string {
	var b strings.Builder
	b.WriteString(s.Name)
	if len(s.Flags) > 0 {
		b.WriteString(" [flags]")
	}
	for _, a := range s.Args {
		if a.Required {
			fmt.Fprintf(&b, " %s", a.Name)
		} else {
			fmt.Fprintf(&b, " [%s]", a.Name)
		}
	}
	return b.String()
}

// StdinArg returns the index of the argument that may come from stdin, or -1.
func (s *Schema) StdinArg() int {
	for i, a := range s.Args {
		if a.Stdin {
			return i
		}
	}
	return -1
}

// Flag returns the flag called name
func (s *Schema) Flag(name string) (Flag, bool) {
	for _, f := range s.Flags {
		if f.Name == name {
			return f, true
		}
	}
	return Flag{}, false
}

func (s *Schema) minArgs() int {
	n := 0
	for _, a := range s.Args {
		if a.Required {
			n++
		}
	}
	return n
}
