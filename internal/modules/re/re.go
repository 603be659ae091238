// Package re lists the regular expression matches in a text.
package re

import (
	"fmt"
	"regexp"

	"bytekit/internal/module"
	"bytekit/internal/schema"
	e "bytekit/pkg/errors"
)

// Module returns the re module
func Module() module.Module {
	return module.Module{
		Name:        "re",
		Description: "Regex match",
		Commands:    commands,
	}
}

func commands() []module.Command {
	return []module.Command{
		module.NewCommand(&schema.Schema{
			Name:  "re",
			Short: "Regex match",
			Long:  "Prints every match followed by its capture groups.",
			Flags: []schema.Flag{{Name: "pattern", Short: "p", Help: "Regex pattern (RE2 syntax)"}},
			Args:  []schema.Arg{{Name: "INPUT", Help: "Text", Required: true, Stdin: true}},
		}, run, []module.Case{
			{
				Desc:      "Regex match",
				Input:     []string{"-p", "a(.)c", "abcadc"},
				Output:    []string{"abc", "    group#1: b", "adc", "    group#1: d"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:   "Named groups",
				Input:  []string{"-p", `(?P<key>\w+)=(?P<value>\w*)`, "a=1 b="},
				Output: []string{"a=1", "    group#1 key: a", "    group#2 value: 1", "b=", "    group#1 key: b", "    group#2 value: "},
				IsTest: true,
				Since:  "0.3.0",
			},
			{
				Desc:   "No match",
				Input:  []string{"-p", "x+", "abc"},
				Output: []string{},
				IsTest: true,
				Since:  "0.1.0",
			},
		}),
	}
}

func run(m *schema.Matches) ([]string, error) {
	pattern, ok := m.Lookup("pattern")
	if !ok {
		return nil, e.New(e.ErrInvalidInput, "a pattern is required").WithSuggestion("Pass one with -p PATTERN")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, e.New(e.ErrInvalidInput, "invalid pattern").WithCause(err).WithContext("pattern", pattern)
	}
	names := re.SubexpNames()
	out := []string{}
	for _, match := range re.FindAllStringSubmatch(m.Value("INPUT"), -1) {
		out = append(out, match[0])
		for i := 1; i < len(match); i++ {
			if names[i] != "" {
				out = append(out, fmt.Sprintf("    group#%d %s: %s", i, names[i], match[i]))
				continue
			}
			out = append(out, fmt.Sprintf("    group#%d: %s", i, match[i]))
		}
	}
	return out, nil
}
