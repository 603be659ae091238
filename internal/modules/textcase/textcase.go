// Package textcase converts text between letter cases and identifier styles.
package textcase

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bytekit/internal/module"
	"bytekit/internal/schema"
)

// Module returns the case module
func Module() module.Module {
	return module.Module{
		Name:        "case",
		Description: "Case conversion (upper, lower, title, camel, pascal, snake, kebab, constant)",
		Commands:    commands,
	}
}

type style struct {
	name    string
	convert func(string) string
}

// styles builds fresh casers on every call; a cases.Caser keeps state
func styles() []style {
	return []style{
		{"upper", cases.Upper(language.Und).String},
		{"lower", cases.Lower(language.Und).String},
		{"title", cases.Title(language.Und).String},
		{"camel", camel},
		{"pascal", pascal},
		{"snake", func(s string) string { return joinLower(s, "_") }},
		{"kebab", func(s string) string { return joinLower(s, "-") }},
		{"constant", func(s string) string { return cases.Upper(language.Und).String(joinLower(s, "_")) }},
	}
}

func styleNames() []string {
	all := styles()
	out := make([]string, len(all))
	for i, s := range all {
		out[i] = s.name
	}
	return out
}

func commands() []module.Command {
	return []module.Command{
		module.NewCommand(&schema.Schema{
			Name:  "case",
			Short: "Case conversion",
			Long:  "Prints every style, one per line, unless -t picks one.",
			Flags: []schema.Flag{{Name: "type", Short: "t", Help: "Case type", Values: styleNames()}},
			Args:  []schema.Arg{{Name: "INPUT", Help: "Text", Required: true, Stdin: true}},
		}, run, []module.Case{
			{
				Desc:      "Camel case",
				Input:     []string{"-t", "camel", "hello world"},
				Output:    []string{"helloWorld"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.4.0",
			},
			{
				Desc:   "Pascal case",
				Input:  []string{"-t", "pascal", "hello_world"},
				Output: []string{"HelloWorld"},
				IsTest: true,
				Since:  "0.4.0",
			},
			{
				Desc:      "Snake case",
				Input:     []string{"-t", "snake", "helloWorld"},
				Output:    []string{"hello_world"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.4.0",
			},
			{
				Desc:   "Kebab case splits acronyms",
				Input:  []string{"-t", "kebab", "HTTPServer"},
				Output: []string{"http-server"},
				IsTest: true,
				Since:  "0.4.0",
			},
			{
				Desc:   "Constant case",
				Input:  []string{"-t", "constant", "hello world"},
				Output: []string{"HELLO_WORLD"},
				IsTest: true,
				Since:  "0.4.0",
			},
			{
				Desc:   "Title case",
				Input:  []string{"-t", "title", "hello world"},
				Output: []string{"Hello World"},
				IsTest: true,
				Since:  "0.4.0",
			},
			{
				Desc:      "All cases",
				Input:     []string{"hello world"},
				Output:    []string{"upper: HELLO WORLD", "lower: hello world", "title: Hello World", "camel: helloWorld", "pascal: HelloWorld", "snake: hello_world", "kebab: hello-world", "constant: HELLO_WORLD"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.4.0",
			},
		}),
	}
}

func run(m *schema.Matches) ([]string, error) {
	in := m.Value("INPUT")
	typ, picked := m.Lookup("type")
	var out []string
	for _, s := range styles() {
		switch {
		case !picked:
			out = append(out, s.name+": "+s.convert(in))
		case s.name == typ:
			return []string{s.convert(in)}, nil
		}
	}
	return out, nil
}

// words splits identifiers and phrases: separators, lower to upper
// transitions and the end of an acronym all start a new word.
func words(s string) []string {
	var out []string
	var cur []rune
	runes := []rune(s)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return out
}

func joinLower(s, sep string) string {
	lower := cases.Lower(language.Und)
	ws := words(s)
	for i, w := range ws {
		ws[i] = lower.String(w)
	}
	return strings.Join(ws, sep)
}

func pascal(s string) string {
	title := cases.Title(language.Und)
	var b strings.Builder
	for _, w := range words(s) {
		b.WriteString(title.String(w))
	}
	return b.String()
}

func camel(s string) string {
	lower, title := cases.Lower(language.Und), cases.Title(language.Und)
	var b strings.Builder
	for i, w := range words(s) {
		if i == 0 {
			b.WriteString(lower.String(w))
			continue
		}
		b.WriteString(title.String(w))
	}
	return b.String()
}
