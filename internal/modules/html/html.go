// Package html escapes and unescapes HTML text.
package html

import (
	"golang.org/x/net/html"

	"bytekit/internal/module"
	"bytekit/internal/schema"
)

// Module returns the html module
func Module() module.Module {
	return module.Module{
		Name:        "html",
		Description: "HTML entity encode / decode",
		Commands:    commands,
	}
}

func commands() []module.Command {
	return []module.Command{
		module.NewCommand(&schema.Schema{
			Name:  "he",
			Short: "HTML escape",
			Args:  []schema.Arg{{Name: "INPUT", Help: "Text", Required: true, Stdin: true}},
		}, he, []module.Case{
			{
				Desc:      "HTML escape",
				Input:     []string{"<b>a & b</b>"},
				Output:    []string{"&lt;b&gt;a &amp; b&lt;/b&gt;"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:   "Quotes",
				Input:  []string{`"a" 'b'`},
				Output: []string{"&#34;a&#34; &#39;b&#39;"},
				IsTest: true,
				Since:  "0.1.0",
			},
		}),
		module.NewCommand(&schema.Schema{
			Name:  "hd",
			Short: "HTML unescape",
			Args:  []schema.Arg{{Name: "INPUT", Help: "Escaped text", Required: true, Stdin: true}},
		}, hd, []module.Case{
			{
				Desc:      "HTML unescape",
				Input:     []string{"&lt;b&gt;a &amp; b&lt;/b&gt;"},
				Output:    []string{"<b>a & b</b>"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:   "Named and numeric references",
				Input:  []string{"&quot;&copy;&#x1f4af;&#39;"},
				Output: []string{`"©💯'`},
				IsTest: true,
				Since:  "0.1.0",
			},
		}),
	}
}

func he(m *schema.Matches) ([]string, error) {
	return []string{html.EscapeString(m.Value("INPUT"))}, nil
}

// hd never fails: unknown references are left as they are
func hd(m *schema.Matches) ([]string, error) {
	return []string{html.UnescapeString(m.Value("INPUT"))}, nil
}
