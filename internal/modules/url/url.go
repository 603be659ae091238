// Package url percent-encodes and decodes text.
package url

import (
	neturl "net/url"
	"strings"

	"bytekit/internal/module"
	"bytekit/internal/schema"
	e "bytekit/pkg/errors"
)

// Module returns the url module
func Module() module.Module {
	return module.Module{
		Name:        "url",
		Description: "URL encode / decode",
		Commands:    commands,
	}
}

func commands() []module.Command {
	return []module.Command{
		module.NewCommand(&schema.Schema{
			Name:  "ue",
			Short: "URL encode",
			Args:  []schema.Arg{{Name: "INPUT", Help: "Text", Required: true, Stdin: true}},
		}, ue, []module.Case{
			{
				Desc:      "URL encode",
				Input:     []string{"a b"},
				Output:    []string{"a%20b"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:   "Reserved and non-ASCII characters",
				Input:  []string{"你好/?&=+"},
				Output: []string{"%E4%BD%A0%E5%A5%BD%2F%3F%26%3D%2B"},
				IsTest: true,
				Since:  "0.1.0",
			},
		}),
		module.NewCommand(&schema.Schema{
			Name:  "ud",
			Short: "URL decode",
			Args:  []schema.Arg{{Name: "INPUT", Help: "Percent-encoded text", Required: true, Stdin: true}},
		}, ud, []module.Case{
			{
				Desc:      "URL decode",
				Input:     []string{"a%20b"},
				Output:    []string{"a b"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:   "Plus is kept as is",
				Input:  []string{"%E4%BD%A0%E5%A5%BD+1"},
				Output: []string{"你好+1"},
				IsTest: true,
				Since:  "0.1.0",
			},
		}),
	}
}

// ue escapes everything outside the RFC 3986 unreserved set
func ue(m *schema.Matches) ([]string, error) {
	return []string{strings.ReplaceAll(neturl.QueryEscape(m.Value("INPUT")), "+", "%20")}, nil
}

func ud(m *schema.Matches) ([]string, error) {
	s, err := neturl.PathUnescape(m.Value("INPUT"))
	if err != nil {
		return nil, e.New(e.ErrInvalidEncoding, "invalid percent encoding").WithCause(err)
	}
	return []string{s}, nil
}
