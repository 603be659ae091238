// Package hex converts between hex and UTF-8 text.
package hex

import (
	"unicode/utf8"

	"bytekit/internal/hexutil"
	"bytekit/internal/module"
	"bytekit/internal/schema"
	e "bytekit/pkg/errors"
)

// Module returns the hex module
func Module() module.Module {
	return module.Module{
		Name:        "hex",
		Description: "Hex / UTF-8 string conversion",
		Commands:    commands,
	}
}

func commands() []module.Command {
	return []module.Command{
		module.NewCommand(&schema.Schema{
			Name:  "h2s",
			Short: "Convert hex to UTF-8 string",
			Args:  []schema.Arg{{Name: "INPUT", Help: "Hex bytes, 0x prefix optional", Required: true, Stdin: true}},
		}, h2s, []module.Case{
			{
				Desc:      "Convert hex to UTF-8 string",
				Input:     []string{"0x61626364"},
				Output:    []string{"abcd"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:   "Convert hex without prefix",
				Input:  []string{"68656c6c6f"},
				Output: []string{"hello"},
				IsTest: true,
				Since:  "0.1.0",
			},
			{
				Desc:      "Decode multi-byte characters",
				Input:     []string{"0xe4bda0e5a5bd"},
				Output:    []string{"你好"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
		}),
		module.NewCommand(&schema.Schema{
			Name:  "s2h",
			Short: "Convert UTF-8 string to hex",
			Args:  []schema.Arg{{Name: "INPUT", Help: "Text", Required: true, Stdin: true}},
		}, s2h, []module.Case{
			{
				Desc:      "Convert UTF-8 string to hex",
				Input:     []string{"abcd"},
				Output:    []string{"0x61626364"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:   "Empty string",
				Input:  []string{""},
				Output: []string{"0x"},
				IsTest: true,
				Since:  "0.1.0",
			},
		}),
	}
}

func h2s(m *schema.Matches) ([]string, error) {
	b, err := hexutil.Decode(m.Value("INPUT"))
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(b) {
		return nil, e.New(e.ErrInvalidEncoding, "decoded bytes are not valid UTF-8").
			WithSuggestion("Use 'bytekit b642h' or keep the value as hex")
	}
	return []string{string(b)}, nil
}

func s2h(m *schema.Matches) ([]string, error) {
	return []string{hexutil.Encode([]byte(m.Value("INPUT")))}, nil
}
