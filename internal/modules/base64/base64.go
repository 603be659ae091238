// Package base64 converts hex to base64 and back.
package base64

import (
	b64 "encoding/base64"
	"strings"

	"bytekit/internal/hexutil"
	"bytekit/internal/module"
	"bytekit/internal/schema"
	e "bytekit/pkg/errors"
)

// Module returns the base64 module
func Module() module.Module {
	return module.Module{
		Name:        "base64",
		Description: "Hex / base64 conversion",
		Commands:    commands,
	}
}

var urlSafe = schema.Flag{Name: "url_safe", Short: "u", Help: "Use the URL-safe alphabet", Bool: true}

func commands() []module.Command {
	return []module.Command{
		module.NewCommand(&schema.Schema{
			Name:  "h2b64",
			Short: "Convert hex to base64",
			Flags: []schema.Flag{urlSafe},
			Args:  []schema.Arg{{Name: "INPUT", Help: "Hex bytes", Required: true, Stdin: true}},
		}, h2b64, []module.Case{
			{
				Desc:      "Convert hex to base64",
				Input:     []string{"0x68656c6c6f"},
				Output:    []string{"aGVsbG8="},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:      "Convert hex to URL-safe base64",
				Input:     []string{"-u", "0x00fbff"},
				Output:    []string{"APv_"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:   "Standard alphabet",
				Input:  []string{"0x00fbff"},
				Output: []string{"APv/"},
				IsTest: true,
				Since:  "0.1.0",
			},
		}),
		module.NewCommand(&schema.Schema{
			Name:  "b642h",
			Short: "Convert base64 to hex",
			Flags: []schema.Flag{urlSafe},
			Args:  []schema.Arg{{Name: "INPUT", Help: "Base64 text", Required: true, Stdin: true}},
		}, b642h, []module.Case{
			{
				Desc:      "Convert base64 to hex",
				Input:     []string{"aGVsbG8="},
				Output:    []string{"0x68656c6c6f"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:      "Convert URL-safe base64 to hex",
				Input:     []string{"-u", "APv_"},
				Output:    []string{"0x00fbff"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:   "Padding may be omitted",
				Input:  []string{"aGVsbG8"},
				Output: []string{"0x68656c6c6f"},
				IsTest: true,
				Since:  "0.4.0",
			},
		}),
	}
}

func encoding(m *schema.Matches) *b64.Encoding {
	if m.Bool("url_safe") {
		return b64.URLEncoding
	}
	return b64.StdEncoding
}

func h2b64(m *schema.Matches) ([]string, error) {
	b, err := hexutil.Decode(m.Value("INPUT"))
	if err != nil {
		return nil, err
	}
	return []string{encoding(m).EncodeToString(b)}, nil
}

func b642h(m *schema.Matches) ([]string, error) {
	in := strings.TrimRight(strings.TrimSpace(m.Value("INPUT")), "=")
	b, err := encoding(m).WithPadding(b64.NoPadding).DecodeString(in)
	if err != nil {
		return nil, e.New(e.ErrInvalidEncoding, "invalid base64").WithCause(err).WithContext("input", m.Value("INPUT"))
	}
	return []string{hexutil.Encode(b)}, nil
}
