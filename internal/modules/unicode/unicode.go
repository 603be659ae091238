// Package unicode prints the code points of a string in several notations.
package unicode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/unicode/runenames"

	"bytekit/internal/hexutil"
	"bytekit/internal/module"
	"bytekit/internal/schema"
	e "bytekit/pkg/errors"
)

// Module returns the unicode module
func Module() module.Module {
	return module.Module{
		Name:        "unicode",
		Description: "Unicode code point conversion",
		Commands:    commands,
	}
}

const (
	formatRust  = "rust"
	formatHTML  = "html"
	formatHTMLD = "html_d"
	formatUTF8  = "utf8"
	formatUTF16 = "utf16"
	formatName  = "name"
)

func commands() []module.Command {
	return []module.Command{
		module.NewCommand(&schema.Schema{
			Name:  "s2u",
			Short: "Convert string to unicode",
			Long:  "The name format prints one line per character.",
			Flags: []schema.Flag{{
				Name:    "format",
				Short:   "f",
				Help:    "Output format",
				Default: formatRust,
				Values:  []string{formatRust, formatHTML, formatHTMLD, formatUTF8, formatUTF16, formatName},
			}},
			Args: []schema.Arg{{Name: "INPUT", Help: "Text", Required: true, Stdin: true}},
		}, s2u, []module.Case{
			{
				Desc:      "Rust escapes",
				Input:     []string{"-f", "rust", "💯"},
				Output:    []string{`\u{1f4af}`},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:      "HTML hexadecimal references",
				Input:     []string{"-f", "html", "💯"},
				Output:    []string{"&#x1f4af;"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:      "HTML decimal references",
				Input:     []string{"-f", "html_d", "💯"},
				Output:    []string{"&#128175;"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:      "UTF-8 bytes",
				Input:     []string{"-f", "utf8", "💯"},
				Output:    []string{"0xf09f92af"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:      "UTF-16 code units",
				Input:     []string{"-f", "utf16", "💯"},
				Output:    []string{"0xd83ddcaf"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:      "Character names",
				Input:     []string{"-f", "name", "a💯"},
				Output:    []string{"LATIN SMALL LETTER A", "HUNDRED POINTS SYMBOL"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.5.0",
			},
			{
				Desc:   "Rust escapes for several characters",
				Input:  []string{"ab"},
				Output: []string{`\u{61}\u{62}`},
				IsTest: true,
				Since:  "0.1.0",
			},
		}),
		module.NewCommand(&schema.Schema{
			Name:  "u2s",
			Short: "Convert unicode to string",
			Flags: []schema.Flag{{
				Name:    "format",
				Short:   "f",
				Help:    "Input format",
				Default: formatRust,
				Values:  []string{formatRust, formatHTML, formatHTMLD, formatUTF8, formatUTF16},
			}},
			Args: []schema.Arg{{Name: "INPUT", Help: "Encoded code points", Required: true, Stdin: true}},
		}, u2s, []module.Case{
			{
				Desc:      "Rust escapes",
				Input:     []string{"-f", "rust", `\u{1f4af}`},
				Output:    []string{"💯"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:      "HTML hexadecimal references",
				Input:     []string{"-f", "html", "&#x1f4af;"},
				Output:    []string{"💯"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:   "HTML decimal references",
				Input:  []string{"-f", "html_d", "&#128175;"},
				Output: []string{"💯"},
				IsTest: true,
				Since:  "0.1.0",
			},
			{
				Desc:   "UTF-8 bytes",
				Input:  []string{"-f", "utf8", "0xf09f92af"},
				Output: []string{"💯"},
				IsTest: true,
				Since:  "0.1.0",
			},
			{
				Desc:   "UTF-16 code units",
				Input:  []string{"-f", "utf16", "0xd83ddcaf"},
				Output: []string{"💯"},
				IsTest: true,
				Since:  "0.1.0",
			},
			{
				Desc:   "Text between escapes is kept",
				Input:  []string{`x\u{61}y`},
				Output: []string{"xay"},
				IsTest: true,
				Since:  "0.1.0",
			},
		}),
	}
}

func s2u(m *schema.Matches) ([]string, error) {
	in := m.Value("INPUT")
	var b strings.Builder
	switch m.Value("format") {
	case formatUTF8:
		return []string{hexutil.Encode([]byte(in))}, nil
	case formatUTF16:
		units := utf16.Encode([]rune(in))
		out := make([]byte, 0, 2*len(units))
		for _, u := range units {
			out = append(out, byte(u>>8), byte(u))
		}
		return []string{hexutil.Encode(out)}, nil
	case formatName:
		out := make([]string, 0, utf8.RuneCountInString(in))
		for _, r := range in {
			out = append(out, runenames.Name(r))
		}
		return out, nil
	case formatHTML:
		for _, r := range in {
			fmt.Fprintf(&b, "&#x%x;", r)
		}
	case formatHTMLD:
		for _, r := range in {
			fmt.Fprintf(&b, "&#%d;", r)
		}
	default:
		for _, r := range in {
			fmt.Fprintf(&b, `\u{%x}`, r)
		}
	}
	return []string{b.String()}, nil
}

var (
	rustEscape = regexp.MustCompile(`\\u\{([0-9a-fA-F]{1,6})\}`)
	htmlHex    = regexp.MustCompile(`&#[xX]([0-9a-fA-F]{1,6});`)
	htmlDec    = regexp.MustCompile(`&#([0-9]{1,7});`)
)

func u2s(m *schema.Matches) ([]string, error) {
	in := m.Value("INPUT")
	switch m.Value("format") {
	case formatUTF8:
		b, err := hexutil.Decode(in)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(b) {
			return nil, e.New(e.ErrInvalidEncoding, "invalid UTF-8").WithContext("input", in)
		}
		return []string{string(b)}, nil
	case formatUTF16:
		b, err := hexutil.Decode(in)
		if err != nil {
			return nil, err
		}
		if len(b)%2 != 0 {
			return nil, e.Newf(e.ErrInvalidLength, "UTF-16 input must be an even number of bytes, got %d", len(b))
		}
		units := make([]uint16, len(b)/2)
		for i := range units {
			units[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
		}
		if err := checkSurrogates(units); err != nil {
			return nil, err
		}
		return []string{string(utf16.Decode(units))}, nil
	case formatHTML:
		return replace(in, htmlHex, 16)
	case formatHTMLD:
		return replace(in, htmlDec, 10)
	default:
		return replace(in, rustEscape, 16)
	}
}

// replace substitutes every escape matched by re with its code point
func replace(in string, re *regexp.Regexp, base int) ([]string, error) {
	var err error
	out := re.ReplaceAllStringFunc(in, func(match string) string {
		digits := re.FindStringSubmatch(match)[1]
		n, perr := strconv.ParseUint(digits, base, 32)
		if perr != nil || n > utf8.MaxRune || (n >= 0xd800 && n <= 0xdfff) {
			if err == nil {
				err = e.Newf(e.ErrInvalidInput, "invalid code point %s", match)
			}
			return match
		}
		return string(rune(n))
	})
	if err != nil {
		return nil, err
	}
	return []string{out}, nil
}

// checkSurrogates rejects unpaired surrogates, which utf16.Decode would
// silently turn into U+FFFD.
func checkSurrogates(units []uint16) error {
	for i := 0; i < len(units); i++ {
		if !utf16.IsSurrogate(rune(units[i])) {
			continue
		}
		if i+1 < len(units) && utf16.DecodeRune(rune(units[i]), rune(units[i+1])) != utf8.RuneError {
			i++
			continue
		}
		return e.Newf(e.ErrInvalidEncoding, "unpaired UTF-16 surrogate 0x%04x at unit %d", units[i], i)
	}
	return nil
}
