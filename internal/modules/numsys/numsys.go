// Package numsys prints a number in decimal, octal, hex and binary.
package numsys

import (
	"math/big"
	"strings"

	"bytekit/internal/module"
	"bytekit/internal/schema"
	e "bytekit/pkg/errors"
)

// Module returns the number system module
func Module() module.Module {
	return module.Module{
		Name:        "number_system",
		Description: "Number system conversion",
		Commands:    commands,
	}
}

type radix struct {
	flag   string
	prefix string
	base   int
}

var radixes = []radix{
	{"decimal", "", 10},
	{"octal", "0o", 8},
	{"hexadecimal", "0x", 16},
	{"binary", "0b", 2},
}

func commands() []module.Command {
	return []module.Command{
		module.NewCommand(&schema.Schema{
			Name:  "ns",
			Short: "Number system",
			Long:  "Prints every representation unless one or more of -d, -o, -x, -b is given.",
			Flags: []schema.Flag{
				{Name: "decimal", Short: "d", Help: "Output decimal", Bool: true},
				{Name: "octal", Short: "o", Help: "Output octal", Bool: true},
				{Name: "hexadecimal", Short: "x", Help: "Output hexadecimal", Bool: true},
				{Name: "binary", Short: "b", Help: "Output binary", Bool: true},
			},
			Args: []schema.Arg{{Name: "INPUT", Help: "Number with optional 0b, 0o or 0x prefix", Required: true, Stdin: true}},
		}, ns, []module.Case{
			{
				Desc:      "Output decimal, octal, hexadecimal and binary",
				Input:     []string{"256"},
				Output:    []string{"256", "0o400", "0x100", "0b100000000"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:      "Output hexadecimal",
				Input:     []string{"-x", "256"},
				Output:    []string{"0x100"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:      "Convert binary to decimal",
				Input:     []string{"-d", "0b11"},
				Output:    []string{"3"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:   "Convert hexadecimal to octal and binary",
				Input:  []string{"-o", "-b", "0x100"},
				Output: []string{"0o400", "0b100000000"},
				IsTest: true,
				Since:  "0.1.0",
			},
			{
				Desc:   "Leading zeros stay decimal",
				Input:  []string{"-d", "010"},
				Output: []string{"10"},
				IsTest: true,
				Since:  "0.6.0",
			},
			{
				Desc:   "Beyond 64 bits",
				Input:  []string{"-x", "18446744073709551616"},
				Output: []string{"0x10000000000000000"},
				IsTest: true,
				Since:  "0.3.0",
			},
		}),
	}
}

func ns(m *schema.Matches) ([]string, error) {
	in := strings.TrimSpace(m.Value("INPUT"))
	n, err := parse(in)
	if err != nil {
		return nil, err
	}
	selected := make([]radix, 0, len(radixes))
	for _, r := range radixes {
		if m.Bool(r.flag) {
			selected = append(selected, r)
		}
	}
	if len(selected) == 0 {
		selected = radixes
	}
	out := make([]string, 0, len(selected))
	for _, r := range selected {
		out = append(out, format(n, r))
	}
	return out, nil
}

// parse reads an optionally signed number; 0b, 0o and 0x select the base,
// anything else is decimal.
func parse(in string) (*big.Int, error) {
	digits, neg := in, false
	if rest, ok := strings.CutPrefix(digits, "-"); ok {
		digits, neg = rest, true
	} else {
		digits = strings.TrimPrefix(digits, "+")
	}
	base := 10
	for _, r := range radixes[1:] {
		if len(digits) > len(r.prefix) && strings.EqualFold(digits[:len(r.prefix)], r.prefix) {
			digits, base = digits[len(r.prefix):], r.base
			break
		}
	}
	if digits == "" || strings.ContainsAny(digits[:1], "+-") {
		return nil, e.Newf(e.ErrInvalidNumber, "invalid number %q", in)
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, e.Newf(e.ErrInvalidNumber, "invalid number %q", in).
			WithSuggestion("Numbers are decimal unless prefixed with 0b, 0o or 0x")
	}
	if neg {
		n.Neg(n)
	}
	return n, nil
}

func format(n *big.Int, r radix) string {
	if n.Sign() < 0 {
		return "-" + r.prefix + new(big.Int).Neg(n).Text(r.base)
	}
	return r.prefix + n.Text(r.base)
}
