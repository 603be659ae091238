// Package numcodec encodes unsigned integers the way the SCALE codec does:
// fixed width little-endian, or the variable length compact form.
package numcodec

import (
	"math/big"
	"slices"
	"strings"

	"bytekit/internal/hexutil"
	"bytekit/internal/module"
	"bytekit/internal/schema"
	e "bytekit/pkg/errors"
)

// Module returns the number codec module
func Module() module.Module {
	return module.Module{
		Name:        "number_codec",
		Description: "Number encode / decode",
		Commands:    commands,
	}
}

const compact = "c"

// widths maps a fixed type to its size in bytes
var widths = map[string]int{"u8": 1, "u16": 2, "u32": 4, "u64": 8, "u128": 16}

var typeFlag = schema.Flag{
	Name:    "type",
	Short:   "t",
	Help:    "Number type",
	Default: "u64",
	Values:  []string{"u8", "u16", "u32", "u64", "u128", compact},
}

// largest compact value: 4 + 63 bytes of payload
var maxCompact = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 8*67), big.NewInt(1))

func commands() []module.Command {
	return []module.Command{
		module.NewCommand(&schema.Schema{
			Name:  "ne",
			Short: "Number encode",
			Flags: []schema.Flag{typeFlag},
			Args:  []schema.Arg{{Name: "INPUT", Help: "Unsigned number", Required: true, Stdin: true}},
		}, ne, []module.Case{
			{
				Desc:      "Encode u8",
				Input:     []string{"-t", "u8", "1"},
				Output:    []string{"0x01"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:      "Encode u16",
				Input:     []string{"-t", "u16", "1"},
				Output:    []string{"0x0100"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:   "Encode u32",
				Input:  []string{"-t", "u32", "1"},
				Output: []string{"0x01000000"},
				IsTest: true,
				Since:  "0.1.0",
			},
			{
				Desc:   "Encode u64",
				Input:  []string{"-t", "u64", "1"},
				Output: []string{"0x0100000000000000"},
				IsTest: true,
				Since:  "0.1.0",
			},
			{
				Desc:   "Encode u128",
				Input:  []string{"-t", "u128", "1"},
				Output: []string{"0x01000000000000000000000000000000"},
				IsTest: true,
				Since:  "0.1.0",
			},
			{
				Desc:      "Encode compact",
				Input:     []string{"-t", "c", "6"},
				Output:    []string{"0x18"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:   "Encode compact two byte mode",
				Input:  []string{"-t", "c", "64"},
				Output: []string{"0x0101"},
				IsTest: true,
				Since:  "0.1.0",
			},
			{
				Desc:   "Encode compact four byte mode",
				Input:  []string{"-t", "c", "65535"},
				Output: []string{"0xfeff0300"},
				IsTest: true,
				Since:  "0.1.0",
			},
			{
				Desc:   "Encode compact big integer mode",
				Input:  []string{"-t", "c", "1073741824"},
				Output: []string{"0x0300000040"},
				IsTest: true,
				Since:  "0.1.0",
			},
		}),
		module.NewCommand(&schema.Schema{
			Name:  "nd",
			Short: "Number decode",
			Flags: []schema.Flag{typeFlag},
			Args:  []schema.Arg{{Name: "INPUT", Help: "Encoded hex", Required: true, Stdin: true}},
		}, nd, []module.Case{
			{
				Desc:      "Decode u8",
				Input:     []string{"-t", "u8", "0x01"},
				Output:    []string{"1"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:      "Decode u16",
				Input:     []string{"-t", "u16", "0x0100"},
				Output:    []string{"1"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:   "Decode u128",
				Input:  []string{"-t", "u128", "0x01000000000000000000000000000000"},
				Output: []string{"1"},
				IsTest: true,
				Since:  "0.1.0",
			},
			{
				Desc:      "Decode compact",
				Input:     []string{"-t", "c", "0x18"},
				Output:    []string{"6"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:   "Decode compact four byte mode",
				Input:  []string{"-t", "c", "0xfeff0300"},
				Output: []string{"65535"},
				IsTest: true,
				Since:  "0.1.0",
			},
			{
				Desc:   "Decode compact big integer mode",
				Input:  []string{"-t", "c", "0x0300000040"},
				Output: []string{"1073741824"},
				IsTest: true,
				Since:  "0.1.0",
			},
		}),
	}
}

func ne(m *schema.Matches) ([]string, error) {
	in := strings.TrimSpace(m.Value("INPUT"))
	n, ok := new(big.Int).SetString(in, 10)
	if !ok || n.Sign() < 0 {
		return nil, e.Newf(e.ErrInvalidNumber, "invalid unsigned number %q", in)
	}
	typ := m.Value("type")
	if typ == compact {
		b, err := encodeCompact(n)
		if err != nil {
			return nil, err
		}
		return []string{hexutil.Encode(b)}, nil
	}
	width := widths[typ]
	if n.BitLen() > width*8 {
		return nil, e.Newf(e.ErrInvalidNumber, "%s overflows %s", in, typ)
	}
	return []string{hexutil.Encode(littleEndian(n, width))}, nil
}

func nd(m *schema.Matches) ([]string, error) {
	b, err := hexutil.Decode(m.Value("INPUT"))
	if err != nil {
		return nil, err
	}
	typ := m.Value("type")
	if typ == compact {
		n, err := decodeCompact(b)
		if err != nil {
			return nil, err
		}
		return []string{n.String()}, nil
	}
	if width := widths[typ]; len(b) != width {
		return nil, e.Newf(e.ErrInvalidLength, "%s must be %d bytes, got %d", typ, width, len(b))
	}
	return []string{fromLittleEndian(b).String()}, nil
}

func littleEndian(n *big.Int, width int) []byte {
	b := n.FillBytes(make([]byte, width))
	slices.Reverse(b)
	return b
}

func fromLittleEndian(b []byte) *big.Int {
	be := slices.Clone(b)
	slices.Reverse(be)
	return new(big.Int).SetBytes(be)
}

func encodeCompact(n *big.Int) ([]byte, error) {
	switch {
	case n.BitLen() <= 6:
		return []byte{byte(n.Uint64() << 2)}, nil
	case n.BitLen() <= 14:
		return littleEndian(big.NewInt(int64(n.Uint64()<<2|0b01)), 2), nil
	case n.BitLen() <= 30:
		return littleEndian(big.NewInt(int64(n.Uint64()<<2|0b10)), 4), nil
	case n.Cmp(maxCompact) > 0:
		return nil, e.New(e.ErrInvalidNumber, "number too large for compact encoding")
	}
	size := max((n.BitLen()+7)/8, 4)
	return append([]byte{byte(size-4)<<2 | 0b11}, littleEndian(n, size)...), nil
}

func decodeCompact(b []byte) (*big.Int, error) {
	if len(b) == 0 {
		return nil, e.New(e.ErrInvalidLength, "empty compact input")
	}
	want := 0
	switch b[0] & 0b11 {
	case 0b00:
		want = 1
	case 0b01:
		want = 2
	case 0b10:
		want = 4
	default:
		want = int(b[0]>>2) + 5
	}
	if len(b) != want {
		return nil, e.Newf(e.ErrInvalidLength, "compact input must be %d bytes, got %d", want, len(b))
	}
	if want > 4 {
		return fromLittleEndian(b[1:]), nil
	}
	return new(big.Int).Rsh(fromLittleEndian(b), 2), nil
}
