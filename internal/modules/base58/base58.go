// Package base58 converts hex to Base58 and Base58Check and back.
package base58

import (
	"bytes"
	"crypto/sha256"
	"strings"

	b58 "github.com/mr-tron/base58"

	"bytekit/internal/hexutil"
	"bytekit/internal/module"
	"bytekit/internal/schema"
	e "bytekit/pkg/errors"
)

const checksumLen = 4

// Module returns the base58 module
func Module() module.Module {
	return module.Module{
		Name:        "base58",
		Description: "Hex / base58 conversion",
		Commands:    commands,
	}
}

func commands() []module.Command {
	return []module.Command{
		module.NewCommand(&schema.Schema{
			Name:  "h2b58",
			Short: "Convert hex to base58",
			Args:  []schema.Arg{{Name: "INPUT", Help: "Hex bytes", Required: true, Stdin: true}},
		}, h2b58, []module.Case{
			{
				Desc:      "Convert hex to base58",
				Input:     []string{"0x48656c6c6f20576f726c6421"},
				Output:    []string{"2NEpo7TZRRrLZSi2U"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:   "Leading zero bytes become 1",
				Input:  []string{"0x0000287fb4cd"},
				Output: []string{"11233QC4"},
				IsTest: true,
				Since:  "0.1.0",
			},
		}),
		module.NewCommand(&schema.Schema{
			Name:  "b582h",
			Short: "Convert base58 to hex",
			Args:  []schema.Arg{{Name: "INPUT", Help: "Base58 text", Required: true, Stdin: true}},
		}, b582h, []module.Case{
			{
				Desc:      "Convert base58 to hex",
				Input:     []string{"2NEpo7TZRRrLZSi2U"},
				Output:    []string{"0x48656c6c6f20576f726c6421"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:   "Leading 1 become zero bytes",
				Input:  []string{"11233QC4"},
				Output: []string{"0x0000287fb4cd"},
				IsTest: true,
				Since:  "0.1.0",
			},
		}),
		module.NewCommand(&schema.Schema{
			Name:  "h2b58c",
			Short: "Convert hex to base58 check",
			Args:  []schema.Arg{{Name: "INPUT", Help: "Hex payload", Required: true, Stdin: true}},
		}, h2b58c, []module.Case{
			{
				Desc:      "Convert hex to base58 check",
				Input:     []string{"0x68656c6c6f"},
				Output:    []string{"2L5B5yqsVG8Vt"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:   "Version byte 0 with an all-zero hash160",
				Input:  []string{"0x000000000000000000000000000000000000000000"},
				Output: []string{"1111111111111111111114oLvT2"},
				IsTest: true,
				Since:  "0.1.0",
			},
		}),
		module.NewCommand(&schema.Schema{
			Name:  "b58c2h",
			Short: "Convert base58 check to hex",
			Args:  []schema.Arg{{Name: "INPUT", Help: "Base58 check text", Required: true, Stdin: true}},
		}, b58c2h, []module.Case{
			{
				Desc:      "Convert base58 check to hex",
				Input:     []string{"2L5B5yqsVG8Vt"},
				Output:    []string{"0x68656c6c6f"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:   "Decode an all-zero hash160 address",
				Input:  []string{"1111111111111111111114oLvT2"},
				Output: []string{"0x000000000000000000000000000000000000000000"},
				IsTest: true,
				Since:  "0.1.0",
			},
		}),
	}
}

func h2b58(m *schema.Matches) ([]string, error) {
	b, err := hexutil.Decode(m.Value("INPUT"))
	if err != nil {
		return nil, err
	}
	return []string{b58.Encode(b)}, nil
}

func b582h(m *schema.Matches) ([]string, error) {
	b, err := decode(m.Value("INPUT"))
	if err != nil {
		return nil, err
	}
	return []string{hexutil.Encode(b)}, nil
}

func h2b58c(m *schema.Matches) ([]string, error) {
	b, err := hexutil.Decode(m.Value("INPUT"))
	if err != nil {
		return nil, err
	}
	return []string{b58.Encode(append(b, checksum(b)...))}, nil
}

func b58c2h(m *schema.Matches) ([]string, error) {
	b, err := decode(m.Value("INPUT"))
	if err != nil {
		return nil, err
	}
	if len(b) < checksumLen {
		return nil, e.Newf(e.ErrInvalidLength, "base58 check input must hold at least %d bytes", checksumLen)
	}
	payload, sum := b[:len(b)-checksumLen], b[len(b)-checksumLen:]
	if !bytes.Equal(sum, checksum(payload)) {
		return nil, e.New(e.ErrVerifyFailed, "invalid base58 check checksum")
	}
	return []string{hexutil.Encode(payload)}, nil
}

func decode(s string) ([]byte, error) {
	b, err := b58.Decode(strings.TrimSpace(s))
	if err != nil {
		return nil, e.New(e.ErrInvalidEncoding, "invalid base58").WithCause(err)
	}
	return b, nil
}

// checksum is the first four bytes of a double SHA-256
func checksum(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:checksumLen]
}
