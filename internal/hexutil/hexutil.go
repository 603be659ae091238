// Package hexutil parses and prints the 0x-prefixed hex strings bytekit
// commands use for binary input and output.
package hexutil

import (
	"encoding/hex"
	"strings"

	e "bytekit/pkg/errors"
)

// Decode parses hex with an optional 0x prefix. Surrounding whitespace is
// ignored; an empty string decodes to no bytes.
func Decode(s string) ([]byte, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "0x"), "0X")
	if len(raw)%2 != 0 {
		return nil, e.Newf(e.ErrInvalidHex, "invalid hex: odd length %d", len(raw)).
			WithContext("input", s)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return nil, e.New(e.ErrInvalidHex, "invalid hex").WithCause(err).WithContext("input", s)
	}
	return b, nil
}

// DecodeLen parses hex and requires exactly n bytes.
func DecodeLen(s string, n int, what string) ([]byte, error) {
	b, err := Decode(s)
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, e.Newf(e.ErrInvalidLength, "%s must be %d bytes, got %d", what, n, len(b))
	}
	return b, nil
}

// Encode prints bytes as lowercase 0x-prefixed hex
func Encode(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}
