package hexutil

import (
	"bytes"
	"testing"

	e "bytekit/pkg/errors"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		in      string
		want    []byte
		wantErr e.ErrorCode
	}{
		{"0x616263", []byte("abc"), ""},
		{"616263", []byte("abc"), ""},
		{"0X6A", []byte{0x6a}, ""},
		{" 0xff\n", []byte{0xff}, ""},
		{"", []byte{}, ""},
		{"0x", []byte{}, ""},
		{"0x123", nil, e.ErrInvalidHex},
		{"zz", nil, e.ErrInvalidHex},
	}
	for _, tt := range tests {
		got, err := Decode(tt.in)
		if tt.wantErr != "" {
			if e.CodeOf(err) != tt.wantErr {
				t.Errorf("Decode(%q) error = %v, want code %s", tt.in, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("Decode(%q) error: %v", tt.in, err)
			continue
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("Decode(%q) = %x, want %x", tt.in, got, tt.want)
		}
	}
}

func TestDecodeLen(t *testing.T) {
	if _, err := DecodeLen("0x0011", 2, "iv"); err != nil {
		t.Errorf("DecodeLen() error: %v", err)
	}
	_, err := DecodeLen("0x00", 2, "iv")
	if e.CodeOf(err) != e.ErrInvalidLength {
		t.Errorf("DecodeLen() = %v, want %s", err, e.ErrInvalidLength)
	}
}

func TestEncode(t *testing.T) {
	if got := Encode([]byte("abc")); got != "0x616263" {
		t.Errorf("Encode() = %q", got)
	}
	if got := Encode(nil); got != "0x" {
		t.Errorf("Encode(nil) = %q", got)
	}
}
