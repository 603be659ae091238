package aes

import (
	"testing"

	"bytekit/internal/module"
	e "bytekit/pkg/errors"
)

func run(t *testing.T, name string, input ...string) ([]string, error) {
	t.Helper()
	for _, c := range Module().Commands() {
		if c.Schema().Name == name {
			return module.RunCase(c, module.Case{Input: input})
		}
	}
	t.Fatalf("command %s not found", name)
	return nil, nil
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{"0x", "0x00", "0x000102030405060708090a0b0c0d0e0f", "0x000102030405060708090a0b0c0d0e0f10"}
	for _, mode := range []string{modeECB, modeCBC, modeCTR} {
		for _, in := range inputs {
			flags := []string{"-k", key128, "-m", mode, "-i", iv}
			enc, err := run(t, "aes_enc", append(flags, in)...)
			if err != nil {
				t.Fatalf("%s encrypt %s: %v", mode, in, err)
			}
			dec, err := run(t, "aes_dec", append(flags, enc[0])...)
			if err != nil {
				t.Fatalf("%s decrypt %s: %v", mode, enc[0], err)
			}
			if dec[0] != in {
				t.Errorf("%s round trip %s = %s", mode, in, dec[0])
			}
		}
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name  string
		cmd   string
		input []string
		code  e.ErrorCode
	}{
		{"short key", "aes_enc", []string{"-k", "0x0011", "-m", "ecb", "0x00"}, e.ErrInvalidKey},
		{"missing key", "aes_enc", []string{"-m", "ecb", "0x00"}, e.ErrInvalidKey},
		{"missing iv", "aes_enc", []string{"-k", key128, "0x00"}, e.ErrInvalidLength},
		{"bad iv", "aes_enc", []string{"-k", key128, "-i", "0xzz", "0x00"}, e.ErrInvalidHex},
		{"unpadded partial block", "aes_enc", []string{"-k", key128, "-m", "ecb", "-p", "none", "0x00"}, e.ErrInvalidLength},
		{"ciphertext not block aligned", "aes_dec", []string{"-k", key128, "-i", iv, "0x00"}, e.ErrInvalidLength},
		{"empty padded ciphertext", "aes_dec", []string{"-k", key128, "-i", iv, "0x"}, e.ErrInvalidLength},
		{"bad padding", "aes_dec", []string{"-k", key128, "-m", "ecb", "0x3ad77bb40d7a3660a89ecaf32466ef97"}, e.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.cmd, tt.input...)
			if e.CodeOf(err) != tt.code {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestPad(t *testing.T) {
	for n := 0; n <= 32; n++ {
		padded := pad(make([]byte, n))
		if len(padded)%16 != 0 || len(padded) <= n {
			t.Fatalf("pad(%d) gave %d bytes", n, len(padded))
		}
		back, err := unpad(padded)
		if err != nil || len(back) != n {
			t.Errorf("unpad(pad(%d)) = %d bytes, %v", n, len(back), err)
		}
	}
}
