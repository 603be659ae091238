package ecdsa

import (
	"strings"
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

func TestSignVerifyRoundTrip(t *testing.T) {
	for name := range curves {
		for _, compress := range []bool{false, true} {
			genArgs := []string{"-c", name}
			if compress {
				genArgs = append(genArgs, "-C")
			}
			keys, err := run(t, "ec_gen", genArgs...)
			if err != nil {
				t.Fatalf("%s: ec_gen: %v", name, err)
			}
			if len(keys) != 2 {
				t.Fatalf("%s: ec_gen printed %d lines", name, len(keys))
			}
			pub, err := run(t, "ec_pk", append(genArgs, keys[0])...)
			if err != nil || pub[0] != keys[1] {
				t.Fatalf("%s: ec_pk = %v, %v, want %s", name, pub, err, keys[1])
			}
			sig, err := run(t, "ec_sign", "-c", name, "-s", keys[0], digestABC)
			if err != nil {
				t.Fatalf("%s: ec_sign: %v", name, err)
			}
			got, err := run(t, "ec_verify", "-c", name, "-p", keys[1], "-S", sig[0], digestABC)
			if err != nil || got[0] != "true" {
				t.Errorf("%s: ec_verify = %v, %v", name, got, err)
			}

			tampered := strings.Replace(digestABC, "ba78", "ba79", 1)
			_, err = run(t, "ec_verify", "-c", name, "-p", keys[1], "-S", sig[0], tampered)
			if e.CodeOf(err) != e.ErrVerifyFailed {
				t.Errorf("%s: tampered digest error = %v, want %s", name, err, e.ErrVerifyFailed)
			}
		}
	}
}

func TestSecp256k1Deterministic(t *testing.T) {
	first, err := run(t, "ec_sign", "-s", secretTwo, digestABC)
	if err != nil {
		t.Fatal(err)
	}
	second, err := run(t, "ec_sign", "-s", secretTwo, digestABC)
	if err != nil {
		t.Fatal(err)
	}
	if first[0] != second[0] {
		t.Errorf("signatures differ: %s vs %s", first[0], second[0])
	}
}

func TestErrors(t *testing.T) {
	const n = "0xfffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"
	tests := []struct {
		name  string
		cmd   string
		input []string
		code  e.ErrorCode
	}{
		{"short secret", "ec_pk", []string{"0x01"}, e.ErrInvalidLength},
		{"zero secret", "ec_pk", []string{"0x" + strings.Repeat("0", 64)}, e.ErrInvalidKey},
		{"secret equal to the order", "ec_pk", []string{n}, e.ErrInvalidKey},
		{"zero p256 secret", "ec_pk", []string{"-c", "p256", "0x" + strings.Repeat("0", 64)}, e.ErrInvalidKey},
		{"p521 secret size", "ec_pk", []string{"-c", "p521", secretOne}, e.ErrInvalidLength},
		{"missing secret", "ec_sign", []string{digestABC}, e.ErrInvalidLength},
		{"bad public key", "ec_verify", []string{"-p", "0x0400", "-S", "0x3000", digestABC}, e.ErrInvalidKey},
		{"bad p256 public key", "ec_verify", []string{"-c", "p256", "-p", "0x0400", "-S", "0x3000", digestABC}, e.ErrInvalidKey},
		{"bad DER", "ec_verify", []string{"-p", "0x0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798", "-S", "0x3000", digestABC}, e.ErrInvalidEncoding},
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
