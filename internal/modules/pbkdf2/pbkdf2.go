// Package pbkdf2 derives keys with PBKDF2-HMAC.
package pbkdf2

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"strconv"

	"golang.org/x/crypto/pbkdf2"

	"bytekit/internal/hexutil"
	"bytekit/internal/module"
	"bytekit/internal/schema"
	e "bytekit/pkg/errors"
)

// Module returns the pbkdf2 module
func Module() module.Module {
	return module.Module{
		Name:        "pbkdf2",
		Description: "PBKDF2 key derivation",
		Commands:    commands,
	}
}

const maxIterations = 10_000_000

var prfs = map[string]func() hash.Hash{
	"sha1":     sha1.New,
	"sha2_224": sha256.New224,
	"sha2_256": sha256.New,
	"sha2_384": sha512.New384,
	"sha2_512": sha512.New,
}

func commands() []module.Command {
	return []module.Command{
		module.NewCommand(&schema.Schema{
			Name:  "pbkdf2",
			Short: "PBKDF2",
			Flags: []schema.Flag{
				{Name: "algo", Short: "a", Help: "HMAC hash algorithm", Default: "sha2_256",
					Values: []string{"sha1", "sha2_224", "sha2_256", "sha2_384", "sha2_512"}},
				{Name: "iterations", Short: "i", Help: "Iterations", Default: "2"},
				{Name: "key_length", Short: "l", Help: "Derived key length in bytes", Default: "32"},
				{Name: "salt", Short: "s", Help: "Salt (hex)"},
			},
			Args: []schema.Arg{{Name: "INPUT", Help: "Password (hex)", Required: true, Stdin: true}},
		}, run, []module.Case{
			{
				Desc:      "PBKDF2-HMAC-SHA256",
				Input:     []string{"-a", "sha2_256", "-i", "2", "-l", "32", "-s", "0x73616c74", "0x70617373776f7264"},
				Output:    []string{"0xae4d0c95af6b46d32d0adff928f06dd02a303f8ef3c251dfd6e2d85a95474c43"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.2.0",
			},
			{
				Desc:   "PBKDF2-HMAC-SHA256, one iteration",
				Input:  []string{"-i", "1", "-s", "0x73616c74", "0x70617373776f7264"},
				Output: []string{"0x120fb6cffcf8b32c43e7225256c4f837a86548c92ccc35480805987cb70be17b"},
				IsTest: true,
				Since:  "0.2.0",
			},
			{
				Desc:   "PBKDF2-HMAC-SHA1",
				Input:  []string{"-a", "sha1", "-i", "1", "-l", "20", "-s", "0x73616c74", "0x70617373776f7264"},
				Output: []string{"0x0c60c80f961f0e71f3a9b524af6012062fe037a6"},
				IsTest: true,
				Since:  "0.2.0",
			},
			{
				Desc:   "PBKDF2-HMAC-SHA1, two iterations",
				Input:  []string{"-a", "sha1", "-i", "2", "-l", "20", "-s", "0x73616c74", "0x70617373776f7264"},
				Output: []string{"0xea6c014dc72d6f8ccd1ed92ace1d41f0d8de8957"},
				IsTest: true,
				Since:  "0.2.0",
			},
			{
				Desc:   "PBKDF2-HMAC-SHA512",
				Input:  []string{"-a", "sha2_512", "-i", "1", "-l", "64", "-s", "0x73616c74", "0x70617373776f7264"},
				Output: []string{"0x867f70cf1ade02cff3752599a3a53dc4af34c7a669815ae5d513554e1c8cf252c02d470a285a0501bad999bfe943c08f050235d7d68b1da55e63f73b60a57fce"},
				IsTest: true,
				Since:  "0.2.0",
			},
		}),
	}
}

func run(m *schema.Matches) ([]string, error) {
	iter, err := positive(m, "iterations", maxIterations)
	if err != nil {
		return nil, err
	}
	keyLen, err := positive(m, "key_length", 1<<16)
	if err != nil {
		return nil, err
	}
	salt, err := hexutil.Decode(m.Value("salt"))
	if err != nil {
		return nil, err
	}
	password, err := hexutil.Decode(m.Value("INPUT"))
	if err != nil {
		return nil, err
	}
	key := pbkdf2.Key(password, salt, iter, keyLen, prfs[m.Value("algo")])
	return []string{hexutil.Encode(key)}, nil
}

func positive(m *schema.Matches, flag string, limit int) (int, error) {
	n, err := strconv.Atoi(m.Value(flag))
	if err != nil || n < 1 || n > limit {
		return 0, e.Newf(e.ErrInvalidNumber, "--%s must be between 1 and %d", flag, limit).
			WithContext("value", m.Value(flag))
	}
	return n, nil
}
