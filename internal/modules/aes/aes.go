// Package aes encrypts and decrypts with AES in ECB, CBC or CTR mode.
package aes

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"

	"bytekit/internal/hexutil"
	"bytekit/internal/module"
	"bytekit/internal/schema"
	e "bytekit/pkg/errors"
)

// Module returns the aes module
func Module() module.Module {
	return module.Module{
		Name:        "aes",
		Description: "AES encrypt / decrypt",
		Commands:    commands,
	}
}

const (
	modeECB = "ecb"
	modeCBC = "cbc"
	modeCTR = "ctr"

	paddingPKCS7 = "pkcs7"
	paddingNone  = "none"
)

func flags() []schema.Flag {
	return []schema.Flag{
		{Name: "key", Short: "k", Help: "Key (hex, 16, 24 or 32 bytes)"},
		{Name: "mode", Short: "m", Help: "Block mode", Default: modeCBC, Values: []string{modeECB, modeCBC, modeCTR}},
		{Name: "iv", Short: "i", Help: "IV or initial counter block (hex, 16 bytes)"},
		{Name: "padding", Short: "p", Help: "Padding, ignored in ctr mode", Default: paddingPKCS7, Values: []string{paddingPKCS7, paddingNone}},
	}
}

const (
	key128 = "0x2b7e151628aed2a6abf7158809cf4f3c"
	iv     = "0x000102030405060708090a0b0c0d0e0f"
)

func commands() []module.Command {
	return []module.Command{
		module.NewCommand(&schema.Schema{
			Name:  "aes_enc",
			Short: "AES encrypt",
			Flags: flags(),
			Args:  []schema.Arg{{Name: "INPUT", Help: "Plaintext (hex)", Required: true, Stdin: true}},
		}, encrypt, []module.Case{
			{
				Desc:      "AES-128 CBC with PKCS#7 padding",
				Input:     []string{"-k", key128, "-i", iv, "0x68656c6c6f"},
				Output:    []string{"0xd8666ea8aad65cc08354b4bc43d4ff56"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.3.0",
			},
			{
				Desc:      "AES-128 ECB",
				Input:     []string{"-k", key128, "-m", "ecb", "0x68656c6c6f"},
				Output:    []string{"0x54116e8bb5470e432b4a6debc243a7ec"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.3.0",
			},
			{
				Desc:      "AES-128 CTR",
				Input:     []string{"-k", key128, "-m", "ctr", "-i", iv, "0x68656c6c6f"},
				Output:    []string{"0x389b0ba0f6"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.3.0",
			},
			{
				Desc:   "AES-256 CBC",
				Input:  []string{"-k", key128 + key128[2:], "-i", iv, "0x68656c6c6f"},
				Output: []string{"0x603915e663334df129adf8829838461c"},
				IsTest: true,
				Since:  "0.3.0",
			},
			{
				Desc:   "AES-128 ECB without padding",
				Input:  []string{"-k", key128, "-m", "ecb", "-p", "none", "0x6bc1bee22e409f96e93d7e117393172a"},
				Output: []string{"0x3ad77bb40d7a3660a89ecaf32466ef97"},
				IsTest: true,
				Since:  "0.3.0",
			},
			{
				Desc:   "AES-128 CBC without padding",
				Input:  []string{"-k", key128, "-i", iv, "-p", "none", "0x6bc1bee22e409f96e93d7e117393172a"},
				Output: []string{"0x7649abac8119b246cee98e9b12e9197d"},
				IsTest: true,
				Since:  "0.3.0",
			},
			{
				Desc:   "AES-128 CTR with a counter block",
				Input:  []string{"-k", key128, "-m", "ctr", "-i", "0xf0f1f2f3f4f5f6f7f8f9fafbfcfdfeff", "0x6bc1bee22e409f96e93d7e117393172a"},
				Output: []string{"0x874d6191b620e3261bef6864990db6ce"},
				IsTest: true,
				Since:  "0.3.0",
			},
		}),
		module.NewCommand(&schema.Schema{
			Name:  "aes_dec",
			Short: "AES decrypt",
			Flags: flags(),
			Args:  []schema.Arg{{Name: "INPUT", Help: "Ciphertext (hex)", Required: true, Stdin: true}},
		}, decrypt, []module.Case{
			{
				Desc:      "AES-128 CBC with PKCS#7 padding",
				Input:     []string{"-k", key128, "-i", iv, "0xd8666ea8aad65cc08354b4bc43d4ff56"},
				Output:    []string{"0x68656c6c6f"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.3.0",
			},
			{
				Desc:      "AES-128 ECB",
				Input:     []string{"-k", key128, "-m", "ecb", "0x54116e8bb5470e432b4a6debc243a7ec"},
				Output:    []string{"0x68656c6c6f"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.3.0",
			},
			{
				Desc:      "AES-128 CTR",
				Input:     []string{"-k", key128, "-m", "ctr", "-i", iv, "0x389b0ba0f6"},
				Output:    []string{"0x68656c6c6f"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.3.0",
			},
			{
				Desc:   "AES-256 CBC",
				Input:  []string{"-k", key128 + key128[2:], "-i", iv, "0x603915e663334df129adf8829838461c"},
				Output: []string{"0x68656c6c6f"},
				IsTest: true,
				Since:  "0.3.0",
			},
			{
				Desc:   "AES-128 CBC without padding",
				Input:  []string{"-k", key128, "-i", iv, "-p", "none", "0x7649abac8119b246cee98e9b12e9197d"},
				Output: []string{"0x6bc1bee22e409f96e93d7e117393172a"},
				IsTest: true,
				Since:  "0.3.0",
			},
		}),
	}
}

type params struct {
	block   cipher.Block
	mode    string
	iv      []byte
	padding bool
	input   []byte
}

func parse(m *schema.Matches) (*params, error) {
	key, err := hexutil.Decode(m.Value("key"))
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, e.Newf(e.ErrInvalidKey, "key must be 16, 24 or 32 bytes, got %d", len(key)).
			WithSuggestion("Pass the key as hex with -k")
	}
	p := &params{block: block, mode: m.Value("mode"), padding: m.Value("padding") == paddingPKCS7}
	if p.mode != modeECB {
		if p.iv, err = hexutil.DecodeLen(m.Value("iv"), aes.BlockSize, "iv"); err != nil {
			return nil, err
		}
	}
	if p.input, err = hexutil.Decode(m.Value("INPUT")); err != nil {
		return nil, err
	}
	return p, nil
}

func encrypt(m *schema.Matches) ([]string, error) {
	p, err := parse(m)
	if err != nil {
		return nil, err
	}
	if p.mode == modeCTR {
		out := make([]byte, len(p.input))
		cipher.NewCTR(p.block, p.iv).XORKeyStream(out, p.input)
		return []string{hexutil.Encode(out)}, nil
	}
	plain := p.input
	if p.padding {
		plain = pad(plain)
	} else if len(plain)%aes.BlockSize != 0 {
		return nil, blockLengthError(len(plain))
	}
	out := make([]byte, len(plain))
	if p.mode == modeCBC {
		cipher.NewCBCEncrypter(p.block, p.iv).CryptBlocks(out, plain)
	} else {
		for i := 0; i < len(plain); i += aes.BlockSize {
			p.block.Encrypt(out[i:i+aes.BlockSize], plain[i:i+aes.BlockSize])
		}
	}
	return []string{hexutil.Encode(out)}, nil
}

func decrypt(m *schema.Matches) ([]string, error) {
	p, err := parse(m)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(p.input))
	if p.mode == modeCTR {
		cipher.NewCTR(p.block, p.iv).XORKeyStream(out, p.input)
		return []string{hexutil.Encode(out)}, nil
	}
	if len(p.input)%aes.BlockSize != 0 || (p.padding && len(p.input) == 0) {
		return nil, blockLengthError(len(p.input))
	}
	if p.mode == modeCBC {
		cipher.NewCBCDecrypter(p.block, p.iv).CryptBlocks(out, p.input)
	} else {
		for i := 0; i < len(out); i += aes.BlockSize {
			p.block.Decrypt(out[i:i+aes.BlockSize], p.input[i:i+aes.BlockSize])
		}
	}
	if p.padding {
		if out, err = unpad(out); err != nil {
			return nil, err
		}
	}
	return []string{hexutil.Encode(out)}, nil
}

func blockLengthError(n int) error {
	return e.Newf(e.ErrInvalidLength, "input must be a multiple of %d bytes, got %d", aes.BlockSize, n).
		WithSuggestion("Use -p pkcs7 or the ctr mode for arbitrary lengths")
}

func pad(b []byte) []byte {
	n := aes.BlockSize - len(b)%aes.BlockSize
	return append(bytes.Clone(b), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) ||
		!bytes.Equal(b[len(b)-n:], bytes.Repeat([]byte{byte(n)}, n)) {
		return nil, e.New(e.ErrInvalidInput, "invalid PKCS#7 padding").
			WithSuggestion("Check the key and IV, or decrypt with -p none")
	}
	return b[:len(b)-n], nil
}
