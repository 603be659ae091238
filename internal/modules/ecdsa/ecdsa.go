// Package ecdsa generates keys, signs digests and verifies DER signatures
// on the NIST curves and secp256k1.
package ecdsa

import (
	"slices"

	"bytekit/internal/hexutil"
	"bytekit/internal/module"
	"bytekit/internal/schema"
	e "bytekit/pkg/errors"
)

// Module returns the ecdsa module
func Module() module.Module {
	return module.Module{
		Name:        "ecdsa",
		Description: "ECDSA key generation, signing and verification",
		Commands:    commands,
	}
}

const (
	secretOne = "0x0000000000000000000000000000000000000000000000000000000000000001"
	secretTwo = "0x0000000000000000000000000000000000000000000000000000000000000002"

	// sha256("abc")
	digestABC = "0xba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
)

func curveFlag() schema.Flag {
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	slices.Sort(names)
	return schema.Flag{Name: "curve", Short: "c", Help: "Curve", Default: "secp256k1", Values: names}
}

var compressFlag = schema.Flag{Name: "compress", Short: "C", Help: "Print the compressed public key", Bool: true}

func commands() []module.Command {
	return []module.Command{
		module.NewCommand(&schema.Schema{
			Name:  "ec_gen",
			Short: "Generate a key pair",
			Long:  "Prints the secret key, then the public key.",
			Flags: []schema.Flag{curveFlag(), compressFlag},
		}, gen, []module.Case{
			{
				Desc:  "Generate a secp256k1 key pair",
				Input: []string{"-c", "secp256k1", "-C"},
				Output: []string{
					"0xc2b7f5a1d4a0f24bfb1c1d7b76b0f4fd0e2e3da9b0a5d4fa60b9c95e8a1c3f27",
					"0x02c6cb9e7555aae9f97a44d437e66bf2d3c40ad067c2b5ab0df68ef4633572d0a4",
				},
				IsExample: true,
				Since:     "0.3.0",
			},
		}),
		module.NewCommand(&schema.Schema{
			Name:  "ec_pk",
			Short: "Derive the public key",
			Flags: []schema.Flag{curveFlag(), compressFlag},
			Args:  []schema.Arg{{Name: "SECRET", Help: "Secret key (hex)", Required: true, Stdin: true}},
		}, pk, []module.Case{
			{
				Desc:      "secp256k1 public key",
				Input:     []string{"-c", "secp256k1", secretOne},
				Output:    []string{"0x0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.3.0",
			},
			{
				Desc:      "Compressed secp256k1 public key",
				Input:     []string{"-c", "secp256k1", "-C", secretOne},
				Output:    []string{"0x0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.3.0",
			},
			{
				Desc:   "secp256k1 public key of 2",
				Input:  []string{secretTwo},
				Output: []string{"0x04c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee51ae168fea63dc339a3c58419466ceaeef7f632653266d0e1236431a950cfe52a"},
				IsTest: true,
				Since:  "0.3.0",
			},
			{
				Desc:      "P-256 public key",
				Input:     []string{"-c", "p256", secretOne},
				Output:    []string{"0x046b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c2964fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.3.0",
			},
			{
				Desc:   "Compressed P-256 public key",
				Input:  []string{"-c", "p256", "-C", secretOne},
				Output: []string{"0x036b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296"},
				IsTest: true,
				Since:  "0.3.0",
			},
			{
				Desc:   "P-256 public key of 2",
				Input:  []string{"-c", "p256", secretTwo},
				Output: []string{"0x047cf27b188d034f7e8a52380304b51ac3c08969e277f21b35a60b48fc4766997807775510db8ed040293d9ac69f7430dbba7dade63ce982299e04b79d227873d1"},
				IsTest: true,
				Since:  "0.3.0",
			},
		}),
		module.NewCommand(&schema.Schema{
			Name:  "ec_sign",
			Short: "Sign a digest",
			Long:  "Prints a DER encoded signature. secp256k1 signatures are deterministic (RFC 6979).",
			Flags: []schema.Flag{curveFlag(), {Name: "secret_key", Short: "s", Help: "Secret key (hex)"}},
			Args:  []schema.Arg{{Name: "DIGEST", Help: "Message digest (hex)", Required: true, Stdin: true}},
		}, sign, []module.Case{
			{
				Desc:      "Sign with P-256",
				Input:     []string{"-c", "p256", "-s", secretTwo, digestABC},
				Output:    []string{"0x30450221008e533b6fa0bf7b4625bb30667c01fb607ef9f8b8a80fef5b300628703187b2a30220434d81f21dc940ec5d3ecdf3e7abba69cfb59e278e9a315502df9dc0554b5ab5"},
				IsExample: true,
				Since:     "0.3.0",
			},
		}),
		module.NewCommand(&schema.Schema{
			Name:  "ec_verify",
			Short: "Verify a signature",
			Long:  "Prints true for a valid signature and fails otherwise.",
			Flags: []schema.Flag{
				curveFlag(),
				{Name: "public_key", Short: "p", Help: "Public key (hex, compressed or uncompressed)"},
				{Name: "sig", Short: "S", Help: "DER encoded signature (hex)"},
			},
			Args: []schema.Arg{{Name: "DIGEST", Help: "Message digest (hex)", Required: true, Stdin: true}},
		}, verify, []module.Case{
			{
				Desc: "Verify a P-256 signature",
				Input: []string{"-c", "p256",
					"-p", "0x047cf27b188d034f7e8a52380304b51ac3c08969e277f21b35a60b48fc4766997807775510db8ed040293d9ac69f7430dbba7dade63ce982299e04b79d227873d1",
					"-S", "0x30450221008e533b6fa0bf7b4625bb30667c01fb607ef9f8b8a80fef5b300628703187b2a30220434d81f21dc940ec5d3ecdf3e7abba69cfb59e278e9a315502df9dc0554b5ab5",
					digestABC},
				Output:    []string{"true"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.3.0",
			},
			{
				Desc: "Verify a secp256k1 signature with a compressed key",
				Input: []string{"-c", "secp256k1",
					"-p", "0x02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5",
					"-S", "0x304402205cbdf0646e5db4eaa398f365f2ea7a0e3d419b7e0330e39ce92bddedcac4f9bc022059b5235ca1ad5164813505aa9bee27bfd799ec37c1adfbb977bf4cd3c3649cea",
					digestABC},
				Output:    []string{"true"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.3.0",
			},
		}),
	}
}

func gen(m *schema.Matches) ([]string, error) {
	c := curves[m.Value("curve")]
	secret, err := c.generate()
	if err != nil {
		return nil, err
	}
	pub, err := c.publicKey(secret, m.Bool("compress"))
	if err != nil {
		return nil, err
	}
	return []string{hexutil.Encode(secret), hexutil.Encode(pub)}, nil
}

func secret(m *schema.Matches, flag string, c curve) ([]byte, error) {
	return hexutil.DecodeLen(m.Value(flag), c.secretSize(), "secret key")
}

func pk(m *schema.Matches) ([]string, error) {
	c := curves[m.Value("curve")]
	s, err := secret(m, "SECRET", c)
	if err != nil {
		return nil, err
	}
	pub, err := c.publicKey(s, m.Bool("compress"))
	if err != nil {
		return nil, err
	}
	return []string{hexutil.Encode(pub)}, nil
}

func sign(m *schema.Matches) ([]string, error) {
	c := curves[m.Value("curve")]
	s, err := secret(m, "secret_key", c)
	if err != nil {
		return nil, err
	}
	digest, err := hexutil.Decode(m.Value("DIGEST"))
	if err != nil {
		return nil, err
	}
	sig, err := c.sign(s, digest)
	if err != nil {
		return nil, err
	}
	return []string{hexutil.Encode(sig)}, nil
}

func verify(m *schema.Matches) ([]string, error) {
	c := curves[m.Value("curve")]
	pub, err := hexutil.Decode(m.Value("public_key"))
	if err != nil {
		return nil, err
	}
	sig, err := hexutil.Decode(m.Value("sig"))
	if err != nil {
		return nil, err
	}
	digest, err := hexutil.Decode(m.Value("DIGEST"))
	if err != nil {
		return nil, err
	}
	ok, err := c.verify(pub, sig, digest)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, e.New(e.ErrVerifyFailed, "signature verification failed")
	}
	return []string{"true"}, nil
}
