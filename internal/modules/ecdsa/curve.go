package ecdsa

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	k1ecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	e "bytekit/pkg/errors"
)

// curve hides the difference between the NIST curves served by the
// standard library and secp256k1.
type curve interface {
	secretSize() int
	generate() ([]byte, error)
	publicKey(secret []byte, compress bool) ([]byte, error)
	sign(secret, digest []byte) ([]byte, error)
	verify(pub, sig, digest []byte) (bool, error)
}

var curves = map[string]curve{
	"p256":      nist{ecdh.P256(), elliptic.P256()},
	"p384":      nist{ecdh.P384(), elliptic.P384()},
	"p521":      nist{ecdh.P521(), elliptic.P521()},
	"secp256k1": k1{},
}

func invalidKey(what string, cause error) *e.Error {
	return e.Newf(e.ErrInvalidKey, "invalid %s", what).WithCause(cause)
}

type nist struct {
	kx     ecdh.Curve
	params elliptic.Curve
}

func (c nist) secretSize() int { return (c.params.Params().BitSize + 7) / 8 }

func (c nist) generate() ([]byte, error) {
	k, err := c.kx.GenerateKey(rand.Reader)
	if err != nil {
		return nil, e.Wrap(err, e.ErrUnknown, "generate key")
	}
	return k.Bytes(), nil
}

func (c nist) publicKey(secret []byte, compress bool) ([]byte, error) {
	k, err := c.kx.NewPrivateKey(secret)
	if err != nil {
		return nil, invalidKey("secret key", err)
	}
	pub := k.PublicKey().Bytes()
	if compress {
		size := (len(pub) - 1) / 2
		return append([]byte{2 | pub[len(pub)-1]&1}, pub[1:1+size]...), nil
	}
	return pub, nil
}

func (c nist) sign(secret, digest []byte) ([]byte, error) {
	pub, err := c.publicKey(secret, false)
	if err != nil {
		return nil, err
	}
	priv := &ecdsa.PrivateKey{PublicKey: c.affine(pub), D: new(big.Int).SetBytes(secret)}
	sig, err := ecdsa.SignASN1(rand.Reader, priv, digest)
	if err != nil {
		return nil, e.Wrap(err, e.ErrUnknown, "sign")
	}
	return sig, nil
}

func (c nist) verify(pub, sig, digest []byte) (bool, error) {
	var key ecdsa.PublicKey
	switch {
	case len(pub) > 0 && (pub[0] == 2 || pub[0] == 3):
		x, y := elliptic.UnmarshalCompressed(c.params, pub)
		if x == nil {
			return false, e.New(e.ErrInvalidKey, "invalid public key")
		}
		key = ecdsa.PublicKey{Curve: c.params, X: x, Y: y}
	default:
		if _, err := c.kx.NewPublicKey(pub); err != nil {
			return false, invalidKey("public key", err)
		}
		key = c.affine(pub)
	}
	return ecdsa.VerifyASN1(&key, digest, sig), nil
}

// affine splits an uncompressed point
func (c nist) affine(pub []byte) ecdsa.PublicKey {
	size := (len(pub) - 1) / 2
	return ecdsa.PublicKey{
		Curve: c.params,
		X:     new(big.Int).SetBytes(pub[1 : 1+size]),
		Y:     new(big.Int).SetBytes(pub[1+size:]),
	}
}

type k1 struct{}

func (k1) secretSize() int { return secp256k1.PrivKeyBytesLen }

func (k1) generate() ([]byte, error) {
	k, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, e.Wrap(err, e.ErrUnknown, "generate key")
	}
	return k.Serialize(), nil
}

func (k1) private(secret []byte) (*secp256k1.PrivateKey, error) {
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(secret); overflow || s.IsZero() {
		return nil, e.New(e.ErrInvalidKey, "invalid secret key: out of range for secp256k1")
	}
	return secp256k1.NewPrivateKey(&s), nil
}

func (c k1) publicKey(secret []byte, compress bool) ([]byte, error) {
	k, err := c.private(secret)
	if err != nil {
		return nil, err
	}
	if compress {
		return k.PubKey().SerializeCompressed(), nil
	}
	return k.PubKey().SerializeUncompressed(), nil
}

// sign is deterministic (RFC 6979) and always yields a low S value
func (c k1) sign(secret, digest []byte) ([]byte, error) {
	k, err := c.private(secret)
	if err != nil {
		return nil, err
	}
	return k1ecdsa.Sign(k, digest).Serialize(), nil
}

func (k1) verify(pub, sig, digest []byte) (bool, error) {
	key, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return false, invalidKey("public key", err)
	}
	s, err := k1ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false, e.New(e.ErrInvalidEncoding, "invalid DER signature").WithCause(err)
	}
	return s.Verify(digest, key), nil
}
