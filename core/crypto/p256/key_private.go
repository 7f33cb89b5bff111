package p256

import (
	"bytes"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/x509"
	"fmt"

	"github.com/kochabx/jwekit/core/codec"
	"github.com/kochabx/jwekit/core/crypto/p256/internal"
)

// PrivateKey is a P-256 private key used for ECDH key agreement.
type PrivateKey struct {
	ecdhKey   *ecdh.PrivateKey
	publicKey *PublicKey
}

// GenerateKey generates a new P-256 key pair.
func GenerateKey() (*PrivateKey, error) {
	key, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return fromECDH(key), nil
}

// MustGenerateKey is like GenerateKey but panics on failure. A failing random
// source leaves no sane way to continue.
func MustGenerateKey() *PrivateKey {
	key, err := GenerateKey()
	if err != nil {
		panic(fmt.Sprintf("p256: generate key: %v", err))
	}
	return key
}

// NewPrivateKey builds a private key from a raw big-endian scalar. Shorter
// scalars are left-padded with zeros.
func NewPrivateKey(d []byte) (*PrivateKey, error) {
	if len(d) == 0 {
		return nil, ErrPrivateKeyEmpty
	}
	if len(d) > PrivateKeyBytes {
		return nil, ErrInvalidPrivateKey
	}

	key, err := ecdh.P256().NewPrivateKey(internal.ZeroPad(d, PrivateKeyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return fromECDH(key), nil
}

// ParsePrivateKey accepts the encodings peers are known to send:
//   - 32 bytes: raw scalar D
//   - 97 bytes: CommonCrypto export 0x04 || X || Y || D
//   - PKCS#8 DER
//   - SEC1 (RFC 5915) DER
func ParsePrivateKey(b []byte) (*PrivateKey, error) {
	switch {
	case len(b) == 0:
		return nil, ErrPrivateKeyEmpty
	case len(b) == PrivateKeyBytes:
		return NewPrivateKey(b)
	case len(b) == ExportedPrivateKeyBytes && b[0] == UncompressedPointTag:
		return parseExported(b)
	}

	if key, err := x509.ParsePKCS8PrivateKey(b); err == nil {
		ecdsaKey, ok := key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: unsupported PKCS#8 key type %T", ErrInvalidPrivateKey, key)
		}
		return importECDSA(ecdsaKey)
	}

	ecdsaKey, err := x509.ParseECPrivateKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: unrecognized encoding of %d bytes", ErrInvalidPrivateKey, len(b))
	}
	return importECDSA(ecdsaKey)
}

// ParsePrivateKeyHex decodes s as hex and parses it with ParsePrivateKey.
func ParsePrivateKeyHex(s string) (*PrivateKey, error) {
	b, err := codec.DecodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	defer internal.Wipe(b)
	return ParsePrivateKey(b)
}

// Public returns the public key corresponding to this private key.
func (priv *PrivateKey) Public() *PublicKey {
	return priv.publicKey
}

// Bytes returns the 32 byte big-endian scalar.
func (priv *PrivateKey) Bytes() []byte {
	if priv.ecdhKey == nil {
		return nil
	}
	return priv.ecdhKey.Bytes()
}

// Hex returns the scalar in hexadecimal encoding.
func (priv *PrivateKey) Hex() string {
	return codec.EncodeHex(priv.Bytes())
}

// MarshalPKCS8 returns the PKCS#8 DER encoding of the key.
func (priv *PrivateKey) MarshalPKCS8() ([]byte, error) {
	if priv.ecdhKey == nil {
		return nil, ErrPrivateKeyEmpty
	}
	return x509.MarshalPKCS8PrivateKey(priv.ecdhKey)
}

// ECDH computes the raw shared secret (the X coordinate of the shared point).
// The result is not passed through a KDF.
func (priv *PrivateKey) ECDH(publicKey *PublicKey) ([]byte, error) {
	if priv.ecdhKey == nil {
		return nil, ErrPrivateKeyEmpty
	}
	if publicKey == nil || publicKey.ecdhKey == nil {
		return nil, ErrPublicKeyEmpty
	}

	secret, err := priv.ecdhKey.ECDH(publicKey.ecdhKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyAgreementFailed, err)
	}
	return secret, nil
}

// Equals compares two private keys in constant time.
func (priv *PrivateKey) Equals(other *PrivateKey) bool {
	if priv == nil || other == nil {
		return priv == other
	}
	if priv.ecdhKey == nil || other.ecdhKey == nil {
		return priv.ecdhKey == other.ecdhKey
	}
	return priv.ecdhKey.Equal(other.ecdhKey)
}

// Destroy drops the reference to the key material. crypto/ecdh offers no way
// to zero its internal copy.
func (priv *PrivateKey) Destroy() {
	priv.ecdhKey = nil
}

func fromECDH(key *ecdh.PrivateKey) *PrivateKey {
	return &PrivateKey{
		ecdhKey:   key,
		publicKey: &PublicKey{ecdhKey: key.PublicKey()},
	}
}

func importECDSA(key *ecdsa.PrivateKey) (*PrivateKey, error) {
	ecdhKey, err := key.ECDH()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	if ecdhKey.Curve() != ecdh.P256() {
		return nil, fmt.Errorf("%w: not a P-256 key", ErrInvalidPrivateKey)
	}
	return fromECDH(ecdhKey), nil
}

func parseExported(b []byte) (*PrivateKey, error) {
	priv, err := NewPrivateKey(b[PublicKeyBytes:])
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(priv.publicKey.Bytes(), b[:PublicKeyBytes]) {
		return nil, ErrKeyMismatch
	}
	return priv, nil
}
