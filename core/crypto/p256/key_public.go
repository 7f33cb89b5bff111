package p256

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/x509"
	"fmt"
	"strings"

	"github.com/kochabx/jwekit/core/codec"
)

// PublicKey is a P-256 public key.
type PublicKey struct {
	ecdhKey *ecdh.PublicKey
}

// NewPublicKey builds a public key from an uncompressed point 0x04 || X || Y.
func NewPublicKey(point []byte) (*PublicKey, error) {
	if len(point) == 0 {
		return nil, ErrPublicKeyEmpty
	}
	if len(point) != PublicKeyBytes || point[0] != UncompressedPointTag {
		return nil, fmt.Errorf("%w: expected %d byte uncompressed point, got %d bytes", ErrInvalidPublicKey, PublicKeyBytes, len(point))
	}

	key, err := ecdh.P256().NewPublicKey(point)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return &PublicKey{ecdhKey: key}, nil
}

// ParsePublicKeyHex parses the wire form of a public key. The SPKI prefix is
// stripped when present; what remains must be the hex of an uncompressed point.
func ParsePublicKeyHex(s string) (*PublicKey, error) {
	raw := StripPrefix(s)

	point, err := codec.DecodeHex(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return NewPublicKey(point)
}

// StripPrefix removes SPKIPrefixHex from the front of a wire public key.
// The match is case-insensitive since hex producers differ on case.
func StripPrefix(s string) string {
	if len(s) >= len(SPKIPrefixHex) && strings.EqualFold(s[:len(SPKIPrefixHex)], SPKIPrefixHex) {
		return s[len(SPKIPrefixHex):]
	}
	return s
}

// AddPrefix prepends SPKIPrefixHex to the hex of a raw point.
func AddPrefix(pointHex string) string {
	return SPKIPrefixHex + pointHex
}

// Bytes returns the 65 byte uncompressed point.
func (pub *PublicKey) Bytes() []byte {
	if pub.ecdhKey == nil {
		return nil
	}
	return pub.ecdhKey.Bytes()
}

// Hex returns the uncompressed point in hexadecimal encoding, without prefix.
func (pub *PublicKey) Hex() string {
	return codec.EncodeHex(pub.Bytes())
}

// WireHex returns the wire form: SPKIPrefixHex followed by the point hex.
func (pub *PublicKey) WireHex() string {
	return AddPrefix(pub.Hex())
}

// MarshalPKIX returns the DER SubjectPublicKeyInfo encoding.
func (pub *PublicKey) MarshalPKIX() ([]byte, error) {
	if pub.ecdhKey == nil {
		return nil, ErrPublicKeyEmpty
	}
	return x509.MarshalPKIXPublicKey(pub.ecdhKey)
}

// ECDSA returns the key as an ECDSA verification key.
func (pub *PublicKey) ECDSA() (*ecdsa.PublicKey, error) {
	if pub.ecdhKey == nil {
		return nil, ErrPublicKeyEmpty
	}
	key, err := ecdsa.ParseUncompressedPublicKey(elliptic.P256(), pub.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return key, nil
}

// Equals reports whether both keys hold the same point.
func (pub *PublicKey) Equals(other *PublicKey) bool {
	if pub == nil || other == nil {
		return pub == other
	}
	if pub.ecdhKey == nil || other.ecdhKey == nil {
		return pub.ecdhKey == other.ecdhKey
	}
	return pub.ecdhKey.Equal(other.ecdhKey)
}
