package jose

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kochabx/jwekit/core/crypto/p256"
)

// DefaultTrustedIssuer is the issuer whose tokens are checked against the
// server key rather than the peer key.
const DefaultTrustedIssuer = "https://fit-pay.com"

// Verifier checks the signature of an inner signed token.
type Verifier interface {
	Verify(s *Signed) error
}

// ES256Verifier verifies ES256 signatures. Tokens issued by TrustedIssuer
// are checked with ServerKey, all others with PeerKey.
type ES256Verifier struct {
	PeerKey       *ecdsa.PublicKey
	ServerKey     *ecdsa.PublicKey
	TrustedIssuer string
}

// VerifierOption configures an ES256Verifier.
type VerifierOption func(*ES256Verifier)

// WithServerKey sets the key used for tokens from the trusted issuer.
func WithServerKey(key *p256.PublicKey) VerifierOption {
	return func(v *ES256Verifier) {
		if k, err := key.ECDSA(); err == nil {
			v.ServerKey = k
		}
	}
}

// WithTrustedIssuer overrides DefaultTrustedIssuer.
func WithTrustedIssuer(issuer string) VerifierOption {
	return func(v *ES256Verifier) {
		v.TrustedIssuer = issuer
	}
}

// NewES256Verifier returns a verifier that checks tokens against peer.
func NewES256Verifier(peer *p256.PublicKey, opts ...VerifierOption) (*ES256Verifier, error) {
	peerKey, err := peer.ECDSA()
	if err != nil {
		return nil, err
	}

	v := &ES256Verifier{
		PeerKey:       peerKey,
		TrustedIssuer: DefaultTrustedIssuer,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Verify implements Verifier. Claims such as exp are not validated here.
func (v *ES256Verifier) Verify(s *Signed) error {
	if s == nil || s.Raw == "" {
		return fmt.Errorf("%w: empty token", ErrSignatureInvalid)
	}

	_, err := jwt.Parse(s.Raw, v.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}
	return nil
}

func (v *ES256Verifier) keyFunc(token *jwt.Token) (any, error) {
	issuer, _ := token.Claims.GetIssuer()
	if issuer != "" && issuer == v.TrustedIssuer {
		if v.ServerKey == nil {
			return nil, errors.New("no server key for trusted issuer")
		}
		return v.ServerKey, nil
	}

	if v.PeerKey == nil {
		return nil, errors.New("no peer key")
	}
	return v.PeerKey, nil
}
