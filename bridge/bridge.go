// Package bridge exposes the session key pair, encrypt and decrypt
// operations over hex encoded keys and compact token strings. Failures are
// coded errors from the errors package; see ReasonKeyIDMismatch and friends.
package bridge

import (
	"io"
	"time"

	"github.com/kochabx/jwekit/core/codec"
	"github.com/kochabx/jwekit/core/crypto/p256"
	"github.com/kochabx/jwekit/core/jose"
	"github.com/kochabx/jwekit/log"
)

// KeyPair is a session key pair. Public is the SPKI prefixed wire hex, Private
// the raw scalar hex.
type KeyPair struct {
	Public  string `json:"pub" yaml:"pub"`
	Private string `json:"pvt" yaml:"pvt"`
}

// Bridge runs the boundary operations. The zero value is not usable, use New.
type Bridge struct {
	allowMissingKID  bool
	verifySignatures bool
	trustedIssuer    string
	serverKey        *p256.PublicKey
	random           io.Reader
	metrics          *Metrics
	logger           *log.Logger
}

// Option configures a Bridge
type Option func(*Bridge)

// WithAllowMissingKeyID accepts tokens without a kid on decrypt
func WithAllowMissingKeyID(allow bool) Option {
	return func(b *Bridge) {
		b.allowMissingKID = allow
	}
}

// WithSignatureVerification verifies ES256 signatures of JWT content
func WithSignatureVerification(verify bool) Option {
	return func(b *Bridge) {
		b.verifySignatures = verify
	}
}

// WithTrustedIssuer sets the issuer whose inner tokens are checked with the
// server key
func WithTrustedIssuer(issuer string) Option {
	return func(b *Bridge) {
		if issuer != "" {
			b.trustedIssuer = issuer
		}
	}
}

// WithServerKey sets the default server public key for signature verification
func WithServerKey(key *p256.PublicKey) Option {
	return func(b *Bridge) {
		b.serverKey = key
	}
}

// WithRandom replaces crypto/rand on encrypt. Tests only.
func WithRandom(r io.Reader) Option {
	return func(b *Bridge) {
		b.random = r
	}
}

// WithMetrics records operation counters and latencies
func WithMetrics(m *Metrics) Option {
	return func(b *Bridge) {
		b.metrics = m
	}
}

// WithLogger sets the logger, log.G() by default
func WithLogger(logger *log.Logger) Option {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates a Bridge
func New(opts ...Option) *Bridge {
	b := &Bridge{
		trustedIssuer: jose.DefaultTrustedIssuer,
		logger:        log.G(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CreateKeyPair generates a fresh P-256 key pair. Failure to draw randomness
// is unrecoverable and panics.
func (b *Bridge) CreateKeyPair() KeyPair {
	start := time.Now()
	priv := p256.MustGenerateKey()
	defer priv.Destroy()

	pair := KeyPair{
		Public:  priv.Public().WireHex(),
		Private: priv.Hex(),
	}
	b.metrics.observe(opKeyPair, start, nil)
	return pair
}

// Encrypt seals plaintext for the peer. keyID goes into the kid header and is
// omitted when empty; Decrypt with an empty keyID accepts such a token.
func (b *Bridge) Encrypt(keyID, privateKeyHex, peerPublicKeyHex, plaintext string) (token string, err error) {
	start := time.Now()
	defer func() { b.metrics.observe(opEncrypt, start, err) }()

	secret, err := p256.DeriveSharedSecretHex(privateKeyHex, peerPublicKeyHex)
	if err != nil {
		b.logger.Warn().Err(err).Str("kid", keyID).Msg("encrypt: key agreement failed")
		return "", encryptError(err)
	}
	defer clear(secret)

	params := jose.NewHeaderParams().WithContentType(jose.ContentTypeJSON)
	if keyID != "" {
		params = params.WithKeyID(keyID)
	}

	var opts []jose.EncryptOption
	if b.random != nil {
		opts = append(opts, jose.WithRandom(b.random))
	}

	sealed, err := jose.Encrypt(secret, params, codec.UTF8Bytes(plaintext), opts...)
	if err != nil {
		b.logger.Error().Err(err).Str("kid", keyID).Msg("encrypt failed")
		return "", encryptError(err)
	}

	b.logger.Debug().Str("kid", keyID).Int("size", len(plaintext)).Msg("payload encrypted")
	return sealed.Token, nil
}

type decryptOptions struct {
	serverKeyHex string
}

// DecryptOption configures a single Decrypt call
type DecryptOption func(*decryptOptions)

// WithServerPublicKey overrides the configured server key for this call. It
// is only used when signature verification is enabled.
func WithServerPublicKey(hex string) DecryptOption {
	return func(o *decryptOptions) {
		o.serverKeyHex = hex
	}
}

// Decrypt opens a token from the peer. The kid is checked against keyID
// before the private key is even parsed. For JWT content the "data" claim of
// the inner token is returned.
func (b *Bridge) Decrypt(keyID, privateKeyHex, peerPublicKeyHex, token string, opts ...DecryptOption) (data string, err error) {
	start := time.Now()
	defer func() { b.metrics.observe(opDecrypt, start, err) }()

	var o decryptOptions
	for _, opt := range opts {
		opt(&o)
	}

	if err := jose.CheckKeyID(token, keyID, b.allowMissingKID); err != nil {
		b.logger.Warn().Err(err).Str("kid", keyID).Msg("decrypt rejected")
		return "", decryptError(err)
	}

	priv, err := p256.ParsePrivateKeyHex(privateKeyHex)
	if err != nil {
		return "", decryptError(err)
	}
	defer priv.Destroy()

	peer, err := p256.ParsePublicKeyHex(peerPublicKeyHex)
	if err != nil {
		return "", decryptError(err)
	}

	secret, err := priv.ECDH(peer)
	if err != nil {
		return "", decryptError(err)
	}
	defer clear(secret)

	joseOpts := []jose.DecryptOption{jose.WithExpectedKeyID(keyID)}
	if b.allowMissingKID {
		joseOpts = append(joseOpts, jose.WithAllowMissingKeyID())
	}
	if b.verifySignatures {
		verifier, err := b.verifier(peer, o.serverKeyHex)
		if err != nil {
			return "", decryptError(err)
		}
		joseOpts = append(joseOpts, jose.WithVerifier(verifier))
	}

	opened, err := jose.Decrypt(secret, token, joseOpts...)
	if err != nil {
		b.logger.Warn().Err(err).Str("kid", keyID).Msg("decrypt failed")
		return "", decryptError(err)
	}

	data, err = opened.Data()
	if err != nil {
		return "", decryptError(err)
	}

	b.logger.Debug().Str("kid", keyID).Str("cty", opened.Header.ContentTypeOr("")).Msg("payload decrypted")
	return data, nil
}

func (b *Bridge) verifier(peer *p256.PublicKey, serverKeyHex string) (jose.Verifier, error) {
	serverKey := b.serverKey
	if serverKeyHex != "" {
		key, err := p256.ParsePublicKeyHex(serverKeyHex)
		if err != nil {
			return nil, err
		}
		serverKey = key
	}

	opts := []jose.VerifierOption{jose.WithTrustedIssuer(b.trustedIssuer)}
	if serverKey != nil {
		opts = append(opts, jose.WithServerKey(serverKey))
	}
	return jose.NewES256Verifier(peer, opts...)
}
