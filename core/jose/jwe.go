package jose

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"github.com/kochabx/jwekit/core/codec"
	"github.com/kochabx/jwekit/core/crypto/aead"
)

// Sealed is the result of Encrypt.
type Sealed struct {
	Token  string
	Header Header
}

// Opened is the result of Decrypt. Signed is set when the header content
// type is JWT.
type Opened struct {
	Plaintext []byte
	Header    Header
	Signed    *Signed
}

// Data returns the payload text. For JWT content this is the "data" claim
// of the inner token, otherwise the plaintext itself.
func (o *Opened) Data() (string, error) {
	if o.Signed != nil {
		return o.Signed.Data()
	}

	s, err := codec.UTF8String(o.Plaintext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return s, nil
}

type encryptOptions struct {
	random io.Reader
}

// EncryptOption configures Encrypt.
type EncryptOption func(*encryptOptions)

// WithRandom replaces crypto/rand as the source of the CEK and IVs. Only
// tests should use this.
func WithRandom(r io.Reader) EncryptOption {
	return func(o *encryptOptions) {
		o.random = r
	}
}

type decryptOptions struct {
	expectedKeyID   *string
	allowMissingKID bool
	verifier        Verifier
}

// DecryptOption configures Decrypt.
type DecryptOption func(*decryptOptions)

// WithExpectedKeyID rejects tokens whose kid differs from kid, before any
// cryptographic work is done.
func WithExpectedKeyID(kid string) DecryptOption {
	return func(o *decryptOptions) {
		o.expectedKeyID = &kid
	}
}

// WithAllowMissingKeyID lets tokens without a kid pass the expected key id
// check. Some Android peers omit it.
func WithAllowMissingKeyID() DecryptOption {
	return func(o *decryptOptions) {
		o.allowMissingKID = true
	}
}

// WithVerifier verifies the inner signed token of JWT content.
func WithVerifier(v Verifier) DecryptOption {
	return func(o *decryptOptions) {
		o.verifier = v
	}
}

// Encrypt produces a compact JWE of plaintext. secret is the ECDH shared
// secret and is used directly as the key wrapping key.
//
// The header is serialized after the CEK is wrapped, because it carries the
// wrap IV and tag, and before the content is encrypted, because the encoded
// header is the content AAD.
func Encrypt(secret []byte, params HeaderParams, plaintext []byte, opts ...EncryptOption) (*Sealed, error) {
	o := encryptOptions{random: rand.Reader}
	for _, opt := range opts {
		opt(&o)
	}

	if !supported(params.Algorithm(), params.Encryption()) {
		return nil, fmt.Errorf("%w: alg=%q enc=%q", ErrUnsupportedAlgorithmCombination, params.Algorithm(), params.Encryption())
	}
	if err := checkSecret(secret); err != nil {
		return nil, err
	}

	cek, err := aead.RandomFrom(o.random, aead.KeySize)
	if err != nil {
		return nil, fmt.Errorf("jose: generate cek: %w", err)
	}
	defer clear(cek)

	wrapIV, err := aead.RandomFrom(o.random, aead.WrapIVSize)
	if err != nil {
		return nil, fmt.Errorf("jose: generate wrap iv: %w", err)
	}

	wrappedCEK, wrapTag, err := aead.Seal(secret, cek, wrapIV, nil)
	if err != nil {
		return nil, fmt.Errorf("jose: wrap cek: %w", err)
	}

	header, err := params.Finalize(wrapIV, wrapTag)
	if err != nil {
		return nil, err
	}
	encodedHeader, err := header.Serialize()
	if err != nil {
		return nil, err
	}

	contentIV, err := aead.RandomFrom(o.random, aead.ContentIVSize)
	if err != nil {
		return nil, fmt.Errorf("jose: generate content iv: %w", err)
	}

	ciphertext, tag, err := aead.Seal(cek, plaintext, contentIV, []byte(encodedHeader))
	if err != nil {
		return nil, fmt.Errorf("jose: encrypt content: %w", err)
	}

	token := strings.Join([]string{
		encodedHeader,
		codec.EncodeBase64URL(wrappedCEK),
		codec.EncodeBase64URL(contentIV),
		codec.EncodeBase64URL(ciphertext),
		codec.EncodeBase64URL(tag),
	}, ".")

	return &Sealed{Token: token, Header: header}, nil
}

// Decrypt opens a compact JWE with the ECDH shared secret.
func Decrypt(secret []byte, token string, opts ...DecryptOption) (*Opened, error) {
	var o decryptOptions
	for _, opt := range opts {
		opt(&o)
	}

	parts, err := splitCompact(token)
	if err != nil {
		return nil, err
	}

	header := ParseHeader(parts[0])
	if err := o.checkKeyID(header); err != nil {
		return nil, err
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}
	if err := checkSecret(secret); err != nil {
		return nil, err
	}

	segments := make([][]byte, jweParts-1)
	for i, part := range parts[1:] {
		b, err := codec.DecodeBase64URL(part)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %d", ErrInvalidBase64URL, i+1)
		}
		segments[i] = b
	}
	wrappedCEK, contentIV, ciphertext, tag := segments[0], segments[1], segments[2], segments[3]

	cek, err := aead.Open(secret, wrappedCEK, header.Tag, header.IV, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: unwrap cek: %w", ErrDecryptionFailed, err)
	}
	defer clear(cek)
	if len(cek) != aead.KeySize {
		return nil, fmt.Errorf("%w: cek is %d bytes", ErrDecryptionFailed, len(cek))
	}

	ciphertext, tag = aead.FixupTag(ciphertext, tag)

	// The AAD is the header segment exactly as received
	plaintext, err := aead.Open(cek, ciphertext, tag, contentIV, []byte(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	opened := &Opened{Plaintext: plaintext, Header: header}
	if header.ContentTypeOr("") != ContentTypeJWT {
		return opened, nil
	}

	signed, err := ParseSigned(string(plaintext))
	if err != nil {
		return nil, err
	}
	if o.verifier != nil {
		if err := o.verifier.Verify(signed); err != nil {
			return nil, err
		}
	}
	opened.Signed = signed

	return opened, nil
}

// PeekHeader returns the protected header of a compact JWE. Nothing is
// decrypted, so callers can gate on the kid before deriving a secret.
func PeekHeader(token string) (Header, error) {
	parts, err := splitCompact(token)
	if err != nil {
		return Header{}, err
	}
	return ParseHeader(parts[0]), nil
}

// CheckKeyID reports ErrKeyIDMismatch when the token kid differs from kid.
// A token without a kid fails unless allowMissing is set.
func CheckKeyID(token, kid string, allowMissing bool) error {
	header, err := PeekHeader(token)
	if err != nil {
		return err
	}
	o := decryptOptions{expectedKeyID: &kid, allowMissingKID: allowMissing}
	return o.checkKeyID(header)
}

// checkSecret rejects secrets aes.NewCipher would accept as AES-128 or
// AES-192, since the header always claims A256GCMKW.
func checkSecret(secret []byte) error {
	if len(secret) != aead.KeySize {
		return fmt.Errorf("%w: got %d", ErrInvalidKeySize, len(secret))
	}
	return nil
}

func splitCompact(token string) ([]string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != jweParts {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidPartCount, len(parts), jweParts)
	}
	return parts, nil
}

func (o decryptOptions) checkKeyID(h Header) error {
	if o.expectedKeyID == nil {
		return nil
	}
	if h.KeyID == nil {
		// An empty expected kid is how a kid-less token is addressed
		if o.allowMissingKID || *o.expectedKeyID == "" {
			return nil
		}
		return fmt.Errorf("%w: token has no kid", ErrKeyIDMismatch)
	}
	if *h.KeyID != *o.expectedKeyID {
		return fmt.Errorf("%w: got %q, want %q", ErrKeyIDMismatch, *h.KeyID, *o.expectedKeyID)
	}
	return nil
}

func checkHeader(h Header) error {
	switch {
	case h.IsZero():
		return ErrHeaderNotSpecified
	case h.Algorithm == "":
		return ErrKeyWrapAlgorithmNotSpecified
	case h.Encryption == "":
		return ErrEncryptionAlgorithmNotSpecified
	case !supported(h.Algorithm, h.Encryption):
		return fmt.Errorf("%w: alg=%q enc=%q", ErrUnsupportedAlgorithmCombination, h.Algorithm, h.Encryption)
	case len(h.IV) == 0:
		return ErrIVNotSpecified
	case len(h.Tag) == 0:
		return ErrTagNotSpecified
	}
	return nil
}
