package p256

import "errors"

// Key-related errors
var (
	// ErrInvalidPrivateKey indicates that the private key is invalid or malformed
	ErrInvalidPrivateKey = errors.New("p256: invalid private key")

	// ErrInvalidPublicKey indicates that the public key is invalid or malformed
	ErrInvalidPublicKey = errors.New("p256: invalid public key")

	// ErrPrivateKeyEmpty indicates that the private key is nil or empty
	ErrPrivateKeyEmpty = errors.New("p256: private key is empty")

	// ErrPublicKeyEmpty indicates that the public key is nil or empty
	ErrPublicKeyEmpty = errors.New("p256: public key is empty")

	// ErrKeyMismatch indicates that an exported private key carries a public point
	// that does not belong to its scalar
	ErrKeyMismatch = errors.New("p256: public point does not match private scalar")
)

// Agreement errors
var (
	// ErrKeyAgreementFailed indicates that the ECDH computation failed
	ErrKeyAgreementFailed = errors.New("p256: key agreement failed")
)
