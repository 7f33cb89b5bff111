package jose

import "errors"

var (
	// ErrHeaderNotSpecified indicates the header segment did not decode to a header object
	ErrHeaderNotSpecified = errors.New("jose: header not specified")

	// ErrEncryptionAlgorithmNotSpecified indicates a missing "enc" header field
	ErrEncryptionAlgorithmNotSpecified = errors.New("jose: encryption algorithm not specified")

	// ErrKeyWrapAlgorithmNotSpecified indicates a missing "alg" header field
	ErrKeyWrapAlgorithmNotSpecified = errors.New("jose: key wrap algorithm not specified")

	// ErrIVNotSpecified indicates a missing key wrap IV
	ErrIVNotSpecified = errors.New("jose: iv not specified")

	// ErrTagNotSpecified indicates a missing key wrap tag
	ErrTagNotSpecified = errors.New("jose: tag not specified")

	// ErrInvalidPartCount indicates a compact token with the wrong number of segments
	ErrInvalidPartCount = errors.New("jose: invalid part count")

	// ErrInvalidJSON indicates a segment that is not the expected JSON
	ErrInvalidJSON = errors.New("jose: invalid json")

	// ErrInvalidBase64URL indicates a segment that is not base64url
	ErrInvalidBase64URL = errors.New("jose: invalid base64url")

	// ErrDecryptionFailed covers both integrity failures and malformed
	// ciphertext. Do not surface the difference to peers.
	ErrDecryptionFailed = errors.New("jose: decryption failed")

	// ErrKeyIDMismatch indicates the token kid differs from the expected one
	ErrKeyIDMismatch = errors.New("jose: key id mismatch")

	// ErrUnsupportedAlgorithmCombination indicates an alg/enc pair other than A256GCMKW/A256GCM
	ErrUnsupportedAlgorithmCombination = errors.New("jose: unsupported algorithm combination")

	// ErrInvalidKeySize indicates a shared secret that is not an AES-256 key
	ErrInvalidKeySize = errors.New("jose: shared secret must be 32 bytes")

	// ErrSignatureInvalid indicates an inner signed token that failed verification
	ErrSignatureInvalid = errors.New("jose: signature invalid")
)
