package aead

import "errors"

var (
	// ErrEncryptionFailed indicates a general encryption failure
	ErrEncryptionFailed = errors.New("aead: encryption failed")

	// ErrDecryptionFailed indicates authentication failure or malformed input.
	// Callers must not tell the two apart.
	ErrDecryptionFailed = errors.New("aead: decryption failed")

	// ErrInvalidKeySize indicates that the key is not a valid AES key
	ErrInvalidKeySize = errors.New("aead: invalid key size")

	// ErrInvalidIV indicates an empty IV
	ErrInvalidIV = errors.New("aead: invalid iv")
)
