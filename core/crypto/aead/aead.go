// Package aead adapts AES-GCM to the token format: ciphertext and tag travel
// as separate segments, the tag is always TagSize bytes, and IV length is
// taken from the caller so both 12 and 16 byte IVs work.
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// Seal encrypts plaintext with AES-GCM and returns ciphertext and tag
// separately. The tag is the trailing TagSize bytes of the GCM output.
func Seal(key, plaintext, iv, aad []byte) (ciphertext, tag []byte, err error) {
	gcm, err := newGCM(key, iv)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}

	sealed := gcm.Seal(nil, iv, plaintext, aad)

	tagOffset := len(sealed) - TagSize
	return sealed[:tagOffset:tagOffset], sealed[tagOffset:], nil
}

// Open verifies and decrypts ciphertext. The GCM primitive wants a single
// ciphertext || tag blob, so the two are joined first.
func Open(key, ciphertext, tag, iv, aad []byte) ([]byte, error) {
	gcm, err := newGCM(key, iv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	if len(tag) != TagSize {
		return nil, fmt.Errorf("%w: tag is %d bytes", ErrDecryptionFailed, len(tag))
	}

	blob := getBuffer(len(ciphertext) + len(tag))
	defer putBuffer(blob)
	blob = append(blob, ciphertext...)
	blob = append(blob, tag...)

	plaintext, err := gcm.Open(nil, iv, blob, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// FixupTag repairs a ciphertext/tag pair from producers that segment the GCM
// output differently. When tag is shorter than TagSize and the pair holds
// more than TagSize bytes in total, the pair is re-split so that the tag is
// the last TagSize bytes. Otherwise the inputs are returned unchanged.
func FixupTag(ciphertext, tag []byte) ([]byte, []byte) {
	if len(tag) >= TagSize {
		return ciphertext, tag
	}

	total := len(ciphertext) + len(tag)
	if total <= TagSize {
		return ciphertext, tag
	}

	joined := make([]byte, 0, total)
	joined = append(joined, ciphertext...)
	joined = append(joined, tag...)

	split := total - TagSize
	return joined[:split:split], joined[split:]
}

// Random returns n bytes from the system CSPRNG.
func Random(n int) ([]byte, error) {
	return RandomFrom(rand.Reader, n)
}

// RandomFrom returns n bytes read from r.
func RandomFrom(r io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func newGCM(key, iv []byte) (cipher.AEAD, error) {
	if len(iv) == 0 {
		return nil, ErrInvalidIV
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeySize, err)
	}

	return cipher.NewGCMWithNonceSize(block, len(iv))
}
