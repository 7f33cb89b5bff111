package bridge

import (
	stderrors "errors"

	"github.com/kochabx/jwekit/core/codec"
	"github.com/kochabx/jwekit/core/crypto/p256"
	"github.com/kochabx/jwekit/core/jose"
	"github.com/kochabx/jwekit/errors"
)

// Reasons carried by the coded errors returned from this package
const (
	ReasonInvalidKey       = "INVALID_KEY"
	ReasonKeyIDMismatch    = "KEY_ID_MISMATCH"
	ReasonDecryptionFailed = "DECRYPTION_FAILED"
	ReasonInternal         = "INTERNAL"
)

// Messages shown to peers. Every integrity and malformed-token failure shares
// one message.
const (
	MessageKeyIDMismatch    = "keyId does not match"
	MessageDecryptionFailed = "error decrypting payload"
	MessageInvalidKey       = "invalid key"
	MessageEncryptionFailed = "error encrypting payload"
)

var (
	ErrInvalidKey       = errors.BadRequest(MessageInvalidKey).WithReason(ReasonInvalidKey)
	ErrKeyIDMismatch    = errors.Conflict(MessageKeyIDMismatch).WithReason(ReasonKeyIDMismatch)
	ErrDecryptionFailed = errors.UnprocessableEntity(MessageDecryptionFailed).WithReason(ReasonDecryptionFailed)
	ErrEncryptionFailed = errors.Internal(MessageEncryptionFailed).WithReason(ReasonInternal)
)

var keyErrors = []error{
	p256.ErrInvalidPrivateKey,
	p256.ErrInvalidPublicKey,
	p256.ErrPrivateKeyEmpty,
	p256.ErrPublicKeyEmpty,
	p256.ErrKeyMismatch,
	p256.ErrKeyAgreementFailed,
	codec.ErrInvalidHex,
	jose.ErrInvalidKeySize,
}

var tokenErrors = []error{
	jose.ErrDecryptionFailed,
	jose.ErrInvalidPartCount,
	jose.ErrInvalidBase64URL,
	jose.ErrInvalidJSON,
	jose.ErrHeaderNotSpecified,
	jose.ErrEncryptionAlgorithmNotSpecified,
	jose.ErrKeyWrapAlgorithmNotSpecified,
	jose.ErrIVNotSpecified,
	jose.ErrTagNotSpecified,
	jose.ErrUnsupportedAlgorithmCombination,
	jose.ErrSignatureInvalid,
}

// decryptError maps a failure on the decrypt path to a coded error. The
// original error stays reachable as the cause.
func decryptError(err error) *errors.Error {
	switch {
	case stderrors.Is(err, jose.ErrKeyIDMismatch):
		return ErrKeyIDMismatch.WithCause(err)
	case isAny(err, keyErrors):
		return ErrInvalidKey.WithCause(err)
	case isAny(err, tokenErrors):
		return ErrDecryptionFailed.WithCause(err)
	default:
		return errors.Internal(MessageDecryptionFailed).WithReason(ReasonInternal).WithCause(err)
	}
}

func encryptError(err error) *errors.Error {
	if isAny(err, keyErrors) {
		return ErrInvalidKey.WithCause(err)
	}
	return ErrEncryptionFailed.WithCause(err)
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if stderrors.Is(err, target) {
			return true
		}
	}
	return false
}
