package jose

import (
	"errors"
	"testing"

	gojose "github.com/go-jose/go-jose/v4"
)

// TestDecryptGoJose tests tokens produced by an independent JOSE implementation
func TestDecryptGoJose(t *testing.T) {
	_, _, ab, ba := sharedSecrets(t)

	enc, err := gojose.NewEncrypter(gojose.A256GCM, gojose.Recipient{
		Algorithm: gojose.A256GCMKW,
		Key:       ab,
		KeyID:     "k1",
	}, nil)
	if err != nil {
		t.Fatalf("NewEncrypter failed: %v", err)
	}

	obj, err := enc.Encrypt([]byte(`{"data":"hello"}`))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	token, err := obj.CompactSerialize()
	if err != nil {
		t.Fatalf("CompactSerialize failed: %v", err)
	}

	opened, err := Decrypt(ba, token, WithExpectedKeyID("k1"))
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if string(opened.Plaintext) != `{"data":"hello"}` {
		t.Errorf("plaintext = %s", opened.Plaintext)
	}
	if opened.Header.ContentType != nil {
		t.Errorf("unexpected cty %q", *opened.Header.ContentType)
	}

	if _, err := Decrypt(ba, token, WithExpectedKeyID("k2")); !errors.Is(err, ErrKeyIDMismatch) {
		t.Errorf("Decrypt(k2) error = %v, want ErrKeyIDMismatch", err)
	}
}
