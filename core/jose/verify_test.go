package jose

import (
	"crypto/ecdsa"
	"crypto/x509"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kochabx/jwekit/core/crypto/p256"
)

func signingKey(t *testing.T, priv *p256.PrivateKey) *ecdsa.PrivateKey {
	t.Helper()
	der, err := priv.MarshalPKCS8()
	if err != nil {
		t.Fatalf("MarshalPKCS8 failed: %v", err)
	}
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		t.Fatalf("ParsePKCS8PrivateKey failed: %v", err)
	}
	return key.(*ecdsa.PrivateKey)
}

func signES256(t *testing.T, key *ecdsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	return s
}

// TestES256Verifier tests peer and trusted-issuer key selection
func TestES256Verifier(t *testing.T) {
	peer := p256.MustGenerateKey()
	server := p256.MustGenerateKey()
	stranger := p256.MustGenerateKey()

	v, err := NewES256Verifier(peer.Public(), WithServerKey(server.Public()))
	if err != nil {
		t.Fatalf("NewES256Verifier failed: %v", err)
	}

	tests := []struct {
		name    string
		key     *p256.PrivateKey
		claims  jwt.MapClaims
		wantErr bool
	}{
		{"peer signed", peer, jwt.MapClaims{"data": "x"}, false},
		{"server signed trusted issuer", server, jwt.MapClaims{"data": "x", "iss": DefaultTrustedIssuer}, false},
		{"server signed no issuer", server, jwt.MapClaims{"data": "x"}, true},
		{"peer signed trusted issuer", peer, jwt.MapClaims{"data": "x", "iss": DefaultTrustedIssuer}, true},
		{"stranger signed", stranger, jwt.MapClaims{"data": "x"}, true},
		{"expired is not checked", peer, jwt.MapClaims{"data": "x", "exp": 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseSigned(signES256(t, signingKey(t, tt.key), tt.claims))
			if err != nil {
				t.Fatalf("ParseSigned failed: %v", err)
			}

			err = v.Verify(s)
			if tt.wantErr {
				if !errors.Is(err, ErrSignatureInvalid) {
					t.Errorf("Verify() error = %v, want ErrSignatureInvalid", err)
				}
			} else if err != nil {
				t.Errorf("Verify() unexpected error: %v", err)
			}
		})
	}
}

// TestES256VerifierRejectsOtherMethods tests that HS256 tokens are refused
func TestES256VerifierRejectsOtherMethods(t *testing.T) {
	peer := p256.MustGenerateKey()
	v, err := NewES256Verifier(peer.Public())
	if err != nil {
		t.Fatalf("NewES256Verifier failed: %v", err)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"data": "x"}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	s, err := ParseSigned(token)
	if err != nil {
		t.Fatalf("ParseSigned failed: %v", err)
	}
	if err := v.Verify(s); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("Verify() error = %v, want ErrSignatureInvalid", err)
	}
}

// TestDecryptWithVerifier tests signed content through the JWE engine
func TestDecryptWithVerifier(t *testing.T) {
	alice, bob, ab, ba := sharedSecrets(t)

	inner := signES256(t, signingKey(t, alice), jwt.MapClaims{"data": `{"balance":10}`})
	sealed, err := Encrypt(ab, NewHeaderParams().WithKeyID("k1").WithContentType(ContentTypeJWT), []byte(inner))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	good, err := NewES256Verifier(alice.Public())
	if err != nil {
		t.Fatalf("NewES256Verifier failed: %v", err)
	}
	opened, err := Decrypt(ba, sealed.Token, WithExpectedKeyID("k1"), WithVerifier(good))
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if data, _ := opened.Data(); data != `{"balance":10}` {
		t.Errorf("data = %q", data)
	}

	bad, err := NewES256Verifier(bob.Public())
	if err != nil {
		t.Fatalf("NewES256Verifier failed: %v", err)
	}
	if _, err := Decrypt(ba, sealed.Token, WithVerifier(bad)); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("Decrypt() error = %v, want ErrSignatureInvalid", err)
	}

	// Without a verifier the signature is not checked
	if _, err := Decrypt(ba, sealed.Token); err != nil {
		t.Errorf("unverified Decrypt failed: %v", err)
	}
}
