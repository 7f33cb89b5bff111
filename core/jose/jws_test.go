package jose

import (
	"encoding/base64"
	"errors"
	"testing"
)

func b64(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

// TestParseSigned tests splitting and body decoding
func TestParseSigned(t *testing.T) {
	token := b64(`{"alg":"ES256","kid":"server"}`) + "." + b64(`{"data":"hello","n":1}`) + ".c2lnbmF0dXJl"

	s, err := ParseSigned(token)
	if err != nil {
		t.Fatalf("ParseSigned failed: %v", err)
	}

	if s.Header.KID() != "server" {
		t.Errorf("header kid = %q", s.Header.KID())
	}
	if s.Signature != "c2lnbmF0dXJl" {
		t.Errorf("signature = %q", s.Signature)
	}
	if s.Raw != token {
		t.Error("raw token not kept")
	}
	if v, ok := s.Claim("n"); !ok || v.(float64) != 1 {
		t.Errorf("claim n = %v", v)
	}

	data, err := s.Data()
	if err != nil || data != "hello" {
		t.Errorf("Data() = %q, %v", data, err)
	}
}

// TestParseSignedErrors tests part count, base64 and JSON failures
func TestParseSignedErrors(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"2 segments", "!!.!!", ErrInvalidPartCount},
		{"4 segments", "!!.!!.!!.!!", ErrInvalidPartCount},
		{"empty", "", ErrInvalidPartCount},
		{"body not base64", b64(`{}`) + ".!!.sig", ErrInvalidBase64URL},
		{"body not json", b64(`{}`) + "." + b64("nope") + ".sig", ErrInvalidJSON},
		{"body not object", b64(`{}`) + "." + b64(`[1,2]`) + ".sig", ErrInvalidJSON},
		{"body null", b64(`{}`) + "." + b64(`null`) + ".sig", ErrInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSigned(tt.token); !errors.Is(err, tt.want) {
				t.Errorf("ParseSigned() error = %v, want %v", err, tt.want)
			}
		})
	}
}

// TestParseSignedLenientHeader tests that a broken header does not fail the parse
func TestParseSignedLenientHeader(t *testing.T) {
	s, err := ParseSigned("garbage." + b64(`{"data":"x"}`) + ".")
	if err != nil {
		t.Fatalf("ParseSigned failed: %v", err)
	}
	if !s.Header.IsZero() {
		t.Error("expected zero header")
	}
	if s.Signature != "" {
		t.Errorf("signature = %q", s.Signature)
	}
}
