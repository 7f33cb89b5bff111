package jose

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kochabx/jwekit/core/codec"
)

// Signed is a parsed compact JWS. The signature is kept verbatim and is only
// checked when a Verifier is supplied to Decrypt.
type Signed struct {
	Header    Header
	Body      map[string]any
	Signature string
	Raw       string
}

// ParseSigned splits a 3-segment compact JWS and decodes its body as a JSON
// object. The header is parsed leniently, like ParseHeader.
func ParseSigned(token string) (*Signed, error) {
	parts := strings.Split(token, ".")
	if len(parts) != jwsParts {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidPartCount, len(parts), jwsParts)
	}

	raw, err := codec.DecodeBase64URL(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: body", ErrInvalidBase64URL)
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil || body == nil {
		return nil, fmt.Errorf("%w: body", ErrInvalidJSON)
	}

	return &Signed{
		Header:    ParseHeader(parts[0]),
		Body:      body,
		Signature: parts[2],
		Raw:       token,
	}, nil
}

// Claim returns a body value.
func (s *Signed) Claim(key string) (any, bool) {
	v, ok := s.Body[key]
	return v, ok
}

// Data returns the "data" claim as text: strings are returned as-is, any
// other JSON value in compact form.
func (s *Signed) Data() (string, error) {
	v, ok := s.Body["data"]
	if !ok {
		return "", fmt.Errorf("%w: data claim missing", ErrInvalidJSON)
	}
	if str, ok := v.(string); ok {
		return str, nil
	}

	b, err := marshalJSON(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return string(b), nil
}
