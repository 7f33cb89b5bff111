package jose

import (
	"bytes"
	"encoding/json"

	"github.com/kochabx/jwekit/core/codec"
)

// Header is the protected header of a compact JWE. A nil pointer or an empty
// slice means the field is absent.
type Header struct {
	ContentType *string
	Encryption  ContentEncryption
	Algorithm   KeyAlgorithm
	IV          []byte
	Tag         []byte
	KeyID       *string
	Sender      *string
	Destination *string
}

// HeaderParams holds the header fields known before encryption starts. It is
// a value type: every With method returns a modified copy.
type HeaderParams struct {
	contentType *string
	encryption  ContentEncryption
	algorithm   KeyAlgorithm
	keyID       *string
	sender      *string
	destination *string
}

// NewHeaderParams returns params for the A256GCMKW/A256GCM combination.
func NewHeaderParams() HeaderParams {
	return HeaderParams{
		encryption: A256GCM,
		algorithm:  A256GCMKW,
	}
}

func (p HeaderParams) WithAlgorithm(alg KeyAlgorithm) HeaderParams {
	p.algorithm = alg
	return p
}

func (p HeaderParams) WithEncryption(enc ContentEncryption) HeaderParams {
	p.encryption = enc
	return p
}

func (p HeaderParams) WithContentType(cty string) HeaderParams {
	p.contentType = &cty
	return p
}

func (p HeaderParams) WithKeyID(kid string) HeaderParams {
	p.keyID = &kid
	return p
}

func (p HeaderParams) WithSender(sender string) HeaderParams {
	p.sender = &sender
	return p
}

func (p HeaderParams) WithDestination(destination string) HeaderParams {
	p.destination = &destination
	return p
}

// Algorithm returns the key management algorithm.
func (p HeaderParams) Algorithm() KeyAlgorithm { return p.algorithm }

// Encryption returns the content encryption algorithm.
func (p HeaderParams) Encryption() ContentEncryption { return p.encryption }

// Finalize attaches the key wrap IV and tag and returns the frozen header.
// The returned header has a content type and passes Validate.
func (p HeaderParams) Finalize(iv, tag []byte) (Header, error) {
	h := Header{
		ContentType: p.contentType,
		Encryption:  p.encryption,
		Algorithm:   p.algorithm,
		IV:          bytes.Clone(iv),
		Tag:         bytes.Clone(tag),
		KeyID:       p.keyID,
		Sender:      p.sender,
		Destination: p.destination,
	}
	if h.ContentType == nil {
		h.ContentType = stringPtr(ContentTypeJSON)
	}

	if err := h.Validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// Validate checks that the fields required for serialization are present.
func (h Header) Validate() error {
	switch {
	case h.Encryption == "":
		return ErrEncryptionAlgorithmNotSpecified
	case h.Algorithm == "":
		return ErrKeyWrapAlgorithmNotSpecified
	case len(h.IV) == 0:
		return ErrIVNotSpecified
	case len(h.Tag) == 0:
		return ErrTagNotSpecified
	}
	return nil
}

// Serialize returns the base64url encoded header JSON.
//
// "cty" is written first and by hand so that its value, usually
// "application/json", reaches the wire without escaping. The remaining keys
// are encoded in sorted order.
func (h Header) Serialize() (string, error) {
	if err := h.Validate(); err != nil {
		return "", err
	}

	fields := map[string]string{
		"enc": string(h.Encryption),
		"alg": string(h.Algorithm),
		"iv":  codec.EncodeBase64URL(h.IV),
		"tag": codec.EncodeBase64URL(h.Tag),
	}
	if h.KeyID != nil {
		fields["kid"] = *h.KeyID
	}
	if h.Sender != nil {
		fields["sender"] = *h.Sender
	}
	if h.Destination != nil {
		fields["destination"] = *h.Destination
	}

	body, err := marshalJSON(fields)
	if err != nil {
		return "", err
	}

	cty, err := marshalJSON(h.ContentTypeOr(ContentTypeJSON))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.Grow(len(body) + len(cty) + 8)
	buf.WriteString(`{"cty":`)
	buf.Write(cty)
	buf.WriteByte(',')
	buf.Write(body[1:])

	return codec.EncodeBase64URL(buf.Bytes()), nil
}

// ParseHeader decodes a header segment. It never fails: fields that are
// missing, not strings, or not decodable are left absent, and input that is
// not a base64url JSON object yields the zero Header.
func ParseHeader(segment string) Header {
	raw, err := codec.DecodeBase64URL(segment)
	if err != nil {
		return Header{}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Header{}
	}

	var h Header
	h.ContentType = stringField(fields, "cty")
	if enc := stringField(fields, "enc"); enc != nil {
		h.Encryption = ContentEncryption(*enc)
	}
	if alg := stringField(fields, "alg"); alg != nil {
		h.Algorithm = KeyAlgorithm(*alg)
	}
	h.IV = bytesField(fields, "iv")
	h.Tag = bytesField(fields, "tag")
	h.KeyID = stringField(fields, "kid")
	h.Sender = stringField(fields, "sender")
	h.Destination = stringField(fields, "destination")

	return h
}

// IsZero reports whether no header field was recognized.
func (h Header) IsZero() bool {
	return h.ContentType == nil &&
		h.Encryption == "" &&
		h.Algorithm == "" &&
		len(h.IV) == 0 &&
		len(h.Tag) == 0 &&
		h.KeyID == nil &&
		h.Sender == nil &&
		h.Destination == nil
}

// ContentTypeOr returns the content type, or def when absent.
func (h Header) ContentTypeOr(def string) string {
	if h.ContentType == nil {
		return def
	}
	return *h.ContentType
}

// KID returns the key id, or "" when absent.
func (h Header) KID() string {
	if h.KeyID == nil {
		return ""
	}
	return *h.KeyID
}

func stringField(fields map[string]json.RawMessage, key string) *string {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	// null decodes into a string without error
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

func bytesField(fields map[string]json.RawMessage, key string) []byte {
	s := stringField(fields, key)
	if s == nil {
		return nil
	}

	b, err := codec.DecodeBase64URL(*s)
	if err != nil || len(b) == 0 {
		return nil
	}
	return b
}

// marshalJSON encodes v without HTML escaping and without the trailing newline.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func stringPtr(s string) *string {
	return &s
}
