// Package codec holds the byte/string encodings shared by the token engine:
// unpadded base64url, lowercase hex and UTF-8 conversion.
package codec

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidBase64URL indicates the input is not valid base64url
	ErrInvalidBase64URL = errors.New("codec: invalid base64url")

	// ErrInvalidHex indicates the input is not valid hexadecimal
	ErrInvalidHex = errors.New("codec: invalid hex")

	// ErrInvalidUTF8 indicates the bytes are not a valid UTF-8 sequence
	ErrInvalidUTF8 = errors.New("codec: invalid utf-8")
)

// EncodeBase64URL encodes b as base64url without padding.
func EncodeBase64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeBase64URL decodes a base64url string. Trailing padding is tolerated
// because some producers emit it. Non-zero trailing bits and line breaks are
// rejected so that every byte string has exactly one accepted encoding.
func DecodeBase64URL(s string) ([]byte, error) {
	if strings.ContainsAny(s, "\r\n") {
		return nil, ErrInvalidBase64URL
	}
	b, err := base64.RawURLEncoding.Strict().DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return nil, ErrInvalidBase64URL
	}
	return b, nil
}

// EncodeHex encodes b as lowercase hex.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeHex decodes a hex string of either case.
func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidHex
	}
	return b, nil
}

// UTF8Bytes returns the UTF-8 bytes of s.
func UTF8Bytes(s string) []byte {
	return []byte(s)
}

// UTF8String converts b to a string, rejecting invalid UTF-8.
func UTF8String(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}
