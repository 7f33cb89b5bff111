package codec

import (
	"bytes"
	"errors"
	"testing"
)

// TestBase64URL tests encoding and padding-tolerant decoding
func TestBase64URL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{name: "empty", input: "", want: []byte{}},
		{name: "unpadded", input: "AAECAwQFBgcICQoL", want: []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
		{name: "url alphabet", input: "-_8", want: []byte{0xfb, 0xff}},
		{name: "padded", input: "-_8=", want: []byte{0xfb, 0xff}},
		{name: "std alphabet rejected", input: "+/8", wantErr: true},
		{name: "garbage", input: "!!", wantErr: true},
		{name: "non-zero trailing bits", input: "-_9", wantErr: true},
		{name: "line break", input: "AAEC\nAwQF", wantErr: true},
		{name: "carriage return", input: "AAEC\rAwQF", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeBase64URL(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidBase64URL) {
					t.Fatalf("expected ErrInvalidBase64URL, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("got %x, want %x", got, tt.want)
			}
		})
	}

	if s := EncodeBase64URL([]byte{0xfb, 0xff}); s != "-_8" {
		t.Errorf("EncodeBase64URL = %q, want %q", s, "-_8")
	}
}

// TestHex tests hex round trips and case handling
func TestHex(t *testing.T) {
	b, err := DecodeHex("04ABcd")
	if err != nil {
		t.Fatalf("DecodeHex failed: %v", err)
	}
	if !bytes.Equal(b, []byte{0x04, 0xab, 0xcd}) {
		t.Errorf("unexpected bytes %x", b)
	}
	if s := EncodeHex(b); s != "04abcd" {
		t.Errorf("EncodeHex = %q", s)
	}

	for _, bad := range []string{"abc", "zz"} {
		if _, err := DecodeHex(bad); !errors.Is(err, ErrInvalidHex) {
			t.Errorf("DecodeHex(%q) expected ErrInvalidHex, got %v", bad, err)
		}
	}
}

// TestUTF8 tests string conversion
func TestUTF8(t *testing.T) {
	s, err := UTF8String(UTF8Bytes("héllo"))
	if err != nil || s != "héllo" {
		t.Fatalf("UTF8String = %q, %v", s, err)
	}

	if _, err := UTF8String([]byte{0xff, 0xfe}); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("expected ErrInvalidUTF8, got %v", err)
	}
}
