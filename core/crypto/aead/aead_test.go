package aead

import (
	"bytes"
	"errors"
	"testing"
)

func mustRandom(t *testing.T, n int) []byte {
	t.Helper()
	b, err := Random(n)
	if err != nil {
		t.Fatalf("Random(%d) failed: %v", n, err)
	}
	return b
}

// TestSealOpen tests round trips with both IV sizes
func TestSealOpen(t *testing.T) {
	key := mustRandom(t, KeySize)
	aad := []byte("eyJhbGciOiJBMjU2R0NNS1cifQ")

	tests := []struct {
		name      string
		ivSize    int
		plaintext []byte
	}{
		{"content iv", ContentIVSize, []byte("hello world")},
		{"wrap iv", WrapIVSize, mustRandom(t, KeySize)},
		{"empty plaintext", ContentIVSize, []byte{}},
		{"large plaintext", ContentIVSize, bytes.Repeat([]byte("x"), 100*1024)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv := mustRandom(t, tt.ivSize)

			ct, tag, err := Seal(key, tt.plaintext, iv, aad)
			if err != nil {
				t.Fatalf("Seal failed: %v", err)
			}
			if len(tag) != TagSize {
				t.Errorf("tag length = %d, want %d", len(tag), TagSize)
			}
			if len(ct) != len(tt.plaintext) {
				t.Errorf("ciphertext length = %d, want %d", len(ct), len(tt.plaintext))
			}

			pt, err := Open(key, ct, tag, iv, aad)
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			if !bytes.Equal(pt, tt.plaintext) {
				t.Error("plaintext mismatch")
			}
		})
	}
}

// TestOpenTampered tests that any modified input fails authentication
func TestOpenTampered(t *testing.T) {
	key := mustRandom(t, KeySize)
	iv := mustRandom(t, ContentIVSize)
	aad := []byte("header")

	ct, tag, err := Seal(key, []byte("attack at dawn"), iv, aad)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	flip := func(b []byte) []byte {
		c := bytes.Clone(b)
		c[0] ^= 0x01
		return c
	}

	tests := []struct {
		name string
		key  []byte
		ct   []byte
		tag  []byte
		iv   []byte
		aad  []byte
	}{
		{"ciphertext", key, flip(ct), tag, iv, aad},
		{"tag", key, ct, flip(tag), iv, aad},
		{"iv", key, ct, tag, flip(iv), aad},
		{"aad", key, ct, tag, iv, []byte("Header")},
		{"key", flip(key), ct, tag, iv, aad},
		{"short tag", key, ct, tag[:8], iv, aad},
		{"empty iv", key, ct, tag, nil, aad},
		{"bad key size", key[:7], ct, tag, iv, aad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.key, tt.ct, tt.tag, tt.iv, tt.aad)
			if !errors.Is(err, ErrDecryptionFailed) {
				t.Errorf("Open() error = %v, want ErrDecryptionFailed", err)
			}
		})
	}
}

// TestSealInvalidInput tests Seal parameter validation
func TestSealInvalidInput(t *testing.T) {
	if _, _, err := Seal(make([]byte, 7), []byte("x"), make([]byte, 12), nil); !errors.Is(err, ErrInvalidKeySize) {
		t.Errorf("bad key: error = %v, want ErrInvalidKeySize", err)
	}
	if _, _, err := Seal(make([]byte, KeySize), []byte("x"), nil, nil); !errors.Is(err, ErrInvalidIV) {
		t.Errorf("empty iv: error = %v, want ErrInvalidIV", err)
	}
}

// TestFixupTag tests re-splitting of short tags
func TestFixupTag(t *testing.T) {
	key := mustRandom(t, KeySize)
	iv := mustRandom(t, ContentIVSize)
	plaintext := []byte("a message longer than one tag")

	ct, tag, err := Seal(key, plaintext, iv, nil)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	// Producer moved half of the tag into the ciphertext segment
	badCT := append(bytes.Clone(ct), tag[:8]...)
	badTag := bytes.Clone(tag[8:])

	fixedCT, fixedTag := FixupTag(badCT, badTag)
	if !bytes.Equal(fixedCT, ct) || !bytes.Equal(fixedTag, tag) {
		t.Fatal("FixupTag did not restore the original split")
	}

	pt, err := Open(key, fixedCT, fixedTag, iv, nil)
	if err != nil {
		t.Fatalf("Open after fixup failed: %v", err)
	}
	if !bytes.Equal(pt, plaintext) {
		t.Error("plaintext mismatch")
	}

	// Full-size tags and tiny inputs pass through unchanged
	if c, g := FixupTag(ct, tag); !bytes.Equal(c, ct) || !bytes.Equal(g, tag) {
		t.Error("full tag was modified")
	}
	if c, g := FixupTag([]byte{1, 2}, []byte{3}); len(c) != 2 || len(g) != 1 {
		t.Error("short pair was modified")
	}
}

// TestRandomFrom tests reading from a custom source
func TestRandomFrom(t *testing.T) {
	src := bytes.NewReader([]byte{1, 2, 3, 4})

	b, err := RandomFrom(src, 3)
	if err != nil {
		t.Fatalf("RandomFrom failed: %v", err)
	}
	if !bytes.Equal(b, []byte{1, 2, 3}) {
		t.Errorf("RandomFrom = %v", b)
	}

	if _, err := RandomFrom(src, 3); err == nil {
		t.Error("expected error on short source")
	}
}

// TestBufferPool tests that pooled buffers come back empty
func TestBufferPool(t *testing.T) {
	buf := getBuffer(16)
	buf = append(buf, bytes.Repeat([]byte{0xff}, 16)...)
	putBuffer(buf)

	next := getBuffer(16)
	if len(next) != 0 {
		t.Errorf("pooled buffer length = %d, want 0", len(next))
	}
	for _, b := range next[:cap(next)] {
		if b != 0 {
			t.Fatal("pooled buffer was not wiped")
		}
	}
}

func BenchmarkSeal(b *testing.B) {
	key, _ := Random(KeySize)
	iv, _ := Random(ContentIVSize)
	data := bytes.Repeat([]byte("x"), 1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = Seal(key, data, iv, nil)
	}
}
