package aead

// AES-GCM sizing used by the token format
const (
	// KeySize is the size of the AES-256 key, used for both the CEK and the
	// key-wrapping key
	KeySize = 32 // 256 bits

	// TagSize is the size of the GCM authentication tag
	TagSize = 16 // 128 bits

	// ContentIVSize is the size of the IV used for content encryption
	ContentIVSize = 16 // 128 bits

	// WrapIVSize is the size of the IV used to wrap the CEK
	WrapIVSize = 12 // 96 bits
)
