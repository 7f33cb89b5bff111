package p256

// Curve parameters for NIST P-256 elliptic curve
const (
	// CoordinateSize is the size in bytes of each coordinate (X or Y) and of the scalar D
	CoordinateSize = 32

	// UncompressedPointTag prefixes an uncompressed point: 0x04 || X || Y
	UncompressedPointTag = 0x04
)

// Key encoding sizes
const (
	// PrivateKeyBytes is the size of a raw private scalar
	PrivateKeyBytes = CoordinateSize // 32 bytes

	// PublicKeyBytes is the size of an uncompressed public key in bytes
	// Format: [tag:1][X:32][Y:32]
	PublicKeyBytes = 1 + CoordinateSize + CoordinateSize // 65 bytes

	// ExportedPrivateKeyBytes is the size of the CommonCrypto private key export
	// Format: [tag:1][X:32][Y:32][D:32]
	ExportedPrivateKeyBytes = PublicKeyBytes + CoordinateSize // 97 bytes

	// SharedSecretBytes is the size of the ECDH shared secret (the X coordinate)
	SharedSecretBytes = CoordinateSize
)

// SPKIPrefixHex is the DER SubjectPublicKeyInfo header (SEQUENCE, id-ecPublicKey,
// prime256v1, BIT STRING) that precedes the uncompressed point in the wire form
// of a public key. It is 26 bytes, 52 hex characters.
const SPKIPrefixHex = "3059301306072a8648ce3d020106082a8648ce3d030107034200"
