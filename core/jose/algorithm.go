package jose

// KeyAlgorithm identifies the key management algorithm ("alg").
type KeyAlgorithm string

// ContentEncryption identifies the content encryption algorithm ("enc").
type ContentEncryption string

const (
	// A256GCMKW wraps the CEK with AES-256-GCM under the ECDH shared secret
	A256GCMKW KeyAlgorithm = "A256GCMKW"

	// A256GCM encrypts the content with AES-256-GCM under the CEK
	A256GCM ContentEncryption = "A256GCM"
)

// Content types carried in "cty"
const (
	ContentTypeJSON = "application/json"
	ContentTypeJWT  = "JWT"
)

const (
	jweParts = 5
	jwsParts = 3
)

// supported reports whether alg and enc form the one supported combination.
func supported(alg KeyAlgorithm, enc ContentEncryption) bool {
	return alg == A256GCMKW && enc == A256GCM
}
