// Package jose implements the compact JWE used between session peers:
// ECDH P-256 shared secret, A256GCMKW key wrapping and A256GCM content
// encryption, plus a parser for the compact JWS that JWT content carries.
//
// Wire format:
//
//	BASE64URL(header) . BASE64URL(wrapped CEK) . BASE64URL(content IV) .
//	BASE64URL(ciphertext) . BASE64URL(content tag)
//
// The wrap IV and wrap tag travel in the header, and the encoded header is
// the AAD of the content encryption.
//
// When the header cty is "JWT" the plaintext is a compact JWS and Decrypt
// returns its "data" claim. The JWS signature is not checked unless a
// Verifier is passed with WithVerifier, so without one the content is only
// as trustworthy as the shared secret.
//
// Example usage:
//
//	secret, _ := p256.DeriveSharedSecret(alice, bobWireHex)
//	sealed, err := jose.Encrypt(secret, jose.NewHeaderParams().WithKeyID("k1"), []byte("ping"))
//
//	secret, _ = p256.DeriveSharedSecret(bob, aliceWireHex)
//	opened, err := jose.Decrypt(secret, sealed.Token, jose.WithExpectedKeyID("k1"))
//	data, _ := opened.Data() // "ping"
package jose
