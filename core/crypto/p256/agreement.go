// Package p256 implements key generation, key import and raw ECDH key
// agreement on the NIST P-256 curve.
//
// The shared secret returned by DeriveSharedSecret is the X coordinate of the
// shared point and is used directly as an AES-256 key-wrapping key. No KDF is
// applied; peers depend on that.
//
// Example usage:
//
//	alice := p256.MustGenerateKey()
//	bob := p256.MustGenerateKey()
//
//	s1, _ := p256.DeriveSharedSecret(alice, bob.Public().WireHex())
//	s2, _ := p256.DeriveSharedSecret(bob, alice.Public().WireHex())
//	// s1 == s2
package p256

// DeriveSharedSecret strips the SPKI prefix from peerPublicKey, parses the
// point and returns the ECDH shared secret with priv.
func DeriveSharedSecret(priv *PrivateKey, peerPublicKey string) ([]byte, error) {
	if priv == nil {
		return nil, ErrPrivateKeyEmpty
	}

	peer, err := ParsePublicKeyHex(peerPublicKey)
	if err != nil {
		return nil, err
	}
	return priv.ECDH(peer)
}

// DeriveSharedSecretHex is DeriveSharedSecret over a hex encoded private key.
func DeriveSharedSecretHex(privateKeyHex, peerPublicKey string) ([]byte, error) {
	priv, err := ParsePrivateKeyHex(privateKeyHex)
	if err != nil {
		return nil, err
	}
	defer priv.Destroy()
	return DeriveSharedSecret(priv, peerPublicKey)
}
