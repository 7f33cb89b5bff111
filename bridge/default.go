package bridge

// Default is used by the package level functions
var Default = New()

func CreateKeyPair() KeyPair {
	return Default.CreateKeyPair()
}

func Encrypt(keyID, privateKeyHex, peerPublicKeyHex, plaintext string) (string, error) {
	return Default.Encrypt(keyID, privateKeyHex, peerPublicKeyHex, plaintext)
}

func Decrypt(keyID, privateKeyHex, peerPublicKeyHex, token string, opts ...DecryptOption) (string, error) {
	return Default.Decrypt(keyID, privateKeyHex, peerPublicKeyHex, token, opts...)
}
