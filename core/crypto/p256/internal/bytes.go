package internal

// ZeroPad returns a fresh slice of the given length holding b right-aligned
// and left-padded with zeros. Longer input is returned unchanged so callers
// can reject it by length.
func ZeroPad(b []byte, length int) []byte {
	if len(b) > length {
		return b
	}

	result := make([]byte, length)
	copy(result[length-len(b):], b)
	return result
}

// Wipe overwrites b with zeros.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
