package aead

import (
	"sync"
)

// bufferPool holds scratch buffers for ciphertext || tag reassembly.
var bufferPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, 1024)
		return &buf
	},
}

// getBuffer retrieves a zero-length buffer with at least minCapacity.
func getBuffer(minCapacity int) []byte {
	bufPtr := bufferPool.Get().(*[]byte)
	buf := *bufPtr

	if cap(buf) < minCapacity {
		buf = make([]byte, 0, minCapacity)
	}

	return buf[:0]
}

// putBuffer wipes buf and returns it to the pool. Large buffers are dropped.
func putBuffer(buf []byte) {
	const maxPooledBufferSize = 64 * 1024

	if cap(buf) > maxPooledBufferSize {
		return
	}

	buf = buf[:cap(buf)]
	clear(buf)
	buf = buf[:0]
	bufferPool.Put(&buf)
}
