package pool

import (
	"sync"
)

// BufferPool implements a pool of byte slices for efficient memory reuse
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a new buffer pool with buffers of the specified size
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get retrieves a buffer from the pool or creates a new one if none are available
func (bp *BufferPool) Get() *[]byte {
	return bp.pool.Get().(*[]byte)
}

// Put returns a buffer to the pool for reuse
func (bp *BufferPool) Put(buffer *[]byte) {
	// Reset buffer length but keep capacity
	*buffer = (*buffer)[:0]
	bp.pool.Put(buffer)
}

// maxPooledCells caps the tables kept for reuse so one huge comparison does
// not pin its arena in memory.
const maxPooledCells = 1 << 22

// IntPool implements a pool of int slices backing dynamic-programming tables
type IntPool struct {
	pool sync.Pool
}

// NewIntPool creates a new int slice pool
func NewIntPool() *IntPool {
	return &IntPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]int, 0)
				return &buffer
			},
		},
	}
}

// Get returns a zeroed slice of length n, reusing pooled capacity when possible
func (ip *IntPool) Get(n int) *[]int {
	buffer := ip.pool.Get().(*[]int)
	if cap(*buffer) < n {
		*buffer = make([]int, n)
		return buffer
	}
	*buffer = (*buffer)[:n]
	clear(*buffer)
	return buffer
}

// Put returns a slice to the pool unless it is too large to keep around
func (ip *IntPool) Put(buffer *[]int) {
	if cap(*buffer) > maxPooledCells {
		return
	}
	*buffer = (*buffer)[:0]
	ip.pool.Put(buffer)
}
