// Package netio implements the byte-stream sub-machine contract (§6.1):
// resumable Read/ReadExact/ReadToEnd/Write primitives that never touch
// a socket themselves. Every primitive here is a black box from the
// point of view of internal/http1: it only ever surfaces an IoIntent
// and accepts its completed counterpart back on the next Resume call.
package netio

import "github.com/valyala/bytebufferpool"

// DefaultBufSize is the scratch buffer size handed out by NewBuffer
// when the caller does not request a specific capacity. It mirrors the
// teacher's netx.DefaultBufSize.
const DefaultBufSize = 4096

var pool bytebufferpool.Pool

// Buffer is a reusable, poolable byte buffer. Ownership of a Buffer
// moves between a machine and its driver with each suspension; exactly
// one party holds it at any time, so Buffer itself does no internal
// synchronization.
type Buffer struct {
	bb *bytebufferpool.ByteBuffer
}

// NewBuffer returns a Buffer whose backing slice has length size,
// drawn from a shared pool to avoid a fresh allocation on every
// suspension round-trip.
func NewBuffer(size int) *Buffer {
	if size <= 0 {
		size = DefaultBufSize
	}
	bb := pool.Get()
	if cap(bb.B) < size {
		bb.B = make([]byte, size)
	} else {
		bb.B = bb.B[:size]
	}
	return &Buffer{bb: bb}
}

// Bytes returns the full scratch region. A driver fulfilling a Read
// intent writes into this slice starting at offset 0 and reports how
// many bytes it filled; a driver fulfilling a Write intent reads from
// it instead.
func (b *Buffer) Bytes() []byte {
	if b == nil || b.bb == nil {
		return nil
	}
	return b.bb.B
}

// WrapBytes builds a Buffer around an existing slice without drawing
// from the pool, for the write side where the bytes to send already
// exist (a request's serialized wire form) rather than being a fresh
// scratch region to read into.
func WrapBytes(b []byte) *Buffer {
	return &Buffer{bb: &bytebufferpool.ByteBuffer{B: b}}
}

// Release returns the buffer to the shared pool. Call this once a
// buffer is no longer needed by any machine (e.g. after its bytes have
// been copied into an accumulator).
func (b *Buffer) Release() {
	if b == nil || b.bb == nil {
		return
	}
	pool.Put(b.bb)
	b.bb = nil
}
