package frd

// Buffer is a reusable byte buffer whose length only ever grows.
//
// Event headers are read first to learn the total record size, then the
// buffer is grown and the rest of the record is read behind the header. Any
// EventView built over the previous backing array must be rebuilt after Grow
// reports a reallocation.
type Buffer struct {
	b []byte
}

// NewBuffer returns a buffer of length n.
func NewBuffer(n int) *Buffer {
	if n < 0 {
		n = 0
	}
	return &Buffer{b: make([]byte, n)}
}

// Len returns the current length of the buffer.
func (b *Buffer) Len() int { return len(b.b) }

// Grow ensures the buffer is at least n bytes long, keeping its contents.
// It reports whether the backing array was replaced.
func (b *Buffer) Grow(n int) bool {
	if n <= len(b.b) {
		return false
	}
	if n <= cap(b.b) {
		b.b = b.b[:n]
		return false
	}
	nb := make([]byte, n)
	copy(nb, b.b)
	b.b = nb
	return true
}

// Bytes returns the first n bytes of the buffer. It panics if n exceeds Len.
func (b *Buffer) Bytes(n int) []byte {
	return b.b[:n:n]
}
