package wire

import "encoding/binary"

// Cursor accumulates bytes written through its Push* methods into a growable buffer. It mirrors
// the push side of the original library's pull/push cursor discipline: a Cursor created with
// NewSizingCursor never allocates, it only counts the bytes that would have been written, so a
// caller can learn the exact encoded length of a value before allocating a destination buffer for
// it.
type Cursor struct {
	buf    []byte
	sizing bool
	needed int
}

// NewCursor returns a Cursor that appends to an internal buffer, starting from the given capacity
// hint.
func NewCursor(sizeHint int) *Cursor {
	return &Cursor{buf: make([]byte, 0, sizeHint)}
}

// NewSizingCursor returns a Cursor that performs no allocation or copying; every Push* call only
// adds to Needed(). This is the sizing pass used by GetLength.
func NewSizingCursor() *Cursor {
	return &Cursor{sizing: true}
}

// Needed returns the number of bytes pushed through this cursor. On a sizing cursor this is the
// total size that would be required of a destination buffer.
func (c *Cursor) Needed() int {
	if c.sizing {
		return c.needed
	}
	return len(c.buf)
}

// Bytes returns the accumulated buffer. It is nil for a sizing cursor.
func (c *Cursor) Bytes() []byte {
	return c.buf
}

// PushBytes appends b to the cursor.
func (c *Cursor) PushBytes(b []byte) {
	if c.sizing {
		c.needed += len(b)
		return
	}
	c.buf = append(c.buf, b...)
}

// PushByte appends a single byte.
func (c *Cursor) PushByte(b byte) {
	if c.sizing {
		c.needed++
		return
	}
	c.buf = append(c.buf, b)
}

// PushUint16 appends v little-endian.
func (c *Cursor) PushUint16(v uint16) {
	if c.sizing {
		c.needed += 2
		return
	}
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	c.buf = append(c.buf, b[:]...)
}

// PushUint32 appends v little-endian.
func (c *Cursor) PushUint32(v uint32) {
	if c.sizing {
		c.needed += 4
		return
	}
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	c.buf = append(c.buf, b[:]...)
}

// PushUint64 appends v little-endian.
func (c *Cursor) PushUint64(v uint64) {
	if c.sizing {
		c.needed += 8
		return
	}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	c.buf = append(c.buf, b[:]...)
}

// Reader pulls bytes off of a fixed source buffer. It mirrors the pull side of the original
// library's cursor discipline: once a read runs past the end of the source, the reader enters a
// sticky failed state. Every subsequent Pull* call becomes a no-op that returns a zeroed result
// rather than panicking or returning a partial value, and the failure is only surfaced once, when
// the caller checks Failed() at the end of parsing. This lets a parser make a long sequence of
// pulls without an error check after each one, exactly as the C source does.
type Reader struct {
	buf    []byte
	pos    int
	failed bool
}

// NewReader wraps buf for pulling.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Failed reports whether any pull on this reader has run past the end of the source buffer.
func (r *Reader) Failed() bool {
	return r.failed
}

// Remaining returns the number of unread bytes, or 0 if the reader has failed.
func (r *Reader) Remaining() int {
	if r.failed {
		return 0
	}
	return len(r.buf) - r.pos
}

// PullBytes reads exactly n bytes. On overrun it marks the reader failed and returns a slice of
// length n holding whatever bytes remained, with the tail zero-filled, matching the original's
// zero-pad-on-overrun behavior; a reader that had already failed returns all zeroes. A requested
// length that could not possibly be satisfied by the source buffer is capped before allocating, so
// a malformed length taken from untrusted input (a corrupt varbuff prefix, for instance) cannot
// force a multi-gigabyte allocation.
func (r *Reader) PullBytes(n int) []byte {
	if r.failed || n < 0 || r.pos+n > len(r.buf) {
		wasFailed := r.failed
		r.failed = true
		allocLen := n
		if cap := len(r.buf) + 8; allocLen > cap {
			allocLen = cap
		}
		if allocLen < 0 {
			allocLen = 0
		}
		out := make([]byte, allocLen)
		if !wasFailed {
			copy(out, r.buf[r.pos:])
		}
		return out
	}
	out := make([]byte, n)
	copy(out, r.buf[r.pos:r.pos+n])
	r.pos += n
	return out
}

// PullByte reads a single byte, or 0 on failure.
func (r *Reader) PullByte() byte {
	b := r.PullBytes(1)
	return b[0]
}

// PullUint16 reads a little-endian uint16, or 0 on failure.
func (r *Reader) PullUint16() uint16 {
	return binary.LittleEndian.Uint16(r.PullBytes(2))
}

// PullUint32 reads a little-endian uint32, or 0 on failure.
func (r *Reader) PullUint32() uint32 {
	return binary.LittleEndian.Uint32(r.PullBytes(4))
}

// PullUint64 reads a little-endian uint64, or 0 on failure.
func (r *Reader) PullUint64() uint64 {
	return binary.LittleEndian.Uint64(r.PullBytes(8))
}

// Skip advances the reader by n bytes without returning them, failing the same way PullBytes does
// on overrun.
func (r *Reader) Skip(n int) {
	r.PullBytes(n)
}

// PeekByte returns the next byte without advancing the reader, and whether one was available. It
// never marks the reader failed; a parser uses it to decide between two possible encodings (the
// SegWit marker versus an ordinary input count) before committing to either.
func (r *Reader) PeekByte() (byte, bool) {
	return r.PeekByteAt(0)
}

// PeekByteAt returns the byte offset bytes ahead of the current position without advancing the
// reader, and whether one was available.
func (r *Reader) PeekByteAt(offset int) (byte, bool) {
	if r.failed || offset < 0 || r.pos+offset >= len(r.buf) {
		return 0, false
	}
	return r.buf[r.pos+offset], true
}

// SubReader carves out the next n bytes as a bounded child Reader and advances the parent past
// them unconditionally, whether or not those bytes were actually available. If the parent has
// already failed, or does not have n bytes remaining, the child is created already failed and the
// parent is left in (or put into) the failed state -- a truncated sub-region fails both the child
// parse and everything the parent reads afterward, exactly as the C source's subfield helpers do.
func (r *Reader) SubReader(n int) *Reader {
	if r.failed || n < 0 || r.pos+n > len(r.buf) {
		r.failed = true
		return &Reader{failed: true}
	}
	child := &Reader{buf: r.buf[r.pos : r.pos+n]}
	r.pos += n
	return child
}
