package wire

const (
	varIntPrefix16 = 0xfd
	varIntPrefix32 = 0xfe
	varIntPrefix64 = 0xff
)

// VarIntSerializeSize returns the number of bytes the canonical (shortest-form) encoding of v
// occupies.
func VarIntSerializeSize(v uint64) int {
	switch {
	case v < varIntPrefix16:
		return 1
	case v <= 0xffff:
		return 3
	case v <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// PushVarInt writes v to c in its canonical, shortest-form encoding.
func PushVarInt(c *Cursor, v uint64) {
	switch {
	case v < varIntPrefix16:
		c.PushByte(byte(v))
	case v <= 0xffff:
		c.PushByte(varIntPrefix16)
		c.PushUint16(uint16(v))
	case v <= 0xffffffff:
		c.PushByte(varIntPrefix32)
		c.PushUint32(uint32(v))
	default:
		c.PushByte(varIntPrefix64)
		c.PushUint64(v)
	}
}

// PullVarInt reads a varint from r. Unlike a strict decoder, it tolerates non-canonical
// encodings on input: a prefix byte followed by a width wider than the value requires (for
// example 0xfd 0x01 0x00, a 3-byte encoding of the value 1, which could have fit in a single byte)
// is accepted and decoded rather than rejected. Encoding always produces the canonical form;
// tolerance only applies to decoding.
func PullVarInt(r *Reader) uint64 {
	prefix := r.PullByte()
	switch prefix {
	case varIntPrefix16:
		return uint64(r.PullUint16())
	case varIntPrefix32:
		return uint64(r.PullUint32())
	case varIntPrefix64:
		return r.PullUint64()
	default:
		return uint64(prefix)
	}
}

// PushVarBuff writes b to c as a varint length prefix followed by b's bytes.
func PushVarBuff(c *Cursor, b []byte) {
	PushVarInt(c, uint64(len(b)))
	c.PushBytes(b)
}

// VarBuffSerializeSize returns the number of bytes PushVarBuff would write for b.
func VarBuffSerializeSize(b []byte) int {
	return VarIntSerializeSize(uint64(len(b))) + len(b)
}

// PullVarBuff reads a varint length prefix followed by that many bytes from r. If the prefix claims
// more bytes than remain (including a truncated prefix read as zero-padded), no bytes are copied:
// r.Failed() becomes true and the returned slice is empty.
func PullVarBuff(r *Reader) []byte {
	n := PullVarInt(r)
	if n > uint64(r.Remaining()) || n > uint64(^uint(0)>>1) {
		r.failed = true
		return r.PullBytes(0)
	}
	return r.PullBytes(int(n))
}
