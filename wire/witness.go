package wire

// WitnessItem is one element of a TxIn's witness stack.
type WitnessItem []byte

// Len returns the encoded length of the item: 1 to 9 bytes of varint length prefix plus the item's
// own bytes.
func (w WitnessItem) Len() int {
	return VarBuffSerializeSize(w)
}

// WitnessStack is the ordered list of witness items carried by one SegWit input. A TxIn with a
// zero-length WitnessStack is indistinguishable on the wire from a TxIn with no witness data at
// all: the SegWit encoding writes an empty stack as a single 0x00 count byte.
type WitnessStack []WitnessItem

// Clone returns a deep copy of the stack.
func (s WitnessStack) Clone() WitnessStack {
	if s == nil {
		return nil
	}
	out := make(WitnessStack, len(s))
	for i, item := range s {
		cp := make(WitnessItem, len(item))
		copy(cp, item)
		out[i] = cp
	}
	return out
}

// AddDummy appends a placeholder item of the given kind, used to size a transaction before the
// real witness data (typically a signature and a public key) is available. DummyNull appends a
// zero-length item; DummySig appends a dummySigSize-byte filler standing in for a maximum-length
// DER-encoded ECDSA signature plus its trailing sighash-type byte.
func (s *WitnessStack) AddDummy(kind DummyKind) error {
	item, err := dummyItem(kind)
	if err != nil {
		return err
	}
	*s = append(*s, item)
	return nil
}

// SetDummy replaces the item at index with a placeholder of the given kind.
func (s WitnessStack) SetDummy(index int, kind DummyKind) error {
	if index < 0 || index >= len(s) {
		return errInvalidArgumentf("witness index %d out of range [0,%d)", index, len(s))
	}
	item, err := dummyItem(kind)
	if err != nil {
		return err
	}
	s[index] = item
	return nil
}

func dummyItem(kind DummyKind) (WitnessItem, error) {
	switch kind {
	case DummyNull:
		return WitnessItem{}, nil
	case DummySig:
		return make(WitnessItem, dummySigSize), nil
	default:
		return nil, errInvalidArgumentf("unrecognized dummy witness kind %d", kind)
	}
}

func pushWitnessStack(c *Cursor, s WitnessStack) {
	PushVarInt(c, uint64(len(s)))
	for _, item := range s {
		PushVarBuff(c, item)
	}
}

func pullWitnessStack(r *Reader) WitnessStack {
	n := PullVarInt(r)
	if n == 0 {
		return nil
	}
	// A witness stack element is at least one byte on the wire (its length prefix), so a claimed
	// count larger than the remaining bytes can never be satisfied; fail without allocating it.
	if n > uint64(r.Remaining()) {
		r.failed = true
		return nil
	}
	stack := make(WitnessStack, n)
	for i := range stack {
		stack[i] = PullVarBuff(r)
	}
	return stack
}
