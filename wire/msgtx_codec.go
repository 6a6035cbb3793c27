package wire

import (
	"encoding/hex"

	"github.com/chainworks/txcore/bitcoin"
)

const (
	segWitMarker byte = 0x00
	segWitFlag   byte = 0x01
)

// GetLength returns the number of bytes ToBytes would produce for tx under flags, without
// allocating or writing the encoding itself.
func (tx *MsgTx) GetLength(flags EncodeFlag) (int, error) {
	c := NewSizingCursor()
	if err := tx.push(c, flags); err != nil {
		return 0, err
	}
	return c.Needed(), nil
}

// ToBytes encodes tx to the wire format selected by flags. With FlagUseWitness set and at least
// one input carrying witness data, the result uses the SegWit layout (BIP-144): a marker byte, a
// flag byte, the inputs, the outputs, each input's witness stack in input order, then the lock
// time. Otherwise it uses the legacy layout: version, inputs, outputs, lock time. A transaction
// with no witness data on any input serializes identically either way, since FlagUseWitness alone
// does not force the marker/flag bytes to be written.
func (tx *MsgTx) ToBytes(flags EncodeFlag) ([]byte, error) {
	n, err := tx.GetLength(flags)
	if err != nil {
		return nil, err
	}
	c := NewCursor(n)
	if err := tx.push(c, flags); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

// ToHex encodes tx under flags and returns it as a lowercase hex string.
func (tx *MsgTx) ToHex(flags EncodeFlag) (string, error) {
	b, err := tx.ToBytes(flags)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (tx *MsgTx) push(c *Cursor, flags EncodeFlag) error {
	if tx == nil {
		return errInvalidArgumentf("nil transaction")
	}
	if flags&^flagsAllEncode != 0 {
		return errInvalidArgumentf("unrecognized encode flag bits 0x%x", uint32(flags&^flagsAllEncode))
	}

	witness := flags&FlagUseWitness != 0 && tx.HasWitness()

	c.PushUint32(uint32(tx.Version))

	if witness {
		c.PushByte(segWitMarker)
		c.PushByte(segWitFlag)
	}

	PushVarInt(c, uint64(len(tx.TxIn)))
	for _, in := range tx.TxIn {
		pushTxIn(c, in)
	}

	PushVarInt(c, uint64(len(tx.TxOut)))
	for _, out := range tx.TxOut {
		pushTxOut(c, out)
	}

	if witness {
		for _, in := range tx.TxIn {
			pushWitnessStack(c, in.Witness)
		}
	}

	c.PushUint32(tx.LockTime)
	return nil
}

func pushTxIn(c *Cursor, in *TxIn) {
	hashBytes := in.PreviousOutPoint.Hash.Bytes()
	c.PushBytes(hashBytes[:])
	c.PushUint32(in.PreviousOutPoint.Index)
	PushVarBuff(c, in.SignatureScript)
	c.PushUint32(in.Sequence)
}

func pushTxOut(c *Cursor, out *TxOut) {
	c.PushUint64(uint64(out.Value))
	PushVarBuff(c, out.PkScript)
}

// FromBytes parses a transaction from its wire encoding. It detects the SegWit layout itself, by
// looking for the zero-valued marker byte immediately following the version field; callers never
// pass a flag to select the layout on decode. Trailing bytes after a complete transaction, a
// truncated stream, or a SegWit marker whose flag byte is not 0x01 are all reported as malformed.
func FromBytes(b []byte) (*MsgTx, error) {
	r := NewReader(b)
	tx, err := pullMsgTx(r)
	if err != nil {
		return nil, err
	}
	if r.Failed() {
		return nil, errMalformedf("truncated transaction data")
	}
	if r.Remaining() != 0 {
		return nil, errMalformedf("%d trailing bytes after transaction", r.Remaining())
	}
	return tx, nil
}

// FromHex decodes s and parses the result with FromBytes.
func FromHex(s string) (*MsgTx, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errMalformedf("invalid hex: %s", err)
	}
	return FromBytes(b)
}

func pullMsgTx(r *Reader) (*MsgTx, error) {
	tx := &MsgTx{Version: int32(r.PullUint32())}

	// A marker byte of 0x00 is ambiguous with the canonical one-byte encoding of a zero input
	// count: a legacy transaction with no inputs begins with the same byte a SegWit transaction's
	// marker does. The two are told apart by looking one byte further: a genuine SegWit encoding
	// always follows the marker with a nonzero flag byte (0x01 today). If that second byte is also
	// zero, this is not SegWit at all -- it is a zero-input legacy transaction whose first byte we
	// must leave for the input-count varint to read normally, with the second zero byte left in
	// place to begin the output count.
	witness := false
	if b0, ok := r.PeekByte(); ok && b0 == segWitMarker {
		if b1, ok := r.PeekByteAt(1); ok && b1 != 0 {
			if b1 != segWitFlag {
				return nil, errMalformedf("unsupported segwit flag byte 0x%x", b1)
			}
			r.Skip(2)
			witness = true
		}
	}

	// Every input and output occupies at least one byte on the wire, so a claimed count larger than
	// the remaining bytes can never be satisfied; reject it before allocating a slice that size.
	inCount := PullVarInt(r)
	if inCount > uint64(r.Remaining()) {
		r.failed = true
		return tx, nil
	}
	tx.TxIn = make([]*TxIn, inCount)
	for i := range tx.TxIn {
		tx.TxIn[i] = pullTxIn(r)
	}

	outCount := PullVarInt(r)
	if outCount > uint64(r.Remaining()) {
		r.failed = true
		return tx, nil
	}
	tx.TxOut = make([]*TxOut, outCount)
	for i := range tx.TxOut {
		tx.TxOut[i] = pullTxOut(r)
	}

	if witness {
		for _, in := range tx.TxIn {
			in.Witness = pullWitnessStack(r)
		}
	}

	tx.LockTime = r.PullUint32()
	return tx, nil
}

func pullTxIn(r *Reader) *TxIn {
	in := &TxIn{}
	var hash bitcoin.Hash32
	hash.SetBytes(r.PullBytes(32))
	in.PreviousOutPoint.Hash = hash
	in.PreviousOutPoint.Index = r.PullUint32()
	in.SignatureScript = PullVarBuff(r)
	in.Sequence = r.PullUint32()
	return in
}

func pullTxOut(r *Reader) *TxOut {
	out := &TxOut{Value: int64(r.PullUint64())}
	out.PkScript = PullVarBuff(r)
	return out
}

// TxID returns the double-SHA-256 of tx's legacy (non-witness) serialization, in the internal
// (little-endian, not display) byte order used throughout this package.
func (tx *MsgTx) TxID() (*bitcoin.Hash32, error) {
	b, err := tx.ToBytes(0)
	if err != nil {
		return nil, err
	}
	return bitcoin.NewHash32(bitcoin.DoubleSha256(b))
}

// WTxID returns the double-SHA-256 of tx's witness serialization. For a transaction with no
// witness data on any input this is identical to TxID.
func (tx *MsgTx) WTxID() (*bitcoin.Hash32, error) {
	b, err := tx.ToBytes(FlagUseWitness)
	if err != nil {
		return nil, err
	}
	return bitcoin.NewHash32(bitcoin.DoubleSha256(b))
}
