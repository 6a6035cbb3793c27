package wire

import "github.com/chainworks/txcore/bitcoin"

// OutPoint identifies a specific output of a specific previous transaction.
type OutPoint struct {
	Hash  bitcoin.Hash32
	Index uint32
}

// TxIn is one input of a transaction: a reference to a previous output, the script that satisfies
// that output's locking script, a sequence number, and -- for a SegWit input -- a witness stack
// carried outside the legacy signature-hash domain.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Sequence         uint32
	Witness          WitnessStack
}

// NewTxIn returns a TxIn referencing prevOut, with the maximum sequence number and no witness.
func NewTxIn(prevOut OutPoint, signatureScript []byte) *TxIn {
	return &TxIn{
		PreviousOutPoint: prevOut,
		SignatureScript:  signatureScript,
		Sequence:         MaxTxInSequenceNum,
	}
}

// HasWitness reports whether this input carries any witness data.
func (in *TxIn) HasWitness() bool {
	return len(in.Witness) > 0
}

// Clone returns a deep copy of in.
func (in *TxIn) Clone() *TxIn {
	if in == nil {
		return nil
	}
	cp := &TxIn{
		PreviousOutPoint: in.PreviousOutPoint,
		Sequence:         in.Sequence,
	}
	if in.SignatureScript != nil {
		cp.SignatureScript = make([]byte, len(in.SignatureScript))
		copy(cp.SignatureScript, in.SignatureScript)
	}
	cp.Witness = in.Witness.Clone()
	return cp
}

// SerializeSize returns the number of bytes this input occupies in the non-witness portion of the
// transaction (the part that is hashed identically whether or not the encoding carries witness
// data).
func (in *TxIn) SerializeSize() int {
	return 32 + 4 + VarBuffSerializeSize(in.SignatureScript) + 4
}

// WitnessSerializeSize returns the number of bytes this input's witness stack occupies, including
// its item count prefix. An input with no witness data occupies 1 byte (a zero count).
func (in *TxIn) WitnessSerializeSize() int {
	size := VarIntSerializeSize(uint64(len(in.Witness)))
	for _, item := range in.Witness {
		size += item.Len()
	}
	return size
}

// MaxTxInSequenceNum is the default, "final" sequence number: with every input at this value,
// LockTime is not enforced and the transaction may not be replaced (BIP-125 opts back in by
// setting any input's sequence below this).
const MaxTxInSequenceNum uint32 = 0xffffffff

// TxOut is one output of a transaction: an amount, denominated in satoshis, and the locking script
// that must be satisfied to spend it.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// NewTxOut returns a TxOut paying value satoshis to pkScript.
func NewTxOut(value int64, pkScript []byte) *TxOut {
	return &TxOut{Value: value, PkScript: pkScript}
}

// Clone returns a deep copy of out.
func (out *TxOut) Clone() *TxOut {
	if out == nil {
		return nil
	}
	cp := &TxOut{Value: out.Value}
	if out.PkScript != nil {
		cp.PkScript = make([]byte, len(out.PkScript))
		copy(cp.PkScript, out.PkScript)
	}
	return cp
}

// SerializeSize returns the number of bytes this output occupies on the wire.
func (out *TxOut) SerializeSize() int {
	return 8 + VarBuffSerializeSize(out.PkScript)
}

// TxVersion1 and TxVersion2 are the named transaction versions. Neither construction nor parsing
// is restricted to them: NewMsgTx records whatever version it is given without checking it, and
// FromBytes never rejects an unrecognized version, it only records the raw value.
const (
	TxVersion1 int32 = 1
	TxVersion2 int32 = 2
)

// MsgTx is an in-memory Bitcoin transaction: a version, an ordered list of inputs, an ordered list
// of outputs, and a lock time. It has no script-execution or UTXO-validation behavior of its own;
// those belong to a consumer that understands the meaning of SignatureScript and PkScript.
type MsgTx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// NewMsgTx returns an empty transaction of the given version.
func NewMsgTx(version int32) *MsgTx {
	return &MsgTx{Version: version}
}

// AddTxIn appends in to the transaction's input list.
func (tx *MsgTx) AddTxIn(in *TxIn) {
	tx.TxIn = append(tx.TxIn, in)
}

// AddTxOut appends out to the transaction's output list.
func (tx *MsgTx) AddTxOut(out *TxOut) {
	tx.TxOut = append(tx.TxOut, out)
}

// RemoveTxIn removes the input at index, shifting later inputs down.
func (tx *MsgTx) RemoveTxIn(index int) error {
	if index < 0 || index >= len(tx.TxIn) {
		return errInvalidArgumentf("input index %d out of range [0,%d)", index, len(tx.TxIn))
	}
	tx.TxIn = append(tx.TxIn[:index], tx.TxIn[index+1:]...)
	return nil
}

// RemoveTxOut removes the output at index, shifting later outputs down.
func (tx *MsgTx) RemoveTxOut(index int) error {
	if index < 0 || index >= len(tx.TxOut) {
		return errInvalidArgumentf("output index %d out of range [0,%d)", index, len(tx.TxOut))
	}
	tx.TxOut = append(tx.TxOut[:index], tx.TxOut[index+1:]...)
	return nil
}

// ReplaceTxInScript replaces the signature script of the input at index.
func (tx *MsgTx) ReplaceTxInScript(index int, script []byte) error {
	if index < 0 || index >= len(tx.TxIn) {
		return errInvalidArgumentf("input index %d out of range [0,%d)", index, len(tx.TxIn))
	}
	tx.TxIn[index].SignatureScript = script
	return nil
}

// ReplaceTxInWitness replaces the witness stack of the input at index.
func (tx *MsgTx) ReplaceTxInWitness(index int, witness WitnessStack) error {
	if index < 0 || index >= len(tx.TxIn) {
		return errInvalidArgumentf("input index %d out of range [0,%d)", index, len(tx.TxIn))
	}
	tx.TxIn[index].Witness = witness
	return nil
}

// HasWitness reports whether any input of tx carries witness data. A transaction for which this
// is false serializes identically whether or not FlagUseWitness is set.
func (tx *MsgTx) HasWitness() bool {
	for _, in := range tx.TxIn {
		if in.HasWitness() {
			return true
		}
	}
	return false
}

// Copy returns a deep copy of tx.
func (tx *MsgTx) Copy() *MsgTx {
	if tx == nil {
		return nil
	}
	cp := &MsgTx{Version: tx.Version, LockTime: tx.LockTime}
	if tx.TxIn != nil {
		cp.TxIn = make([]*TxIn, len(tx.TxIn))
		for i, in := range tx.TxIn {
			cp.TxIn[i] = in.Clone()
		}
	}
	if tx.TxOut != nil {
		cp.TxOut = make([]*TxOut, len(tx.TxOut))
		for i, out := range tx.TxOut {
			cp.TxOut[i] = out.Clone()
		}
	}
	return cp
}
