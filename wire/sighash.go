package wire

import "github.com/chainworks/txcore/bitcoin"

// sigHashSingleBug is the digest returned by the legacy sighash algorithm when the hash type is
// SINGLE and the input being signed has no corresponding output. It is a historical defect in the
// original algorithm (the value that happened to come out of an uninitialized-then-hashed buffer
// in the reference implementation) that every compatible signer and verifier must reproduce rather
// than "fix".
var sigHashSingleBug = bitcoin.Hash32{0x01}

// opCodeSeparator is the script opcode the legacy sighash algorithm strips from the previous
// output's locking script before substituting it into the signing input. The strip is a raw byte
// removal, not script-aware parsing, reproducing the same textbook quirk as the original: a push
// of data that happens to contain this byte value loses it too.
const opCodeSeparator = 0xab

func stripCodeSeparators(script []byte) []byte {
	out := make([]byte, 0, len(script))
	for _, b := range script {
		if b == opCodeSeparator {
			continue
		}
		out = append(out, b)
	}
	return out
}

// SigHashExtra carries bytes the caller wants spliced into the signature hash preimage at a fixed
// offset before hashing, used by sighash variants (such as Bitcoin Cash's fork-id scheme) that
// reuse the BIP-143 preimage shape with extra fields appended. Most callers leave this nil.
type SigHashExtra struct {
	Bytes  []byte
	Offset int
}

func (e *SigHashExtra) apply(preimage []byte) []byte {
	if e == nil || len(e.Bytes) == 0 {
		return preimage
	}
	offset := e.Offset
	if offset < 0 || offset > len(preimage) {
		offset = len(preimage)
	}
	out := make([]byte, 0, len(preimage)+len(e.Bytes))
	out = append(out, preimage[:offset]...)
	out = append(out, e.Bytes...)
	out = append(out, preimage[offset:]...)
	return out
}

// CalcSignatureHash computes the pre-SegWit ("legacy") signature hash for the input at inputIndex,
// signing against prevOutScript as the effective scriptSig, per the original substitution
// algorithm: every other input's signature script is blanked, the OP_CODESEPARATOR byte is
// stripped from prevOutScript, and the output set is trimmed or blanked according to hashType's
// NONE/SINGLE base and ANYONECANPAY bit. A SINGLE hash type on an input with no corresponding
// output returns the fixed SIGHASH_SINGLE bug digest instead of computing anything.
//
// txSigHash, when non-nil, is the word written into the preimage's trailing hash-type field in
// place of hashType itself. hashType always selects the ALL/NONE/SINGLE/ANYONECANPAY branching;
// txSigHash only changes the literal 32-bit value that ends up embedded and hashed, which a
// sighash variant built on this same substitution algorithm but with a differently shifted or
// extended hash-type word (for example one with extra high bits set) needs to control
// independently. A nil txSigHash reproduces the common case where the two coincide.
func CalcSignatureHash(tx *MsgTx, inputIndex int, prevOutScript []byte, hashType SigHashType, txSigHash *SigHashType) (*bitcoin.Hash32, error) {
	if tx == nil {
		return nil, errInvalidArgumentf("nil transaction")
	}
	if inputIndex < 0 || inputIndex >= len(tx.TxIn) {
		return nil, errInvalidArgumentf("input index %d out of range [0,%d)", inputIndex, len(tx.TxIn))
	}

	base := hashType.base()
	if base == SigHashSingle && inputIndex >= len(tx.TxOut) {
		bug := sigHashSingleBug
		return &bug, nil
	}

	word := hashType
	if txSigHash != nil {
		word = *txSigHash
	}

	work := tx.Copy()
	for _, in := range work.TxIn {
		in.Witness = nil
	}

	sigScript := stripCodeSeparators(prevOutScript)
	for i, in := range work.TxIn {
		if i == inputIndex {
			in.SignatureScript = sigScript
		} else {
			in.SignatureScript = nil
		}
	}

	switch base {
	case SigHashNone:
		work.TxOut = nil
		for i, in := range work.TxIn {
			if i != inputIndex {
				in.Sequence = 0
			}
		}
	case SigHashSingle:
		work.TxOut = work.TxOut[:inputIndex+1]
		for i := 0; i < inputIndex; i++ {
			work.TxOut[i] = &TxOut{Value: -1}
		}
		for i, in := range work.TxIn {
			if i != inputIndex {
				in.Sequence = 0
			}
		}
	}

	if hashType.anyoneCanPay() {
		work.TxIn = []*TxIn{work.TxIn[inputIndex]}
	}

	c := NewCursor(0)
	if err := work.push(c, 0); err != nil {
		return nil, err
	}
	c.PushUint32(uint32(word))

	digest := bitcoin.DoubleSha256(c.Bytes())
	return bitcoin.NewHash32(digest)
}

// CalcWitnessSignatureHash computes the BIP-143 signature hash for the SegWit input at
// inputIndex. scriptCode is the script actually evaluated for this input (for P2WPKH, the
// equivalent P2PKH script; for P2WSH, the witness script itself) and amount is the value, in
// satoshis, of the output being spent. txSigHash decouples the embedded trailing hash-type word
// from the hashType that selects ALL/NONE/SINGLE/ANYONECANPAY branching, the same way
// CalcSignatureHash's txSigHash parameter does; a nil value embeds hashType itself. extra, when
// non-nil, is spliced into the preimage before hashing, for sighash variants that extend the
// BIP-143 shape.
func CalcWitnessSignatureHash(tx *MsgTx, inputIndex int, scriptCode []byte, amount int64, hashType SigHashType, txSigHash *SigHashType, extra *SigHashExtra) (*bitcoin.Hash32, error) {
	if tx == nil {
		return nil, errInvalidArgumentf("nil transaction")
	}
	if inputIndex < 0 || inputIndex >= len(tx.TxIn) {
		return nil, errInvalidArgumentf("input index %d out of range [0,%d)", inputIndex, len(tx.TxIn))
	}

	base := hashType.base()
	anyoneCanPay := hashType.anyoneCanPay()

	hashPrevouts := zeroHash32()
	if !anyoneCanPay {
		c := NewCursor(0)
		for _, in := range tx.TxIn {
			h := in.PreviousOutPoint.Hash.Bytes()
			c.PushBytes(h)
			c.PushUint32(in.PreviousOutPoint.Index)
		}
		hashPrevouts = bitcoin.DoubleSha256(c.Bytes())
	}

	hashSequence := zeroHash32()
	if !anyoneCanPay && base == SigHashAll {
		c := NewCursor(0)
		for _, in := range tx.TxIn {
			c.PushUint32(in.Sequence)
		}
		hashSequence = bitcoin.DoubleSha256(c.Bytes())
	}

	hashOutputs := zeroHash32()
	switch {
	case base == SigHashAll:
		c := NewCursor(0)
		for _, out := range tx.TxOut {
			pushTxOut(c, out)
		}
		hashOutputs = bitcoin.DoubleSha256(c.Bytes())
	case base == SigHashSingle && inputIndex < len(tx.TxOut):
		c := NewCursor(0)
		pushTxOut(c, tx.TxOut[inputIndex])
		hashOutputs = bitcoin.DoubleSha256(c.Bytes())
	}

	word := hashType
	if txSigHash != nil {
		word = *txSigHash
	}

	in := tx.TxIn[inputIndex]
	c := NewCursor(0)
	c.PushUint32(uint32(tx.Version))
	c.PushBytes(hashPrevouts)
	c.PushBytes(hashSequence)
	prevHash := in.PreviousOutPoint.Hash.Bytes()
	c.PushBytes(prevHash)
	c.PushUint32(in.PreviousOutPoint.Index)
	PushVarBuff(c, scriptCode)
	c.PushUint64(uint64(amount))
	c.PushUint32(in.Sequence)
	c.PushBytes(hashOutputs)
	c.PushUint32(tx.LockTime)
	c.PushUint32(uint32(word))

	preimage := extra.apply(c.Bytes())
	digest := bitcoin.DoubleSha256(preimage)
	return bitcoin.NewHash32(digest)
}

func zeroHash32() []byte {
	return make([]byte, bitcoin.Hash32Size)
}
