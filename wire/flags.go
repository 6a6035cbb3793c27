package wire

// EncodeFlag controls optional behavior of the transaction encoder (ToBytes, ToHex, GetLength).
// The only bit currently recognized is UseWitness; an unrecognized bit is an InvalidArgument. The
// decoder and the sighash functions take no EncodeFlag.
type EncodeFlag uint32

const (
	// FlagUseWitness enables SegWit marker/flag encoding (for ToBytes/ToHex/GetLength). It has no
	// effect on decode: FromBytes always detects the SegWit marker/flag itself. Signature hashing
	// does not use it: BIP-143 assembly is selected by calling CalcWitnessSignatureHash instead
	// of CalcSignatureHash.
	FlagUseWitness EncodeFlag = 0x1

	flagsAllEncode = FlagUseWitness
)

// DummyKind selects the kind of placeholder witness item WitnessStack.AddDummy appends, used to size a
// transaction before a real signature is available.
type DummyKind uint32

const (
	// DummyNull is a zero-length witness item.
	DummyNull DummyKind = 0x1
	// DummySig is a 72-byte filler representing a maximum-length DER signature.
	DummySig DummyKind = 0x2
)

// dummySigSize is the length of a maximum-length DER-encoded ECDSA signature plus a trailing
// sighash-type byte, the standard filler used to size a not-yet-signed P2PKH/P2WPKH input.
const dummySigSize = 72

// SigHashType decomposes the low byte of a signature hash type (the base selector ALL/NONE/SINGLE)
// and the two independent bits ANYONECANPAY and FORKID.
type SigHashType uint32

const (
	SigHashAll          SigHashType = 0x01
	SigHashNone         SigHashType = 0x02
	SigHashSingle       SigHashType = 0x03
	SigHashForkID       SigHashType = 0x40
	SigHashAnyOneCanPay SigHashType = 0x80

	sigHashBaseMask = 0x1f
)

// base returns the ALL/NONE/SINGLE selector for t, normalizing any other low-byte value to ALL per
// spec (an unsupported base is treated as ALL rather than rejected).
func (t SigHashType) base() SigHashType {
	switch t & sigHashBaseMask {
	case SigHashNone:
		return SigHashNone
	case SigHashSingle:
		return SigHashSingle
	default:
		return SigHashAll
	}
}

func (t SigHashType) anyoneCanPay() bool {
	return t&SigHashAnyOneCanPay != 0
}
