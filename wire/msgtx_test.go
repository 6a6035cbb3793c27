package wire

import (
	"encoding/hex"
	"testing"
)

func TestEmptyTransactionRoundTrip(t *testing.T) {
	tx := NewMsgTx(TxVersion2)

	b, err := tx.ToBytes(0)
	if err != nil {
		t.Fatalf("ToBytes: %s", err)
	}

	want := "02000000000000000000"
	if got := hex.EncodeToString(b); got != want {
		t.Fatalf("encoding mismatch:\n got  %s\n want %s", got, want)
	}

	parsed, err := FromBytes(b)
	if err != nil {
		t.Fatalf("FromBytes: %s", err)
	}
	if parsed.Version != TxVersion2 || len(parsed.TxIn) != 0 || len(parsed.TxOut) != 0 || parsed.LockTime != 0 {
		t.Fatalf("round trip mismatch: %+v", parsed)
	}
}

func TestSingleInputOutputRoundTrip(t *testing.T) {
	tx := NewMsgTx(TxVersion2)
	prevHash := make([]byte, 32)
	for i := range prevHash {
		prevHash[i] = byte(i)
	}

	in := NewTxIn(OutPoint{Index: 0}, []byte{0x51})
	if err := in.PreviousOutPoint.Hash.SetBytes(prevHash); err != nil {
		t.Fatalf("SetBytes: %s", err)
	}
	tx.AddTxIn(in)
	tx.AddTxOut(NewTxOut(5000000000, []byte{0x76, 0xa9, 0x14}))

	b, err := tx.ToBytes(0)
	if err != nil {
		t.Fatalf("ToBytes: %s", err)
	}

	parsed, err := FromBytes(b)
	if err != nil {
		t.Fatalf("FromBytes: %s", err)
	}
	if len(parsed.TxIn) != 1 || len(parsed.TxOut) != 1 {
		t.Fatalf("unexpected shape: %+v", parsed)
	}
	if parsed.TxOut[0].Value != 5000000000 {
		t.Fatalf("value mismatch: %d", parsed.TxOut[0].Value)
	}
	if !parsed.TxIn[0].PreviousOutPoint.Hash.Equal(&in.PreviousOutPoint.Hash) {
		t.Fatalf("prev hash mismatch")
	}
}

func TestSegWitRoundTrip(t *testing.T) {
	tx := NewMsgTx(TxVersion2)
	in := NewTxIn(OutPoint{Index: 1}, nil)
	in.Witness = WitnessStack{
		WitnessItem{0x01, 0x02},
		WitnessItem{0x03},
	}
	tx.AddTxIn(in)
	tx.AddTxOut(NewTxOut(1000, []byte{0x00, 0x14}))

	b, err := tx.ToBytes(FlagUseWitness)
	if err != nil {
		t.Fatalf("ToBytes: %s", err)
	}
	if b[4] != segWitMarker || b[5] != segWitFlag {
		t.Fatalf("missing segwit marker/flag: %x", b[:6])
	}

	parsed, err := FromBytes(b)
	if err != nil {
		t.Fatalf("FromBytes: %s", err)
	}
	if !parsed.HasWitness() {
		t.Fatalf("expected witness data to survive round trip")
	}
	if len(parsed.TxIn[0].Witness) != 2 {
		t.Fatalf("witness stack length mismatch: %+v", parsed.TxIn[0].Witness)
	}

	legacyOnly, err := tx.ToBytes(0)
	if err != nil {
		t.Fatalf("ToBytes legacy: %s", err)
	}
	if legacyOnly[4] == segWitMarker && legacyOnly[5] == segWitFlag {
		t.Fatalf("legacy encoding should not carry the segwit marker")
	}
}

func TestNonCanonicalVarIntToleratedOnDecode(t *testing.T) {
	r := NewReader([]byte{0xfd, 0x01, 0x00})
	if got := PullVarInt(r); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
	if r.Failed() {
		t.Fatalf("non-canonical varint should not fail decode")
	}
}

func TestVarIntEncodeIsAlwaysCanonical(t *testing.T) {
	c := NewCursor(0)
	PushVarInt(c, 1)
	if got := hex.EncodeToString(c.Bytes()); got != "01" {
		t.Fatalf("got %s, want 01", got)
	}
}

func TestWeightAndVsizeNoWitness(t *testing.T) {
	tx := NewMsgTx(TxVersion2)
	in := NewTxIn(OutPoint{}, []byte{0x51})
	tx.AddTxIn(in)
	tx.AddTxOut(NewTxOut(1000, []byte{0x51}))

	base, err := tx.BaseSize()
	if err != nil {
		t.Fatalf("BaseSize: %s", err)
	}
	weight, err := tx.Weight()
	if err != nil {
		t.Fatalf("Weight: %s", err)
	}
	if weight != 4*base {
		t.Fatalf("weight = %d, want %d (4x base with no witness)", weight, 4*base)
	}
	vsize, err := tx.Vsize()
	if err != nil {
		t.Fatalf("Vsize: %s", err)
	}
	if vsize != base {
		t.Fatalf("vsize = %d, want %d", vsize, base)
	}
}

func TestWeightWithWitnessIsLighterThanFourTimesTotal(t *testing.T) {
	tx := NewMsgTx(TxVersion2)
	in := NewTxIn(OutPoint{}, nil)
	in.Witness = WitnessStack{WitnessItem(make([]byte, 72)), WitnessItem(make([]byte, 33))}
	tx.AddTxIn(in)
	tx.AddTxOut(NewTxOut(1000, []byte{0x51}))

	base, err := tx.BaseSize()
	if err != nil {
		t.Fatalf("BaseSize: %s", err)
	}
	total, err := tx.TotalSize()
	if err != nil {
		t.Fatalf("TotalSize: %s", err)
	}
	weight, err := tx.Weight()
	if err != nil {
		t.Fatalf("Weight: %s", err)
	}
	if weight != 3*base+total {
		t.Fatalf("weight = %d, want %d", weight, 3*base+total)
	}
	if total <= base {
		t.Fatalf("witness data should make total size exceed base size")
	}
}

func TestRemoveAndReplaceOutOfRange(t *testing.T) {
	tx := NewMsgTx(TxVersion2)
	if err := tx.RemoveTxIn(0); err == nil {
		t.Fatalf("expected error removing from empty input list")
	}
	if err := tx.ReplaceTxInScript(0, nil); err == nil {
		t.Fatalf("expected error replacing script out of range")
	}
}

func TestAddDummyWitness(t *testing.T) {
	var stack WitnessStack
	if err := stack.AddDummy(DummySig); err != nil {
		t.Fatalf("AddDummy: %s", err)
	}
	if err := stack.AddDummy(DummyNull); err != nil {
		t.Fatalf("AddDummy: %s", err)
	}
	if len(stack) != 2 {
		t.Fatalf("want 2 items, got %d", len(stack))
	}
	if len(stack[0]) != dummySigSize {
		t.Fatalf("want %d byte sig filler, got %d", dummySigSize, len(stack[0]))
	}
	if len(stack[1]) != 0 {
		t.Fatalf("want empty null filler, got %d bytes", len(stack[1]))
	}
}
