package wire

import (
	"strings"
	"testing"
)

func newTestTx() *MsgTx {
	tx := NewMsgTx(TxVersion1)
	in0 := NewTxIn(OutPoint{Index: 0}, nil)
	in1 := NewTxIn(OutPoint{Index: 1}, nil)
	tx.AddTxIn(in0)
	tx.AddTxIn(in1)
	tx.AddTxOut(NewTxOut(1000, []byte{0x76, 0xa9, 0x14}))
	tx.AddTxOut(NewTxOut(2000, []byte{0x76, 0xa9, 0x14}))
	return tx
}

func TestLegacySigHashDeterministic(t *testing.T) {
	tx := newTestTx()
	script := []byte{0x76, 0xa9, 0x14, 0x01, 0x02, 0x03, 0x88, 0xac}

	h1, err := CalcSignatureHash(tx, 0, script, SigHashAll, nil)
	if err != nil {
		t.Fatalf("CalcSignatureHash: %s", err)
	}
	h2, err := CalcSignatureHash(tx, 0, script, SigHashAll, nil)
	if err != nil {
		t.Fatalf("CalcSignatureHash: %s", err)
	}
	if !h1.Equal(h2) {
		t.Fatalf("expected deterministic digest")
	}

	h3, err := CalcSignatureHash(tx, 1, script, SigHashAll, nil)
	if err != nil {
		t.Fatalf("CalcSignatureHash: %s", err)
	}
	if h1.Equal(h3) {
		t.Fatalf("digests for different input indices should differ")
	}
}

func TestLegacySigHashDoesNotMutateOriginalTx(t *testing.T) {
	tx := newTestTx()
	script := []byte{0x76, 0xa9, 0x14, 0x88, 0xac}

	if _, err := CalcSignatureHash(tx, 0, script, SigHashAll, nil); err != nil {
		t.Fatalf("CalcSignatureHash: %s", err)
	}
	if tx.TxIn[0].SignatureScript != nil {
		t.Fatalf("original transaction's input script should be untouched")
	}
	if len(tx.TxOut) != 2 {
		t.Fatalf("original transaction's outputs should be untouched")
	}
}

func TestLegacySigHashSingleBug(t *testing.T) {
	tx := newTestTx()
	// Only two outputs exist; signing input index 5 with SINGLE has no corresponding output.
	in := NewTxIn(OutPoint{Index: 0}, nil)
	tx.AddTxIn(in)
	tx.AddTxIn(NewTxIn(OutPoint{Index: 0}, nil))
	tx.AddTxIn(NewTxIn(OutPoint{Index: 0}, nil))
	tx.AddTxIn(NewTxIn(OutPoint{Index: 0}, nil))

	h, err := CalcSignatureHash(tx, 5, []byte{0x51}, SigHashSingle, nil)
	if err != nil {
		t.Fatalf("CalcSignatureHash: %s", err)
	}
	want := strings.Repeat("00", 31) + "01"
	if h.String() != want {
		t.Fatalf("got %s, want %s", h.String(), want)
	}
}

func TestLegacySigHashAnyoneCanPayChangesDigest(t *testing.T) {
	tx := newTestTx()
	script := []byte{0x51}

	all, err := CalcSignatureHash(tx, 0, script, SigHashAll, nil)
	if err != nil {
		t.Fatalf("CalcSignatureHash: %s", err)
	}
	anyoneCanPay, err := CalcSignatureHash(tx, 0, script, SigHashAll|SigHashAnyOneCanPay, nil)
	if err != nil {
		t.Fatalf("CalcSignatureHash: %s", err)
	}
	if all.Equal(anyoneCanPay) {
		t.Fatalf("ANYONECANPAY should change the digest")
	}
}

func TestLegacySigHashTxSigHashOverridesEmbeddedWord(t *testing.T) {
	tx := newTestTx()
	script := []byte{0x51}

	plain, err := CalcSignatureHash(tx, 0, script, SigHashAll, nil)
	if err != nil {
		t.Fatalf("CalcSignatureHash: %s", err)
	}
	forked := SigHashAll | SigHashForkID
	overridden, err := CalcSignatureHash(tx, 0, script, SigHashAll, &forked)
	if err != nil {
		t.Fatalf("CalcSignatureHash: %s", err)
	}
	if plain.Equal(overridden) {
		t.Fatalf("a different embedded word should change the digest")
	}

	sameBase, err := CalcSignatureHash(tx, 0, script, SigHashAll|SigHashAnyOneCanPay, &forked)
	if err != nil {
		t.Fatalf("CalcSignatureHash: %s", err)
	}
	baseOnly, err := CalcSignatureHash(tx, 0, script, SigHashAll, &forked)
	if err != nil {
		t.Fatalf("CalcSignatureHash: %s", err)
	}
	if sameBase.Equal(baseOnly) {
		t.Fatalf("ANYONECANPAY should still change the digest even with the embedded word fixed")
	}
}

func TestWitnessSigHashDeterministic(t *testing.T) {
	tx := newTestTx()
	scriptCode := []byte{0x19, 0x76, 0xa9, 0x14}

	h1, err := CalcWitnessSignatureHash(tx, 0, scriptCode, 100000, SigHashAll, nil, nil)
	if err != nil {
		t.Fatalf("CalcWitnessSignatureHash: %s", err)
	}
	h2, err := CalcWitnessSignatureHash(tx, 0, scriptCode, 100000, SigHashAll, nil, nil)
	if err != nil {
		t.Fatalf("CalcWitnessSignatureHash: %s", err)
	}
	if !h1.Equal(h2) {
		t.Fatalf("expected deterministic digest")
	}

	h3, err := CalcWitnessSignatureHash(tx, 0, scriptCode, 999, SigHashAll, nil, nil)
	if err != nil {
		t.Fatalf("CalcWitnessSignatureHash: %s", err)
	}
	if h1.Equal(h3) {
		t.Fatalf("amount should be covered by the digest")
	}
}

func TestWitnessSigHashExtraSplice(t *testing.T) {
	tx := newTestTx()
	scriptCode := []byte{0x19, 0x76, 0xa9, 0x14}

	plain, err := CalcWitnessSignatureHash(tx, 0, scriptCode, 100000, SigHashAll, nil, nil)
	if err != nil {
		t.Fatalf("CalcWitnessSignatureHash: %s", err)
	}
	extra := &SigHashExtra{Bytes: []byte{0xde, 0xad, 0xbe, 0xef}, Offset: 4}
	spliced, err := CalcWitnessSignatureHash(tx, 0, scriptCode, 100000, SigHashAll, nil, extra)
	if err != nil {
		t.Fatalf("CalcWitnessSignatureHash: %s", err)
	}
	if plain.Equal(spliced) {
		t.Fatalf("spliced extra bytes should change the digest")
	}
}

func TestWitnessSigHashTxSigHashOverridesEmbeddedWord(t *testing.T) {
	tx := newTestTx()
	scriptCode := []byte{0x19, 0x76, 0xa9, 0x14}

	plain, err := CalcWitnessSignatureHash(tx, 0, scriptCode, 100000, SigHashAll, nil, nil)
	if err != nil {
		t.Fatalf("CalcWitnessSignatureHash: %s", err)
	}
	forked := SigHashAll | SigHashForkID
	overridden, err := CalcWitnessSignatureHash(tx, 0, scriptCode, 100000, SigHashAll, &forked, nil)
	if err != nil {
		t.Fatalf("CalcWitnessSignatureHash: %s", err)
	}
	if plain.Equal(overridden) {
		t.Fatalf("a different embedded word should change the digest")
	}
}

func TestSigHashBaseNormalizesUnknownValue(t *testing.T) {
	var t1 SigHashType = 0x09
	if t1.base() != SigHashAll {
		t.Fatalf("unrecognized base should normalize to ALL, got %v", t1.base())
	}
}
