package wire

// BaseSize returns the length, in bytes, of tx's legacy (non-witness) serialization: what
// ToBytes(0) would produce regardless of whether tx actually carries witness data. It is computed
// directly from each input's and output's SerializeSize rather than by running the full encoder,
// so a caller can learn a transaction's size without paying for an encode it doesn't need.
func (tx *MsgTx) BaseSize() (int, error) {
	if tx == nil {
		return 0, errInvalidArgumentf("nil transaction")
	}
	size := 4 + VarIntSerializeSize(uint64(len(tx.TxIn))) + VarIntSerializeSize(uint64(len(tx.TxOut))) + 4
	for _, in := range tx.TxIn {
		size += in.SerializeSize()
	}
	for _, out := range tx.TxOut {
		size += out.SerializeSize()
	}
	return size, nil
}

// TotalSize returns the length, in bytes, of tx's full serialization: the SegWit layout if tx
// carries witness data, otherwise identical to BaseSize.
func (tx *MsgTx) TotalSize() (int, error) {
	base, err := tx.BaseSize()
	if err != nil {
		return 0, err
	}
	if !tx.HasWitness() {
		return base, nil
	}
	size := base + 2 // marker + flag
	for _, in := range tx.TxIn {
		size += in.WitnessSerializeSize()
	}
	return size, nil
}

// Weight computes the BIP-141 transaction weight: three times the base (non-witness) size plus the
// total (witness-inclusive) size. A transaction with no witness data has TotalSize == BaseSize, so
// its weight is simply four times its size.
func (tx *MsgTx) Weight() (int, error) {
	base, err := tx.BaseSize()
	if err != nil {
		return 0, err
	}
	total, err := tx.TotalSize()
	if err != nil {
		return 0, err
	}
	return 3*base + total, nil
}

// Vsize computes the BIP-141 virtual size: the weight divided by 4, rounded up.
func (tx *MsgTx) Vsize() (int, error) {
	w, err := tx.Weight()
	if err != nil {
		return 0, err
	}
	return VsizeFromWeight(w), nil
}

// VsizeFromWeight converts an already-computed weight to a virtual size, rounding up.
func VsizeFromWeight(weight int) int {
	return (weight + 3) / 4
}
