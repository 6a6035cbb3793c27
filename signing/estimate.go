package signing

import "github.com/chainworks/txcore/wire"

// EstimateP2WPKHWeight returns the BIP-141 weight tx would have once every input, whatever witness
// it carries now, is filled in with a maximum-size P2WPKH witness (a DummySig-sized signature filler plus a
// compressed public key), letting a caller compute a fee before any signature actually exists. It
// does not mutate tx: the dummy witnesses are built and measured on a deep copy.
func EstimateP2WPKHWeight(tx *wire.MsgTx) (int, error) {
	work := tx.Copy()
	for _, in := range work.TxIn {
		stack := make(wire.WitnessStack, 0, 2)
		if err := stack.AddDummy(wire.DummySig); err != nil {
			return 0, err
		}
		if err := stack.AddDummy(wire.DummyNull); err != nil {
			return 0, err
		}
		// The pubkey slot is sized as a compressed key (33 bytes), which SetDummy cannot express
		// directly since it only knows the null and max-signature fillers; grow the second dummy
		// item in place instead of adding a third kind.
		stack[1] = make(wire.WitnessItem, 33)
		in.Witness = stack
	}
	weight, err := work.Weight()
	if err != nil {
		return 0, err
	}
	return weight, nil
}
