// Command txcore is a small inspection tool for raw Bitcoin transactions: it decodes a hex
// transaction, reports its weight and virtual size, or computes a signature hash for one of its
// inputs.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/chainworks/txcore/logger"
	"github.com/chainworks/txcore/wire"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const usage = `usage: txcore <command> [flags]

commands:
  decode   print the structure of a raw transaction
  weight   print the BIP-141 weight and vsize of a raw transaction
  sighash  compute a legacy or witness signature hash for one input
`

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	os.Args = append(os.Args[:1], os.Args[2:]...)
	flag.Parse()

	config := logger.NewProductionConfig()
	if *verbose {
		config = logger.NewDevelopmentConfig()
	}
	ctx := logger.ContextWithLogConfig(context.Background(), config)
	ctx = logger.ContextWithLogTrace(ctx, uuid.New().String())

	var err error
	switch cmd {
	case "decode":
		err = runDecode(ctx, flag.Args())
	case "weight":
		err = runWeight(ctx, flag.Args())
	case "sighash":
		err = runSigHash(ctx, flag.Args())
	default:
		flag.Usage()
		os.Exit(1)
	}
	if err != nil {
		logger.Error(ctx, "%s: %s", cmd, err)
		os.Exit(1)
	}
}

func readTx(args []string) (*wire.MsgTx, error) {
	if len(args) != 1 {
		return nil, errors.New("expected exactly one hex transaction argument")
	}
	tx, err := wire.FromHex(args[0])
	if err != nil {
		return nil, errors.Wrap(err, "parse transaction")
	}
	return tx, nil
}

func runDecode(ctx context.Context, args []string) error {
	tx, err := readTx(args)
	if err != nil {
		return err
	}

	txid, err := tx.TxID()
	if err != nil {
		return errors.Wrap(err, "compute txid")
	}

	fmt.Printf("version: %d\n", tx.Version)
	fmt.Printf("txid: %s\n", txid)
	fmt.Printf("locktime: %d\n", tx.LockTime)
	fmt.Printf("inputs: %d\n", len(tx.TxIn))
	for i, in := range tx.TxIn {
		fmt.Printf("  [%d] %s:%d sequence=0x%08x script=%s witness_items=%d\n", i,
			in.PreviousOutPoint.Hash.String(), in.PreviousOutPoint.Index, in.Sequence,
			hex.EncodeToString(in.SignatureScript), len(in.Witness))
	}
	fmt.Printf("outputs: %d\n", len(tx.TxOut))
	for i, out := range tx.TxOut {
		fmt.Printf("  [%d] value=%d script=%s\n", i, out.Value, hex.EncodeToString(out.PkScript))
	}
	return nil
}

func runWeight(ctx context.Context, args []string) error {
	tx, err := readTx(args)
	if err != nil {
		return err
	}

	weight, err := tx.Weight()
	if err != nil {
		return errors.Wrap(err, "compute weight")
	}
	vsize, err := tx.Vsize()
	if err != nil {
		return errors.Wrap(err, "compute vsize")
	}
	logger.Debug(ctx, "computed weight=%d vsize=%d", weight, vsize)

	fmt.Printf("weight: %d\n", weight)
	fmt.Printf("vsize: %d\n", vsize)
	return nil
}

func runSigHash(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sighash", flag.ExitOnError)
	index := fs.Int("index", 0, "input index to sign")
	script := fs.String("script", "", "hex of the previous output's locking script")
	amount := fs.Int64("amount", 0, "value, in satoshis, of the output being spent (witness only)")
	witness := fs.Bool("witness", false, "compute the BIP-143 witness signature hash instead of legacy")
	hashType := fs.Uint("hashtype", uint(wire.SigHashAll), "signature hash type byte, selects ALL/NONE/SINGLE/ANYONECANPAY branching")
	txSigHash := fs.Int64("txsighash", -1, "word embedded in the preimage's trailing hash-type field, if it must differ from -hashtype; defaults to -hashtype")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("expected exactly one hex transaction argument")
	}

	tx, err := wire.FromHex(fs.Arg(0))
	if err != nil {
		return errors.Wrap(err, "parse transaction")
	}

	prevScript, err := hex.DecodeString(*script)
	if err != nil {
		return errors.Wrap(err, "decode script")
	}

	var word *wire.SigHashType
	if *txSigHash >= 0 {
		w := wire.SigHashType(*txSigHash)
		word = &w
	}

	var digest fmt.Stringer
	if *witness {
		digest, err = wire.CalcWitnessSignatureHash(tx, *index, prevScript, *amount, wire.SigHashType(*hashType), word, nil)
	} else {
		digest, err = wire.CalcSignatureHash(tx, *index, prevScript, wire.SigHashType(*hashType), word)
	}
	if err != nil {
		return errors.Wrap(err, "compute signature hash")
	}

	logger.Debug(ctx, "sighash for input %d: %s", *index, digest)
	fmt.Println(digest)
	return nil
}
