// Package signing produces and verifies the ECDSA signatures that satisfy the scripts locking a
// transaction's inputs. It sits above wire: it consumes the signature hash digests wire computes
// and knows nothing about transaction encoding itself.
package signing

import (
	"context"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/pkg/errors"

	"github.com/chainworks/txcore/bitcoin"
	"github.com/chainworks/txcore/logger"
	"github.com/chainworks/txcore/wire"
)

var (
	// ErrInvalidPrivateKey is returned when a private key's raw bytes are not exactly 32 bytes
	// long. The scalar's value is not range-checked against the secp256k1 group order.
	ErrInvalidPrivateKey = errors.New("invalid private key")
)

// PrivateKey wraps a secp256k1 signing key.
type PrivateKey struct {
	key *btcec.PrivateKey
}

// NewPrivateKeyFromBytes parses a 32 byte big endian scalar into a PrivateKey.
func NewPrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != 32 {
		return nil, errors.Wrapf(ErrInvalidPrivateKey, "got %d bytes, want 32", len(b))
	}
	key, _ := btcec.PrivKeyFromBytes(b)
	if key == nil {
		return nil, ErrInvalidPrivateKey
	}
	return &PrivateKey{key: key}, nil
}

// PublicKey returns the public key corresponding to k.
func (k *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{key: k.key.PubKey()}
}

// Sign produces a DER-encoded, low-S ECDSA signature over digest, with the sighash type appended
// as the final byte -- the form a scriptSig or witness item carries on the wire.
func (k *PrivateKey) Sign(digest *bitcoin.Hash32, hashType wire.SigHashType) []byte {
	sig := ecdsa.Sign(k.key, digest.Bytes())
	der := sig.Serialize()
	return append(der, byte(hashType))
}

// PublicKey wraps a secp256k1 verification key.
type PublicKey struct {
	key *btcec.PublicKey
}

// NewPublicKeyFromBytes parses a compressed or uncompressed secp256k1 public key.
func NewPublicKeyFromBytes(b []byte) (*PublicKey, error) {
	key, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, errors.Wrap(err, "parse public key")
	}
	return &PublicKey{key: key}, nil
}

// Bytes returns the compressed SEC1 encoding of the public key.
func (k *PublicKey) Bytes() []byte {
	return k.key.SerializeCompressed()
}

// Verify reports whether sig (a DER signature with a trailing sighash type byte, as produced by
// Sign) is valid for digest under this public key.
func (k *PublicKey) Verify(digest *bitcoin.Hash32, sig []byte) (bool, error) {
	if len(sig) < 2 {
		return false, errors.New("signature too short to carry a sighash type byte")
	}
	parsed, err := ecdsa.ParseDERSignature(sig[:len(sig)-1])
	if err != nil {
		return false, errors.Wrap(err, "parse signature")
	}
	return parsed.Verify(digest.Bytes(), k.key), nil
}

// SignLegacyInput computes the legacy signature hash for the input at inputIndex and signs it,
// logging the computed digest at debug level for diagnosing a mismatched signature later. It
// embeds hashType verbatim into the preimage, so wire's independent txSigHash override is left nil
// here.
func SignLegacyInput(ctx context.Context, key *PrivateKey, tx *wire.MsgTx, inputIndex int, prevOutScript []byte, hashType wire.SigHashType) ([]byte, error) {
	digest, err := wire.CalcSignatureHash(tx, inputIndex, prevOutScript, hashType, nil)
	if err != nil {
		return nil, errors.Wrap(err, "calc signature hash")
	}
	logger.Debug(ctx, "legacy sighash for input %d: %s", inputIndex, digest)
	return key.Sign(digest, hashType), nil
}

// SignWitnessInput computes the BIP-143 signature hash for the SegWit input at inputIndex and
// signs it.
func SignWitnessInput(ctx context.Context, key *PrivateKey, tx *wire.MsgTx, inputIndex int, scriptCode []byte, amount int64, hashType wire.SigHashType) ([]byte, error) {
	digest, err := wire.CalcWitnessSignatureHash(tx, inputIndex, scriptCode, amount, hashType, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "calc witness signature hash")
	}
	logger.Debug(ctx, "witness sighash for input %d: %s", inputIndex, digest)
	return key.Sign(digest, hashType), nil
}
