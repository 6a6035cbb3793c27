// Package hdkeys derives the private keys signing consumes from a BIP-32 hierarchical
// deterministic seed. It wraps github.com/tyler-smith/go-bip32, the same dependency the
// surrounding module pack already carries for extended key handling.
package hdkeys

import (
	"github.com/pkg/errors"
	bip32 "github.com/tyler-smith/go-bip32"

	"github.com/chainworks/txcore/signing"
)

// Hardened is the child index offset that marks a hardened derivation step.
const Hardened = bip32.FirstHardenedChild

// ExtendedKey wraps a BIP-32 node, private or public.
type ExtendedKey struct {
	key *bip32.Key
}

// NewMasterKey derives the master extended key from seed.
func NewMasterKey(seed []byte) (*ExtendedKey, error) {
	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(err, "derive master key")
	}
	return &ExtendedKey{key: key}, nil
}

// ExtendedKeyFromString parses a base58check-encoded extended key.
func ExtendedKeyFromString(s string) (*ExtendedKey, error) {
	key, err := bip32.B58Deserialize(s)
	if err != nil {
		return nil, errors.Wrap(err, "deserialize extended key")
	}
	return &ExtendedKey{key: key}, nil
}

// String returns the base58check encoding of the key.
func (k *ExtendedKey) String() string {
	return k.key.B58Serialize()
}

// Child derives the child at index, which may or may not include the Hardened offset.
func (k *ExtendedKey) Child(index uint32) (*ExtendedKey, error) {
	child, err := k.key.NewChildKey(index)
	if err != nil {
		return nil, errors.Wrapf(err, "derive child %d", index)
	}
	return &ExtendedKey{key: child}, nil
}

// Derive walks a full derivation path, applying each index to the previous key in turn.
func (k *ExtendedKey) Derive(path []uint32) (*ExtendedKey, error) {
	current := k
	for _, index := range path {
		next, err := current.Child(index)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// Neuter returns the public-only counterpart of this key, unable to derive hardened children or
// sign.
func (k *ExtendedKey) Neuter() *ExtendedKey {
	return &ExtendedKey{key: k.key.PublicKey()}
}

// IsPrivate reports whether this node carries a private key.
func (k *ExtendedKey) IsPrivate() bool {
	return k.key.IsPrivate
}

// PrivateKey returns the signing key this node carries. It fails if the node is public-only.
func (k *ExtendedKey) PrivateKey() (*signing.PrivateKey, error) {
	if !k.key.IsPrivate {
		return nil, errors.New("extended key has no private component")
	}
	return signing.NewPrivateKeyFromBytes(k.key.Key)
}

// PublicKey returns the public key this node carries.
func (k *ExtendedKey) PublicKey() (*signing.PublicKey, error) {
	return signing.NewPublicKeyFromBytes(k.key.PublicKey().Key)
}
