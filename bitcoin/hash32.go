package bitcoin

import (
	"bytes"
	"encoding/hex"

	"github.com/pkg/errors"
)

const (
	Hash32Size = 32
)

var ErrWrongSize = errors.New("Wrong byte size")

// Hash32 is a 32 byte digest, stored in the little endian (internal/wire) byte order used
// throughout the transaction codec. Its String representation follows the Bitcoin convention of
// displaying digests (txids, sighashes) in big endian.
type Hash32 [Hash32Size]byte

// NewHash32 creates a Hash32 from 32 raw bytes already in internal (little endian) order.
func NewHash32(b []byte) (*Hash32, error) {
	if len(b) != Hash32Size {
		return nil, errors.Wrapf(ErrWrongSize, "got %d, want %d", len(b), Hash32Size)
	}
	result := Hash32{}
	copy(result[:], b)
	return &result, nil
}

// Bytes returns the digest in internal (little endian) order.
func (h Hash32) Bytes() []byte {
	return h[:]
}

// SetBytes sets the value of the hash from internal (little endian) order bytes.
func (h *Hash32) SetBytes(b []byte) error {
	if len(b) != Hash32Size {
		return errors.Wrapf(ErrWrongSize, "got %d, want %d", len(b), Hash32Size)
	}
	copy(h[:], b)
	return nil
}

// String returns the big endian display hex for the hash.
func (h Hash32) String() string {
	b := make([]byte, Hash32Size)
	i := Hash32Size - 1
	for _, c := range h {
		b[i] = c
		i--
	}
	return hex.EncodeToString(b)
}

// Equal returns true if the parameter has the same value.
func (h *Hash32) Equal(o *Hash32) bool {
	if h == nil {
		return o == nil
	}
	if o == nil {
		return false
	}
	return bytes.Equal(h[:], o[:])
}
