package wire

import "github.com/pkg/errors"

// The error taxonomy is small and exhaustive. Callers that need to distinguish failure classes
// can test with errors.Is against these sentinels; everything else is wrapped context added with
// errors.Wrap on the way up, the same layering tokenized-pkg/wire and tokenized-pkg/txbuilder use.
var (
	// ErrInvalidArgument covers a nil required pointer, a txhash of the wrong length, an
	// unrecognized flag bit, or an out-of-range index on remove/replace. The version is not
	// checked on construction, so no construction path returns it for a version.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformed covers varint/varbuff overruns, incomplete streams, trailing garbage after a
	// complete transaction on strict parse, and malformed hex.
	ErrMalformed = errors.New("malformed transaction data")

	// ErrOutOfMemory covers allocation failure on buffer growth. Go's allocator panics rather
	// than returning an error on exhaustion, so this is reserved for explicit capacity checks
	// that choose to fail gracefully instead.
	ErrOutOfMemory = errors.New("out of memory")
)

func errInvalidArgumentf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

func errMalformedf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformed, format, args...)
}
