// Package errs defines the sentinel error kinds shared across the
// succinct string-indexing packages. Call sites wrap one of these with
// fmt.Errorf("%w: ...", errs.ErrX) so callers can still errors.Is against
// the kind without caring about the detail message.
package errs

import "errors"

var (
	// ErrCorruptHeader covers CRC mismatch, magic mismatch, out-of-range
	// width/length fields, and block-count inconsistency on load.
	ErrCorruptHeader = errors.New("corrupt header")

	// ErrOutOfRange covers rank/select/get calls with index >= size.
	ErrOutOfRange = errors.New("index out of range")

	// ErrLengthError covers push_back past 2^32 entries/bytes, width > 64
	// bits, and low-water overflow beyond 2^50.
	ErrLengthError = errors.New("length error")

	// ErrInvalidArgument covers unsupported block sizes, sort-order
	// violations when input is declared sorted, and broken preconditions.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState covers operations called out of order, e.g. reading
	// before encode(), or loading into an already-loaded object.
	ErrInvalidState = errors.New("invalid state")

	// ErrAllocError covers allocator failure during push_back/reserve.
	ErrAllocError = errors.New("allocation error")

	// ErrDuplicateKey is returned when a CritBitTrie builder sees the same
	// key inserted twice in a row; the builder always rejects duplicates.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrUnsupportedPlatform covers 32-bit targets, which UintVecMin0 does
	// not support per spec.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)
