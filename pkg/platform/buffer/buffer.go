// Package buffer implements the two-phase contract used to hand variable
// length strings back through caller-owned, fixed-size buffers.
//
// A caller first passes a nil destination to learn the required size, then
// allocates and calls again. Every string written is NUL terminated, even when
// it had to be truncated to fit.
package buffer

import "errors"

// ErrMoreDataAvailable reports that the destination was absent or too small.
// The size field then holds the number of bytes needed for the full string.
var ErrMoreDataAvailable = errors.New("more data available")

// Size is the integer width of the in/out size field.
type Size interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// RequiredSize returns len(src)+1 saturated to the maximum value of S.
func RequiredSize[S Size](src string) S {
	limit := ^S(0)
	if uint64(len(src)) >= uint64(limit) {
		return limit
	}
	return S(len(src) + 1)
}

// CopyString writes src into dst following the size-query/truncation protocol.
//
// On entry *size is the capacity of dst. A nil dst only reports the required
// size. When the capacity is too small the longest prefix that still leaves
// room for the terminator is copied. When the required size saturates the
// width of S, at most max(S)-1 bytes of src are copied.
func CopyString[S Size](src string, dst []byte, size *S) error {
	required := RequiredSize[S](src)

	if dst == nil {
		*size = required
		return ErrMoreDataAvailable
	}

	capacity := uint64(*size)
	if capacity > uint64(len(dst)) {
		capacity = uint64(len(dst))
	}

	if capacity < uint64(required) {
		if capacity > 0 {
			n := copy(dst[:capacity-1], src)
			dst[n] = 0
		}
		*size = required
		return ErrMoreDataAvailable
	}

	n := copy(dst[:int(required)-1], src)
	dst[n] = 0
	*size = required
	return nil
}
