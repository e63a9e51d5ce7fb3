package platform

import (
	"fmt"
	"math/bits"
)

// Unsigned is the set of unsigned integer types accepted by the alignment
// helpers.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// IsPowerOfTwo reports whether v is a non-zero power of two.
func IsPowerOfTwo[T Unsigned](v T) bool {
	return v != 0 && v&(v-1) == 0
}

// Align rounds value up to the next multiple of alignment. The alignment must
// be a power of two; Align panics otherwise. The result wraps if it does not
// fit in T.
func Align[T Unsigned](value, alignment T) T {
	if !IsPowerOfTwo(alignment) {
		panic(fmt.Sprintf("platform: alignment %d is not a power of two", alignment))
	}
	return (value + alignment - 1) &^ (alignment - 1)
}

// AlignChecked is like Align but reports an invalid alignment as an error.
func AlignChecked[T Unsigned](value, alignment T) (T, error) {
	if !IsPowerOfTwo(alignment) {
		return 0, fmt.Errorf("alignment %d is not a power of two", alignment)
	}
	return Align(value, alignment), nil
}

// Log2Ceil returns the smallest k such that 1<<k >= n. Log2Ceil(0) is 0.
func Log2Ceil(n uint32) uint32 {
	if n <= 1 {
		return 0
	}
	return uint32(bits.Len32(n - 1))
}
