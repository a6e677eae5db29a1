package ring

import "golang.org/x/exp/constraints"

// Compare describes a three-way comparison: it returns a negative
// number when a orders before b, zero when they are equal, and a
// positive number otherwise. Every sort in this package is stable
// with respect to the Compare it is given.
type Compare[T any] func(a, b T) int

// Native compares values of any type that supports the < operator.
// Strings compare byte-wise.
func Native[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Reverse wraps a comparison and inverts its direction. Equal items
// remain equal, so stability is preserved.
func Reverse[T any](cmp Compare[T]) Compare[T] { return func(a, b T) int { return cmp(b, a) } }

// Directed returns cmp, or its reverse when descend is true.
func Directed[T any](cmp Compare[T], descend bool) Compare[T] {
	if descend {
		return Reverse(cmp)
	}
	return cmp
}
