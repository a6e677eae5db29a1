package queue

import (
	"fmt"
	"strings"

	"github.com/ShawnXuanc/lab0/ers"
	"github.com/ShawnXuanc/lab0/ring"
)

// Compare orders two queue values byte-wise. It returns a negative
// number when a sorts first in the requested direction, zero when
// they are equal, and a positive number otherwise.
func Compare(a, b string, descend bool) int { return comparator(descend)(a, b) }

func comparator(descend bool) ring.Compare[string] {
	return ring.Directed(ring.Native[string], descend)
}

// Algorithm selects the sort used by SortWith.
type Algorithm int

const (
	// MergeSort is a top-down recursive merge sort.
	MergeSort Algorithm = iota
	// RunSort is an adaptive, timsort style, run merging sort.
	RunSort
	// PendingSort is the bottom-up merge sort of the Linux kernel's
	// list_sort.
	PendingSort
)

// ErrUnknownAlgorithm is returned by ParseAlgorithm for names that do
// not match a sort.
const ErrUnknownAlgorithm ers.Error = ers.Error("unknown sort algorithm")

func (a Algorithm) String() string {
	switch a {
	case MergeSort:
		return "merge"
	case RunSort:
		return "tim"
	case PendingSort:
		return "list"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm resolves a name, as produced by String, to an
// Algorithm. Matching is case insensitive and "timsort" and
// "list_sort" are accepted as aliases.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "merge", "mergesort", "":
		return MergeSort, nil
	case "tim", "timsort":
		return RunSort, nil
	case "list", "list_sort", "listsort":
		return PendingSort, nil
	default:
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownAlgorithm)
	}
}
