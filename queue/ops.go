package queue

import (
	"math/rand/v2"
	"slices"
)

// DeleteMid removes the middle element of the queue, found with a
// slow/fast pointer walk from the first element. In a queue with an
// even number of elements this is the later of the two middle
// elements. DeleteMid returns false when there was nothing to delete.
func (q *Queue) DeleteMid() bool {
	if q == nil || q.list.Empty() {
		return false
	}

	root := q.list.Root()
	slow, fast := root.Next(), root.Next()
	for fast != root && fast.Next() != root {
		slow = slow.Next()
		fast = fast.Next().Next()
	}

	q.delete(slow)
	return true
}

// DeleteDup removes every element whose value appears more than once
// in a row, including the first of each run of equal values, so
// [a b b c] becomes [a c]. The queue must already be sorted; on an
// unsorted queue only adjacent duplicates are found. DeleteDup
// returns false for nil, empty and single element queues.
func (q *Queue) DeleteDup() bool {
	if q == nil || q.list.Empty() || q.list.Singular() {
		return false
	}

	inRun := false
	for e := range q.list.All() {
		next := e.Next()
		switch {
		case next.Ok() && next.Value() == e.Value():
			q.delete(e)
			inRun = true
		case inRun:
			q.delete(e)
			inRun = false
		}
	}
	return true
}

// Swap exchanges every adjacent pair of elements: the first with the
// second, the third with the fourth, and so on. A final unpaired
// element stays where it is.
func (q *Queue) Swap() {
	if q == nil {
		return
	}

	for e := q.list.Front(); e.Ok() && e.Next().Ok(); e = e.Next() {
		q.list.Move(e, e.Next())
	}
}

// Reverse reverses the order of the elements in place.
func (q *Queue) Reverse() {
	if q == nil || q.list.Empty() {
		return
	}

	root := q.list.Root()
	for e := range q.list.All() {
		q.list.Move(e, root)
	}
}

// ReverseK reverses each consecutive block of k elements, left to
// right. A trailing block of fewer than k elements is reversed as
// well. k <= 1 leaves the queue unchanged.
func (q *Queue) ReverseK(k int) {
	if q == nil || k <= 1 || q.list.Empty() || q.list.Singular() {
		return
	}

	// anchor precedes the current block; first is the block's
	// original first element, which ends up last once the block is
	// reversed.
	anchor := q.list.Root()
	first := anchor.Next()
	count := 0
	for e := range q.list.All() {
		q.list.Move(e, anchor)
		if count++; count == k {
			anchor = first
			first = first.Next()
			count = 0
		}
	}
}

// Ascend removes every element that has a strictly smaller element
// anywhere to its right, and returns the number of elements left.
func (q *Queue) Ascend() int { return q.monotonic(false) }

// Descend removes every element that has a strictly greater element
// anywhere to its right, and returns the number of elements left.
func (q *Queue) Descend() int { return q.monotonic(true) }

// monotonic scans from the back, keeping the most recently retained
// element as the bound every earlier element is compared against.
func (q *Queue) monotonic(descend bool) int {
	if q == nil || q.list.Empty() {
		return 0
	}

	cmp := comparator(descend)
	kept := q.list.Back()
	count := 1
	for e := range q.list.Backward() {
		if e == kept {
			continue
		}
		if cmp(kept.Value(), e.Value()) < 0 {
			q.delete(e)
			continue
		}
		kept = e
		count++
	}
	return count
}

// Sort orders the queue in ascending, or descending, byte-wise order
// using the recursive merge sort. Elements with equal values keep
// their relative order.
func (q *Queue) Sort(descend bool) { q.SortWith(MergeSort, descend) }

// SortWith orders the queue like Sort, using the given algorithm.
func (q *Queue) SortWith(alg Algorithm, descend bool) {
	if q == nil {
		return
	}

	cmp := comparator(descend)
	switch alg {
	case RunSort:
		q.list.SortRuns(cmp)
	case PendingSort:
		q.list.SortBottomUp(cmp)
	default:
		q.list.SortMerge(cmp)
	}
}

// IsSorted reports whether the queue is in ascending, or descending,
// order.
func (q *Queue) IsSorted(descend bool) bool {
	if q == nil {
		return true
	}
	return q.list.IsSorted(comparator(descend))
}

// Shuffle permutes the queue uniformly at random with a Fisher-Yates
// shuffle that swaps element positions rather than values. When rng
// is nil the package level generator from math/rand/v2 is used.
func (q *Queue) Shuffle(rng *rand.Rand) {
	if q == nil || q.list.Empty() || q.list.Singular() {
		return
	}

	intn := rand.IntN
	if rng != nil {
		intn = rng.IntN
	}

	nodes := slices.Collect(q.list.All())
	for i := len(nodes) - 1; i > 0; i-- {
		j := intn(i + 1)
		if i == j {
			continue
		}
		q.list.Swap(nodes[i], nodes[j])
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
}
