package ring

// IsSorted reports if the list is ordered from low to high according
// to cmp. Nil, empty, and single item lists are sorted.
func (l *List[T]) IsSorted(cmp Compare[T]) bool {
	if l.Empty() {
		return true
	}

	for n := l.root.next; n.next.Ok(); n = n.next {
		if cmp(n.next.item, n.item) < 0 {
			return false
		}
	}
	return true
}

// SortMerge sorts the list in place with a top-down recursive merge
// sort. The sort is stable, allocates nothing, and recurses at most
// log2(n) levels deep.
func (l *List[T]) SortMerge(cmp Compare[T]) {
	if l.Empty() || l.Singular() {
		return
	}

	l.attach(mergeSort(l.detach(), cmp))
}

func mergeSort[T any](head *Node[T], cmp Compare[T]) *Node[T] {
	if head == nil || head.next == nil {
		return head
	}

	right := split(head)

	return merge(mergeSort(head, cmp), mergeSort(right, cmp), cmp)
}

// split cuts a chain after its midpoint and returns the second half.
// For odd lengths the first half holds the extra node.
func split[T any](head *Node[T]) *Node[T] {
	slow, fast := head, head.next
	for fast != nil && fast.next != nil {
		slow = slow.next
		fast = fast.next.next
	}

	right := slow.next
	slow.next = nil
	return right
}
