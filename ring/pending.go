package ring

// SortBottomUp sorts the list in place with the bottom-up merge sort
// used by the Linux kernel's list_sort. Nodes are pushed one at a time
// onto a stack of pending sorted chains, linked through their prev
// fields. Each push merges the two most recent chains of equal
// power-of-two size whenever the bits of the running count say one is
// due, which keeps every merge at most 2:1 unbalanced without ever
// counting chain lengths. The sort is stable.
func (l *List[T]) SortBottomUp(cmp Compare[T]) {
	if l.Empty() || l.Singular() {
		return
	}

	l.attach(sortPending(l.detach(), cmp))
}

func sortPending[T any](list *Node[T], cmp Compare[T]) *Node[T] {
	var pending *Node[T]

	for count := 0; list != nil; count++ {
		tail := &pending
		bits := count
		for ; bits&1 != 0; bits >>= 1 {
			tail = &(*tail).prev
		}

		if bits != 0 {
			newer := *tail
			older := newer.prev
			merged := merge(older, newer, cmp)
			merged.prev = older.prev
			*tail = merged
		}

		list.prev = pending
		pending = list
		list = list.next
		pending.next = nil
	}

	list = pending
	for pending = pending.prev; pending != nil; {
		older := pending.prev
		list = merge(pending, list, cmp)
		pending = older
	}

	return list
}
