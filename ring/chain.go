package ring

// The sorts in this package run in three phases: detach cuts the ring
// open into a nil-terminated chain linked only through next, the
// algorithm relinks that chain, and attach closes it back into the
// ring. Between detach and attach the prev links of chain nodes are
// free for the algorithm to use.

// detach empties the list and returns its nodes as a chain, or nil
// when the list is empty.
func (l *List[T]) detach() *Node[T] {
	if l.Empty() {
		return nil
	}

	head := l.root.next
	l.root.prev.next = nil
	l.root.next = &l.root
	l.root.prev = &l.root
	return head
}

// attach appends a chain to the back of the list, rebuilding the prev
// links of every chain node.
func (l *List[T]) attach(chain *Node[T]) {
	l.lazyInit()

	tail := l.root.prev
	for n := chain; n != nil; n = n.next {
		tail.next = n
		n.prev = tail
		tail = n
	}
	tail.next = &l.root
	l.root.prev = tail
}

// merge combines two sorted chains into one, relinking the existing
// nodes. When items compare equal, nodes from a come first.
func merge[T any](a, b *Node[T], cmp Compare[T]) *Node[T] {
	var head *Node[T]
	tail := &head

	for a != nil && b != nil {
		if cmp(a.item, b.item) <= 0 {
			*tail = a
			tail = &a.next
			a = a.next
		} else {
			*tail = b
			tail = &b.next
			b = b.next
		}
	}

	if a != nil {
		*tail = a
	} else {
		*tail = b
	}

	return head
}

// Merge moves the nodes of src into l so that l holds both sets in
// sorted order. Both lists must already be sorted according to cmp;
// items from l precede equal items from src. src is left empty.
func (l *List[T]) Merge(src *List[T], cmp Compare[T]) {
	if src == l || src.Empty() {
		return
	}

	l.attach(merge(l.detach(), src.detach(), cmp))
}
