// Package ring provides a generic circular doubly linked list built
// around a sentinel node. Nodes move between positions and between
// lists without allocation, and the list can be sorted in place with
// one of several stable merge sorts.
//
// Lists are not safe for concurrent use. Callers that share a list
// between goroutines must provide their own locking.
package ring

import (
	"fmt"
	"iter"

	"github.com/ShawnXuanc/lab0/ers"
)

// ErrUninitializedList is the content of the panic produced when an
// operation that needs storage is called on a nil list.
const ErrUninitializedList ers.Error = ers.Error("uninitialized list")

// Node is a single link in a ring. A node carries its item and the two
// links that place it in a list; it never owns its neighbors. Nodes
// that are not members of a list have nil links.
type Node[T any] struct {
	next *Node[T]
	prev *Node[T]
	root bool
	item T
}

// NewNode produces a detached node, which can be added to a list
// with InsertAfter or InsertBefore.
func NewNode[T any](val T) *Node[T] { return &Node[T]{item: val} }

// Value returns the item the node carries. The sentinel and nil nodes
// return the zero value.
func (n *Node[T]) Value() (out T) {
	if n != nil {
		out = n.item
	}
	return
}

// String returns the string form of the node's value.
func (n *Node[T]) String() string { return fmt.Sprint(n.Value()) }

// Next returns the following node. At the end of a list this is the
// sentinel, which reports false for Ok. Detached nodes return nil.
func (n *Node[T]) Next() *Node[T] { return n.next }

// Previous returns the preceding node. At the front of a list this is
// the sentinel, which reports false for Ok. Detached nodes return nil.
func (n *Node[T]) Previous() *Node[T] { return n.prev }

// Ok reports whether n is a value carrying node: it is non-nil and is
// not the sentinel of a list. Use it to end c-style iteration:
//
//	for n := list.Front(); n.Ok(); n = n.Next() {
//		// operate
//	}
func (n *Node[T]) Ok() bool { return n != nil && !n.root }

// Linked reports whether the node is currently a member of a list.
func (n *Node[T]) Linked() bool { return n != nil && n.next != nil }

func (n *Node[T]) detached() bool { return n != nil && !n.root && n.next == nil }
func (n *Node[T]) removable() bool { return n.Ok() && n.next != nil }

// List is a circular doubly linked list anchored on a sentinel node.
// The zero value is an empty list ready to use. A List must not be
// copied after first use, because its members link to its sentinel.
type List[T any] struct {
	root Node[T]
}

// New allocates and initializes an empty list.
func New[T any]() *List[T] { return new(List[T]).Init() }

// Init resets the list to the empty ring of one sentinel. Any nodes
// that were in the list are abandoned with stale links.
func (l *List[T]) Init() *List[T] {
	if l == nil {
		panic(ErrUninitializedList)
	}

	l.root.root = true
	l.root.next = &l.root
	l.root.prev = &l.root
	return l
}

func (l *List[T]) lazyInit() {
	if l == nil {
		panic(ErrUninitializedList)
	}
	if l.root.next == nil {
		l.Init()
	}
}

// Root returns the sentinel. It is a valid position for InsertAfter,
// InsertBefore, Move and Splice, and never reports Ok.
func (l *List[T]) Root() *Node[T] { l.lazyInit(); return &l.root }

// Front returns the first node, or the sentinel when the list is
// empty.
func (l *List[T]) Front() *Node[T] { l.lazyInit(); return l.root.next }

// Back returns the last node, or the sentinel when the list is empty.
func (l *List[T]) Back() *Node[T] { l.lazyInit(); return l.root.prev }

// Empty reports whether the list has no nodes. Nil lists are empty.
func (l *List[T]) Empty() bool { return l == nil || l.root.next == nil || l.root.next == &l.root }

// Singular reports whether the list holds exactly one node.
func (l *List[T]) Singular() bool { return !l.Empty() && l.root.next == l.root.prev }

// Len counts the nodes in the list. The list does not cache its size,
// so this walks the ring.
func (l *List[T]) Len() (count int) {
	if l.Empty() {
		return 0
	}
	for n := l.root.next; n != &l.root; n = n.next {
		count++
	}
	return count
}

// PushFront creates a node for the value and inserts it at the front
// of the list.
func (l *List[T]) PushFront(val T) *Node[T] {
	n := NewNode(val)
	l.InsertAfter(l.Root(), n)
	return n
}

// PushBack creates a node for the value and inserts it at the back of
// the list.
func (l *List[T]) PushBack(val T) *Node[T] {
	n := NewNode(val)
	l.InsertBefore(l.Root(), n)
	return n
}

// InsertAfter links the detached node n directly after pos, which
// must be the sentinel or a member of l. It returns false, and does
// nothing, when n is still a member of a list or pos is not linked.
func (l *List[T]) InsertAfter(pos, n *Node[T]) bool {
	l.lazyInit()
	if !n.detached() || !pos.Linked() {
		return false
	}

	link(n, pos, pos.next)
	return true
}

// InsertBefore links the detached node n directly before pos. The
// same constraints as InsertAfter apply.
func (l *List[T]) InsertBefore(pos, n *Node[T]) bool {
	l.lazyInit()
	if !n.detached() || !pos.Linked() {
		return false
	}

	link(n, pos.prev, pos)
	return true
}

// Remove unlinks n from the list and clears its links. It returns
// false when n is nil, the sentinel, or already detached.
func (l *List[T]) Remove(n *Node[T]) bool {
	if !n.removable() {
		return false
	}

	unlink(n)
	return true
}

// Move relocates n so that it directly follows pos. Both must be
// members of l; pos may be the sentinel.
func (l *List[T]) Move(n, pos *Node[T]) bool {
	if !n.removable() || !pos.Linked() || n == pos {
		return false
	}

	unlink(n)
	link(n, pos, pos.next)
	return true
}

// MoveTail relocates n so that it directly precedes pos.
func (l *List[T]) MoveTail(n, pos *Node[T]) bool {
	if !n.removable() || !pos.Linked() || n == pos {
		return false
	}

	unlink(n)
	link(n, pos.prev, pos)
	return true
}

// Swap exchanges the positions of two distinct nodes of the list.
// Swap returns false if either node is nil, the sentinel, or not a
// member of a list.
func (l *List[T]) Swap(a, b *Node[T]) bool {
	if !a.removable() || !b.removable() || a == b {
		return false
	}

	switch {
	case a.next == b:
		return l.Move(a, b)
	case b.next == a:
		return l.Move(b, a)
	default:
		at := a.prev
		l.Move(a, b)
		return l.Move(b, at)
	}
}

// Splice moves every node of src, in order, to directly after pos,
// leaving src empty. pos must be the sentinel or a member of l, and
// src must be a different list.
func (l *List[T]) Splice(src *List[T], pos *Node[T]) {
	if src == l || src.Empty() || !pos.Linked() {
		return
	}

	first, last := src.root.next, src.root.prev
	next := pos.next

	pos.next = first
	first.prev = pos
	last.next = next
	next.prev = last

	src.Init()
}

// SpliceTail moves every node of src, in order, to directly before
// pos, leaving src empty.
func (l *List[T]) SpliceTail(src *List[T], pos *Node[T]) {
	if !pos.Linked() {
		return
	}
	l.Splice(src, pos.prev)
}

// All returns an iterator over the nodes of the list, front to back.
// The node being visited may be removed or moved during iteration;
// the iterator continues from the node that followed it.
func (l *List[T]) All() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		if l.Empty() {
			return
		}
		for n, next := l.root.next, l.root.next.next; n.Ok(); n, next = next, next.next {
			if !yield(n) {
				return
			}
		}
	}
}

// Backward returns an iterator over the nodes of the list, back to
// front, with the same removal guarantee as All.
func (l *List[T]) Backward() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		if l.Empty() {
			return
		}
		for n, prev := l.root.prev, l.root.prev.prev; n.Ok(); n, prev = prev, prev.prev {
			if !yield(n) {
				return
			}
		}
	}
}

// Values returns an iterator over the items in the list, front to
// back.
func (l *List[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := range l.All() {
			if !yield(n.item) {
				return
			}
		}
	}
}

// Slice exports the items of the list to a slice.
func (l *List[T]) Slice() []T {
	out := make([]T, 0, l.Len())
	for v := range l.Values() {
		out = append(out, v)
	}
	return out
}

func link[T any](n, prev, next *Node[T]) {
	n.prev = prev
	n.next = next
	prev.next = n
	next.prev = n
}

func unlink[T any](n *Node[T]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.next = nil
	n.prev = nil
}
