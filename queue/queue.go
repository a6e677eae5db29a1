// Package queue implements a double ended queue of strings on top of
// a ring.List. Each element owns a private copy of the string it was
// created with. Besides the usual head and tail operations the queue
// supports in-place reordering (swap, reverse, block reverse,
// shuffle), filtering (middle deletion, duplicate removal, monotonic
// filters) and three stable in-place sorts.
//
// Queues are not safe for concurrent use.
package queue

import (
	"iter"
	"strings"

	"github.com/ShawnXuanc/lab0/ers"
	"github.com/ShawnXuanc/lab0/ring"
)

// ErrAllocation is returned when the queue's Allocator refuses to
// provide storage for a new queue or element. The queue is left
// unchanged.
const ErrAllocation ers.Error = ers.Error("allocation failed")

// ErrNoQueue is returned by operations called on a nil queue.
const ErrNoQueue ers.Error = ers.Error("queue does not exist")

// Element is a single queued string. Elements returned by RemoveHead
// and RemoveTail are detached and belong to the caller, who should
// hand them back with Release.
type Element = ring.Node[string]

// Queue is a sequence of string elements. The zero value is an empty
// queue that never fails to allocate.
type Queue struct {
	list  ring.List[string]
	alloc Allocator
}

// Option configures a queue at construction time.
type Option func(*Queue)

// WithAllocator sets the allocation policy used for the queue and its
// elements.
func WithAllocator(a Allocator) Option { return func(q *Queue) { q.alloc = a } }

// New creates an empty queue. New only fails when the allocator
// refuses the queue itself.
func New(opts ...Option) (*Queue, error) {
	q := &Queue{}
	for _, opt := range opts {
		opt(q)
	}

	if !q.allocator().Allocate(0) {
		return nil, ErrAllocation
	}

	q.list.Init()
	return q, nil
}

func (q *Queue) allocator() Allocator {
	if q.alloc == nil {
		return unlimited{}
	}
	return q.alloc
}

// Free releases every element in the queue and then the queue itself.
// The queue must not be used afterwards.
func (q *Queue) Free() {
	if q == nil {
		return
	}

	for e := range q.list.All() {
		q.delete(e)
	}
	q.allocator().Release(0)
}

// Release returns the storage of an element that was removed from
// the queue. Elements that are still linked into a queue are ignored.
func (q *Queue) Release(e *Element) {
	if q == nil || !e.Ok() || e.Linked() {
		return
	}
	q.allocator().Release(len(e.Value()))
}

func (q *Queue) delete(e *Element) {
	if q.list.Remove(e) {
		q.Release(e)
	}
}

func (q *Queue) element(value string) (*Element, error) {
	if q == nil {
		return nil, ErrNoQueue
	}
	if !q.allocator().Allocate(len(value)) {
		return nil, ErrAllocation
	}
	return ring.NewNode(strings.Clone(value)), nil
}

// InsertHead adds a copy of value at the front of the queue.
func (q *Queue) InsertHead(value string) error {
	e, err := q.element(value)
	if err != nil {
		return err
	}

	q.list.InsertAfter(q.list.Root(), e)
	return nil
}

// InsertTail adds a copy of value at the back of the queue.
func (q *Queue) InsertTail(value string) error {
	e, err := q.element(value)
	if err != nil {
		return err
	}

	q.list.InsertBefore(q.list.Root(), e)
	return nil
}

// RemoveHead unlinks the first element and returns it, or nil when
// the queue is nil or empty. When buf is not empty, up to len(buf)-1
// bytes of the element's value are copied into it and the remainder
// of buf is zeroed, so the copy is always zero terminated.
func (q *Queue) RemoveHead(buf []byte) *Element {
	if q == nil {
		return nil
	}
	return q.remove(q.list.Front(), buf)
}

// RemoveTail unlinks the last element and returns it, with the same
// semantics as RemoveHead.
func (q *Queue) RemoveTail(buf []byte) *Element {
	if q == nil {
		return nil
	}
	return q.remove(q.list.Back(), buf)
}

func (q *Queue) remove(e *Element, buf []byte) *Element {
	if !e.Ok() {
		return nil
	}

	if len(buf) > 0 {
		n := copy(buf[:len(buf)-1], e.Value())
		clear(buf[n:])
	}

	q.list.Remove(e)
	return e
}

// Size counts the elements in the queue by walking it.
func (q *Queue) Size() int {
	if q == nil {
		return 0
	}
	return q.list.Len()
}

// Front returns the first element, or nil when the queue is empty.
func (q *Queue) Front() *Element {
	if q == nil || q.list.Empty() {
		return nil
	}
	return q.list.Front()
}

// Back returns the last element, or nil when the queue is empty.
func (q *Queue) Back() *Element {
	if q == nil || q.list.Empty() {
		return nil
	}
	return q.list.Back()
}

// All returns an iterator over the values in the queue, front to
// back.
func (q *Queue) All() iter.Seq[string] {
	if q == nil {
		return func(func(string) bool) {}
	}
	return q.list.Values()
}

// Values returns a snapshot of the values in the queue.
func (q *Queue) Values() []string {
	if q == nil {
		return []string{}
	}
	return q.list.Slice()
}
