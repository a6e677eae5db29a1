package queue

import (
	"iter"

	"github.com/ShawnXuanc/lab0/ring"
)

// Context tracks one queue in a Chain together with its element
// count. The count stays accurate as long as the queue is modified
// through the Context; after changing the queue directly, call
// Refresh.
type Context struct {
	queue *Queue
	size  int
	id    int
	node  *ring.Node[*Context]
}

// Queue returns the tracked queue.
func (c *Context) Queue() *Queue { return c.queue }

// Size returns the tracked element count.
func (c *Context) Size() int { return c.size }

// ID returns the identifier assigned when the queue joined its chain.
func (c *Context) ID() int { return c.id }

// Refresh recounts the queue and returns the new size.
func (c *Context) Refresh() int { c.size = c.queue.Size(); return c.size }

// InsertHead inserts at the front of the tracked queue.
func (c *Context) InsertHead(value string) error {
	if err := c.queue.InsertHead(value); err != nil {
		return err
	}
	c.size++
	return nil
}

// InsertTail inserts at the back of the tracked queue.
func (c *Context) InsertTail(value string) error {
	if err := c.queue.InsertTail(value); err != nil {
		return err
	}
	c.size++
	return nil
}

// RemoveHead removes from the front of the tracked queue; see
// Queue.RemoveHead.
func (c *Context) RemoveHead(buf []byte) *Element { return c.removed(c.queue.RemoveHead(buf)) }

// RemoveTail removes from the back of the tracked queue; see
// Queue.RemoveTail.
func (c *Context) RemoveTail(buf []byte) *Element { return c.removed(c.queue.RemoveTail(buf)) }

func (c *Context) removed(e *Element) *Element {
	if e != nil {
		c.size--
	}
	return e
}

// Chain is an ordered collection of queues, each tracked by a
// Context. The zero value is an empty chain.
type Chain struct {
	list   ring.List[*Context]
	nextID int
}

// Add appends a queue to the chain and returns its context.
func (c *Chain) Add(q *Queue) *Context {
	ctx := &Context{queue: q, size: q.Size(), id: c.nextID}
	c.nextID++
	ctx.node = c.list.PushBack(ctx)
	return ctx
}

// Remove takes a context out of the chain. The queue itself is left
// untouched.
func (c *Chain) Remove(ctx *Context) bool {
	if ctx == nil || !c.list.Remove(ctx.node) {
		return false
	}
	ctx.node = nil
	return true
}

// Len returns the number of queues in the chain.
func (c *Chain) Len() int { return c.list.Len() }

// First returns the context of the first queue, or nil when the chain
// is empty.
func (c *Chain) First() *Context { return c.list.Front().Value() }

// Next returns the context after ctx, wrapping around at the end of
// the chain.
func (c *Chain) Next(ctx *Context) *Context {
	if ctx == nil || !ctx.node.Linked() {
		return c.First()
	}
	if n := ctx.node.Next(); n.Ok() {
		return n.Value()
	}
	return c.First()
}

// Previous returns the context before ctx, wrapping around at the
// front of the chain.
func (c *Chain) Previous(ctx *Context) *Context {
	if ctx == nil || !ctx.node.Linked() {
		return c.list.Back().Value()
	}
	if n := ctx.node.Previous(); n.Ok() {
		return n.Value()
	}
	return c.list.Back().Value()
}

// Contexts returns an iterator over the contexts in the chain.
func (c *Chain) Contexts() iter.Seq[*Context] { return c.list.Values() }

// Merge combines every queue in the chain into the first queue. Each
// queue must already be sorted in the direction given by descend.
// Queues are merged in chain order, and equal values keep that order.
// Elements are moved, not copied, so every other queue is left empty.
// Merge returns the number of elements in the merged queue.
func (c *Chain) Merge(descend bool) int {
	first := c.First()
	if first == nil || first.queue == nil {
		return 0
	}

	cmp := comparator(descend)
	for ctx := range c.list.Values() {
		if ctx == first || ctx.queue == nil {
			continue
		}
		first.queue.list.Merge(&ctx.queue.list, cmp)
		ctx.size = 0
	}

	return first.Refresh()
}
