package ring_test

import (
	"slices"
	"testing"

	"github.com/ShawnXuanc/lab0/assert"
	"github.com/ShawnXuanc/lab0/assert/check"
	"github.com/ShawnXuanc/lab0/ring"
)

// checkRing walks the list in both directions and fails the test if
// any link is not mirrored or either walk fails to return to the
// sentinel after Len()+1 steps.
func checkRing[T any](t testing.TB, l *ring.List[T]) {
	t.Helper()
	root := l.Root()
	size := l.Len()

	n := root
	for i := 0; i <= size; i++ {
		if n.Next().Previous() != n {
			t.Fatalf("next link at position %d is not mirrored", i)
		}
		n = n.Next()
	}
	if n != root {
		t.Fatal("forward walk did not return to the sentinel")
	}

	for i := 0; i <= size; i++ {
		if n.Previous().Next() != n {
			t.Fatalf("prev link at position %d is not mirrored", i)
		}
		n = n.Previous()
	}
	if n != root {
		t.Fatal("backward walk did not return to the sentinel")
	}
}

func makeList(vals ...int) *ring.List[int] {
	l := ring.New[int]()
	for _, v := range vals {
		l.PushBack(v)
	}
	return l
}

func TestList(t *testing.T) {
	t.Run("ZeroValue", func(t *testing.T) {
		var l ring.List[int]
		assert.True(t, l.Empty())
		assert.Equal(t, l.Len(), 0)
		assert.True(t, !l.Front().Ok())
		assert.True(t, l.Front() == l.Root())
		checkRing(t, &l)

		l.PushBack(42)
		assert.Equal(t, l.Len(), 1)
		assert.True(t, l.Singular())
		assert.Equal(t, l.Front().Value(), 42)
		checkRing(t, &l)
	})
	t.Run("Nil", func(t *testing.T) {
		var l *ring.List[int]
		assert.True(t, l.Empty())
		assert.True(t, !l.Singular())
		assert.Equal(t, l.Len(), 0)
		assert.Equal(t, len(l.Slice()), 0)
		assert.PanicValue(t, func() { l.PushBack(1) }, ring.ErrUninitializedList)
	})
	t.Run("PushOrder", func(t *testing.T) {
		l := ring.New[int]()
		for i := 0; i < 10; i++ {
			if i%2 == 0 {
				l.PushBack(i)
			} else {
				l.PushFront(i)
			}
		}
		assert.EqualItems(t, l.Slice(), []int{9, 7, 5, 3, 1, 0, 2, 4, 6, 8})
		assert.Equal(t, l.Front().Value(), 9)
		assert.Equal(t, l.Back().Value(), 8)
		checkRing(t, l)
	})
	t.Run("Insert", func(t *testing.T) {
		t.Run("AfterAndBefore", func(t *testing.T) {
			l := makeList(1, 3)
			assert.True(t, l.InsertAfter(l.Front(), ring.NewNode(2)))
			assert.True(t, l.InsertBefore(l.Front(), ring.NewNode(0)))
			assert.True(t, l.InsertBefore(l.Root(), ring.NewNode(4)))
			assert.EqualItems(t, l.Slice(), []int{0, 1, 2, 3, 4})
			checkRing(t, l)
		})
		t.Run("RefusesLinkedNode", func(t *testing.T) {
			l := makeList(1, 2)
			other := makeList(3)
			assert.True(t, !l.InsertAfter(l.Root(), other.Front()))
			assert.True(t, !l.InsertAfter(l.Root(), l.Back()))
			assert.True(t, !l.InsertAfter(l.Root(), l.Root()))
			assert.True(t, !l.InsertAfter(l.Root(), nil))
			assert.EqualItems(t, l.Slice(), []int{1, 2})
			assert.EqualItems(t, other.Slice(), []int{3})
		})
		t.Run("RefusesDetachedPosition", func(t *testing.T) {
			l := makeList(1)
			assert.True(t, !l.InsertAfter(ring.NewNode(7), ring.NewNode(8)))
			assert.Equal(t, l.Len(), 1)
		})
	})
	t.Run("Remove", func(t *testing.T) {
		l := makeList(1, 2, 3)
		mid := l.Front().Next()
		assert.True(t, l.Remove(mid))
		assert.True(t, !mid.Linked())
		assert.True(t, mid.Next() == nil)
		assert.True(t, mid.Previous() == nil)
		assert.Equal(t, mid.Value(), 2)
		assert.EqualItems(t, l.Slice(), []int{1, 3})
		checkRing(t, l)

		check.True(t, !l.Remove(mid))
		check.True(t, !l.Remove(l.Root()))
		check.True(t, !l.Remove(nil))
		assert.Equal(t, l.Len(), 2)

		assert.True(t, l.InsertAfter(l.Root(), mid))
		assert.EqualItems(t, l.Slice(), []int{2, 1, 3})
	})
	t.Run("Singular", func(t *testing.T) {
		l := makeList()
		assert.True(t, !l.Singular())
		l.PushBack(1)
		assert.True(t, l.Singular())
		l.PushBack(2)
		assert.True(t, !l.Singular())
	})
	t.Run("Move", func(t *testing.T) {
		l := makeList(1, 2, 3, 4)
		assert.True(t, l.Move(l.Front(), l.Back()))
		assert.EqualItems(t, l.Slice(), []int{2, 3, 4, 1})
		assert.True(t, l.Move(l.Back(), l.Root()))
		assert.EqualItems(t, l.Slice(), []int{1, 2, 3, 4})
		assert.True(t, l.MoveTail(l.Front(), l.Root()))
		assert.EqualItems(t, l.Slice(), []int{2, 3, 4, 1})
		assert.True(t, l.MoveTail(l.Back(), l.Front()))
		assert.EqualItems(t, l.Slice(), []int{1, 2, 3, 4})
		assert.True(t, !l.Move(l.Front(), l.Front()))
		assert.True(t, !l.Move(l.Root(), l.Front()))
		checkRing(t, l)
	})
	t.Run("Swap", func(t *testing.T) {
		t.Run("Adjacent", func(t *testing.T) {
			l := makeList(1, 2, 3)
			assert.True(t, l.Swap(l.Front(), l.Front().Next()))
			assert.EqualItems(t, l.Slice(), []int{2, 1, 3})
			assert.True(t, l.Swap(l.Back(), l.Back().Previous()))
			assert.EqualItems(t, l.Slice(), []int{2, 3, 1})
			checkRing(t, l)
		})
		t.Run("Distant", func(t *testing.T) {
			l := makeList(1, 2, 3, 4, 5)
			assert.True(t, l.Swap(l.Front(), l.Back()))
			assert.EqualItems(t, l.Slice(), []int{5, 2, 3, 4, 1})
			assert.True(t, l.Swap(l.Back().Previous(), l.Front().Next()))
			assert.EqualItems(t, l.Slice(), []int{5, 4, 3, 2, 1})
			checkRing(t, l)
		})
		t.Run("PairOnly", func(t *testing.T) {
			l := makeList(1, 2)
			assert.True(t, l.Swap(l.Back(), l.Front()))
			assert.EqualItems(t, l.Slice(), []int{2, 1})
			checkRing(t, l)
		})
		t.Run("Refused", func(t *testing.T) {
			l := makeList(1, 2)
			check.True(t, !l.Swap(l.Front(), l.Front()))
			check.True(t, !l.Swap(l.Front(), l.Root()))
			check.True(t, !l.Swap(nil, l.Front()))
			check.True(t, !l.Swap(l.Front(), ring.NewNode(3)))
			assert.EqualItems(t, l.Slice(), []int{1, 2})
		})
	})
	t.Run("Splice", func(t *testing.T) {
		t.Run("Front", func(t *testing.T) {
			dst, src := makeList(1, 2), makeList(3, 4)
			dst.Splice(src, dst.Root())
			assert.EqualItems(t, dst.Slice(), []int{3, 4, 1, 2})
			assert.True(t, src.Empty())
			checkRing(t, dst)
			checkRing(t, src)
		})
		t.Run("Middle", func(t *testing.T) {
			dst, src := makeList(1, 4), makeList(2, 3)
			dst.Splice(src, dst.Front())
			assert.EqualItems(t, dst.Slice(), []int{1, 2, 3, 4})
			checkRing(t, dst)
		})
		t.Run("Tail", func(t *testing.T) {
			dst, src := makeList(1, 2), makeList(3, 4)
			dst.SpliceTail(src, dst.Root())
			assert.EqualItems(t, dst.Slice(), []int{1, 2, 3, 4})
			assert.Equal(t, src.Len(), 0)
			checkRing(t, dst)
		})
		t.Run("EmptySource", func(t *testing.T) {
			dst := makeList(1)
			dst.Splice(makeList(), dst.Root())
			dst.Splice(nil, dst.Root())
			assert.EqualItems(t, dst.Slice(), []int{1})
		})
		t.Run("Self", func(t *testing.T) {
			l := makeList(1, 2)
			l.Splice(l, l.Front())
			assert.EqualItems(t, l.Slice(), []int{1, 2})
			checkRing(t, l)
		})
		t.Run("MovedNodesBelongToDestination", func(t *testing.T) {
			dst, src := makeList(1), makeList(2)
			node := src.Front()
			dst.SpliceTail(src, dst.Root())
			assert.True(t, dst.Remove(node))
			assert.EqualItems(t, dst.Slice(), []int{1})
			assert.True(t, src.Empty())
		})
	})
	t.Run("Iteration", func(t *testing.T) {
		t.Run("RemoveWhileIterating", func(t *testing.T) {
			l := makeList(1, 2, 3, 4, 5, 6)
			for n := range l.All() {
				if n.Value()%2 == 0 {
					assert.True(t, l.Remove(n))
				}
			}
			assert.EqualItems(t, l.Slice(), []int{1, 3, 5})
			checkRing(t, l)
		})
		t.Run("Backward", func(t *testing.T) {
			l := makeList(1, 2, 3)
			out := []int{}
			for n := range l.Backward() {
				out = append(out, n.Value())
				l.Remove(n)
			}
			assert.EqualItems(t, out, []int{3, 2, 1})
			assert.True(t, l.Empty())
		})
		t.Run("EarlyReturn", func(t *testing.T) {
			l := makeList(1, 2, 3)
			count := 0
			for range l.Values() {
				count++
				break
			}
			assert.Equal(t, count, 1)
			assert.EqualItems(t, slices.Collect(l.Values()), []int{1, 2, 3})
		})
		t.Run("Empty", func(t *testing.T) {
			var l ring.List[string]
			for range l.All() {
				t.Fatal("should not iterate")
			}
			for range l.Backward() {
				t.Fatal("should not iterate")
			}
		})
	})
	t.Run("Init", func(t *testing.T) {
		l := makeList(1, 2, 3)
		l.Init()
		assert.True(t, l.Empty())
		checkRing(t, l)
	})
	t.Run("NodeAccessors", func(t *testing.T) {
		var n *ring.Node[string]
		assert.Equal(t, n.Value(), "")
		assert.True(t, !n.Ok())
		assert.True(t, !n.Linked())
		assert.Equal(t, ring.NewNode(7).String(), "7")
	})
}
