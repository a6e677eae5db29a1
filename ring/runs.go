package ring

// run describes a sorted chain waiting on the merge stack.
type run[T any] struct {
	head *Node[T]
	size int
}

// SortRuns sorts the list in place with an adaptive bottom-up merge
// sort in the style of timsort. It makes a single pass over the list
// to find ascending runs (reversing strictly descending runs as it
// goes), and merges runs from an explicit stack whose depth stays
// logarithmic in the length of the list. Input that is already
// sorted, in either direction, is handled in linear time. The sort is
// stable.
func (l *List[T]) SortRuns(cmp Compare[T]) {
	if l.Empty() || l.Singular() {
		return
	}

	head, _ := sortRuns(l.detach(), cmp)
	l.attach(head)
}

// sortRuns sorts a chain and also reports the deepest the merge stack
// grew while doing so.
func sortRuns[T any](list *Node[T], cmp Compare[T]) (*Node[T], int) {
	stack := make([]run[T], 0, 16)
	depth := 0

	for list != nil {
		var r run[T]
		r, list = findRun(list, cmp)
		stack = append(stack, r)
		depth = max(depth, len(stack))
		stack = collapse(stack, cmp)
	}

	stack = forceCollapse(stack, cmp)
	if len(stack) == 0 {
		return nil, depth
	}
	return stack[0].head, depth
}

// findRun detaches the run at the start of list and returns it along
// with the remainder of the chain. A strictly descending run is
// reversed while it is scanned; requiring strictness keeps equal
// items in their original order.
func findRun[T any](list *Node[T], cmp Compare[T]) (run[T], *Node[T]) {
	next := list.next
	if next == nil {
		return run[T]{head: list, size: 1}, nil
	}

	size := 1
	if cmp(list.item, next.item) > 0 {
		var prev *Node[T]
		for {
			size++
			list.next = prev
			prev = list
			list = next
			next = list.next
			if next == nil || cmp(list.item, next.item) <= 0 {
				break
			}
		}
		list.next = prev
		return run[T]{head: list, size: size}, next
	}

	head := list
	for {
		size++
		list = next
		next = list.next
		if next == nil || cmp(list.item, next.item) > 0 {
			break
		}
	}
	list.next = nil
	return run[T]{head: head, size: size}, next
}

// collapse merges runs at the top of the stack until the sizes of the
// top runs, read from the top down as C, B, A and Z, satisfy
// A > B+C, Z > A+B and B > C. When A is smaller than C the pair A,B
// merges first, otherwise B,C.
func collapse[T any](stack []run[T], cmp Compare[T]) []run[T] {
	for n := len(stack); n >= 2; n = len(stack) {
		switch {
		case n >= 3 && stack[n-3].size <= stack[n-2].size+stack[n-1].size,
			n >= 4 && stack[n-4].size <= stack[n-3].size+stack[n-2].size:
			if stack[n-3].size < stack[n-1].size {
				stack = mergeAt(stack, n-3, cmp)
			} else {
				stack = mergeAt(stack, n-2, cmp)
			}
		case stack[n-2].size <= stack[n-1].size:
			stack = mergeAt(stack, n-2, cmp)
		default:
			return stack
		}
	}
	return stack
}

// forceCollapse merges the stack down to a single run, ignoring the
// balance rule, once the input is exhausted.
func forceCollapse[T any](stack []run[T], cmp Compare[T]) []run[T] {
	for n := len(stack); n >= 2; n = len(stack) {
		if n >= 3 && stack[n-3].size < stack[n-1].size {
			stack = mergeAt(stack, n-3, cmp)
		} else {
			stack = mergeAt(stack, n-2, cmp)
		}
	}
	return stack
}

// mergeAt replaces the runs at idx and idx+1 with their merge. The
// run at idx is older, so its items win ties.
func mergeAt[T any](stack []run[T], idx int, cmp Compare[T]) []run[T] {
	stack[idx] = run[T]{
		head: merge(stack[idx].head, stack[idx+1].head, cmp),
		size: stack[idx].size + stack[idx+1].size,
	}
	return append(stack[:idx+1], stack[idx+2:]...)
}
