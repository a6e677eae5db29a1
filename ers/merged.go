package ers

import (
	"errors"
	"strings"
)

// Stack is the error type returned by Join when it aggregates more
// than one error. The most recently pushed error is on top; Unwrap
// descends through the rest, so errors.Is and errors.As see every
// constituent error.
type Stack struct {
	err   error
	next  *Stack
	count int
}

// Join takes a slice of errors and aggregates the non-nil ones. Join
// returns nil when there are none, and the error itself when there is
// exactly one.
func Join(errs ...error) error {
	s := &Stack{}
	for _, err := range errs {
		s.Push(err)
	}

	switch s.count {
	case 0:
		return nil
	case 1:
		return s.err
	default:
		return s
	}
}

// Len returns the number of errors in the stack.
func (e *Stack) Len() int {
	if e == nil {
		return 0
	}
	return e.count
}

// Push adds an error to the top of the stack. Nil errors are ignored
// and other stacks are flattened.
func (e *Stack) Push(err error) {
	switch werr := err.(type) {
	case nil:
		return
	case *Stack:
		items := werr.Unwind()
		for idx := len(items) - 1; idx >= 0; idx-- {
			e.Push(items[idx])
		}
	default:
		e.next = &Stack{next: e.next, err: e.err, count: e.count}
		e.err = err
		e.count++
	}
}

// Error joins the messages of every error in the stack, top first.
func (e *Stack) Error() string {
	if e.err == nil {
		return "<nil>"
	}

	return strings.Join(Strings(e.Unwind()), ": ")
}

// Is calls errors.Is on the error at the top of the stack.
func (e *Stack) Is(err error) bool { return errors.Is(e.err, err) }

// As calls errors.As on the error at the top of the stack.
func (e *Stack) As(target any) bool { return errors.As(e.err, target) }

// Unwrap returns the rest of the stack, and is compatible with
// errors.Unwrap.
func (e *Stack) Unwrap() error {
	if e.next == nil || e.next.err == nil {
		return nil
	}
	return e.next
}

// Unwind returns the errors in the stack, top first.
func (e *Stack) Unwind() []error {
	out := make([]error, 0, e.Len())
	for iter := e; iter != nil && iter.err != nil; iter = iter.next {
		out = append(out, iter.err)
	}
	return out
}

// Strings renders the non-nil errors in errs.
func Strings(errs []error) []string {
	out := make([]string, 0, len(errs))
	for idx := range errs {
		if errs[idx] != nil {
			out = append(out, errs[idx].Error())
		}
	}
	return out
}
