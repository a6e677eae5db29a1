// Package check mirrors the assert package, but its assertions are
// non-fatal: failures are reported with t.Error and the test keeps
// running.
package check

import (
	"testing"

	"github.com/ShawnXuanc/lab0/internal/assertion"
)

// True causes a test to fail if the condition is false.
func True(t testing.TB, cond bool) {
	t.Helper()
	if msg := assertion.True(cond); msg != "" {
		t.Error(msg)
	}
}

// Equal causes a test to fail if the two (comparable) values are not
// equal.
func Equal[T comparable](t testing.TB, valOne, valTwo T) {
	t.Helper()
	if msg := assertion.Equal(valOne, valTwo); msg != "" {
		t.Error(msg)
	}
}

// NotEqual causes a test to fail if the two values are equal.
func NotEqual[T comparable](t testing.TB, valOne, valTwo T) {
	t.Helper()
	if msg := assertion.NotEqual(valOne, valTwo); msg != "" {
		t.Error(msg)
	}
}

// Zero fails a test if the value is not the zero-value for its type.
func Zero[T comparable](t testing.TB, val T) {
	t.Helper()
	if msg := assertion.Zero(val); msg != "" {
		t.Error(msg)
	}
}

// NotZero fails a test if the value is the zero for its type.
func NotZero[T comparable](t testing.TB, val T) {
	t.Helper()
	if msg := assertion.NotZero(val); msg != "" {
		t.Error(msg)
	}
}

// Error fails the test if the error is nil.
func Error(t testing.TB, err error) {
	t.Helper()
	if msg := assertion.Error(err); msg != "" {
		t.Error(msg)
	}
}

// NotError fails the test if the error is non-nil.
func NotError(t testing.TB, err error) {
	t.Helper()
	if msg := assertion.NotError(err); msg != "" {
		t.Error(msg)
	}
}

// ErrorIs is an assertion form of errors.Is, and fails the test if
// the error (or its wrapped values) are not equal to the target
// error.
func ErrorIs(t testing.TB, err, target error) {
	t.Helper()
	if msg := assertion.ErrorIs(err, target); msg != "" {
		t.Error(msg)
	}
}

// NotErrorIs is an assertion form of !errors.Is.
func NotErrorIs(t testing.TB, err, target error) {
	t.Helper()
	if msg := assertion.NotErrorIs(err, target); msg != "" {
		t.Error(msg)
	}
}

// EqualItems compares the values in two slices and fails unless they
// hold equal items in the same order.
func EqualItems[T comparable](t testing.TB, one, two []T) {
	t.Helper()
	if msg := assertion.EqualItems(one, two); msg != "" {
		t.Error(msg)
	}
}

// NotEqualItems fails when the two slices hold equal items in the same
// order.
func NotEqualItems[T comparable](t testing.TB, one, two []T) {
	t.Helper()
	if msg := assertion.NotEqualItems(one, two); msg != "" {
		t.Error(msg)
	}
}

// Contains asserts that the item is in the slice provided. Empty or
// nil slices always cause failure.
func Contains[T comparable](t testing.TB, slice []T, item T) {
	t.Helper()
	if msg := assertion.Contains(slice, item); msg != "" {
		t.Error(msg)
	}
}

// Substring asserts that the substring is present in the string.
func Substring(t testing.TB, str, substr string) {
	t.Helper()
	if msg := assertion.Substring(str, substr); msg != "" {
		t.Error(msg)
	}
}

// NotSubstring asserts that the substring is not present in the
// outer string.
func NotSubstring(t testing.TB, str, substr string) {
	t.Helper()
	if msg := assertion.NotSubstring(str, substr); msg != "" {
		t.Error(msg)
	}
}

// Panic asserts that the function raises a panic.
func Panic(t testing.TB, fn func()) {
	t.Helper()
	if msg := assertion.Panic(fn); msg != "" {
		t.Error(msg)
	}
}

// NotPanic asserts that the function does not panic.
func NotPanic(t testing.TB, fn func()) {
	t.Helper()
	if msg := assertion.NotPanic(fn); msg != "" {
		t.Error(msg)
	}
}

// PanicValue asserts that the function raises a panic and that the
// value, as returned by recover() is equal to the value provided.
func PanicValue[T comparable](t testing.TB, fn func(), value T) {
	t.Helper()
	if msg := assertion.PanicValue(fn, value); msg != "" {
		t.Error(msg)
	}
}
