// Package assertion holds the comparisons behind the assert and check
// packages. Every function returns the empty string when the
// assertion holds and a failure message when it does not.
package assertion

import (
	"errors"
	"fmt"
	"strings"
)

func True(cond bool) string {
	if cond {
		return ""
	}
	return "assertion failure"
}

func Equal[T comparable](one, two T) string {
	if one == two {
		return ""
	}
	return fmt.Sprintf("unequal: <%v> != <%v>", one, two)
}

func NotEqual[T comparable](one, two T) string {
	if one != two {
		return ""
	}
	return fmt.Sprintf("equal: <%v>", one)
}

func Zero[T comparable](val T) string {
	var zero T
	if val == zero {
		return ""
	}
	return fmt.Sprintf("expected zero for value of type %T <%v>", val, val)
}

func NotZero[T comparable](val T) string {
	var zero T
	if val != zero {
		return ""
	}
	return fmt.Sprintf("expected non-zero for value of type %T", val)
}

func Error(err error) string {
	if err != nil {
		return ""
	}
	return "expected non-nil error"
}

func NotError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("unexpected error: %v", err)
}

func ErrorIs(err, target error) string {
	if errors.Is(err, target) {
		return ""
	}
	return fmt.Sprintf("error <%v>, is not <%v>", err, target)
}

func NotErrorIs(err, target error) string {
	if !errors.Is(err, target) {
		return ""
	}
	return fmt.Sprintf("error <%v>, is <%v>", err, target)
}

func EqualItems[T comparable](one, two []T) string {
	if len(one) != len(two) {
		return fmt.Sprintf("slices are of different lengths [%d vs %d]: %v != %v", len(one), len(two), one, two)
	}

	for idx := range one {
		if one[idx] != two[idx] {
			return fmt.Sprintf("items at index %d [%v vs %v] are not equal: %v != %v", idx, one[idx], two[idx], one, two)
		}
	}
	return ""
}

func NotEqualItems[T comparable](one, two []T) string {
	if EqualItems(one, two) != "" {
		return ""
	}
	return fmt.Sprintf("slices have identical items: %v", one)
}

func Contains[T comparable](slice []T, item T) string {
	for _, it := range slice {
		if it == item {
			return ""
		}
	}
	return fmt.Sprintf("item <%v> is not in %v", item, slice)
}

func Substring(str, substr string) string {
	if strings.Contains(str, substr) {
		return ""
	}
	return fmt.Sprintf("expected %q to contain substring %q", str, substr)
}

func NotSubstring(str, substr string) string {
	if !strings.Contains(str, substr) {
		return ""
	}
	return fmt.Sprintf("expected %q not to contain substring %q", str, substr)
}

// Recovered describes the outcome of running fn: whether it panicked
// and with what value.
func Recovered(fn func()) (val any, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			val, panicked = r, true
		}
	}()
	fn()
	return nil, false
}

func Panic(fn func()) string {
	if _, ok := Recovered(fn); ok {
		return ""
	}
	return "expected a panic but got none"
}

func NotPanic(fn func()) string {
	if val, ok := Recovered(fn); ok {
		return fmt.Sprintf("panic: %v", val)
	}
	return ""
}

func PanicValue[T comparable](fn func(), value T) string {
	r, ok := Recovered(fn)
	if !ok {
		return "expected a panic but got none"
	}
	pval, ok := r.(T)
	if !ok {
		return fmt.Sprintf("panic [%v], not of expected type %T", r, value)
	}
	return Equal(pval, value)
}
