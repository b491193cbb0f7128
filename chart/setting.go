package chart

import "fmt"

// Setting is a tunable that is either left automatic, in which case a value
// is derived at draw time, or fixed to an explicit value.
type Setting[T any] struct {
	value T
	fixed bool
}

// Auto returns a Setting resolved at draw time.
func Auto[T any]() Setting[T] {
	return Setting[T]{}
}

// Fixed returns a Setting holding v.
func Fixed[T any](v T) Setting[T] {
	return Setting[T]{value: v, fixed: true}
}

// IsAuto reports whether the setting is automatic.
func (s Setting[T]) IsAuto() bool {
	return !s.fixed
}

// Get returns the fixed value, if any.
func (s Setting[T]) Get() (T, bool) {
	return s.value, s.fixed
}

// Resolve returns the fixed value, or auto when the setting is automatic.
func (s Setting[T]) Resolve(auto T) T {
	if s.fixed {
		return s.value
	}
	return auto
}

func (s Setting[T]) String() string {
	if !s.fixed {
		return "auto"
	}
	return fmt.Sprint(s.value)
}
