package ordering

import (
	"cmp"
	"slices"
)

// Comparator is a three-way comparison function over a type.  A single
// Comparator replaces the full set of relational operators: build one
// from a projection with By, refine it with Then, and invert it with
// Reversed.
type Comparator[T any] func(a, b T) Ordering

// By builds a Comparator from a projection: values are compared by the
// ordered key the projection extracts.
//
// Example:
//
//	byTitle := ordering.By(func(b Book) string { return b.Title })
func By[T any, K cmp.Ordered](key func(T) K) Comparator[T] {
	return func(a, b T) Ordering {
		return Compare(key(a), key(b))
	}
}

// Then returns a Comparator that breaks ties with next: if c considers
// two values equal, the result of next decides.  Chaining Then calls
// yields a member-by-member composite ordering with an explicit member
// order, including reversed (descending) members:
//
//	cmp := ordering.By(city).
//	        Then(ordering.By(street)).
//	        Then(ordering.By(streetNo).Reversed())
func (c Comparator[T]) Then(next Comparator[T]) Comparator[T] {
	return func(a, b T) Ordering {
		if o := c(a, b); o != Equal {
			return o
		}
		return next(a, b)
	}
}

// Reversed returns a Comparator imposing the opposite (descending)
// order.
func (c Comparator[T]) Reversed() Comparator[T] {
	return func(a, b T) Ordering {
		return c(a, b).Reversed()
	}
}

// Lexicographical three-way compares two sequences element by element:
// the first unequal pair decides, and if one sequence is a prefix of the
// other, the shorter one orders first.
func Lexicographical[T cmp.Ordered](a, b []T) Ordering {
	for i := 0; i < len(a) && i < len(b); i++ {
		if o := Compare(a[i], b[i]); o != Equal {
			return o
		}
	}

	return Compare(len(a), len(b))
}

// Sort sorts the slice in place using the three-way comparator.  The
// sort is not guaranteed stable; use a Then chain to make the order
// total if that matters.
func Sort[T any](s []T, c Comparator[T]) {
	slices.SortFunc(s, func(a, b T) int {
		return int(c(a, b))
	})
}

// SortBy sorts the slice in place by an ordered projection, ascending.
// It is shorthand for Sort(s, By(key)).
func SortBy[T any, K cmp.Ordered](s []T, key func(T) K) {
	Sort(s, By(key))
}

// IsSorted reports whether the slice is ordered according to the
// comparator.
func IsSorted[T any](s []T, c Comparator[T]) bool {
	return slices.IsSortedFunc(s, func(a, b T) int {
		return int(c(a, b))
	})
}

// EqualBy builds an equality predicate from a comparable projection, for
// types that support equivalence but no meaningful order (eg. record
// identifiers).
func EqualBy[T any, K comparable](key func(T) K) func(a, b T) bool {
	return func(a, b T) bool {
		return key(a) == key(b)
	}
}
