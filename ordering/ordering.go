// Package ordering provides three-way comparison primitives: a single
// compare operation yielding Less, Equal or Greater replaces the six
// boolean relational operators, and composite orderings are assembled by
// chaining comparators instead of hand-writing comparison boilerplate.
package ordering

import (
	"cmp"
)

// Ordering is the result of a three-way comparison.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

func (o Ordering) String() string {
	switch {
	case o < 0:
		return "less"
	case o > 0:
		return "greater"
	default:
		return "equal"
	}
}

// Reversed inverts the ordering, turning an ascending comparison result
// into a descending one.
func (o Ordering) Reversed() Ordering {
	return -o
}

// Category classifies how much an ordering promises.  A strong ordering
// means equal values are indistinguishable; a weak ordering permits
// distinguishable values to compare equal (equivalence); a partial
// ordering additionally permits incomparable values.
type Category int

const (
	// CategoryPartial is the least strict category: some pairs of
	// values may be incomparable.
	CategoryPartial Category = iota

	// CategoryWeak guarantees all values are comparable, but equal
	// means equivalent, not identical.
	CategoryWeak

	// CategoryStrong is the strictest category: equal values are
	// substitutable for one another.
	CategoryStrong
)

func (c Category) String() string {
	switch c {
	case CategoryPartial:
		return "partial"
	case CategoryWeak:
		return "weak"
	default:
		return "strong"
	}
}

// Common returns the common category of a set of orderings: the least
// strict among them.  This mirrors how the category of a composite
// ordering is determined by its weakest member.  With no arguments,
// Common returns CategoryStrong.
func Common(cats ...Category) Category {
	common := CategoryStrong
	for _, c := range cats {
		common = min(common, c)
	}
	return common
}

// Compare three-way compares two ordered values.
func Compare[T cmp.Ordered](a, b T) Ordering {
	return Ordering(cmp.Compare(a, b))
}

// PartialCompare three-way compares two ordered values that may be
// incomparable.  For floating point values, comparison against a NaN has
// no defined order; in that case ok is false and the Ordering is
// meaningless.
func PartialCompare[T cmp.Ordered](a, b T) (o Ordering, ok bool) {
	// a NaN is the only value that does not compare equal to itself
	if a != a || b != b {
		return Equal, false
	}

	return Compare(a, b), true
}
