// Package iota implements an iterator generating consecutive integers.
//
// A generator can be unbounded, in which case it never stops yielding on
// its own: consumers are expected to bound it with a view (eg. a take
// view or a take-while view) or by cancelling the context.
package iota

import "context"

// Iterator yields consecutive integers starting from a given value.
type Iterator struct {
	next    int
	cur     int
	remain  uint
	bounded bool
	err     error
}

// New returns an unbounded Iterator yielding start, start+1, start+2, ...
//
// The iterator does not support the Size interface; it has no size.
func New(start int) Iterator {
	return Iterator{
		next: start,
	}
}

// NewBounded returns an Iterator yielding count consecutive integers
// starting from start.  The returned iterator supports the Size
// interface.
func NewBounded(start int, count uint) *Bounded {
	return &Bounded{
		Iterator: Iterator{
			next:    start,
			remain:  count,
			bounded: true,
		},
		count: count,
	}
}

// Bounded is an Iterator over a fixed span of consecutive integers.
type Bounded struct {
	Iterator
	count uint
}

// Size returns the number of integers in the span, implementing the Size
// interface.
func (i *Bounded) Size() uint {
	return i.count
}

// Next advances the iterator to the next integer.  It returns false when
// a bounded span is exhausted or the context is cancelled; an unbounded
// iterator only stops on cancellation.
func (i *Iterator) Next(ctx context.Context) bool {
	if i.bounded && i.remain == 0 {
		return false
	}

	select {
	case <-ctx.Done():
		i.err = ctx.Err()
		return false
	default:
	}

	if i.bounded {
		i.remain--
	}

	i.cur = i.next
	i.next++
	return true
}

// Get returns the integer the iterator refers to, or zero before the
// first call to Next.
func (i *Iterator) Get() int {
	return i.cur
}

// Error returns the context's error if the context is cancelled during a
// call to Next()
func (i *Iterator) Error() error {
	return i.err
}
