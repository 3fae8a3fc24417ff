// Package slice implements an iterator that traverses uni-directionally
// over a generic slice of elements.
//
// The iterator is a non-owning view of the slice: it stores the slice
// header and a position, never copying the elements.  Slice supports the
// Size interface.
package slice

import "context"

// Iterator traverses over a slice of elements of type T.
type Iterator[T any] struct {
	s   []T
	pos int
	err error
}

// New returns an Iterator that traverses over the provided slice.  The
// returned iterator supports the Size interface.
func New[T any](s []T) Iterator[T] {
	return Iterator[T]{
		s: s,
	}
}

// Size returns the length of the underlying slice, implementing the
// Size interface.
func (r *Iterator[T]) Size() uint {
	return uint(len(r.s))
}

// Next advances the iterator to the next element of the underlying
// slice.  It returns false when the end of the slice has been reached or
// the context is cancelled.
func (r *Iterator[T]) Next(ctx context.Context) bool {
	if r.pos >= len(r.s) {
		return false
	}

	select {
	case <-ctx.Done():
		r.err = ctx.Err()
		return false
	default:
	}

	r.pos++
	return true
}

// Get returns the element of the underlying slice that the iterator
// refers to, or the zero value of T before the first call to Next.
func (r *Iterator[T]) Get() T {
	if r.pos == 0 {
		var ret T
		return ret
	}

	return r.s[r.pos-1]
}

// Error returns the context's error if the context is cancelled
// during a call to Next()
func (r *Iterator[T]) Error() error {
	return r.err
}
