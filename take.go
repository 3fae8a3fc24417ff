package ranges

import (
	"context"
)

// takeIterator is a bounded view: it yields at most count elements of the
// underlying sequence, in the underlying order, stopping early if the
// sequence is shorter.  It stores only the iterator handle and two
// counters, so copying the view never copies the sequence's elements.
type takeIterator[T any] struct {
	base  Iterator[T]
	count uint
	taken uint
}

// sizedTakeIterator is the bounded view over a source of known size.  It
// additionally implements Size, reporting min(count, size of the source)
// without stepping through the elements.
type sizedTakeIterator[T any] struct {
	takeIterator[T]
	sized Size[T]
}

// TakeFrom returns a lazy view yielding the first count elements of base,
// or all of base if it holds fewer.  Construction is O(1) and no elements
// are read until the view is advanced.  A count of zero produces an empty
// view; a count exceeding the sequence length saturates.  Counts are
// unsigned, so a negative count is not representable.
//
// If base knows its size, the returned view does too.
func TakeFrom[T any](base Iterator[T], count uint) Iterator[T] {
	t := takeIterator[T]{
		base:  base,
		count: count,
	}

	if sh, ok := base.(Size[T]); ok {
		return &sizedTakeIterator[T]{takeIterator: t, sized: sh}
	}
	return &t
}

// Next advances the view to the next element.  It returns false once
// count elements have been yielded or the underlying sequence is
// exhausted, whichever comes first.
func (i *takeIterator[T]) Next(ctx context.Context) bool {
	if i.taken >= i.count {
		return false
	}

	if !i.base.Next(ctx) {
		return false
	}

	i.taken++
	return true
}

// Get returns the element the view currently refers to.
func (i *takeIterator[T]) Get() T {
	return i.base.Get()
}

// Error returns the underlying iterator's error, if any.
func (i *takeIterator[T]) Error() error {
	return i.base.Error()
}

// Size implements the Size interface when the underlying sequence
// supports it.
func (i *sizedTakeIterator[T]) Size() uint {
	return min(i.count, i.sized.Size())
}

// takeAdaptor is the adaptor closure for the bounded view.  It holds just
// the count, deferring the sequence binding until composition.
type takeAdaptor[T any] struct {
	count uint
}

func (a takeAdaptor[T]) apply(it Iterator[T]) Iterator[T] {
	return TakeFrom(it, a.count)
}

// Take returns an adaptor closure holding only the element count.  The
// closure produces a bounded view once a sequence is supplied via Apply
// or Stage.Via; applying it is exactly equivalent to calling TakeFrom
// with the same arguments.
//
// The type parameter cannot be inferred from the count alone and must be
// named at the call site:
//
//	stage.Via(ranges.Take[int](2))
func Take[T any](count uint) Adaptor[T] {
	return takeAdaptor[T]{count: count}
}

// Take returns a new stage traversing a bounded view of this stage's
// elements: at most count of them, in order.  The view is lazy
// regardless of the stage's processing type.
func (s *Stage[T]) Take(count uint, opts ...StageOption) *Stage[T] {
	t := s.tracer("Take(%d)", count)
	defer t.end()

	return s.nextStage(TakeFrom(s.i, count), opts...)
}
