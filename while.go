package ranges

import (
	"context"
)

// takeWhileIterator yields elements of the underlying sequence until the
// first one failing the predicate.  That element is consumed from the
// source but never exposed, matching the sentinel-style termination of
// a predicate-bounded view.
type takeWhileIterator[T any] struct {
	base Iterator[T]
	pred PredicateFunc[T]
	done bool
}

// TakeWhileFrom returns a lazy view of the longest prefix of base whose
// elements all satisfy pred.
func TakeWhileFrom[T any](base Iterator[T], pred PredicateFunc[T]) Iterator[T] {
	return &takeWhileIterator[T]{base: base, pred: pred}
}

func (i *takeWhileIterator[T]) Next(ctx context.Context) bool {
	if i.done {
		return false
	}

	if !i.base.Next(ctx) {
		i.done = true
		return false
	}

	if !i.pred(i.base.Get()) {
		i.done = true
		return false
	}

	return true
}

func (i *takeWhileIterator[T]) Get() T {
	return i.base.Get()
}

func (i *takeWhileIterator[T]) Error() error {
	return i.base.Error()
}

// dropWhileIterator skips the longest prefix of elements satisfying the
// predicate and yields everything from the first failing element on.
// Once an element fails the predicate it is never consulted again: later
// elements are yielded even if they satisfy it.
type dropWhileIterator[T any] struct {
	base    Iterator[T]
	pred    PredicateFunc[T]
	started bool
}

// DropWhileFrom returns a lazy view of base with the longest prefix of
// elements satisfying pred removed.
func DropWhileFrom[T any](base Iterator[T], pred PredicateFunc[T]) Iterator[T] {
	return &dropWhileIterator[T]{base: base, pred: pred}
}

func (i *dropWhileIterator[T]) Next(ctx context.Context) bool {
	if i.started {
		return i.base.Next(ctx)
	}

	i.started = true
	for i.base.Next(ctx) {
		if !i.pred(i.base.Get()) {
			// current element is the first one past the prefix;
			// expose it as this view's first element
			return true
		}
	}

	return false
}

func (i *dropWhileIterator[T]) Get() T {
	return i.base.Get()
}

func (i *dropWhileIterator[T]) Error() error {
	return i.base.Error()
}

type takeWhileAdaptor[T any] struct {
	pred PredicateFunc[T]
}

func (a takeWhileAdaptor[T]) apply(it Iterator[T]) Iterator[T] {
	return TakeWhileFrom(it, a.pred)
}

// TakeWhile returns an adaptor closure producing a predicate-bounded
// view once a sequence is supplied.
func TakeWhile[T any](pred PredicateFunc[T]) Adaptor[T] {
	return takeWhileAdaptor[T]{pred: pred}
}

type dropWhileAdaptor[T any] struct {
	pred PredicateFunc[T]
}

func (a dropWhileAdaptor[T]) apply(it Iterator[T]) Iterator[T] {
	return DropWhileFrom(it, a.pred)
}

// DropWhile returns an adaptor closure producing a prefix-skipping view
// once a sequence is supplied.
func DropWhile[T any](pred PredicateFunc[T]) Adaptor[T] {
	return dropWhileAdaptor[T]{pred: pred}
}

// TakeWhile returns a new stage traversing the longest prefix of this
// stage's elements satisfying pred.
func (s *Stage[T]) TakeWhile(pred PredicateFunc[T], opts ...StageOption) *Stage[T] {
	t := s.tracer("TakeWhile")
	defer t.end()

	return s.nextStage(TakeWhileFrom(s.i, pred), opts...)
}

// DropWhile returns a new stage traversing this stage's elements with
// the longest prefix satisfying pred removed.
func (s *Stage[T]) DropWhile(pred PredicateFunc[T], opts ...StageOption) *Stage[T] {
	t := s.tracer("DropWhile")
	defer t.end()

	return s.nextStage(DropWhileFrom(s.i, pred), opts...)
}
