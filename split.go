package ranges

import (
	"context"
)

// splitIterator chunks the underlying sequence on a separator element,
// yielding the maximal runs between separators.  Adjacent separators
// produce empty chunks, and a trailing separator produces a trailing
// empty chunk.  An empty source produces no chunks at all.
type splitIterator[T comparable] struct {
	base     Iterator[T]
	sep      T
	cur      []T
	consumed bool
	finished bool
}

// SplitFrom returns a lazy view chunking base on sep.  Each advance
// consumes source elements up to and including the next separator and
// exposes the elements in between as a slice.
func SplitFrom[T comparable](base Iterator[T], sep T) Iterator[[]T] {
	return &splitIterator[T]{base: base, sep: sep}
}

func (i *splitIterator[T]) Next(ctx context.Context) bool {
	if i.finished {
		return false
	}

	var chunk []T
	for i.base.Next(ctx) {
		i.consumed = true
		v := i.base.Get()
		if v == i.sep {
			i.cur = chunk
			return true
		}
		chunk = append(chunk, v)
	}

	i.finished = true

	if i.base.Error() != nil {
		return false
	}

	// the final chunk exists only if the source held any elements at all:
	// splitting an empty sequence yields no chunks, while splitting a
	// sequence ending in a separator yields a trailing empty chunk
	if !i.consumed {
		return false
	}

	i.cur = chunk
	return true
}

func (i *splitIterator[T]) Get() []T {
	return i.cur
}

func (i *splitIterator[T]) Error() error {
	return i.base.Error()
}

// SplitOn returns a new stage traversing the chunks of s's elements
// delimited by sep.  It is a free function rather than a method because
// it changes the stage's element type from T to []T.
func SplitOn[T comparable](s *Stage[T], sep T, opts ...StageOption) *Stage[[]T] {
	t := s.tracer("SplitOn")
	defer t.end()

	return nextStage(s, SplitFrom(s.i, sep), opts...)
}
