package ranges

import (
	"context"
)

// dropIterator is the complement of the bounded view: it skips the first
// count elements of the underlying sequence and yields the rest.  The
// skipped elements are consumed on the first call to Next, not at
// construction time.
type dropIterator[T any] struct {
	base    Iterator[T]
	count   uint
	skipped bool
}

type sizedDropIterator[T any] struct {
	dropIterator[T]
	sized Size[T]
}

// DropFrom returns a lazy view of base with its first count elements
// skipped.  If base holds count elements or fewer the view is empty.
// Construction is O(1); the skip itself costs O(count) on the first
// advance.
func DropFrom[T any](base Iterator[T], count uint) Iterator[T] {
	d := dropIterator[T]{
		base:  base,
		count: count,
	}

	if sh, ok := base.(Size[T]); ok {
		return &sizedDropIterator[T]{dropIterator: d, sized: sh}
	}
	return &d
}

// Next advances the view, skipping the dropped prefix on the first call.
func (i *dropIterator[T]) Next(ctx context.Context) bool {
	if !i.skipped {
		i.skipped = true
		for n := uint(0); n < i.count; n++ {
			if !i.base.Next(ctx) {
				return false
			}
		}
	}

	return i.base.Next(ctx)
}

func (i *dropIterator[T]) Get() T {
	return i.base.Get()
}

func (i *dropIterator[T]) Error() error {
	return i.base.Error()
}

// Size reports the size of the remainder, saturating at zero.
func (i *sizedDropIterator[T]) Size() uint {
	size := i.sized.Size()
	if i.count >= size {
		return 0
	}
	return size - i.count
}

type dropAdaptor[T any] struct {
	count uint
}

func (a dropAdaptor[T]) apply(it Iterator[T]) Iterator[T] {
	return DropFrom(it, a.count)
}

// Drop returns an adaptor closure holding only the count of elements to
// skip.  Applying it is exactly equivalent to calling DropFrom with the
// same arguments.
func Drop[T any](count uint) Adaptor[T] {
	return dropAdaptor[T]{count: count}
}

// Drop returns a new stage traversing this stage's elements with the
// first count of them skipped.
func (s *Stage[T]) Drop(count uint, opts ...StageOption) *Stage[T] {
	t := s.tracer("Drop(%d)", count)
	defer t.end()

	return s.nextStage(DropFrom(s.i, count), opts...)
}
