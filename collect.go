package ranges

import (
	"context"
)

/*  Convenience operations over the two iterator primitives (advance,
 *  read).  The views in this package deliberately implement nothing but
 *  Iterator; everything a consumer typically wants on top of that --
 *  draining to a slice, counting, emptiness, first element, sequence
 *  equality, folding -- is provided here as free functions so every
 *  view gets them without inheriting from anything.
 *
 *  All of these are terminal: they consume the iterator they are given.
 */

// Collect drains the iterator into a slice, preserving order.  If the
// iterator reports an error the elements read so far are returned along
// with it.
func Collect[T any](ctx context.Context, it Iterator[T]) ([]T, error) {
	hint := DefaultSizeHint
	if sh, ok := it.(Size[T]); ok {
		hint = sh.Size()
	}

	out := make([]T, 0, hint)
	for it.Next(ctx) {
		out = append(out, it.Get())
	}

	return out, it.Error()
}

// Count drains the iterator and returns the number of elements it
// yielded.
func Count[T any](ctx context.Context, it Iterator[T]) (uint, error) {
	var n uint
	for it.Next(ctx) {
		n++
	}

	return n, it.Error()
}

// First advances the iterator once and returns the first element.  ok is
// false if the sequence is empty.
func First[T any](ctx context.Context, it Iterator[T]) (v T, ok bool, err error) {
	if it.Next(ctx) {
		return it.Get(), true, nil
	}

	return v, false, it.Error()
}

// IsEmpty reports whether the sequence yields no elements.  Note that
// determining this consumes the first element of a non-empty single-pass
// iterator.
func IsEmpty[T any](ctx context.Context, it Iterator[T]) (bool, error) {
	_, ok, err := First(ctx, it)
	return !ok, err
}

// Equal reports whether the two sequences yield equal elements in the
// same order.  Both iterators are consumed up to the first difference.
func Equal[T comparable](ctx context.Context, a, b Iterator[T]) (bool, error) {
	for {
		okA := a.Next(ctx)
		okB := b.Next(ctx)

		switch {
		case a.Error() != nil:
			return false, a.Error()
		case b.Error() != nil:
			return false, b.Error()
		case okA != okB:
			return false, nil
		case !okA:
			return true, nil
		case a.Get() != b.Get():
			return false, nil
		}
	}
}

// Fold drains the iterator, combining the elements into a single value
// starting from init.
func Fold[T, U any](ctx context.Context, it Iterator[T], init U, f func(U, T) U) (U, error) {
	acc := init
	for it.Next(ctx) {
		acc = f(acc, it.Get())
	}

	return acc, it.Error()
}
