package ranges

// ReduceFunc is a generic function that combines an accumulated value
// with the next element, returning the new accumulated value.
//
// If an error is returned, it is passed to the stage's error handler
// function which may elect to continue (skipping the element) or abort
// processing.
type ReduceFunc[T any, U any] func(U, T) (U, error)

// Reduce drains this stage's iterator, folding the elements into a
// single value starting from init.  Reduce is a terminal operation: it
// always processes eagerly and returns the result rather than a new
// stage.
func (s *Stage[T]) Reduce(init T, f ReduceFunc[T, T], opts ...StageOption) T {
	return Reduce(s, init, f, opts...)
}

// SliceFromIterator is a ReduceFunc that collects the stage's elements
// into a slice.  It is mostly useful for draining the last stage of a
// pipeline.
func SliceFromIterator[T any](acc []T, item T) ([]T, error) {
	return append(acc, item), nil
}

// Reduce is the non-OO version of Stage.Reduce().  It must be used in
// the case where the accumulator has a different type than the input
// elements, due to limitations of Golang's generic syntax.
func Reduce[T, U any](s *Stage[T], init U, f ReduceFunc[T, U], opts ...StageOption) U {
	merged := *s
	merged.opts.processOptions(opts...)

	t := merged.tracer("Reduce")
	defer t.end()

	acc := init

reduceLoop:
	for merged.i.Next(merged.opts.ctx) {
		next, err := f(acc, merged.i.Get())
		if err != nil {
			if !merged.opts.onError(ErrorContextReduceFunction, err) {
				t.msg("reduce done due to error: %s", err)
				break reduceLoop
			}
			continue
		}
		acc = next
	}

	if merged.i.Error() != nil {
		merged.opts.onError(ErrorContextItertator, merged.i.Error())
	}

	return acc
}
