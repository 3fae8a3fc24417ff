package ranges

// Adaptor is a deferred, partially-applied view construction: a closure
// holding everything about a view except the sequence it applies to.
// An Adaptor is immutable once created and becomes a concrete view when
// combined with an Iterator, either through Apply or through Stage.Via.
//
// The interface has an unexported method so that only closures minted by
// this package compose: the pipe operation is restricted to adaptors of
// this specific kind rather than accepting arbitrary callables, which
// keeps a pipeline unambiguous when other composable operations are in
// scope.
//
// Each view exposes two named constructors in place of an overload set:
// the one-argument form (eg. Take, Drop, FilterBy) produces the deferred
// Adaptor, and the two-argument form (eg. TakeFrom, DropFrom, FilterFrom)
// produces the realized view directly.  Both forms applied to the same
// arguments yield equivalent views.
type Adaptor[T any] interface {
	apply(Iterator[T]) Iterator[T]
}

// Apply combines a sequence with an adaptor closure, producing the
// realized view.  Apply(it, Take(n)) is exactly TakeFrom(it, n).
func Apply[T any](it Iterator[T], a Adaptor[T]) Iterator[T] {
	return a.apply(it)
}

// Via applies one or more adaptor closures to this stage's iterator, in
// order, and returns a new stage traversing the resulting view.  Unlike
// Filter and Transform, the adaptors are lazy decorators: nothing is
// processed until the returned stage's iterator is advanced.
func (s *Stage[T]) Via(adaptors ...Adaptor[T]) *Stage[T] {
	t := s.tracer("Via")
	defer t.end()

	i := s.i
	for _, a := range adaptors {
		i = a.apply(i)
	}

	return s.nextStage(i)
}
