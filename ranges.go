package ranges

import (
	"context"
)

// Iterator is a generic interface for one-directional traversal through
// a collection or stream of items.  It is the minimal cursor every view
// in this package is built from: views wrap an Iterator and produce a
// new Iterator, computing elements on demand as the consumer advances.
type Iterator[T any] interface {
	// Next traverses the iterator to the next element
	// Returns true if the iterator advanced, or false if there are no more
	// elements or if an error occured (see Error() below)
	Next(ctx context.Context) bool

	// Get returns current value referred to by the iterator
	Get() T

	// Error returns a non-nil value if an error occured processing Next()
	Error() error
}

// Size is an interface that can be implemented by an iterator that
// knows the number of elements in the collection when it is initialized.
//
// Views that restrict traversal (eg. the take view) propagate Size when
// their source supports it, so that a bounded view over a sized source
// reports its own length without stepping through the elements.
type Size[T any] interface {
	Size() uint
}
