// Package channel implements an iterator that reads a data stream from
// the supplied channel.
//
// A channel-backed sequence may be infinite; consumers bound it with a
// view (eg. a take view) or by cancelling the context.
package channel

import "context"

// Iterator traverses the elements of type T from a channel, until
// the channel is closed.
type Iterator[T any] struct {
	ch   chan T
	item *T
	err  error
}

// New returns an Iterator that traverses the provided channel until the
// channel is closed or the context expires.
//
// The iterator does not support the Size interface.
func New[T any](ch chan T) Iterator[T] {
	return Iterator[T]{
		ch: ch,
	}
}

// Next reads an item from the channel and stores the value, which can be
// retrieved using the Get() method.  Next returns true if an element was
// successfully read from the channel, or false if the channel was closed or
// if the context expired.
//
// If the context expired, Error() will return the result of the context's
// Err() function.
func (i *Iterator[T]) Next(ctx context.Context) bool {
	ret := false

	select {
	case item, ok := <-i.ch:
		if ok {
			i.item = &item
			ret = true
		}

		// if ok is false, the read failed due to empty closed channel
	case <-ctx.Done():
		i.err = ctx.Err()
	}

	return ret
}

// Get returns the value stored by the last successful Next method call,
// or the zero value of type T if Next has not been called.
func (i *Iterator[T]) Get() T {
	// return the zero value if called before Next()
	if i.item == nil {
		var ret T
		return ret
	}

	return *i.item
}

// Error returns the context expiry reason if any from a previous call
// to Next, otherwise it returns nil.
func (i *Iterator[T]) Error() error {
	return i.err
}
