package ranges

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/bachmak/go-ranges/iter/channel"
	"github.com/bachmak/go-ranges/iter/slice"
)

// TransformFunc is a generic function that takes a single element and
// returns a single transformed element.
//
// If an error is returned, it is passed to the stage's error handler
// function which may elect to continue or abort processing.
//
// Example:
//
//	func ipAddress(host string) (net.IP, error) {
//	    return net.LookupIP(host)
//	}
type TransformFunc[T any, M any] func(T) (M, error)

// Transform processes the stage's input elements by calling m for each
// element, returning a new stage containing the same number of elements,
// transformed to new values of the same type.
//
// If the transform function returns values of a different type to the input
// values, the non-OO version of Transform() must be used instead.
//
// If the stage is configured to process in batch, Transform returns after all
// the input elements have been processed;  those elements are passed to the
// next stage as a slice.
//
// If the stage is configued to stream, Transform returns immediately after
// launching go-routines to process the elements in the background.  The
// returned stage reads from a channel that the processing goroutine writes
// its result to as they are processed.
func (s *Stage[T]) Transform(m TransformFunc[T, T], opts ...StageOption) *Stage[T] {
	return Transform(s, m, opts...)
}

// Transform is the non-OO version of Stage.Transform().  It must be used in
// the case where the transform function returns items of a different type
// than the input elements, due to limitations of Golang's generic syntax.
func Transform[T, M any](s *Stage[T], m TransformFunc[T, M], opts ...StageOption) *Stage[M] {
	// opts for this Transform are the stage options overridden by the
	// transform specific options passed to this call
	merged := *s
	merged.opts.processOptions(opts...)

	t := merged.tracer("Transform")
	defer t.end()

	var i Iterator[M]
	switch merged.opts.stageType {
	case BatchStage:
		i = transformBatch(t, &merged, m)
	case StreamingStage:
		i = transformStreaming(t, &merged, m)
	}

	return nextStage(s, i, opts...)
}

// T: input type;  M: transformed type
func transformBatch[T, M any](t tracer, s *Stage[T], m TransformFunc[T, M]) Iterator[M] {
	t = t.subTracer("batch")
	defer t.end()

	if sh, ok := s.i.(Size[T]); ok {
		s.opts.sizeHint = sh.Size()
	}

	// handle parallel transforms separately..
	if s.opts.maxParallelism > 1 {
		return transformBatchParallel(t, s, m)
	}

	t.msg("Sequential processing")

	out := make([]M, 0, s.opts.sizeHint)

transformLoop:
	for s.i.Next(s.opts.ctx) {
		item, err := m(s.i.Get())
		if err != nil {
			if !s.opts.onError(ErrorContextTransformFunction, err) {
				t.msg("transform done due to error: %s", err)
				break transformLoop
			}
			continue
		}
		out = append(out, item)
	}

	if s.i.Error() != nil {
		if !s.opts.onError(ErrorContextItertator, s.i.Error()) {
			out = []M{}
		}
	}

	i := slice.New(out)
	return &i
}

// T: input type;  M: transformed type
func transformBatchParallel[T, M any](t tracer, s *Stage[T], m TransformFunc[T, M]) Iterator[M] {
	var tParallel tracer

	var output []M
	if s.opts.preserveOrder {
		tParallel = t.subTracer("parallel, ordered")

		results := transformBatchParallelProcessor[T, item[T], M, item[M]](tParallel, s, m,
			orderedWrapper[T], orderedUnwrapper[T], orderedSwitcher[T, M])

		// sort by the index of each item[M]
		slices.SortFunc(results, func(a, b item[M]) int {
			return cmp.Compare(a.idx, b.idx)
		})

		// pull the values from the item[M] results
		output = make([]M, len(results))
		for i, v := range results {
			output[i] = v.item
		}
	} else {
		tParallel = t.subTracer("parallel, unordered")
		output = transformBatchParallelProcessor[T, T, M, M](tParallel, s, m,
			unorderedWrapper[T], unorderedUnwrapper[T], unorderedSwitcher[T, M])
	}

	i := slice.New(output)
	tParallel.end()
	return &i
}

// T: input type;   TW: wrapped input type;   M: transformed type;   MW: wrapped transformed type
func transformBatchParallelProcessor[T, TW, M, MW any](t tracer, s *Stage[T], m TransformFunc[T, M],
	wrapper wrapItemFunc[T, TW], unwrapper unwrapItemFunc[TW, T], switcher switcherFunc[TW, M, MW]) []MW {

	numParallel := min(s.opts.sizeHint, s.opts.maxParallelism)

	t = t.subTracer("parallelization=%d", numParallel)
	defer t.end()

	chOut := parallelProcessor(s.opts, numParallel, s.i, t,
		// write wrapped input values to the query channel
		func(i uint, t T, ch chan TW) {
			ch <- wrapper(i, t)
		},

		// read wrapped values, transform, write to the output channel
		func(itemIn TW, ch chan MW) error {
			mapped, err := m(unwrapper(itemIn))
			if err != nil {
				return err
			}

			select {
			case ch <- switcher(itemIn, mapped):
			case <-s.opts.ctx.Done():
				return s.opts.ctx.Err()
			}
			return nil
		})

	if s.i.Error() != nil {
		if !s.opts.onError(ErrorContextItertator, s.i.Error()) {
			return []MW{}
		}
	}

	// Back in the main thread, read results until the result channel has been
	// closed by a go-routine started by parallelProcessor()
	items := make([]MW, 0, s.opts.sizeHint)
	for i := range chOut {
		items = append(items, i)
	}

	return items
}

// T: input type;  M: transformed type
func transformStreaming[T, M any](t tracer, s *Stage[T], m TransformFunc[T, M]) Iterator[M] {
	if sh, ok := s.i.(Size[T]); ok {
		s.opts.sizeHint = sh.Size()
	}

	// handle parallel transforms separately..
	if s.opts.maxParallelism > 1 {
		return transformStreamingParallel(t, s, m)
	}

	// otherwise just run a simple serial transform
	t = t.subTracer("streaming, sequential")

	ch := make(chan M)

	go func() {
		t := s.tracer("processor")
		defer t.end()

	readLoop:
		for s.i.Next(s.opts.ctx) {
			mapped, err := m(s.i.Get())
			if err != nil {
				if !s.opts.onError(ErrorContextTransformFunction, err) {
					t.msg("transform done due to error: %s", err)
					break readLoop
				}
				continue
			}

			select {
			case ch <- mapped:
			case <-s.opts.ctx.Done():
				t.msg("Cancelled")
				break readLoop
			}
		}
		close(ch)

		// if there is an iterator read error, report it even though we
		// can't abort the next stage; at least we can stop sending items
		// to it by way of having closed ch
		if s.i.Error() != nil {
			s.opts.onError(ErrorContextItertator, s.i.Error())
		}
	}()

	i := channel.New(ch)
	t.end()
	return &i
}

func transformStreamingParallel[T, M any](t tracer, s *Stage[T], m TransformFunc[T, M]) Iterator[M] {
	numParallel := min(s.opts.sizeHint, s.opts.maxParallelism)

	t = t.subTracer("streaming, parallel=%d", numParallel)
	defer t.end()

	chIn := make(chan T)  // main -> worker (query)
	chOut := make(chan M) // worker -> next stage (result)

	// (1) Write the items to the main -> worker channel in a separate thread
	// of execution.  We don't need to wait for this to be done as we can
	// tell by way of chIn being closed
	go func() {
		t := t.subTracer("reader")
		// if anything goes wrong, close chIn to avoid goroutine leaks
		defer func() {
			closeChanIfOpen(chIn)
		}()

		for s.i.Next(s.opts.ctx) {
			chIn <- s.i.Get()
		}

		if s.i.Error() != nil {
			s.opts.onError(ErrorContextItertator, s.i.Error())
		}

		t.end()
	}()

	// (2) Start worker go-routines.  These read items from chIn until that
	// channel is closed by the producer go-routine (1) above.
	wg := sync.WaitGroup{}
	for i := numParallel; i > 0; i-- {
		wg.Add(1)

		i := i
		go func() {
			t := t.subTracer("processor %d", i)

			defer wg.Done()
			defer t.end()

		workerLoop:
			for item := range chIn {
				mapped, err := m(item)
				if err != nil {
					if !s.opts.onError(ErrorContextTransformFunction, err) {
						break workerLoop
					}
					continue
				}

				select {
				case chOut <- mapped:
				case <-s.opts.ctx.Done():
					t.msg("Cancelled")
					break workerLoop
				}
			}
		}()
	}

	// (3) Wait for the workers in a separate go-routine and close the result
	// channel once they are all done
	go func() {
		t := t.subTracer("wait for processors")

		wg.Wait()
		close(chOut)

		t.end()
	}()

	i := channel.New(chOut)
	return &i
}

// transformIterator is the lazy form of a same-type transform: elements
// are converted one at a time as the consumer advances.
type transformIterator[T any] struct {
	base Iterator[T]
	fn   func(T) T
	cur  T
}

// TransformFrom returns a lazy view of base with fn applied to each
// element.  The function is pure (no error return): lazy decorators have
// no error handler, and the view's Error() only reflects the source.
func TransformFrom[T any](base Iterator[T], fn func(T) T) Iterator[T] {
	return &transformIterator[T]{base: base, fn: fn}
}

func (i *transformIterator[T]) Next(ctx context.Context) bool {
	if !i.base.Next(ctx) {
		return false
	}

	i.cur = i.fn(i.base.Get())
	return true
}

func (i *transformIterator[T]) Get() T {
	return i.cur
}

func (i *transformIterator[T]) Error() error {
	return i.base.Error()
}

type transformAdaptor[T any] struct {
	fn func(T) T
}

func (a transformAdaptor[T]) apply(it Iterator[T]) Iterator[T] {
	return TransformFrom(it, a.fn)
}

// TransformBy returns an adaptor closure holding only the transform
// function.  Applying it is exactly equivalent to calling TransformFrom
// with the same arguments.
func TransformBy[T any](fn func(T) T) Adaptor[T] {
	return transformAdaptor[T]{fn: fn}
}
