package lazykit

import (
	"iter"

	"go.llib.dev/frameless/pkg/iterkit"
)

// cache owns the items pulled so far and the unconsumed tail of the producer.
//
// The buffer followed by whatever next would still return
// is always the full output of the producer, each item exactly once.
type cache[T any] struct {
	buffer  Storage[T]
	next    func() (T, error, bool)
	stop    func()
	drained bool
}

func newCache[T any](buffer Storage[T], next func() (T, error, bool), stop func()) *cache[T] {
	return &cache[T]{buffer: buffer, next: next, stop: stop}
}

// ensure pulls until at least n items are buffered or the producer is drained.
func (c *cache[T]) ensure(n int) error {
	for !c.drained && c.buffer.Len() < n {
		if err := c.pull(); err != nil {
			return err
		}
	}
	return nil
}

func (c *cache[T]) ensureAll() error {
	for !c.drained {
		if err := c.pull(); err != nil {
			return err
		}
	}
	return nil
}

func (c *cache[T]) pull() error {
	v, err, ok := c.next()
	if !ok {
		c.close()
		return nil
	}
	if err != nil {
		return err
	}
	// v is lost when Append fails
	return c.buffer.Append(v)
}

func (c *cache[T]) close() {
	if c.drained {
		return
	}
	c.drained = true
	if c.stop != nil {
		c.stop()
	}
}

// release hands the buffered items and the producer tail over to a single-use iterator.
// Items pulled by the iterator are not cached.
func (c *cache[T]) release() iter.Seq2[T, error] {
	return iterkit.Once2(func(yield func(T, error) bool) {
		defer c.close()
		for i, length := 0, c.buffer.Len(); i < length; i++ {
			v, _, err := c.buffer.Lookup(i)
			if !yield(v, err) {
				return
			}
		}
		c.buffer = nil
		for !c.drained {
			v, err, ok := c.next()
			if !ok {
				return
			}
			if !yield(v, err) {
				return
			}
		}
	})
}
