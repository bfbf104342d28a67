// Package lazykit turns a single-pass producer into a read-many, random-access, immutable sequence.
//
// # Summary
//
// A Sequence pulls items from its producer only as far as an operation needs them,
// and caches every pulled item, so no item is ever consumed twice from the producer.
// This lets a consumer peek ahead, check emptiness, index or slice data
// that is expensive or unbounded to materialise, without buffering it all up front.
//
//	seq := lazykit.New(records)
//	if empty, err := seq.IsEmpty(); err != nil || empty {
//		return err
//	}
//	first, err := seq.Get(0)
//	...
//	rest, err := seq.Release() // forward-only pass without further caching
//
// Slicing returns a new Sequence that reads the positions it needs from its parent on demand.
//
// A Sequence is not safe for concurrent use.
// Operations on a slice and on its parent must be serialised by the caller.
package lazykit

import (
	"errors"
	"iter"
	"slices"

	"go.llib.dev/frameless/pkg/iterkit"
)

// Sequence is a lazily populated, immutable sequence over a producer.
// Use New, FromSeq or FromPull to create one.
type Sequence[T any] struct {
	cache   *cache[T]
	storage func() Storage[T]
	equal   func(a, b T) bool
	err     error
}

// New wraps a failable single-use iterator.
// Errors yielded by src are returned as-is by the operation that pulled them.
func New[T any](src iter.Seq2[T, error], opts ...Option) *Sequence[T] {
	next, stop := iter.Pull2(src)
	return FromPull(next, stop, opts...)
}

// FromSeq wraps an iterator that can't fail.
func FromSeq[T any](src iter.Seq[T], opts ...Option) *Sequence[T] {
	return New(iterkit.ToSeqE(src), opts...)
}

// FromPull wraps a pull function pair, as returned by iter.Pull2.
// The Sequence takes exclusive ownership of next and stop;
// stop is called once the producer is drained, released or closed.
// A nil stop is allowed.
//
// Bound options (Start, Stop, Step) make FromPull return the matching slice of the sequence.
func FromPull[T any](next func() (T, error, bool), stop func(), opts ...Option) *Sequence[T] {
	c := toConfig(opts)
	storage, equal := storageFor[T](&c, nil), equalFor[T](&c, nil)
	if c.err != nil {
		if stop != nil {
			stop()
		}
		return &Sequence[T]{err: c.err}
	}
	s := &Sequence[T]{storage: storage, equal: equal}
	s.cache = newCache(s.storage(), next, stop)
	if !c.hasBounds() {
		return s
	}
	view := s.slice(c.bounds(), s.storage, s.equal)
	// s is only reachable through the view
	view.cache.stop = s.close
	return view
}

func (s *Sequence[T]) check() (*cache[T], error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.cache == nil {
		return nil, ErrReleased
	}
	return s.cache, nil
}

// IsEmpty reports whether the sequence has no items.
// It pulls at most one item.
func (s *Sequence[T]) IsEmpty() (bool, error) {
	c, err := s.check()
	if err != nil {
		return false, err
	}
	if err := c.ensure(1); err != nil {
		return false, err
	}
	return c.buffer.Len() == 0, nil
}

// Len returns the number of items in the sequence.
// It drains the producer.
func (s *Sequence[T]) Len() (int, error) {
	c, err := s.check()
	if err != nil {
		return 0, err
	}
	if err := c.ensureAll(); err != nil {
		return 0, err
	}
	return c.buffer.Len(), nil
}

// Get returns the item at index.
// A negative index counts from the end of the sequence, and drains the producer.
func (s *Sequence[T]) Get(index int) (T, error) {
	var zero T
	c, err := s.check()
	if err != nil {
		return zero, err
	}
	if index < 0 {
		if err := c.ensureAll(); err != nil {
			return zero, err
		}
		index += c.buffer.Len()
		if index < 0 {
			return zero, ErrIndexOutOfRange
		}
	} else if err := c.ensure(index + 1); err != nil {
		return zero, err
	}
	v, ok, err := c.buffer.Lookup(index)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, ErrIndexOutOfRange
	}
	return v, nil
}

// Contains reports whether v is in the sequence.
// It pulls items one at a time until a match is found or the producer is drained.
func (s *Sequence[T]) Contains(v T) (bool, error) {
	return s.ContainsFunc(func(item T) bool { return s.equal(item, v) })
}

// ContainsFunc reports whether an item satisfies match.
func (s *Sequence[T]) ContainsFunc(match func(T) bool) (bool, error) {
	c, err := s.check()
	if err != nil {
		return false, err
	}
	for i := 0; ; i++ {
		if err := c.ensure(i + 1); err != nil {
			return false, err
		}
		v, ok, err := c.buffer.Lookup(i)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		if match(v) {
			return true, nil
		}
	}
}

// Iter iterates over the items of the sequence.
//
// The iterator can be used any number of times, every iteration starts from the first item.
// Cached items are replayed, and new items are pulled and cached right before they are yielded.
// When pulling fails, the error is yielded; continuing the iteration pulls again.
// A Storage failure or a released source is yielded and ends the iteration.
func (s *Sequence[T]) Iter() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		c, err := s.check()
		if err != nil {
			yield(zero, err)
			return
		}
		for i := 0; ; {
			if s.cache != c {
				yield(zero, ErrReleased)
				return
			}
			if err := c.ensure(i + 1); err != nil {
				if !yield(zero, err) || errors.Is(err, ErrReleased) {
					return
				}
				continue
			}
			v, ok, err := c.buffer.Lookup(i)
			if err != nil {
				yield(zero, err)
				return
			}
			if !ok {
				return
			}
			if !yield(v, nil) {
				return
			}
			i++
		}
	}
}

// Equal compares the sequence item by item with other.
//
// other can be a *Sequence[T], a []T, an iter.Seq[T] or an iter.Seq2[T, error].
// Any other value is not equal.
// The comparison stops at the first mismatch.
func (s *Sequence[T]) Equal(other any) (bool, error) {
	if _, err := s.check(); err != nil {
		return false, err
	}
	var oth iter.Seq2[T, error]
	switch o := other.(type) {
	case *Sequence[T]:
		if o == nil {
			return false, nil
		}
		if o == s {
			return true, nil
		}
		oth = o.Iter()
	case []T:
		oth = iterkit.ToSeqE(slices.Values(o))
	case iter.Seq[T]:
		if o != nil {
			oth = iterkit.ToSeqE(o)
		}
	case func(yield func(T) bool):
		if o != nil {
			oth = iterkit.ToSeqE[T](o)
		}
	case iter.Seq2[T, error]:
		oth = o
	case func(yield func(T, error) bool):
		oth = o
	default:
		return false, nil
	}
	if oth == nil {
		return false, nil
	}
	return s.equalTo(oth)
}

func (s *Sequence[T]) equalTo(oth iter.Seq2[T, error]) (bool, error) {
	next, stop := iter.Pull2(oth)
	defer stop()
	for v, err := range s.Iter() {
		if err != nil {
			return false, err
		}
		ov, err, ok := next()
		if !ok {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if !s.equal(v, ov) {
			return false, nil
		}
	}
	_, err, ok := next()
	if err != nil {
		return false, err
	}
	return !ok, nil
}
