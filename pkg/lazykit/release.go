package lazykit

import "iter"

// Release hands the sequence over to a single-use iterator.
//
// The iterator yields the already cached items first,
// then pulls the rest straight from the producer without caching them.
// Use it when only one more forward pass is needed and caching the remaining items would be wasted memory.
//
// After Release, every operation on the sequence fails with ErrReleased,
// and so do slices that still need items from it.
func (s *Sequence[T]) Release() (iter.Seq2[T, error], error) {
	c, err := s.check()
	if err != nil {
		return nil, err
	}
	s.cache = nil
	return c.release(), nil
}

// Close stops the producer without reading the remaining items,
// and leaves the sequence in the same state as Release.
// Closing a released sequence is a no-op.
//
// Close never fails; the error return satisfies io.Closer.
func (s *Sequence[T]) Close() error {
	s.close()
	return nil
}

func (s *Sequence[T]) close() {
	if s.cache == nil {
		return
	}
	c := s.cache
	s.cache = nil
	c.close()
}
