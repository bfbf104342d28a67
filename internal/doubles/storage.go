package doubles

import "go.llib.dev/lazykit/pkg/lazykit"

// Storage is a stub lazykit.Storage that can be told to fail.
type Storage[T any] struct {
	lazykit.Storage[T]

	// AppendErr, when set, is returned by Append once AppendErrAt items are stored.
	AppendErr   error
	AppendErrAt int
	// LookupErr, when set, is returned by every Lookup.
	LookupErr error
}

func (s *Storage[T]) Append(vs ...T) error {
	s.init()
	if s.AppendErr != nil && s.AppendErrAt <= s.Len()+len(vs)-1 {
		return s.AppendErr
	}
	return s.Storage.Append(vs...)
}

func (s *Storage[T]) Len() int {
	s.init()
	return s.Storage.Len()
}

func (s *Storage[T]) Lookup(index int) (T, bool, error) {
	if s.LookupErr != nil {
		var zero T
		return zero, false, s.LookupErr
	}
	s.init()
	return s.Storage.Lookup(index)
}

func (s *Storage[T]) init() {
	if s.Storage == nil {
		s.Storage = &lazykit.Buffer[T]{}
	}
}
