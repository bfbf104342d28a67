package doubles

import "iter"

// Producer is a spy producer.
// It yields Values in order and records every interaction,
// so tests can tell how many items a consumer really pulled.
type Producer[T any] struct {
	Values []T
	// Generate, when set, makes the Producer unbounded,
	// yielding Generate(i) for the i-th pull after Values ran out.
	Generate func(i int) T
	// Err is yielded once, when ErrAt items were already produced.
	Err   error
	ErrAt int

	// Pulls is the number of items handed out.
	Pulls int
	// Exhausted tells if the Producer signalled that it has no more items.
	Exhausted bool
	// Stopped tells if Stop was called.
	Stopped bool

	errDone bool
}

func (p *Producer[T]) Next() (T, error, bool) {
	var zero T
	if p.Stopped || p.Exhausted {
		return zero, nil, false
	}
	if p.Err != nil && !p.errDone && p.Pulls == p.ErrAt {
		p.errDone = true
		return zero, p.Err, true
	}
	if p.Pulls < len(p.Values) {
		v := p.Values[p.Pulls]
		p.Pulls++
		return v, nil, true
	}
	if p.Generate != nil {
		v := p.Generate(p.Pulls)
		p.Pulls++
		return v, nil, true
	}
	p.Exhausted = true
	return zero, nil, false
}

func (p *Producer[T]) Stop() { p.Stopped = true }

// Seq exposes the Producer as a single-use iterator.
func (p *Producer[T]) Seq() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			v, err, ok := p.Next()
			if !ok {
				return
			}
			if !yield(v, err) {
				return
			}
		}
	}
}
