package lazykit

import "go.llib.dev/frameless/pkg/reflectkit"

// Option configures a Sequence.
// Options are accepted both by the constructors and by Sequence.Slice.
type Option interface{ configure(*config) }

type optionFunc func(*config)

func (fn optionFunc) configure(c *config) { fn(c) }

type config struct {
	start   *int
	stop    *int
	step    *int
	storage any
	equal   any
	err     error
}

func toConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.configure(&c)
	}
	return c
}

func (c *config) setErr(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c config) hasBounds() bool {
	return c.start != nil || c.stop != nil || c.step != nil
}

func (c config) bounds() bounds {
	b := bounds{start: c.start, stop: c.stop, step: 1}
	if c.step != nil {
		b.step = *c.step
	}
	return b
}

// Start sets the first position of a slice.
// A negative position counts from the end of the sequence.
func Start(i int) Option {
	return optionFunc(func(c *config) { c.start = &i })
}

// Stop sets the position where a slice ends, exclusive.
// A negative position counts from the end of the sequence.
func Stop(i int) Option {
	return optionFunc(func(c *config) { c.stop = &i })
}

// Step sets the distance between the positions of a slice.
//
// A negative step walks the sequence backwards.
// Since the producer can only move forward,
// a backward slice has to pull every item of the source before it yields its first item.
// A zero step is malformed.
func Step(n int) Option {
	return optionFunc(func(c *config) {
		if n == 0 {
			c.setErr(ErrMalformedSlice.F("slice step cannot be zero"))
			return
		}
		c.step = &n
	})
}

// WithStorage sets the factory for the Storage that caches the pulled items.
// The default storage is a Buffer.
func WithStorage[T any](mk func() Storage[T]) Option {
	return optionFunc(func(c *config) { c.storage = mk })
}

// WithEqual sets the function used to compare two items in Contains and Equal.
// The default comparison is reflectkit.Equal.
func WithEqual[T any](eq func(a, b T) bool) Option {
	return optionFunc(func(c *config) { c.equal = eq })
}

// storageFor resolves the WithStorage option for T.
// An option made for another item type sets c.err and yields the fallback.
func storageFor[T any](c *config, fallback func() Storage[T]) func() Storage[T] {
	if fallback == nil {
		fallback = func() Storage[T] { return &Buffer[T]{} }
	}
	if c.storage == nil {
		return fallback
	}
	mk, ok := c.storage.(func() Storage[T])
	if !ok {
		c.setErr(ErrMalformedSlice.F("WithStorage expects %T, got %T", mk, c.storage))
		return fallback
	}
	return mk
}

func equalFor[T any](c *config, fallback func(a, b T) bool) func(a, b T) bool {
	if fallback == nil {
		fallback = func(a, b T) bool { return reflectkit.Equal(a, b) }
	}
	if c.equal == nil {
		return fallback
	}
	eq, ok := c.equal.(func(a, b T) bool)
	if !ok {
		c.setErr(ErrMalformedSlice.F("WithEqual expects %T, got %T", eq, c.equal))
		return fallback
	}
	return eq
}
