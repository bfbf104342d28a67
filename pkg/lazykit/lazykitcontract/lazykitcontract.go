package lazykitcontract

import (
	"testing"

	"go.llib.dev/frameless/port/contract"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/lazykit/pkg/lazykit"
)

// Subject is a Sequence under test, together with the values its producer yields.
type Subject[T any] struct {
	Sequence *lazykit.Sequence[T]
	Values   []T
}

// Sequence verifies that a Sequence made over a producer behaves like an immutable sequence of the producer's values.
// mk is expected to return a fresh Subject with at least one value every time it is called.
func Sequence[T any](mk func(testing.TB) Subject[T]) contract.Contract {
	s := testcase.NewSpec(nil)

	subject := testcase.Let(s, func(t *testcase.T) Subject[T] {
		sub := mk(t)
		t.Cleanup(func() { _ = sub.Sequence.Close() })
		return sub
	})

	s.Then("iterating yields the producer's values", func(t *testcase.T) {
		var got []T
		for v, err := range subject.Get(t).Sequence.Iter() {
			assert.NoError(t, err)
			got = append(got, v)
		}
		assert.Equal(t, subject.Get(t).Values, got)
	})

	s.Then("iteration can be repeated", func(t *testcase.T) {
		seq := subject.Get(t).Sequence
		for range t.Random.IntBetween(2, 4) {
			var got []T
			for v, err := range seq.Iter() {
				assert.NoError(t, err)
				got = append(got, v)
			}
			assert.Equal(t, subject.Get(t).Values, got)
		}
	})

	s.Then("it is not empty", func(t *testcase.T) {
		empty, err := subject.Get(t).Sequence.IsEmpty()
		assert.NoError(t, err)
		assert.False(t, empty)
	})

	s.Then("its length is the number of values", func(t *testcase.T) {
		n, err := subject.Get(t).Sequence.Len()
		assert.NoError(t, err)
		assert.Equal(t, len(subject.Get(t).Values), n)
	})

	s.Then("values are accessible by index from both ends", func(t *testcase.T) {
		var (
			seq = subject.Get(t).Sequence
			vs  = subject.Get(t).Values
			i   = t.Random.IntN(len(vs))
		)
		got, err := seq.Get(i)
		assert.NoError(t, err)
		assert.Equal(t, vs[i], got)

		got, err = seq.Get(i - len(vs))
		assert.NoError(t, err)
		assert.Equal(t, vs[i], got)
	})

	s.Then("index past the end is out of range", func(t *testcase.T) {
		seq := subject.Get(t).Sequence
		n := len(subject.Get(t).Values)

		_, err := seq.Get(n)
		assert.ErrorIs(t, err, lazykit.ErrIndexOutOfRange)

		_, err = seq.Get(-n - 1)
		assert.ErrorIs(t, err, lazykit.ErrIndexOutOfRange)
	})

	s.Then("it contains its values", func(t *testcase.T) {
		vs := subject.Get(t).Values
		ok, err := subject.Get(t).Sequence.Contains(vs[t.Random.IntN(len(vs))])
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	s.Then("it equals its values", func(t *testcase.T) {
		ok, err := subject.Get(t).Sequence.Equal(subject.Get(t).Values)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	s.Then("slicing yields the matching values", func(t *testcase.T) {
		vs := subject.Get(t).Values
		start := t.Random.IntN(len(vs))

		view, err := subject.Get(t).Sequence.Slice(lazykit.Start(start))
		assert.NoError(t, err)

		ok, err := view.Equal(vs[start:])
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	s.Then("release yields every value once and invalidates the sequence", func(t *testcase.T) {
		seq := subject.Get(t).Sequence
		if t.Random.Bool() {
			_, err := seq.Get(t.Random.IntN(len(subject.Get(t).Values)))
			assert.NoError(t, err)
		}

		itr, err := seq.Release()
		assert.NoError(t, err)

		var got []T
		for v, err := range itr {
			assert.NoError(t, err)
			got = append(got, v)
		}
		assert.Equal(t, subject.Get(t).Values, got)

		_, err = seq.Get(0)
		assert.ErrorIs(t, err, lazykit.ErrReleased)
	})

	return s.AsSuite("lazykit.Sequence")
}
