package doubles_test

import (
	"fmt"
	"testing"

	"go.llib.dev/testcase/assert"

	"go.llib.dev/lazykit/internal/doubles"
)

func TestProducer_smoke(t *testing.T) {
	expErr := fmt.Errorf("boom")
	p := &doubles.Producer[int]{Values: []int{1, 2}, Err: expErr, ErrAt: 1}

	v, err, ok := p.Next()
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err, ok = p.Next()
	assert.True(t, ok)
	assert.ErrorIs(t, expErr, err)

	v, err, ok = p.Next()
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, 2, v)

	_, _, ok = p.Next()
	assert.False(t, ok)
	assert.True(t, p.Exhausted)
	assert.Equal(t, 2, p.Pulls)

	p.Stop()
	assert.True(t, p.Stopped)
}

func TestProducer_generate(t *testing.T) {
	p := &doubles.Producer[int]{Generate: func(i int) int { return i * 10 }}
	var got []int
	for v, err := range p.Seq() {
		assert.NoError(t, err)
		got = append(got, v)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []int{0, 10, 20}, got)
	assert.False(t, p.Exhausted)
}

func TestStorage_smoke(t *testing.T) {
	appendErr := fmt.Errorf("append")
	s := &doubles.Storage[string]{AppendErr: appendErr, AppendErrAt: 1}

	assert.NoError(t, s.Append("a"))
	assert.ErrorIs(t, appendErr, s.Append("b"))
	assert.Equal(t, 1, s.Len())

	v, ok, err := s.Lookup(0)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	lookupErr := fmt.Errorf("lookup")
	s.LookupErr = lookupErr
	_, _, err = s.Lookup(0)
	assert.ErrorIs(t, lookupErr, err)
}
