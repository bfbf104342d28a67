package lazykit

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Slice returns the slice of the sequence described by the Start, Stop and Step options.
// Absent bounds default to the whole sequence, and negative bounds count from the end,
// the same way as a Python slice.
//
// The result is a new Sequence that reads the positions it needs from s on demand,
// so slicing itself pulls nothing.
// Forward slices with non-negative bounds stay fully lazy;
// slices with a negative bound or a negative step drain s on their first read,
// as they need its length to locate their positions.
func (s *Sequence[T]) Slice(opts ...Option) (*Sequence[T], error) {
	if _, err := s.check(); err != nil {
		return nil, err
	}
	c := toConfig(opts)
	storage, equal := storageFor(&c, s.storage), equalFor(&c, s.equal)
	if c.err != nil {
		return nil, c.err
	}
	return s.slice(c.bounds(), storage, equal), nil
}

func (s *Sequence[T]) slice(b bounds, storage func() Storage[T], equal func(x, y T) bool) *Sequence[T] {
	view := &Sequence[T]{storage: storage, equal: equal}
	view.cache = newCache(view.storage(), s.positions(b), nil)
	return view
}

// positions is the producer of a slice.
// It maps each pull to the next position of the slice and reads it with Get.
func (s *Sequence[T]) positions(b bounds) func() (T, error, bool) {
	var (
		resolved bool
		pos      int
		step     int
		left     int // negative when the slice runs until the end of s
	)
	return func() (T, error, bool) {
		var zero T
		if !resolved {
			if b.isForward() {
				pos, step, left = b.forward()
			} else {
				length, err := s.Len()
				if err != nil {
					return zero, err, true
				}
				pos, step, left = b.indices(length)
			}
			resolved = true
		}
		if left == 0 {
			return zero, nil, false
		}
		v, err := s.Get(pos)
		if errors.Is(err, ErrIndexOutOfRange) {
			left = 0
			return zero, nil, false
		}
		if err != nil {
			return zero, err, true
		}
		if 0 < left {
			left--
		}
		if 0 < step && math.MaxInt-step < pos {
			left = 0
		} else {
			pos += step
		}
		return v, nil, true
	}
}

type bounds struct {
	start *int
	stop  *int
	step  int
}

// isForward tells if the slice positions can be walked without knowing the length.
func (b bounds) isForward() bool {
	return 0 < b.step &&
		(b.start == nil || 0 <= *b.start) &&
		(b.stop == nil || 0 <= *b.stop)
}

func (b bounds) forward() (start, step, count int) {
	start, step, count = 0, b.step, -1
	if b.start != nil {
		start = *b.start
	}
	if b.stop != nil {
		count = 0
		if start < *b.stop {
			count = (*b.stop-start-1)/step + 1
		}
	}
	return start, step, count
}

// indices resolves the bounds against length, with the semantics of Python's slice.indices.
func (b bounds) indices(length int) (start, step, count int) {
	step = b.step
	lower, upper := 0, length
	if step < 0 {
		lower, upper = -1, length-1
	}
	clamp := func(p *int, def int) int {
		if p == nil {
			return def
		}
		i := *p
		if i < 0 {
			i += length
			if i < lower {
				i = lower
			}
		} else if upper < i {
			i = upper
		}
		return i
	}
	if step < 0 {
		start = clamp(b.start, upper)
		stop := clamp(b.stop, lower)
		if stop < start {
			count = (start-stop-1)/(-step) + 1
		}
		return start, step, count
	}
	start = clamp(b.start, lower)
	stop := clamp(b.stop, upper)
	if start < stop {
		count = (stop-start-1)/step + 1
	}
	return start, step, count
}

// ParseSlice parses a slice expression in the "start:stop:step" form,
// where every part is optional, like "2:", ":-1" or "::-1".
func ParseSlice(expr string) ([]Option, error) {
	parts := strings.Split(strings.TrimSpace(expr), ":")
	if len(parts) < 2 || 3 < len(parts) {
		return nil, ErrMalformedSlice.F("%q is not a start:stop:step expression", expr)
	}
	var opts []Option
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, ErrMalformedSlice.F("%q is not an integer", part)
		}
		switch i {
		case 0:
			opts = append(opts, Start(n))
		case 1:
			opts = append(opts, Stop(n))
		case 2:
			if n == 0 {
				return nil, ErrMalformedSlice.F("slice step cannot be zero")
			}
			opts = append(opts, Step(n))
		}
	}
	return opts, nil
}
