// Package rowseq adapts SQL result sets into lazy sequences.
package rowseq

import (
	"io"
	"iter"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/iterkit"
)

type Rows interface {
	io.Closer
	// Next prepares the next row for reading.
	Next() bool
	// Err returns the error, if any, that was encountered during iteration.
	Err() error
	Scanner
}

type Scanner interface {
	Scan(dest ...any) error
}

type Mapper[T any] interface {
	Map(s Scanner) (T, error)
}

type MapperFunc[T any] func(Scanner) (T, error)

func (fn MapperFunc[T]) Map(s Scanner) (T, error) { return fn(s) }

// Scan iterates over rows, mapping each row with mapper.
//
// The iterator is single-use, and it closes rows once the iteration ends, even if it is stopped early.
// A mapping failure is yielded as an error and ends the iteration.
func Scan[T any](rows Rows, mapper Mapper[T]) iter.Seq2[T, error] {
	return iterkit.Once2(func(yield func(T, error) bool) {
		var zero T
		for rows.Next() {
			v, err := mapper.Map(rows)
			if err != nil {
				yield(zero, errorkit.Merge(err, rows.Close()))
				return
			}
			if !yield(v, nil) {
				_ = rows.Close()
				return
			}
		}
		if err := errorkit.Merge(rows.Err(), rows.Close()); err != nil {
			yield(zero, err)
		}
	})
}
