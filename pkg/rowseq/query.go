package rowseq

import (
	"context"
	"database/sql"

	"go.llib.dev/lazykit/pkg/lazykit"
)

// Queryable is implemented by *sql.DB, *sql.Tx and *sql.Conn.
type Queryable interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Query returns a Sequence over the rows of query.
//
// The query is only executed when the first item is pulled,
// so a Sequence that is never read never touches the database.
// A failing query is reported by the first pulling operation.
func Query[T any](ctx context.Context, db Queryable, mapper Mapper[T], query string, args ...any) *lazykit.Sequence[T] {
	return lazykit.New(func(yield func(T, error) bool) {
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			var zero T
			yield(zero, err)
			return
		}
		for v, err := range Scan[T](rows, mapper) {
			if !yield(v, err) {
				return
			}
		}
	})
}
