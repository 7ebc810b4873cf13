package sqlxkeys

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/whenceforth/jdbi"
)

// Statement adapts a key-returning query into a [jdbi.Statement] over
// sqlx, keeping access to sqlx's struct and map scanning. Every
// GeneratedKeys call runs the query again, so iterators get a cursor of
// their own.
type Statement struct {
	jdbi.CleanupRegistry

	db sqlx.QueryerContext
	sc *jdbi.StatementContext
}

// New builds a statement whose generated keys come from running the given
// query with *sqlx.DB, *sqlx.Tx or any similar implementation.
func New(db sqlx.QueryerContext, query string, args ...any) *Statement {
	return &Statement{
		db: db,
		sc: jdbi.NewStatementContext(query, args...),
	}
}

// GeneratedKeys runs the key query and returns its cursor.
func (s *Statement) GeneratedKeys(ctx context.Context) (jdbi.Rows, error) {
	r, err := s.db.QueryxContext(ctx, s.sc.SQL(), s.sc.Args()...)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Context returns the execution context of the statement.
func (s *Statement) Context() *jdbi.StatementContext {
	return s.sc
}

// StructMapper maps each key row into T with sqlx's StructScan. It only
// works on cursors produced by this package.
func StructMapper[T any]() jdbi.RowMapper[T] {
	return func(idx int, rows jdbi.Rows, sc *jdbi.StatementContext) (T, error) {
		var t T

		xrows, err := unwrap(rows)
		if err != nil {
			return t, err
		}

		if err := xrows.StructScan(&t); err != nil {
			return t, err
		}

		return t, nil
	}
}

// MapMapper maps each key row into map[string]any with sqlx's MapScan. It
// only works on cursors produced by this package.
func MapMapper() jdbi.RowMapper[map[string]any] {
	return func(idx int, rows jdbi.Rows, sc *jdbi.StatementContext) (map[string]any, error) {
		xrows, err := unwrap(rows)
		if err != nil {
			return nil, err
		}

		row := make(map[string]any)
		if err := xrows.MapScan(row); err != nil {
			return nil, err
		}

		return row, nil
	}
}

// unwrap digs the *sqlx.Rows back out of the cursor, stripping the
// close-once wrapper the core puts around it.
func unwrap(rows jdbi.Rows) (*sqlx.Rows, error) {
	for {
		switch r := rows.(type) {
		case *sqlx.Rows:
			return r, nil
		case *jdbi.CloseOnce:
			rows = r.Rows
		default:
			return nil, fmt.Errorf("sqlxkeys: not an sqlx cursor: %T", rows)
		}
	}
}

// First runs the key query and returns the first generated key mapped to T
func First[T any](ctx context.Context, db sqlx.QueryerContext, m jdbi.RowMapper[T], query string, args ...any) (T, bool, error) {
	keys, err := jdbi.Keys(ctx, New(db, query, args...), m)
	if err != nil {
		var t T
		return t, false, err
	}

	return keys.First()
}

// List runs the key query and returns a slice []T of all generated keys
func List[T any](ctx context.Context, db sqlx.QueryerContext, m jdbi.RowMapper[T], query string, args ...any) ([]T, error) {
	keys, err := jdbi.Keys(ctx, New(db, query, args...), m)
	if err != nil {
		return nil, err
	}

	return keys.List()
}
