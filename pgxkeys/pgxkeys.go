package pgxkeys

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/whenceforth/jdbi"
)

// A Queryer that returns the concrete type [pgx.Rows]
// this is for use with *pgx.Conn, *pgxpool.Pool or any similar
// implementations
type Queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Statement adapts a key-returning query, typically an
// INSERT ... RETURNING, into a [jdbi.Statement] over pgx. Every
// GeneratedKeys call runs the query again, so iterators get a cursor of
// their own.
type Statement struct {
	jdbi.CleanupRegistry

	db Queryer
	sc *jdbi.StatementContext
}

// New builds a statement whose generated keys come from running the given
// query.
func New(db Queryer, query string, args ...any) *Statement {
	return &Statement{
		db: db,
		sc: jdbi.NewStatementContext(query, args...),
	}
}

// GeneratedKeys runs the key query and returns its cursor.
func (s *Statement) GeneratedKeys(ctx context.Context) (jdbi.Rows, error) {
	r, err := s.db.Query(ctx, s.sc.SQL(), s.sc.Args()...)
	if err != nil {
		return nil, err
	}

	return rows{r}, nil
}

// Context returns the execution context of the statement.
func (s *Statement) Context() *jdbi.StatementContext {
	return s.sc
}

type rows struct {
	pgx.Rows
}

func (r rows) Close() error {
	r.Rows.Close()
	return nil
}

func (r rows) Columns() ([]string, error) {
	fields := r.FieldDescriptions()
	cols := make([]string, len(fields))

	for i, field := range fields {
		cols[i] = field.Name
	}

	return cols, nil
}

// First runs the key query and returns the first generated key mapped to T
func First[T any](ctx context.Context, db Queryer, m jdbi.RowMapper[T], query string, args ...any) (T, bool, error) {
	keys, err := jdbi.Keys(ctx, New(db, query, args...), m)
	if err != nil {
		var t T
		return t, false, err
	}

	return keys.First()
}

// List runs the key query and returns a slice []T of all generated keys
func List[T any](ctx context.Context, db Queryer, m jdbi.RowMapper[T], query string, args ...any) ([]T, error) {
	keys, err := jdbi.Keys(ctx, New(db, query, args...), m)
	if err != nil {
		return nil, err
	}

	return keys.List()
}

// Iterator runs the key query and returns a caller-owned iterator over the
// generated keys
func Iterator[T any](ctx context.Context, db Queryer, m jdbi.RowMapper[T], query string, args ...any) (*jdbi.ResultIterator[T], error) {
	return jdbi.Iterate(ctx, New(db, query, args...), m)
}
