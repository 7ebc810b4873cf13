package stdkeys

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aarondl/opt"
	"github.com/whenceforth/jdbi"
)

// Execer runs statements that do not return rows.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Exec runs the statement and adapts its [sql.Result] into a statement
// whose generated keys come from the driver's last insert id, exposed
// under the given column name. This is how drivers without key-returning
// queries, like MySQL or SQLite, surface generated keys.
func Exec(ctx context.Context, db Execer, column string, query string, args ...any) (*ResultStatement, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return &ResultStatement{
		res:    res,
		column: column,
		sc:     jdbi.NewStatementContext(query, args...),
	}, nil
}

// ResultStatement is a [jdbi.Statement] over an already executed
// statement's [sql.Result].
type ResultStatement struct {
	jdbi.CleanupRegistry

	res    sql.Result
	column string
	sc     *jdbi.StatementContext
}

// GeneratedKeys derives a fresh one-row key cursor from the result.
func (s *ResultStatement) GeneratedKeys(ctx context.Context) (jdbi.Rows, error) {
	return ResultKeys(s.res, s.column)
}

// Context returns the execution context of the statement.
func (s *ResultStatement) Context() *jdbi.StatementContext {
	return s.sc
}

// ResultKeys exposes the LastInsertId of an exec result as a one-row
// cursor with a single column. When the statement affected no rows the
// cursor is absent (nil), which is not an error.
func ResultKeys(res sql.Result, column string) (jdbi.Rows, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}

	if affected == 0 {
		return nil, nil
	}

	return &resultRows{column: column, id: id}, nil
}

var errRowsClosed = errors.New("stdkeys: rows are closed")

// resultRows is the single-row cursor behind [ResultKeys].
type resultRows struct {
	column  string
	id      int64
	current bool
	done    bool
	closed  bool
}

func (r *resultRows) Columns() ([]string, error) {
	if r.closed {
		return nil, errRowsClosed
	}
	return []string{r.column}, nil
}

func (r *resultRows) Next() bool {
	if r.closed || r.done {
		r.current = false
		return false
	}

	r.current = true
	r.done = true
	return true
}

func (r *resultRows) Scan(dest ...any) error {
	if r.closed {
		return errRowsClosed
	}

	if !r.current {
		return errors.New("stdkeys: Scan called without a successful Next")
	}

	if len(dest) != 1 {
		return fmt.Errorf("stdkeys: expected 1 destination but got %d", len(dest))
	}

	return opt.ConvertAssign(dest[0], r.id)
}

func (r *resultRows) Close() error {
	r.closed = true
	r.current = false
	return nil
}

func (r *resultRows) Err() error {
	return nil
}
