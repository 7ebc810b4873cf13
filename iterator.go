package jdbi

import (
	"context"
	"errors"
)

// ResultIterator is a lazy, forward-only, single-pass view over a
// statement's generated keys. Unlike the eager consumption methods on
// [GeneratedKeys], it does not release anything automatically: the caller
// must Close it when done, or rely on the owning statement's eventual
// cleanup.
type ResultIterator[T any] struct {
	mapper RowMapper[T]
	rows   *CloseOnce // nil when the driver returned no key cursor
	sc     *StatementContext
	idx    int
}

// Iterate acquires a fresh cursor from stmt and returns a caller-owned
// iterator over its generated keys. A driver fault during acquisition is
// reported as a [ResultError].
func Iterate[T any](ctx context.Context, stmt Statement, mapper RowMapper[T]) (*ResultIterator[T], error) {
	it, err := newResultIterator(ctx, stmt, mapper)
	if err != nil {
		return nil, traversalError(err, stmt.Context())
	}

	return it, nil
}

func newResultIterator[T any](ctx context.Context, stmt Statement, mapper RowMapper[T]) (*ResultIterator[T], error) {
	rows, err := stmt.GeneratedKeys(ctx)
	if err != nil {
		return nil, err
	}

	it := &ResultIterator[T]{
		mapper: mapper,
		sc:     stmt.Context(),
	}

	if rows != nil {
		it.rows = CloseOnceRows(rows)
		stmt.RegisterCleanable(it.rows)
	}

	return it, nil
}

// Next prepares the next key. It returns false when the cursor is
// exhausted or absent; consult Err to tell the two apart.
func (it *ResultIterator[T]) Next() bool {
	return it.rows != nil && it.rows.Next()
}

// Get maps the current key. The zero-based row index passed to the mapper
// increments on every successful call.
func (it *ResultIterator[T]) Get() (T, error) {
	var zero T

	if it.rows == nil {
		return zero, traversalError(errors.New("no generated key cursor"), it.sc)
	}

	v, err := it.mapper(it.idx, it.rows, it.sc)
	if err != nil {
		return zero, traversalError(err, it.sc)
	}

	it.idx++
	return v, nil
}

// Err returns any error with the underlying cursor
func (it *ResultIterator[T]) Err() error {
	if it.rows == nil {
		return nil
	}

	if err := it.rows.Err(); err != nil {
		return traversalError(err, it.sc)
	}

	return nil
}

// Close releases the iterator's cursor. Closing more than once is a no-op.
func (it *ResultIterator[T]) Close() error {
	if it.rows == nil {
		return nil
	}

	if err := it.rows.Close(); err != nil {
		return traversalError(err, it.sc)
	}

	return nil
}

// Each pushes every remaining key to fn in row order, stopping early when
// fn returns false. A mapping or advancement error is pushed once with a
// zero value and ends the iteration. The iterator still has to be closed
// afterwards.
func (it *ResultIterator[T]) Each() func(func(T, error) bool) {
	return func(fn func(T, error) bool) {
		for it.Next() {
			v, err := it.Get()
			if !fn(v, err) || err != nil {
				return
			}
		}

		if err := it.Err(); err != nil {
			var zero T
			fn(zero, err)
		}
	}
}
