package jdbi

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
)

// GeneratedKeys adapts the generated-key cursor of an executed statement
// into first/list/iterator access over mapped values.
//
// The cursor is forward-only and single pass, so exactly one consumption
// method should be called per instance. First and the List variants
// release the statement's resources on every exit path; Iterator hands
// lifetime control to the caller instead.
type GeneratedKeys[T any] struct {
	mapper RowMapper[T]
	stmt   Statement
	rows   *CloseOnce // nil when the driver returned no key cursor
	sc     *StatementContext
}

// Keys acquires the generated-key cursor from stmt and wraps it. The
// cursor is registered with the statement's cleanup registry before
// anything reads from it, so a later failure cannot leak it. A driver
// error during acquisition is returned as-is.
func Keys[T any](ctx context.Context, stmt Statement, mapper RowMapper[T]) (*GeneratedKeys[T], error) {
	rows, err := stmt.GeneratedKeys(ctx)
	if err != nil {
		return nil, err
	}

	g := &GeneratedKeys[T]{
		mapper: mapper,
		stmt:   stmt,
		sc:     stmt.Context(),
	}

	if rows != nil {
		g.rows = CloseOnceRows(rows)
		stmt.RegisterCleanable(g.rows)
	}

	return g, nil
}

// First returns the first generated key. The second return is false when
// the driver produced no keys, which is not an error. The statement is
// cleaned up on every path out of this method.
func (g *GeneratedKeys[T]) First() (first T, ok bool, err error) {
	defer g.cleanup(&err)

	if g.rows == nil || !g.rows.Next() {
		if g.rows != nil {
			if rerr := g.rows.Err(); rerr != nil {
				err = traversalError(rerr, g.sc)
			}
		}
		return first, false, err
	}

	first, err = g.mapper(0, g.rows, g.sc)
	if err != nil {
		var zero T
		return zero, false, traversalError(err, g.sc)
	}

	return first, true, nil
}

// List returns every remaining generated key in row order, or nil when
// there are none.
func (g *GeneratedKeys[T]) List() ([]T, error) {
	return g.ListMax(math.MaxInt)
}

// ListMax returns at most maxRows generated keys in row order. A maxRows
// below one, an absent cursor or an already closed cursor all yield an
// empty list without touching the cursor. The mapper sees a zero-based
// row index that increments per mapped row. The statement is cleaned up
// on every path out of this method.
func (g *GeneratedKeys[T]) ListMax(maxRows int) (results []T, err error) {
	defer g.cleanup(&err)

	if maxRows < 1 || g.rows == nil || g.rows.IsClosed() {
		return nil, nil
	}

	var idx int
	for len(results) < maxRows && g.rows.Next() {
		one, merr := g.mapper(idx, g.rows, g.sc)
		if merr != nil {
			return nil, traversalError(merr, g.sc)
		}

		idx++
		results = append(results, one)
	}

	if rerr := g.rows.Err(); rerr != nil {
		return nil, traversalError(rerr, g.sc)
	}

	return results, nil
}

// Iterator returns a lazy iterator over the generated keys. The iterator
// acquires its own cursor from the statement, so it is unaffected by any
// rows already consumed from this instance. It does NOT trigger the
// statement's cleanup: closing the iterator is the caller's obligation,
// with the statement's registry as a backstop.
func (g *GeneratedKeys[T]) Iterator(ctx context.Context) (*ResultIterator[T], error) {
	return Iterate(ctx, g.stmt, g.mapper)
}

// FirstAs is a reserved extension point for adapting the first generated
// key into an arbitrary container type. No container factories can be
// registered yet, so it always fails with an error wrapping
// [errors.ErrUnsupported].
func (g *GeneratedKeys[T]) FirstAs(containerType reflect.Type) (any, error) {
	if _, err := containers.lookup(containerType); err != nil {
		return nil, err
	}

	// Factory registration has no public surface yet; container creation
	// lands together with it.
	return nil, fmt.Errorf("jdbi: adapting the first key into %s: %w", containerType, errors.ErrUnsupported)
}

// ListAs is the list counterpart of [GeneratedKeys.FirstAs] and is equally
// unimplemented.
func (g *GeneratedKeys[T]) ListAs(containerType reflect.Type) (any, error) {
	if _, err := containers.lookup(containerType); err != nil {
		return nil, err
	}

	return nil, fmt.Errorf("jdbi: adapting the key list into %s: %w", containerType, errors.ErrUnsupported)
}

// cleanup runs the statement cleanup and surfaces its failure when the
// consuming call itself succeeded. The registry is idempotent, so a
// repeated trigger releases nothing twice.
func (g *GeneratedKeys[T]) cleanup(err *error) {
	if cerr := g.stmt.Cleanup(); cerr != nil && *err == nil {
		*err = traversalError(cerr, g.sc)
	}
}
