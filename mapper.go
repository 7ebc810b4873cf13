package jdbi

import (
	"fmt"

	"github.com/aarondl/opt"
)

// RowMapper converts the current cursor row into a value. It is called
// once per row with a zero-based row index, the cursor positioned on the
// row, and the statement's execution context. Mappers may read columns
// through the cursor but must not advance or close it.
type RowMapper[T any] func(idx int, rows Rows, sc *StatementContext) (T, error)

// SingleColumnMapper maps the only column of each row into T.
// It fails if the cursor exposes more than one column.
func SingleColumnMapper[T any]() RowMapper[T] {
	return func(idx int, rows Rows, sc *StatementContext) (T, error) {
		var t T

		cols, err := rows.Columns()
		if err != nil {
			return t, err
		}

		if len(cols) != 1 {
			return t, fmt.Errorf("expected 1 column but got %d columns", len(cols))
		}

		var raw any
		if err := rows.Scan(&raw); err != nil {
			return t, err
		}

		if err := opt.ConvertAssign(&t, raw); err != nil {
			return t, err
		}

		return t, nil
	}
}

// ColumnMapper maps the named column of each row into T, discarding the
// other columns.
func ColumnMapper[T any](name string) RowMapper[T] {
	return func(idx int, rows Rows, sc *StatementContext) (T, error) {
		var t T

		cols, err := rows.Columns()
		if err != nil {
			return t, err
		}

		var raw any
		targets := make([]any, len(cols))
		found := false
		for i, col := range cols {
			if col == name && !found {
				targets[i] = &raw
				found = true
				continue
			}

			// Some drivers cannot work with nil values, so valid pointers
			// are used for all column targets, even if they are discarded
			// afterwards.
			targets[i] = new(any)
		}

		if !found {
			return t, fmt.Errorf("no column named %s", name)
		}

		if err := rows.Scan(targets...); err != nil {
			return t, err
		}

		if err := opt.ConvertAssign(&t, raw); err != nil {
			return t, err
		}

		return t, nil
	}
}

// SliceMapper maps each row into []T in column order
func SliceMapper[T any]() RowMapper[[]T] {
	return func(idx int, rows Rows, sc *StatementContext) ([]T, error) {
		cols, err := rows.Columns()
		if err != nil {
			return nil, err
		}

		raws := make([]any, len(cols))
		targets := make([]any, len(cols))
		for i := range raws {
			targets[i] = &raws[i]
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}

		row := make([]T, len(cols))
		for i, raw := range raws {
			if err := opt.ConvertAssign(&row[i], raw); err != nil {
				return nil, err
			}
		}

		return row, nil
	}
}

// MapMapper maps each row into map[string]T keyed by column name.
// Most likely used with any to get a map[string]any
func MapMapper[T any]() RowMapper[map[string]T] {
	return func(idx int, rows Rows, sc *StatementContext) (map[string]T, error) {
		cols, err := rows.Columns()
		if err != nil {
			return nil, err
		}

		raws := make([]any, len(cols))
		targets := make([]any, len(cols))
		for i := range raws {
			targets[i] = &raws[i]
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}

		row := make(map[string]T, len(cols))
		for i, col := range cols {
			var v T
			if err := opt.ConvertAssign(&v, raws[i]); err != nil {
				return nil, err
			}
			row[col] = v
		}

		return row, nil
	}
}
