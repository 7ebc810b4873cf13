package jdbi

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mapFirstRow[T any](t *testing.T, m RowMapper[T], rows *fakeRows) (T, error) {
	t.Helper()

	if !rows.Next() {
		t.Fatal("expected at least one row")
	}

	return m(0, rows, nil)
}

func TestSingleColumnMapper(t *testing.T) {
	rows := newFakeRows([]any{int64(42)})

	got, err := mapFirstRow(t, SingleColumnMapper[int](), rows)
	if err != nil {
		t.Fatal(err)
	}
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestSingleColumnMapperTooManyColumns(t *testing.T) {
	rows := newFakeRows([]any{1, "a"})
	rows.cols = []string{"id", "name"}

	_, err := mapFirstRow(t, SingleColumnMapper[int](), rows)
	if err == nil || !strings.Contains(err.Error(), "got 2 columns") {
		t.Fatalf("expected a column count error, got %v", err)
	}
}

func TestColumnMapper(t *testing.T) {
	rows := newFakeRows([]any{int64(7), "seven"})
	rows.cols = []string{"id", "name"}

	got, err := mapFirstRow(t, ColumnMapper[string]("name"), rows)
	if err != nil {
		t.Fatal(err)
	}
	if got != "seven" {
		t.Fatalf("expected %q, got %q", "seven", got)
	}
}

func TestColumnMapperMissingColumn(t *testing.T) {
	rows := newFakeRows([]any{int64(7)})

	_, err := mapFirstRow(t, ColumnMapper[int]("missing"), rows)
	if err == nil || !strings.Contains(err.Error(), "no column named missing") {
		t.Fatalf("expected a missing column error, got %v", err)
	}
}

func TestSliceMapper(t *testing.T) {
	rows := newFakeRows([]any{int64(1), int64(2), int64(3)})
	rows.cols = []string{"a", "b", "c"}

	got, err := mapFirstRow(t, SliceMapper[int64](), rows)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int64{1, 2, 3}, got); diff != "" {
		t.Fatalf("diff: %s", diff)
	}
}

func TestMapMapper(t *testing.T) {
	rows := newFakeRows([]any{int64(1), "one"})
	rows.cols = []string{"id", "name"}

	got, err := mapFirstRow(t, MapMapper[any](), rows)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]any{"id": int64(1), "name": "one"}, got); diff != "" {
		t.Fatalf("diff: %s", diff)
	}
}
