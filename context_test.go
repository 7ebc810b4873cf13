package jdbi

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStatementContext(t *testing.T) {
	sc := NewStatementContext("INSERT INTO t (name) VALUES (?)", "x")

	if sc.SQL() != "INSERT INTO t (name) VALUES (?)" {
		t.Fatalf("unexpected sql: %q", sc.SQL())
	}
	if diff := cmp.Diff([]any{"x"}, sc.Args()); diff != "" {
		t.Fatalf("diff: %s", diff)
	}

	if sc.Attribute("tenant") != nil {
		t.Fatal("expected no attribute before SetAttribute")
	}
	sc.SetAttribute("tenant", 7)
	if got := sc.Attribute("tenant"); got != 7 {
		t.Fatalf("expected 7, got %v", got)
	}
}

func TestStatementContextNil(t *testing.T) {
	var sc *StatementContext

	if sc.SQL() != "" || sc.Args() != nil || sc.Attribute("x") != nil {
		t.Fatal("expected zero values from a nil context")
	}
}
