package jdbi

import (
	"context"
)

// Row represents a single row in the Rows results
// can be scanned into a number of given values
type Row interface {
	Scan(...any) error
}

// Rows is the forward-only, single-pass cursor a driver returns for the
// generated keys of an executed statement
type Rows interface {
	Row
	Columns() ([]string, error)
	Next() bool
	Close() error
	Err() error
}

// Statement is the executed statement that owns a generated-key cursor.
// It hands out key cursors, collects the resources scoped to it and
// releases them when Cleanup is called.
//
// Adapters usually embed [CleanupRegistry] to satisfy the registry half of
// this interface.
type Statement interface {
	// GeneratedKeys returns a fresh cursor over the statement's generated
	// keys, or nil when the driver produced none.
	// Every call acquires an independent cursor.
	GeneratedKeys(ctx context.Context) (Rows, error)

	// Context returns the execution context of the statement.
	Context() *StatementContext

	// RegisterCleanable adds a resource to be released on Cleanup.
	RegisterCleanable(c Cleanable)

	// Cleanup releases every registered resource. A resource is released
	// at most once no matter how often Cleanup is called.
	Cleanup() error
}
