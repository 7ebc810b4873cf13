package jdbi

import (
	"errors"
)

// Cleanable is a resource scoped to a statement, released through the
// statement's [CleanupRegistry].
type Cleanable interface {
	Cleanup() error
}

// CleanableFunc adapts a plain function into a [Cleanable]
type CleanableFunc func() error

// Cleanup implements the Cleanable interface
func (f CleanableFunc) Cleanup() error {
	return f()
}

// CleanupRegistry collects the resources scoped to a statement and
// releases each of them exactly once, in reverse registration order.
// Calling Cleanup again after the first call is a no-op.
//
// The registry is not safe for concurrent use; like the rest of this
// package it assumes a single goroutine per statement.
type CleanupRegistry struct {
	cleanables []Cleanable
}

// RegisterCleanable adds a resource to be released on Cleanup.
func (r *CleanupRegistry) RegisterCleanable(c Cleanable) {
	if c == nil {
		return
	}
	r.cleanables = append(r.cleanables, c)
}

// Cleanup releases every registered resource and reports their release
// errors joined together. The registered set is detached before release,
// so re-entrant or repeated calls cannot release a resource twice.
func (r *CleanupRegistry) Cleanup() error {
	cs := r.cleanables
	r.cleanables = nil

	var errs []error
	for i := len(cs) - 1; i >= 0; i-- {
		if err := cs[i].Cleanup(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// CloseOnce wraps a cursor so that Close is idempotent and the closed
// state stays queryable afterwards. It is also a [Cleanable], which is how
// key cursors are registered with their statement's registry.
type CloseOnce struct {
	Rows
	closed bool
}

// CloseOnceRows wraps the given cursor.
func CloseOnceRows(r Rows) *CloseOnce {
	return &CloseOnce{Rows: r}
}

// Close closes the underlying cursor on the first call only.
func (c *CloseOnce) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.Rows.Close()
}

// IsClosed reports whether Close has been called.
func (c *CloseOnce) IsClosed() bool {
	return c.closed
}

// Cleanup implements the Cleanable interface
func (c *CloseOnce) Cleanup() error {
	return c.Close()
}
