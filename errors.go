package jdbi

import (
	"errors"
)

// ResultError is returned when the generated-key cursor cannot be
// traversed: a driver fault while advancing, closing or reading the
// current row, or a mapper failure on a row. It wraps the underlying
// fault and carries the statement context that was active at the time.
type ResultError struct {
	msg   string
	cause error
	sc    *StatementContext
}

func traversalError(cause error, sc *StatementContext) *ResultError {
	return &ResultError{
		msg:   "error while traversing the generated key result set",
		cause: cause,
		sc:    sc,
	}
}

// Unwrap returns the underlying driver or mapper fault.
func (e *ResultError) Unwrap() error {
	return e.cause
}

// Error implements the error interface
func (e *ResultError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

// Context returns the statement context active when traversal failed.
func (e *ResultError) Context() *StatementContext {
	return e.sc
}

// Equal makes it easy to compare result errors
func (e *ResultError) Equal(err error) bool {
	var other *ResultError
	if !errors.As(err, &other) {
		return errors.Is(e, err) || errors.Is(err, e)
	}

	return e.Error() == other.Error()
}
