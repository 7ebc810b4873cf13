package jdbi

// StatementContext carries the execution metadata of the statement that
// produced a result: the SQL text, its bound arguments and a free-form
// attribute bag. It is handed to every [RowMapper] invocation and attached
// to every [ResultError] for diagnostics. Mappers must treat it as
// read-only.
type StatementContext struct {
	sql   string
	args  []any
	attrs map[string]any
}

// NewStatementContext creates a context for a statement with the given SQL
// text and bound arguments.
func NewStatementContext(sql string, args ...any) *StatementContext {
	return &StatementContext{sql: sql, args: args}
}

// SQL returns the raw SQL text of the statement.
func (sc *StatementContext) SQL() string {
	if sc == nil {
		return ""
	}
	return sc.sql
}

// Args returns the arguments bound to the statement.
func (sc *StatementContext) Args() []any {
	if sc == nil {
		return nil
	}
	return sc.args
}

// SetAttribute stores a named attribute on the context.
func (sc *StatementContext) SetAttribute(name string, value any) {
	if sc.attrs == nil {
		sc.attrs = make(map[string]any)
	}
	sc.attrs[name] = value
}

// Attribute returns the named attribute, or nil if it was never set.
func (sc *StatementContext) Attribute(name string) any {
	if sc == nil {
		return nil
	}
	return sc.attrs[name]
}
