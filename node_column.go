package chisql

import "fmt"

// wildcardName is the distinguished Column.Name value that marks a
// wildcard projection item: a bare "*" (Qualifier == "") or a qualified
// "t.*" (Qualifier == "t").
const wildcardName = "*"

// Column is a (possibly qualified) reference to a column, or a wildcard.
// Qualifier is the table name or alias the reference is scoped to; it is
// empty for an unqualified reference. A wildcard carries no semantics
// beyond "all columns of the qualified source, or of every source if
// unqualified" -- expanding it is desugar.go's job, not the parser's.
type Column struct {
	Qualifier string
	Name      string
}

func (e *Column) exprNode() {}

// IsWildcard reports whether this Column is a "*" or "t.*" marker rather
// than a concrete column reference.
func (e *Column) IsWildcard() bool {
	return e.Name == wildcardName
}

func (e *Column) String() string {
	if e.Qualifier == "" {
		return e.Name
	}
	return fmt.Sprintf("%s.%s", e.Qualifier, e.Name)
}

func (e *Column) Equal(other Expression) bool {
	o, ok := other.(*Column)
	return ok && e.Qualifier == o.Qualifier && e.Name == o.Name
}
