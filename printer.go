package chisql

// Print renders any AST node -- Expression, SRA, RA, or Statement -- in
// its canonical, fully-parenthesized prefix form. Each node type already
// implements String() to do this (see expr.go, sra.go, ra.go,
// statement.go, ddl.go, dml.go); Print exists only so callers have one
// name to reach for instead of remembering which of those interfaces a
// given node satisfies.
func Print(node interface{ String() string }) string {
	return node.String()
}
