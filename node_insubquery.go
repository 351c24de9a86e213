package chisql

import "fmt"

// InSubquery tests whether Expr's value occurs in the result of a
// subquery: "expr IN (SELECT ...)". Query holds the subquery as parsed
// (SRA). Desugaring passes a predicate containing an InSubquery through
// unchanged, so Query is not lowered to RA and is not checked against the
// schema.
type InSubquery struct {
	Expr  Expression
	Query SRA
}

func (e *InSubquery) exprNode() {}

func (e *InSubquery) String() string {
	return fmt.Sprintf("In(%s, %s)", e.Expr.String(), e.Query.String())
}

func (e *InSubquery) Equal(other Expression) bool {
	o, ok := other.(*InSubquery)
	if !ok {
		return false
	}
	return ExprEqual(e.Expr, o.Expr) && SRAEqual(e.Query, o.Query)
}
