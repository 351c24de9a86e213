package chisql

import "fmt"

// UnaryOp is the closed set of unary operators: arithmetic negation and
// logical NOT.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

func (op UnaryOp) funcName() string {
	switch op {
	case OpNeg:
		return "Neg"
	case OpNot:
		return "Not"
	default:
		newInternal("unexpected unary operator: %d", op)
		return ""
	}
}

// Unary is a one-operand expression.
type Unary struct {
	Op    UnaryOp
	Inner Expression
}

func (e *Unary) exprNode() {}

func (e *Unary) String() string {
	return fmt.Sprintf("%s(%s)", e.Op.funcName(), e.Inner.String())
}

func (e *Unary) Equal(other Expression) bool {
	o, ok := other.(*Unary)
	if !ok {
		return false
	}
	return e.Op == o.Op && ExprEqual(e.Inner, o.Inner)
}
