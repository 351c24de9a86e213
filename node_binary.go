package chisql

import "fmt"

// BinaryOp is the closed set of binary operators the expression language
// supports.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpLt
	OpGt
	OpLe
	OpGe
	OpNe
	OpAnd
	OpOr
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpEq:
		return "="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	case OpNe:
		return "<>"
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	default:
		newInternal("unexpected binary operator: %d", op)
		return ""
	}
}

// funcName returns the prefix-form name the pretty printer uses for this
// operator, e.g. "Add" for OpAdd, matching the README's
// "Add(x, y)" example.
func (op BinaryOp) funcName() string {
	switch op {
	case OpAdd:
		return "Add"
	case OpSub:
		return "Sub"
	case OpMul:
		return "Mul"
	case OpDiv:
		return "Div"
	case OpEq:
		return "Eq"
	case OpLt:
		return "Lt"
	case OpGt:
		return "Gt"
	case OpLe:
		return "Le"
	case OpGe:
		return "Ge"
	case OpNe:
		return "Ne"
	case OpAnd:
		return "And"
	case OpOr:
		return "Or"
	default:
		newInternal("unexpected binary operator: %d", op)
		return ""
	}
}

// Binary is a two-operand expression: arithmetic, comparison, or a logical
// connective.
type Binary struct {
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (e *Binary) exprNode() {}

func (e *Binary) String() string {
	return fmt.Sprintf("%s(%s, %s)", e.Op.funcName(), e.Left.String(), e.Right.String())
}

func (e *Binary) Equal(other Expression) bool {
	o, ok := other.(*Binary)
	if !ok {
		return false
	}
	return e.Op == o.Op && ExprEqual(e.Left, o.Left) && ExprEqual(e.Right, o.Right)
}
