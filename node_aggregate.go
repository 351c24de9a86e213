package chisql

import "fmt"

// AggFunc is the closed set of aggregate functions the expression language
// supports.
type AggFunc int

const (
	AggCount AggFunc = iota
	AggSum
	AggAvg
	AggMin
	AggMax
)

func (f AggFunc) String() string {
	switch f {
	case AggCount:
		return "COUNT"
	case AggSum:
		return "SUM"
	case AggAvg:
		return "AVG"
	case AggMin:
		return "MIN"
	case AggMax:
		return "MAX"
	default:
		newInternal("unexpected aggregate function: %d", f)
		return ""
	}
}

func aggFuncFromName(name string) (AggFunc, bool) {
	switch name {
	case "COUNT":
		return AggCount, true
	case "SUM":
		return AggSum, true
	case "AVG":
		return AggAvg, true
	case "MIN":
		return AggMin, true
	case "MAX":
		return AggMax, true
	default:
		return 0, false
	}
}

// Aggregate applies an aggregate function to an inner expression, e.g.
// COUNT(*) or SUM(x.amount). Aggregates never nest: Inner is never itself
// an *Aggregate. That invariant is checked where Aggregate nodes are
// constructed by the parser (see readPrimary in parser.go), not here.
type Aggregate struct {
	Fn    AggFunc
	Inner Expression
}

func (e *Aggregate) exprNode() {}

func (e *Aggregate) String() string {
	return fmt.Sprintf("%s(%s)", e.Fn, e.Inner.String())
}

func (e *Aggregate) Equal(other Expression) bool {
	o, ok := other.(*Aggregate)
	if !ok {
		return false
	}
	return e.Fn == o.Fn && ExprEqual(e.Inner, o.Inner)
}
