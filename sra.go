package chisql

import (
	"fmt"
	"strings"
)

// SRA is a node in the Sugared Relational Algebra tree: the surface-level
// query representation the parser produces directly from SQL, still
// carrying multi-kind joins, aliases, and wildcard projections. Desugaring
// (desugar.go) rewrites an SRA tree into the minimal RA core.
//
// Variants: *Table, *Project, *Select, *Join, *OrderBy, *SetOp.
type SRA interface {
	String() string
	sraNode()
}

// SRAEqual reports whether two SRA trees are structurally equal.
func SRAEqual(a, b SRA) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case *Table:
		return av.Equal(b)
	case *Project:
		return av.Equal(b)
	case *Select:
		return av.Equal(b)
	case *Join:
		return av.Equal(b)
	case *OrderBy:
		return av.Equal(b)
	case *SetOp:
		return av.Equal(b)
	default:
		newInternal("SRAEqual: unhandled SRA variant %T", a)
		return false
	}
}

// Table is a leaf SRA node naming a base table, optionally given a local
// alias ("FROM orders o").
type Table struct {
	Name  string
	Alias string
}

func (t *Table) sraNode() {}

func (t *Table) String() string {
	if t.Alias == "" {
		return fmt.Sprintf("Table(%s)", t.Name)
	}
	return fmt.Sprintf("Table(%s, %s)", t.Name, t.Alias)
}

func (t *Table) Equal(other SRA) bool {
	o, ok := other.(*Table)
	return ok && t.Name == o.Name && t.Alias == o.Alias
}

// ProjectItem is one entry of a Project list: either a wildcard (Expr is a
// *Column with Name == "*") or a computed/plain expression with an
// optional alias.
type ProjectItem struct {
	Expr  Expression
	Alias string
}

func (i ProjectItem) String() string {
	if i.Alias == "" {
		return i.Expr.String()
	}
	return fmt.Sprintf("(%s, %s)", i.Expr.String(), i.Alias)
}

func (i ProjectItem) Equal(o ProjectItem) bool {
	return i.Alias == o.Alias && ExprEqual(i.Expr, o.Expr)
}

// LimitClause records a parsed "LIMIT n" clause. Set is false when the
// clause was absent; the zero value therefore means "no limit", not
// "limit 0".
type LimitClause struct {
	Set   bool
	Value int
}

func (l LimitClause) String() string {
	if !l.Set {
		return "-"
	}
	return fmt.Sprintf("%d", l.Value)
}

// Project is SQL's SELECT list applied to Child. Items preserves source
// order; that order determines output column order and is observable.
type Project struct {
	Items    []ProjectItem
	Distinct bool
	// GroupBy, Having, and Limit are preserved verbatim from the grammar:
	// the front-end records them but has no lowering rule for them (see
	// desugar.go); a later stage that implements GROUP BY/LIMIT
	// evaluation owns interpreting these fields.
	GroupBy []Expression
	Having  Expression
	Limit   LimitClause
	Child   SRA
}

func (p *Project) sraNode() {}

func (p *Project) String() string {
	items := make([]string, len(p.Items))
	for i, it := range p.Items {
		items[i] = it.String()
	}
	name := "Project"
	if p.Distinct {
		name = "ProjectDistinct"
	}
	extra := ""
	if len(p.GroupBy) > 0 {
		gs := make([]string, len(p.GroupBy))
		for i, g := range p.GroupBy {
			gs[i] = g.String()
		}
		extra += fmt.Sprintf(", groupBy=[%s]", strings.Join(gs, ", "))
	}
	if p.Having != nil {
		extra += ", having=" + p.Having.String()
	}
	if p.Limit.Set {
		extra += ", limit=" + p.Limit.String()
	}
	return fmt.Sprintf("%s([%s], %s%s)", name, strings.Join(items, ", "), p.Child.String(), extra)
}

func (p *Project) Equal(other SRA) bool {
	o, ok := other.(*Project)
	if !ok || p.Distinct != o.Distinct || p.Limit != o.Limit || len(p.Items) != len(o.Items) || len(p.GroupBy) != len(o.GroupBy) {
		return false
	}
	for i := range p.Items {
		if !p.Items[i].Equal(o.Items[i]) {
			return false
		}
	}
	for i := range p.GroupBy {
		if !ExprEqual(p.GroupBy[i], o.GroupBy[i]) {
			return false
		}
	}
	if !ExprEqual(p.Having, o.Having) {
		return false
	}
	return SRAEqual(p.Child, o.Child)
}

// Select is relational selection: SQL's WHERE clause.
type Select struct {
	Predicate Expression
	Child     SRA
}

func (s *Select) sraNode() {}

func (s *Select) String() string {
	return fmt.Sprintf("Select(%s, %s)", s.Predicate.String(), s.Child.String())
}

func (s *Select) Equal(other SRA) bool {
	o, ok := other.(*Select)
	return ok && ExprEqual(s.Predicate, o.Predicate) && SRAEqual(s.Child, o.Child)
}

// JoinKind is the closed set of join kinds the grammar recognizes.
type JoinKind int

const (
	JoinInner JoinKind = iota
	JoinCross
	JoinLeftOuter
	JoinRightOuter
	JoinFullOuter
	JoinNatural
)

func (k JoinKind) String() string {
	switch k {
	case JoinInner:
		return "inner"
	case JoinCross:
		return "cross"
	case JoinLeftOuter:
		return "leftOuter"
	case JoinRightOuter:
		return "rightOuter"
	case JoinFullOuter:
		return "fullOuter"
	case JoinNatural:
		return "natural"
	default:
		newInternal("unexpected join kind: %d", k)
		return ""
	}
}

// Join combines Left and Right. Condition is the ON predicate; it is
// mandatory for Inner/LeftOuter/RightOuter/FullOuter unless Using is set,
// and always nil for Cross/Natural. Using holds the column list of a
// "JOIN ... USING (a, b)" clause, interpreted as a natural join restricted
// to the named columns (see desugar.go). Operand order is observable for
// outer joins: swapping Left/Right for a left-outer join changes its
// meaning.
type Join struct {
	Kind      JoinKind
	Left      SRA
	Right     SRA
	Condition Expression
	Using     []string
}

func (j *Join) sraNode() {}

func (j *Join) String() string {
	cond := "-"
	if j.Condition != nil {
		cond = j.Condition.String()
	}
	if len(j.Using) > 0 {
		return fmt.Sprintf("Join(%s, %s, %s, using=[%s])", j.Kind, j.Left.String(), j.Right.String(), strings.Join(j.Using, ", "))
	}
	return fmt.Sprintf("Join(%s, %s, %s, %s)", j.Kind, j.Left.String(), j.Right.String(), cond)
}

func (j *Join) Equal(other SRA) bool {
	o, ok := other.(*Join)
	if !ok || j.Kind != o.Kind || len(j.Using) != len(o.Using) {
		return false
	}
	for i := range j.Using {
		if j.Using[i] != o.Using[i] {
			return false
		}
	}
	return SRAEqual(j.Left, o.Left) && SRAEqual(j.Right, o.Right) && ExprEqual(j.Condition, o.Condition)
}

// OrderDirection is asc or desc.
type OrderDirection int

const (
	Asc OrderDirection = iota
	Desc
)

func (d OrderDirection) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// OrderBy wraps Child with an ordering. Multiple orderings are expressed
// with chained OrderBy nodes; the outermost node is the primary sort key.
type OrderBy struct {
	Column    Expression
	Direction OrderDirection
	Child     SRA
}

func (o *OrderBy) sraNode() {}

func (o *OrderBy) String() string {
	return fmt.Sprintf("OrderBy(%s, %s, %s)", o.Column.String(), o.Direction, o.Child.String())
}

func (o *OrderBy) Equal(other SRA) bool {
	oo, ok := other.(*OrderBy)
	return ok && o.Direction == oo.Direction && ExprEqual(o.Column, oo.Column) && SRAEqual(o.Child, oo.Child)
}

// SetOpKind is the closed set of set operations.
type SetOpKind int

const (
	SetUnion SetOpKind = iota
	SetIntersect
	SetExcept
)

func (k SetOpKind) String() string {
	switch k {
	case SetUnion:
		return "union"
	case SetIntersect:
		return "intersect"
	case SetExcept:
		return "except"
	default:
		newInternal("unexpected set-op kind: %d", k)
		return ""
	}
}

// SetOp is a set operation (UNION/INTERSECT/EXCEPT) between two queries.
// Arity compatibility between Left and Right is not checked here; that is
// left to a later validation stage with access to both arms' resolved
// column lists.
type SetOp struct {
	Kind  SetOpKind
	Left  SRA
	Right SRA
}

func (s *SetOp) sraNode() {}

func (s *SetOp) String() string {
	return fmt.Sprintf("SetOp(%s, %s, %s)", s.Kind, s.Left.String(), s.Right.String())
}

func (s *SetOp) Equal(other SRA) bool {
	o, ok := other.(*SetOp)
	return ok && s.Kind == o.Kind && SRAEqual(s.Left, o.Left) && SRAEqual(s.Right, o.Right)
}
