package chisql

import (
	"fmt"
	"strings"
)

// RA is a node in the core Relational Algebra tree: the minimal target of
// desugaring. Five pure operators -- Pi, Sigma, Cross, Rho, RhoTable --
// plus set operations, plus an OuterJoin extension and an OrderBy
// decoration, since neither outer joins nor ordering have a native
// operator in the five-operator core.
//
// Variants: *RATable, *Pi, *Sigma, *Cross, *Rho, *RhoTable, *RASetOp,
// *OuterJoin, *RAOrderBy.
type RA interface {
	String() string
	raNode()
}

// RAEqual reports whether two RA trees are structurally equal.
func RAEqual(a, b RA) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case *RATable:
		return av.Equal(b)
	case *Pi:
		return av.Equal(b)
	case *Sigma:
		return av.Equal(b)
	case *Cross:
		return av.Equal(b)
	case *Rho:
		return av.Equal(b)
	case *RhoTable:
		return av.Equal(b)
	case *RASetOp:
		return av.Equal(b)
	case *OuterJoin:
		return av.Equal(b)
	case *RAOrderBy:
		return av.Equal(b)
	default:
		newInternal("RAEqual: unhandled RA variant %T", a)
		return false
	}
}

// RATable is a leaf node naming a base relation.
type RATable struct {
	Name string
}

func (t *RATable) raNode() {}
func (t *RATable) String() string {
	return fmt.Sprintf("RATable(%s)", t.Name)
}
func (t *RATable) Equal(other RA) bool {
	o, ok := other.(*RATable)
	return ok && t.Name == o.Name
}

// Pi is relational projection. Attributes is an ordered list of column
// references -- qualified or bare identifiers, never expressions; any
// computation needed to produce an attribute is introduced by a Rho
// beneath this Pi (see desugar.go).
type Pi struct {
	Attributes []*Column
	Distinct   bool
	Child      RA
}

func (p *Pi) raNode() {}
func (p *Pi) String() string {
	attrs := make([]string, len(p.Attributes))
	for i, a := range p.Attributes {
		attrs[i] = a.String()
	}
	name := "Pi"
	if p.Distinct {
		name = "PiDistinct"
	}
	return fmt.Sprintf("%s([%s], %s)", name, strings.Join(attrs, ", "), p.Child.String())
}
func (p *Pi) Equal(other RA) bool {
	o, ok := other.(*Pi)
	if !ok || p.Distinct != o.Distinct || len(p.Attributes) != len(o.Attributes) {
		return false
	}
	for i := range p.Attributes {
		if !p.Attributes[i].Equal(o.Attributes[i]) {
			return false
		}
	}
	return RAEqual(p.Child, o.Child)
}

// Sigma is relational selection.
type Sigma struct {
	Predicate Expression
	Child     RA
}

func (s *Sigma) raNode() {}
func (s *Sigma) String() string {
	return fmt.Sprintf("Sigma(%s, %s)", s.Predicate.String(), s.Child.String())
}
func (s *Sigma) Equal(other RA) bool {
	o, ok := other.(*Sigma)
	return ok && ExprEqual(s.Predicate, o.Predicate) && RAEqual(s.Child, o.Child)
}

// Cross is the Cartesian product.
type Cross struct {
	Left  RA
	Right RA
}

func (c *Cross) raNode() {}
func (c *Cross) String() string {
	return fmt.Sprintf("Cross(%s, %s)", c.Left.String(), c.Right.String())
}
func (c *Cross) Equal(other RA) bool {
	o, ok := other.(*Cross)
	return ok && RAEqual(c.Left, o.Left) && RAEqual(c.Right, o.Right)
}

// Rho renames one computed expression to a target attribute name,
// introducing a new attribute for the Pi above it.
type Rho struct {
	Source RA
	Expr   Expression
	Target string
}

// the constructor order in String/struct differs deliberately from field
// declaration order above so Rho reads "Rho(expr, target, child)",
// matching the README: "Rho(Add(x,y), z, Pi(...))".
func (r *Rho) raNode() {}
func (r *Rho) String() string {
	return fmt.Sprintf("Rho(%s, %s, %s)", r.Expr.String(), r.Target, r.Source.String())
}
func (r *Rho) Equal(other RA) bool {
	o, ok := other.(*Rho)
	return ok && r.Target == o.Target && ExprEqual(r.Expr, o.Expr) && RAEqual(r.Source, o.Source)
}

// RhoTable renames the relation as a whole (a table alias).
type RhoTable struct {
	Alias string
	Child RA
}

func (r *RhoTable) raNode() {}
func (r *RhoTable) String() string {
	return fmt.Sprintf("RhoTable(%s, %s)", r.Alias, r.Child.String())
}
func (r *RhoTable) Equal(other RA) bool {
	o, ok := other.(*RhoTable)
	return ok && r.Alias == o.Alias && RAEqual(r.Child, o.Child)
}

// RASetOp is a set operation lowered transparently from SRA's SetOp.
type RASetOp struct {
	Kind  SetOpKind
	Left  RA
	Right RA
}

func (s *RASetOp) raNode() {}
func (s *RASetOp) String() string {
	return fmt.Sprintf("RASetOp(%s, %s, %s)", s.Kind, s.Left.String(), s.Right.String())
}
func (s *RASetOp) Equal(other RA) bool {
	o, ok := other.(*RASetOp)
	return ok && s.Kind == o.Kind && RAEqual(s.Left, o.Left) && RAEqual(s.Right, o.Right)
}

// OuterSide is the side of an OuterJoin that is preserved under
// null-padding.
type OuterSide int

const (
	LeftOuter OuterSide = iota
	RightOuter
	FullOuter
)

func (s OuterSide) String() string {
	switch s {
	case LeftOuter:
		return "leftOuter"
	case RightOuter:
		return "rightOuter"
	case FullOuter:
		return "fullOuter"
	default:
		newInternal("unexpected outer side: %d", s)
		return ""
	}
}

// OuterJoin is a deliberate, minimal extension of the five-operator RA
// core: an outer join preserves unmatched rows from one or both sides,
// which a plain Sigma-over-Cross cannot express. It is not itself one of
// the five pure operators and the printer labels it distinctly so it is
// never mistaken for a plain Cross.
type OuterJoin struct {
	Side      OuterSide
	Condition Expression
	Left      RA
	Right     RA
}

func (j *OuterJoin) raNode() {}
func (j *OuterJoin) String() string {
	cond := "-"
	if j.Condition != nil {
		cond = j.Condition.String()
	}
	return fmt.Sprintf("OuterJoin(%s, %s, %s, %s)", j.Side, cond, j.Left.String(), j.Right.String())
}
func (j *OuterJoin) Equal(other RA) bool {
	o, ok := other.(*OuterJoin)
	return ok && j.Side == o.Side && ExprEqual(j.Condition, o.Condition) && RAEqual(j.Left, o.Left) && RAEqual(j.Right, o.Right)
}

// RAOrderBy decorates an RA subtree with an ordering. Like OuterJoin, it
// exists because the five-operator core has no native operator for it;
// chained RAOrderBy nodes carry multiple sort keys, outermost first.
type RAOrderBy struct {
	Column    Expression
	Direction OrderDirection
	Child     RA
}

func (o *RAOrderBy) raNode() {}
func (o *RAOrderBy) String() string {
	return fmt.Sprintf("OrderBy(%s, %s, %s)", o.Column.String(), o.Direction, o.Child.String())
}
func (o *RAOrderBy) Equal(other RA) bool {
	oo, ok := other.(*RAOrderBy)
	return ok && o.Direction == oo.Direction && ExprEqual(o.Column, oo.Column) && RAEqual(o.Child, oo.Child)
}
