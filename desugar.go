package chisql

import (
	"strings"

	"github.com/spf13/cast"
)

// anonymousColumnName is the attribute name assigned to a projected
// expression that has no alias and is not itself a bare column reference,
// matching the placeholder name mainstream SQL engines print for such
// columns.
const anonymousColumnName = "?column?"

// Desugar lowers a Sugared Relational Algebra tree into the minimal,
// five-operator Relational Algebra core plus the OuterJoin/RAOrderBy
// extensions. schema is consulted for every table reference and
// wildcard expansion; it is never mutated.
func Desugar(node SRA, schema SchemaOracle) (RA, error) {
	ctx := &desugarCtx{schema: schema}
	return ctx.desugar(node)
}

// desugarCtx carries the state a single Desugar call needs: the schema
// oracle and a monotonic counter used to synthesize deterministic names
// for unaliased computed projections. The counter is per-call, not a
// package-level global, so that desugaring the same query twice produces
// byte-identical output.
type desugarCtx struct {
	schema  SchemaOracle
	counter int
}

// syntheticAlias names an unaliased computed attribute. The name is a
// function of the expression's own printed form -- so the same
// expression synthesizes the same name every time -- with a numeric
// suffix appended only if that name collides with something already in
// scope.
func (c *desugarCtx) syntheticAlias(expr Expression, taken []*Column) string {
	base := sanitizeAliasBase(expr.String())
	if !nameTaken(base, taken) {
		return base
	}
	for {
		c.counter++
		candidate := base + "_" + cast.ToString(c.counter)
		if !nameTaken(candidate, taken) {
			return candidate
		}
	}
}

func nameTaken(name string, cols []*Column) bool {
	for _, c := range cols {
		if c.Name == name {
			return true
		}
	}
	return false
}

func sanitizeAliasBase(s string) string {
	r := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
	r = strings.Trim(r, "_")
	if r == "" {
		return "_col"
	}
	return "_" + r
}

func (c *desugarCtx) desugar(node SRA) (RA, error) {
	switch n := node.(type) {
	case *Table:
		return c.desugarTable(n)
	case *Join:
		return c.desugarJoin(n)
	case *Select:
		return c.desugarSelect(n)
	case *Project:
		return c.desugarProject(n)
	case *OrderBy:
		return c.desugarOrderBy(n)
	case *SetOp:
		return c.desugarSetOp(n)
	default:
		newInternal("desugar: unhandled SRA variant %T", node)
		return nil, nil
	}
}

func (c *desugarCtx) desugarTable(n *Table) (RA, error) {
	if !c.schema.Exists(n.Name) {
		return nil, newError(Schema, Locus{}, "unknown table %q", n.Name)
	}
	var ra RA = &RATable{Name: n.Name}
	if n.Alias != "" {
		ra = &RhoTable{Alias: n.Alias, Child: ra}
	}
	return ra, nil
}

// desugarSelect lowers a WHERE filter. Its predicate is passed through
// unresolved: scope resolution of a predicate's column references is
// deferred to a later semantic pass, not performed here (see
// desugarProject for the one place this front-end does resolve a column
// eagerly, and why).
func (c *desugarCtx) desugarSelect(n *Select) (RA, error) {
	child, err := c.desugar(n.Child)
	if err != nil {
		return nil, err
	}
	return &Sigma{Predicate: n.Predicate, Child: child}, nil
}

// desugarOrderBy lowers an ORDER BY clause. Like a WHERE predicate, its
// sort key is passed through unresolved.
func (c *desugarCtx) desugarOrderBy(n *OrderBy) (RA, error) {
	child, err := c.desugar(n.Child)
	if err != nil {
		return nil, err
	}
	return &RAOrderBy{Column: n.Column, Direction: n.Direction, Child: child}, nil
}

func (c *desugarCtx) desugarSetOp(n *SetOp) (RA, error) {
	left, err := c.desugar(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.desugar(n.Right)
	if err != nil {
		return nil, err
	}
	return &RASetOp{Kind: n.Kind, Left: left, Right: right}, nil
}

// desugarProject is where the real work happens: wildcard items are
// expanded against the child's scope, then every item is either passed
// through as a bare Pi attribute (a plain column reference with no
// alias) or lifted into a Rho that introduces a named attribute for it.
// No redundant inner Pi is ever introduced beneath the outer one.
func (c *desugarCtx) desugarProject(n *Project) (RA, error) {
	if len(n.GroupBy) > 0 || n.Having != nil {
		return nil, newError(Unsupported, Locus{}, "GROUP BY/HAVING has no desugaring rule: %s", n)
	}
	scope, err := c.scopeOf(n.Child)
	if err != nil {
		return nil, err
	}
	items, err := c.expandWildcards(n.Items, scope)
	if err != nil {
		return nil, err
	}
	child, err := c.desugar(n.Child)
	if err != nil {
		return nil, err
	}

	base := child
	attrs := make([]*Column, 0, len(items))
	taken := append([]*Column{}, scope...)
	for _, ei := range items {
		item := ei.Item
		if col, ok := item.Expr.(*Column); ok && item.Alias == "" {
			// A wildcard-expanded column is already known to come from
			// exactly one scope entry; re-running ambiguity resolution
			// against its bare name would misfire whenever two tables
			// happen to share a column name (e.g. an outer join with no
			// USING/NATURAL dedup), even though there is nothing
			// ambiguous about the expansion itself.
			if !ei.FromWildcard {
				if err := c.resolveColumn(col, scope); err != nil {
					return nil, err
				}
			}
			attrs = append(attrs, col)
			continue
		}
		target := item.Alias
		if target == "" {
			target = c.syntheticAlias(item.Expr, taken)
		}
		taken = append(taken, &Column{Name: target})
		base = &Rho{Source: base, Expr: item.Expr, Target: target}
		attrs = append(attrs, &Column{Name: target})
	}
	return &Pi{Attributes: attrs, Distinct: n.Distinct, Child: base}, nil
}

func (c *desugarCtx) desugarJoin(n *Join) (RA, error) {
	left, err := c.desugar(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.desugar(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Kind {
	case JoinCross:
		return &Cross{Left: left, Right: right}, nil

	case JoinNatural:
		pred, err := c.naturalJoinPredicate(n.Left, n.Right)
		if err != nil {
			return nil, err
		}
		if pred == nil {
			return &Cross{Left: left, Right: right}, nil
		}
		return &Sigma{Predicate: pred, Child: &Cross{Left: left, Right: right}}, nil

	default:
		var cond Expression
		if len(n.Using) > 0 {
			cond, err = c.usingJoinPredicate(n.Left, n.Right, n.Using)
			if err != nil {
				return nil, err
			}
		} else {
			if n.Condition == nil {
				return nil, newError(Syntactic, Locus{}, "join has neither ON nor USING")
			}
			// The ON condition is passed through unresolved, same as a
			// WHERE predicate: resolving its column references against
			// schema here would reject perfectly valid conditions whose
			// columns are never otherwise projected.
			cond = n.Condition
		}
		if n.Kind == JoinInner {
			return &Sigma{Predicate: cond, Child: &Cross{Left: left, Right: right}}, nil
		}
		return &OuterJoin{Side: outerSideFor(n.Kind), Condition: cond, Left: left, Right: right}, nil
	}
}

func outerSideFor(kind JoinKind) OuterSide {
	switch kind {
	case JoinLeftOuter:
		return LeftOuter
	case JoinRightOuter:
		return RightOuter
	case JoinFullOuter:
		return FullOuter
	default:
		newInternal("outerSideFor: not an outer join kind: %d", kind)
		return 0
	}
}

// naturalJoinPredicate builds the conjunction of equalities between every
// pair of identically-named columns on either side. A nil, nil result
// means there were no common columns at all, in which case a natural
// join degrades to an unconditional Cross, matching standard SQL.
func (c *desugarCtx) naturalJoinPredicate(left, right SRA) (Expression, error) {
	leftScope, err := c.scopeOf(left)
	if err != nil {
		return nil, err
	}
	rightScope, err := c.scopeOf(right)
	if err != nil {
		return nil, err
	}
	var eqs []Expression
	for _, lc := range leftScope {
		for _, rc := range rightScope {
			if lc.Name == rc.Name {
				eqs = append(eqs, &Binary{Op: OpEq, Left: lc, Right: rc})
			}
		}
	}
	if len(eqs) == 0 {
		return nil, nil
	}
	return andChain(eqs), nil
}

// usingJoinPredicate builds the conjunction of equalities named
// explicitly by a "JOIN ... USING (a, b)" clause, resolving each name
// against both sides' scopes.
func (c *desugarCtx) usingJoinPredicate(left, right SRA, cols []string) (Expression, error) {
	leftScope, err := c.scopeOf(left)
	if err != nil {
		return nil, err
	}
	rightScope, err := c.scopeOf(right)
	if err != nil {
		return nil, err
	}
	var eqs []Expression
	for _, name := range cols {
		lc, ok := findByName(leftScope, name)
		if !ok {
			return nil, newError(Schema, Locus{}, "USING column %q not found on the left side of the join", name)
		}
		rc, ok := findByName(rightScope, name)
		if !ok {
			return nil, newError(Schema, Locus{}, "USING column %q not found on the right side of the join", name)
		}
		eqs = append(eqs, &Binary{Op: OpEq, Left: lc, Right: rc})
	}
	return andChain(eqs), nil
}

func findByName(scope []*Column, name string) (*Column, bool) {
	for _, c := range scope {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

func andChain(exprs []Expression) Expression {
	result := exprs[0]
	for _, e := range exprs[1:] {
		result = &Binary{Op: OpAnd, Left: result, Right: e}
	}
	return result
}

// ---- Scope computation ----
//
// scopeOf answers "what qualified columns does this SRA subtree expose",
// the information both wildcard expansion and ambiguity/unknown-column
// detection are built on. It walks the *sugared* tree, before
// desugaring, since that is where aliases and projection lists still
// carry their source names.

func (c *desugarCtx) scopeOf(node SRA) ([]*Column, error) {
	switch n := node.(type) {
	case *Table:
		cols, ok := c.schema.ColumnsOf(n.Name)
		if !ok {
			return nil, newError(Schema, Locus{}, "unknown table %q", n.Name)
		}
		qualifier := n.Name
		if n.Alias != "" {
			qualifier = n.Alias
		}
		out := make([]*Column, len(cols))
		for i, name := range cols {
			out[i] = &Column{Qualifier: qualifier, Name: name}
		}
		return out, nil

	case *Join:
		left, err := c.scopeOf(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.scopeOf(n.Right)
		if err != nil {
			return nil, err
		}
		if n.Kind == JoinNatural {
			right = dedupByName(left, right)
		} else if len(n.Using) > 0 {
			named := make([]*Column, len(n.Using))
			for i, u := range n.Using {
				named[i] = &Column{Name: u}
			}
			right = dedupByName(named, right)
		}
		out := make([]*Column, 0, len(left)+len(right))
		out = append(out, left...)
		out = append(out, right...)
		return out, nil

	case *Project:
		return c.projectScope(n)

	case *Select:
		return c.scopeOf(n.Child)

	case *OrderBy:
		return c.scopeOf(n.Child)

	case *SetOp:
		// A set operation's two arms are required to share arity and,
		// by convention, the left arm's column names name the result.
		return c.scopeOf(n.Left)

	default:
		newInternal("scopeOf: unhandled SRA variant %T", node)
		return nil, nil
	}
}

func (c *desugarCtx) projectScope(n *Project) ([]*Column, error) {
	childScope, err := c.scopeOf(n.Child)
	if err != nil {
		return nil, err
	}
	items, err := c.expandWildcards(n.Items, childScope)
	if err != nil {
		return nil, err
	}
	out := make([]*Column, len(items))
	for i, ei := range items {
		name := ei.Item.Alias
		if name == "" {
			if col, ok := ei.Item.Expr.(*Column); ok {
				name = col.Name
			} else {
				name = anonymousColumnName
			}
		}
		out[i] = &Column{Name: name}
	}
	return out, nil
}

func dedupByName(left, right []*Column) []*Column {
	var out []*Column
	for _, r := range right {
		dup := false
		for _, l := range left {
			if l.Name == r.Name {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, r)
		}
	}
	return out
}

// expandedItem pairs a ProjectItem with whether it was synthesized by
// wildcard expansion, so later stages can tell a "*"-derived bare column
// (already known to come from exactly one scope entry) apart from a
// column the user wrote out by hand (which still needs ambiguity
// resolution against scope).
type expandedItem struct {
	Item         ProjectItem
	FromWildcard bool
}

// expandWildcards replaces every "*" or "q.*" item with one item per
// matching column in scope, in scope order. Plain items pass through
// unchanged.
func (c *desugarCtx) expandWildcards(items []ProjectItem, scope []*Column) ([]expandedItem, error) {
	out := make([]expandedItem, 0, len(items))
	for _, item := range items {
		col, ok := item.Expr.(*Column)
		if !ok || !col.IsWildcard() {
			out = append(out, expandedItem{Item: item})
			continue
		}
		matched := false
		for _, s := range scope {
			if col.Qualifier != "" && s.Qualifier != col.Qualifier {
				continue
			}
			matched = true
			// Wildcard-expanded attributes are emitted bare: a "*" or
			// "t.*" stands for output column names, not for qualified
			// references back into the source relation -- see the
			// README's wildcard/natural-join examples, all of which
			// print unqualified attribute lists even when the source
			// columns were qualified in scope.
			out = append(out, expandedItem{
				Item:         ProjectItem{Expr: &Column{Name: s.Name}},
				FromWildcard: true,
			})
		}
		if !matched {
			if col.Qualifier != "" {
				return nil, newError(Schema, Locus{}, "unknown table or alias %q in wildcard projection", col.Qualifier)
			}
			return nil, newError(Schema, Locus{}, "wildcard projection expands to no columns")
		}
	}
	return out, nil
}

// ---- Expression validation ----
//
// resolveColumn is the only place this front-end resolves a column
// reference against schema before a later semantic pass would: a bare
// projected column (e.g. "SELECT a FROM Foo f, Foo g") is the one case
// where ambiguity has to be caught immediately, since an ambiguous
// projected attribute has no name to give its output column at all.
// Everything else -- WHERE predicates, ON conditions, ORDER BY keys,
// computed projection expressions -- is passed through unresolved.

func (c *desugarCtx) resolveColumn(col *Column, scope []*Column) error {
	if col.Qualifier != "" {
		for _, s := range scope {
			if s.Qualifier == col.Qualifier && s.Name == col.Name {
				return nil
			}
		}
		return newError(Schema, Locus{}, "unknown column %s", col)
	}
	matches := 0
	for _, s := range scope {
		if s.Name == col.Name {
			matches++
		}
	}
	switch {
	case matches == 0:
		return newError(Schema, Locus{}, "unknown column %q", col.Name)
	case matches > 1:
		return newError(Ambiguity, Locus{}, "ambiguous column reference %q", col.Name)
	default:
		return nil
	}
}
