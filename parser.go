package chisql

import (
	"strconv"
	"strings"
)

// Parse parses SQL source text into an ordered list of statements,
// recovering at ';' boundaries so that one bad statement does not mask
// the rest of a batch. It always returns every statement it managed to
// parse, together with every error it hit along the way; a caller that
// wants "fail on first error" behavior need only check len(errs) > 0.
func Parse(src string) (Program, []error) {
	lx := newLexer(src)
	var prog Program
	var errs []error
	for {
		for lx.eat(tOp, ";") {
		}
		if lx.peek().t == tEnd {
			break
		}
		stmt, err := parseStatement(lx)
		if err != nil {
			errs = append(errs, err)
			recoverToSemicolon(lx)
			continue
		}
		prog = append(prog, stmt)
		if lx.peek().t != tEnd && !lx.eat(tOp, ";") {
			errs = append(errs, newError(Syntactic, lx.peek().locus, "expected ';', got %s", lx.peek()))
			recoverToSemicolon(lx)
		}
	}
	return prog, errs
}

func recoverToSemicolon(lx *lexer) {
	for {
		t := lx.peek()
		if t.t == tEnd {
			return
		}
		lx.next()
		if t.t == tOp && t.val == ";" {
			return
		}
	}
}

func parseStatement(lx *lexer) (Statement, error) {
	switch {
	case lx.peek().t == tKeyword && lx.peek().val == "SELECT":
		sra, err := readQuery(lx)
		if err != nil {
			return nil, err
		}
		return &Query{SRA: sra}, nil
	case lx.peek().t == tKeyword && lx.peek().val == "CREATE":
		return readCreateTable(lx)
	case lx.peek().t == tKeyword && lx.peek().val == "INSERT":
		return readInsert(lx)
	case lx.peek().t == tKeyword && lx.peek().val == "DELETE":
		return readDelete(lx)
	default:
		return nil, newError(Syntactic, lx.peek().locus, "expected a statement, got %s", lx.peek())
	}
}

// ---- Query grammar ----

// readQuery parses a top-level query: a chain of SELECTs combined by the
// left-associative set operators UNION/INTERSECT/EXCEPT.
func readQuery(lx *lexer) (SRA, error) {
	left, err := readSelectCore(lx)
	if err != nil {
		return nil, err
	}
	for {
		var kind SetOpKind
		switch {
		case lx.eat(tKeyword, "UNION"):
			kind = SetUnion
		case lx.eat(tKeyword, "INTERSECT"):
			kind = SetIntersect
		case lx.eat(tKeyword, "EXCEPT"):
			kind = SetExcept
		default:
			return left, nil
		}
		right, err := readSelectCore(lx)
		if err != nil {
			return nil, err
		}
		left = &SetOp{Kind: kind, Left: left, Right: right}
	}
}

func readSelectCore(lx *lexer) (SRA, error) {
	loc := lx.peek().locus
	if !lx.eat(tKeyword, "SELECT") {
		return nil, newError(Syntactic, loc, "SELECT expected, got %s", lx.peek())
	}
	distinct := lx.eat(tKeyword, "DISTINCT")

	var items []ProjectItem
	for {
		item, err := readProjectItem(lx)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !lx.eat(tOp, ",") {
			break
		}
	}

	if !lx.eat(tKeyword, "FROM") {
		return nil, newError(Syntactic, lx.peek().locus, "FROM expected, got %s", lx.peek())
	}
	from, err := readFrom(lx)
	if err != nil {
		return nil, err
	}

	// WHERE is parsed here but applied outside the Project built below, so
	// its predicate may refer to the SELECT list's own aliases, e.g.
	// "SELECT a AS x, b AS y FROM t WHERE x != y".
	var wherePred Expression
	hasWhere := false
	if lx.eat(tKeyword, "WHERE") {
		pred, err := readOrExpr(lx)
		if err != nil {
			return nil, err
		}
		wherePred = pred
		hasWhere = true
	}

	var groupBy []Expression
	if lx.eat(tKeyword, "GROUP") {
		if !lx.eat(tKeyword, "BY") {
			return nil, newError(Syntactic, lx.peek().locus, "BY expected after GROUP, got %s", lx.peek())
		}
		for {
			e, err := readOrExpr(lx)
			if err != nil {
				return nil, err
			}
			groupBy = append(groupBy, e)
			if !lx.eat(tOp, ",") {
				break
			}
		}
	}

	var having Expression
	if lx.eat(tKeyword, "HAVING") {
		having, err = readOrExpr(lx)
		if err != nil {
			return nil, err
		}
	}

	project := &Project{
		Items:    items,
		Distinct: distinct,
		GroupBy:  groupBy,
		Having:   having,
		Child:    from,
	}

	var result SRA = project
	if hasWhere {
		result = &Select{Predicate: wherePred, Child: project}
	}
	if lx.eat(tKeyword, "ORDER") {
		if !lx.eat(tKeyword, "BY") {
			return nil, newError(Syntactic, lx.peek().locus, "BY expected after ORDER, got %s", lx.peek())
		}
		var orders []*OrderBy
		for {
			col, err := readOrExpr(lx)
			if err != nil {
				return nil, err
			}
			dir := Asc
			switch {
			case lx.eat(tKeyword, "DESC"):
				dir = Desc
			case lx.eat(tKeyword, "ASC"):
			}
			orders = append(orders, &OrderBy{Column: col, Direction: dir})
			if !lx.eat(tOp, ",") {
				break
			}
		}
		for i := len(orders) - 1; i >= 0; i-- {
			orders[i].Child = result
			result = orders[i]
		}
	}

	if lx.eat(tKeyword, "LIMIT") {
		n, err := lx.next()
		if err != nil {
			return nil, err
		}
		if n.t != tNumber {
			return nil, newError(Syntactic, n.locus, "expected a number after LIMIT, got %s", n)
		}
		val, convErr := strconv.Atoi(n.val)
		if convErr != nil {
			return nil, newError(Syntactic, n.locus, "malformed LIMIT value: %s", n.val)
		}
		project.Limit = LimitClause{Set: true, Value: val}
	}

	return result, nil
}

func readProjectItem(lx *lexer) (ProjectItem, error) {
	if w, ok, err := tryQualifiedWildcard(lx); err != nil {
		return ProjectItem{}, err
	} else if ok {
		return ProjectItem{Expr: w}, nil
	}
	if lx.eat(tOp, "*") {
		return ProjectItem{Expr: &Column{Name: wildcardName}}, nil
	}
	expr, err := readOrExpr(lx)
	if err != nil {
		return ProjectItem{}, err
	}
	if lx.eat(tKeyword, "AS") {
		alias, err := lx.next()
		if err != nil {
			return ProjectItem{}, err
		}
		if alias.t != tIdentifier {
			return ProjectItem{}, newError(Syntactic, alias.locus, "expected identifier after AS, got %s", alias)
		}
		return ProjectItem{Expr: expr, Alias: alias.val}, nil
	}
	return ProjectItem{Expr: expr}, nil
}

// tryQualifiedWildcard looks ahead for the "ident . *" pattern ("t.*") and,
// if found, consumes it and returns the wildcard Column. Otherwise it
// restores every token it peeked at and returns ok=false.
func tryQualifiedWildcard(lx *lexer) (*Column, bool, error) {
	t1, err := lx.next()
	if err != nil {
		return nil, false, err
	}
	if t1.t != tIdentifier {
		lx.unget(t1)
		return nil, false, nil
	}
	t2, err := lx.next()
	if err != nil {
		lx.unget(t1)
		return nil, false, nil
	}
	if !(t2.t == tOp && t2.val == ".") {
		lx.unget(t2)
		lx.unget(t1)
		return nil, false, nil
	}
	t3, err := lx.next()
	if err == nil && t3.t == tOp && t3.val == "*" {
		return &Column{Qualifier: t1.val, Name: wildcardName}, true, nil
	}
	lx.unget(t3)
	lx.unget(t2)
	lx.unget(t1)
	return nil, false, nil
}

// ---- FROM / JOIN grammar ----

func readFrom(lx *lexer) (SRA, error) {
	left, err := readTableFactor(lx)
	if err != nil {
		return nil, err
	}
	for {
		if lx.eat(tOp, ",") {
			right, err := readTableFactor(lx)
			if err != nil {
				return nil, err
			}
			left = &Join{Kind: JoinCross, Left: left, Right: right}
			continue
		}
		kind, ok, err := tryJoinKeyword(lx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return left, nil
		}
		right, err := readTableFactor(lx)
		if err != nil {
			return nil, err
		}
		join := &Join{Kind: kind, Left: left, Right: right}
		switch kind {
		case JoinCross, JoinNatural:
			// No condition: always a full cross/natural combination.
		default:
			switch {
			case lx.eat(tKeyword, "ON"):
				join.Condition, err = readOrExpr(lx)
				if err != nil {
					return nil, err
				}
			case lx.eat(tKeyword, "USING"):
				join.Using, err = readUsingList(lx)
				if err != nil {
					return nil, err
				}
			default:
				return nil, newError(Syntactic, lx.peek().locus, "expected ON or USING after JOIN, got %s", lx.peek())
			}
		}
		left = join
	}
}

func tryJoinKeyword(lx *lexer) (JoinKind, bool, error) {
	switch {
	case lx.eat(tKeyword, "JOIN"):
		return JoinInner, true, nil
	case lx.eat(tKeyword, "INNER"):
		if !lx.eat(tKeyword, "JOIN") {
			return 0, false, newError(Syntactic, lx.peek().locus, "JOIN expected after INNER, got %s", lx.peek())
		}
		return JoinInner, true, nil
	case lx.eat(tKeyword, "CROSS"):
		if !lx.eat(tKeyword, "JOIN") {
			return 0, false, newError(Syntactic, lx.peek().locus, "JOIN expected after CROSS, got %s", lx.peek())
		}
		return JoinCross, true, nil
	case lx.eat(tKeyword, "NATURAL"):
		if !lx.eat(tKeyword, "JOIN") {
			return 0, false, newError(Syntactic, lx.peek().locus, "JOIN expected after NATURAL, got %s", lx.peek())
		}
		return JoinNatural, true, nil
	case lx.eat(tKeyword, "LEFT"):
		lx.eat(tKeyword, "OUTER")
		if !lx.eat(tKeyword, "JOIN") {
			return 0, false, newError(Syntactic, lx.peek().locus, "JOIN expected after LEFT, got %s", lx.peek())
		}
		return JoinLeftOuter, true, nil
	case lx.eat(tKeyword, "RIGHT"):
		lx.eat(tKeyword, "OUTER")
		if !lx.eat(tKeyword, "JOIN") {
			return 0, false, newError(Syntactic, lx.peek().locus, "JOIN expected after RIGHT, got %s", lx.peek())
		}
		return JoinRightOuter, true, nil
	case lx.eat(tKeyword, "FULL"):
		lx.eat(tKeyword, "OUTER")
		if !lx.eat(tKeyword, "JOIN") {
			return 0, false, newError(Syntactic, lx.peek().locus, "JOIN expected after FULL, got %s", lx.peek())
		}
		return JoinFullOuter, true, nil
	default:
		return 0, false, nil
	}
}

func readUsingList(lx *lexer) ([]string, error) {
	if !lx.eat(tOp, "(") {
		return nil, newError(Syntactic, lx.peek().locus, "( expected after USING, got %s", lx.peek())
	}
	var cols []string
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		if tok.t != tIdentifier {
			return nil, newError(Syntactic, tok.locus, "expected identifier in USING list, got %s", tok)
		}
		cols = append(cols, tok.val)
		if !lx.eat(tOp, ",") {
			break
		}
	}
	if !lx.eat(tOp, ")") {
		return nil, newError(Syntactic, lx.peek().locus, ") expected, got %s", lx.peek())
	}
	return cols, nil
}

func readTableFactor(lx *lexer) (SRA, error) {
	tok, err := lx.next()
	if err != nil {
		return nil, err
	}
	if tok.t != tIdentifier {
		return nil, newError(Syntactic, tok.locus, "expected a table name, got %s", tok)
	}
	alias := ""
	switch {
	case lx.eat(tKeyword, "AS"):
		aliasTok, err := lx.next()
		if err != nil {
			return nil, err
		}
		if aliasTok.t != tIdentifier {
			return nil, newError(Syntactic, aliasTok.locus, "expected identifier after AS, got %s", aliasTok)
		}
		alias = aliasTok.val
	case lx.peek().t == tIdentifier:
		aliasTok, _ := lx.next()
		alias = aliasTok.val
	}
	return &Table{Name: tok.val, Alias: alias}, nil
}

// ---- Expression grammar ----
//
// Precedence, loosest to tightest: OR, AND, NOT, comparison (non-assoc),
// + -, * /, unary minus, primary.

func readOrExpr(lx *lexer) (Expression, error) {
	e, err := readAndExpr(lx)
	if err != nil {
		return nil, err
	}
	for lx.eat(tKeyword, "OR") {
		e2, err := readAndExpr(lx)
		if err != nil {
			return nil, err
		}
		e = &Binary{Op: OpOr, Left: e, Right: e2}
	}
	return e, nil
}

func readAndExpr(lx *lexer) (Expression, error) {
	e, err := readNotExpr(lx)
	if err != nil {
		return nil, err
	}
	for lx.eat(tKeyword, "AND") {
		e2, err := readNotExpr(lx)
		if err != nil {
			return nil, err
		}
		e = &Binary{Op: OpAnd, Left: e, Right: e2}
	}
	return e, nil
}

func readNotExpr(lx *lexer) (Expression, error) {
	if lx.eat(tKeyword, "NOT") {
		inner, err := readNotExpr(lx)
		if err != nil {
			return nil, err
		}
		return &Unary{Op: OpNot, Inner: inner}, nil
	}
	return readComparison(lx)
}

var compareOps = map[string]BinaryOp{
	"=": OpEq, "<": OpLt, ">": OpGt, "<=": OpLe, ">=": OpGe, "<>": OpNe, "!=": OpNe,
}

// readComparison parses a single, non-associative comparison (or an IN
// subquery test, which binds at the same level): chaining two comparisons
// without an intervening AND/OR/NOT is rejected one level up, where the
// leftover comparison operator fails to match anything expected there.
func readComparison(lx *lexer) (Expression, error) {
	left, err := readAdditive(lx)
	if err != nil {
		return nil, err
	}
	if lx.eat(tKeyword, "IN") {
		if !lx.eat(tOp, "(") {
			return nil, newError(Syntactic, lx.peek().locus, "( expected after IN, got %s", lx.peek())
		}
		sub, err := readQuery(lx)
		if err != nil {
			return nil, err
		}
		if !lx.eat(tOp, ")") {
			return nil, newError(Syntactic, lx.peek().locus, ") expected, got %s", lx.peek())
		}
		return &InSubquery{Expr: left, Query: sub}, nil
	}
	p := lx.peek()
	if p.t == tOp {
		if op, ok := compareOps[p.val]; ok {
			lx.next()
			right, err := readAdditive(lx)
			if err != nil {
				return nil, err
			}
			return &Binary{Op: op, Left: left, Right: right}, nil
		}
	}
	return left, nil
}

func readAdditive(lx *lexer) (Expression, error) {
	e, err := readMultiplicative(lx)
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case lx.eat(tOp, "+"):
			e2, err := readMultiplicative(lx)
			if err != nil {
				return nil, err
			}
			e = &Binary{Op: OpAdd, Left: e, Right: e2}
		case lx.eat(tOp, "-"):
			e2, err := readMultiplicative(lx)
			if err != nil {
				return nil, err
			}
			e = &Binary{Op: OpSub, Left: e, Right: e2}
		default:
			return e, nil
		}
	}
}

func readMultiplicative(lx *lexer) (Expression, error) {
	e, err := readUnary(lx)
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case lx.eat(tOp, "*"):
			e2, err := readUnary(lx)
			if err != nil {
				return nil, err
			}
			e = &Binary{Op: OpMul, Left: e, Right: e2}
		case lx.eat(tOp, "/"):
			e2, err := readUnary(lx)
			if err != nil {
				return nil, err
			}
			e = &Binary{Op: OpDiv, Left: e, Right: e2}
		default:
			return e, nil
		}
	}
}

func readUnary(lx *lexer) (Expression, error) {
	if lx.eat(tOp, "-") {
		inner, err := readUnary(lx)
		if err != nil {
			return nil, err
		}
		return &Unary{Op: OpNeg, Inner: inner}, nil
	}
	return readPrimary(lx)
}

func readPrimary(lx *lexer) (Expression, error) {
	p := lx.peek()
	switch {
	case p.t == tString:
		lx.next()
		return stringLiteral(p.val), nil
	case p.t == tNumber:
		lx.next()
		return numericLiteral(p.val)
	case p.t == tKeyword && p.val == "NULL":
		lx.next()
		return nullLiteral(), nil
	case p.t == tOp && p.val == "(":
		lx.next()
		e, err := readOrExpr(lx)
		if err != nil {
			return nil, err
		}
		if !lx.eat(tOp, ")") {
			return nil, newError(Syntactic, lx.peek().locus, ") expected, got %s", lx.peek())
		}
		return e, nil
	}

	name1, err := lx.next()
	if err != nil {
		return nil, err
	}
	if name1.t != tIdentifier {
		return nil, newError(Syntactic, name1.locus, "expected an expression, got %s", name1)
	}

	if fn, ok := aggFuncFromName(strings.ToUpper(name1.val)); ok && lx.peek().t == tOp && lx.peek().val == "(" {
		lx.next()
		var inner Expression
		if lx.eat(tOp, "*") {
			inner = &Column{Name: wildcardName}
		} else {
			inner, err = readOrExpr(lx)
			if err != nil {
				return nil, err
			}
			if _, nested := inner.(*Aggregate); nested {
				newInternal("aggregate %s nests another aggregate: %s", fn, inner)
			}
		}
		if !lx.eat(tOp, ")") {
			return nil, newError(Syntactic, lx.peek().locus, ") expected, got %s", lx.peek())
		}
		return &Aggregate{Fn: fn, Inner: inner}, nil
	}

	if lx.eat(tOp, ".") {
		name2, err := lx.next()
		if err != nil {
			return nil, err
		}
		if name2.t != tIdentifier {
			return nil, newError(Syntactic, name2.locus, "expected identifier after '.', got %s", name2)
		}
		return &Column{Qualifier: name1.val, Name: name2.val}, nil
	}
	return &Column{Name: name1.val}, nil
}

// ---- DDL grammar ----

func readCreateTable(lx *lexer) (*CreateTable, error) {
	lx.next() // CREATE
	if !lx.eat(tKeyword, "TABLE") {
		return nil, newError(Syntactic, lx.peek().locus, "TABLE expected after CREATE, got %s", lx.peek())
	}
	nameTok, err := lx.next()
	if err != nil {
		return nil, err
	}
	if nameTok.t != tIdentifier {
		return nil, newError(Syntactic, nameTok.locus, "expected a table name, got %s", nameTok)
	}
	if !lx.eat(tOp, "(") {
		return nil, newError(Syntactic, lx.peek().locus, "( expected, got %s", lx.peek())
	}
	var columns []ColumnDecl
	var keys []Constraint
	for {
		if isTableLevelKeyStart(lx) {
			k, err := readTableLevelKey(lx)
			if err != nil {
				return nil, err
			}
			keys = append(keys, k)
		} else {
			c, err := readColumnDecl(lx)
			if err != nil {
				return nil, err
			}
			columns = append(columns, c)
		}
		if !lx.eat(tOp, ",") {
			break
		}
	}
	if !lx.eat(tOp, ")") {
		return nil, newError(Syntactic, lx.peek().locus, ") expected, got %s", lx.peek())
	}
	return &CreateTable{Name: nameTok.val, Columns: columns, Keys: keys}, nil
}

func isTableLevelKeyStart(lx *lexer) bool {
	p := lx.peek()
	if p.t != tKeyword {
		return false
	}
	switch p.val {
	case "PRIMARY", "FOREIGN", "UNIQUE", "CHECK":
		return true
	default:
		return false
	}
}

func readTableLevelKey(lx *lexer) (Constraint, error) {
	switch {
	case lx.eat(tKeyword, "PRIMARY"):
		if !lx.eat(tKeyword, "KEY") {
			return Constraint{}, newError(Syntactic, lx.peek().locus, "KEY expected after PRIMARY, got %s", lx.peek())
		}
		cols, err := readColumnList(lx)
		if err != nil {
			return Constraint{}, err
		}
		return Constraint{Kind: ConstraintPrimaryKey, Columns: cols}, nil
	case lx.eat(tKeyword, "FOREIGN"):
		if !lx.eat(tKeyword, "KEY") {
			return Constraint{}, newError(Syntactic, lx.peek().locus, "KEY expected after FOREIGN, got %s", lx.peek())
		}
		cols, err := readColumnList(lx)
		if err != nil {
			return Constraint{}, err
		}
		if !lx.eat(tKeyword, "REFERENCES") {
			return Constraint{}, newError(Syntactic, lx.peek().locus, "REFERENCES expected, got %s", lx.peek())
		}
		refTable, refCol, err := readReference(lx)
		if err != nil {
			return Constraint{}, err
		}
		return Constraint{Kind: ConstraintForeignKey, Columns: cols, RefTable: refTable, RefColumn: refCol}, nil
	case lx.eat(tKeyword, "UNIQUE"):
		cols, err := readColumnList(lx)
		if err != nil {
			return Constraint{}, err
		}
		return Constraint{Kind: ConstraintUnique, Columns: cols}, nil
	case lx.eat(tKeyword, "CHECK"):
		if !lx.eat(tOp, "(") {
			return Constraint{}, newError(Syntactic, lx.peek().locus, "( expected after CHECK, got %s", lx.peek())
		}
		expr, err := readOrExpr(lx)
		if err != nil {
			return Constraint{}, err
		}
		if !lx.eat(tOp, ")") {
			return Constraint{}, newError(Syntactic, lx.peek().locus, ") expected, got %s", lx.peek())
		}
		return Constraint{Kind: ConstraintCheck, CheckExpr: expr}, nil
	default:
		return Constraint{}, newError(Syntactic, lx.peek().locus, "expected a table-level key declaration, got %s", lx.peek())
	}
}

func readColumnList(lx *lexer) ([]string, error) {
	if !lx.eat(tOp, "(") {
		return nil, newError(Syntactic, lx.peek().locus, "( expected, got %s", lx.peek())
	}
	var cols []string
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		if tok.t != tIdentifier {
			return nil, newError(Syntactic, tok.locus, "expected a column name, got %s", tok)
		}
		cols = append(cols, tok.val)
		if !lx.eat(tOp, ",") {
			break
		}
	}
	if !lx.eat(tOp, ")") {
		return nil, newError(Syntactic, lx.peek().locus, ") expected, got %s", lx.peek())
	}
	return cols, nil
}

func readReference(lx *lexer) (table, column string, err error) {
	tok, err := lx.next()
	if err != nil {
		return "", "", err
	}
	if tok.t != tIdentifier {
		return "", "", newError(Syntactic, tok.locus, "expected a table name after REFERENCES, got %s", tok)
	}
	table = tok.val
	if lx.eat(tOp, "(") {
		colTok, err := lx.next()
		if err != nil {
			return "", "", err
		}
		if colTok.t != tIdentifier {
			return "", "", newError(Syntactic, colTok.locus, "expected a column name, got %s", colTok)
		}
		column = colTok.val
		if !lx.eat(tOp, ")") {
			return "", "", newError(Syntactic, lx.peek().locus, ") expected, got %s", lx.peek())
		}
	}
	return table, column, nil
}

func readColumnDecl(lx *lexer) (ColumnDecl, error) {
	nameTok, err := lx.next()
	if err != nil {
		return ColumnDecl{}, err
	}
	if nameTok.t != tIdentifier {
		return ColumnDecl{}, newError(Syntactic, nameTok.locus, "expected a column name, got %s", nameTok)
	}
	typeTok, err := lx.next()
	if err != nil {
		return ColumnDecl{}, err
	}
	ct, ok := columnTypeFromName(typeTok.val)
	if !ok {
		return ColumnDecl{}, newError(Syntactic, typeTok.locus, "expected a column type, got %s", typeTok)
	}
	decl := ColumnDecl{Name: nameTok.val, Type: ct}
	if lx.eat(tOp, "(") {
		n, err := lx.next()
		if err != nil {
			return ColumnDecl{}, err
		}
		if n.t != tNumber {
			return ColumnDecl{}, newError(Syntactic, n.locus, "expected a size, got %s", n)
		}
		size, convErr := strconv.Atoi(n.val)
		if convErr != nil {
			return ColumnDecl{}, newError(Syntactic, n.locus, "malformed size: %s", n.val)
		}
		if !lx.eat(tOp, ")") {
			return ColumnDecl{}, newError(Syntactic, lx.peek().locus, ") expected, got %s", lx.peek())
		}
		decl.Size = ColumnSize{Set: true, Value: size}
	}
	for {
		c, ok, err := tryColumnConstraint(lx)
		if err != nil {
			return ColumnDecl{}, err
		}
		if !ok {
			break
		}
		decl.Constraints = append(decl.Constraints, c)
	}
	return decl, nil
}

func tryColumnConstraint(lx *lexer) (Constraint, bool, error) {
	switch {
	case lx.eat(tKeyword, "NOT"):
		if !lx.eat(tKeyword, "NULL") {
			return Constraint{}, false, newError(Syntactic, lx.peek().locus, "NULL expected after NOT, got %s", lx.peek())
		}
		return Constraint{Kind: ConstraintNotNull}, true, nil
	case lx.eat(tKeyword, "UNIQUE"):
		return Constraint{Kind: ConstraintUnique}, true, nil
	case lx.eat(tKeyword, "PRIMARY"):
		if !lx.eat(tKeyword, "KEY") {
			return Constraint{}, false, newError(Syntactic, lx.peek().locus, "KEY expected after PRIMARY, got %s", lx.peek())
		}
		return Constraint{Kind: ConstraintPrimaryKey}, true, nil
	case lx.eat(tKeyword, "REFERENCES"):
		table, col, err := readReference(lx)
		if err != nil {
			return Constraint{}, false, err
		}
		return Constraint{Kind: ConstraintForeignKey, RefTable: table, RefColumn: col}, true, nil
	case lx.eat(tKeyword, "DEFAULT"):
		lit, err := readLiteralValue(lx)
		if err != nil {
			return Constraint{}, false, err
		}
		return Constraint{Kind: ConstraintDefault, DefaultValue: lit}, true, nil
	case lx.eat(tKeyword, "AUTO"):
		if !lx.eat(tKeyword, "INCREMENT") {
			return Constraint{}, false, newError(Syntactic, lx.peek().locus, "INCREMENT expected after AUTO, got %s", lx.peek())
		}
		return Constraint{Kind: ConstraintAutoIncrement}, true, nil
	case lx.eat(tKeyword, "CHECK"):
		if !lx.eat(tOp, "(") {
			return Constraint{}, false, newError(Syntactic, lx.peek().locus, "( expected after CHECK, got %s", lx.peek())
		}
		expr, err := readOrExpr(lx)
		if err != nil {
			return Constraint{}, false, err
		}
		if !lx.eat(tOp, ")") {
			return Constraint{}, false, newError(Syntactic, lx.peek().locus, ") expected, got %s", lx.peek())
		}
		return Constraint{Kind: ConstraintCheck, CheckExpr: expr}, true, nil
	default:
		return Constraint{}, false, nil
	}
}

// ---- DML grammar ----

func readLiteralValue(lx *lexer) (*Literal, error) {
	p := lx.peek()
	switch {
	case p.t == tString:
		lx.next()
		return stringLiteral(p.val), nil
	case p.t == tNumber:
		lx.next()
		return numericLiteral(p.val)
	case p.t == tKeyword && p.val == "NULL":
		lx.next()
		return nullLiteral(), nil
	case p.t == tOp && p.val == "-":
		lx.next()
		n, err := lx.next()
		if err != nil {
			return nil, err
		}
		if n.t != tNumber {
			return nil, newError(Syntactic, n.locus, "expected a number after '-', got %s", n)
		}
		return numericLiteral("-" + n.val)
	default:
		return nil, newError(Syntactic, p.locus, "expected a literal value, got %s", p)
	}
}

func readInsert(lx *lexer) (*Insert, error) {
	lx.next() // INSERT
	if !lx.eat(tKeyword, "INTO") {
		return nil, newError(Syntactic, lx.peek().locus, "INTO expected after INSERT, got %s", lx.peek())
	}
	tableTok, err := lx.next()
	if err != nil {
		return nil, err
	}
	if tableTok.t != tIdentifier {
		return nil, newError(Syntactic, tableTok.locus, "expected a table name, got %s", tableTok)
	}
	ins := &Insert{Table: tableTok.val}
	if lx.eat(tOp, "(") {
		cols, err := readIdentifierListNoParens(lx)
		if err != nil {
			return nil, err
		}
		ins.Columns = cols
		if !lx.eat(tOp, ")") {
			return nil, newError(Syntactic, lx.peek().locus, ") expected, got %s", lx.peek())
		}
	}
	if !lx.eat(tKeyword, "VALUES") {
		return nil, newError(Syntactic, lx.peek().locus, "VALUES expected, got %s", lx.peek())
	}
	if !lx.eat(tOp, "(") {
		return nil, newError(Syntactic, lx.peek().locus, "( expected after VALUES, got %s", lx.peek())
	}
	for {
		lit, err := readLiteralValue(lx)
		if err != nil {
			return nil, err
		}
		ins.Values = append(ins.Values, lit)
		if !lx.eat(tOp, ",") {
			break
		}
	}
	if !lx.eat(tOp, ")") {
		return nil, newError(Syntactic, lx.peek().locus, ") expected, got %s", lx.peek())
	}
	if ins.Columns != nil && len(ins.Columns) != len(ins.Values) {
		return nil, newError(Syntactic, tableTok.locus, "INSERT column list has %d names but %d values were given", len(ins.Columns), len(ins.Values))
	}
	return ins, nil
}

func readIdentifierListNoParens(lx *lexer) ([]string, error) {
	var names []string
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		if tok.t != tIdentifier {
			return nil, newError(Syntactic, tok.locus, "expected an identifier, got %s", tok)
		}
		names = append(names, tok.val)
		if !lx.eat(tOp, ",") {
			break
		}
	}
	return names, nil
}

func readDelete(lx *lexer) (*Delete, error) {
	lx.next() // DELETE
	if !lx.eat(tKeyword, "FROM") {
		return nil, newError(Syntactic, lx.peek().locus, "FROM expected after DELETE, got %s", lx.peek())
	}
	tableTok, err := lx.next()
	if err != nil {
		return nil, err
	}
	if tableTok.t != tIdentifier {
		return nil, newError(Syntactic, tableTok.locus, "expected a table name, got %s", tableTok)
	}
	del := &Delete{Table: tableTok.val}
	if lx.eat(tKeyword, "WHERE") {
		pred, err := readOrExpr(lx)
		if err != nil {
			return nil, err
		}
		del.Where = pred
	}
	return del, nil
}
