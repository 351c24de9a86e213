package chisql

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, src string) Statement {
	t.Helper()
	prog, errs := Parse(src)
	require.Empty(t, errs)
	require.Len(t, prog, 1)
	return prog[0]
}

func TestParseSimpleSelect(t *testing.T) {
	stmt := parseOne(t, "SELECT a, b FROM t;")
	q, ok := stmt.(*Query)
	require.True(t, ok)
	require.Equal(t, "Project([a, b], Table(t))", q.SRA.String())
}

func TestParseWildcardAndAliasedExpression(t *testing.T) {
	stmt := parseOne(t, "SELECT *, x+y AS z FROM t;")
	q := stmt.(*Query)
	require.Equal(t, "Project([*, (Add(x, y), z)], Table(t))", q.SRA.String())
}

func TestParseQualifiedWildcard(t *testing.T) {
	stmt := parseOne(t, "SELECT t.* FROM t;")
	q := stmt.(*Query)
	require.Equal(t, "Project([t.*], Table(t))", q.SRA.String())
}

func TestParseWhereWithComparisonChainRejected(t *testing.T) {
	_, errs := Parse("SELECT a FROM t WHERE a < b < c;")
	require.NotEmpty(t, errs)
}

func TestParseJoinKinds(t *testing.T) {
	cases := map[string]string{
		"SELECT a FROM t1 JOIN t2 ON t1.a = t2.a;":            "inner",
		"SELECT a FROM t1 INNER JOIN t2 ON t1.a = t2.a;":      "inner",
		"SELECT a FROM t1 CROSS JOIN t2;":                     "cross",
		"SELECT a FROM t1 NATURAL JOIN t2;":                   "natural",
		"SELECT a FROM t1 LEFT JOIN t2 ON t1.a = t2.a;":       "leftOuter",
		"SELECT a FROM t1 LEFT OUTER JOIN t2 ON t1.a = t2.a;": "leftOuter",
		"SELECT a FROM t1 RIGHT JOIN t2 ON t1.a = t2.a;":      "rightOuter",
		"SELECT a FROM t1 FULL JOIN t2 ON t1.a = t2.a;":       "fullOuter",
	}
	for src, wantKind := range cases {
		stmt := parseOne(t, src)
		proj := stmt.(*Query).SRA.(*Project)
		join := proj.Child.(*Join)
		require.Equal(t, wantKind, join.Kind.String(), src)
	}
}

func TestParseCommaJoinIsCross(t *testing.T) {
	stmt := parseOne(t, "SELECT f.a AS Col1, g.a AS Col2 FROM Foo f, Foo g WHERE Col1 != Col2;")
	q := stmt.(*Query)
	want := "Select(Ne(Col1, Col2), Project([(f.a, Col1), (g.a, Col2)], Join(cross, Table(Foo, f), Table(Foo, g), -)))"
	require.Equal(t, want, q.SRA.String())
}

func TestParseUsingJoin(t *testing.T) {
	stmt := parseOne(t, "SELECT * FROM Foo f JOIN Bar b USING(id);")
	q := stmt.(*Query)
	require.Equal(t, "Project([*], Join(inner, Table(Foo, f), Table(Bar, b), using=[id]))", q.SRA.String())
}

func TestParseSetOpsAreLeftAssociative(t *testing.T) {
	stmt := parseOne(t, "SELECT a FROM t1 UNION SELECT a FROM t2 INTERSECT SELECT a FROM t3;")
	q := stmt.(*Query)
	_, ok := q.SRA.(*SetOp)
	require.True(t, ok)
	outer := q.SRA.(*SetOp)
	require.Equal(t, SetIntersect, outer.Kind)
	_, ok = outer.Left.(*SetOp)
	require.True(t, ok)
	require.Equal(t, SetUnion, outer.Left.(*SetOp).Kind)
}

func TestParseGroupByHavingOrderByLimitAreRecorded(t *testing.T) {
	stmt := parseOne(t, "SELECT a, COUNT(b) FROM t GROUP BY a HAVING COUNT(b) > 1 ORDER BY a DESC LIMIT 10;")
	q := stmt.(*Query)
	ob, ok := q.SRA.(*OrderBy)
	require.True(t, ok)
	require.Equal(t, Desc, ob.Direction)
	proj, ok := ob.Child.(*Project)
	require.True(t, ok)
	require.Len(t, proj.GroupBy, 1)
	require.NotNil(t, proj.Having)
	require.True(t, proj.Limit.Set)
	require.Equal(t, 10, proj.Limit.Value)
}

func TestParseDistinct(t *testing.T) {
	stmt := parseOne(t, "SELECT DISTINCT a FROM t;")
	proj := stmt.(*Query).SRA.(*Project)
	require.True(t, proj.Distinct)
}

func TestParseInSubquery(t *testing.T) {
	stmt := parseOne(t, "SELECT a FROM t WHERE a IN (SELECT b FROM u);")
	sel := stmt.(*Query).SRA.(*Select)
	in, ok := sel.Predicate.(*InSubquery)
	require.True(t, ok)
	require.Equal(t, "Project([b], Table(u))", in.Query.String())
}

func TestParseCreateTable(t *testing.T) {
	stmt := parseOne(t, "CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(64) NOT NULL);")
	ct, ok := stmt.(*CreateTable)
	require.True(t, ok)
	require.Equal(t, "users", ct.Name)
	require.Len(t, ct.Columns, 2)
	require.Equal(t, "id", ct.Columns[0].Name)
	require.Equal(t, TypeInt, ct.Columns[0].Type)
	require.Equal(t, []Constraint{{Kind: ConstraintPrimaryKey}}, ct.Columns[0].Constraints)
	require.Equal(t, "name", ct.Columns[1].Name)
	require.Equal(t, TypeVarchar, ct.Columns[1].Type)
	require.True(t, ct.Columns[1].Size.Set)
	require.Equal(t, 64, ct.Columns[1].Size.Value)
	require.Equal(t, []Constraint{{Kind: ConstraintNotNull}}, ct.Columns[1].Constraints)
}

func TestParseCreateTableColumnsStructurally(t *testing.T) {
	stmt := parseOne(t, "CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(64) NOT NULL);")
	ct := stmt.(*CreateTable)
	want := []ColumnDecl{
		{Name: "id", Type: TypeInt, Constraints: []Constraint{{Kind: ConstraintPrimaryKey}}},
		{Name: "name", Type: TypeVarchar, Size: ColumnSize{Set: true, Value: 64},
			Constraints: []Constraint{{Kind: ConstraintNotNull}}},
	}
	if diff := cmp.Diff(want, ct.Columns); diff != "" {
		t.Errorf("CreateTable.Columns mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCreateTableWithTableLevelKeys(t *testing.T) {
	stmt := parseOne(t, "CREATE TABLE orders (id INT, user_id INT, FOREIGN KEY (user_id) REFERENCES users(id));")
	ct := stmt.(*CreateTable)
	require.Len(t, ct.Keys, 1)
	require.Equal(t, ConstraintForeignKey, ct.Keys[0].Kind)
	require.Equal(t, []string{"user_id"}, ct.Keys[0].Columns)
	require.Equal(t, "users", ct.Keys[0].RefTable)
	require.Equal(t, "id", ct.Keys[0].RefColumn)
}

func TestParseInsert(t *testing.T) {
	stmt := parseOne(t, "INSERT INTO t (a,b) VALUES (1,'hi');")
	ins, ok := stmt.(*Insert)
	require.True(t, ok)
	require.Equal(t, "t", ins.Table)
	require.Equal(t, []string{"a", "b"}, ins.Columns)
	require.Equal(t, []*Literal{intLiteral(1), stringLiteral("hi")}, ins.Values)
}

func TestParseInsertArityMismatchIsAnError(t *testing.T) {
	_, errs := Parse("INSERT INTO t (a,b) VALUES (1);")
	require.NotEmpty(t, errs)
}

func TestParseDelete(t *testing.T) {
	stmt := parseOne(t, "DELETE FROM t WHERE x > 3;")
	del, ok := stmt.(*Delete)
	require.True(t, ok)
	require.Equal(t, "Delete(t, Gt(x, 3))", del.String())
}

func TestParseDeleteAll(t *testing.T) {
	stmt := parseOne(t, "DELETE FROM t;")
	del := stmt.(*Delete)
	require.Nil(t, del.Where)
	require.Equal(t, "Delete(t)", del.String())
}

func TestParseRecoversAtStatementBoundary(t *testing.T) {
	prog, errs := Parse("SELECT FROM t; SELECT a FROM t;")
	require.NotEmpty(t, errs)
	require.Len(t, prog, 1)
	require.Equal(t, "Query(Project([a], Table(t)))", prog[0].String())
}

func TestExpressionPrecedence(t *testing.T) {
	stmt := parseOne(t, "SELECT a FROM t WHERE a = 1 AND b = 2 OR NOT c = 3;")
	sel := stmt.(*Query).SRA.(*Select)
	require.Equal(t, "Or(And(Eq(a, 1), Eq(b, 2)), Not(Eq(c, 3)))", sel.Predicate.String())
}

func TestExpressionArithmeticPrecedence(t *testing.T) {
	stmt := parseOne(t, "SELECT a FROM t WHERE a = 1 + 2 * 3;")
	sel := stmt.(*Query).SRA.(*Select)
	require.Equal(t, "Eq(a, Add(1, Mul(2, 3)))", sel.Predicate.String())
}

func TestAggregateFunctions(t *testing.T) {
	stmt := parseOne(t, "SELECT COUNT(*), SUM(x) FROM t;")
	proj := stmt.(*Query).SRA.(*Project)
	require.Equal(t, "COUNT(*)", proj.Items[0].Expr.String())
	require.Equal(t, "SUM(x)", proj.Items[1].Expr.String())
}
