package chisql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Print is a thin wrapper; these tests exercise the underlying String()
// methods through it, checking that printing is deterministic (same
// tree, same text) and fully parenthesized (no ambiguity between two
// distinct trees).

func TestPrintIsDeterministic(t *testing.T) {
	prog, errs := Parse("SELECT a, b FROM t WHERE a = 1 AND b = 2;")
	require.Empty(t, errs)
	q := prog[0].(*Query)
	require.Equal(t, Print(q.SRA), Print(q.SRA))
}

func TestPrintDistinguishesPrecedence(t *testing.T) {
	addThenMul := parseOne(t, "SELECT a FROM t WHERE a = 1 + 2 * 3;")
	mulThenAdd := parseOne(t, "SELECT a FROM t WHERE a = (1 + 2) * 3;")
	a := addThenMul.(*Query).SRA.(*Select)
	b := mulThenAdd.(*Query).SRA.(*Select)
	require.NotEqual(t, Print(a.Predicate), Print(b.Predicate))
	require.Equal(t, "Eq(a, Add(1, Mul(2, 3)))", Print(a.Predicate))
	require.Equal(t, "Eq(a, Mul(Add(1, 2), 3))", Print(b.Predicate))
}

func TestPrintRATreeIsFullyParenthesized(t *testing.T) {
	ra := desugarSRA(t, "SELECT a, b FROM t1 JOIN t2 ON t1.a = t2.a;",
		MapSchema{"t1": {"a"}, "t2": {"b"}})
	require.Equal(t,
		"Pi([a, b], Sigma(Eq(t1.a, t2.a), Cross(RATable(t1), RATable(t2))))",
		Print(ra))
}

func TestPrintStatementIncludesQueryWrapper(t *testing.T) {
	stmt := parseOne(t, "SELECT a FROM t;")
	require.Equal(t, "Query(Project([a], Table(t)))", Print(stmt))
}

func TestPrintCreateTableRoundTripsSingleAndTableLevelKeys(t *testing.T) {
	single := parseOne(t, "CREATE TABLE users (id INT PRIMARY KEY);").(*CreateTable)
	composite := parseOne(t,
		"CREATE TABLE m (a INT, b INT, PRIMARY KEY (a, b));").(*CreateTable)
	require.Contains(t, Print(single), "PRIMARY KEY")
	require.Contains(t, Print(composite), "PRIMARY KEY")
	require.NotEqual(t, Print(single), Print(composite))
}
