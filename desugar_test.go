package chisql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func desugarSRA(t *testing.T, src string, schema MapSchema) RA {
	t.Helper()
	prog, errs := Parse(src)
	require.Empty(t, errs)
	require.Len(t, prog, 1)
	q, ok := prog[0].(*Query)
	require.True(t, ok)
	ra, err := Desugar(q.SRA, schema)
	require.NoError(t, err)
	return ra
}

// A wildcard alongside a computed, aliased column: no redundant inner Pi
// is introduced, since Pi only ever carries plain attribute references.
func TestDesugarWildcardPlusComputedColumn(t *testing.T) {
	ra := desugarSRA(t, "SELECT *, x+y AS z FROM t;", MapSchema{"t": {"w", "x", "y"}})
	require.Equal(t, "Pi([w, x, y, z], Rho(Add(x, y), z, RATable(t)))", ra.String())
}

// Scenario 2: a WHERE clause referencing the SELECT list's own aliases.
func TestDesugarWhereReferencingProjectionAliases(t *testing.T) {
	ra := desugarSRA(t,
		"SELECT f.a AS Col1, g.a AS Col2 FROM Foo f, Foo g WHERE Col1 != Col2;",
		MapSchema{"Foo": {"a"}})
	want := "Sigma(Ne(Col1, Col2), " +
		"Pi([Col1, Col2], Rho(g.a, Col2, Rho(f.a, Col1, " +
		"Cross(RhoTable(f, RATable(Foo)), RhoTable(g, RATable(Foo))))))" +
		")"
	require.Equal(t, want, ra.String())
}

// Scenario 7: JOIN ... USING lowers to Cross+Sigma over an equality
// predicate on the named columns, with the duplicate column suppressed
// from the combined scope.
func TestDesugarUsingJoin(t *testing.T) {
	ra := desugarSRA(t, "SELECT * FROM Foo f JOIN Bar b USING(id);",
		MapSchema{"Foo": {"id", "x"}, "Bar": {"id", "y"}})
	want := "Pi([id, x, y], Sigma(Eq(f.id, b.id), " +
		"Cross(RhoTable(f, RATable(Foo)), RhoTable(b, RATable(Bar)))))"
	require.Equal(t, want, ra.String())
}

// An outer join lowers to the OuterJoin extension, not a plain Cross,
// since it must preserve unmatched rows.
func TestDesugarOuterJoin(t *testing.T) {
	ra := desugarSRA(t, "SELECT * FROM t1 LEFT OUTER JOIN t2 ON t1.a = t2.a;",
		MapSchema{"t1": {"a"}, "t2": {"a"}})
	// Bare wildcard expansion keeps both same-named columns unqualified;
	// an ON join (unlike NATURAL/USING) never deduplicates them.
	want := "Pi([a, a], OuterJoin(leftOuter, Eq(t1.a, t2.a), RATable(t1), RATable(t2)))"
	require.Equal(t, want, ra.String())
}

// A NATURAL JOIN lowers to the same tree a Cross+Sigma over the common
// columns would, with the common columns deduplicated in the output.
func TestDesugarNaturalJoinEquivalence(t *testing.T) {
	ra := desugarSRA(t, "SELECT * FROM T NATURAL JOIN U;",
		MapSchema{"T": {"a", "b"}, "U": {"a", "c"}})
	want := "Pi([a, b, c], Sigma(Eq(T.a, U.a), Cross(RATable(T), RATable(U))))"
	require.Equal(t, want, ra.String())
}

func TestDesugarNaturalJoinWithNoCommonColumnsDegradesToCross(t *testing.T) {
	ra := desugarSRA(t, "SELECT * FROM T NATURAL JOIN U;",
		MapSchema{"T": {"a"}, "U": {"b"}})
	require.Equal(t, "Pi([a, b], Cross(RATable(T), RATable(U)))", ra.String())
}

func TestDesugarSetOpTransparency(t *testing.T) {
	ra := desugarSRA(t, "SELECT a FROM t1 UNION SELECT a FROM t2;",
		MapSchema{"t1": {"a"}, "t2": {"a"}})
	require.Equal(t, "RASetOp(union, Pi([a], RATable(t1)), Pi([a], RATable(t2)))", ra.String())
}

func TestDesugarOrderingPreservation(t *testing.T) {
	ra := desugarSRA(t, "SELECT c, a, b FROM t;", MapSchema{"t": {"a", "b", "c"}})
	pi := ra.(*Pi)
	require.Equal(t, []string{"c", "a", "b"}, attrNames(pi.Attributes))
}

func attrNames(cols []*Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Name
	}
	return out
}

func TestDesugarUnknownTableIsSchemaError(t *testing.T) {
	prog, errs := Parse("SELECT a FROM ghost;")
	require.Empty(t, errs)
	q := prog[0].(*Query)
	_, err := Desugar(q.SRA, MapSchema{})
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, Schema, e.Kind)
}

func TestDesugarAmbiguousColumnReference(t *testing.T) {
	prog, errs := Parse("SELECT a FROM Foo f, Foo g;")
	require.Empty(t, errs)
	q := prog[0].(*Query)
	_, err := Desugar(q.SRA, MapSchema{"Foo": {"a"}})
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, Ambiguity, e.Kind)
}

func TestDesugarEmptyWildcardIsSchemaError(t *testing.T) {
	prog, errs := Parse("SELECT missing.* FROM t;")
	require.Empty(t, errs)
	q := prog[0].(*Query)
	_, err := Desugar(q.SRA, MapSchema{"t": {"a"}})
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, Schema, e.Kind)
}

func TestDesugarTableAliasLiftsToRhoTable(t *testing.T) {
	ra := desugarSRA(t, "SELECT a FROM t x;", MapSchema{"t": {"a"}})
	pi := ra.(*Pi)
	_, ok := pi.Child.(*RhoTable)
	require.True(t, ok)
	require.Equal(t, "RhoTable(x, RATable(t))", pi.Child.String())
}

func TestDesugarDistinctCarriesThrough(t *testing.T) {
	ra := desugarSRA(t, "SELECT DISTINCT a FROM t;", MapSchema{"t": {"a"}})
	pi := ra.(*Pi)
	require.True(t, pi.Distinct)
}
