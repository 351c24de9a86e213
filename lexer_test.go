package chisql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) []token {
	t.Helper()
	lx := newLexer(src)
	var toks []token
	for {
		tok, err := lx.next()
		require.NoError(t, err)
		if tok.t == tEnd {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestLexerKeywordsAreCaseInsensitive(t *testing.T) {
	toks := lexAll(t, "SeLeCt * frOM t")
	require.Len(t, toks, 4)
	require.Equal(t, tKeyword, toks[0].t)
	require.Equal(t, "SELECT", toks[0].val)
	require.Equal(t, tKeyword, toks[2].t)
	require.Equal(t, "FROM", toks[2].val)
}

func TestLexerSkipsLineComments(t *testing.T) {
	toks := lexAll(t, "SELECT x -- a trailing comment\nFROM t")
	require.Len(t, toks, 4)
	require.Equal(t, "x", toks[1].val)
	require.Equal(t, "FROM", toks[2].val)
}

func TestLexerNumericLiterals(t *testing.T) {
	toks := lexAll(t, "1 2.5 -3 -4.25")
	require.Len(t, toks, 4)
	for _, tok := range toks {
		require.Equal(t, tNumber, tok.t)
	}
	require.Equal(t, "1", toks[0].val)
	require.Equal(t, "2.5", toks[1].val)
	require.Equal(t, "-3", toks[2].val)
	require.Equal(t, "-4.25", toks[3].val)
}

func TestLexerQualifiedReferenceDotIsNotADecimalPoint(t *testing.T) {
	toks := lexAll(t, "t.col")
	require.Len(t, toks, 3)
	require.Equal(t, tIdentifier, toks[0].t)
	require.Equal(t, tOp, toks[1].t)
	require.Equal(t, ".", toks[1].val)
	require.Equal(t, tIdentifier, toks[2].t)
}

func TestLexerStringLiteral(t *testing.T) {
	toks := lexAll(t, `'hello, world'`)
	require.Len(t, toks, 1)
	require.Equal(t, tString, toks[0].t)
	require.Equal(t, "hello, world", toks[0].val)
}

func TestLexerUnterminatedStringIsLexical(t *testing.T) {
	lx := newLexer(`'unterminated`)
	_, err := lx.next()
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, Lexical, e.Kind)
}

func TestLexerOperatorsLongestMatchFirst(t *testing.T) {
	toks := lexAll(t, "<= <> >= != = < >")
	want := []string{"<=", "<>", ">=", "!=", "=", "<", ">"}
	require.Len(t, toks, len(want))
	for i, w := range want {
		require.Equal(t, w, toks[i].val)
	}
}

func TestLexerLocusTracksLineAndColumn(t *testing.T) {
	lx := newLexer("a\nbc")
	tok1, err := lx.next()
	require.NoError(t, err)
	require.Equal(t, Locus{Line: 1, Col: 1}, tok1.locus)
	tok2, err := lx.next()
	require.NoError(t, err)
	require.Equal(t, Locus{Line: 2, Col: 1}, tok2.locus)
}
