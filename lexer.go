package chisql

import (
	"fmt"
	"strings"
)

// lexer turns source text into a stream of tokens. It is a thin,
// single-pass scanner: token classification (keyword vs identifier vs
// literal) is the only job it does; everything else is the parser's.
type lexer struct {
	b     *Parsebuf
	peeks []token
}

func newLexer(src string) *lexer {
	return &lexer{b: NewParsebuf(src)}
}

func (tr *lexer) unget(t token) {
	tr.peeks = append(tr.peeks, t)
}

func (tr *lexer) peek() token {
	s, err := tr.next()
	if err != nil {
		return token{tEnd, "", s.locus}
	}
	if s.t != tEnd {
		tr.unget(s)
	}
	return s
}

// operators are tried longest-first so that e.g. "<=" is not lexed as "<"
// followed by a dangling "=".
var operators = []string{
	"<=", ">=", "<>", "!=",
	"=", "*", ".", "[", "]", "(", ")", ",", "<", ">", "+", "-", "/", ";",
}

var keywords = []string{
	"select", "as", "from", "join", "inner", "cross", "left", "right",
	"full", "outer", "natural", "using", "on", "where", "order", "group",
	"by", "having", "limit", "desc", "asc",
	"or", "and", "not", "in",
	"null", "distinct",
	"union", "intersect", "except",
	"create", "table", "insert", "into", "values", "delete",
	"primary", "key", "foreign", "references", "unique", "default",
	"auto", "increment", "check",
	"int", "integer", "double", "float", "varchar", "char", "boolean",
}

func (tr *lexer) next() (token, error) {
	if len(tr.peeks) > 0 {
		r := tr.peeks[len(tr.peeks)-1]
		tr.peeks = tr.peeks[0 : len(tr.peeks)-1]
		return r, nil
	}
	tr.b.Space()
	loc := tr.b.Locus()
	if tr.b.Peek() == "" {
		return token{tEnd, "", loc}, nil
	}
	if tr.b.Peek() == "'" {
		s, err := readQuote(tr.b, "'")
		if err != nil {
			return token{}, newError(Lexical, loc, "%s", err)
		}
		return token{tString, s, loc}, nil
	}
	if tr.b.Peek() == "\"" {
		s, err := readQuote(tr.b, "\"")
		if err != nil {
			return token{}, newError(Lexical, loc, "%s", err)
		}
		return token{tIdentifier, s, loc}, nil
	}
	if tr.b.Peek() == "-" && len(tr.b.Rest()) > 1 && isDigit(tr.b.Rest()[1]) {
		tr.b.Get()
		s := "-" + tr.b.Set("0123456789")
		s = s + readFraction(tr.b)
		return token{tNumber, s, loc}, nil
	}
	if isDigit(tr.b.Peek()[0]) {
		s := tr.b.Set("0123456789")
		s = s + readFraction(tr.b)
		return token{tNumber, s, loc}, nil
	}
	for _, s := range operators {
		if tr.b.Literal(s) {
			return token{tOp, s, loc}, nil
		}
	}

	s := tr.b.Set("0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_")
	if s == "" {
		return token{}, newError(Lexical, loc, "unexpected character: %q", tr.b.Peek())
	}
	for _, kw := range keywords {
		if strings.EqualFold(s, kw) {
			return token{tKeyword, strings.ToUpper(s), loc}, nil
		}
	}
	return token{tIdentifier, s, loc}, nil
}

func readFraction(b *Parsebuf) string {
	if b.Peek() != "." {
		return ""
	}
	// Don't consume the "." of a qualified reference like "t.col" when
	// there's no digit following it.
	rest := b.Rest()
	if len(rest) < 2 || !isDigit(rest[1]) {
		return ""
	}
	b.Get()
	return "." + b.Set("0123456789")
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (tr *lexer) eat(t tokenType, val string) bool {
	p := tr.peek()
	if p.t == t && p.val == val {
		tr.next()
		return true
	}
	return false
}

func readQuote(b *Parsebuf, q string) (string, error) {
	if !b.Literal(q) {
		return "", fmt.Errorf("'%s' expected", q)
	}
	s := strings.Builder{}
	for b.More() {
		if b.Literal("\\") {
			s.WriteString(b.Get())
			continue
		}
		if b.Peek() == q {
			break
		}
		s.WriteString(b.Get())
	}
	if !b.Literal(q) {
		return s.String(), fmt.Errorf("unterminated string, '%s' expected", q)
	}
	return s.String(), nil
}
