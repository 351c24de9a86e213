package chisql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// LiteralKind classifies the payload of a Literal expression node.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitDouble
	LitString
	LitNull
)

func (k LiteralKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitDouble:
		return "double"
	case LitString:
		return "string"
	case LitNull:
		return "null"
	default:
		newInternal("unexpected literal kind: %d", k)
		return ""
	}
}

// Literal is a constant value appearing in an expression: an integer, a
// double, a string, or NULL. Two literals are only equal (see Equal) when
// both their kind and value match -- an int literal is never equal to a
// double literal of the same numeric value, per the front-end's equality
// contract.
type Literal struct {
	Kind  LiteralKind
	Value any
}

func intLiteral(n int) *Literal       { return &Literal{LitInt, n} }
func stringLiteral(s string) *Literal { return &Literal{LitString, s} }
func nullLiteral() *Literal           { return &Literal{LitNull, nil} }

// numericLiteral classifies a lexed numeral (already known to contain only
// digits, an optional leading '-', and an optional '.' fraction) as an int
// or a double literal and coerces its Go value accordingly.
func numericLiteral(lexeme string) (*Literal, error) {
	if strings.Contains(lexeme, ".") {
		v, err := cast.ToFloat64E(lexeme)
		if err != nil {
			return nil, newError(Lexical, Locus{}, "malformed numeric literal: %s", lexeme)
		}
		return &Literal{LitDouble, v}, nil
	}
	v, err := strconv.Atoi(lexeme)
	if err != nil {
		return nil, newError(Lexical, Locus{}, "malformed numeric literal: %s", lexeme)
	}
	return &Literal{LitInt, v}, nil
}

func (e *Literal) String() string {
	switch e.Kind {
	case LitString:
		return fmt.Sprintf("%q", e.Value)
	case LitNull:
		return "NULL"
	case LitDouble:
		s := fmt.Sprintf("%v", e.Value)
		if !strings.ContainsAny(s, ".eEIN") {
			s += ".0"
		}
		return s
	default:
		return fmt.Sprintf("%v", e.Value)
	}
}

func (e *Literal) exprNode() {}

// Equal reports whether two expressions are structurally equal. Literal
// equality is modulo nothing else: kind and Go value must both match.
func (e *Literal) Equal(other Expression) bool {
	o, ok := other.(*Literal)
	if !ok {
		return false
	}
	if e == nil || o == nil {
		return e == o
	}
	return e.Kind == o.Kind && e.Value == o.Value
}
