package chisql

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a front-end failure, per the error taxonomy.
type Kind int

const (
	// Lexical covers unterminated strings, unknown characters, malformed
	// numeric literals.
	Lexical Kind = iota
	// Syntactic covers grammar violations.
	Syntactic
	// Schema covers wildcard expansion against an unknown table, or an
	// expansion that yields no columns.
	Schema
	// Ambiguity covers an unqualified column name resolvable from more
	// than one in-scope relation.
	Ambiguity
	// Unsupported covers constructs the grammar accepts but desugaring has
	// no rule for (GROUP BY/HAVING lowering).
	Unsupported
	// Internal covers violated invariants. Internal errors are not meant
	// to be recovered from; see newInternal.
	Internal
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Syntactic:
		return "syntactic"
	case Schema:
		return "schema"
	case Ambiguity:
		return "ambiguity"
	case Unsupported:
		return "unsupported"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Locus identifies a position in source text.
type Locus struct {
	Line int
	Col  int
}

func (l Locus) String() string {
	if l.Line == 0 {
		return ""
	}
	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

// Error is the error type every exported function in this package returns.
type Error struct {
	Kind    Kind
	Message string
	Locus   Locus
	cause   error
}

func (e *Error) Error() string {
	if e.Locus.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s (at %s): %s", e.Kind, e.Locus, e.Message)
}

// Cause lets github.com/pkg/errors.Cause unwrap to the underlying failure,
// if any.
func (e *Error) Cause() error { return e.cause }

func (e *Error) Unwrap() error { return e.cause }

func newError(kind Kind, locus Locus, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Locus: locus}
}

func wrapError(kind Kind, locus Locus, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Locus: locus, cause: errors.Cause(cause)}
}

// newInternal panics: internal invariant violations are fatal, not
// recovered, per the front-end's error-handling design.
func newInternal(format string, args ...any) {
	panic(&Error{Kind: Internal, Message: fmt.Sprintf(format, args...)})
}
