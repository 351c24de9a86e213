package chisql

import (
	"strings"
)

// Parsebuf is a string container with utility methods for writing
// hand-crafted parsers. It tracks line/column position so that callers can
// attach a source locus to diagnostics.
type Parsebuf struct {
	pos  int
	line int
	col  int
	str  string
}

// NewParsebuf returns a new parsebuf positioned at the start of s.
func NewParsebuf(s string) *Parsebuf {
	return &Parsebuf{0, 1, 1, s}
}

// More returns true if there are more characters to read.
func (b *Parsebuf) More() bool {
	return b.pos < len(b.str)
}

// Get reads one character. Returns empty string if there's no more characters.
func (b *Parsebuf) Get() string {
	if !b.More() {
		return ""
	}
	s := b.str[b.pos : b.pos+1]
	b.pos++
	if s == "\n" {
		b.line++
		b.col = 1
	} else {
		b.col++
	}
	return s
}

// Peek return what Get would return, without reading it.
func (b *Parsebuf) Peek() string {
	if !b.More() {
		return ""
	}
	return b.str[b.pos : b.pos+1]
}

// Set reads and returns a sequence of characters from the given set.
func (b *Parsebuf) Set(allowed string) string {
	s := strings.Builder{}
	for b.More() && strings.Contains(allowed, b.Peek()) {
		s.WriteString(b.Get())
	}
	return s.String()
}

// Space reads a sequence of conventional spaces and single-line ("--")
// comments, treating both as insignificant whitespace.
func (b *Parsebuf) Space() string {
	s := strings.Builder{}
	for {
		s.WriteString(b.Set(" \n\t\r"))
		if !b.Literal("--") {
			break
		}
		s.WriteString("--")
		for b.More() && b.Peek() != "\n" {
			s.WriteString(b.Get())
		}
	}
	return s.String()
}

// Literal reads the given string, case-insensitive, and return true on success.
// Returns false if a matching literal doesn't follow.
func (b *Parsebuf) Literal(literal string) bool {
	if !strings.HasPrefix(strings.ToLower(b.str[b.pos:]), strings.ToLower(literal)) {
		return false
	}
	for range literal {
		b.Get()
	}
	return true
}

// Rest returns the unconsumed part of the buffer's string.
func (b *Parsebuf) Rest() string {
	return b.str[b.pos:]
}

// Locus returns the current line/column position, 1-based.
func (b *Parsebuf) Locus() Locus {
	return Locus{Line: b.line, Col: b.col}
}
