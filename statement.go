package chisql

import "fmt"

// Statement is the top-level sum type a parsed program is made of:
// *Query | *CreateTable | *Insert | *Delete.
type Statement interface {
	String() string
	statementNode()
}

// Query wraps a top-level SRA tree as a statement.
type Query struct {
	SRA SRA
}

func (s *Query) statementNode() {}
func (s *Query) String() string {
	return fmt.Sprintf("Query(%s)", s.SRA.String())
}

// Program is an ordered list of parsed statements, the Parser's top-level
// output.
type Program []Statement
