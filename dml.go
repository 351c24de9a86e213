package chisql

import (
	"fmt"
	"strings"
)

// Insert is a parsed "INSERT INTO" statement. If Columns is nil, the
// omitted column list means "use the table's declared column order at
// execution time" -- the front-end does not resolve this; it only
// records the omission. When Columns is non-nil, its length must equal
// len(Values); that invariant is enforced by the parser (see
// readInsert in parser.go), not left for a later stage.
type Insert struct {
	Table   string
	Columns []string
	Values  []*Literal
}

func (s *Insert) statementNode() {}

func (s *Insert) String() string {
	vals := make([]string, len(s.Values))
	for i, v := range s.Values {
		vals[i] = v.String()
	}
	if s.Columns == nil {
		return fmt.Sprintf("Insert(%s, [%s])", s.Table, strings.Join(vals, ", "))
	}
	return fmt.Sprintf("Insert(%s, [%s], [%s])", s.Table, strings.Join(s.Columns, ", "), strings.Join(vals, ", "))
}

// Delete is a parsed "DELETE FROM" statement. A nil Where means "delete
// all rows".
type Delete struct {
	Table string
	Where Expression
}

func (s *Delete) statementNode() {}

func (s *Delete) String() string {
	if s.Where == nil {
		return fmt.Sprintf("Delete(%s)", s.Table)
	}
	return fmt.Sprintf("Delete(%s, %s)", s.Table, s.Where.String())
}
