package chisql

import (
	"fmt"
	"strings"
)

// ColumnType is the closed set of column types the grammar recognizes.
type ColumnType int

const (
	TypeInt ColumnType = iota
	TypeDouble
	TypeVarchar
	TypeChar
	TypeBoolean
)

func (t ColumnType) String() string {
	switch t {
	case TypeInt:
		return "INT"
	case TypeDouble:
		return "DOUBLE"
	case TypeVarchar:
		return "VARCHAR"
	case TypeChar:
		return "CHAR"
	case TypeBoolean:
		return "BOOLEAN"
	default:
		newInternal("unexpected column type: %d", t)
		return ""
	}
}

func columnTypeFromName(name string) (ColumnType, bool) {
	switch name {
	case "INT", "INTEGER":
		return TypeInt, true
	case "DOUBLE", "FLOAT":
		return TypeDouble, true
	case "VARCHAR":
		return TypeVarchar, true
	case "CHAR":
		return TypeChar, true
	case "BOOLEAN":
		return TypeBoolean, true
	default:
		return 0, false
	}
}

// ConstraintKind is the closed set of per-column and table-level
// constraint/key kinds.
type ConstraintKind int

const (
	ConstraintNotNull ConstraintKind = iota
	ConstraintUnique
	ConstraintPrimaryKey
	ConstraintForeignKey
	ConstraintDefault
	ConstraintAutoIncrement
	ConstraintCheck
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintNotNull:
		return "NOT NULL"
	case ConstraintUnique:
		return "UNIQUE"
	case ConstraintPrimaryKey:
		return "PRIMARY KEY"
	case ConstraintForeignKey:
		return "FOREIGN KEY"
	case ConstraintDefault:
		return "DEFAULT"
	case ConstraintAutoIncrement:
		return "AUTO_INCREMENT"
	case ConstraintCheck:
		return "CHECK"
	default:
		newInternal("unexpected constraint kind: %d", k)
		return ""
	}
}

// Constraint is a single per-column or table-level constraint. Only the
// field relevant to Kind is populated:
//
//	ConstraintForeignKey: RefTable (+ RefColumn if specified)
//	ConstraintDefault:    DefaultValue
//	ConstraintCheck:      CheckExpr
//	Columns:              used by table-level key declarations to name the
//	                      column(s) the key covers; empty for per-column
//	                      constraints, where the owning ColumnDecl implies
//	                      the column.
type Constraint struct {
	Kind         ConstraintKind
	Columns      []string
	RefTable     string
	RefColumn    string
	DefaultValue *Literal
	CheckExpr    Expression
}

func (c Constraint) String() string {
	switch c.Kind {
	case ConstraintForeignKey:
		if c.RefColumn == "" {
			return fmt.Sprintf("ForeignKey([%s], %s)", strings.Join(c.Columns, ", "), c.RefTable)
		}
		return fmt.Sprintf("ForeignKey([%s], %s.%s)", strings.Join(c.Columns, ", "), c.RefTable, c.RefColumn)
	case ConstraintDefault:
		return fmt.Sprintf("Default(%s)", c.DefaultValue.String())
	case ConstraintCheck:
		return fmt.Sprintf("Check(%s)", c.CheckExpr.String())
	case ConstraintPrimaryKey, ConstraintUnique:
		if len(c.Columns) > 0 {
			return fmt.Sprintf("%s([%s])", c.Kind, strings.Join(c.Columns, ", "))
		}
		return c.Kind.String()
	default:
		return c.Kind.String()
	}
}

// ColumnSize is an optional display size/precision, e.g. VARCHAR(64).
type ColumnSize struct {
	Set   bool
	Value int
}

// ColumnDecl is one column declaration inside a CreateTable, in source
// order; its Constraints are collected per-column in source order. Their
// relative ordering is preserved for a later constraint-application stage
// but carries no semantic weight in this front-end.
type ColumnDecl struct {
	Name        string
	Type        ColumnType
	Size        ColumnSize
	Constraints []Constraint
}

func (c ColumnDecl) String() string {
	size := ""
	if c.Size.Set {
		size = fmt.Sprintf("(%d)", c.Size.Value)
	}
	if len(c.Constraints) == 0 {
		return fmt.Sprintf("Column(%s, %s%s)", c.Name, c.Type, size)
	}
	cs := make([]string, len(c.Constraints))
	for i, con := range c.Constraints {
		cs[i] = con.String()
	}
	return fmt.Sprintf("Column(%s, %s%s, [%s])", c.Name, c.Type, size, strings.Join(cs, ", "))
}

// CreateTable is a parsed "CREATE TABLE" statement. Table-level key
// declarations (PRIMARY KEY (...), FOREIGN KEY (...) REFERENCES ...,
// UNIQUE (...), CHECK (...)) are kept separately from per-column
// constraints in Keys.
type CreateTable struct {
	Name    string
	Columns []ColumnDecl
	Keys    []Constraint
}

func (s *CreateTable) statementNode() {}

func (s *CreateTable) String() string {
	cols := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		cols[i] = c.String()
	}
	if len(s.Keys) == 0 {
		return fmt.Sprintf("CreateTable(%s, [%s])", s.Name, strings.Join(cols, ", "))
	}
	keys := make([]string, len(s.Keys))
	for i, k := range s.Keys {
		keys[i] = k.String()
	}
	return fmt.Sprintf("CreateTable(%s, [%s], [%s])", s.Name, strings.Join(cols, ", "), strings.Join(keys, ", "))
}
