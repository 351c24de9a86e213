package chisql

import "fmt"

type tokenType string

const (
	tEnd        tokenType = "end"
	tString     tokenType = "string"
	tIdentifier tokenType = "identifier"
	tNumber     tokenType = "number"
	tKeyword    tokenType = "keyword"
	tOp         tokenType = "operator"
)

type token struct {
	t     tokenType
	val   string
	locus Locus
}

func (t token) String() string {
	return fmt.Sprintf("[%s %s]", t.t, t.val)
}
