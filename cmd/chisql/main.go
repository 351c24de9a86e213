// Command chisql parses a batch of SQL statements, desugars every query
// it finds against a schema file, and prints the resulting tree for each
// statement -- RA where desugaring succeeded, SRA where it didn't, so the
// caller can always see what was parsed.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"chisql"
)

func main() {
	schemaPath := flag.String("schema", "", "path to a JSON schema file ({\"table\": [\"col1\",\"col2\"]})")
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-schema schema.json] <file.sql>\n", os.Args[0])
		os.Exit(1)
	}

	schema, err := loadSchema(*schemaPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	src, err := readInput(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	os.Exit(run(src, schema))
}

func readInput(path string) (string, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", errors.Wrapf(err, "opening %s", path)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return string(data), nil
}

func loadSchema(path string) (chisql.SchemaOracle, error) {
	if path == "" {
		return chisql.MapSchema{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading schema file %s", path)
	}
	var m map[string][]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "parsing schema file %s", path)
	}
	return chisql.MapSchema(m), nil
}

// run parses and desugars src, printing one line per statement to
// stdout and one line per error to stderr. It returns the process exit
// code: 0 only if every statement parsed and every query desugared
// cleanly.
func run(src string, schema chisql.SchemaOracle) int {
	prog, errs := chisql.Parse(src)
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}
	ok := len(errs) == 0

	for _, stmt := range prog {
		if !printStatement(stmt, schema) {
			ok = false
		}
	}
	if ok {
		return 0
	}
	return 1
}

func printStatement(stmt chisql.Statement, schema chisql.SchemaOracle) (ok bool) {
	q, isQuery := stmt.(*chisql.Query)
	if !isQuery {
		fmt.Println(stmt.String())
		return true
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, recoveredError(r))
			fmt.Println(q.SRA.String())
			ok = false
		}
	}()

	ra, err := chisql.Desugar(q.SRA, schema)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Println(q.SRA.String())
		return false
	}
	fmt.Println(ra.String())
	return true
}

// recoveredError turns a panic value -- expected to be the *chisql.Error
// an Internal invariant violation panics with -- into something
// printable, without assuming its concrete type.
func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("internal error: %v", r)
}
