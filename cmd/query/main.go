// Command query is the single-query JSON driver CLI harness. It loads one
// fixture file's table, compiles one query (either the fixture's own or
// one supplied on the command line), runs it against every row, and
// reports which rows matched versus which were expected — the
// single-query counterpart to cmd/fixturerun's directory-batch driving.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"

	sqlexpr "github.com/knode-ai-open-source/sql-parser-library"
	"github.com/knode-ai-open-source/sql-parser-library/fixture"
)

type options struct {
	File     string `short:"f" long:"file" description:"fixture JSON file" required:"true"`
	SQL      string `short:"e" long:"expr" description:"override the fixture's query with this WHERE-clause expression"`
	Query    int    `long:"query" description:"index into the fixture's queries array" default:"0"`
	Detailed bool   `short:"d" long:"detailed" description:"print the matched/unmatched state of every row"`
}

func main() {
	var opts options
	p := flags.NewParser(&opts, flags.Default)
	p.Usage = "-f fixture.json [-e \"status = 'open'\"]"
	if _, err := p.Parse(); err != nil {
		os.Exit(1)
	}

	suite, err := fixture.Load(opts.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sql := opts.SQL
	var expected []string
	if sql == "" {
		if opts.Query < 0 || opts.Query >= len(suite.Queries) {
			fmt.Fprintf(os.Stderr, "query index %d out of range (0..%d)\n", opts.Query, len(suite.Queries)-1)
			os.Exit(1)
		}
		q := suite.Queries[opts.Query]
		sql = q.SQL
		expected = q.Expected
	}

	ctx := suite.Table.NewContext()
	fmt.Printf("%s\n", sql)

	compiled, err := sqlexpr.Compile(ctx, sql)
	if err != nil {
		fmt.Printf(" => FAILED (%s)\n", err)
		os.Exit(1)
	}

	idColumn := ""
	for _, c := range suite.Table.Columns {
		if strings.EqualFold(c.Name, "id") {
			idColumn = c.Name
			break
		}
	}

	var actual []string
	for i, row := range suite.Table.Rows {
		matched, err := compiled.MatchesRow(ctx, row)
		if opts.Detailed {
			state := "no match"
			if matched {
				state = "match"
			}
			if err != nil {
				state = fmt.Sprintf("error: %s", err)
			}
			fmt.Printf("  row %d: %s\n", i, state)
		}
		if !matched {
			continue
		}
		actual = append(actual, rowLabel(row, idColumn, i))
	}

	fmt.Printf("expected %d => %s\n", len(expected), strings.Join(expected, " "))
	fmt.Printf("actual   %d => %s\n", len(actual), strings.Join(actual, " "))

	if !sameSet(expected, actual) {
		fmt.Println(" => FAILED")
		os.Exit(1)
	}
	fmt.Println(" => OK")
}

func rowLabel(row map[string]interface{}, idColumn string, index int) string {
	if idColumn == "" {
		return fmt.Sprintf("ROW-%d", index)
	}
	v, ok := row[idColumn]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func sameSet(expected, actual []string) bool {
	if len(expected) != len(actual) {
		return false
	}
	for _, e := range expected {
		found := false
		for _, a := range actual {
			if strings.EqualFold(e, a) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
