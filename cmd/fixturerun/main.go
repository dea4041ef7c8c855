// Command fixturerun is the fixture runner CLI harness: run every query in
// one fixture file, or every fixture (JSON or YAML) under a directory, and
// exit 0 iff all queries matched their expected id lists. The --contains
// filter skips a query unless its SQL text contains every filter substring.
// --verbose assigns a logrus.Logger to each suite's Context so compile-time
// diagnostics are logged rather than silent.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	sqlexpr "github.com/knode-ai-open-source/sql-parser-library"
	"github.com/knode-ai-open-source/sql-parser-library/fixture"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

type options struct {
	Path     []string `short:"p" long:"path" description:"fixture file or directory" required:"true"`
	Contains []string `long:"contains" description:"only run queries whose SQL contains this substring (repeatable, AND semantics)"`
	Verbose  bool     `short:"v" long:"verbose" description:"log each query's compile id and SQL via logrus at debug level"`
}

func main() {
	var opts options
	p := flags.NewParser(&opts, flags.Default)
	p.Usage = "-p fixtures/"
	if _, err := p.Parse(); err != nil {
		os.Exit(1)
	}

	var log *logrus.Logger
	if opts.Verbose {
		log = logrus.New()
		log.SetLevel(logrus.DebugLevel)
	}

	var suites []*fixture.Suite
	for _, path := range opts.Path {
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if info.IsDir() {
			dirSuites, errs := fixture.LoadDir(path)
			for _, e := range errs {
				fmt.Fprintln(os.Stderr, e)
			}
			suites = append(suites, dirSuites...)
		} else {
			s, err := fixture.Load(path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			suites = append(suites, s)
		}
	}

	total, failed := 0, 0
	for _, suite := range suites {
		if suite.Path != "" {
			fmt.Printf("\n%s\n", suite.Path)
		}
		ctx := suite.Table.NewContext()
		ctx.Log = log
		idColumn := ""
		for _, c := range suite.Table.Columns {
			if strings.EqualFold(c.Name, "id") {
				idColumn = c.Name
				break
			}
		}

		for qi, q := range suite.Queries {
			if !passesFilter(q.SQL, opts.Contains) {
				continue
			}
			total++
			if runQuery(ctx, q, idColumn, suite.Table.Rows, qi) {
				continue
			}
			failed++
		}
	}

	fmt.Printf("\n%d/%d queries passed\n", total-failed, total)
	if failed > 0 {
		os.Exit(1)
	}
}

// passesFilter implements "skip unless every filter substring appears in
// the query text" (an empty filter list always passes).
func passesFilter(sql string, filters []string) bool {
	for _, f := range filters {
		if !strings.Contains(sql, f) {
			return false
		}
	}
	return true
}

// runQuery compiles and evaluates one query against every row of the
// table: prints OK/FAILED and the expected/actual id sets, and reports
// whether the query passed.
func runQuery(ctx *sqlctx.Context, q fixture.Query, idColumn string, rows []map[string]interface{}, index int) bool {
	fmt.Printf("  [%d] %s\n", index, q.SQL)

	compiled, err := sqlexpr.Compile(ctx, q.SQL)
	if err != nil {
		fmt.Printf("      => FAILED (%s)\n", err)
		return false
	}
	if ctx.Log != nil {
		fmt.Printf("      query_id %s\n", compiled.QueryID)
	}

	var actual []string
	for i, row := range rows {
		matched, err := compiled.MatchesRow(ctx, row)
		if err != nil {
			fmt.Printf("      row %d: error: %s\n", i, err)
			continue
		}
		if matched {
			actual = append(actual, rowLabel(row, idColumn, i))
		}
	}

	if sameSet(q.Expected, actual) {
		fmt.Println("      => OK")
		return true
	}
	fmt.Printf("      => FAILED expected %s got %s\n",
		strings.Join(q.Expected, " "), strings.Join(actual, " "))
	return false
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
