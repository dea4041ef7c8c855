package main

import (
	"testing"

	"github.com/knode-ai-open-source/sql-parser-library/fixture"
)

func TestPassesFilterRequiresEverySubstring(t *testing.T) {
	if !passesFilter("status = 'open' AND total > 10", nil) {
		t.Error("expected an empty filter list to always pass")
	}
	if !passesFilter("status = 'open' AND total > 10", []string{"status", "total"}) {
		t.Error("expected a query containing every filter substring to pass")
	}
	if passesFilter("status = 'open'", []string{"status", "total"}) {
		t.Error("expected a query missing one filter substring to fail")
	}
}

func TestSameSetIgnoresOrderAndCase(t *testing.T) {
	if !sameSet([]string{"1", "2"}, []string{"2", "1"}) {
		t.Error("expected sameSet to ignore ordering")
	}
	if !sameSet([]string{"A"}, []string{"a"}) {
		t.Error("expected sameSet to compare case-insensitively")
	}
	if sameSet([]string{"1", "2"}, []string{"1"}) {
		t.Error("expected mismatched lengths to fail")
	}
}

func TestRowLabelUsesIDColumnWhenPresent(t *testing.T) {
	row := map[string]interface{}{"id": "abc"}
	if got := rowLabel(row, "id", 0); got != "abc" {
		t.Errorf("expected \"abc\", got %q", got)
	}
}

func TestRowLabelFallsBackToIndexWithoutIDColumn(t *testing.T) {
	row := map[string]interface{}{"id": "abc"}
	if got := rowLabel(row, "", 3); got != "ROW-3" {
		t.Errorf("expected \"ROW-3\", got %q", got)
	}
}

func TestRunQueryReportsPassAndFail(t *testing.T) {
	table := fixture.Table{
		Columns: []fixture.Column{{Name: "id", Type: "STRING"}, {Name: "status", Type: "STRING"}},
		Rows: []map[string]interface{}{
			{"id": "1", "status": "open"},
			{"id": "2", "status": "closed"},
		},
	}
	ctx := table.NewContext()

	pass := fixture.Query{SQL: "status = 'open'", Expected: fixture.ExpectedIDs{"1"}}
	if !runQuery(ctx, pass, "id", table.Rows, 0) {
		t.Error("expected a query whose actual matches match the expected ids to pass")
	}

	fail := fixture.Query{SQL: "status = 'open'", Expected: fixture.ExpectedIDs{"2"}}
	if runQuery(ctx, fail, "id", table.Rows, 1) {
		t.Error("expected a query whose actual matches don't match the expected ids to fail")
	}
}
