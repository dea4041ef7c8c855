package builtin_test

import (
	"testing"

	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/lower"
	"github.com/knode-ai-open-source/sql-parser-library/parser"
	"github.com/knode-ai-open-source/sql-parser-library/simplify"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/specs/builtin"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func newTestContext() *sqlctx.Context {
	ctx := sqlctx.New()
	builtin.InstallDefaults(ctx)
	return ctx
}

// eval runs the full tokenize/parse/lower/resolve/simplify/evaluate
// pipeline over sql and returns the resulting literal node, the exercise
// surface every specs/builtin spec runs through end to end.
func eval(t *testing.T, ctx *sqlctx.Context, sql string) *exprnode.Node {
	t.Helper()
	prog, errs := parser.Parse(sql, ctx)
	if len(errs) > 0 {
		t.Fatalf("parse error for %q: %v", sql, errs)
	}
	node := lower.Lower(ctx, prog)
	if !specs.Resolve(ctx, node) {
		t.Fatalf("resolve error for %q: %v", sql, ctx.Errors())
	}
	node = simplify.Simplify(ctx, node)
	result, err := node.Eval(ctx)
	if err != nil {
		t.Fatalf("eval error for %q: %v", sql, err)
	}
	return result
}

func TestArithmetic(t *testing.T) {
	cases := []struct {
		sql      string
		wantInt  int64
		wantKind exprnode.Kind
	}{
		{"2 + 3", 5, exprnode.Int},
		{"2 - 3", -1, exprnode.Int},
		{"2 * 3", 6, exprnode.Int},
	}
	for _, c := range cases {
		out := eval(t, newTestContext(), c.sql)
		if out.Kind != c.wantKind || out.IntValue != c.wantInt {
			t.Errorf("%s: expected %s(%d), got %s(%d)", c.sql, c.wantKind, c.wantInt, out.Kind, out.IntValue)
		}
	}
}

func TestDivisionPromotesToDouble(t *testing.T) {
	out := eval(t, newTestContext(), "5 / 2")
	if out.Kind != exprnode.Double {
		t.Fatalf("expected division to promote to Double, got %s", out.Kind)
	}
	if out.DoubleValue != 2.5 {
		t.Errorf("expected 5/2 == 2.5, got %v", out.DoubleValue)
	}
}

func TestComparison(t *testing.T) {
	cases := []struct {
		sql  string
		want bool
	}{
		{"1 = 1", true},
		{"1 = 2", false},
		{"1 != 2", true},
		{"1 < 2", true},
		{"2 <= 2", true},
		{"3 > 2", true},
	}
	for _, c := range cases {
		out := eval(t, newTestContext(), c.sql)
		if out.Kind != exprnode.Bool || out.BoolValue != c.want {
			t.Errorf("%s: expected %v, got %#v", c.sql, c.want, out)
		}
	}
}

func TestBetween(t *testing.T) {
	if out := eval(t, newTestContext(), "5 BETWEEN 1 AND 10"); !out.BoolValue {
		t.Error("expected 5 BETWEEN 1 AND 10 to be true")
	}
	if out := eval(t, newTestContext(), "5 NOT BETWEEN 1 AND 10"); out.BoolValue {
		t.Error("expected 5 NOT BETWEEN 1 AND 10 to be false")
	}
}

func TestInList(t *testing.T) {
	if out := eval(t, newTestContext(), "2 IN (1, 2, 3)"); !out.BoolValue {
		t.Error("expected 2 IN (1,2,3) to be true")
	}
	if out := eval(t, newTestContext(), "5 NOT IN (1, 2, 3)"); !out.BoolValue {
		t.Error("expected 5 NOT IN (1,2,3) to be true")
	}
}

// TestInListElementwiseConversion exercises a list whose elements don't all
// share the value's kind: the int 1 and the double 2.0 must both convert to
// the promoted common type (Double) before comparison, not just the value.
func TestInListElementwiseConversion(t *testing.T) {
	out := eval(t, newTestContext(), "1 IN (1, 2.0)")
	if out.IsNull || !out.BoolValue {
		t.Errorf("expected 1 IN (1, 2.0) to be true, got %#v", out)
	}
	out = eval(t, newTestContext(), "3 IN (1, 2.0)")
	if out.IsNull || out.BoolValue {
		t.Errorf("expected 3 IN (1, 2.0) to be false, got %#v", out)
	}
}

// TestInListWithNull covers the list's NULL-element handling, which is
// where IN and NOT IN diverge from each other: IN falls back to standard
// three-valued logic (not-found-plus-null yields NULL), while NOT IN
// deliberately deviates and reports true instead of NULL (see inThunk).
func TestInListWithNull(t *testing.T) {
	out := eval(t, newTestContext(), "5 IN (1, 2, NULL)")
	if !out.IsNull {
		t.Errorf("expected 5 IN (1, 2, NULL) to be NULL (not found, list has null), got %#v", out)
	}

	out = eval(t, newTestContext(), "5 NOT IN (1, 2, NULL)")
	if out.IsNull || !out.BoolValue {
		t.Errorf("expected 5 NOT IN (1, 2, NULL) to be true (deliberate deviation), got %#v", out)
	}

	// A match found before the null is reached still reports a definite
	// result, null element notwithstanding.
	out = eval(t, newTestContext(), "2 IN (1, 2, NULL)")
	if out.IsNull || !out.BoolValue {
		t.Errorf("expected 2 IN (1, 2, NULL) to be true, got %#v", out)
	}
	out = eval(t, newTestContext(), "2 NOT IN (1, 2, NULL)")
	if out.IsNull || out.BoolValue {
		t.Errorf("expected 2 NOT IN (1, 2, NULL) to be false, got %#v", out)
	}
}

func TestLike(t *testing.T) {
	if out := eval(t, newTestContext(), "'hello' LIKE 'h%'"); !out.BoolValue {
		t.Error("expected 'hello' LIKE 'h%' to be true")
	}
	if out := eval(t, newTestContext(), "'hello' LIKE 'z%'"); out.BoolValue {
		t.Error("expected 'hello' LIKE 'z%' to be false")
	}
}

func TestCoalesce(t *testing.T) {
	// A literal NULL lowers with Kind Unknown and never picks up a concrete
	// kind, so it can only stand alongside other Unknown-kind arguments; an
	// Int column bound to a null value exercises the same skip-null runtime
	// path without tripping the spec's type-compatibility check.
	ctx := newTestContext()
	ctx.RegisterColumn("total", exprnode.Int, func(c *sqlctx.Context) *exprnode.Node {
		return exprnode.NewNullOfKind(exprnode.Int)
	})
	out := eval(t, ctx, "COALESCE(total, 7)")
	if out.IsNull || out.IntValue != 7 {
		t.Errorf("expected COALESCE to skip a null column and return 7, got %#v", out)
	}
}

func TestMinMax(t *testing.T) {
	out := eval(t, newTestContext(), "MAX(1, 9, 3)")
	if out.IntValue != 9 {
		t.Errorf("expected MAX(1,9,3) == 9, got %d", out.IntValue)
	}
	out = eval(t, newTestContext(), "MIN(1, 9, 3)")
	if out.IntValue != 1 {
		t.Errorf("expected MIN(1,9,3) == 1, got %d", out.IntValue)
	}
}

func TestConcat(t *testing.T) {
	out := eval(t, newTestContext(), "CONCAT('a', 'b', 'c')")
	if out.StringValue != "abc" {
		t.Errorf("expected CONCAT to join strings, got %q", out.StringValue)
	}
}

func TestRound(t *testing.T) {
	out := eval(t, newTestContext(), "ROUND(1.456, 2)")
	if out.DoubleValue != 1.46 {
		t.Errorf("expected ROUND(1.456, 2) == 1.46, got %v", out.DoubleValue)
	}
}

func TestLengthAndTrim(t *testing.T) {
	out := eval(t, newTestContext(), "LENGTH('hello')")
	if out.IntValue != 5 {
		t.Errorf("expected LENGTH('hello') == 5, got %d", out.IntValue)
	}
	out = eval(t, newTestContext(), "TRIM('  hi  ')")
	if out.StringValue != "hi" {
		t.Errorf("expected TRIM to strip spaces, got %q", out.StringValue)
	}
}

func TestLowerUpper(t *testing.T) {
	out := eval(t, newTestContext(), "UPPER('hi')")
	if out.StringValue != "HI" {
		t.Errorf("expected UPPER('hi') == HI, got %q", out.StringValue)
	}
	out = eval(t, newTestContext(), "LOWER('HI')")
	if out.StringValue != "hi" {
		t.Errorf("expected LOWER('HI') == hi, got %q", out.StringValue)
	}
}

func TestIsNullAndIsBoolean(t *testing.T) {
	out := eval(t, newTestContext(), "NULL IS NULL")
	if !out.BoolValue {
		t.Error("expected NULL IS NULL to be true")
	}
	out = eval(t, newTestContext(), "(1 = 1) IS TRUE")
	if !out.BoolValue {
		t.Error("expected (1 = 1) IS TRUE to be true")
	}
}

func TestCastConvert(t *testing.T) {
	out := eval(t, newTestContext(), "'42'::int")
	if out.Kind != exprnode.Int || out.IntValue != 42 {
		t.Errorf("expected '42'::int to become Int(42), got %#v", out)
	}
}

func TestAndOrNot(t *testing.T) {
	if out := eval(t, newTestContext(), "1 = 1 AND 2 = 2"); !out.BoolValue {
		t.Error("expected AND of two true comparisons to be true")
	}
	if out := eval(t, newTestContext(), "1 = 2 OR 2 = 2"); !out.BoolValue {
		t.Error("expected OR with one true operand to be true")
	}
	if out := eval(t, newTestContext(), "NOT (1 = 2)"); !out.BoolValue {
		t.Error("expected NOT of a false comparison to be true")
	}
}
