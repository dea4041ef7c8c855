package lower

import (
	"testing"

	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/parser"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/specs/builtin"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func newTestContext() *sqlctx.Context {
	ctx := sqlctx.New()
	builtin.InstallDefaults(ctx)
	return ctx
}

func lowerSQL(t *testing.T, ctx *sqlctx.Context, sql string) *exprnode.Node {
	t.Helper()
	prog, errs := parser.Parse(sql, ctx)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", sql, errs)
	}
	return Lower(ctx, prog)
}

func TestLowerIntegerLiteral(t *testing.T) {
	n := lowerSQL(t, newTestContext(), "1")
	if n.Kind != exprnode.Int || n.IntValue != 1 {
		t.Errorf("expected an Int literal node with value 1, got %#v", n)
	}
}

func TestLowerNullLiteral(t *testing.T) {
	n := lowerSQL(t, newTestContext(), "NULL")
	if !n.IsNull {
		t.Error("expected NULL to lower to a node with IsNull=true")
	}
}

func TestLowerIdentifierHasNoSpecAndReadsRow(t *testing.T) {
	ctx := newTestContext()
	ctx.RegisterColumn("status", exprnode.String, func(c *sqlctx.Context) *exprnode.Node {
		return exprnode.NewString("open", false)
	})
	n := lowerSQL(t, ctx, "status")
	if n.Spec != nil {
		t.Error("expected a lowered identifier to leave Spec nil (deferred to column getter)")
	}
	if n.Thunk == nil {
		t.Fatal("expected a lowered identifier to carry a Thunk reading the current row")
	}
	result, err := n.Thunk(ctx, n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.StringValue != "open" {
		t.Errorf("expected the column getter's value \"open\", got %q", result.StringValue)
	}
}

func TestLowerInfixArithmeticCarriesSpec(t *testing.T) {
	n := lowerSQL(t, newTestContext(), "1 + 2")
	if n.Spec == nil {
		t.Error("expected a lowered '+' node to carry a Spec for the later resolve pass")
	}
	if n.Kind != exprnode.Unknown {
		t.Errorf("expected Lower to leave Kind unresolved (specs.Resolve's job), got %s", n.Kind)
	}
	if len(n.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(n.Children))
	}
}

func TestLowerCastBypassesSpecRegistry(t *testing.T) {
	n := lowerSQL(t, newTestContext(), "1::double")
	if n.Spec != nil {
		t.Error("expected a lowered cast to leave Spec nil (specs/convert.go bypasses the registry)")
	}
	if n.Kind != exprnode.Double {
		t.Errorf("expected Lower to resolve a cast's Kind immediately, got %s", n.Kind)
	}
}

func TestLowerUnknownCastTypeRecordsError(t *testing.T) {
	ctx := newTestContext()
	lowerSQL(t, ctx, "1::not_a_real_type")
	if len(ctx.Errors()) == 0 {
		t.Error("expected an error for an unrecognised cast target type")
	}
}

func TestLowerBetweenAndResolve(t *testing.T) {
	ctx := newTestContext()
	ctx.RegisterColumn("a", exprnode.Int, func(c *sqlctx.Context) *exprnode.Node {
		return exprnode.NewInt(5, false)
	})
	n := lowerSQL(t, ctx, "a BETWEEN 1 AND 10")
	if !specs.Resolve(ctx, n) {
		t.Fatalf("unexpected resolve failure: %v", ctx.Errors())
	}
	result, err := n.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected eval error: %v", err)
	}
	if result.IsNull || result.BoolValue != true {
		t.Errorf("expected 5 BETWEEN 1 AND 10 to evaluate true, got %#v", result)
	}
}
