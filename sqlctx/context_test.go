package sqlctx

import (
	"testing"

	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
)

func TestRegisterAndLookupColumnCaseInsensitive(t *testing.T) {
	ctx := New()
	ctx.RegisterColumn("Status", exprnode.String, func(c *Context) *exprnode.Node {
		return exprnode.NewString("open", false)
	})

	col, ok := ctx.LookupColumn("STATUS")
	if !ok {
		t.Fatal("expected a case-insensitive column lookup to succeed")
	}
	if col.Kind != exprnode.String {
		t.Errorf("expected Kind String, got %s", col.Kind)
	}
	node := col.Getter(ctx)
	if node.StringValue != "open" {
		t.Errorf("expected the getter to return \"open\", got %q", node.StringValue)
	}
}

func TestLookupColumnMissing(t *testing.T) {
	ctx := New()
	if _, ok := ctx.LookupColumn("nope"); ok {
		t.Error("expected a lookup of an unregistered column to fail")
	}
}

func TestReserveKeywordCaseInsensitive(t *testing.T) {
	ctx := New()
	ctx.ReserveKeyword("AND")
	if !ctx.IsReservedKeyword("and") {
		t.Error("expected keyword lookups to be case-insensitive")
	}
}

func TestRegisterAndGetSpec(t *testing.T) {
	ctx := New()
	ctx.RegisterSpec(stubSpec("NOW"))
	if !ctx.IsFunctionName("now") {
		t.Error("expected IsFunctionName to be case-insensitive")
	}
	spec, ok := ctx.GetSpec("NOW")
	if !ok || spec.Name() != "NOW" {
		t.Errorf("expected to retrieve the registered spec, got (%v, %v)", spec, ok)
	}
}

func TestErrorsAndWarningsAreIndependentQueues(t *testing.T) {
	ctx := New()
	ctx.Errorf("boom %d", 1)
	ctx.Warnf("careful %d", 2)

	if len(ctx.Errors()) != 1 || len(ctx.Warnings()) != 1 {
		t.Fatalf("expected 1 error and 1 warning, got %d errors, %d warnings", len(ctx.Errors()), len(ctx.Warnings()))
	}
	if !ctx.HasErrors() {
		t.Error("expected HasErrors to report true")
	}

	ctx.ClearMessages()
	if ctx.HasErrors() || len(ctx.Warnings()) != 0 {
		t.Error("expected ClearMessages to empty both queues")
	}
}

type stubSpec string

func (s stubSpec) Name() string { return string(s) }
