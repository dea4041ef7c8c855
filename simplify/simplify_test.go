package simplify

import (
	"testing"

	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs/builtin"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func newTestContext() *sqlctx.Context {
	ctx := sqlctx.New()
	builtin.InstallDefaults(ctx)
	return ctx
}

type specStub string

func (s specStub) Name() string { return string(s) }

func addNode(a, b *exprnode.Node) *exprnode.Node {
	return &exprnode.Node{
		Kind:     exprnode.Int,
		Spec:     specStub("+"), // every registered infix/call node carries a Spec; only identifiers, casts and unary minus leave it nil
		Children: []*exprnode.Node{a, b},
		Thunk: func(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
			return exprnode.NewInt(n.Children[0].IntValue+n.Children[1].IntValue, false), nil
		},
	}
}

func boolLit(v bool) *exprnode.Node { return exprnode.NewBool(v, false) }

func TestFoldConstantArithmetic(t *testing.T) {
	n := addNode(exprnode.NewInt(1, false), exprnode.NewInt(2, false))
	out := Simplify(newTestContext(), n)
	if out.Thunk != nil {
		t.Fatal("expected a folded node with no thunk")
	}
	if out.IntValue != 3 {
		t.Errorf("expected 1+2 to fold to 3, got %d", out.IntValue)
	}
}

// columnNode models a lowered identifier: a leaf with a Thunk that reads
// the bound row, and Spec left nil (lower.lowerIdentifier's shape).
func columnNode() *exprnode.Node {
	return &exprnode.Node{
		Kind: exprnode.Int,
		Thunk: func(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
			return exprnode.NewInt(99, false), nil
		},
	}
}

func TestColumnDoesNotFoldWithoutBoundRow(t *testing.T) {
	ctx := newTestContext()
	out := Simplify(ctx, columnNode())
	if out.Thunk == nil {
		t.Error("expected a Spec-nil column node to stay unfolded with no row bound")
	}
}

func TestColumnFoldsWithBoundRow(t *testing.T) {
	ctx := newTestContext()
	ctx.CurrentRow = map[string]interface{}{"a": 1}
	out := Simplify(ctx, columnNode())
	if out.Thunk != nil || out.IntValue != 99 {
		t.Errorf("expected the column node to fold once a row is bound, got %#v", out)
	}
}

func TestFoldSkipsWhenChildNotLiteral(t *testing.T) {
	n := addNode(columnNode(), exprnode.NewInt(2, false))
	ctx := newTestContext()
	out := Simplify(ctx, n)
	if out.Thunk == nil {
		t.Error("expected the node to stay unfolded since one operand is a column with no bound row")
	}
}

func TestAndAbsorbsFalse(t *testing.T) {
	n := &exprnode.Node{Origin: exprnode.OriginAnd, Kind: exprnode.Bool, Children: []*exprnode.Node{
		boolLit(true), boolLit(false),
	}}
	out := Simplify(newTestContext(), n)
	if out.IsNull || out.BoolValue != false {
		t.Errorf("expected AND with a literal false child to collapse to false, got %#v", out)
	}
}

func TestOrAbsorbsTrue(t *testing.T) {
	n := &exprnode.Node{Origin: exprnode.OriginOr, Kind: exprnode.Bool, Children: []*exprnode.Node{
		boolLit(false), boolLit(true),
	}}
	out := Simplify(newTestContext(), n)
	if out.IsNull || out.BoolValue != true {
		t.Errorf("expected OR with a literal true child to collapse to true, got %#v", out)
	}
}

func TestAndPrunesIdentity(t *testing.T) {
	other := &exprnode.Node{Kind: exprnode.Bool, Thunk: func(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
		return n, nil
	}}
	n := &exprnode.Node{Origin: exprnode.OriginAnd, Kind: exprnode.Bool, Children: []*exprnode.Node{
		boolLit(true), other,
	}}
	out := Simplify(newTestContext(), n)
	if out != other {
		t.Errorf("expected AND(true, x) to simplify down to x, got %#v", out)
	}
}

func TestOrPrunesIdentity(t *testing.T) {
	other := &exprnode.Node{Kind: exprnode.Bool, Thunk: func(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
		return n, nil
	}}
	n := &exprnode.Node{Origin: exprnode.OriginOr, Kind: exprnode.Bool, Children: []*exprnode.Node{
		boolLit(false), other,
	}}
	out := Simplify(newTestContext(), n)
	if out != other {
		t.Errorf("expected OR(false, x) to simplify down to x, got %#v", out)
	}
}

func TestFoldNoOpConvert(t *testing.T) {
	child := exprnode.NewInt(5, false)
	n := &exprnode.Node{Origin: exprnode.OriginKeyword, Kind: exprnode.Int, Children: []*exprnode.Node{child}}
	out := Simplify(newTestContext(), n)
	if out != child {
		t.Errorf("expected a no-op CAST to collapse to its child, got %#v", out)
	}
}

func TestRecursesIntoChildrenBeforeFoldingParent(t *testing.T) {
	inner := addNode(exprnode.NewInt(1, false), exprnode.NewInt(2, false))
	outer := addNode(inner, exprnode.NewInt(10, false))
	out := Simplify(newTestContext(), outer)
	if out.Thunk != nil || out.IntValue != 13 {
		t.Errorf("expected nested arithmetic to fold fully to 13, got %#v", out)
	}
}

func TestNowDoesNotFoldByDefault(t *testing.T) {
	nowSpec := specStub("NOW")
	n := &exprnode.Node{
		Kind: exprnode.Datetime,
		Spec: nowSpec,
		Thunk: func(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
			return exprnode.NewDatetime(0, false), nil
		},
	}
	out := Simplify(newTestContext(), n)
	if out.Thunk == nil {
		t.Error("expected NOW() to stay unfolded when row-independent folding is not explicitly disabled")
	}
}

func TestNowFoldsWhenExplicitlyAllowed(t *testing.T) {
	nowSpec := specStub("NOW")
	n := &exprnode.Node{
		Kind: exprnode.Datetime,
		Spec: nowSpec,
		Thunk: func(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
			return exprnode.NewDatetime(1000, false), nil
		},
	}
	ctx := newTestContext()
	ctx.RowIndependentFoldingDisabled = true
	out := Simplify(ctx, n)
	if out.Thunk != nil || out.Epoch != 1000 {
		t.Errorf("expected NOW() to fold once RowIndependentFoldingDisabled is set, got %#v", out)
	}
}
