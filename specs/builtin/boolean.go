package builtin

import (
	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

// boolAnd implements the three-valued truth table for AND
// (AND(null,x) = x if x=false else null), short-circuiting on a resolved
// false before ever evaluating the right side, rather than collapsing to
// NULL as soon as either operand is NULL regardless of the other's value.
// See DESIGN.md.
func boolAnd(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	l := evalChild(ctx, n.Children[0])
	if !l.IsNull && !l.BoolValue {
		return exprnode.NewBool(false, false), nil
	}
	r := evalChild(ctx, n.Children[1])
	if !r.IsNull && !r.BoolValue {
		return exprnode.NewBool(false, false), nil
	}
	if l.IsNull || r.IsNull {
		return exprnode.NewNullOfKind(exprnode.Bool), nil
	}
	return exprnode.NewBool(true, false), nil
}

// boolOr follows the same short-circuit reasoning as boolAnd, for OR(null,x) = x if
// x=true else null.
func boolOr(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	l := evalChild(ctx, n.Children[0])
	if !l.IsNull && l.BoolValue {
		return exprnode.NewBool(true, false), nil
	}
	r := evalChild(ctx, n.Children[1])
	if !r.IsNull && r.BoolValue {
		return exprnode.NewBool(true, false), nil
	}
	if l.IsNull || r.IsNull {
		return exprnode.NewNullOfKind(exprnode.Bool), nil
	}
	return exprnode.NewBool(false, false), nil
}

// boolNot: NOT(null) = null.
func boolNot(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	child := evalChild(ctx, n.Children[0])
	if child.IsNull {
		return exprnode.NewNullOfKind(exprnode.Bool), nil
	}
	return exprnode.NewBool(!child.BoolValue, false), nil
}

func updateLogical(name string, arity int, impl exprnode.Thunk) specs.UpdateFunc {
	return func(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
		if len(call.Children) != arity {
			ctx.ErrorArity("%s requires exactly %d BOOL parameter(s)", name, arity)
			return nil, nil
		}
		expected := make([]exprnode.Kind, arity)
		for i := range expected {
			expected[i] = exprnode.Bool
		}
		return &specs.UpdatePlan{
			ExpectedArgTypes: expected,
			ReturnType:       exprnode.Bool,
			Implementation:   impl,
		}, nil
	}
}

func InstallBoolean(ctx *sqlctx.Context) {
	ctx.RegisterSpec(&specs.Base{SpecName: "AND", Desc: "Logical AND.", UpdateFn: updateLogical("AND", 2, boolAnd)})
	ctx.RegisterSpec(&specs.Base{SpecName: "OR", Desc: "Logical OR.", UpdateFn: updateLogical("OR", 2, boolOr)})
	ctx.RegisterSpec(&specs.Base{SpecName: "NOT", Desc: "Logical NOT.", UpdateFn: updateLogical("NOT", 1, boolNot)})
}
