package builtin

import (
	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func coalesceThunk(kind exprnode.Kind) exprnode.Thunk {
	return func(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
		for _, childExpr := range n.Children {
			child := evalChild(ctx, childExpr)
			if !child.IsNull {
				return child, nil
			}
		}
		return exprnode.NewNullOfKind(kind), nil
	}
}

func updateCoalesce(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
	if len(call.Children) < 1 {
		ctx.ErrorArity("COALESCE function requires at least one parameter.")
		return nil, nil
	}
	common := call.Children[0].Kind
	for _, child := range call.Children[1:] {
		if child.Kind == common {
			continue
		}
		if (common == exprnode.Int && child.Kind == exprnode.Double) ||
			(common == exprnode.Double && child.Kind == exprnode.Int) {
			common = exprnode.Double
			continue
		}
		ctx.ErrorType("COALESCE function parameters must have compatible types.")
		return nil, nil
	}

	expected := make([]exprnode.Kind, len(call.Children))
	for i := range expected {
		expected[i] = common
	}
	return &specs.UpdatePlan{
		ExpectedArgTypes: expected,
		ReturnType:       common,
		Implementation:   coalesceThunk(common),
	}, nil
}

func InstallCoalesce(ctx *sqlctx.Context) {
	ctx.RegisterSpec(&specs.Base{SpecName: "COALESCE", Desc: "Returns the first non-NULL value from the list of arguments.", UpdateFn: updateCoalesce})
}
