package builtin

import (
	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func avgThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	var result float64
	for _, childExpr := range n.Children {
		child := evalChild(ctx, childExpr)
		if child.IsNull {
			return exprnode.NewNullOfKind(exprnode.Double), nil
		}
		result += child.DoubleValue
	}
	return exprnode.NewDouble(result/float64(len(n.Children)), false), nil
}

func updateAvg(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
	if len(call.Children) < 1 {
		ctx.ErrorArity("AVG requires at least one parameter.")
		return nil, nil
	}
	expected := make([]exprnode.Kind, len(call.Children))
	for i, child := range call.Children {
		if child.Kind != exprnode.Double && child.Kind != exprnode.Int && child.Kind != exprnode.Unknown {
			ctx.ErrorType("AVG only supports numeric data types (INT, DOUBLE).")
			return nil, nil
		}
		expected[i] = exprnode.Double
	}
	return &specs.UpdatePlan{
		ExpectedArgTypes: expected,
		ReturnType:       exprnode.Double,
		Implementation:   avgThunk,
	}, nil
}

func InstallAvg(ctx *sqlctx.Context) {
	ctx.RegisterSpec(&specs.Base{SpecName: "AVG", Desc: "Calculates the average of numeric values.", UpdateFn: updateAvg})
}
