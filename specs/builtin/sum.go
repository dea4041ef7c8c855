// Unlike AVG, SUM silently skips NULL parameters rather than nulling the
// whole result.
package builtin

import (
	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func sumThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	var result float64
	for _, childExpr := range n.Children {
		child := evalChild(ctx, childExpr)
		if child.IsNull {
			continue
		}
		result += child.DoubleValue
	}
	return exprnode.NewDouble(result, false), nil
}

func updateSum(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
	if len(call.Children) < 1 {
		ctx.ErrorArity("SUM requires at least one parameter.")
		return nil, nil
	}
	expected := make([]exprnode.Kind, len(call.Children))
	for i := range expected {
		expected[i] = exprnode.Double
	}
	return &specs.UpdatePlan{
		ExpectedArgTypes: expected,
		ReturnType:       exprnode.Double,
		Implementation:   sumThunk,
	}, nil
}

func InstallSum(ctx *sqlctx.Context) {
	ctx.RegisterSpec(&specs.Base{SpecName: "SUM", Desc: "Calculates the sum of numeric values.", UpdateFn: updateSum})
}
