package builtin

import (
	"strings"

	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func betweenThunk(kind exprnode.Kind, negate bool) exprnode.Thunk {
	return func(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
		value := evalChild(ctx, n.Children[0])
		lo := evalChild(ctx, n.Children[1])
		hi := evalChild(ctx, n.Children[2])
		if value.IsNull || lo.IsNull || hi.IsNull {
			return exprnode.NewNullOfKind(exprnode.Bool), nil
		}
		var result bool
		switch kind {
		case exprnode.Int:
			result = lo.IntValue <= value.IntValue && value.IntValue <= hi.IntValue
		case exprnode.Double:
			result = lo.DoubleValue <= value.DoubleValue && value.DoubleValue <= hi.DoubleValue
		case exprnode.String:
			result = strings.ToLower(lo.StringValue) <= strings.ToLower(value.StringValue) &&
				strings.ToLower(value.StringValue) <= strings.ToLower(hi.StringValue)
		case exprnode.Datetime:
			result = lo.Epoch <= value.Epoch && value.Epoch <= hi.Epoch
		}
		if negate {
			result = !result
		}
		return exprnode.NewBool(result, false), nil
	}
}

func updateBetween(name string, negate bool) specs.UpdateFunc {
	return func(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
		if len(call.Children) != 3 {
			ctx.ErrorArity("%s requires exactly three parameters", name)
			return nil, nil
		}
		common := specs.PromoteAll([]exprnode.Kind{call.Children[0].Kind, call.Children[1].Kind, call.Children[2].Kind})
		if common == exprnode.Unknown {
			ctx.ErrorType("%s only supports string, numeric, and datetime types", name)
			return nil, nil
		}
		return &specs.UpdatePlan{
			ExpectedArgTypes: []exprnode.Kind{common, common, common},
			ReturnType:       exprnode.Bool,
			Implementation:   betweenThunk(common, negate),
		}, nil
	}
}

func InstallBetween(ctx *sqlctx.Context) {
	ctx.RegisterSpec(&specs.Base{SpecName: "BETWEEN", Desc: "Checks if a value is between two values.", UpdateFn: updateBetween("BETWEEN", false)})
	ctx.RegisterSpec(&specs.Base{SpecName: "NOT BETWEEN", Desc: "Checks if a value is not between two values.", UpdateFn: updateBetween("NOT BETWEEN", true)})
}
