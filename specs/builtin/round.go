package builtin

import (
	"math"

	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func roundThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := evalChild(ctx, n.Children[0])
	if v.IsNull {
		return exprnode.NewNullOfKind(exprnode.Double), nil
	}
	return exprnode.NewDouble(math.Round(v.DoubleValue), false), nil
}

func roundDecimalThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := evalChild(ctx, n.Children[0])
	places := evalChild(ctx, n.Children[1])
	if v.IsNull || places.IsNull {
		return exprnode.NewNullOfKind(exprnode.Double), nil
	}
	factor := math.Pow(10, float64(places.IntValue))
	return exprnode.NewDouble(math.Round(v.DoubleValue*factor)/factor, false), nil
}

func floorThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := evalChild(ctx, n.Children[0])
	if v.IsNull {
		return exprnode.NewNullOfKind(exprnode.Double), nil
	}
	return exprnode.NewDouble(math.Floor(v.DoubleValue), false), nil
}

func ceilThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := evalChild(ctx, n.Children[0])
	if v.IsNull {
		return exprnode.NewNullOfKind(exprnode.Double), nil
	}
	return exprnode.NewDouble(math.Ceil(v.DoubleValue), false), nil
}

func updateRound(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
	if len(call.Children) < 1 || len(call.Children) > 2 {
		ctx.ErrorArity("ROUND requires one or two parameters.")
		return nil, nil
	}
	if len(call.Children) == 1 {
		return &specs.UpdatePlan{
			ExpectedArgTypes: []exprnode.Kind{exprnode.Double},
			ReturnType:       exprnode.Double,
			Implementation:   roundThunk,
		}, nil
	}
	return &specs.UpdatePlan{
		ExpectedArgTypes: []exprnode.Kind{exprnode.Double, exprnode.Int},
		ReturnType:       exprnode.Double,
		Implementation:   roundDecimalThunk,
	}, nil
}

func updateUnaryMath(name string, impl exprnode.Thunk) specs.UpdateFunc {
	return func(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
		if len(call.Children) != 1 {
			ctx.ErrorArity("%s requires exactly one parameter.", name)
			return nil, nil
		}
		return &specs.UpdatePlan{
			ExpectedArgTypes: []exprnode.Kind{exprnode.Double},
			ReturnType:       exprnode.Double,
			Implementation:   impl,
		}, nil
	}
}

func InstallRound(ctx *sqlctx.Context) {
	ctx.RegisterSpec(&specs.Base{SpecName: "ROUND", Desc: "Rounds a number to the nearest integer or specified decimal places.", UpdateFn: updateRound})
	ctx.RegisterSpec(&specs.Base{SpecName: "FLOOR", Desc: "Rounds a number down to the nearest integer.", UpdateFn: updateUnaryMath("FLOOR", floorThunk)})
	ctx.RegisterSpec(&specs.Base{SpecName: "CEIL", Desc: "Rounds a number up to the nearest integer.", UpdateFn: updateUnaryMath("CEIL", ceilThunk)})
}
