package builtin

import (
	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func isTrueThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	child := evalChild(ctx, n.Children[0])
	return exprnode.NewBool(!child.IsNull && child.BoolValue, false), nil
}

func isNotTrueThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	child := evalChild(ctx, n.Children[0])
	return exprnode.NewBool(child.IsNull || !child.BoolValue, false), nil
}

func isFalseThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	child := evalChild(ctx, n.Children[0])
	return exprnode.NewBool(!child.IsNull && !child.BoolValue, false), nil
}

func isNotFalseThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	child := evalChild(ctx, n.Children[0])
	return exprnode.NewBool(child.IsNull || child.BoolValue, false), nil
}

func updateIsBoolean(name string, impl exprnode.Thunk) specs.UpdateFunc {
	return func(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
		if len(call.Children) != 1 {
			ctx.ErrorArity("%s requires exactly one parameter.", name)
			return nil, nil
		}
		return &specs.UpdatePlan{
			ExpectedArgTypes: []exprnode.Kind{call.Children[0].Kind},
			ReturnType:       exprnode.Bool,
			Implementation:   impl,
		}, nil
	}
}

func InstallIsBoolean(ctx *sqlctx.Context) {
	ctx.RegisterSpec(&specs.Base{SpecName: "IS TRUE", Desc: "Checks if a value is TRUE.", UpdateFn: updateIsBoolean("IS TRUE", isTrueThunk)})
	ctx.RegisterSpec(&specs.Base{SpecName: "IS NOT TRUE", Desc: "Checks if a value is NOT TRUE.", UpdateFn: updateIsBoolean("IS NOT TRUE", isNotTrueThunk)})
	ctx.RegisterSpec(&specs.Base{SpecName: "IS FALSE", Desc: "Checks if a value is FALSE.", UpdateFn: updateIsBoolean("IS FALSE", isFalseThunk)})
	ctx.RegisterSpec(&specs.Base{SpecName: "IS NOT FALSE", Desc: "Checks if a value is NOT FALSE.", UpdateFn: updateIsBoolean("IS NOT FALSE", isNotFalseThunk)})
}
