package builtin

import (
	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func isNullThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	child := evalChild(ctx, n.Children[0])
	return exprnode.NewBool(child.IsNull, false), nil
}

func isNotNullThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	child := evalChild(ctx, n.Children[0])
	return exprnode.NewBool(!child.IsNull, false), nil
}

func updateIsNull(name string, impl exprnode.Thunk) specs.UpdateFunc {
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

func InstallIsNull(ctx *sqlctx.Context) {
	ctx.RegisterSpec(&specs.Base{SpecName: "IS NULL", Desc: "Checks if a value is NULL.", UpdateFn: updateIsNull("IS NULL", isNullThunk)})
	ctx.RegisterSpec(&specs.Base{SpecName: "IS NOT NULL", Desc: "Checks if a value is NOT NULL.", UpdateFn: updateIsNull("IS NOT NULL", isNotNullThunk)})
}
