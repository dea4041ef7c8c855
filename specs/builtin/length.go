package builtin

import (
	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func lengthThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := evalChild(ctx, n.Children[0])
	if v.IsNull {
		return exprnode.NewNullOfKind(exprnode.Int), nil
	}
	return exprnode.NewInt(int64(len(v.StringValue)), false), nil
}

func updateLength(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
	if len(call.Children) != 1 {
		ctx.ErrorArity("LENGTH function requires exactly one parameter.")
		return nil, nil
	}
	return &specs.UpdatePlan{
		ExpectedArgTypes: []exprnode.Kind{exprnode.String},
		ReturnType:       exprnode.Int,
		Implementation:   lengthThunk,
	}, nil
}

func InstallLength(ctx *sqlctx.Context) {
	ctx.RegisterSpec(&specs.Base{SpecName: "LENGTH", Desc: "Returns the length of a string.", UpdateFn: updateLength})
}
