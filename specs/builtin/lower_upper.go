package builtin

import (
	"strings"

	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func lowerThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := evalChild(ctx, n.Children[0])
	if v.IsNull {
		return exprnode.NewNullOfKind(exprnode.String), nil
	}
	return exprnode.NewString(strings.ToLower(v.StringValue), false), nil
}

func upperThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := evalChild(ctx, n.Children[0])
	if v.IsNull {
		return exprnode.NewNullOfKind(exprnode.String), nil
	}
	return exprnode.NewString(strings.ToUpper(v.StringValue), false), nil
}

func updateStringUnary(name string, impl exprnode.Thunk) specs.UpdateFunc {
	return func(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
		if len(call.Children) != 1 {
			ctx.ErrorArity("%s requires exactly one parameter.", name)
			return nil, nil
		}
		if call.Children[0].Kind != exprnode.String && call.Children[0].Kind != exprnode.Unknown {
			ctx.ErrorType("%s only supports STRING data type.", name)
			return nil, nil
		}
		return &specs.UpdatePlan{
			ExpectedArgTypes: []exprnode.Kind{exprnode.String},
			ReturnType:       exprnode.String,
			Implementation:   impl,
		}, nil
	}
}

func InstallLowerUpper(ctx *sqlctx.Context) {
	ctx.RegisterSpec(&specs.Base{SpecName: "LOWER", Desc: "Converts a string to lowercase.", UpdateFn: updateStringUnary("LOWER", lowerThunk)})
	ctx.RegisterSpec(&specs.Base{SpecName: "UPPER", Desc: "Converts a string to uppercase.", UpdateFn: updateStringUnary("UPPER", upperThunk)})
}
