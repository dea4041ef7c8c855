// TRIM/RTRIM/LTRIM share one update function, dispatching implementation
// by spec name.
package builtin

import (
	"strings"

	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func trimThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := evalChild(ctx, n.Children[0])
	if v.IsNull {
		return exprnode.NewNullOfKind(exprnode.String), nil
	}
	return exprnode.NewString(strings.Trim(v.StringValue, " "), false), nil
}

func rtrimThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := evalChild(ctx, n.Children[0])
	if v.IsNull {
		return exprnode.NewNullOfKind(exprnode.String), nil
	}
	return exprnode.NewString(strings.TrimRight(v.StringValue, " "), false), nil
}

func ltrimThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := evalChild(ctx, n.Children[0])
	if v.IsNull {
		return exprnode.NewNullOfKind(exprnode.String), nil
	}
	return exprnode.NewString(strings.TrimLeft(v.StringValue, " "), false), nil
}

func updateTrim(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
	if len(call.Children) != 1 {
		ctx.ErrorArity("%s requires exactly one parameter.", call.Spec.Name())
		return nil, nil
	}
	var impl exprnode.Thunk
	switch strings.ToUpper(call.Spec.Name()) {
	case "TRIM":
		impl = trimThunk
	case "RTRIM":
		impl = rtrimThunk
	case "LTRIM":
		impl = ltrimThunk
	default:
		ctx.Errorf("Unknown trim function: %s", call.Spec.Name())
		return nil, nil
	}
	return &specs.UpdatePlan{
		ExpectedArgTypes: []exprnode.Kind{exprnode.String},
		ReturnType:       exprnode.String,
		Implementation:   impl,
	}, nil
}

func InstallTrim(ctx *sqlctx.Context) {
	ctx.RegisterSpec(&specs.Base{SpecName: "TRIM", Desc: "Removes leading and trailing spaces from a string.", UpdateFn: updateTrim})
	ctx.RegisterSpec(&specs.Base{SpecName: "RTRIM", Desc: "Removes trailing spaces from a string.", UpdateFn: updateTrim})
	ctx.RegisterSpec(&specs.Base{SpecName: "LTRIM", Desc: "Removes leading spaces from a string.", UpdateFn: updateTrim})
}
