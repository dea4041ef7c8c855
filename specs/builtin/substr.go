// SUBSTR and SUBSTRING are aliases sharing one update function.
package builtin

import (
	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func substr2Thunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	str := evalChild(ctx, n.Children[0])
	start := evalChild(ctx, n.Children[1])
	if str.IsNull || start.IsNull {
		return exprnode.NewNullOfKind(exprnode.String), nil
	}
	startPos := int(start.IntValue) - 1
	if startPos < 0 || startPos >= len(str.StringValue) {
		return exprnode.NewNullOfKind(exprnode.String), nil
	}
	return exprnode.NewString(str.StringValue[startPos:], false), nil
}

func substr3Thunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	str := evalChild(ctx, n.Children[0])
	start := evalChild(ctx, n.Children[1])
	length := evalChild(ctx, n.Children[2])
	if str.IsNull || start.IsNull || length.IsNull {
		return exprnode.NewNullOfKind(exprnode.String), nil
	}
	startPos := int(start.IntValue) - 1
	ln := int(length.IntValue)
	if startPos < 0 || startPos >= len(str.StringValue) || ln < 0 {
		return exprnode.NewNullOfKind(exprnode.String), nil
	}
	end := startPos + ln
	if end > len(str.StringValue) {
		end = len(str.StringValue)
	}
	return exprnode.NewString(str.StringValue[startPos:end], false), nil
}

func updateSubstr(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
	n := len(call.Children)
	if n < 2 || n > 3 {
		ctx.ErrorArity("SUBSTR requires either two or three parameters.")
		return nil, nil
	}
	if n == 2 {
		return &specs.UpdatePlan{
			ExpectedArgTypes: []exprnode.Kind{exprnode.String, exprnode.Int},
			ReturnType:       exprnode.String,
			Implementation:   substr2Thunk,
		}, nil
	}
	return &specs.UpdatePlan{
		ExpectedArgTypes: []exprnode.Kind{exprnode.String, exprnode.Int, exprnode.Int},
		ReturnType:       exprnode.String,
		Implementation:   substr3Thunk,
	}, nil
}

func InstallSubstr(ctx *sqlctx.Context) {
	desc := "Extracts a substring from a string starting at a given position and optionally up to a given length."
	ctx.RegisterSpec(&specs.Base{SpecName: "SUBSTR", Desc: desc, UpdateFn: updateSubstr})
	ctx.RegisterSpec(&specs.Base{SpecName: "SUBSTRING", Desc: desc, UpdateFn: updateSubstr})
}
