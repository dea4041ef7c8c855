// Named timezone conversion uses tzutil.LocalTime, a stdlib
// time.LoadLocation wrapper.
package builtin

import (
	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
	"github.com/knode-ai-open-source/sql-parser-library/tzutil"
)

func convertTzThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	dt := evalChild(ctx, n.Children[0])
	tz := evalChild(ctx, n.Children[1])
	if dt.IsNull || dt.Kind != exprnode.Datetime || tz.IsNull || tz.Kind != exprnode.String {
		return exprnode.NewNullOfKind(exprnode.Datetime), nil
	}
	local, ok := tzutil.LocalTime(tz.StringValue, dt.Epoch)
	if !ok {
		if c, isCtx := ctx.(*sqlctx.Context); isCtx {
			c.ErrorType("Invalid or ambiguous conversion to target timezone.")
		}
		return exprnode.NewNullOfKind(exprnode.Datetime), nil
	}
	return exprnode.NewDatetime(local, false), nil
}

func updateConvertTz(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
	if len(call.Children) != 2 {
		ctx.ErrorArity("CONVERT_TZ requires exactly two parameters: datetime, to_tz.")
		return nil, nil
	}
	return &specs.UpdatePlan{
		ExpectedArgTypes: []exprnode.Kind{exprnode.Datetime, exprnode.String},
		ReturnType:       exprnode.Datetime,
		Implementation:   convertTzThunk,
	}, nil
}

func InstallConvertTz(ctx *sqlctx.Context) {
	ctx.RegisterSpec(&specs.Base{SpecName: "CONVERT_TZ", Desc: "Converts a datetime value from UTC to another timezone.", UpdateFn: updateConvertTz})
}
