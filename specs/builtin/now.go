package builtin

import (
	"time"

	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func nowThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	return exprnode.NewDatetime(time.Now().UTC().Unix(), false), nil
}

func currentDateThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	now := time.Now().UTC()
	dateOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return exprnode.NewDatetime(dateOnly.Unix(), false), nil
}

func updateNow(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
	return &specs.UpdatePlan{
		ExpectedArgTypes: nil,
		ReturnType:       exprnode.Datetime,
		Implementation:   nowThunk,
	}, nil
}

func updateCurrentDate(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
	return &specs.UpdatePlan{
		ExpectedArgTypes: nil,
		ReturnType:       exprnode.Datetime,
		Implementation:   currentDateThunk,
	}, nil
}

func InstallNow(ctx *sqlctx.Context) {
	ctx.RegisterSpec(&specs.Base{SpecName: "NOW", Desc: "Returns the current date and time.", UpdateFn: updateNow})
	ctx.RegisterSpec(&specs.Base{SpecName: "GETDATE", Desc: "Returns the current date and time (DATETIME).", UpdateFn: updateNow})
	ctx.RegisterSpec(&specs.Base{SpecName: "CURRENT_TIMESTAMP", Desc: "Returns the current date and time (DATETIME).", UpdateFn: updateNow})
	ctx.RegisterSpec(&specs.Base{SpecName: "CURRENT_DATE", Desc: "Returns the current date (DATE).", UpdateFn: updateCurrentDate})
}
