package builtin

import (
	"strings"
	"time"

	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func truncDatetimeChild(ctx interface{}, n *exprnode.Node) *exprnode.Node {
	return evalChild(ctx, n.Children[len(n.Children)-1])
}

func truncTo(ctx interface{}, n *exprnode.Node, truncate func(time.Time) time.Time) (*exprnode.Node, error) {
	v := truncDatetimeChild(ctx, n)
	if v.IsNull {
		return exprnode.NewNullOfKind(exprnode.Datetime), nil
	}
	t := time.Unix(v.Epoch, 0).UTC()
	return exprnode.NewDatetime(truncate(t).Unix(), false), nil
}

func truncSecond(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	return truncTo(ctx, n, func(t time.Time) time.Time { return t })
}

func truncMinute(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	return truncTo(ctx, n, func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	})
}

func truncHour(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	return truncTo(ctx, n, func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC)
	})
}

func truncDay(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	return truncTo(ctx, n, func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	})
}

func truncWeek(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	return truncTo(ctx, n, func(t time.Time) time.Time {
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return d.AddDate(0, 0, -int(d.Weekday()))
	})
}

func truncMonth(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	return truncTo(ctx, n, func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	})
}

func truncQuarter(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	return truncTo(ctx, n, func(t time.Time) time.Time {
		month := time.Month(((int(t.Month())-1)/3)*3 + 1)
		return time.Date(t.Year(), month, 1, 0, 0, 0, 0, time.UTC)
	})
}

func truncYear(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	return truncTo(ctx, n, func(t time.Time) time.Time {
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	})
}

func truncDecade(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	return truncTo(ctx, n, func(t time.Time) time.Time {
		return time.Date((t.Year()/10)*10, time.January, 1, 0, 0, 0, 0, time.UTC)
	})
}

func truncCentury(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	return truncTo(ctx, n, func(t time.Time) time.Time {
		return time.Date((t.Year()/100)*100, time.January, 1, 0, 0, 0, 0, time.UTC)
	})
}

func truncMillennium(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	return truncTo(ctx, n, func(t time.Time) time.Time {
		return time.Date((t.Year()/1000)*1000, time.January, 1, 0, 0, 0, 0, time.UTC)
	})
}

func getTruncFunction(part string) exprnode.Thunk {
	switch strings.ToUpper(part) {
	case "SECOND":
		return truncSecond
	case "MINUTE":
		return truncMinute
	case "HOUR":
		return truncHour
	case "DAY":
		return truncDay
	case "WEEK":
		return truncWeek
	case "MONTH":
		return truncMonth
	case "QUARTER":
		return truncQuarter
	case "YEAR":
		return truncYear
	case "DECADE":
		return truncDecade
	case "CENTURY":
		return truncCentury
	case "MILLENNIUM":
		return truncMillennium
	}
	return nil
}

func updateDateTrunc(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
	if len(call.Children) != 2 {
		ctx.ErrorArity("DATE_TRUNC function requires exactly two parameters: part and datetime.")
		return nil, nil
	}
	partNode, datetimeNode := call.Children[0], call.Children[1]
	if partNode.Kind != exprnode.String || (datetimeNode.Kind != exprnode.Datetime && datetimeNode.Kind != exprnode.Unknown) {
		ctx.ErrorType("Invalid parameter types for DATE_TRUNC. Expected (STRING, DATETIME).")
		return nil, nil
	}
	impl := getTruncFunction(partNode.StringValue)
	if impl == nil {
		ctx.ErrorType("Invalid part specified for DATE_TRUNC: %s", partNode.StringValue)
		return nil, nil
	}
	return &specs.UpdatePlan{
		ExpectedArgTypes: []exprnode.Kind{exprnode.String, exprnode.Datetime},
		ReturnType:       exprnode.Datetime,
		Implementation:   impl,
	}, nil
}

func InstallDateTrunc(ctx *sqlctx.Context) {
	ctx.RegisterSpec(&specs.Base{SpecName: "DATE_TRUNC", Desc: "Truncates a DATETIME value to a specified part.", UpdateFn: updateDateTrunc})
}
