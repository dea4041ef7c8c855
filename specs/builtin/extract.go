// EXTRACT and DATEPART take a field-name string literal plus a DATETIME;
// the field name selects one of the per-part implementations below at
// resolve time. The shorthand forms (YEAR, MONTH, ...) take only the
// DATETIME and dispatch on their own spec name instead.
package builtin

import (
	"strings"
	"time"

	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func extractDatetimeChild(ctx interface{}, n *exprnode.Node) *exprnode.Node {
	return evalChild(ctx, n.Children[len(n.Children)-1])
}

func extractQuarter(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := extractDatetimeChild(ctx, n)
	if v.IsNull {
		return exprnode.NewNullOfKind(exprnode.Int), nil
	}
	t := time.Unix(v.Epoch, 0).UTC()
	return exprnode.NewInt(int64(t.Month()-1)/3+1, false), nil
}

func extractWeek(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := extractDatetimeChild(ctx, n)
	if v.IsNull {
		return exprnode.NewNullOfKind(exprnode.Int), nil
	}
	_, week := time.Unix(v.Epoch, 0).UTC().ISOWeek()
	return exprnode.NewInt(int64(week), false), nil
}

func extractDoy(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := extractDatetimeChild(ctx, n)
	if v.IsNull {
		return exprnode.NewNullOfKind(exprnode.Int), nil
	}
	return exprnode.NewInt(int64(time.Unix(v.Epoch, 0).UTC().YearDay()), false), nil
}

func extractDow(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := extractDatetimeChild(ctx, n)
	if v.IsNull {
		return exprnode.NewNullOfKind(exprnode.Int), nil
	}
	return exprnode.NewInt(int64(time.Unix(v.Epoch, 0).UTC().Weekday()), false), nil
}

func extractIsodow(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := extractDatetimeChild(ctx, n)
	if v.IsNull {
		return exprnode.NewNullOfKind(exprnode.Int), nil
	}
	wday := int(time.Unix(v.Epoch, 0).UTC().Weekday())
	if wday == 0 {
		wday = 7
	}
	return exprnode.NewInt(int64(wday), false), nil
}

func extractYear(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := extractDatetimeChild(ctx, n)
	if v.IsNull {
		return exprnode.NewNullOfKind(exprnode.Int), nil
	}
	return exprnode.NewInt(int64(time.Unix(v.Epoch, 0).UTC().Year()), false), nil
}

func extractMonth(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := extractDatetimeChild(ctx, n)
	if v.IsNull {
		return exprnode.NewNullOfKind(exprnode.Int), nil
	}
	return exprnode.NewInt(int64(time.Unix(v.Epoch, 0).UTC().Month()), false), nil
}

func extractDay(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := extractDatetimeChild(ctx, n)
	if v.IsNull {
		return exprnode.NewNullOfKind(exprnode.Int), nil
	}
	return exprnode.NewInt(int64(time.Unix(v.Epoch, 0).UTC().Day()), false), nil
}

func extractHour(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := extractDatetimeChild(ctx, n)
	if v.IsNull {
		return exprnode.NewNullOfKind(exprnode.Int), nil
	}
	return exprnode.NewInt(int64(time.Unix(v.Epoch, 0).UTC().Hour()), false), nil
}

func extractMinute(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := extractDatetimeChild(ctx, n)
	if v.IsNull {
		return exprnode.NewNullOfKind(exprnode.Int), nil
	}
	return exprnode.NewInt(int64(time.Unix(v.Epoch, 0).UTC().Minute()), false), nil
}

func extractSecond(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := extractDatetimeChild(ctx, n)
	if v.IsNull {
		return exprnode.NewNullOfKind(exprnode.Int), nil
	}
	return exprnode.NewInt(int64(time.Unix(v.Epoch, 0).UTC().Second()), false), nil
}

func getExtractFunction(field string) exprnode.Thunk {
	switch strings.ToUpper(field) {
	case "YEAR":
		return extractYear
	case "MONTH":
		return extractMonth
	case "DAY":
		return extractDay
	case "HOUR":
		return extractHour
	case "MINUTE":
		return extractMinute
	case "SECOND":
		return extractSecond
	case "QUARTER":
		return extractQuarter
	case "WEEK":
		return extractWeek
	case "DOY", "DAYOFYEAR":
		return extractDoy
	case "DOW", "DAYOFWEEK":
		return extractDow
	case "ISODOW", "ISODAYOFWEEK":
		return extractIsodow
	}
	return nil
}

func updateExtract(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
	if len(call.Children) != 2 {
		ctx.ErrorArity("EXTRACT function requires exactly two parameters: field datetime.")
		return nil, nil
	}
	fieldNode, datetimeNode := call.Children[0], call.Children[1]
	if fieldNode.Kind != exprnode.String || (datetimeNode.Kind != exprnode.Datetime && datetimeNode.Kind != exprnode.Unknown) {
		ctx.ErrorType("Invalid parameter types for EXTRACT function. Expected (STRING, DATETIME).")
		return nil, nil
	}
	impl := getExtractFunction(fieldNode.StringValue)
	if impl == nil {
		ctx.ErrorType("Invalid field specified for EXTRACT: %s", fieldNode.StringValue)
		return nil, nil
	}
	return &specs.UpdatePlan{
		ExpectedArgTypes: []exprnode.Kind{exprnode.String, exprnode.Datetime},
		ReturnType:       exprnode.Int,
		Implementation:   impl,
	}, nil
}

func updateShorthandExtract(name string, impl exprnode.Thunk) specs.UpdateFunc {
	return func(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
		if len(call.Children) != 1 {
			ctx.ErrorArity("%s function requires exactly one parameter: datetime.", name)
			return nil, nil
		}
		return &specs.UpdatePlan{
			ExpectedArgTypes: []exprnode.Kind{exprnode.Datetime},
			ReturnType:       exprnode.Int,
			Implementation:   impl,
		}, nil
	}
}

func InstallExtract(ctx *sqlctx.Context) {
	ctx.RegisterSpec(&specs.Base{SpecName: "EXTRACT", Desc: "Extracts a specified date/time part from a DATETIME value.", UpdateFn: updateExtract})
	ctx.RegisterSpec(&specs.Base{SpecName: "DATEPART", Desc: "Extracts a specified date/time part from a DATETIME value.", UpdateFn: updateExtract})

	shorthand := []struct {
		name string
		impl exprnode.Thunk
		desc string
	}{
		{"YEAR", extractYear, "Returns the year from a DATETIME value."},
		{"MONTH", extractMonth, "Returns the month from a DATETIME value."},
		{"DAY", extractDay, "Returns the day from a DATETIME value."},
		{"HOUR", extractHour, "Returns the hour from a DATETIME value."},
		{"MINUTE", extractMinute, "Returns the minute from a DATETIME value."},
		{"SECOND", extractSecond, "Returns the second from a DATETIME value."},
		{"QUARTER", extractQuarter, "Returns the quarter from a DATETIME value."},
		{"WEEK", extractWeek, "Returns the ISO week number from a DATETIME value."},
		{"DOY", extractDoy, "Returns the day of the year from a DATETIME value."},
		{"DAYOFYEAR", extractDoy, "Returns the day of the year from a DATETIME value."},
		{"DOW", extractDow, "Returns the day of the week (0 for Sunday) from a DATETIME value."},
		{"DAYOFWEEK", extractDow, "Returns the day of the week (0 for Sunday) from a DATETIME value."},
		{"ISODOW", extractIsodow, "Returns the ISO day of the week (1 for Monday to 7 for Sunday) from a DATETIME value."},
		{"ISODAYOFWEEK", extractIsodow, "Returns the ISO day of the week (1 for Monday to 7 for Sunday) from a DATETIME value."},
	}
	for _, s := range shorthand {
		ctx.RegisterSpec(&specs.Base{SpecName: s.name, Desc: s.desc, UpdateFn: updateShorthandExtract(s.name, s.impl)})
	}
}
