// Any NULL parameter aborts the whole MIN/MAX call with a NULL result
// (no element skipping).
package builtin

import (
	"strings"

	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func minMaxThunk(kind exprnode.Kind, isMax bool) exprnode.Thunk {
	return func(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
		var (
			resultBool   bool
			resultString string
			haveString   bool
			resultEpoch  int64
			haveEpoch    bool
			resultInt    int64
			haveInt      bool
			resultDouble float64
			haveDouble   bool
		)
		if kind == exprnode.Bool {
			resultBool = !isMax // MIN starts true, MAX starts false
		}
		for _, childExpr := range n.Children {
			child := evalChild(ctx, childExpr)
			if child.IsNull {
				return exprnode.NewNullOfKind(kind), nil
			}
			switch kind {
			case exprnode.Bool:
				if isMax {
					resultBool = resultBool || child.BoolValue
				} else if !child.BoolValue {
					resultBool = false
				}
			case exprnode.String:
				if !haveString || (isMax && strings.ToLower(child.StringValue) > strings.ToLower(resultString)) ||
					(!isMax && strings.ToLower(child.StringValue) < strings.ToLower(resultString)) {
					resultString = child.StringValue
					haveString = true
				}
			case exprnode.Datetime:
				if !haveEpoch || (isMax && child.Epoch > resultEpoch) || (!isMax && child.Epoch < resultEpoch) {
					resultEpoch = child.Epoch
					haveEpoch = true
				}
			case exprnode.Int:
				if !haveInt || (isMax && child.IntValue > resultInt) || (!isMax && child.IntValue < resultInt) {
					resultInt = child.IntValue
					haveInt = true
				}
			case exprnode.Double:
				if !haveDouble || (isMax && child.DoubleValue > resultDouble) || (!isMax && child.DoubleValue < resultDouble) {
					resultDouble = child.DoubleValue
					haveDouble = true
				}
			}
		}
		switch kind {
		case exprnode.Bool:
			return exprnode.NewBool(resultBool, false), nil
		case exprnode.String:
			return exprnode.NewString(resultString, false), nil
		case exprnode.Datetime:
			return exprnode.NewDatetime(resultEpoch, false), nil
		case exprnode.Int:
			return exprnode.NewInt(resultInt, false), nil
		case exprnode.Double:
			return exprnode.NewDouble(resultDouble, false), nil
		}
		return exprnode.NewNullOfKind(kind), nil
	}
}

func updateMinMax(name string, isMax bool) specs.UpdateFunc {
	return func(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
		if len(call.Children) < 1 {
			ctx.ErrorArity("%s function requires at least one parameter.", name)
			return nil, nil
		}
		common := call.Children[0].Kind
		if common == exprnode.Int {
			for _, child := range call.Children[1:] {
				if child.Kind == exprnode.Double {
					common = exprnode.Double
				}
			}
		}
		expected := make([]exprnode.Kind, len(call.Children))
		for i := range expected {
			expected[i] = common
		}
		return &specs.UpdatePlan{
			ExpectedArgTypes: expected,
			ReturnType:       common,
			Implementation:   minMaxThunk(common, isMax),
		}, nil
	}
}

func InstallMinMax(ctx *sqlctx.Context) {
	ctx.RegisterSpec(&specs.Base{SpecName: "MIN", Desc: "Returns the minimum value.", UpdateFn: updateMinMax("MIN", false)})
	ctx.RegisterSpec(&specs.Base{SpecName: "MAX", Desc: "Returns the maximum value.", UpdateFn: updateMinMax("MAX", true)})
}
