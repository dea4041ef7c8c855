// Package builtin registers the library's built-in function/operator
// specs, one file per function or operator family. Each file's
// Install<Family>(ctx) registers that family's specs against a Context.
package builtin

import (
	"github.com/knode-ai-open-source/sql-parser-library/dateutil"
	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

// isIntervalLiteral reports whether n came from an INTERVAL '...' compound
// literal (as opposed to an ordinary string), used to keep interval
// arithmetic from coercing its right-hand side to DATETIME.
func isIntervalLiteral(n *exprnode.Node) bool {
	return n.Origin == exprnode.OriginCompoundLiteral && n.Kind == exprnode.String
}

func evalChild(ctx interface{}, n *exprnode.Node) *exprnode.Node {
	r, err := n.Eval(ctx)
	if err != nil || r == nil {
		return exprnode.NewNullOfKind(n.Kind)
	}
	return r
}

func intArith(op string) exprnode.Thunk {
	return func(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
		l := evalChild(ctx, n.Children[0])
		r := evalChild(ctx, n.Children[1])
		if l.IsNull || r.IsNull {
			if op == "/" {
				return exprnode.NewNullOfKind(exprnode.Double), nil
			}
			return exprnode.NewNullOfKind(exprnode.Int), nil
		}
		switch op {
		case "+":
			return exprnode.NewInt(l.IntValue+r.IntValue, false), nil
		case "-":
			return exprnode.NewInt(l.IntValue-r.IntValue, false), nil
		case "*":
			return exprnode.NewInt(l.IntValue*r.IntValue, false), nil
		case "/":
			if r.IntValue == 0 {
				return exprnode.NewNullOfKind(exprnode.Double), nil
			}
			return exprnode.NewDouble(float64(l.IntValue)/float64(r.IntValue), false), nil
		}
		return exprnode.NewNullOfKind(exprnode.Int), nil
	}
}

func doubleArith(op string) exprnode.Thunk {
	return func(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
		l := evalChild(ctx, n.Children[0])
		r := evalChild(ctx, n.Children[1])
		if l.IsNull || r.IsNull {
			return exprnode.NewNullOfKind(exprnode.Double), nil
		}
		switch op {
		case "+":
			return exprnode.NewDouble(l.DoubleValue+r.DoubleValue, false), nil
		case "-":
			return exprnode.NewDouble(l.DoubleValue-r.DoubleValue, false), nil
		case "*":
			return exprnode.NewDouble(l.DoubleValue*r.DoubleValue, false), nil
		case "/":
			if r.DoubleValue == 0 {
				return exprnode.NewNullOfKind(exprnode.Double), nil
			}
			return exprnode.NewDouble(l.DoubleValue/r.DoubleValue, false), nil
		}
		return exprnode.NewNullOfKind(exprnode.Double), nil
	}
}

func stringConcat(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	l := evalChild(ctx, n.Children[0])
	r := evalChild(ctx, n.Children[1])
	if l.IsNull || r.IsNull {
		return exprnode.NewNullOfKind(exprnode.String), nil
	}
	return exprnode.NewString(l.StringValue+r.StringValue, false), nil
}

func datetimeIntArith(op string) exprnode.Thunk {
	return func(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
		l := evalChild(ctx, n.Children[0])
		r := evalChild(ctx, n.Children[1])
		if l.IsNull || r.IsNull {
			return exprnode.NewNullOfKind(exprnode.Datetime), nil
		}
		days := r.IntValue
		if op == "-" {
			days = -days
		}
		return exprnode.NewDatetime(l.Epoch+days*86400, false), nil
	}
}

func datetimeDoubleArith(op string) exprnode.Thunk {
	return func(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
		l := evalChild(ctx, n.Children[0])
		r := evalChild(ctx, n.Children[1])
		if l.IsNull || r.IsNull {
			return exprnode.NewNullOfKind(exprnode.Datetime), nil
		}
		days := r.DoubleValue
		if op == "-" {
			days = -days
		}
		return exprnode.NewDatetime(l.Epoch+int64(days*86400), false), nil
	}
}

func datetimeSub(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	l := evalChild(ctx, n.Children[0])
	r := evalChild(ctx, n.Children[1])
	if l.IsNull || r.IsNull {
		return exprnode.NewNullOfKind(exprnode.Double), nil
	}
	return exprnode.NewDouble(float64(l.Epoch-r.Epoch), false), nil
}

func datetimeIntervalArith(op string) exprnode.Thunk {
	return func(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
		l := evalChild(ctx, n.Children[0])
		r := evalChild(ctx, n.Children[1])
		if l.IsNull || r.IsNull {
			return exprnode.NewNullOfKind(exprnode.Datetime), nil
		}
		iv, err := dateutil.ParseInterval(r.StringValue)
		if err != nil {
			return exprnode.NewNullOfKind(exprnode.Datetime), nil
		}
		epoch := iv.AddToEpoch(l.Epoch, op == "-")
		return exprnode.NewDatetime(epoch, false), nil
	}
}

// updateArithmetic builds the update function for one arithmetic operator
// symbol.
func updateArithmetic(op string) specs.UpdateFunc {
	return func(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
		if len(call.Children) != 2 {
			ctx.ErrorArity("%s requires exactly two operands", op)
			return nil, nil
		}
		left, right := call.Children[0], call.Children[1]

		switch {
		case left.Kind == right.Kind && left.Kind != exprnode.Datetime:
			switch left.Kind {
			case exprnode.Int:
				rt := exprnode.Int
				if op == "/" {
					rt = exprnode.Double
				}
				return &specs.UpdatePlan{
					ExpectedArgTypes: []exprnode.Kind{exprnode.Int, exprnode.Int},
					ReturnType:       rt,
					Implementation:   intArith(op),
				}, nil
			case exprnode.Double:
				return &specs.UpdatePlan{
					ExpectedArgTypes: []exprnode.Kind{exprnode.Double, exprnode.Double},
					ReturnType:       exprnode.Double,
					Implementation:   doubleArith(op),
				}, nil
			case exprnode.String:
				if op != "+" {
					ctx.ErrorType("STRING only supports + (concatenation)")
					return nil, nil
				}
				return &specs.UpdatePlan{
					ExpectedArgTypes: []exprnode.Kind{exprnode.String, exprnode.String},
					ReturnType:       exprnode.String,
					Implementation:   stringConcat,
				}, nil
			}

		case left.Kind == exprnode.Datetime && right.Kind == exprnode.Datetime:
			if op != "-" {
				ctx.ErrorType("DATETIME only supports - (difference in seconds)")
				return nil, nil
			}
			return &specs.UpdatePlan{
				ExpectedArgTypes: []exprnode.Kind{exprnode.Datetime, exprnode.Datetime},
				ReturnType:       exprnode.Double,
				Implementation:   datetimeSub,
			}, nil

		case (left.Kind == exprnode.Int && right.Kind == exprnode.Double) ||
			(left.Kind == exprnode.Double && right.Kind == exprnode.Int):
			return &specs.UpdatePlan{
				ExpectedArgTypes: []exprnode.Kind{exprnode.Double, exprnode.Double},
				ReturnType:       exprnode.Double,
				Implementation:   doubleArith(op),
			}, nil

		case left.Kind == exprnode.Datetime && right.Kind == exprnode.Int:
			return &specs.UpdatePlan{
				ExpectedArgTypes: []exprnode.Kind{exprnode.Datetime, exprnode.Int},
				ReturnType:       exprnode.Datetime,
				Implementation:   datetimeIntArith(op),
			}, nil

		case left.Kind == exprnode.Datetime && right.Kind == exprnode.Double:
			return &specs.UpdatePlan{
				ExpectedArgTypes: []exprnode.Kind{exprnode.Datetime, exprnode.Double},
				ReturnType:       exprnode.Datetime,
				Implementation:   datetimeDoubleArith(op),
			}, nil

		case left.Kind == exprnode.Datetime && right.Kind == exprnode.String && isIntervalLiteral(right):
			return &specs.UpdatePlan{
				ExpectedArgTypes: []exprnode.Kind{exprnode.Datetime, exprnode.String},
				ReturnType:       exprnode.Datetime,
				Implementation:   datetimeIntervalArith(op),
			}, nil
		}

		ctx.ErrorType("unsupported operand types for %s: %s and %s", op, left.Kind, right.Kind)
		return nil, nil
	}
}

func InstallArithmetic(ctx *sqlctx.Context) {
	for _, op := range []string{"+", "-", "*", "/"} {
		ctx.RegisterSpec(&specs.Base{
			SpecName: op,
			Desc:     "Arithmetic operator " + op,
			UpdateFn: updateArithmetic(op),
		})
	}
}
