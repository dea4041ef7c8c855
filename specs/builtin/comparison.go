// `>` and `>=` have no specs of their own: the parser rewrites them to `<`
// and `<=` with swapped operands, so only <, <=, !=, = and its alias ==
// need registering here.
package builtin

import (
	"strings"

	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

type compareFunc func(l, r *exprnode.Node) bool

func compareThunk(cmp compareFunc) exprnode.Thunk {
	return func(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
		l := evalChild(ctx, n.Children[0])
		r := evalChild(ctx, n.Children[1])
		if l.IsNull || r.IsNull {
			return exprnode.NewNullOfKind(exprnode.Bool), nil
		}
		return exprnode.NewBool(cmp(l, r), false), nil
	}
}

func boolLess(l, r *exprnode.Node) bool   { return !l.BoolValue && r.BoolValue }
func boolLessEq(l, r *exprnode.Node) bool { return !l.BoolValue || r.BoolValue }
func boolNE(l, r *exprnode.Node) bool     { return l.BoolValue != r.BoolValue }
func boolEq(l, r *exprnode.Node) bool     { return l.BoolValue == r.BoolValue }

func intLess(l, r *exprnode.Node) bool   { return l.IntValue < r.IntValue }
func intLessEq(l, r *exprnode.Node) bool { return l.IntValue <= r.IntValue }
func intNE(l, r *exprnode.Node) bool     { return l.IntValue != r.IntValue }
func intEq(l, r *exprnode.Node) bool     { return l.IntValue == r.IntValue }

func doubleLess(l, r *exprnode.Node) bool   { return l.DoubleValue < r.DoubleValue }
func doubleLessEq(l, r *exprnode.Node) bool { return l.DoubleValue <= r.DoubleValue }
func doubleNE(l, r *exprnode.Node) bool     { return l.DoubleValue != r.DoubleValue }
func doubleEq(l, r *exprnode.Node) bool     { return l.DoubleValue == r.DoubleValue }

func stringLess(l, r *exprnode.Node) bool {
	return strings.ToLower(l.StringValue) < strings.ToLower(r.StringValue)
}
func stringLessEq(l, r *exprnode.Node) bool {
	return strings.ToLower(l.StringValue) <= strings.ToLower(r.StringValue)
}
func stringNE(l, r *exprnode.Node) bool {
	return !strings.EqualFold(l.StringValue, r.StringValue)
}
func stringEq(l, r *exprnode.Node) bool {
	return strings.EqualFold(l.StringValue, r.StringValue)
}

func datetimeLess(l, r *exprnode.Node) bool   { return l.Epoch < r.Epoch }
func datetimeLessEq(l, r *exprnode.Node) bool { return l.Epoch <= r.Epoch }
func datetimeNE(l, r *exprnode.Node) bool     { return l.Epoch != r.Epoch }
func datetimeEq(l, r *exprnode.Node) bool     { return l.Epoch == r.Epoch }

// comparisonByKind returns the implementation for op over kind.
func comparisonByKind(op string, kind exprnode.Kind) (exprnode.Thunk, bool) {
	table := map[string]map[exprnode.Kind]compareFunc{
		"<": {
			exprnode.Bool: boolLess, exprnode.Int: intLess, exprnode.Double: doubleLess,
			exprnode.String: stringLess, exprnode.Datetime: datetimeLess,
		},
		"<=": {
			exprnode.Bool: boolLessEq, exprnode.Int: intLessEq, exprnode.Double: doubleLessEq,
			exprnode.String: stringLessEq, exprnode.Datetime: datetimeLessEq,
		},
		"!=": {
			exprnode.Bool: boolNE, exprnode.Int: intNE, exprnode.Double: doubleNE,
			exprnode.String: stringNE, exprnode.Datetime: datetimeNE,
		},
		"=": {
			exprnode.Bool: boolEq, exprnode.Int: intEq, exprnode.Double: doubleEq,
			exprnode.String: stringEq, exprnode.Datetime: datetimeEq,
		},
	}
	cmp, ok := table[op][kind]
	if !ok {
		return nil, false
	}
	return compareThunk(cmp), true
}

func updateComparison(op string) specs.UpdateFunc {
	return func(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
		if len(call.Children) != 2 {
			ctx.ErrorArity("%s requires exactly two operands", op)
			return nil, nil
		}
		left, right := call.Children[0], call.Children[1]
		kind := left.Kind
		expected := []exprnode.Kind{kind, kind}
		if left.Kind != right.Kind && left.Kind == exprnode.Int && right.Kind == exprnode.Double {
			kind = exprnode.Double
			expected = []exprnode.Kind{exprnode.Double, exprnode.Double}
		}

		impl, ok := comparisonByKind(op, kind)
		if !ok {
			ctx.ErrorType("%s is not supported for type %s", op, kind)
			return nil, nil
		}
		return &specs.UpdatePlan{
			ExpectedArgTypes: expected,
			ReturnType:       exprnode.Bool,
			Implementation:   impl,
		}, nil
	}
}

func InstallComparison(ctx *sqlctx.Context) {
	ctx.RegisterSpec(&specs.Base{SpecName: "<", Desc: "Less than", UpdateFn: updateComparison("<")})
	ctx.RegisterSpec(&specs.Base{SpecName: "<=", Desc: "Less than or equal", UpdateFn: updateComparison("<=")})
	ctx.RegisterSpec(&specs.Base{SpecName: "!=", Desc: "Not equal", UpdateFn: updateComparison("!=")})
	ctx.RegisterSpec(&specs.Base{SpecName: "=", Desc: "Equal", UpdateFn: updateComparison("=")})
	ctx.RegisterSpec(&specs.Base{SpecName: "==", Desc: "Equal", UpdateFn: updateComparison("=")})
}
