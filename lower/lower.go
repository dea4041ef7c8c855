// Package lower turns the parser's untyped ast.Expression tree into an
// exprnode.Node tree: literals become typed scalar nodes, identifiers
// resolve against the context's column schema, and every operator/keyword
// construct becomes a call node pointing at a registered spec for the
// later resolve pass (package specs) to type and wire an implementation
// onto.
//
// Lowering never resolves types or picks implementations itself (that is
// specs.Resolve's job, run as a separate pass); a call node leaving Lower
// has Kind==exprnode.Unknown and Thunk==nil except for the handful of
// constructs — casts, unary minus, identifiers, literals — that lowering
// itself fully resolves rather than deferring to a spec lookup.
package lower

import (
	"strings"

	"github.com/knode-ai-open-source/sql-parser-library/ast"
	"github.com/knode-ai-open-source/sql-parser-library/dateutil"
	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

// Lower lowers a parsed program's WHERE clause. Returns nil if the program
// carries no WHERE expression.
func Lower(ctx *sqlctx.Context, prog *ast.Program) *exprnode.Node {
	if prog == nil || prog.Where == nil {
		return nil
	}
	return Expression(ctx, prog.Where)
}

// Expression lowers a single expression subtree; exported so callers (tests,
// the fixture runner) can lower fragments directly without a full Program.
func Expression(ctx *sqlctx.Context, expr ast.Expression) *exprnode.Node {
	switch n := expr.(type) {
	case *ast.Identifier:
		return lowerIdentifier(ctx, n)
	case *ast.IntegerLiteral:
		return exprnode.NewInt(n.Value, false)
	case *ast.FloatLiteral:
		return exprnode.NewDouble(n.Value, false)
	case *ast.StringLiteral:
		return exprnode.NewString(n.Value, false)
	case *ast.NullLiteral:
		return &exprnode.Node{Origin: exprnode.OriginNull, Token: "NULL", Kind: exprnode.Unknown, IsNull: true}
	case *ast.BoolLiteral:
		return exprnode.NewBool(n.Value, false)
	case *ast.CompoundLiteral:
		return lowerCompoundLiteral(ctx, n)
	case *ast.PrefixExpression:
		return lowerPrefix(ctx, n)
	case *ast.InfixExpression:
		return lowerInfix(ctx, n)
	case *ast.CastExpression:
		return lowerCast(ctx, n)
	case *ast.BetweenExpression:
		return lowerBetween(ctx, n)
	case *ast.InExpression:
		return lowerIn(ctx, n)
	case *ast.LikeExpression:
		return lowerLike(ctx, n)
	case *ast.IsExpression:
		return lowerIs(ctx, n)
	case *ast.FunctionCall:
		return lowerFunctionCall(ctx, n)
	case *ast.ExtractExpression:
		return lowerExtract(ctx, n)
	case *ast.ListExpression:
		return lowerList(ctx, n)
	default:
		ctx.Errorf("lower: unsupported expression node %T", expr)
		return exprnode.NewNullOfKind(exprnode.Unknown)
	}
}

// lowerIdentifier does a case-insensitive lookup against ctx.Columns,
// carrying the column's declared Kind and a Thunk that defers to its
// Getter at evaluation time.
func lowerIdentifier(ctx *sqlctx.Context, n *ast.Identifier) *exprnode.Node {
	col, ok := ctx.LookupColumn(n.Value)
	if !ok {
		ctx.Error(sqlctx.ErrSchemaWarning.New(n.Value))
		return &exprnode.Node{Origin: exprnode.OriginIdentifier, Token: n.Value, Kind: exprnode.Unknown, IsNull: true}
	}
	return &exprnode.Node{
		Origin: exprnode.OriginIdentifier,
		Token:  n.Value,
		Kind:   col.Kind,
		Thunk: func(evalCtx interface{}, _ *exprnode.Node) (*exprnode.Node, error) {
			c, _ := evalCtx.(*sqlctx.Context)
			return col.Getter(c), nil
		},
	}
}

// lowerCompoundLiteral handles TIMESTAMP '...' and INTERVAL '...'. TIMESTAMP
// parses to a resolved DATETIME literal; INTERVAL stays a raw string node
// tagged with OriginCompoundLiteral so specs/builtin/arithmetic.go's
// isIntervalLiteral can recognize it downstream without re-parsing here.
func lowerCompoundLiteral(ctx *sqlctx.Context, n *ast.CompoundLiteral) *exprnode.Node {
	switch strings.ToUpper(n.Kind) {
	case "TIMESTAMP":
		epoch, ok := dateutil.ParseDatetime(n.Body)
		if !ok {
			ctx.Errorf("invalid TIMESTAMP literal: %s", n.Body)
			return exprnode.NewNullOfKind(exprnode.Datetime)
		}
		return exprnode.NewDatetime(epoch, false)
	case "INTERVAL":
		return &exprnode.Node{Origin: exprnode.OriginCompoundLiteral, Kind: exprnode.String, StringValue: n.Body}
	default:
		ctx.Errorf("unsupported compound literal kind: %s", n.Kind)
		return exprnode.NewNullOfKind(exprnode.Unknown)
	}
}

func lowerPrefix(ctx *sqlctx.Context, n *ast.PrefixExpression) *exprnode.Node {
	switch n.Operator {
	case "NOT":
		return callNode(ctx, exprnode.OriginNot, "NOT", Expression(ctx, n.Right))
	case "-":
		child := Expression(ctx, n.Right)
		return &exprnode.Node{
			Origin:   exprnode.OriginOperator,
			Token:    "-",
			Kind:     child.Kind,
			Children: []*exprnode.Node{child},
			Thunk:    negateThunk,
		}
	case "+":
		// Unary plus is a no-op; there is nothing for an implementation to do.
		return Expression(ctx, n.Right)
	default:
		ctx.Errorf("unsupported unary operator: %s", n.Operator)
		return exprnode.NewNullOfKind(exprnode.Unknown)
	}
}

func negateThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	v := evalChild(ctx, n.Children[0])
	if v.IsNull {
		return exprnode.NewNullOfKind(n.Kind), nil
	}
	switch v.Kind {
	case exprnode.Int:
		return exprnode.NewInt(-v.IntValue, false), nil
	case exprnode.Double:
		return exprnode.NewDouble(-v.DoubleValue, false), nil
	}
	return exprnode.NewNullOfKind(n.Kind), nil
}

// infixOrigin picks the Origin tag for an infix operator. '=' and '==' both
// resolve to specs independently registered under those exact names, so
// no name remapping is needed here — only the diagnostic Origin varies.
func infixOrigin(op string) exprnode.Origin {
	switch op {
	case "AND":
		return exprnode.OriginAnd
	case "OR":
		return exprnode.OriginOr
	case "+", "-", "*", "/":
		return exprnode.OriginOperator
	default:
		return exprnode.OriginComparison
	}
}

func lowerInfix(ctx *sqlctx.Context, n *ast.InfixExpression) *exprnode.Node {
	left := Expression(ctx, n.Left)
	right := Expression(ctx, n.Right)
	return callNode(ctx, infixOrigin(n.Operator), n.Operator, left, right)
}

// lowerCast bypasses the spec registry entirely (see the package comment in
// specs/convert.go): the three surfaces (::, CAST, CONVERT) already share
// one AST shape, so lowering resolves the target type name once and builds
// a node whose Thunk calls specs.Convert directly.
func lowerCast(ctx *sqlctx.Context, n *ast.CastExpression) *exprnode.Node {
	target, ok := specs.ParseDataType(n.TypeName)
	if !ok {
		ctx.Errorf("unknown type name in %s: %s", n.Form, n.TypeName)
		return exprnode.NewNullOfKind(exprnode.Unknown)
	}
	value := Expression(ctx, n.Value)
	return &exprnode.Node{
		Origin:   exprnode.OriginKeyword,
		Token:    n.Form,
		Kind:     target,
		Children: []*exprnode.Node{value},
		Thunk: func(evalCtx interface{}, node *exprnode.Node) (*exprnode.Node, error) {
			child := evalChild(evalCtx, node.Children[0])
			c, _ := evalCtx.(*sqlctx.Context)
			return specs.Convert(c, child, target), nil
		},
	}
}

func lowerBetween(ctx *sqlctx.Context, n *ast.BetweenExpression) *exprnode.Node {
	name := "BETWEEN"
	if n.Not {
		name = "NOT BETWEEN"
	}
	return callNode(ctx, exprnode.OriginComparison, name,
		Expression(ctx, n.Value), Expression(ctx, n.Lo), Expression(ctx, n.Hi))
}

func lowerIn(ctx *sqlctx.Context, n *ast.InExpression) *exprnode.Node {
	name := "IN"
	if n.Not {
		name = "NOT IN"
	}
	elements := make([]*exprnode.Node, len(n.List))
	for i, elem := range n.List {
		elements[i] = Expression(ctx, elem)
	}
	list := exprnode.NewList(elements)
	return callNode(ctx, exprnode.OriginComparison, name, Expression(ctx, n.Value), list)
}

func lowerLike(ctx *sqlctx.Context, n *ast.LikeExpression) *exprnode.Node {
	name := "LIKE"
	if n.Not {
		name = "NOT LIKE"
	}
	return callNode(ctx, exprnode.OriginComparison, name, Expression(ctx, n.Value), Expression(ctx, n.Pattern))
}

func lowerIs(ctx *sqlctx.Context, n *ast.IsExpression) *exprnode.Node {
	return callNode(ctx, exprnode.OriginComparison, n.Canonical, Expression(ctx, n.Value))
}

func lowerFunctionCall(ctx *sqlctx.Context, n *ast.FunctionCall) *exprnode.Node {
	args := make([]*exprnode.Node, len(n.Args))
	for i, arg := range n.Args {
		args[i] = Expression(ctx, arg)
	}
	origin := exprnode.OriginFunction
	if n.Bare {
		origin = exprnode.OriginFunctionLiteral
	}
	return callNode(ctx, origin, n.Name, args...)
}

// lowerExtract handles EXTRACT(field FROM datetime): the field name is a
// bare keyword, never resolved against the column schema or looked up as an
// identifier. (DATE_TRUNC arrives as an ordinary FunctionCall.)
func lowerExtract(ctx *sqlctx.Context, n *ast.ExtractExpression) *exprnode.Node {
	fieldNode := exprnode.NewString(n.Field, false)
	valueNode := Expression(ctx, n.Value)
	return callNode(ctx, exprnode.OriginFunction, n.Name, fieldNode, valueNode)
}

func lowerList(ctx *sqlctx.Context, n *ast.ListExpression) *exprnode.Node {
	elements := make([]*exprnode.Node, len(n.Elements))
	for i, elem := range n.Elements {
		elements[i] = Expression(ctx, elem)
	}
	return exprnode.NewList(elements)
}

// callNode looks up name in the context's spec registry and builds an
// unresolved call node (Kind==Unknown, Thunk==nil) for specs.Resolve to
// finish. The spec lookup happens eagerly here since the parser resolves
// call names at parse time.
func callNode(ctx *sqlctx.Context, origin exprnode.Origin, name string, children ...*exprnode.Node) *exprnode.Node {
	node := &exprnode.Node{Origin: origin, Token: name, Kind: exprnode.Unknown, Children: children}
	spec, ok := ctx.GetSpec(name)
	if !ok {
		ctx.Errorf("unknown function: %s", name)
		return node
	}
	node.Spec = spec
	return node
}

// evalChild forces evaluation of a lowered-but-not-yet-evaluated child node
// (package specs/builtin has its own identical helper; duplicated here
// rather than exported to avoid a lower -> specs/builtin import solely for
// one function).
func evalChild(ctx interface{}, n *exprnode.Node) *exprnode.Node {
	r, err := n.Eval(ctx)
	if err != nil || r == nil {
		return exprnode.NewNullOfKind(n.Kind)
	}
	return r
}
