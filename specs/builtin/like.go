// The library only exposes one pattern-match operator at the spec level,
// registered as LIKE/NOT LIKE; its matcher is a case-insensitive,
// space-as-wildcard variant.
package builtin

import (
	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func ilike(value, pattern string) bool {
	v, p := []rune(value), []rune(pattern)
	vi, pi := 0, 0
	vStar, pStar := -1, -1
	for vi < len(v) {
		switch {
		case pi < len(p) && (p[pi] == '%' || p[pi] == ' '):
			pi++
			pStar = pi
			vStar = vi
		case pi < len(p) && p[pi] == '_':
			pi++
			vi++
		case pi < len(p) && toLowerRune(p[pi]) == toLowerRune(v[vi]):
			pi++
			vi++
		case pStar >= 0:
			pi = pStar
			vStar++
			vi = vStar
		default:
			return false
		}
	}
	for pi < len(p) && (p[pi] == '%' || p[pi] == ' ') {
		pi++
	}
	return pi == len(p)
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func likeThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	value := evalChild(ctx, n.Children[0])
	pattern := evalChild(ctx, n.Children[1])
	if value.IsNull || pattern.IsNull {
		return exprnode.NewNullOfKind(exprnode.Bool), nil
	}
	return exprnode.NewBool(ilike(value.StringValue, pattern.StringValue), false), nil
}

func notLikeThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	r, err := likeThunk(ctx, n)
	if err != nil || r.IsNull {
		return r, err
	}
	return exprnode.NewBool(!r.BoolValue, false), nil
}

func updateLike(name string, impl exprnode.Thunk) specs.UpdateFunc {
	return func(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
		if len(call.Children) != 2 {
			ctx.ErrorArity("%s requires exactly two parameters.", name)
			return nil, nil
		}
		for _, child := range call.Children {
			if child.Kind != exprnode.String && child.Kind != exprnode.Unknown {
				ctx.ErrorType("%s parameters must be of type STRING.", name)
				return nil, nil
			}
		}
		return &specs.UpdatePlan{
			ExpectedArgTypes: []exprnode.Kind{exprnode.String, exprnode.String},
			ReturnType:       exprnode.Bool,
			Implementation:   impl,
		}, nil
	}
}

func InstallLike(ctx *sqlctx.Context) {
	ctx.RegisterSpec(&specs.Base{SpecName: "LIKE", Desc: "Checks if a value matches a pattern.", UpdateFn: updateLike("LIKE", likeThunk)})
	ctx.RegisterSpec(&specs.Base{SpecName: "NOT LIKE", Desc: "Checks if a value does not match a pattern.", UpdateFn: updateLike("NOT LIKE", notLikeThunk)})
}
