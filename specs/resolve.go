package specs

import (
	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

// Resolve walks n post-order (children before parents) and, for every call
// node (one with a non-nil Spec), invokes its spec's Update to learn the
// expected argument types, return type and implementation thunk.
// Mismatched argument kinds are bridged with a synthetic Convert call
// inserted in place of the child.
//
// Resolve stops and returns false the first time a spec's Update reports
// an error (already recorded on ctx): first error wins,
// already-collected warnings remain visible.
func Resolve(ctx *sqlctx.Context, n *exprnode.Node) bool {
	if n == nil {
		return true
	}
	for i, child := range n.Children {
		if !Resolve(ctx, child) {
			return false
		}
		n.Children[i] = child
	}

	if n.Spec == nil {
		return true
	}

	spec, ok := Lookup(ctx, n.Spec.Name())
	if !ok {
		ctx.Errorf("unresolved spec %q", n.Spec.Name())
		return false
	}

	plan, err := spec.Update(ctx, n)
	if err != nil {
		ctx.Error(err)
		return false
	}
	if plan == nil {
		// Update already recorded its own error on ctx.
		return false
	}

	for i, want := range plan.ExpectedArgTypes {
		if i >= len(n.Children) {
			break
		}
		child := n.Children[i]
		if child.Kind != want && want != exprnode.Unknown {
			if child.Thunk == nil {
				n.Children[i] = Convert(ctx, child, want)
				continue
			}
			// A computed child converts each time it is evaluated; the
			// probe records an unsupported pair now.
			Convert(ctx, &exprnode.Node{Kind: child.Kind}, want)
			target := want
			n.Children[i] = &exprnode.Node{Origin: exprnode.OriginKeyword, Kind: target, Children: []*exprnode.Node{child},
				Thunk: func(evalCtx interface{}, node *exprnode.Node) (*exprnode.Node, error) {
					v, err := node.Children[0].Eval(evalCtx)
					if err != nil || v == nil {
						return exprnode.NewNullOfKind(target), err
					}
					c, _ := evalCtx.(*sqlctx.Context)
					return Convert(c, v, target), nil
				}}
		}
	}

	n.Kind = plan.ReturnType
	n.Thunk = plan.Implementation
	return true
}
