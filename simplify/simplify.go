// Package simplify implements a constant-folding / boolean-algebra pass
// over a resolved expression tree: constant subtrees fold to literals and
// AND/OR algebra simplifies, both in one post-order walk rather than as
// two separate passes.
package simplify

import (
	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

// Simplify walks n post-order, folding constant subtrees and applying
// AND/OR boolean algebra, and returns the (possibly different) node that
// should take n's place in its parent. It rewrites by returning
// replacement pointers — callers assign the result back
// (n.Children[i] = Simplify(ctx, child)) rather than mutating in place.
func Simplify(ctx *sqlctx.Context, n *exprnode.Node) *exprnode.Node {
	if n == nil {
		return nil
	}

	for i, child := range n.Children {
		n.Children[i] = Simplify(ctx, child)
	}

	n = foldNoOpConvert(n)
	n = foldConstant(ctx, n)
	n = simplifyLogical(n)
	return n
}

// foldNoOpConvert drops a cast whose target type already matches its
// argument's resolved type.
func foldNoOpConvert(n *exprnode.Node) *exprnode.Node {
	if n.Origin != exprnode.OriginKeyword || len(n.Children) != 1 {
		return n
	}
	if n.Kind == n.Children[0].Kind {
		return n.Children[0]
	}
	return n
}

func allLiteral(children []*exprnode.Node) bool {
	for _, c := range children {
		if !c.IsLiteral() {
			return false
		}
	}
	return true
}

// rowIndependent reports whether n may fold without a bound row. Every
// builtin is row-independent except the NOW family, which only folds once
// the context explicitly disables row-independent folding; a node with no
// spec at all (a column getter) only folds once a row is actually bound.
func rowIndependent(ctx *sqlctx.Context, n *exprnode.Node) bool {
	if n.Spec == nil {
		return ctx.CurrentRow != nil
	}
	switch n.Spec.Name() {
	case "NOW", "GETDATE", "CURRENT_TIMESTAMP", "CURRENT_DATE":
		return ctx.RowIndependentFoldingDisabled
	default:
		return true
	}
}

// foldConstant replaces a node whose children are all literal with the
// literal result of invoking its thunk, provided the node is eligible to
// fold without a bound row (or one is bound). A thunk error or nil result
// leaves the node unfolded rather than propagating — a failed fold is
// simply skipped.
func foldConstant(ctx *sqlctx.Context, n *exprnode.Node) *exprnode.Node {
	if n.Thunk == nil {
		return n
	}
	if !allLiteral(n.Children) {
		return n
	}
	if !rowIndependent(ctx, n) {
		return n
	}
	result, err := n.Thunk(ctx, n)
	if err != nil || result == nil {
		return n
	}
	return result
}

// simplifyLogical dispatches AND/OR nodes to the boolean-algebra rewrite;
// everything else passes through unchanged. NOT over a literal is already
// handled by foldConstant above (NOT is an ordinary registered thunk),
// so there is no separate NOT case here.
func simplifyLogical(n *exprnode.Node) *exprnode.Node {
	switch n.Origin {
	case exprnode.OriginAnd:
		return simplifyAndOr(n, false)
	case exprnode.OriginOr:
		return simplifyAndOr(n, true)
	default:
		return n
	}
}

// simplifyAndOr implements AND/OR boolean algebra: a literal absorbing
// value (false for AND, true for OR) collapses the whole node to that
// literal; literal identity values (true for AND, false for OR) are
// pruned from the operand list; a single surviving operand replaces the
// node outright.
func simplifyAndOr(n *exprnode.Node, isOr bool) *exprnode.Node {
	absorbing := isOr

	for _, child := range n.Children {
		if isLiteralBool(child, absorbing) {
			return child
		}
	}

	identity := !absorbing
	kept := make([]*exprnode.Node, 0, len(n.Children))
	for _, child := range n.Children {
		if isLiteralBool(child, identity) {
			continue
		}
		kept = append(kept, child)
	}
	n.Children = kept

	if len(n.Children) == 1 {
		return n.Children[0]
	}
	return n
}

func isLiteralBool(n *exprnode.Node, v bool) bool {
	return n.IsLiteral() && n.Kind == exprnode.Bool && !n.IsNull && n.BoolValue == v
}
