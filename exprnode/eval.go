package exprnode

// Eval computes n's value given ctx: a node with no Thunk is already a
// resolved value (a literal, or a prior Eval's result) and is returned
// unchanged; a node with a Thunk delegates to it, and the Thunk itself is
// responsible for calling Eval on whichever children it needs (recursion
// stays explicit in each Thunk rather than generic in Eval, since
// COALESCE/AND/OR short-circuit and must not evaluate every child).
func (n *Node) Eval(ctx interface{}) (*Node, error) {
	if n == nil {
		return nil, nil
	}
	if n.Thunk != nil {
		return n.Thunk(ctx, n)
	}
	return n, nil
}
