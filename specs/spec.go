// Package specs implements the spec registry, UpdatePlan, post-order type
// resolver and conversion matrix: each registered function is a pure
// (ctx, call) -> (UpdatePlan, error) update function, re-expressed here
// as a small Go interface/struct pair rather than a tagged union.
package specs

import (
	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

// UpdatePlan is a spec's answer for one call site: the expected argument
// types after promotion, the return type, and the implementation thunk.
type UpdatePlan struct {
	ExpectedArgTypes []exprnode.Kind
	ReturnType       exprnode.Kind
	Implementation   exprnode.Thunk
}

// UpdateFunc is a spec's update callback: (ctx, call node whose arguments'
// result tags are already known) -> UpdatePlan, or an error recorded on ctx.
type UpdateFunc func(ctx *sqlctx.Context, call *exprnode.Node) (*UpdatePlan, error)

// Spec is the full interface the resolver needs; it embeds exprnode.Spec so
// a Spec can be stored directly in sqlctx.Context's registry (which only
// knows about exprnode.Spec) and recovered here via a type assertion.
type Spec interface {
	exprnode.Spec
	Description() string
	Update(ctx *sqlctx.Context, call *exprnode.Node) (*UpdatePlan, error)
}

// Base is the concrete Spec implementation every builtin registers; it is
// the named, described, update-function triple every builtin registers.
type Base struct {
	SpecName string
	Desc     string
	UpdateFn UpdateFunc
}

func (b *Base) Name() string        { return b.SpecName }
func (b *Base) Description() string { return b.Desc }

func (b *Base) Update(ctx *sqlctx.Context, call *exprnode.Node) (*UpdatePlan, error) {
	return b.UpdateFn(ctx, call)
}

// Lookup fetches a registered spec from ctx and asserts it back to the
// full Spec interface (see sqlctx.Context.GetSpec's doc comment for why
// this indirection exists).
func Lookup(ctx *sqlctx.Context, name string) (Spec, bool) {
	s, ok := ctx.GetSpec(name)
	if !ok {
		return nil, false
	}
	full, ok := s.(Spec)
	return full, ok
}
