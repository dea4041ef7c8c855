// IN's own common-type rule is narrower than the general promotion table
// (specs.PromoteType): mismatched non-numeric types fall straight to
// STRING rather than UNKNOWN, so IN uses specs.InListPromoteType instead.
package builtin

import (
	"strings"

	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func inThunk(kind exprnode.Kind, negate bool) exprnode.Thunk {
	return func(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
		value := evalChild(ctx, n.Children[0])
		list := n.Children[1]
		if value.IsNull {
			return exprnode.NewNullOfKind(exprnode.Bool), nil
		}
		found, hasNull := false, false
		for _, elemExpr := range list.Children {
			elem := evalChild(ctx, elemExpr)
			if elem.IsNull {
				hasNull = true
				continue
			}
			switch kind {
			case exprnode.Int:
				found = elem.IntValue == value.IntValue
			case exprnode.Double:
				found = elem.DoubleValue == value.DoubleValue
			case exprnode.String:
				found = strings.EqualFold(elem.StringValue, value.StringValue)
			}
			if found {
				break
			}
		}
		if negate {
			// Deliberate deviation from the SQL standard: NULL and
			// not-found (rather than NULL propagating through NOT IN)
			// yields true, matching how an LLM-authored query typically
			// expects NOT IN to behave.
			if !found && hasNull {
				return exprnode.NewBool(true, false), nil
			}
			return exprnode.NewBool(!found, false), nil
		}
		return exprnode.NewBool(found, !found && hasNull), nil
	}
}

func updateIn(name string, negate bool) specs.UpdateFunc {
	return func(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
		if len(call.Children) != 2 {
			ctx.ErrorArity("%s requires exactly two parameters: a value and a list.", name)
			return nil, nil
		}
		list := call.Children[1]
		if list.Kind != exprnode.List {
			ctx.Errorf("the second parameter of %s must be a list.", name)
			return nil, nil
		}

		common := call.Children[0].Kind
		for _, elem := range list.Children {
			common = specs.InListPromoteType(common, elem.Kind)
		}

		impl, ok := map[exprnode.Kind]exprnode.Thunk{
			exprnode.Int:    inThunk(exprnode.Int, negate),
			exprnode.Double: inThunk(exprnode.Double, negate),
			exprnode.String: inThunk(exprnode.String, negate),
		}[common]
		if !ok {
			ctx.ErrorType("%s is not supported for this type.", name)
			return nil, nil
		}

		// The list child's own Kind is always List, so the generic
		// per-argument conversion in Resolve never touches its elements.
		// Convert each mismatched-kind element to common here instead.
		for i, elem := range list.Children {
			if elem.Kind != common && !elem.IsNull {
				list.Children[i] = specs.Convert(ctx, elem, common)
			}
		}

		return &specs.UpdatePlan{
			ExpectedArgTypes: []exprnode.Kind{common, exprnode.List},
			ReturnType:       exprnode.Bool,
			Implementation:   impl,
		}, nil
	}
}

func InstallIn(ctx *sqlctx.Context) {
	ctx.RegisterSpec(&specs.Base{SpecName: "IN", Desc: "Checks if a value is in a list (supports type promotion).", UpdateFn: updateIn("IN", false)})
	ctx.RegisterSpec(&specs.Base{SpecName: "NOT IN", Desc: "Checks if a value is not in a list (supports type promotion).", UpdateFn: updateIn("NOT IN", true)})
}
