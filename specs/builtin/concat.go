// Non-string / NULL parameters are silently skipped; an all-NULL call
// returns NULL.
package builtin

import (
	"strings"

	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func concatThunk(ctx interface{}, n *exprnode.Node) (*exprnode.Node, error) {
	var b strings.Builder
	any := false
	for _, childExpr := range n.Children {
		child := evalChild(ctx, childExpr)
		if child.IsNull || child.Kind != exprnode.String {
			continue
		}
		b.WriteString(child.StringValue)
		any = true
	}
	if !any {
		return exprnode.NewNullOfKind(exprnode.String), nil
	}
	return exprnode.NewString(b.String(), false), nil
}

func updateConcat(ctx *sqlctx.Context, call *exprnode.Node) (*specs.UpdatePlan, error) {
	if len(call.Children) < 1 {
		ctx.ErrorArity("CONCAT function requires at least one parameter.")
		return nil, nil
	}
	expected := make([]exprnode.Kind, len(call.Children))
	for i := range expected {
		expected[i] = exprnode.String
	}
	return &specs.UpdatePlan{
		ExpectedArgTypes: expected,
		ReturnType:       exprnode.String,
		Implementation:   concatThunk,
	}, nil
}

func InstallConcat(ctx *sqlctx.Context) {
	ctx.RegisterSpec(&specs.Base{SpecName: "CONCAT", Desc: "Concatenates multiple string values into a single string.", UpdateFn: updateConcat})
}
