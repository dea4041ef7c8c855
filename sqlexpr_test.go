package sqlexpr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

func newOrdersContext() *sqlctx.Context {
	ctx := NewContext()
	ctx.RegisterColumn("status", exprnode.String, func(c *sqlctx.Context) *exprnode.Node {
		row, _ := c.CurrentRow.(map[string]interface{})
		v, _ := row["status"].(string)
		return exprnode.NewString(v, v == "")
	})
	ctx.RegisterColumn("total", exprnode.Double, func(c *sqlctx.Context) *exprnode.Node {
		row, _ := c.CurrentRow.(map[string]interface{})
		v, ok := row["total"].(float64)
		return exprnode.NewDouble(v, !ok)
	})
	return ctx
}

func TestCompileAndMatchesRow(t *testing.T) {
	ctx := newOrdersContext()
	compiled, err := Compile(ctx, "status = 'open' AND total > 10")
	require.NoError(t, err)

	rows := []map[string]interface{}{
		{"status": "open", "total": 12.5},
		{"status": "open", "total": 5.0},
		{"status": "closed", "total": 99.0},
	}
	want := []bool{true, false, false}

	for i, row := range rows {
		matched, err := compiled.MatchesRow(ctx, row)
		require.NoError(t, err)
		require.Equalf(t, want[i], matched, "row %d", i)
	}
}

func TestCompileConstantFoldsWithoutColumns(t *testing.T) {
	ctx := NewContext()
	compiled, err := Compile(ctx, "1 + 2 = 3")
	require.NoError(t, err)
	require.Nil(t, compiled.Node.Thunk, "expected a fully constant expression to fold down to a literal")

	matched, err := compiled.Matches(ctx)
	require.NoError(t, err)
	require.True(t, matched)
}

func TestCompileParseErrorSurfacesFromPipeline(t *testing.T) {
	ctx := NewContext()
	_, err := Compile(ctx, "a ++ ")
	require.Error(t, err)
}

func TestCompileUnresolvedColumnSurfacesLowerError(t *testing.T) {
	ctx := NewContext()
	_, err := Compile(ctx, "not_a_registered_column = 1")
	require.Error(t, err, "expected a lowering error for a reference to an unregistered column")
}

func TestMatchesTreatsNullAsNoMatch(t *testing.T) {
	ctx := newOrdersContext()
	compiled, err := Compile(ctx, "total > 10")
	require.NoError(t, err)

	// total is absent from this row, so the column getter returns a null
	// double; three-valued WHERE semantics treat that as no match.
	matched, err := compiled.MatchesRow(ctx, map[string]interface{}{"status": "open"})
	require.NoError(t, err)
	require.False(t, matched, "expected a null comparison result to fail to match")
}
