// InstallDefaults wires every builtin spec family into ctx in one call.
// CONVERT has no install function of its own: the three cast surfaces
// (::, CAST, CONVERT) are unified into one ast.CastExpression at parse time,
// so lowering builds a Convert thunk directly rather than dispatching
// through the spec registry (see specs/convert.go).
package builtin

import "github.com/knode-ai-open-source/sql-parser-library/sqlctx"

// defaultKeywords is the set of keywords reserved by default.
var defaultKeywords = []string{
	"SELECT", "FROM", "WHERE", "JOIN", "ON", "GROUP", "BY", "ORDER",
	"LIMIT", "OFFSET", "AS", "IS",
	"DISTINCT", "HAVING", "CASE", "WHEN", "THEN", "END", "EXISTS",
	"UNION", "ALL", "DOUBLE", "FLOAT", "INT", "INTEGER", "BOOL", "BOOLEAN",
	"DATETIME",
}

// ReserveDefaultKeywords marks defaultKeywords as reserved on ctx.
func ReserveDefaultKeywords(ctx *sqlctx.Context) {
	for _, kw := range defaultKeywords {
		ctx.ReserveKeyword(kw)
	}
}

// InstallDefaults registers every built-in spec onto ctx.
func InstallDefaults(ctx *sqlctx.Context) {
	ReserveDefaultKeywords(ctx)
	InstallArithmetic(ctx)
	InstallBoolean(ctx)
	InstallBetween(ctx)
	InstallCoalesce(ctx)
	InstallComparison(ctx)
	InstallConvertTz(ctx)
	InstallConcat(ctx)
	InstallDateTrunc(ctx)
	InstallExtract(ctx)
	InstallIsBoolean(ctx)
	InstallIsNull(ctx)
	InstallIn(ctx)
	InstallLike(ctx)
	InstallAvg(ctx)
	InstallLength(ctx)
	InstallLowerUpper(ctx)
	InstallMinMax(ctx)
	InstallNow(ctx)
	InstallRound(ctx)
	InstallSubstr(ctx)
	InstallSum(ctx)
	InstallTrim(ctx)
}
