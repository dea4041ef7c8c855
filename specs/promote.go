package specs

import "github.com/knode-ai-open-source/sql-parser-library/exprnode"

// PromoteType is the promotion table used when resolving a binary/N-ary
// call node to decide the type its children should be converted to
// before an implementation runs.
func PromoteType(a, b exprnode.Kind) exprnode.Kind {
	if a == b {
		return a
	}
	if a == exprnode.Unknown {
		return b
	}
	if b == exprnode.Unknown {
		return a
	}
	if (a == exprnode.Int && b == exprnode.Double) || (a == exprnode.Double && b == exprnode.Int) {
		return exprnode.Double
	}
	if (a == exprnode.Datetime && (b == exprnode.Int || b == exprnode.Double)) ||
		(b == exprnode.Datetime && (a == exprnode.Int || a == exprnode.Double)) {
		return exprnode.Datetime
	}
	if (a == exprnode.Datetime && b == exprnode.String) || (b == exprnode.Datetime && a == exprnode.String) {
		return exprnode.Datetime
	}
	if a == exprnode.String || b == exprnode.String {
		return exprnode.String
	}
	return exprnode.Unknown
}

// PromoteAll folds PromoteType across a slice of kinds.
func PromoteAll(kinds []exprnode.Kind) exprnode.Kind {
	if len(kinds) == 0 {
		return exprnode.Unknown
	}
	common := kinds[0]
	for _, k := range kinds[1:] {
		common = PromoteType(common, k)
	}
	return common
}

// InListPromoteType is IN's own narrower promotion rule: no
// datetime/string promotion path, mismatched types outside INT/DOUBLE fall
// straight to STRING rather than UNKNOWN.
func InListPromoteType(a, b exprnode.Kind) exprnode.Kind {
	if a == b {
		return a
	}
	if (a == exprnode.Int && b == exprnode.Double) || (a == exprnode.Double && b == exprnode.Int) {
		return exprnode.Double
	}
	return exprnode.String
}
