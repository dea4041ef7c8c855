// Conversion matrix: accepted type names and the per-pair conversion
// functions driving CONVERT/CAST/`::`. All three parser surfaces lower to
// a single Convert call (see lower.lowerCast) rather than a
// separate dispatch keyed by call name — the parser has already
// normalised the three surfaces into one ast.CastExpression shape.
package specs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/knode-ai-open-source/sql-parser-library/dateutil"
	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

// ParseDataType resolves a CAST/CONVERT type-name token to a Kind.
func ParseDataType(name string) (exprnode.Kind, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "INT", "INTEGER":
		return exprnode.Int, true
	case "DOUBLE", "DECIMAL", "NUMERIC":
		return exprnode.Double, true
	case "STRING", "VARCHAR", "CHAR":
		return exprnode.String, true
	case "DATETIME":
		return exprnode.Datetime, true
	case "BOOL", "BOOLEAN":
		return exprnode.Bool, true
	default:
		return exprnode.Unknown, false
	}
}

// Convert performs the single value conversion named by (source kind,
// target kind); unsupported pairs record a context error and return a null
// node of the target kind. Source==target is a no-op pass-through; the
// caller is expected to have already skipped the conversion node, but
// Convert tolerates it defensively.
func Convert(ctx *sqlctx.Context, n *exprnode.Node, target exprnode.Kind) *exprnode.Node {
	if n.Kind == target {
		return n
	}
	if n.IsNull {
		return exprnode.NewNullOfKind(target)
	}

	switch n.Kind {
	case exprnode.Bool:
		switch target {
		case exprnode.Int:
			return exprnode.NewInt(boolToInt(n.BoolValue), false)
		case exprnode.Double:
			return exprnode.NewDouble(boolToDouble(n.BoolValue), false)
		case exprnode.String:
			return exprnode.NewString(strconv.FormatBool(n.BoolValue), false)
		}
	case exprnode.Int:
		switch target {
		case exprnode.Bool:
			return exprnode.NewBool(n.IntValue != 0, false)
		case exprnode.Datetime:
			return exprnode.NewDatetime(n.IntValue, false)
		case exprnode.Double:
			return exprnode.NewDouble(float64(n.IntValue), false)
		case exprnode.String:
			return exprnode.NewString(strconv.FormatInt(n.IntValue, 10), false)
		}
	case exprnode.Double:
		switch target {
		case exprnode.Bool:
			return exprnode.NewBool(n.DoubleValue != 0, false)
		case exprnode.Datetime:
			return exprnode.NewDatetime(int64(n.DoubleValue), false)
		case exprnode.Int:
			return exprnode.NewInt(int64(n.DoubleValue), false)
		case exprnode.String:
			return exprnode.NewString(strconv.FormatFloat(n.DoubleValue, 'g', -1, 64), false)
		}
	case exprnode.String:
		switch target {
		case exprnode.Bool:
			if b, err := strconv.ParseBool(strings.TrimSpace(n.StringValue)); err == nil {
				return exprnode.NewBool(b, false)
			}
			return exprnode.NewNullOfKind(exprnode.Bool)
		case exprnode.Int:
			if v, err := strconv.ParseInt(strings.TrimSpace(n.StringValue), 10, 64); err == nil {
				return exprnode.NewInt(v, false)
			}
			return exprnode.NewNullOfKind(exprnode.Int)
		case exprnode.Double:
			if v, err := strconv.ParseFloat(strings.TrimSpace(n.StringValue), 64); err == nil {
				return exprnode.NewDouble(v, false)
			}
			return exprnode.NewNullOfKind(exprnode.Double)
		case exprnode.Datetime:
			if epoch, ok := dateutil.ParseDatetime(n.StringValue); ok {
				return exprnode.NewDatetime(epoch, false)
			}
			return exprnode.NewNullOfKind(exprnode.Datetime)
		}
	case exprnode.Datetime:
		if target == exprnode.String {
			return exprnode.NewString(dateutil.FormatISOUTC(n.Epoch), false)
		}
	}

	ctx.ErrorType("unsupported conversion from %s to %s", n.Kind, target)
	return exprnode.NewNullOfKind(target)
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func boolToDouble(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// DescribeConversion renders a human-readable conversion name, used by CLI
// dumps.
func DescribeConversion(from, to exprnode.Kind) string {
	return fmt.Sprintf("%s -> %s", from, to)
}
