// Package sqlexpr is the library's top-level convenience API: tokenize,
// parse, lower, resolve and simplify a WHERE-clause expression in one call,
// then evaluate it against zero or more rows. It is a thin front door
// re-exporting the tokenize -> parse -> lower -> resolve -> simplify ->
// evaluate pipeline stages that live in their own packages.
package sqlexpr

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/lower"
	"github.com/knode-ai-open-source/sql-parser-library/parser"
	"github.com/knode-ai-open-source/sql-parser-library/simplify"
	"github.com/knode-ai-open-source/sql-parser-library/specs"
	"github.com/knode-ai-open-source/sql-parser-library/specs/builtin"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

// NewContext builds a context with every built-in keyword and spec
// installed. Callers still need to RegisterColumn their own schema
// before compiling any expression that references a column.
func NewContext() *sqlctx.Context {
	ctx := sqlctx.New()
	builtin.InstallDefaults(ctx)
	return ctx
}

// Compiled is a WHERE-clause expression that has been lowered, type-resolved
// and simplified, ready to evaluate against any number of rows.
type Compiled struct {
	Node *exprnode.Node

	// QueryID is a fresh uuid.New() stamped at Compile time. It carries no
	// meaning beyond "one Compile call" — its purpose is to give a caller
	// that logs or reports many compiled queries (a CLI harness, a batch
	// job) a stable handle to correlate log lines and output rows back to
	// the same compilation.
	QueryID string
}

// Compile runs the full per-query pipeline: tokenize, parse, lower,
// resolve, simplify. Lexer/parser errors and the first resolve error are
// both folded into the returned error; ctx.Errors()/ctx.Warnings() still
// accumulate everything for callers who want the full list.
func Compile(ctx *sqlctx.Context, sql string) (*Compiled, error) {
	queryID := uuid.New().String()
	if ctx.Log != nil {
		ctx.Log.WithField("query_id", queryID).WithField("sql", sql).Debug("compiling query")
	}

	prog, errs := parser.Parse(sql, ctx)
	if len(errs) > 0 {
		for _, e := range errs {
			ctx.Errorf("%s", e)
		}
		if ctx.Log != nil {
			ctx.Log.WithField("query_id", queryID).WithField("error", strings.Join(errs, "; ")).Warn("parse failed")
		}
		return nil, fmt.Errorf("sqlexpr: %s", strings.Join(errs, "; "))
	}

	before := len(ctx.Errors())
	node := lower.Lower(ctx, prog)
	if node == nil {
		return nil, fmt.Errorf("sqlexpr: no WHERE clause to compile")
	}
	if len(ctx.Errors()) > before {
		// Lower records unknown-column and bad-cast-type errors directly on
		// ctx rather than failing loudly, since a Spec-less identifier node
		// has nothing for specs.Resolve below to catch.
		if ctx.Log != nil {
			ctx.Log.WithField("query_id", queryID).WithField("error", lastError(ctx)).Warn("lower failed")
		}
		return nil, fmt.Errorf("sqlexpr: %s", lastError(ctx))
	}

	if !specs.Resolve(ctx, node) {
		if ctx.Log != nil {
			ctx.Log.WithField("query_id", queryID).WithField("error", lastError(ctx)).Warn("resolve failed")
		}
		return nil, fmt.Errorf("sqlexpr: %s", lastError(ctx))
	}

	node = simplify.Simplify(ctx, node)
	return &Compiled{Node: node, QueryID: queryID}, nil
}

func lastError(ctx *sqlctx.Context) string {
	errs := ctx.Errors()
	if len(errs) == 0 {
		return "resolve failed"
	}
	return errs[len(errs)-1].Error()
}

// Eval evaluates c against ctx.CurrentRow (or as a row-independent
// constant if none is bound).
func (c *Compiled) Eval(ctx *sqlctx.Context) (*exprnode.Node, error) {
	return c.Node.Eval(ctx)
}

// Matches evaluates c and reports whether the result is a resolved,
// non-null true — the three-valued WHERE-clause semantics where both null
// and false fail to match a row.
func (c *Compiled) Matches(ctx *sqlctx.Context) (bool, error) {
	result, err := c.Eval(ctx)
	if err != nil {
		return false, err
	}
	if result == nil || result.IsNull || result.Kind != exprnode.Bool {
		return false, nil
	}
	return result.BoolValue, nil
}

// MatchesRow binds row as ctx.CurrentRow, then evaluates c against it.
func (c *Compiled) MatchesRow(ctx *sqlctx.Context, row interface{}) (bool, error) {
	ctx.CurrentRow = row
	return c.Matches(ctx)
}
