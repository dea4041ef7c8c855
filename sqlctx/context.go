// Package sqlctx implements Context, the per-parse/evaluate state: column
// schema, reserved-keyword set, spec registry, callback registry,
// error/warning queues, current row pointer, timezone offset. Node
// allocation is ordinary Go heap allocation collected by the GC; there is
// no pooling or arena.
package sqlctx

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/knode-ai-open-source/sql-parser-library/ciset"
	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
)

// Column is a named, typed getter registered against a Context.
type Column struct {
	Name   string
	Kind   exprnode.Kind
	Getter func(ctx *Context) *exprnode.Node
}

// Context owns every piece of mutable state a parse+eval run touches.
type Context struct {
	Columns []Column

	ReservedKeywords *ciset.Set
	Specs            *ciset.Map // name -> exprnode.Spec

	Callbacks *CallbackRegistry

	errors   []error
	warnings []error

	CurrentRow interface{}

	TimeZoneOffsetSeconds int

	// RowIndependentFoldingDisabled, when true, allows NOW()/CURRENT_*
	// calls to constant-fold during simplification: NOW family calls fold
	// only once a caller explicitly disables row-independent folding.
	RowIndependentFoldingDisabled bool

	// Log is nil by default; the core never logs unless a caller opts in.
	// CLI harnesses set this to a configured *logrus.Logger.
	Log *logrus.Logger
}

// New creates an empty context. Callers then call InstallDefaults (package
// specs/builtin) to populate keywords and specs.
func New() *Context {
	return &Context{
		ReservedKeywords: ciset.NewSet(),
		Specs:            ciset.NewMap(),
		Callbacks:        NewCallbackRegistry(),
	}
}

// Errorf records a context error under the generic semantic-error kind.
// Call sites with a more specific category use ErrorType/ErrorArity instead.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.errors = append(c.errors, ErrSemantic.New(fmt.Sprintf(format, args...)))
}

// ErrorType records a type-mismatch/type-support error under ErrType.
func (c *Context) ErrorType(format string, args ...interface{}) {
	c.errors = append(c.errors, ErrType.New(fmt.Sprintf(format, args...)))
}

// ErrorArity records a wrong-parameter-count error under ErrArity.
func (c *Context) ErrorArity(format string, args ...interface{}) {
	c.errors = append(c.errors, ErrArity.New(fmt.Sprintf(format, args...)))
}

// Warnf records a context warning.
func (c *Context) Warnf(format string, args ...interface{}) {
	c.warnings = append(c.warnings, fmt.Errorf(format, args...))
}

func (c *Context) Error(err error) { c.errors = append(c.errors, err) }
func (c *Context) Warning(err error) { c.warnings = append(c.warnings, err) }

func (c *Context) Errors() []error   { return c.errors }
func (c *Context) Warnings() []error { return c.warnings }

func (c *Context) HasErrors() bool { return len(c.errors) > 0 }

func (c *Context) ClearMessages() {
	c.errors = nil
	c.warnings = nil
}

func (c *Context) ReserveKeyword(kw string) { c.ReservedKeywords.Add(kw) }

func (c *Context) IsReservedKeyword(name string) bool { return c.ReservedKeywords.Has(name) }

// RegisterSpec and GetSpec register/look up a spec by name. The stored
// value is the exprnode.Spec interface; package specs'
// resolver type-asserts it to the fuller specs.Spec interface (which
// embeds exprnode.Spec and adds Update) to invoke it — this indirection
// is what keeps sqlctx free of an import on package specs.
func (c *Context) RegisterSpec(spec exprnode.Spec) { c.Specs.Set(spec.Name(), spec) }

func (c *Context) GetSpec(name string) (exprnode.Spec, bool) {
	v, ok := c.Specs.Get(name)
	if !ok {
		return nil, false
	}
	return v.(exprnode.Spec), true
}

// IsFunctionName implements lexer.Classifier: true iff name is a registered
// spec.
func (c *Context) IsFunctionName(name string) bool {
	_, ok := c.Specs.Get(name)
	return ok
}

// RegisterColumn registers a named column getter; lookup is
// case-insensitive against the column schema.
func (c *Context) RegisterColumn(name string, kind exprnode.Kind, getter func(ctx *Context) *exprnode.Node) {
	c.Columns = append(c.Columns, Column{Name: name, Kind: kind, Getter: getter})
}

func (c *Context) LookupColumn(name string) (Column, bool) {
	for _, col := range c.Columns {
		if equalFold(col.Name, name) {
			return col, true
		}
	}
	return Column{}, false
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
