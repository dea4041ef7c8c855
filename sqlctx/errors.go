package sqlctx

import errors "gopkg.in/src-d/go-errors.v1"

// Error kinds, one per error taxonomy bucket.
var (
	ErrLexical   = errors.NewKind("lexical error: %s")
	ErrSyntactic = errors.NewKind("syntax error: %s")
	ErrType      = errors.NewKind("type error: %s")
	ErrArity     = errors.NewKind("arity error: %s")
	ErrSemantic  = errors.NewKind("semantic error: %s")
)

// ErrSchemaWarning names an identifier that doesn't resolve against the
// context's column schema. Lowering records it on the errors queue (an
// unresolved column leaves the expression with nothing to evaluate), but
// it is kept as its own kind so a caller can still distinguish it from
// ErrType/ErrArity failures via Kind.Is.
var ErrSchemaWarning = errors.NewKind("unknown column: %s")
