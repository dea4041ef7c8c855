// Package exprnode defines the single runtime value/node type that flows
// through lowering, type resolution, simplification and evaluation. It
// expresses a tagged union as explicit typed fields (idiomatic for Go,
// and it avoids unsafe-pointer games a literal union translation would
// need); children are a slice, and per-call behavior is a Thunk closure.
package exprnode

import "fmt"

// Origin records which AST construct produced a node, preserved through
// lowering for diagnostics.
type Origin int

const (
	OriginToken Origin = iota
	OriginNumber
	OriginOperator
	OriginComparison
	OriginAnd
	OriginOr
	OriginNot
	OriginOpenParen
	OriginKeyword
	OriginFunction
	OriginFunctionLiteral
	OriginIdentifier
	OriginLiteral
	OriginCompoundLiteral
	OriginNull
	OriginList
)

// Kind is the node's result tag.
type Kind int

const (
	Unknown Kind = iota
	Int
	String
	Double
	Datetime
	Bool
	Function
	Custom
	List
)

func (k Kind) String() string {
	switch k {
	case Unknown:
		return "unknown"
	case Int:
		return "int"
	case String:
		return "string"
	case Double:
		return "double"
	case Datetime:
		return "datetime"
	case Bool:
		return "bool"
	case Function:
		return "function"
	case Custom:
		return "custom"
	case List:
		return "list"
	default:
		return "unknown"
	}
}

// Spec is the registry record a call node points back to (package specs
// defines the concrete type; exprnode only needs an opaque reference so
// that specs can import exprnode without a cycle).
type Spec interface {
	Name() string
}

// Thunk computes a call node's value given the context. Ctx is declared as
// an empty interface here (not sqlctx.Context) to break the import cycle
// between exprnode and sqlctx; sqlctx.Context is the only implementation
// in practice, and builtin specs type-assert it back.
type Thunk func(ctx interface{}, n *Node) (*Node, error)

// Node is the universal runtime value: a literal, a column reference, and
// a function call all share this shape.
type Node struct {
	Origin Origin
	Token  string // original spelling or canonical form, e.g. "IS NOT NULL"
	Kind   Kind

	IsNull bool

	BoolValue   bool
	IntValue    int64
	DoubleValue float64
	StringValue string
	Epoch       int64 // seconds since Unix epoch, UTC, for Kind==Datetime
	Custom      interface{}

	Children []*Node

	Thunk Thunk
	Spec  Spec

	Start  int
	Length int
}

// Literal constructors build an already-resolved leaf node; isNull marks it
// as a null of that kind.

func NewInt(v int64, isNull bool) *Node {
	return &Node{Origin: OriginNumber, Kind: Int, IntValue: v, IsNull: isNull}
}

func NewDouble(v float64, isNull bool) *Node {
	return &Node{Origin: OriginNumber, Kind: Double, DoubleValue: v, IsNull: isNull}
}

func NewString(v string, isNull bool) *Node {
	return &Node{Origin: OriginLiteral, Kind: String, StringValue: v, IsNull: isNull}
}

func NewBool(v bool, isNull bool) *Node {
	return &Node{Origin: OriginToken, Kind: Bool, BoolValue: v, IsNull: isNull}
}

func NewDatetime(epoch int64, isNull bool) *Node {
	return &Node{Origin: OriginCompoundLiteral, Kind: Datetime, Epoch: epoch, IsNull: isNull}
}

func NewNullOfKind(k Kind) *Node {
	return &Node{Kind: k, IsNull: true}
}

func NewList(elements []*Node) *Node {
	return &Node{Origin: OriginList, Kind: List, Children: elements}
}

// Scalar renders the node's payload for diagnostics and CLI dumps; it does
// not attempt to format lists or custom values beyond a type tag.
func (n *Node) Scalar() string {
	if n.IsNull {
		return "NULL"
	}
	switch n.Kind {
	case Int:
		return fmt.Sprintf("%d", n.IntValue)
	case Double:
		return fmt.Sprintf("%g", n.DoubleValue)
	case String:
		return n.StringValue
	case Bool:
		return fmt.Sprintf("%t", n.BoolValue)
	case Datetime:
		return fmt.Sprintf("@%d", n.Epoch)
	default:
		return fmt.Sprintf("<%s>", n.Kind)
	}
}

// IsLiteral reports whether n is a resolved scalar with no thunk of its
// own — the simplifier's constant-folding precondition.
func (n *Node) IsLiteral() bool {
	return n.Thunk == nil && n.Kind != Function && n.Kind != Unknown
}

// Clone makes a shallow copy of n whose Children slice is independent of
// the original's (the child nodes themselves are shared).
func (n *Node) Clone() *Node {
	cp := *n
	cp.Children = append([]*Node(nil), n.Children...)
	return &cp
}
