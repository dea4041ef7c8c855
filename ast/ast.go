// Package ast defines the untyped syntax tree produced by the parser:
// a Node/Expression interface pair with one struct per construct,
// narrowed to the expression grammar this library actually parses.
package ast

import "github.com/knode-ai-open-source/sql-parser-library/token"

// Node is any syntax tree node.
type Node interface {
	TokenLiteral() string
	String() string
}

// Expression is a Node that yields a value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root of a parsed fragment: SELECT/FROM are recognised only
// as raw sibling clauses; Where carries the only expression subtree the
// core cares about.
type Program struct {
	Select []Identifier // raw column identifiers, outside the core's scope
	From   []Identifier
	Where  Expression
}

func (p *Program) TokenLiteral() string { return "PROGRAM" }
func (p *Program) String() string {
	if p.Where != nil {
		return p.Where.String()
	}
	return ""
}

// Identifier is a column reference.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

// IntegerLiteral is a NUMBER token with no '.' or exponent.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (n *IntegerLiteral) expressionNode()      {}
func (n *IntegerLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *IntegerLiteral) String() string       { return n.Token.Literal }

// FloatLiteral is a NUMBER token containing '.' or an exponent.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (n *FloatLiteral) expressionNode()      {}
func (n *FloatLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *FloatLiteral) String() string       { return n.Token.Literal }

// StringLiteral is a single-quoted LITERAL token.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (n *StringLiteral) expressionNode()      {}
func (n *StringLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *StringLiteral) String() string       { return "'" + n.Value + "'" }

// NullLiteral is the NULL keyword.
type NullLiteral struct {
	Token token.Token
}

func (n *NullLiteral) expressionNode()      {}
func (n *NullLiteral) TokenLiteral() string { return "NULL" }
func (n *NullLiteral) String() string       { return "NULL" }

// BoolLiteral is the bare identifier TRUE/FALSE (the expression grammar has
// no dedicated boolean token kind; these are recognised at parse time).
type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (n *BoolLiteral) expressionNode()      {}
func (n *BoolLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *BoolLiteral) String() string       { return n.Token.Literal }

// CompoundLiteral is a COMPOUND_LITERAL token: TIMESTAMP '...' or
// INTERVAL '...'.
type CompoundLiteral struct {
	Token token.Token
	Kind  string // "TIMESTAMP" or "INTERVAL"
	Body  string
}

func (n *CompoundLiteral) expressionNode()      {}
func (n *CompoundLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *CompoundLiteral) String() string       { return n.Kind + " '" + n.Body + "'" }

// PrefixExpression is NOT x, -x, +x.
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (n *PrefixExpression) expressionNode()      {}
func (n *PrefixExpression) TokenLiteral() string { return n.Token.Literal }
func (n *PrefixExpression) String() string       { return "(" + n.Operator + " " + n.Right.String() + ")" }

// InfixExpression covers AND, OR, arithmetic, and plain comparisons
// (=, !=, <, <=; > and >= are rewritten to < / <= with swapped operands at
// parse time).
type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (n *InfixExpression) expressionNode()      {}
func (n *InfixExpression) TokenLiteral() string { return n.Token.Literal }
func (n *InfixExpression) String() string {
	return "(" + n.Left.String() + " " + n.Operator + " " + n.Right.String() + ")"
}

// CastExpression covers all three conversion surfaces this grammar names:
// `atom :: typename` (Form="::"), `CAST(x AS typename)` (Form="CAST"), and
// `CONVERT(typename, x)` (Form="CONVERT") — they share one AST shape since
// all three lower to the same Convert spec lookup.
type CastExpression struct {
	Token    token.Token
	Form     string
	Value    Expression
	TypeName string
}

func (n *CastExpression) expressionNode()      {}
func (n *CastExpression) TokenLiteral() string { return n.Form }
func (n *CastExpression) String() string       { return n.Value.String() + "::" + n.TypeName }

// BetweenExpression: probe BETWEEN lo AND hi (Not=true for NOT BETWEEN).
type BetweenExpression struct {
	Token token.Token
	Not   bool
	Value Expression
	Lo    Expression
	Hi    Expression
}

func (n *BetweenExpression) expressionNode() {}
func (n *BetweenExpression) TokenLiteral() string {
	if n.Not {
		return "NOT BETWEEN"
	}
	return "BETWEEN"
}
func (n *BetweenExpression) String() string {
	return n.Value.String() + " " + n.TokenLiteral() + " " + n.Lo.String() + " AND " + n.Hi.String()
}

// InExpression: probe [NOT] IN (list...).
type InExpression struct {
	Token token.Token
	Not   bool
	Value Expression
	List  []Expression
}

func (n *InExpression) expressionNode() {}
func (n *InExpression) TokenLiteral() string {
	if n.Not {
		return "NOT IN"
	}
	return "IN"
}
func (n *InExpression) String() string { return n.Value.String() + " " + n.TokenLiteral() + " (...)" }

// LikeExpression: probe [NOT] LIKE pattern.
type LikeExpression struct {
	Token   token.Token
	Not     bool
	Value   Expression
	Pattern Expression
}

func (n *LikeExpression) expressionNode() {}
func (n *LikeExpression) TokenLiteral() string {
	if n.Not {
		return "NOT LIKE"
	}
	return "LIKE"
}
func (n *LikeExpression) String() string {
	return n.Value.String() + " " + n.TokenLiteral() + " " + n.Pattern.String()
}

// IsExpression covers IS [NOT] (NULL|TRUE|FALSE); Canonical is the exact
// registry-lookup name ("IS NULL", "IS NOT NULL", etc).
type IsExpression struct {
	Token     token.Token
	Value     Expression
	Canonical string
}

func (n *IsExpression) expressionNode()      {}
func (n *IsExpression) TokenLiteral() string { return n.Canonical }
func (n *IsExpression) String() string       { return n.Value.String() + " " + n.Canonical }

// FunctionCall: NAME(args...) or a bare NAME (FUNCTION_LITERAL, Bare=true).
type FunctionCall struct {
	Token token.Token
	Name  string
	Args  []Expression
	Bare  bool
}

func (n *FunctionCall) expressionNode()      {}
func (n *FunctionCall) TokenLiteral() string { return n.Name }
func (n *FunctionCall) String() string       { return n.Name + "(...)" }

// ExtractExpression: EXTRACT(field FROM datetime). DATE_TRUNC(part, dt) is
// parsed as an ordinary FunctionCall, not as this shape.
type ExtractExpression struct {
	Token token.Token
	Name  string
	Field string
	Value Expression
}

func (n *ExtractExpression) expressionNode()      {}
func (n *ExtractExpression) TokenLiteral() string { return n.Name }
func (n *ExtractExpression) String() string {
	return n.Name + "(" + n.Field + ", " + n.Value.String() + ")"
}

// ListExpression: '(' expr_list ')' or '[' expr_list ']' used as an IN list
// or a bare list literal.
type ListExpression struct {
	Token    token.Token
	Elements []Expression
}

func (n *ListExpression) expressionNode()      {}
func (n *ListExpression) TokenLiteral() string { return "(" }
func (n *ListExpression) String() string       { return "(...)" }
