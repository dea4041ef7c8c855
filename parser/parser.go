// Package parser implements a recursive-descent parser over a single
// filter/WHERE-clause expression grammar, rather than full SQL DML/DDL.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/knode-ai-open-source/sql-parser-library/ast"
	"github.com/knode-ai-open-source/sql-parser-library/lexer"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
	"github.com/knode-ai-open-source/sql-parser-library/token"
)

// Parser consumes a token stream (already fully materialised by the lexer)
// and produces an *ast.Program.
type Parser struct {
	tokens []token.Token
	pos    int
	errors []string
}

// New creates a Parser over a pre-tokenized stream (see lexer.Tokenize).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse tokenizes input via the given classifier and parses it in one step.
func Parse(input string, c lexer.Classifier) (*ast.Program, []string) {
	toks := lexer.Tokenize(input, c)
	filtered := toks[:0:0]
	for _, t := range toks {
		if t.Type != token.COMMENT {
			filtered = append(filtered, t)
		}
	}
	p := New(filtered)
	prog := p.ParseProgram()
	return prog, p.errors
}

func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) cur() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return token.Token{Type: token.EOF}
}

func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return token.Token{Type: token.EOF}
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, sqlctx.ErrSyntactic.New(fmt.Sprintf(format, args...)).Error())
}

func (p *Parser) expect(tt token.Type) (token.Token, bool) {
	if p.cur().Type == tt {
		return p.advance(), true
	}
	p.errorf("expected %s, got %s (%q) at %d", tt, p.cur().Type, p.cur().Literal, p.cur().Start)
	return p.cur(), false
}

func isUpperKeyword(t token.Token, word string) bool {
	return (t.Type == token.KEYWORD || t.Type == token.IDENT) && strings.EqualFold(t.Literal, word)
}

// ParseProgram recognises an optional `SELECT ... FROM ...` framing (raw
// identifier lists, outside the core's scope) followed by a WHERE clause,
// or a bare expression when no SELECT/FROM/WHERE keywords are present.
// A top-level SELECT … FROM … WHERE <expr> is recognised only as three
// sibling clause nodes under a ROOT.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}

	if isUpperKeyword(p.cur(), "SELECT") {
		p.advance()
		prog.Select = p.parseIdentList()
	}
	if isUpperKeyword(p.cur(), "FROM") {
		p.advance()
		prog.From = p.parseIdentList()
	}
	if isUpperKeyword(p.cur(), "WHERE") {
		p.advance()
		prog.Where = p.parseExpression()
		return prog
	}
	if prog.Select == nil && prog.From == nil {
		// No clause keywords at all: treat the whole input as a bare
		// expression (the common case for this library's callers, who
		// invoke it directly on a WHERE-body fragment).
		if p.cur().Type != token.EOF {
			prog.Where = p.parseExpression()
		}
	}
	return prog
}

func (p *Parser) parseIdentList() []ast.Identifier {
	var out []ast.Identifier
	for {
		if p.cur().Type == token.IDENT || p.cur().Type == token.OPERATOR && p.cur().Literal == "*" {
			out = append(out, ast.Identifier{Token: p.cur(), Value: p.cur().Literal})
			p.advance()
		} else {
			break
		}
		if p.cur().Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	return out
}

// expression := and_expr ( OR and_expr )*
func (p *Parser) parseExpression() ast.Expression {
	left := p.parseAndExpr()
	for p.cur().Type == token.OR {
		tok := p.advance()
		right := p.parseAndExpr()
		left = &ast.InfixExpression{Token: tok, Left: left, Operator: "OR", Right: right}
	}
	return left
}

// and_expr := unary ( AND unary )*
func (p *Parser) parseAndExpr() ast.Expression {
	left := p.parseUnary()
	for p.cur().Type == token.AND {
		tok := p.advance()
		right := p.parseUnary()
		left = &ast.InfixExpression{Token: tok, Left: left, Operator: "AND", Right: right}
	}
	return left
}

// unary := NOT unary | '(' expression ')' | comparison
func (p *Parser) parseUnary() ast.Expression {
	if p.cur().Type == token.NOT {
		tok := p.advance()
		right := p.parseUnary()
		return &ast.PrefixExpression{Token: tok, Operator: "NOT", Right: right}
	}
	return p.parseComparison()
}

// comparison := arithmetic ( comparison_tail )?
func (p *Parser) parseComparison() ast.Expression {
	left := p.parseArithmetic()

	// NOT (BETWEEN|IN|LIKE) forms a single negated node.
	if p.cur().Type == token.NOT {
		save := p.pos
		p.advance()
		switch p.cur().Literal {
		case "BETWEEN":
			p.advance()
			return p.finishBetween(left, true)
		case "IN":
			p.advance()
			return p.finishIn(left, true)
		case "LIKE":
			p.advance()
			return p.finishLike(left, true)
		}
		p.pos = save
		return left
	}

	if isUpperKeyword(p.cur(), "IS") {
		p.advance()
		not := false
		if p.cur().Type == token.NOT {
			not = true
			p.advance()
		}
		var canonical string
		switch {
		case p.cur().Type == token.NULL:
			p.advance()
			canonical = "IS NULL"
			if not {
				canonical = "IS NOT NULL"
			}
		case isUpperKeyword(p.cur(), "TRUE"):
			p.advance()
			canonical = "IS TRUE"
			if not {
				canonical = "IS NOT TRUE"
			}
		case isUpperKeyword(p.cur(), "FALSE"):
			p.advance()
			canonical = "IS FALSE"
			if not {
				canonical = "IS NOT FALSE"
			}
		default:
			p.errorf("expected NULL, TRUE or FALSE after IS[ NOT], got %q", p.cur().Literal)
		}
		return &ast.IsExpression{Value: left, Canonical: canonical}
	}

	if p.cur().Type == token.COMPARISON {
		switch p.cur().Literal {
		case "BETWEEN":
			p.advance()
			return p.finishBetween(left, false)
		case "IN":
			p.advance()
			return p.finishIn(left, false)
		case "LIKE":
			p.advance()
			return p.finishLike(left, false)
		default:
			tok := p.advance()
			op := tok.Literal
			right := p.parseArithmetic()
			// '>' and '>=' are rewritten to '<'/'<=' with swapped operands
			// so downstream code sees only < and <=.
			switch op {
			case ">":
				return &ast.InfixExpression{Token: tok, Left: right, Operator: "<", Right: left}
			case ">=":
				return &ast.InfixExpression{Token: tok, Left: right, Operator: "<=", Right: left}
			default:
				return &ast.InfixExpression{Token: tok, Left: left, Operator: op, Right: right}
			}
		}
	}
	return left
}

func (p *Parser) finishBetween(probe ast.Expression, not bool) ast.Expression {
	lo := p.parseArithmetic()
	if _, ok := p.expect(token.AND); !ok {
		return &ast.BetweenExpression{Not: not, Value: probe, Lo: lo, Hi: lo}
	}
	hi := p.parseArithmetic()
	return &ast.BetweenExpression{Not: not, Value: probe, Lo: lo, Hi: hi}
}

func (p *Parser) finishIn(probe ast.Expression, not bool) ast.Expression {
	list := p.parseList()
	return &ast.InExpression{Not: not, Value: probe, List: list.Elements}
}

func (p *Parser) finishLike(probe ast.Expression, not bool) ast.Expression {
	pattern := p.parseArithmetic()
	return &ast.LikeExpression{Not: not, Value: probe, Pattern: pattern}
}

// arithmetic := ('+'|'-')? term ( ('+'|'-') term )*
func (p *Parser) parseArithmetic() ast.Expression {
	var left ast.Expression
	if p.cur().Type == token.OPERATOR && (p.cur().Literal == "+" || p.cur().Literal == "-") {
		tok := p.advance()
		right := p.parseTerm()
		left = &ast.PrefixExpression{Token: tok, Operator: tok.Literal, Right: right}
	} else {
		left = p.parseTerm()
	}
	for p.cur().Type == token.OPERATOR && (p.cur().Literal == "+" || p.cur().Literal == "-") {
		tok := p.advance()
		right := p.parseTerm()
		left = &ast.InfixExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left
}

// term := factor ( ('*'|'/') factor )*
func (p *Parser) parseTerm() ast.Expression {
	left := p.parseFactor()
	for p.cur().Type == token.OPERATOR && (p.cur().Literal == "*" || p.cur().Literal == "/") {
		tok := p.advance()
		right := p.parseFactor()
		left = &ast.InfixExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left
}

// factor := '(' arithmetic ')' | primary
func (p *Parser) parseFactor() ast.Expression {
	return p.parsePrimary()
}

// primary := '(' expression ')' | function_call | atom ( '::' typename )?
func (p *Parser) parsePrimary() ast.Expression {
	switch p.cur().Type {
	case token.OPEN_PAREN:
		p.advance()
		inner := p.parseExpression()
		p.expect(token.CLOSE_PAREN)
		return inner
	case token.FUNCTION:
		return p.parseFunctionCall()
	case token.FUNCTION_LITERAL:
		tok := p.advance()
		return &ast.FunctionCall{Token: tok, Name: strings.ToUpper(tok.Literal), Bare: true}
	}
	return p.parseAtomWithCast()
}

func (p *Parser) parseAtomWithCast() ast.Expression {
	atom := p.parseAtom()
	if p.cur().Type == token.OPERATOR && p.cur().Literal == "::" {
		tok := p.advance()
		typeName := p.cur().Literal
		p.advance()
		return &ast.CastExpression{Token: tok, Form: "::", Value: atom, TypeName: strings.ToUpper(typeName)}
	}
	return atom
}

// atom := IDENTIFIER | NUMBER | LITERAL | COMPOUND_LITERAL
func (p *Parser) parseAtom() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case token.IDENT:
		p.advance()
		if isUpperKeyword(tok, "TRUE") {
			return &ast.BoolLiteral{Token: tok, Value: true}
		}
		if isUpperKeyword(tok, "FALSE") {
			return &ast.BoolLiteral{Token: tok, Value: false}
		}
		return &ast.Identifier{Token: tok, Value: tok.Literal}
	case token.KEYWORD:
		p.advance()
		return &ast.Identifier{Token: tok, Value: tok.Literal}
	case token.NUMBER:
		p.advance()
		if strings.ContainsAny(tok.Literal, ".eE") {
			v, err := strconv.ParseFloat(tok.Literal, 64)
			if err != nil {
				p.errorf("invalid float literal %q", tok.Literal)
			}
			return &ast.FloatLiteral{Token: tok, Value: v}
		}
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.errorf("invalid integer literal %q", tok.Literal)
		}
		return &ast.IntegerLiteral{Token: tok, Value: v}
	case token.LITERAL:
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case token.NULL:
		p.advance()
		return &ast.NullLiteral{Token: tok}
	case token.COMPOUND_LITERAL:
		p.advance()
		kind, body := splitCompound(tok.Literal)
		return &ast.CompoundLiteral{Token: tok, Kind: kind, Body: body}
	case token.OPEN_BRACKET:
		lst := p.parseList()
		return lst
	default:
		p.errorf("unexpected token %s (%q) at %d", tok.Type, tok.Literal, tok.Start)
		p.advance()
		return &ast.NullLiteral{Token: tok}
	}
}

func splitCompound(lit string) (kind, body string) {
	parts := strings.SplitN(lit, " ", 2)
	kind = parts[0]
	if len(parts) > 1 {
		body = parts[1]
	}
	return
}

// function_call := FUNCTION '(' expr_list? ')'
//
// EXTRACT(field FROM datetime) has its own internal syntax ("FROM" as a
// separator rather than a comma), so it is special-cased here; DATE_TRUNC
// keeps the plain comma-separated shape.
func (p *Parser) parseFunctionCall() ast.Expression {
	tok := p.advance()
	name := strings.ToUpper(tok.Literal)
	p.expect(token.OPEN_PAREN)

	if name == "CAST" {
		val := p.parseExpression()
		if !isUpperKeyword(p.cur(), "AS") {
			p.errorf("expected AS in CAST(value AS type), got %q", p.cur().Literal)
		} else {
			p.advance()
		}
		typeName := p.cur().Literal
		p.advance()
		p.expect(token.CLOSE_PAREN)
		return &ast.CastExpression{Token: tok, Form: "CAST", Value: val, TypeName: strings.ToUpper(typeName)}
	}

	if name == "EXTRACT" {
		field := p.cur().Literal
		p.advance() // field identifier/keyword
		if !isUpperKeyword(p.cur(), "FROM") {
			p.errorf("expected FROM in EXTRACT(field FROM datetime), got %q", p.cur().Literal)
		} else {
			p.advance()
		}
		val := p.parseExpression()
		p.expect(token.CLOSE_PAREN)
		return &ast.ExtractExpression{Token: tok, Name: name, Field: strings.ToUpper(field), Value: val}
	}

	args := p.parseExprList(token.CLOSE_PAREN)
	p.expect(token.CLOSE_PAREN)
	return &ast.FunctionCall{Token: tok, Name: name, Args: args}
}

// list := '(' expr_list ')' | '[' expr_list ']'
func (p *Parser) parseList() *ast.ListExpression {
	open := p.cur().Type
	closeTT := token.CLOSE_PAREN
	if open == token.OPEN_BRACKET {
		closeTT = token.CLOSE_BRACKET
	}
	tok := p.advance() // consume '(' or '['
	elems := p.parseExprList(closeTT)
	p.expect(closeTT)
	return &ast.ListExpression{Token: tok, Elements: elems}
}

// expr_list := expression (',' expression)*
//
// Balances nested '(' and '[' so commas inside a nested call/list do not
// split the outer list.
func (p *Parser) parseExprList(until token.Type) []ast.Expression {
	var out []ast.Expression
	if p.cur().Type == until {
		return out
	}
	for {
		out = append(out, p.parseExpression())
		if p.cur().Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	return out
}
