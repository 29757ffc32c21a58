package parser

import (
	"math/big"

	"github.com/funvibe/plc/internal/ast"
	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/token"
	"github.com/shopspring/decimal"
)

// Binary operators by precedence level, loosest first. Every level is left
// associative.
var precedences = [][]string{
	{token.AND, token.OR},
	{"<", "<=", ">", ">=", "==", "!="},
	{"+", "-"},
	{"*", "/"},
}

// Precedence returns the binding level of a binary operator (higher binds
// tighter), or -1 if op is not one.
func Precedence(op string) int {
	for level, ops := range precedences {
		for _, o := range ops {
			if o == op {
				return level
			}
		}
	}
	return -1
}

func (p *Parser) parseExpression() ast.Expression {
	if p.failed {
		return nil
	}
	return p.parseBinary(0)
}

func (p *Parser) parseBinary(level int) ast.Expression {
	if level == len(precedences) {
		return p.parseSecondary()
	}
	left := p.parseBinary(level + 1)
	for !p.failed && p.curIsOneOf(precedences[level]) {
		opTok := p.nextToken()
		right := p.parseBinary(level + 1)
		if p.failed {
			return nil
		}
		left = &ast.BinaryExpression{Token: opTok, Operator: opTok.Lexeme, Left: left, Right: right}
	}
	if p.failed {
		return nil
	}
	return left
}

func (p *Parser) curIsOneOf(lexemes []string) bool {
	for _, l := range lexemes {
		if p.curIs(l) {
			return true
		}
	}
	return false
}

// primary ('.' name ['(' args ')'])*
func (p *Parser) parseSecondary() ast.Expression {
	expr := p.parsePrimary()
	for !p.failed && p.curIs(".") {
		p.nextToken()
		name, ok := p.expectIdentifier("field or method name")
		if !ok {
			return nil
		}
		if p.curIs("(") {
			args := p.parseArguments()
			if p.failed {
				return nil
			}
			expr = &ast.CallExpression{Token: name, Receiver: expr, Name: name.Lexeme, Arguments: args}
		} else {
			expr = &ast.AccessExpression{Token: name, Receiver: expr, Name: name.Lexeme}
		}
	}
	if p.failed {
		return nil
	}
	return expr
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.curToken
	switch tok.Type {
	case token.INTEGER:
		p.nextToken()
		return &ast.IntegerLiteral{Token: tok, Value: tok.Literal.(*big.Int)}
	case token.DECIMAL:
		p.nextToken()
		return &ast.DecimalLiteral{Token: tok, Value: tok.Literal.(decimal.Decimal)}
	case token.CHARACTER:
		p.nextToken()
		return &ast.CharacterLiteral{Token: tok, Value: tok.Literal.(rune)}
	case token.STRING:
		p.nextToken()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal.(string)}
	case token.IDENTIFIER:
		switch tok.Lexeme {
		case token.NIL:
			p.nextToken()
			return &ast.NilLiteral{Token: tok}
		case token.TRUE, token.FALSE:
			p.nextToken()
			return &ast.BooleanLiteral{Token: tok, Value: tok.Lexeme == token.TRUE}
		}
		if token.IsKeyword(tok.Lexeme) {
			p.addError(diagnostics.ErrP003, tok, "expected expression, found keyword %s", tok.Lexeme)
			return nil
		}
		p.nextToken()
		if p.curIs("(") {
			args := p.parseArguments()
			if p.failed {
				return nil
			}
			return &ast.CallExpression{Token: tok, Name: tok.Lexeme, Arguments: args}
		}
		return &ast.AccessExpression{Token: tok, Name: tok.Lexeme}
	case token.OPERATOR:
		if tok.Lexeme == "(" {
			p.nextToken()
			inner := p.parseExpression()
			if _, ok := p.expect(")"); !ok {
				return nil
			}
			return &ast.GroupExpression{Token: tok, Expression: inner}
		}
	case token.EOF:
		p.addError(diagnostics.ErrP002, tok, "missing expression")
		return nil
	}
	p.addError(diagnostics.ErrP003, tok, "expected expression, found '%s'", tok.Lexeme)
	return nil
}

// '(' [expr (',' expr)*] ')'
func (p *Parser) parseArguments() []ast.Expression {
	if _, ok := p.expect("("); !ok {
		return nil
	}
	args := []ast.Expression{}
	if p.match(")") {
		return args
	}
	for {
		arg := p.parseExpression()
		if p.failed {
			return nil
		}
		args = append(args, arg)
		if !p.match(",") {
			break
		}
	}
	if _, ok := p.expect(")"); !ok {
		return nil
	}
	return args
}
