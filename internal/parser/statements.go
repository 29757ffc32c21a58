package parser

import (
	"github.com/funvibe/plc/internal/ast"
	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/token"
)

// LET name: Type [= expr];
func (p *Parser) parseField() *ast.Field {
	letTok, _ := p.expect(token.LET)
	name, ok := p.expectIdentifier("field name")
	if !ok {
		return nil
	}
	field := &ast.Field{Token: letTok, Name: name.Lexeme}

	if _, ok := p.expect(":"); !ok {
		return nil
	}
	typeTok, ok := p.expectIdentifier("type name")
	if !ok {
		return nil
	}
	field.TypeName = typeTok.Lexeme

	if p.match("=") {
		field.Value = p.parseExpression()
	}
	if _, ok := p.expect(";"); !ok {
		return nil
	}
	return field
}

// DEF name(a: A, ...)[: R] DO stmts END
func (p *Parser) parseMethod() *ast.Method {
	defTok, _ := p.expect(token.DEF)
	name, ok := p.expectIdentifier("method name")
	if !ok {
		return nil
	}
	method := &ast.Method{Token: defTok, Name: name.Lexeme}

	if _, ok := p.expect("("); !ok {
		return nil
	}
	if !p.curIs(")") {
		for {
			param, ok := p.expectIdentifier("parameter name")
			if !ok {
				return nil
			}
			if _, ok := p.expect(":"); !ok {
				return nil
			}
			typeTok, ok := p.expectIdentifier("parameter type")
			if !ok {
				return nil
			}
			method.Parameters = append(method.Parameters, param.Lexeme)
			method.ParameterTypeNames = append(method.ParameterTypeNames, typeTok.Lexeme)
			if !p.match(",") {
				break
			}
		}
	}
	if _, ok := p.expect(")"); !ok {
		return nil
	}

	if p.match(":") {
		typeTok, ok := p.expectIdentifier("return type")
		if !ok {
			return nil
		}
		method.ReturnTypeName = typeTok.Lexeme
	}

	if _, ok := p.expect(token.DO); !ok {
		return nil
	}
	method.Statements = p.parseBlock(token.END)
	if _, ok := p.expect(token.END); !ok {
		return nil
	}
	return method
}

// parseBlock parses statements until one of the terminator keywords. The
// terminator itself is left for the caller.
func (p *Parser) parseBlock(terminators ...string) []ast.Statement {
	stmts := []ast.Statement{}
	for !p.failed {
		for _, t := range terminators {
			if p.curIs(t) {
				return stmts
			}
		}
		if p.curToken.Type == token.EOF {
			p.addError(diagnostics.ErrP002, p.curToken, "missing '%s'", terminators[len(terminators)-1])
			return nil
		}
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return nil
}

func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.curIs(token.LET):
		return p.parseDeclarationStatement()
	case p.curIs(token.IF):
		return p.parseIfStatement()
	case p.curIs(token.FOR):
		return p.parseForStatement()
	case p.curIs(token.WHILE):
		return p.parseWhileStatement()
	case p.curIs(token.RETURN):
		return p.parseReturnStatement()
	default:
		return p.parseExpressionOrAssignment()
	}
}

// LET name[: Type][ = expr];
func (p *Parser) parseDeclarationStatement() ast.Statement {
	letTok, _ := p.expect(token.LET)
	name, ok := p.expectIdentifier("variable name")
	if !ok {
		return nil
	}
	stmt := &ast.DeclarationStatement{Token: letTok, Name: name.Lexeme}

	if p.match(":") {
		typeTok, ok := p.expectIdentifier("type name")
		if !ok {
			return nil
		}
		stmt.TypeName = typeTok.Lexeme
	}
	if p.match("=") {
		stmt.Value = p.parseExpression()
	}
	if _, ok := p.expect(";"); !ok {
		return nil
	}
	return stmt
}

// IF cond DO stmts [ELSE stmts] END
func (p *Parser) parseIfStatement() ast.Statement {
	ifTok, _ := p.expect(token.IF)
	stmt := &ast.IfStatement{Token: ifTok}
	stmt.Condition = p.parseExpression()
	if _, ok := p.expect(token.DO); !ok {
		return nil
	}
	stmt.Then = p.parseBlock(token.ELSE, token.END)
	if p.match(token.ELSE) {
		stmt.Else = p.parseBlock(token.END)
	}
	if _, ok := p.expect(token.END); !ok {
		return nil
	}
	return stmt
}

// FOR name IN expr DO stmts END
func (p *Parser) parseForStatement() ast.Statement {
	forTok, _ := p.expect(token.FOR)
	name, ok := p.expectIdentifier("loop variable")
	if !ok {
		return nil
	}
	stmt := &ast.ForStatement{Token: forTok, Name: name.Lexeme}
	if _, ok := p.expect(token.IN); !ok {
		return nil
	}
	stmt.Value = p.parseExpression()
	if _, ok := p.expect(token.DO); !ok {
		return nil
	}
	stmt.Statements = p.parseBlock(token.END)
	if _, ok := p.expect(token.END); !ok {
		return nil
	}
	return stmt
}

// WHILE cond DO stmts END
func (p *Parser) parseWhileStatement() ast.Statement {
	whileTok, _ := p.expect(token.WHILE)
	stmt := &ast.WhileStatement{Token: whileTok}
	stmt.Condition = p.parseExpression()
	if _, ok := p.expect(token.DO); !ok {
		return nil
	}
	stmt.Statements = p.parseBlock(token.END)
	if _, ok := p.expect(token.END); !ok {
		return nil
	}
	return stmt
}

// RETURN expr;
func (p *Parser) parseReturnStatement() ast.Statement {
	retTok, _ := p.expect(token.RETURN)
	stmt := &ast.ReturnStatement{Token: retTok}
	stmt.Value = p.parseExpression()
	if _, ok := p.expect(";"); !ok {
		return nil
	}
	return stmt
}

// expr; | expr = expr;
func (p *Parser) parseExpressionOrAssignment() ast.Statement {
	first := p.curToken
	target := p.parseExpression()
	if p.failed {
		return nil
	}

	var stmt ast.Statement
	if p.curIs("=") {
		eq := p.nextToken()
		stmt = &ast.AssignmentStatement{Token: eq, Receiver: target, Value: p.parseExpression()}
	} else {
		stmt = &ast.ExpressionStatement{Token: first, Expression: target}
	}
	if _, ok := p.expect(";"); !ok {
		return nil
	}
	return stmt
}
