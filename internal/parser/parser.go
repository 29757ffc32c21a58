package parser

import (
	"github.com/funvibe/plc/internal/ast"
	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/pipeline"
	"github.com/funvibe/plc/internal/token"
)

// Parser is a recursive-descent parser. It stops at the first error: once
// one is recorded every parse function returns nil.
type Parser struct {
	stream pipeline.TokenStream
	ctx    *pipeline.PipelineContext

	curToken token.Token
	failed   bool
}

func New(stream pipeline.TokenStream, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{stream: stream, ctx: ctx}
	p.nextToken()
	return p
}

func (p *Parser) nextToken() token.Token {
	prev := p.curToken
	p.curToken = p.stream.Next()
	return prev
}

func (p *Parser) addError(code diagnostics.ErrorCode, tok token.Token, format string, args ...interface{}) {
	if p.failed {
		return
	}
	p.failed = true
	p.ctx.AddError(diagnostics.NewErrorf(code, tok, format, args...))
}

// curIs reports whether the current token is the operator or keyword lexeme.
func (p *Parser) curIs(lexeme string) bool {
	switch p.curToken.Type {
	case token.OPERATOR:
		return p.curToken.Lexeme == lexeme
	case token.IDENTIFIER:
		return token.IsKeyword(lexeme) && p.curToken.Lexeme == lexeme
	}
	return false
}

func (p *Parser) curIsIdentifier() bool {
	return p.curToken.Type == token.IDENTIFIER && !token.IsKeyword(p.curToken.Lexeme)
}

// match consumes the current token if it is lexeme.
func (p *Parser) match(lexeme string) bool {
	if p.curIs(lexeme) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes lexeme or records an error.
func (p *Parser) expect(lexeme string) (token.Token, bool) {
	if p.failed {
		return p.curToken, false
	}
	if p.curIs(lexeme) {
		return p.nextToken(), true
	}
	if p.curToken.Type == token.EOF {
		p.addError(diagnostics.ErrP002, p.curToken, "missing '%s'", lexeme)
	} else {
		p.addError(diagnostics.ErrP001, p.curToken, "expected '%s', found '%s'", lexeme, p.curToken.Lexeme)
	}
	return p.curToken, false
}

// expectIdentifier consumes a non-keyword identifier.
func (p *Parser) expectIdentifier(what string) (token.Token, bool) {
	if p.failed {
		return p.curToken, false
	}
	if p.curIsIdentifier() {
		return p.nextToken(), true
	}
	switch {
	case p.curToken.Type == token.EOF:
		p.addError(diagnostics.ErrP002, p.curToken, "missing %s", what)
	case p.curToken.Type == token.IDENTIFIER:
		p.addError(diagnostics.ErrP001, p.curToken, "expected %s, found keyword %s", what, p.curToken.Lexeme)
	default:
		p.addError(diagnostics.ErrP001, p.curToken, "expected %s, found '%s'", what, p.curToken.Lexeme)
	}
	return p.curToken, false
}

// ParseSource parses a whole file: fields first, then methods.
func (p *Parser) ParseSource() *ast.Source {
	src := &ast.Source{Token: p.curToken, File: p.ctx.FilePath}

	for p.curIs(token.LET) && !p.failed {
		if f := p.parseField(); f != nil {
			src.Fields = append(src.Fields, f)
		}
	}
	for p.curIs(token.DEF) && !p.failed {
		if m := p.parseMethod(); m != nil {
			src.Methods = append(src.Methods, m)
		}
	}
	if !p.failed && p.curToken.Type != token.EOF {
		if p.curIs(token.LET) {
			p.addError(diagnostics.ErrP001, p.curToken, "fields must be declared before methods")
		} else {
			p.addError(diagnostics.ErrP001, p.curToken, "expected LET or DEF, found '%s'", p.curToken.Lexeme)
		}
	}
	if p.failed {
		return nil
	}
	return src
}

// ParseStatements parses statements up to the end of input. Used by the REPL.
func (p *Parser) ParseStatements() []ast.Statement {
	var stmts []ast.Statement
	for p.curToken.Type != token.EOF && !p.failed {
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if p.failed {
		return nil
	}
	return stmts
}

// ParseMethod parses a single method definition followed by end of input.
func (p *Parser) ParseMethod() *ast.Method {
	m := p.parseMethod()
	if !p.failed && p.curToken.Type != token.EOF {
		p.addError(diagnostics.ErrP001, p.curToken, "unexpected '%s' after END", p.curToken.Lexeme)
	}
	if p.failed {
		return nil
	}
	return m
}

// Failed reports whether an error was recorded.
func (p *Parser) Failed() bool {
	return p.failed
}
