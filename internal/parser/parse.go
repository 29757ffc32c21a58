package parser

import (
	"github.com/funvibe/plc/internal/ast"
	"github.com/funvibe/plc/internal/lexer"
	"github.com/funvibe/plc/internal/pipeline"
)

// newStringParser lexes input into a fresh context. It returns nil when
// lexing failed; the error is in ctx.Errors.
func newStringParser(input string) (*Parser, *pipeline.PipelineContext) {
	ctx := pipeline.NewPipelineContext(input)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	if ctx.Failed() {
		return nil, ctx
	}
	return New(ctx.TokenStream, ctx), ctx
}

// ParseString parses a complete source file held in memory.
func ParseString(input string) (*ast.Source, error) {
	p, ctx := newStringParser(input)
	if p == nil {
		return nil, ctx.Errors[0]
	}
	src := p.ParseSource()
	if ctx.Failed() {
		return nil, ctx.Errors[0]
	}
	return src, nil
}

// ParseStatementsString parses a statement sequence, as typed into the REPL.
func ParseStatementsString(input string) ([]ast.Statement, error) {
	p, ctx := newStringParser(input)
	if p == nil {
		return nil, ctx.Errors[0]
	}
	stmts := p.ParseStatements()
	if ctx.Failed() {
		return nil, ctx.Errors[0]
	}
	return stmts, nil
}

// ParseMethodString parses a single DEF ... END block.
func ParseMethodString(input string) (*ast.Method, error) {
	p, ctx := newStringParser(input)
	if p == nil {
		return nil, ctx.Errors[0]
	}
	m := p.ParseMethod()
	if ctx.Failed() {
		return nil, ctx.Errors[0]
	}
	return m, nil
}
