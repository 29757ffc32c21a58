package parser

import (
	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/pipeline"
	"github.com/funvibe/plc/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() {
		return ctx
	}
	if ctx.TokenStream == nil {
		// This case should ideally not be hit if lexer runs first, but as a safeguard:
		ctx.AddError(diagnostics.NewError(diagnostics.ErrP002, token.Token{}, "parser: token stream is nil"))
		return ctx
	}

	parser := New(ctx.TokenStream, ctx)
	src := parser.ParseSource()
	if src == nil {
		return ctx
	}
	ctx.AstRoot = src
	ctx.Log().Debug("parsed source", "fields", len(src.Fields), "methods", len(src.Methods))
	return ctx
}
