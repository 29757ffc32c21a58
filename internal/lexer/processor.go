package lexer

import (
	"errors"

	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/pipeline"
	"github.com/funvibe/plc/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() {
		return ctx
	}

	tokens, err := Tokenize(ctx.SourceCode)
	if err != nil {
		var de *diagnostics.DiagnosticError
		if !errors.As(err, &de) {
			de = diagnostics.NewError(diagnostics.ErrL001, token.Token{}, err.Error())
		}
		ctx.AddError(de)
		return ctx
	}

	ctx.Log().Debug("lexed source", "file", ctx.FilePath, "tokens", len(tokens))
	ctx.TokenStream = NewTokenStream(tokens)
	return ctx
}
