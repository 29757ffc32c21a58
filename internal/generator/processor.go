package generator

import (
	"errors"

	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/pipeline"
	"github.com/funvibe/plc/internal/token"
)

type GeneratorProcessor struct{}

func (gp *GeneratorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() || ctx.AstRoot == nil {
		return ctx
	}

	code, err := New(ctx.Info, ctx.Settings).Generate(ctx.AstRoot)
	if err != nil {
		var de *diagnostics.DiagnosticError
		if !errors.As(err, &de) {
			de = diagnostics.NewError(diagnostics.ErrG001, token.Token{}, err.Error())
		}
		ctx.AddError(de)
		return ctx
	}

	ctx.Generated = code
	ctx.Log().Debug("generation finished", "bytes", len(code))
	return ctx
}
