package analyzer

import (
	"errors"

	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/pipeline"
	"github.com/funvibe/plc/internal/token"
)

type SemanticAnalyzerProcessor struct{}

func (sap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() || ctx.AstRoot == nil {
		return ctx
	}

	info, err := New().Analyze(ctx.AstRoot)
	if err != nil {
		var de *diagnostics.DiagnosticError
		if !errors.As(err, &de) {
			de = diagnostics.NewError(diagnostics.ErrR001, token.Token{}, err.Error())
		}
		ctx.AddError(de)
		return ctx
	}

	ctx.Info = info
	ctx.Log().Debug("analysis finished",
		"expressions", len(info.Types),
		"functions", len(info.Functions))
	return ctx
}
