package backend

import (
	"errors"
	"math"

	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/evaluator"
	"github.com/funvibe/plc/internal/pipeline"
	"github.com/funvibe/plc/internal/token"
)

// ExecutionProcessor implements pipeline.Processor to run a Backend
type ExecutionProcessor struct {
	Backend Backend
}

// NewExecutionProcessor creates a new pipeline step for the given backend
func NewExecutionProcessor(b Backend) *ExecutionProcessor {
	return &ExecutionProcessor{Backend: b}
}

func (p *ExecutionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// If previous steps failed, don't run execution
	if ctx.AstRoot == nil || ctx.Failed() {
		return ctx
	}

	result, err := p.Backend.Run(ctx)
	if err != nil {
		var de *diagnostics.DiagnosticError
		if !errors.As(err, &de) {
			de = diagnostics.NewError(diagnostics.ErrR001, token.Token{}, err.Error())
		}
		ctx.AddError(de)
		return ctx
	}

	ctx.Result = result.Inspect()
	ctx.ExitCode = exitCode(result)
	ctx.Log().Debug("execution finished", "backend", p.Backend.Name(), "result", ctx.Result)
	return ctx
}

// exitCode maps the value of main to a process status: an Integer that
// fits in an int32 is used as is, anything else is 0.
func exitCode(result evaluator.Object) int {
	i, ok := result.(*evaluator.Integer)
	if !ok || !i.Value.IsInt64() {
		return 0
	}
	v := i.Value.Int64()
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0
	}
	return int(v)
}
