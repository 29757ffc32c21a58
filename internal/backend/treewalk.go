package backend

import (
	"errors"

	"github.com/funvibe/plc/internal/ast"
	"github.com/funvibe/plc/internal/evaluator"
	"github.com/funvibe/plc/internal/pipeline"
)

// ErrNotAnalyzed is returned when asked to run a tree the analyzer has not
// accepted.
var ErrNotAnalyzed = errors.New("program was not analyzed")

// TreeWalkBackend runs programs on the tree-walking evaluator.
type TreeWalkBackend struct{}

// NewTreeWalk creates a new tree-walk backend
func NewTreeWalk() *TreeWalkBackend {
	return &TreeWalkBackend{}
}

// Run executes ctx.AstRoot with the interpreter settings, output writer,
// logger and cancellation context carried by ctx.
func (b *TreeWalkBackend) Run(ctx *pipeline.PipelineContext) (evaluator.Object, error) {
	if ctx.AstRoot == nil || ctx.Info == nil {
		return nil, ErrNotAnalyzed
	}
	if len(ctx.Errors) > 0 {
		return nil, ctx.Errors[0]
	}

	eval := evaluator.NewWithSettings(ctx.Settings)
	eval.Out = ctx.Out
	eval.Context = ctx.Context
	eval.Logger = ctx.Log()

	return eval.Run(ctx.AstRoot)
}

// RunProgram runs src with default settings, skipping the analysis check.
// Meant for tests of evaluation semantics.
func (b *TreeWalkBackend) RunProgram(src *ast.Source) (evaluator.Object, error) {
	return evaluator.New().Run(src)
}

// Name returns the backend name
func (b *TreeWalkBackend) Name() string {
	return "tree-walk"
}
