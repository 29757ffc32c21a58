// Package backend runs analyzed programs on behalf of the pipeline.
package backend

import (
	"github.com/funvibe/plc/internal/evaluator"
	"github.com/funvibe/plc/internal/pipeline"
)

// Backend is the interface for execution backends
type Backend interface {
	// Run executes the program from pipeline context and returns the value
	// returned by main
	Run(ctx *pipeline.PipelineContext) (evaluator.Object, error)

	// Name returns the backend name for display
	Name() string
}
