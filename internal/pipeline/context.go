package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/funvibe/plc/internal/ast"
	"github.com/funvibe/plc/internal/config"
	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/symbols"
	"github.com/funvibe/plc/internal/token"
	"github.com/google/uuid"
)

// TokenStream is a buffered token source consumed by the parser.
type TokenStream interface {
	// Next returns the next token and advances. At the end it keeps
	// returning the EOF token.
	Next() token.Token
	// Peek returns the token n positions ahead without consuming it.
	Peek(n int) token.Token
	// Tokens returns every token including the trailing EOF.
	Tokens() []token.Token
}

// PipelineContext carries state between processors.
type PipelineContext struct {
	SourceCode string
	FilePath   string
	RunID      string

	Settings *config.Settings
	Logger   *slog.Logger
	Out      io.Writer
	Context  context.Context

	TokenStream TokenStream
	AstRoot     *ast.Source
	Info        *symbols.Info
	Errors      []*diagnostics.DiagnosticError

	// Result is the printed value returned by main; ExitCode is that value
	// when it fits an int.
	Result    string
	ExitCode  int
	Generated string
}

// NewPipelineContext builds a context with default settings, a logger that
// discards everything below Warn, and stdout as the program output.
func NewPipelineContext(sourceCode string) *PipelineContext {
	runID := uuid.NewString()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return &PipelineContext{
		SourceCode: sourceCode,
		RunID:      runID,
		Settings:   config.Default(),
		Logger:     logger.With("run_id", runID),
		Out:        os.Stdout,
		Context:    context.Background(),
	}
}

// WithLogger replaces the logger, tagging it with the run id.
func (ctx *PipelineContext) WithLogger(logger *slog.Logger) *PipelineContext {
	ctx.Logger = logger.With("run_id", ctx.RunID)
	return ctx
}

// Log returns the context logger, or a discarding one when none is set.
func (ctx *PipelineContext) Log() *slog.Logger {
	if ctx.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return ctx.Logger
}

// AddError records a diagnostic, filling in the file path when missing.
func (ctx *PipelineContext) AddError(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = ctx.FilePath
	}
	ctx.Errors = append(ctx.Errors, err)
}

// Failed reports whether any stage has recorded an error.
func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0
}
