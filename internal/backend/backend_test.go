package backend

import (
	"bytes"
	"errors"
	"testing"

	"github.com/funvibe/plc/internal/analyzer"
	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/lexer"
	"github.com/funvibe/plc/internal/parser"
	"github.com/funvibe/plc/internal/pipeline"
)

func runPipeline(input string, configure func(*pipeline.PipelineContext)) (*pipeline.PipelineContext, string) {
	var out bytes.Buffer
	ctx := pipeline.NewPipelineContext(input)
	ctx.FilePath = "prog.plc"
	ctx.Out = &out
	if configure != nil {
		configure(ctx)
	}
	ctx = pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
		NewExecutionProcessor(NewTreeWalk()),
	).Run(ctx)
	return ctx, out.String()
}

func TestExecutionProcessor(t *testing.T) {
	ctx, out := runPipeline(`DEF main(): Integer DO
    print("Hello, World!");
    RETURN 3;
END`, nil)
	if ctx.Failed() {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}
	if out != "Hello, World!\n" {
		t.Errorf("output = %q", out)
	}
	if ctx.Result != "3" || ctx.ExitCode != 3 {
		t.Errorf("result = %q, exit code = %d", ctx.Result, ctx.ExitCode)
	}
}

func TestRejectedProgramNeverRuns(t *testing.T) {
	ctx, out := runPipeline(`DEF main(): Integer DO
    print("side effect");
    RETURN "not an integer";
END`, nil)
	if len(ctx.Errors) != 1 || ctx.Errors[0].Code != diagnostics.ErrA005 {
		t.Fatalf("expected a single A005, got %v", ctx.Errors)
	}
	if out != "" {
		t.Errorf("program must not run, printed %q", out)
	}
}

func TestRuntimeErrorBecomesDiagnostic(t *testing.T) {
	ctx, _ := runPipeline("DEF main(): Integer DO\n    RETURN 1 / 0;\nEND", nil)
	if len(ctx.Errors) != 1 {
		t.Fatalf("expected one error, got %v", ctx.Errors)
	}
	err := ctx.Errors[0]
	if err.Code != diagnostics.ErrR005 || err.File != "prog.plc" || err.Token.Line != 2 {
		t.Errorf("unexpected diagnostic: %v", err)
	}
}

func TestSettingsReachTheEvaluator(t *testing.T) {
	ctx, _ := runPipeline(`DEF down(n: Integer): Integer DO RETURN down(n + 1); END
DEF main(): Integer DO RETURN down(0); END`, func(ctx *pipeline.PipelineContext) {
		ctx.Settings.Interpreter.MaxDepth = 100
	})
	if len(ctx.Errors) != 1 || ctx.Errors[0].Code != diagnostics.ErrR001 {
		t.Fatalf("expected R001, got %v", ctx.Errors)
	}
}

func TestUnanalyzedTreeIsRefused(t *testing.T) {
	src, err := parser.ParseString("DEF main(): Integer DO RETURN 0; END")
	if err != nil {
		t.Fatal(err)
	}
	ctx := pipeline.NewPipelineContext("")
	ctx.AstRoot = src

	if _, err := NewTreeWalk().Run(ctx); !errors.Is(err, ErrNotAnalyzed) {
		t.Fatalf("expected ErrNotAnalyzed, got %v", err)
	}

	ctx = NewExecutionProcessor(NewTreeWalk()).Process(ctx)
	if len(ctx.Errors) != 1 || ctx.Errors[0].Code != diagnostics.ErrR001 {
		t.Errorf("expected R001, got %v", ctx.Errors)
	}
}

func TestRunProgram(t *testing.T) {
	src, err := parser.ParseString("LET x: Integer = 40;\nDEF main(): Integer DO RETURN x + 2; END")
	if err != nil {
		t.Fatal(err)
	}
	res, err := NewTreeWalk().RunProgram(src)
	if err != nil {
		t.Fatal(err)
	}
	if res.Inspect() != "42" {
		t.Errorf("result = %s", res.Inspect())
	}
}

func TestExitCode(t *testing.T) {
	ctx, _ := runPipeline("DEF main(): Integer DO RETURN -1; END", nil)
	if ctx.ExitCode != -1 {
		t.Errorf("exit code = %d", ctx.ExitCode)
	}
}
