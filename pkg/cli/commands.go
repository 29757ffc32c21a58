package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/funvibe/plc/internal/analyzer"
	"github.com/funvibe/plc/internal/backend"
	"github.com/funvibe/plc/internal/config"
	"github.com/funvibe/plc/internal/generator"
	"github.com/funvibe/plc/internal/lexer"
	"github.com/funvibe/plc/internal/parser"
	"github.com/funvibe/plc/internal/pipeline"
	"github.com/funvibe/plc/internal/prettyprinter"
	"github.com/funvibe/plc/internal/utils"
)

// front returns the stages every file command shares.
func front() []pipeline.Processor {
	return []pipeline.Processor{
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
	}
}

// runStages prepares path and runs stages over it. It returns nil after
// reporting when anything went wrong.
func (env *cliEnv) runStages(path string, stages ...pipeline.Processor) *pipeline.PipelineContext {
	ctx, err := env.newContext(path)
	if err != nil {
		env.report.err(err)
		return nil
	}
	ctx = pipeline.New(stages...).Run(ctx)
	if env.report.all(ctx.Errors) {
		return nil
	}
	return ctx
}

func cmdRun(env *cliEnv, args []string) int {
	path, ok := env.singleFile("run FILE", args)
	if !ok {
		return exitUsage
	}
	stages := append(front(),
		&analyzer.SemanticAnalyzerProcessor{},
		backend.NewExecutionProcessor(backend.NewTreeWalk()))
	ctx := env.runStages(path, stages...)
	if ctx == nil {
		return exitError
	}
	return ctx.ExitCode
}

func cmdCheck(env *cliEnv, args []string) int {
	path, ok := env.singleFile("check FILE", args)
	if !ok {
		return exitUsage
	}
	stages := append(front(), &analyzer.SemanticAnalyzerProcessor{})
	if env.runStages(path, stages...) == nil {
		return exitError
	}
	env.logger.Info("check passed", "file", path)
	return exitOK
}

func cmdGen(env *cliEnv, args []string) int {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	out := fs.String("o", "", "output file, - for stdout (default: CLASS.java next to FILE)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	path, ok := env.singleFile("gen [-o OUT] FILE", fs.Args())
	if !ok {
		return exitUsage
	}

	stages := append(front(), &analyzer.SemanticAnalyzerProcessor{}, &generator.GeneratorProcessor{})
	ctx := env.runStages(path, stages...)
	if ctx == nil {
		return exitError
	}

	target := *out
	if target == "" {
		target = utils.GeneratedPath(path, ctx.Settings.Generator.ClassName)
	}
	if target == "-" {
		fmt.Fprint(env.stdout, ctx.Generated)
		return exitOK
	}
	if err := os.WriteFile(target, []byte(ctx.Generated), 0o644); err != nil {
		env.report.err(err)
		return exitError
	}
	env.logger.Debug("wrote generated code", "file", target)
	return exitOK
}

func cmdFmt(env *cliEnv, args []string) int {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	write := fs.Bool("w", false, "rewrite FILE in place")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	path, ok := env.singleFile("fmt [-w] FILE", fs.Args())
	if !ok {
		return exitUsage
	}

	ctx := env.runStages(path, front()...)
	if ctx == nil {
		return exitError
	}
	formatted := prettyprinter.Print(ctx.AstRoot)
	if !*write {
		fmt.Fprint(env.stdout, formatted)
		return exitOK
	}
	if formatted == ctx.SourceCode {
		return exitOK
	}
	if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
		env.report.err(err)
		return exitError
	}
	return exitOK
}

func cmdTokens(env *cliEnv, args []string) int {
	path, ok := env.singleFile("tokens FILE", args)
	if !ok {
		return exitUsage
	}
	ctx := env.runStages(path, &lexer.LexerProcessor{})
	if ctx == nil {
		return exitError
	}
	for _, tok := range ctx.TokenStream.Tokens() {
		fmt.Fprintln(env.stdout, tok)
	}
	return exitOK
}

func cmdVersion(env *cliEnv, args []string) int {
	fmt.Fprintln(env.stdout, "plc "+config.Version)
	return exitOK
}
