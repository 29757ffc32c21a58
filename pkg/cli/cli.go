// Package cli implements the plc command: running, checking, formatting
// and generating code for source files, and an interactive session.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"

	"github.com/funvibe/plc/internal/config"
	"github.com/funvibe/plc/internal/pipeline"
	"github.com/funvibe/plc/internal/utils"
)

// Exit statuses other than the value returned by a program's main.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// command is one subcommand. run receives the arguments after the name.
type command struct {
	usage string
	help  string
	run   func(env *cliEnv, args []string) int
}

var commands = map[string]command{
	"run":     {"run FILE", "analyze and interpret FILE, exiting with the value of main", cmdRun},
	"check":   {"check FILE", "lex, parse and analyze FILE without running it", cmdCheck},
	"gen":     {"gen [-o OUT] FILE", "generate a Java class from FILE", cmdGen},
	"fmt":     {"fmt [-w] FILE", "print FILE in canonical form", cmdFmt},
	"tokens":  {"tokens FILE", "print the token stream of FILE", cmdTokens},
	"repl":    {"repl", "start an interactive session", cmdRepl},
	"version": {"version", "print the version", cmdVersion},
}

// cliEnv is shared by all subcommands of one invocation.
type cliEnv struct {
	ctx        context.Context
	stdout     io.Writer
	stderr     io.Writer
	logger     *slog.Logger
	configPath string
	report     *reporter
}

// Main runs the command line and returns the process exit status.
// Interrupts cancel the running program.
func Main(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return Run(ctx, args, os.Stdout, os.Stderr)
}

// Run executes one invocation with explicit streams.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("plc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a plc.yaml settings file")
	verbose := fs.Bool("v", false, "log pipeline stages to stderr")
	fs.Usage = func() { printUsage(stderr) }
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(stderr)
		return exitUsage
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "plc: unknown command %q\n", rest[0])
		printUsage(stderr)
		return exitUsage
	}

	env := &cliEnv{
		ctx:        ctx,
		stdout:     stdout,
		stderr:     stderr,
		logger:     newLogger(stderr, *verbose),
		configPath: *configPath,
		report:     newReporter(stderr),
	}
	return cmd.run(env, rest[1:])
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: plc [-config FILE] [-v] COMMAND [ARGS]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := commands[name]
		fmt.Fprintf(w, "  %-20s %s\n", c.usage, c.help)
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// settingsFor returns the -config file if given, else the plc.yaml next
// to path, else the defaults.
func (env *cliEnv) settingsFor(path string) (*config.Settings, error) {
	if env.configPath != "" {
		return config.LoadSettings(env.configPath)
	}
	return config.FindSettings(path)
}

// newContext reads path and prepares a pipeline context for it.
func (env *cliEnv) newContext(path string) (*pipeline.PipelineContext, error) {
	if !config.HasSourceExt(path) {
		env.logger.Warn("unexpected source extension", "file", path, "want", config.SourceFileExt)
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	settings, err := env.settingsFor(path)
	if err != nil {
		return nil, err
	}

	ctx := pipeline.NewPipelineContext(string(source))
	ctx.FilePath = path
	ctx.Settings = settings
	ctx.Out = env.stdout
	ctx.Context = env.ctx
	ctx.WithLogger(env.logger.With("program", utils.ExtractProgramName(path)))
	return ctx, nil
}

// singleFile checks that args name exactly one file.
func (env *cliEnv) singleFile(usage string, args []string) (string, bool) {
	if len(args) != 1 {
		fmt.Fprintf(env.stderr, "usage: plc %s\n", usage)
		return "", false
	}
	return args[0], true
}
