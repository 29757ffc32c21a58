package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/funvibe/plc/internal/analyzer"
	"github.com/funvibe/plc/internal/ast"
	"github.com/funvibe/plc/internal/config"
	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/evaluator"
	"github.com/funvibe/plc/internal/parser"
	"github.com/funvibe/plc/internal/token"
	"github.com/peterh/liner"
)

const (
	historyFile = ".plc_history"
	promptMain  = "plc> "
	promptCont  = "...  "
)

// session keeps analyzer scope and runtime environment across inputs, so
// a name declared on one line is visible on the next.
type session struct {
	analyzer *analyzer.Analyzer
	eval     *evaluator.Evaluator
	env      *evaluator.Environment
}

func newSession(settings *config.Settings, out io.Writer) *session {
	e := evaluator.NewWithSettings(settings)
	e.Out = out
	return &session{
		analyzer: analyzer.New(),
		eval:     e,
		env:      evaluator.NewEnclosedEnvironment(e.Globals()),
	}
}

// incomplete reports whether err only says the input stopped early.
func incomplete(err error) bool {
	var d *diagnostics.DiagnosticError
	return errors.As(err, &d) && d.Code == diagnostics.ErrP002 && d.Token.Type == token.EOF
}

// parse reads code as one method when it starts with DEF, else as
// statements.
func parse(code string) (*ast.Method, []ast.Statement, error) {
	if strings.HasPrefix(strings.TrimSpace(code), token.DEF) {
		m, err := parser.ParseMethodString(code)
		return m, nil, err
	}
	stmts, err := parser.ParseStatementsString(code)
	return nil, stmts, err
}

// run analyzes and evaluates code. Values of expression statements other
// than NIL are returned for display.
func (s *session) run(ctx context.Context, code string) ([]string, error) {
	m, stmts, err := parse(code)
	if err != nil {
		return nil, err
	}
	s.eval.Context = ctx

	if m != nil {
		if err := s.analyzer.AnalyzeMethod(m); err != nil {
			return nil, err
		}
		return nil, s.check(s.eval.Eval(m, s.env))
	}

	var shown []string
	for _, stmt := range stmts {
		if err := s.analyzer.AnalyzeStatement(stmt); err != nil {
			return shown, err
		}
		es, ok := stmt.(*ast.ExpressionStatement)
		if !ok {
			if err := s.check(s.eval.Eval(stmt, s.env)); err != nil {
				return shown, err
			}
			continue
		}
		res := s.eval.Eval(es.Expression, s.env)
		if err := s.check(res); err != nil {
			return shown, err
		}
		if res != evaluator.NIL {
			shown = append(shown, res.Inspect())
		}
	}
	return shown, nil
}

// describe lists the session's global functions, then its variables.
func (s *session) describe() []string {
	scope := s.analyzer.Scope()
	var lines []string
	for _, key := range scope.FunctionKeys() {
		if f, ok := scope.LookupFunction(key.Name, key.Arity); ok {
			lines = append(lines, token.DEF+" "+f.String())
		}
	}
	for _, name := range scope.VariableNames() {
		if v, ok := scope.LookupVariable(name); ok {
			lines = append(lines, token.LET+" "+v.String())
		}
	}
	return lines
}

func (s *session) check(obj evaluator.Object) error {
	if e, ok := obj.(*evaluator.Error); ok {
		return e.Diagnostic()
	}
	return nil
}

// read collects lines until they parse, or fail for a reason other than
// running out of input. ok is false at end of input.
func read(ln *liner.State) (code string, ok bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		code = b.String()
		if strings.TrimSpace(code) == "" {
			return code, true
		}
		if _, _, err := parse(code); err != nil && incomplete(err) {
			continue
		}
		return code, true
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

func cmdRepl(env *cliEnv, args []string) int {
	if len(args) != 0 {
		fmt.Fprintln(env.stderr, "usage: plc repl")
		return exitUsage
	}
	settings, err := env.settingsFor("")
	if err != nil {
		env.report.err(err)
		return exitError
	}
	s := newSession(settings, env.stdout)
	s.eval.Logger = env.logger

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	hist := historyPath()
	if f, err := os.Open(hist); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if hist == "" {
			return
		}
		if f, err := os.Create(hist); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintf(env.stdout, "plc %s, :env lists definitions, :quit exits\n", config.Version)
	for {
		code, ok := read(ln)
		if !ok {
			fmt.Fprintln(env.stdout)
			return exitOK
		}
		trimmed := strings.TrimSpace(code)
		switch {
		case trimmed == "":
			continue
		case trimmed == ":quit":
			return exitOK
		case trimmed == ":env":
			for _, line := range s.describe() {
				fmt.Fprintln(env.stdout, line)
			}
			continue
		case strings.HasPrefix(trimmed, ":"):
			fmt.Fprintln(env.stdout, "unknown command, :env or :quit")
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		// Interrupts stop the current input only.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		shown, err := s.run(ctx, code)
		stop()
		for _, v := range shown {
			fmt.Fprintln(env.stdout, v)
		}
		if err != nil {
			env.report.err(err)
		}
	}
}
