package analyzer

import (
	"errors"
	"math"
	"math/big"
	"strings"

	"github.com/funvibe/plc/internal/ast"
	"github.com/funvibe/plc/internal/config"
	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/symbols"
	"github.com/funvibe/plc/internal/token"
	"github.com/funvibe/plc/internal/typesystem"
)

var (
	minInteger = big.NewInt(math.MinInt32)
	maxInteger = big.NewInt(math.MaxInt32)
)

// Analyzer performs semantic analysis on the AST.
// Analysis is fail-fast: the first violation aborts and is returned.
type Analyzer struct {
	registry *typesystem.Registry
	global   *symbols.Scope
	info     *symbols.Info
}

// frame is the lexical context of a visit: the innermost scope and the
// enclosing method, nil outside of any method body.
type frame struct {
	scope  *symbols.Scope
	method *typesystem.Function
}

func (f frame) enter(scopeType symbols.ScopeType) frame {
	return frame{scope: symbols.NewEnclosedScope(f.scope, scopeType), method: f.method}
}

// New creates an Analyzer over the built-in types, with the builtins
// already defined in its global scope.
func New() *Analyzer {
	return NewWithRegistry(typesystem.NewRegistry())
}

// NewWithRegistry creates an Analyzer resolving type names through reg,
// so hosts can provide extra object types.
func NewWithRegistry(reg *typesystem.Registry) *Analyzer {
	a := &Analyzer{
		registry: reg,
		global:   symbols.NewGlobalScope(),
		info:     symbols.NewInfo(),
	}
	RegisterBuiltins(a.global)
	return a
}

// Scope returns the global scope.
func (a *Analyzer) Scope() *symbols.Scope {
	return a.global
}

// Info returns everything learned so far.
func (a *Analyzer) Info() *symbols.Info {
	return a.info
}

// DefineGlobal binds a host-provided variable in the global scope.
func (a *Analyzer) DefineGlobal(name string, t *typesystem.Type) (*typesystem.Variable, error) {
	return a.global.DefineVariable(name, hostName(name), t)
}

// Analyze checks a whole source file. Fields are visited first, then all
// method signatures are registered, then method bodies are checked, so
// methods may call each other regardless of textual order.
func (a *Analyzer) Analyze(src *ast.Source) (*symbols.Info, error) {
	root := frame{scope: a.global}

	for _, f := range src.Fields {
		if err := a.analyzeField(f, root); err != nil {
			return nil, err
		}
	}
	for _, m := range src.Methods {
		if err := a.declareMethod(m, root); err != nil {
			return nil, err
		}
	}
	for _, m := range src.Methods {
		if err := a.analyzeMethodBody(m, root); err != nil {
			return nil, err
		}
	}

	if err := a.checkEntryPoint(src); err != nil {
		return nil, err
	}
	return a.info, nil
}

// AnalyzeMethod declares and checks a single method against the global
// scope. Used by the REPL.
func (a *Analyzer) AnalyzeMethod(m *ast.Method) error {
	root := frame{scope: a.global}
	if err := a.declareMethod(m, root); err != nil {
		return err
	}
	return a.analyzeMethodBody(m, root)
}

// AnalyzeStatement checks a top-level statement in the global scope, with
// no enclosing method. Used by the REPL.
func (a *Analyzer) AnalyzeStatement(stmt ast.Statement) error {
	return a.analyzeStatement(stmt, frame{scope: a.global})
}

func (a *Analyzer) checkEntryPoint(src *ast.Source) error {
	main, ok := a.global.LookupFunction(config.MainFuncName, config.MainFuncArity)
	if !ok {
		return diagnostics.NewErrorf(diagnostics.ErrA010, src.Token,
			"no %s/%d method is defined", config.MainFuncName, config.MainFuncArity)
	}
	if main.ReturnType != typesystem.Integer {
		tok := src.Token
		for _, m := range src.Methods {
			if m.Name == config.MainFuncName && len(m.Parameters) == config.MainFuncArity {
				tok = m.Token
			}
		}
		return diagnostics.NewErrorf(diagnostics.ErrA011, tok,
			"%s must return %s, not %s", config.MainFuncName, typesystem.Integer, main.ReturnType)
	}
	return nil
}

func (a *Analyzer) resolveType(name string, tok token.Token) (*typesystem.Type, error) {
	t, err := a.registry.GetType(name)
	if err != nil {
		return nil, withToken(err, tok)
	}
	return t, nil
}

// requireAssignable positions a typesystem assignability failure at tok.
func requireAssignable(target, source *typesystem.Type, tok token.Token) error {
	if err := typesystem.RequireAssignable(target, source); err != nil {
		return withToken(err, tok)
	}
	return nil
}

// withToken returns a copy of a positionless diagnostic placed at tok.
func withToken(err error, tok token.Token) error {
	var de *diagnostics.DiagnosticError
	if errors.As(err, &de) {
		return diagnostics.NewError(de.Code, tok, de.Message)
	}
	return err
}

// duplicate converts a scope redefinition into a positioned diagnostic.
func duplicate(err error, tok token.Token) error {
	var dup *symbols.DuplicateDeclarationError
	if errors.As(err, &dup) {
		return diagnostics.NewError(diagnostics.ErrA017, tok, dup.Error())
	}
	return err
}

// hostName maps a source identifier to a valid host identifier.
func hostName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
