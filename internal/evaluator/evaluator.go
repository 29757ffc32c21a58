package evaluator

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/funvibe/plc/internal/ast"
	"github.com/funvibe/plc/internal/config"
	"github.com/funvibe/plc/internal/diagnostics"
)

type Evaluator struct {
	// Context for cancellation
	Context context.Context

	// Out receives everything print writes.
	Out    io.Writer
	Logger *slog.Logger

	// MaxDepth bounds nested Eval calls.
	MaxDepth int
	// DecimalScale, when set, fixes the scale of Decimal division results.
	DecimalScale *int32

	globals   *Environment
	evalDepth int
}

func New() *Evaluator {
	return NewWithSettings(config.Default())
}

// NewWithSettings applies the interpreter section of s.
func NewWithSettings(s *config.Settings) *Evaluator {
	globals := NewEnvironment()
	RegisterBuiltins(globals)
	return &Evaluator{
		Out:          os.Stdout,
		Logger:       slog.New(slog.DiscardHandler),
		MaxDepth:     s.Interpreter.MaxDepth,
		DecimalScale: s.Interpreter.DecimalScale,
		globals:      globals,
	}
}

// Globals is the root environment holding builtins and host values.
// Every run gets its own child of it.
func (e *Evaluator) Globals() *Environment {
	return e.globals
}

// Define seeds a host-provided global variable.
func (e *Evaluator) Define(name string, value Object) {
	e.globals.DefineVariable(name, value)
}

// Run evaluates src in a fresh top-level environment: fields, then
// methods, then main with no arguments. The value main returns is the
// program's result.
func (e *Evaluator) Run(src *ast.Source) (Object, error) {
	e.evalDepth = 0
	env := NewEnclosedEnvironment(e.globals)

	result := e.Eval(src, env)
	if err, ok := result.(*Error); ok {
		e.Logger.Debug("run failed", "code", err.Code, "line", err.Line)
		return nil, err.Diagnostic()
	}
	e.Logger.Debug("run finished", "result", result.Inspect())
	return result, nil
}

// Eval evaluates any node in env. Statements yield NIL, a *ReturnValue or
// an *Error; expressions yield their value or an *Error.
func (e *Evaluator) Eval(node ast.Node, env *Environment) Object {
	// Check recursion depth to prevent Go stack overflow
	e.evalDepth++
	defer func() { e.evalDepth-- }()
	if e.MaxDepth > 0 && e.evalDepth > e.MaxDepth {
		return newError(diagnostics.ErrR001, "maximum recursion depth exceeded")
	}

	// Check for cancellation
	if e.Context != nil {
		select {
		case <-e.Context.Done():
			return newError(diagnostics.ErrR001, "execution cancelled: %v", e.Context.Err())
		default:
		}
	}

	obj := e.evalCore(node, env)
	if err, ok := obj.(*Error); ok && err.Line == 0 && node != nil {
		tok := node.GetToken()
		err.Line = tok.Line
		err.Column = tok.Column
	}
	return obj
}

func (e *Evaluator) evalCore(node ast.Node, env *Environment) Object {
	switch node := node.(type) {
	case *ast.Source:
		return e.evalSource(node, env)
	case *ast.Field:
		return e.evalField(node, env)
	case *ast.Method:
		return e.evalMethod(node, env)

	// Statements
	case *ast.ExpressionStatement:
		if val := e.Eval(node.Expression, env); isError(val) {
			return val
		}
		return NIL
	case *ast.DeclarationStatement:
		return e.evalDeclaration(node, env)
	case *ast.AssignmentStatement:
		return e.evalAssignment(node, env)
	case *ast.IfStatement:
		return e.evalIf(node, env)
	case *ast.ForStatement:
		return e.evalFor(node, env)
	case *ast.WhileStatement:
		return e.evalWhile(node, env)
	case *ast.ReturnStatement:
		val := e.Eval(node.Value, env)
		if isError(val) {
			return val
		}
		return &ReturnValue{Value: val}

	// Expressions
	case *ast.NilLiteral:
		return NIL
	case *ast.BooleanLiteral:
		return nativeBoolToBooleanObject(node.Value)
	case *ast.IntegerLiteral:
		return &Integer{Value: node.Value}
	case *ast.DecimalLiteral:
		return &Decimal{Value: node.Value}
	case *ast.CharacterLiteral:
		return &Character{Value: node.Value}
	case *ast.StringLiteral:
		return &String{Value: node.Value}
	case *ast.GroupExpression:
		return e.Eval(node.Expression, env)
	case *ast.BinaryExpression:
		return e.evalBinary(node, env)
	case *ast.AccessExpression:
		return e.evalAccess(node, env)
	case *ast.CallExpression:
		return e.evalCall(node, env)
	}
	return newError(diagnostics.ErrR001, "cannot evaluate %T", node)
}
