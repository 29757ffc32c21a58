package symbols

import (
	"github.com/funvibe/plc/internal/ast"
	"github.com/funvibe/plc/internal/typesystem"
)

// Info holds what the analyzer learned about a tree, keyed by node identity.
//
//   - Types: every analyzed expression
//   - Variables: AccessExpression, Field, DeclarationStatement, ForStatement
//   - Functions: CallExpression, Method
//   - Parameters: the parameter bindings of each Method, in order
type Info struct {
	Types      map[ast.Expression]*typesystem.Type
	Variables  map[ast.Node]*typesystem.Variable
	Functions  map[ast.Node]*typesystem.Function
	Parameters map[*ast.Method][]*typesystem.Variable
}

func NewInfo() *Info {
	return &Info{
		Types:      make(map[ast.Expression]*typesystem.Type),
		Variables:  make(map[ast.Node]*typesystem.Variable),
		Functions:  make(map[ast.Node]*typesystem.Function),
		Parameters: make(map[*ast.Method][]*typesystem.Variable),
	}
}

// TypeOf returns the resolved type of e, or nil if e was never analyzed.
func (i *Info) TypeOf(e ast.Expression) *typesystem.Type {
	return i.Types[e]
}

func (i *Info) VariableOf(n ast.Node) *typesystem.Variable {
	return i.Variables[n]
}

func (i *Info) FunctionOf(n ast.Node) *typesystem.Function {
	return i.Functions[n]
}
