package evaluator

import (
	"sort"

	"github.com/funvibe/plc/internal/typesystem"
)

// Variable is a mutable runtime cell.
type Variable struct {
	Name  string
	Value Object
}

// Environment is a runtime scope. Unlike the static scope it overwrites on
// redefinition: the program has already been checked, and a WHILE body
// re-runs its declarations in the same scope.
type Environment struct {
	variables map[string]*Variable
	functions map[typesystem.FunctionKey]Object
	outer     *Environment
}

func NewEnvironment() *Environment {
	return &Environment{
		variables: make(map[string]*Variable),
		functions: make(map[typesystem.FunctionKey]Object),
	}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

func (e *Environment) Outer() *Environment {
	return e.outer
}

// DefineVariable binds a fresh cell in this environment.
func (e *Environment) DefineVariable(name string, value Object) *Variable {
	v := &Variable{Name: name, Value: value}
	e.variables[name] = v
	return v
}

func (e *Environment) LookupVariable(name string) (*Variable, bool) {
	if v, ok := e.variables[name]; ok {
		return v, true
	}
	if e.outer != nil {
		return e.outer.LookupVariable(name)
	}
	return nil, false
}

// Get returns the current value of name.
func (e *Environment) Get(name string) (Object, bool) {
	v, ok := e.LookupVariable(name)
	if !ok {
		return nil, false
	}
	return v.Value, true
}

// DefineFunction binds fn, a *Function or *Builtin, under (name, arity).
func (e *Environment) DefineFunction(name string, arity int, fn Object) {
	e.functions[typesystem.FunctionKey{Name: name, Arity: arity}] = fn
}

func (e *Environment) LookupFunction(name string, arity int) (Object, bool) {
	if fn, ok := e.functions[typesystem.FunctionKey{Name: name, Arity: arity}]; ok {
		return fn, true
	}
	if e.outer != nil {
		return e.outer.LookupFunction(name, arity)
	}
	return nil, false
}

// VariableNames returns the names defined directly in this environment, sorted.
func (e *Environment) VariableNames() []string {
	names := make([]string, 0, len(e.variables))
	for name := range e.variables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
