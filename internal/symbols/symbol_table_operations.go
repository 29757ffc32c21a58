package symbols

import (
	"sort"

	"github.com/funvibe/plc/internal/typesystem"
)

func NewGlobalScope() *Scope {
	return &Scope{
		variables: make(map[string]*typesystem.Variable),
		functions: make(map[typesystem.FunctionKey]*typesystem.Function),
		scopeType: ScopeGlobal,
	}
}

func NewEnclosedScope(outer *Scope, scopeType ScopeType) *Scope {
	s := NewGlobalScope()
	s.outer = outer
	s.scopeType = scopeType
	return s
}

func (s *Scope) Type() ScopeType {
	return s.scopeType
}

// DefineVariable binds name in this scope. Shadowing an outer binding is
// allowed, redefining one in the same scope is not.
func (s *Scope) DefineVariable(name, hostName string, t *typesystem.Type) (*typesystem.Variable, error) {
	if _, ok := s.variables[name]; ok {
		return nil, &DuplicateDeclarationError{Name: name}
	}
	v := &typesystem.Variable{Name: name, HostName: hostName, Type: t}
	s.variables[name] = v
	return v, nil
}

func (s *Scope) LookupVariable(name string) (*typesystem.Variable, bool) {
	if v, ok := s.variables[name]; ok {
		return v, true
	}
	if s.outer != nil {
		return s.outer.LookupVariable(name)
	}
	return nil, false
}

func (s *Scope) IsDefinedLocally(name string) bool {
	_, ok := s.variables[name]
	return ok
}

// DefineFunction binds (name, len(parameterTypes)) in this scope.
func (s *Scope) DefineFunction(name, hostName string, parameterTypes []*typesystem.Type, returnType *typesystem.Type) (*typesystem.Function, error) {
	f := &typesystem.Function{Name: name, HostName: hostName, ParameterTypes: parameterTypes, ReturnType: returnType}
	if err := s.AddFunction(f); err != nil {
		return nil, err
	}
	return f, nil
}

// AddFunction binds an already built function.
func (s *Scope) AddFunction(f *typesystem.Function) error {
	key := f.Key()
	if _, ok := s.functions[key]; ok {
		return &DuplicateDeclarationError{Name: f.Name, Arity: key.Arity, Function: true}
	}
	s.functions[key] = f
	return nil
}

func (s *Scope) LookupFunction(name string, arity int) (*typesystem.Function, bool) {
	if f, ok := s.functions[typesystem.FunctionKey{Name: name, Arity: arity}]; ok {
		return f, true
	}
	if s.outer != nil {
		return s.outer.LookupFunction(name, arity)
	}
	return nil, false
}

// VariableNames returns the names defined directly in this scope, sorted.
func (s *Scope) VariableNames() []string {
	names := make([]string, 0, len(s.variables))
	for name := range s.variables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FunctionKeys returns the functions defined directly in this scope, sorted.
func (s *Scope) FunctionKeys() []typesystem.FunctionKey {
	keys := make([]typesystem.FunctionKey, 0, len(s.functions))
	for k := range s.functions {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Name != keys[j].Name {
			return keys[i].Name < keys[j].Name
		}
		return keys[i].Arity < keys[j].Arity
	})
	return keys
}
