package typesystem

import (
	"fmt"
	"strings"
)

// Variable is the static binding of a name.
type Variable struct {
	Name     string
	HostName string
	Type     *Type
}

func (v *Variable) String() string {
	return fmt.Sprintf("%s: %s", v.Name, v.Type)
}

// FunctionKey identifies a function: overloading is by arity only.
type FunctionKey struct {
	Name  string
	Arity int
}

func (k FunctionKey) String() string {
	return fmt.Sprintf("%s/%d", k.Name, k.Arity)
}

// Function is the static binding of a function or method.
type Function struct {
	Name           string
	HostName       string
	ParameterTypes []*Type
	ReturnType     *Type

	// HostSuffix is appended after the generated call, for host functions
	// whose result needs adapting (e.g. a stream that must become a list).
	HostSuffix string
}

func (f *Function) Arity() int { return len(f.ParameterTypes) }

func (f *Function) Key() FunctionKey {
	return FunctionKey{Name: f.Name, Arity: f.Arity()}
}

func (f *Function) String() string {
	params := make([]string, len(f.ParameterTypes))
	for i, p := range f.ParameterTypes {
		params[i] = p.String()
	}
	return fmt.Sprintf("%s(%s): %s", f.Name, strings.Join(params, ", "), f.ReturnType)
}
