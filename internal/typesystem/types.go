package typesystem

import (
	"github.com/funvibe/plc/internal/config"
	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/token"
)

// Type is a named type of the fixed lattice. Types are compared by pointer:
// the registry hands out exactly one *Type per name.
type Type struct {
	Name     string
	HostName string // name used by the generator

	fields  map[string]*Variable
	methods map[FunctionKey]*Function
}

func NewType(name, hostName string) *Type {
	return &Type{
		Name:     name,
		HostName: hostName,
		fields:   make(map[string]*Variable),
		methods:  make(map[FunctionKey]*Function),
	}
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.Name
}

// DefineField adds a field to the type's member scope.
func (t *Type) DefineField(name, hostName string, fieldType *Type) *Variable {
	v := &Variable{Name: name, HostName: hostName, Type: fieldType}
	t.fields[name] = v
	return v
}

// DefineMethod adds a method keyed by (name, arity). The receiver is not
// counted in the arity and does not appear in parameterTypes.
func (t *Type) DefineMethod(name, hostName string, parameterTypes []*Type, returnType *Type) *Function {
	f := &Function{Name: name, HostName: hostName, ParameterTypes: parameterTypes, ReturnType: returnType}
	t.methods[f.Key()] = f
	return f
}

func (t *Type) Field(name string) (*Variable, bool) {
	v, ok := t.fields[name]
	return v, ok
}

func (t *Type) Method(name string, arity int) (*Function, bool) {
	f, ok := t.methods[FunctionKey{Name: name, Arity: arity}]
	return f, ok
}

// Built-in types
var (
	Any             = NewType(config.AnyTypeName, "Object")
	Nil             = NewType(config.NilTypeName, "Void")
	Comparable      = NewType(config.ComparableTypeName, "Comparable")
	Boolean         = NewType(config.BooleanTypeName, "boolean")
	Integer         = NewType(config.IntegerTypeName, "int")
	Decimal         = NewType(config.DecimalTypeName, "double")
	Character       = NewType(config.CharacterTypeName, "char")
	String          = NewType(config.StringTypeName, "String")
	IntegerIterable = NewType(config.IntegerIterableTypeName, "Iterable<Integer>")
)

func init() {
	String.DefineMethod(config.SliceMethodName, config.HostSliceName, []*Type{Integer, Integer}, String)
}

// Registry resolves type names. The zero value is not usable; use NewRegistry.
type Registry struct {
	types map[string]*Type
}

// NewRegistry returns a registry holding the built-in lattice.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]*Type)}
	for _, t := range []*Type{Any, Nil, Comparable, Boolean, Integer, Decimal, Character, String, IntegerIterable} {
		r.types[t.Name] = t
	}
	r.types[config.VoidTypeName] = Nil
	return r
}

// Register adds a host-provided type, e.g. an object type with fields.
func (r *Registry) Register(t *Type) {
	r.types[t.Name] = t
}

// GetType resolves a type name, failing with UndefinedType.
func (r *Registry) GetType(name string) (*Type, error) {
	if t, ok := r.types[name]; ok {
		return t, nil
	}
	return nil, diagnostics.NewErrorf(diagnostics.ErrA018, token.Token{}, "type %s is not defined", name)
}

var defaultRegistry = NewRegistry()

// GetType resolves a built-in type name.
func GetType(name string) (*Type, error) {
	return defaultRegistry.GetType(name)
}
