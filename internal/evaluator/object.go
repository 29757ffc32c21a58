package evaluator

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/funvibe/plc/internal/ast"
	"github.com/funvibe/plc/internal/config"
	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/token"
	"github.com/funvibe/plc/internal/utils"
	"github.com/shopspring/decimal"
)

type ObjectType string

const (
	INTEGER_OBJ      = "INTEGER"
	DECIMAL_OBJ      = "DECIMAL"
	BOOLEAN_OBJ      = "BOOLEAN"
	CHARACTER_OBJ    = "CHARACTER"
	STRING_OBJ       = "STRING"
	NIL_OBJ          = "NIL"
	LIST_OBJ         = "LIST"
	INSTANCE_OBJ     = "INSTANCE"
	FUNCTION_OBJ     = "FUNCTION"
	BUILTIN_OBJ      = "BUILTIN"
	RETURN_VALUE_OBJ = "RETURN_VALUE"
	ERROR_OBJ        = "ERROR"
)

type Object interface {
	Type() ObjectType
	Inspect() string
}

// MemberHolder is implemented by values that expose fields or methods
// through an environment.
type MemberHolder interface {
	Members() *Environment
}

// Integer
type Integer struct {
	Value *big.Int
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return i.Value.String() }

func NewInteger(v int64) *Integer { return &Integer{Value: big.NewInt(v)} }

// Decimal
type Decimal struct {
	Value decimal.Decimal
}

func (d *Decimal) Type() ObjectType { return DECIMAL_OBJ }
func (d *Decimal) Inspect() string  { return utils.FormatDecimal(d.Value) }

// Boolean
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

func nativeBoolToBooleanObject(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

// Character
type Character struct {
	Value rune
}

func (c *Character) Type() ObjectType { return CHARACTER_OBJ }
func (c *Character) Inspect() string  { return string(c.Value) }

// String exposes the built-in string methods.
type String struct {
	Value string
}

func (s *String) Type() ObjectType      { return STRING_OBJ }
func (s *String) Inspect() string       { return s.Value }
func (s *String) Members() *Environment { return stringMembers }

// Nil is the unit value.
type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return config.NilText }

var NIL = &Nil{}

// List is what iterables evaluate to.
type List struct {
	Elements []Object
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Inspect() string {
	parts := make([]string, len(l.Elements))
	for i, el := range l.Elements {
		parts[i] = el.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Instance is an object whose fields are mutable cells in its member
// environment.
type Instance struct {
	TypeName string
	members  *Environment
}

// NewInstance creates an object with the given initial field values.
func NewInstance(typeName string, fields map[string]Object) *Instance {
	inst := &Instance{TypeName: typeName, members: NewEnvironment()}
	for name, value := range fields {
		inst.members.DefineVariable(name, value)
	}
	return inst
}

func (i *Instance) Type() ObjectType      { return INSTANCE_OBJ }
func (i *Instance) Members() *Environment { return i.members }
func (i *Instance) Inspect() string {
	names := i.members.VariableNames()
	parts := make([]string, len(names))
	for k, name := range names {
		v, _ := i.members.LookupVariable(name)
		parts[k] = name + "=" + v.Value.Inspect()
	}
	return i.TypeName + "{" + strings.Join(parts, ", ") + "}"
}

// Function is a method closed over the environment it was defined in.
type Function struct {
	Name       string
	Parameters []string
	Body       []ast.Statement
	Env        *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	return fmt.Sprintf("%s(%s)", f.Name, strings.Join(f.Parameters, ", "))
}

// BuiltinFunction implements a built-in. Methods receive their receiver as
// the first argument.
type BuiltinFunction func(e *Evaluator, args ...Object) Object

type Builtin struct {
	Fn   BuiltinFunction
	Name string
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin " + b.Name }

// ReturnValue is the completion of a RETURN statement. It travels up
// through blocks until the enclosing call unwraps it.
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }

// Error aborts evaluation. Line and Column are filled in by the innermost
// node that has a position.
type Error struct {
	Code    diagnostics.ErrorCode
	Message string
	Line    int
	Column  int
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

// Diagnostic converts the runtime error for reporting.
func (e *Error) Diagnostic() *diagnostics.DiagnosticError {
	return diagnostics.NewError(e.Code, token.Token{Line: e.Line, Column: e.Column}, e.Message)
}

func newError(code diagnostics.ErrorCode, format string, a ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func isError(obj Object) bool {
	if obj != nil {
		return obj.Type() == ERROR_OBJ
	}
	return false
}

func unwrapReturnValue(obj Object) Object {
	if returnValue, ok := obj.(*ReturnValue); ok {
		return returnValue.Value
	}
	return obj
}
