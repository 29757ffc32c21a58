// symbols/symbol_table.go - static scopes and the analysis side table
//
// - symbol_table.go: Scope, the chained static environment
// - symbol_table_operations.go: variable and function definition and lookup
// - info.go: Info, the node-to-annotation table the analyzer fills in

package symbols

import (
	"fmt"

	"github.com/funvibe/plc/internal/typesystem"
)

type ScopeType int

const (
	ScopeGlobal ScopeType = iota // fields, methods, builtins
	ScopeFunction
	ScopeBlock
)

func (st ScopeType) String() string {
	switch st {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	default:
		return "block"
	}
}

// Scope maps names to variable bindings and (name, arity) to function
// bindings. Lookups walk outward; definitions only touch the receiver.
type Scope struct {
	variables map[string]*typesystem.Variable
	functions map[typesystem.FunctionKey]*typesystem.Function
	scopeType ScopeType
	outer     *Scope
}

// DuplicateDeclarationError is returned when a name (or name/arity for
// functions) is defined twice in the same scope.
type DuplicateDeclarationError struct {
	Name     string
	Arity    int
	Function bool
}

func (e *DuplicateDeclarationError) Error() string {
	if e.Function {
		return fmt.Sprintf("function %s/%d is already defined in this scope", e.Name, e.Arity)
	}
	return fmt.Sprintf("variable %s is already defined in this scope", e.Name)
}
