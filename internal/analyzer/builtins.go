package analyzer

import (
	"github.com/funvibe/plc/internal/config"
	"github.com/funvibe/plc/internal/symbols"
	"github.com/funvibe/plc/internal/typesystem"
)

// RegisterBuiltins defines the built-in functions in scope:
//
//	print(Any): Nil
//	range(Integer, Integer): IntegerIterable
func RegisterBuiltins(scope *symbols.Scope) {
	scope.AddFunction(&typesystem.Function{
		Name:           config.PrintFuncName,
		HostName:       config.HostPrintName,
		ParameterTypes: []*typesystem.Type{typesystem.Any},
		ReturnType:     typesystem.Nil,
	})
	scope.AddFunction(&typesystem.Function{
		Name:           config.RangeFuncName,
		HostName:       config.HostRangeName,
		ParameterTypes: []*typesystem.Type{typesystem.Integer, typesystem.Integer},
		ReturnType:     typesystem.IntegerIterable,
		HostSuffix:     ".boxed().toList()",
	})
}
