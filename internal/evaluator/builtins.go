package evaluator

import (
	"fmt"
	"math/big"

	"github.com/funvibe/plc/internal/config"
	"github.com/funvibe/plc/internal/diagnostics"
)

// stringMembers holds the methods every String shares.
var stringMembers = NewEnvironment()

func init() {
	stringMembers.DefineFunction(config.SliceMethodName, 2, &Builtin{Name: config.SliceMethodName, Fn: builtinSlice})
}

// RegisterBuiltins defines print/1 and range/2 in env.
func RegisterBuiltins(env *Environment) {
	env.DefineFunction(config.PrintFuncName, 1, &Builtin{Name: config.PrintFuncName, Fn: builtinPrint})
	env.DefineFunction(config.RangeFuncName, 2, &Builtin{Name: config.RangeFuncName, Fn: builtinRange})
}

func builtinPrint(e *Evaluator, args ...Object) Object {
	if len(args) != 1 {
		return newError(diagnostics.ErrR006, "print expects 1 argument, got %d", len(args))
	}
	if _, err := fmt.Fprintln(e.Out, args[0].Inspect()); err != nil {
		return newError(diagnostics.ErrR001, "print: %v", err)
	}
	return NIL
}

// builtinRange yields the integers from the first argument up to, but not
// including, the second.
func builtinRange(e *Evaluator, args ...Object) Object {
	if len(args) != 2 {
		return newError(diagnostics.ErrR006, "range expects 2 arguments, got %d", len(args))
	}
	from, ok1 := args[0].(*Integer)
	to, ok2 := args[1].(*Integer)
	if !ok1 || !ok2 {
		return newError(diagnostics.ErrR004, "range expects integers, got %s and %s", args[0].Type(), args[1].Type())
	}

	list := &List{}
	one := big.NewInt(1)
	for i := new(big.Int).Set(from.Value); i.Cmp(to.Value) < 0; i.Add(i, one) {
		list.Elements = append(list.Elements, &Integer{Value: new(big.Int).Set(i)})
	}
	return list
}

// builtinSlice is String.slice(from, to): the characters in [from, to).
func builtinSlice(e *Evaluator, args ...Object) Object {
	if len(args) != 3 {
		return newError(diagnostics.ErrR007, "slice expects 2 arguments, got %d", len(args)-1)
	}
	s, ok := args[0].(*String)
	if !ok {
		return newError(diagnostics.ErrR004, "slice receiver must be a string, got %s", args[0].Type())
	}
	from, ok1 := args[1].(*Integer)
	to, ok2 := args[2].(*Integer)
	if !ok1 || !ok2 {
		return newError(diagnostics.ErrR004, "slice expects integers, got %s and %s", args[1].Type(), args[2].Type())
	}

	runes := []rune(s.Value)
	lo, hi := from.Value, to.Value
	if lo.Sign() < 0 || lo.Cmp(hi) > 0 || hi.Cmp(big.NewInt(int64(len(runes)))) > 0 {
		return newError(diagnostics.ErrR001, "slice [%s, %s) out of range for length %d", lo, hi, len(runes))
	}
	return &String{Value: string(runes[lo.Int64():hi.Int64()])}
}
