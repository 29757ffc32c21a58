package evaluator

import (
	"github.com/funvibe/plc/internal/ast"
	"github.com/funvibe/plc/internal/config"
	"github.com/funvibe/plc/internal/diagnostics"
)

func (e *Evaluator) evalBinary(n *ast.BinaryExpression, env *Environment) Object {
	left := e.Eval(n.Left, env)
	if isError(left) {
		return left
	}

	// AND and OR only look at the right operand when the left one does not
	// decide the result.
	if n.Operator == config.OpAnd || n.Operator == config.OpOr {
		lb, ok := left.(*Boolean)
		if !ok {
			return newError(diagnostics.ErrR004, "%s needs booleans, got %s", n.Operator, left.Type())
		}
		if lb.Value == (n.Operator == config.OpOr) {
			return lb
		}
		right := e.Eval(n.Right, env)
		if isError(right) {
			return right
		}
		if _, ok := right.(*Boolean); !ok {
			return newError(diagnostics.ErrR004, "%s needs booleans, got %s", n.Operator, right.Type())
		}
		return right
	}

	right := e.Eval(n.Right, env)
	if isError(right) {
		return right
	}
	return e.evalInfix(n.Operator, left, right)
}

func (e *Evaluator) evalAccess(n *ast.AccessExpression, env *Environment) Object {
	if n.Receiver == nil {
		val, ok := env.Get(n.Name)
		if !ok {
			return newError(diagnostics.ErrR002, "variable %s is not defined", n.Name)
		}
		return val
	}

	recv := e.Eval(n.Receiver, env)
	if isError(recv) {
		return recv
	}
	cell, err := lookupField(recv, n.Name)
	if err != nil {
		return err
	}
	return cell.Value
}

func lookupField(recv Object, name string) (*Variable, *Error) {
	if holder, ok := recv.(MemberHolder); ok {
		if cell, ok := holder.Members().LookupVariable(name); ok {
			return cell, nil
		}
	}
	return nil, newError(diagnostics.ErrR003, "%s has no field %s", recv.Type(), name)
}

// evalCall evaluates the arguments left to right, then the receiver.
func (e *Evaluator) evalCall(n *ast.CallExpression, env *Environment) Object {
	args := make([]Object, len(n.Arguments))
	for i, arg := range n.Arguments {
		val := e.Eval(arg, env)
		if isError(val) {
			return val
		}
		args[i] = val
	}

	if n.Receiver == nil {
		fn, ok := env.LookupFunction(n.Name, len(args))
		if !ok {
			return newError(diagnostics.ErrR006, "function %s/%d is not defined", n.Name, len(args))
		}
		return e.applyFunction(fn, args)
	}

	recv := e.Eval(n.Receiver, env)
	if isError(recv) {
		return recv
	}
	holder, ok := recv.(MemberHolder)
	if !ok {
		return newError(diagnostics.ErrR007, "%s has no method %s/%d", recv.Type(), n.Name, len(args))
	}
	method, ok := holder.Members().LookupFunction(n.Name, len(args))
	if !ok {
		return newError(diagnostics.ErrR007, "%s has no method %s/%d", recv.Type(), n.Name, len(args))
	}
	if b, ok := method.(*Builtin); ok {
		return b.Fn(e, append([]Object{recv}, args...)...)
	}
	return e.applyFunction(method, args)
}

// applyFunction invokes fn. User functions run in a child of their
// definition environment; a *ReturnValue stops at this boundary.
func (e *Evaluator) applyFunction(fn Object, args []Object) Object {
	switch fn := fn.(type) {
	case *Builtin:
		return fn.Fn(e, args...)
	case *Function:
		if len(args) != len(fn.Parameters) {
			return newError(diagnostics.ErrR006, "function %s expects %d arguments, got %d",
				fn.Name, len(fn.Parameters), len(args))
		}
		env := NewEnclosedEnvironment(fn.Env)
		for i, name := range fn.Parameters {
			env.DefineVariable(name, args[i])
		}
		res := e.evalBlock(fn.Body, env)
		if isError(res) {
			return res
		}
		return unwrapReturnValue(res)
	}
	return newError(diagnostics.ErrR001, "%s is not callable", fn.Type())
}
