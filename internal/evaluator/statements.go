package evaluator

import (
	"github.com/funvibe/plc/internal/ast"
	"github.com/funvibe/plc/internal/config"
	"github.com/funvibe/plc/internal/diagnostics"
)

func (e *Evaluator) evalSource(src *ast.Source, env *Environment) Object {
	for _, f := range src.Fields {
		if res := e.Eval(f, env); isError(res) {
			return res
		}
	}
	for _, m := range src.Methods {
		if res := e.Eval(m, env); isError(res) {
			return res
		}
	}

	main, ok := env.LookupFunction(config.MainFuncName, config.MainFuncArity)
	if !ok {
		return newError(diagnostics.ErrR006, "function %s/%d is not defined", config.MainFuncName, config.MainFuncArity)
	}
	return e.applyFunction(main, nil)
}

func (e *Evaluator) evalField(f *ast.Field, env *Environment) Object {
	val := Object(NIL)
	if f.Value != nil {
		val = e.Eval(f.Value, env)
		if isError(val) {
			return val
		}
	}
	env.DefineVariable(f.Name, val)
	return NIL
}

// evalMethod binds a closure over env, the environment of definition.
func (e *Evaluator) evalMethod(m *ast.Method, env *Environment) Object {
	fn := &Function{Name: m.Name, Parameters: m.Parameters, Body: m.Statements, Env: env}
	env.DefineFunction(m.Name, len(m.Parameters), fn)
	return NIL
}

// evalBlock runs statements in env and stops at the first *ReturnValue or
// *Error, which it hands back unchanged.
func (e *Evaluator) evalBlock(stmts []ast.Statement, env *Environment) Object {
	for _, stmt := range stmts {
		res := e.Eval(stmt, env)
		if res != nil {
			rt := res.Type()
			if rt == RETURN_VALUE_OBJ || rt == ERROR_OBJ {
				return res
			}
		}
	}
	return NIL
}

func (e *Evaluator) evalDeclaration(n *ast.DeclarationStatement, env *Environment) Object {
	val := Object(NIL)
	if n.Value != nil {
		val = e.Eval(n.Value, env)
		if isError(val) {
			return val
		}
	}
	env.DefineVariable(n.Name, val)
	return NIL
}

func (e *Evaluator) evalAssignment(n *ast.AssignmentStatement, env *Environment) Object {
	target, ok := n.Receiver.(*ast.AccessExpression)
	if !ok {
		return newError(diagnostics.ErrR001, "cannot assign to %T", n.Receiver)
	}

	var cell *Variable
	if target.Receiver != nil {
		recv := e.Eval(target.Receiver, env)
		if isError(recv) {
			return recv
		}
		c, err := lookupField(recv, target.Name)
		if err != nil {
			return err
		}
		cell = c
	} else {
		c, found := env.LookupVariable(target.Name)
		if !found {
			return newError(diagnostics.ErrR002, "variable %s is not defined", target.Name)
		}
		cell = c
	}

	val := e.Eval(n.Value, env)
	if isError(val) {
		return val
	}
	cell.Value = val
	return NIL
}

func (e *Evaluator) evalCondition(cond ast.Expression, env *Environment) (bool, *Error) {
	val := e.Eval(cond, env)
	if err, ok := val.(*Error); ok {
		return false, err
	}
	b, ok := val.(*Boolean)
	if !ok {
		return false, newError(diagnostics.ErrR004, "condition must be a boolean, got %s", val.Type())
	}
	return b.Value, nil
}

func (e *Evaluator) evalIf(n *ast.IfStatement, env *Environment) Object {
	ok, err := e.evalCondition(n.Condition, env)
	if err != nil {
		return err
	}
	if ok {
		return e.evalBlock(n.Then, NewEnclosedEnvironment(env))
	}
	return e.evalBlock(n.Else, NewEnclosedEnvironment(env))
}

// evalFor binds the loop variable in a fresh environment per element, so
// declarations in the body never survive an iteration.
func (e *Evaluator) evalFor(n *ast.ForStatement, env *Environment) Object {
	val := e.Eval(n.Value, env)
	if isError(val) {
		return val
	}
	list, ok := val.(*List)
	if !ok {
		return newError(diagnostics.ErrR004, "FOR needs a list, got %s", val.Type())
	}

	for _, el := range list.Elements {
		iter := NewEnclosedEnvironment(env)
		iter.DefineVariable(n.Name, el)
		if res := e.evalBlock(n.Statements, iter); res != NIL {
			return res
		}
	}
	return NIL
}

// evalWhile runs every pass in one shared environment: declarations in the
// body persist across iterations but not past the loop.
func (e *Evaluator) evalWhile(n *ast.WhileStatement, env *Environment) Object {
	loop := NewEnclosedEnvironment(env)
	for {
		ok, err := e.evalCondition(n.Condition, env)
		if err != nil {
			return err
		}
		if !ok {
			return NIL
		}
		if res := e.evalBlock(n.Statements, loop); res != NIL {
			return res
		}
	}
}
