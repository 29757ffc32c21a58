package analyzer

import (
	"github.com/funvibe/plc/internal/ast"
	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/symbols"
	"github.com/funvibe/plc/internal/typesystem"
)

func (a *Analyzer) analyzeField(f *ast.Field, fr frame) error {
	t, err := a.resolveType(f.TypeName, f.Token)
	if err != nil {
		return err
	}
	if f.Value != nil {
		vt, err := a.analyzeExpression(f.Value, fr)
		if err != nil {
			return err
		}
		if err := requireAssignable(t, vt, f.Value.GetToken()); err != nil {
			return err
		}
	}
	v, err := fr.scope.DefineVariable(f.Name, hostName(f.Name), t)
	if err != nil {
		return duplicate(err, f.Token)
	}
	a.info.Variables[f] = v
	return nil
}

// declareMethod resolves the signature of m and binds it in the enclosing
// scope, so the body (and every sibling) can call it.
func (a *Analyzer) declareMethod(m *ast.Method, fr frame) error {
	params := make([]*typesystem.Type, len(m.Parameters))
	for i, name := range m.ParameterTypeNames {
		t, err := a.resolveType(name, m.Token)
		if err != nil {
			return err
		}
		params[i] = t
	}

	ret := typesystem.Nil
	if m.HasReturnType() {
		t, err := a.resolveType(m.ReturnTypeName, m.Token)
		if err != nil {
			return err
		}
		ret = t
	}

	fn, err := fr.scope.DefineFunction(m.Name, hostName(m.Name), params, ret)
	if err != nil {
		return duplicate(err, m.Token)
	}
	a.info.Functions[m] = fn
	return nil
}

func (a *Analyzer) analyzeMethodBody(m *ast.Method, fr frame) error {
	fn := a.info.Functions[m]
	body := frame{scope: symbols.NewEnclosedScope(fr.scope, symbols.ScopeFunction), method: fn}

	vars := make([]*typesystem.Variable, len(m.Parameters))
	for i, name := range m.Parameters {
		v, err := body.scope.DefineVariable(name, hostName(name), fn.ParameterTypes[i])
		if err != nil {
			return duplicate(err, m.Token)
		}
		vars[i] = v
	}
	a.info.Parameters[m] = vars

	return a.analyzeBlock(m.Statements, body)
}

func (a *Analyzer) analyzeBlock(stmts []ast.Statement, fr frame) error {
	for _, stmt := range stmts {
		if err := a.analyzeStatement(stmt, fr); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeStatement(stmt ast.Statement, fr frame) error {
	switch n := stmt.(type) {
	case *ast.ExpressionStatement:
		return a.analyzeExpressionStatement(n, fr)
	case *ast.DeclarationStatement:
		return a.analyzeDeclaration(n, fr)
	case *ast.AssignmentStatement:
		return a.analyzeAssignment(n, fr)
	case *ast.IfStatement:
		return a.analyzeIf(n, fr)
	case *ast.ForStatement:
		return a.analyzeFor(n, fr)
	case *ast.WhileStatement:
		return a.analyzeWhile(n, fr)
	case *ast.ReturnStatement:
		return a.analyzeReturn(n, fr)
	}
	return diagnostics.NewErrorf(diagnostics.ErrP003, stmt.GetToken(), "unsupported statement %T", stmt)
}

func (a *Analyzer) analyzeExpressionStatement(n *ast.ExpressionStatement, fr frame) error {
	t, err := a.analyzeExpression(n.Expression, fr)
	if err != nil {
		return err
	}
	if t != typesystem.Nil {
		return nil
	}
	// A call to a Nil-returning function is the one useful Nil statement.
	if _, ok := n.Expression.(*ast.CallExpression); ok {
		return nil
	}
	return diagnostics.NewError(diagnostics.ErrA016, n.Token, "expression has no effect")
}

func (a *Analyzer) analyzeDeclaration(n *ast.DeclarationStatement, fr frame) error {
	if n.TypeName == "" && n.Value == nil {
		return diagnostics.NewErrorf(diagnostics.ErrA007, n.Token,
			"declaration of %s needs a type or an initializer", n.Name)
	}

	var t *typesystem.Type
	if n.TypeName != "" {
		resolved, err := a.resolveType(n.TypeName, n.Token)
		if err != nil {
			return err
		}
		t = resolved
	}
	if n.Value != nil {
		vt, err := a.analyzeExpression(n.Value, fr)
		if err != nil {
			return err
		}
		if t == nil {
			t = vt
		} else if err := requireAssignable(t, vt, n.Value.GetToken()); err != nil {
			return err
		}
	}

	v, err := fr.scope.DefineVariable(n.Name, hostName(n.Name), t)
	if err != nil {
		return duplicate(err, n.Token)
	}
	a.info.Variables[n] = v
	return nil
}

func (a *Analyzer) analyzeAssignment(n *ast.AssignmentStatement, fr frame) error {
	if _, ok := n.Receiver.(*ast.AccessExpression); !ok {
		return diagnostics.NewError(diagnostics.ErrA006, n.Receiver.GetToken(),
			"only variables and fields can be assigned")
	}
	rt, err := a.analyzeExpression(n.Receiver, fr)
	if err != nil {
		return err
	}
	vt, err := a.analyzeExpression(n.Value, fr)
	if err != nil {
		return err
	}
	return requireAssignable(rt, vt, n.Value.GetToken())
}

// requireCondition demands an exact Boolean, reporting Nil separately.
func (a *Analyzer) requireCondition(cond ast.Expression, fr frame) error {
	t, err := a.analyzeExpression(cond, fr)
	if err != nil {
		return err
	}
	if t == typesystem.Nil {
		return diagnostics.NewError(diagnostics.ErrA005, cond.GetToken(), "condition must not be Nil")
	}
	if t != typesystem.Boolean {
		return diagnostics.NewErrorf(diagnostics.ErrA005, cond.GetToken(),
			"condition must be %s, not %s", typesystem.Boolean, t)
	}
	return nil
}

func (a *Analyzer) analyzeIf(n *ast.IfStatement, fr frame) error {
	if err := a.requireCondition(n.Condition, fr); err != nil {
		return err
	}
	if len(n.Then) == 0 {
		return diagnostics.NewError(diagnostics.ErrA008, n.Token, "IF body must not be empty")
	}
	if err := a.analyzeBlock(n.Then, fr.enter(symbols.ScopeBlock)); err != nil {
		return err
	}
	return a.analyzeBlock(n.Else, fr.enter(symbols.ScopeBlock))
}

func (a *Analyzer) analyzeFor(n *ast.ForStatement, fr frame) error {
	t, err := a.analyzeExpression(n.Value, fr)
	if err != nil {
		return err
	}
	if t != typesystem.IntegerIterable {
		return diagnostics.NewErrorf(diagnostics.ErrA005, n.Value.GetToken(),
			"FOR needs an %s, not %s", typesystem.IntegerIterable, t)
	}
	if len(n.Statements) == 0 {
		return diagnostics.NewError(diagnostics.ErrA008, n.Token, "FOR body must not be empty")
	}

	loop := fr.enter(symbols.ScopeBlock)
	v, err := loop.scope.DefineVariable(n.Name, hostName(n.Name), typesystem.Integer)
	if err != nil {
		return duplicate(err, n.Token)
	}
	a.info.Variables[n] = v
	return a.analyzeBlock(n.Statements, loop)
}

func (a *Analyzer) analyzeWhile(n *ast.WhileStatement, fr frame) error {
	if err := a.requireCondition(n.Condition, fr); err != nil {
		return err
	}
	return a.analyzeBlock(n.Statements, fr.enter(symbols.ScopeBlock))
}

func (a *Analyzer) analyzeReturn(n *ast.ReturnStatement, fr frame) error {
	if fr.method == nil {
		return diagnostics.NewError(diagnostics.ErrA009, n.Token, "RETURN outside of a method")
	}
	t, err := a.analyzeExpression(n.Value, fr)
	if err != nil {
		return err
	}
	return requireAssignable(fr.method.ReturnType, t, n.Value.GetToken())
}
