package analyzer

import (
	"math"

	"github.com/funvibe/plc/internal/ast"
	"github.com/funvibe/plc/internal/config"
	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/typesystem"
)

// analyzeExpression resolves the type of e and records it in the side table.
func (a *Analyzer) analyzeExpression(e ast.Expression, fr frame) (*typesystem.Type, error) {
	t, err := a.resolveExpression(e, fr)
	if err != nil {
		return nil, err
	}
	a.info.Types[e] = t
	return t, nil
}

func (a *Analyzer) resolveExpression(e ast.Expression, fr frame) (*typesystem.Type, error) {
	switch n := e.(type) {
	case *ast.NilLiteral:
		return typesystem.Nil, nil
	case *ast.BooleanLiteral:
		return typesystem.Boolean, nil
	case *ast.CharacterLiteral:
		return typesystem.Character, nil
	case *ast.StringLiteral:
		return typesystem.String, nil
	case *ast.IntegerLiteral:
		if n.Value.Cmp(minInteger) < 0 || n.Value.Cmp(maxInteger) > 0 {
			return nil, diagnostics.NewErrorf(diagnostics.ErrA012, n.Token,
				"integer %s is outside [%d, %d]", n.Value, math.MinInt32, math.MaxInt32)
		}
		return typesystem.Integer, nil
	case *ast.DecimalLiteral:
		if math.IsInf(n.Value.InexactFloat64(), 0) {
			return nil, diagnostics.NewErrorf(diagnostics.ErrA013, n.Token,
				"decimal %s does not fit a double", n.Token.Lexeme)
		}
		return typesystem.Decimal, nil
	case *ast.GroupExpression:
		return a.analyzeGroup(n, fr)
	case *ast.BinaryExpression:
		return a.analyzeBinary(n, fr)
	case *ast.AccessExpression:
		return a.analyzeAccess(n, fr)
	case *ast.CallExpression:
		return a.analyzeCall(n, fr)
	}
	return nil, diagnostics.NewErrorf(diagnostics.ErrP003, e.GetToken(), "unsupported expression %T", e)
}

func (a *Analyzer) analyzeGroup(n *ast.GroupExpression, fr frame) (*typesystem.Type, error) {
	t, err := a.analyzeExpression(n.Expression, fr)
	if err != nil {
		return nil, err
	}
	if t == typesystem.Nil {
		return nil, diagnostics.NewError(diagnostics.ErrA014, n.Token, "grouped expression must not be Nil")
	}
	if _, ok := n.Expression.(*ast.BinaryExpression); !ok {
		return nil, diagnostics.NewError(diagnostics.ErrA014, n.Token,
			"parentheses may only group a binary expression")
	}
	return t, nil
}

func (a *Analyzer) analyzeBinary(n *ast.BinaryExpression, fr frame) (*typesystem.Type, error) {
	left, err := a.analyzeExpression(n.Left, fr)
	if err != nil {
		return nil, err
	}
	right, err := a.analyzeExpression(n.Right, fr)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case config.OpEq, config.OpNe, config.OpLt, config.OpLe, config.OpGt, config.OpGe:
		if err := requireAssignable(typesystem.Comparable, left, n.Left.GetToken()); err != nil {
			return nil, err
		}
		if err := requireAssignable(typesystem.Comparable, right, n.Right.GetToken()); err != nil {
			return nil, err
		}
		// Operands must be mutually assignable: a Comparable on one side
		// does not admit any Comparable on the other.
		if err := requireAssignable(left, right, n.Token); err != nil {
			return nil, err
		}
		if err := requireAssignable(right, left, n.Token); err != nil {
			return nil, err
		}
		return typesystem.Boolean, nil

	case config.OpAdd:
		if left == typesystem.String || right == typesystem.String {
			return typesystem.String, nil
		}
		return numeric(n, left, right)

	case config.OpSub, config.OpMul, config.OpDiv:
		return numeric(n, left, right)

	case config.OpAnd, config.OpOr:
		if left != typesystem.Boolean || right != typesystem.Boolean {
			return nil, diagnostics.NewErrorf(diagnostics.ErrA005, n.Token,
				"%s needs %s operands, got %s and %s", n.Operator, typesystem.Boolean, left, right)
		}
		return typesystem.Boolean, nil
	}

	return nil, diagnostics.NewErrorf(diagnostics.ErrA015, n.Token, "unknown operator %s", n.Operator)
}

// numeric types arithmetic: Integer with Integer, Decimal with Decimal.
func numeric(n *ast.BinaryExpression, left, right *typesystem.Type) (*typesystem.Type, error) {
	if left == right && (left == typesystem.Integer || left == typesystem.Decimal) {
		return left, nil
	}
	return nil, diagnostics.NewErrorf(diagnostics.ErrA005, n.Token,
		"operator %s cannot be applied to %s and %s", n.Operator, left, right)
}

func (a *Analyzer) analyzeAccess(n *ast.AccessExpression, fr frame) (*typesystem.Type, error) {
	if n.Receiver == nil {
		v, ok := fr.scope.LookupVariable(n.Name)
		if !ok {
			return nil, diagnostics.NewErrorf(diagnostics.ErrA001, n.Token, "variable %s is not defined", n.Name)
		}
		a.info.Variables[n] = v
		return v.Type, nil
	}

	rt, err := a.analyzeExpression(n.Receiver, fr)
	if err != nil {
		return nil, err
	}
	v, ok := rt.Field(n.Name)
	if !ok {
		return nil, diagnostics.NewErrorf(diagnostics.ErrA003, n.Token, "type %s has no field %s", rt, n.Name)
	}
	a.info.Variables[n] = v
	return v.Type, nil
}

// analyzeCall checks the arguments before the receiver, left to right.
func (a *Analyzer) analyzeCall(n *ast.CallExpression, fr frame) (*typesystem.Type, error) {
	args := make([]*typesystem.Type, len(n.Arguments))
	for i, arg := range n.Arguments {
		t, err := a.analyzeExpression(arg, fr)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}

	var fn *typesystem.Function
	if n.Receiver != nil {
		rt, err := a.analyzeExpression(n.Receiver, fr)
		if err != nil {
			return nil, err
		}
		m, ok := rt.Method(n.Name, len(args))
		if !ok {
			return nil, diagnostics.NewErrorf(diagnostics.ErrA004, n.Token,
				"type %s has no method %s/%d", rt, n.Name, len(args))
		}
		fn = m
	} else {
		f, ok := fr.scope.LookupFunction(n.Name, len(args))
		if !ok {
			return nil, diagnostics.NewErrorf(diagnostics.ErrA002, n.Token,
				"function %s/%d is not defined", n.Name, len(args))
		}
		fn = f
	}

	for i, param := range fn.ParameterTypes {
		if err := requireAssignable(param, args[i], n.Arguments[i].GetToken()); err != nil {
			return nil, err
		}
	}
	a.info.Functions[n] = fn
	return fn.ReturnType, nil
}
