package generator

import (
	"strings"

	"github.com/funvibe/plc/internal/ast"
	"github.com/funvibe/plc/internal/config"
	"github.com/funvibe/plc/internal/typesystem"
	"github.com/funvibe/plc/internal/utils"
)

var hostOperators = map[string]string{
	config.OpAnd: "&&",
	config.OpOr:  "||",
}

func (g *Generator) expr(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.NilLiteral:
		return "null"
	case *ast.BooleanLiteral:
		if n.Value {
			return "true"
		}
		return "false"
	case *ast.IntegerLiteral:
		return n.Value.String()
	case *ast.DecimalLiteral:
		return utils.FormatDecimal(n.Value)
	case *ast.CharacterLiteral:
		return utils.QuoteCharacter(n.Value)
	case *ast.StringLiteral:
		return utils.Quote(n.Value, '"')
	case *ast.GroupExpression:
		return "(" + g.expr(n.Expression) + ")"
	case *ast.BinaryExpression:
		return g.binary(n)
	case *ast.AccessExpression:
		v := g.variable(n)
		if n.Receiver != nil {
			return g.expr(n.Receiver) + "." + v.HostName
		}
		return v.HostName
	case *ast.CallExpression:
		return g.call(n)
	}
	g.unanalyzed(e)
	return "?"
}

// binary spells comparisons between strings as method calls, since the
// host compares strings by reference.
func (g *Generator) binary(n *ast.BinaryExpression) string {
	left, right := g.expr(n.Left), g.expr(n.Right)

	if g.typeOf(n.Left) == typesystem.String && g.typeOf(n.Right) == typesystem.String {
		switch n.Operator {
		case config.OpEq:
			return left + ".equals(" + right + ")"
		case config.OpNe:
			return "!" + left + ".equals(" + right + ")"
		case config.OpLt, config.OpLe, config.OpGt, config.OpGe:
			return left + ".compareTo(" + right + ") " + n.Operator + " 0"
		}
	}

	op := n.Operator
	if host, ok := hostOperators[op]; ok {
		op = host
	}
	return left + " " + op + " " + right
}

func (g *Generator) call(n *ast.CallExpression) string {
	fn := g.function(n)
	args := make([]string, len(n.Arguments))
	for i, a := range n.Arguments {
		args[i] = g.expr(a)
	}
	call := fn.HostName + "(" + strings.Join(args, ", ") + ")" + fn.HostSuffix
	if n.Receiver != nil {
		return g.expr(n.Receiver) + "." + call
	}
	return call
}
