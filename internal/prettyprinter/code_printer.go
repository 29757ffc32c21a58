package prettyprinter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/funvibe/plc/internal/ast"
	"github.com/funvibe/plc/internal/utils"
)

// --- Code Printer (Output looks like source code) ---

// CodePrinter prints a tree back as canonical source. Parentheses come only
// from GroupExpression nodes, so printing a parsed tree and parsing the
// result again yields the same shape.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
	unit   string
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{unit: "    "}
}

// NewCodePrinterWithIndent uses width spaces per nesting level.
func NewCodePrinterWithIndent(width int) *CodePrinter {
	return &CodePrinter{unit: strings.Repeat(" ", width)}
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

// line writes one indented line.
func (p *CodePrinter) line(s string) {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString(p.unit)
	}
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}

// Print formats any node. Statements and larger nodes end with a newline,
// expressions do not.
func Print(node ast.Node) string {
	p := NewCodePrinter()
	p.PrintNode(node)
	return p.String()
}

func (p *CodePrinter) PrintNode(node ast.Node) {
	switch n := node.(type) {
	case *ast.Source:
		p.printSource(n)
	case *ast.Field:
		p.line(p.field(n))
	case *ast.Method:
		p.printMethod(n)
	case ast.Statement:
		p.printStatement(n)
	case ast.Expression:
		p.write(p.expr(n))
	}
}

func (p *CodePrinter) printSource(n *ast.Source) {
	for _, f := range n.Fields {
		p.line(p.field(f))
	}
	for i, m := range n.Methods {
		if i > 0 || len(n.Fields) > 0 {
			p.write("\n")
		}
		p.printMethod(m)
	}
}

func (p *CodePrinter) field(n *ast.Field) string {
	s := fmt.Sprintf("LET %s: %s", n.Name, n.TypeName)
	if n.Value != nil {
		s += " = " + p.expr(n.Value)
	}
	return s + ";"
}

func (p *CodePrinter) printMethod(n *ast.Method) {
	params := make([]string, len(n.Parameters))
	for i, name := range n.Parameters {
		params[i] = name + ": " + n.ParameterTypeNames[i]
	}
	header := fmt.Sprintf("DEF %s(%s)", n.Name, strings.Join(params, ", "))
	if n.HasReturnType() {
		header += ": " + n.ReturnTypeName
	}
	p.line(header + " DO")
	p.printBlock(n.Statements)
	p.line("END")
}

func (p *CodePrinter) printBlock(stmts []ast.Statement) {
	p.indent++
	for _, s := range stmts {
		p.printStatement(s)
	}
	p.indent--
}

func (p *CodePrinter) printStatement(stmt ast.Statement) {
	switch n := stmt.(type) {
	case *ast.ExpressionStatement:
		p.line(p.expr(n.Expression) + ";")
	case *ast.DeclarationStatement:
		s := "LET " + n.Name
		if n.TypeName != "" {
			s += ": " + n.TypeName
		}
		if n.Value != nil {
			s += " = " + p.expr(n.Value)
		}
		p.line(s + ";")
	case *ast.AssignmentStatement:
		p.line(p.expr(n.Receiver) + " = " + p.expr(n.Value) + ";")
	case *ast.IfStatement:
		p.line("IF " + p.expr(n.Condition) + " DO")
		p.printBlock(n.Then)
		if len(n.Else) > 0 {
			p.line("ELSE")
			p.printBlock(n.Else)
		}
		p.line("END")
	case *ast.ForStatement:
		p.line(fmt.Sprintf("FOR %s IN %s DO", n.Name, p.expr(n.Value)))
		p.printBlock(n.Statements)
		p.line("END")
	case *ast.WhileStatement:
		p.line("WHILE " + p.expr(n.Condition) + " DO")
		p.printBlock(n.Statements)
		p.line("END")
	case *ast.ReturnStatement:
		p.line("RETURN " + p.expr(n.Value) + ";")
	}
}

func (p *CodePrinter) expr(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.NilLiteral:
		return "NIL"
	case *ast.BooleanLiteral:
		if n.Value {
			return "TRUE"
		}
		return "FALSE"
	case *ast.IntegerLiteral:
		return n.Value.String()
	case *ast.DecimalLiteral:
		return utils.FormatDecimal(n.Value)
	case *ast.CharacterLiteral:
		return utils.QuoteCharacter(n.Value)
	case *ast.StringLiteral:
		return utils.Quote(n.Value, '"')
	case *ast.GroupExpression:
		return "(" + p.expr(n.Expression) + ")"
	case *ast.BinaryExpression:
		return p.expr(n.Left) + " " + n.Operator + " " + p.expr(n.Right)
	case *ast.AccessExpression:
		if n.Receiver != nil {
			return p.expr(n.Receiver) + "." + n.Name
		}
		return n.Name
	case *ast.CallExpression:
		args := make([]string, len(n.Arguments))
		for i, a := range n.Arguments {
			args[i] = p.expr(a)
		}
		call := n.Name + "(" + strings.Join(args, ", ") + ")"
		if n.Receiver != nil {
			return p.expr(n.Receiver) + "." + call
		}
		return call
	}
	return ""
}
