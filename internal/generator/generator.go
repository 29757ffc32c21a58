// Package generator emits a Java class from an analyzed source file.
// Every name in the output comes from the host names of the bindings the
// analyzer recorded, so the tree must have passed analysis.
package generator

import (
	"fmt"
	"strings"

	"github.com/funvibe/plc/internal/ast"
	"github.com/funvibe/plc/internal/config"
	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/symbols"
	"github.com/funvibe/plc/internal/typesystem"
)

type Generator struct {
	info      *symbols.Info
	className string
	unit      string

	buf    strings.Builder
	indent int
	method *typesystem.Function

	// err is the first node found without analysis information. Once set,
	// emission continues with placeholders and the output is discarded.
	err error
}

// New creates a generator using the generator section of s.
func New(info *symbols.Info, s *config.Settings) *Generator {
	return &Generator{
		info:      info,
		className: s.Generator.ClassName,
		unit:      strings.Repeat(" ", s.Generator.Indent),
	}
}

// Generate emits src with the default settings.
func Generate(src *ast.Source, info *symbols.Info) (string, error) {
	return New(info, config.Default()).Generate(src)
}

// Generate emits the class for src.
func (g *Generator) Generate(src *ast.Source) (string, error) {
	if g.info == nil {
		return "", diagnostics.NewError(diagnostics.ErrG001, src.Token, "source has not been analyzed")
	}

	g.buf.Reset()
	g.indent = 0
	g.err = nil

	g.line("public class " + g.className + " {")
	g.blank()
	g.indent++

	for _, f := range src.Fields {
		g.line(g.declaration(g.variable(f), f.Value) + ";")
	}
	if len(src.Fields) > 0 {
		g.blank()
	}

	if g.hasEntryPoint(src) {
		g.line("public static void main(String[] args) {")
		g.indent++
		g.line(fmt.Sprintf("System.exit(new %s().%s());", g.className, config.MainFuncName))
		g.indent--
		g.line("}")
		g.blank()
	}

	for _, m := range src.Methods {
		g.emitMethod(m)
		g.blank()
	}

	g.indent--
	g.line("}")
	if g.err != nil {
		return "", g.err
	}
	return g.buf.String(), nil
}

// unanalyzed records that n has no analysis information.
func (g *Generator) unanalyzed(n ast.Node) {
	if g.err == nil {
		g.err = diagnostics.NewErrorf(diagnostics.ErrG001, n.GetToken(), "%T has no analysis information", n)
	}
}

func (g *Generator) hasEntryPoint(src *ast.Source) bool {
	for _, m := range src.Methods {
		if m.Name == config.MainFuncName && len(m.Parameters) == config.MainFuncArity {
			return true
		}
	}
	return false
}

func (g *Generator) line(s string) {
	for i := 0; i < g.indent; i++ {
		g.buf.WriteString(g.unit)
	}
	g.buf.WriteString(s)
	g.buf.WriteByte('\n')
}

func (g *Generator) blank() {
	g.buf.WriteByte('\n')
}

// placeholder stands in for anything missing from the analysis.
var placeholder = typesystem.NewType("?", "?")

func (g *Generator) variable(n ast.Node) *typesystem.Variable {
	v := g.info.VariableOf(n)
	if v == nil {
		g.unanalyzed(n)
		return &typesystem.Variable{Name: "?", HostName: "?", Type: placeholder}
	}
	return v
}

func (g *Generator) function(n ast.Node) *typesystem.Function {
	f := g.info.FunctionOf(n)
	if f == nil {
		g.unanalyzed(n)
		return &typesystem.Function{Name: "?", HostName: "?", ReturnType: placeholder}
	}
	return f
}

func (g *Generator) typeOf(e ast.Expression) *typesystem.Type {
	t := g.info.TypeOf(e)
	if t == nil {
		g.unanalyzed(e)
		return placeholder
	}
	return t
}

// hostType is the host spelling of t in declarations; Nil is void.
func hostType(t *typesystem.Type) string {
	if t == typesystem.Nil {
		return "void"
	}
	return t.HostName
}

func (g *Generator) declaration(v *typesystem.Variable, value ast.Expression) string {
	s := hostType(v.Type) + " " + v.HostName
	if value != nil {
		s += " = " + g.expr(value)
	}
	return s
}

func (g *Generator) emitMethod(m *ast.Method) {
	fn := g.function(m)
	params := g.info.Parameters[m]
	if params == nil && len(m.Parameters) > 0 {
		g.unanalyzed(m)
	}

	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = hostType(p.Type) + " " + p.HostName
	}
	header := fmt.Sprintf("%s %s(%s)", hostType(fn.ReturnType), fn.HostName, strings.Join(parts, ", "))

	g.method = fn
	g.block(header, m.Statements)
	g.method = nil
}

// block emits `header {`, the statements and `}`, or `header {}` when
// there are no statements.
func (g *Generator) block(header string, stmts []ast.Statement) {
	if len(stmts) == 0 {
		g.line(header + " {}")
		return
	}
	g.line(header + " {")
	g.statements(stmts)
	g.line("}")
}

func (g *Generator) statements(stmts []ast.Statement) {
	g.indent++
	for _, s := range stmts {
		g.statement(s)
	}
	g.indent--
}

func (g *Generator) statement(stmt ast.Statement) {
	switch n := stmt.(type) {
	case *ast.ExpressionStatement:
		g.line(g.expr(n.Expression) + ";")
	case *ast.DeclarationStatement:
		g.line(g.declaration(g.variable(n), n.Value) + ";")
	case *ast.AssignmentStatement:
		g.line(g.expr(n.Receiver) + " = " + g.expr(n.Value) + ";")
	case *ast.IfStatement:
		header := "if (" + g.expr(n.Condition) + ")"
		if len(n.Else) == 0 {
			g.block(header, n.Then)
			return
		}
		g.line(header + " {")
		g.statements(n.Then)
		g.line("} else {")
		g.statements(n.Else)
		g.line("}")
	case *ast.ForStatement:
		v := g.variable(n)
		g.block(fmt.Sprintf("for (var %s : %s)", v.HostName, g.expr(n.Value)), n.Statements)
	case *ast.WhileStatement:
		g.block("while ("+g.expr(n.Condition)+")", n.Statements)
	case *ast.ReturnStatement:
		if _, ok := n.Value.(*ast.NilLiteral); ok && g.method != nil && g.method.ReturnType == typesystem.Nil {
			g.line("return;")
			return
		}
		g.line("return " + g.expr(n.Value) + ";")
	default:
		g.unanalyzed(stmt)
	}
}
