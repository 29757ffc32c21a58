package parser_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/funvibe/plc/internal/ast"
	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/lexer"
	"github.com/funvibe/plc/internal/parser"
	"github.com/funvibe/plc/internal/pipeline"
	"github.com/funvibe/plc/internal/prettyprinter"
)

// sexpr renders expression structure with explicit nesting.
func sexpr(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.BinaryExpression:
		return fmt.Sprintf("(%s %s %s)", n.Operator, sexpr(n.Left), sexpr(n.Right))
	case *ast.GroupExpression:
		return fmt.Sprintf("(group %s)", sexpr(n.Expression))
	case *ast.AccessExpression:
		if n.Receiver != nil {
			return fmt.Sprintf("(. %s %s)", sexpr(n.Receiver), n.Name)
		}
		return n.Name
	case *ast.CallExpression:
		parts := []string{n.Name}
		if n.Receiver != nil {
			parts = []string{"." + n.Name, sexpr(n.Receiver)}
		}
		for _, a := range n.Arguments {
			parts = append(parts, sexpr(a))
		}
		return "(call " + strings.Join(parts, " ") + ")"
	default:
		return prettyprinter.Print(e)
	}
}

func parseExpr(t *testing.T, input string) ast.Expression {
	t.Helper()
	stmts, err := parser.ParseStatementsString(input + ";")
	if err != nil {
		t.Fatalf("parse error: %v\ninput: %s", err, input)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected one statement, got %d\ninput: %s", len(stmts), input)
	}
	es, ok := stmts[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected an expression statement, got %T", stmts[0])
	}
	return es.Expression
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"a < b AND c OR d", "(OR (AND (< a b) c) d)"},
		{"a AND b == c", "(AND a (== b c))"},
		{"(1 + 2) * 3", "(* (group (+ 1 2)) 3)"},
		{"x.y.z", "(. (. x y) z)"},
		{`"string".slice(1, 5)`, `(call .slice "string" 1 5)`},
		{"f()", "(call f)"},
		{"f(a, b + 1)", "(call f a (+ b 1))"},
		{"obj.method().field", "(. (call .method obj) field)"},
		{"NIL", "NIL"},
		{"TRUE OR FALSE", "(OR TRUE FALSE)"},
		{"'c'", "'c'"},
		{"1.50 / 2.0", "(/ 1.50 2.0)"},
		{"x - -1", "(- x -1)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := sexpr(parseExpr(t, tt.input)); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStatements(t *testing.T) {
	input := `
LET x = 1;
LET y: Integer;
LET s: String = "a";
x = x + 1;
obj.field = 2;
IF x > 1 DO print(x); ELSE print(y); END
FOR i IN range(0, 3) DO print(i); END
WHILE x < 10 DO x = x + 1; END
RETURN x;
`
	stmts, err := parser.ParseStatementsString(input)
	if err != nil {
		t.Fatal(err)
	}

	kinds := make([]string, len(stmts))
	for i, s := range stmts {
		kinds[i] = fmt.Sprintf("%T", s)
	}
	want := []string{
		"*ast.DeclarationStatement", "*ast.DeclarationStatement", "*ast.DeclarationStatement",
		"*ast.AssignmentStatement", "*ast.AssignmentStatement",
		"*ast.IfStatement", "*ast.ForStatement", "*ast.WhileStatement", "*ast.ReturnStatement",
	}
	if strings.Join(kinds, ",") != strings.Join(want, ",") {
		t.Fatalf("statement kinds:\n got %v\nwant %v", kinds, want)
	}

	decl := stmts[1].(*ast.DeclarationStatement)
	if decl.TypeName != "Integer" || decl.Value != nil {
		t.Errorf("unexpected declaration %+v", decl)
	}
	ifStmt := stmts[5].(*ast.IfStatement)
	if len(ifStmt.Then) != 1 || len(ifStmt.Else) != 1 {
		t.Errorf("if branches: then=%d else=%d", len(ifStmt.Then), len(ifStmt.Else))
	}
	assign := stmts[4].(*ast.AssignmentStatement)
	if sexpr(assign.Receiver) != "(. obj field)" {
		t.Errorf("assignment receiver = %s", sexpr(assign.Receiver))
	}
}

func TestSourceRoundTrip(t *testing.T) {
	input := `LET x: Integer = 1;
LET name: String;

DEF square(num: Decimal): Decimal DO
    RETURN num * num;
END

DEF log(message: String) DO
    print("[log] " + message);
END

DEF main(): Integer DO
    LET total = 0;
    FOR i IN range(0, 3) DO
        total = total + (i * 2);
    END
    IF total > 5 AND TRUE DO
        log("big");
    ELSE
        log("small\n");
    END
    WHILE total > 0 DO
        total = total - 1;
    END
    RETURN total;
END
`
	src, err := parser.ParseString(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(src.Fields) != 2 || len(src.Methods) != 3 {
		t.Fatalf("fields=%d methods=%d", len(src.Fields), len(src.Methods))
	}
	if src.Methods[1].HasReturnType() {
		t.Error("log has no declared return type")
	}
	if got := prettyprinter.Print(src); got != input {
		t.Errorf("round trip mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, input)
	}
}

func TestEmptyMethodBody(t *testing.T) {
	src, err := parser.ParseString("DEF main(): Integer DO END")
	if err != nil {
		t.Fatal(err)
	}
	if got := len(src.Methods[0].Statements); got != 0 {
		t.Errorf("expected empty body, got %d statements", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diagnostics.ErrorCode
	}{
		{"missing semicolon", "DEF main(): Integer DO RETURN 0 END", diagnostics.ErrP001},
		{"missing END", "DEF main(): Integer DO RETURN 0;", diagnostics.ErrP002},
		{"field without type", "LET x = 1;", diagnostics.ErrP001},
		{"field after method", "DEF f() DO END LET x: Integer;", diagnostics.ErrP001},
		{"keyword as name", "DEF DO() DO END", diagnostics.ErrP001},
		{"dangling operator", "DEF main(): Integer DO RETURN 1 +; END", diagnostics.ErrP003},
		{"unclosed group", "DEF main(): Integer DO RETURN (1 + 2; END", diagnostics.ErrP001},
		{"garbage at top level", "RETURN 0;", diagnostics.ErrP001},
		{"missing expression at end", "DEF main(): Integer DO RETURN", diagnostics.ErrP002},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.ParseString(tt.input)
			if !errors.Is(err, diagnostics.Code(tt.code)) {
				t.Fatalf("expected %s, got %v\ninput: %s", tt.code, err, tt.input)
			}
		})
	}
}

func TestParserProcessor(t *testing.T) {
	ctx := pipeline.NewPipelineContext("DEF main(): Integer DO\n  RETURN 0\nEND")
	ctx.FilePath = "main.plc"
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)

	if len(ctx.Errors) != 1 {
		t.Fatalf("expected exactly one error (fail-fast), got %d", len(ctx.Errors))
	}
	err := ctx.Errors[0]
	if err.Token.Line != 3 || err.File != "main.plc" {
		t.Errorf("error position: %v", err)
	}
	if ctx.AstRoot != nil {
		t.Error("AstRoot must stay nil after a parse error")
	}
}
