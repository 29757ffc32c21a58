package analyzer

import (
	"errors"
	"strings"
	"testing"

	"github.com/funvibe/plc/internal/ast"
	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/lexer"
	"github.com/funvibe/plc/internal/parser"
	"github.com/funvibe/plc/internal/pipeline"
	"github.com/funvibe/plc/internal/symbols"
	"github.com/funvibe/plc/internal/typesystem"
)

// analyzeSource parses and analyzes input with a fresh Analyzer.
func analyzeSource(t *testing.T, input string) (*ast.Source, *symbols.Info, error) {
	t.Helper()
	src, err := parser.ParseString(input)
	if err != nil {
		t.Fatalf("parse error: %v\ninput: %s", err, input)
	}
	info, err := New().Analyze(src)
	return src, info, err
}

func expectAnalyzerError(t *testing.T, input string, code diagnostics.ErrorCode) error {
	t.Helper()
	_, _, err := analyzeSource(t, input)
	if err == nil {
		t.Fatalf("expected error %s, but got none\ninput: %s", code, input)
	}
	if !errors.Is(err, diagnostics.Code(code)) {
		t.Fatalf("expected error %s, got: %v\ninput: %s", code, err, input)
	}
	return err
}

// expectAnalyzerErrorContains asserts an error with the given code whose message contains substr.
func expectAnalyzerErrorContains(t *testing.T, input string, code diagnostics.ErrorCode, substr string) {
	t.Helper()
	e := expectAnalyzerError(t, input, code)
	if !strings.Contains(e.Error(), substr) {
		t.Errorf("expected error message to contain %q, got: %s", substr, e.Error())
	}
}

func expectNoAnalyzerErrors(t *testing.T, input string) {
	t.Helper()
	if _, _, err := analyzeSource(t, input); err != nil {
		t.Fatalf("expected no errors, got:\n%v\ninput: %s", err, input)
	}
}

// inMain wraps statements in a valid entry point.
func inMain(body string) string {
	return "DEF main(): Integer DO\n" + body + "\nRETURN 0;\nEND\n"
}

// typeOfExpr analyzes `LET v = expr;` inside main and returns the type of expr.
func typeOfExpr(t *testing.T, expr string) (*typesystem.Type, error) {
	t.Helper()
	src, info, err := analyzeSource(t, inMain("LET v = "+expr+";"))
	if err != nil {
		return nil, err
	}
	decl := src.Methods[0].Statements[0].(*ast.DeclarationStatement)
	return info.TypeOf(decl.Value), nil
}

func TestLiteralTypes(t *testing.T) {
	tests := []struct {
		expr string
		want *typesystem.Type
	}{
		{"TRUE", typesystem.Boolean},
		{"FALSE", typesystem.Boolean},
		{"'c'", typesystem.Character},
		{`"text"`, typesystem.String},
		{"42", typesystem.Integer},
		{"2147483647", typesystem.Integer},
		{"-2147483648", typesystem.Integer},
		{"1.5", typesystem.Decimal},
		{"NIL", typesystem.Nil},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := typeOfExpr(t, tt.expr)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("type of %s = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestLiteralRanges(t *testing.T) {
	expectAnalyzerError(t, inMain("LET v = 2147483648;"), diagnostics.ErrA012)
	expectAnalyzerError(t, inMain("LET v = -2147483649;"), diagnostics.ErrA012)

	huge := "1" + strings.Repeat("0", 400) + ".0"
	expectAnalyzerError(t, inMain("LET v = "+huge+";"), diagnostics.ErrA013)
}

func TestBinaryTyping(t *testing.T) {
	tests := []struct {
		expr string
		want *typesystem.Type
	}{
		{"1 + 2", typesystem.Integer},
		{"1 - 2", typesystem.Integer},
		{"1 * 2", typesystem.Integer},
		{"1 / 2", typesystem.Integer},
		{"1.0 / 2.0", typesystem.Decimal},
		{`"a" + 1`, typesystem.String},
		{`1.5 + "a"`, typesystem.String},
		{`"a" + NIL`, typesystem.String},
		{"1 < 2", typesystem.Boolean},
		{"'a' <= 'b'", typesystem.Boolean},
		{`"a" == "b"`, typesystem.Boolean},
		{"1.0 != 2.0", typesystem.Boolean},
		{"TRUE AND FALSE OR TRUE", typesystem.Boolean},
		{"(1 + 2) * 3", typesystem.Integer},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := typeOfExpr(t, tt.expr)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("type of %s = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestBinaryMismatches(t *testing.T) {
	for _, expr := range []string{
		"1 + 1.0",
		"1.0 - 1",
		"2 * 2.0",
		"2.0 / 2",
		"TRUE + 1",
		"1 < 1.0",
		`1 == "1"`,
		"TRUE == TRUE",
		"NIL == NIL",
		"1 AND TRUE",
		"TRUE OR NIL",
	} {
		t.Run(expr, func(t *testing.T) {
			expectAnalyzerError(t, inMain("LET v = "+expr+";"), diagnostics.ErrA005)
		})
	}
}

func TestComparisonNeedsMutualAssignability(t *testing.T) {
	expectAnalyzerError(t, inMain(`LET c: Comparable = 1; IF c < "a" DO print(1); END`), diagnostics.ErrA005)
	expectAnalyzerError(t, inMain(`LET c: Comparable = 1; LET v = "a" == c;`), diagnostics.ErrA005)
	expectAnalyzerError(t, inMain("LET c: Comparable = 1; LET v = 1 >= c;"), diagnostics.ErrA005)
	expectNoAnalyzerErrors(t, inMain("LET c: Comparable = 1; LET d: Comparable = 'x'; LET v = c != d;"))
}

func TestUnknownOperator(t *testing.T) {
	src, err := parser.ParseString(inMain("LET v = 1 + 2;"))
	if err != nil {
		t.Fatal(err)
	}
	decl := src.Methods[0].Statements[0].(*ast.DeclarationStatement)
	decl.Value.(*ast.BinaryExpression).Operator = "%"

	_, err = New().Analyze(src)
	if !errors.Is(err, diagnostics.Code(diagnostics.ErrA015)) {
		t.Fatalf("expected A015, got %v", err)
	}
}

func TestGroups(t *testing.T) {
	expectNoAnalyzerErrors(t, inMain("LET v = (1 + 2) * (3 - 1);"))
	expectAnalyzerError(t, inMain("LET v = (1);"), diagnostics.ErrA014)
	expectAnalyzerErrorContains(t, inMain("LET v = (NIL);"), diagnostics.ErrA014, "Nil")
}

func TestAccessAndCalls(t *testing.T) {
	expectAnalyzerError(t, inMain("LET v = missing;"), diagnostics.ErrA001)
	expectAnalyzerError(t, inMain("missing();"), diagnostics.ErrA002)
	expectAnalyzerErrorContains(t, inMain("print(1, 2);"), diagnostics.ErrA002, "print/2")
	expectAnalyzerError(t, inMain(`LET v = "abc".length;`), diagnostics.ErrA003)
	expectAnalyzerError(t, inMain(`LET v = "abc".slice(1);`), diagnostics.ErrA004)
	expectAnalyzerError(t, inMain(`LET v = "abc".slice(1, 'c');`), diagnostics.ErrA005)
	expectAnalyzerError(t, inMain(`LET v = range(0, "3");`), diagnostics.ErrA005)

	got, err := typeOfExpr(t, `"abcdef".slice(1, 3)`)
	if err != nil {
		t.Fatal(err)
	}
	if got != typesystem.String {
		t.Errorf("slice type = %v", got)
	}
}

func TestCallArgumentsCheckedBeforeReceiver(t *testing.T) {
	// Both the receiver and an argument are undefined; the argument is reported.
	expectAnalyzerErrorContains(t, inMain("LET v = nope.slice(missing, 1);"), diagnostics.ErrA001, "missing")
}

func TestStatements(t *testing.T) {
	t.Run("useless expression", func(t *testing.T) {
		expectAnalyzerError(t, inMain("NIL;"), diagnostics.ErrA016)
		expectNoAnalyzerErrors(t, inMain("print(1);"))
		expectNoAnalyzerErrors(t, inMain("1 + 2;"))
	})
	t.Run("ambiguous declaration", func(t *testing.T) {
		expectAnalyzerError(t, inMain("LET x;"), diagnostics.ErrA007)
	})
	t.Run("declaration", func(t *testing.T) {
		expectNoAnalyzerErrors(t, inMain("LET x: Integer; LET y: Any = 1; LET z: Comparable = 'c';"))
		expectAnalyzerError(t, inMain(`LET x: Integer = "one";`), diagnostics.ErrA005)
		expectAnalyzerError(t, inMain("LET x: Comparable = TRUE;"), diagnostics.ErrA005)
		expectAnalyzerError(t, inMain("LET x: Number = 1;"), diagnostics.ErrA018)
	})
	t.Run("assignment", func(t *testing.T) {
		expectNoAnalyzerErrors(t, inMain("LET x = 1; x = 2;"))
		expectAnalyzerError(t, inMain(`LET x = 1; x = "2";`), diagnostics.ErrA005)
		expectAnalyzerError(t, inMain("1 = 2;"), diagnostics.ErrA006)
		expectAnalyzerError(t, inMain("print(1) = 2;"), diagnostics.ErrA006)
		expectAnalyzerError(t, inMain("y = 2;"), diagnostics.ErrA001)
	})
	t.Run("if", func(t *testing.T) {
		expectNoAnalyzerErrors(t, inMain("IF TRUE DO print(1); END"))
		expectNoAnalyzerErrors(t, inMain("IF 1 < 2 DO print(1); ELSE END"))
		expectAnalyzerError(t, inMain("IF TRUE DO END"), diagnostics.ErrA008)
		expectAnalyzerErrorContains(t, inMain("IF 1 DO print(1); END"), diagnostics.ErrA005, "Boolean")
		expectAnalyzerErrorContains(t, inMain("IF NIL DO print(1); END"), diagnostics.ErrA005, "Nil")
	})
	t.Run("for", func(t *testing.T) {
		expectNoAnalyzerErrors(t, inMain("FOR i IN range(0, 3) DO print(i + 1); END"))
		expectAnalyzerError(t, inMain("FOR i IN range(0, 3) DO END"), diagnostics.ErrA008)
		expectAnalyzerError(t, inMain("FOR i IN 3 DO print(i); END"), diagnostics.ErrA005)
		expectAnalyzerError(t, inMain("FOR i IN range(0, 3) DO print(i); END print(i);"), diagnostics.ErrA001)
	})
	t.Run("while", func(t *testing.T) {
		expectNoAnalyzerErrors(t, inMain("LET n = 3; WHILE n > 0 DO n = n - 1; END"))
		expectNoAnalyzerErrors(t, inMain("WHILE FALSE DO END"))
		expectAnalyzerError(t, inMain("WHILE 'c' DO print(1); END"), diagnostics.ErrA005)
	})
	t.Run("return", func(t *testing.T) {
		expectAnalyzerError(t, "DEF main(): Integer DO RETURN 1.0; END", diagnostics.ErrA005)
		expectNoAnalyzerErrors(t, "DEF f() DO RETURN NIL; END DEF main(): Integer DO f(); RETURN 0; END")
	})
}

func TestReturnOutsideMethod(t *testing.T) {
	stmts, err := parser.ParseStatementsString("RETURN 1;")
	if err != nil {
		t.Fatal(err)
	}
	err = New().AnalyzeStatement(stmts[0])
	if !errors.Is(err, diagnostics.Code(diagnostics.ErrA009)) {
		t.Fatalf("expected A009, got %v", err)
	}
}

func TestEntryPoint(t *testing.T) {
	expectAnalyzerError(t, "LET x: Integer = 1;", diagnostics.ErrA010)
	expectAnalyzerError(t, "DEF main(args: String): Integer DO RETURN 0; END", diagnostics.ErrA010)
	expectAnalyzerError(t, "DEF main() DO print(1); END", diagnostics.ErrA011)
	expectAnalyzerErrorContains(t, "DEF main(): Decimal DO RETURN 0.0; END", diagnostics.ErrA011, "Decimal")
	expectNoAnalyzerErrors(t, "DEF main(): Integer DO RETURN 0; END")
}

func TestScopes(t *testing.T) {
	t.Run("fields are visible in methods", func(t *testing.T) {
		expectNoAnalyzerErrors(t, "LET x: Integer = 1;\nLET y: Integer = 10;\nDEF main(): Integer DO RETURN x + y; END")
	})
	t.Run("forward reference and recursion", func(t *testing.T) {
		expectNoAnalyzerErrors(t, `
DEF main(): Integer DO RETURN fact(5); END
DEF fact(n: Integer): Integer DO
    IF n <= 1 DO RETURN 1; END
    RETURN n * fact(n - 1);
END`)
	})
	t.Run("overload by arity", func(t *testing.T) {
		expectNoAnalyzerErrors(t, `
DEF f(a: Integer): Integer DO RETURN a; END
DEF f(a: Integer, b: Integer): Integer DO RETURN a + b; END
DEF main(): Integer DO RETURN f(1) + f(1, 2); END`)
	})
	t.Run("shadowing in a block", func(t *testing.T) {
		expectNoAnalyzerErrors(t, inMain("LET x = 1; LET y = 2; IF TRUE DO LET x = 3; y = 4; END"))
	})
	t.Run("block locals do not escape", func(t *testing.T) {
		expectAnalyzerError(t, inMain("IF TRUE DO LET z = 3; END print(z);"), diagnostics.ErrA001)
	})
	t.Run("duplicate declarations", func(t *testing.T) {
		expectAnalyzerError(t, inMain("LET x = 1; LET x = 2;"), diagnostics.ErrA017)
		expectAnalyzerError(t, "LET x: Integer;\nLET x: String;\nDEF main(): Integer DO RETURN 0; END", diagnostics.ErrA017)
		expectAnalyzerError(t, "DEF f() DO END\nDEF f() DO END\nDEF main(): Integer DO RETURN 0; END", diagnostics.ErrA017)
		expectAnalyzerError(t, "DEF f(a: Integer, a: Integer) DO END\nDEF main(): Integer DO RETURN 0; END", diagnostics.ErrA017)
	})
	t.Run("void alias", func(t *testing.T) {
		expectNoAnalyzerErrors(t, "DEF f(): Void DO print(1); END\nDEF main(): Integer DO f(); RETURN 0; END")
	})
	t.Run("undefined parameter type", func(t *testing.T) {
		expectAnalyzerError(t, "DEF f(a: Thing) DO END\nDEF main(): Integer DO RETURN 0; END", diagnostics.ErrA018)
	})
}

func TestInfoIsComplete(t *testing.T) {
	src, info, err := analyzeSource(t, `LET base: Integer = 2;
DEF twice(n: Integer): Integer DO RETURN n * base; END
DEF main(): Integer DO
    FOR i IN range(0, 2) DO print(twice(i)); END
    RETURN 0;
END`)
	if err != nil {
		t.Fatal(err)
	}

	if info.VariableOf(src.Fields[0]) == nil {
		t.Error("field has no binding")
	}
	for _, m := range src.Methods {
		if info.FunctionOf(m) == nil {
			t.Errorf("method %s has no binding", m.Name)
		}
	}
	if got := info.Parameters[src.Methods[0]]; len(got) != 1 || got[0].Type != typesystem.Integer {
		t.Errorf("parameters of twice = %v", got)
	}

	forStmt := src.Methods[1].Statements[0].(*ast.ForStatement)
	if v := info.VariableOf(forStmt); v == nil || v.Type != typesystem.Integer {
		t.Errorf("loop variable binding = %v", v)
	}

	call := forStmt.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	if f := info.FunctionOf(call); f == nil || f.HostName != "System.out.println" {
		t.Errorf("print binding = %v", f)
	}
	inner := call.Arguments[0].(*ast.CallExpression)
	if info.FunctionOf(inner) != info.FunctionOf(src.Methods[0]) {
		t.Error("call to twice must resolve to the declared method")
	}
	arg := inner.Arguments[0].(*ast.AccessExpression)
	if info.VariableOf(arg) != info.VariableOf(forStmt) {
		t.Error("i must resolve to the loop variable")
	}
	for _, e := range []ast.Expression{call, inner, arg, forStmt.Value} {
		if info.TypeOf(e) == nil {
			t.Errorf("expression %T has no type", e)
		}
	}
}

func TestHostNames(t *testing.T) {
	src, info, err := analyzeSource(t, inMain("LET my-var = 1; print(my-var);"))
	if err != nil {
		t.Fatal(err)
	}
	decl := src.Methods[0].Statements[0].(*ast.DeclarationStatement)
	if got := info.VariableOf(decl).HostName; got != "my_var" {
		t.Errorf("host name = %q", got)
	}
}

func TestObjectTypes(t *testing.T) {
	reg := typesystem.NewRegistry()
	point := typesystem.NewType("Point", "Point")
	point.DefineField("x", "x", typesystem.Integer)
	point.DefineField("y", "y", typesystem.Integer)
	reg.Register(point)

	a := NewWithRegistry(reg)
	if _, err := a.DefineGlobal("origin", point); err != nil {
		t.Fatal(err)
	}

	src, err := parser.ParseString(`
DEF shift(p: Point): Integer DO
    p.x = p.x + 1;
    RETURN p.x;
END
DEF main(): Integer DO RETURN shift(origin); END`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Analyze(src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad, _ := parser.ParseString("DEF main(): Integer DO RETURN origin.z; END")
	b := NewWithRegistry(reg)
	b.DefineGlobal("origin", point)
	if _, err := b.Analyze(bad); !errors.Is(err, diagnostics.Code(diagnostics.ErrA003)) {
		t.Fatalf("expected A003, got %v", err)
	}
}

func TestSessionAnalysis(t *testing.T) {
	a := New()

	m, err := parser.ParseMethodString("DEF inc(n: Integer): Integer DO RETURN n + 1; END")
	if err != nil {
		t.Fatal(err)
	}
	if err := a.AnalyzeMethod(m); err != nil {
		t.Fatal(err)
	}

	stmts, err := parser.ParseStatementsString("LET x = inc(1); print(x);")
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range stmts {
		if err := a.AnalyzeStatement(s); err != nil {
			t.Fatal(err)
		}
	}
	if v, ok := a.Scope().LookupVariable("x"); !ok || v.Type != typesystem.Integer {
		t.Errorf("x should persist in the session scope, got %v", v)
	}
}

func TestErrorPositions(t *testing.T) {
	err := expectAnalyzerError(t, "DEF main(): Integer DO\n    RETURN missing;\nEND", diagnostics.ErrA001)
	var de *diagnostics.DiagnosticError
	if !errors.As(err, &de) {
		t.Fatalf("not a diagnostic: %v", err)
	}
	if de.Token.Line != 2 || de.Token.Column != 12 {
		t.Errorf("position = %d:%d, want 2:12", de.Token.Line, de.Token.Column)
	}
}

func TestSemanticAnalyzerProcessor(t *testing.T) {
	run := func(input string) *pipeline.PipelineContext {
		ctx := pipeline.NewPipelineContext(input)
		ctx.FilePath = "prog.plc"
		return pipeline.New(
			&lexer.LexerProcessor{},
			&parser.ParserProcessor{},
			&SemanticAnalyzerProcessor{},
		).Run(ctx)
	}

	ok := run("DEF main(): Integer DO RETURN 0; END")
	if ok.Failed() || ok.Info == nil {
		t.Fatalf("expected success, errors: %v", ok.Errors)
	}

	bad := run("DEF main(): Integer DO RETURN TRUE; END")
	if len(bad.Errors) != 1 || bad.Errors[0].Code != diagnostics.ErrA005 {
		t.Fatalf("expected one A005, got %v", bad.Errors)
	}
	if bad.Errors[0].File != "prog.plc" || bad.Info != nil {
		t.Errorf("unexpected context state: file=%q info=%v", bad.Errors[0].File, bad.Info)
	}
}
