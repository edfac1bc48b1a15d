package parser

import (
	"testing"

	"github.com/parl-lang/parlc/internal/ast"
	"github.com/parl-lang/parlc/internal/lexer"
)

func testParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	tokens, errs := lexer.New(input).Lex()
	if len(errs) > 0 {
		t.Fatalf("unexpected lexical errors: %v", errs)
	}
	prog, err := New(tokens, "test.parl").Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

func TestParseVarDec(t *testing.T) {
	prog := testParse(t, "let x: int = 5;")
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	vd, ok := prog.Statements[0].(*ast.VarDec)
	if !ok {
		t.Fatalf("statement is not *ast.VarDec, got %T", prog.Statements[0])
	}
	if vd.Identifier.Span.Lexeme != "x" {
		t.Errorf("identifier = %q, want x", vd.Identifier.Span.Lexeme)
	}
	if vd.Type.Span.Lexeme != "int" {
		t.Errorf("type = %q, want int", vd.Type.Span.Lexeme)
	}
}

func TestParseFunctionDecl(t *testing.T) {
	prog := testParse(t, `
fun add(a: int, b: int) -> int {
	return a + b;
}
`)
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	fn, ok := prog.Statements[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("statement is not *ast.FunctionDecl, got %T", prog.Statements[0])
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if fn.ReturnType.Span.Lexeme != "int" {
		t.Errorf("return type = %q, want int", fn.ReturnType.Span.Lexeme)
	}
	if len(fn.Block.Statements) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Block.Statements))
	}
	ret, ok := fn.Block.Statements[0].(*ast.Return)
	if !ok {
		t.Fatalf("body statement is not *ast.Return, got %T", fn.Block.Statements[0])
	}
	expr, ok := ret.Expression.(*ast.Expression)
	if !ok {
		t.Fatalf("return expression is not *ast.Expression, got %T", ret.Expression)
	}
	if _, ok := expr.Expr.(*ast.BinOp); !ok {
		t.Fatalf("expected a BinOp inside return, got %T", expr.Expr)
	}
}

func TestParseIfElse(t *testing.T) {
	prog := testParse(t, `
if (x > 0) {
	__print x;
} else {
	__print 0;
}
`)
	ifNode, ok := prog.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("statement is not *ast.If, got %T", prog.Statements[0])
	}
	if ifNode.IfFalse == nil {
		t.Fatal("expected else branch to be present")
	}
}

func TestParseForLoop(t *testing.T) {
	prog := testParse(t, `
for (let i: int = 0; i < 10; i = i + 1) {
	__print i;
}
`)
	forNode, ok := prog.Statements[0].(*ast.For)
	if !ok {
		t.Fatalf("statement is not *ast.For, got %T", prog.Statements[0])
	}
	if forNode.Initializer == nil {
		t.Fatal("expected initializer to be present")
	}
	if forNode.Increment == nil {
		t.Fatal("expected increment to be present")
	}
}

func TestParseCastExpression(t *testing.T) {
	prog := testParse(t, "let x: float = 3 as float;")
	vd := prog.Statements[0].(*ast.VarDec)
	expr, ok := vd.Expression.(*ast.Expression)
	if !ok {
		t.Fatalf("expression is not *ast.Expression, got %T", vd.Expression)
	}
	if expr.CastedType == nil {
		t.Fatal("expected a cast to be recorded")
	}
	if expr.CastedType.Span.Lexeme != "float" {
		t.Errorf("cast target = %q, want float", expr.CastedType.Span.Lexeme)
	}
}

func TestParseFunctionCallArgs(t *testing.T) {
	prog := testParse(t, "let x: int = add(1, 2);")
	vd := prog.Statements[0].(*ast.VarDec)
	expr := vd.Expression.(*ast.Expression)
	call, ok := expr.Expr.(*ast.FunctionCall)
	if !ok {
		t.Fatalf("expected FunctionCall, got %T", expr.Expr)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
}

func TestParseUnclosedBlockReportsError(t *testing.T) {
	tokens, _ := lexer.New("fun f() -> int { return 1;").Lex()
	_, err := New(tokens, "test.parl").Parse()
	if err == nil {
		t.Fatal("expected parse error for unclosed block")
	}
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Kind != UnclosedBlock {
		t.Errorf("expected UnclosedBlock, got %v", perr.Kind)
	}
}

func TestParseMissingSemicolonReportsError(t *testing.T) {
	tokens, _ := lexer.New("let x: int = 5").Lex()
	_, err := New(tokens, "test.parl").Parse()
	if err == nil {
		t.Fatal("expected parse error for missing semicolon")
	}
}
