package semantic

import (
	"testing"

	"github.com/parl-lang/parlc/internal/ast"
	"github.com/parl-lang/parlc/internal/lexer"
	"github.com/parl-lang/parlc/internal/parser"
	"github.com/parl-lang/parlc/internal/types"
	"github.com/stretchr/testify/require"
)

func analyze(t *testing.T, source string) (*Result, error) {
	t.Helper()
	tokens, lexErrs := lexer.New(source).Lex()
	if len(lexErrs) > 0 {
		t.Fatalf("unexpected lexical errors: %v", lexErrs)
	}
	prog, err := parser.New(tokens, "test.parl").Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return NewAnalyzer().Analyze(prog)
}

func TestAnalyzeValidProgram(t *testing.T) {
	_, err := analyze(t, `
let x: int = 5;
let y: int = x + 1;
__print y;
`)
	if err != nil {
		t.Fatalf("unexpected semantic error: %v", err)
	}
}

func TestAnalyzeTypeMismatchInVarDec(t *testing.T) {
	_, err := analyze(t, "let x: int = true;")
	require.Error(t, err)
	var serr *SemanticError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, TypeMismatch, serr.Kind)
}

func TestAnalyzeUndefinedVariable(t *testing.T) {
	_, err := analyze(t, "__print missing;")
	var serr *SemanticError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, UndefinedVariable, serr.Kind)
}

func TestAnalyzeDuplicateVariableInSameScope(t *testing.T) {
	_, err := analyze(t, `
let x: int = 1;
let x: int = 2;
`)
	serr, ok := err.(*SemanticError)
	if !ok {
		t.Fatalf("expected *SemanticError, got %T", err)
	}
	if serr.Kind != AlreadyDefinedVariable {
		t.Errorf("expected AlreadyDefinedVariable, got %v", serr.Kind)
	}
}

// A function body must not see variables declared in the program's global
// scope ("no capture"): only its own parameters and locals are visible.
func TestAnalyzeFunctionCannotCaptureGlobal(t *testing.T) {
	_, err := analyze(t, `
let g: int = 1;
fun f() -> int {
	return g;
}
`)
	serr, ok := err.(*SemanticError)
	if !ok {
		t.Fatalf("expected *SemanticError, got %T (%v)", err, err)
	}
	if serr.Kind != UndefinedVariable {
		t.Errorf("expected UndefinedVariable for captured global, got %v", serr.Kind)
	}
}

// Function calls are exempt from the no-capture restriction: a function may
// call any function visible from program scope regardless of nesting.
func TestAnalyzeRecursiveFunctionCallAllowed(t *testing.T) {
	_, err := analyze(t, `
fun fact(n: int) -> int {
	if (n == 0) {
		return 1;
	} else {
		return n * fact(n - 1);
	}
}
`)
	if err != nil {
		t.Fatalf("unexpected semantic error: %v", err)
	}
}

func TestAnalyzeFunctionCallArgTypeMismatch(t *testing.T) {
	_, err := analyze(t, `
fun f(a: int) -> int {
	return a;
}
let y: int = f(true);
`)
	serr, ok := err.(*SemanticError)
	if !ok {
		t.Fatalf("expected *SemanticError, got %T (%v)", err, err)
	}
	if serr.Kind != TypeMismatch {
		t.Errorf("expected TypeMismatch, got %v", serr.Kind)
	}
}

func TestAnalyzeFunctionReturnTypeMismatch(t *testing.T) {
	_, err := analyze(t, `
fun f() -> int {
	return true;
}
`)
	serr, ok := err.(*SemanticError)
	if !ok {
		t.Fatalf("expected *SemanticError, got %T (%v)", err, err)
	}
	if serr.Kind != FunctionReturnTypeMismatch {
		t.Errorf("expected FunctionReturnTypeMismatch, got %v", serr.Kind)
	}
}

func TestAnalyzeIfBranchTypeMismatch(t *testing.T) {
	// Both branches yield a value (via return), but of different types.
	_, err := analyze(t, `
fun f(cond: bool) -> int {
	if (cond) {
		return 1;
	} else {
		return true;
	}
}
`)
	var serr *SemanticError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, TypeMismatch, serr.Kind)
	// Found is the true branch's type, Expected is the false branch's type,
	// matching the (context, found, expected) convention used elsewhere.
	require.Equal(t, types.Int, serr.Found)
	require.Equal(t, types.Bool, serr.Expected)
}

func TestAnalyzeInvalidCast(t *testing.T) {
	_, err := analyze(t, "let x: bool = 1 as bool;")
	serr, ok := err.(*SemanticError)
	if !ok {
		t.Fatalf("expected *SemanticError, got %T (%v)", err, err)
	}
	if serr.Kind != InvalidCast {
		t.Errorf("expected InvalidCast, got %v", serr.Kind)
	}
}

func TestAnalyzeValidCast(t *testing.T) {
	_, err := analyze(t, "let x: float = 1 as float;")
	if err != nil {
		t.Fatalf("unexpected semantic error: %v", err)
	}
}

func TestAnalyzeColourArithmetic(t *testing.T) {
	_, err := analyze(t, "let x: colour = #ff0000 + #00ff00;")
	if err != nil {
		t.Fatalf("unexpected semantic error: %v", err)
	}
}

func TestAnalyzeShortCircuitOperatorsRequireBool(t *testing.T) {
	_, err := analyze(t, "let x: bool = 1 and true;")
	serr, ok := err.(*SemanticError)
	if !ok {
		t.Fatalf("expected *SemanticError, got %T (%v)", err, err)
	}
	if serr.Kind != InvalidOperation {
		t.Errorf("expected InvalidOperation, got %v", serr.Kind)
	}
}

func TestAnalyzeForLoopScopeIsIndependentOfBody(t *testing.T) {
	// The loop variable from the For's own scope must still be visible
	// inside the body's nested scope.
	_, err := analyze(t, `
for (let i: int = 0; i < 3; i = i + 1) {
	__print i;
}
`)
	if err != nil {
		t.Fatalf("unexpected semantic error: %v", err)
	}
}

func TestExprTypeAcceptsEndOfFile(t *testing.T) {
	a := NewAnalyzer()
	if _, err := a.exprType(&ast.EndOfFile{}); err != nil {
		t.Fatalf("unexpected error visiting EndOfFile: %v", err)
	}
}
