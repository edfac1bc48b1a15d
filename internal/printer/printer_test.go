package printer

import (
	"testing"

	"github.com/parl-lang/parlc/internal/lexer"
	"github.com/parl-lang/parlc/internal/parser"
)

// roundTrip parses source and prints it once, returning the printed form.
// TestPrintIsFixedPoint reparses that output and prints it again to check
// that printing is a fixed point over canonical form.
func roundTrip(t *testing.T, source string) string {
	t.Helper()
	tokens, errs := lexer.New(source).Lex()
	if len(errs) > 0 {
		t.Fatalf("unexpected lexical errors: %v", errs)
	}
	prog, err := parser.New(tokens, "test.parl").Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	out, err := Print(prog)
	if err != nil {
		t.Fatalf("unexpected print error: %v", err)
	}
	return out
}

func TestPrintIsFixedPoint(t *testing.T) {
	sources := []string{
		"let x: int = 5;",
		"let x: int = (1 + 2) * 3;",
		"fun add(a: int, b: int) -> int {\n  return a + b;\n}",
		"if (x > 0) {\n  __print x;\n} else {\n  __print 0;\n}",
		"for (let i: int = 0; i < 10; i = i + 1) {\n  __print i;\n}",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			first := roundTrip(t, src)

			tokens, errs := lexer.New(first).Lex()
			if len(errs) > 0 {
				t.Fatalf("reparsing printed output produced lexical errors: %v", errs)
			}
			prog, err := parser.New(tokens, "test.parl").Parse()
			if err != nil {
				t.Fatalf("reparsing printed output failed: %v\noutput was:\n%s", err, first)
			}
			second, err := Print(prog)
			if err != nil {
				t.Fatalf("unexpected print error on second pass: %v", err)
			}
			if first != second {
				t.Errorf("printing is not a fixed point:\nfirst:\n%s\nsecond:\n%s", first, second)
			}
		})
	}
}

func TestPrintVarDec(t *testing.T) {
	out := roundTrip(t, "let x: int = 5;")
	want := "let x: int = 5;"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestPrintCastSuffix(t *testing.T) {
	out := roundTrip(t, "let x: float = 3 as float;")
	want := "let x: float = 3 as float;"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}
