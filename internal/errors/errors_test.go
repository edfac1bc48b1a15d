package errors

import (
	"strings"
	"testing"

	"github.com/parl-lang/parlc/internal/lexer"
)

func TestFormatIncludesFileLineAndCaret(t *testing.T) {
	source := "let x: int = true;"
	span := lexer.TextSpan{FromLine: 1, FromCol: 14, ToLine: 1, ToCol: 18, Lexeme: "true"}
	err := NewCompilerError(span, "type mismatch: expected int, got bool", source, "test.parl")

	out := err.Format(false)
	if !strings.Contains(out, "test.parl:1:14") {
		t.Errorf("expected file:line:col prefix, got:\n%s", out)
	}
	if !strings.Contains(out, "type mismatch") {
		t.Errorf("expected message, got:\n%s", out)
	}
	if !strings.Contains(out, source) {
		t.Errorf("expected source line context, got:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("expected a caret, got:\n%s", out)
	}
}

func TestFormatColorWrapsMessageWithANSI(t *testing.T) {
	span := lexer.TextSpan{FromLine: 1, FromCol: 1}
	err := NewCompilerError(span, "boom", "", "")
	out := err.Format(true)
	if !strings.Contains(out, "\033[1m") {
		t.Errorf("expected ANSI bold prefix when color is enabled, got:\n%s", out)
	}
}

func TestFormatErrorsEmpty(t *testing.T) {
	if out := FormatErrors(nil, false); out != "" {
		t.Errorf("expected empty output for no errors, got %q", out)
	}
}

func TestFormatErrorsMultiplePrefixesCount(t *testing.T) {
	span := lexer.TextSpan{FromLine: 1, FromCol: 1}
	errs := []*CompilerError{
		NewCompilerError(span, "first", "", "a.parl"),
		NewCompilerError(span, "second", "", "a.parl"),
	}
	out := FormatErrors(errs, false)
	if !strings.Contains(out, "2 error(s)") {
		t.Errorf("expected error count header, got:\n%s", out)
	}
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Errorf("expected both messages present, got:\n%s", out)
	}
}
