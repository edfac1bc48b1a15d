// Package errors formats PArL compiler diagnostics with source context and
// a caret pointing at the offending span, for any of the lexical, parse, or
// semantic error kinds produced by the front end.
package errors

import (
	"fmt"
	"strings"

	"github.com/parl-lang/parlc/internal/lexer"
)

// CompilerError is a single diagnostic: a message anchored at a TextSpan,
// with enough source context to render a line-and-caret display.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Span    lexer.TextSpan
}

// NewCompilerError builds a CompilerError.
func NewCompilerError(span lexer.TextSpan, message, source, file string) *CompilerError {
	return &CompilerError{Span: span, Message: message, Source: source, File: file}
}

func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the error as a header line, the offending source line, a
// caret under the span's start column, and the message. If color is true,
// the caret and message are wrapped in ANSI codes.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: error: ", e.File, e.Span.FromLine, e.Span.FromCol)
	} else {
		fmt.Fprintf(&sb, "%d:%d: error: ", e.Span.FromLine, e.Span.FromCol)
	}
	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	sb.WriteString("\n")

	if line := sourceLine(e.Source, e.Span.FromLine); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Span.FromLine)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Span.FromCol-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors renders one or more CompilerErrors, separated for readability
// when there is more than one.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error(s):\n\n", len(errs))
	for i, err := range errs {
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
