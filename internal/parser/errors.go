package parser

import (
	"fmt"
	"strings"

	"github.com/parl-lang/parlc/internal/errors"
	"github.com/parl-lang/parlc/internal/lexer"
)

// ErrorKind distinguishes the three parse-error shapes the specification
// names.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	UnexpectedTokenList
	UnclosedBlock
)

// ParseError is the parser's sole error type: it carries enough context to
// report the source path, the expected kind(s), and the offending token's
// position. The parser fails fast on the first one it builds.
type ParseError struct {
	Kind     ErrorKind
	Expected []lexer.TokenKind
	Found    lexer.Token
	File     string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnexpectedTokenList:
		names := make([]string, len(e.Expected))
		for i, k := range e.Expected {
			names[i] = k.String()
		}
		return fmt.Sprintf("%s: expected one of [%s], found %s", e.File, strings.Join(names, ", "), e.Found)
	case UnclosedBlock:
		return fmt.Sprintf("%s: unclosed block, reached %s", e.File, e.Found)
	default:
		expected := "?"
		if len(e.Expected) == 1 {
			expected = e.Expected[0].String()
		}
		return fmt.Sprintf("%s: expected %s, found %s", e.File, expected, e.Found)
	}
}

// ToCompilerError renders the ParseError through the shared diagnostic
// formatter, given the original source text for caret context.
func (e *ParseError) ToCompilerError(source string) *errors.CompilerError {
	return errors.NewCompilerError(e.Found.Span, e.Error(), source, e.File)
}
