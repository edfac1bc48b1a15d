package lexer

import "fmt"

// LexicalError is the lexer's sole error variant: an unrecognized or
// unterminated token at a given span. The lexer accumulates these rather
// than aborting on the first one (see Lexer.Errors).
type LexicalError struct {
	Span    TextSpan
	Message string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("%s: %s %q", e.Span, e.Message, e.Span.Lexeme)
}
