package semantic

import (
	"fmt"

	"github.com/parl-lang/parlc/internal/errors"
	"github.com/parl-lang/parlc/internal/lexer"
	"github.com/parl-lang/parlc/internal/types"
)

// ErrorKind is the closed set of semantic error shapes from the
// specification's error taxonomy.
type ErrorKind int

const (
	UndefinedVariable ErrorKind = iota
	UndefinedFunction
	AlreadyDefinedVariable
	AlreadyDefinedFunction
	InvalidOperation
	TypeMismatch
	TypeMismatchUnion
	FunctionReturnTypeMismatch
	FunctionCallNoParams
	InvalidCast
)

// SemanticError is the semantic analyzer's sole error type. The analyzer
// fails fast: Analyze returns the first one it builds.
type SemanticError struct {
	Kind     ErrorKind
	Token    lexer.Token
	Context  string
	Found    types.Type
	Expected types.Type
	ExpectedSet []types.Type
	Op       string
}

func (e *SemanticError) Error() string {
	switch e.Kind {
	case UndefinedVariable:
		return fmt.Sprintf("undefined variable %q", e.Token.Span.Lexeme)
	case UndefinedFunction:
		return fmt.Sprintf("undefined function %q", e.Token.Span.Lexeme)
	case AlreadyDefinedVariable:
		return fmt.Sprintf("variable %q already defined in this scope", e.Token.Span.Lexeme)
	case AlreadyDefinedFunction:
		return fmt.Sprintf("function %q already defined in this scope", e.Token.Span.Lexeme)
	case InvalidOperation:
		return fmt.Sprintf("invalid operation %q on type %s", e.Op, e.Found)
	case TypeMismatch:
		return fmt.Sprintf("%s: expected %s, found %s", e.Context, e.Expected, e.Found)
	case TypeMismatchUnion:
		return fmt.Sprintf("%s: expected one of %v, found %s", e.Context, e.ExpectedSet, e.Found)
	case FunctionReturnTypeMismatch:
		return fmt.Sprintf("function %q: return type mismatch: expected %s, found %s", e.Token.Span.Lexeme, e.Expected, e.Found)
	case FunctionCallNoParams:
		return fmt.Sprintf("function %q called with wrong number of arguments", e.Token.Span.Lexeme)
	case InvalidCast:
		return fmt.Sprintf("invalid cast from %s to %s", e.Found, e.Expected)
	default:
		return "semantic error"
	}
}

// ToCompilerError renders the SemanticError through the shared diagnostic
// formatter.
func (e *SemanticError) ToCompilerError(source, file string) *errors.CompilerError {
	return errors.NewCompilerError(e.Token.Span, e.Error(), source, file)
}
