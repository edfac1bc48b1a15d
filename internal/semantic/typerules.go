package semantic

import (
	"github.com/parl-lang/parlc/internal/lexer"
	"github.com/parl-lang/parlc/internal/types"
)

// binOpResult implements the binary operator table: operand types, and
// the result type for each accepted pair. Int+Float and Float+Int widen
// to Float for `+` only; every other arithmetic and comparison operator
// requires identical operand types.
func binOpResult(op lexer.TokenKind, left, right types.Type) (types.Type, bool) {
	switch op {
	case lexer.PLUS:
		switch {
		case left == types.Int && right == types.Int:
			return types.Int, true
		case left == types.Float && right == types.Float:
			return types.Float, true
		case left == types.Int && right == types.Float, left == types.Float && right == types.Int:
			return types.Float, true
		case left == types.Colour && right == types.Colour:
			return types.Colour, true
		}
		return types.Void, false

	case lexer.MINUS, lexer.STAR, lexer.SLASH:
		if left != right {
			return types.Void, false
		}
		switch left {
		case types.Int, types.Float, types.Colour:
			return left, true
		}
		return types.Void, false

	case lexer.EQ_EQ, lexer.NOT_EQ:
		if left != right {
			return types.Void, false
		}
		switch left {
		case types.Int, types.Float, types.Bool, types.Colour:
			return types.Bool, true
		}
		return types.Void, false

	case lexer.LT, lexer.LT_EQ, lexer.GT, lexer.GT_EQ:
		if left != right {
			return types.Void, false
		}
		switch left {
		case types.Int, types.Float, types.Colour:
			return types.Bool, true
		}
		return types.Void, false

	case lexer.AND, lexer.OR:
		if left == types.Bool && right == types.Bool {
			return types.Bool, true
		}
		return types.Void, false
	}
	return types.Void, false
}

// unaryOpResult implements the unary operator rules: `-` on Int|Float
// yields the same type, `not` on Bool yields Bool.
func unaryOpResult(op lexer.TokenKind, operand types.Type) (types.Type, bool) {
	switch op {
	case lexer.MINUS:
		if operand == types.Int || operand == types.Float {
			return operand, true
		}
	case lexer.NOT:
		if operand == types.Bool {
			return types.Bool, true
		}
	}
	return types.Void, false
}

// castAllowed implements the `as T` cast table: identity is always
// allowed; Int→Float, Colour→Int, Bool→Int, Bool→Float. All other casts
// are rejected.
func castAllowed(from, to types.Type) bool {
	if from == to {
		return true
	}
	switch {
	case from == types.Int && to == types.Float:
		return true
	case from == types.Colour && to == types.Int:
		return true
	case from == types.Bool && to == types.Int:
		return true
	case from == types.Bool && to == types.Float:
		return true
	}
	return false
}
