package codegen

import (
	"strconv"

	"github.com/parl-lang/parlc/internal/ast"
	"github.com/parl-lang/parlc/internal/lexer"
)

// VisitExpression lowers the optional `as T` cast as a compile-time
// no-op: every PArL runtime type (Int, Float, Bool, Colour) shares the
// same numeric stack representation, so a cast changes how later code
// interprets the value, never the bits themselves.
func (g *Generator) VisitExpression(n *ast.Expression) (any, error) {
	return n.Expr.Accept(g)
}

func (g *Generator) VisitBinOp(n *ast.BinOp) (any, error) {
	switch n.Operator.Kind {
	case lexer.AND:
		return nil, g.emitShortCircuitAnd(n)
	case lexer.OR:
		return nil, g.emitShortCircuitOr(n)
	}

	if _, err := n.Left.Accept(g); err != nil {
		return nil, err
	}
	if _, err := n.Right.Accept(g); err != nil {
		return nil, err
	}
	g.emit(binOpMnemonic(n.Operator.Kind))
	return nil, nil
}

func binOpMnemonic(op lexer.TokenKind) string {
	switch op {
	case lexer.PLUS:
		return "add"
	case lexer.MINUS:
		return "sub"
	case lexer.STAR:
		return "mul"
	case lexer.SLASH:
		return "div"
	case lexer.EQ_EQ:
		return "eq"
	case lexer.NOT_EQ:
		return "neq"
	case lexer.LT:
		return "lt"
	case lexer.LT_EQ:
		return "le"
	case lexer.GT:
		return "gt"
	case lexer.GT_EQ:
		return "ge"
	}
	return "nop"
}

// emitShortCircuitAnd lowers `left and right` to: if left is false, skip
// right entirely and the result is false; otherwise the result is right.
func (g *Generator) emitShortCircuitAnd(n *ast.BinOp) error {
	if _, err := n.Left.Accept(g); err != nil {
		return err
	}
	falseJump := g.emit("cjmp2", "0")
	if _, err := n.Right.Accept(g); err != nil {
		return err
	}
	endJump := g.emit("jmp", "0")
	g.patchTarget(falseJump, g.here())
	g.emit("push", "0")
	g.patchTarget(endJump, g.here())
	return nil
}

// emitShortCircuitOr lowers `left or right`: if left is true, skip right
// and the result is true; otherwise the result is right.
func (g *Generator) emitShortCircuitOr(n *ast.BinOp) error {
	if _, err := n.Left.Accept(g); err != nil {
		return err
	}
	trueJump := g.emit("cjmp", "0")
	if _, err := n.Right.Accept(g); err != nil {
		return err
	}
	endJump := g.emit("jmp", "0")
	g.patchTarget(trueJump, g.here())
	g.emit("push", "1")
	g.patchTarget(endJump, g.here())
	return nil
}

// VisitUnaryOp lowers `-x` as `0 - x`, since the minimum instruction
// vocabulary has no dedicated negate opcode; `not x` maps directly.
func (g *Generator) VisitUnaryOp(n *ast.UnaryOp) (any, error) {
	if n.Operator.Kind == lexer.NOT {
		if _, err := n.Expr.Accept(g); err != nil {
			return nil, err
		}
		g.emit("not")
		return nil, nil
	}
	g.emit("push", "0")
	if _, err := n.Expr.Accept(g); err != nil {
		return nil, err
	}
	g.emit("sub")
	return nil, nil
}

func (g *Generator) VisitIntLiteral(n *ast.IntLiteral) (any, error) {
	g.emit("push", n.Token.Span.Lexeme)
	return nil, nil
}

func (g *Generator) VisitFloatLiteral(n *ast.FloatLiteral) (any, error) {
	g.emit("push", n.Token.Span.Lexeme)
	return nil, nil
}

func (g *Generator) VisitBoolLiteral(n *ast.BoolLiteral) (any, error) {
	if n.Token.Span.Lexeme == "true" {
		g.emit("push", "1")
	} else {
		g.emit("push", "0")
	}
	return nil, nil
}

// VisitColourLiteral renders a `#RRGGBB` literal as its decimal integer
// value, matching the representation Colour→Int casts and comparisons
// use at runtime.
func (g *Generator) VisitColourLiteral(n *ast.ColourLiteral) (any, error) {
	value, err := strconv.ParseInt(n.Token.Span.Lexeme[1:], 16, 32)
	if err != nil {
		value = 0
	}
	g.emit("push", strconv.FormatInt(value, 10))
	return nil, nil
}

// VisitEndOfFile never occurs in a parser-produced tree; implemented only
// to satisfy ast.Visitor.
func (g *Generator) VisitEndOfFile(n *ast.EndOfFile) (any, error) {
	return nil, nil
}
