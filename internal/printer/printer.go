// Package printer renders an AST back to PArL source in canonical form,
// used by the `fmt` command to rewrite a file's contents deterministically.
package printer

import (
	"strings"

	"github.com/parl-lang/parlc/internal/ast"
)

// Printer walks an AST and accumulates its canonical-form rendering.
// Indentation tracks block nesting the way the reference formatter's
// tab_level field does.
type Printer struct {
	buf      strings.Builder
	tabLevel int
}

var _ ast.Visitor = (*Printer)(nil)

// Print renders prog to its canonical PArL source text.
func Print(prog *ast.Program) (string, error) {
	p := &Printer{}
	if _, err := prog.Accept(p); err != nil {
		return "", err
	}
	return p.buf.String(), nil
}

func (p *Printer) indent() string {
	return strings.Repeat("  ", p.tabLevel)
}

func (p *Printer) write(s string) {
	p.buf.WriteString(s)
}

func (p *Printer) VisitProgram(n *ast.Program) (any, error) {
	for i, stmt := range n.Statements {
		if _, err := stmt.Accept(p); err != nil {
			return nil, err
		}
		if _, isAssign := stmt.(*ast.Assignment); isAssign {
			p.write(";")
		}
		if i < len(n.Statements)-1 {
			p.write("\n\n")
		}
	}
	return nil, nil
}

func (p *Printer) VisitBlock(n *ast.Block) (any, error) {
	p.write("\n" + p.indent() + "{\n")
	p.tabLevel++
	for _, stmt := range n.Statements {
		p.write(p.indent())
		if _, err := stmt.Accept(p); err != nil {
			return nil, err
		}
		if _, isAssign := stmt.(*ast.Assignment); isAssign {
			p.write(";\n")
		} else {
			p.write("\n")
		}
	}
	p.tabLevel--
	p.write(p.indent() + "}")
	return nil, nil
}

func (p *Printer) VisitVarDec(n *ast.VarDec) (any, error) {
	p.write("let " + n.Identifier.Span.Lexeme + ": " + n.Type.Span.Lexeme + " = ")
	if _, err := n.Expression.Accept(p); err != nil {
		return nil, err
	}
	p.write(";")
	return nil, nil
}

func (p *Printer) VisitAssignment(n *ast.Assignment) (any, error) {
	p.write(n.Identifier.Span.Lexeme + " = ")
	_, err := n.Expression.Accept(p)
	return nil, err
}

func (p *Printer) VisitFormalParam(n *ast.FormalParam) (any, error) {
	p.write(n.Identifier.Span.Lexeme + ": " + n.ParamType.Span.Lexeme)
	return nil, nil
}

func (p *Printer) VisitFunctionDecl(n *ast.FunctionDecl) (any, error) {
	p.write("fun " + n.Identifier.Span.Lexeme + "(")
	for i, param := range n.Params {
		if i > 0 {
			p.write(", ")
		}
		if _, err := param.Accept(p); err != nil {
			return nil, err
		}
	}
	p.write(") -> " + n.ReturnType.Span.Lexeme + " ")
	_, err := n.Block.Accept(p)
	return nil, err
}

func (p *Printer) VisitFunctionCall(n *ast.FunctionCall) (any, error) {
	p.write(n.Identifier.Span.Lexeme + "(")
	for i, arg := range n.Args {
		if i > 0 {
			p.write(", ")
		}
		if _, err := arg.Accept(p); err != nil {
			return nil, err
		}
	}
	p.write(")")
	return nil, nil
}

func (p *Printer) VisitIf(n *ast.If) (any, error) {
	p.write("if (")
	if _, err := n.Condition.Accept(p); err != nil {
		return nil, err
	}
	p.write(") ")
	if _, err := n.IfTrue.Accept(p); err != nil {
		return nil, err
	}
	if n.IfFalse != nil {
		p.write(" else ")
		if _, err := n.IfFalse.Accept(p); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (p *Printer) VisitFor(n *ast.For) (any, error) {
	p.write("for (")
	if n.Initializer != nil {
		p.write("let " + n.Initializer.Identifier.Span.Lexeme + ": " + n.Initializer.Type.Span.Lexeme + " = ")
		if _, err := n.Initializer.Expression.Accept(p); err != nil {
			return nil, err
		}
	}
	p.write("; ")
	if _, err := n.Condition.Accept(p); err != nil {
		return nil, err
	}
	p.write("; ")
	if n.Increment != nil {
		p.write(n.Increment.Identifier.Span.Lexeme + " = ")
		if _, err := n.Increment.Expression.Accept(p); err != nil {
			return nil, err
		}
	}
	p.write(") ")
	_, err := n.Body.Accept(p)
	return nil, err
}

func (p *Printer) VisitWhile(n *ast.While) (any, error) {
	p.write("while (")
	if _, err := n.Condition.Accept(p); err != nil {
		return nil, err
	}
	p.write(") ")
	_, err := n.Body.Accept(p)
	return nil, err
}

func (p *Printer) VisitReturn(n *ast.Return) (any, error) {
	p.write("return ")
	if _, err := n.Expression.Accept(p); err != nil {
		return nil, err
	}
	p.write(";")
	return nil, nil
}

func (p *Printer) VisitPrint(n *ast.Print) (any, error) {
	p.write("__print ")
	if _, err := n.Expression.Accept(p); err != nil {
		return nil, err
	}
	p.write(";")
	return nil, nil
}

func (p *Printer) VisitDelay(n *ast.Delay) (any, error) {
	p.write("__delay ")
	if _, err := n.Expression.Accept(p); err != nil {
		return nil, err
	}
	p.write(";")
	return nil, nil
}

func (p *Printer) VisitPadClear(n *ast.PadClear) (any, error) {
	p.write("__clear ")
	if _, err := n.Expr.Accept(p); err != nil {
		return nil, err
	}
	p.write(";")
	return nil, nil
}

func (p *Printer) VisitPadWrite(n *ast.PadWrite) (any, error) {
	p.write("__write ")
	return nil, p.writeCommaList(n.LocX, n.LocY, n.Colour)
}

func (p *Printer) VisitPadWriteBox(n *ast.PadWriteBox) (any, error) {
	p.write("__write_box ")
	return nil, p.writeCommaList(n.LocX, n.LocY, n.Width, n.Height, n.Colour)
}

func (p *Printer) writeCommaList(nodes ...ast.Node) error {
	for i, node := range nodes {
		if i > 0 {
			p.write(", ")
		}
		if _, err := node.Accept(p); err != nil {
			return err
		}
	}
	p.write(";")
	return nil
}

func (p *Printer) VisitPadRead(n *ast.PadRead) (any, error) {
	p.write("__read ")
	if _, err := n.First.Accept(p); err != nil {
		return nil, err
	}
	p.write(", ")
	_, err := n.Second.Accept(p)
	return nil, err
}

func (p *Printer) VisitPadRandI(n *ast.PadRandI) (any, error) {
	p.write("__randi ")
	_, err := n.UpperBound.Accept(p)
	return nil, err
}

func (p *Printer) VisitPadWidth(n *ast.PadWidth) (any, error) {
	p.write("__width")
	return nil, nil
}

func (p *Printer) VisitPadHeight(n *ast.PadHeight) (any, error) {
	p.write("__height")
	return nil, nil
}

func (p *Printer) VisitExpression(n *ast.Expression) (any, error) {
	if _, err := n.Expr.Accept(p); err != nil {
		return nil, err
	}
	if n.CastedType != nil {
		p.write(" as " + n.CastedType.Span.Lexeme)
	}
	return nil, nil
}

func (p *Printer) VisitBinOp(n *ast.BinOp) (any, error) {
	p.write("(")
	if _, err := n.Left.Accept(p); err != nil {
		return nil, err
	}
	p.write(") " + n.Operator.Span.Lexeme + " (")
	if _, err := n.Right.Accept(p); err != nil {
		return nil, err
	}
	p.write(")")
	return nil, nil
}

func (p *Printer) VisitUnaryOp(n *ast.UnaryOp) (any, error) {
	p.write(n.Operator.Span.Lexeme + " ")
	_, err := n.Expr.Accept(p)
	return nil, err
}

func (p *Printer) VisitIdentifier(n *ast.Identifier) (any, error) {
	p.write(n.Token.Span.Lexeme)
	return nil, nil
}

func (p *Printer) VisitIntLiteral(n *ast.IntLiteral) (any, error) {
	p.write(n.Token.Span.Lexeme)
	return nil, nil
}

func (p *Printer) VisitFloatLiteral(n *ast.FloatLiteral) (any, error) {
	p.write(n.Token.Span.Lexeme)
	return nil, nil
}

func (p *Printer) VisitBoolLiteral(n *ast.BoolLiteral) (any, error) {
	p.write(n.Token.Span.Lexeme)
	return nil, nil
}

func (p *Printer) VisitColourLiteral(n *ast.ColourLiteral) (any, error) {
	p.write(n.Token.Span.Lexeme)
	return nil, nil
}

func (p *Printer) VisitEndOfFile(n *ast.EndOfFile) (any, error) {
	return nil, nil
}
