// Package astdump renders an AST as an indented tree, used by the
// `parse` command to show the parser's raw output.
package astdump

import (
	"fmt"
	"strings"

	"github.com/parl-lang/parlc/internal/ast"
)

// Dumper walks an AST and accumulates an indented, human-readable tree.
type Dumper struct {
	buf   strings.Builder
	depth int
}

var _ ast.Visitor = (*Dumper)(nil)

// Dump renders prog as an indented tree, one node per line.
func Dump(prog *ast.Program) (string, error) {
	d := &Dumper{}
	if _, err := prog.Accept(d); err != nil {
		return "", err
	}
	return d.buf.String(), nil
}

func (d *Dumper) line(format string, args ...any) {
	d.buf.WriteString(strings.Repeat("  ", d.depth))
	fmt.Fprintf(&d.buf, format, args...)
	d.buf.WriteByte('\n')
}

func (d *Dumper) child(n ast.Node) error {
	if n == nil {
		return nil
	}
	d.depth++
	_, err := n.Accept(d)
	d.depth--
	return err
}

func (d *Dumper) VisitProgram(n *ast.Program) (any, error) {
	d.line("Program")
	d.depth++
	for _, stmt := range n.Statements {
		if _, err := stmt.Accept(d); err != nil {
			return nil, err
		}
	}
	d.depth--
	return nil, nil
}

func (d *Dumper) VisitBlock(n *ast.Block) (any, error) {
	d.line("Block")
	d.depth++
	for _, stmt := range n.Statements {
		if _, err := stmt.Accept(d); err != nil {
			return nil, err
		}
	}
	d.depth--
	return nil, nil
}

func (d *Dumper) VisitVarDec(n *ast.VarDec) (any, error) {
	d.line("VarDec %s: %s", n.Identifier.Span.Lexeme, n.Type.Span.Lexeme)
	return nil, d.child(n.Expression)
}

func (d *Dumper) VisitAssignment(n *ast.Assignment) (any, error) {
	d.line("Assignment %s", n.Identifier.Span.Lexeme)
	return nil, d.child(n.Expression)
}

func (d *Dumper) VisitFormalParam(n *ast.FormalParam) (any, error) {
	d.line("FormalParam %s: %s", n.Identifier.Span.Lexeme, n.ParamType.Span.Lexeme)
	return nil, nil
}

func (d *Dumper) VisitFunctionDecl(n *ast.FunctionDecl) (any, error) {
	d.line("FunctionDecl %s -> %s", n.Identifier.Span.Lexeme, n.ReturnType.Span.Lexeme)
	d.depth++
	for _, param := range n.Params {
		if _, err := param.Accept(d); err != nil {
			return nil, err
		}
	}
	d.depth--
	return nil, d.child(n.Block)
}

func (d *Dumper) VisitFunctionCall(n *ast.FunctionCall) (any, error) {
	d.line("FunctionCall %s", n.Identifier.Span.Lexeme)
	d.depth++
	for _, arg := range n.Args {
		if _, err := arg.Accept(d); err != nil {
			return nil, err
		}
	}
	d.depth--
	return nil, nil
}

func (d *Dumper) VisitIf(n *ast.If) (any, error) {
	d.line("If")
	if err := d.child(n.Condition); err != nil {
		return nil, err
	}
	if err := d.child(n.IfTrue); err != nil {
		return nil, err
	}
	if n.IfFalse != nil {
		if err := d.child(n.IfFalse); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (d *Dumper) VisitFor(n *ast.For) (any, error) {
	d.line("For")
	if n.Initializer != nil {
		if err := d.child(n.Initializer); err != nil {
			return nil, err
		}
	}
	if err := d.child(n.Condition); err != nil {
		return nil, err
	}
	if n.Increment != nil {
		if err := d.child(n.Increment); err != nil {
			return nil, err
		}
	}
	return nil, d.child(n.Body)
}

func (d *Dumper) VisitWhile(n *ast.While) (any, error) {
	d.line("While")
	if err := d.child(n.Condition); err != nil {
		return nil, err
	}
	return nil, d.child(n.Body)
}

func (d *Dumper) VisitReturn(n *ast.Return) (any, error) {
	d.line("Return")
	return nil, d.child(n.Expression)
}

func (d *Dumper) VisitPrint(n *ast.Print) (any, error) {
	d.line("Print")
	return nil, d.child(n.Expression)
}

func (d *Dumper) VisitDelay(n *ast.Delay) (any, error) {
	d.line("Delay")
	return nil, d.child(n.Expression)
}

func (d *Dumper) VisitPadClear(n *ast.PadClear) (any, error) {
	d.line("PadClear")
	return nil, d.child(n.Expr)
}

func (d *Dumper) VisitPadWrite(n *ast.PadWrite) (any, error) {
	d.line("PadWrite")
	for _, e := range []ast.Node{n.LocX, n.LocY, n.Colour} {
		if err := d.child(e); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (d *Dumper) VisitPadWriteBox(n *ast.PadWriteBox) (any, error) {
	d.line("PadWriteBox")
	for _, e := range []ast.Node{n.LocX, n.LocY, n.Width, n.Height, n.Colour} {
		if err := d.child(e); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (d *Dumper) VisitPadRead(n *ast.PadRead) (any, error) {
	d.line("PadRead")
	if err := d.child(n.First); err != nil {
		return nil, err
	}
	return nil, d.child(n.Second)
}

func (d *Dumper) VisitPadRandI(n *ast.PadRandI) (any, error) {
	d.line("PadRandI")
	return nil, d.child(n.UpperBound)
}

func (d *Dumper) VisitPadWidth(n *ast.PadWidth) (any, error) {
	d.line("PadWidth")
	return nil, nil
}

func (d *Dumper) VisitPadHeight(n *ast.PadHeight) (any, error) {
	d.line("PadHeight")
	return nil, nil
}

func (d *Dumper) VisitExpression(n *ast.Expression) (any, error) {
	if n.CastedType != nil {
		d.line("Expression as %s", n.CastedType.Span.Lexeme)
	} else {
		d.line("Expression")
	}
	return nil, d.child(n.Expr)
}

func (d *Dumper) VisitBinOp(n *ast.BinOp) (any, error) {
	d.line("BinOp %s", n.Operator.Span.Lexeme)
	if err := d.child(n.Left); err != nil {
		return nil, err
	}
	return nil, d.child(n.Right)
}

func (d *Dumper) VisitUnaryOp(n *ast.UnaryOp) (any, error) {
	d.line("UnaryOp %s", n.Operator.Span.Lexeme)
	return nil, d.child(n.Expr)
}

func (d *Dumper) VisitIdentifier(n *ast.Identifier) (any, error) {
	d.line("Identifier %s", n.Token.Span.Lexeme)
	return nil, nil
}

func (d *Dumper) VisitIntLiteral(n *ast.IntLiteral) (any, error) {
	d.line("IntLiteral %s", n.Token.Span.Lexeme)
	return nil, nil
}

func (d *Dumper) VisitFloatLiteral(n *ast.FloatLiteral) (any, error) {
	d.line("FloatLiteral %s", n.Token.Span.Lexeme)
	return nil, nil
}

func (d *Dumper) VisitBoolLiteral(n *ast.BoolLiteral) (any, error) {
	d.line("BoolLiteral %s", n.Token.Span.Lexeme)
	return nil, nil
}

func (d *Dumper) VisitColourLiteral(n *ast.ColourLiteral) (any, error) {
	d.line("ColourLiteral %s", n.Token.Span.Lexeme)
	return nil, nil
}

func (d *Dumper) VisitEndOfFile(n *ast.EndOfFile) (any, error) {
	d.line("EndOfFile")
	return nil, nil
}
