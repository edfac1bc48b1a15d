package codegen

import (
	"fmt"
	"strconv"

	"github.com/parl-lang/parlc/internal/ast"
)

// pendingCall records a `call` instruction whose target address is filled
// in by resolveCalls once generation is done. Every call is recorded this
// way: function bodies are laid out after the top-level program, in source
// order, so a call can precede the body it targets.
type pendingCall struct {
	instrIndex int
	funcName   string
}

// Generator walks a semantically checked AST once and produces PArIR. It
// implements ast.Visitor so it slots into the same Accept dispatch the
// semantic analyzer uses; unlike the analyzer it never returns a useful
// `any` value, only emits.
type Generator struct {
	instructions []Instruction
	frames       frameStack
	funcBoundary []int
	funcLabels   map[string]int
	pendingCalls []pendingCall
}

var _ ast.Visitor = (*Generator)(nil)

// New creates a Generator ready to run once over a Program.
func New() *Generator {
	return &Generator{funcLabels: make(map[string]int)}
}

// Generate lowers prog to a finished PArIR Program.
func Generate(prog *ast.Program) (*Program, error) {
	g := New()
	if _, err := prog.Accept(g); err != nil {
		return nil, err
	}
	if err := g.resolveCalls(); err != nil {
		return nil, err
	}
	return &Program{Instructions: g.instructions}, nil
}

func (g *Generator) emit(mnemonic string, operands ...string) int {
	idx := len(g.instructions)
	g.instructions = append(g.instructions, Instruction{Mnemonic: mnemonic, Operands: operands})
	return idx
}

func (g *Generator) here() int {
	return len(g.instructions)
}

// patchTarget rewrites a previously emitted jump instruction's (single)
// target operand to address.
func (g *Generator) patchTarget(idx, address int) {
	instr := g.instructions[idx]
	instr.Operands[len(instr.Operands)-1] = strconv.Itoa(address)
	g.instructions[idx] = instr
}

// patchCallTarget rewrites a previously emitted `call` instruction's
// address operand (operand 0); operand 1 is the argument count and must
// be left untouched.
func (g *Generator) patchCallTarget(idx, address int) {
	instr := g.instructions[idx]
	instr.Operands[0] = strconv.Itoa(address)
	g.instructions[idx] = instr
}

func (g *Generator) resolveCalls() error {
	for _, pc := range g.pendingCalls {
		addr, ok := g.funcLabels[pc.funcName]
		if !ok {
			return fmt.Errorf("codegen: no label recorded for function %q", pc.funcName)
		}
		g.patchCallTarget(pc.instrIndex, addr)
	}
	return nil
}

func (g *Generator) currentBoundary() int {
	if len(g.funcBoundary) == 0 {
		return -1
	}
	return g.funcBoundary[len(g.funcBoundary)-1]
}

// countDecls counts the VarDec statements directly in stmts — the locals
// a scope's oframe/alloc must reserve room for — without descending into
// nested blocks, which reserve their own frames.
func countDecls(stmts []ast.Node) int {
	n := 0
	for _, s := range stmts {
		if _, ok := s.(*ast.VarDec); ok {
			n++
		}
	}
	return n
}

// VisitProgram lays out the top-level statements first (terminated by
// halt), then each function body in source order, per the program-level
// layout convention. The global frame uses `alloc`, a one-shot
// reservation with no matching close, distinguishing it from the
// oframe/cframe pairs that bracket every other nested scope.
func (g *Generator) VisitProgram(n *ast.Program) (any, error) {
	g.frames.push()
	g.emit("alloc", strconv.Itoa(countDecls(n.Statements)))

	var funcs []*ast.FunctionDecl
	for _, stmt := range n.Statements {
		if fn, ok := stmt.(*ast.FunctionDecl); ok {
			funcs = append(funcs, fn)
			continue
		}
		if _, err := stmt.Accept(g); err != nil {
			return nil, err
		}
	}
	g.emit("halt")

	for _, fn := range funcs {
		if _, err := fn.Accept(g); err != nil {
			return nil, err
		}
	}
	g.frames.pop()
	return nil, nil
}

// visitStatements emits stmts in order, declaring each VarDec into the
// current top frame as it is reached.
func (g *Generator) visitStatements(stmts []ast.Node) error {
	for _, stmt := range stmts {
		if _, err := stmt.Accept(g); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) VisitBlock(n *ast.Block) (any, error) {
	g.frames.push()
	g.emit("oframe", strconv.Itoa(countDecls(n.Statements)))
	if err := g.visitStatements(n.Statements); err != nil {
		return nil, err
	}
	g.emit("cframe")
	g.frames.pop()
	return nil, nil
}

func (g *Generator) VisitVarDec(n *ast.VarDec) (any, error) {
	if _, err := n.Expression.Accept(g); err != nil {
		return nil, err
	}
	slot := g.frames.top().declare(n.Identifier.Span.Lexeme)
	g.emit("st", "0", strconv.Itoa(slot))
	return nil, nil
}

func (g *Generator) VisitAssignment(n *ast.Assignment) (any, error) {
	if _, err := n.Expression.Accept(g); err != nil {
		return nil, err
	}
	delta, slot, _ := g.frames.resolve(n.Identifier.Span.Lexeme, g.currentBoundary())
	g.emit("st", strconv.Itoa(delta), strconv.Itoa(slot))
	return nil, nil
}

func (g *Generator) VisitFormalParam(n *ast.FormalParam) (any, error) {
	g.frames.top().declare(n.Identifier.Span.Lexeme)
	return nil, nil
}

// VisitFunctionDecl emits the function's body as a separate labeled
// block: label = the instruction index of its own oframe. Parameters
// arrive right-to-left on the stack (caller's responsibility) and are
// popped here in declaration order, per the calling convention.
func (g *Generator) VisitFunctionDecl(n *ast.FunctionDecl) (any, error) {
	label := g.here()
	g.funcLabels[n.Identifier.Span.Lexeme] = label

	g.frames.push()
	g.funcBoundary = append(g.funcBoundary, g.frames.depth()-1)
	g.emit("oframe", strconv.Itoa(len(n.Params)+countDecls(n.Block.Statements)))

	for _, p := range n.Params {
		if _, err := p.Accept(g); err != nil {
			return nil, err
		}
	}
	for i := range n.Params {
		g.emit("st", "0", strconv.Itoa(i))
	}

	if err := g.visitStatements(n.Block.Statements); err != nil {
		return nil, err
	}
	if len(g.instructions) == 0 || g.instructions[len(g.instructions)-1].Mnemonic != "ret" {
		g.emit("ret")
	}

	g.emit("cframe")
	g.funcBoundary = g.funcBoundary[:len(g.funcBoundary)-1]
	g.frames.pop()
	return nil, nil
}

// VisitFunctionCall emits `call <addr> <argc>`: operand 0 is the target
// address, patched once the callee's label is known; operand 1 is the
// fixed argument count and is never rewritten.
func (g *Generator) VisitFunctionCall(n *ast.FunctionCall) (any, error) {
	for i := len(n.Args) - 1; i >= 0; i-- {
		if _, err := n.Args[i].Accept(g); err != nil {
			return nil, err
		}
	}
	idx := g.emit("call", "0", strconv.Itoa(len(n.Args)))
	g.pendingCalls = append(g.pendingCalls, pendingCall{instrIndex: idx, funcName: n.Identifier.Span.Lexeme})
	return nil, nil
}

func (g *Generator) VisitIf(n *ast.If) (any, error) {
	if _, err := n.Condition.Accept(g); err != nil {
		return nil, err
	}
	elseJump := g.emit("cjmp2", "0")
	if _, err := n.IfTrue.Accept(g); err != nil {
		return nil, err
	}
	if n.IfFalse == nil {
		g.patchTarget(elseJump, g.here())
		return nil, nil
	}
	endJump := g.emit("jmp", "0")
	g.patchTarget(elseJump, g.here())
	if _, err := n.IfFalse.Accept(g); err != nil {
		return nil, err
	}
	g.patchTarget(endJump, g.here())
	return nil, nil
}

// VisitFor pushes its own scope for Initializer (per the same rule the
// semantic pass applies), independent of the nested Body Block's own
// scope.
func (g *Generator) VisitFor(n *ast.For) (any, error) {
	g.frames.push()
	n0 := 0
	if n.Initializer != nil {
		n0 = 1
	}
	g.emit("oframe", strconv.Itoa(n0))
	if n.Initializer != nil {
		if _, err := n.Initializer.Accept(g); err != nil {
			return nil, err
		}
	}

	loopStart := g.here()
	if _, err := n.Condition.Accept(g); err != nil {
		return nil, err
	}
	exitJump := g.emit("cjmp2", "0")

	if _, err := n.Body.Accept(g); err != nil {
		return nil, err
	}
	if n.Increment != nil {
		if _, err := n.Increment.Accept(g); err != nil {
			return nil, err
		}
	}
	g.emit("jmp", strconv.Itoa(loopStart))
	g.patchTarget(exitJump, g.here())

	g.emit("cframe")
	g.frames.pop()
	return nil, nil
}

func (g *Generator) VisitWhile(n *ast.While) (any, error) {
	loopStart := g.here()
	if _, err := n.Condition.Accept(g); err != nil {
		return nil, err
	}
	exitJump := g.emit("cjmp2", "0")
	if _, err := n.Body.Accept(g); err != nil {
		return nil, err
	}
	g.emit("jmp", strconv.Itoa(loopStart))
	g.patchTarget(exitJump, g.here())
	return nil, nil
}

func (g *Generator) VisitReturn(n *ast.Return) (any, error) {
	if _, err := n.Expression.Accept(g); err != nil {
		return nil, err
	}
	g.emit("ret")
	return nil, nil
}

func (g *Generator) VisitPrint(n *ast.Print) (any, error) {
	if _, err := n.Expression.Accept(g); err != nil {
		return nil, err
	}
	g.emit("print")
	return nil, nil
}

func (g *Generator) VisitDelay(n *ast.Delay) (any, error) {
	if _, err := n.Expression.Accept(g); err != nil {
		return nil, err
	}
	g.emit("delay")
	return nil, nil
}

func (g *Generator) VisitPadClear(n *ast.PadClear) (any, error) {
	if _, err := n.Expr.Accept(g); err != nil {
		return nil, err
	}
	g.emit("clear")
	return nil, nil
}

func (g *Generator) VisitPadWrite(n *ast.PadWrite) (any, error) {
	for _, e := range []ast.Node{n.LocX, n.LocY, n.Colour} {
		if _, err := e.Accept(g); err != nil {
			return nil, err
		}
	}
	g.emit("write")
	return nil, nil
}

func (g *Generator) VisitPadWriteBox(n *ast.PadWriteBox) (any, error) {
	for _, e := range []ast.Node{n.LocX, n.LocY, n.Width, n.Height, n.Colour} {
		if _, err := e.Accept(g); err != nil {
			return nil, err
		}
	}
	g.emit("writebox")
	return nil, nil
}

func (g *Generator) VisitPadRead(n *ast.PadRead) (any, error) {
	if _, err := n.First.Accept(g); err != nil {
		return nil, err
	}
	if _, err := n.Second.Accept(g); err != nil {
		return nil, err
	}
	g.emit("read")
	return nil, nil
}

func (g *Generator) VisitPadRandI(n *ast.PadRandI) (any, error) {
	if _, err := n.UpperBound.Accept(g); err != nil {
		return nil, err
	}
	g.emit("irnd")
	return nil, nil
}

func (g *Generator) VisitPadWidth(n *ast.PadWidth) (any, error) {
	g.emit("width")
	return nil, nil
}

func (g *Generator) VisitPadHeight(n *ast.PadHeight) (any, error) {
	g.emit("height")
	return nil, nil
}

func (g *Generator) VisitIdentifier(n *ast.Identifier) (any, error) {
	delta, slot, _ := g.frames.resolve(n.Token.Span.Lexeme, g.currentBoundary())
	g.emit("ld", strconv.Itoa(delta), strconv.Itoa(slot))
	return nil, nil
}
