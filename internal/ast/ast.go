// Package ast defines PArL's closed abstract syntax tree and its
// double-dispatch Visitor contract.
//
// Exhaustiveness is enforced at compile time: Visitor declares one method
// per AstNode variant, so a Visitor implementation that misses a variant
// fails to satisfy the interface and the package does not build. Adding a
// new AstNode variant means adding its Visit method to Visitor, which in
// turn breaks every existing implementation until it is updated too.
package ast

import "github.com/parl-lang/parlc/internal/lexer"

// Node is any AST element. Trees are exclusively owned: a child belongs to
// exactly one parent and there is no sharing and no back-edges.
type Node interface {
	// Accept dispatches to the single Visitor method matching this node's
	// concrete type.
	Accept(v Visitor) (any, error)
}

// Visitor is implemented once per AST pass (semantic analysis, printing,
// code generation, tree dumping). Each method receives the concrete node
// type it handles. The any return value carries whatever the pass needs
// to report upward (e.g. the semantic analyzer returns a types.Type).
type Visitor interface {
	VisitProgram(*Program) (any, error)
	VisitBlock(*Block) (any, error)
	VisitVarDec(*VarDec) (any, error)
	VisitAssignment(*Assignment) (any, error)
	VisitFunctionDecl(*FunctionDecl) (any, error)
	VisitFormalParam(*FormalParam) (any, error)
	VisitFunctionCall(*FunctionCall) (any, error)
	VisitIf(*If) (any, error)
	VisitFor(*For) (any, error)
	VisitWhile(*While) (any, error)
	VisitReturn(*Return) (any, error)
	VisitPrint(*Print) (any, error)
	VisitDelay(*Delay) (any, error)
	VisitPadClear(*PadClear) (any, error)
	VisitPadWrite(*PadWrite) (any, error)
	VisitPadWriteBox(*PadWriteBox) (any, error)
	VisitPadRead(*PadRead) (any, error)
	VisitPadRandI(*PadRandI) (any, error)
	VisitPadWidth(*PadWidth) (any, error)
	VisitPadHeight(*PadHeight) (any, error)
	VisitExpression(*Expression) (any, error)
	VisitBinOp(*BinOp) (any, error)
	VisitUnaryOp(*UnaryOp) (any, error)
	VisitIdentifier(*Identifier) (any, error)
	VisitIntLiteral(*IntLiteral) (any, error)
	VisitFloatLiteral(*FloatLiteral) (any, error)
	VisitBoolLiteral(*BoolLiteral) (any, error)
	VisitColourLiteral(*ColourLiteral) (any, error)
	VisitEndOfFile(*EndOfFile) (any, error)
}

// Program is always the parser's root node.
type Program struct {
	Statements []Node
}

func (n *Program) Accept(v Visitor) (any, error) { return v.VisitProgram(n) }

// Block is a braced statement sequence. Entering it pushes a new
// symbol-table scope, except for a FunctionDecl's body, which reuses the
// parameter scope (see FunctionDecl).
type Block struct {
	Statements []Node
}

func (n *Block) Accept(v Visitor) (any, error) { return v.VisitBlock(n) }

// VarDec declares a new variable in the current scope.
type VarDec struct {
	Identifier lexer.Token
	Type       lexer.Token
	Expression Node
}

func (n *VarDec) Accept(v Visitor) (any, error) { return v.VisitVarDec(n) }

// Assignment stores the value of Expression into the variable Identifier.
type Assignment struct {
	Identifier lexer.Token
	Expression Node
}

func (n *Assignment) Accept(v Visitor) (any, error) { return v.VisitAssignment(n) }

// FormalParam is one parameter of a FunctionDecl's signature.
type FormalParam struct {
	Identifier lexer.Token
	ParamType  lexer.Token
}

func (n *FormalParam) Accept(v Visitor) (any, error) { return v.VisitFormalParam(n) }

// FunctionDecl declares a function: its signature is added to the
// enclosing scope (supporting recursive self-reference); Block reuses the
// scope FunctionDecl pushes for its parameters rather than pushing a
// second one.
type FunctionDecl struct {
	Identifier lexer.Token
	Params     []*FormalParam
	ReturnType lexer.Token
	Block      *Block
}

func (n *FunctionDecl) Accept(v Visitor) (any, error) { return v.VisitFunctionDecl(n) }

// FunctionCall invokes a previously declared function.
type FunctionCall struct {
	Identifier lexer.Token
	Args       []Node
}

func (n *FunctionCall) Accept(v Visitor) (any, error) { return v.VisitFunctionCall(n) }

// If is a conditional statement; IfFalse is nil when there is no else block.
type If struct {
	Condition Node
	IfTrue    *Block
	IfFalse   *Block
}

func (n *If) Accept(v Visitor) (any, error) { return v.VisitIf(n) }

// For is a C-style loop; Initializer and Increment are nil when omitted.
type For struct {
	Initializer *VarDec
	Condition   Node
	Increment   *Assignment
	Body        *Block
}

func (n *For) Accept(v Visitor) (any, error) { return v.VisitFor(n) }

// While is a condition-first loop.
type While struct {
	Condition Node
	Body      *Block
}

func (n *While) Accept(v Visitor) (any, error) { return v.VisitWhile(n) }

// Return yields Expression's value from the enclosing function.
type Return struct {
	Expression Node
}

func (n *Return) Accept(v Visitor) (any, error) { return v.VisitReturn(n) }

// Print is the `__print` pad statement.
type Print struct {
	Expression Node
}

func (n *Print) Accept(v Visitor) (any, error) { return v.VisitPrint(n) }

// Delay is the `__delay` pad statement.
type Delay struct {
	Expression Node
}

func (n *Delay) Accept(v Visitor) (any, error) { return v.VisitDelay(n) }

// PadClear is the `__clear` pad statement.
type PadClear struct {
	Expr Node
}

func (n *PadClear) Accept(v Visitor) (any, error) { return v.VisitPadClear(n) }

// PadWrite is the `__write` pad statement: writes Colour at (LocX, LocY).
type PadWrite struct {
	LocX   Node
	LocY   Node
	Colour Node
}

func (n *PadWrite) Accept(v Visitor) (any, error) { return v.VisitPadWrite(n) }

// PadWriteBox is the `__write_box` pad statement.
type PadWriteBox struct {
	LocX   Node
	LocY   Node
	Width  Node
	Height Node
	Colour Node
}

func (n *PadWriteBox) Accept(v Visitor) (any, error) { return v.VisitPadWriteBox(n) }

// PadRead is the `__read` pad expression, yielding Int.
type PadRead struct {
	First  Node
	Second Node
}

func (n *PadRead) Accept(v Visitor) (any, error) { return v.VisitPadRead(n) }

// PadRandI is the `__randi` pad expression, yielding Int.
type PadRandI struct {
	UpperBound Node
}

func (n *PadRandI) Accept(v Visitor) (any, error) { return v.VisitPadRandI(n) }

// PadWidth is the nullary `__width` pad expression.
type PadWidth struct{}

func (n *PadWidth) Accept(v Visitor) (any, error) { return v.VisitPadWidth(n) }

// PadHeight is the nullary `__height` pad expression.
type PadHeight struct{}

func (n *PadHeight) Accept(v Visitor) (any, error) { return v.VisitPadHeight(n) }

// Expression wraps the logicalOr cascade with an optional trailing `as`
// cast; CastedType is nil when no cast was written.
type Expression struct {
	CastedType *lexer.Token
	Expr       Node
}

func (n *Expression) Accept(v Visitor) (any, error) { return v.VisitExpression(n) }

// BinOp is a left-associative binary operation.
type BinOp struct {
	Left     Node
	Operator lexer.Token
	Right    Node
}

func (n *BinOp) Accept(v Visitor) (any, error) { return v.VisitBinOp(n) }

// UnaryOp is a prefix unary operation (`-` or `not`).
type UnaryOp struct {
	Operator lexer.Token
	Expr     Node
}

func (n *UnaryOp) Accept(v Visitor) (any, error) { return v.VisitUnaryOp(n) }

// Identifier is a reference to a previously declared variable.
type Identifier struct {
	Token lexer.Token
}

func (n *Identifier) Accept(v Visitor) (any, error) { return v.VisitIdentifier(n) }

// IntLiteral is a literal integer value.
type IntLiteral struct {
	Token lexer.Token
}

func (n *IntLiteral) Accept(v Visitor) (any, error) { return v.VisitIntLiteral(n) }

// FloatLiteral is a literal floating-point value.
type FloatLiteral struct {
	Token lexer.Token
}

func (n *FloatLiteral) Accept(v Visitor) (any, error) { return v.VisitFloatLiteral(n) }

// BoolLiteral is a literal `true`/`false` value.
type BoolLiteral struct {
	Token lexer.Token
}

func (n *BoolLiteral) Accept(v Visitor) (any, error) { return v.VisitBoolLiteral(n) }

// ColourLiteral is a literal `#RRGGBB` value.
type ColourLiteral struct {
	Token lexer.Token
}

func (n *ColourLiteral) Accept(v Visitor) (any, error) { return v.VisitColourLiteral(n) }

// EndOfFile never appears as a child of a well-formed, parser-produced AST;
// it exists so the Visitor contract stays total over the token stream's
// sentinel without special-casing it outside the AST.
type EndOfFile struct{}

func (n *EndOfFile) Accept(v Visitor) (any, error) { return v.VisitEndOfFile(n) }
