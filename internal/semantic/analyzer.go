package semantic

import (
	"fmt"

	"github.com/parl-lang/parlc/internal/ast"
	"github.com/parl-lang/parlc/internal/lexer"
	"github.com/parl-lang/parlc/internal/types"
)

// Analyzer fuses scope resolution and type checking into one visitor pass,
// as permitted by the specification ("An implementation may fuse them into
// one pass; contracts are the same").
type Analyzer struct {
	scopes         scopeStack
	funcBoundaries []int
	warnings       []string
}

var _ ast.Visitor = (*Analyzer)(nil)

// NewAnalyzer creates an Analyzer ready to run once over a Program.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Result carries the non-fatal diagnostics produced by a successful
// Analyze call. No rule in this specification currently emits a warning,
// but the channel exists so one can be added without changing Analyze's
// signature.
type Result struct {
	Warnings []string
}

// Analyze runs the fused pass over prog, returning the first semantic
// error encountered, if any.
func (a *Analyzer) Analyze(prog *ast.Program) (*Result, error) {
	if _, err := prog.Accept(a); err != nil {
		return nil, err
	}
	return &Result{Warnings: a.warnings}, nil
}

// currentBoundary returns the scope-stack index a lookup must not go below,
// or -1 if there is no restriction (not currently inside a function body).
func (a *Analyzer) currentBoundary() int {
	if len(a.funcBoundaries) == 0 {
		return -1
	}
	return a.funcBoundaries[len(a.funcBoundaries)-1]
}

// exprType evaluates n and asserts its result is a types.Type, which every
// expression-producing Visit method returns.
func (a *Analyzer) exprType(n ast.Node) (types.Type, error) {
	v, err := n.Accept(a)
	if err != nil {
		return types.Void, err
	}
	t, _ := v.(types.Type)
	return t, nil
}

// visitStatements visits stmts in order and reports the block's return
// type: the type of the first Return statement directly in stmts, or of
// the first nested If or Block that yields a non-Void return type, or Void
// if none appears.
func (a *Analyzer) visitStatements(stmts []ast.Node) (types.Type, error) {
	blockType := types.Void
	found := false
	for _, stmt := range stmts {
		v, err := stmt.Accept(a)
		if err != nil {
			return types.Void, err
		}
		if !found {
			switch stmt.(type) {
			case *ast.Return, *ast.If, *ast.Block:
				if t, ok := v.(types.Type); ok && t != types.Void {
					blockType = t
					found = true
				}
			}
		}
	}
	return blockType, nil
}

func (a *Analyzer) VisitProgram(n *ast.Program) (any, error) {
	a.scopes.push()
	defer a.scopes.pop()
	if _, err := a.visitStatements(n.Statements); err != nil {
		return nil, err
	}
	return types.Void, nil
}

func (a *Analyzer) VisitBlock(n *ast.Block) (any, error) {
	a.scopes.push()
	defer a.scopes.pop()
	t, err := a.visitStatements(n.Statements)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (a *Analyzer) VisitVarDec(n *ast.VarDec) (any, error) {
	exprType, err := a.exprType(n.Expression)
	if err != nil {
		return nil, err
	}
	declaredType, _ := types.FromTypeName(n.Type.Span.Lexeme)
	if exprType != declaredType {
		return nil, &SemanticError{
			Kind: TypeMismatch, Token: n.Identifier,
			Context: n.Identifier.Span.Lexeme, Expected: declaredType, Found: exprType,
		}
	}
	name := n.Identifier.Span.Lexeme
	if _, exists := a.scopes.top().Lookup(name); exists {
		return nil, &SemanticError{Kind: AlreadyDefinedVariable, Token: n.Identifier}
	}
	a.scopes.top().Define(&Symbol{Lexeme: name, Kind: VariableSymbol, VarType: declaredType})
	return types.Void, nil
}

func (a *Analyzer) VisitAssignment(n *ast.Assignment) (any, error) {
	name := n.Identifier.Span.Lexeme
	sym, ok := a.scopes.lookup(name, a.currentBoundary())
	if !ok || sym.Kind != VariableSymbol {
		return nil, &SemanticError{Kind: UndefinedVariable, Token: n.Identifier}
	}
	exprType, err := a.exprType(n.Expression)
	if err != nil {
		return nil, err
	}
	if exprType != sym.VarType {
		return nil, &SemanticError{
			Kind: TypeMismatch, Token: n.Identifier,
			Context: name, Expected: sym.VarType, Found: exprType,
		}
	}
	return sym.VarType, nil
}

func (a *Analyzer) VisitFormalParam(n *ast.FormalParam) (any, error) {
	name := n.Identifier.Span.Lexeme
	if _, exists := a.scopes.top().Lookup(name); exists {
		return nil, &SemanticError{Kind: AlreadyDefinedVariable, Token: n.Identifier}
	}
	t, _ := types.FromTypeName(n.ParamType.Span.Lexeme)
	a.scopes.top().Define(&Symbol{Lexeme: name, Kind: VariableSymbol, VarType: t})
	return t, nil
}

// VisitFunctionDecl adds the function's signature to the enclosing scope
// (supporting recursive self-reference), pushes the parameter scope, and
// visits the function body's statements directly — without going through
// Block.Accept — so the body reuses the parameter scope instead of pushing
// a second one.
func (a *Analyzer) VisitFunctionDecl(n *ast.FunctionDecl) (any, error) {
	name := n.Identifier.Span.Lexeme
	if _, exists := a.scopes.top().Lookup(name); exists {
		return nil, &SemanticError{Kind: AlreadyDefinedFunction, Token: n.Identifier}
	}
	returnType, _ := types.FromTypeName(n.ReturnType.Span.Lexeme)
	sig := types.Signature{ReturnType: returnType}
	for _, p := range n.Params {
		pt, _ := types.FromTypeName(p.ParamType.Span.Lexeme)
		sig.Params = append(sig.Params, types.Param{Name: p.Identifier.Span.Lexeme, Type: pt})
	}
	a.scopes.top().Define(&Symbol{Lexeme: name, Kind: FunctionSymbol, Signature: sig})

	a.scopes.push()
	a.funcBoundaries = append(a.funcBoundaries, a.scopes.depth()-1)
	defer func() {
		a.funcBoundaries = a.funcBoundaries[:len(a.funcBoundaries)-1]
		a.scopes.pop()
	}()

	for _, p := range n.Params {
		if _, err := p.Accept(a); err != nil {
			return nil, err
		}
	}

	blockType, err := a.visitStatements(n.Block.Statements)
	if err != nil {
		return nil, err
	}
	if blockType != returnType {
		return nil, &SemanticError{
			Kind: FunctionReturnTypeMismatch, Token: n.Identifier,
			Expected: returnType, Found: blockType,
		}
	}
	return types.Void, nil
}

func (a *Analyzer) VisitFunctionCall(n *ast.FunctionCall) (any, error) {
	name := n.Identifier.Span.Lexeme
	// Function names are never subject to the "no capture" peek-limit: a
	// function body may call any function visible from program scope.
	sym, ok := a.scopes.lookup(name, -1)
	if !ok || sym.Kind != FunctionSymbol {
		return nil, &SemanticError{Kind: UndefinedFunction, Token: n.Identifier}
	}
	if len(n.Args) != len(sym.Signature.Params) {
		return nil, &SemanticError{Kind: FunctionCallNoParams, Token: n.Identifier}
	}
	for i, argNode := range n.Args {
		argType, err := a.exprType(argNode)
		if err != nil {
			return nil, err
		}
		param := sym.Signature.Params[i]
		if argType != param.Type {
			return nil, &SemanticError{
				Kind: TypeMismatch, Token: n.Identifier,
				Context: fmt.Sprintf("argument %d of %q", i+1, name),
				Expected: param.Type, Found: argType,
			}
		}
	}
	return sym.Signature.ReturnType, nil
}

func (a *Analyzer) VisitIf(n *ast.If) (any, error) {
	condType, err := a.exprType(n.Condition)
	if err != nil {
		return nil, err
	}
	if condType != types.Bool {
		return nil, &SemanticError{
			Kind: TypeMismatch, Token: firstToken(n.Condition),
			Context: "if", Expected: types.Bool, Found: condType,
		}
	}
	trueType, err := a.exprType(n.IfTrue)
	if err != nil {
		return nil, err
	}
	if n.IfFalse == nil {
		return trueType, nil
	}
	falseType, err := a.exprType(n.IfFalse)
	if err != nil {
		return nil, err
	}
	if trueType != falseType {
		return nil, &SemanticError{
			Kind: TypeMismatch, Token: firstToken(n.Condition),
			Context: "if", Expected: falseType, Found: trueType,
		}
	}
	return trueType, nil
}

func (a *Analyzer) VisitFor(n *ast.For) (any, error) {
	a.scopes.push()
	defer a.scopes.pop()

	if n.Initializer != nil {
		if _, err := n.Initializer.Accept(a); err != nil {
			return nil, err
		}
	}
	condType, err := a.exprType(n.Condition)
	if err != nil {
		return nil, err
	}
	if condType != types.Bool {
		return nil, &SemanticError{
			Kind: TypeMismatch, Token: firstToken(n.Condition),
			Context: "for", Expected: types.Bool, Found: condType,
		}
	}
	if n.Increment != nil {
		if _, err := n.Increment.Accept(a); err != nil {
			return nil, err
		}
	}
	if _, err := n.Body.Accept(a); err != nil {
		return nil, err
	}
	return types.Void, nil
}

func (a *Analyzer) VisitWhile(n *ast.While) (any, error) {
	condType, err := a.exprType(n.Condition)
	if err != nil {
		return nil, err
	}
	if condType != types.Bool {
		return nil, &SemanticError{
			Kind: TypeMismatch, Token: firstToken(n.Condition),
			Context: "while", Expected: types.Bool, Found: condType,
		}
	}
	if _, err := n.Body.Accept(a); err != nil {
		return nil, err
	}
	return types.Void, nil
}

func (a *Analyzer) VisitReturn(n *ast.Return) (any, error) {
	return a.exprType(n.Expression)
}

func (a *Analyzer) VisitPrint(n *ast.Print) (any, error) {
	t, err := a.exprType(n.Expression)
	if err != nil {
		return nil, err
	}
	if t == types.Void {
		return nil, &SemanticError{
			Kind: TypeMismatchUnion, Token: firstToken(n.Expression),
			Context: "__print", ExpectedSet: []types.Type{types.Int, types.Float, types.Bool, types.Colour}, Found: t,
		}
	}
	return types.Void, nil
}

func (a *Analyzer) VisitDelay(n *ast.Delay) (any, error) {
	return types.Void, a.expectType(n.Expression, types.Int, "__delay")
}

func (a *Analyzer) VisitPadClear(n *ast.PadClear) (any, error) {
	return types.Void, a.expectType(n.Expr, types.Colour, "__clear")
}

func (a *Analyzer) VisitPadWrite(n *ast.PadWrite) (any, error) {
	if err := a.expectType(n.LocX, types.Int, "__write"); err != nil {
		return nil, err
	}
	if err := a.expectType(n.LocY, types.Int, "__write"); err != nil {
		return nil, err
	}
	if err := a.expectType(n.Colour, types.Colour, "__write"); err != nil {
		return nil, err
	}
	return types.Void, nil
}

func (a *Analyzer) VisitPadWriteBox(n *ast.PadWriteBox) (any, error) {
	for _, pair := range []struct {
		node     ast.Node
		expected types.Type
	}{
		{n.LocX, types.Int}, {n.LocY, types.Int},
		{n.Width, types.Int}, {n.Height, types.Int},
		{n.Colour, types.Colour},
	} {
		if err := a.expectType(pair.node, pair.expected, "__write_box"); err != nil {
			return nil, err
		}
	}
	return types.Void, nil
}

func (a *Analyzer) VisitPadRead(n *ast.PadRead) (any, error) {
	if err := a.expectType(n.First, types.Int, "__read"); err != nil {
		return nil, err
	}
	if err := a.expectType(n.Second, types.Int, "__read"); err != nil {
		return nil, err
	}
	return types.Int, nil
}

func (a *Analyzer) VisitPadRandI(n *ast.PadRandI) (any, error) {
	if err := a.expectType(n.UpperBound, types.Int, "__randi"); err != nil {
		return nil, err
	}
	return types.Int, nil
}

func (a *Analyzer) VisitPadWidth(n *ast.PadWidth) (any, error)   { return types.Int, nil }
func (a *Analyzer) VisitPadHeight(n *ast.PadHeight) (any, error) { return types.Int, nil }

// expectType type-checks node against exactly one expected type, reporting
// context as the operation name in any TypeMismatch.
func (a *Analyzer) expectType(node ast.Node, expected types.Type, context string) error {
	t, err := a.exprType(node)
	if err != nil {
		return err
	}
	if t != expected {
		return &SemanticError{
			Kind: TypeMismatch, Token: firstToken(node),
			Context: context, Expected: expected, Found: t,
		}
	}
	return nil
}

func (a *Analyzer) VisitExpression(n *ast.Expression) (any, error) {
	innerType, err := a.exprType(n.Expr)
	if err != nil {
		return nil, err
	}
	if n.CastedType == nil {
		return innerType, nil
	}
	targetType, _ := types.FromTypeName(n.CastedType.Span.Lexeme)
	if !castAllowed(innerType, targetType) {
		return nil, &SemanticError{
			Kind: InvalidCast, Token: *n.CastedType,
			Expected: targetType, Found: innerType,
		}
	}
	return targetType, nil
}

func (a *Analyzer) VisitBinOp(n *ast.BinOp) (any, error) {
	leftType, err := a.exprType(n.Left)
	if err != nil {
		return nil, err
	}
	rightType, err := a.exprType(n.Right)
	if err != nil {
		return nil, err
	}
	resultType, ok := binOpResult(n.Operator.Kind, leftType, rightType)
	if !ok {
		return nil, &SemanticError{
			Kind: InvalidOperation, Token: n.Operator,
			Op: n.Operator.Span.Lexeme, Found: leftType,
		}
	}
	return resultType, nil
}

func (a *Analyzer) VisitUnaryOp(n *ast.UnaryOp) (any, error) {
	t, err := a.exprType(n.Expr)
	if err != nil {
		return nil, err
	}
	resultType, ok := unaryOpResult(n.Operator.Kind, t)
	if !ok {
		return nil, &SemanticError{
			Kind: InvalidOperation, Token: n.Operator,
			Op: n.Operator.Span.Lexeme, Found: t,
		}
	}
	return resultType, nil
}

func (a *Analyzer) VisitIdentifier(n *ast.Identifier) (any, error) {
	name := n.Token.Span.Lexeme
	sym, ok := a.scopes.lookup(name, a.currentBoundary())
	if !ok || sym.Kind != VariableSymbol {
		return nil, &SemanticError{Kind: UndefinedVariable, Token: n.Token}
	}
	return sym.VarType, nil
}

func (a *Analyzer) VisitIntLiteral(n *ast.IntLiteral) (any, error)       { return types.Int, nil }
func (a *Analyzer) VisitFloatLiteral(n *ast.FloatLiteral) (any, error)   { return types.Float, nil }
func (a *Analyzer) VisitBoolLiteral(n *ast.BoolLiteral) (any, error)     { return types.Bool, nil }
func (a *Analyzer) VisitColourLiteral(n *ast.ColourLiteral) (any, error) { return types.Colour, nil }
func (a *Analyzer) VisitEndOfFile(n *ast.EndOfFile) (any, error)         { return types.Void, nil }

// firstToken recovers a representative token from a node for diagnostic
// positioning, for the few AST variants (If, For, While, pad operations)
// that have no token of their own.
func firstToken(n ast.Node) lexer.Token {
	switch v := n.(type) {
	case *ast.Expression:
		return firstToken(v.Expr)
	case *ast.BinOp:
		return firstToken(v.Left)
	case *ast.UnaryOp:
		return v.Operator
	case *ast.Identifier:
		return v.Token
	case *ast.IntLiteral:
		return v.Token
	case *ast.FloatLiteral:
		return v.Token
	case *ast.BoolLiteral:
		return v.Token
	case *ast.ColourLiteral:
		return v.Token
	case *ast.FunctionCall:
		return v.Identifier
	case *ast.PadRead:
		return firstToken(v.First)
	case *ast.PadRandI:
		return firstToken(v.UpperBound)
	}
	return lexer.Token{}
}
