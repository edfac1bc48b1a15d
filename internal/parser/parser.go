// Package parser implements PArL's hand-written recursive-descent parser:
// a single-token-lookahead cursor over a pre-lexed token stream, failing
// fast with the first error it meets.
package parser

import (
	"github.com/parl-lang/parlc/internal/ast"
	"github.com/parl-lang/parlc/internal/lexer"
)

// Parser walks a token stream and builds an ast.Program. A Parser is used
// once: create it, call Parse, discard it.
type Parser struct {
	tokens []lexer.Token
	pos    int
	file   string
}

// New creates a Parser over a complete token stream (including its
// trailing EOF token) produced by the lexer.
func New(tokens []lexer.Token, file string) *Parser {
	return &Parser{tokens: tokens, file: file}
}

func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.current().Kind == kind
}

func (p *Parser) checkAny(kinds ...lexer.TokenKind) bool {
	cur := p.current().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

// expect consumes the current token if it matches kind, otherwise returns
// an UnexpectedToken ParseError.
func (p *Parser) expect(kind lexer.TokenKind) (lexer.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return lexer.Token{}, &ParseError{
		Kind:     UnexpectedToken,
		Expected: []lexer.TokenKind{kind},
		Found:    p.current(),
		File:     p.file,
	}
}

func (p *Parser) expectType() (lexer.Token, error) {
	if p.current().Kind.IsType() {
		return p.advance(), nil
	}
	return lexer.Token{}, &ParseError{
		Kind:     UnexpectedTokenList,
		Expected: []lexer.TokenKind{lexer.TYPE_INT, lexer.TYPE_FLOAT, lexer.TYPE_BOOL, lexer.TYPE_COLOUR},
		Found:    p.current(),
		File:     p.file,
	}
}

// Parse consumes the whole token stream and returns the Program root, or
// the first ParseError encountered.
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.check(lexer.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

func (p *Parser) parseStatement() (ast.Node, error) {
	switch p.current().Kind {
	case lexer.LET:
		stmt, err := p.parseVarDec()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return stmt, nil

	case lexer.IDENT:
		stmt, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return stmt, nil

	case lexer.PAD_PRINT:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.Print{Expression: expr}, nil

	case lexer.PAD_DELAY:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.Delay{Expression: expr}, nil

	case lexer.PAD_CLEAR, lexer.PAD_WRITE, lexer.PAD_WRITE_BOX:
		stmt, err := p.parsePadStatement()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return stmt, nil

	case lexer.RETURN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.Return{Expression: expr}, nil

	case lexer.IF:
		return p.parseIf()
	case lexer.FOR:
		return p.parseFor()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FUN:
		return p.parseFunctionDecl()
	case lexer.LBRACE:
		return p.parseBlock()
	}

	return nil, &ParseError{
		Kind:  UnexpectedToken,
		Found: p.current(),
		File:  p.file,
	}
}

func (p *Parser) parseVarDec() (*ast.VarDec, error) {
	if _, err := p.expect(lexer.LET); err != nil {
		return nil, err
	}
	ident, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	typeTok, err := p.expectType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.VarDec{Identifier: ident, Type: typeTok, Expression: expr}, nil
}

func (p *Parser) parseAssignment() (*ast.Assignment, error) {
	ident, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Identifier: ident, Expression: expr}, nil
}

func (p *Parser) parseFunctionDecl() (*ast.FunctionDecl, error) {
	if _, err := p.expect(lexer.FUN); err != nil {
		return nil, err
	}
	ident, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var params []*ast.FormalParam
	if !p.check(lexer.RPAREN) {
		for {
			param, err := p.parseFormalParam()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.check(lexer.COMMA) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ARROW); err != nil {
		return nil, err
	}
	returnType, err := p.expectType()
	if err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{Identifier: ident, Params: params, ReturnType: returnType, Block: block}, nil
}

func (p *Parser) parseFormalParam() (*ast.FormalParam, error) {
	ident, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	typeTok, err := p.expectType()
	if err != nil {
		return nil, err
	}
	return &ast.FormalParam{Identifier: ident, ParamType: typeTok}, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	block := &ast.Block{}
	for !p.check(lexer.RBRACE) {
		if p.check(lexer.EOF) {
			return nil, &ParseError{Kind: UnclosedBlock, Found: p.current(), File: p.file}
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	p.advance() // consume '}'
	return block, nil
}

func (p *Parser) parseIf() (*ast.If, error) {
	p.advance() // 'if'
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	ifTrue, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node := &ast.If{Condition: cond, IfTrue: ifTrue}
	if p.check(lexer.ELSE) {
		p.advance()
		ifFalse, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		node.IfFalse = ifFalse
	}
	return node, nil
}

func (p *Parser) parseFor() (*ast.For, error) {
	p.advance() // 'for'
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var init *ast.VarDec
	if !p.check(lexer.SEMICOLON) {
		var err error
		init, err = p.parseVarDec()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	var incr *ast.Assignment
	if !p.check(lexer.RPAREN) {
		incr, err = p.parseAssignment()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.For{Initializer: init, Condition: cond, Increment: incr, Body: body}, nil
}

func (p *Parser) parseWhile() (*ast.While, error) {
	p.advance() // 'while'
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Condition: cond, Body: body}, nil
}

// parsePadStatement parses the statement-form pad operations: __clear,
// __write, __write_box.
func (p *Parser) parsePadStatement() (ast.Node, error) {
	switch p.current().Kind {
	case lexer.PAD_CLEAR:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.PadClear{Expr: expr}, nil

	case lexer.PAD_WRITE:
		p.advance()
		x, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COMMA); err != nil {
			return nil, err
		}
		y, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COMMA); err != nil {
			return nil, err
		}
		colour, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.PadWrite{LocX: x, LocY: y, Colour: colour}, nil

	case lexer.PAD_WRITE_BOX:
		p.advance()
		x, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COMMA); err != nil {
			return nil, err
		}
		y, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COMMA); err != nil {
			return nil, err
		}
		w, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COMMA); err != nil {
			return nil, err
		}
		h, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COMMA); err != nil {
			return nil, err
		}
		colour, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.PadWriteBox{LocX: x, LocY: y, Width: w, Height: h, Colour: colour}, nil
	}
	return nil, &ParseError{Kind: UnexpectedToken, Found: p.current(), File: p.file}
}
