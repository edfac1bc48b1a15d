package parser

import (
	"github.com/parl-lang/parlc/internal/ast"
	"github.com/parl-lang/parlc/internal/lexer"
)

// parseExpression implements `expression := logicalOr ('as' TYPE)?`. The
// `as` cast binds looser than every binary operator and applies to the
// whole expression, so it is handled at the top of the cascade, not inside
// primary.
func (p *Parser) parseExpression() (*ast.Expression, error) {
	expr, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	node := &ast.Expression{Expr: expr}
	if p.check(lexer.AS) {
		p.advance()
		typeTok, err := p.expectType()
		if err != nil {
			return nil, err
		}
		node.CastedType = &typeTok
	}
	return node, nil
}

func (p *Parser) parseLogicalOr() (ast.Node, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.OR) {
		op := p.advance()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseLogicalAnd() (ast.Node, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.AND) {
		op := p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Node, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.checkAny(lexer.EQ_EQ, lexer.NOT_EQ) {
		op := p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseRelational() (ast.Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.checkAny(lexer.LT, lexer.LT_EQ, lexer.GT, lexer.GT_EQ) {
		op := p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ast.Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.checkAny(lexer.PLUS, lexer.MINUS) {
		op := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.checkAny(lexer.STAR, lexer.SLASH) {
		op := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Node, error) {
	if p.checkAny(lexer.MINUS, lexer.NOT) {
		op := p.advance()
		expr, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Operator: op, Expr: expr}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	switch p.current().Kind {
	case lexer.INT_LIT:
		return &ast.IntLiteral{Token: p.advance()}, nil
	case lexer.FLOAT_LIT:
		return &ast.FloatLiteral{Token: p.advance()}, nil
	case lexer.BOOL_LIT:
		return &ast.BoolLiteral{Token: p.advance()}, nil
	case lexer.COLOUR_LIT:
		return &ast.ColourLiteral{Token: p.advance()}, nil

	case lexer.IDENT:
		ident := p.advance()
		if p.check(lexer.LPAREN) {
			return p.parseFunctionCallArgs(ident)
		}
		return &ast.Identifier{Token: ident}, nil

	case lexer.LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	case lexer.PAD_WIDTH:
		p.advance()
		return &ast.PadWidth{}, nil

	case lexer.PAD_HEIGHT:
		p.advance()
		return &ast.PadHeight{}, nil

	case lexer.PAD_READ:
		p.advance()
		first, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COMMA); err != nil {
			return nil, err
		}
		second, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.PadRead{First: first, Second: second}, nil

	case lexer.PAD_RANDI:
		p.advance()
		upper, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.PadRandI{UpperBound: upper}, nil
	}

	return nil, &ParseError{Kind: UnexpectedToken, Found: p.current(), File: p.file}
}

func (p *Parser) parseFunctionCallArgs(ident lexer.Token) (*ast.FunctionCall, error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Node
	if !p.check(lexer.RPAREN) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.check(lexer.COMMA) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return &ast.FunctionCall{Identifier: ident, Args: args}, nil
}
