// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package parser

import (
	"strconv"
	"strings"

	"github.com/probechain/ila-lang/lang/ast"
	"github.com/probechain/ila-lang/lang/diag"
	"github.com/probechain/ila-lang/lang/token"
)

// binaryOps maps infix tokens to their operator.
var binaryOps = map[token.Type]ast.BinaryOp{
	token.ASSIGN: ast.OpAssign,
	token.AND:    ast.OpAnd,
	token.OR:     ast.OpOr,
	token.EQ:     ast.OpEq,
	token.NEQ:    ast.OpNeq,
	token.LT:     ast.OpLt,
	token.GT:     ast.OpGt,
	token.LTE:    ast.OpLe,
	token.GTE:    ast.OpGe,
	token.PLUS:   ast.OpAdd,
	token.MINUS:  ast.OpSub,
	token.STAR:   ast.OpMul,
	token.SLASH:  ast.OpDiv,
}

// prefixOps maps prefix tokens to their operator.
var prefixOps = map[token.Type]ast.UnaryOp{
	token.STAR:  ast.OpDeref,
	token.NOT:   ast.OpNot,
	token.MINUS: ast.OpNeg,
}

// parseExpr parses a full expression, starting at the loosest tier.
func (p *Parser) parseExpr() (ast.Expression, error) {
	return p.parseBinary(ast.PrecAssign)
}

// parseBinary implements precedence climbing. Every tier is
// left-associative, so the right operand is parsed one tier tighter than
// the operator itself.
func (p *Parser) parseBinary(minPrec int) (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.infixOp()
		if !ok || op.Precedence() < minPrec {
			return left, nil
		}
		p.advance()

		right, err := p.parseBinary(op.Precedence() + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{
			Loc:   token.Span{Start: left.Span().Start, End: right.Span().End},
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

// infixOp reports whether the current token is a binary operator. A signed
// numeric literal after a complete operand can only be a subtraction, so
// "a -1" is split into '-' and '1' here.
func (p *Parser) infixOp() (ast.BinaryOp, bool) {
	if (p.curIs(token.INT) || p.curIs(token.DECIMAL)) && strings.HasPrefix(p.cur.Literal, "-") {
		p.split(token.MINUS, 1, p.cur.Type)
	}
	op, ok := binaryOps[p.cur.Type]
	return op, ok
}

// parseUnary parses the prefix tier. The operand of a prefix operator is
// itself a prefix or postfix expression, so "-f(x)" negates the call and
// "não a e b" applies não to a alone.
func (p *Parser) parseUnary() (ast.Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	op, ok := prefixOps[p.cur.Type]
	if !ok {
		return p.parsePostfix()
	}
	start := p.cur.Pos
	p.advance()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Loc: p.span(start), Op: op, Operand: operand}, nil
}

// parsePostfix parses a primary followed by any chain of member accesses
// and calls, applied left to right.
func (p *Parser) parsePostfix() (ast.Expression, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	start := x.Span().Start
	for {
		switch p.cur.Type {
		case token.DOT:
			p.advance()
			member, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			x = &ast.Access{Loc: p.span(start), Object: x, Member: member}
		case token.LPAREN:
			p.advance()
			args, err := p.parseExprList(token.RPAREN)
			if err != nil {
				return nil, err
			}
			x = &ast.Call{Loc: p.span(start), Callee: x, Args: args}
		default:
			return x, nil
		}
	}
}

// parsePrimary parses identifiers, literals, list literals and
// parenthesised expressions.
func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.cur
	switch tok.Type {
	case token.IDENT:
		p.advance()
		return &ast.Identifier{Loc: p.span(tok.Pos), Name: tok.Literal}, nil

	case token.INT:
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, diag.Errorf(diag.LexError, tok.Pos, "integer literal %s out of range", tok.Literal)
		}
		p.advance()
		return &ast.IntegerLiteral{Loc: p.span(tok.Pos), Value: v}, nil

	case token.DECIMAL:
		lit, err := decimalLiteral(tok)
		if err != nil {
			return nil, err
		}
		p.advance()
		lit.Loc = p.span(tok.Pos)
		return lit, nil

	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Loc: p.span(tok.Pos), Value: tok.Literal}, nil

	case token.TRUE, token.FALSE:
		p.advance()
		return &ast.BooleanLiteral{Loc: p.span(tok.Pos), Value: tok.Type == token.TRUE}, nil

	case token.LBRACKET:
		p.advance()
		elems, err := p.parseExprList(token.RBRACKET)
		if err != nil {
			return nil, err
		}
		return &ast.ListLiteral{Loc: p.span(tok.Pos), Elements: elems}, nil

	case token.LPAREN:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ast.Parenthesized{Loc: p.span(tok.Pos), Inner: inner}, nil
	}
	return nil, p.unexpected("expression")
}

// parseExprList parses a comma-separated, possibly empty expression list
// after its opening delimiter, and consumes the closing one. Trailing
// commas are rejected.
func (p *Parser) parseExprList(closing token.Type) ([]ast.Expression, error) {
	var list []ast.Expression
	if !p.curIs(closing) {
		for {
			x, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			list = append(list, x)
			if !p.curIs(token.COMMA) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(closing); err != nil {
		return nil, err
	}
	return list, nil
}

// decimalLiteral splits a DECIMAL token into sign, integer part and
// fraction digits.
func decimalLiteral(tok token.Token) (*ast.DecimalLiteral, error) {
	lit := tok.Literal
	neg := strings.HasPrefix(lit, "-")
	lit = strings.TrimPrefix(lit, "-")

	dot := strings.IndexByte(lit, '.')
	if dot < 0 {
		return nil, diag.Errorf(diag.LexError, tok.Pos, "malformed decimal literal %s", tok.Literal)
	}
	whole, err := strconv.ParseUint(lit[:dot], 10, 64)
	if err != nil {
		return nil, diag.Errorf(diag.LexError, tok.Pos, "decimal literal %s out of range", tok.Literal)
	}
	return &ast.DecimalLiteral{Negative: neg, Integer: whole, Fraction: lit[dot+1:]}, nil
}
