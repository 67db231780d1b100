// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package parser

import (
	"github.com/probechain/ila-lang/lang/ast"
	"github.com/probechain/ila-lang/lang/token"
)

// parseBlock parses '{' { statement } '}'.
func (p *Parser) parseBlock() (*ast.Block, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	start := p.cur.Pos
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for !p.curIs(token.RBRACE) {
		if p.curIs(token.EOF) {
			return nil, p.unexpected("'}'")
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	p.advance() // '}'
	return &ast.Block{Loc: p.span(start), Statements: stmts}, nil
}

// parseStatement dispatches on the leading keyword; anything else must be
// an expression statement.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur.Type {
	case token.VAR:
		return p.parseVarDecl()
	case token.IF:
		return p.parseConditional()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseForEach()
	case token.RETURN:
		return p.parseReturn()
	case token.CONTINUE:
		start := p.cur.Pos
		p.advance()
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.Continue{Loc: p.span(start)}, nil
	case token.BREAK:
		start := p.cur.Pos
		p.advance()
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.Break{Loc: p.span(start)}, nil
	}
	return p.parseExprStatement()
}

// parseVarDecl parses 'var' [ 'mut' ] name ':' type [ '=' expr ] ';'.
func (p *Parser) parseVarDecl() (*ast.VariableDeclaration, error) {
	start := p.cur.Pos
	p.advance() // 'var'

	mut := false
	if p.curIs(token.MUT) {
		mut = true
		p.advance()
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	var init ast.Expression
	if p.curIs(token.ASSIGN) {
		p.advance()
		if init, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.VariableDeclaration{
		Loc:         p.span(start),
		Mutable:     mut,
		Name:        name,
		Type:        typ,
		Initializer: init,
	}, nil
}

// parseConditional parses 'se' expr block [ 'senão' block ].
func (p *Parser) parseConditional() (*ast.Conditional, error) {
	start := p.cur.Pos
	p.advance() // 'se'

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.Conditional{Condition: cond, Then: then}
	if p.curIs(token.ELSE) {
		p.advance()
		if stmt.Else, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}
	stmt.Loc = p.span(start)
	return stmt, nil
}

// parseWhile parses 'enquanto' expr block.
func (p *Parser) parseWhile() (*ast.WhileLoop, error) {
	start := p.cur.Pos
	p.advance() // 'enquanto'

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileLoop{Loc: p.span(start), Condition: cond, Body: body}, nil
}

// parseForEach parses 'para' 'cada' [ 'mut' ] [ 'ref' ] name 'em' expr block.
func (p *Parser) parseForEach() (*ast.ForEachLoop, error) {
	start := p.cur.Pos
	p.advance() // 'para'
	if _, err := p.expect(token.EACH); err != nil {
		return nil, err
	}

	itemStart := p.cur.Pos
	item := &ast.ForEachItem{}
	if p.curIs(token.MUT) {
		item.Mutable = true
		p.advance()
	}
	if p.curIs(token.REF) {
		item.Reference = true
		p.advance()
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	item.Name = name
	item.Loc = p.span(itemStart)

	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}
	iter, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForEachLoop{Loc: p.span(start), Item: item, Iterator: iter, Body: body}, nil
}

// parseReturn parses 'retornar' [ expr ] ';'.
func (p *Parser) parseReturn() (*ast.Return, error) {
	start := p.cur.Pos
	p.advance() // 'retornar'

	var value ast.Expression
	if !p.curIs(token.SEMICOLON) {
		var err error
		if value, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.Return{Loc: p.span(start), Value: value}, nil
}

// parseExprStatement parses expr ';'.
func (p *Parser) parseExprStatement() (*ast.ExpressionStatement, error) {
	start := p.cur.Pos
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Loc: p.span(start), Expr: x}, nil
}
