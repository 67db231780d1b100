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

// parseType parses
//
//	type := [ 'mut' ] ( 'ref' | 'comp' ) type
//	      | name [ '<' [ type { ',' type } ] '>' ]
//
// 'mut' binds to the ref/comp wrapper that follows it.
func (p *Parser) parseType() (ast.Type, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	start := p.cur.Pos
	mut := false
	if p.curIs(token.MUT) {
		mut = true
		p.advance()
		if !p.curIs(token.REF) && !p.curIs(token.COMP) {
			return nil, p.unexpected("'ref' or 'comp'")
		}
	}

	switch p.cur.Type {
	case token.REF, token.COMP:
		wrapper := p.cur.Type
		p.advance()
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if wrapper == token.REF {
			return &ast.RefType{Loc: p.span(start), Mutable: mut, Inner: inner}, nil
		}
		return &ast.CompType{Loc: p.span(start), Mutable: mut, Inner: inner}, nil

	case token.IDENT:
		name := p.cur.Literal
		p.advance()
		if !p.curIs(token.LT) {
			return &ast.RawType{Loc: p.span(start), Name: name}, nil
		}
		p.advance() // '<'
		var args []ast.Type
		if !p.curIs(token.GT) && !p.curIs(token.GTE) {
			for {
				arg, err := p.parseType()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !p.curIs(token.COMMA) {
					break
				}
				p.advance()
			}
		}
		if err := p.closeTemplate(); err != nil {
			return nil, err
		}
		return &ast.TemplateType{Loc: p.span(start), Name: name, Args: args}, nil
	}
	return nil, p.unexpected("type")
}

// closeTemplate consumes the '>' ending a template argument list. The lexer
// reads "Lista<Int>=" as ... '>=', which is split back into '>' and '='.
func (p *Parser) closeTemplate() error {
	if p.curIs(token.GTE) {
		p.split(token.GT, 1, token.ASSIGN)
	}
	_, err := p.expect(token.GT)
	return err
}
