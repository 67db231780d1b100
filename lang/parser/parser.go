// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package parser implements a recursive-descent / precedence-climbing parser
// for the ila language.
//
// Design overview:
//
//   - Functions and statements are parsed with straightforward recursive
//     descent; expressions use precedence climbing over six left-associative
//     binary tiers, a prefix tier and a postfix (access/call) chain.
//   - Every parse function returns either a complete node or an error; a
//     partially built node never escapes.
//   - The first error inside a function abandons that function. The parser
//     then skips to the next 'func' keyword (or EOF) and carries on, so one
//     run reports errors for every malformed function.
//   - The lexer is driven one token at a time; two tokens may be split in
//     place: '>=' closing a template argument list, and a fused negative
//     literal in operator position ("a -1" is a subtraction).
package parser

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/probechain/ila-lang/lang/ast"
	"github.com/probechain/ila-lang/lang/diag"
	"github.com/probechain/ila-lang/lang/lexer"
	"github.com/probechain/ila-lang/lang/token"
)

// Config bounds a parse run.
type Config struct {
	// MaxDepth limits the nesting of expressions, types and blocks.
	// Zero means unlimited.
	MaxDepth int

	// MaxErrors stops the run once this many functions have failed.
	// Zero means unlimited.
	MaxErrors int

	// Workers limits how many sources ParseFiles handles concurrently.
	// Zero means one goroutine per source.
	Workers int
}

// DefaultConfig is used by the package-level Parse functions.
var DefaultConfig = Config{
	MaxDepth: 1000,
}

// Parser holds the mutable state for a single parse run.
type Parser struct {
	cfg Config
	lex *lexer.Lexer
	log log.Logger

	cur     token.Token   // current token
	prev    token.Token   // last consumed token
	pending []token.Token // split-off remainders, consumed before the lexer

	depth    int
	funcName string // name of the function being parsed, for error reports
}

// newParser initialises a Parser from source text.
func newParser(cfg Config, filename, source string) *Parser {
	p := &Parser{
		cfg: cfg,
		lex: lexer.New(filename, source),
		log: log.New("file", filename),
	}
	p.advance()
	return p
}

// Parse tokenises and parses source with DefaultConfig. It returns the
// program holding every function that parsed cleanly, together with one
// error per malformed function.
func Parse(filename, source string) (*ast.Program, ErrorList) {
	return DefaultConfig.Parse(filename, source)
}

// Parse tokenises and parses source.
func (c Config) Parse(filename, source string) (*ast.Program, ErrorList) {
	prog, errs, _ := c.ParseContext(context.Background(), filename, source)
	return prog, errs
}

// ParseContext is Parse with coarse cancellation: the context is checked
// before each function. A cancelled run returns the context's error; the
// program and error list then hold what was parsed so far.
func (c Config) ParseContext(ctx context.Context, filename, source string) (*ast.Program, ErrorList, error) {
	start := time.Now()
	p := newParser(c, filename, source)
	p.log.Trace("Parsing source", "bytes", len(source))

	prog, errs, err := p.parseProgram(ctx)
	if err != nil {
		p.log.Debug("Parse cancelled", "functions", len(prog.Functions), "err", err)
		return prog, errs, err
	}
	p.log.Debug("Parsed source", "functions", len(prog.Functions), "errors", len(errs), "elapsed", time.Since(start))
	return prog, errs, nil
}

// ParseExpr parses a single expression with DefaultConfig.
func ParseExpr(source string) (ast.Expression, error) {
	return DefaultConfig.ParseExpr(source)
}

// ParseStatement parses a single statement with DefaultConfig.
func ParseStatement(source string) (ast.Statement, error) {
	return DefaultConfig.ParseStatement(source)
}

// ParseType parses a single type expression with DefaultConfig.
func ParseType(source string) (ast.Type, error) {
	return DefaultConfig.ParseType(source)
}

// ParseExpr parses a single expression that must span the whole input.
func (c Config) ParseExpr(source string) (ast.Expression, error) {
	p := newParser(c, "", source)
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return x, nil
}

// ParseStatement parses a single statement that must span the whole input.
func (c Config) ParseStatement(source string) (ast.Statement, error) {
	p := newParser(c, "", source)
	s, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseType parses a single type expression that must span the whole input.
func (c Config) ParseType(source string) (ast.Type, error) {
	p := newParser(c, "", source)
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return t, nil
}

// ---------------------------------------------------------------------------
// Token navigation helpers
// ---------------------------------------------------------------------------

// advance moves to the next token, taking split-off remainders first.
func (p *Parser) advance() {
	p.prev = p.cur
	if n := len(p.pending); n > 0 {
		p.cur = p.pending[n-1]
		p.pending = p.pending[:n-1]
		return
	}
	p.cur = p.lex.NextToken()
}

// split replaces the current token with its first width bytes, typed as
// head, and queues the rest of the literal, typed as tail, as the next token.
func (p *Parser) split(head token.Type, width int, tail token.Type) {
	tok := p.cur
	rest := tok.Pos
	rest.Column += width
	rest.Offset += width
	p.pending = append(p.pending, token.Token{Type: tail, Literal: tok.Literal[width:], Pos: rest})
	p.cur = token.Token{Type: head, Literal: tok.Literal[:width], Pos: tok.Pos}
}

// curIs returns true if the current token has the given type.
func (p *Parser) curIs(typ token.Type) bool { return p.cur.Type == typ }

// expect consumes the current token if it matches typ, otherwise it returns
// an error naming the expected and the actual token.
func (p *Parser) expect(typ token.Type) (token.Token, error) {
	if p.cur.Type == typ {
		tok := p.cur
		p.advance()
		return tok, nil
	}
	return p.cur, p.unexpected(describe(typ))
}

// expectIdent consumes an identifier and returns its name.
func (p *Parser) expectIdent() (string, error) {
	tok, err := p.expect(token.IDENT)
	return tok.Literal, err
}

func (p *Parser) expectEOF() error {
	if !p.curIs(token.EOF) {
		return p.unexpected("end of input")
	}
	return nil
}

// unexpected reports that the current token does not fit the grammar. When
// the current token is ILLEGAL the lexer's own error is more precise.
func (p *Parser) unexpected(expected string) error {
	if p.curIs(token.ILLEGAL) {
		if err := p.lex.Err(); err != nil {
			return err
		}
	}
	return diag.Unexpected(expected, p.cur)
}

// enter guards recursion depth; every call must be paired with leave.
func (p *Parser) enter() error {
	p.depth++
	if p.cfg.MaxDepth > 0 && p.depth > p.cfg.MaxDepth {
		return diag.Errorf(diag.SyntaxError, p.cur.Pos, "nesting exceeds the limit of %d levels", p.cfg.MaxDepth)
	}
	return nil
}

func (p *Parser) leave() { p.depth-- }

// span returns the range from start to the end of the last consumed token.
func (p *Parser) span(start token.Position) token.Span {
	return token.Span{Start: start, End: p.prev.End()}
}

func describe(typ token.Type) string {
	switch typ {
	case token.IDENT:
		return "identifier"
	case token.EOF:
		return "end of input"
	}
	return "'" + typ.String() + "'"
}

// ---------------------------------------------------------------------------
// Program and functions
// ---------------------------------------------------------------------------

func (p *Parser) parseProgram(ctx context.Context) (*ast.Program, ErrorList, error) {
	prog := &ast.Program{}
	begin := token.Position{File: p.cur.Pos.File, Line: 1, Column: 1}
	var errs ErrorList

	for !p.curIs(token.EOF) {
		if err := ctx.Err(); err != nil {
			prog.Loc = token.Span{Start: begin, End: p.cur.Pos}
			return prog, errs, err
		}
		start := p.cur.Pos
		fn, err := p.parseFunction()
		if err == nil {
			prog.Functions = append(prog.Functions, fn)
			continue
		}
		fe := &FunctionError{Function: p.funcName, Err: asDiag(err, p.cur.Pos)}
		p.synchronize()
		fe.Span = token.Span{Start: start, End: p.prev.End()}
		errs = append(errs, fe)
		p.log.Debug("Skipped malformed function", "name", fe.Function, "span", fe.Span, "err", fe.Err)

		if p.cfg.MaxErrors > 0 && len(errs) >= p.cfg.MaxErrors {
			p.log.Warn("Too many errors, giving up", "limit", p.cfg.MaxErrors)
			break
		}
	}
	prog.Loc = token.Span{Start: begin, End: p.cur.Pos}
	return prog, errs, nil
}

// synchronize skips tokens until the next 'func' keyword or EOF.
func (p *Parser) synchronize() {
	p.pending = p.pending[:0]
	for !p.curIs(token.FUNC) && !p.curIs(token.EOF) {
		p.advance()
	}
	p.depth = 0
}

// parseFunction parses
//
//	'func' name '(' [ param { ',' param } ] ')' '->' type '{' { statement } '}'
func (p *Parser) parseFunction() (*ast.Function, error) {
	start := p.cur.Pos
	p.funcName = ""
	if _, err := p.expect(token.FUNC); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	p.funcName = name

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []*ast.Parameter
	if !p.curIs(token.RPAREN) {
		for {
			param, err := p.parseParam()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.curIs(token.COMMA) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ARROW); err != nil {
		return nil, err
	}
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Function{
		Loc:        p.span(start),
		Name:       name,
		Params:     params,
		ReturnType: ret,
		Body:       body,
	}, nil
}

// parseParam parses a single "[ mut ] name : type" parameter.
func (p *Parser) parseParam() (*ast.Parameter, error) {
	start := p.cur.Pos
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
	return &ast.Parameter{Loc: p.span(start), Name: name, Mutable: mut, Type: typ}, nil
}

// asDiag unwraps err into the structured form; every error the grammar
// raises already is one.
func asDiag(err error, pos token.Position) *diag.Error {
	var de *diag.Error
	if errors.As(err, &de) {
		return de
	}
	return diag.Errorf(diag.SyntaxError, pos, "%v", err)
}

