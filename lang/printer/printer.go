// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package printer renders syntax trees back to canonical ila source.
//
// Parentheses are printed only where the tree holds a Parenthesized node,
// so for any tree produced by the parser, parsing the printed text yields
// an equal tree. Blocks are indented with four spaces and top-level
// functions are separated by a blank line.
package printer

import (
	"io"
	"strings"

	"github.com/probechain/ila-lang/lang/ast"
)

const indentUnit = "    "

// Source returns the canonical source text of node.
func Source(node ast.Node) string {
	p := &printer{}
	p.node(node)
	return p.sb.String()
}

// Fprint writes the canonical source text of node to w.
func Fprint(w io.Writer, node ast.Node) error {
	_, err := io.WriteString(w, Source(node))
	return err
}

type printer struct {
	sb     strings.Builder
	indent int
}

func (p *printer) write(s string) { p.sb.WriteString(s) }

func (p *printer) newline() {
	p.sb.WriteByte('\n')
	for i := 0; i < p.indent; i++ {
		p.sb.WriteString(indentUnit)
	}
}

func (p *printer) node(node ast.Node) {
	switch n := node.(type) {
	case *ast.Program:
		for i, fn := range n.Functions {
			if i > 0 {
				p.write("\n")
			}
			p.function(fn)
			p.write("\n")
		}
	case *ast.Function:
		p.function(n)
	case *ast.Parameter:
		p.write(n.String())
	case *ast.Block:
		p.block(n)
	case ast.Statement:
		p.stmt(n)
	case ast.Expression:
		p.expr(n)
	case ast.Type:
		p.write(n.String())
	case *ast.ForEachItem:
		p.write(n.String())
	}
}

func (p *printer) function(fn *ast.Function) {
	p.write("func " + fn.Name + "(")
	for i, param := range fn.Params {
		if i > 0 {
			p.write(", ")
		}
		p.write(param.String())
	}
	p.write(") -> " + fn.ReturnType.String() + " ")
	p.block(fn.Body)
}

func (p *printer) block(b *ast.Block) {
	if len(b.Statements) == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	p.indent++
	for _, s := range b.Statements {
		p.newline()
		p.stmt(s)
	}
	p.indent--
	p.newline()
	p.write("}")
}

func (p *printer) stmt(s ast.Statement) {
	switch s := s.(type) {
	case *ast.ExpressionStatement:
		p.expr(s.Expr)
		p.write(";")
	case *ast.VariableDeclaration:
		p.write("var ")
		if s.Mutable {
			p.write("mut ")
		}
		p.write(s.Name + ": " + s.Type.String())
		if s.Initializer != nil {
			p.write(" = ")
			p.expr(s.Initializer)
		}
		p.write(";")
	case *ast.Conditional:
		p.write("se ")
		p.expr(s.Condition)
		p.write(" ")
		p.block(s.Then)
		if s.Else != nil {
			p.write(" senão ")
			p.block(s.Else)
		}
	case *ast.WhileLoop:
		p.write("enquanto ")
		p.expr(s.Condition)
		p.write(" ")
		p.block(s.Body)
	case *ast.ForEachLoop:
		p.write("para cada " + s.Item.String() + " em ")
		p.expr(s.Iterator)
		p.write(" ")
		p.block(s.Body)
	case *ast.Return:
		if s.Value == nil {
			p.write("retornar;")
			return
		}
		p.write("retornar ")
		p.expr(s.Value)
		p.write(";")
	case *ast.Continue:
		p.write("continuar;")
	case *ast.Break:
		p.write("parar;")
	}
}

func (p *printer) expr(x ast.Expression) {
	switch x := x.(type) {
	case *ast.Binary:
		p.expr(x.Left)
		p.write(" " + x.Op.String() + " ")
		p.expr(x.Right)
	case *ast.Unary:
		p.unary(x)
	case *ast.Access:
		p.expr(x.Object)
		p.write("." + x.Member)
	case *ast.Call:
		p.expr(x.Callee)
		p.write("(")
		p.exprList(x.Args)
		p.write(")")
	case *ast.ListLiteral:
		p.write("[")
		p.exprList(x.Elements)
		p.write("]")
	case *ast.Parenthesized:
		p.write("(")
		p.expr(x.Inner)
		p.write(")")
	default:
		// Identifiers and literals print as written.
		p.write(x.String())
	}
}

func (p *printer) unary(x *ast.Unary) {
	switch x.Op {
	case ast.OpNot:
		p.write("não ")
		p.expr(x.Operand)
	case ast.OpNeg:
		operand := Source(x.Operand)
		p.write("-")
		// "-3" would lex as a single negative literal, "--" reads badly.
		if operand != "" && (operand[0] == '-' || (operand[0] >= '0' && operand[0] <= '9')) {
			p.write(" ")
		}
		p.write(operand)
	default:
		p.write(x.Op.String())
		p.expr(x.Operand)
	}
}

func (p *printer) exprList(list []ast.Expression) {
	for i, x := range list {
		if i > 0 {
			p.write(", ")
		}
		p.expr(x)
	}
}
