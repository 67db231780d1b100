// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ast defines the syntax tree for the ila language.
//
// Design overview:
//
//   - All nodes implement Node via Span and String.
//   - Expressions, Statements and Types each have a marker interface that
//     embeds Node to enable type-safe dispatch.
//   - Every node owns its children; the tree has no parent links and no
//     sharing, and it is never mutated after the parser returns it.
//   - Each node records its source span so downstream tools can point back
//     at the text. Structural comparison (Equal) ignores spans.
package ast

import (
	"strconv"
	"strings"

	"github.com/probechain/ila-lang/lang/token"
)

// ---------------------------------------------------------------------------
// Core interfaces
// ---------------------------------------------------------------------------

// Node is the base interface that every tree node implements.
type Node interface {
	// Span returns the source range the node was parsed from.
	Span() token.Span

	// String returns a compact, fully parenthesised rendering of the node
	// suitable for unit tests and debug output.
	String() string
}

// Expression is a marker interface for all expression nodes.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a marker interface for all statement nodes.
type Statement interface {
	Node
	statementNode()
}

// Type is a marker interface for type annotation nodes.
type Type interface {
	Node
	typeNode()
}

// ---------------------------------------------------------------------------
// Program, functions and blocks
// ---------------------------------------------------------------------------

// Program is the root of every parse tree: the functions of one source unit
// in source order.
type Program struct {
	Loc       token.Span
	Functions []*Function
}

func (p *Program) Span() token.Span { return p.Loc }
func (p *Program) String() string {
	parts := make([]string, len(p.Functions))
	for i, f := range p.Functions {
		parts[i] = f.String()
	}
	return strings.Join(parts, "\n")
}

// Function is a top-level function declaration.
type Function struct {
	Loc        token.Span
	Name       string
	Params     []*Parameter
	ReturnType Type
	Body       *Block
}

func (f *Function) Span() token.Span { return f.Loc }
func (f *Function) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return "func " + f.Name + "(" + strings.Join(params, ", ") + ") -> " + f.ReturnType.String() + " " + f.Body.String()
}

// Parameter is a single function parameter: [mut] name: Type.
type Parameter struct {
	Loc     token.Span
	Name    string
	Mutable bool
	Type    Type
}

func (p *Parameter) Span() token.Span { return p.Loc }
func (p *Parameter) String() string   { return mutPrefix(p.Mutable) + p.Name + ": " + p.Type.String() }

// Block is a braced, possibly empty statement sequence.
type Block struct {
	Loc        token.Span
	Statements []Statement
}

func (b *Block) Span() token.Span { return b.Loc }
func (b *Block) String() string {
	if len(b.Statements) == 0 {
		return "{}"
	}
	parts := make([]string, len(b.Statements))
	for i, s := range b.Statements {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// ExpressionStatement is an expression evaluated for its effect: expr;
type ExpressionStatement struct {
	Loc  token.Span
	Expr Expression
}

func (s *ExpressionStatement) statementNode()   {}
func (s *ExpressionStatement) Span() token.Span { return s.Loc }
func (s *ExpressionStatement) String() string   { return s.Expr.String() + ";" }

// VariableDeclaration is var [mut] name: Type [= init];
type VariableDeclaration struct {
	Loc         token.Span
	Mutable     bool
	Name        string
	Type        Type
	Initializer Expression // nil when absent
}

func (s *VariableDeclaration) statementNode()   {}
func (s *VariableDeclaration) Span() token.Span { return s.Loc }
func (s *VariableDeclaration) String() string {
	out := "var " + mutPrefix(s.Mutable) + s.Name + ": " + s.Type.String()
	if s.Initializer != nil {
		out += " = " + s.Initializer.String()
	}
	return out + ";"
}

// Conditional is se cond { ... } [senão { ... }].
type Conditional struct {
	Loc       token.Span
	Condition Expression
	Then      *Block
	Else      *Block // nil when there is no senão branch
}

func (s *Conditional) statementNode()   {}
func (s *Conditional) Span() token.Span { return s.Loc }
func (s *Conditional) String() string {
	out := "se " + s.Condition.String() + " " + s.Then.String()
	if s.Else != nil {
		out += " senão " + s.Else.String()
	}
	return out
}

// WhileLoop is enquanto cond { ... }.
type WhileLoop struct {
	Loc       token.Span
	Condition Expression
	Body      *Block
}

func (s *WhileLoop) statementNode()   {}
func (s *WhileLoop) Span() token.Span { return s.Loc }
func (s *WhileLoop) String() string   { return "enquanto " + s.Condition.String() + " " + s.Body.String() }

// ForEachItem declares the loop variable of a ForEachLoop. The mutability
// and reference flags are independent.
type ForEachItem struct {
	Loc       token.Span
	Mutable   bool
	Reference bool
	Name      string
}

func (d *ForEachItem) Span() token.Span { return d.Loc }
func (d *ForEachItem) String() string {
	out := mutPrefix(d.Mutable)
	if d.Reference {
		out += "ref "
	}
	return out + d.Name
}

// ForEachLoop is para cada item em iterator { ... }.
type ForEachLoop struct {
	Loc      token.Span
	Item     *ForEachItem
	Iterator Expression
	Body     *Block
}

func (s *ForEachLoop) statementNode()   {}
func (s *ForEachLoop) Span() token.Span { return s.Loc }
func (s *ForEachLoop) String() string {
	return "para cada " + s.Item.String() + " em " + s.Iterator.String() + " " + s.Body.String()
}

// Return is retornar [value];
type Return struct {
	Loc   token.Span
	Value Expression // nil for a bare retornar;
}

func (s *Return) statementNode()   {}
func (s *Return) Span() token.Span { return s.Loc }
func (s *Return) String() string {
	if s.Value == nil {
		return "retornar;"
	}
	return "retornar " + s.Value.String() + ";"
}

// Continue is continuar;
type Continue struct {
	Loc token.Span
}

func (s *Continue) statementNode()   {}
func (s *Continue) Span() token.Span { return s.Loc }
func (s *Continue) String() string   { return "continuar;" }

// Break is parar;
type Break struct {
	Loc token.Span
}

func (s *Break) statementNode()   {}
func (s *Break) Span() token.Span { return s.Loc }
func (s *Break) String() string   { return "parar;" }

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// Binary is a binary operation. Assignment is a Binary with OpAssign.
type Binary struct {
	Loc   token.Span
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (e *Binary) expressionNode()  {}
func (e *Binary) Span() token.Span { return e.Loc }
func (e *Binary) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}

// Unary is a prefix operation.
type Unary struct {
	Loc     token.Span
	Op      UnaryOp
	Operand Expression
}

func (e *Unary) expressionNode()  {}
func (e *Unary) Span() token.Span { return e.Loc }
func (e *Unary) String() string {
	if e.Op == OpNot {
		return "(não " + e.Operand.String() + ")"
	}
	return "(" + e.Op.String() + e.Operand.String() + ")"
}

// Access is member access: object.member
type Access struct {
	Loc    token.Span
	Object Expression
	Member string
}

func (e *Access) expressionNode()  {}
func (e *Access) Span() token.Span { return e.Loc }
func (e *Access) String() string   { return e.Object.String() + "." + e.Member }

// Call is a call: callee(args...)
type Call struct {
	Loc    token.Span
	Callee Expression
	Args   []Expression
}

func (e *Call) expressionNode()  {}
func (e *Call) Span() token.Span { return e.Loc }
func (e *Call) String() string   { return e.Callee.String() + "(" + joinExprs(e.Args) + ")" }

// Identifier is a name reference.
type Identifier struct {
	Loc  token.Span
	Name string
}

func (e *Identifier) expressionNode()  {}
func (e *Identifier) Span() token.Span { return e.Loc }
func (e *Identifier) String() string   { return e.Name }

// IntegerLiteral is a signed integer literal. A '-' fused into the literal
// by the lexer is part of Value.
type IntegerLiteral struct {
	Loc   token.Span
	Value int64
}

func (e *IntegerLiteral) expressionNode()  {}
func (e *IntegerLiteral) Span() token.Span { return e.Loc }
func (e *IntegerLiteral) String() string   { return strconv.FormatInt(e.Value, 10) }

// DecimalLiteral is integer '.' fraction. Integer holds the magnitude of the
// integer part and Negative its sign, so -0.5 keeps its sign. Fraction is
// the digit string as written, leading zeros included.
type DecimalLiteral struct {
	Loc      token.Span
	Negative bool
	Integer  uint64
	Fraction string
}

func (e *DecimalLiteral) expressionNode()  {}
func (e *DecimalLiteral) Span() token.Span { return e.Loc }
func (e *DecimalLiteral) String() string {
	out := strconv.FormatUint(e.Integer, 10) + "." + e.Fraction
	if e.Negative {
		return "-" + out
	}
	return out
}

// Float returns the literal's value as a float64.
func (e *DecimalLiteral) Float() float64 {
	f, _ := strconv.ParseFloat(e.String(), 64)
	return f
}

// StringLiteral is "..." with its raw content; no escapes are processed.
type StringLiteral struct {
	Loc   token.Span
	Value string
}

func (e *StringLiteral) expressionNode()  {}
func (e *StringLiteral) Span() token.Span { return e.Loc }
func (e *StringLiteral) String() string   { return `"` + e.Value + `"` }

// BooleanLiteral is verdadeiro or falso.
type BooleanLiteral struct {
	Loc   token.Span
	Value bool
}

func (e *BooleanLiteral) expressionNode()  {}
func (e *BooleanLiteral) Span() token.Span { return e.Loc }
func (e *BooleanLiteral) String() string {
	if e.Value {
		return "verdadeiro"
	}
	return "falso"
}

// ListLiteral is [a, b, ...].
type ListLiteral struct {
	Loc      token.Span
	Elements []Expression
}

func (e *ListLiteral) expressionNode()  {}
func (e *ListLiteral) Span() token.Span { return e.Loc }
func (e *ListLiteral) String() string   { return "[" + joinExprs(e.Elements) + "]" }

// Parenthesized is ( inner ). The parentheses are kept in the tree.
type Parenthesized struct {
	Loc   token.Span
	Inner Expression
}

func (e *Parenthesized) expressionNode()  {}
func (e *Parenthesized) Span() token.Span { return e.Loc }
func (e *Parenthesized) String() string   { return "(" + e.Inner.String() + ")" }

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// RawType is a bare type name: Int.
type RawType struct {
	Loc  token.Span
	Name string
}

func (t *RawType) typeNode()          {}
func (t *RawType) Span() token.Span { return t.Loc }
func (t *RawType) String() string   { return t.Name }

// TemplateType is Name<Args...>; Args may be empty.
type TemplateType struct {
	Loc  token.Span
	Name string
	Args []Type
}

func (t *TemplateType) typeNode()          {}
func (t *TemplateType) Span() token.Span { return t.Loc }
func (t *TemplateType) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return t.Name + "<" + strings.Join(args, ", ") + ">"
}

// RefType is [mut] ref Inner: a non-owning reference.
type RefType struct {
	Loc     token.Span
	Mutable bool
	Inner   Type
}

func (t *RefType) typeNode()          {}
func (t *RefType) Span() token.Span { return t.Loc }
func (t *RefType) String() string   { return mutPrefix(t.Mutable) + "ref " + t.Inner.String() }

// CompType is [mut] comp Inner: an owning wrapper.
type CompType struct {
	Loc     token.Span
	Mutable bool
	Inner   Type
}

func (t *CompType) typeNode()          {}
func (t *CompType) Span() token.Span { return t.Loc }
func (t *CompType) String() string   { return mutPrefix(t.Mutable) + "comp " + t.Inner.String() }

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func mutPrefix(mut bool) string {
	if mut {
		return "mut "
	}
	return ""
}

func joinExprs(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
