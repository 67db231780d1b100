// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ast

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses a tree in depth-first, source order.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, f := range n.Functions {
			Walk(f, v)
		}

	case *Function:
		for _, p := range n.Params {
			Walk(p, v)
		}
		Walk(n.ReturnType, v)
		Walk(n.Body, v)

	case *Parameter:
		Walk(n.Type, v)

	case *Block:
		for _, s := range n.Statements {
			Walk(s, v)
		}

	// Statements
	case *ExpressionStatement:
		Walk(n.Expr, v)
	case *VariableDeclaration:
		Walk(n.Type, v)
		if n.Initializer != nil {
			Walk(n.Initializer, v)
		}
	case *Conditional:
		Walk(n.Condition, v)
		Walk(n.Then, v)
		if n.Else != nil {
			Walk(n.Else, v)
		}
	case *WhileLoop:
		Walk(n.Condition, v)
		Walk(n.Body, v)
	case *ForEachLoop:
		Walk(n.Item, v)
		Walk(n.Iterator, v)
		Walk(n.Body, v)
	case *Return:
		if n.Value != nil {
			Walk(n.Value, v)
		}
	case *ForEachItem, *Continue, *Break:
		// leaves

	// Expressions
	case *Binary:
		Walk(n.Left, v)
		Walk(n.Right, v)
	case *Unary:
		Walk(n.Operand, v)
	case *Access:
		Walk(n.Object, v)
	case *Call:
		Walk(n.Callee, v)
		for _, a := range n.Args {
			Walk(a, v)
		}
	case *ListLiteral:
		for _, e := range n.Elements {
			Walk(e, v)
		}
	case *Parenthesized:
		Walk(n.Inner, v)
	case *Identifier, *IntegerLiteral, *DecimalLiteral, *StringLiteral, *BooleanLiteral:
		// leaves

	// Types
	case *TemplateType:
		for _, a := range n.Args {
			Walk(a, v)
		}
	case *RefType:
		Walk(n.Inner, v)
	case *CompType:
		Walk(n.Inner, v)
	case *RawType:
		// leaf
	}
}

// Inspect is Walk without the ability to prune: f sees every node.
func Inspect(node Node, f func(Node)) {
	Walk(node, func(n Node) bool {
		f(n)
		return true
	})
}
