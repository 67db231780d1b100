// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders a node in constructor notation, one variant per call, e.g.
//
//	Binary(+, Ident(a), Binary(*, Ident(b), Ident(c)))
//	RefType(mut=true, CompType(mut=false, TemplateType(Lista, [RawType(Int)])))
//
// Spans are omitted, so two structurally equal trees dump identically.
func Dump(node Node) string {
	var sb strings.Builder
	dump(&sb, node)
	return sb.String()
}

func dump(sb *strings.Builder, node Node) {
	w := func(format string, args ...interface{}) { fmt.Fprintf(sb, format, args...) }

	switch n := node.(type) {
	case nil:
		sb.WriteString("None")

	case *Program:
		sb.WriteString("Program(")
		dumpList(sb, len(n.Functions), func(i int) Node { return n.Functions[i] })
		sb.WriteString(")")
	case *Function:
		w("Function(%s, ", n.Name)
		dumpList(sb, len(n.Params), func(i int) Node { return n.Params[i] })
		sb.WriteString(", ")
		dump(sb, n.ReturnType)
		sb.WriteString(", ")
		dump(sb, n.Body)
		sb.WriteString(")")
	case *Parameter:
		w("Param(mut=%t, %s, ", n.Mutable, n.Name)
		dump(sb, n.Type)
		sb.WriteString(")")
	case *Block:
		dumpList(sb, len(n.Statements), func(i int) Node { return n.Statements[i] })

	case *ExpressionStatement:
		sb.WriteString("ExpressionStatement(")
		dump(sb, n.Expr)
		sb.WriteString(")")
	case *VariableDeclaration:
		w("VariableDeclaration(mut=%t, %s, ", n.Mutable, n.Name)
		dump(sb, n.Type)
		sb.WriteString(", ")
		dump(sb, n.Initializer)
		sb.WriteString(")")
	case *Conditional:
		sb.WriteString("Conditional(")
		dump(sb, n.Condition)
		sb.WriteString(", ")
		dump(sb, n.Then)
		sb.WriteString(", ")
		if n.Else == nil {
			sb.WriteString("None")
		} else {
			dump(sb, n.Else)
		}
		sb.WriteString(")")
	case *WhileLoop:
		sb.WriteString("WhileLoop(")
		dump(sb, n.Condition)
		sb.WriteString(", ")
		dump(sb, n.Body)
		sb.WriteString(")")
	case *ForEachItem:
		w("Item(mut=%t, ref=%t, %s)", n.Mutable, n.Reference, n.Name)
	case *ForEachLoop:
		sb.WriteString("ForEachLoop(")
		dump(sb, n.Item)
		sb.WriteString(", ")
		dump(sb, n.Iterator)
		sb.WriteString(", ")
		dump(sb, n.Body)
		sb.WriteString(")")
	case *Return:
		sb.WriteString("Return(")
		dump(sb, n.Value)
		sb.WriteString(")")
	case *Continue:
		sb.WriteString("Continue")
	case *Break:
		sb.WriteString("Break")

	case *Binary:
		w("Binary(%s, ", n.Op)
		dump(sb, n.Left)
		sb.WriteString(", ")
		dump(sb, n.Right)
		sb.WriteString(")")
	case *Unary:
		w("Unary(%s, ", n.Op.Name())
		dump(sb, n.Operand)
		sb.WriteString(")")
	case *Access:
		sb.WriteString("Access(")
		dump(sb, n.Object)
		w(", %s)", n.Member)
	case *Call:
		sb.WriteString("Call(")
		dump(sb, n.Callee)
		sb.WriteString(", ")
		dumpList(sb, len(n.Args), func(i int) Node { return n.Args[i] })
		sb.WriteString(")")
	case *Identifier:
		w("Ident(%s)", n.Name)
	case *IntegerLiteral:
		w("IntegerLiteral(%d)", n.Value)
	case *DecimalLiteral:
		w("DecimalLiteral(%s)", n.String())
	case *StringLiteral:
		w("StringLiteral(%s)", strconv.Quote(n.Value))
	case *BooleanLiteral:
		w("BooleanLiteral(%s)", n.String())
	case *ListLiteral:
		sb.WriteString("ListLiteral(")
		dumpList(sb, len(n.Elements), func(i int) Node { return n.Elements[i] })
		sb.WriteString(")")
	case *Parenthesized:
		sb.WriteString("Parenthesized(")
		dump(sb, n.Inner)
		sb.WriteString(")")

	case *RawType:
		w("RawType(%s)", n.Name)
	case *TemplateType:
		w("TemplateType(%s, ", n.Name)
		dumpList(sb, len(n.Args), func(i int) Node { return n.Args[i] })
		sb.WriteString(")")
	case *RefType:
		w("RefType(mut=%t, ", n.Mutable)
		dump(sb, n.Inner)
		sb.WriteString(")")
	case *CompType:
		w("CompType(mut=%t, ", n.Mutable)
		dump(sb, n.Inner)
		sb.WriteString(")")

	default:
		w("%T", n)
	}
}

func dumpList(sb *strings.Builder, n int, at func(int) Node) {
	sb.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		dump(sb, at(i))
	}
	sb.WriteByte(']')
}
