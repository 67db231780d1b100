// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ast

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the tree to w. Every object
// carries a "kind" naming its variant and a "span"; the remaining keys are
// the variant's fields.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

type object = map[string]interface{}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}
	m := object{"span": node.Span().String()}

	switch n := node.(type) {
	case *Program:
		m["kind"] = "Program"
		m["functions"] = listJSON(len(n.Functions), func(i int) Node { return n.Functions[i] })
	case *Function:
		m["kind"] = "Function"
		m["name"] = n.Name
		m["parameters"] = listJSON(len(n.Params), func(i int) Node { return n.Params[i] })
		m["return_type"] = toJSON(n.ReturnType)
		m["body"] = toJSON(n.Body)
	case *Parameter:
		m["kind"] = "Parameter"
		m["name"] = n.Name
		m["mutable"] = n.Mutable
		m["type"] = toJSON(n.Type)
	case *Block:
		return listJSON(len(n.Statements), func(i int) Node { return n.Statements[i] })

	case *ExpressionStatement:
		m["kind"] = "ExpressionStatement"
		m["expression"] = toJSON(n.Expr)
	case *VariableDeclaration:
		m["kind"] = "VariableDeclaration"
		m["mutable"] = n.Mutable
		m["name"] = n.Name
		m["type"] = toJSON(n.Type)
		m["initializer"] = toJSON(n.Initializer)
	case *Conditional:
		m["kind"] = "Conditional"
		m["condition"] = toJSON(n.Condition)
		m["then"] = toJSON(n.Then)
		if n.Else != nil {
			m["else"] = toJSON(n.Else)
		} else {
			m["else"] = nil
		}
	case *WhileLoop:
		m["kind"] = "WhileLoop"
		m["condition"] = toJSON(n.Condition)
		m["body"] = toJSON(n.Body)
	case *ForEachItem:
		m["kind"] = "ForEachItem"
		m["mutable"] = n.Mutable
		m["is_reference"] = n.Reference
		m["name"] = n.Name
	case *ForEachLoop:
		m["kind"] = "ForEachLoop"
		m["item"] = toJSON(n.Item)
		m["iterator"] = toJSON(n.Iterator)
		m["body"] = toJSON(n.Body)
	case *Return:
		m["kind"] = "Return"
		m["value"] = toJSON(n.Value)
	case *Continue:
		m["kind"] = "Continue"
	case *Break:
		m["kind"] = "Break"

	case *Binary:
		m["kind"] = "Binary"
		m["operator"] = n.Op.String()
		m["left"] = toJSON(n.Left)
		m["right"] = toJSON(n.Right)
	case *Unary:
		m["kind"] = "Unary"
		m["operator"] = n.Op.Name()
		m["operand"] = toJSON(n.Operand)
	case *Access:
		m["kind"] = "Access"
		m["object"] = toJSON(n.Object)
		m["member"] = n.Member
	case *Call:
		m["kind"] = "Call"
		m["callee"] = toJSON(n.Callee)
		m["arguments"] = listJSON(len(n.Args), func(i int) Node { return n.Args[i] })
	case *Identifier:
		m["kind"] = "Identifier"
		m["name"] = n.Name
	case *IntegerLiteral:
		m["kind"] = "IntegerLiteral"
		m["value"] = n.Value
	case *DecimalLiteral:
		m["kind"] = "DecimalLiteral"
		m["negative"] = n.Negative
		m["integer"] = n.Integer
		m["fraction"] = n.Fraction
	case *StringLiteral:
		m["kind"] = "StringLiteral"
		m["value"] = n.Value
	case *BooleanLiteral:
		m["kind"] = "BooleanLiteral"
		m["value"] = n.Value
	case *ListLiteral:
		m["kind"] = "ListLiteral"
		m["elements"] = listJSON(len(n.Elements), func(i int) Node { return n.Elements[i] })
	case *Parenthesized:
		m["kind"] = "Parenthesized"
		m["inner"] = toJSON(n.Inner)

	case *RawType:
		m["kind"] = "RawType"
		m["name"] = n.Name
	case *TemplateType:
		m["kind"] = "TemplateType"
		m["name"] = n.Name
		m["arguments"] = listJSON(len(n.Args), func(i int) Node { return n.Args[i] })
	case *RefType:
		m["kind"] = "RefType"
		m["mutable"] = n.Mutable
		m["inner"] = toJSON(n.Inner)
	case *CompType:
		m["kind"] = "CompType"
		m["mutable"] = n.Mutable
		m["inner"] = toJSON(n.Inner)
	}
	return m
}

func listJSON(n int, at func(int) Node) []interface{} {
	out := make([]interface{}, n)
	for i := range out {
		out[i] = toJSON(at(i))
	}
	return out
}
