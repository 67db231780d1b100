// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ast

import "fmt"

// BinaryOp is a binary operator.
type BinaryOp int

const (
	OpAssign BinaryOp = iota // =
	OpAnd                    // e
	OpOr                     // ou
	OpEq                     // ==
	OpNeq                    // !=
	OpLt                     // <
	OpGt                     // >
	OpLe                     // <=
	OpGe                     // >=
	OpAdd                    // +
	OpSub                    // -
	OpMul                    // *
	OpDiv                    // /
)

var binaryOpNames = [...]string{
	OpAssign: "=",
	OpAnd:    "e",
	OpOr:     "ou",
	OpEq:     "==",
	OpNeq:    "!=",
	OpLt:     "<",
	OpGt:     ">",
	OpLe:     "<=",
	OpGe:     ">=",
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
}

func (op BinaryOp) String() string {
	if op >= 0 && int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return fmt.Sprintf("BinaryOp(%d)", int(op))
}

// Binding strengths, loosest first. Every binary tier is left-associative.
const (
	PrecAssign     = 1 // =
	PrecLogical    = 2 // e ou
	PrecEquality   = 3 // == !=
	PrecComparison = 4 // < > <= >=
	PrecAdditive   = 5 // + -
	PrecMul        = 6 // * /
	PrecUnary      = 7 // prefix * não -
	PrecPostfix    = 8 // . (...)
	PrecPrimary    = 9 // identifiers, literals, ( ... )
)

// Precedence returns the binding strength of the operator.
func (op BinaryOp) Precedence() int {
	switch op {
	case OpAssign:
		return PrecAssign
	case OpAnd, OpOr:
		return PrecLogical
	case OpEq, OpNeq:
		return PrecEquality
	case OpLt, OpGt, OpLe, OpGe:
		return PrecComparison
	case OpAdd, OpSub:
		return PrecAdditive
	case OpMul, OpDiv:
		return PrecMul
	}
	return 0
}

// UnaryOp is a prefix operator.
type UnaryOp int

const (
	OpDeref UnaryOp = iota // *
	OpNot                  // não
	OpNeg                  // -
)

var unaryOpNames = [...]string{
	OpDeref: "*",
	OpNot:   "não",
	OpNeg:   "-",
}

func (op UnaryOp) String() string {
	if op >= 0 && int(op) < len(unaryOpNames) {
		return unaryOpNames[op]
	}
	return fmt.Sprintf("UnaryOp(%d)", int(op))
}

// Name returns the descriptive name used by Dump and the JSON encoding.
func (op UnaryOp) Name() string {
	switch op {
	case OpDeref:
		return "deref"
	case OpNot:
		return "não"
	case OpNeg:
		return "negate"
	}
	return op.String()
}

// Precedence returns the binding strength of an expression node: the
// operator tier for Binary and Unary, PrecPostfix for Access and Call, and
// PrecPrimary for leaves and parenthesised expressions.
func Precedence(e Expression) int {
	switch e := e.(type) {
	case *Binary:
		return e.Op.Precedence()
	case *Unary:
		return PrecUnary
	case *Access, *Call:
		return PrecPostfix
	}
	return PrecPrimary
}
