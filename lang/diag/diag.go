// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package diag defines the structured errors reported by the lexer and the
// parser.
package diag

import (
	"fmt"

	"github.com/probechain/ila-lang/lang/token"
)

// Kind classifies an error.
type Kind int

const (
	// LexError is an unrecognised character, a malformed literal or an
	// unterminated string.
	LexError Kind = iota
	// SyntaxError is an unexpected or missing token.
	SyntaxError
	// UnexpectedEndOfInput is reported when the input ends mid-construct.
	UnexpectedEndOfInput
)

var kindNames = [...]string{
	LexError:             "lex error",
	SyntaxError:          "syntax error",
	UnexpectedEndOfInput: "unexpected end of input",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a single positioned diagnostic.
type Error struct {
	Kind Kind
	Pos  token.Position
	Msg  string

	// Expected and Found are set for SyntaxError and UnexpectedEndOfInput
	// raised by a failed token expectation.
	Expected string
	Found    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Msg)
}

// Errorf builds an Error with a formatted message.
func Errorf(kind Kind, pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Unexpected builds the error for a failed expectation: expected names what
// the grammar required, found is the token actually present. Hitting EOF
// turns the error into UnexpectedEndOfInput.
func Unexpected(expected string, found token.Token) *Error {
	kind := SyntaxError
	what := "'" + found.Literal + "'"
	switch {
	case found.Type == token.EOF:
		kind = UnexpectedEndOfInput
		what = "end of input"
	case found.Type.IsLiteral():
		what = fmt.Sprintf("%s %q", found.Type, found.Literal)
	}
	return &Error{
		Kind:     kind,
		Pos:      found.Pos,
		Msg:      fmt.Sprintf("expected %s, got %s", expected, what),
		Expected: expected,
		Found:    found.Type.String(),
	}
}
