// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package token defines the lexical token types for the ila language.
//
// Design principles:
//   - Portuguese reserved words for control flow and logic (se, enquanto, e, ou, não)
//   - A fixed reserved-word table consulted once per identifier-shaped word
//   - A leading '-' belongs to a numeric literal only when directly adjacent
//   - Brace-based blocks, ';'-terminated simple statements
package token

import "fmt"

// Token represents a lexical token.
type Token struct {
	Type    Type
	Literal string
	Pos     Position
}

// End returns the position just past the last byte of the token.
// Tokens never contain a newline except STRING, whose end is computed from
// its content.
func (t Token) End() Position {
	end := t.Pos
	text := t.Text()
	end.Offset += len(text)
	for _, r := range text {
		if r == '\n' {
			end.Line++
			end.Column = 1
		} else {
			end.Column++
		}
	}
	return end
}

// Text returns the source spelling of the token. For STRING tokens this
// re-adds the surrounding quotes that Literal omits.
func (t Token) Text() string {
	switch t.Type {
	case STRING:
		return `"` + t.Literal + `"`
	case EOF:
		return ""
	}
	return t.Literal
}

// Position tracks source location.
type Position struct {
	File   string
	Line   int // 1-based
	Column int // 1-based, counted in runes
	Offset int // 0-based byte offset
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position has been set.
func (p Position) IsValid() bool { return p.Line > 0 }

// Span is a half-open source range [Start, End).
type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	if s.Start.File != "" {
		return fmt.Sprintf("%s:%d:%d-%d:%d", s.Start.File, s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
	}
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// Type is the set of lexical token types.
type Type int

const (
	// Special tokens
	ILLEGAL Type = iota
	EOF

	// Literals
	IDENT   // foo, Lista, _tmp1
	INT     // 42, -3
	DECIMAL // 3.14, -0.5
	STRING  // "olá" (Literal holds the raw content without quotes)

	// Operators
	ASSIGN // =
	EQ     // ==
	NEQ    // !=
	LT     // <
	GT     // >
	LTE    // <=
	GTE    // >=
	PLUS   // +
	MINUS  // -  (sub / negate)
	STAR   // *  (mul / dereference)
	SLASH  // /
	DOT    // .
	ARROW  // ->

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	COLON     // :
	SEMICOLON // ;

	keywordStart
	FUNC     // func
	VAR      // var
	MUT      // mut
	REF      // ref
	COMP     // comp
	IF       // se
	ELSE     // senão
	WHILE    // enquanto
	FOR      // para
	EACH     // cada
	IN       // em
	RETURN   // retornar
	CONTINUE // continuar
	BREAK    // parar
	TRUE     // verdadeiro
	FALSE    // falso
	AND      // e
	OR       // ou
	NOT      // não
	keywordEnd
)

var tokenNames = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT:   "IDENT",
	INT:     "INT",
	DECIMAL: "DECIMAL",
	STRING:  "STRING",

	ASSIGN: "=",
	EQ:     "==",
	NEQ:    "!=",
	LT:     "<",
	GT:     ">",
	LTE:    "<=",
	GTE:    ">=",
	PLUS:   "+",
	MINUS:  "-",
	STAR:   "*",
	SLASH:  "/",
	DOT:    ".",
	ARROW:  "->",

	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	LBRACKET:  "[",
	RBRACKET:  "]",
	COMMA:     ",",
	COLON:     ":",
	SEMICOLON: ";",

	FUNC:     "func",
	VAR:      "var",
	MUT:      "mut",
	REF:      "ref",
	COMP:     "comp",
	IF:       "se",
	ELSE:     "senão",
	WHILE:    "enquanto",
	FOR:      "para",
	EACH:     "cada",
	IN:       "em",
	RETURN:   "retornar",
	CONTINUE: "continuar",
	BREAK:    "parar",
	TRUE:     "verdadeiro",
	FALSE:    "falso",
	AND:      "e",
	OR:       "ou",
	NOT:      "não",
}

// String returns the string form of a token type.
func (t Type) String() string {
	if t >= 0 && int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// IsKeyword returns true if the token is a reserved word.
func (t Type) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsOperator returns true if the token is an operator.
func (t Type) IsOperator() bool {
	return t >= ASSIGN && t <= ARROW
}

// IsLiteral returns true if the token carries a literal value.
func (t Type) IsLiteral() bool {
	return t >= IDENT && t <= STRING
}

// keywords maps reserved words to token types.
var keywords map[string]Type

func init() {
	keywords = make(map[string]Type, keywordEnd-keywordStart)
	for i := keywordStart + 1; i < keywordEnd; i++ {
		keywords[tokenNames[i]] = i
	}
}

// LookupIdent checks if an identifier-shaped word is a reserved word.
// The word must already be in NFC form.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Keywords returns the reserved words in declaration order.
func Keywords() []string {
	words := make([]string, 0, keywordEnd-keywordStart-1)
	for i := keywordStart + 1; i < keywordEnd; i++ {
		words = append(words, tokenNames[i])
	}
	return words
}
