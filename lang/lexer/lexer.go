// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package lexer implements a single-pass, no-backtracking lexer for the ila
// language.
//
// Design principles:
//   - UTF-8 input; identifiers are ASCII, reserved words may contain
//     non-ASCII letters (senão, não) and are compared in NFC form
//   - '#' comments run to the end of the line or the end of input
//   - A '-' directly followed by a digit is part of the numeric literal;
//     '-' followed by anything else (including whitespace) is an operator
//   - Decimal literals are integer '.' unsigned-digits
//   - String literals ("...") carry their raw content; no escapes
package lexer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/probechain/ila-lang/lang/diag"
	"github.com/probechain/ila-lang/lang/token"
)

const eof = -1

// Lexer holds the state for a single-pass tokenization run.
type Lexer struct {
	filename string
	input    string

	// off is the byte offset of ch; next is the offset of the rune after it.
	off  int
	next int
	line int // 1-based current line number
	col  int // 1-based current column number, in runes

	ch rune // current character; eof when past end

	err    *diag.Error   // error for the most recent ILLEGAL token
	errors []*diag.Error // every lexical error, in source order
}

// New creates a new Lexer for the given filename and input string.
func New(filename, input string) *Lexer {
	l := &Lexer{
		filename: filename,
		input:    input,
		line:     1,
		col:      0,
	}
	l.advance() // prime l.ch with the first rune
	return l
}

// advance moves to the next rune in the input, updating line/column tracking.
// When the end of input is reached, ch is set to eof.
func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.off = l.next
	if l.next >= len(l.input) {
		l.ch = eof
		return
	}
	r, w := rune(l.input[l.next]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRuneInString(l.input[l.next:])
	}
	l.ch = r
	l.next += w
}

// peek returns the rune after the current character without consuming it.
func (l *Lexer) peek() rune {
	if l.next >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.next:])
	return r
}

// currentPos returns a token.Position for the current character.
// Call this before consuming the first character of a token.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		File:   l.filename,
		Line:   l.line,
		Column: l.col,
		Offset: l.off,
	}
}

func makeToken(typ token.Type, literal string, pos token.Position) token.Token {
	return token.Token{Type: typ, Literal: literal, Pos: pos}
}

// illegal records a lexical error and returns the ILLEGAL token covering
// input[pos.Offset:l.off].
func (l *Lexer) illegal(pos, errPos token.Position, format string, args ...interface{}) token.Token {
	l.err = diag.Errorf(diag.LexError, errPos, format, args...)
	l.errors = append(l.errors, l.err)
	return makeToken(token.ILLEGAL, l.input[pos.Offset:l.off], pos)
}

// skipSpaceAndComments discards whitespace and '#' comments. A comment ends
// at the next newline or at the end of input.
func (l *Lexer) skipSpaceAndComments() {
	for {
		switch {
		case l.ch == '#':
			for l.ch != '\n' && l.ch != eof {
				l.advance()
			}
		case l.ch != eof && unicode.IsSpace(l.ch):
			l.advance()
		default:
			return
		}
	}
}

// NextToken scans and returns the next token from the input.
// After EOF is reached, subsequent calls continue returning EOF tokens.
func (l *Lexer) NextToken() token.Token {
	l.skipSpaceAndComments()

	pos := l.currentPos()
	ch := l.ch

	switch {
	case ch == eof:
		return makeToken(token.EOF, "", pos)
	case isIdentStart(ch) || isWordRune(ch):
		return l.readWord(pos)
	case isDigit(ch):
		return l.readNumber(pos)
	}

	l.advance() // consume ch; from here on, l.ch is the character AFTER ch

	switch ch {
	case '"':
		return l.readString(pos)

	case '-':
		switch {
		case isDigit(l.ch):
			return l.readNumber(pos)
		case l.ch == '>':
			l.advance()
			return makeToken(token.ARROW, "->", pos)
		}
		return makeToken(token.MINUS, "-", pos)

	case '=':
		if l.ch == '=' {
			l.advance()
			return makeToken(token.EQ, "==", pos)
		}
		return makeToken(token.ASSIGN, "=", pos)
	case '!':
		if l.ch == '=' {
			l.advance()
			return makeToken(token.NEQ, "!=", pos)
		}
		return l.illegal(pos, pos, "unexpected character '!' (did you mean '!=' or 'não'?)")
	case '<':
		if l.ch == '=' {
			l.advance()
			return makeToken(token.LTE, "<=", pos)
		}
		return makeToken(token.LT, "<", pos)
	case '>':
		if l.ch == '=' {
			l.advance()
			return makeToken(token.GTE, ">=", pos)
		}
		return makeToken(token.GT, ">", pos)

	case '+':
		return makeToken(token.PLUS, "+", pos)
	case '*':
		return makeToken(token.STAR, "*", pos)
	case '/':
		return makeToken(token.SLASH, "/", pos)
	case '.':
		return makeToken(token.DOT, ".", pos)
	case '(':
		return makeToken(token.LPAREN, "(", pos)
	case ')':
		return makeToken(token.RPAREN, ")", pos)
	case '{':
		return makeToken(token.LBRACE, "{", pos)
	case '}':
		return makeToken(token.RBRACE, "}", pos)
	case '[':
		return makeToken(token.LBRACKET, "[", pos)
	case ']':
		return makeToken(token.RBRACKET, "]", pos)
	case ',':
		return makeToken(token.COMMA, ",", pos)
	case ':':
		return makeToken(token.COLON, ":", pos)
	case ';':
		return makeToken(token.SEMICOLON, ";", pos)
	}

	if ch == utf8.RuneError {
		return l.illegal(pos, pos, "invalid UTF-8 encoding")
	}
	return l.illegal(pos, pos, "unexpected character %q", ch)
}

// Tokenize returns all tokens (including the final EOF) produced by repeated
// calls to NextToken. The returned error is the first lexical error, if any;
// the token slice is complete either way, with ILLEGAL tokens in place.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	if len(l.errors) > 0 {
		return toks, l.errors[0]
	}
	return toks, nil
}

// Err returns the error that produced the most recent ILLEGAL token.
func (l *Lexer) Err() *diag.Error {
	return l.err
}

// Errors returns every lexical error seen so far, in source order.
func (l *Lexer) Errors() []*diag.Error {
	return l.errors
}

// ---------------------------------------------------------------------------
// Internal readers
// ---------------------------------------------------------------------------

// readWord reads an identifier-shaped word starting at the current
// character. Words are classified by the reserved-word table; a word with
// non-ASCII letters is only valid when it spells a reserved word.
func (l *Lexer) readWord(pos token.Position) token.Token {
	ascii := true
	var bad token.Position
	for isIdentContinue(l.ch) || isWordRune(l.ch) {
		if l.ch >= utf8.RuneSelf && ascii {
			ascii = false
			bad = l.currentPos()
		}
		l.advance()
	}
	word := l.input[pos.Offset:l.off]
	if ascii {
		return makeToken(token.LookupIdent(word), word, pos)
	}
	if typ := token.LookupIdent(norm.NFC.String(word)); typ != token.IDENT {
		return makeToken(typ, word, pos)
	}
	r, _ := utf8.DecodeRuneInString(l.input[bad.Offset:])
	return l.illegal(pos, bad, "invalid character %q in identifier %q", r, word)
}

// readNumber reads an INT or DECIMAL literal. The literal starts at
// pos.Offset; an optional '-' has already been consumed and l.ch is the
// first digit.
func (l *Lexer) readNumber(pos token.Position) token.Token {
	first := l.currentPos()
	leadingZero := l.ch == '0' && isDigit(l.peek())
	for isDigit(l.ch) {
		l.advance()
	}
	typ := token.INT
	if l.ch == '.' && isDigit(l.peek()) {
		l.advance() // consume '.'
		for isDigit(l.ch) {
			l.advance()
		}
		typ = token.DECIMAL
	}
	if leadingZero {
		return l.illegal(pos, first, "numeric literal %q has a leading zero", l.input[pos.Offset:l.off])
	}
	return makeToken(typ, l.input[pos.Offset:l.off], pos)
}

// readString reads the content of a string literal after the opening '"'
// has been consumed. Content may span lines and is kept verbatim.
func (l *Lexer) readString(pos token.Position) token.Token {
	start := l.off
	for l.ch != '"' {
		if l.ch == eof {
			return l.illegal(pos, pos, "unterminated string literal")
		}
		l.advance()
	}
	content := l.input[start:l.off]
	l.advance() // consume closing '"'
	return makeToken(token.STRING, content, pos)
}

// ---------------------------------------------------------------------------
// Character classification helpers
// ---------------------------------------------------------------------------

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}

// isWordRune reports whether ch is a non-ASCII letter or combining mark that
// may appear inside a reserved word.
func isWordRune(ch rune) bool {
	return ch >= utf8.RuneSelf && ch != utf8.RuneError &&
		(unicode.IsLetter(ch) || unicode.Is(unicode.Mn, ch))
}
