// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probechain/ila-lang/lang/diag"
	"github.com/probechain/ila-lang/lang/lexer"
	"github.com/probechain/ila-lang/lang/token"
)

// tokenCase is a single expected token in a table-driven test.
type tokenCase struct {
	typ     token.Type
	literal string
}

// runTokenize lexes input and checks that it produces exactly the expected
// sequence (plus a final EOF) without errors.
func runTokenize(t *testing.T, name, input string, want []tokenCase) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		t.Helper()
		toks, err := lexer.New("test.ila", input).Tokenize()
		require.NoError(t, err)
		require.NotEmpty(t, toks)

		last := toks[len(toks)-1]
		if last.Type != token.EOF {
			t.Errorf("last token is %s, want EOF", last.Type)
		}
		body := toks[:len(toks)-1]

		if len(body) != len(want) {
			t.Errorf("got %d tokens (excl. EOF), want %d", len(body), len(want))
			for i, tok := range body {
				t.Logf("  [%d] %s %q", i, tok.Type, tok.Literal)
			}
			return
		}
		for i, w := range want {
			got := body[i]
			if got.Type != w.typ {
				t.Errorf("token[%d]: type = %s, want %s (literal %q)", i, got.Type, w.typ, got.Literal)
			}
			if got.Literal != w.literal {
				t.Errorf("token[%d]: literal = %q, want %q", i, got.Literal, w.literal)
			}
		}
	})
}

// lexError lexes input and returns the first error, which must exist.
func lexError(t *testing.T, input string) *diag.Error {
	t.Helper()
	l := lexer.New("test.ila", input)
	_, err := l.Tokenize()
	require.Error(t, err)
	require.NotEmpty(t, l.Errors())
	return l.Errors()[0]
}

// ---------------------------------------------------------------------------
// Operators and punctuation
// ---------------------------------------------------------------------------

func TestOperators(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantTyp token.Type
	}{
		{"assign", "=", token.ASSIGN},
		{"eq", "==", token.EQ},
		{"neq", "!=", token.NEQ},
		{"lt", "<", token.LT},
		{"gt", ">", token.GT},
		{"lte", "<=", token.LTE},
		{"gte", ">=", token.GTE},
		{"plus", "+", token.PLUS},
		{"minus", "-", token.MINUS},
		{"star", "*", token.STAR},
		{"slash", "/", token.SLASH},
		{"dot", ".", token.DOT},
		{"arrow", "->", token.ARROW},
		{"lparen", "(", token.LPAREN},
		{"rparen", ")", token.RPAREN},
		{"lbrace", "{", token.LBRACE},
		{"rbrace", "}", token.RBRACE},
		{"lbracket", "[", token.LBRACKET},
		{"rbracket", "]", token.RBRACKET},
		{"comma", ",", token.COMMA},
		{"colon", ":", token.COLON},
		{"semicolon", ";", token.SEMICOLON},
	}
	for _, c := range cases {
		runTokenize(t, c.name, c.input, []tokenCase{{c.wantTyp, c.input}})
	}
}

func TestLongestMatch(t *testing.T) {
	runTokenize(t, "eq-assign", "===", []tokenCase{
		{token.EQ, "=="}, {token.ASSIGN, "="},
	})
	runTokenize(t, "arrow-gt", "->>", []tokenCase{
		{token.ARROW, "->"}, {token.GT, ">"},
	})
	runTokenize(t, "lte-gte", "<=>=", []tokenCase{
		{token.LTE, "<="}, {token.GTE, ">="},
	})
}

// ---------------------------------------------------------------------------
// Keywords and identifiers
// ---------------------------------------------------------------------------

func TestKeywords(t *testing.T) {
	cases := []struct {
		word string
		typ  token.Type
	}{
		{"func", token.FUNC},
		{"var", token.VAR},
		{"mut", token.MUT},
		{"ref", token.REF},
		{"comp", token.COMP},
		{"se", token.IF},
		{"senão", token.ELSE},
		{"enquanto", token.WHILE},
		{"para", token.FOR},
		{"cada", token.EACH},
		{"em", token.IN},
		{"retornar", token.RETURN},
		{"continuar", token.CONTINUE},
		{"parar", token.BREAK},
		{"verdadeiro", token.TRUE},
		{"falso", token.FALSE},
		{"e", token.AND},
		{"ou", token.OR},
		{"não", token.NOT},
	}
	for _, c := range cases {
		runTokenize(t, c.word, c.word, []tokenCase{{c.typ, c.word}})
	}
}

func TestKeywordsAreWholeWords(t *testing.T) {
	toks, err := lexer.New("t.ila", "sex emx ex _e e1").Tokenize()
	require.NoError(t, err)
	for _, tok := range toks[:len(toks)-1] {
		assert.Equal(t, token.IDENT, tok.Type, "literal %q", tok.Literal)
	}
}

func TestDecomposedKeyword(t *testing.T) {
	// "não" and "senão" written with a combining tilde.
	runTokenize(t, "nao-nfd", "na\u0303o", []tokenCase{{token.NOT, "na\u0303o"}})
	runTokenize(t, "senao-nfd", "sena\u0303o", []tokenCase{{token.ELSE, "sena\u0303o"}})
}

func TestIdentifiers(t *testing.T) {
	runTokenize(t, "mixed", "lista _tmp x1 Lista_2", []tokenCase{
		{token.IDENT, "lista"},
		{token.IDENT, "_tmp"},
		{token.IDENT, "x1"},
		{token.IDENT, "Lista_2"},
	})
}

func TestNonASCIIIdentifier(t *testing.T) {
	err := lexError(t, "var ação")
	assert.Equal(t, diag.LexError, err.Kind)
	assert.Equal(t, 1, err.Pos.Line)
	assert.Equal(t, 6, err.Pos.Column, "points at the first non-ASCII letter")
}

// ---------------------------------------------------------------------------
// Literals
// ---------------------------------------------------------------------------

func TestNumbers(t *testing.T) {
	runTokenize(t, "int", "42", []tokenCase{{token.INT, "42"}})
	runTokenize(t, "zero", "0", []tokenCase{{token.INT, "0"}})
	runTokenize(t, "decimal", "3.14", []tokenCase{{token.DECIMAL, "3.14"}})
	runTokenize(t, "decimal-zero-frac", "0.05", []tokenCase{{token.DECIMAL, "0.05"}})
	runTokenize(t, "member-after-int", "1.x", []tokenCase{
		{token.INT, "1"}, {token.DOT, "."}, {token.IDENT, "x"},
	})
	runTokenize(t, "trailing-dot", "1.", []tokenCase{
		{token.INT, "1"}, {token.DOT, "."},
	})
}

func TestNegativeLiteralFusion(t *testing.T) {
	runTokenize(t, "fused", "-3", []tokenCase{{token.INT, "-3"}})
	runTokenize(t, "fused-decimal", "-1.5", []tokenCase{{token.DECIMAL, "-1.5"}})
	runTokenize(t, "separate", "- 3", []tokenCase{
		{token.MINUS, "-"}, {token.INT, "3"},
	})
	runTokenize(t, "double", "--3", []tokenCase{
		{token.MINUS, "-"}, {token.INT, "-3"},
	})
	runTokenize(t, "after-ident", "a-1", []tokenCase{
		{token.IDENT, "a"}, {token.INT, "-1"},
	})
}

func TestLeadingZero(t *testing.T) {
	for _, src := range []string{"007", "-01", "00.5"} {
		err := lexError(t, src)
		assert.Equal(t, diag.LexError, err.Kind, src)
	}
}

func TestStrings(t *testing.T) {
	runTokenize(t, "simple", `"olá mundo"`, []tokenCase{{token.STRING, "olá mundo"}})
	runTokenize(t, "empty", `""`, []tokenCase{{token.STRING, ""}})
	runTokenize(t, "multiline", "\"a\nb\"", []tokenCase{{token.STRING, "a\nb"}})
	runTokenize(t, "hash-inside", `"# not a comment"`, []tokenCase{{token.STRING, "# not a comment"}})
}

func TestUnterminatedString(t *testing.T) {
	err := lexError(t, `var s: Texto = "abc`)
	assert.Equal(t, diag.LexError, err.Kind)
	assert.Equal(t, 16, err.Pos.Column)
}

// ---------------------------------------------------------------------------
// Comments, whitespace and positions
// ---------------------------------------------------------------------------

func TestComments(t *testing.T) {
	runTokenize(t, "line", "a # comentário\nb", []tokenCase{
		{token.IDENT, "a"}, {token.IDENT, "b"},
	})
	runTokenize(t, "at-eof", "a # fim", []tokenCase{{token.IDENT, "a"}})
	runTokenize(t, "only", "# nada", nil)
}

func TestPositions(t *testing.T) {
	toks, err := lexer.New("pos.ila", "func f\n  não x").Tokenize()
	require.NoError(t, err)
	require.Len(t, toks, 5)

	want := []token.Position{
		{File: "pos.ila", Line: 1, Column: 1, Offset: 0},
		{File: "pos.ila", Line: 1, Column: 6, Offset: 5},
		{File: "pos.ila", Line: 2, Column: 3, Offset: 9},
		{File: "pos.ila", Line: 2, Column: 7, Offset: 14},
		{File: "pos.ila", Line: 2, Column: 8, Offset: 15},
	}
	for i, w := range want {
		assert.Equal(t, w, toks[i].Pos, "token %d (%s)", i, toks[i].Type)
	}
	assert.Equal(t, token.EOF, toks[4].Type)
}

func TestIllegalCharacters(t *testing.T) {
	for _, src := range []string{"@", "a ! b", "$x", "%"} {
		err := lexError(t, src)
		assert.Equal(t, diag.LexError, err.Kind, src)
	}
}

func TestErrLatestIllegal(t *testing.T) {
	l := lexer.New("t.ila", "a @ b $")
	var illegal int
	for tok := l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
		if tok.Type == token.ILLEGAL {
			illegal++
			require.NotNil(t, l.Err())
			assert.Equal(t, tok.Pos, l.Err().Pos)
		}
	}
	assert.Equal(t, 2, illegal)
	assert.Len(t, l.Errors(), 2)
}

func TestEOFRepeats(t *testing.T) {
	l := lexer.New("t.ila", "x")
	l.NextToken()
	for i := 0; i < 3; i++ {
		assert.Equal(t, token.EOF, l.NextToken().Type)
	}
}

func TestFunctionHeader(t *testing.T) {
	runTokenize(t, "header", "func soma(mut a: Int, b: Lista<Int>) -> Int {", []tokenCase{
		{token.FUNC, "func"},
		{token.IDENT, "soma"},
		{token.LPAREN, "("},
		{token.MUT, "mut"},
		{token.IDENT, "a"},
		{token.COLON, ":"},
		{token.IDENT, "Int"},
		{token.COMMA, ","},
		{token.IDENT, "b"},
		{token.COLON, ":"},
		{token.IDENT, "Lista"},
		{token.LT, "<"},
		{token.IDENT, "Int"},
		{token.GT, ">"},
		{token.RPAREN, ")"},
		{token.ARROW, "->"},
		{token.IDENT, "Int"},
		{token.LBRACE, "{"},
	})
}
