// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ast_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probechain/ila-lang/lang/ast"
	"github.com/probechain/ila-lang/lang/parser"
	"github.com/probechain/ila-lang/lang/token"
)

const program = `func f(mut xs: ref Lista<Int>) -> Int {
    var n: Int;
    para cada ref x em xs {
        se não x.vazio() { n = n + *x; }
    }
    retornar n;
}`

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, errs := parser.Parse("ast.ila", src)
	require.NoError(t, errs.Err())
	return prog
}

func TestString(t *testing.T) {
	x, err := parser.ParseExpr("a - b * -c")
	require.NoError(t, err)
	assert.Equal(t, "(a - (b * (-c)))", x.String())

	x, err = parser.ParseExpr("não f(1, [2.5, \"s\"]).m")
	require.NoError(t, err)
	assert.Equal(t, `(não f(1, [2.5, "s"]).m)`, x.String())

	typ, err := parser.ParseType("mut ref comp Lista<Int, Texto>")
	require.NoError(t, err)
	assert.Equal(t, "mut ref comp Lista<Int, Texto>", typ.String())

	s, err := parser.ParseStatement("para cada mut ref i em xs { parar; }")
	require.NoError(t, err)
	assert.Equal(t, "para cada mut ref i em xs { parar; }", s.String())
}

func TestDumpNil(t *testing.T) {
	assert.Equal(t, "None", ast.Dump(nil))
	assert.Equal(t, "Return(None)", ast.Dump(&ast.Return{}))
	assert.Equal(t, "Conditional(Ident(a), [], None)", ast.Dump(&ast.Conditional{
		Condition: &ast.Identifier{Name: "a"},
		Then:      &ast.Block{},
	}))
}

func TestWalkVisitsEveryNode(t *testing.T) {
	prog := mustParse(t, program)

	counts := make(map[string]int)
	ast.Inspect(prog, func(n ast.Node) {
		switch n.(type) {
		case *ast.Identifier:
			counts["ident"]++
		case *ast.Unary:
			counts["unary"]++
		case ast.Statement:
			counts["stmt"]++
		case ast.Type:
			counts["type"]++
		}
	})
	// xs, x, n, n, x, n; vazio is a member name, not an identifier node.
	assert.Equal(t, 6, counts["ident"])
	assert.Equal(t, 2, counts["unary"])
	assert.Equal(t, 5, counts["stmt"])
	assert.Equal(t, 5, counts["type"])
}

func TestWalkPrunes(t *testing.T) {
	prog := mustParse(t, program)

	var idents int
	ast.Walk(prog, func(n ast.Node) bool {
		if _, ok := n.(*ast.ForEachLoop); ok {
			return false
		}
		if _, ok := n.(*ast.Identifier); ok {
			idents++
		}
		return true
	})
	// Only the return value remains outside the loop.
	assert.Equal(t, 1, idents)
}

func TestEqualIgnoresSpans(t *testing.T) {
	a, err := parser.ParseExpr("a+b*c")
	require.NoError(t, err)
	b, err := parser.ParseExpr("a  +  b *  c")
	require.NoError(t, err)
	assert.NotEqual(t, a.Span(), b.Span())
	assert.True(t, ast.Equal(a, b))
	assert.Empty(t, ast.Diff(a, b))

	c, err := parser.ParseExpr("(a+b)*c")
	require.NoError(t, err)
	assert.False(t, ast.Equal(a, c))
	assert.NotEmpty(t, ast.Diff(a, c))
}

func TestEqualEmptyLists(t *testing.T) {
	built := &ast.Call{Callee: &ast.Identifier{Name: "f"}, Args: []ast.Expression{}}
	parsed, err := parser.ParseExpr("f()")
	require.NoError(t, err)
	assert.True(t, ast.Equal(built, parsed))
}

func TestPrecedence(t *testing.T) {
	cases := map[string]int{
		"a = b":  ast.PrecAssign,
		"a ou b": ast.PrecLogical,
		"a == b": ast.PrecEquality,
		"a < b":  ast.PrecComparison,
		"a - b":  ast.PrecAdditive,
		"a / b":  ast.PrecMul,
		"-a":     ast.PrecUnary,
		"a.b":    ast.PrecPostfix,
		"f()":    ast.PrecPostfix,
		"(a)":    ast.PrecPrimary,
		"[a]":    ast.PrecPrimary,
	}
	for src, want := range cases {
		x, err := parser.ParseExpr(src)
		require.NoError(t, err)
		assert.Equal(t, want, ast.Precedence(x), src)
	}
}

func TestFprintJSON(t *testing.T) {
	prog := mustParse(t, "func f() -> Int { retornar -a; }")

	var buf bytes.Buffer
	require.NoError(t, ast.FprintJSON(&buf, prog))

	var out struct {
		Kind      string `json:"kind"`
		Functions []struct {
			Kind       string `json:"kind"`
			Name       string `json:"name"`
			Span       string `json:"span"`
			ReturnType struct {
				Kind string `json:"kind"`
				Name string `json:"name"`
			} `json:"return_type"`
			Body []struct {
				Kind  string `json:"kind"`
				Value struct {
					Kind     string `json:"kind"`
					Operator string `json:"operator"`
				} `json:"value"`
			} `json:"body"`
		} `json:"functions"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "Program", out.Kind)
	require.Len(t, out.Functions, 1)

	fn := out.Functions[0]
	assert.Equal(t, "Function", fn.Kind)
	assert.Equal(t, "f", fn.Name)
	assert.Equal(t, "ast.ila:1:1-1:33", fn.Span)
	assert.Equal(t, "RawType", fn.ReturnType.Kind)
	assert.Equal(t, "Int", fn.ReturnType.Name)
	require.Len(t, fn.Body, 1)
	assert.Equal(t, "Return", fn.Body[0].Kind)
	assert.Equal(t, "Unary", fn.Body[0].Value.Kind)
	assert.Equal(t, "negate", fn.Body[0].Value.Operator)
}

func TestSpanCoversChildren(t *testing.T) {
	prog := mustParse(t, program)
	ast.Walk(prog, func(n ast.Node) bool {
		parent := n.Span()
		ast.Walk(n, func(c ast.Node) bool {
			if c == n {
				return true
			}
			assert.True(t, contains(parent, c.Span()), "%T %s does not contain %T %s", n, parent, c, c.Span())
			return false
		})
		return true
	})
}

func contains(outer, inner token.Span) bool {
	return outer.Start.Offset <= inner.Start.Offset && inner.End.Offset <= outer.End.Offset
}
