// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package printer_test

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probechain/ila-lang/lang/ast"
	"github.com/probechain/ila-lang/lang/lexer"
	"github.com/probechain/ila-lang/lang/parser"
	"github.com/probechain/ila-lang/lang/printer"
	"github.com/probechain/ila-lang/lang/token"
)

func TestSourceLayout(t *testing.T) {
	src := `func soma(a: Int,mut b:Lista<Int>)->Int{var mut t:Int=0;para cada ref x em b{t=t+*x;}
se t>10{retornar t;}senão{retornar -1;}enquanto não pronto(){continuar;}retornar;}
func vazio() -> Nada {}`
	want := `func soma(a: Int, mut b: Lista<Int>) -> Int {
    var mut t: Int = 0;
    para cada ref x em b {
        t = t + *x;
    }
    se t > 10 {
        retornar t;
    } senão {
        retornar -1;
    }
    enquanto não pronto() {
        continuar;
    }
    retornar;
}

func vazio() -> Nada {}
`
	prog, errs := parser.Parse("layout.ila", src)
	require.NoError(t, errs.Err())
	assert.Equal(t, want, printer.Source(prog))

	// Formatting is idempotent.
	again, errs := parser.Parse("layout.ila", want)
	require.NoError(t, errs.Err())
	assert.Equal(t, want, printer.Source(again))
}

func TestNegationSpacing(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"- 3", "- 3"},
		{"-3", "-3"},
		{"- -3", "- -3"},
		{"-x", "-x"},
		{"- - x", "- -x"},
		{"- 3.x", "- 3.x"},
		{"a - -1", "a - -1"},
		{"a -1", "a - 1"},
		{"*-3", "*-3"},
		{"não(a)", "não (a)"},
	}
	for _, c := range cases {
		x, err := parser.ParseExpr(c.src)
		require.NoError(t, err, c.src)
		assert.Equal(t, c.want, printer.Source(x), c.src)
	}
}

func TestPrintKeepsParentheses(t *testing.T) {
	for _, src := range []string{"(a + b) * c", "a - (b - c)", "-(a)", "f((x))", "[(1), [2]]"} {
		x, err := parser.ParseExpr(src)
		require.NoError(t, err)
		assert.Equal(t, src, printer.Source(x))
	}
}

func TestEmptyTemplateArguments(t *testing.T) {
	src := "func f(x: Opt<>) -> Lista<> {\n    var l: Lista<> = x;\n}\n"
	prog, errs := parser.Parse("empty.ila", "func f(x:Opt<>)->Lista<>{var l:Lista<>=x;}")
	require.NoError(t, errs.Err())
	assert.Equal(t, src, printer.Source(prog))

	again, errs := parser.Parse("empty.ila", src)
	require.NoError(t, errs.Err())
	assert.True(t, ast.Equal(prog, again))
}

// ---------------------------------------------------------------------------
// Random round trips
// ---------------------------------------------------------------------------

// treeGen builds trees the parser can produce: an operand whose tier is
// too loose for its position is wrapped in Parenthesized.
type treeGen struct {
	c     fuzz.Continue
	depth int
}

const maxDepth = 4

var (
	binaryOps = []ast.BinaryOp{
		ast.OpAssign, ast.OpAnd, ast.OpOr, ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpGt,
		ast.OpLe, ast.OpGe, ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv,
	}
	unaryOps  = []ast.UnaryOp{ast.OpDeref, ast.OpNot, ast.OpNeg}
	typeNames = []string{"Int", "Texto", "Lista", "Mapa", "No"}
)

func (g *treeGen) name() string {
	const letters = "abcdefghijklmnopqrstuvwxyz_"
	for {
		var sb strings.Builder
		n := 1 + g.c.Intn(6)
		for i := 0; i < n; i++ {
			sb.WriteByte(letters[g.c.Intn(len(letters))])
		}
		if token.LookupIdent(sb.String()) == token.IDENT {
			return sb.String()
		}
	}
}

func (g *treeGen) leaf() ast.Expression {
	switch g.c.Intn(5) {
	case 0:
		return &ast.Identifier{Name: g.name()}
	case 1:
		var v int64
		g.c.Fuzz(&v)
		return &ast.IntegerLiteral{Value: v}
	case 2:
		var sb strings.Builder
		for i := 1 + g.c.Intn(4); i > 0; i-- {
			sb.WriteByte(byte('0' + g.c.Intn(10)))
		}
		return &ast.DecimalLiteral{Negative: g.c.RandBool(), Integer: g.c.RandUint64(), Fraction: sb.String()}
	case 3:
		return &ast.StringLiteral{Value: strings.ReplaceAll(g.c.RandString(), `"`, "")}
	}
	return &ast.BooleanLiteral{Value: g.c.RandBool()}
}

// expr returns an expression whose tier is at least minPrec.
func (g *treeGen) expr(minPrec int) ast.Expression {
	if g.depth >= maxDepth {
		return g.leaf()
	}
	g.depth++
	defer func() { g.depth-- }()

	var x ast.Expression
	switch g.c.Intn(9) {
	case 0, 1:
		op := binaryOps[g.c.Intn(len(binaryOps))]
		x = &ast.Binary{Op: op, Left: g.expr(op.Precedence()), Right: g.expr(op.Precedence() + 1)}
	case 2:
		x = &ast.Unary{Op: unaryOps[g.c.Intn(len(unaryOps))], Operand: g.expr(ast.PrecUnary)}
	case 3:
		x = &ast.Access{Object: g.expr(ast.PrecPostfix), Member: g.name()}
	case 4:
		x = &ast.Call{Callee: g.expr(ast.PrecPostfix), Args: g.exprs()}
	case 5:
		x = &ast.ListLiteral{Elements: g.exprs()}
	case 6:
		x = &ast.Parenthesized{Inner: g.expr(ast.PrecAssign)}
	default:
		x = g.leaf()
	}
	if ast.Precedence(x) < minPrec {
		x = &ast.Parenthesized{Inner: x}
	}
	return x
}

func (g *treeGen) exprs() []ast.Expression {
	list := make([]ast.Expression, g.c.Intn(3))
	for i := range list {
		list[i] = g.expr(ast.PrecAssign)
	}
	return list
}

func (g *treeGen) typ() ast.Type {
	name := typeNames[g.c.Intn(len(typeNames))]
	if g.depth >= maxDepth {
		return &ast.RawType{Name: name}
	}
	g.depth++
	defer func() { g.depth-- }()

	switch g.c.Intn(4) {
	case 0:
		args := make([]ast.Type, g.c.Intn(3))
		for i := range args {
			args[i] = g.typ()
		}
		return &ast.TemplateType{Name: name, Args: args}
	case 1:
		return &ast.RefType{Mutable: g.c.RandBool(), Inner: g.typ()}
	case 2:
		return &ast.CompType{Mutable: g.c.RandBool(), Inner: g.typ()}
	}
	return &ast.RawType{Name: name}
}

func (g *treeGen) block() *ast.Block {
	b := &ast.Block{}
	if g.depth >= maxDepth {
		return b
	}
	g.depth++
	defer func() { g.depth-- }()

	for i := g.c.Intn(4); i > 0; i-- {
		b.Statements = append(b.Statements, g.stmt())
	}
	return b
}

func (g *treeGen) stmt() ast.Statement {
	switch g.c.Intn(8) {
	case 0:
		s := &ast.VariableDeclaration{Mutable: g.c.RandBool(), Name: g.name(), Type: g.typ()}
		if g.c.RandBool() {
			s.Initializer = g.expr(ast.PrecAssign)
		}
		return s
	case 1:
		s := &ast.Conditional{Condition: g.expr(ast.PrecAssign), Then: g.block()}
		if g.c.RandBool() {
			s.Else = g.block()
		}
		return s
	case 2:
		return &ast.WhileLoop{Condition: g.expr(ast.PrecAssign), Body: g.block()}
	case 3:
		item := &ast.ForEachItem{Mutable: g.c.RandBool(), Reference: g.c.RandBool(), Name: g.name()}
		return &ast.ForEachLoop{Item: item, Iterator: g.expr(ast.PrecAssign), Body: g.block()}
	case 4:
		s := &ast.Return{}
		if g.c.RandBool() {
			s.Value = g.expr(ast.PrecAssign)
		}
		return s
	case 5:
		return &ast.Continue{}
	case 6:
		return &ast.Break{}
	}
	return &ast.ExpressionStatement{Expr: g.expr(ast.PrecAssign)}
}

func (g *treeGen) program() *ast.Program {
	prog := &ast.Program{}
	for i := 1 + g.c.Intn(3); i > 0; i-- {
		fn := &ast.Function{Name: g.name(), ReturnType: g.typ(), Body: g.block()}
		for j := g.c.Intn(3); j > 0; j-- {
			fn.Params = append(fn.Params, &ast.Parameter{Name: g.name(), Mutable: g.c.RandBool(), Type: g.typ()})
		}
		prog.Functions = append(prog.Functions, fn)
	}
	return prog
}

func newFuzzer(seed int64) *fuzz.Fuzzer {
	return fuzz.NewWithSeed(seed).Funcs(func(p *ast.Program, c fuzz.Continue) {
		g := &treeGen{c: c}
		*p = *g.program()
	})
}

func TestRoundTripRandomPrograms(t *testing.T) {
	f := newFuzzer(1)
	for i := 0; i < 300; i++ {
		var prog ast.Program
		f.Fuzz(&prog)

		src := printer.Source(&prog)
		parsed, errs := parser.Config{}.Parse("fuzz.ila", src)
		if !assert.NoError(t, errs.Err(), "source:\n%s", src) {
			t.Logf("tree:\n%s", spew.Sdump(&prog))
			continue
		}
		if !ast.Equal(&prog, parsed) {
			t.Fatalf("round trip #%d changed the tree:\n%s\nsource:\n%s", i, ast.Diff(&prog, parsed), src)
		}
		assert.Equal(t, src, printer.Source(parsed))
	}
}

func TestRoundTripTokenRendering(t *testing.T) {
	f := newFuzzer(2)
	for i := 0; i < 100; i++ {
		var prog ast.Program
		f.Fuzz(&prog)

		src := printer.Source(&prog)
		toks, err := lexer.New("fuzz.ila", src).Tokenize()
		require.NoError(t, err)

		rendered, errs := parser.Config{}.Parse("fuzz.ila", token.Render(toks))
		require.NoError(t, errs.Err(), "rendered:\n%s", token.Render(toks))
		if !ast.Equal(&prog, rendered) {
			t.Fatalf("token rendering #%d changed the tree:\n%s", i, ast.Diff(&prog, rendered))
		}
	}
}
