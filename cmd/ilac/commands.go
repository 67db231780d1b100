// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/log"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/ila-lang/lang/ast"
	"github.com/probechain/ila-lang/lang/lexer"
	"github.com/probechain/ila-lang/lang/parser"
	"github.com/probechain/ila-lang/lang/printer"
	"github.com/probechain/ila-lang/lang/token"
)

var (
	tokensCommand = cli.Command{
		Action:    tokensCmd,
		Name:      "tokens",
		Usage:     "Print the token stream of a source file",
		ArgsUsage: "<source.ila>",
	}
	parseCommand = cli.Command{
		Action:    parseCmd,
		Name:      "parse",
		Usage:     "Parse source files and print their syntax trees",
		ArgsUsage: "<source.ila>...",
		Flags:     []cli.Flag{formatFlag},
	}
	fmtCommand = cli.Command{
		Action:    fmtCmd,
		Name:      "fmt",
		Usage:     "Print source files in canonical form",
		ArgsUsage: "<source.ila>...",
		Flags:     []cli.Flag{writeFlag},
	}
	checkCommand = cli.Command{
		Action:    checkCmd,
		Name:      "check",
		Usage:     "Parse source files and verify printer and token round trips",
		ArgsUsage: "<source.ila>...",
	}
)

// spewConfig renders trees without pointer noise.
var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// interruptContext is cancelled on SIGINT.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func tokensCmd(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("usage: ilac tokens %s", ctx.Command.ArgsUsage)
	}
	filename := ctx.Args().First()
	source, err := readSource(filename)
	if err != nil {
		return err
	}
	l := lexer.New(filename, source)
	toks, _ := l.Tokenize()
	writeTokenTable(os.Stdout, toks)

	for _, err := range l.Errors() {
		fmt.Fprintf(os.Stderr, "%s: %s %s\n", posColor.Sprint(err.Pos), kindColor.Sprint(err.Kind.String()+":"), err.Msg)
	}
	return failed(len(l.Errors()))
}

func writeTokenTable(w io.Writer, toks []token.Token) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Position", "Type", "Literal"})
	table.SetAutoWrapText(false)
	for _, tok := range toks {
		table.Append([]string{tok.Pos.String(), tok.Type.String(), strconv.Quote(tok.Literal)})
	}
	table.Render()
}

func parseCmd(ctx *cli.Context) error {
	cfg := configOf(ctx)
	format := cfg.Output.Format
	if ctx.IsSet(formatFlag.Name) {
		format = ctx.String(formatFlag.Name)
	}
	sources, err := readSources(ctx)
	if err != nil {
		return err
	}
	cctx, cancel := interruptContext()
	defer cancel()

	results, err := cfg.Parser.ParseFiles(cctx, sources)
	if err != nil {
		return err
	}
	var nerrs int
	for _, res := range results {
		if len(results) > 1 {
			fmt.Fprintf(os.Stdout, "# %s\n", res.Filename)
		}
		if err := writeTree(os.Stdout, format, res.Program); err != nil {
			return err
		}
		printErrors(os.Stderr, res.Errors)
		nerrs += len(res.Errors)
	}
	log.Debug("Parsed files", "files", len(results), "errors", nerrs)
	return failed(nerrs)
}

func writeTree(w io.Writer, format string, prog *ast.Program) error {
	switch format {
	case "dump", "":
		_, err := fmt.Fprintln(w, ast.Dump(prog))
		return err
	case "json":
		return ast.FprintJSON(w, prog)
	case "spew":
		spewConfig.Fdump(w, prog)
		return nil
	case "string":
		_, err := fmt.Fprintln(w, prog.String())
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}

func fmtCmd(ctx *cli.Context) error {
	cfg := configOf(ctx)
	sources, err := readSources(ctx)
	if err != nil {
		return err
	}
	var nerrs int
	for _, src := range sources {
		prog, errs := cfg.Parser.Parse(src.Filename, src.Text)
		if len(errs) > 0 {
			printErrors(os.Stderr, errs)
			nerrs += len(errs)
			continue
		}
		out := printer.Source(prog)
		if !ctx.Bool(writeFlag.Name) {
			fmt.Fprint(os.Stdout, out)
			continue
		}
		if out == src.Text {
			continue
		}
		if err := os.WriteFile(src.Filename, []byte(out), 0644); err != nil {
			return err
		}
		log.Info("Formatted file", "file", src.Filename)
	}
	return failed(nerrs)
}

func checkCmd(ctx *cli.Context) error {
	cfg := configOf(ctx)
	sources, err := readSources(ctx)
	if err != nil {
		return err
	}
	var nerrs int
	for _, src := range sources {
		prog, errs := cfg.Parser.Parse(src.Filename, src.Text)
		if len(errs) > 0 {
			printErrors(os.Stderr, errs)
			nerrs += len(errs)
			continue
		}
		if err := roundTrip(cfg.Parser, src, prog); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s %v\n", posColor.Sprint(src.Filename), kindColor.Sprint("round trip:"), err)
			nerrs++
			continue
		}
		fmt.Fprintf(os.Stdout, "%s %s (%d functions)\n", okColor.Sprint("ok"), src.Filename, len(prog.Functions))
	}
	return failed(nerrs)
}

// roundTrip verifies that the canonical printing and the space-joined token
// rendering of src both parse back to prog.
func roundTrip(cfg parser.Config, src parser.Source, prog *ast.Program) error {
	printed, errs := cfg.Parse(src.Filename, printer.Source(prog))
	if err := errs.Err(); err != nil {
		return fmt.Errorf("printed source does not parse: %w", err)
	}
	if !ast.Equal(prog, printed) {
		return fmt.Errorf("printed source parses differently:\n%s", ast.Diff(prog, printed))
	}

	toks, err := lexer.New(src.Filename, src.Text).Tokenize()
	if err != nil {
		return err
	}
	rendered, errs := cfg.Parse(src.Filename, token.Render(toks))
	if err := errs.Err(); err != nil {
		return fmt.Errorf("token rendering does not parse: %w", err)
	}
	if !ast.Equal(prog, rendered) {
		return fmt.Errorf("token rendering parses differently:\n%s", ast.Diff(prog, rendered))
	}
	return nil
}
