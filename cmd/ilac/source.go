// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/fatih/color"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/ila-lang/lang/parser"
)

// readSource maps filename read-only and copies its contents out.
// Empty files cannot be mapped and are returned as "".
func readSource(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return "", fmt.Errorf("%s is a directory", filename)
	}
	if fi.Size() == 0 {
		return "", nil
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return "", err
	}
	defer m.Unmap()
	return string(m), nil
}

// readSources loads every file named on the command line.
func readSources(ctx *cli.Context) ([]parser.Source, error) {
	if ctx.NArg() == 0 {
		return nil, fmt.Errorf("no source files given (usage: ilac %s %s)", ctx.Command.Name, ctx.Command.ArgsUsage)
	}
	sources := make([]parser.Source, 0, ctx.NArg())
	for _, name := range ctx.Args() {
		text, err := readSource(name)
		if err != nil {
			return nil, err
		}
		sources = append(sources, parser.Source{Filename: name, Text: text})
	}
	return sources, nil
}

var (
	posColor  = color.New(color.Bold)
	kindColor = color.New(color.FgRed, color.Bold)
	noteColor = color.New(color.Faint)
	okColor   = color.New(color.FgGreen)
)

// printErrors writes one line per function error.
func printErrors(w io.Writer, errs parser.ErrorList) {
	for _, e := range errs {
		fmt.Fprintf(w, "%s: %s %s", posColor.Sprint(e.Err.Pos), kindColor.Sprint(e.Err.Kind.String()+":"), e.Err.Msg)
		if e.Function != "" {
			fmt.Fprint(w, " ", noteColor.Sprintf("(in function %s)", e.Function))
		}
		fmt.Fprintln(w)
	}
}

// failed is returned by commands that already printed their diagnostics.
func failed(n int) error {
	if n == 0 {
		return nil
	}
	return cli.NewExitError("", 1)
}
