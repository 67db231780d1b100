// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/ila-lang/lang/ast"
	"github.com/probechain/ila-lang/lang/cache"
	"github.com/probechain/ila-lang/lang/lexer"
	"github.com/probechain/ila-lang/lang/parser"
	"github.com/probechain/ila-lang/lang/token"
)

var replCommand = cli.Command{
	Action: replCmd,
	Name:   "repl",
	Usage:  "Start an interactive parser shell",
	Description: `Each entry is parsed and its tree printed. An entry starting with 'func'
is parsed as a program, anything else as a statement or an expression.
Commands: :type T, :tokens SRC, :quit. Unbalanced braces continue the entry.`,
}

const (
	replPrompt   = "ila> "
	replContinue = "...> "
	replFilename = "<repl>"
)

func replCmd(ctx *cli.Context) error {
	cfg := configOf(ctx)
	c, err := cache.New(cfg.Cache.Size, cfg.Parser)
	if err != nil {
		return err
	}
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetMultiLineMode(true)

	history := replHistoryPath()
	if f, err := os.Open(history); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(history); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	var entry strings.Builder
	for {
		prompt := replPrompt
		if entry.Len() > 0 {
			prompt = replContinue
		}
		input, err := line.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) && entry.Len() > 0 {
				entry.Reset()
				continue
			}
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		entry.WriteString(input)
		entry.WriteByte('\n')
		if braceDepth(entry.String()) > 0 {
			continue
		}
		src := strings.TrimSpace(entry.String())
		entry.Reset()
		if src == "" {
			continue
		}
		line.AppendHistory(src)
		if src == ":quit" {
			return nil
		}
		out, err := replEval(cfg.Parser, c, src)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Fprintln(os.Stdout, out)
	}
}

// replEval evaluates one REPL entry and returns the text to show. Programs
// go through the cache; single statements, expressions and types are parsed
// directly with cfg.
func replEval(cfg parser.Config, c *cache.Cache, src string) (string, error) {
	switch {
	case strings.HasPrefix(src, ":type "):
		t, err := cfg.ParseType(strings.TrimPrefix(src, ":type "))
		if err != nil {
			return "", err
		}
		return ast.Dump(t), nil

	case strings.HasPrefix(src, ":tokens "):
		toks, err := lexer.New(replFilename, strings.TrimPrefix(src, ":tokens ")).Tokenize()
		var buf bytes.Buffer
		writeTokenTable(&buf, toks)
		return strings.TrimRight(buf.String(), "\n"), err

	case strings.HasPrefix(src, ":"):
		return "", fmt.Errorf("unknown command %q", strings.Fields(src)[0])

	case startsFunction(src):
		prog, errs, _ := c.Parse(replFilename, src)
		if len(errs) > 0 {
			return "", errors.New(strings.TrimRight(errs.Detail(), "\n"))
		}
		return ast.Dump(prog), nil
	}

	stmt, serr := cfg.ParseStatement(src)
	if serr == nil {
		return ast.Dump(stmt), nil
	}
	x, err := cfg.ParseExpr(src)
	if err == nil {
		return ast.Dump(x), nil
	}
	return "", serr
}

// startsFunction reports whether the first token of src is the 'func'
// keyword, so identifiers such as funcao are not mistaken for programs.
func startsFunction(src string) bool {
	return lexer.New(replFilename, src).NextToken().Type == token.FUNC
}

// braceDepth counts unclosed braces outside string literals and comments.
func braceDepth(src string) int {
	depth := 0
	inString, inComment := false, false
	for _, r := range src {
		switch {
		case inComment:
			inComment = r != '\n'
		case inString:
			inString = r != '"'
		case r == '"':
			inString = true
		case r == '#':
			inComment = true
		case r == '{':
			depth++
		case r == '}':
			depth--
		}
	}
	return depth
}

func replHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Debug("No home directory, keeping history in temp dir", "err", err)
		return filepath.Join(os.TempDir(), ".ilac_history")
	}
	return filepath.Join(home, ".ilac_history")
}
