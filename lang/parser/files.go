// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package parser

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/probechain/ila-lang/lang/ast"
)

// Source is one named compilation unit.
type Source struct {
	Filename string
	Text     string
}

// Result is the outcome of parsing one Source.
type Result struct {
	Filename string
	Program  *ast.Program
	Errors   ErrorList
}

// ParseFiles parses every source concurrently, bounded by c.Workers.
// Results are returned in input order. Syntax errors are reported per
// result; the returned error is only set when ctx is cancelled.
func (c Config) ParseFiles(ctx context.Context, sources []Source) ([]*Result, error) {
	results := make([]*Result, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	if c.Workers > 0 {
		g.SetLimit(c.Workers)
	}
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			prog, errs, err := c.ParseContext(gctx, src.Filename, src.Text)
			if err != nil {
				return fmt.Errorf("%s: %w", src.Filename, err)
			}
			results[i] = &Result{Filename: src.Filename, Program: prog, Errors: errs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
