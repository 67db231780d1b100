// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/probechain/ila-lang/lang/diag"
	"github.com/probechain/ila-lang/lang/token"
)

// FunctionError is the failure of one top-level function.
type FunctionError struct {
	Function string     // function name, empty if the failure preceded it
	Span     token.Span // from the function's first token to the resync point
	Err      *diag.Error
}

func (e *FunctionError) Error() string {
	if e.Function == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v (in function %s)", e.Err, e.Function)
}

func (e *FunctionError) Unwrap() error { return e.Err }

// ErrorList collects one error per malformed function, in source order.
type ErrorList []*FunctionError

func (l ErrorList) Len() int      { return len(l) }
func (l ErrorList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l ErrorList) Less(i, j int) bool {
	a, b := l[i].Err.Pos, l[j].Err.Pos
	if a.File != b.File {
		return a.File < b.File
	}
	return a.Offset < b.Offset
}

// Sort orders the list by file and then by offset.
func (l ErrorList) Sort() { sort.Stable(l) }

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Err returns nil for an empty list, so callers can write
// `if err := errs.Err(); err != nil`.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Kinds lists the error kind of every entry, mostly for tests and logs.
func (l ErrorList) Kinds() []diag.Kind {
	kinds := make([]diag.Kind, len(l))
	for i, e := range l {
		kinds[i] = e.Err.Kind
	}
	return kinds
}

// Detail renders every entry on its own line.
func (l ErrorList) Detail() string {
	var sb strings.Builder
	for _, e := range l {
		sb.WriteString(e.Error())
		sb.WriteByte('\n')
	}
	return sb.String()
}
