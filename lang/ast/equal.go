// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ast

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/probechain/ila-lang/lang/token"
)

// structural compares trees by shape and values only: spans are ignored and
// a nil slice equals an empty one.
var structural = cmp.Options{
	cmpopts.IgnoreTypes(token.Span{}),
	cmpopts.EquateEmpty(),
}

// Equal reports whether two trees are structurally identical.
func Equal(a, b Node) bool {
	return cmp.Equal(a, b, structural)
}

// Diff returns a human-readable report of the structural differences between
// two trees, or "" when they are equal.
func Diff(a, b Node) string {
	return cmp.Diff(a, b, structural)
}
