// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package token

import "strings"

// Render serialises a token stream back into source text, separating every
// token by a single space. The EOF token, if present, is dropped.
//
// Separating tokens keeps each one intact on re-lexing: a MINUS token is
// always followed by a space, so it never fuses with a following INT.
func Render(toks []Token) string {
	var sb strings.Builder
	for i, tok := range toks {
		if tok.Type == EOF {
			break
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Text())
	}
	return sb.String()
}
