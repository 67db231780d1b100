// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package cache memoises parse results by content hash, so re-parsing an
// unchanged file (watch mode, the REPL, repeated checks) is free.
package cache

import (
	"encoding/hex"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/log"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/crypto/sha3"

	"github.com/probechain/ila-lang/lang/ast"
	"github.com/probechain/ila-lang/lang/parser"
)

// DefaultSize is the number of parse results kept when no size is given.
const DefaultSize = 256

// Key identifies one (filename, source) pair.
type Key [32]byte

// Hex returns the key as a hex string.
func (k Key) Hex() string { return hex.EncodeToString(k[:]) }

// KeyOf hashes filename and source with Keccak-256. The filename is part of
// the key because error positions carry it.
func KeyOf(filename, source string) (k Key) {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(filename))
	h.Write([]byte{0})
	h.Write([]byte(source))
	h.Sum(k[:0])
	return k
}

type entry struct {
	prog *ast.Program
	errs parser.ErrorList
}

// Cache is an ARC cache of parse results. It is safe for concurrent use.
// Returned programs are shared between callers and must not be modified.
type Cache struct {
	cfg     parser.Config
	results *lru.ARCCache

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a cache holding up to size results, parsed with cfg.
func New(size int, cfg parser.Config) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	results, err := lru.NewARC(size)
	if err != nil {
		return nil, err
	}
	return &Cache{cfg: cfg, results: results}, nil
}

// Parse returns the cached result for (filename, source), parsing and
// storing it on a miss. The boolean reports a cache hit.
func (c *Cache) Parse(filename, source string) (*ast.Program, parser.ErrorList, bool) {
	key := KeyOf(filename, source)
	if v, ok := c.results.Get(key); ok {
		c.hits.Add(1)
		e := v.(*entry)
		return e.prog, e.errs, true
	}
	c.misses.Add(1)
	prog, errs := c.cfg.Parse(filename, source)
	c.results.Add(key, &entry{prog: prog, errs: errs})
	log.Trace("Cached parse result", "file", filename, "key", key.Hex(), "errors", len(errs))
	return prog, errs, false
}

// Stats returns the hit and miss counters.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached results.
func (c *Cache) Len() int { return c.results.Len() }

// Purge drops every cached result. Counters are kept.
func (c *Cache) Purge() { c.results.Purge() }
