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
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/ila-lang/lang/cache"
)

var watchCommand = cli.Command{
	Action:    watchCmd,
	Name:      "watch",
	Usage:     "Re-parse source files whenever they change",
	ArgsUsage: "<source.ila>...",
	Description: `The watch command parses every file once, then again after each write.
Unchanged content is served from the parse cache.`,
}

// watcher re-parses a fixed set of files on change.
type watcher struct {
	files map[string]bool // absolute paths being watched
	cache *cache.Cache
	out   io.Writer
	errs  io.Writer
}

func watchCmd(ctx *cli.Context) error {
	cfg := configOf(ctx)
	if ctx.NArg() == 0 {
		return fmt.Errorf("usage: ilac watch %s", ctx.Command.ArgsUsage)
	}
	c, err := cache.New(cfg.Cache.Size, cfg.Parser)
	if err != nil {
		return err
	}
	w := &watcher{files: make(map[string]bool), cache: c, out: os.Stdout, errs: os.Stderr}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	// Watch directories rather than files: editors often replace a file by
	// renaming over it, which drops a per-file watch.
	dirs := make(map[string]bool)
	for _, name := range ctx.Args() {
		abs, err := filepath.Abs(name)
		if err != nil {
			return err
		}
		w.files[abs] = true
		if dir := filepath.Dir(abs); !dirs[dir] {
			if err := fsw.Add(dir); err != nil {
				return err
			}
			dirs[dir] = true
		}
		w.check(abs)
	}

	cctx, cancel := interruptContext()
	defer cancel()
	return w.loop(cctx, fsw)
}

func (w *watcher) loop(ctx context.Context, fsw *fsnotify.Watcher) error {
	for {
		select {
		case <-ctx.Done():
			hits, misses := w.cache.Stats()
			log.Info("Stopped watching", "hits", hits, "misses", misses)
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !w.files[ev.Name] {
				continue
			}
			log.Debug("Source changed", "file", ev.Name, "op", ev.Op)
			w.check(ev.Name)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn("Watcher error", "err", err)
		}
	}
}

// check parses one file and reports the outcome.
func (w *watcher) check(path string) {
	source, err := readSource(path)
	if err != nil {
		// A rename-over may leave the path briefly missing.
		log.Debug("Cannot read source", "file", path, "err", err)
		return
	}
	prog, errs, hit := w.cache.Parse(path, source)
	if hit {
		return
	}
	if len(errs) > 0 {
		printErrors(w.errs, errs)
		return
	}
	fmt.Fprintf(w.out, "%s %s (%d functions)\n", okColor.Sprint("ok"), path, len(prog.Functions))
}
