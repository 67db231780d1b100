// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Command ilac is the ila language front end.
//
// Usage:
//
//	ilac [global flags] <command> [flags] <source.ila>...
//
// Commands:
//
//	tokens      Print the token stream of a file
//	parse       Parse files and print their syntax trees
//	fmt         Print files in canonical form
//	check       Parse files and verify printer round trips
//	watch       Re-parse files whenever they change
//	repl        Interactive parser shell
//	dumpconfig  Show configuration values
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"
)

const version = "0.3.0"

var (
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: 3,
	}
	formatFlag = cli.StringFlag{
		Name:  "format",
		Usage: "Tree output format: dump, json, spew or string",
	}
	writeFlag = cli.BoolFlag{
		Name:  "write, w",
		Usage: "Write the canonical form back to the source file",
	}
)

var app = newApp()

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "ilac"
	app.Usage = "the ila language front end"
	app.Version = version
	app.Flags = []cli.Flag{
		configFileFlag,
		verbosityFlag,
	}
	app.Commands = []cli.Command{
		tokensCommand,
		parseCommand,
		fmtCommand,
		checkCommand,
		watchCommand,
		replCommand,
		dumpConfigCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		setupLogging(cfg.Log)
		app.Metadata = map[string]interface{}{"config": cfg}
		log.Debug("Loaded configuration", "version", version, "workers", cfg.Parser.Workers, "maxdepth", cfg.Parser.MaxDepth)
		return nil
	}
	return app
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// configOf returns the configuration loaded by the Before hook.
func configOf(ctx *cli.Context) *ilacConfig {
	if cfg, ok := ctx.App.Metadata["config"].(*ilacConfig); ok {
		return cfg
	}
	cfg := defaultConfig()
	return &cfg
}

// setupLogging installs the root log handler and the colour policy for
// diagnostics.
func setupLogging(cfg logConfig) {
	usecolor := useColor(cfg.Color)
	color.NoColor = !usecolor

	output := io.Writer(os.Stderr)
	if usecolor {
		output = colorable.NewColorableStderr()
	}
	glogger := log.NewGlogHandler(log.StreamHandler(output, log.TerminalFormat(usecolor)))
	glogger.Verbosity(log.Lvl(cfg.Verbosity))
	log.Root().SetHandler(glogger)
}

func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	fd := os.Stderr.Fd()
	return (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) && os.Getenv("TERM") != "dumb"
}
