// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"unicode"

	"github.com/Masterminds/semver/v3"
	"github.com/naoina/toml"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/ila-lang/lang/cache"
	"github.com/probechain/ila-lang/lang/parser"
)

var (
	dumpConfigCommand = cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "[FILE]",
		Description: `The dumpconfig command shows configuration values, optionally writing them to FILE.`,
	}

	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://pkg.go.dev/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

type logConfig struct {
	Verbosity int
	Color     string // auto, always or never
}

type outputConfig struct {
	Format string // dump, json, spew or string
}

type cacheConfig struct {
	Size int
}

type ilacConfig struct {
	// Require is a semantic version constraint ilac must satisfy,
	// e.g. ">= 0.3, < 1".
	Require string `toml:",omitempty"`

	Parser parser.Config
	Log    logConfig
	Output outputConfig
	Cache  cacheConfig
}

func defaultConfig() ilacConfig {
	return ilacConfig{
		Parser: parser.DefaultConfig,
		Log:    logConfig{Verbosity: 3, Color: "auto"},
		Output: outputConfig{Format: "dump"},
		Cache:  cacheConfig{Size: cache.DefaultSize},
	}
}

func loadConfig(file string, cfg *ilacConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = decodeConfig(bufio.NewReader(f), cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

func decodeConfig(r io.Reader, cfg *ilacConfig) error {
	return tomlSettings.NewDecoder(r).Decode(cfg)
}

// makeConfig loads defaults, the config file and then flags, in that order.
func makeConfig(ctx *cli.Context) (*ilacConfig, error) {
	cfg := defaultConfig()

	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return nil, err
		}
	}
	if ctx.GlobalIsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.GlobalInt(verbosityFlag.Name)
	}
	if err := checkRequire(cfg.Require, version); err != nil {
		return nil, err
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// checkRequire verifies that the running version satisfies the constraint.
func checkRequire(constraint, running string) error {
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid Require constraint %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(running)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("ilac %s does not satisfy the configured requirement %q", running, constraint)
	}
	return nil
}

func validateConfig(cfg *ilacConfig) error {
	switch cfg.Output.Format {
	case "dump", "json", "spew", "string":
	default:
		return fmt.Errorf("unknown output format %q", cfg.Output.Format)
	}
	switch cfg.Log.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("unknown colour mode %q", cfg.Log.Color)
	}
	if cfg.Parser.MaxDepth < 0 || cfg.Parser.MaxErrors < 0 || cfg.Parser.Workers < 0 {
		return errors.New("parser limits must not be negative")
	}
	return nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg := configOf(ctx)
	out, err := tomlSettings.Marshal(cfg)
	if err != nil {
		return err
	}

	dump := os.Stdout
	if ctx.NArg() > 0 {
		dump, err = os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer dump.Close()
	}
	_, err = dump.Write(out)
	return err
}
