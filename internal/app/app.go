// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package app provides the distiller commands.
package app

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cristalhq/acmd"

	"codeberg.org/readeck/distiller/configs"
)

const (
	bold       = "\033[1m"
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
)

var commands = []acmd.Command{}

var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

// appFlags holds the flags shared by every command.
type appFlags struct {
	ConfigFile string
}

// Flags returns a new flag set with the common flags.
func (f *appFlags) Flags() *flag.FlagSet {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.StringVar(&f.ConfigFile, "config", os.Getenv("DISTILLER_CONFIG"), "configuration file")
	return fs
}

// appPreRun loads the configuration and sets up the logger.
func appPreRun(flags *appFlags) error {
	if err := configs.LoadConfiguration(flags.ConfigFile); err != nil {
		return err
	}
	initLogger(os.Stderr)

	if flags.ConfigFile != "" {
		slog.Debug("configuration loaded", slog.String("file", flags.ConfigFile))
	}
	return nil
}

// Run starts the command line application.
func Run() error {
	r := acmd.RunnerOf(commands, acmd.Config{
		AppName:        "distiller",
		AppDescription: "Structured data distiller for RDFa, microdata and embedded Turtle",
		Version:        configs.Version,
	})
	return r.Run()
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s%s%s: %s\n", bold, msg, colorReset, err) //nolint:errcheck
	os.Exit(1)
}
