// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/cristalhq/acmd"

	"codeberg.org/readeck/distiller/configs"
	"codeberg.org/readeck/distiller/internal/httpclient"
	"codeberg.org/readeck/distiller/pkg/distill"
	"codeberg.org/readeck/distiller/pkg/graph"
)

func init() {
	commands = append(commands, acmd.Command{
		Name:        "extract",
		Description: "Extract the structured data of files or URIs",
		ExecFunc:    runExtract,
	})
}

// formatFlag is a boolean flag selecting an output format.
type formatFlag struct {
	dest  *string
	value string
}

func (f formatFlag) IsBoolFlag() bool { return true }

func (f formatFlag) String() string { return "" }

func (f formatFlag) Set(s string) error {
	if s == "true" {
		*f.dest = f.value
	}
	return nil
}

// extractFlags holds the extract command flags.
type extractFlags struct {
	appFlags
	rdfa      bool
	microdata bool
	turtle    bool
	jsonld    bool
	all       bool
	vocab     bool
	format    string
	base      string
	force     bool
}

func (f *extractFlags) Flags() *flag.FlagSet {
	fs := f.appFlags.Flags()
	fs.BoolVar(&f.rdfa, "r", false, "distill RDFa")
	fs.BoolVar(&f.microdata, "m", false, "distill microdata")
	fs.BoolVar(&f.turtle, "h", false, "distill embedded Turtle")
	fs.BoolVar(&f.jsonld, "l", false, "distill embedded JSON-LD")
	fs.BoolVar(&f.all, "a", false, "distill RDFa, microdata and embedded Turtle (shorthand for -r -m -h)")
	fs.BoolVar(&f.vocab, "v", false, "expand RDFa vocabularies")
	fs.StringVar(&f.format, "f", "turtle", "output format (turtle, n3, xml, pretty-xml, nt, json-ld)")
	fs.Var(formatFlag{&f.format, "turtle"}, "t", "output format Turtle")
	fs.Var(formatFlag{&f.format, "xml"}, "x", "output format RDF/XML")
	fs.Var(formatFlag{&f.format, "pretty-xml"}, "p", "output format pretty RDF/XML")
	fs.Var(formatFlag{&f.format, "nt"}, "n", "output format N-Triples")
	fs.Var(formatFlag{&f.format, "json-ld"}, "j", "output format JSON-LD")
	fs.StringVar(&f.base, "b", "", "base URI of the standard input")
	fs.BoolVar(&f.force, "force", false, "describe failures in the output graph")

	// nolint: errcheck
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: extract [arguments...] [FILE|URI...]")
		fmt.Fprintln(fs.Output(), "  FILE|URI")
		fmt.Fprintln(fs.Output(), "    \tlocal files or URIs, standard input when empty")
		fs.PrintDefaults()
	}
	return fs
}

// options returns the extraction options. Without any extractor flag,
// the configured options are used.
func (f *extractFlags) options() distill.Options {
	o := distill.Options{
		RDFa:           f.rdfa || f.all,
		Microdata:      f.microdata || f.all,
		Turtle:         f.turtle || f.all,
		JSONLD:         f.jsonld,
		VocabExpansion: f.vocab,
	}
	if o.Empty() {
		o = configs.Config.Distill.Options
		o.VocabExpansion = o.VocabExpansion || f.vocab
	}
	return o
}

func runExtract(ctx context.Context, args []string) error {
	var flags extractFlags
	fs := flags.Flags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if _, err := graph.ParseFormat(flags.format); err != nil {
		return fmt.Errorf("%w: %s", err, flags.format)
	}

	if err := appPreRun(&flags.appFlags); err != nil {
		return err
	}

	base := flags.base
	if base == "" {
		base = configs.Config.Distill.Base
	}

	var sources []distill.Source
	for _, arg := range fs.Args() {
		if arg = strings.TrimSpace(arg); arg != "" {
			sources = append(sources, distill.NewSource(arg))
		}
	}
	if len(sources) == 0 {
		sources = []distill.Source{distill.ReaderSource{R: stdin, Name: "<stdin>"}}
	}

	d := distill.New(
		distill.WithClient(httpclient.New()),
		distill.WithBase(base),
		distill.WithOptions(flags.options()),
	)

	return d.RDFFromSources(ctx, stdout, sources, flags.format, flags.force)
}
