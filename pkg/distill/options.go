// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package distill

import (
	"fmt"
	"strings"
)

// Options selects the extractors run on every source.
// VocabExpansion only has an effect when RDFa is enabled.
type Options struct {
	RDFa           bool `json:"rdfa" yaml:"rdfa" env:"RDFA"`
	Microdata      bool `json:"microdata" yaml:"microdata" env:"MICRODATA"`
	Turtle         bool `json:"hturtle" yaml:"hturtle" env:"HTURTLE"`
	JSONLD         bool `json:"jsonld" yaml:"jsonld" env:"JSONLD"`
	VocabExpansion bool `json:"vocab_expansion" yaml:"vocab_expansion" env:"VOCAB_EXPANSION"`
}

// DefaultOptions returns the options enabling RDFa, microdata and
// embedded Turtle.
func DefaultOptions() Options {
	return Options{
		RDFa:      true,
		Microdata: true,
		Turtle:    true,
	}
}

// Empty returns true when no extractor is enabled.
func (o Options) Empty() bool {
	return !o.RDFa && !o.Microdata && !o.Turtle && !o.JSONLD
}

// String returns a human readable summary of the options.
func (o Options) String() string {
	b := new(strings.Builder)
	b.WriteString("Current options:\n")
	for _, x := range []struct {
		label string
		value bool
	}{
		{"extract turtle", o.Turtle},
		{"extract rdfa", o.RDFa},
		{"extract microdata", o.Microdata},
		{"extract json-ld", o.JSONLD},
		{"expand rdfa vocabularies", o.VocabExpansion},
	} {
		fmt.Fprintf(b, "  %-26s: %t\n", x.label, x.value)
	}
	return b.String()
}
