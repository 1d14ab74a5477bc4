// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package distill

import (
	"context"
	"log/slog"

	"github.com/geoknoesis/rdf-go/rdf"
	"golang.org/x/net/html"

	"codeberg.org/readeck/distiller/pkg/extract/microdata"
	"codeberg.org/readeck/distiller/pkg/extract/rdfa"
	"codeberg.org/readeck/distiller/pkg/graph"
)

// Extractor adds the statements found in a document tree to a graph.
type Extractor interface {
	Name() string
	Enabled(Options) bool
	Extract(ctx context.Context, root *html.Node, g *graph.Graph, base string, opts Options) error
}

// DefaultExtractors returns the built-in extractors, in their run order.
func DefaultExtractors(loader rdfa.VocabLoader) []Extractor {
	return []Extractor{
		&RDFaExtractor{Loader: loader},
		MicrodataExtractor{},
		&IslandExtractor{MediaType: TurtleMediaType, Format: rdf.FormatTurtle},
		&IslandExtractor{MediaType: JSONLDMediaType, Format: rdf.FormatJSONLD},
	}
}

// RDFaExtractor runs the RDFa processor.
type RDFaExtractor struct {
	Loader rdfa.VocabLoader
}

// Name implements [Extractor].
func (e *RDFaExtractor) Name() string { return "rdfa" }

// Enabled implements [Extractor].
func (e *RDFaExtractor) Enabled(o Options) bool { return o.RDFa }

// Extract implements [Extractor].
func (e *RDFaExtractor) Extract(ctx context.Context, root *html.Node, g *graph.Graph, base string, opts Options) error {
	return rdfa.Extract(ctx, root, g, base, rdfa.Options{
		VocabExpansion: opts.VocabExpansion,
		Loader:         e.Loader,
		Logger:         Logger(ctx),
	})
}

// MicrodataExtractor runs the microdata processor.
type MicrodataExtractor struct{}

// Name implements [Extractor].
func (MicrodataExtractor) Name() string { return "microdata" }

// Enabled implements [Extractor].
func (MicrodataExtractor) Enabled(o Options) bool { return o.Microdata }

// Extract implements [Extractor].
func (MicrodataExtractor) Extract(_ context.Context, root *html.Node, g *graph.Graph, base string, _ Options) error {
	return microdata.Extract(root, g, base)
}

// IslandExtractor parses the script elements of a given media type.
type IslandExtractor struct {
	MediaType string
	Format    rdf.Format
}

// Name implements [Extractor].
func (e *IslandExtractor) Name() string {
	if e.Format == rdf.FormatTurtle {
		return "hturtle"
	}
	return string(e.Format)
}

// Enabled implements [Extractor].
func (e *IslandExtractor) Enabled(o Options) bool {
	switch e.Format {
	case rdf.FormatTurtle:
		return o.Turtle
	case rdf.FormatJSONLD:
		return o.JSONLD
	}
	return false
}

// Extract implements [Extractor]. The first island that fails to parse
// stops the extraction.
func (e *IslandExtractor) Extract(ctx context.Context, root *html.Node, g *graph.Graph, base string, _ Options) error {
	i := 0
	for island := range ScanIslands(root, e.MediaType, e.Format) {
		if err := ParseIsland(ctx, island, g, base); err != nil {
			return err
		}
		i++
	}
	if i > 0 {
		Logger(ctx).Debug("islands parsed",
			slog.String("type", e.MediaType),
			slog.Int("count", i),
		)
	}
	return nil
}
