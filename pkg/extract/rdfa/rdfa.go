// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package rdfa is an RDFa 1.1 processor for HTML documents.
//
// It covers RDFa Lite (vocab, typeof, property, resource and prefix) plus
// the core attributes commonly found on web pages: about, rel, rev, href,
// src, content and datatype. Optionally, it performs the RDFa vocabulary
// expansion of the vocabularies declared in the document.
package rdfa

import (
	"context"
	"log/slog"

	"golang.org/x/net/html"

	"codeberg.org/readeck/distiller/pkg/graph"
)

// VocabLoader retrieves the graph describing a vocabulary.
type VocabLoader interface {
	LoadVocabulary(ctx context.Context, iri string) (*graph.Graph, error)
}

// Options configures an extraction.
type Options struct {
	VocabExpansion bool
	Loader         VocabLoader
	Logger         *slog.Logger
}

// Extract processes the RDFa attributes found in root and adds the
// resulting statements to g.
func Extract(ctx context.Context, root *html.Node, g *graph.Graph, baseURL string, options Options) error {
	p, err := newProcessor(root, g, baseURL)
	if err != nil {
		return err
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	if options.VocabExpansion {
		// Expansion runs on the document's statements only.
		local := graph.New()
		p.g = local
		p.run()
		expandVocabularies(ctx, local, options)
		g.Merge(local)
		return nil
	}

	p.run()
	return nil
}
