// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package microdata converts HTML microdata into RDF statements.
//
// Every top level item (an element with itemscope and no itemprop) becomes
// a subject. Item types are mapped to rdf:type, property names are resolved
// against the vocabulary of the item's first type, and nested items become
// blank nodes or the IRI given by itemid.
package microdata

import (
	"golang.org/x/net/html"

	"codeberg.org/readeck/distiller/pkg/graph"
)

// Extract parses the microdata found in root and adds the resulting
// statements to g. Relative URLs are resolved against baseURL.
func Extract(root *html.Node, g *graph.Graph, baseURL string) error {
	p, err := newParser(root, g, baseURL)
	if err != nil {
		return err
	}

	return p.parse()
}
