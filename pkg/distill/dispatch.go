// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package distill

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/geoknoesis/rdf-go/rdf"
	"github.com/piprate/json-gold/ld"
	"golang.org/x/net/html"

	"codeberg.org/readeck/distiller/pkg/graph"
)

var (
	// ErrUnsupportedIsland is returned for an island whose format has no parser.
	ErrUnsupportedIsland = errors.New("unsupported island format")
	// ErrIncompleteIsland is returned when fewer triples than statements
	// are decoded from a Turtle island.
	ErrIncompleteIsland = errors.New("statements lost in island")
	// ErrUnsupportedTerm is returned for a JSON-LD term with no RDF form.
	ErrUnsupportedTerm = errors.New("unsupported JSON-LD term")
	// ErrNoHTTPClient is returned when a remote JSON-LD document is
	// needed and no client is available.
	ErrNoHTTPClient = errors.New("no HTTP client to load remote document")
)

// ParseIsland parses the content of an island and adds its statements to g.
// Relative references are resolved against base. Blank nodes of every
// island are distinct from the graph's existing blank nodes.
// Remote JSON-LD contexts are only loaded with the client given by
// [WithHTTPClient].
func ParseIsland(ctx context.Context, island Island, g *graph.Graph, base string) error {
	switch island.Format {
	case rdf.FormatTurtle:
		return parseTurtle(ctx, island.Content, g, base)
	case rdf.FormatJSONLD:
		return parseJSONLD(ctx, island.Content, g, base)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedIsland, island.Format)
}

func parseTurtle(ctx context.Context, content string, g *graph.Graph, base string) error {
	// The decoder has no base option, the base is given as a directive.
	src := content
	if base != "" {
		src = "@base <" + base + "> .\n" + content
	}

	doc := splitTurtle(src)
	n, err := readGraph(ctx, doc.src, rdf.FormatTurtle, g)
	if err != nil {
		return err
	}
	if n < doc.statements {
		return fmt.Errorf("%w: %d triples decoded from %d statements", ErrIncompleteIsland, n, doc.statements)
	}
	return nil
}

// readGraph decodes an RDF document, adds its statements to g and
// returns the number of decoded statements.
func readGraph(ctx context.Context, content string, format rdf.Format, g *graph.Graph) (int, error) {
	r, err := rdf.NewReader(strings.NewReader(content), format, rdf.OptContext(ctx), rdf.OptSafeLimits())
	if err != nil {
		return 0, err
	}
	defer r.Close() //nolint:errcheck

	scope := g.NewScope()
	n := 0
	for {
		st, err := r.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		scope.Add(rdf.Triple{S: st.S, P: st.P, O: st.O})
		n++
	}
}

func parseJSONLD(ctx context.Context, content string, g *graph.Graph, base string) error {
	doc, err := ld.DocumentFromReader(strings.NewReader(content))
	if err != nil {
		return err
	}

	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions(base)
	opts.DocumentLoader = noDocumentLoader{}
	if client, ok := checkHTTPClient(ctx); ok {
		opts.DocumentLoader = ld.NewDefaultDocumentLoader(client)
	}

	res, err := proc.ToRDF(unescapeJSONLD(doc), opts)
	if err != nil {
		return err
	}
	dataset, ok := res.(*ld.RDFDataset)
	if !ok {
		return fmt.Errorf("unexpected JSON-LD result %T", res)
	}

	scope := g.NewScope()
	names := []string{}
	for name := range dataset.Graphs {
		if name != "@default" {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	names = append([]string{"@default"}, names...)

	for _, name := range names {
		for _, q := range dataset.Graphs[name] {
			s, p, o := jsonldTerm(q.Subject), jsonldTerm(q.Predicate), jsonldTerm(q.Object)
			pred, ok := p.(rdf.IRI)
			if s == nil || o == nil || !ok {
				return fmt.Errorf("%w: %T %T %T", ErrUnsupportedTerm, q.Subject, q.Predicate, q.Object)
			}
			scope.Add(rdf.Triple{S: s, P: pred, O: o})
		}
	}
	return nil
}

func jsonldTerm(n ld.Node) rdf.Term {
	switch v := n.(type) {
	case *ld.IRI:
		if v != nil {
			return jsonldTerm(*v)
		}
	case *ld.BlankNode:
		if v != nil {
			return jsonldTerm(*v)
		}
	case *ld.Literal:
		if v != nil {
			return jsonldTerm(*v)
		}
	case ld.IRI:
		return graph.IRI(v.Value)
	case ld.BlankNode:
		return rdf.BlankNode{ID: strings.TrimPrefix(v.Attribute, "_:")}
	case ld.Literal:
		switch {
		case v.Language != "":
			return graph.LangLiteral(v.Value, v.Language)
		case v.Datatype == "" || v.Datatype == graph.XSDString.Value:
			return graph.Literal(v.Value)
		}
		return graph.TypedLiteral(v.Value, graph.IRI(v.Datatype))
	}
	return nil
}

// noDocumentLoader refuses remote JSON-LD documents. It is used when
// no HTTP client is given.
type noDocumentLoader struct{}

func (noDocumentLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, fmt.Errorf("%w: %s", ErrNoHTTPClient, u))
}

// unescapeJSONLD decodes HTML entities left in string values by pages
// that escape their JSON-LD blocks.
func unescapeJSONLD(val any) any {
	switch t := val.(type) {
	case map[string]any:
		for k, v := range t {
			t[k] = unescapeJSONLD(v)
		}
	case []any:
		for i, x := range t {
			t[i] = unescapeJSONLD(x)
		}
	case string:
		return html.UnescapeString(t)
	}
	return val
}
