// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package distill

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/geoknoesis/rdf-go/rdf"
	"golang.org/x/net/html"

	"codeberg.org/readeck/distiller/pkg/extract/rdfa"
	"codeberg.org/readeck/distiller/pkg/graph"
)

const vocabAccept = "text/turtle,application/rdf+xml;q=0.9,application/n-triples;q=0.8," +
	"application/ld+json;q=0.8,text/html;q=0.5"

// maxVocabSize limits the size of a vocabulary document.
const maxVocabSize = 20 << 20

// HTTPVocabLoader loads RDFa vocabularies over HTTP.
type HTTPVocabLoader struct {
	Client *http.Client
}

// LoadVocabulary implements [rdfa.VocabLoader].
func (l *HTTPVocabLoader) LoadVocabulary(ctx context.Context, iri string) (*graph.Graph, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, iri, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", vocabAccept)

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	rsp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close() //nolint:errcheck

	if rsp.StatusCode >= 400 {
		return nil, fmt.Errorf("vocabulary %s: status %d", iri, rsp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(rsp.Body, maxVocabSize))
	if err != nil {
		return nil, err
	}

	base := iri
	if rsp.Request != nil && rsp.Request.URL != nil {
		base = rsp.Request.URL.String()
	}

	g := graph.New()
	mediaType, _, _ := mime.ParseMediaType(rsp.Header.Get("Content-Type"))
	switch mediaType {
	case "text/html", "application/xhtml+xml":
		root, err := html.Parse(strings.NewReader(string(body)))
		if err != nil {
			return nil, err
		}
		err = rdfa.Extract(ctx, root, g, base, rdfa.Options{Logger: Logger(ctx)})
		return g, err
	case "application/ld+json", "application/json":
		if _, ok := checkHTTPClient(ctx); !ok {
			ctx = WithHTTPClient(ctx, client)
		}
		return g, parseJSONLD(ctx, string(body), g, base)
	case "application/rdf+xml":
		_, err = readGraph(ctx, string(body), rdf.FormatRDFXML, g)
		return g, err
	case "application/n-triples":
		_, err = readGraph(ctx, string(body), rdf.FormatNTriples, g)
		return g, err
	}
	return g, parseTurtle(ctx, string(body), g, base)
}
