// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package distill_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"

	"codeberg.org/readeck/distiller/pkg/distill"
	. "codeberg.org/readeck/distiller/pkg/extract/testing" //revive:disable:dot-imports
	"codeberg.org/readeck/distiller/pkg/graph"
)

const vocabTurtle = `@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
<https://vocab.example/Person> rdfs:subClassOf <https://vocab.example/Agent> .
`

const vocabHTML = `<html><body>
<div about="https://vocab.example/name" rel="rdfs:subPropertyOf" resource="http://www.w3.org/2000/01/rdf-schema#label"></div>
</body></html>`

func TestVocabLoader(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	turtle := httpmock.NewStringResponder(200, vocabTurtle).HeaderSet(map[string][]string{
		"Content-Type": {"text/turtle"},
	})
	htmlVocab := httpmock.NewStringResponder(200, vocabHTML).HeaderSet(map[string][]string{
		"Content-Type": {"text/html; charset=utf-8"},
	})
	httpmock.RegisterResponder("GET", "https://vocab.example/", turtle)
	httpmock.RegisterResponder("GET", "https://vocab.example/html", htmlVocab)
	httpmock.RegisterResponder("GET", "https://vocab.example/missing", httpmock.NewStringResponder(404, ""))

	ctx := context.Background()
	loader := &distill.HTTPVocabLoader{}

	t.Run("turtle", func(t *testing.T) {
		assert := require.New(t)

		g, err := loader.LoadVocabulary(ctx, "https://vocab.example/")
		assert.NoError(err)
		assert.True(g.Has(graph.IRI("https://vocab.example/Person"), graph.RDFSSubClassOf,
			graph.IRI("https://vocab.example/Agent")))
	})

	t.Run("html", func(t *testing.T) {
		assert := require.New(t)

		g, err := loader.LoadVocabulary(ctx, "https://vocab.example/html")
		assert.NoError(err)
		assert.True(g.Has(graph.IRI("https://vocab.example/name"), graph.RDFSSubPropOf,
			graph.IRI(graph.NsRDFS+"label")))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := loader.LoadVocabulary(ctx, "https://vocab.example/missing")
		require.Error(t, err)
	})

	t.Run("expansion", func(t *testing.T) {
		assert := require.New(t)

		d := distill.New(distill.WithOptions(distill.Options{RDFa: true, VocabExpansion: true}))
		g, err := d.GraphFromSource(ctx, distill.ReaderSource{
			R:    strings.NewReader(`<div vocab="https://vocab.example/" typeof="Person"></div>`),
			Name: "doc",
		}, nil, false)
		assert.NoError(err)

		agents := 0
		for range g.Match(nil, graph.RDFType, graph.IRI("https://vocab.example/Agent")) {
			agents++
		}
		assert.Equal(1, agents)
	})
}

func TestIslandExtractors(t *testing.T) {
	ctx := context.Background()
	src := func() distill.Source {
		return distill.ReaderSource{R: strings.NewReader(string(ReadFixture("turtle.html"))), Name: "turtle"}
	}
	base := "https://example.org/page"

	t.Run("turtle", func(t *testing.T) {
		assert := require.New(t)

		d := distill.New(distill.WithBase(base), distill.WithOptions(distill.Options{Turtle: true}))
		g, err := d.GraphFromSource(ctx, src(), nil, false)
		assert.NoError(err)
		assert.Equal(4, g.Len())

		a := g.Objects(graph.IRI(base+"#a"), graph.IRI(ns+"knows"))
		b := g.Objects(graph.IRI(base+"#b"), graph.IRI(ns+"knows"))
		assert.Len(a, 1)
		assert.Len(b, 1)
		assert.False(graph.SameTerm(a[0], b[0]))
	})

	t.Run("json-ld", func(t *testing.T) {
		assert := require.New(t)

		d := distill.New(distill.WithBase(base), distill.WithOptions(distill.Options{JSONLD: true}))
		g, err := d.GraphFromSource(ctx, src(), nil, false)
		assert.NoError(err)
		assert.Equal(1, g.Len())
		assert.True(g.Has(graph.IRI(base+"#c"), graph.IRI(ns+"name"), graph.Literal("Café")))
	})
	t.Run("turtle single line", func(t *testing.T) {
		assert := require.New(t)

		d := distill.New(distill.WithBase(base), distill.WithOptions(distill.Options{Turtle: true}))
		g, err := d.GraphFromSource(ctx, distill.ReaderSource{
			R:    strings.NewReader(string(ReadFixture("oneline.html"))),
			Name: "oneline",
		}, nil, false)
		assert.NoError(err)
		assert.Equal(4, g.Len())

		a, b := graph.IRI(base+"#a"), graph.IRI(base+"#b")
		assert.True(g.Has(a, graph.IRI(ns+"name"), graph.Literal("one")))
		assert.True(g.Has(a, graph.IRI(ns+"p"), b))
		assert.True(g.Has(b, graph.IRI(ns+"name"), graph.Literal("two. @prefix x: <y> .")))
		assert.Len(g.Objects(b, graph.IRI(ns+"n")), 1)
	})
}
