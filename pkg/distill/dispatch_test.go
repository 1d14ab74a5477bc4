// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package distill_test

import (
	"context"
	"net/http"
	"slices"
	"testing"

	"github.com/geoknoesis/rdf-go/rdf"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"

	"codeberg.org/readeck/distiller/pkg/distill"
	"codeberg.org/readeck/distiller/pkg/graph"
)

const ns = "https://example.org/ns#"

func TestParseIsland(t *testing.T) {
	ctx := context.Background()

	t.Run("turtle base", func(t *testing.T) {
		assert := require.New(t)

		g := graph.New()
		err := distill.ParseIsland(ctx, distill.Island{
			Content: `@prefix ex: <https://example.org/ns#> . <#a> ex:p <b> .`,
			Format:  rdf.FormatTurtle,
		}, g, "https://example.org/dir/page")
		assert.NoError(err)
		assert.True(g.Has(
			graph.IRI("https://example.org/dir/page#a"),
			graph.IRI(ns+"p"),
			graph.IRI("https://example.org/dir/b"),
		))
	})

	t.Run("turtle directives on one line", func(t *testing.T) {
		assert := require.New(t)

		g := graph.New()
		err := distill.ParseIsland(ctx, distill.Island{
			Content: `@prefix ex: <https://example.org/ns#> . @base <https://example.org/other/> . ` +
				`ex:a ex:p "one" . ex:a ex:q <b> . # comment . ex:z ex:p "no"`,
			Format: rdf.FormatTurtle,
		}, g, "")
		assert.NoError(err)
		assert.Equal(2, g.Len())
		assert.True(g.Has(graph.IRI(ns+"a"), graph.IRI(ns+"p"), graph.Literal("one")))
		assert.True(g.Has(graph.IRI(ns+"a"), graph.IRI(ns+"q"), graph.IRI("https://example.org/other/b")))
	})

	t.Run("turtle sparql directives", func(t *testing.T) {
		assert := require.New(t)

		g := graph.New()
		err := distill.ParseIsland(ctx, distill.Island{
			Content: `PREFIX ex: <https://example.org/ns#> ex:a ex:p "a . @prefix b ." .`,
			Format:  rdf.FormatTurtle,
		}, g, "")
		assert.NoError(err)
		assert.True(g.Has(graph.IRI(ns+"a"), graph.IRI(ns+"p"), graph.Literal("a . @prefix b .")))
	})

	t.Run("same graph", func(t *testing.T) {
		assert := require.New(t)

		g := graph.New()
		g.Add(graph.IRI("https://example.org/x"), graph.IRI(ns+"p"), graph.Literal("x"))

		err := distill.ParseIsland(ctx, distill.Island{
			Content: `<https://example.org/y> <https://example.org/ns#p> "y" .`,
			Format:  rdf.FormatTurtle,
		}, g, "")
		assert.NoError(err)
		assert.Equal(2, g.Len())
	})

	t.Run("blank nodes per island", func(t *testing.T) {
		assert := require.New(t)

		g := graph.New()
		island := distill.Island{
			Content: `_:b <https://example.org/ns#p> "v" .`,
			Format:  rdf.FormatTurtle,
		}
		assert.NoError(distill.ParseIsland(ctx, island, g, ""))
		assert.NoError(distill.ParseIsland(ctx, island, g, ""))

		res := slices.Collect(g.Match(nil, graph.IRI(ns+"p"), nil))
		assert.Len(res, 2)
		assert.False(graph.SameTerm(res[0].S, res[1].S))
	})

	t.Run("turtle error", func(t *testing.T) {
		g := graph.New()
		err := distill.ParseIsland(ctx, distill.Island{
			Content: `<#a> <#b> "unterminated .`,
			Format:  rdf.FormatTurtle,
		}, g, "https://example.org/")
		require.Error(t, err)
	})

	t.Run("json-ld", func(t *testing.T) {
		assert := require.New(t)

		g := graph.New()
		err := distill.ParseIsland(ctx, distill.Island{
			Content: `{
				"@context": {"ex": "https://example.org/ns#"},
				"@id": "#me",
				"@type": "ex:Person",
				"ex:name": "Ann &amp; Bob",
				"ex:lang": {"@value": "bonjour", "@language": "fr"},
				"ex:knows": {"ex:name": "Carl"}
			}`,
			Format: rdf.FormatJSONLD,
		}, g, "https://example.org/page")
		assert.NoError(err)

		me := graph.IRI("https://example.org/page#me")
		assert.True(g.Has(me, graph.RDFType, graph.IRI(ns+"Person")))
		assert.True(g.Has(me, graph.IRI(ns+"name"), graph.Literal("Ann & Bob")))
		assert.True(g.Has(me, graph.IRI(ns+"lang"), graph.LangLiteral("bonjour", "fr")))

		knows := g.Objects(me, graph.IRI(ns+"knows"))
		assert.Len(knows, 1)
		assert.IsType(rdf.BlankNode{}, knows[0])
		assert.True(g.Has(knows[0], graph.IRI(ns+"name"), graph.Literal("Carl")))
	})

	t.Run("json-ld remote context", func(t *testing.T) {
		httpmock.Activate()
		defer httpmock.DeactivateAndReset()
		httpmock.RegisterResponder("GET", "https://example.org/context.jsonld",
			httpmock.NewStringResponder(200, `{"@context": {"name": "https://example.org/ns#name"}}`).
				HeaderSet(map[string][]string{"Content-Type": {"application/ld+json"}}))

		island := distill.Island{
			Content: `{"@context": "https://example.org/context.jsonld", "@id": "#me", "name": "Ann"}`,
			Format:  rdf.FormatJSONLD,
		}

		t.Run("no client", func(t *testing.T) {
			assert := require.New(t)
			err := distill.ParseIsland(ctx, island, graph.New(), "https://example.org/page")
			assert.Error(err)
			assert.Equal(0, httpmock.GetTotalCallCount())
		})

		t.Run("client", func(t *testing.T) {
			assert := require.New(t)
			g := graph.New()
			err := distill.ParseIsland(distill.WithHTTPClient(ctx, http.DefaultClient), island, g, "https://example.org/page")
			assert.NoError(err)
			assert.Equal(1, httpmock.GetTotalCallCount())
			assert.True(g.Has(graph.IRI("https://example.org/page#me"), graph.IRI(ns+"name"), graph.Literal("Ann")))
		})
	})

	t.Run("json-ld error", func(t *testing.T) {
		err := distill.ParseIsland(ctx, distill.Island{
			Content: `{"@id": `,
			Format:  rdf.FormatJSONLD,
		}, graph.New(), "")
		require.Error(t, err)
	})

	t.Run("unsupported", func(t *testing.T) {
		err := distill.ParseIsland(ctx, distill.Island{Format: rdf.FormatRDFXML}, graph.New(), "")
		require.ErrorIs(t, err, distill.ErrUnsupportedIsland)
	})
}
