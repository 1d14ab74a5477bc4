// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package graph_test

import (
	"slices"
	"testing"

	"github.com/geoknoesis/rdf-go/rdf"
	"github.com/stretchr/testify/require"

	"codeberg.org/readeck/distiller/pkg/graph"
)

func TestGraph(t *testing.T) {
	s := graph.IRI("https://example.org/a")
	p := graph.IRI("https://example.org/name")

	t.Run("add", func(t *testing.T) {
		assert := require.New(t)

		g := graph.New()
		assert.True(g.Add(s, p, graph.Literal("A")))
		assert.False(g.Add(s, p, graph.Literal("A")))
		assert.True(g.Add(s, p, graph.LangLiteral("A", "en")))
		assert.True(g.Add(s, p, graph.TypedLiteral("A", graph.XSDString)))
		assert.Equal(3, g.Len())
		assert.True(g.Has(s, p, graph.LangLiteral("A", "en")))
		assert.False(g.Has(s, p, graph.Literal("B")))
	})

	t.Run("incomplete", func(t *testing.T) {
		assert := require.New(t)

		g := graph.New()
		assert.False(g.Add(nil, p, graph.Literal("A")))
		assert.False(g.Add(s, rdf.IRI{}, graph.Literal("A")))
		assert.False(g.Add(s, p, nil))
		assert.Equal(0, g.Len())
	})

	t.Run("iri and literal", func(t *testing.T) {
		assert := require.New(t)

		g := graph.New()
		g.Add(s, p, graph.IRI("x"))
		g.Add(s, p, graph.Literal("x"))
		assert.Equal(2, g.Len())
	})

	t.Run("order", func(t *testing.T) {
		assert := require.New(t)

		g := graph.New()
		for _, x := range []string{"c", "a", "b", "a"} {
			g.Add(s, p, graph.Literal(x))
		}

		res := []string{}
		for tr := range g.Triples() {
			res = append(res, tr.O.(rdf.Literal).Lexical)
		}
		assert.Equal([]string{"c", "a", "b"}, res)
	})

	t.Run("match", func(t *testing.T) {
		assert := require.New(t)

		g := graph.New()
		g.Add(s, p, graph.Literal("A"))
		g.Add(s, graph.RDFType, graph.IRI("https://schema.org/Thing"))
		g.Add(graph.IRI("https://example.org/b"), p, graph.Literal("B"))

		assert.Len(slices.Collect(g.Match(s, rdf.IRI{}, nil)), 2)
		assert.Len(slices.Collect(g.Match(nil, p, nil)), 2)
		assert.Equal([]rdf.Term{graph.IRI("https://schema.org/Thing")}, g.Objects(s, graph.RDFType))
	})
}

func TestBlankScope(t *testing.T) {
	p := graph.IRI("https://example.org/p")

	t.Run("same label", func(t *testing.T) {
		assert := require.New(t)

		g := graph.New()
		scope := g.NewScope()
		assert.Equal(scope.Node("a"), scope.Node("a"))
		assert.NotEqual(scope.Node("a"), scope.Node("b"))
	})

	t.Run("separate scopes", func(t *testing.T) {
		assert := require.New(t)

		g := graph.New()
		s1 := g.NewScope()
		s2 := g.NewScope()
		s1.Add(rdf.Triple{S: rdf.BlankNode{ID: "a"}, P: p, O: graph.Literal("1")})
		s2.Add(rdf.Triple{S: rdf.BlankNode{ID: "a"}, P: p, O: graph.Literal("1")})

		assert.Equal(2, g.Len())
		assert.NotEqual(s1.Node("a"), s2.Node("a"))
	})

	t.Run("merge", func(t *testing.T) {
		assert := require.New(t)

		g1 := graph.New()
		g1.Add(g1.NewBlankNode(), p, graph.Literal("1"))

		g2 := graph.New()
		g2.Add(g2.NewBlankNode(), p, graph.Literal("1"))
		g2.Add(graph.IRI("https://example.org/x"), p, graph.Literal("2"))

		g1.Merge(g2)
		assert.Equal(3, g1.Len())

		g1.Merge(g1)
		assert.Equal(3, g1.Len())
	})
}

func TestFormats(t *testing.T) {
	tests := []struct {
		name        string
		format      rdf.Format
		contentType string
	}{
		{"turtle", rdf.FormatTurtle, "text/turtle; charset=utf-8"},
		{"n3", rdf.FormatTurtle, "text/rdf+n3; charset=utf-8"},
		{"xml", rdf.FormatRDFXML, "application/rdf+xml; charset=utf-8"},
		{"pretty-xml", rdf.FormatRDFXML, "application/rdf+xml; charset=utf-8"},
		{"nt", rdf.FormatNTriples, "text/turtle; charset=utf-8"},
		{"json-ld", rdf.FormatJSONLD, "application/json; charset=utf-8"},
		{"json", rdf.FormatJSONLD, "application/json; charset=utf-8"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert := require.New(t)

			f, err := graph.ParseFormat(test.name)
			assert.NoError(err)
			assert.Equal(test.format, f)
			assert.Equal(test.contentType, graph.ContentType(test.name))
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := graph.ParseFormat("yaml")
		require.ErrorIs(t, err, graph.ErrUnknownFormat)

		err = graph.New().Serialize(nil, "yaml")
		require.ErrorIs(t, err, graph.ErrUnknownFormat)
	})
}

func TestTimeLiteral(t *testing.T) {
	tests := []struct {
		value    string
		expected rdf.Literal
	}{
		{"2021-03-04", graph.TypedLiteral("2021-03-04", graph.XSDDate)},
		{"2021-03-04T10:20:30Z", graph.TypedLiteral("2021-03-04T10:20:30Z", graph.XSDDateTime)},
		{"10:20", graph.TypedLiteral("10:20", graph.XSDTime)},
		{"2021-03", graph.TypedLiteral("2021-03", graph.XSDGYearMonth)},
		{"2021", graph.TypedLiteral("2021", graph.XSDGYear)},
		{"P1Y2M", graph.TypedLiteral("P1Y2M", graph.XSDDuration)},
		{"2021-02-30", graph.LangLiteral("2021-02-30", "en")},
		{"P", graph.LangLiteral("P", "en")},
		{"yesterday", graph.LangLiteral("yesterday", "en")},
	}

	for _, test := range tests {
		t.Run(test.value, func(t *testing.T) {
			require.Equal(t, test.expected, graph.TimeLiteral(test.value, "en"))
		})
	}
}
