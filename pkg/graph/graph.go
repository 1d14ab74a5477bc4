// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package graph provides the in-memory RDF graph shared by every extractor
// during a distiller run.
//
// A [Graph] is an insertion ordered set of triples. Statements are only ever
// added; adding a statement that is already present is a no-op, so merging
// several sources is a plain union.
package graph

import (
	"iter"
	"strconv"
	"strings"

	"github.com/geoknoesis/rdf-go/rdf"
)

// Graph is an insertion ordered set of RDF triples.
type Graph struct {
	triples []rdf.Triple
	index   map[string]struct{}
	bnodes  int
}

// New returns an empty [Graph].
func New() *Graph {
	return &Graph{
		triples: []rdf.Triple{},
		index:   map[string]struct{}{},
	}
}

// Add adds a statement to the graph. It returns false when the statement
// was already present or is incomplete.
func (g *Graph) Add(s rdf.Term, p rdf.IRI, o rdf.Term) bool {
	return g.AddTriple(rdf.Triple{S: s, P: p, O: o})
}

// AddTriple adds a triple to the graph.
func (g *Graph) AddTriple(t rdf.Triple) bool {
	if t.S == nil || t.O == nil || t.P.Value == "" {
		return false
	}

	k := tripleKey(t)
	if _, ok := g.index[k]; ok {
		return false
	}
	g.index[k] = struct{}{}
	g.triples = append(g.triples, t)
	return true
}

// Merge adds every statement of other to the graph. Blank nodes of other are
// relabelled so they cannot collide with the graph's own blank nodes.
func (g *Graph) Merge(other *Graph) {
	if other == nil || other == g {
		return
	}
	scope := g.NewScope()
	for _, t := range other.triples {
		g.Add(scope.Term(t.S), t.P, scope.Term(t.O))
	}
}

// Has returns true when the triple is part of the graph.
func (g *Graph) Has(s rdf.Term, p rdf.IRI, o rdf.Term) bool {
	if s == nil || o == nil {
		return false
	}
	_, ok := g.index[tripleKey(rdf.Triple{S: s, P: p, O: o})]
	return ok
}

// Len returns the number of statements in the graph.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns an iterator over all the statements, in insertion order.
func (g *Graph) Triples() iter.Seq[rdf.Triple] {
	return func(yield func(rdf.Triple) bool) {
		for _, t := range g.triples {
			if !yield(t) {
				return
			}
		}
	}
}

// Match returns an iterator over the statements matching the given pattern.
// A nil subject or object, or an empty predicate, matches anything.
func (g *Graph) Match(s rdf.Term, p rdf.IRI, o rdf.Term) iter.Seq[rdf.Triple] {
	return func(yield func(rdf.Triple) bool) {
		for _, t := range g.triples {
			if s != nil && !SameTerm(s, t.S) {
				continue
			}
			if p.Value != "" && p.Value != t.P.Value {
				continue
			}
			if o != nil && !SameTerm(o, t.O) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Objects returns the objects of every statement with the given subject
// and predicate.
func (g *Graph) Objects(s rdf.Term, p rdf.IRI) []rdf.Term {
	res := []rdf.Term{}
	for t := range g.Match(s, p, nil) {
		res = append(res, t.O)
	}
	return res
}

// NewBlankNode allocates a blank node that is unique within the graph.
func (g *Graph) NewBlankNode() rdf.BlankNode {
	g.bnodes++
	return rdf.BlankNode{ID: "n" + strconv.Itoa(g.bnodes)}
}

// SameTerm returns true when both terms are equal RDF terms.
func SameTerm(a, b rdf.Term) bool {
	if a == nil || b == nil {
		return a == b
	}
	return termKey(a) == termKey(b)
}

func tripleKey(t rdf.Triple) string {
	b := new(strings.Builder)
	b.WriteString(termKey(t.S))
	b.WriteByte(0)
	b.WriteString(t.P.Value)
	b.WriteByte(0)
	b.WriteString(termKey(t.O))
	return b.String()
}

func termKey(t rdf.Term) string {
	return strconv.Itoa(int(t.Kind())) + "|" + t.String()
}
