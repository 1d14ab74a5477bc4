// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package graph

import (
	"github.com/geoknoesis/rdf-go/rdf"
)

// BlankScope maps blank node labels of one parsed document to blank nodes
// allocated by a [Graph]. The same label always maps to the same node within
// a scope, and two scopes never share a node.
type BlankScope struct {
	g      *Graph
	labels map[string]rdf.BlankNode
}

// NewScope returns a new [BlankScope] bound to the graph.
func (g *Graph) NewScope() *BlankScope {
	return &BlankScope{g: g, labels: map[string]rdf.BlankNode{}}
}

// Node returns the graph blank node for a document label.
func (s *BlankScope) Node(label string) rdf.BlankNode {
	if n, ok := s.labels[label]; ok {
		return n
	}
	n := s.g.NewBlankNode()
	s.labels[label] = n
	return n
}

// Term returns t, or its scoped blank node when t is a blank node.
// Quoted triples are rewritten recursively.
func (s *BlankScope) Term(t rdf.Term) rdf.Term {
	switch v := t.(type) {
	case rdf.BlankNode:
		return s.Node(v.ID)
	case *rdf.BlankNode:
		return s.Node(v.ID)
	case rdf.TripleTerm:
		return rdf.TripleTerm{S: s.Term(v.S), P: v.P, O: s.Term(v.O)}
	}
	return t
}

// Add adds a statement to the scope's graph, relabelling its blank nodes.
func (s *BlankScope) Add(t rdf.Triple) bool {
	return s.g.Add(s.Term(t.S), t.P, s.Term(t.O))
}
