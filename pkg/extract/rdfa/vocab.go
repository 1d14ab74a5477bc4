// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package rdfa

import (
	"context"
	"log/slog"
	"slices"

	"github.com/geoknoesis/rdf-go/rdf"

	"codeberg.org/readeck/distiller/pkg/graph"
)

// expandVocabularies loads every vocabulary declared in g and adds the
// statements entailed by their subclass, subproperty and equivalence
// relations. A vocabulary that cannot be loaded is skipped.
func expandVocabularies(ctx context.Context, g *graph.Graph, options Options) {
	if options.Loader == nil {
		return
	}

	rules := graph.New()
	for t := range g.Match(nil, graph.RDFaUsesVocab, nil) {
		iri, ok := t.O.(rdf.IRI)
		if !ok {
			continue
		}
		vg, err := options.Loader.LoadVocabulary(ctx, iri.Value)
		if err != nil {
			options.Logger.Warn("cannot load vocabulary",
				slog.String("vocab", iri.Value),
				slog.Any("err", err),
			)
			continue
		}
		for _, p := range []rdf.IRI{graph.RDFSSubClassOf, graph.RDFSSubPropOf, graph.OWLEquivClass, graph.OWLEquivProp} {
			for r := range vg.Match(nil, p, nil) {
				rules.AddTriple(r)
			}
		}
	}

	if rules.Len() > 0 {
		Expand(g, rules)
	}
}

// Expand adds to g the types and properties entailed by the rules graph:
// rdfs:subClassOf and rdfs:subPropertyOf are followed transitively, and
// owl:equivalentClass and owl:equivalentProperty in both directions.
func Expand(g *graph.Graph, rules *graph.Graph) {
	classes := closure(rules, graph.RDFSSubClassOf, graph.OWLEquivClass)
	props := closure(rules, graph.RDFSSubPropOf, graph.OWLEquivProp)

	added := []rdf.Triple{}
	for t := range g.Triples() {
		if t.P.Value == graph.RDFType.Value {
			if c, ok := t.O.(rdf.IRI); ok {
				for _, sup := range classes[c.Value] {
					added = append(added, rdf.Triple{S: t.S, P: graph.RDFType, O: graph.IRI(sup)})
				}
			}
			continue
		}
		for _, sup := range props[t.P.Value] {
			added = append(added, rdf.Triple{S: t.S, P: graph.IRI(sup), O: t.O})
		}
	}

	for _, t := range added {
		g.AddTriple(t)
	}
}

// closure returns, for every IRI, the list of IRIs it entails through
// the sub relation and the equivalence relation.
func closure(rules *graph.Graph, sub, equiv rdf.IRI) map[string][]string {
	direct := map[string][]string{}
	link := func(a, b rdf.Term) {
		x, ok1 := a.(rdf.IRI)
		y, ok2 := b.(rdf.IRI)
		if !ok1 || !ok2 || x.Value == y.Value {
			return
		}
		if !slices.Contains(direct[x.Value], y.Value) {
			direct[x.Value] = append(direct[x.Value], y.Value)
		}
	}

	for t := range rules.Match(nil, sub, nil) {
		link(t.S, t.O)
	}
	for t := range rules.Match(nil, equiv, nil) {
		link(t.S, t.O)
		link(t.O, t.S)
	}

	res := map[string][]string{}
	for start := range direct {
		seen := map[string]struct{}{start: {}}
		queue := slices.Clone(direct[start])
		for len(queue) > 0 {
			x := queue[0]
			queue = queue[1:]
			if _, ok := seen[x]; ok {
				continue
			}
			seen[x] = struct{}{}
			res[start] = append(res[start], x)
			queue = append(queue, direct[x]...)
		}
	}
	return res
}
