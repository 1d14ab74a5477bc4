// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package rdfa

import (
	"maps"
	"net/url"
	"strings"

	"github.com/geoknoesis/rdf-go/rdf"

	"codeberg.org/readeck/distiller/pkg/graph"
)

// initialPrefixes is the RDFa 1.1 initial context.
var initialPrefixes = map[string]string{
	"as":      "https://www.w3.org/ns/activitystreams#",
	"cc":      "http://creativecommons.org/ns#",
	"csvw":    "http://www.w3.org/ns/csvw#",
	"ctag":    "http://commontag.org/ns#",
	"dc":      "http://purl.org/dc/terms/",
	"dc11":    "http://purl.org/dc/elements/1.1/",
	"dcat":    "http://www.w3.org/ns/dcat#",
	"dcterms": "http://purl.org/dc/terms/",
	"foaf":    "http://xmlns.com/foaf/0.1/",
	"gr":      "http://purl.org/goodrelations/v1#",
	"grddl":   "http://www.w3.org/2003/g/data-view#",
	"ical":    "http://www.w3.org/2002/12/cal/icaltzd#",
	"ma":      "http://www.w3.org/ns/ma-ont#",
	"og":      "http://ogp.me/ns#",
	"org":     "http://www.w3.org/ns/org#",
	"owl":     graph.NsOWL,
	"prov":    "http://www.w3.org/ns/prov#",
	"rdf":     graph.NsRDF,
	"rdfa":    graph.NsRDFa,
	"rdfs":    graph.NsRDFS,
	"rev":     "http://purl.org/stuff/rev#",
	"rif":     "http://www.w3.org/2007/rif#",
	"rr":      "http://www.w3.org/ns/r2rml#",
	"schema":  "http://schema.org/",
	"sd":      "http://www.w3.org/ns/sparql-service-description#",
	"sioc":    "http://rdfs.org/sioc/ns#",
	"skos":    "http://www.w3.org/2004/02/skos/core#",
	"skosxl":  "http://www.w3.org/2008/05/skos-xl#",
	"v":       "http://rdf.data-vocabulary.org/#",
	"vcard":   "http://www.w3.org/2006/vcard/ns#",
	"void":    "http://rdfs.org/ns/void#",
	"wdr":     "http://www.w3.org/2007/05/powder#",
	"wdrs":    "http://www.w3.org/2007/05/powder-s#",
	"xhv":     "http://www.w3.org/1999/xhtml/vocab#",
	"xml":     "http://www.w3.org/XML/1998/namespace",
	"xsd":     graph.NsXSD,
}

// initialTerms are the terms usable without a vocabulary.
var initialTerms = map[string]string{
	"describedby": "http://www.w3.org/2007/05/powder-s#describedby",
	"license":     "http://www.w3.org/1999/xhtml/vocab#license",
	"role":        "http://www.w3.org/1999/xhtml/vocab#role",
}

// evalContext is the evaluation context passed from an element to its
// children.
type evalContext struct {
	base          *url.URL
	parentSubject rdf.Term
	parentObject  rdf.Term
	incomplete    []incompleteTriple
	prefixes      map[string]string
	lang          string
	vocab         string
}

type incompleteTriple struct {
	predicate rdf.IRI
	reverse   bool
}

func (c *evalContext) clone() *evalContext {
	res := *c
	res.incomplete = nil
	return &res
}

// withPrefixes adds prefix declarations to the context.
func (c *evalContext) withPrefixes(decl map[string]string) {
	if len(decl) == 0 {
		return
	}
	p := maps.Clone(c.prefixes)
	maps.Copy(p, decl)
	c.prefixes = p
}

// parsePrefixes parses the value of a prefix attribute.
func parsePrefixes(value string) map[string]string {
	res := map[string]string{}
	fields := strings.Fields(value)
	for i := 0; i+1 < len(fields); i += 2 {
		name := fields[i]
		if !strings.HasSuffix(name, ":") || len(name) < 2 {
			i--
			continue
		}
		name = strings.ToLower(strings.TrimSuffix(name, ":"))
		if name == "_" {
			continue
		}
		res[name] = fields[i+1]
	}
	return res
}

// resolveIRI resolves a reference against the context base.
func (c *evalContext) resolveIRI(s string) (rdf.IRI, bool) {
	u, err := c.base.Parse(strings.TrimSpace(s))
	if err != nil {
		return rdf.IRI{}, false
	}
	return graph.IRI(u.String()), true
}

// expandCURIE expands a prefixed name. Blank nodes are handled by callers.
func (c *evalContext) expandCURIE(s string) (string, bool) {
	prefix, ref, ok := strings.Cut(s, ":")
	if !ok {
		return "", false
	}
	if prefix == "" {
		return "http://www.w3.org/1999/xhtml/vocab#" + ref, true
	}
	if ns, ok := c.prefixes[strings.ToLower(prefix)]; ok {
		return ns + ref, true
	}
	return "", false
}

// predicate resolves a term, CURIE or absolute IRI as used by property,
// rel, rev and typeof.
func (c *evalContext) predicate(s string) (rdf.IRI, bool) {
	if s == "" || strings.HasPrefix(s, "_:") {
		return rdf.IRI{}, false
	}
	if strings.Contains(s, ":") {
		if v, ok := c.expandCURIE(s); ok {
			return graph.IRI(v), true
		}
		if u, err := url.Parse(s); err == nil && u.IsAbs() {
			return graph.IRI(s), true
		}
		return rdf.IRI{}, false
	}
	if c.vocab != "" {
		return graph.IRI(c.vocab + s), true
	}
	if v, ok := initialTerms[strings.ToLower(s)]; ok {
		return graph.IRI(v), true
	}
	return rdf.IRI{}, false
}

// predicates resolves a space separated list of predicates.
func (c *evalContext) predicates(s string) []rdf.IRI {
	res := []rdf.IRI{}
	for token := range strings.FieldsSeq(s) {
		if p, ok := c.predicate(token); ok {
			res = append(res, p)
		}
	}
	return res
}

// resource resolves a safe CURIE, CURIE or IRI as used by about and
// resource.
func (c *evalContext) resource(s string, scope *graph.BlankScope) rdf.Term {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = s[1 : len(s)-1]
		if label, ok := strings.CutPrefix(s, "_:"); ok {
			return scope.Node(label)
		}
		if v, ok := c.expandCURIE(s); ok {
			return graph.IRI(v)
		}
		return nil
	}
	if label, ok := strings.CutPrefix(s, "_:"); ok {
		return scope.Node(label)
	}
	if prefix, _, ok := strings.Cut(s, ":"); ok && prefix != "" {
		if v, ok := c.expandCURIE(s); ok {
			return graph.IRI(v)
		}
	}
	if iri, ok := c.resolveIRI(s); ok {
		return iri
	}
	return nil
}
