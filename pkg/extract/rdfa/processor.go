// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package rdfa

import (
	"maps"
	"net/url"
	"strings"

	"github.com/geoknoesis/rdf-go/rdf"
	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"codeberg.org/readeck/distiller/pkg/graph"
)

type processor struct {
	root    *html.Node
	g       *graph.Graph
	base    *url.URL
	scope   *graph.BlankScope
	docRoot *html.Node
}

func newProcessor(root *html.Node, g *graph.Graph, baseURL string) (*processor, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	u.Fragment = ""

	p := &processor{
		root: root,
		g:    g,
		base: u,
	}

	// A <base href> element changes the document base.
	for _, n := range dom.GetElementsByTagName(root, "base") {
		if href := dom.GetAttribute(n, "href"); href != "" {
			if b, err := u.Parse(href); err == nil {
				p.base = b
			}
			break
		}
	}

	p.docRoot = root
	if root.Type == html.DocumentNode {
		for c := root.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				p.docRoot = c
				break
			}
		}
	}

	return p, nil
}

func (p *processor) run() {
	p.scope = p.g.NewScope()
	doc := graph.IRI(p.base.String())
	ctx := &evalContext{
		base:          p.base,
		parentSubject: doc,
		parentObject:  doc,
		prefixes:      maps.Clone(initialPrefixes),
	}

	switch p.root.Type {
	case html.DocumentNode:
		for c := p.root.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				p.processElement(c, ctx)
			}
		}
	case html.ElementNode:
		p.processElement(p.root, ctx)
	}
}

func (p *processor) processElement(n *html.Node, parent *evalContext) {
	ctx := parent.clone()
	skip := false
	var newSubject, currentObject, typedResource rdf.Term
	incomplete := []incompleteTriple{}

	// Local vocabulary, prefixes and language.
	if hasAttr(n, "vocab") {
		if v := strings.TrimSpace(getAttr(n, "vocab")); v != "" {
			if iri, ok := ctx.resolveIRI(v); ok {
				ctx.vocab = iri.Value
				p.g.Add(graph.IRI(p.base.String()), graph.RDFaUsesVocab, iri)
			}
		} else {
			ctx.vocab = ""
		}
	}

	decl := map[string]string{}
	for _, a := range n.Attr {
		if name, ok := strings.CutPrefix(a.Key, "xmlns:"); ok && name != "" {
			decl[strings.ToLower(name)] = a.Val
		}
	}
	if hasAttr(n, "prefix") {
		maps.Copy(decl, parsePrefixes(getAttr(n, "prefix")))
	}
	ctx.withPrefixes(decl)

	if hasAttr(n, "xml:lang") {
		ctx.lang = getAttr(n, "xml:lang")
	} else if hasAttr(n, "lang") {
		ctx.lang = getAttr(n, "lang")
	}

	hasProperty := hasAttr(n, "property")
	rels := p.relValues(n, "rel", ctx, hasProperty)
	revs := p.relValues(n, "rev", ctx, hasProperty)
	hasRel := rels != nil || revs != nil
	hasTypeof := hasAttr(n, "typeof")
	hasAbout := hasAttr(n, "about")

	if !hasRel {
		if hasProperty && !hasAttr(n, "content") && !hasAttr(n, "datatype") {
			switch {
			case hasAbout:
				newSubject = ctx.resource(getAttr(n, "about"), p.scope)
			case n == p.docRoot:
				newSubject = graph.IRI(ctx.base.String())
			case parent.parentObject != nil:
				newSubject = parent.parentObject
			}
			if hasTypeof {
				if hasAbout {
					typedResource = newSubject
				} else {
					typedResource = p.objectResource(n, ctx)
					if typedResource == nil {
						typedResource = p.g.NewBlankNode()
					}
					currentObject = typedResource
				}
			}
		} else {
			newSubject = p.subjectResource(n, ctx)
			if newSubject == nil {
				switch {
				case n == p.docRoot:
					newSubject = graph.IRI(ctx.base.String())
				case hasTypeof:
					newSubject = p.g.NewBlankNode()
				case parent.parentObject != nil:
					newSubject = parent.parentObject
					if !hasProperty {
						skip = true
					}
				}
			}
			if hasTypeof {
				typedResource = newSubject
			}
		}
	} else {
		if hasAbout {
			newSubject = ctx.resource(getAttr(n, "about"), p.scope)
			if hasTypeof {
				typedResource = newSubject
			}
		}
		if newSubject == nil {
			if n == p.docRoot {
				newSubject = graph.IRI(ctx.base.String())
			} else {
				newSubject = parent.parentObject
			}
		}
		currentObject = p.objectResource(n, ctx)
		if currentObject == nil && hasTypeof && !hasAbout {
			currentObject = p.g.NewBlankNode()
		}
		if hasTypeof && !hasAbout {
			typedResource = currentObject
		}
	}

	if typedResource != nil {
		for _, t := range ctx.predicates(getAttr(n, "typeof")) {
			p.g.Add(typedResource, graph.RDFType, t)
		}
	}

	if newSubject != nil && hasRel {
		if currentObject != nil {
			for _, r := range rels {
				p.g.Add(newSubject, r, currentObject)
			}
			for _, r := range revs {
				p.g.Add(currentObject, r, newSubject)
			}
		} else {
			for _, r := range rels {
				incomplete = append(incomplete, incompleteTriple{predicate: r})
			}
			for _, r := range revs {
				incomplete = append(incomplete, incompleteTriple{predicate: r, reverse: true})
			}
			currentObject = p.g.NewBlankNode()
		}
	}

	if hasProperty && newSubject != nil {
		value := p.propertyValue(n, ctx, hasRel, hasTypeof && !hasAbout, typedResource)
		if value != nil {
			for _, prop := range ctx.predicates(getAttr(n, "property")) {
				p.g.Add(newSubject, prop, value)
			}
		}
	}

	if !skip && newSubject != nil {
		for _, t := range parent.incomplete {
			if t.reverse {
				p.g.Add(newSubject, t.predicate, parent.parentSubject)
			} else {
				p.g.Add(parent.parentSubject, t.predicate, newSubject)
			}
		}
	}

	// Children context
	child := ctx
	if skip {
		child.parentSubject = parent.parentSubject
		child.parentObject = parent.parentObject
		child.incomplete = parent.incomplete
	} else {
		if newSubject != nil {
			child.parentSubject = newSubject
		}
		switch {
		case currentObject != nil:
			child.parentObject = currentObject
		case newSubject != nil:
			child.parentObject = newSubject
		default:
			child.parentObject = parent.parentSubject
		}
		child.incomplete = incomplete
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			p.processElement(c, child)
		}
	}
}

// relValues returns the predicates of a rel or rev attribute, or nil when
// the attribute is absent. Alongside a property attribute, plain HTML link
// types are ignored.
func (p *processor) relValues(n *html.Node, attr string, ctx *evalContext, hasProperty bool) []rdf.IRI {
	if !hasAttr(n, attr) {
		return nil
	}
	tokens := []string{}
	for t := range strings.FieldsSeq(getAttr(n, attr)) {
		if hasProperty && !strings.Contains(t, ":") {
			continue
		}
		tokens = append(tokens, t)
	}
	if len(tokens) == 0 {
		return nil
	}
	return ctx.predicates(strings.Join(tokens, " "))
}

// subjectResource returns the subject given by about, resource, href or
// src, in this order.
func (p *processor) subjectResource(n *html.Node, ctx *evalContext) rdf.Term {
	if hasAttr(n, "about") {
		return ctx.resource(getAttr(n, "about"), p.scope)
	}
	return p.objectResource(n, ctx)
}

// objectResource returns the object given by resource, href or src.
func (p *processor) objectResource(n *html.Node, ctx *evalContext) rdf.Term {
	if hasAttr(n, "resource") {
		return ctx.resource(getAttr(n, "resource"), p.scope)
	}
	for _, attr := range []string{"href", "src"} {
		if hasAttr(n, attr) {
			if iri, ok := ctx.resolveIRI(getAttr(n, attr)); ok {
				return iri
			}
		}
	}
	return nil
}

func (p *processor) propertyValue(n *html.Node, ctx *evalContext, hasRel, newTyped bool, typedResource rdf.Term) rdf.Term {
	datatype, hasDatatype := getAttr(n, "datatype"), hasAttr(n, "datatype")
	var dt rdf.IRI
	if hasDatatype && datatype != "" {
		dt, _ = ctx.predicate(datatype)
	}

	switch {
	case dt.Value == graph.RDFXMLLiteral.Value || dt.Value == graph.RDFHTML.Value:
		return graph.TypedLiteral(dom.InnerHTML(n), dt)
	case dt.Value != "":
		if hasAttr(n, "content") {
			return graph.TypedLiteral(getAttr(n, "content"), dt)
		}
		if n.DataAtom == atom.Time && hasAttr(n, "datetime") {
			return graph.TypedLiteral(getAttr(n, "datetime"), dt)
		}
		return graph.TypedLiteral(dom.TextContent(n), dt)
	case hasAttr(n, "content"):
		return graph.LangLiteral(getAttr(n, "content"), ctx.lang)
	case n.DataAtom == atom.Time && hasAttr(n, "datetime") && !hasDatatype:
		return graph.TimeLiteral(getAttr(n, "datetime"), ctx.lang)
	case !hasRel && !hasDatatype:
		if o := p.objectResource(n, ctx); o != nil {
			return o
		}
		if newTyped && typedResource != nil {
			return typedResource
		}
	}
	return graph.LangLiteral(dom.TextContent(n), ctx.lang)
}

func getAttr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}
