// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package microdata

import (
	"iter"
	"net/url"
	"slices"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/geoknoesis/rdf-go/rdf"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"codeberg.org/readeck/distiller/pkg/graph"
)

type parser struct {
	root            *html.Node
	g               *graph.Graph
	baseURL         *url.URL
	order           map[*html.Node]int
	identifiedNodes map[string]*html.Node
	subjects        map[*html.Node]rdf.Term
}

// item is the evaluation context of one microdata item.
type item struct {
	node    *html.Node
	subject rdf.Term
	vocab   string
}

func newParser(root *html.Node, g *graph.Graph, baseURL string) (*parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	return &parser{
		root:            root,
		g:               g,
		baseURL:         u,
		order:           map[*html.Node]int{},
		identifiedNodes: map[string]*html.Node{},
		subjects:        map[*html.Node]rdf.Term{},
	}, nil
}

func (p *parser) parse() error {
	i := 0
	for n := range iterNodes(p.root) {
		p.order[n] = i
		i++
	}

	for _, n := range htmlquery.Find(p.root, "//*[@id]") {
		id := htmlquery.SelectAttr(n, "id")
		if _, ok := p.identifiedNodes[id]; !ok {
			p.identifiedNodes[id] = n
		}
	}

	for _, n := range htmlquery.Find(p.root, "//*[@itemscope and not(@itemprop)]") {
		p.readItem(n, "")
	}

	return nil
}

// readItem generates the statements of the item defined on n and returns
// its subject. An item is only generated once, even when it is reached
// again through itemref.
func (p *parser) readItem(n *html.Node, vocab string) rdf.Term {
	if s, ok := p.subjects[n]; ok {
		return s
	}

	it := &item{node: n, vocab: vocab}
	if s, ok := getAttr(n, "itemid"); ok {
		if u := p.resolve(s); u != "" {
			it.subject = graph.IRI(u)
		}
	}
	if it.subject == nil {
		it.subject = p.g.NewBlankNode()
	}
	p.subjects[n] = it.subject

	types := []string{}
	if s, ok := getAttr(n, "itemtype"); ok {
		for t := range strings.FieldsSeq(s) {
			if u, err := url.Parse(t); err == nil && u.IsAbs() {
				types = append(types, t)
			}
		}
	}
	for _, t := range types {
		p.g.Add(it.subject, graph.RDFType, graph.IRI(t))
	}
	if len(types) > 0 {
		it.vocab = vocabulary(types[0])
	}

	for _, prop := range p.properties(n) {
		value := p.propertyValue(prop, it.vocab)
		if value == nil {
			continue
		}
		names, _ := getAttr(prop, "itemprop")
		seen := map[string]struct{}{}
		for name := range strings.FieldsSeq(names) {
			pred := p.predicate(name, it.vocab)
			if pred == "" {
				continue
			}
			if _, ok := seen[pred]; ok {
				continue
			}
			seen[pred] = struct{}{}
			p.g.Add(it.subject, graph.IRI(pred), value)
		}
	}

	return it.subject
}

// properties returns the property elements of the item on root, including
// those reached through itemref, in tree order.
func (p *parser) properties(root *html.Node) []*html.Node {
	pending := []*html.Node{}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		pending = append(pending, c)
	}
	if s, ok := getAttr(root, "itemref"); ok {
		for ref := range strings.FieldsSeq(s) {
			if n, ok := p.identifiedNodes[ref]; ok {
				pending = append(pending, n)
			}
		}
	}

	results := []*html.Node{}
	visited := map[*html.Node]struct{}{root: {}}
	for len(pending) > 0 {
		n := pending[0]
		pending = pending[1:]
		if _, ok := visited[n]; ok {
			continue
		}
		visited[n] = struct{}{}
		if n.Type != html.ElementNode {
			continue
		}

		if hasAttr(n, "itemprop") {
			results = append(results, n)
		}
		if !hasAttr(n, "itemscope") {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				pending = append(pending, c)
			}
		}
	}

	slices.SortStableFunc(results, func(a, b *html.Node) int {
		return p.order[a] - p.order[b]
	})
	return results
}

func (p *parser) propertyValue(n *html.Node, vocab string) rdf.Term {
	if hasAttr(n, "itemscope") {
		return p.readItem(n, vocab)
	}

	lang := language(n)

	switch n.DataAtom {
	case atom.Meta:
		if value, ok := getAttr(n, "content"); ok {
			return literal(value, lang)
		}
		return nil
	case atom.Audio, atom.Embed, atom.Iframe, atom.Img, atom.Source, atom.Track, atom.Video:
		return p.urlValue(n, "src")
	case atom.A, atom.Area, atom.Link:
		return p.urlValue(n, "href")
	case atom.Object:
		return p.urlValue(n, "data")
	case atom.Data, atom.Meter:
		if value, ok := getAttr(n, "value"); ok {
			return numericValue(value, lang)
		}
	case atom.Time:
		value, ok := getAttr(n, "datetime")
		if !ok {
			value = textContent(n)
		}
		return graph.TimeLiteral(value, lang)
	}

	if value, ok := getAttr(n, "content"); ok {
		return literal(value, lang)
	}
	return literal(textContent(n), lang)
}

func (p *parser) urlValue(n *html.Node, attr string) rdf.Term {
	value, ok := getAttr(n, attr)
	if !ok {
		return graph.Literal("")
	}
	if u := p.resolve(value); u != "" {
		return graph.IRI(u)
	}
	return graph.Literal("")
}

func (p *parser) resolve(s string) string {
	u, err := p.baseURL.Parse(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return u.String()
}

// predicate returns the property IRI for a name. Absolute names are used
// as is, other names are appended to the item's vocabulary or, without a
// vocabulary, to the document's fragment namespace.
func (p *parser) predicate(name, vocab string) string {
	if name == "" {
		return ""
	}
	if u, err := url.Parse(name); err == nil && u.IsAbs() {
		return name
	}
	if vocab != "" {
		return vocab + name
	}

	u := *p.baseURL
	u.Fragment = ""
	return u.String() + "#" + name
}

// vocabulary returns the vocabulary IRI of an item type: everything up to
// the fragment separator or the last path segment.
func vocabulary(itemtype string) string {
	if i := strings.LastIndex(itemtype, "#"); i >= 0 {
		return itemtype[:i+1]
	}
	if i := strings.LastIndex(itemtype, "/"); i >= 0 {
		return itemtype[:i+1]
	}
	return itemtype
}

func language(n *html.Node) string {
	for ; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		if lang, ok := getAttr(n, "lang"); ok {
			return lang
		}
		if lang, ok := getAttr(n, "xml:lang"); ok {
			return lang
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	buf := new(strings.Builder)
	for c := range iterNodes(n) {
		if c.Type == html.TextNode {
			buf.WriteString(c.Data)
		}
	}
	return buf.String()
}

func iterNodes(n *html.Node) iter.Seq[*html.Node] {
	return func(yield func(*html.Node) bool) {
		var walk func(*html.Node) bool
		walk = func(n *html.Node) bool {
			if !yield(n) {
				return false
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if !walk(c) {
					return false
				}
			}
			return true
		}
		if n != nil {
			walk(n)
		}
	}
}

func getAttr(node *html.Node, name string) (string, bool) {
	for _, attr := range node.Attr {
		if name == attr.Key {
			return attr.Val, true
		}
	}
	return "", false
}

func hasAttr(node *html.Node, name string) bool {
	_, ok := getAttr(node, name)
	return ok
}
