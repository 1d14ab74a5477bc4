// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package distill

import (
	"iter"
	"strings"

	"github.com/geoknoesis/rdf-go/rdf"
	"golang.org/x/net/html"
)

const (
	// TurtleMediaType is the script type of embedded Turtle.
	TurtleMediaType = "text/turtle"
	// JSONLDMediaType is the script type of embedded JSON-LD.
	JSONLDMediaType = "application/ld+json"
)

// Island is a block of structured data found in a script element.
type Island struct {
	Content   string
	MediaType string
	Format    rdf.Format
}

// ScanIslands returns an iterator over the script elements of root whose
// type attribute is exactly mediaType. The tree is never modified, so
// the iterator can be consumed any number of times.
func ScanIslands(root *html.Node, mediaType string, format rdf.Format) iter.Seq[Island] {
	return func(yield func(Island) bool) {
		scanNode(root, mediaType, format, yield)
	}
}

func scanNode(n *html.Node, mediaType string, format rdf.Format, yield func(Island) bool) bool {
	if n == nil {
		return true
	}

	switch n.Type {
	case html.ElementNode:
		if strings.EqualFold(n.Data, "script") {
			if t, ok := attrValue(n, "type"); !ok || t != mediaType {
				return true
			}
			return yield(Island{
				Content:   scriptContent(n),
				MediaType: mediaType,
				Format:    format,
			})
		}
	case html.DocumentNode:
	default:
		return true
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !scanNode(c, mediaType, format, yield) {
			return false
		}
	}
	return true
}

// scriptContent returns the text of a script element without any CDATA
// markers.
func scriptContent(n *html.Node) string {
	b := new(strings.Builder)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode, html.RawNode:
			b.WriteString(c.Data)
		}
	}
	return strings.ReplaceAll(strings.ReplaceAll(b.String(), "<![CDATA[", ""), "]]>", "")
}

func attrValue(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}
