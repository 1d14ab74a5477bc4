// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package distill

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"codeberg.org/readeck/distiller/pkg/graph"
)

// Kind is the kind of failure met while processing a source.
type Kind uint8

const (
	// KindNone means no failure.
	KindNone Kind = iota
	// KindFetch is a network resource that could not be retrieved.
	KindFetch
	// KindOpen is a local file that could not be opened.
	KindOpen
	// KindParse is a document or an island that could not be parsed.
	KindParse
	// KindInternal is any other failure.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindFetch:
		return "fetch"
	case KindOpen:
		return "open"
	case KindParse:
		return "parse"
	case KindInternal:
		return "internal"
	}
	return "none"
}

// Error is a failure on a given source.
type Error struct {
	Kind   Kind
	Source string
	Status int
	Err    error
	Stack  []byte
}

func (e *Error) Error() string {
	if e.Kind == KindFetch {
		return fmt.Sprintf("HTTP Error: %d (%s)", e.Status, e.Err)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP like status of the failure.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindFetch:
		if e.Status > 0 {
			return e.Status
		}
		return http.StatusBadGateway
	case KindOpen, KindParse:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func newError(kind Kind, source string, err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: kind, Source: source, Err: err}
}

// ErrorGraph adds an error event to g and returns it. A new graph is created
// when g is nil. The event is linked to the request when source is not
// empty and to the response when status is not 200.
func ErrorGraph(g *graph.Graph, message, source string, status int) *graph.Graph {
	if g == nil {
		g = graph.New()
	}

	var (
		sdeError   = graph.IRI(graph.NsSDE + "Error")
		sdeContext = graph.IRI(graph.NsSDE + "context")
		dcDesc     = graph.IRI(graph.NsDC + "description")
		dcDate     = graph.IRI(graph.NsDC + "date")
	)

	e := g.NewBlankNode()
	g.Add(e, graph.RDFType, sdeError)
	g.Add(e, dcDesc, graph.Literal(message))
	g.Add(e, dcDate, graph.TypedLiteral(
		time.Now().UTC().Format("2006-01-02T15:04:05.000000Z"), graph.XSDDateTime,
	))

	if source != "" {
		req := g.NewBlankNode()
		g.Add(e, sdeContext, req)
		g.Add(req, graph.RDFType, graph.IRI(graph.NsHT+"Request"))
		g.Add(req, graph.IRI(graph.NsHT+"requestURI"), graph.Literal(source))
	}

	if status != http.StatusOK {
		rsp := g.NewBlankNode()
		g.Add(e, sdeContext, rsp)
		g.Add(rsp, graph.RDFType, graph.IRI(graph.NsHT+"Response"))
		g.Add(rsp, graph.IRI(graph.NsHT+"responseCode"), graph.IRI(graph.NsHT+strconv.Itoa(status)))
	}

	return g
}
