// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package graph

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/geoknoesis/rdf-go/rdf"
)

// ErrUnknownFormat is returned when an output format name is not recognized.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat returns the serialization format for a user facing name.
// "turtle" and "n3", as well as "xml" and "pretty-xml", are synonyms.
func ParseFormat(name string) (rdf.Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "turtle", "n3", "ttl":
		return rdf.FormatTurtle, nil
	case "xml", "pretty-xml", "rdfxml":
		return rdf.FormatRDFXML, nil
	case "nt", "ntriples":
		return rdf.FormatNTriples, nil
	case "json-ld", "jsonld", "json":
		return rdf.FormatJSONLD, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ContentType returns the response content type for an output format name.
func ContentType(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "n3":
		return "text/rdf+n3; charset=utf-8"
	case "nt", "turtle":
		return "text/turtle; charset=utf-8"
	case "json-ld", "json":
		return "application/json; charset=utf-8"
	}
	return "application/rdf+xml; charset=utf-8"
}

// Serialize writes the graph to w using the named format.
func (g *Graph) Serialize(w io.Writer, name string) error {
	f, err := ParseFormat(name)
	if err != nil {
		return err
	}

	enc, err := rdf.NewWriter(w, f)
	if err != nil {
		return err
	}

	for _, t := range g.triples {
		if err = enc.Write(rdf.Statement{S: t.S, P: t.P, O: t.O}); err != nil {
			enc.Close() //nolint:errcheck
			return fmt.Errorf("serializing %s: %w", f, err)
		}
	}

	if err = enc.Flush(); err != nil {
		enc.Close() //nolint:errcheck
		return err
	}
	return enc.Close()
}

// String returns the graph serialized as N-Triples.
func (g *Graph) String() string {
	b := new(strings.Builder)
	if err := g.Serialize(b, "nt"); err != nil {
		return err.Error()
	}
	return b.String()
}
