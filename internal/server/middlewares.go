// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package server

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// CompressResponse returns a gzipped response for the HTML pages and
// the RDF serializations.
func CompressResponse(next http.Handler) http.Handler {
	w, err := gzhttp.NewWrapper(
		gzhttp.CompressionLevel(5),
		gzhttp.ContentTypes([]string{
			"text/html", "text/plain",
			"text/turtle", "text/rdf+n3",
			"application/rdf+xml", "application/json",
		}),
		gzhttp.MinSize(1024),
		gzhttp.RandomJitter(32, 0, false),
	)
	if err != nil {
		panic(err)
	}
	return w(next)
}
