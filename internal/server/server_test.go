// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package server_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"

	"codeberg.org/readeck/distiller/configs"
	"codeberg.org/readeck/distiller/internal/metrics"
	"codeberg.org/readeck/distiller/internal/server"
)

const turtleDoc = `<html><head>
<script type="text/turtle">
@prefix dc: <http://purl.org/dc/terms/> .
<http://example.net/doc> dc:title "Turtle title" .
</script>
</head><body></body></html>`

const rdfaDoc = `<html><body vocab="http://schema.org/">
<div typeof="Person"><span property="name">Alice</span></div>
</body></html>`

func newServer() *server.Server {
	return server.New(http.DefaultClient, metrics.New())
}

func postForm(s http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/extract", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func getForm(s http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/extract?"+values.Encode(), nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func TestServer(t *testing.T) {
	configs.Reset()
	defer configs.Reset()

	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "http://example.net/rdfa",
		httpmock.NewStringResponder(200, rdfaDoc).HeaderSet(http.Header{
			"Content-Type": []string{"text/html; charset=utf-8"},
		}))
	httpmock.RegisterResponder("GET", "http://example.net/missing",
		httpmock.NewStringResponder(404, "not found"))

	s := newServer()

	t.Run("index", func(t *testing.T) {
		assert := require.New(t)
		w := httptest.NewRecorder()
		s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(http.StatusOK, w.Code)
		assert.Equal("text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(w.Body.String(), `name="forceRDFOutput"`)
	})

	t.Run("text", func(t *testing.T) {
		assert := require.New(t)
		w := postForm(s, url.Values{
			"uri":    {"text:"},
			"text":   {turtleDoc},
			"source": {"hturtle"},
			"format": {"nt"},
		})

		assert.Equal(http.StatusOK, w.Code)
		assert.Equal("text/turtle; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(w.Body.String(),
			`<http://example.net/doc> <http://purl.org/dc/terms/title> "Turtle title" .`)
	})

	t.Run("uri", func(t *testing.T) {
		assert := require.New(t)
		w := getForm(s, url.Values{
			"uri":    {"http://example.net/rdfa"},
			"source": {"rdfa"},
			"format": {"json-ld"},
		})

		assert.Equal(http.StatusOK, w.Code)
		assert.Equal("application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(w.Body.String(), "Alice")
	})

	t.Run("default format", func(t *testing.T) {
		assert := require.New(t)
		w := getForm(s, url.Values{
			"uri":    {"http://example.net/rdfa"},
			"source": {"rdfa"},
		})

		assert.Equal(http.StatusOK, w.Code)
		assert.Equal("text/turtle; charset=utf-8", w.Header().Get("Content-Type"))
	})

	t.Run("xml", func(t *testing.T) {
		assert := require.New(t)
		w := getForm(s, url.Values{
			"uri":    {"http://example.net/rdfa"},
			"source": {"rdfa"},
			"format": {"pretty-xml"},
		})

		assert.Equal(http.StatusOK, w.Code)
		assert.Equal("application/rdf+xml; charset=utf-8", w.Header().Get("Content-Type"))
	})

	t.Run("no source", func(t *testing.T) {
		assert := require.New(t)
		w := getForm(s, url.Values{
			"uri":    {"http://example.net/missing"},
			"format": {"nt"},
		})

		assert.Equal(http.StatusOK, w.Code)
		assert.Empty(strings.TrimSpace(w.Body.String()))
	})

	t.Run("upload", func(t *testing.T) {
		assert := require.New(t)

		body := new(bytes.Buffer)
		mw := multipart.NewWriter(body)
		assert.NoError(mw.WriteField("uri", "uploaded:"))
		assert.NoError(mw.WriteField("source", "hturtle"))
		assert.NoError(mw.WriteField("format", "nt"))
		fw, err := mw.CreateFormFile("uploaded", "doc.html")
		assert.NoError(err)
		_, err = fw.Write([]byte(turtleDoc))
		assert.NoError(err)
		assert.NoError(mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/extract", body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		s.ServeHTTP(w, req)

		assert.Equal(http.StatusOK, w.Code)
		assert.Contains(w.Body.String(), "Turtle title")
	})

	t.Run("fetch error", func(t *testing.T) {
		assert := require.New(t)
		w := getForm(s, url.Values{
			"uri":    {"http://example.net/missing"},
			"source": {"rdfa"},
		})

		assert.Equal(http.StatusNotFound, w.Code)
		assert.Equal("text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(w.Body.String(), "HTTP Error: 404")
		assert.Contains(w.Body.String(), "On URI: <code>'http://example.net/missing'</code>")
	})

	t.Run("forced rdf output", func(t *testing.T) {
		assert := require.New(t)
		w := getForm(s, url.Values{
			"uri":            {"http://example.net/missing"},
			"source":         {"rdfa"},
			"format":         {"nt"},
			"forceRDFOutput": {"true"},
		})

		assert.Equal(http.StatusOK, w.Code)
		assert.Contains(w.Body.String(), "<http://www.w3.org/2012/pySde/vocab#Error>")
		assert.Contains(w.Body.String(), "<http://www.w3.org/2006/http#404>")
	})

	t.Run("unknown format", func(t *testing.T) {
		assert := require.New(t)
		w := getForm(s, url.Values{
			"uri":    {"http://example.net/rdfa"},
			"source": {"rdfa"},
			"format": {"yaml"},
		})

		assert.Equal(http.StatusBadRequest, w.Code)
		assert.Contains(w.Body.String(), "yaml")
	})

	t.Run("local file", func(t *testing.T) {
		assert := require.New(t)
		w := getForm(s, url.Values{
			"uri":    {"/etc/passwd"},
			"source": {"rdfa"},
		})

		assert.Equal(http.StatusBadRequest, w.Code)
		assert.Contains(w.Body.String(), "only http and https URIs are accepted")
	})

	t.Run("metrics", func(t *testing.T) {
		assert := require.New(t)
		w := httptest.NewRecorder()
		s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(http.StatusOK, w.Code)
		assert.Contains(w.Body.String(), `distiller_sources_total{kind="fetch"}`)
		assert.Contains(w.Body.String(), `distiller_sources_total{kind="none"}`)
	})
}
