// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package distill_test

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"

	"codeberg.org/readeck/distiller/pkg/distill"
	. "codeberg.org/readeck/distiller/pkg/extract/testing" //revive:disable:dot-imports
	"codeberg.org/readeck/distiller/pkg/graph"
)

func TestNewSource(t *testing.T) {
	tests := []struct {
		id       string
		expected distill.Source
	}{
		{"https://example.org/", distill.URISource("https://example.org/")},
		{"http://example.org/a?b=c", distill.URISource("http://example.org/a?b=c")},
		{"ftp://example.org/file.html", distill.URISource("ftp://example.org/file.html")},
		{"file.html", distill.FileSource("file.html")},
		{"/tmp/file.html", distill.FileSource("/tmp/file.html")},
		{`C:\docs\file.html`, distill.FileSource(`C:\docs\file.html`)},
		{"c:/docs/file.html", distill.FileSource("c:/docs/file.html")},
	}

	for _, test := range tests {
		t.Run(test.id, func(t *testing.T) {
			require.Equal(t, test.expected, distill.NewSource(test.id))
		})
	}
}

func TestResolve(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://example.org/latin1",
		NewContentResponder(200, map[string]string{"content-type": "text/html"}, "latin1.html"))
	httpmock.RegisterResponder("GET", "https://example.org/a", NewRedirectResponder(302, "https://example.net/b"))
	httpmock.RegisterResponder("GET", "https://example.net/b", NewHTMLResponder(200, "mixed.html"))
	httpmock.RegisterResponder("GET", "https://example.org/500", NewHTMLResponder(500, "mixed.html"))
	httpmock.RegisterResponder("GET", "https://example.org/ioerror",
		NewIOErrorResponder(200, map[string]string{"content-type": "text/html"}))

	ctx := context.Background()
	readAll := func(t *testing.T, r io.ReadCloser) string {
		t.Helper()
		defer r.Close() //nolint:errcheck
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		return string(data)
	}

	t.Run("uri charset", func(t *testing.T) {
		assert := require.New(t)

		r, base, err := distill.New().Resolve(ctx, distill.URISource("https://example.org/latin1"))
		assert.NoError(err)
		assert.Equal("https://example.org/latin1", base)
		assert.Contains(readAll(t, r), "Café")
	})

	t.Run("uri redirect", func(t *testing.T) {
		assert := require.New(t)

		r, base, err := distill.New().Resolve(ctx, distill.URISource("https://example.org/a"))
		assert.NoError(err)
		assert.Equal("https://example.net/b", base)
		assert.Contains(readAll(t, r), "from rdfa")
	})

	t.Run("uri status", func(t *testing.T) {
		assert := require.New(t)

		_, _, err := distill.New().Resolve(ctx, distill.URISource("https://example.org/500"))
		var e *distill.Error
		assert.ErrorAs(err, &e)
		assert.Equal(distill.KindFetch, e.Kind)
		assert.Equal(http.StatusInternalServerError, e.StatusCode())
	})

	t.Run("uri read error", func(t *testing.T) {
		assert := require.New(t)

		d := distill.New()
		g, err := d.GraphFromSource(ctx, distill.URISource("https://example.org/ioerror"), nil, false)
		assert.NotNil(g)
		assert.Error(err)
		assert.False(d.Status().OK())
	})

	t.Run("file", func(t *testing.T) {
		assert := require.New(t)

		r, base, err := distill.New().Resolve(ctx, distill.FileSource("test-fixtures/latin1.html"))
		assert.NoError(err)

		abs, _ := filepath.Abs("test-fixtures/latin1.html")
		assert.Equal("file://"+filepath.ToSlash(abs), base)
		assert.Contains(readAll(t, r), "Café")
	})

	t.Run("file error", func(t *testing.T) {
		assert := require.New(t)

		_, _, err := distill.New().Resolve(ctx, distill.FileSource("test-fixtures/nope.html"))
		var e *distill.Error
		assert.ErrorAs(err, &e)
		assert.Equal(distill.KindOpen, e.Kind)
		assert.Equal(http.StatusBadRequest, e.StatusCode())
		assert.ErrorIs(err, os.ErrNotExist)
	})

	t.Run("reader", func(t *testing.T) {
		assert := require.New(t)

		d := distill.New(distill.WithBase("https://example.org/base"))
		r, base, err := d.Resolve(ctx, distill.ReaderSource{
			R:    strings.NewReader("<p>hello</p>"),
			Name: "stdin",
		})
		assert.NoError(err)
		assert.Equal("https://example.org/base", base)
		assert.Equal("<p>hello</p>", readAll(t, r))
	})

	t.Run("file graph", func(t *testing.T) {
		assert := require.New(t)

		abs, _ := filepath.Abs("test-fixtures/latin1.html")
		g, err := distill.New().GraphFromSource(ctx, distill.FileSource("test-fixtures/latin1.html"), nil, false)
		assert.NoError(err)
		assert.True(g.Has(
			graph.IRI("file://"+filepath.ToSlash(abs)+"#x"),
			graph.IRI(graph.NsDC+"title"),
			graph.Literal("Café"),
		))
	})
}
