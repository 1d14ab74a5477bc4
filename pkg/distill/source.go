// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package distill

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/net/html/charset"
)

// Source is an input document: a network resource, a local file or an
// open stream.
type Source interface {
	// String returns the source identifier used in logs and error graphs.
	String() string
	isSource()
}

// URISource is a network resource.
type URISource string

// FileSource is a local file path.
type FileSource string

// ReaderSource is an already open stream.
type ReaderSource struct {
	R    io.Reader
	Name string
}

func (s URISource) String() string  { return string(s) }
func (s FileSource) String() string { return string(s) }
func (s ReaderSource) String() string {
	return s.Name
}

func (URISource) isSource()    {}
func (FileSource) isSource()   {}
func (ReaderSource) isSource() {}

// NewSource classifies an identifier. An identifier with a URL scheme is a
// network resource, anything else is a file path. Single letter schemes
// are Windows drive letters.
func NewSource(identifier string) Source {
	if u, err := url.Parse(identifier); err == nil && len(u.Scheme) > 1 {
		return URISource(identifier)
	}
	return FileSource(identifier)
}

// NewSources classifies a list of identifiers.
func NewSources(identifiers ...string) []Source {
	res := make([]Source, len(identifiers))
	for i, x := range identifiers {
		res[i] = NewSource(x)
	}
	return res
}

// Resolve opens a source and returns its content decoded to UTF-8,
// along with the base IRI of the document.
func (d *Distiller) Resolve(ctx context.Context, src Source) (io.ReadCloser, string, error) {
	switch s := src.(type) {
	case URISource:
		return d.fetch(ctx, string(s))
	case FileSource:
		return d.open(ctx, string(s))
	case ReaderSource:
		r, err := decodeStream(s.R, "")
		if err != nil {
			return nil, "", newError(KindParse, s.Name, err)
		}
		return io.NopCloser(r), d.base, nil
	case *ReaderSource:
		return d.Resolve(ctx, *s)
	}
	panic(fmt.Sprintf("unknown source type %T", src))
}

func (d *Distiller) fetch(ctx context.Context, uri string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, "", &Error{Kind: KindFetch, Source: uri, Err: err}
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.1")

	rsp, err := d.client.Do(req)
	if err != nil {
		return nil, "", &Error{Kind: KindFetch, Source: uri, Err: err}
	}

	if rsp.StatusCode >= 400 {
		rsp.Body.Close() //nolint:errcheck
		return nil, "", &Error{
			Kind:   KindFetch,
			Source: uri,
			Status: rsp.StatusCode,
			Err:    errors.New(http.StatusText(rsp.StatusCode)),
		}
	}

	base := uri
	if rsp.Request != nil && rsp.Request.URL != nil {
		base = rsp.Request.URL.String()
	}

	r, err := decodeStream(rsp.Body, rsp.Header.Get("Content-Type"))
	if err != nil {
		rsp.Body.Close() //nolint:errcheck
		return nil, "", &Error{Kind: KindFetch, Source: uri, Err: err}
	}

	Logger(ctx).Debug("source fetched",
		slog.String("url", base),
		slog.Int("status", rsp.StatusCode),
		slog.String("content-type", rsp.Header.Get("Content-Type")),
	)

	return readCloser{r, rsp.Body}, base, nil
}

func (d *Distiller) open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	path, err := filepath.Abs(name)
	if err != nil {
		return nil, "", newError(KindOpen, name, err)
	}

	fd, err := os.Open(path)
	if err != nil {
		return nil, "", newError(KindOpen, name, err)
	}

	r, err := decodeStream(fd, "")
	if err != nil {
		fd.Close() //nolint:errcheck
		return nil, "", newError(KindOpen, name, err)
	}

	Logger(ctx).Debug("file opened", slog.String("path", path))
	return readCloser{r, fd}, (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String(), nil
}

// decodeStream returns a reader converting the content to UTF-8.
// Without a content type, it is sniffed from the first bytes.
func decodeStream(r io.Reader, contentType string) (io.Reader, error) {
	br := bufio.NewReaderSize(r, 3072)
	if contentType == "" {
		head, err := br.Peek(3072)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
			return nil, err
		}
		contentType = mimetype.Detect(head).String()
	}

	return charset.NewReader(br, contentType)
}

type readCloser struct {
	io.Reader
	io.Closer
}
