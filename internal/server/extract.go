// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/CloudyKit/jet/v6"

	"codeberg.org/readeck/distiller/configs"
	"codeberg.org/readeck/distiller/pkg/distill"
	"codeberg.org/readeck/distiller/pkg/graph"
)

const (
	textURI     = "text:"
	uploadedURI = "uploaded:"

	maxUploadSize = 10 << 20
	defaultFormat = "turtle"
)

var errInvalidURI = errors.New("only http and https URIs are accepted")

// extractForm holds the parameters of an extraction request.
type extractForm struct {
	uri      string
	text     string
	format   string
	force    bool
	options  distill.Options
	uploaded bool
}

func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxUploadSize)
	}
	return r.ParseForm()
}

// formOption returns true when the parameter's value is compare. Its
// dashed variant is accepted when the parameter is absent.
func formOption(form url.Values, param, compare string, def bool) bool {
	for _, name := range []string{param, strings.ReplaceAll(param, "_", "-")} {
		if v, ok := form[name]; ok && len(v) > 0 {
			return strings.ToLower(v[0]) == compare
		}
	}
	return def
}

func newExtractForm(r *http.Request) extractForm {
	sources := r.Form["source"]

	f := extractForm{
		uri:    r.Form.Get("uri"),
		text:   r.Form.Get("text"),
		format: r.Form.Get("format"),
		options: distill.Options{
			RDFa:           slices.Contains(sources, "rdfa"),
			Microdata:      slices.Contains(sources, "microdata"),
			Turtle:         slices.Contains(sources, "hturtle"),
			JSONLD:         slices.Contains(sources, "jsonld"),
			VocabExpansion: formOption(r.Form, "vocab_expansion", "true", false),
		},
	}
	f.uploaded = f.uri == uploadedURI
	_, f.force = r.Form["forceRDFOutput"]
	if f.format == "" {
		f.format = defaultFormat
	}

	return f
}

// source returns the distiller source matching the form's URI.
// Only remote URIs are accepted, the sentinels select the text
// field or the uploaded file. The returned closer, when not nil,
// must be closed once the source is processed.
func (f extractForm) source(r *http.Request) (distill.Source, io.Closer, error) {
	switch f.uri {
	case textURI:
		return distill.ReaderSource{R: strings.NewReader(f.text), Name: textURI}, nil, nil
	case uploadedURI:
		fp, _, err := r.FormFile("uploaded")
		if err != nil {
			return nil, nil, err
		}
		return distill.ReaderSource{R: fp, Name: uploadedURI}, fp, nil
	}

	u, err := url.Parse(f.uri)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, nil, errInvalidURI
	}
	return distill.URISource(u.String()), nil, nil
}

func (s *Server) extractHandler(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		s.errorPage(w, r, http.StatusBadRequest, err.Error(), "")
		return
	}

	f := newExtractForm(r)
	if _, err := graph.ParseFormat(f.format); err != nil {
		s.errorPage(w, r, http.StatusBadRequest, fmt.Sprintf("%s: %q", err, f.format), f.uri)
		return
	}

	src, closer, err := f.source(r)
	if err != nil {
		s.errorPage(w, r, http.StatusBadRequest, err.Error(), f.uri)
		return
	}
	if closer != nil {
		defer closer.Close() //nolint:errcheck
	}

	d := distill.New(
		distill.WithClient(s.client),
		distill.WithLogger(Log(r)),
		distill.WithBase(configs.Config.Distill.Base),
		distill.WithOptions(f.options),
		distill.WithReporter(s.metrics.Report),
	)

	buf := new(bytes.Buffer)
	if err = d.RDFFromSource(r.Context(), buf, src, f.format, f.force); err != nil {
		s.failure(w, r, f, err)
		return
	}

	w.Header().Set("Content-Type", graph.ContentType(f.format))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

// failure renders a processing failure. Fetch, open and parse
// failures get the error page, any other failure gets the debug
// page when enabled.
func (s *Server) failure(w http.ResponseWriter, r *http.Request, f extractForm, err error) {
	status := http.StatusInternalServerError
	var e *distill.Error
	if errors.As(err, &e) {
		status = e.StatusCode()
		if e.Kind != distill.KindInternal {
			s.errorPage(w, r, status, err.Error(), f.uri)
			return
		}
	}

	if !configs.Config.Server.DebugPages {
		s.errorPage(w, r, status, http.StatusText(status), f.uri)
		return
	}

	stack := debug.Stack()
	if e != nil && len(e.Stack) > 0 {
		stack = e.Stack
	}

	Log(r).Error("extraction failure", slog.Any("err", err))
	RenderTemplate(w, r, status, "debug.jet.html", make(jet.VarMap).
		Set("status", status).
		Set("message", err.Error()).
		Set("stack", string(stack)).
		Set("uri", f.uri).
		Set("text", strings.TrimSpace(f.text)).
		Set("isText", f.uri == textURI).
		Set("uploaded", f.uploaded).
		Set("format", f.format),
	)
}

func (s *Server) errorPage(w http.ResponseWriter, r *http.Request, status int, message, uri string) {
	Log(r).Warn("extraction error",
		slog.Int("status", status),
		slog.String("message", message),
		slog.String("uri", uri),
	)
	RenderTemplate(w, r, status, "error.jet.html", make(jet.VarMap).
		Set("status", status).
		Set("message", message).
		Set("uri", uri),
	)
}
