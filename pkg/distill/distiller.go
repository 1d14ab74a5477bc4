// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package distill extracts the structured data embedded in HTML documents.
//
// A [Distiller] resolves its sources, parses them as HTML and runs every
// enabled [Extractor] on the resulting tree. All the statements end up in
// one [graph.Graph]. Failures on a source either abort the run or, in error
// mode, are described by statements added to the graph.
package distill

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"codeberg.org/readeck/distiller/pkg/graph"
)

// Report is sent after each processed source.
type Report struct {
	Source   string
	Status   Status
	Triples  int
	Duration time.Duration
}

// Distiller runs the extractors on a list of sources. It keeps the status
// of the last processed source and must not be shared between goroutines.
type Distiller struct {
	client     *http.Client
	logger     *slog.Logger
	base       string
	options    Options
	extractors []Extractor
	reporter   func(Report)
	status     Status
}

// New creates a new [Distiller] with the default options and extractors.
func New(options ...func(d *Distiller)) *Distiller {
	d := &Distiller{
		client:  http.DefaultClient,
		logger:  slog.Default(),
		options: DefaultOptions(),
		status:  okStatus(),
	}

	for _, f := range options {
		f(d)
	}

	d.extractors = append(DefaultExtractors(&HTTPVocabLoader{Client: d.client}), d.extractors...)
	return d
}

// WithClient sets the HTTP client used to fetch sources and vocabularies.
func WithClient(client *http.Client) func(d *Distiller) {
	return func(d *Distiller) {
		d.client = client
	}
}

// WithLogger sets the distiller's logger.
func WithLogger(logger *slog.Logger) func(d *Distiller) {
	return func(d *Distiller) {
		d.logger = logger
	}
}

// WithBase sets the base IRI of the stream sources.
func WithBase(base string) func(d *Distiller) {
	return func(d *Distiller) {
		d.base = base
	}
}

// WithOptions sets the extraction options.
func WithOptions(o Options) func(d *Distiller) {
	return func(d *Distiller) {
		d.options = o
	}
}

// WithExtractors adds extractors after the built-in ones.
func WithExtractors(extractors ...Extractor) func(d *Distiller) {
	return func(d *Distiller) {
		d.extractors = append(d.extractors, extractors...)
	}
}

// WithReporter sets a function receiving a [Report] for every source.
func WithReporter(f func(Report)) func(d *Distiller) {
	return func(d *Distiller) {
		d.reporter = f
	}
}

// Options returns the distiller's options.
func (d *Distiller) Options() Options {
	return d.options
}

// Status returns the status of the last processed source.
func (d *Distiller) Status() Status {
	return d.status
}

// Log returns the distiller's logger.
func (d *Distiller) Log() *slog.Logger {
	return d.logger
}

func (d *Distiller) runContext(ctx context.Context) context.Context {
	if _, ok := checkLogger(ctx); !ok {
		ctx = withLogger(ctx, d.logger.With(slog.String("run", uuid.NewString())))
	}
	if _, ok := checkHTTPClient(ctx); !ok {
		ctx = WithHTTPClient(ctx, d.client)
	}
	return ctx
}

// GraphFromTree runs the enabled extractors on a parsed document, using
// the distiller's base. When g is nil, a new graph is created.
func (d *Distiller) GraphFromTree(ctx context.Context, root *html.Node, g *graph.Graph) (*graph.Graph, error) {
	if g == nil {
		g = graph.New()
	}
	if d.options.Empty() {
		return g, nil
	}
	return g, d.extract(d.runContext(ctx), root, g, d.base)
}

func (d *Distiller) extract(ctx context.Context, root *html.Node, g *graph.Graph, base string) error {
	for _, e := range d.extractors {
		if !e.Enabled(d.options) {
			continue
		}
		before := g.Len()
		if err := d.runExtractor(ctx, e, root, g, base); err != nil {
			return err
		}
		Logger(ctx).Debug("extractor done",
			slog.String("extractor", e.Name()),
			slog.Int("triples", g.Len()-before),
		)
	}
	return nil
}

func (d *Distiller) runExtractor(ctx context.Context, e Extractor, root *html.Node, g *graph.Graph, base string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Error{
				Kind:  KindInternal,
				Err:   fmt.Errorf("%s extractor: %v", e.Name(), r),
				Stack: debug.Stack(),
			}
		}
	}()

	if err = e.Extract(ctx, root, g, base, d.options); err != nil {
		return newError(KindParse, "", fmt.Errorf("%s: %w", e.Name(), err))
	}
	return nil
}

// GraphFromSource processes one source into g, creating it when nil.
// In error mode, a failure is added to the graph as an error event and
// no error is returned.
func (d *Distiller) GraphFromSource(ctx context.Context, src Source, g *graph.Graph, errorMode bool) (*graph.Graph, error) {
	if g == nil {
		g = graph.New()
	}
	ctx = d.runContext(ctx)
	d.status = okStatus()

	start := time.Now()
	before := g.Len()
	err := d.processSource(ctx, src, g)
	d.status = statusOf(err)

	if d.reporter != nil {
		d.reporter(Report{
			Source:   src.String(),
			Status:   d.status,
			Triples:  g.Len() - before,
			Duration: time.Since(start),
		})
	}

	if err == nil {
		Logger(ctx).Info("source processed",
			slog.String("source", src.String()),
			slog.Int("triples", g.Len()-before),
		)
		return g, nil
	}

	Logger(ctx).Error("source failed",
		slog.String("source", src.String()),
		slog.String("kind", d.status.Kind.String()),
		slog.Int("status", d.status.Code),
		slog.Any("err", err),
	)
	if !errorMode {
		return g, err
	}
	return ErrorGraph(g, err.Error(), src.String(), d.status.Code), nil
}

func (d *Distiller) processSource(ctx context.Context, src Source, g *graph.Graph) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Error{
				Kind:   KindInternal,
				Source: src.String(),
				Err:    fmt.Errorf("%v", r),
				Stack:  debug.Stack(),
			}
		}
	}()

	r, base, err := d.Resolve(ctx, src)
	if err != nil {
		return err
	}
	defer r.Close() //nolint:errcheck

	root, err := html.Parse(r)
	if err != nil {
		return &Error{Kind: KindParse, Source: src.String(), Err: err}
	}

	if err = d.extract(ctx, root, g, base); err != nil {
		var e *Error
		if errors.As(err, &e) && e.Source == "" {
			e.Source = src.String()
		}
		return err
	}
	return nil
}

// GraphFromSources processes the sources in order into one graph. With
// empty options, no source is read and an empty graph is returned. In
// error mode, failures are added to the graph and the following sources
// are processed. Otherwise the first failure stops the run.
func (d *Distiller) GraphFromSources(ctx context.Context, sources []Source, errorMode bool) (*graph.Graph, error) {
	g := graph.New()
	if d.options.Empty() {
		return g, nil
	}

	ctx = d.runContext(ctx)
	for _, src := range sources {
		if _, err := d.GraphFromSource(ctx, src, g, errorMode); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// RDFFromSources processes the sources and writes the resulting graph
// to w in the given format.
func (d *Distiller) RDFFromSources(ctx context.Context, w io.Writer, sources []Source, format string, errorMode bool) error {
	g, err := d.GraphFromSources(ctx, sources, errorMode)
	if err != nil {
		return err
	}
	return g.Serialize(w, format)
}

// RDFFromSource processes one source and writes the resulting graph to w.
func (d *Distiller) RDFFromSource(ctx context.Context, w io.Writer, src Source, format string, errorMode bool) error {
	return d.RDFFromSources(ctx, w, []Source{src}, format, errorMode)
}
