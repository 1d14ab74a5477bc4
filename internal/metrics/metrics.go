// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package metrics records the distiller runs as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"codeberg.org/readeck/distiller/pkg/distill"
)

const namespace = "distiller"

// Metrics holds the distiller metrics.
type Metrics struct {
	reg      *prometheus.Registry
	sources  *prometheus.CounterVec
	triples  prometheus.Counter
	duration *prometheus.HistogramVec
}

// New creates and registers the metrics on a new registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		reg: reg,
		sources: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sources_total",
				Help:      "Number of processed sources by outcome.",
			},
			[]string{"kind"},
		),
		triples: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "triples_total",
				Help:      "Number of statements extracted from the sources.",
			},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "source_duration_seconds",
				Help:      "Time spent on a source.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
			},
			[]string{"kind"},
		),
	}
}

// Report records a distiller report. It is meant to be passed
// to [distill.WithReporter].
func (m *Metrics) Report(r distill.Report) {
	kind := r.Status.Kind.String()
	m.sources.WithLabelValues(kind).Inc()
	m.duration.WithLabelValues(kind).Observe(r.Duration.Seconds())
	m.triples.Add(float64(r.Triples))
}

// Registry returns the metrics registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// Handler returns the HTTP handler exposing the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
