// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"codeberg.org/readeck/distiller/internal/metrics"
	"codeberg.org/readeck/distiller/pkg/distill"
)

func TestMetrics(t *testing.T) {
	assert := require.New(t)
	m := metrics.New()

	m.Report(distill.Report{
		Source:   "http://example.net/",
		Status:   distill.Status{Code: 200},
		Triples:  4,
		Duration: 20 * time.Millisecond,
	})
	m.Report(distill.Report{
		Source:   "http://example.net/missing",
		Status:   distill.Status{Code: 404, Kind: distill.KindFetch},
		Duration: 5 * time.Millisecond,
	})

	families, err := m.Registry().Gather()
	assert.NoError(err)
	assert.Len(families, 3)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(body, `distiller_sources_total{kind="none"} 1`)
	assert.Contains(body, `distiller_sources_total{kind="fetch"} 1`)
	assert.Contains(body, "distiller_triples_total 4")
	assert.Contains(body, "distiller_source_duration_seconds_bucket")
}
