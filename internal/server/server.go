// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package server is the distiller's web form front end.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"codeberg.org/readeck/distiller/internal/metrics"
)

// Server is a wrapper around chi router.
type Server struct {
	*chi.Mux
	client  *http.Client
	metrics *metrics.Metrics
}

// New creates a new server with its routes. The given client
// fetches the remote sources.
func New(client *http.Client, m *metrics.Metrics) *Server {
	s := &Server{
		Mux:     chi.NewRouter(),
		client:  client,
		metrics: m,
	}

	s.Use(
		middleware.RequestID,
		middleware.RealIP,
		Logger(),
		middleware.Recoverer,
		CompressResponse,
	)

	s.Get("/", s.indexHandler)
	s.Get("/extract", s.extractHandler)
	s.Post("/extract", s.extractHandler)
	s.Method(http.MethodGet, "/metrics", m.Handler())

	return s
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	RenderTemplate(w, r, http.StatusOK, "index.jet.html", nil)
}

// GetReqID returns the request ID.
func GetReqID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}

// Log returns a log entry including the request ID.
func Log(r *http.Request) *slog.Logger {
	return slog.With(slog.String("@id", GetReqID(r)))
}
