// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(h.requestTimeout), withGZip)

		r.Get("/flags", h.allFlags)
		r.Get("/flags/{key}", h.flag)
		r.Post("/track", h.track)
		r.Post("/flush", h.flush)
		r.Get("/status", h.status)
	})

	router.Method("GET", "/metrics", promhttp.HandlerFor(h.client.Metrics(), promhttp.HandlerOpts{}))

	return router
}
