// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MKhiriev/wanderlust-offline/internal/session"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	router.Handle("/metrics", promhttp.Handler())

	// offline JSON API
	router.Route("/offline", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.server.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Content-Encoding", session.HeaderName, traceIDHeader},
			ExposedHeaders:   []string{session.HeaderName, traceIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		if h.server.RequestTimeout > 0 {
			r.Use(middleware.Timeout(h.server.RequestTimeout))
		}
		r.Use(withGZip, h.withSession, withBearerUser)

		r.Route("/trips", func(r chi.Router) {
			r.Post("/", h.saveTrip)
			r.Get("/", h.listTrips)
			r.Post("/create", h.createTrip)
			r.Get("/{tripID}", h.getTrip)
			r.Put("/{tripID}", h.updateTrip)
			r.Delete("/{tripID}", h.deleteTrip)
		})

		r.Get("/status", h.syncStatus)
		r.Post("/sync", h.syncNow)
		r.Post("/retry", h.retryFailed)
		r.Post("/clear", h.clearAll)
	})

	// everything else goes through the interception layer
	router.Handle("/*", h.interceptor)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
