package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withMetrics)

	router.Group(func(r chi.Router) {
		r.Use(withGZip)
		r.Use(h.withBearerToken)
		r.Post("/query", h.query)
	})

	router.Get("/verify/{token}", h.verifyEmail)
	router.Get("/api/version", h.getServerVersion)
	router.Handle("/metrics", h.metrics.Handler())

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
