package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer, withGZip, h.withTimeout)

	router.Get("/healthz", h.health)

	router.Route("/api/auth", func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Use(h.withRateLimit)
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Post("/forgot-password", h.forgotPassword)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/me", h.me)
			r.Post("/upload-profile", h.uploadProfilePhoto)
		})
	})

	router.Route("/api/jobs", func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/", h.listJobs)
		r.Post("/", h.createJob)
		r.Get("/{id}", h.getJob)
		r.Put("/{id}", h.updateJob)
		r.Delete("/{id}", h.deleteJob)
	})

	router.NotFound(h.routeNotFound)
	router.MethodNotAllowed(CheckHTTPMethod(router, h.routeNotFound))

	return router
}
