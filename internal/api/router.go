package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", s.handleHealth)

		// Inbound voice-platform events
		r.Post("/skill", s.handleSkill)

		// Group registry, read only. Mutations go through the skill.
		r.Route("/groups", func(r chi.Router) {
			r.Get("/", s.handleListGroups)
			r.Get("/memberships", s.handleListMemberships)
		})
	})

	return r
}
