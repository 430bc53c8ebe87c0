package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Route("/words", func(r chi.Router) {
			r.Post("/", s.handleCreateWord)
			r.Get("/", s.handleListWords)
			r.Post("/import", s.handleImportWords)
			r.Get("/{id}", s.handleGetWord)
			r.Post("/{id}/register", s.handleRegisterWord)
			r.Post("/{id}/review", s.handleReviewWord)
			r.Get("/{id}/history", s.handleWordHistory)
			r.Delete("/{id}/srs", s.handleResetWord)
		})
		r.Route("/reviews", func(r chi.Router) {
			r.Get("/due", s.handleDueWords)
			r.Get("/upcoming", s.handleUpcomingWords)
			r.Get("/queue", s.handleLearningQueue)
		})
		r.Get("/stats", s.handleStats)
		r.Delete("/srs", s.handleResetAll)
	})

	return r
}
