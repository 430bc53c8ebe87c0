package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/wordflash/wordflash/internal/errors"
	"github.com/wordflash/wordflash/internal/logger"
)

func (s *Server) handleRegisterWord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	state, err := s.ReviewService.RegisterWord(r.Context(), id, time.Now().UTC())
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, state)
}

func (s *Server) handleReviewWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req struct {
		Quality *int `json:"quality"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Quality == nil {
		handleError(w, r, errors.NewBadRequestError("quality is required"))
		return
	}

	log.Debug("reviewing word: word_id=%s quality=%d", id, *req.Quality)

	state, err := s.ReviewService.RecordReview(r.Context(), id, *req.Quality, time.Now().UTC())
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, state)
}

func (s *Server) handleWordHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	history, err := s.ReviewService.GetWordHistory(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, history)
}

func (s *Server) handleDueWords(w http.ResponseWriter, r *http.Request) {
	due, err := s.ReviewService.GetDueWords(r.Context(), time.Now().UTC())
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"due":   due,
		"count": len(due),
	})
}

func (s *Server) handleUpcomingWords(w http.ResponseWriter, r *http.Request) {
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid days value"))
			return
		}
		days = parsed
	}

	upcoming, err := s.ReviewService.GetUpcoming(r.Context(), time.Now().UTC(), days)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"upcoming": upcoming,
		"count":    len(upcoming),
		"days":     days,
	})
}

func (s *Server) handleLearningQueue(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid limit value"))
			return
		}
		limit = parsed
	}

	queue, err := s.ReviewService.GetLearningQueue(r.Context(), time.Now().UTC(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, queue)
}

func (s *Server) handleResetWord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.ReviewService.ResetWord(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"reset": id})
}

func (s *Server) handleResetAll(w http.ResponseWriter, r *http.Request) {
	if err := s.ReviewService.ResetAll(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"reset": "all"})
}
