package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/wordflash/wordflash/internal/errors"
	"github.com/wordflash/wordflash/internal/logger"
	"github.com/wordflash/wordflash/internal/models"
	"github.com/wordflash/wordflash/internal/wordlist"
	"github.com/wordflash/wordflash/internal/worker"
)

func (s *Server) handleCreateWord(w http.ResponseWriter, r *http.Request) {
	var entry wordlist.Entry
	if err := decodeJSON(r, &entry); err != nil {
		handleError(w, r, err)
		return
	}

	word, err := s.WordService.CreateWord(r.Context(), entry, time.Now().UTC())
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, word)
}

func (s *Server) handleListWords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.WordFilter{
		Category:     q.Get("category"),
		PartOfSpeech: q.Get("part_of_speech"),
		OrderBy:      q.Get("order_by"),
		OrderDir:     q.Get("order_dir"),
	}
	if v := q.Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}
	if v := q.Get("offset"); v != "" {
		filter.Offset, _ = strconv.Atoi(v)
	}

	words, total, err := s.WordService.ListWords(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"words": words,
		"total": total,
	})
}

func (s *Server) handleGetWord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	word, err := s.WordService.GetWord(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, word)
}

// handleImportWords parses the posted word list synchronously so malformed
// documents are rejected up front, then hands the insert to the import pool.
func (s *Server) handleImportWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	entries, err := wordlist.Parse(r.Body)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError(err.Error()))
		return
	}

	s.ImportPool.Submit(&worker.ImportWordsJob{
		Importer: s.WordService,
		Entries:  entries,
	})

	log.Info("queued import of %d words", len(entries))
	respondJSON(w, r, http.StatusAccepted, map[string]any{
		"queued": len(entries),
	})
}
