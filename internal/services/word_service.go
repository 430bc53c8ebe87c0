package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wordflash/wordflash/internal/errors"
	"github.com/wordflash/wordflash/internal/logger"
	"github.com/wordflash/wordflash/internal/models"
	"github.com/wordflash/wordflash/internal/repository"
	"github.com/wordflash/wordflash/internal/wordlist"
)

// WordService handles catalogue-related business logic
type WordService interface {
	CreateWord(ctx context.Context, entry wordlist.Entry, now time.Time) (*models.Word, error)
	GetWord(ctx context.Context, id string) (*models.Word, error)
	ListWords(ctx context.Context, filter models.WordFilter) ([]models.Word, int, error)
	ImportEntries(ctx context.Context, entries []wordlist.Entry, now time.Time) (int, error)
}

type wordService struct {
	wordRepo repository.WordRepository
}

// NewWordService creates a new WordService
func NewWordService(wordRepo repository.WordRepository) WordService {
	return &wordService{wordRepo: wordRepo}
}

func entryToWord(e wordlist.Entry, now time.Time) models.Word {
	return models.Word{
		ID:           uuid.NewString(),
		Word:         strings.TrimSpace(e.Word),
		PartOfSpeech: e.PartOfSpeech,
		Definition:   strings.TrimSpace(e.Definition),
		Example:      e.Example,
		Synonyms:     e.Synonyms,
		Antonyms:     e.Antonyms,
		Category:     e.Category,
		CreatedAt:    now,
	}
}

func (s *wordService) CreateWord(ctx context.Context, entry wordlist.Entry, now time.Time) (*models.Word, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating word: %s", entry.Word)

	if strings.TrimSpace(entry.Word) == "" {
		return nil, errors.NewValidationError("word", "cannot be empty")
	}
	if strings.TrimSpace(entry.Definition) == "" {
		return nil, errors.NewValidationError("definition", "cannot be empty")
	}

	word := entryToWord(entry, now)
	if err := s.wordRepo.Insert(ctx, word); err != nil {
		log.Error("failed to insert word: %v", err)
		return nil, errors.NewStorageError("insert word", err)
	}

	log.Info("word created: id=%s word=%s", word.ID, word.Word)
	return &word, nil
}

func (s *wordService) GetWord(ctx context.Context, id string) (*models.Word, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting word: id=%s", id)

	word, err := s.wordRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get word: %v", err)
		return nil, errors.NewStorageError("load word", err)
	}
	if word == nil {
		return nil, errors.NewNotFoundError("word", id)
	}
	return word, nil
}

func (s *wordService) ListWords(ctx context.Context, filter models.WordFilter) ([]models.Word, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing words: category=%s", filter.Category)

	words, err := s.wordRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list words: %v", err)
		return nil, 0, errors.NewStorageError("list words", err)
	}

	totalCount, err := s.wordRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count words: %v", err)
		return nil, 0, errors.NewStorageError("count words", err)
	}

	return words, totalCount, nil
}

func (s *wordService) ImportEntries(ctx context.Context, entries []wordlist.Entry, now time.Time) (int, error) {
	log := logger.FromContext(ctx)
	log.Debug("importing %d word entries", len(entries))

	words := make([]models.Word, 0, len(entries))
	for _, e := range entries {
		words = append(words, entryToWord(e, now))
	}

	inserted, err := s.wordRepo.InsertBatch(ctx, words)
	if err != nil {
		log.Error("failed to import words: %v", err)
		return 0, errors.NewStorageError("import words", err)
	}

	log.Info("imported %d of %d words", inserted, len(entries))
	return inserted, nil
}
