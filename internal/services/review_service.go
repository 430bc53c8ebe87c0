package services

import (
	"context"
	"sync"
	"time"

	"github.com/wordflash/wordflash/internal/errors"
	"github.com/wordflash/wordflash/internal/logger"
	"github.com/wordflash/wordflash/internal/models"
	"github.com/wordflash/wordflash/internal/repository"
	"github.com/wordflash/wordflash/internal/srs"
)

// ReviewService handles scheduler-related business logic
type ReviewService interface {
	RegisterWord(ctx context.Context, wordID string, now time.Time) (*models.ReviewState, error)
	RecordReview(ctx context.Context, wordID string, quality int, now time.Time) (*models.ReviewState, error)
	GetDueWords(ctx context.Context, now time.Time) ([]models.DueWord, error)
	GetUpcoming(ctx context.Context, now time.Time, horizonDays int) ([]models.DueWord, error)
	GetLearningQueue(ctx context.Context, now time.Time, limit int) (*models.LearningQueue, error)
	GetWordHistory(ctx context.Context, wordID string) (*models.WordHistory, error)
	ResetWord(ctx context.Context, wordID string) error
	ResetAll(ctx context.Context) error
}

type reviewService struct {
	params     srs.Params
	reviewRepo repository.ReviewRepository
	wordRepo   repository.WordRepository

	// One mutex per word serializes the read-modify-write of its state.
	locks sync.Map
}

// NewReviewService creates a new ReviewService
func NewReviewService(params srs.Params, reviewRepo repository.ReviewRepository, wordRepo repository.WordRepository) ReviewService {
	return &reviewService{
		params:     params,
		reviewRepo: reviewRepo,
		wordRepo:   wordRepo,
	}
}

func (s *reviewService) wordLock(wordID string) *sync.Mutex {
	m, _ := s.locks.LoadOrStore(wordID, &sync.Mutex{})
	return m.(*sync.Mutex)
}

func (s *reviewService) RegisterWord(ctx context.Context, wordID string, now time.Time) (*models.ReviewState, error) {
	log := logger.FromContext(ctx)
	log.Debug("registering word: word_id=%s", wordID)

	mu := s.wordLock(wordID)
	mu.Lock()
	defer mu.Unlock()

	state, err := s.reviewRepo.Get(ctx, wordID)
	if err != nil {
		log.Error("failed to load review state: %v", err)
		return nil, errors.NewStorageError("load review state", err)
	}
	if state != nil {
		log.Debug("word already registered: word_id=%s", wordID)
		return state, nil
	}

	word, err := s.wordRepo.Get(ctx, wordID)
	if err != nil {
		log.Error("failed to load word: %v", err)
		return nil, errors.NewStorageError("load word", err)
	}
	if word == nil {
		return nil, errors.NewNotFoundError("word", wordID)
	}

	fresh := s.params.NewState(wordID, now)
	if err := s.reviewRepo.Upsert(ctx, fresh); err != nil {
		log.Error("failed to persist review state: %v", err)
		return nil, errors.NewStorageError("persist review state", err)
	}

	log.Info("word registered for review: word_id=%s", wordID)
	return &fresh, nil
}

func (s *reviewService) RecordReview(ctx context.Context, wordID string, quality int, now time.Time) (*models.ReviewState, error) {
	log := logger.FromContext(ctx)
	log.Debug("recording review: word_id=%s quality=%d", wordID, quality)

	if quality < 0 || quality > 5 {
		return nil, errors.NewValidationError("quality", "must be between 0 and 5")
	}

	mu := s.wordLock(wordID)
	mu.Lock()
	defer mu.Unlock()

	state, err := s.reviewRepo.Get(ctx, wordID)
	if err != nil {
		log.Error("failed to load review state: %v", err)
		return nil, errors.NewStorageError("load review state", err)
	}
	if state == nil {
		// First review of an untracked word bootstraps it in place.
		word, err := s.wordRepo.Get(ctx, wordID)
		if err != nil {
			log.Error("failed to load word: %v", err)
			return nil, errors.NewStorageError("load word", err)
		}
		if word == nil {
			return nil, errors.NewNotFoundError("word", wordID)
		}
		fresh := s.params.NewState(wordID, now)
		state = &fresh
	}

	res, err := s.params.Next(*state, quality, now)
	if err != nil {
		return nil, errors.NewValidationError("quality", err.Error())
	}

	state.Level = res.NewLevel
	state.IntervalDays = res.NewInterval
	state.EaseFactor = res.NewEase
	state.NextReviewAt = res.NextReviewAt
	state.LastReviewedAt = now
	state.ReviewCount++
	if quality >= 3 {
		state.CorrectCount++
	} else {
		state.IncorrectCount++
	}

	log.Debug("applied review: word_id=%s level=%d interval=%d ease=%.2f",
		wordID, state.Level, state.IntervalDays, state.EaseFactor)

	if err := s.reviewRepo.Upsert(ctx, *state); err != nil {
		log.Error("failed to persist review state: %v", err)
		return nil, errors.NewStorageError("persist review state", err)
	}

	// The log line is an analytics nicety; losing it never fails the review.
	if err := s.reviewRepo.AppendLog(ctx, wordID, quality, now); err != nil {
		log.Warn("failed to append review log: %v", err)
	}

	return state, nil
}

func (s *reviewService) GetDueWords(ctx context.Context, now time.Time) ([]models.DueWord, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting due words")

	due, err := s.reviewRepo.Due(ctx, now)
	if err != nil {
		log.Error("failed to get due words: %v", err)
		return nil, errors.NewStorageError("query due words", err)
	}
	return due, nil
}

func (s *reviewService) GetUpcoming(ctx context.Context, now time.Time, horizonDays int) ([]models.DueWord, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting upcoming words: horizon_days=%d", horizonDays)

	if horizonDays < 1 {
		return nil, errors.NewValidationError("horizon_days", "must be at least 1")
	}

	upcoming, err := s.reviewRepo.Upcoming(ctx, now, horizonDays)
	if err != nil {
		log.Error("failed to get upcoming words: %v", err)
		return nil, errors.NewStorageError("query upcoming words", err)
	}
	return upcoming, nil
}

func (s *reviewService) GetLearningQueue(ctx context.Context, now time.Time, limit int) (*models.LearningQueue, error) {
	log := logger.FromContext(ctx)
	log.Debug("building learning queue: limit=%d", limit)

	if limit <= 0 {
		limit = 20
	}

	due, err := s.reviewRepo.Due(ctx, now)
	if err != nil {
		log.Error("failed to get due words: %v", err)
		return nil, errors.NewStorageError("query due words", err)
	}
	if len(due) > limit {
		due = due[:limit]
	}

	queue := &models.LearningQueue{DueReviews: due}

	if remaining := limit - len(due); remaining > 0 {
		newWords, err := s.wordRepo.ListUntracked(ctx, remaining)
		if err != nil {
			log.Error("failed to list untracked words: %v", err)
			return nil, errors.NewStorageError("query untracked words", err)
		}
		queue.NewWords = newWords
	}

	log.Debug("learning queue: %d due, %d new", len(queue.DueReviews), len(queue.NewWords))
	return queue, nil
}

func (s *reviewService) GetWordHistory(ctx context.Context, wordID string) (*models.WordHistory, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting word history: word_id=%s", wordID)

	state, err := s.reviewRepo.Get(ctx, wordID)
	if err != nil {
		log.Error("failed to load review state: %v", err)
		return nil, errors.NewStorageError("load review state", err)
	}
	if state == nil {
		// "No history yet" is an ordinary answer, not an error.
		return &models.WordHistory{WordID: wordID}, nil
	}

	history := &models.WordHistory{
		WordID:         wordID,
		ReviewCount:    state.ReviewCount,
		CorrectCount:   state.CorrectCount,
		IncorrectCount: state.IncorrectCount,
	}
	if state.ReviewCount > 0 {
		history.Accuracy = 100 * float64(state.CorrectCount) / float64(state.ReviewCount)
	}
	if !state.LastReviewedAt.IsZero() {
		t := state.LastReviewedAt
		history.LastReviewedAt = &t
	}
	next := state.NextReviewAt
	history.NextReviewAt = &next

	entries, err := s.reviewRepo.LogForWord(ctx, wordID)
	if err != nil {
		log.Error("failed to load review log: %v", err)
		return nil, errors.NewStorageError("load review log", err)
	}
	history.Entries = entries

	return history, nil
}

func (s *reviewService) ResetWord(ctx context.Context, wordID string) error {
	log := logger.FromContext(ctx)
	log.Debug("resetting word: word_id=%s", wordID)

	mu := s.wordLock(wordID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.reviewRepo.Delete(ctx, wordID); err != nil {
		log.Error("failed to reset word: %v", err)
		return errors.NewStorageError("delete review state", err)
	}
	log.Info("word reset: word_id=%s", wordID)
	return nil
}

func (s *reviewService) ResetAll(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Debug("resetting all words")

	if err := s.reviewRepo.DeleteAll(ctx); err != nil {
		log.Error("failed to reset all words: %v", err)
		return errors.NewStorageError("delete review states", err)
	}
	log.Info("all review states reset")
	return nil
}
