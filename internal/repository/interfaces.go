package repository

import (
	"context"
	"time"

	"github.com/wordflash/wordflash/internal/models"
)

// WordRepository handles catalogue data access
type WordRepository interface {
	Insert(ctx context.Context, word models.Word) error
	InsertBatch(ctx context.Context, words []models.Word) (int, error)
	Get(ctx context.Context, id string) (*models.Word, error)
	List(ctx context.Context, filter models.WordFilter) ([]models.Word, error)
	Count(ctx context.Context, filter models.WordFilter) (int, error)
	ListUntracked(ctx context.Context, limit int) ([]models.Word, error)
}

// ReviewRepository handles scheduler state data access. A review state
// is written as a whole row; readers never observe a partial update.
type ReviewRepository interface {
	Get(ctx context.Context, wordID string) (*models.ReviewState, error)
	Upsert(ctx context.Context, state models.ReviewState) error
	Due(ctx context.Context, now time.Time) ([]models.DueWord, error)
	Upcoming(ctx context.Context, now time.Time, horizonDays int) ([]models.DueWord, error)
	Delete(ctx context.Context, wordID string) error
	DeleteAll(ctx context.Context) error
	AppendLog(ctx context.Context, wordID string, quality int, reviewedAt time.Time) error
	LogForWord(ctx context.Context, wordID string) ([]models.ReviewEntry, error)
}

// StatsRepository handles statistics aggregation
type StatsRepository interface {
	SRSStats(ctx context.Context, now time.Time) (*models.SRSStats, error)
}
