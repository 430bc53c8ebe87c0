package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/wordflash/wordflash/internal/logger"
	"github.com/wordflash/wordflash/internal/models"
	"github.com/wordflash/wordflash/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) SRSStats(ctx context.Context, now time.Time) (*models.SRSStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("aggregating scheduler stats")

	tomorrow := now.AddDate(0, 0, 1)

	var stats models.SRSStats
	var totalCorrect int
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(*),
    COALESCE(SUM(CASE WHEN next_review_at <= ? THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN next_review_at > ? AND next_review_at <= ? THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(review_count), 0),
    COALESCE(SUM(correct_count), 0)
FROM review_states
`, now, now, tomorrow).Scan(&stats.TotalWords, &stats.DueToday, &stats.DueTomorrow,
		&stats.TotalReviews, &totalCorrect)
	if err != nil {
		log.Error("failed to aggregate stats: %v", err)
		return nil, err
	}

	if stats.TotalReviews > 0 {
		stats.AverageAccuracy = 100 * float64(totalCorrect) / float64(stats.TotalReviews)
	}

	log.Debug("stats: total=%d due_today=%d due_tomorrow=%d reviews=%d accuracy=%.1f",
		stats.TotalWords, stats.DueToday, stats.DueTomorrow, stats.TotalReviews, stats.AverageAccuracy)
	return &stats, nil
}
