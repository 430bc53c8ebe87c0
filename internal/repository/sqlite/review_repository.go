package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/wordflash/wordflash/internal/logger"
	"github.com/wordflash/wordflash/internal/models"
	"github.com/wordflash/wordflash/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Get(ctx context.Context, wordID string) (*models.ReviewState, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("getting review state: word_id=%s", wordID)

	var s models.ReviewState
	var lastReviewed sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT word_id, level, ease_factor, interval_days, next_review_at,
       review_count, correct_count, incorrect_count, last_reviewed_at, created_at
FROM review_states
WHERE word_id = ?
`, wordID).Scan(&s.WordID, &s.Level, &s.EaseFactor, &s.IntervalDays, &s.NextReviewAt,
		&s.ReviewCount, &s.CorrectCount, &s.IncorrectCount, &lastReviewed, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("review state not found: word_id=%s", wordID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get review state: %v", err)
		return nil, err
	}
	if lastReviewed.Valid {
		s.LastReviewedAt = lastReviewed.Time
	}
	return &s, nil
}

// Upsert replaces the whole row in a single statement so that a review's
// scheduling fields and counters land together or not at all.
func (r *reviewRepository) Upsert(ctx context.Context, s models.ReviewState) error {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("upserting review state: word_id=%s level=%d interval=%d ease=%.2f",
		s.WordID, s.Level, s.IntervalDays, s.EaseFactor)

	var lastReviewed any
	if !s.LastReviewedAt.IsZero() {
		lastReviewed = s.LastReviewedAt
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_states (word_id, level, ease_factor, interval_days, next_review_at,
                           review_count, correct_count, incorrect_count, last_reviewed_at, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(word_id) DO UPDATE SET
    level = excluded.level,
    ease_factor = excluded.ease_factor,
    interval_days = excluded.interval_days,
    next_review_at = excluded.next_review_at,
    review_count = excluded.review_count,
    correct_count = excluded.correct_count,
    incorrect_count = excluded.incorrect_count,
    last_reviewed_at = excluded.last_reviewed_at
`, s.WordID, s.Level, s.EaseFactor, s.IntervalDays, s.NextReviewAt,
		s.ReviewCount, s.CorrectCount, s.IncorrectCount, lastReviewed, s.CreatedAt)
	if err != nil {
		log.Error("failed to upsert review state: %v", err)
	}
	return err
}

func (r *reviewRepository) Due(ctx context.Context, now time.Time) ([]models.DueWord, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("fetching due words")

	rows, err := r.db.QueryContext(ctx, `
SELECT r.word_id, r.level, r.ease_factor, r.interval_days, r.next_review_at,
       r.review_count, r.correct_count, r.incorrect_count, r.last_reviewed_at, r.created_at,
       w.word, w.definition, w.example, w.category
FROM review_states r
JOIN words w ON w.id = r.word_id
WHERE r.next_review_at <= ?
ORDER BY r.next_review_at ASC, r.created_at ASC, r.word_id ASC
`, now)
	if err != nil {
		log.Error("failed to query due words: %v", err)
		return nil, err
	}
	defer rows.Close()

	due, err := scanDueWords(rows)
	if err != nil {
		log.Error("failed to scan due word row: %v", err)
		return nil, err
	}
	log.Debug("found %d due words", len(due))
	return due, nil
}

func (r *reviewRepository) Upcoming(ctx context.Context, now time.Time, horizonDays int) ([]models.DueWord, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("fetching upcoming words: horizon_days=%d", horizonDays)

	horizon := now.AddDate(0, 0, horizonDays)
	rows, err := r.db.QueryContext(ctx, `
SELECT r.word_id, r.level, r.ease_factor, r.interval_days, r.next_review_at,
       r.review_count, r.correct_count, r.incorrect_count, r.last_reviewed_at, r.created_at,
       w.word, w.definition, w.example, w.category
FROM review_states r
JOIN words w ON w.id = r.word_id
WHERE r.next_review_at > ? AND r.next_review_at <= ?
ORDER BY r.next_review_at ASC, r.created_at ASC, r.word_id ASC
`, now, horizon)
	if err != nil {
		log.Error("failed to query upcoming words: %v", err)
		return nil, err
	}
	defer rows.Close()

	upcoming, err := scanDueWords(rows)
	if err != nil {
		log.Error("failed to scan upcoming word row: %v", err)
		return nil, err
	}
	log.Debug("found %d upcoming words", len(upcoming))
	return upcoming, nil
}

func (r *reviewRepository) Delete(ctx context.Context, wordID string) error {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("deleting review state: word_id=%s", wordID)

	_, err := r.db.ExecContext(ctx, `DELETE FROM review_states WHERE word_id = ?`, wordID)
	if err != nil {
		log.Error("failed to delete review state: %v", err)
	}
	return err
}

func (r *reviewRepository) DeleteAll(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("deleting all review states")

	_, err := r.db.ExecContext(ctx, `DELETE FROM review_states`)
	if err != nil {
		log.Error("failed to delete review states: %v", err)
	}
	return err
}

func (r *reviewRepository) AppendLog(ctx context.Context, wordID string, quality int, reviewedAt time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("appending review log: word_id=%s quality=%d", wordID, quality)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_log (word_id, quality, reviewed_at)
VALUES (?, ?, ?)
`, wordID, quality, reviewedAt)
	if err != nil {
		log.Error("failed to append review log: %v", err)
	}
	return err
}

func (r *reviewRepository) LogForWord(ctx context.Context, wordID string) ([]models.ReviewEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("fetching review log: word_id=%s", wordID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, word_id, quality, reviewed_at
FROM review_log
WHERE word_id = ?
ORDER BY reviewed_at ASC, id ASC
`, wordID)
	if err != nil {
		log.Error("failed to query review log: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.ReviewEntry
	for rows.Next() {
		var e models.ReviewEntry
		if err := rows.Scan(&e.ID, &e.WordID, &e.Quality, &e.ReviewedAt); err != nil {
			log.Error("failed to scan review log row: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanDueWords(rows *sql.Rows) ([]models.DueWord, error) {
	var due []models.DueWord
	for rows.Next() {
		var d models.DueWord
		var lastReviewed sql.NullTime
		if err := rows.Scan(&d.WordID, &d.Level, &d.EaseFactor, &d.IntervalDays, &d.NextReviewAt,
			&d.ReviewCount, &d.CorrectCount, &d.IncorrectCount, &lastReviewed, &d.CreatedAt,
			&d.Word, &d.Definition, &d.Example, &d.Category); err != nil {
			return nil, err
		}
		if lastReviewed.Valid {
			d.LastReviewedAt = lastReviewed.Time
		}
		due = append(due, d)
	}
	return due, rows.Err()
}
