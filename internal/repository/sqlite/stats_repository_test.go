package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/wordflash/wordflash/internal/repository"
	"github.com/wordflash/wordflash/internal/repository/sqlite"
	"github.com/wordflash/wordflash/internal/testutil"
)

type StatsRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.StatsRepository
	now  time.Time
}

func (s *StatsRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewStatsRepository(s.db)
	s.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *StatsRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StatsRepositorySuite) trackWord(id string, nextReview time.Time, reviews, correct, incorrect int) {
	ctx := context.Background()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO words (id, word, definition) VALUES (?, ?, ?)
	`, id, "word-"+id, "def")
	s.Require().NoError(err)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO review_states (word_id, next_review_at, review_count, correct_count, incorrect_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, nextReview, reviews, correct, incorrect, s.now)
	s.Require().NoError(err)
}

func (s *StatsRepositorySuite) TestSRSStats_Empty() {
	stats, err := s.repo.SRSStats(context.Background(), s.now)
	s.Require().NoError(err)
	s.Require().NotNil(stats)
	s.Assert().Zero(stats.TotalWords)
	s.Assert().Zero(stats.TotalReviews)
	s.Assert().Zero(stats.AverageAccuracy, "no reviews must not divide by zero")
}

func (s *StatsRepositorySuite) TestSRSStats_Aggregation() {
	// Accuracy: (3 + 3) correct over (4 + 6) reviews = 60%.
	s.trackWord("w1", s.now.AddDate(0, 0, -1), 4, 3, 1)
	s.trackWord("w2", s.now.Add(12*time.Hour), 6, 3, 3)
	s.trackWord("w3", s.now.AddDate(0, 0, 5), 0, 0, 0)

	stats, err := s.repo.SRSStats(context.Background(), s.now)
	s.Require().NoError(err)
	s.Assert().Equal(3, stats.TotalWords)
	s.Assert().Equal(1, stats.DueToday)
	s.Assert().Equal(1, stats.DueTomorrow)
	s.Assert().Equal(10, stats.TotalReviews)
	s.Assert().InDelta(60.0, stats.AverageAccuracy, 0.0001)
}

func (s *StatsRepositorySuite) TestSRSStats_DueBoundaries() {
	s.trackWord("w1", s.now, 1, 1, 0)                   // due exactly now counts as today
	s.trackWord("w2", s.now.AddDate(0, 0, 1), 1, 1, 0)  // exactly tomorrow counts as tomorrow
	s.trackWord("w3", s.now.AddDate(0, 0, 2), 1, 0, 1)  // beyond tomorrow counts as neither

	stats, err := s.repo.SRSStats(context.Background(), s.now)
	s.Require().NoError(err)
	s.Assert().Equal(1, stats.DueToday)
	s.Assert().Equal(1, stats.DueTomorrow)
}

func TestStatsRepositorySuite(t *testing.T) {
	suite.Run(t, new(StatsRepositorySuite))
}
