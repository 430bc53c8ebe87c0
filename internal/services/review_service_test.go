package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wordflash/wordflash/internal/errors"
	"github.com/wordflash/wordflash/internal/models"
	"github.com/wordflash/wordflash/internal/srs"
	"github.com/wordflash/wordflash/internal/testutil/mocks"
)

func newReviewServiceForTest() (ReviewService, *mocks.MockReviewRepository, *mocks.MockWordRepository) {
	reviewRepo := new(mocks.MockReviewRepository)
	wordRepo := new(mocks.MockWordRepository)
	svc := NewReviewService(srs.DefaultParams(), reviewRepo, wordRepo)
	return svc, reviewRepo, wordRepo
}

func testWord(id string) *models.Word {
	return &models.Word{ID: id, Word: "Ephemeral", Definition: "Lasting for a very short time"}
}

func TestRegisterWord_NewWord(t *testing.T) {
	svc, reviewRepo, wordRepo := newReviewServiceForTest()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	reviewRepo.On("Get", mock.Anything, "w1").Return(nil, nil)
	wordRepo.On("Get", mock.Anything, "w1").Return(testWord("w1"), nil)
	reviewRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(s models.ReviewState) bool {
		return s.WordID == "w1" && s.Level == 0 && s.IntervalDays == 1 && s.EaseFactor == 2.5
	})).Return(nil)

	state, err := svc.RegisterWord(context.Background(), "w1", now)
	require.NoError(t, err)
	assert.Equal(t, "w1", state.WordID)
	assert.Equal(t, 0, state.Level)
	assert.Equal(t, 1, state.IntervalDays)
	assert.Equal(t, 2.5, state.EaseFactor)
	assert.Equal(t, now, state.NextReviewAt)
	assert.Zero(t, state.ReviewCount)
	reviewRepo.AssertExpectations(t)
	wordRepo.AssertExpectations(t)
}

func TestRegisterWord_Idempotent(t *testing.T) {
	svc, reviewRepo, wordRepo := newReviewServiceForTest()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	existing := &models.ReviewState{
		WordID: "w1", Level: 3, EaseFactor: 2.2, IntervalDays: 15,
		NextReviewAt: now.AddDate(0, 0, 10), ReviewCount: 7, CorrectCount: 5, IncorrectCount: 2,
	}
	reviewRepo.On("Get", mock.Anything, "w1").Return(existing, nil)

	state, err := svc.RegisterWord(context.Background(), "w1", now)
	require.NoError(t, err)
	assert.Equal(t, existing, state, "registering an already tracked word must not touch its state")
	reviewRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	wordRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestRegisterWord_UnknownWord(t *testing.T) {
	svc, reviewRepo, wordRepo := newReviewServiceForTest()

	reviewRepo.On("Get", mock.Anything, "missing").Return(nil, nil)
	wordRepo.On("Get", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.RegisterWord(context.Background(), "missing", time.Now())
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
}

func TestRecordReview_InvalidQuality(t *testing.T) {
	svc, reviewRepo, _ := newReviewServiceForTest()

	for _, q := range []int{-1, 6, 100} {
		_, err := svc.RecordReview(context.Background(), "w1", q, time.Now())
		require.Error(t, err, "quality %d", q)
		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	}
	reviewRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestRecordReview_BootstrapsUntrackedWord(t *testing.T) {
	svc, reviewRepo, wordRepo := newReviewServiceForTest()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	reviewRepo.On("Get", mock.Anything, "w1").Return(nil, nil)
	wordRepo.On("Get", mock.Anything, "w1").Return(testWord("w1"), nil)
	reviewRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	reviewRepo.On("AppendLog", mock.Anything, "w1", 4, now).Return(nil)

	state, err := svc.RecordReview(context.Background(), "w1", 4, now)
	require.NoError(t, err)
	// First pass on a fresh word: level 0 -> 1, interval 1 day.
	assert.Equal(t, 1, state.Level)
	assert.Equal(t, 1, state.IntervalDays)
	assert.Equal(t, 1, state.ReviewCount)
	assert.Equal(t, 1, state.CorrectCount)
	assert.Equal(t, 0, state.IncorrectCount)
	assert.Equal(t, now.AddDate(0, 0, 1), state.NextReviewAt)
	assert.Equal(t, now, state.LastReviewedAt)
}

func TestRecordReview_CounterInvariant(t *testing.T) {
	svc, reviewRepo, wordRepo := newReviewServiceForTest()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	reviewRepo.On("Get", mock.Anything, "w1").Return(nil, nil).Once()
	wordRepo.On("Get", mock.Anything, "w1").Return(testWord("w1"), nil).Once()

	var stored *models.ReviewState
	reviewRepo.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		s := args.Get(1).(models.ReviewState)
		stored = &s
	}).Return(nil)
	reviewRepo.On("AppendLog", mock.Anything, "w1", mock.Anything, mock.Anything).Return(nil)

	qualities := []int{4, 5, 2, 3, 0, 5, 1, 4}
	for i, q := range qualities {
		if stored != nil {
			reviewRepo.On("Get", mock.Anything, "w1").Return(stored, nil).Once()
		}
		_, err := svc.RecordReview(context.Background(), "w1", q, now.AddDate(0, 0, i))
		require.NoError(t, err)
	}

	require.NotNil(t, stored)
	assert.Equal(t, len(qualities), stored.ReviewCount)
	assert.Equal(t, stored.ReviewCount, stored.CorrectCount+stored.IncorrectCount,
		"review count must always equal correct + incorrect")
	assert.Equal(t, 5, stored.CorrectCount)
	assert.Equal(t, 3, stored.IncorrectCount)
}

func TestRecordReview_StorageFailureLeavesStateUnchanged(t *testing.T) {
	svc, reviewRepo, _ := newReviewServiceForTest()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	existing := &models.ReviewState{
		WordID: "w1", Level: 2, EaseFactor: 2.5, IntervalDays: 6,
		NextReviewAt: now, ReviewCount: 3, CorrectCount: 3,
	}
	reviewRepo.On("Get", mock.Anything, "w1").Return(existing, nil)
	reviewRepo.On("Upsert", mock.Anything, mock.Anything).Return(fmt.Errorf("disk full"))

	_, err := svc.RecordReview(context.Background(), "w1", 4, now)
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeStorage, appErr.Code)
	assert.Equal(t, 503, appErr.Status)
	reviewRepo.AssertNotCalled(t, "AppendLog", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordReview_LogFailureIsNonFatal(t *testing.T) {
	svc, reviewRepo, _ := newReviewServiceForTest()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	existing := &models.ReviewState{
		WordID: "w1", Level: 1, EaseFactor: 2.5, IntervalDays: 1, NextReviewAt: now,
	}
	reviewRepo.On("Get", mock.Anything, "w1").Return(existing, nil)
	reviewRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	reviewRepo.On("AppendLog", mock.Anything, "w1", 5, now).Return(fmt.Errorf("log table locked"))

	state, err := svc.RecordReview(context.Background(), "w1", 5, now)
	require.NoError(t, err, "a lost log line must not fail the review")
	assert.Equal(t, 2, state.Level)
}

func TestRecordReview_FailureResetsLadder(t *testing.T) {
	svc, reviewRepo, _ := newReviewServiceForTest()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	existing := &models.ReviewState{
		WordID: "w1", Level: 4, EaseFactor: 2.5, IntervalDays: 38,
		NextReviewAt: now, ReviewCount: 4, CorrectCount: 4,
	}
	reviewRepo.On("Get", mock.Anything, "w1").Return(existing, nil)
	reviewRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	reviewRepo.On("AppendLog", mock.Anything, "w1", 1, now).Return(nil)

	state, err := svc.RecordReview(context.Background(), "w1", 1, now)
	require.NoError(t, err)
	assert.Equal(t, 0, state.Level)
	assert.Equal(t, 1, state.IntervalDays)
	assert.InDelta(t, 1.96, state.EaseFactor, 1e-9)
	assert.Equal(t, 1, state.IncorrectCount)
}

func TestGetUpcoming_RejectsBadHorizon(t *testing.T) {
	svc, _, _ := newReviewServiceForTest()

	for _, days := range []int{0, -3} {
		_, err := svc.GetUpcoming(context.Background(), time.Now(), days)
		require.Error(t, err)
		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	}
}

func TestGetLearningQueue_FillsWithNewWords(t *testing.T) {
	svc, reviewRepo, wordRepo := newReviewServiceForTest()
	now := time.Now()

	due := []models.DueWord{
		{ReviewState: models.ReviewState{WordID: "w1"}, Word: "Cogent"},
		{ReviewState: models.ReviewState{WordID: "w2"}, Word: "Sagacious"},
	}
	reviewRepo.On("Due", mock.Anything, now).Return(due, nil)
	wordRepo.On("ListUntracked", mock.Anything, 3).Return([]models.Word{
		{ID: "w3", Word: "Quixotic"},
	}, nil)

	queue, err := svc.GetLearningQueue(context.Background(), now, 5)
	require.NoError(t, err)
	assert.Len(t, queue.DueReviews, 2)
	assert.Len(t, queue.NewWords, 1)
	assert.Equal(t, "Cogent", queue.DueReviews[0].Word)
}

func TestGetLearningQueue_DueFillsLimit(t *testing.T) {
	svc, reviewRepo, wordRepo := newReviewServiceForTest()
	now := time.Now()

	due := make([]models.DueWord, 4)
	for i := range due {
		due[i] = models.DueWord{ReviewState: models.ReviewState{WordID: fmt.Sprintf("w%d", i)}}
	}
	reviewRepo.On("Due", mock.Anything, now).Return(due, nil)

	queue, err := svc.GetLearningQueue(context.Background(), now, 3)
	require.NoError(t, err)
	assert.Len(t, queue.DueReviews, 3)
	assert.Empty(t, queue.NewWords)
	wordRepo.AssertNotCalled(t, "ListUntracked", mock.Anything, mock.Anything)
}

func TestGetWordHistory_Untracked(t *testing.T) {
	svc, reviewRepo, _ := newReviewServiceForTest()

	reviewRepo.On("Get", mock.Anything, "w1").Return(nil, nil)

	history, err := svc.GetWordHistory(context.Background(), "w1")
	require.NoError(t, err)
	assert.Equal(t, "w1", history.WordID)
	assert.Zero(t, history.ReviewCount)
	assert.Zero(t, history.Accuracy)
	assert.Nil(t, history.LastReviewedAt)
	assert.Nil(t, history.NextReviewAt)
}

func TestGetWordHistory_Accuracy(t *testing.T) {
	svc, reviewRepo, _ := newReviewServiceForTest()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	reviewRepo.On("Get", mock.Anything, "w1").Return(&models.ReviewState{
		WordID: "w1", ReviewCount: 8, CorrectCount: 6, IncorrectCount: 2,
		LastReviewedAt: now, NextReviewAt: now.AddDate(0, 0, 6),
	}, nil)
	reviewRepo.On("LogForWord", mock.Anything, "w1").Return([]models.ReviewEntry{
		{ID: 1, WordID: "w1", Quality: 4, ReviewedAt: now},
	}, nil)

	history, err := svc.GetWordHistory(context.Background(), "w1")
	require.NoError(t, err)
	assert.InDelta(t, 75.0, history.Accuracy, 1e-9)
	assert.Len(t, history.Entries, 1)
	require.NotNil(t, history.LastReviewedAt)
	assert.Equal(t, now, *history.LastReviewedAt)
	require.NotNil(t, history.NextReviewAt)
	assert.Equal(t, now.AddDate(0, 0, 6), *history.NextReviewAt)
}

func TestResetWord_ThenRegisterBootstrapsFresh(t *testing.T) {
	svc, reviewRepo, wordRepo := newReviewServiceForTest()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	reviewRepo.On("Delete", mock.Anything, "w1").Return(nil)
	require.NoError(t, svc.ResetWord(context.Background(), "w1"))

	// After a reset, registration behaves exactly like a first encounter.
	reviewRepo.On("Get", mock.Anything, "w1").Return(nil, nil)
	wordRepo.On("Get", mock.Anything, "w1").Return(testWord("w1"), nil)
	reviewRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	state, err := svc.RegisterWord(context.Background(), "w1", now)
	require.NoError(t, err)
	assert.Equal(t, srs.DefaultParams().NewState("w1", now), *state)
}

func TestResetAll(t *testing.T) {
	svc, reviewRepo, _ := newReviewServiceForTest()

	reviewRepo.On("DeleteAll", mock.Anything).Return(nil)
	require.NoError(t, svc.ResetAll(context.Background()))
	reviewRepo.AssertExpectations(t)
}
