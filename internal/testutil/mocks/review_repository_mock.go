package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/wordflash/wordflash/internal/models"
)

// MockReviewRepository is a mock implementation of repository.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Get(ctx context.Context, wordID string) (*models.ReviewState, error) {
	args := m.Called(ctx, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewState), args.Error(1)
}

func (m *MockReviewRepository) Upsert(ctx context.Context, state models.ReviewState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockReviewRepository) Due(ctx context.Context, now time.Time) ([]models.DueWord, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DueWord), args.Error(1)
}

func (m *MockReviewRepository) Upcoming(ctx context.Context, now time.Time, horizonDays int) ([]models.DueWord, error) {
	args := m.Called(ctx, now, horizonDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DueWord), args.Error(1)
}

func (m *MockReviewRepository) Delete(ctx context.Context, wordID string) error {
	args := m.Called(ctx, wordID)
	return args.Error(0)
}

func (m *MockReviewRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReviewRepository) AppendLog(ctx context.Context, wordID string, quality int, reviewedAt time.Time) error {
	args := m.Called(ctx, wordID, quality, reviewedAt)
	return args.Error(0)
}

func (m *MockReviewRepository) LogForWord(ctx context.Context, wordID string) ([]models.ReviewEntry, error) {
	args := m.Called(ctx, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewEntry), args.Error(1)
}
