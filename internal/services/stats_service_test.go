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
	"github.com/wordflash/wordflash/internal/testutil/mocks"
)

func TestGetStatistics(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepository)
	svc := NewStatsService(statsRepo)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	statsRepo.On("SRSStats", mock.Anything, now).Return(&models.SRSStats{
		TotalWords:      42,
		DueToday:        5,
		DueTomorrow:     3,
		TotalReviews:    120,
		AverageAccuracy: 81.5,
	}, nil)

	stats, err := svc.GetStatistics(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 42, stats.TotalWords)
	assert.Equal(t, 5, stats.DueToday)
	assert.InDelta(t, 81.5, stats.AverageAccuracy, 1e-9)
}

func TestGetStatistics_StorageFailure(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepository)
	svc := NewStatsService(statsRepo)

	statsRepo.On("SRSStats", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("database locked"))

	_, err := svc.GetStatistics(context.Background(), time.Now())
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeStorage, appErr.Code)
}
