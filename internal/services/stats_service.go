package services

import (
	"context"
	"time"

	"github.com/wordflash/wordflash/internal/errors"
	"github.com/wordflash/wordflash/internal/logger"
	"github.com/wordflash/wordflash/internal/models"
	"github.com/wordflash/wordflash/internal/repository"
)

// StatsService handles statistics-related business logic
type StatsService interface {
	GetStatistics(ctx context.Context, now time.Time) (*models.SRSStats, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) GetStatistics(ctx context.Context, now time.Time) (*models.SRSStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting scheduler statistics")

	stats, err := s.statsRepo.SRSStats(ctx, now)
	if err != nil {
		log.Error("failed to get statistics: %v", err)
		return nil, errors.NewStorageError("aggregate statistics", err)
	}
	return stats, nil
}
