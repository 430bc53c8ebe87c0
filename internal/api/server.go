package api

import (
	"github.com/wordflash/wordflash/internal/db"
	"github.com/wordflash/wordflash/internal/services"
	"github.com/wordflash/wordflash/internal/worker"
)

type Server struct {
	DB            *db.DB
	WordService   services.WordService
	ReviewService services.ReviewService
	StatsService  services.StatsService
	ImportPool    *worker.Pool
}
