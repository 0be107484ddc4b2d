package repository

import (
	"portfolio-insight/config"
	"portfolio-insight/pkg/cache"
	"portfolio-insight/pkg/logger"
)

type Repository struct {
	RobinhoodRepo RobinhoodRepository
	FinnhubRepo   FinnhubRepository
	SentimentRepo SentimentRepository
}

func NewRepository(cfg *config.Config, inmemoryCache cache.Cache, log *logger.Logger) *Repository {
	return &Repository{
		RobinhoodRepo: NewRobinhoodRepository(cfg, inmemoryCache, log),
		FinnhubRepo:   NewFinnhubRepository(cfg, log),
		SentimentRepo: NewSentimentRepository(cfg, log),
	}
}
