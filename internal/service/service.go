package service

import (
	"portfolio-insight/config"
	"portfolio-insight/internal/repository"
	"portfolio-insight/pkg/logger"
)

type Service struct {
	PortfolioService PortfolioService
	NewsService      NewsService
	SentimentService SentimentService
	SummaryService   SummaryService
}

func NewService(cfg *config.Config, log *logger.Logger, repo *repository.Repository) *Service {
	portfolioService := NewPortfolioService(cfg, log, repo.RobinhoodRepo)
	newsService := NewNewsService(cfg, log, repo.FinnhubRepo)
	sentimentService := NewSentimentService(cfg, log, repo.SentimentRepo)
	summaryService := NewSummaryService(cfg, log, portfolioService, newsService, sentimentService)

	return &Service{
		PortfolioService: portfolioService,
		NewsService:      newsService,
		SentimentService: sentimentService,
		SummaryService:   summaryService,
	}
}
