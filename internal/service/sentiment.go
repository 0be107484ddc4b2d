package service

import (
	"context"
	"errors"

	"portfolio-insight/config"
	"portfolio-insight/internal/apperr"
	"portfolio-insight/internal/dto"
	"portfolio-insight/internal/repository"
	"portfolio-insight/pkg/logger"
)

type SentimentService interface {
	Analyze(ctx context.Context, text string) (dto.SentimentResult, error)
	AnalyzeBatch(ctx context.Context, texts []string) []dto.SentimentResult
}

type sentimentService struct {
	cfg           *config.Config
	log           *logger.Logger
	sentimentRepo repository.SentimentRepository
}

func NewSentimentService(cfg *config.Config, log *logger.Logger, sentimentRepo repository.SentimentRepository) SentimentService {
	return &sentimentService{
		cfg:           cfg,
		log:           log,
		sentimentRepo: sentimentRepo,
	}
}

// Analyze classifies a single text. A classification failure downgrades to
// the defaulted neutral result, only a model-load failure is returned as an
// error since no classification is possible at all in that case.
func (s *sentimentService) Analyze(ctx context.Context, text string) (dto.SentimentResult, error) {
	result, err := s.sentimentRepo.Classify(ctx, text)
	if err != nil {
		if errors.Is(err, apperr.ErrModelLoad) {
			return dto.SentimentResult{}, err
		}
		s.log.ErrorContext(ctx, "Error analyzing sentiment, defaulting to neutral", logger.ErrorField(err))
		return dto.NeutralSentiment(), nil
	}
	return *result, nil
}

// AnalyzeBatch is a sequential map over Analyze. Output order matches input
// order; per-text failures come back as neutral results.
func (s *sentimentService) AnalyzeBatch(ctx context.Context, texts []string) []dto.SentimentResult {
	results := make([]dto.SentimentResult, 0, len(texts))
	for _, text := range texts {
		result, err := s.Analyze(ctx, text)
		if err != nil {
			result = dto.NeutralSentiment()
		}
		results = append(results, result)
	}
	return results
}
