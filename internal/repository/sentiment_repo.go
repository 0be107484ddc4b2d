package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"portfolio-insight/config"
	"portfolio-insight/internal/apperr"
	"portfolio-insight/internal/dto"
	"portfolio-insight/pkg/logger"
	"portfolio-insight/pkg/utils"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

type SentimentRepository interface {
	Classify(ctx context.Context, text string) (*dto.SentimentResult, error)
}

// sentimentRepository classifies financial text with the Gemini API. Client
// creation is deferred to first use and guarded so concurrent first calls
// initialize exactly once. An initialization failure is sticky: every
// subsequent call returns the same model-load error.
type sentimentRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter

	initOnce  sync.Once
	initErr   error
	client    *genai.Client
	newClient func(ctx context.Context) (*genai.Client, error)
}

// NewSentimentRepository creates a new instance of sentimentRepository.
func NewSentimentRepository(cfg *config.Config, log *logger.Logger) SentimentRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &sentimentRepository{
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
		newClient: func(ctx context.Context) (*genai.Client, error) {
			return genai.NewClient(ctx, &genai.ClientConfig{
				APIKey: cfg.Gemini.APIKey,
			})
		},
	}
}

func (r *sentimentRepository) ensureModel(ctx context.Context) error {
	r.initOnce.Do(func() {
		r.logger.InfoContext(ctx, "Initializing sentiment model client",
			logger.StringField("model", r.cfg.Gemini.BaseModel))

		client, err := r.newClient(ctx)
		if err != nil {
			r.initErr = fmt.Errorf("%w: %v", apperr.ErrModelLoad, err)
			return
		}
		r.client = client
		r.logger.InfoContext(ctx, "Sentiment model client initialized")
	})
	return r.initErr
}

func (r *sentimentRepository) Classify(ctx context.Context, text string) (*dto.SentimentResult, error) {
	if err := r.ensureModel(ctx); err != nil {
		return nil, err
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: wait for request limit: %v", apperr.ErrClassification, err)
	}

	truncated := utils.TruncateText(text, r.cfg.Gemini.MaxInputChars)

	contents := []*genai.Content{
		genai.NewContentFromText(r.prompt(truncated), "user"),
	}
	resp, err := r.client.Models.GenerateContent(ctx, r.cfg.Gemini.BaseModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrClassification, err)
	}

	scores, err := r.parseScores(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrClassification, err)
	}

	label, confidence := scores.Argmax()
	if confidence < 0 || confidence > 1 {
		return nil, fmt.Errorf("%w: confidence %f out of range", apperr.ErrClassification, confidence)
	}

	return &dto.SentimentResult{
		Sentiment:  label,
		Confidence: utils.Round4(confidence),
	}, nil
}

func (r *sentimentRepository) prompt(text string) string {
	return fmt.Sprintf(`You are a financial sentiment classifier.
Classify the sentiment of the following financial text.
Respond with ONLY a JSON object of probabilities summing to 1, no other text:
{"positive": <float>, "negative": <float>, "neutral": <float>}

Text: %s`, text)
}

func (r *sentimentRepository) parseScores(resp *genai.GenerateContentResponse) (*dto.SentimentScores, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("invalid model response: no content found")
	}

	jsonString := resp.Candidates[0].Content.Parts[0].Text
	jsonString = strings.Trim(jsonString, "`json\n`")

	var scores dto.SentimentScores
	if err := json.Unmarshal([]byte(jsonString), &scores); err != nil {
		return nil, fmt.Errorf("decode model response: %v", err)
	}
	return &scores, nil
}
