package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"portfolio-insight/config"
	"portfolio-insight/internal/apperr"
	"portfolio-insight/pkg/logger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

func testSentimentRepo(newClient func(ctx context.Context) (*genai.Client, error)) *sentimentRepository {
	return &sentimentRepository{
		cfg: &config.Config{
			Gemini: config.GeminiConfig{
				BaseModel:     "test-model",
				MaxInputChars: 512,
			},
		},
		logger:    &logger.Logger{Logger: zap.NewNop()},
		newClient: newClient,
	}
}

func TestEnsureModelSingleInit(t *testing.T) {
	var initCount int32
	repo := testSentimentRepo(func(ctx context.Context) (*genai.Client, error) {
		atomic.AddInt32(&initCount, 1)
		return &genai.Client{}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.ensureModel(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&initCount))
}

func TestEnsureModelStickyFailure(t *testing.T) {
	var initCount int32
	repo := testSentimentRepo(func(ctx context.Context) (*genai.Client, error) {
		atomic.AddInt32(&initCount, 1)
		return nil, errors.New("no api key")
	})

	err := repo.ensureModel(context.Background())
	assert.ErrorIs(t, err, apperr.ErrModelLoad)

	// The failure is not retried, the same error comes back.
	err = repo.ensureModel(context.Background())
	assert.ErrorIs(t, err, apperr.ErrModelLoad)
	assert.Equal(t, int32(1), atomic.LoadInt32(&initCount))
}

func TestParseScores(t *testing.T) {
	repo := testSentimentRepo(nil)

	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{
			name: "plain json",
			text: `{"positive": 0.7, "negative": 0.1, "neutral": 0.2}`,
		},
		{
			name: "fenced json",
			text: "```json\n{\"positive\": 0.7, \"negative\": 0.1, \"neutral\": 0.2}\n```",
		},
		{
			name:    "not json",
			text:    "the sentiment is positive",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: &genai.Content{Parts: []*genai.Part{{Text: tt.text}}}},
				},
			}

			scores, err := repo.parseScores(resp)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 0.7, scores.Positive)
		})
	}
}

func TestParseScoresEmptyResponse(t *testing.T) {
	repo := testSentimentRepo(nil)

	_, err := repo.parseScores(&genai.GenerateContentResponse{})
	assert.Error(t, err)
}
