package dto

// Sentiment labels produced by the classifier.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// NeutralConfidence is the confidence reported when classification fails
// and the result is defaulted to neutral.
const NeutralConfidence = 0.33

type SentimentResult struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

// NeutralSentiment returns the defaulted result used whenever a single
// classification call fails.
func NeutralSentiment() SentimentResult {
	return SentimentResult{
		Sentiment:  SentimentNeutral,
		Confidence: NeutralConfidence,
	}
}

type AnalyzeSentimentRequest struct {
	Text string `json:"text" validate:"required"`
}

type AnalyzeSentimentResponse struct {
	Text   string          `json:"text"`
	Result SentimentResult `json:"result"`
}

// SentimentScores is the raw 3-way distribution returned by the model.
type SentimentScores struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// Argmax returns the dominant label and its probability.
func (s SentimentScores) Argmax() (string, float64) {
	label, confidence := SentimentPositive, s.Positive
	if s.Negative > confidence {
		label, confidence = SentimentNegative, s.Negative
	}
	if s.Neutral > confidence {
		label, confidence = SentimentNeutral, s.Neutral
	}
	return label, confidence
}
