package dto

// NewsWithSentiment is the 1:1 merge of an article and its sentiment score,
// built only inside the summary workflow.
type NewsWithSentiment struct {
	NewsArticle
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

type SummaryResponse struct {
	Portfolio *PortfolioResponse  `json:"portfolio"`
	News      []NewsWithSentiment `json:"news"`
}
