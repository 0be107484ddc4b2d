package dto

import "time"

// Placeholders substituted when a provider omits article fields.
const (
	PlaceholderTitle   = "No title"
	PlaceholderSummary = "No summary available"
	PlaceholderSource  = "Unknown"
)

type NewsArticle struct {
	Symbol      string    `json:"symbol,omitempty"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
}

type NewsResponse struct {
	Articles []NewsArticle `json:"articles"`
	Count    int           `json:"count"`
}

type GetNewsRequest struct {
	Symbols  string `query:"symbols" validate:"required"`
	FromDate string `query:"from_date" validate:"omitempty,datetime=2006-01-02"`
	ToDate   string `query:"to_date" validate:"omitempty,datetime=2006-01-02"`
}
