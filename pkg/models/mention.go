package models

// MentionRecord attributes one article's sentiment to one player referenced
// in that article. An article mentioning three players yields three records
// sharing the same sentiment value. Records never mutate after creation.
type MentionRecord struct {
	Player       string  `json:"player" db:"player"`
	Sentiment    float64 `json:"sentiment" db:"sentiment"`
	ArticleTitle string  `json:"article_title" db:"article_title"`
	PublishedAt  string  `json:"date" db:"published_at"`
	URL          string  `json:"url" db:"url"`
}

// MentionSummary aggregates the mention table per player.
type MentionSummary struct {
	Player           string  `json:"player"`
	Mentions         int     `json:"mentions"`
	AverageSentiment float64 `json:"average_sentiment"`
}
