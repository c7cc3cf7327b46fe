package models

// Article represents single news article returned by the article source.
// PublishedAt is kept as the raw timestamp string the source returned; it
// is passed through to mention records unchanged.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishedAt string `json:"publishedAt"`
	URL         string `json:"url"`
}
