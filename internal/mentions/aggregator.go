package mentions

import (
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/courtpulse/courtpulse/internal/sentiment"
	"github.com/courtpulse/courtpulse/pkg/models"
)

// Aggregator turns articles into the flat player mention table: one record
// per (article, mentioned player) pair, all records of an article sharing
// that article's sentiment score.
type Aggregator struct {
	analyzer  *sentiment.Analyzer
	extractor *Extractor
}

// NewAggregator creates new mention aggregator
func NewAggregator(analyzer *sentiment.Analyzer, extractor *Extractor) *Aggregator {
	return &Aggregator{
		analyzer:  analyzer,
		extractor: extractor,
	}
}

// Aggregate scores each article once over title+description and emits one
// mention record per mentioned roster player. Articles with no mentions
// contribute nothing; missing fields are treated as empty text. The result
// is not deduplicated by player: a player mentioned in ten articles yields
// ten rows, which is what allows averaging later.
func (a *Aggregator) Aggregate(articles []models.Article) []models.MentionRecord {
	records := make([]models.MentionRecord, 0)

	for _, article := range articles {
		text := strings.TrimSpace(article.Title + " " + article.Description)
		if text == "" {
			continue
		}

		score := a.analyzer.AnalyzeSentiment(text)

		for _, player := range a.extractor.Extract(text) {
			records = append(records, models.MentionRecord{
				Player:       player,
				Sentiment:    score,
				ArticleTitle: article.Title,
				PublishedAt:  article.PublishedAt,
				URL:          article.URL,
			})
		}
	}

	return records
}

// Players returns the unique player names in the mention table, in first-mention order
func Players(records []models.MentionRecord) []string {
	seen := make(map[string]bool, len(records))
	players := make([]string, 0)
	for _, r := range records {
		if !seen[r.Player] {
			seen[r.Player] = true
			players = append(players, r.Player)
		}
	}
	return players
}

// MeanSentiment returns the mean sentiment across all of a player's mention
// records. A player with no records is neutral.
func MeanSentiment(records []models.MentionRecord, player string) float64 {
	scores := make([]float64, 0, len(records))
	for _, r := range records {
		if r.Player == player {
			scores = append(scores, r.Sentiment)
		}
	}
	if len(scores) == 0 {
		return 0.0
	}
	return stat.Mean(scores, nil)
}

// Summarize aggregates the mention table per player
func Summarize(records []models.MentionRecord) []models.MentionSummary {
	summaries := make([]models.MentionSummary, 0)
	for _, player := range Players(records) {
		count := 0
		for _, r := range records {
			if r.Player == player {
				count++
			}
		}
		summaries = append(summaries, models.MentionSummary{
			Player:           player,
			Mentions:         count,
			AverageSentiment: MeanSentiment(records, player),
		})
	}
	return summaries
}
