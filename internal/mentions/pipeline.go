package mentions

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/courtpulse/courtpulse/pkg/logger"
	"github.com/courtpulse/courtpulse/pkg/models"
)

// ArticleSource supplies raw news articles for a date range
type ArticleSource interface {
	Search(ctx context.Context, from, to time.Time) ([]models.Article, error)
}

// Pipeline fetches recent articles and aggregates them into the mention
// table. Fetch failures are returned to the caller, who decides between
// log-and-continue-empty and abort.
type Pipeline struct {
	source   ArticleSource
	agg      *Aggregator
	daysBack int
}

// NewPipeline creates new mention pipeline
func NewPipeline(source ArticleSource, agg *Aggregator, daysBack int) *Pipeline {
	return &Pipeline{
		source:   source,
		agg:      agg,
		daysBack: daysBack,
	}
}

// Collect fetches articles from the trailing window and aggregates mentions
func (p *Pipeline) Collect(ctx context.Context) ([]models.MentionRecord, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -p.daysBack)

	articles, err := p.source.Search(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch articles: %w", err)
	}

	records := p.agg.Aggregate(articles)

	logger.Debug("aggregated player mentions",
		zap.Int("articles", len(articles)),
		zap.Int("records", len(records)),
	)

	return records, nil
}
