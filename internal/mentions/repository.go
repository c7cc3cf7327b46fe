package mentions

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtpulse/courtpulse/internal/adapters/database"
	"github.com/courtpulse/courtpulse/pkg/models"
)

// Repository archives mention records and prediction outcomes in Postgres.
// The request path never depends on it; it only keeps history.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates new mention repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db.DB()}
}

// SaveMentions saves mention records (upsert on player+url) and returns
// the number of rows written
func (r *Repository) SaveMentions(ctx context.Context, records []models.MentionRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO mention_records (
			player, sentiment, article_title, published_at, url, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (player, url) DO UPDATE SET
			sentiment = EXCLUDED.sentiment,
			article_title = EXCLUDED.article_title
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	saved := 0
	for _, rec := range records {
		_, err := stmt.ExecContext(ctx,
			rec.Player,
			rec.Sentiment,
			rec.ArticleTitle,
			rec.PublishedAt,
			rec.URL,
			time.Now(),
		)
		if err != nil {
			// A failed statement aborts the whole Postgres transaction,
			// so there is nothing to salvage by continuing.
			return 0, fmt.Errorf("failed to save mention %s %s: %w", rec.Player, rec.URL, err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	return saved, nil
}

// RecentMentions returns archived mention records newer than the cutoff
func (r *Repository) RecentMentions(ctx context.Context, since time.Duration, limit int) ([]models.MentionRecord, error) {
	cutoff := time.Now().Add(-since)

	query := `
		SELECT player, sentiment, article_title, published_at, url
		FROM mention_records
		WHERE created_at > $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	records := make([]models.MentionRecord, 0)
	if err := r.db.SelectContext(ctx, &records, query, cutoff, limit); err != nil {
		return nil, fmt.Errorf("failed to query mentions: %w", err)
	}

	return records, nil
}

// SavePredictions archives a batch of prediction outcomes
func (r *Repository) SavePredictions(ctx context.Context, predictions []models.PlayerPrediction) error {
	if len(predictions) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO predictions (
			player, expected, confidence, sentiment, model_accuracy, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range predictions {
		if _, err := stmt.ExecContext(ctx,
			p.Player,
			p.Expected,
			p.Confidence,
			p.Sentiment,
			p.ModelAccuracy,
			time.Now(),
		); err != nil {
			return fmt.Errorf("failed to insert prediction for %s: %w", p.Player, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}
