package workers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/courtpulse/courtpulse/internal/mentions"
	"github.com/courtpulse/courtpulse/pkg/logger"
)

// MentionArchiver periodically collects the current mention table and
// archives it to the database for history. The request path never waits
// on it.
type MentionArchiver struct {
	pipeline *mentions.Pipeline
	repo     *mentions.Repository
}

// NewMentionArchiver creates new mention archiver
func NewMentionArchiver(pipeline *mentions.Pipeline, repo *mentions.Repository) *MentionArchiver {
	return &MentionArchiver{
		pipeline: pipeline,
		repo:     repo,
	}
}

func (w *MentionArchiver) Name() string {
	return "mention_archiver"
}

// Run collects and archives one snapshot of the mention table
func (w *MentionArchiver) Run(ctx context.Context) error {
	records, err := w.pipeline.Collect(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect mentions: %w", err)
	}

	saved, err := w.repo.SaveMentions(ctx, records)
	if err != nil {
		return fmt.Errorf("failed to archive mentions: %w", err)
	}

	logger.Info("archived mention records",
		zap.Int("collected", len(records)),
		zap.Int("saved", saved),
	)

	return nil
}
