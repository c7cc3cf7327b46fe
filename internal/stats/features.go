package stats

import (
	"fmt"

	"github.com/cinar/indicator"

	"github.com/courtpulse/courtpulse/pkg/models"
)

// BuildFeatures computes trailing rolling-average feature vectors from a
// chronologically ordered game log. The vector for game index i averages
// the window games up to and including i, so vectors exist only for
// i >= window-1; earlier indices are undefined and excluded rather than
// filled with partial averages. The returned slice index k corresponds to
// game index k+window-1. The sentiment component is the supplied scalar on
// every vector: it reflects the player's current news coverage, not the
// historical game.
func BuildFeatures(games []models.GameRecord, window int, sentiment float64) ([]models.FeatureVector, error) {
	if window < 1 {
		return nil, fmt.Errorf("window must be positive, got %d", window)
	}
	if len(games) < window {
		return nil, fmt.Errorf("need at least %d games for rolling averages, got %d", window, len(games))
	}

	pts := make([]float64, len(games))
	ast := make([]float64, len(games))
	reb := make([]float64, len(games))
	for i, g := range games {
		pts[i] = g.Points
		ast[i] = g.Assists
		reb[i] = g.Rebounds
	}

	ptsAvg := indicator.Sma(window, pts)
	astAvg := indicator.Sma(window, ast)
	rebAvg := indicator.Sma(window, reb)

	vectors := make([]models.FeatureVector, 0, len(games)-window+1)
	for i := window - 1; i < len(games); i++ {
		vectors = append(vectors, models.FeatureVector{
			PtsAvg:    ptsAvg[i],
			AstAvg:    astAvg[i],
			RebAvg:    rebAvg[i],
			Sentiment: sentiment,
		})
	}

	return vectors, nil
}
