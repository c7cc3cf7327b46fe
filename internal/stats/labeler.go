package stats

import (
	"github.com/courtpulse/courtpulse/pkg/models"
)

// Label classifies actual points against a rolling baseline: more than
// thresholdPct percent above is BETTER, more than thresholdPct percent
// below is WORSE, anything in between is SAME. A zero baseline is a
// legitimate early-season state and classifies as SAME instead of
// dividing by zero.
func Label(actualPoints, baselineAvg, thresholdPct float64) models.PerformanceLabel {
	if baselineAvg == 0 {
		return models.PerformSame
	}

	pct := (actualPoints - baselineAvg) / baselineAvg * 100

	switch {
	case pct > thresholdPct:
		return models.PerformBetter
	case pct < -thresholdPct:
		return models.PerformWorse
	default:
		return models.PerformSame
	}
}

// TrainingExample pairs a feature vector with its performance label.
type TrainingExample struct {
	Features models.FeatureVector
	Label    models.PerformanceLabel
}

// BuildTrainingSet emits one example per game index i in [window, N-1]:
// the feature vector at i paired with the label comparing game i's own
// points against that vector's rolling points average. Every example
// therefore has a full trailing window behind it, giving N-window examples
// for an N-game log. Labels are computed against the same game, not the
// following one; switching to next-game semantics would change trained
// behavior.
func BuildTrainingSet(games []models.GameRecord, window int, sentiment, thresholdPct float64) ([]TrainingExample, error) {
	vectors, err := BuildFeatures(games, window, sentiment)
	if err != nil {
		return nil, err
	}

	examples := make([]TrainingExample, 0, len(games)-window)
	for i := window; i < len(games); i++ {
		v := vectors[i-window+1]
		examples = append(examples, TrainingExample{
			Features: v,
			Label:    Label(games[i].Points, v.PtsAvg, thresholdPct),
		})
	}

	return examples, nil
}
