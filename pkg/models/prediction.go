package models

// PerformanceLabel classifies a game against the player's rolling average.
// The integer values double as classifier class indices.
type PerformanceLabel int

const (
	PerformWorse PerformanceLabel = iota
	PerformSame
	PerformBetter
)

// String returns the label name used in API responses.
func (l PerformanceLabel) String() string {
	switch l {
	case PerformWorse:
		return "worse"
	case PerformBetter:
		return "better"
	default:
		return "same"
	}
}

// FeatureVector holds the classifier inputs for one game index: trailing
// rolling averages of the core stats plus the player's current aggregate
// news sentiment. The sentiment component is constant across all vectors
// of one training call; it reflects "now", not the historical game.
type FeatureVector struct {
	PtsAvg    float64 `json:"pts_avg"`
	AstAvg    float64 `json:"ast_avg"`
	RebAvg    float64 `json:"reb_avg"`
	Sentiment float64 `json:"sentiment"`
}

// Values returns the vector as a flat feature row.
func (v FeatureVector) Values() []float64 {
	return []float64{v.PtsAvg, v.AstAvg, v.RebAvg, v.Sentiment}
}

// PlayerPrediction is the outcome of one train-then-predict cycle.
type PlayerPrediction struct {
	Player        string  `json:"player" db:"player"`
	Expected      string  `json:"expected_performance" db:"expected"`
	Confidence    float64 `json:"confidence" db:"confidence"`
	Sentiment     float64 `json:"sentiment" db:"sentiment"`
	ModelAccuracy float64 `json:"model_accuracy" db:"model_accuracy"`
}
