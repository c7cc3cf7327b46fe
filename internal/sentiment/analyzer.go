package sentiment

import (
	"strings"
)

// Analyzer performs simple keyword-based sentiment analysis
type Analyzer struct {
	positiveWords map[string]float64
	negativeWords map[string]float64
}

// NewAnalyzer creates new sentiment analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		positiveWords: buildPositiveWords(),
		negativeWords: buildNegativeWords(),
	}
}

// AnalyzeSentiment analyzes text and returns sentiment score (-1.0 to 1.0).
// Empty or neutral text scores 0.0; the same text always scores the same.
func (a *Analyzer) AnalyzeSentiment(text string) float64 {
	if text == "" {
		return 0.0
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return 0.0
	}

	var score float64
	matchCount := 0

	for _, word := range words {
		// Clean punctuation
		word = strings.Trim(word, ".,!?;:'\"")

		if weight, ok := a.positiveWords[word]; ok {
			score += weight
			matchCount++
		}

		if weight, ok := a.negativeWords[word]; ok {
			score -= weight
			matchCount++
		}
	}

	if matchCount == 0 {
		return 0.0
	}

	// Normalize by text length
	normalizedScore := score / float64(len(words))

	// Clamp to -1.0 to 1.0
	if normalizedScore > 1.0 {
		normalizedScore = 1.0
	} else if normalizedScore < -1.0 {
		normalizedScore = -1.0
	}

	return normalizedScore
}

// buildPositiveWords returns positive keywords for basketball coverage
func buildPositiveWords() map[string]float64 {
	return map[string]float64{
		// General positive
		"win":         0.6,
		"wins":        0.6,
		"victory":     0.7,
		"streak":      0.5,
		"comeback":    0.6,
		"surge":       0.6,
		"leads":       0.5,
		"praise":      0.6,
		"confident":   0.5,
		"healthy":     0.5,
		"elite":       0.7,
		"historic":    0.7,
		"stellar":     0.8,
		"sensational": 0.8,
		"phenomenal":  0.9,
		"dazzling":    0.7,
		"explosive":   0.7,

		// Basketball specific
		"clutch":        0.8,
		"dominant":      0.9,
		"unstoppable":   0.9,
		"mvp":           0.8,
		"career-high":   0.9,
		"triple-double": 0.9,
		"double-double": 0.6,
		"buzzer-beater": 0.7,
		"all-star":      0.6,
		"breakout":      0.6,
	}
}

// buildNegativeWords returns negative keywords for basketball coverage
func buildNegativeWords() map[string]float64 {
	return map[string]float64{
		// General negative
		"loss":       0.6,
		"losing":     0.6,
		"slump":      0.9,
		"struggles":  0.7,
		"struggling": 0.7,
		"setback":    0.7,
		"turmoil":    0.7,
		"criticism":  0.6,
		"scandal":    1.0,
		"arrest":     1.0,
		"arrested":   1.0,

		// Injuries and availability
		"injury":        1.0,
		"injured":       0.9,
		"surgery":       0.9,
		"season-ending": 1.0,
		"sidelined":     0.8,
		"doubtful":      0.6,
		"questionable":  0.5,

		// Discipline
		"benched":    0.8,
		"suspended":  0.9,
		"suspension": 0.8,
		"fined":      0.7,
		"ejected":    0.7,
	}
}
