package model

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/courtpulse/courtpulse/internal/adapters/config"
	"github.com/courtpulse/courtpulse/pkg/logger"
	"github.com/courtpulse/courtpulse/pkg/models"
)

func init() {
	_ = logger.Init("error", "")
}

type fakeMentionSource struct {
	records []models.MentionRecord
	err     error
}

func (f *fakeMentionSource) Collect(ctx context.Context) ([]models.MentionRecord, error) {
	return f.records, f.err
}

type fakeGameSource struct {
	ids  map[string]int
	logs map[int][]models.GameRecord
}

func (f *fakeGameSource) FindPlayerID(ctx context.Context, fullName string) (int, error) {
	if id, ok := f.ids[fullName]; ok {
		return id, nil
	}
	return 0, errors.New("player not found")
}

func (f *fakeGameSource) GameLog(ctx context.Context, playerID int) ([]models.GameRecord, error) {
	log, ok := f.logs[playerID]
	if !ok {
		return nil, errors.New("no game log")
	}
	return log, nil
}

func testModelConfig() *config.ModelConfig {
	return &config.ModelConfig{
		WindowSize:   5,
		Trees:        50,
		TestRatio:    0.2,
		Seed:         42,
		ThresholdPct: 15.0,
		MinExamples:  5,
	}
}

// generateGameLog produces a 30-game log cycling 12/20/30 points so all
// three performance classes show up in training.
func generateGameLog(count int) []models.GameRecord {
	cycle := []float64{12, 20, 30}
	games := make([]models.GameRecord, count)
	for i := 0; i < count; i++ {
		games[i] = models.GameRecord{
			Date:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i*2),
			Points:    cycle[i%3],
			Rebounds:  float64(5 + i%4),
			Assists:   float64(3 + i%5),
			PlusMinus: float64(i%11 - 5),
		}
	}
	return games
}

func mentionsFor(players ...string) []models.MentionRecord {
	records := make([]models.MentionRecord, 0, len(players))
	for i, p := range players {
		records = append(records, models.MentionRecord{
			Player:       p,
			Sentiment:    0.1 * float64(i%3),
			ArticleTitle: "headline",
			PublishedAt:  "2025-03-01T10:00:00Z",
			URL:          "https://example.com/article",
		})
	}
	return records
}

func TestPredictor_Train(t *testing.T) {
	games := &fakeGameSource{
		ids:  map[string]int{"LeBron James": 2544},
		logs: map[int][]models.GameRecord{2544: generateGameLog(30)},
	}
	predictor := NewPredictor(testModelConfig(), &fakeMentionSource{records: mentionsFor("LeBron James")}, games)

	accuracy, err := predictor.Train(context.Background(), "LeBron James")
	if err != nil {
		t.Fatalf("Failed to train: %v", err)
	}

	if accuracy < 0 || accuracy > 1 {
		t.Errorf("Accuracy should be in [0,1], got %.3f", accuracy)
	}
}

func TestPredictor_Predict(t *testing.T) {
	games := &fakeGameSource{
		ids:  map[string]int{"LeBron James": 2544},
		logs: map[int][]models.GameRecord{2544: generateGameLog(30)},
	}
	predictor := NewPredictor(testModelConfig(), &fakeMentionSource{records: mentionsFor("LeBron James")}, games)

	pred, err := predictor.Predict(context.Background(), "LeBron James")
	if err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}

	switch pred.Expected {
	case "worse", "same", "better":
	default:
		t.Errorf("Unexpected label %q", pred.Expected)
	}

	if pred.Confidence < 0 || pred.Confidence > 1 {
		t.Errorf("Confidence should be in [0,1], got %.3f", pred.Confidence)
	}

	if math.Abs(pred.Sentiment) > 1 {
		t.Errorf("Sentiment should stay in [-1,1], got %.3f", pred.Sentiment)
	}
}

func TestPredictor_InsufficientData(t *testing.T) {
	games := &fakeGameSource{
		ids:  map[string]int{"Rookie Player": 1},
		logs: map[int][]models.GameRecord{1: generateGameLog(7)},
	}
	predictor := NewPredictor(testModelConfig(), &fakeMentionSource{records: mentionsFor("Rookie Player")}, games)

	_, err := predictor.Train(context.Background(), "Rookie Player")
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData, got %v", err)
	}
}

func TestPredictor_PredictAll_SkipsFailures(t *testing.T) {
	players := []string{"Player One", "Player Two", "Player Three", "Player Four", "Ghost Player"}

	ids := map[string]int{}
	logs := map[int][]models.GameRecord{}
	for i, p := range players[:4] { // Ghost Player has no ID
		ids[p] = i + 1
		logs[i+1] = generateGameLog(30)
	}

	predictor := NewPredictor(
		testModelConfig(),
		&fakeMentionSource{records: mentionsFor(players...)},
		&fakeGameSource{ids: ids, logs: logs},
	)

	predictions, err := predictor.PredictAll(context.Background())
	if err != nil {
		t.Fatalf("Batch should not fail wholesale: %v", err)
	}

	if len(predictions) != 4 {
		t.Fatalf("Expected 4 predictions with 1 skipped player, got %d", len(predictions))
	}

	for _, p := range predictions {
		if p.Player == "Ghost Player" {
			t.Error("Unresolvable player should have been skipped")
		}
	}
}

func TestTrainTestSplit(t *testing.T) {
	train, test := trainTestSplit(25, 0.2, 42)

	if len(test) != 5 || len(train) != 20 {
		t.Errorf("Expected 20/5 split, got %d/%d", len(train), len(test))
	}

	// Reproducible for a fixed seed.
	train2, test2 := trainTestSplit(25, 0.2, 42)
	for i := range test {
		if test[i] != test2[i] {
			t.Fatal("Split should be deterministic for a fixed seed")
		}
	}
	for i := range train {
		if train[i] != train2[i] {
			t.Fatal("Split should be deterministic for a fixed seed")
		}
	}

	// No overlap, full coverage.
	seen := make(map[int]bool)
	for _, i := range append(append([]int{}, train...), test...) {
		if seen[i] {
			t.Fatalf("Index %d appears twice", i)
		}
		seen[i] = true
	}
	if len(seen) != 25 {
		t.Errorf("Expected all 25 indices covered, got %d", len(seen))
	}

	t.Run("tiny sets keep both sides non-empty", func(t *testing.T) {
		train, test := trainTestSplit(2, 0.2, 42)
		if len(train) != 1 || len(test) != 1 {
			t.Errorf("Expected 1/1 split, got %d/%d", len(train), len(test))
		}
	})
}

func TestStandardScaler(t *testing.T) {
	x := [][]float64{
		{10, 1, 0.5},
		{20, 2, 0.5},
		{30, 3, 0.5},
	}

	scaler := fitScaler(x)
	scaled := scaler.transformAll(x)

	// Each non-constant column ends up with zero mean.
	for j := 0; j < 2; j++ {
		var sum float64
		for i := range scaled {
			sum += scaled[i][j]
		}
		if math.Abs(sum) > 1e-9 {
			t.Errorf("Column %d should have zero mean, sum %.6f", j, sum)
		}
	}

	// The constant column is centered but not blown up by a zero std.
	for i := range scaled {
		if scaled[i][2] != 0 {
			t.Errorf("Constant column should scale to 0, got %.6f", scaled[i][2])
		}
		if math.IsNaN(scaled[i][2]) || math.IsInf(scaled[i][2], 0) {
			t.Errorf("Constant column produced %v", scaled[i][2])
		}
	}
}
