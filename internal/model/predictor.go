package model

import (
	"context"
	"errors"
	"fmt"

	randomforest "github.com/malaschitz/randomForest"
	"go.uber.org/zap"

	"github.com/courtpulse/courtpulse/internal/adapters/config"
	"github.com/courtpulse/courtpulse/internal/mentions"
	"github.com/courtpulse/courtpulse/internal/stats"
	"github.com/courtpulse/courtpulse/pkg/logger"
	"github.com/courtpulse/courtpulse/pkg/models"
)

// ErrInsufficientData means a player's history is too small to train on
var ErrInsufficientData = errors.New("not enough data to train the model")

// MentionSource supplies the current player mention table
type MentionSource interface {
	Collect(ctx context.Context) ([]models.MentionRecord, error)
}

// GameLogSource supplies a player's chronological game log
type GameLogSource interface {
	FindPlayerID(ctx context.Context, fullName string) (int, error)
	GameLog(ctx context.Context, playerID int) ([]models.GameRecord, error)
}

// Predictor trains a per-player random forest fresh on every call and
// classifies the player's most recent feature vector as better, same or
// worse than their rolling average. No model survives between calls.
type Predictor struct {
	cfg      *config.ModelConfig
	mentions MentionSource
	games    GameLogSource
}

// NewPredictor creates new performance predictor
func NewPredictor(cfg *config.ModelConfig, mentionSource MentionSource, gameSource GameLogSource) *Predictor {
	return &Predictor{
		cfg:      cfg,
		mentions: mentionSource,
		games:    gameSource,
	}
}

// trainedModel holds one train-then-predict cycle's artifacts
type trainedModel struct {
	forest    randomforest.Forest
	scaler    *standardScaler
	accuracy  float64
	latest    models.FeatureVector
	sentiment float64
}

// Train fits a model for one player and returns held-out accuracy
func (p *Predictor) Train(ctx context.Context, player string) (float64, error) {
	records, err := p.mentions.Collect(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to collect mentions: %w", err)
	}

	m, err := p.train(ctx, player, records)
	if err != nil {
		return 0, err
	}

	return m.accuracy, nil
}

// Predict trains on the player's history and classifies their most recent
// feature vector
func (p *Predictor) Predict(ctx context.Context, player string) (*models.PlayerPrediction, error) {
	records, err := p.mentions.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect mentions: %w", err)
	}

	return p.predictWith(ctx, player, records)
}

// PredictAll runs train+predict for every player present in the current
// mention table. Per-player failures (unknown name, short history) are
// logged and skipped; the batch never aborts on a single player.
func (p *Predictor) PredictAll(ctx context.Context) ([]models.PlayerPrediction, error) {
	records, err := p.mentions.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect mentions: %w", err)
	}

	players := mentions.Players(records)
	predictions := make([]models.PlayerPrediction, 0, len(players))

	for _, player := range players {
		pred, err := p.predictWith(ctx, player, records)
		if err != nil {
			logger.Warn("skipping player",
				zap.String("player", player),
				zap.Error(err),
			)
			continue
		}
		predictions = append(predictions, *pred)
	}

	logger.Info("batch prediction finished",
		zap.Int("players", len(players)),
		zap.Int("predicted", len(predictions)),
	)

	return predictions, nil
}

func (p *Predictor) predictWith(ctx context.Context, player string, records []models.MentionRecord) (*models.PlayerPrediction, error) {
	m, err := p.train(ctx, player, records)
	if err != nil {
		return nil, err
	}

	probs := m.forest.Vote(m.scaler.transform(m.latest.Values()))
	if len(probs) == 0 {
		return nil, fmt.Errorf("classifier returned no class probabilities for %s", player)
	}

	class := argmax(probs)

	return &models.PlayerPrediction{
		Player:        player,
		Expected:      models.PerformanceLabel(class).String(),
		Confidence:    probs[class],
		Sentiment:     m.sentiment,
		ModelAccuracy: m.accuracy,
	}, nil
}

func (p *Predictor) train(ctx context.Context, player string, records []models.MentionRecord) (*trainedModel, error) {
	sentimentAvg := mentions.MeanSentiment(records, player)

	id, err := p.games.FindPlayerID(ctx, player)
	if err != nil {
		return nil, err
	}

	games, err := p.games.GameLog(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch game log for %s: %w", player, err)
	}

	examples, err := stats.BuildTrainingSet(games, p.cfg.WindowSize, sentimentAvg, p.cfg.ThresholdPct)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsufficientData, err)
	}
	if len(examples) < p.cfg.MinExamples {
		return nil, fmt.Errorf("%w: %d training examples for %s", ErrInsufficientData, len(examples), player)
	}

	x := make([][]float64, len(examples))
	y := make([]int, len(examples))
	for i, ex := range examples {
		x[i] = ex.Features.Values()
		y[i] = int(ex.Label)
	}

	trainIdx, testIdx := trainTestSplit(len(examples), p.cfg.TestRatio, p.cfg.Seed)

	xTrain, yTrain := take(x, y, trainIdx)
	xTest, yTest := take(x, y, testIdx)

	scaler := fitScaler(xTrain)

	forest := randomforest.Forest{}
	forest.Data = randomforest.ForestData{
		X:     scaler.transformAll(xTrain),
		Class: yTrain,
	}
	forest.Train(p.cfg.Trees)

	correct := 0
	for i, row := range scaler.transformAll(xTest) {
		probs := forest.Vote(row)
		if len(probs) > 0 && argmax(probs) == yTest[i] {
			correct++
		}
	}
	accuracy := float64(correct) / float64(len(testIdx))

	vectors, err := stats.BuildFeatures(games, p.cfg.WindowSize, sentimentAvg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsufficientData, err)
	}

	logger.Debug("trained model",
		zap.String("player", player),
		zap.Int("examples", len(examples)),
		zap.Float64("accuracy", accuracy),
	)

	return &trainedModel{
		forest:    forest,
		scaler:    scaler,
		accuracy:  accuracy,
		latest:    vectors[len(vectors)-1],
		sentiment: sentimentAvg,
	}, nil
}

func take(x [][]float64, y []int, idx []int) ([][]float64, []int) {
	xs := make([][]float64, len(idx))
	ys := make([]int, len(idx))
	for i, j := range idx {
		xs[i] = x[j]
		ys[i] = y[j]
	}
	return xs, ys
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
