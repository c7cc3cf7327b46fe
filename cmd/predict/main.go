package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/courtpulse/courtpulse/internal/adapters/config"
	"github.com/courtpulse/courtpulse/internal/adapters/database"
	"github.com/courtpulse/courtpulse/internal/adapters/nba"
	"github.com/courtpulse/courtpulse/internal/adapters/newsapi"
	"github.com/courtpulse/courtpulse/internal/adapters/telegram"
	"github.com/courtpulse/courtpulse/internal/mentions"
	"github.com/courtpulse/courtpulse/internal/model"
	"github.com/courtpulse/courtpulse/internal/sentiment"
	"github.com/courtpulse/courtpulse/pkg/logger"
	"github.com/courtpulse/courtpulse/pkg/models"
	_ "github.com/lib/pq"
)

func main() {
	// Parse flags
	var (
		player   = flag.String("player", "", "Predict a single player (full name); empty runs the full batch")
		save     = flag.Bool("save", false, "Persist predictions to Postgres (requires DB_ENABLED=true)")
		notify   = flag.Bool("notify", false, "Send a Telegram summary (requires TELEGRAM_BOT_TOKEN)")
		logLevel = flag.String("log-level", "info", "Log level")
	)

	flag.Parse()

	// Initialize logger
	if err := logger.Init(*logLevel, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	predictions, err := runPredictions(ctx, cfg, *player)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Prediction failed: %v\n", err)
		os.Exit(1)
	}

	printResults(predictions)

	if *save {
		if err := savePredictions(ctx, cfg, predictions); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save predictions: %v\n", err)
			os.Exit(1)
		}
	}

	if *notify {
		if err := sendSummary(cfg, predictions); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to send telegram summary: %v\n", err)
			os.Exit(1)
		}
	}
}

// runPredictions builds the pipeline and predicts one player or the full batch
func runPredictions(ctx context.Context, cfg *config.Config, player string) ([]models.PlayerPrediction, error) {
	nbaClient := nba.New(&cfg.NBA)

	roster, err := nbaClient.ActivePlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active roster: %w", err)
	}

	names := make([]string, 0, len(roster))
	for _, p := range roster {
		names = append(names, p.FullName)
	}

	logger.Info("active roster loaded", zap.Int("players", len(names)))

	newsClient := newsapi.New(&cfg.News)
	analyzer := sentiment.NewAnalyzer()
	extractor := mentions.NewExtractor(names)
	aggregator := mentions.NewAggregator(analyzer, extractor)
	pipeline := mentions.NewPipeline(newsClient, aggregator, cfg.News.DaysBack)

	predictor := model.NewPredictor(&cfg.Model, pipeline, nbaClient)

	if player != "" {
		pred, err := predictor.Predict(ctx, player)
		if err != nil {
			return nil, err
		}
		return []models.PlayerPrediction{*pred}, nil
	}

	return predictor.PredictAll(ctx)
}

func printResults(predictions []models.PlayerPrediction) {
	if len(predictions) == 0 {
		fmt.Println("No players with both news mentions and game history found.")
		return
	}

	fmt.Printf("\n=== Predictions (%d players) ===\n", len(predictions))
	for _, p := range predictions {
		fmt.Printf("%-25s  %-7s  confidence=%.2f  sentiment=%+.3f  model_accuracy=%.2f\n",
			p.Player, p.Expected, p.Confidence, p.Sentiment, p.ModelAccuracy)
	}
}

func savePredictions(ctx context.Context, cfg *config.Config, predictions []models.PlayerPrediction) error {
	if !cfg.Database.Enabled {
		return fmt.Errorf("database is disabled, set DB_ENABLED=true")
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db.Conn(), "./migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	repo := mentions.NewRepository(db)
	if err := repo.SavePredictions(ctx, predictions); err != nil {
		return err
	}

	logger.Info("predictions saved", zap.Int("count", len(predictions)))
	return nil
}

func sendSummary(cfg *config.Config, predictions []models.PlayerPrediction) error {
	if cfg.Telegram.BotToken == "" {
		return fmt.Errorf("telegram is not configured, set TELEGRAM_BOT_TOKEN")
	}

	notifier, err := telegram.NewNotifier(&cfg.Telegram)
	if err != nil {
		return fmt.Errorf("failed to create telegram notifier: %w", err)
	}

	return notifier.SendPredictionSummary(predictions)
}
