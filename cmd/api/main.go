package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/courtpulse/courtpulse/internal/adapters/config"
	"github.com/courtpulse/courtpulse/internal/adapters/database"
	"github.com/courtpulse/courtpulse/internal/adapters/nba"
	"github.com/courtpulse/courtpulse/internal/adapters/newsapi"
	"github.com/courtpulse/courtpulse/internal/mentions"
	"github.com/courtpulse/courtpulse/internal/model"
	"github.com/courtpulse/courtpulse/internal/sentiment"
	"github.com/courtpulse/courtpulse/internal/server"
	"github.com/courtpulse/courtpulse/internal/workers"
	"github.com/courtpulse/courtpulse/pkg/logger"
	"github.com/courtpulse/courtpulse/pkg/worker"
	_ "github.com/lib/pq"
)

func main() {
	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	// Run application
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("CourtPulse API starting...",
		zap.String("season", cfg.NBA.Season),
		zap.String("port", cfg.Server.Port),
	)

	// Initialize NBA stats client and load the active roster
	nbaClient := nba.New(&cfg.NBA)

	roster, err := nbaClient.ActivePlayers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load active roster: %w", err)
	}

	names := make([]string, 0, len(roster))
	for _, p := range roster {
		names = append(names, p.FullName)
	}

	logger.Info("active roster loaded", zap.Int("players", len(names)))

	// Initialize mention pipeline
	pipeline := initMentionPipeline(cfg, names)

	// Initialize predictor
	predictor := model.NewPredictor(&cfg.Model, pipeline, nbaClient)

	// Optional Postgres mention archive
	db, archiver, err := initDatabase(cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	if archiver != nil {
		pw := worker.RunBackground(ctx, workers.NewMentionArchiver(pipeline, archiver), cfg.Database.ArchiveInterval)
		defer pw.Stop(10 * time.Second)
	}

	// Start HTTP server
	srv := server.New(&cfg.Server, pipeline, predictor, nbaClient)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("http server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	srv.SetReady(true)
	logger.Info("🏀 CourtPulse API ready", zap.String("port", cfg.Server.Port))

	// Keep service running
	<-ctx.Done()
	logger.Info("shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return srv.Stop(shutdownCtx)
}

// initMentionPipeline wires news fetching, sentiment scoring and mention extraction
func initMentionPipeline(cfg *config.Config, roster []string) *mentions.Pipeline {
	newsClient := newsapi.New(&cfg.News)
	analyzer := sentiment.NewAnalyzer()
	extractor := mentions.NewExtractor(roster)
	aggregator := mentions.NewAggregator(analyzer, extractor)

	return mentions.NewPipeline(newsClient, aggregator, cfg.News.DaysBack)
}

// initDatabase connects to Postgres and prepares the mention repository.
// Returns nils when the archive is disabled.
func initDatabase(cfg *config.Config) (*database.DB, *mentions.Repository, error) {
	if !cfg.Database.Enabled {
		logger.Info("mention archive disabled")
		return nil, nil, nil
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run migrations
	migrationsPath := "./migrations"
	if err := database.RunMigrations(db.Conn(), migrationsPath); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("database connection established (sqlx)",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Name),
	)

	return db, mentions.NewRepository(db), nil
}
