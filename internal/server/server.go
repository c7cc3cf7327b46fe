package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/courtpulse/courtpulse/internal/adapters/config"
	"github.com/courtpulse/courtpulse/pkg/logger"
	"github.com/courtpulse/courtpulse/pkg/models"
)

// MentionSource supplies the current mention table
type MentionSource interface {
	Collect(ctx context.Context) ([]models.MentionRecord, error)
}

// PlayerPredictor trains and predicts per player
type PlayerPredictor interface {
	Predict(ctx context.Context, player string) (*models.PlayerPrediction, error)
	PredictAll(ctx context.Context) ([]models.PlayerPrediction, error)
}

// StatsSource resolves player names and fetches game logs
type StatsSource interface {
	FindPlayerID(ctx context.Context, fullName string) (int, error)
	GameLog(ctx context.Context, playerID int) ([]models.GameRecord, error)
}

// Server exposes the sentiment table, player stats and predictions over HTTP
type Server struct {
	httpServer *http.Server
	mentions   MentionSource
	predictor  PlayerPredictor
	stats      StatsSource
	corsOrigin string

	ready     bool
	readyMu   sync.RWMutex
	startTime time.Time
}

// New creates new API server
func New(cfg *config.ServerConfig, mentionSource MentionSource, predictor PlayerPredictor, statsSource StatsSource) *Server {
	s := &Server{
		mentions:   mentionSource,
		predictor:  predictor,
		stats:      statsSource,
		corsOrigin: cfg.CORSOrigin,
		startTime:  time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/sentiment", s.withCORS(s.handleSentiment))
	mux.HandleFunc("/api/predictions", s.withCORS(s.handlePredictions))
	mux.HandleFunc("/api/players/{name}/stats", s.withCORS(s.handlePlayerStats))
	mux.HandleFunc("/api/players/{name}/prediction", s.withCORS(s.handlePlayerPrediction))
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReadiness)

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second, // batch prediction retrains per player
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Handler returns the configured HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the API server
func (s *Server) Start() error {
	logger.Info("API server starting",
		zap.String("addr", s.httpServer.Addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	logger.Info("stopping API server...")
	return s.httpServer.Shutdown(ctx)
}

// SetReady marks the service as ready
func (s *Server) SetReady(ready bool) {
	s.readyMu.Lock()
	defer s.readyMu.Unlock()
	s.ready = ready
}

// withCORS adds CORS headers for browser clients and restricts the verb
func (s *Server) withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if r.Method != http.MethodGet {
			writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
			return
		}

		next(w, r)
	}
}
