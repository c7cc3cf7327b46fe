package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/courtpulse/courtpulse/internal/adapters/nba"
	"github.com/courtpulse/courtpulse/internal/model"
	"github.com/courtpulse/courtpulse/pkg/logger"
	"github.com/courtpulse/courtpulse/pkg/models"
)

type errorResponse struct {
	Error string `json:"error"`
}

// handleSentiment returns the current flat mention table. An article-source
// failure means zero articles: it is logged and an empty table is returned
// rather than an error.
func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	records, err := s.mentions.Collect(r.Context())
	if err != nil {
		logger.Error("failed to collect mentions", zap.Error(err))
		records = nil
	}
	if records == nil {
		records = make([]models.MentionRecord, 0)
	}

	logger.Debug("serving sentiment table",
		zap.Int("records", len(records)),
	)

	writeJSON(w, http.StatusOK, records)
}

// handlePlayerStats returns a player's most recent game line
func (s *Server) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	id, err := s.stats.FindPlayerID(r.Context(), name)
	if err != nil {
		if errors.Is(err, nba.ErrPlayerNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "player not found: " + name})
			return
		}
		logger.Error("failed to resolve player", zap.String("player", name), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "stats source unavailable"})
		return
	}

	games, err := s.stats.GameLog(r.Context(), id)
	if err != nil {
		logger.Error("failed to fetch game log", zap.String("player", name), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "stats source unavailable"})
		return
	}
	if len(games) == 0 {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no games found for " + name})
		return
	}

	latest := games[len(games)-1]
	writeJSON(w, http.StatusOK, models.PlayerStats{
		Player:    name,
		Date:      latest.Date.Format("2006-01-02"),
		Points:    latest.Points,
		Rebounds:  latest.Rebounds,
		Assists:   latest.Assists,
		PlusMinus: latest.PlusMinus,
	})
}

// handlePlayerPrediction trains and predicts for a single player; unlike the
// batch endpoint, its failures are surfaced as structured errors
func (s *Server) handlePlayerPrediction(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	pred, err := s.predictor.Predict(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, nba.ErrPlayerNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "player not found: " + name})
		case errors.Is(err, model.ErrInsufficientData):
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "not enough data to train a model for " + name})
		default:
			logger.Error("prediction failed", zap.String("player", name), zap.Error(err))
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "prediction failed"})
		}
		return
	}

	writeJSON(w, http.StatusOK, pred)
}

// handlePredictions runs batch prediction over every currently mentioned
// player. Partial results are always returned; individual failures never
// fail the batch.
func (s *Server) handlePredictions(w http.ResponseWriter, r *http.Request) {
	predictions, err := s.predictor.PredictAll(r.Context())
	if err != nil {
		logger.Error("batch prediction failed to start", zap.Error(err))
		predictions = nil
	}
	if predictions == nil {
		predictions = make([]models.PlayerPrediction, 0)
	}

	writeJSON(w, http.StatusOK, predictions)
}

// handleHealth handles the liveness probe
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}

// handleReadiness handles the readiness probe
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	s.readyMu.RLock()
	ready := s.ready
	s.readyMu.RUnlock()

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]bool{"ready": ready})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}
