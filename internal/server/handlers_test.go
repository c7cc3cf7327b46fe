package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/courtpulse/courtpulse/internal/adapters/config"
	"github.com/courtpulse/courtpulse/internal/adapters/nba"
	"github.com/courtpulse/courtpulse/internal/model"
	"github.com/courtpulse/courtpulse/pkg/logger"
	"github.com/courtpulse/courtpulse/pkg/models"
)

func init() {
	_ = logger.Init("error", "")
}

type fakeMentions struct {
	records []models.MentionRecord
	err     error
}

func (f *fakeMentions) Collect(ctx context.Context) ([]models.MentionRecord, error) {
	return f.records, f.err
}

type fakePredictor struct {
	prediction *models.PlayerPrediction
	batch      []models.PlayerPrediction
	err        error
}

func (f *fakePredictor) Predict(ctx context.Context, player string) (*models.PlayerPrediction, error) {
	return f.prediction, f.err
}

func (f *fakePredictor) PredictAll(ctx context.Context) ([]models.PlayerPrediction, error) {
	return f.batch, f.err
}

type fakeStats struct {
	ids   map[string]int
	games []models.GameRecord
	err   error
}

func (f *fakeStats) FindPlayerID(ctx context.Context, fullName string) (int, error) {
	if id, ok := f.ids[fullName]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w: %s", nba.ErrPlayerNotFound, fullName)
}

func (f *fakeStats) GameLog(ctx context.Context, playerID int) ([]models.GameRecord, error) {
	return f.games, f.err
}

func newTestServer(mentions MentionSource, predictor PlayerPredictor, stats StatsSource) *Server {
	return New(&config.ServerConfig{Port: "5001", CORSOrigin: "*"}, mentions, predictor, stats)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleSentiment(t *testing.T) {
	records := []models.MentionRecord{
		{Player: "LeBron James", Sentiment: 0.4, ArticleTitle: "t", PublishedAt: "2025-03-01T10:00:00Z", URL: "https://example.com/a"},
	}
	s := newTestServer(&fakeMentions{records: records}, &fakePredictor{}, &fakeStats{})

	rec := get(t, s, "/api/sentiment")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected CORS header, got %q", got)
	}

	var decoded []models.MentionRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Player != "LeBron James" {
		t.Errorf("Unexpected body: %v", decoded)
	}
}

func TestHandleSentiment_FetchFailureIsEmptyTable(t *testing.T) {
	s := newTestServer(&fakeMentions{err: errors.New("newsapi down")}, &fakePredictor{}, &fakeStats{})

	rec := get(t, s, "/api/sentiment")

	if rec.Code != http.StatusOK {
		t.Fatalf("Fetch failure should still be 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("Expected empty array, got %q", body)
	}
}

func TestHandlePlayerStats(t *testing.T) {
	games := []models.GameRecord{
		{Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Points: 18, Rebounds: 7, Assists: 11, PlusMinus: -2},
		{Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), Points: 30, Rebounds: 8, Assists: 9, PlusMinus: 7},
	}
	s := newTestServer(&fakeMentions{}, &fakePredictor{}, &fakeStats{ids: map[string]int{"LeBron James": 2544}, games: games})

	rec := get(t, s, "/api/players/LeBron%20James/stats")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var stats models.PlayerStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}

	// Most recent game, not the first.
	if stats.Points != 30 || stats.Date != "2025-03-03" {
		t.Errorf("Expected latest game line, got %+v", stats)
	}
}

func TestHandlePlayerStats_NotFound(t *testing.T) {
	s := newTestServer(&fakeMentions{}, &fakePredictor{}, &fakeStats{ids: map[string]int{}})

	rec := get(t, s, "/api/players/Frank%20Ocean/stats")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if resp.Error == "" {
		t.Error("Expected explanatory error message")
	}
}

func TestHandlePlayerPrediction_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fmt.Errorf("resolve: %w", nba.ErrPlayerNotFound), http.StatusNotFound},
		{"insufficient data", fmt.Errorf("train: %w", model.ErrInsufficientData), http.StatusUnprocessableEntity},
		{"upstream failure", errors.New("boom"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&fakeMentions{}, &fakePredictor{err: tt.err}, &fakeStats{})

			rec := get(t, s, "/api/players/Somebody/prediction")
			if rec.Code != tt.status {
				t.Errorf("Expected %d, got %d", tt.status, rec.Code)
			}
		})
	}
}

func TestHandlePlayerPrediction(t *testing.T) {
	pred := &models.PlayerPrediction{
		Player: "LeBron James", Expected: "better", Confidence: 0.72, Sentiment: 0.3, ModelAccuracy: 0.6,
	}
	s := newTestServer(&fakeMentions{}, &fakePredictor{prediction: pred}, &fakeStats{})

	rec := get(t, s, "/api/players/LeBron%20James/prediction")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var decoded models.PlayerPrediction
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if decoded != *pred {
		t.Errorf("Round trip changed prediction: %+v", decoded)
	}
}

func TestHandlePredictions_PartialResults(t *testing.T) {
	batch := []models.PlayerPrediction{
		{Player: "A", Expected: "same", Confidence: 0.5},
		{Player: "B", Expected: "worse", Confidence: 0.8},
	}
	s := newTestServer(&fakeMentions{}, &fakePredictor{batch: batch}, &fakeStats{})

	rec := get(t, s, "/api/predictions")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var decoded []models.PlayerPrediction
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if len(decoded) != 2 {
		t.Errorf("Expected 2 predictions, got %d", len(decoded))
	}
}

func TestCORSPreflightAndMethods(t *testing.T) {
	s := newTestServer(&fakeMentions{}, &fakePredictor{}, &fakeStats{})

	req := httptest.NewRequest(http.MethodOptions, "/api/sentiment", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("Preflight should be 204, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/sentiment", nil)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST should be 405, got %d", rec.Code)
	}
}

func TestHealthAndReadiness(t *testing.T) {
	s := newTestServer(&fakeMentions{}, &fakePredictor{}, &fakeStats{})

	if rec := get(t, s, "/health"); rec.Code != http.StatusOK {
		t.Errorf("Expected healthy, got %d", rec.Code)
	}

	if rec := get(t, s, "/ready"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Not ready before SetReady, got %d", rec.Code)
	}

	s.SetReady(true)
	if rec := get(t, s, "/ready"); rec.Code != http.StatusOK {
		t.Errorf("Expected ready, got %d", rec.Code)
	}
}
