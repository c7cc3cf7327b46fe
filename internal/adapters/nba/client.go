package nba

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/courtpulse/courtpulse/internal/adapters/config"
	"github.com/courtpulse/courtpulse/pkg/logger"
	"github.com/courtpulse/courtpulse/pkg/models"
)

// ErrPlayerNotFound means a full name could not be resolved to a player ID.
// Not-found is terminal: callers skip the player instead of retrying.
var ErrPlayerNotFound = errors.New("player not found")

// Client fetches rosters and game logs from stats.nba.com
type Client struct {
	cfg    *config.NBAConfig
	client *http.Client

	rosterOnce sync.Once
	roster     []models.RosterPlayer
	rosterErr  error
}

// New creates new NBA stats client
func New(cfg *config.NBAConfig) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// ActivePlayers returns the active roster. The roster is fetched once and
// cached for the lifetime of the client; it is read-only afterwards.
func (c *Client) ActivePlayers(ctx context.Context) ([]models.RosterPlayer, error) {
	c.rosterOnce.Do(func() {
		c.roster, c.rosterErr = c.fetchActivePlayers(ctx)
	})
	return c.roster, c.rosterErr
}

// FindPlayerID resolves a full name against the active roster, case-insensitively
func (c *Client) FindPlayerID(ctx context.Context, fullName string) (int, error) {
	roster, err := c.ActivePlayers(ctx)
	if err != nil {
		return 0, err
	}

	for _, p := range roster {
		if strings.EqualFold(p.FullName, fullName) {
			return p.ID, nil
		}
	}

	return 0, fmt.Errorf("%w: %s", ErrPlayerNotFound, fullName)
}

// GameLog fetches a player's game log for the configured season and returns
// it in chronological order.
func (c *Client) GameLog(ctx context.Context, playerID int) ([]models.GameRecord, error) {
	params := url.Values{}
	params.Set("PlayerID", fmt.Sprintf("%d", playerID))
	params.Set("Season", c.cfg.Season)
	params.Set("SeasonType", c.cfg.SeasonType)

	rs, err := c.resultSet(ctx, "playergamelog", params, "PlayerGameLog")
	if err != nil {
		return nil, err
	}

	dateIdx := rs.columnIndex("GAME_DATE")
	ptsIdx := rs.columnIndex("PTS")
	rebIdx := rs.columnIndex("REB")
	astIdx := rs.columnIndex("AST")
	pmIdx := rs.columnIndex("PLUS_MINUS")
	if dateIdx < 0 || ptsIdx < 0 || rebIdx < 0 || astIdx < 0 || pmIdx < 0 {
		return nil, fmt.Errorf("game log response is missing expected columns")
	}

	games := make([]models.GameRecord, 0, len(rs.RowSet))
	for _, row := range rs.RowSet {
		date, err := parseGameDate(rowString(row, dateIdx))
		if err != nil {
			logger.Warn("skipping game with unparseable date",
				zap.String("date", rowString(row, dateIdx)),
				zap.Error(err),
			)
			continue
		}

		games = append(games, models.GameRecord{
			Date:      date,
			Points:    rowFloat(row, ptsIdx),
			Rebounds:  rowFloat(row, rebIdx),
			Assists:   rowFloat(row, astIdx),
			PlusMinus: rowFloat(row, pmIdx),
		})
	}

	// The API returns newest-first; the pipeline works chronologically.
	for i, j := 0, len(games)-1; i < j; i, j = i+1, j-1 {
		games[i], games[j] = games[j], games[i]
	}

	logger.Debug("fetched game log",
		zap.Int("player_id", playerID),
		zap.Int("games", len(games)),
	)

	return games, nil
}

func (c *Client) fetchActivePlayers(ctx context.Context) ([]models.RosterPlayer, error) {
	params := url.Values{}
	params.Set("IsOnlyCurrentSeason", "1")
	params.Set("LeagueID", "00")
	params.Set("Season", c.cfg.Season)

	rs, err := c.resultSet(ctx, "commonallplayers", params, "CommonAllPlayers")
	if err != nil {
		return nil, err
	}

	nameIdx := rs.columnIndex("DISPLAY_FIRST_LAST")
	idIdx := rs.columnIndex("PERSON_ID")
	statusIdx := rs.columnIndex("ROSTERSTATUS")
	if nameIdx < 0 || idIdx < 0 {
		return nil, fmt.Errorf("roster response is missing expected columns")
	}

	roster := make([]models.RosterPlayer, 0, len(rs.RowSet))
	for _, row := range rs.RowSet {
		if statusIdx >= 0 && rowFloat(row, statusIdx) != 1 {
			continue
		}
		roster = append(roster, models.RosterPlayer{
			FullName: rowString(row, nameIdx),
			ID:       int(rowFloat(row, idIdx)),
		})
	}

	logger.Info("loaded active roster",
		zap.Int("players", len(roster)),
	)

	return roster, nil
}

// resultSet performs one stats.nba.com call with pacing, retry and backoff,
// then picks the named result set out of the response.
func (c *Client) resultSet(ctx context.Context, endpoint string, params url.Values, name string) (*resultSet, error) {
	var lastErr error

	for attempt := 1; attempt <= c.cfg.RetryAttempts; attempt++ {
		// Fixed pacing delay before every attempt to respect rate limits.
		if err := sleepCtx(ctx, c.cfg.PacingDelay); err != nil {
			return nil, err
		}

		resp, err := c.doRequest(ctx, endpoint, params)
		if err == nil {
			rs := resp.resultSet(name)
			if rs == nil {
				return nil, fmt.Errorf("result set %q missing from %s response", name, endpoint)
			}
			return rs, nil
		}

		lastErr = err
		logger.Warn("stats request failed",
			zap.String("endpoint", endpoint),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		if attempt < c.cfg.RetryAttempts {
			// 2s, 4s, 6s with the default step
			if err := sleepCtx(ctx, time.Duration(attempt)*c.cfg.BackoffStep); err != nil {
				return nil, err
			}
		}
	}

	return nil, fmt.Errorf("stats request failed after %d attempts: %w", c.cfg.RetryAttempts, lastErr)
}

func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) (*statsResponse, error) {
	reqURL := c.cfg.BaseURL + "/" + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// stats.nba.com rejects requests without browser-like headers
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://stats.nba.com/")
	req.Header.Set("Origin", "https://stats.nba.com")
	req.Header.Set("x-nba-stats-origin", "stats")
	req.Header.Set("x-nba-stats-token", "true")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(body))
	}

	var result statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
