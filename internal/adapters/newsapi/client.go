package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/courtpulse/courtpulse/internal/adapters/config"
	"github.com/courtpulse/courtpulse/pkg/logger"
	"github.com/courtpulse/courtpulse/pkg/models"
)

// Client fetches articles from NewsAPI
type Client struct {
	cfg    *config.NewsConfig
	client *http.Client
}

// New creates new NewsAPI client
func New(cfg *config.NewsConfig) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Search queries the /everything endpoint for articles published in [from, to].
// A non-"ok" response status is an error; callers treat it as zero articles.
func (c *Client) Search(ctx context.Context, from, to time.Time) ([]models.Article, error) {
	params := url.Values{}
	params.Set("q", c.cfg.Query)
	params.Set("sources", c.cfg.Sources)
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))
	params.Set("language", c.cfg.Language)
	params.Set("sortBy", c.cfg.SortBy)
	params.Set("pageSize", strconv.Itoa(c.cfg.PageSize))

	reqURL := c.cfg.BaseURL + "/everything?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Status   string `json:"status"`
		Code     string `json:"code"`
		Message  string `json:"message"`
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			PublishedAt string `json:"publishedAt"`
			URL         string `json:"url"`
		} `json:"articles"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if result.Status != "ok" {
		return nil, fmt.Errorf("newsapi status %q: %s", result.Status, result.Message)
	}

	articles := make([]models.Article, 0, len(result.Articles))
	for _, a := range result.Articles {
		articles = append(articles, models.Article{
			Title:       a.Title,
			Description: a.Description,
			PublishedAt: a.PublishedAt,
			URL:         a.URL,
		})
	}

	logger.Debug("fetched articles",
		zap.Int("count", len(articles)),
		zap.String("from", from.Format("2006-01-02")),
		zap.String("to", to.Format("2006-01-02")),
	)

	return articles, nil
}
