package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config represents application configuration
type Config struct {
	News     NewsConfig     `envconfig:"NEWS"`
	NBA      NBAConfig      `envconfig:"NBA"`
	Model    ModelConfig    `envconfig:"MODEL"`
	Server   ServerConfig   `envconfig:"SERVER"`
	Database DatabaseConfig `envconfig:"DATABASE"`
	Telegram TelegramConfig `envconfig:"TELEGRAM"`
	Logging  LoggingConfig  `envconfig:"LOGGING"`
}

// NewsConfig represents article source (NewsAPI) parameters
type NewsConfig struct {
	BaseURL  string        `envconfig:"NEWS_BASE_URL" default:"https://newsapi.org/v2"`
	APIKey   string        `envconfig:"NEWS_API_KEY" required:"false"`
	Query    string        `envconfig:"NEWS_QUERY" default:"NBA"`
	Sources  string        `envconfig:"NEWS_SOURCES" default:"espn,bleacher-report,fox-sports,sports-illustrated,cbs-sports,nbc-sports,the-athletic,talksport,espn-cric-info,four-four-two,marca,bbc-sport,goal-com,sporting-news,yahoo-sports,sky-sports,football-italia,sport,as,lequipe,kicker,sports-mole,sportstar,the-score,fansided"`
	Language string        `envconfig:"NEWS_LANGUAGE" default:"en"`
	SortBy   string        `envconfig:"NEWS_SORT_BY" default:"publishedAt"`
	PageSize int           `envconfig:"NEWS_PAGE_SIZE" default:"100"`
	DaysBack int           `envconfig:"NEWS_DAYS_BACK" default:"28"`
	Timeout  time.Duration `envconfig:"NEWS_TIMEOUT" default:"10s"`
}

// NBAConfig represents game statistics source (stats.nba.com) parameters
type NBAConfig struct {
	BaseURL       string        `envconfig:"NBA_BASE_URL" default:"https://stats.nba.com/stats"`
	Season        string        `envconfig:"NBA_SEASON" default:"2024-25"`
	SeasonType    string        `envconfig:"NBA_SEASON_TYPE" default:"Regular Season"`
	Timeout       time.Duration `envconfig:"NBA_TIMEOUT" default:"10s"`
	RetryAttempts int           `envconfig:"NBA_RETRY_ATTEMPTS" default:"3"`
	BackoffStep   time.Duration `envconfig:"NBA_BACKOFF_STEP" default:"2s"`
	PacingDelay   time.Duration `envconfig:"NBA_PACING_DELAY" default:"1s"`
}

// ModelConfig represents classifier training parameters
type ModelConfig struct {
	WindowSize   int     `envconfig:"MODEL_WINDOW_SIZE" default:"5"`
	Trees        int     `envconfig:"MODEL_TREES" default:"100"`
	TestRatio    float64 `envconfig:"MODEL_TEST_RATIO" default:"0.2"`
	Seed         int64   `envconfig:"MODEL_SEED" default:"42"`
	ThresholdPct float64 `envconfig:"MODEL_THRESHOLD_PCT" default:"15.0"`
	MinExamples  int     `envconfig:"MODEL_MIN_EXAMPLES" default:"5"`
}

// ServerConfig represents HTTP API parameters
type ServerConfig struct {
	Port       string `envconfig:"SERVER_PORT" default:"5001"`
	CORSOrigin string `envconfig:"SERVER_CORS_ORIGIN" default:"*"`
}

// DatabaseConfig represents the optional mention archive database
type DatabaseConfig struct {
	Enabled         bool          `envconfig:"DB_ENABLED" default:"false"`
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"5432"`
	Name            string        `envconfig:"DB_NAME" default:"courtpulse"`
	User            string        `envconfig:"DB_USER" required:"false"`
	Password        string        `envconfig:"DB_PASSWORD" required:"false"`
	SSLMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
	MigrationsPath  string        `envconfig:"DB_MIGRATIONS_PATH" default:"./migrations"`
	ArchiveInterval time.Duration `envconfig:"DB_ARCHIVE_INTERVAL" default:"30m"`
}

// TelegramConfig represents the optional prediction notifier
type TelegramConfig struct {
	BotToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"false"`
	ChatID   int64  `envconfig:"TELEGRAM_CHAT_ID" required:"false"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE" default:""`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.News.APIKey == "" {
		return fmt.Errorf("news API key is required")
	}
	if c.News.PageSize < 1 || c.News.PageSize > 100 {
		return fmt.Errorf("news page size must be between 1 and 100")
	}
	if c.News.DaysBack < 1 {
		return fmt.Errorf("news days back must be at least 1")
	}

	if c.NBA.RetryAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1")
	}

	if c.Model.WindowSize < 2 {
		return fmt.Errorf("window size must be at least 2")
	}
	if c.Model.TestRatio <= 0 || c.Model.TestRatio >= 1 {
		return fmt.Errorf("test ratio must be between 0 and 1")
	}
	if c.Model.Trees < 1 {
		return fmt.Errorf("trees must be at least 1")
	}
	if c.Model.ThresholdPct <= 0 {
		return fmt.Errorf("threshold percent must be positive")
	}
	if c.Model.MinExamples < 1 {
		return fmt.Errorf("min examples must be at least 1")
	}

	if c.Database.Enabled && c.Database.User == "" {
		return fmt.Errorf("database user is required when the archive is enabled")
	}

	if c.Telegram.BotToken != "" && c.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram chat_id is required when a bot token is set")
	}

	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}
