package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/courtpulse/courtpulse/internal/adapters/config"
	"github.com/courtpulse/courtpulse/pkg/logger"
	"github.com/courtpulse/courtpulse/pkg/models"
)

// Notifier sends batch prediction summaries to a Telegram chat
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier creates new Telegram notifier
func NewNotifier(cfg *config.TelegramConfig) (*Notifier, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	bot.Debug = false

	logger.Info("telegram notifier initialized",
		zap.String("bot_username", bot.Self.UserName),
	)

	return &Notifier{
		api:    bot,
		chatID: cfg.ChatID,
	}, nil
}

// SendPredictionSummary sends one message summarizing a prediction batch
func (n *Notifier) SendPredictionSummary(predictions []models.PlayerPrediction) error {
	if len(predictions) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("🏀 Performance predictions (%d players)\n\n", len(predictions)))

	for _, p := range predictions {
		b.WriteString(fmt.Sprintf("%s %s — %s (confidence %.0f%%, sentiment %+.2f)\n",
			expectedEmoji(p.Expected), p.Player, p.Expected, p.Confidence*100, p.Sentiment))
	}

	msg := tgbotapi.NewMessage(n.chatID, b.String())
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}

	return nil
}

func expectedEmoji(expected string) string {
	switch expected {
	case "better":
		return "📈"
	case "worse":
		return "📉"
	default:
		return "➖"
	}
}
