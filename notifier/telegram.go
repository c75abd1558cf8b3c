package notifier

import (
	"fmt"
	"sync"

	"github.com/Leratobriget/LivePrediction-Matches/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Sender is the part of tgbotapi.BotAPI used for delivery
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram forwards notifications to a chat. Sending happens in the
// background so Notify never blocks the caller.
type Telegram struct {
	bot             Sender
	chatID          int64
	destructiveOnly bool
	logger          zerolog.Logger
	wg              sync.WaitGroup
}

// NewTelegram connects to the Bot API with token
func NewTelegram(token string, chatID int64, destructiveOnly bool) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	t := NewTelegramWithSender(bot, chatID, destructiveOnly)
	t.logger.Info().Str("bot", bot.Self.UserName).Msg("Telegram notifier authorized")
	return t, nil
}

// NewTelegramWithSender uses an existing sender
func NewTelegramWithSender(bot Sender, chatID int64, destructiveOnly bool) *Telegram {
	return &Telegram{
		bot:             bot,
		chatID:          chatID,
		destructiveOnly: destructiveOnly,
		logger:          log.With().Str("component", "telegram").Logger(),
	}
}

// FormatMessage renders a notification as chat text
func FormatMessage(title, message string, severity models.Severity) string {
	icon := "ℹ️"
	if severity == models.SeverityDestructive {
		icon = "❌"
	}
	return fmt.Sprintf("%s %s: %s", icon, title, message)
}

// Notify implements models.Notifier
func (t *Telegram) Notify(title, message string, severity models.Severity) {
	if t.destructiveOnly && severity != models.SeverityDestructive {
		return
	}

	msg := tgbotapi.NewMessage(t.chatID, FormatMessage(title, message, severity))
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		if _, err := t.bot.Send(msg); err != nil {
			t.logger.Error().Err(err).Int64("chat_id", t.chatID).Msg("Failed to send notification")
		}
	}()
}

// Wait blocks until every pending message has been sent
func (t *Telegram) Wait() {
	t.wg.Wait()
}
