package main

import (
	"os"

	"github.com/Leratobriget/LivePrediction-Matches/internal/config"
	"github.com/Leratobriget/LivePrediction-Matches/models"
	"github.com/Leratobriget/LivePrediction-Matches/notifier"
	"github.com/rs/zerolog/log"
)

// Sends one notification through every configured notifier so chat
// delivery can be checked without starting the dashboard.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	config.SetupLogging(cfg.LogLevel, cfg.LogFormat)

	title := "Error"
	message := "Failed to load live matches"
	if len(os.Args) > 1 {
		message = os.Args[1]
	}

	notifiers := notifier.Multi{notifier.NewLog()}

	var tg *notifier.Telegram
	if cfg.TelegramEnabled() {
		tg, err = notifier.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID, false)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
		}
		notifiers = append(notifiers, tg)
	} else {
		log.Warn().Msg("TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID not set, logging only")
	}

	notifiers.Notify(title, message, models.SeverityDestructive)
	if tg != nil {
		tg.Wait()
	}
	log.Info().Msg("Test notification sent")
}
