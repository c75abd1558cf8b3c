// Package notifier delivers user-facing status and error messages
package notifier

import (
	"github.com/Leratobriget/LivePrediction-Matches/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Log writes notifications to the structured log
type Log struct {
	logger zerolog.Logger
}

// NewLog creates a log notifier
func NewLog() *Log {
	return &Log{logger: log.With().Str("component", "notifier").Logger()}
}

// Notify implements models.Notifier
func (l *Log) Notify(title, message string, severity models.Severity) {
	event := l.logger.Info()
	if severity == models.SeverityDestructive {
		event = l.logger.Error()
	}
	event.Str("title", title).Str("severity", string(severity)).Msg(message)
}

// Multi fans a notification out to every notifier
type Multi []models.Notifier

// Notify implements models.Notifier
func (m Multi) Notify(title, message string, severity models.Severity) {
	for _, n := range m {
		if n != nil {
			n.Notify(title, message, severity)
		}
	}
}
