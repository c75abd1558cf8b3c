package notifier

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Leratobriget/LivePrediction-Matches/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

func TestLogLevels(t *testing.T) {
	tests := []struct {
		severity  models.Severity
		wantLevel string
	}{
		{models.SeverityInfo, `"level":"info"`},
		{models.SeverityDestructive, `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			var buf bytes.Buffer
			l := &Log{logger: zerolog.New(&buf)}

			l.Notify("Error", "Failed to load live matches", tt.severity)

			out := buf.String()
			if !strings.Contains(out, tt.wantLevel) {
				t.Errorf("log line %q missing %s", out, tt.wantLevel)
			}
			if !strings.Contains(out, "Failed to load live matches") {
				t.Errorf("log line %q missing message", out)
			}
		})
	}
}

func TestInboxDrain(t *testing.T) {
	inbox := NewInbox(0)
	fixed := time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)
	inbox.now = func() time.Time { return fixed }

	if got := inbox.Drain(); got == nil || len(got) != 0 {
		t.Errorf("Drain() on empty inbox = %#v, want empty slice", got)
	}

	inbox.Notify("Error", "Failed to load predictions", models.SeverityDestructive)
	inbox.Notify("Subscription", "Premium subscription feature coming soon!", models.SeverityInfo)

	got := inbox.Drain()
	if len(got) != 2 {
		t.Fatalf("Drain() returned %d toasts, want 2", len(got))
	}
	if got[0].Message != "Failed to load predictions" || got[1].Severity != models.SeverityInfo {
		t.Errorf("Drain() = %+v", got)
	}
	if !got[0].CreatedAt.Equal(fixed) {
		t.Errorf("CreatedAt = %v, want %v", got[0].CreatedAt, fixed)
	}
	if inbox.Len() != 0 {
		t.Errorf("Len() after drain = %d, want 0", inbox.Len())
	}
}

func TestInboxDropsOldest(t *testing.T) {
	inbox := NewInbox(3)
	for i := 1; i <= 5; i++ {
		inbox.Notify("Error", fmt.Sprintf("failure %d", i), models.SeverityDestructive)
	}

	got := inbox.Drain()
	if len(got) != 3 {
		t.Fatalf("Drain() returned %d toasts, want 3", len(got))
	}
	if got[0].Message != "failure 3" || got[2].Message != "failure 5" {
		t.Errorf("Drain() = %+v, want the three newest", got)
	}
}

type recordingSender struct {
	mu   sync.Mutex
	sent []tgbotapi.MessageConfig
	err  error
}

func (r *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		r.sent = append(r.sent, msg)
	}
	return tgbotapi.Message{}, r.err
}

func TestTelegramNotify(t *testing.T) {
	tests := []struct {
		name            string
		destructiveOnly bool
		severity        models.Severity
		wantSent        int
	}{
		{"destructive forwarded", true, models.SeverityDestructive, 1},
		{"info filtered", true, models.SeverityInfo, 0},
		{"info forwarded when not filtering", false, models.SeverityInfo, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &recordingSender{}
			tg := NewTelegramWithSender(sender, 42, tt.destructiveOnly)

			tg.Notify("Error", "Failed to load live matches", tt.severity)
			tg.Wait()

			if len(sender.sent) != tt.wantSent {
				t.Fatalf("sent %d messages, want %d", len(sender.sent), tt.wantSent)
			}
			if tt.wantSent == 1 {
				msg := sender.sent[0]
				if msg.ChatID != 42 {
					t.Errorf("ChatID = %d, want 42", msg.ChatID)
				}
				if !strings.Contains(msg.Text, "Failed to load live matches") {
					t.Errorf("Text = %q", msg.Text)
				}
			}
		})
	}
}

func TestTelegramSendErrorIsSwallowed(t *testing.T) {
	sender := &recordingSender{err: errors.New("chat not found")}
	tg := NewTelegramWithSender(sender, 42, false)

	tg.Notify("Error", "Failed to load profile", models.SeverityDestructive)
	tg.Wait()

	if len(sender.sent) != 1 {
		t.Errorf("sent %d messages, want 1 attempt", len(sender.sent))
	}
}

func TestFormatMessage(t *testing.T) {
	if got := FormatMessage("Error", "Failed to load predictions", models.SeverityDestructive); got != "❌ Error: Failed to load predictions" {
		t.Errorf("FormatMessage() = %q", got)
	}
}

func TestMulti(t *testing.T) {
	a, b := NewInbox(5), NewInbox(5)
	m := Multi{a, nil, b}

	m.Notify("Subscription", "VIP subscription feature coming soon!", models.SeverityInfo)

	if a.Len() != 1 || b.Len() != 1 {
		t.Errorf("fan-out reached a=%d b=%d, want 1 each", a.Len(), b.Len())
	}
}
