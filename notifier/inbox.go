package notifier

import (
	"sync"
	"time"

	"github.com/Leratobriget/LivePrediction-Matches/models"
)

// DefaultInboxSize bounds the toast queue of one session
const DefaultInboxSize = 20

// Inbox queues toasts for one session until the client drains them.
// When full, the oldest toast is dropped.
type Inbox struct {
	mu    sync.Mutex
	items []models.Notification
	size  int
	now   func() time.Time
}

// NewInbox creates an inbox holding at most size toasts
func NewInbox(size int) *Inbox {
	if size <= 0 {
		size = DefaultInboxSize
	}
	return &Inbox{size: size, now: time.Now}
}

// Notify implements models.Notifier
func (i *Inbox) Notify(title, message string, severity models.Severity) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if len(i.items) == i.size {
		i.items = i.items[1:]
	}
	i.items = append(i.items, models.Notification{
		Title:     title,
		Message:   message,
		Severity:  severity,
		CreatedAt: i.now(),
	})
}

// Drain returns every queued toast, oldest first, and empties the inbox
func (i *Inbox) Drain() []models.Notification {
	i.mu.Lock()
	defer i.mu.Unlock()

	out := i.items
	i.items = nil
	if out == nil {
		return []models.Notification{}
	}
	return out
}

// Len returns the number of queued toasts
func (i *Inbox) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.items)
}
