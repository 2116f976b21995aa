package form

import (
	"sync"

	"github.com/rs/zerolog"
)

// Kind is the flavour of a user notification.
type Kind string

const (
	// KindSuccess reports a completed action.
	KindSuccess Kind = "success"
	// KindError reports a failed action.
	KindError Kind = "error"
)

// Notification is one message for the user.
type Notification struct {
	Kind    Kind   `json:"kind" example:"success"`
	Message string `json:"message" example:"Package created"`
} // @name Notification

// Notifier delivers user-facing notifications. Notify must not block.
type Notifier interface {
	Notify(kind Kind, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(kind Kind, message string)

// Notify calls f.
func (f NotifierFunc) Notify(kind Kind, message string) {
	f(kind, message)
}

type discardNotifier struct{}

func (discardNotifier) Notify(Kind, string) {}

// DefaultQueueSize bounds a Queue created with a non-positive size.
const DefaultQueueSize = 16

// Queue buffers notifications until a page render or API call drains them.
// When full, the oldest notification is dropped.
type Queue struct {
	mu    sync.Mutex
	items []Notification
	size  int
}

// NewQueue creates a queue holding at most size notifications.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{size: size}
}

// Notify appends a notification.
func (q *Queue) Notify(kind Kind, message string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == q.size {
		copy(q.items, q.items[1:])
		q.items = q.items[:len(q.items)-1]
	}
	q.items = append(q.items, Notification{Kind: kind, Message: message})
}

// Drain returns and removes every pending notification.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.items
	q.items = nil
	if out == nil {
		return []Notification{}
	}
	return out
}

// Len returns the number of pending notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// LoggingNotifier logs every notification before passing it on.
type LoggingNotifier struct {
	Next   Notifier
	Logger zerolog.Logger
}

// Notify logs the notification and forwards it to Next.
func (n LoggingNotifier) Notify(kind Kind, message string) {
	event := n.Logger.Info()
	if kind == KindError {
		event = n.Logger.Warn()
	}
	event.Str("kind", string(kind)).Str("notification", message).Msg("User notified")

	if n.Next != nil {
		n.Next.Notify(kind, message)
	}
}
