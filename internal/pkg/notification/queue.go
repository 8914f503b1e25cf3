// Package notification holds transient, user-facing status messages.
package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/yigit/studyhub/internal/pkg/collection"
	"github.com/yigit/studyhub/internal/pkg/idgen"
)

// DefaultToastTTL is how long the newest notification is surfaced as a toast.
const DefaultToastTTL = 4 * time.Second

// Kind is the closed set of notification kinds.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// ParseKind converts a raw string into a Kind.
func ParseKind(raw string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(raw))); k {
	case KindSuccess, KindError, KindInfo, KindWarning:
		return k, nil
	default:
		return "", fmt.Errorf("unknown notification kind %q", raw)
	}
}

// Notification is one queued message.
type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// EntityID implements collection.Entity.
func (n Notification) EntityID() string { return n.ID }

// Queue is a newest-first list of notifications. It is unbounded and not safe
// for concurrent use; its owner serializes access.
type Queue struct {
	items *collection.Manager[Notification]
	ttl   time.Duration
}

// Option configures a Queue.
type Option func(*queueOptions)

type queueOptions struct {
	ttl time.Duration
	now func() time.Time
}

// WithTTL sets the toast lifetime. Non-positive values keep the default.
func WithTTL(ttl time.Duration) Option {
	return func(o *queueOptions) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *queueOptions) { o.now = now }
}

// NewQueue creates an empty queue.
func NewQueue(ids idgen.Generator, opts ...Option) *Queue {
	o := queueOptions{ttl: DefaultToastTTL, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Queue{
		items: collection.NewManager[Notification](ids, collection.WithClock[Notification](o.now)),
		ttl:   o.ttl,
	}
}

// Push prepends a new notification and returns it.
func (q *Queue) Push(kind Kind, title, message string) Notification {
	return q.items.Create(func(id string, now time.Time) Notification {
		return Notification{ID: id, Kind: kind, Title: title, Message: message, Timestamp: now}
	})
}

// Dismiss removes the notification with the given id, if any.
func (q *Queue) Dismiss(id string) bool {
	return q.items.Delete(id)
}

// ClearAll empties the queue.
func (q *Queue) ClearAll() {
	q.items.Clear()
}

// List returns the queued notifications, newest first.
func (q *Queue) List() []Notification {
	return q.items.Items()
}

// Len returns the number of queued notifications.
func (q *Queue) Len() int {
	return q.items.Len()
}

// TTL returns the toast lifetime.
func (q *Queue) TTL() time.Duration {
	return q.ttl
}

// Toast returns the newest notification while it is younger than the toast
// TTL at now. Expired toasts stay in the list.
func (q *Queue) Toast(now time.Time) (Notification, bool) {
	items := q.items.Items()
	if len(items) == 0 {
		return Notification{}, false
	}
	newest := items[0]
	if now.Sub(newest.Timestamp) >= q.ttl {
		return Notification{}, false
	}
	return newest, true
}
