package gateway

import (
	"sync"

	"github.com/rs/zerolog"
)

// EventType names an auth state transition.
type EventType string

const (
	EventSignedIn         EventType = "SIGNED_IN"
	EventSignedOut        EventType = "SIGNED_OUT"
	EventPasswordRecovery EventType = "PASSWORD_RECOVERY"
	EventUserUpdated      EventType = "USER_UPDATED"
)

// AuthEvent is delivered to auth state listeners. Session is nil only when
// the backend could not tell who signed out.
type AuthEvent struct {
	Type    EventType
	Session *Session
}

// UserID returns the id of the user the event is about.
func (e AuthEvent) UserID() string {
	if e.Session == nil {
		return ""
	}
	return e.Session.User.ID
}

// Listener receives auth state changes.
type Listener func(AuthEvent)

// Broadcaster fans auth events out to subscribed listeners. Listeners run
// synchronously in subscription order.
type Broadcaster struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]Listener
	order     []int
	log       zerolog.Logger
}

// NewBroadcaster creates a broadcaster with no listeners.
func NewBroadcaster(log zerolog.Logger) *Broadcaster {
	return &Broadcaster{listeners: make(map[int]Listener), log: log}
}

// OnAuthStateChange subscribes listener. The returned func removes it and is
// safe to call more than once.
func (b *Broadcaster) OnAuthStateChange(listener Listener) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = listener
	b.order = append(b.order, id)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.listeners, id)
			for i, existing := range b.order {
				if existing == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Emit delivers event to every current listener.
func (b *Broadcaster) Emit(event AuthEvent) {
	b.mu.RLock()
	listeners := make([]Listener, 0, len(b.order))
	for _, id := range b.order {
		listeners = append(listeners, b.listeners[id])
	}
	b.mu.RUnlock()

	b.log.Debug().Str("event", string(event.Type)).Str("user_id", event.UserID()).Int("listeners", len(listeners)).Msg("Auth state changed")
	for _, l := range listeners {
		l(event)
	}
}

// Listeners returns the number of subscribed listeners.
func (b *Broadcaster) Listeners() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}
