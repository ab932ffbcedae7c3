// Package events carries change notifications from the controllers to
// in-process observers. Delivery is synchronous, at-most-once and
// best-effort: a consumer that is not subscribed when an event fires never
// sees it.
package events

import (
	"sync"

	"github.com/taskvault/taskvault/internal/models"
)

// SessionChanged fires on login and logout.
type SessionChanged struct {
	Authenticated bool
	User          *models.User
}

// TasksChanged fires after every successful task mutation.
type TasksChanged struct {
	UserID    string
	Timestamp int64
	TaskCount int
}

// ThemeChanged fires when the stored theme switches.
type ThemeChanged struct {
	Theme string
}

// ProfileUpdated fires when a user's profile preferences change.
type ProfileUpdated struct {
	User *models.User
}

// AvatarUpdated fires when a user's avatar data changes or is removed.
type AvatarUpdated struct {
	UserID string
}

// Handler receives published events. Handlers run on the publisher's
// goroutine and must not block.
type Handler func(event any)

// Subscription identifies a registered handler so it can be removed.
type Subscription int

// Bus is a minimal typed publish/subscribe hub. The zero value is not
// usable; construct with NewBus. A nil *Bus is safe to publish to, which
// lets components be wired without observers.
type Bus struct {
	mu       sync.RWMutex
	nextID   Subscription
	handlers map[Subscription]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Subscription]Handler)}
}

// Subscribe registers a handler for all events and returns its
// subscription handle.
func (b *Bus) Subscribe(h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.handlers[id] = h
	return id
}

// Unsubscribe removes a handler. Unknown handles are ignored.
func (b *Bus) Unsubscribe(id Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.handlers, id)
}

// SubscribeTo registers a callback for a single event type, ignoring all
// others.
func SubscribeTo[T any](b *Bus, h func(T)) Subscription {
	return b.Subscribe(func(event any) {
		if e, ok := event.(T); ok {
			h(e)
		}
	})
}

// Publish delivers event to every current subscriber.
func (b *Bus) Publish(event any) {
	if b == nil {
		return
	}
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}
