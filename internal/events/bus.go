package events

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// subscription filters events for one channel. Empty fields match anything.
type subscription struct {
	ch        chan Event
	eventType string
	entityID  string
}

func (s subscription) matches(e Event) bool {
	return (s.eventType == "" || s.eventType == e.EventType()) &&
		(s.entityID == "" || s.entityID == e.EntityID())
}

// Bus is the central event bus for pub/sub.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	log    *EventLog // SQLite persistence (may be nil)
	logger *slog.Logger
	closed bool
}

// NewBus creates a new event bus.
// The EventLog is optional - pass nil to disable persistence.
func NewBus(log *EventLog, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Bus{
		log:    log,
		logger: logger.With("component", "events"),
	}
}

// Publish persists e when a log is attached and delivers it to every matching
// subscriber. Delivery never blocks: a full subscriber drops the event.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}

	if b.log != nil {
		if _, err := b.log.Append(ctx, e); err != nil {
			b.logger.Error("failed to persist event", "type", e.EventType(), "error", err)
		}
	}

	for _, s := range b.subs {
		if !s.matches(e) {
			continue
		}
		select {
		case s.ch <- e:
		default:
			b.logger.Warn("subscriber channel full, dropping event",
				"type", e.EventType(),
				"entity_type", e.EntityType(),
				"entity_id", e.EntityID())
		}
	}
	return nil
}

// Subscribe returns a channel for events of a specific type.
func (b *Bus) Subscribe(eventType string, bufferSize int) <-chan Event {
	return b.add(subscription{eventType: eventType}, bufferSize)
}

// SubscribeAll returns a channel for all events.
func (b *Bus) SubscribeAll(bufferSize int) <-chan Event {
	return b.add(subscription{}, bufferSize)
}

// SubscribeEntity returns a channel for all events about one entity, such as a job ID.
func (b *Bus) SubscribeEntity(entityID string, bufferSize int) <-chan Event {
	return b.add(subscription{entityID: entityID}, bufferSize)
}

func (b *Bus) add(s subscription, bufferSize int) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	s.ch = make(chan Event, bufferSize)
	if b.closed {
		close(s.ch)
		return s.ch
	}
	b.subs = append(b.subs, s)
	return s.ch
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := slices.IndexFunc(b.subs, func(s subscription) bool { return s.ch == ch })
	if i < 0 {
		return
	}
	close(b.subs[i].ch)
	b.subs = slices.Delete(b.subs, i, i+1)
}

// Close shuts down the bus and closes all subscriber channels.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for _, s := range b.subs {
		close(s.ch)
	}
	b.subs = nil
	return nil
}
