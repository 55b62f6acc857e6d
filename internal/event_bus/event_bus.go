package event_bus

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// EventType is an identifier for events.
type EventType string

// Event is the untyped envelope carried by the bus. Data stays an any so one
// bus can carry different payload types.
type Event struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
	Data      any
}

// NewEvent builds an Event stamped with the current time.
func NewEvent(ctx context.Context, eventType EventType, data any) Event {
	return Event{
		ctx:       ctx,
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// Context returns the context the event was published under. Handlers must
// respect its cancellation and may read values (trace ID, request ID) from it.
func (e Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// EventT is the typed envelope handed to handlers registered through
// SubscribeTyped.
type EventT[T any] struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
	Data      T
}

func (e EventT[T]) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

type subscription struct {
	id uint64
	fn func(Event) error
}

// EventBus dispatches events to subscribers synchronously, in registration
// order, on the publishing goroutine. Safe for concurrent use.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[EventType][]subscription
	nextID      uint64
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[EventType][]subscription),
	}
}

// Subscribe registers a handler for the given event type and returns a
// function that removes it again.
func (eb *EventBus) Subscribe(eventType EventType, h func(Event) error) (unsubscribe func()) {
	eb.mu.Lock()
	eb.nextID++
	id := eb.nextID
	eb.subscribers[eventType] = append(eb.subscribers[eventType], subscription{id: id, fn: h})
	eb.mu.Unlock()

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()

		subs := eb.subscribers[eventType]
		for i, sub := range subs {
			if sub.id == id {
				eb.subscribers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		if len(eb.subscribers[eventType]) == 0 {
			delete(eb.subscribers, eventType)
		}
	}
}

// SubscribeTyped registers a handler for one payload type. It is a free
// function because methods cannot carry their own type parameters. Events
// whose payload is not a T are skipped with a debug log instead of failing,
// so a mistyped subscriber cannot poison publishers.
//
// Example:
//
//	unsub := event_bus.SubscribeTyped[event_bus.SyncCompleted](bus, event_bus.EventSyncCompleted,
//	    func(e event_bus.EventT[event_bus.SyncCompleted]) error {
//	        log.Infof("sync run %s finished with %d events", e.Data.RunID, e.Data.EventCount)
//	        return nil
//	    })
func SubscribeTyped[T any](eb *EventBus, eventType EventType, h func(EventT[T]) error) (unsubscribe func()) {
	return eb.Subscribe(eventType, func(e Event) error {
		payload, ok := e.Data.(T)
		if !ok {
			log.Debugf("event %s: payload is %T, handler expects %T, skipping", eventType, e.Data, *new(T))
			return nil
		}
		return h(EventT[T]{
			ctx:       e.ctx,
			Type:      e.Type,
			Timestamp: e.Timestamp,
			Data:      payload,
		})
	})
}

// Publish runs every handler registered for the event's type, in order, on
// the calling goroutine. A failing handler does not stop the others; all
// errors are collected into the returned error. A panicking handler is
// recovered and reported as an error. When the event's context is cancelled,
// remaining handlers are skipped.
func (eb *EventBus) Publish(e Event) error {
	if err := e.Context().Err(); err != nil {
		return fmt.Errorf("event %s: context cancelled before publish: %w", e.Type, err)
	}

	eb.mu.RLock()
	// Handlers run outside the lock so they may subscribe or unsubscribe.
	subs := make([]subscription, len(eb.subscribers[e.Type]))
	copy(subs, eb.subscribers[e.Type])
	eb.mu.RUnlock()

	var errs []error
	for _, sub := range subs {
		if err := e.Context().Err(); err != nil {
			errs = append(errs, fmt.Errorf("context cancelled during event processing: %w", err))
			break
		}

		err := func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("handler %d panicked on event %s: %v", sub.id, e.Type, r)
					log.Error(err)
				}
			}()
			return sub.fn(e)
		}()
		if err != nil {
			log.Errorf("event %s: handler %d failed: %v", e.Type, sub.id, err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("event %s: %d handler(s) failed: %v", e.Type, len(errs), errs)
	}
	return nil
}
