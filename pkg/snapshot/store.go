package snapshot

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/outcal/outcal/internal/event_bus"
	"github.com/outcal/outcal/pkg/calendar_sync"
)

// Store keeps the result of the most recent synchronization run in memory, so
// the dashboard can serve events and statistics without a round trip to
// Outlook on every request.
type Store struct {
	synchronizer calendar_sync.Synchronizer
	request      calendar_sync.Request
	bus          *event_bus.EventBus

	// refreshMu serializes runs. The COM client is not safe for
	// concurrent use.
	refreshMu sync.Mutex

	mu     sync.RWMutex
	latest *calendar_sync.Result
}

func NewStore(synchronizer calendar_sync.Synchronizer, request calendar_sync.Request, bus *event_bus.EventBus) *Store {
	return &Store{
		synchronizer: synchronizer,
		request:      request,
		bus:          bus,
	}
}

// Latest returns the most recent run result. The second return value is false
// until the first Refresh has stored one.
func (s *Store) Latest() (calendar_sync.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == nil {
		return calendar_sync.Result{}, false
	}
	return *s.latest, true
}

// Refresh runs a synchronization with the configured request and stores the
// outcome, then announces it on the event bus. A run that failed before
// reading anything leaves the previous snapshot in place.
func (s *Store) Refresh(ctx context.Context) (calendar_sync.Result, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	result, err := s.synchronizer.Sync(ctx, s.request)
	if err != nil {
		err = fmt.Errorf("failed to refresh calendar snapshot: %w", err)
		log.Error(err)
		return result, err
	}

	s.mu.Lock()
	s.latest = &result
	s.mu.Unlock()

	s.publishCompleted(ctx, result)
	return result, nil
}

func (s *Store) publishCompleted(ctx context.Context, result calendar_sync.Result) {
	if s.bus == nil {
		return
	}
	payload := event_bus.SyncCompleted{
		RunID:      result.RunID,
		Folder:     result.Folder,
		Status:     string(result.Status),
		Attempts:   result.Attempts,
		EventCount: len(result.Events),
		Finished:   result.Finished,
	}
	event := event_bus.NewEvent(ctx, event_bus.EventSyncCompleted, payload)
	if err := s.bus.Publish(event); err != nil {
		log.Errorf("failed to publish %s event: %v", event_bus.EventSyncCompleted, err)
	}
}
