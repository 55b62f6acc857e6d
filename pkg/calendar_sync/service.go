package calendar_sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/outcal/outcal/internal/utils"
	"github.com/outcal/outcal/pkg/calendar"
	"github.com/outcal/outcal/pkg/outlook"
	log "github.com/sirupsen/logrus"
)

type Synchronizer interface {
	// Sync runs one bounded synchronization. It returns an error only when
	// the run never got to read events (invalid request, unknown folder);
	// attempt failures end up in the Result instead.
	Sync(ctx context.Context, req Request) (Result, error)
}

type SynchronizerImpl struct {
	client         outlook.Client
	cleaner        BodyCleaner
	clock          utils.Clock
	skipCategories []string
	retryWait      time.Duration
}

func NewSynchronizerImpl(
	client outlook.Client,
	cleaner BodyCleaner,
	clock utils.Clock,
	skipCategories []string,
	retryWait time.Duration,
) *SynchronizerImpl {
	return &SynchronizerImpl{
		client:         client,
		cleaner:        cleaner,
		clock:          clock,
		skipCategories: skipCategories,
		retryWait:      retryWait,
	}
}

func (s *SynchronizerImpl) Sync(ctx context.Context, req Request) (Result, error) {
	result := Result{
		RunID:   uuid.NewString(),
		Status:  StatusFailed,
		Started: s.clock.Now(),
	}
	if err := validateRequest(req); err != nil {
		result.Finished = s.clock.Now()
		result.LastErr = err.Error()
		return result, err
	}
	window := calendar.WindowAround(s.clock.Now(), req.DaysBack, req.DaysForward)
	result.Window = window
	maxAttempts := req.Retries + 1

	log.Infof("starting calendar sync %s: folder=%q window=%s attempts=%d timeout=%s fullSync=%t",
		result.RunID, req.Folder, window, maxAttempts, req.Timeout, req.FullSync)

	folder, err := outlook.FindFolder(ctx, s.client, req.Folder)
	if err != nil {
		result.Finished = s.clock.Now()
		result.LastErr = err.Error()
		log.Errorf("calendar sync %s failed before reading events: %v", result.RunID, err)
		return result, err
	}
	result.Folder = folder.Name

	if req.FullSync {
		s.fullResync(ctx, folder, req.Timeout)
	}

	var events []calendar.Event
	attempts := 0

	operation := func() error {
		attempts++
		attemptCtx := ctx
		cancel := func() {}
		if req.Timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		}
		started := time.Now()
		read, err := s.client.Events(attemptCtx, folder, window)
		cancel()
		elapsed := time.Since(started).Round(time.Millisecond)

		if err == nil {
			events = read
			log.Infof("sync attempt %d/%d on %q read %d events in %s", attempts, maxAttempts, folder.Name, len(read), elapsed)
			return nil
		}
		var incomplete *outlook.IncompleteError
		if errors.As(err, &incomplete) {
			// Keep the partial collection, a later attempt may not get
			// this far.
			events = incomplete.Events
			log.Warnf("sync attempt %d/%d on %q incomplete after %s: %v", attempts, maxAttempts, folder.Name, elapsed, err)
			return err
		}
		if ctx.Err() != nil {
			log.Warnf("sync attempt %d/%d on %q aborted: %v", attempts, maxAttempts, folder.Name, ctx.Err())
			return backoff.Permanent(ctx.Err())
		}
		if errors.Is(err, outlook.ErrFolderNotFound) {
			log.Errorf("sync attempt %d/%d: folder %q disappeared: %v", attempts, maxAttempts, folder.Name, err)
			return backoff.Permanent(err)
		}
		log.Warnf("sync attempt %d/%d on %q failed after %s: %v", attempts, maxAttempts, folder.Name, elapsed, err)
		return err
	}

	bo := backoff.NewExponentialBackOff()
	if s.retryWait > 0 {
		bo.InitialInterval = s.retryWait
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(req.Retries)), ctx)
	err = backoff.RetryNotify(operation, policy, func(err error, wait time.Duration) {
		log.Infof("retrying calendar read in %s", wait.Round(time.Millisecond))
	})

	result.Attempts = attempts
	result.Events = s.finalize(events, folder.Name)
	result.Finished = s.clock.Now()
	if err != nil {
		result.LastErr = err.Error()
		log.Errorf("calendar sync %s failed after %d attempts, keeping %d collected events: %v",
			result.RunID, attempts, len(result.Events), err)
		return result, nil
	}
	result.Status = StatusSucceeded
	if attempts > 1 {
		result.Status = StatusSucceededAfterRetry
	}
	log.Infof("calendar sync %s %s: %d events in %d attempts", result.RunID, result.Status, len(result.Events), result.Attempts)
	return result, nil
}

// fullResync asks the client for a deeper resynchronization once. The
// client's sync state is opaque, so a failure here only loses the freshness
// guarantee and the run proceeds.
func (s *SynchronizerImpl) fullResync(ctx context.Context, folder outlook.Folder, timeout time.Duration) {
	rctx := ctx
	cancel := func() {}
	if timeout > 0 {
		rctx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()
	log.Infof("requesting full resync of folder %q", folder.Name)
	if err := s.client.Resync(rctx, folder); err != nil {
		log.Warnf("full resync request failed: %v", err)
	}
}

func (s *SynchronizerImpl) finalize(events []calendar.Event, folderName string) []calendar.Event {
	result := make([]calendar.Event, 0, len(events))
	for _, event := range events {
		if category, skip := s.skippedCategory(event); skip {
			log.Infof("skipping %s event: %s", category, event.Subject)
			continue
		}
		if s.cleaner != nil {
			event.Body = s.cleaner.Clean(event.Body)
		}
		event.Folder = folderName
		result = append(result, event)
	}
	return result
}

func (s *SynchronizerImpl) skippedCategory(event calendar.Event) (string, bool) {
	for _, category := range s.skipCategories {
		if event.HasCategory(category) {
			return category, true
		}
	}
	return "", false
}

func validateRequest(req Request) error {
	if req.DaysBack < 0 {
		return fmt.Errorf("days back must not be negative: %d", req.DaysBack)
	}
	if req.DaysForward < 0 {
		return fmt.Errorf("days forward must not be negative: %d", req.DaysForward)
	}
	if req.Retries < 0 {
		return fmt.Errorf("retries must not be negative: %d", req.Retries)
	}
	return nil
}
