package snapshot

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scheduler refreshes a Store on a cron schedule while the dashboard runs.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers a refresh of store under spec, a standard five-field
// cron expression such as "*/15 * * * *".
func NewScheduler(store *Store, spec string) (*Scheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := store.Refresh(context.Background()); err != nil {
			log.Errorf("scheduled snapshot refresh failed: %v", err)
		}
	})
	if err != nil {
		err = fmt.Errorf("failed to schedule snapshot refresh %q: %w", spec, err)
		log.Error(err)
		return nil, err
	}
	return &Scheduler{cron: c}, nil
}

// Start begins running scheduled refreshes in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels future refreshes and waits for a running one to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
