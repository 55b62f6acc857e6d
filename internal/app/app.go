package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/outcal/outcal/internal/config"
	"github.com/outcal/outcal/internal/rest"
	"github.com/outcal/outcal/pkg/outlook"
	"github.com/outcal/outcal/pkg/snapshot"
)

// Application wires configuration, the Outlook client, router, and server
// lifecycle for the dashboard.
type Application struct {
	cfg       config.Application
	router    *mux.Router
	srv       *http.Server
	scheduler *snapshot.Scheduler
	store     *snapshot.Store
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication(cfg config.Application, client outlook.Client) (*Application, error) {
	r := mux.NewRouter()

	// Build dependencies (services, handlers...)
	deps, err := BuildDependencies(client, cfg)
	if err != nil {
		return nil, err
	}

	// Middleware chain
	SetupMiddleware(r, deps, cfg)

	// Routes
	RegisterRoutes(r, deps, cfg)

	// Frontend
	frontend := rest.NewFrontendHandler("frontend", "index.html")
	r.PathPrefix("/").Handler(frontend)

	scheduler, err := snapshot.NewScheduler(deps.SnapshotStore, cfg.Dashboard.Refresh)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Dashboard.Listen,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{
		cfg:       cfg,
		router:    r,
		srv:       srv,
		scheduler: scheduler,
		store:     deps.SnapshotStore,
	}, nil
}

// Run fills the snapshot in the background, starts scheduled refreshes, and
// serves HTTP. It blocks until the server stops.
func (a *Application) Run() error {
	go func() {
		if _, err := a.store.Refresh(context.Background()); err != nil {
			log.Warnf("initial snapshot refresh failed: %v", err)
		}
	}()
	a.scheduler.Start()
	defer a.scheduler.Stop()

	log.Infof("Starting server on %s", a.srv.Addr)
	return a.srv.ListenAndServe()
}
