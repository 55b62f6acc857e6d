package app

import (
	"fmt"

	"github.com/outcal/outcal/internal/config"
	"github.com/outcal/outcal/internal/event_bus"
	"github.com/outcal/outcal/internal/utils"
	"github.com/outcal/outcal/pkg/calendar_sync"
	"github.com/outcal/outcal/pkg/export"
	"github.com/outcal/outcal/pkg/outlook"
	"github.com/outcal/outcal/pkg/snapshot"
	"github.com/outcal/outcal/pkg/stats"
	"github.com/outcal/outcal/pkg/text_cleaner"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock utils.Clock
	Bus   *event_bus.EventBus

	OutlookClient  outlook.Client
	OutlookHandler *outlook.Handler

	Cleaner      *text_cleaner.Cleaner
	Synchronizer calendar_sync.Synchronizer

	JSONExporter    *export.JSONExporter
	PromptGenerator *export.PromptGenerator

	SnapshotStore   *snapshot.Store
	SnapshotHandler *snapshot.Handler

	StatsService     *stats.StatsServiceImpl
	CsvStatsRenderer *stats.CsvStatsRendererImpl
	StatsHandler     *stats.StatsHandler
}

// RequestFromConfig builds the synchronization request described by the
// configuration.
func RequestFromConfig(cfg config.Application) calendar_sync.Request {
	return calendar_sync.Request{
		DaysBack:    cfg.Sync.DaysBack,
		DaysForward: cfg.Sync.DaysForward,
		Folder:      cfg.Outlook.Calendar,
		Timeout:     cfg.Sync.Timeout(),
		Retries:     cfg.Sync.Retries,
		FullSync:    cfg.Sync.FullSync,
	}
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(client outlook.Client, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.Bus = event_bus.NewEventBus()

	cleaner, err := text_cleaner.NewCleaner(cfg.Clean.ExtraPatterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to build body cleaner: %w", err)
	}
	deps.Cleaner = cleaner

	deps.OutlookClient = client
	deps.OutlookHandler = outlook.NewHandler(client)

	deps.Synchronizer = calendar_sync.NewSynchronizerImpl(
		client, cleaner, deps.Clock, cfg.Outlook.SkipCategories, cfg.Sync.RetryWait())

	deps.JSONExporter = export.NewJSONExporter(cfg.Export.Dir, deps.Clock)
	deps.PromptGenerator = export.NewPromptGenerator(cfg.Export.PromptTemplate)

	deps.SnapshotStore = snapshot.NewStore(deps.Synchronizer, RequestFromConfig(cfg), deps.Bus)
	deps.SnapshotHandler = snapshot.NewHandler(deps.SnapshotStore, deps.JSONExporter)

	deps.StatsService = stats.NewStatsServiceImpl()
	deps.CsvStatsRenderer = stats.NewCsvStatsTransformer()
	deps.StatsHandler = stats.NewStatsHandler(deps.SnapshotStore, deps.StatsService, deps.CsvStatsRenderer)

	return deps, nil
}
