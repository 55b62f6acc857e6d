package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/outcal/outcal/internal/app"
	"github.com/outcal/outcal/internal/config"
	"github.com/outcal/outcal/pkg/calendar_sync"
	"github.com/outcal/outcal/pkg/export"
	"github.com/outcal/outcal/pkg/outlook"
)

func init() {
	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		logrusLevel, err := log.ParseLevel(level)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	cliApp := &cli.App{
		Name:  "outcal",
		Usage: "Fetch, clean, and analyze Outlook calendar events.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "./config/application.yaml", Usage: "Path to the configuration file."},
			&cli.BoolFlag{Name: "demo", Usage: "Use built-in sample events instead of a local Outlook."},
			&cli.IntFlag{Name: "days-back", Usage: "Number of days to look back."},
			&cli.IntFlag{Name: "days-forward", Usage: "Number of days to look forward."},
			&cli.StringFlag{Name: "calendar-name", Usage: "Calendar folder to read. Defaults to the default calendar."},
			&cli.IntFlag{Name: "sync-timeout", Usage: "Time budget per read attempt, in seconds."},
			&cli.IntFlag{Name: "sync-retries", Usage: "Number of additional attempts after a failed read."},
			&cli.BoolFlag{Name: "force-full-sync", Usage: "Ask Outlook to resynchronize with the server before reading."},
			&cli.StringFlag{Name: "format", Value: export.FormatConsole, Usage: "Output format: console, markdown, html, or json."},
			&cli.BoolFlag{Name: "export-json", Usage: "Export events to a JSON file."},
			&cli.StringFlag{Name: "export-dir", Usage: "Directory to save exported JSON files."},
			&cli.BoolFlag{Name: "prompt", Usage: "Print an LLM analysis prompt instead of the event list."},
		},
		Action: runFetch,
		Commands: []*cli.Command{
			calendarsCommand(),
			dashboardCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func runFetch(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	client, cleanup, err := newClient(c.Bool("demo"))
	if err != nil {
		return err
	}
	defer cleanup()

	deps, err := app.BuildDependencies(client, cfg)
	if err != nil {
		return err
	}

	result, err := deps.Synchronizer.Sync(c.Context, app.RequestFromConfig(cfg))
	if err != nil {
		return fmt.Errorf("synchronization could not start: %w", err)
	}

	if c.Bool("export-json") && len(result.Events) > 0 {
		if _, err := deps.JSONExporter.Export(result); err != nil {
			log.Errorf("Failed to export events: %v", err)
		}
	}

	output, err := renderOutput(c, deps, result)
	if err != nil {
		return err
	}
	fmt.Print(output)

	if result.Status == calendar_sync.StatusFailed {
		return cli.Exit(fmt.Sprintf("synchronization failed after %d attempts: %s", result.Attempts, result.LastErr), 1)
	}
	return nil
}

func renderOutput(c *cli.Context, deps *app.Dependencies, result calendar_sync.Result) (string, error) {
	if c.Bool("prompt") {
		return deps.PromptGenerator.Generate(result)
	}

	if c.String("format") == "json" {
		payload, err := deps.JSONExporter.Payload(result)
		if err != nil {
			return "", err
		}
		return string(payload) + "\n", nil
	}

	renderer, err := export.NewRenderer(c.String("format"))
	if err != nil {
		return "", err
	}
	return renderer.Render(result)
}

func calendarsCommand() *cli.Command {
	return &cli.Command{
		Name:  "calendars",
		Usage: "List the available calendar folders.",
		Action: func(c *cli.Context) error {
			if _, err := loadConfig(c); err != nil {
				return err
			}

			client, cleanup, err := newClient(c.Bool("demo"))
			if err != nil {
				return err
			}
			defer cleanup()

			folders, err := client.Folders(c.Context)
			if err != nil {
				return fmt.Errorf("failed to list calendar folders: %w", err)
			}

			for _, folder := range folders {
				marker := ""
				if folder.IsDefault {
					marker = " (default)"
				}
				fmt.Printf("%s%s, %d items\n", folder.Name, marker, folder.ItemCount)
			}
			return nil
		},
	}
}

func dashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "Serve the web dashboard with periodically refreshed meeting statistics.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "listen", Usage: "Address to serve the dashboard on."},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if c.IsSet("listen") {
				cfg.Dashboard.Listen = c.String("listen")
			}

			client, cleanup, err := newClient(c.Bool("demo"))
			if err != nil {
				return err
			}
			defer cleanup()

			application, err := app.NewApplication(cfg, client)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return application.Run()
		},
	}
}

// loadConfig reads the configuration file, applies logging settings, and
// overlays any flags set on the command line.
func loadConfig(c *cli.Context) (config.Application, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return config.Application{}, err
	}
	setupLogging(cfg)

	if c.IsSet("days-back") {
		cfg.Sync.DaysBack = c.Int("days-back")
	}
	if c.IsSet("days-forward") {
		cfg.Sync.DaysForward = c.Int("days-forward")
	}
	if c.IsSet("calendar-name") {
		cfg.Outlook.Calendar = c.String("calendar-name")
	}
	if c.IsSet("sync-timeout") {
		cfg.Sync.TimeoutSeconds = c.Int("sync-timeout")
	}
	if c.IsSet("sync-retries") {
		cfg.Sync.Retries = c.Int("sync-retries")
	}
	if c.IsSet("force-full-sync") {
		cfg.Sync.FullSync = c.Bool("force-full-sync")
	}
	if c.IsSet("export-dir") {
		cfg.Export.Dir = c.String("export-dir")
	}
	return cfg, nil
}

// setupLogging applies the configured level and mirrors logs into the
// configured file next to stderr.
func setupLogging(cfg config.Application) {
	if cfg.Log.Level != "" && os.Getenv("LOG_LEVEL") == "" {
		level, err := log.ParseLevel(cfg.Log.Level)
		if err != nil {
			log.Warnf("invalid log level %q, keeping %s", cfg.Log.Level, log.GetLevel())
		} else {
			log.SetLevel(level)
		}
	}

	if cfg.Log.File == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0755); err != nil {
		log.Warnf("failed to create log directory for %s: %v", cfg.Log.File, err)
		return
	}
	file, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Warnf("failed to open log file %s: %v", cfg.Log.File, err)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stderr, file))
}

func newClient(demo bool) (outlook.Client, func(), error) {
	if demo {
		log.Info("Using built-in demo calendar data")
		return outlook.NewDemoClient(time.Now()), func() {}, nil
	}

	client, err := outlook.NewComClient()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to Outlook: %w", err)
	}
	return client, func() { client.Close() }, nil
}
