package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	// given a path that does not exist
	path := filepath.Join(t.TempDir(), "missing.yaml")

	// when
	cfg, err := Load(path)

	// then
	assert.NoError(t, err)
	assert.Equal(t, "", cfg.Outlook.Calendar)
	assert.Equal(t, []string{"OOO"}, cfg.Outlook.SkipCategories)
	assert.Equal(t, 1, cfg.Sync.DaysBack)
	assert.Equal(t, 1, cfg.Sync.DaysForward)
	assert.Equal(t, 30*time.Second, cfg.Sync.Timeout())
	assert.Equal(t, 3, cfg.Sync.Retries)
	assert.False(t, cfg.Sync.FullSync)
	assert.Equal(t, 2*time.Second, cfg.Sync.RetryWait())
	assert.Equal(t, "exports", cfg.Export.Dir)
	assert.Equal(t, ":8181", cfg.Dashboard.Listen)
	assert.Equal(t, "*/15 * * * *", cfg.Dashboard.Refresh)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "logs/outcal.log", cfg.Log.File)
}

func TestLoad_FromYAML(t *testing.T) {
	// given
	path := filepath.Join(t.TempDir(), "application.yaml")
	content := `outlook:
  calendar: Team Events
  skipcategories:
    - OOO
    - Private
sync:
  daysback: 3
  retries: 5
  fullsync: true
dashboard:
  listen: ":9000"
`
	err := os.WriteFile(path, []byte(content), 0644)
	assert.NoError(t, err)

	// when
	cfg, err := Load(path)

	// then
	assert.NoError(t, err)
	assert.Equal(t, "Team Events", cfg.Outlook.Calendar)
	assert.Equal(t, []string{"OOO", "Private"}, cfg.Outlook.SkipCategories)
	assert.Equal(t, 3, cfg.Sync.DaysBack)
	assert.Equal(t, 5, cfg.Sync.Retries)
	assert.True(t, cfg.Sync.FullSync)
	assert.Equal(t, ":9000", cfg.Dashboard.Listen)
	// values absent from the file keep their defaults
	assert.Equal(t, 1, cfg.Sync.DaysForward)
	assert.Equal(t, "exports", cfg.Export.Dir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	// given
	t.Setenv("OUTCAL_SYNC_DAYSFORWARD", "7")
	t.Setenv("OUTCAL_OUTLOOK_CALENDAR", "Personal")
	t.Setenv("OUTCAL_OUTLOOK_SKIPCATEGORIES", "OOO,Focus")

	// when
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	// then
	assert.NoError(t, err)
	assert.Equal(t, 7, cfg.Sync.DaysForward)
	assert.Equal(t, "Personal", cfg.Outlook.Calendar)
	assert.Equal(t, []string{"OOO", "Focus"}, cfg.Outlook.SkipCategories)
}
