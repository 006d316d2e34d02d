package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg := NewConfig()

	assert.Equal(t, int32(8190), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 2, cfg.Global.ShutdownTimeoutInSeconds)
	assert.Equal(t, 5, cfg.Database.MaxConnections)
	assert.Equal(t, "warn", cfg.Database.LogLevel)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 2, cfg.Tasks.Workers)
	assert.Equal(t, 15*time.Minute, cfg.Tasks.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.Tasks.CleanupInterval)
	assert.Equal(t, "0 * * * *", cfg.Stats.Schedule)

	assert.ErrorIs(t, cfg.Validate(), ErrMissingDatabaseURL)
}

func TestNewConfigFromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://reader@localhost/readtrack")
	t.Setenv("DATABASE_MAX_CONNECTIONS", "12")
	t.Setenv("PORT", "9000")
	t.Setenv("TASKS_ENABLED", "false")
	t.Setenv("TASK_RELEASE_AFTER", "30s")

	cfg := NewConfig()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "postgres://reader@localhost/readtrack", cfg.Database.URL)
	assert.Equal(t, 12, cfg.Database.MaxConnections)
	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.False(t, cfg.Tasks.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Tasks.ReleaseAfter)
}
