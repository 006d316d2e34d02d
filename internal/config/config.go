package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")

type (
	Config struct {
		HTTP
		Global
		Database
		Tasks
		Stats
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		URL            string
		MaxConnections int
		LogLevel       string // silent, error, warn or info
	}
	Tasks struct {
		Enabled         bool
		DatabasePath    string
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Stats struct {
		Schedule string // Cron format: "0 * * * *" = hourly
	}
)

// Load reads .env and .env.local, if present, and then builds the config.
// Variables already set in the environment win over both files.
func Load() *Config {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
	return NewConfig()
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	// Database defaults; DATABASE_URL has none on purpose
	v.SetDefault("database_max_connections", 5)
	v.SetDefault("database_log_level", "warn")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("tasks_database_path", "./readtrack-tasks.db")
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("stats_schedule", "0 * * * *") // Hourly at :00

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			URL:            v.GetString("DATABASE_URL"),
			MaxConnections: v.GetInt("DATABASE_MAX_CONNECTIONS"),
			LogLevel:       v.GetString("DATABASE_LOG_LEVEL"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			DatabasePath:    v.GetString("TASKS_DATABASE_PATH"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Stats: Stats{
			Schedule: v.GetString("STATS_SCHEDULE"),
		},
	}
}

// Validate reports configuration the process cannot start with.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return ErrMissingDatabaseURL
	}
	return nil
}
