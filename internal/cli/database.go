package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/readtrack/internal/config"
	"github.com/mrlokans/readtrack/internal/database"
)

var errNoDatabaseURL = errors.New("no database URL: pass -database-url or set DATABASE_URL")

// openDatabase opens the pool without applying migrations.
func openDatabase(ctx context.Context, url string, cfg config.Database) (*database.Database, error) {
	if url == "" {
		return nil, errNoDatabaseURL
	}
	db, err := database.Open(ctx, database.Options{
		URL:            url,
		MaxConnections: cfg.MaxConnections,
		LogLevel:       database.ParseLogLevel(cfg.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
