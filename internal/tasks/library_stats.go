package tasks

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/readtrack/internal/database"
	"github.com/mrlokans/readtrack/internal/database/authors"
	"github.com/mrlokans/readtrack/internal/database/books"
	"github.com/mrlokans/readtrack/internal/database/progress"
	"github.com/mrlokans/readtrack/internal/database/publishers"
	"github.com/mrlokans/readtrack/internal/database/users"
)

// Counter counts the rows of one entity.
type Counter interface {
	Count(s *database.Scope) (int64, error)
}

// DefaultCounters covers every entity of the library.
func DefaultCounters() map[string]Counter {
	return map[string]Counter{
		"authors":    authors.NewRepository(),
		"publishers": publishers.NewRepository(),
		"books":      books.NewRepository(),
		"users":      users.NewRepository(),
		"progress":   progress.NewRepository(),
	}
}

// LibraryStatsTask logs row counts for the whole library.
type LibraryStatsTask struct{}

// Config returns the queue configuration for stats tasks.
func (t LibraryStatsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "library_stats",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CollectStats counts every entity in one scope so the numbers are
// consistent with each other.
func CollectStats(ctx context.Context, db Transactor, counters map[string]Counter) (map[string]int64, error) {
	stats := make(map[string]int64, len(counters))
	err := db.InTx(ctx, func(s *database.Scope) error {
		for name, counter := range counters {
			n, err := counter.Count(s)
			if err != nil {
				return fmt.Errorf("count %s: %w", name, err)
			}
			stats[name] = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// LibraryStatsProcessor creates a processor function for LibraryStatsTask.
func LibraryStatsProcessor(db Transactor, counters map[string]Counter) backlite.QueueProcessor[LibraryStatsTask] {
	return func(ctx context.Context, task LibraryStatsTask) error {
		if db == nil {
			return fmt.Errorf("database not configured")
		}

		stats, err := CollectStats(ctx, db, counters)
		if err != nil {
			return fmt.Errorf("library stats: %w", err)
		}

		log.Printf("[TASK] Library stats: %s", formatStats(stats))
		return nil
	}
}

// NewLibraryStatsQueue creates a backlite queue for stats tasks.
func NewLibraryStatsQueue(db Transactor, counters map[string]Counter) backlite.Queue {
	return backlite.NewQueue(LibraryStatsProcessor(db, counters))
}

func formatStats(stats map[string]int64) string {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%d", name, stats[name]))
	}
	return strings.Join(parts, " ")
}
