package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/readtrack/internal/database"
	"github.com/mrlokans/readtrack/internal/database/progress"
)

// Transactor runs work inside a committed-on-success scope.
type Transactor interface {
	InTx(ctx context.Context, fn func(s *database.Scope) error) error
}

// RecordProgressTask stores the page a user reached in a book.
type RecordProgressTask struct {
	UserID      uint8  `json:"user_id"`
	BookID      uint64 `json:"book_id"`
	CurrentPage uint16 `json:"current_page"`
}

// Config returns the queue configuration for progress recording tasks.
func (t RecordProgressTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "record_progress",
		MaxAttempts: 3,
		Backoff:     10 * time.Second,
		Timeout:     30 * time.Second,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RecordProgressProcessor creates a processor function for RecordProgressTask.
// Events that can never succeed (unknown user or book, bad values) are
// logged and dropped instead of retried.
func RecordProgressProcessor(db Transactor) backlite.QueueProcessor[RecordProgressTask] {
	repo := progress.NewRepository()

	return func(ctx context.Context, task RecordProgressTask) error {
		if db == nil {
			return fmt.Errorf("database not configured")
		}

		err := db.InTx(ctx, func(s *database.Scope) error {
			_, err := repo.Record(s, task.UserID, task.BookID, task.CurrentPage)
			return err
		})

		switch kind := database.Kind(err); {
		case err == nil:
			log.Printf("[TASK] Recorded page %d of book %d for user %d", task.CurrentPage, task.BookID, task.UserID)
			return nil
		case kind == database.ErrConstraintViolation, kind == database.ErrValidation:
			log.Printf("[TASK ERROR] Dropping progress event for user %d, book %d: %v", task.UserID, task.BookID, err)
			return nil
		default:
			return fmt.Errorf("record progress for user %d, book %d: %w", task.UserID, task.BookID, err)
		}
	}
}

// NewRecordProgressQueue creates a backlite queue for progress events.
func NewRecordProgressQueue(db Transactor) backlite.Queue {
	return backlite.NewQueue(RecordProgressProcessor(db))
}
