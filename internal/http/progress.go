package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/readtrack/internal/database"
	"github.com/mrlokans/readtrack/internal/entities"
	"github.com/mrlokans/readtrack/internal/tasks"
)

// ProgressStore defines database operations for reading progress.
type ProgressStore interface {
	CRUDStore[entities.Progress, entities.ProgressPatch, uint64]
	FetchFor(s *database.Scope, userID uint8, bookID uint64) (*entities.Progress, error)
	UpdateFor(s *database.Scope, userID uint8, bookID uint64, patch entities.ProgressPatch) (*entities.Progress, error)
	DeleteFor(s *database.Scope, userID uint8, bookID uint64) (int64, error)
	ForUser(s *database.Scope, userID uint8) ([]entities.Progress, error)
}

// TaskEnqueuer adds a task to the background queue.
type TaskEnqueuer interface {
	Enqueue(task backlite.Task) (string, error)
}

type ProgressController struct {
	resource[entities.Progress, entities.ProgressPatch, uint64]
	store ProgressStore
	queue TaskEnqueuer
}

// NewProgressController wires the progress endpoints. queue may be nil, in
// which case progress events are refused.
func NewProgressController(db Transactor, store ProgressStore, queue TaskEnqueuer) *ProgressController {
	return &ProgressController{
		resource: newResource[entities.Progress, entities.ProgressPatch, uint64]("progress", 64, db, store),
		store:    store,
		queue:    queue,
	}
}

func (pc *ProgressController) pair(c *gin.Context) (uint8, uint64, bool) {
	userID, ok := parseIDParam(c, "id", 8)
	if !ok {
		return 0, 0, false
	}
	bookID, ok := parseIDParam(c, "book_id", 64)
	if !ok {
		return 0, 0, false
	}
	return uint8(userID), bookID, true
}

// ForUser returns the progress of a user in every book
// GET /api/users/:id/progress
func (pc *ProgressController) ForUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", 8)
	if !ok {
		return
	}

	var rows []entities.Progress
	err := pc.db.InTx(c.Request.Context(), func(s *database.Scope) (err error) {
		rows, err = pc.store.ForUser(s, uint8(userID))
		return err
	})
	if err != nil {
		respondStoreError(c, err, "progress")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetFor returns the progress of a user in one book
// GET /api/users/:id/progress/:book_id
func (pc *ProgressController) GetFor(c *gin.Context) {
	userID, bookID, ok := pc.pair(c)
	if !ok {
		return
	}

	var row *entities.Progress
	err := pc.db.InTx(c.Request.Context(), func(s *database.Scope) (err error) {
		row, err = pc.store.FetchFor(s, userID, bookID)
		return err
	})
	if err != nil {
		respondStoreError(c, err, "progress")
		return
	}
	c.JSON(http.StatusOK, row)
}

// UpdateFor merges a patch onto the progress of a user in one book
// PATCH /api/users/:id/progress/:book_id
func (pc *ProgressController) UpdateFor(c *gin.Context) {
	userID, bookID, ok := pc.pair(c)
	if !ok {
		return
	}

	var patch entities.ProgressPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err, "progress")
		return
	}

	var row *entities.Progress
	err := pc.db.InTx(c.Request.Context(), func(s *database.Scope) (err error) {
		row, err = pc.store.UpdateFor(s, userID, bookID, patch)
		return err
	})
	if err != nil {
		respondStoreError(c, err, "progress")
		return
	}
	c.JSON(http.StatusOK, row)
}

// DeleteFor removes the progress of a user in one book
// DELETE /api/users/:id/progress/:book_id
func (pc *ProgressController) DeleteFor(c *gin.Context) {
	userID, bookID, ok := pc.pair(c)
	if !ok {
		return
	}

	var deleted int64
	err := pc.db.InTx(c.Request.Context(), func(s *database.Scope) (err error) {
		deleted, err = pc.store.DeleteFor(s, userID, bookID)
		return err
	})
	if err != nil {
		respondStoreError(c, err, "progress")
		return
	}
	c.JSON(http.StatusOK, DeleteResponse{Deleted: deleted})
}

type progressEvent struct {
	UserID      uint8  `json:"user_id" binding:"required"`
	BookID      uint64 `json:"book_id" binding:"required"`
	CurrentPage uint16 `json:"current_page"`
}

// RecordEvent queues a reading position for asynchronous recording
// POST /api/progress/events
func (pc *ProgressController) RecordEvent(c *gin.Context) {
	if pc.queue == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is disabled")
		return
	}

	var event progressEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		respondBadRequest(c, "user_id and book_id are required")
		return
	}

	id, err := pc.queue.Enqueue(tasks.RecordProgressTask{
		UserID:      event.UserID,
		BookID:      event.BookID,
		CurrentPage: event.CurrentPage,
	})
	if err != nil {
		respondInternalError(c, err, "enqueue progress event")
		return
	}

	respondAccepted(c, "progress event queued", gin.H{"task_id": id})
}
