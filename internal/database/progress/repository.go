// Package progress provides database operations for reading progress.
//
// A user has at most one progress row per book. Rows can be addressed by
// their own id or by the (user, book) pair.
package progress

import (
	"github.com/mrlokans/readtrack/internal/database"
	"github.com/mrlokans/readtrack/internal/entities"
)

var descriptor = database.Descriptor[entities.Progress, entities.ProgressPatch]{
	Name: "progress",
	KeyOf: func(p entities.Progress) database.Key {
		return byID(p.ID)
	},
	Build: func(p entities.ProgressPatch) (entities.Progress, error) {
		switch {
		case p.UserID == nil:
			return entities.Progress{}, database.Missing("user_id")
		case p.BookID == nil:
			return entities.Progress{}, database.Missing("book_id")
		case p.CurrentPage == nil:
			return entities.Progress{}, database.Missing("current_page")
		}
		return entities.Progress{}.Merge(p), nil
	},
	Merge: entities.Progress.Merge,
	Columns: func(p entities.Progress) map[string]any {
		return map[string]any{
			"user_id":      p.UserID,
			"book_id":      p.BookID,
			"current_page": p.CurrentPage,
		}
	},
}

func byID(id uint64) database.Key {
	return database.Key{"id": id}
}

func byPair(userID uint8, bookID uint64) database.Key {
	return database.Key{"user_id": userID, "book_id": bookID}
}

// Repository handles all progress database operations.
type Repository struct {
	base database.Repository[entities.Progress, entities.ProgressPatch]
}

// NewRepository creates a new progress repository.
func NewRepository() *Repository {
	return &Repository{base: database.NewRepository(descriptor)}
}

func (r *Repository) FetchOne(s *database.Scope, id uint64) (*entities.Progress, error) {
	return r.base.FetchOne(s, byID(id))
}

func (r *Repository) FetchAll(s *database.Scope) ([]entities.Progress, error) {
	return r.base.FetchAll(s)
}

// Create requires user_id, book_id and current_page. A second row for the
// same pair, or a missing user or book, is a constraint violation.
func (r *Repository) Create(s *database.Scope, patch entities.ProgressPatch) (*entities.Progress, error) {
	return r.base.Create(s, patch)
}

func (r *Repository) Update(s *database.Scope, id uint64, patch entities.ProgressPatch) (*entities.Progress, error) {
	return r.base.Update(s, byID(id), patch)
}

func (r *Repository) Delete(s *database.Scope, id uint64) (int64, error) {
	return r.base.Delete(s, byID(id))
}

func (r *Repository) Count(s *database.Scope) (int64, error) {
	return r.base.Count(s)
}

// FetchFor returns the progress of one user in one book.
func (r *Repository) FetchFor(s *database.Scope, userID uint8, bookID uint64) (*entities.Progress, error) {
	return r.base.FetchOne(s, byPair(userID, bookID))
}

func (r *Repository) UpdateFor(s *database.Scope, userID uint8, bookID uint64, patch entities.ProgressPatch) (*entities.Progress, error) {
	return r.base.Update(s, byPair(userID, bookID), patch)
}

func (r *Repository) DeleteFor(s *database.Scope, userID uint8, bookID uint64) (int64, error) {
	return r.base.Delete(s, byPair(userID, bookID))
}

// ForUser returns every progress row of a user, ordered by book.
func (r *Repository) ForUser(s *database.Scope, userID uint8) ([]entities.Progress, error) {
	rows := []entities.Progress{}
	if err := s.Tx().Where("user_id = ?", userID).Order("book_id").Find(&rows).Error; err != nil {
		return nil, database.Classify(err)
	}
	return rows, nil
}

// Record sets the current page of a user in a book, creating the row on the
// first call.
func (r *Repository) Record(s *database.Scope, userID uint8, bookID uint64, page uint16) (*entities.Progress, error) {
	patch := entities.ProgressPatch{UserID: &userID, BookID: &bookID, CurrentPage: &page}

	_, err := r.FetchFor(s, userID, bookID)
	switch {
	case err == nil:
		return r.UpdateFor(s, userID, bookID, entities.ProgressPatch{CurrentPage: &page})
	case database.Kind(err) == database.ErrNotFound:
		return r.Create(s, patch)
	default:
		return nil, err
	}
}
