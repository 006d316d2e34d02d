// Package books provides database operations for books and their author
// links.
//
// # Usage
//
//	repo := books.NewRepository()
//	book, err := repo.Create(scope, entities.BookPatch{Name: entities.Ptr("The Dispossessed")})
//	_, err = repo.LinkAuthor(scope, book.ID, authorID)
package books

import (
	"github.com/mrlokans/readtrack/internal/database"
	"github.com/mrlokans/readtrack/internal/entities"
)

var descriptor = database.Descriptor[entities.Book, entities.BookPatch]{
	Name: "book",
	KeyOf: func(b entities.Book) database.Key {
		return byID(b.ID)
	},
	Build: func(p entities.BookPatch) (entities.Book, error) {
		if p.Name == nil || *p.Name == "" {
			return entities.Book{}, database.Missing("name")
		}
		return entities.Book{}.Merge(p), nil
	},
	Merge: entities.Book.Merge,
	Columns: func(b entities.Book) map[string]any {
		return map[string]any{
			"isbn":            b.ISBN,
			"name":            b.Name,
			"description":     b.Description,
			"language":        b.Language,
			"nsfw":            b.NSFW,
			"page_count":      b.PageCount,
			"image_formatted": b.ImageFormatted,
			"publisher_id":    b.PublisherID,
			"date_published":  b.DatePublished,
		}
	},
	Check: checkPatch,
}

func checkPatch(p entities.BookPatch) error {
	if err := database.CheckNullable("isbn", p.ISBN, "isbn"); err != nil {
		return err
	}
	if err := database.CheckNullable("language", p.Language, "min=2,max=35"); err != nil {
		return err
	}
	return database.CheckNullable("publisher_id", p.PublisherID, "min=1")
}

func byID(id uint64) database.Key {
	return database.Key{"id": id}
}

// Repository handles all book database operations.
type Repository struct {
	base database.Repository[entities.Book, entities.BookPatch]
}

// NewRepository creates a new books repository.
func NewRepository() *Repository {
	return &Repository{base: database.NewRepository(descriptor)}
}

func (r *Repository) FetchOne(s *database.Scope, id uint64) (*entities.Book, error) {
	return r.base.FetchOne(s, byID(id))
}

func (r *Repository) FetchAll(s *database.Scope) ([]entities.Book, error) {
	return r.base.FetchAll(s)
}

// Create requires a name. A publisher_id that does not exist is rejected with
// ErrConstraintViolation.
func (r *Repository) Create(s *database.Scope, patch entities.BookPatch) (*entities.Book, error) {
	return r.base.Create(s, patch)
}

func (r *Repository) Update(s *database.Scope, id uint64, patch entities.BookPatch) (*entities.Book, error) {
	return r.base.Update(s, byID(id), patch)
}

// Delete removes the book and its author links. Books with recorded progress
// cannot be deleted.
func (r *Repository) Delete(s *database.Scope, id uint64) (int64, error) {
	return r.base.Delete(s, byID(id))
}

func (r *Repository) Count(s *database.Scope) (int64, error) {
	return r.base.Count(s)
}

// ByPublisher returns the books of one publisher, ordered by id.
func (r *Repository) ByPublisher(s *database.Scope, publisherID uint16) ([]entities.Book, error) {
	return r.base.FetchWhere(s, database.Key{"publisher_id": publisherID})
}
