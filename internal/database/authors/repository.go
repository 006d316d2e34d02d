// Package authors provides database operations for authors.
//
// # Usage
//
//	repo := authors.NewRepository()
//	author, err := repo.Create(scope, entities.AuthorPatch{Name: entities.Ptr("Ursula K. Le Guin")})
package authors

import (
	"github.com/mrlokans/readtrack/internal/database"
	"github.com/mrlokans/readtrack/internal/entities"
)

var descriptor = database.Descriptor[entities.Author, entities.AuthorPatch]{
	Name: "author",
	KeyOf: func(a entities.Author) database.Key {
		return byID(a.ID)
	},
	Build: func(p entities.AuthorPatch) (entities.Author, error) {
		if p.Name == nil || *p.Name == "" {
			return entities.Author{}, database.Missing("name")
		}
		return entities.Author{}.Merge(p), nil
	},
	Merge: entities.Author.Merge,
	Columns: func(a entities.Author) map[string]any {
		return map[string]any{
			"name":        a.Name,
			"description": a.Description,
			"birth":       a.Birth,
		}
	},
}

func byID(id uint64) database.Key {
	return database.Key{"id": id}
}

// Repository handles all author database operations.
type Repository struct {
	base database.Repository[entities.Author, entities.AuthorPatch]
}

// NewRepository creates a new authors repository.
func NewRepository() *Repository {
	return &Repository{base: database.NewRepository(descriptor)}
}

func (r *Repository) FetchOne(s *database.Scope, id uint64) (*entities.Author, error) {
	return r.base.FetchOne(s, byID(id))
}

func (r *Repository) FetchAll(s *database.Scope) ([]entities.Author, error) {
	return r.base.FetchAll(s)
}

// Create requires a name; description and birth are optional.
func (r *Repository) Create(s *database.Scope, patch entities.AuthorPatch) (*entities.Author, error) {
	return r.base.Create(s, patch)
}

func (r *Repository) Update(s *database.Scope, id uint64, patch entities.AuthorPatch) (*entities.Author, error) {
	return r.base.Update(s, byID(id), patch)
}

// Delete removes the author and its book links. Deleting a missing author
// returns 0.
func (r *Repository) Delete(s *database.Scope, id uint64) (int64, error) {
	return r.base.Delete(s, byID(id))
}

func (r *Repository) Count(s *database.Scope) (int64, error) {
	return r.base.Count(s)
}

// Books returns the books linked to an author, ordered by id.
func (r *Repository) Books(s *database.Scope, authorID uint64) ([]entities.Book, error) {
	if _, err := r.FetchOne(s, authorID); err != nil {
		return nil, err
	}

	books := []entities.Book{}
	err := s.Tx().
		Joins("JOIN book_author ON book_author.book_id = book.id").
		Where("book_author.author_id = ?", authorID).
		Order("book.id").
		Find(&books).Error
	if err != nil {
		return nil, database.Classify(err)
	}
	return books, nil
}
