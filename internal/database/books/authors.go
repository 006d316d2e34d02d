package books

import (
	"github.com/mrlokans/readtrack/internal/database"
	"github.com/mrlokans/readtrack/internal/entities"
)

// LinkAuthor records that authorID wrote bookID. Linking twice is a
// constraint violation, as is linking a missing book or author.
func (r *Repository) LinkAuthor(s *database.Scope, bookID, authorID uint64) (*entities.BookAuthor, error) {
	link := entities.BookAuthor{BookID: bookID, AuthorID: authorID}
	if err := s.Tx().Create(&link).Error; err != nil {
		return nil, database.Classify(err)
	}

	var stored entities.BookAuthor
	err := s.Tx().Where(&entities.BookAuthor{BookID: bookID, AuthorID: authorID}).Take(&stored).Error
	if err != nil {
		return nil, database.Classify(err)
	}
	return &stored, nil
}

// UnlinkAuthor removes a link and reports whether one existed.
func (r *Repository) UnlinkAuthor(s *database.Scope, bookID, authorID uint64) (int64, error) {
	result := s.Tx().
		Where("book_id = ? AND author_id = ?", bookID, authorID).
		Delete(&entities.BookAuthor{})
	if result.Error != nil {
		return 0, database.Classify(result.Error)
	}
	return result.RowsAffected, nil
}

// Authors returns the authors of a book, ordered by id.
func (r *Repository) Authors(s *database.Scope, bookID uint64) ([]entities.Author, error) {
	if _, err := r.FetchOne(s, bookID); err != nil {
		return nil, err
	}

	authors := []entities.Author{}
	err := s.Tx().
		Joins("JOIN book_author ON book_author.author_id = author.id").
		Where("book_author.book_id = ?", bookID).
		Order("author.id").
		Find(&authors).Error
	if err != nil {
		return nil, database.Classify(err)
	}
	return authors, nil
}
