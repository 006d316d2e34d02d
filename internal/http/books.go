package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readtrack/internal/database"
	"github.com/mrlokans/readtrack/internal/entities"
)

// BookStore defines database operations for books and their authors.
type BookStore interface {
	CRUDStore[entities.Book, entities.BookPatch, uint64]
	ByPublisher(s *database.Scope, publisherID uint16) ([]entities.Book, error)
	LinkAuthor(s *database.Scope, bookID, authorID uint64) (*entities.BookAuthor, error)
	UnlinkAuthor(s *database.Scope, bookID, authorID uint64) (int64, error)
	Authors(s *database.Scope, bookID uint64) ([]entities.Author, error)
}

type BooksController struct {
	resource[entities.Book, entities.BookPatch, uint64]
	store BookStore
}

func NewBooksController(db Transactor, store BookStore) *BooksController {
	return &BooksController{
		resource: newResource[entities.Book, entities.BookPatch, uint64]("book", 64, db, store),
		store:    store,
	}
}

// GetAuthors returns the authors of a book
// GET /api/books/:id/authors
func (bc *BooksController) GetAuthors(c *gin.Context) {
	id, ok := bc.id(c, "id")
	if !ok {
		return
	}

	var authors []entities.Author
	err := bc.db.InTx(c.Request.Context(), func(s *database.Scope) (err error) {
		authors, err = bc.store.Authors(s, id)
		return err
	})
	if err != nil {
		respondStoreError(c, err, "book")
		return
	}
	c.JSON(http.StatusOK, authors)
}

// LinkAuthor records an author of a book
// PUT /api/books/:id/authors/:author_id
func (bc *BooksController) LinkAuthor(c *gin.Context) {
	bookID, ok := bc.id(c, "id")
	if !ok {
		return
	}
	authorID, ok := bc.id(c, "author_id")
	if !ok {
		return
	}

	var link *entities.BookAuthor
	err := bc.db.InTx(c.Request.Context(), func(s *database.Scope) (err error) {
		link, err = bc.store.LinkAuthor(s, bookID, authorID)
		return err
	})
	if err != nil {
		respondStoreError(c, err, "book author")
		return
	}
	respondCreated(c, link)
}

// UnlinkAuthor removes an author from a book
// DELETE /api/books/:id/authors/:author_id
func (bc *BooksController) UnlinkAuthor(c *gin.Context) {
	bookID, ok := bc.id(c, "id")
	if !ok {
		return
	}
	authorID, ok := bc.id(c, "author_id")
	if !ok {
		return
	}

	var deleted int64
	err := bc.db.InTx(c.Request.Context(), func(s *database.Scope) (err error) {
		deleted, err = bc.store.UnlinkAuthor(s, bookID, authorID)
		return err
	})
	if err != nil {
		respondStoreError(c, err, "book author")
		return
	}
	c.JSON(http.StatusOK, DeleteResponse{Deleted: deleted})
}
