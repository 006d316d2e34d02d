package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readtrack/internal/database"
	"github.com/mrlokans/readtrack/internal/entities"
)

// AuthorStore defines database operations for authors.
type AuthorStore interface {
	CRUDStore[entities.Author, entities.AuthorPatch, uint64]
	Books(s *database.Scope, authorID uint64) ([]entities.Book, error)
}

type AuthorsController struct {
	resource[entities.Author, entities.AuthorPatch, uint64]
	store AuthorStore
}

func NewAuthorsController(db Transactor, store AuthorStore) *AuthorsController {
	return &AuthorsController{
		resource: newResource[entities.Author, entities.AuthorPatch, uint64]("author", 64, db, store),
		store:    store,
	}
}

// GetBooks returns the books written by an author
// GET /api/authors/:id/books
func (ac *AuthorsController) GetBooks(c *gin.Context) {
	id, ok := ac.id(c, "id")
	if !ok {
		return
	}

	var books []entities.Book
	err := ac.db.InTx(c.Request.Context(), func(s *database.Scope) (err error) {
		books, err = ac.store.Books(s, id)
		return err
	})
	if err != nil {
		respondStoreError(c, err, "author")
		return
	}
	c.JSON(http.StatusOK, books)
}
