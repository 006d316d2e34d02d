package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readtrack/internal/database"
	"github.com/mrlokans/readtrack/internal/entities"
)

// PublisherStore defines database operations for publishers.
type PublisherStore interface {
	CRUDStore[entities.Publisher, entities.PublisherPatch, uint16]
}

// PublisherBooksLister lists the books of one publisher.
type PublisherBooksLister interface {
	ByPublisher(s *database.Scope, publisherID uint16) ([]entities.Book, error)
}

type PublishersController struct {
	resource[entities.Publisher, entities.PublisherPatch, uint16]
	store PublisherStore
	books PublisherBooksLister
}

func NewPublishersController(db Transactor, store PublisherStore, books PublisherBooksLister) *PublishersController {
	return &PublishersController{
		resource: newResource[entities.Publisher, entities.PublisherPatch, uint16]("publisher", 16, db, store),
		store:    store,
		books:    books,
	}
}

// GetBooks returns the books of a publisher
// GET /api/publishers/:id/books
func (pc *PublishersController) GetBooks(c *gin.Context) {
	id, ok := pc.id(c, "id")
	if !ok {
		return
	}

	var books []entities.Book
	err := pc.db.InTx(c.Request.Context(), func(s *database.Scope) error {
		if _, err := pc.store.FetchOne(s, id); err != nil {
			return err
		}
		var err error
		books, err = pc.books.ByPublisher(s, id)
		return err
	})
	if err != nil {
		respondStoreError(c, err, "publisher")
		return
	}
	c.JSON(http.StatusOK, books)
}
